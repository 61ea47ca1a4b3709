package model

// SortBy selects the column product listings are ordered by.
type SortBy string

const (
	SortByName      SortBy = "name"
	SortByPrice     SortBy = "price"
	SortByCreatedAt SortBy = "createdAt"
)

// SortOrder is the listing direction.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// ProductFilters carries the optional constraints for one catalog query.
// Nil pointer fields and empty strings mean "no constraint"; active
// constraints are combined with AND. Search switches the engine to fuzzy
// ranked retrieval.
type ProductFilters struct {
	CategoryID  *uint
	Subcategory string
	MinPrice    *int64
	MaxPrice    *int64
	Search      string
	SortBy      SortBy
	SortOrder   SortOrder
}
