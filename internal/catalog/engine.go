// Package catalog implements the product query engine: one paginated query
// operation served by two retrieval strategies (exact relational filtering
// and fuzzy ranked retrieval), plus point lookups and autocomplete
// suggestions. The engine is a pure read layer; it never mutates the
// catalog.
package catalog

import (
	"strings"
	"unicode/utf8"

	"catalog-service/internal/model"
)

const (
	// DefaultPageSize applies when a caller passes a non-positive page size.
	DefaultPageSize = 20
	// MaxPageSize caps a page; the HTTP layer rejects larger values before
	// they get here, the engine clamps as a second line.
	MaxPageSize = 100

	defaultSuggestionLimit = 10
	minSuggestionRunes     = 2
)

// Retrieval strategies reported on a ResultPage.
const (
	StrategyFilter = "filter"
	StrategySearch = "search"
)

// ProductStore is the read-only product access the engine needs. The gorm
// repository implements it; tests substitute an in-memory version.
type ProductStore interface {
	Count(f model.ProductFilters) (int64, error)
	FindPage(f model.ProductFilters, offset, limit int) ([]model.Product, error)
	FindCandidates(f model.ProductFilters) ([]model.Product, error)
	FindAll() ([]model.Product, error)
	FindByID(id uint) (*model.Product, error)
	FindBySKU(sku string) (*model.Product, error)
}

// ResultPage is one paginated query result. Total always counts the full
// result set of the strategy that produced the page, never the page itself.
type ResultPage struct {
	Items    []model.Product
	Total    int64
	Strategy string
}

// Engine answers catalog queries against a ProductStore.
type Engine struct {
	store ProductStore
}

func NewEngine(store ProductStore) *Engine {
	return &Engine{
		store: store,
	}
}

// Query returns the requested page and the total count for the filter set.
//
// Without a search term the exact path runs: constraints are ANDed in SQL,
// the matching set is ordered by the requested sort key (ties broken by id)
// and sliced with LIMIT/OFFSET. With a search term the candidate set (same
// non-search constraints) is ranked in memory by fuzzy similarity over name
// and colors; products below the cutoff are excluded outright.
//
// Relevance wins: while a search term is present the requested sortBy and
// sortOrder are ignored and results come back best match first.
func (e *Engine) Query(f model.ProductFilters, page, pageSize int) (ResultPage, error) {
	// Callers validate ranges; clamping here means a bad value degrades
	// instead of over-fetching or slicing negatively.
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	term := strings.ToLower(strings.TrimSpace(f.Search))
	if term == "" {
		return e.queryFiltered(f, page, pageSize)
	}
	return e.querySearch(term, f, page, pageSize)
}

func (e *Engine) queryFiltered(f model.ProductFilters, page, pageSize int) (ResultPage, error) {
	total, err := e.store.Count(f)
	if err != nil {
		return ResultPage{}, err
	}
	items, err := e.store.FindPage(f, (page-1)*pageSize, pageSize)
	if err != nil {
		return ResultPage{}, err
	}
	return ResultPage{Items: items, Total: total, Strategy: StrategyFilter}, nil
}

func (e *Engine) querySearch(term string, f model.ProductFilters, page, pageSize int) (ResultPage, error) {
	candidates, err := e.store.FindCandidates(f)
	if err != nil {
		return ResultPage{}, err
	}
	ranked := rank(candidates, func(p model.Product) (float64, bool) {
		return scoreSearch(term, p)
	})

	start := (page - 1) * pageSize
	if start > len(ranked) {
		start = len(ranked)
	}
	end := start + pageSize
	if end > len(ranked) {
		end = len(ranked)
	}
	return ResultPage{
		Items:    ranked[start:end],
		Total:    int64(len(ranked)),
		Strategy: StrategySearch,
	}, nil
}

// ProductByID fetches one product; repository.ErrProductNotFound signals a
// missing row.
func (e *Engine) ProductByID(id uint) (*model.Product, error) {
	return e.store.FindByID(id)
}

// ProductBySKU fetches one product by stock-keeping code.
func (e *Engine) ProductBySKU(sku string) (*model.Product, error) {
	return e.store.FindBySKU(sku)
}

// Suggest returns up to limit products ranked against the query for
// autocomplete, name matches ranked above color and subcategory matches.
// Queries shorter than two runes return an empty list without touching
// storage. Each call scans the whole catalog — O(catalog size), acceptable
// at the expected few hundred rows.
func (e *Engine) Suggest(query string, limit int) ([]model.Product, error) {
	term := strings.ToLower(strings.TrimSpace(query))
	if utf8.RuneCountInString(term) < minSuggestionRunes {
		return []model.Product{}, nil
	}
	if limit < 1 {
		limit = defaultSuggestionLimit
	}

	all, err := e.store.FindAll()
	if err != nil {
		return nil, err
	}
	ranked := rank(all, func(p model.Product) (float64, bool) {
		return scoreSuggestion(term, p)
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked, nil
}
