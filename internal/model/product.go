package model

import (
	"encoding/json"
	"fmt"
)

// ProductRow is the product record as stored. Sizes and colors live in the
// row as serialized JSON arrays written by the seeding tooling; they are
// parsed into slices by ProductFromRow.
type ProductRow struct {
	ID            uint    `gorm:"primarykey"`
	SKU           string  `gorm:"column:sku;type:varchar(100);unique;not null"`
	Name          string  `gorm:"type:varchar(255);not null"`
	Description   string  `gorm:"type:text"`
	CategoryID    uint    `gorm:"index;not null"`
	Subcategory   string  `gorm:"type:varchar(100);index"`
	PriceInCents  int64   `gorm:"not null;index"`
	Sizes         string  `gorm:"type:text;not null"`
	Colors        string  `gorm:"type:text;not null"`
	ImageURL      string  `gorm:"type:text"`
	StockQuantity int     `gorm:"not null;default:0"`
	WeightOz      float64 `gorm:"not null;default:0"`
	CreatedAt     string  `gorm:"type:varchar(40);not null"`
}

func (ProductRow) TableName() string {
	return "products"
}

// Product is the public catalog shape served by every read path. Prices are
// integer minor units; createdAt stays an ISO-8601 string, used only for
// newest-first sorting.
type Product struct {
	ID            uint     `json:"id"`
	SKU           string   `json:"sku"`
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	CategoryID    uint     `json:"categoryId"`
	Subcategory   string   `json:"subcategory"`
	PriceInCents  int64    `json:"priceInCents"`
	Sizes         []string `json:"sizes"`
	Colors        []string `json:"colors"`
	ImageURL      string   `json:"imageUrl"`
	StockQuantity int      `json:"stockQuantity"`
	WeightOz      float64  `json:"weightOz"`
	CreatedAt     string   `json:"createdAt"`
}

// ProductFromRow is the single conversion from a stored row to the public
// shape. Point lookup, listing and suggestion paths all go through it, so
// the entry points cannot drift apart.
func ProductFromRow(row ProductRow) (Product, error) {
	var sizes []string
	if err := json.Unmarshal([]byte(row.Sizes), &sizes); err != nil {
		return Product{}, fmt.Errorf("product %d: parse sizes: %w", row.ID, err)
	}

	var colors []string
	if err := json.Unmarshal([]byte(row.Colors), &colors); err != nil {
		return Product{}, fmt.Errorf("product %d: parse colors: %w", row.ID, err)
	}

	return Product{
		ID:            row.ID,
		SKU:           row.SKU,
		Name:          row.Name,
		Description:   row.Description,
		CategoryID:    row.CategoryID,
		Subcategory:   row.Subcategory,
		PriceInCents:  row.PriceInCents,
		Sizes:         sizes,
		Colors:        colors,
		ImageURL:      row.ImageURL,
		StockQuantity: row.StockQuantity,
		WeightOz:      row.WeightOz,
		CreatedAt:     row.CreatedAt,
	}, nil
}
