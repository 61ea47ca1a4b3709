package repository

import (
	"errors"
	"fmt"

	"catalog-service/internal/model"

	"gorm.io/gorm"
)

// ErrProductNotFound is returned when a product lookup matches no row.
var ErrProductNotFound = errors.New("product not found")

// ProductsRepository is the read-only gorm access layer for products. Every
// method returns the public Product shape via model.ProductFromRow.
type ProductsRepository struct {
	db *gorm.DB
}

func NewProductsRepository(db *gorm.DB) *ProductsRepository {
	return &ProductsRepository{
		db: db,
	}
}

var sortColumns = map[model.SortBy]string{
	model.SortByName:      "name",
	model.SortByPrice:     "price_in_cents",
	model.SortByCreatedAt: "created_at",
}

// applyFilters composes the exact constraints onto the query. Search is
// deliberately absent here; fuzzy matching happens in the catalog engine.
func applyFilters(q *gorm.DB, f model.ProductFilters) *gorm.DB {
	if f.CategoryID != nil {
		q = q.Where("category_id = ?", *f.CategoryID)
	}
	if f.Subcategory != "" {
		q = q.Where("subcategory = ?", f.Subcategory)
	}
	if f.MinPrice != nil {
		q = q.Where("price_in_cents >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		q = q.Where("price_in_cents <= ?", *f.MaxPrice)
	}
	return q
}

// orderClause maps the public sort key to its storage column. The id
// tiebreak keeps pagination stable when sort values collide.
func orderClause(f model.ProductFilters) string {
	col, ok := sortColumns[f.SortBy]
	if !ok {
		col = "name"
	}
	dir := "ASC"
	if f.SortOrder == model.SortDesc {
		dir = "DESC"
	}
	return fmt.Sprintf("%s %s, id ASC", col, dir)
}

// Count returns how many products satisfy the exact constraints,
// independent of pagination.
func (r *ProductsRepository) Count(f model.ProductFilters) (int64, error) {
	var total int64
	q := applyFilters(r.db.Model(&model.ProductRow{}), f)
	if err := q.Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// FindPage returns one window of the constraint-matching set in the
// requested sort order.
func (r *ProductsRepository) FindPage(f model.ProductFilters, offset, limit int) ([]model.Product, error) {
	var rows []model.ProductRow
	q := applyFilters(r.db.Model(&model.ProductRow{}), f).Order(orderClause(f))
	if err := q.Offset(offset).Limit(limit).Find(&rows).Error; err != nil {
		return nil, err
	}
	return mapRows(rows)
}

// FindCandidates returns every product satisfying the exact constraints, in
// storage (id) order. The engine ranks these in memory when searching.
func (r *ProductsRepository) FindCandidates(f model.ProductFilters) ([]model.Product, error) {
	var rows []model.ProductRow
	q := applyFilters(r.db.Model(&model.ProductRow{}), f).Order("id ASC")
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	return mapRows(rows)
}

// FindAll returns the whole catalog in storage order, for the suggestion
// path's full scan.
func (r *ProductsRepository) FindAll() ([]model.Product, error) {
	var rows []model.ProductRow
	if err := r.db.Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return mapRows(rows)
}

func (r *ProductsRepository) FindByID(id uint) (*model.Product, error) {
	var row model.ProductRow
	if err := r.db.First(&row, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	p, err := model.ProductFromRow(row)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProductsRepository) FindBySKU(sku string) (*model.Product, error) {
	var row model.ProductRow
	if err := r.db.Where("sku = ?", sku).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	p, err := model.ProductFromRow(row)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// CountAll returns the catalog size, for the stats endpoint.
func (r *ProductsRepository) CountAll() (int64, error) {
	var total int64
	if err := r.db.Model(&model.ProductRow{}).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func mapRows(rows []model.ProductRow) ([]model.Product, error) {
	products := make([]model.Product, len(rows))
	for i, row := range rows {
		p, err := model.ProductFromRow(row)
		if err != nil {
			return nil, err
		}
		products[i] = p
	}
	return products, nil
}
