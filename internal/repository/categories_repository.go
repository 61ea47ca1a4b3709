package repository

import (
	"errors"

	"catalog-service/internal/model"

	"gorm.io/gorm"
)

// ErrCategoryNotFound is returned when a category lookup matches no row.
var ErrCategoryNotFound = errors.New("category not found")

// CategoriesRepository reads the fixed category taxonomy.
type CategoriesRepository struct {
	db *gorm.DB
}

func NewCategoriesRepository(db *gorm.DB) *CategoriesRepository {
	return &CategoriesRepository{
		db: db,
	}
}

// All returns every category ordered by display name.
func (r *CategoriesRepository) All() ([]model.Category, error) {
	var categories []model.Category
	if err := r.db.Order("name ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *CategoriesRepository) BySlug(slug string) (*model.Category, error) {
	var category model.Category
	if err := r.db.Where("slug = ?", slug).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return &category, nil
}

func (r *CategoriesRepository) ByID(id uint) (*model.Category, error) {
	var category model.Category
	if err := r.db.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return &category, nil
}

// CountAll returns the taxonomy size, for the stats endpoint.
func (r *CategoriesRepository) CountAll() (int64, error) {
	var total int64
	if err := r.db.Model(&model.Category{}).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}
