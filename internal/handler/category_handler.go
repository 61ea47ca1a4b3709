package handler

import (
	"errors"
	"net/http"

	"catalog-service/internal/model"
	"catalog-service/internal/repository"
	"catalog-service/pkg/logger"
	"catalog-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// CategoryProvider is the read access the category handlers need.
type CategoryProvider interface {
	All() ([]model.Category, error)
	BySlug(slug string) (*model.Category, error)
}

// CategoryHandler serves the category read endpoints.
type CategoryHandler struct {
	repo            CategoryProvider
	engine          CatalogProvider
	defaultPageSize int
}

func NewCategoryHandler(repo CategoryProvider, engine CatalogProvider, defaultPageSize int) *CategoryHandler {
	return &CategoryHandler{
		repo:            repo,
		engine:          engine,
		defaultPageSize: defaultPageSize,
	}
}

// List handles GET /api/categories
func (h *CategoryHandler) List(c echo.Context) error {
	log := logger.FromContext(c)

	categories, err := h.repo.All()
	if err != nil {
		log.Error("Failed to list categories", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve categories"})
	}

	log.Info("Categories retrieved", zap.Int("count", len(categories)))
	return c.JSON(http.StatusOK, echo.Map{"data": categories})
}

// Get handles GET /api/categories/:slug
func (h *CategoryHandler) Get(c echo.Context) error {
	log := logger.FromContext(c)
	slug := c.Param("slug")

	category, err := h.repo.BySlug(slug)
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			log.Info("Category not found", zap.String("slug", slug))
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Category not found"})
		}
		log.Error("Failed to get category", zap.String("slug", slug), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve category"})
	}

	return c.JSON(http.StatusOK, echo.Map{"data": category})
}

// ListProducts handles GET /api/categories/:slug/products. The category is
// resolved by slug, then the listing runs through the same engine as
// /api/products with the category constraint pinned.
func (h *CategoryHandler) ListProducts(c echo.Context) error {
	log := logger.FromContext(c)
	slug := c.Param("slug")

	category, err := h.repo.BySlug(slug)
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			log.Info("Category not found", zap.String("slug", slug))
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Category not found"})
		}
		log.Error("Failed to get category", zap.String("slug", slug), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve category"})
	}

	f, page, pageSize, err := parseProductQuery(c, h.defaultPageSize)
	if err != nil {
		log.Warn("Invalid product query", zap.String("slug", slug), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	// The path wins over any categoryId query parameter.
	f.CategoryID = &category.ID

	res, err := h.engine.Query(f, page, pageSize)
	if err != nil {
		log.Error("Failed to query category products",
			zap.String("slug", slug),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve products"})
	}

	prometheus.CatalogQueriesTotal.WithLabelValues(res.Strategy).Inc()
	log.Info("Category products retrieved",
		zap.String("slug", slug),
		zap.Int("count", len(res.Items)),
		zap.Int64("total", res.Total))
	return c.JSON(http.StatusOK, ProductListResponse{
		Data:       res.Items,
		Pagination: paginationFor(page, pageSize, res.Total),
	})
}
