package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"catalog-service/internal/catalog"
	"catalog-service/internal/model"
	"catalog-service/internal/repository"
	"catalog-service/pkg/logger"
	"catalog-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// CatalogProvider is what the product handlers need from the query engine.
type CatalogProvider interface {
	Query(f model.ProductFilters, page, pageSize int) (catalog.ResultPage, error)
	Suggest(query string, limit int) ([]model.Product, error)
	ProductByID(id uint) (*model.Product, error)
	ProductBySKU(sku string) (*model.Product, error)
}

// Pagination echoes the request window back alongside the totals.
type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// ProductListResponse is the paginated listing envelope.
type ProductListResponse struct {
	Data       []model.Product `json:"data"`
	Pagination Pagination      `json:"pagination"`
}

// ProductHandler serves the product read endpoints.
type ProductHandler struct {
	engine          CatalogProvider
	defaultPageSize int
	suggestionLimit int
}

func NewProductHandler(engine CatalogProvider, defaultPageSize, suggestionLimit int) *ProductHandler {
	return &ProductHandler{
		engine:          engine,
		defaultPageSize: defaultPageSize,
		suggestionLimit: suggestionLimit,
	}
}

// parseProductQuery validates the listing query parameters. The engine may
// assume well-formed input because nothing invalid gets past here.
func parseProductQuery(c echo.Context, defaultPageSize int) (model.ProductFilters, int, int, error) {
	var f model.ProductFilters

	page := 1
	if v := c.QueryParam("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return f, 0, 0, errors.New("page must be a positive integer")
		}
		page = n
	}

	pageSize := defaultPageSize
	if v := c.QueryParam("pageSize"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > catalog.MaxPageSize {
			return f, 0, 0, fmt.Errorf("pageSize must be between 1 and %d", catalog.MaxPageSize)
		}
		pageSize = n
	}

	if v := c.QueryParam("categoryId"); v != "" {
		n, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return f, 0, 0, errors.New("categoryId must be a number")
		}
		id := uint(n)
		f.CategoryID = &id
	}

	f.Subcategory = c.QueryParam("subcategory")

	if v := c.QueryParam("minPrice"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return f, 0, 0, errors.New("minPrice must be an integer number of cents")
		}
		f.MinPrice = &n
	}

	if v := c.QueryParam("maxPrice"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return f, 0, 0, errors.New("maxPrice must be an integer number of cents")
		}
		f.MaxPrice = &n
	}

	f.Search = c.QueryParam("search")

	f.SortBy = model.SortByName
	if v := c.QueryParam("sortBy"); v != "" {
		switch model.SortBy(v) {
		case model.SortByName, model.SortByPrice, model.SortByCreatedAt:
			f.SortBy = model.SortBy(v)
		default:
			return f, 0, 0, errors.New("sortBy must be one of name, price, createdAt")
		}
	}

	f.SortOrder = model.SortAsc
	if v := c.QueryParam("sortOrder"); v != "" {
		switch model.SortOrder(v) {
		case model.SortAsc, model.SortDesc:
			f.SortOrder = model.SortOrder(v)
		default:
			return f, 0, 0, errors.New("sortOrder must be asc or desc")
		}
	}

	return f, page, pageSize, nil
}

func paginationFor(page, pageSize int, total int64) Pagination {
	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	return Pagination{
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
	}
}

// List handles GET /api/products
func (h *ProductHandler) List(c echo.Context) error {
	log := logger.FromContext(c)

	f, page, pageSize, err := parseProductQuery(c, h.defaultPageSize)
	if err != nil {
		log.Warn("Invalid product query", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	res, err := h.engine.Query(f, page, pageSize)
	if err != nil {
		log.Error("Failed to query products", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve products"})
	}

	prometheus.CatalogQueriesTotal.WithLabelValues(res.Strategy).Inc()
	log.Info("Products retrieved",
		zap.Int("count", len(res.Items)),
		zap.Int64("total", res.Total),
		zap.String("strategy", res.Strategy))
	return c.JSON(http.StatusOK, ProductListResponse{
		Data:       res.Items,
		Pagination: paginationFor(page, pageSize, res.Total),
	})
}

// Get handles GET /api/products/:id
func (h *ProductHandler) Get(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		log.Warn("Invalid product id", zap.String("id", c.Param("id")))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Product ID must be a number"})
	}

	product, err := h.engine.ProductByID(uint(id))
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			prometheus.ProductLookupsTotal.WithLabelValues("not_found").Inc()
			log.Info("Product not found", zap.Uint64("product_id", id))
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Product not found"})
		}
		log.Error("Failed to get product", zap.Uint64("product_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve product"})
	}

	prometheus.ProductLookupsTotal.WithLabelValues("found").Inc()
	return c.JSON(http.StatusOK, echo.Map{"data": product})
}

// GetBySKU handles GET /api/products/sku/:sku
func (h *ProductHandler) GetBySKU(c echo.Context) error {
	log := logger.FromContext(c)
	sku := c.Param("sku")

	product, err := h.engine.ProductBySKU(sku)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			prometheus.ProductLookupsTotal.WithLabelValues("not_found").Inc()
			log.Info("Product not found", zap.String("sku", sku))
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Product not found"})
		}
		log.Error("Failed to get product", zap.String("sku", sku), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve product"})
	}

	prometheus.ProductLookupsTotal.WithLabelValues("found").Inc()
	return c.JSON(http.StatusOK, echo.Map{"data": product})
}

// Suggest handles GET /api/products/suggestions
func (h *ProductHandler) Suggest(c echo.Context) error {
	log := logger.FromContext(c)

	query := c.QueryParam("q")
	limit := h.suggestionLimit
	if v := c.QueryParam("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			log.Warn("Invalid suggestion limit", zap.String("limit", v))
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "limit must be a positive integer"})
		}
		limit = n
	}

	suggestions, err := h.engine.Suggest(query, limit)
	if err != nil {
		log.Error("Failed to rank suggestions", zap.String("query", query), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve suggestions"})
	}

	prometheus.SuggestionRequestsTotal.Inc()
	log.Info("Suggestions retrieved",
		zap.String("query", strings.TrimSpace(query)),
		zap.Int("count", len(suggestions)))
	return c.JSON(http.StatusOK, echo.Map{"data": suggestions})
}
