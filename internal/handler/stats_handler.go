package handler

import (
	"net/http"

	"catalog-service/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// RowCounter counts the rows of one table.
type RowCounter interface {
	CountAll() (int64, error)
}

// StatsHandler serves GET /api/stats with catalog row counts.
type StatsHandler struct {
	products   RowCounter
	categories RowCounter
}

func NewStatsHandler(products, categories RowCounter) *StatsHandler {
	return &StatsHandler{
		products:   products,
		categories: categories,
	}
}

func (h *StatsHandler) Get(c echo.Context) error {
	log := logger.FromContext(c)

	productCount, err := h.products.CountAll()
	if err != nil {
		log.Error("Failed to count products", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve stats"})
	}

	categoryCount, err := h.categories.CountAll()
	if err != nil {
		log.Error("Failed to count categories", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve stats"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"data": echo.Map{
			"products":   productCount,
			"categories": categoryCount,
		},
	})
}
