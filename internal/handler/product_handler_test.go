package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"catalog-service/internal/catalog"
	"catalog-service/internal/model"
	"catalog-service/internal/repository"
	"catalog-service/pkg/config"
	"catalog-service/prometheus"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	prometheus.InitMetrics(cfg)
	os.Exit(m.Run())
}

// --- Mock engine ---

type mockCatalog struct {
	page        catalog.ResultPage
	suggestions []model.Product
	product     *model.Product
	err         error

	queryCalls   int
	lastFilters  model.ProductFilters
	lastPage     int
	lastPageSize int
	lastQuery    string
	lastLimit    int
	lastID       uint
	lastSKU      string
}

func (m *mockCatalog) Query(f model.ProductFilters, page, pageSize int) (catalog.ResultPage, error) {
	m.queryCalls++
	m.lastFilters = f
	m.lastPage = page
	m.lastPageSize = pageSize
	if m.err != nil {
		return catalog.ResultPage{}, m.err
	}
	return m.page, nil
}

func (m *mockCatalog) Suggest(query string, limit int) ([]model.Product, error) {
	m.lastQuery = query
	m.lastLimit = limit
	if m.err != nil {
		return nil, m.err
	}
	return m.suggestions, nil
}

func (m *mockCatalog) ProductByID(id uint) (*model.Product, error) {
	m.lastID = id
	if m.err != nil {
		return nil, m.err
	}
	return m.product, nil
}

func (m *mockCatalog) ProductBySKU(sku string) (*model.Product, error) {
	m.lastSKU = sku
	if m.err != nil {
		return nil, m.err
	}
	return m.product, nil
}

// --- Helpers ---

func doRequest(h echo.HandlerFunc, target string, params ...string) (*httptest.ResponseRecorder, error) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	for i := 0; i+1 < len(params); i += 2 {
		c.SetParamNames(params[i])
		c.SetParamValues(params[i+1])
	}
	return rec, h(c)
}

func sampleProduct() model.Product {
	return model.Product{
		ID:           7,
		SKU:          "JKT-001",
		Name:         "Alpine Jacket",
		CategoryID:   3,
		Subcategory:  "jackets",
		PriceInCents: 12900,
		Sizes:        []string{"M", "L"},
		Colors:       []string{"Red"},
		CreatedAt:    "2024-01-05T00:00:00Z",
	}
}

// --- List ---

func TestListDefaults(t *testing.T) {
	engine := &mockCatalog{page: catalog.ResultPage{
		Items:    []model.Product{sampleProduct()},
		Total:    41,
		Strategy: catalog.StrategyFilter,
	}}
	h := NewProductHandler(engine, 20, 10)

	rec, err := doRequest(h.List, "/api/products")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, 1, engine.lastPage)
	assert.Equal(t, 20, engine.lastPageSize)
	assert.Equal(t, model.SortByName, engine.lastFilters.SortBy)
	assert.Equal(t, model.SortAsc, engine.lastFilters.SortOrder)
	assert.Nil(t, engine.lastFilters.CategoryID)

	var resp ProductListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 1)
	assert.Contains(t, rec.Body.String(), `"priceInCents":12900`)
	assert.Equal(t, int64(12900), resp.Data[0].PriceInCents)
	assert.Equal(t, int64(41), resp.Pagination.Total)
	assert.Equal(t, 3, resp.Pagination.TotalPages)
}

func TestListParsesFilters(t *testing.T) {
	engine := &mockCatalog{}
	h := NewProductHandler(engine, 20, 10)

	rec, err := doRequest(h.List,
		"/api/products?page=2&pageSize=5&categoryId=3&subcategory=jackets&minPrice=2000&maxPrice=4000&search=alpine&sortBy=price&sortOrder=desc")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	f := engine.lastFilters
	require.NotNil(t, f.CategoryID)
	assert.Equal(t, uint(3), *f.CategoryID)
	assert.Equal(t, "jackets", f.Subcategory)
	require.NotNil(t, f.MinPrice)
	assert.Equal(t, int64(2000), *f.MinPrice)
	require.NotNil(t, f.MaxPrice)
	assert.Equal(t, int64(4000), *f.MaxPrice)
	assert.Equal(t, "alpine", f.Search)
	assert.Equal(t, model.SortByPrice, f.SortBy)
	assert.Equal(t, model.SortDesc, f.SortOrder)
	assert.Equal(t, 2, engine.lastPage)
	assert.Equal(t, 5, engine.lastPageSize)
}

func TestListRejectsInvalidParams(t *testing.T) {
	cases := []struct {
		name string
		url  string
	}{
		{"zero page", "/api/products?page=0"},
		{"negative page", "/api/products?page=-1"},
		{"non-numeric page", "/api/products?page=abc"},
		{"zero pageSize", "/api/products?pageSize=0"},
		{"oversized pageSize", "/api/products?pageSize=101"},
		{"bad categoryId", "/api/products?categoryId=xyz"},
		{"bad minPrice", "/api/products?minPrice=cheap"},
		{"bad maxPrice", "/api/products?maxPrice=12.5"},
		{"bad sortBy", "/api/products?sortBy=sku"},
		{"bad sortOrder", "/api/products?sortOrder=sideways"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			engine := &mockCatalog{}
			h := NewProductHandler(engine, 20, 10)

			rec, err := doRequest(h.List, tc.url)
			require.NoError(t, err)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Zero(t, engine.queryCalls, "engine must not see invalid input")
		})
	}
}

func TestListStorageErrorBecomes500(t *testing.T) {
	engine := &mockCatalog{err: errors.New("connection refused")}
	h := NewProductHandler(engine, 20, 10)

	rec, err := doRequest(h.List, "/api/products")
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

// --- Point lookups ---

func TestGetProduct(t *testing.T) {
	p := sampleProduct()
	engine := &mockCatalog{product: &p}
	h := NewProductHandler(engine, 20, 10)

	rec, err := doRequest(h.Get, "/api/products/7", "id", "7")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, uint(7), engine.lastID)

	var resp struct {
		Data model.Product `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Alpine Jacket", resp.Data.Name)
	assert.Equal(t, []string{"Red"}, resp.Data.Colors)
}

func TestGetProductNotFound(t *testing.T) {
	engine := &mockCatalog{err: repository.ErrProductNotFound}
	h := NewProductHandler(engine, 20, 10)

	rec, err := doRequest(h.Get, "/api/products/999", "id", "999")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetProductBadID(t *testing.T) {
	engine := &mockCatalog{}
	h := NewProductHandler(engine, 20, 10)

	rec, err := doRequest(h.Get, "/api/products/abc", "id", "abc")
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetProductBySKU(t *testing.T) {
	p := sampleProduct()
	engine := &mockCatalog{product: &p}
	h := NewProductHandler(engine, 20, 10)

	rec, err := doRequest(h.GetBySKU, "/api/products/sku/JKT-001", "sku", "JKT-001")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "JKT-001", engine.lastSKU)
}

func TestGetProductBySKUNotFound(t *testing.T) {
	engine := &mockCatalog{err: repository.ErrProductNotFound}
	h := NewProductHandler(engine, 20, 10)

	rec, err := doRequest(h.GetBySKU, "/api/products/sku/NOPE", "sku", "NOPE")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// --- Suggestions ---

func TestSuggestDefaults(t *testing.T) {
	engine := &mockCatalog{suggestions: []model.Product{sampleProduct()}}
	h := NewProductHandler(engine, 20, 10)

	rec, err := doRequest(h.Suggest, "/api/products/suggestions?q=jack")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "jack", engine.lastQuery)
	assert.Equal(t, 10, engine.lastLimit)

	var resp struct {
		Data []model.Product `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Data, 1)
}

func TestSuggestCustomLimit(t *testing.T) {
	engine := &mockCatalog{suggestions: []model.Product{}}
	h := NewProductHandler(engine, 20, 10)

	rec, err := doRequest(h.Suggest, "/api/products/suggestions?q=jack&limit=3")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 3, engine.lastLimit)
}

func TestSuggestRejectsBadLimit(t *testing.T) {
	for _, limit := range []string{"0", "-2", "abc"} {
		engine := &mockCatalog{}
		h := NewProductHandler(engine, 20, 10)

		rec, err := doRequest(h.Suggest, "/api/products/suggestions?q=jack&limit="+limit)
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	}
}
