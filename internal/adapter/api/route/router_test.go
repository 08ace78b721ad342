package route

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/rms-api/internal/adapter/api/controller"
	"github.com/hugohenrick/rms-api/internal/adapter/repository/memory"
	"github.com/hugohenrick/rms-api/internal/usecase/checkout"
	"github.com/hugohenrick/rms-api/internal/usecase/reporting"
	"github.com/hugohenrick/rms-api/pkg/jwt"
	"github.com/hugohenrick/rms-api/pkg/logger"
	"github.com/hugohenrick/rms-api/pkg/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	t      *testing.T
	router *gin.Engine
	token  string
}

func newTestServer(t *testing.T, manager *jwt.Manager) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := memory.NewStore(2 * time.Second)
	log := logger.Nop()

	router := gin.New()
	SetupRoutes(router, Controllers{
		System:    controller.NewSystemController(store, log),
		Suppliers: controller.NewSupplierController(store.Suppliers(), log),
		Products:  controller.NewProductController(store.Products(), log),
		Customers: controller.NewCustomerController(store.Customers(), log),
		Sales:     controller.NewSaleController(checkout.NewService(store.Sales(), checkout.DefaultTaxRate, log, nil), log),
		Reports:   controller.NewReportController(reporting.NewService(store.Reports(), time.UTC), log),
	}, middleware.AuthMiddleware(manager))

	return &testServer{t: t, router: router}
}

func (s *testServer) do(method, path string, body any, headers ...string) *httptest.ResponseRecorder {
	s.t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(s.t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

type errorBody struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type supplierBody struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type productBody struct {
	ID                string        `json:"id"`
	Name              string        `json:"name"`
	SKU               string        `json:"sku"`
	UnitPriceCents    int64         `json:"unit_price_cents"`
	QuantityAvailable int64         `json:"quantity_available"`
	ReorderLevel      int64         `json:"reorder_level"`
	SupplierID        *string       `json:"supplier_id"`
	Supplier          *supplierBody `json:"supplier"`
}

type saleBody struct {
	ID            string  `json:"id"`
	CustomerID    *string `json:"customer_id"`
	SubtotalCents int64   `json:"subtotal_cents"`
	TaxCents      int64   `json:"tax_cents"`
	TotalCents    int64   `json:"total_cents"`
	Items         []struct {
		ProductID      string `json:"product_id"`
		Quantity       int64  `json:"quantity"`
		UnitPriceCents int64  `json:"unit_price_cents"`
		LineTotalCents int64  `json:"line_total_cents"`
	} `json:"items"`
}

func (s *testServer) createProduct(sku string, price, qty int64) productBody {
	s.t.Helper()
	w := s.do(http.MethodPost, "/api/products", map[string]any{
		"name":               "Product " + sku,
		"sku":                sku,
		"unit_price_cents":   price,
		"quantity_available": qty,
	})
	require.Equal(s.t, http.StatusCreated, w.Code, w.Body.String())
	return decode[productBody](s.t, w)
}

func (s *testServer) stock(id string) int64 {
	s.t.Helper()
	w := s.do(http.MethodGet, "/api/products/"+id, nil)
	require.Equal(s.t, http.StatusOK, w.Code)
	return decode[productBody](s.t, w).QuantityAvailable
}

func TestRootAndHealth(t *testing.T) {
	s := newTestServer(t, nil)

	w := s.do(http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Welcome to the RMS API")

	w = s.do(http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","database":"up"}`, w.Body.String())
}

func TestProductLifecycle(t *testing.T) {
	s := newTestServer(t, nil)

	w := s.do(http.MethodPost, "/api/suppliers", map[string]any{"name": "Acme", "email": "sales@acme.test"})
	require.Equal(t, http.StatusCreated, w.Code)
	sup := decode[supplierBody](t, w)

	w = s.do(http.MethodPost, "/api/products", map[string]any{
		"name":               "Coffee",
		"sku":                "CF-1",
		"unit_price_cents":   1000,
		"quantity_available": 5,
		"supplier_id":        sup.ID,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	p := decode[productBody](t, w)
	assert.Equal(t, int64(10), p.ReorderLevel)
	require.NotNil(t, p.Supplier)
	assert.Equal(t, "Acme", p.Supplier.Name)

	t.Run("duplicate sku", func(t *testing.T) {
		w := s.do(http.MethodPost, "/api/products", map[string]any{
			"name": "Other", "sku": "CF-1", "unit_price_cents": 1, "quantity_available": 1,
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "product with this SKU already exists", decode[errorBody](t, w).Message)
	})

	t.Run("unknown supplier", func(t *testing.T) {
		w := s.do(http.MethodPost, "/api/products", map[string]any{
			"name": "Tea", "sku": "TEA-1", "unit_price_cents": 1, "quantity_available": 1,
			"supplier_id": "7d0f4d38-5e1b-4a55-9f0a-4a0d2f6b6f11",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("missing required field", func(t *testing.T) {
		w := s.do(http.MethodPost, "/api/products", map[string]any{"name": "Tea", "sku": "TEA-2", "unit_price_cents": 1})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		w := s.do(http.MethodPost, "/api/products", `{"name":`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("merge update", func(t *testing.T) {
		w := s.do(http.MethodPut, "/api/products/"+p.ID, map[string]any{"unit_price_cents": 1200})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		updated := decode[productBody](t, w)
		assert.Equal(t, int64(1200), updated.UnitPriceCents)
		assert.Equal(t, "Coffee", updated.Name)
		assert.Equal(t, int64(5), updated.QuantityAvailable)
		require.NotNil(t, updated.SupplierID)
	})

	t.Run("explicit null clears supplier", func(t *testing.T) {
		w := s.do(http.MethodPut, "/api/products/"+p.ID, `{"supplier_id": null}`)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		updated := decode[productBody](t, w)
		assert.Nil(t, updated.SupplierID)
		assert.Nil(t, updated.Supplier)
	})

	t.Run("negative update rejected", func(t *testing.T) {
		w := s.do(http.MethodPut, "/api/products/"+p.ID, map[string]any{"quantity_available": -1})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, int64(5), s.stock(p.ID))
	})

	t.Run("list", func(t *testing.T) {
		w := s.do(http.MethodGet, "/api/products?skip=0&limit=10", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, decode[[]productBody](t, w), 1)
	})

	t.Run("delete", func(t *testing.T) {
		w := s.do(http.MethodDelete, "/api/products/"+p.ID, nil)
		assert.Equal(t, http.StatusNoContent, w.Code)

		w = s.do(http.MethodGet, "/api/products/"+p.ID, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)

		w = s.do(http.MethodDelete, "/api/products/"+p.ID, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestLookupWithMalformedIDIsNotFound(t *testing.T) {
	s := newTestServer(t, nil)

	for _, path := range []string{"/api/products/not-a-uuid", "/api/sales/not-a-uuid", "/api/suppliers/not-a-uuid", "/api/customers/not-a-uuid"} {
		w := s.do(http.MethodGet, path, nil)
		assert.Equal(t, http.StatusNotFound, w.Code, path)
	}
	w := s.do(http.MethodPut, "/api/products/not-a-uuid", map[string]any{"name": "x"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCustomerDuplicateEmail(t *testing.T) {
	s := newTestServer(t, nil)

	body := map[string]any{"name": "Ana", "email": "ana@example.com"}
	w := s.do(http.MethodPost, "/api/customers", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = s.do(http.MethodPost, "/api/customers", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "customer with this email already exists", decode[errorBody](t, w).Message)

	w = s.do(http.MethodGet, "/api/customers", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]map[string]any](t, w), 1)
}

func TestSupplierAndCustomerLookup(t *testing.T) {
	s := newTestServer(t, nil)

	w := s.do(http.MethodPost, "/api/suppliers", map[string]any{"name": "Acme"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	sup := decode[supplierBody](t, w)

	w = s.do(http.MethodGet, "/api/suppliers/"+sup.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, sup, decode[supplierBody](t, w))

	w = s.do(http.MethodPost, "/api/customers", map[string]any{"name": "Ana", "email": "ana@example.com"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[map[string]any](t, w)

	w = s.do(http.MethodGet, fmt.Sprintf("/api/customers/%s", created["id"]), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, created, decode[map[string]any](t, w))

	missing := "7d0f4d38-5e1b-4a55-9f0a-4a0d2f6b6f11"
	w = s.do(http.MethodGet, "/api/suppliers/"+missing, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "supplier not found", decode[errorBody](t, w).Message)

	w = s.do(http.MethodGet, "/api/customers/"+missing, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "customer not found", decode[errorBody](t, w).Message)
}

func TestCreateSale(t *testing.T) {
	s := newTestServer(t, nil)
	p := s.createProduct("CF-1", 1000, 5)

	w := s.do(http.MethodPost, "/api/sales", map[string]any{
		"items": []map[string]any{{"product_id": p.ID, "quantity": 3}},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[saleBody](t, w)
	assert.Equal(t, int64(3000), created.SubtotalCents)
	assert.Equal(t, int64(240), created.TaxCents)
	assert.Equal(t, int64(3240), created.TotalCents)
	require.Len(t, created.Items, 1)
	assert.Equal(t, int64(1000), created.Items[0].UnitPriceCents)
	assert.Equal(t, int64(2), s.stock(p.ID))

	w = s.do(http.MethodGet, "/api/sales/"+created.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, created.ID, decode[saleBody](t, w).ID)

	w = s.do(http.MethodGet, "/api/sales", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]saleBody](t, w), 1)
}

func TestListPagination(t *testing.T) {
	s := newTestServer(t, nil)
	for _, sku := range []string{"C-3", "A-1", "B-2"} {
		s.createProduct(sku, 100, 10)
	}

	w := s.do(http.MethodGet, "/api/products?skip=1&limit=1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	products := decode[[]productBody](t, w)
	require.Len(t, products, 1)
	assert.Equal(t, "B-2", products[0].SKU)

	p := s.createProduct("CF-1", 1000, 10)
	ids := make([]string, 0, 3)
	for i := 0; i < 3; i++ {
		w := s.do(http.MethodPost, "/api/sales", map[string]any{
			"items": []map[string]any{{"product_id": p.ID, "quantity": 1}},
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		ids = append(ids, decode[saleBody](t, w).ID)
		time.Sleep(5 * time.Millisecond)
	}

	w = s.do(http.MethodGet, "/api/sales", nil)
	require.Equal(t, http.StatusOK, w.Code)
	all := decode[[]saleBody](t, w)
	require.Len(t, all, 3)
	assert.Equal(t, []string{ids[2], ids[1], ids[0]}, []string{all[0].ID, all[1].ID, all[2].ID})

	w = s.do(http.MethodGet, "/api/sales?skip=1&limit=1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	page := decode[[]saleBody](t, w)
	require.Len(t, page, 1)
	assert.Equal(t, ids[1], page[0].ID)

	w = s.do(http.MethodGet, "/api/sales?skip=abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateSaleFailures(t *testing.T) {
	s := newTestServer(t, nil)
	p := s.createProduct("CF-1", 1000, 2)

	tests := []struct {
		name    string
		body    any
		status  int
		message string
	}{
		{
			name:    "insufficient stock",
			body:    map[string]any{"items": []map[string]any{{"product_id": p.ID, "quantity": 3}}},
			status:  http.StatusBadRequest,
			message: "insufficient stock for Product CF-1 (SKU: CF-1). Requested: 3, Available: 2",
		},
		{
			name:    "unknown product",
			body:    map[string]any{"items": []map[string]any{{"product_id": "7d0f4d38-5e1b-4a55-9f0a-4a0d2f6b6f11", "quantity": 1}}},
			status:  http.StatusNotFound,
			message: "product not found: id 7d0f4d38-5e1b-4a55-9f0a-4a0d2f6b6f11",
		},
		{
			name:    "empty items",
			body:    map[string]any{"items": []map[string]any{}},
			status:  http.StatusBadRequest,
			message: "sale must contain at least one item",
		},
		{
			name:    "zero quantity",
			body:    map[string]any{"items": []map[string]any{{"product_id": p.ID, "quantity": 0}}},
			status:  http.StatusBadRequest,
			message: fmt.Sprintf("item quantity must be positive: product %s", p.ID),
		},
		{
			name:    "unknown customer",
			body:    map[string]any{"customer_id": "7d0f4d38-5e1b-4a55-9f0a-4a0d2f6b6f11", "items": []map[string]any{{"product_id": p.ID, "quantity": 1}}},
			status:  http.StatusNotFound,
			message: "customer not found: id 7d0f4d38-5e1b-4a55-9f0a-4a0d2f6b6f11",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := s.do(http.MethodPost, "/api/sales", tt.body)
			assert.Equal(t, tt.status, w.Code, w.Body.String())
			assert.Equal(t, tt.message, decode[errorBody](t, w).Message)
			assert.Equal(t, int64(2), s.stock(p.ID))
		})
	}
}

func TestCreateSaleIdempotencyKey(t *testing.T) {
	s := newTestServer(t, nil)
	p := s.createProduct("CF-1", 1000, 5)
	body := map[string]any{"items": []map[string]any{{"product_id": p.ID, "quantity": 1}}}

	first := s.do(http.MethodPost, "/api/sales", body, "Idempotency-Key", "checkout-42")
	require.Equal(t, http.StatusCreated, first.Code, first.Body.String())

	second := s.do(http.MethodPost, "/api/sales", body, "Idempotency-Key", "checkout-42")
	require.Equal(t, http.StatusOK, second.Code, second.Body.String())

	assert.Equal(t, decode[saleBody](t, first).ID, decode[saleBody](t, second).ID)
	assert.Equal(t, int64(4), s.stock(p.ID))
}

func TestReports(t *testing.T) {
	s := newTestServer(t, nil)
	a := s.createProduct("A-1", 1000, 20)
	b := s.createProduct("B-1", 500, 20)

	for _, body := range []map[string]any{
		{"items": []map[string]any{{"product_id": a.ID, "quantity": 1}}},
		{"items": []map[string]any{{"product_id": b.ID, "quantity": 15}}},
	} {
		w := s.do(http.MethodPost, "/api/sales", body)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}

	from := time.Now().UTC().AddDate(0, 0, -1).Format(reporting.DateLayout)
	to := time.Now().UTC().AddDate(0, 0, 1).Format(reporting.DateLayout)

	t.Run("sales summary", func(t *testing.T) {
		w := s.do(http.MethodGet, "/api/reports/sales-summary?from_date="+from+"&to_date="+to, nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		summary := decode[map[string]any](t, w)
		// 1080 + 8100
		assert.EqualValues(t, 9180, summary["total_revenue_cents"])
		assert.EqualValues(t, 2, summary["transaction_count"])
		assert.EqualValues(t, 4590, summary["average_order_value_cents"])
		assert.Equal(t, from, summary["from_date"])
	})

	t.Run("inverted range is empty", func(t *testing.T) {
		w := s.do(http.MethodGet, "/api/reports/sales-summary?from_date="+to+"&to_date="+from, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.EqualValues(t, 0, decode[map[string]any](t, w)["transaction_count"])
	})

	t.Run("invalid dates", func(t *testing.T) {
		for _, q := range []string{"", "?from_date=" + from, "?from_date=2024-13-01&to_date=" + to} {
			w := s.do(http.MethodGet, "/api/reports/sales-summary"+q, nil)
			assert.Equal(t, http.StatusBadRequest, w.Code, q)
		}
	})

	t.Run("low stock by reorder level", func(t *testing.T) {
		w := s.do(http.MethodGet, "/api/reports/low-stock", nil)
		require.Equal(t, http.StatusOK, w.Code)
		low := decode[[]productBody](t, w)
		require.Len(t, low, 1)
		assert.Equal(t, b.ID, low[0].ID)
	})

	t.Run("low stock by threshold", func(t *testing.T) {
		w := s.do(http.MethodGet, "/api/reports/low-stock?threshold=100", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, decode[[]productBody](t, w), 2)

		w = s.do(http.MethodGet, "/api/reports/low-stock?threshold=abc", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAuthProtectsBusinessRoutes(t *testing.T) {
	manager, err := jwt.NewManager("secret", "rms-api")
	require.NoError(t, err)
	s := newTestServer(t, manager)

	w := s.do(http.MethodGet, "/api/products", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	s.token, err = manager.GenerateToken("cashier-1", "cashier", time.Hour)
	require.NoError(t, err)
	w = s.do(http.MethodGet, "/api/products", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
