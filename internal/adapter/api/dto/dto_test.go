package dto

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/rms-api/pkg/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductUpdateSupplierField(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		clear     bool
		supplier  *string
		wantPrice bool
	}{
		{"absent", `{"unit_price_cents": 10}`, false, nil, true},
		{"explicit null", `{"supplier_id": null}`, true, nil, false},
		{"value", `{"supplier_id": "abc"}`, false, strPtr("abc"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req ProductUpdateRequest
			require.NoError(t, json.Unmarshal([]byte(tt.body), &req))

			patch := req.ToPatch()
			assert.Equal(t, tt.clear, patch.ClearSupplier)
			assert.Equal(t, tt.supplier, patch.SupplierID)
			assert.Equal(t, tt.wantPrice, patch.UnitPriceCents != nil)
			assert.Nil(t, patch.Name)
		})
	}
}

func TestNullableStringRejectsNonString(t *testing.T) {
	var req ProductUpdateRequest
	assert.Error(t, json.Unmarshal([]byte(`{"supplier_id": 12}`), &req))
}

func TestGetPagination(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		query   string
		want    Pagination
		wantErr bool
	}{
		{"", Pagination{Skip: 0, Limit: DefaultLimit}, false},
		{"?skip=20&limit=5", Pagination{Skip: 20, Limit: 5}, false},
		{"?skip=-3", Pagination{Skip: 0, Limit: DefaultLimit}, false},
		{"?limit=5000", Pagination{Skip: 0, Limit: MaxLimit}, false},
		{"?limit=0", Pagination{Skip: 0, Limit: 0}, false},
		{"?skip=abc", Pagination{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest("GET", "/api/products"+tt.query, nil)

			got, err := GetPagination(c)
			if tt.wantErr {
				assert.Equal(t, apperr.KindInvalidRequest, apperr.KindOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func strPtr(s string) *string { return &s }
