package dto

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/hugohenrick/rms-api/internal/domain/product"
)

// ProductCreateRequest representa a requisição de criação de produto
type ProductCreateRequest struct {
	Name              string  `json:"name" binding:"required"`
	SKU               string  `json:"sku" binding:"required"`
	UnitPriceCents    *int64  `json:"unit_price_cents" binding:"required,min=0"`
	QuantityAvailable *int64  `json:"quantity_available" binding:"required,min=0"`
	ReorderLevel      *int64  `json:"reorder_level" binding:"omitempty,min=0"`
	SupplierID        *string `json:"supplier_id"`
}

// NullableString distingue um campo ausente de um campo enviado como null
type NullableString struct {
	Set   bool
	Value *string
}

// UnmarshalJSON implementa json.Unmarshaler
func (n *NullableString) UnmarshalJSON(data []byte) error {
	n.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		n.Value = nil
		return nil
	}
	var v string
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	n.Value = &v
	return nil
}

// ProductUpdateRequest representa a atualização parcial de produto; campos ausentes não mudam
type ProductUpdateRequest struct {
	Name              *string        `json:"name"`
	SKU               *string        `json:"sku"`
	UnitPriceCents    *int64         `json:"unit_price_cents" binding:"omitempty,min=0"`
	QuantityAvailable *int64         `json:"quantity_available" binding:"omitempty,min=0"`
	ReorderLevel      *int64         `json:"reorder_level" binding:"omitempty,min=0"`
	SupplierID        NullableString `json:"supplier_id" swaggertype:"string"`
}

// ToPatch converte a requisição em product.Patch
func (r ProductUpdateRequest) ToPatch() product.Patch {
	patch := product.Patch{
		Name:              r.Name,
		SKU:               r.SKU,
		UnitPriceCents:    r.UnitPriceCents,
		QuantityAvailable: r.QuantityAvailable,
		ReorderLevel:      r.ReorderLevel,
	}
	if r.SupplierID.Set {
		if r.SupplierID.Value == nil {
			patch.ClearSupplier = true
		} else {
			patch.SupplierID = r.SupplierID.Value
		}
	}
	return patch
}

// ProductResponse representa a resposta de produto
type ProductResponse struct {
	ID                string            `json:"id"`
	Name              string            `json:"name"`
	SKU               string            `json:"sku"`
	UnitPriceCents    int64             `json:"unit_price_cents"`
	QuantityAvailable int64             `json:"quantity_available"`
	ReorderLevel      int64             `json:"reorder_level"`
	SupplierID        *string           `json:"supplier_id"`
	Supplier          *SupplierResponse `json:"supplier"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`
}

// ToProductResponse converte um produto em resposta
func ToProductResponse(p *product.Product) ProductResponse {
	resp := ProductResponse{
		ID:                p.ID,
		Name:              p.Name,
		SKU:               p.SKU,
		UnitPriceCents:    p.UnitPriceCents,
		QuantityAvailable: p.QuantityAvailable,
		ReorderLevel:      p.ReorderLevel,
		SupplierID:        p.SupplierID,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
	if p.Supplier != nil {
		s := ToSupplierResponse(p.Supplier)
		resp.Supplier = &s
	}
	return resp
}

// ToProductResponses converte uma lista de produtos
func ToProductResponses(products []*product.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, ToProductResponse(p))
	}
	return out
}
