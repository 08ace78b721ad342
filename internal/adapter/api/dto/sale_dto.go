package dto

import (
	"time"

	"github.com/hugohenrick/rms-api/internal/domain/sale"
)

// SaleItemRequest representa um item solicitado na venda
type SaleItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int64  `json:"quantity"`
}

// SaleCreateRequest representa a requisição de criação de venda.
// Quantidades e lista vazia são validadas pelo motor de vendas.
type SaleCreateRequest struct {
	CustomerID *string           `json:"customer_id"`
	Items      []SaleItemRequest `json:"items" binding:"dive"`
}

// ToCreateRequest converte a requisição para o domínio
func (r SaleCreateRequest) ToCreateRequest(idempotencyKey string) sale.CreateRequest {
	items := make([]sale.ItemRequest, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, sale.ItemRequest{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	return sale.CreateRequest{
		CustomerID:     r.CustomerID,
		Items:          items,
		IdempotencyKey: idempotencyKey,
	}
}

// SaleItemResponse representa um item de venda
type SaleItemResponse struct {
	ID             string `json:"id"`
	ProductID      string `json:"product_id"`
	Quantity       int64  `json:"quantity"`
	UnitPriceCents int64  `json:"unit_price_cents"`
	LineTotalCents int64  `json:"line_total_cents"`
}

// SaleResponse representa a resposta de venda com itens e cliente
type SaleResponse struct {
	ID            string             `json:"id"`
	CustomerID    *string            `json:"customer_id"`
	Customer      *CustomerResponse  `json:"customer"`
	SubtotalCents int64              `json:"subtotal_cents"`
	TaxCents      int64              `json:"tax_cents"`
	TotalCents    int64              `json:"total_cents"`
	CreatedAt     time.Time          `json:"created_at"`
	Items         []SaleItemResponse `json:"items"`
}

// ToSaleResponse converte uma venda em resposta
func ToSaleResponse(s *sale.Sale) SaleResponse {
	resp := SaleResponse{
		ID:            s.ID,
		CustomerID:    s.CustomerID,
		SubtotalCents: s.SubtotalCents,
		TaxCents:      s.TaxCents,
		TotalCents:    s.TotalCents,
		CreatedAt:     s.CreatedAt,
		Items:         make([]SaleItemResponse, 0, len(s.Items)),
	}
	if s.Customer != nil {
		c := ToCustomerResponse(s.Customer)
		resp.Customer = &c
	}
	for _, it := range s.Items {
		resp.Items = append(resp.Items, SaleItemResponse{
			ID:             it.ID,
			ProductID:      it.ProductID,
			Quantity:       it.Quantity,
			UnitPriceCents: it.UnitPriceCents,
			LineTotalCents: it.LineTotalCents,
		})
	}
	return resp
}

// ToSaleResponses converte uma lista de vendas
func ToSaleResponses(sales []*sale.Sale) []SaleResponse {
	out := make([]SaleResponse, 0, len(sales))
	for _, s := range sales {
		out = append(out, ToSaleResponse(s))
	}
	return out
}
