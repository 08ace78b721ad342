package sale

import (
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/hugohenrick/rms-api/internal/domain/customer"
	"github.com/hugohenrick/rms-api/internal/domain/product"
	"github.com/hugohenrick/rms-api/pkg/apperr"
	"github.com/shopspring/decimal"
)

var (
	ErrNoItems  = apperr.InvalidRequest("sale must contain at least one item")
	ErrOverflow = apperr.InvalidRequest("sale amount is too large")
	ErrNotFound = apperr.NotFound("sale not found")
)

// Item representa uma linha de venda com o preço capturado no momento da venda
type Item struct {
	ID             string `json:"id"`
	SaleID         string `json:"sale_id"`
	ProductID      string `json:"product_id"`
	LineNo         int    `json:"line_no"`
	UnitPriceCents int64  `json:"unit_price_cents"`
	Quantity       int64  `json:"quantity"`
	LineTotalCents int64  `json:"line_total_cents"`
}

// Sale representa uma venda imutável e seus itens
type Sale struct {
	ID            string             `json:"id"`
	CustomerID    *string            `json:"customer_id"`
	Customer      *customer.Customer `json:"customer,omitempty"`
	SubtotalCents int64              `json:"subtotal_cents"`
	TaxCents      int64              `json:"tax_cents"`
	TotalCents    int64              `json:"total_cents"`
	CreatedAt     time.Time          `json:"created_at"`
	Items         []Item             `json:"items"`
}

// ItemRequest é um par (produto, quantidade) solicitado
type ItemRequest struct {
	ProductID string
	Quantity  int64
}

// CreateRequest agrupa os dados de entrada de uma venda
type CreateRequest struct {
	CustomerID     *string
	Items          []ItemRequest
	IdempotencyKey string
}

// NewSale cria uma venda vazia para o cliente informado
func NewSale(customerID *string, now time.Time) *Sale {
	return &Sale{
		ID:         uuid.New().String(),
		CustomerID: customerID,
		CreatedAt:  now.UTC(),
		Items:      []Item{},
	}
}

// AddLine adiciona um item capturando o preço atual do produto e acumula o subtotal
func (s *Sale) AddLine(p *product.Product, quantity int64) error {
	line, ok := mul(p.UnitPriceCents, quantity)
	if !ok {
		return ErrOverflow
	}
	subtotal, ok := add(s.SubtotalCents, line)
	if !ok {
		return ErrOverflow
	}

	s.Items = append(s.Items, Item{
		ID:             uuid.New().String(),
		SaleID:         s.ID,
		ProductID:      p.ID,
		LineNo:         len(s.Items) + 1,
		UnitPriceCents: p.UnitPriceCents,
		Quantity:       quantity,
		LineTotalCents: line,
	})
	s.SubtotalCents = subtotal
	return nil
}

// Finalize calcula imposto e total a partir do subtotal
func (s *Sale) Finalize(rate decimal.Decimal) error {
	tax := Tax(s.SubtotalCents, rate)
	total, ok := add(s.SubtotalCents, tax)
	if !ok {
		return ErrOverflow
	}
	s.TaxCents = tax
	s.TotalCents = total
	return nil
}

// Tax retorna floor(subtotal × rate) em centavos
func Tax(subtotalCents int64, rate decimal.Decimal) int64 {
	return decimal.NewFromInt(subtotalCents).Mul(rate).Floor().IntPart()
}

func mul(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	if a < 0 || b < 0 || a > math.MaxInt64/b {
		return 0, false
	}
	return a * b, true
}

func add(a, b int64) (int64, bool) {
	if b > 0 && a > math.MaxInt64-b {
		return 0, false
	}
	return a + b, true
}
