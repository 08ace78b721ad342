package product

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hugohenrick/rms-api/internal/domain/supplier"
	"github.com/hugohenrick/rms-api/pkg/apperr"
)

// DefaultReorderLevel é o limite de reposição usado quando nenhum é informado
const DefaultReorderLevel int64 = 10

var (
	ErrEmptyName            = apperr.InvalidRequest("product name must not be empty")
	ErrEmptySKU             = apperr.InvalidRequest("product sku must not be empty")
	ErrNegativePrice        = apperr.InvalidRequest("unit_price_cents must not be negative")
	ErrNegativeQuantity     = apperr.InvalidRequest("quantity_available must not be negative")
	ErrNegativeReorderLevel = apperr.InvalidRequest("reorder_level must not be negative")
	ErrUnknownSupplier      = apperr.InvalidRequest("supplier does not exist")
	ErrNotFound             = apperr.NotFound("product not found")
	ErrDuplicateSKU         = apperr.Conflict("product with this SKU already exists")
	ErrReferencedBySales    = apperr.Conflict("cannot delete product, it is associated with existing sales")
)

// Product representa um produto do estoque
type Product struct {
	ID                string             `json:"id"`
	Name              string             `json:"name"`
	SKU               string             `json:"sku"`
	UnitPriceCents    int64              `json:"unit_price_cents"`
	QuantityAvailable int64              `json:"quantity_available"`
	ReorderLevel      int64              `json:"reorder_level"`
	SupplierID        *string            `json:"supplier_id"`
	Supplier          *supplier.Supplier `json:"supplier,omitempty"`
	CreatedAt         time.Time          `json:"created_at"`
	UpdatedAt         time.Time          `json:"updated_at"`
}

// Patch descreve uma atualização parcial; campos nil não são alterados
type Patch struct {
	Name              *string
	SKU               *string
	UnitPriceCents    *int64
	QuantityAvailable *int64
	ReorderLevel      *int64
	SupplierID        *string
	ClearSupplier     bool
}

// NewProduct cria um novo produto validado
func NewProduct(name, sku string, unitPriceCents, quantityAvailable int64, reorderLevel *int64, supplierID *string) (*Product, error) {
	level := DefaultReorderLevel
	if reorderLevel != nil {
		level = *reorderLevel
	}

	now := time.Now().UTC()
	p := &Product{
		ID:                uuid.New().String(),
		Name:              strings.TrimSpace(name),
		SKU:               strings.TrimSpace(sku),
		UnitPriceCents:    unitPriceCents,
		QuantityAvailable: quantityAvailable,
		ReorderLevel:      level,
		SupplierID:        normalizeRef(supplierID),
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate verifica os invariantes do produto
func (p *Product) Validate() error {
	if p.Name == "" {
		return ErrEmptyName
	}
	if p.SKU == "" {
		return ErrEmptySKU
	}
	if p.UnitPriceCents < 0 {
		return ErrNegativePrice
	}
	if p.QuantityAvailable < 0 {
		return ErrNegativeQuantity
	}
	if p.ReorderLevel < 0 {
		return ErrNegativeReorderLevel
	}
	return nil
}

// Apply mescla o patch no produto. Em caso de erro o produto fica inalterado.
func (p *Product) Apply(patch Patch) error {
	next := *p

	if patch.Name != nil {
		next.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.SKU != nil {
		next.SKU = strings.TrimSpace(*patch.SKU)
	}
	if patch.UnitPriceCents != nil {
		next.UnitPriceCents = *patch.UnitPriceCents
	}
	if patch.QuantityAvailable != nil {
		next.QuantityAvailable = *patch.QuantityAvailable
	}
	if patch.ReorderLevel != nil {
		next.ReorderLevel = *patch.ReorderLevel
	}
	if patch.ClearSupplier {
		next.SupplierID = nil
		next.Supplier = nil
	} else if ref := normalizeRef(patch.SupplierID); ref != nil {
		if next.SupplierID == nil || *next.SupplierID != *ref {
			next.Supplier = nil
		}
		next.SupplierID = ref
	}

	if err := next.Validate(); err != nil {
		return err
	}

	next.UpdatedAt = time.Now().UTC()
	*p = next
	return nil
}

// IsLowStock indica se o produto está no limite informado ou, sem limite, no seu nível de reposição
func (p *Product) IsLowStock(threshold *int64) bool {
	if threshold != nil {
		return p.QuantityAvailable <= *threshold
	}
	return p.QuantityAvailable <= p.ReorderLevel
}

func normalizeRef(ref *string) *string {
	if ref == nil {
		return nil
	}
	v := strings.TrimSpace(*ref)
	if v == "" {
		return nil
	}
	return &v
}
