package checkout

import (
	"context"
	"errors"
	"time"

	"github.com/hugohenrick/rms-api/internal/domain/product"
	"github.com/hugohenrick/rms-api/internal/domain/sale"
	"github.com/hugohenrick/rms-api/pkg/apperr"
	"github.com/hugohenrick/rms-api/pkg/logger"
	"github.com/hugohenrick/rms-api/pkg/metrics"
	"github.com/shopspring/decimal"
)

// DefaultTaxRate é a alíquota aplicada sobre o subtotal
var DefaultTaxRate = decimal.RequireFromString("0.08")

// Service executa a transação de criação de venda
type Service struct {
	repo    sale.Repository
	taxRate decimal.Decimal
	logger  logger.Logger
	metrics *metrics.SaleMetrics
	now     func() time.Time
}

// NewService cria uma nova instância de Service
func NewService(repo sale.Repository, taxRate decimal.Decimal, log logger.Logger, m *metrics.SaleMetrics) *Service {
	return &Service{
		repo:    repo,
		taxRate: taxRate,
		logger:  log,
		metrics: m,
		now:     time.Now,
	}
}

// CreateSale valida o estoque, calcula os totais, grava a venda e baixa o estoque
// de forma atômica. replayed indica que a venda já existia para a chave de idempotência.
func (s *Service) CreateSale(ctx context.Context, req sale.CreateRequest) (created *sale.Sale, replayed bool, err error) {
	defer func() {
		switch {
		case err != nil:
			s.metrics.ObserveFailure(apperr.KindOf(err).String())
		case replayed:
			s.metrics.ObserveReplayed()
		default:
			s.metrics.ObserveCreated()
		}
	}()

	if len(req.Items) == 0 {
		return nil, false, sale.ErrNoItems
	}

	err = s.repo.WithinTx(ctx, func(ctx context.Context, tx sale.Tx) error {
		if req.IdempotencyKey != "" {
			saleID, claimed, err := tx.ClaimIdempotencyKey(ctx, req.IdempotencyKey)
			if err != nil {
				return err
			}
			if !claimed {
				found, err := tx.FindByID(ctx, saleID)
				if err != nil {
					return err
				}
				created, replayed = found, true
				return nil
			}
		}

		if req.CustomerID != nil {
			exists, err := tx.CustomerExists(ctx, *req.CustomerID)
			if err != nil {
				return err
			}
			if !exists {
				return apperr.NotFound("customer not found: id %s", *req.CustomerID)
			}
		}

		sl := sale.NewSale(req.CustomerID, s.now())

		// Cada produto é bloqueado uma única vez, na ordem em que aparece
		locked := make(map[string]*product.Product, len(req.Items))
		requested := make(map[string]int64, len(req.Items))
		order := make([]string, 0, len(req.Items))

		for _, item := range req.Items {
			if item.Quantity <= 0 {
				return apperr.InvalidRequest("item quantity must be positive: product %s", item.ProductID)
			}

			p, ok := locked[item.ProductID]
			if !ok {
				var lockErr error
				p, lockErr = tx.LockProduct(ctx, item.ProductID)
				if lockErr != nil {
					if errors.Is(lockErr, product.ErrNotFound) {
						return apperr.NotFound("product not found: id %s", item.ProductID)
					}
					return lockErr
				}
				locked[item.ProductID] = p
				order = append(order, item.ProductID)
			}

			remaining := p.QuantityAvailable - requested[item.ProductID]
			if item.Quantity > remaining {
				return apperr.Conflict("insufficient stock for %s (SKU: %s). Requested: %d, Available: %d",
					p.Name, p.SKU, item.Quantity, remaining)
			}
			requested[item.ProductID] += item.Quantity

			if err := sl.AddLine(p, item.Quantity); err != nil {
				return err
			}
		}

		if err := sl.Finalize(s.taxRate); err != nil {
			return err
		}

		if err := tx.InsertSale(ctx, sl); err != nil {
			return err
		}

		for _, productID := range order {
			if err := tx.DecrementStock(ctx, productID, requested[productID]); err != nil {
				return err
			}
		}

		if req.IdempotencyKey != "" {
			if err := tx.BindIdempotencyKey(ctx, req.IdempotencyKey, sl.ID); err != nil {
				return err
			}
		}

		found, err := tx.FindByID(ctx, sl.ID)
		if err != nil {
			return err
		}
		created = found
		return nil
	})
	if err != nil {
		if apperr.KindOf(err) == apperr.KindInternal {
			s.logger.Error("erro ao criar venda", "error", err)
		}
		return nil, false, err
	}

	if replayed {
		s.logger.Info("venda repetida por chave de idempotência", "sale_id", created.ID)
	} else {
		s.logger.Info("venda criada", "sale_id", created.ID, "items", len(created.Items), "total_cents", created.TotalCents)
	}

	return created, replayed, nil
}

// FindByID busca uma venda pelo ID
func (s *Service) FindByID(ctx context.Context, id string) (*sale.Sale, error) {
	return s.repo.FindByID(ctx, id)
}

// List lista as vendas da mais recente para a mais antiga
func (s *Service) List(ctx context.Context, limit, offset int) ([]*sale.Sale, error) {
	return s.repo.List(ctx, limit, offset)
}
