// Package memory implementa os repositórios em memória, usados para execução
// local sem banco de dados e como base dos testes.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/hugohenrick/rms-api/internal/domain/customer"
	"github.com/hugohenrick/rms-api/internal/domain/product"
	"github.com/hugohenrick/rms-api/internal/domain/report"
	"github.com/hugohenrick/rms-api/internal/domain/sale"
	"github.com/hugohenrick/rms-api/internal/domain/supplier"
	"github.com/hugohenrick/rms-api/pkg/apperr"
)

// Store guarda todas as entidades. Escritas são serializadas por um único
// bloqueio de escrita; leituras veem apenas dados confirmados.
type Store struct {
	sem         chan struct{}
	lockTimeout time.Duration

	mu          sync.RWMutex
	suppliers   map[string]*supplier.Supplier
	products    map[string]*product.Product
	customers   map[string]*customer.Customer
	sales       map[string]*sale.Sale
	idempotency map[string]string
}

// NewStore cria um Store vazio. lockTimeout limita a espera pelo bloqueio de escrita; zero espera indefinidamente.
func NewStore(lockTimeout time.Duration) *Store {
	return &Store{
		sem:         make(chan struct{}, 1),
		lockTimeout: lockTimeout,
		suppliers:   make(map[string]*supplier.Supplier),
		products:    make(map[string]*product.Product),
		customers:   make(map[string]*customer.Customer),
		sales:       make(map[string]*sale.Sale),
		idempotency: make(map[string]string),
	}
}

// Suppliers retorna o repositório de fornecedores
func (s *Store) Suppliers() supplier.Repository { return &supplierRepo{s: s} }

// Products retorna o repositório de produtos
func (s *Store) Products() product.Repository { return &productRepo{s: s} }

// Customers retorna o repositório de clientes
func (s *Store) Customers() customer.Repository { return &customerRepo{s: s} }

// Sales retorna o repositório de vendas
func (s *Store) Sales() sale.Repository { return &saleRepo{s: s} }

// Reports retorna o repositório de relatórios
func (s *Store) Reports() report.Repository { return &reportRepo{s: s} }

// Ping sempre responde; existe para o health check
func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

// acquire obtém o bloqueio de escrita respeitando o timeout e o contexto
func (s *Store) acquire(ctx context.Context) error {
	// Prazo já expirado não disputa o bloqueio
	if err := ctx.Err(); err != nil {
		return err
	}

	var timeout <-chan time.Time
	if s.lockTimeout > 0 {
		timer := time.NewTimer(s.lockTimeout)
		defer timer.Stop()
		timeout = timer.C
	}

	select {
	case s.sem <- struct{}{}:
		return nil
	case <-timeout:
		return apperr.Retry(nil, "timed out waiting for a locked row, retry the request")
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Store) release() {
	<-s.sem
}

// write executa fn com o bloqueio de escrita e o mutex de dados
func (s *Store) write(ctx context.Context, fn func() error) error {
	if err := s.acquire(ctx); err != nil {
		return err
	}
	defer s.release()

	s.mu.Lock()
	defer s.mu.Unlock()
	return fn()
}

// productView copia o produto anexando o fornecedor atual; requer s.mu
func (s *Store) productView(p *product.Product) *product.Product {
	cp := *p
	cp.Supplier = nil
	if p.SupplierID != nil {
		id := *p.SupplierID
		cp.SupplierID = &id
		if sup, ok := s.suppliers[id]; ok {
			supCopy := *sup
			cp.Supplier = &supCopy
		}
	}
	return &cp
}

// saleView copia a venda anexando o cliente; requer s.mu
func (s *Store) saleView(sl *sale.Sale) *sale.Sale {
	cp := *sl
	cp.Items = append([]sale.Item{}, sl.Items...)
	cp.Customer = nil
	if sl.CustomerID != nil {
		id := *sl.CustomerID
		cp.CustomerID = &id
		if c, ok := s.customers[id]; ok {
			cc := copyCustomer(c)
			cp.Customer = cc
		}
	}
	return &cp
}

func copyCustomer(c *customer.Customer) *customer.Customer {
	cp := *c
	if c.Email != nil {
		e := *c.Email
		cp.Email = &e
	}
	return &cp
}

func (s *Store) productReferenced(id string) bool {
	for _, sl := range s.sales {
		for _, it := range sl.Items {
			if it.ProductID == id {
				return true
			}
		}
	}
	return false
}

func (s *Store) skuTaken(sku, exceptID string) bool {
	for _, p := range s.products {
		if p.SKU == sku && p.ID != exceptID {
			return true
		}
	}
	return false
}

// page aplica offset e limit a uma lista já ordenada
func page[T any](items []T, limit, offset int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit >= 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

func sortProducts(products []*product.Product, less func(a, b *product.Product) bool) {
	sort.SliceStable(products, func(i, j int) bool { return less(products[i], products[j]) })
}
