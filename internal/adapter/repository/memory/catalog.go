package memory

import (
	"context"
	"sort"

	"github.com/hugohenrick/rms-api/internal/domain/customer"
	"github.com/hugohenrick/rms-api/internal/domain/product"
	"github.com/hugohenrick/rms-api/internal/domain/supplier"
)

type supplierRepo struct{ s *Store }

func (r *supplierRepo) Create(ctx context.Context, sup *supplier.Supplier) error {
	return r.s.write(ctx, func() error {
		cp := *sup
		r.s.suppliers[sup.ID] = &cp
		return nil
	})
}

func (r *supplierRepo) FindByID(ctx context.Context, id string) (*supplier.Supplier, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	sup, ok := r.s.suppliers[id]
	if !ok {
		return nil, supplier.ErrNotFound
	}
	cp := *sup
	return &cp, nil
}

func (r *supplierRepo) List(ctx context.Context, limit, offset int) ([]*supplier.Supplier, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	all := make([]*supplier.Supplier, 0, len(r.s.suppliers))
	for _, sup := range r.s.suppliers {
		cp := *sup
		all = append(all, &cp)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].Name != all[j].Name {
			return all[i].Name < all[j].Name
		}
		return all[i].ID < all[j].ID
	})

	return page(all, limit, offset), nil
}

type productRepo struct{ s *Store }

func (r *productRepo) Create(ctx context.Context, p *product.Product) error {
	return r.s.write(ctx, func() error {
		if r.s.skuTaken(p.SKU, "") {
			return product.ErrDuplicateSKU
		}
		if p.SupplierID != nil {
			if _, ok := r.s.suppliers[*p.SupplierID]; !ok {
				return product.ErrUnknownSupplier
			}
		}

		cp := *p
		cp.Supplier = nil
		r.s.products[p.ID] = &cp
		return nil
	})
}

func (r *productRepo) FindByID(ctx context.Context, id string) (*product.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.products[id]
	if !ok {
		return nil, product.ErrNotFound
	}
	return r.s.productView(p), nil
}

func (r *productRepo) List(ctx context.Context, limit, offset int) ([]*product.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	all := make([]*product.Product, 0, len(r.s.products))
	for _, p := range r.s.products {
		all = append(all, r.s.productView(p))
	}
	sortProducts(all, func(a, b *product.Product) bool {
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.ID < b.ID
	})

	return page(all, limit, offset), nil
}

func (r *productRepo) Update(ctx context.Context, id string, patch product.Patch) (*product.Product, error) {
	var updated *product.Product
	err := r.s.write(ctx, func() error {
		stored, ok := r.s.products[id]
		if !ok {
			return product.ErrNotFound
		}

		next := *stored
		if err := next.Apply(patch); err != nil {
			return err
		}
		if r.s.skuTaken(next.SKU, id) {
			return product.ErrDuplicateSKU
		}
		if next.SupplierID != nil {
			if _, ok := r.s.suppliers[*next.SupplierID]; !ok {
				return product.ErrUnknownSupplier
			}
		}

		next.Supplier = nil
		r.s.products[id] = &next
		updated = r.s.productView(&next)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *productRepo) Delete(ctx context.Context, id string) error {
	return r.s.write(ctx, func() error {
		if _, ok := r.s.products[id]; !ok {
			return product.ErrNotFound
		}
		if r.s.productReferenced(id) {
			return product.ErrReferencedBySales
		}
		delete(r.s.products, id)
		return nil
	})
}

type customerRepo struct{ s *Store }

func (r *customerRepo) Create(ctx context.Context, c *customer.Customer) error {
	return r.s.write(ctx, func() error {
		if c.Email != nil {
			for _, other := range r.s.customers {
				if other.Email != nil && *other.Email == *c.Email {
					return customer.ErrDuplicateEmail
				}
			}
		}
		r.s.customers[c.ID] = copyCustomer(c)
		return nil
	})
}

func (r *customerRepo) FindByID(ctx context.Context, id string) (*customer.Customer, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	c, ok := r.s.customers[id]
	if !ok {
		return nil, customer.ErrNotFound
	}
	return copyCustomer(c), nil
}

func (r *customerRepo) List(ctx context.Context, limit, offset int) ([]*customer.Customer, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	all := make([]*customer.Customer, 0, len(r.s.customers))
	for _, c := range r.s.customers {
		all = append(all, copyCustomer(c))
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].Name != all[j].Name {
			return all[i].Name < all[j].Name
		}
		return all[i].ID < all[j].ID
	})

	return page(all, limit, offset), nil
}
