// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package inventory is the scoped data store over products and categories.
// Both collections are held fully in memory and re-serialized wholesale on
// every mutation. Visibility is recomputed on every read as a pure function
// of (full collection, session): admins see everything, other principals
// see only the records they own. Nothing caches a filtered copy.
package inventory

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/ihuza/ihuza-go/internal/config"
	"github.com/ihuza/ihuza-go/internal/identity"
	"github.com/ihuza/ihuza-go/internal/model"
	"github.com/ihuza/ihuza-go/internal/store"
)

// AccountCounter reports the number of registered accounts visible to a
// session. Implemented by the identity service.
type AccountCounter interface {
	AccountCount(sess *identity.Session) int
}

// Service owns the products and categories collections.
type Service struct {
	mu         sync.Mutex
	store      *store.Store
	cfg        *config.Config
	accounts   AccountCounter
	products   []model.Product
	categories []model.Category

	now func() time.Time // test hook
}

// New seeds absent collections with sample data (when enabled) and loads
// both into memory for the lifetime of the process.
func New(st *store.Store, cfg *config.Config, accounts AccountCounter) (*Service, error) {
	if cfg.DoSeed {
		if err := store.EnsureSeed(st, identity.ReservedAdminID); err != nil {
			return nil, err
		}
	}

	s := &Service{
		store:    st,
		cfg:      cfg,
		accounts: accounts,
		now:      time.Now,
	}

	if !st.Load(store.KeyProducts, &s.products) {
		s.products = []model.Product{}
	}
	if !st.Load(store.KeyCategories, &s.categories) {
		s.categories = []model.Category{}
	}

	return s, nil
}

// canMutate reports whether the session may read or mutate a record owned
// by ownerID.
func canMutate(sess *identity.Session, ownerID string) bool {
	if sess == nil {
		return false
	}
	return sess.IsAdmin() || sess.AccountID() == ownerID
}

// Products returns the visible view of the products collection: everything
// for an admin, the caller's own records otherwise, nothing when signed out.
func (s *Service) Products(sess *identity.Session) []model.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Product, 0, len(s.products))
	for _, p := range s.products {
		if canMutate(sess, p.OwnerID) {
			out = append(out, p)
		}
	}
	return out
}

// Categories returns the visible view of the categories collection.
func (s *Service) Categories(sess *identity.Session) []model.Category {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Category, 0, len(s.categories))
	for _, c := range s.categories {
		if canMutate(sess, c.OwnerID) {
			out = append(out, c)
		}
	}
	return out
}

// ProductInput carries caller-supplied fields for a new product. Status is
// derived from the quantity, never taken from the caller.
type ProductInput struct {
	Name        string
	Category    string
	Quantity    int
	Price       float64
	SKU         string
	Description string
}

// CreateProduct stamps id, owner and creation time, appends the product and
// persists the collection. Any signed-in principal may create records it
// will own.
func (s *Service) CreateProduct(sess *identity.Session, in ProductInput) (model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess == nil {
		return model.Product{}, ErrDenied
	}
	if in.Name == "" {
		return model.Product{}, ErrMissingField
	}
	if in.Quantity < 0 || in.Price < 0 {
		return model.Product{}, ErrInvalidValue
	}

	p := model.Product{
		ID:          newID(),
		Name:        in.Name,
		Category:    in.Category,
		Quantity:    in.Quantity,
		Price:       in.Price,
		Status:      model.StatusFor(in.Quantity, s.cfg.LowStockThreshold),
		SKU:         in.SKU,
		Description: in.Description,
		OwnerID:     sess.AccountID(),
		CreatedAt:   s.now(),
	}

	s.products = append(s.products, p)
	if err := s.store.Save(store.KeyProducts, s.products); err != nil {
		s.products = s.products[:len(s.products)-1]
		return model.Product{}, fmt.Errorf("persisting products: %w", err)
	}
	return p, nil
}

// ProductPatch carries partial product data for updates. Nil fields are
// left unchanged; id, owner and creation time are never updatable.
type ProductPatch struct {
	Name        *string
	Category    *string
	Quantity    *int
	Price       *float64
	SKU         *string
	Description *string
}

// UpdateProduct merges a patch into an existing product. Denied unless the
// caller is admin or the owner; a denial mutates and persists nothing.
func (s *Service) UpdateProduct(sess *identity.Session, id string, patch ProductPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i := range s.products {
		if s.products[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrNotFound
	}
	if !canMutate(sess, s.products[idx].OwnerID) {
		slog.Warn("denied product update", "caller", sess.AccountID(), "product", id)
		return ErrDenied
	}

	p := s.products[idx]
	if patch.Name != nil {
		if *patch.Name == "" {
			return ErrMissingField
		}
		p.Name = *patch.Name
	}
	if patch.Category != nil {
		p.Category = *patch.Category
	}
	if patch.Quantity != nil {
		if *patch.Quantity < 0 {
			return ErrInvalidValue
		}
		p.Quantity = *patch.Quantity
		p.Status = model.StatusFor(p.Quantity, s.cfg.LowStockThreshold)
	}
	if patch.Price != nil {
		if *patch.Price < 0 {
			return ErrInvalidValue
		}
		p.Price = *patch.Price
	}
	if patch.SKU != nil {
		p.SKU = *patch.SKU
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}

	s.products[idx] = p
	if err := s.store.Save(store.KeyProducts, s.products); err != nil {
		return fmt.Errorf("persisting products: %w", err)
	}
	return nil
}

// DeleteProduct removes a product. Same ownership check as update; deletion
// is hard, there is no tombstone.
func (s *Service) DeleteProduct(sess *identity.Session, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.products {
		if s.products[i].ID != id {
			continue
		}
		if !canMutate(sess, s.products[i].OwnerID) {
			slog.Warn("denied product delete", "caller", sess.AccountID(), "product", id)
			return ErrDenied
		}
		s.products = append(s.products[:i], s.products[i+1:]...)
		if err := s.store.Save(store.KeyProducts, s.products); err != nil {
			return fmt.Errorf("persisting products: %w", err)
		}
		return nil
	}
	return ErrNotFound
}

// ProductByID returns a product visible to the session. An existing record
// the caller may not see reports absent; existence is not leaked.
func (s *Service) ProductByID(sess *identity.Session, id string) (model.Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.products {
		if p.ID == id && canMutate(sess, p.OwnerID) {
			return p, true
		}
	}
	return model.Product{}, false
}

// CategoryInput carries caller-supplied fields for a new category.
type CategoryInput struct {
	Name        string
	Description string
}

// CreateCategory stamps id, owner and creation time and persists the
// collection. New categories start with a product count of zero; the
// counter is a display value and is never recomputed afterwards.
func (s *Service) CreateCategory(sess *identity.Session, in CategoryInput) (model.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess == nil {
		return model.Category{}, ErrDenied
	}
	if in.Name == "" {
		return model.Category{}, ErrMissingField
	}

	c := model.Category{
		ID:          newID(),
		Name:        in.Name,
		Description: in.Description,
		OwnerID:     sess.AccountID(),
		CreatedAt:   s.now(),
	}

	s.categories = append(s.categories, c)
	if err := s.store.Save(store.KeyCategories, s.categories); err != nil {
		s.categories = s.categories[:len(s.categories)-1]
		return model.Category{}, fmt.Errorf("persisting categories: %w", err)
	}
	return c, nil
}

// CategoryPatch carries partial category data for updates.
type CategoryPatch struct {
	Name        *string
	Description *string
}

// UpdateCategory merges a patch into an existing category under the same
// ownership rules as products.
func (s *Service) UpdateCategory(sess *identity.Session, id string, patch CategoryPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i := range s.categories {
		if s.categories[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrNotFound
	}
	if !canMutate(sess, s.categories[idx].OwnerID) {
		slog.Warn("denied category update", "caller", sess.AccountID(), "category", id)
		return ErrDenied
	}

	c := s.categories[idx]
	if patch.Name != nil {
		if *patch.Name == "" {
			return ErrMissingField
		}
		c.Name = *patch.Name
	}
	if patch.Description != nil {
		c.Description = *patch.Description
	}

	s.categories[idx] = c
	if err := s.store.Save(store.KeyCategories, s.categories); err != nil {
		return fmt.Errorf("persisting categories: %w", err)
	}
	return nil
}

// DeleteCategory removes a category under the same ownership rules as
// products.
func (s *Service) DeleteCategory(sess *identity.Session, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.categories {
		if s.categories[i].ID != id {
			continue
		}
		if !canMutate(sess, s.categories[i].OwnerID) {
			slog.Warn("denied category delete", "caller", sess.AccountID(), "category", id)
			return ErrDenied
		}
		s.categories = append(s.categories[:i], s.categories[i+1:]...)
		if err := s.store.Save(store.KeyCategories, s.categories); err != nil {
			return fmt.Errorf("persisting categories: %w", err)
		}
		return nil
	}
	return ErrNotFound
}

// CategoryByID returns a category visible to the session.
func (s *Service) CategoryByID(sess *identity.Session, id string) (model.Category, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range s.categories {
		if c.ID == id && canMutate(sess, c.OwnerID) {
			return c, true
		}
	}
	return model.Category{}, false
}

// Stats summarizes the records visible to the session. The account total
// comes from the identity service and is zero for non-admins.
func (s *Service) Stats(sess *identity.Session) model.Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := model.Stats{
		TotalUsers: s.accounts.AccountCount(sess),
	}
	for _, p := range s.products {
		if !canMutate(sess, p.OwnerID) {
			continue
		}
		stats.TotalProducts++
		if p.Quantity < s.cfg.LowStockThreshold {
			stats.LowStockCount++
		}
		stats.TotalValue += p.Price * float64(p.Quantity)
	}
	for _, c := range s.categories {
		if canMutate(sess, c.OwnerID) {
			stats.TotalCategories++
		}
	}
	return stats
}
