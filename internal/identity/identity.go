// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package identity owns authentication, the current principal and the
// persisted accounts collection, including the admin-only account
// management operations. Accounts sit outside the ownership model that
// governs products and categories.
package identity

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ihuza/ihuza-go/internal/auth"
	"github.com/ihuza/ihuza-go/internal/config"
	"github.com/ihuza/ihuza-go/internal/model"
	"github.com/ihuza/ihuza-go/internal/store"
)

// ReservedAdminID is the fixed id of the reserved admin account. The
// account is a well-known constant record merged into authentication
// lookup; it is never a row in the accounts collection and is excluded
// from listings and account management.
const ReservedAdminID = "admin-001"

// Service authenticates principals and manages the accounts collection.
// The mutex serializes read-modify-persist cycles within this process
// only. It adds no cross-process coordination.
type Service struct {
	mu        sync.Mutex
	store     *store.Store
	cfg       *config.Config
	admin     model.Account
	adminHash string
	accounts  []model.Account

	now func() time.Time // test hook
}

// New loads the accounts collection and prepares the reserved admin
// record from configuration. An absent or corrupt collection starts empty.
func New(st *store.Store, cfg *config.Config) (*Service, error) {
	adminHash, err := auth.HashPassword(cfg.AdminPassword)
	if err != nil {
		return nil, fmt.Errorf("hashing admin credential: %w", err)
	}

	s := &Service{
		store: st,
		cfg:   cfg,
		admin: model.Account{
			ID:    ReservedAdminID,
			Name:  cfg.AdminName,
			Email: cfg.AdminEmail,
			Role:  model.RoleAdmin,
		},
		adminHash: adminHash,
		now:       time.Now,
	}

	if !st.Load(store.KeyAccounts, &s.accounts) {
		s.accounts = []model.Account{}
	}

	return s, nil
}

// Authenticate checks the credentials against the reserved admin first and
// then against the registered accounts. On success it persists the
// sanitized principal so it survives a restart and returns a live session.
// On failure the current principal is left untouched.
func (s *Service) Authenticate(email, password string) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if email == s.admin.Email {
		ok, err := auth.CheckPassword(password, s.adminHash)
		if err == nil && ok {
			s.persistPrincipal(s.admin)
			slog.Info("admin signed in", "email", email)
			return &Session{Account: s.admin}, true
		}
		slog.Warn("failed login attempt", "email", email)
		return nil, false
	}

	for i := range s.accounts {
		acc := &s.accounts[i]
		if acc.Email != email {
			continue
		}
		ok, err := auth.CheckPassword(password, acc.PasswordHash)
		if err != nil || !ok {
			break
		}

		now := s.now()
		acc.LastLogin = &now
		if auth.NeedsRehash(acc.PasswordHash) {
			if rehashed, err := auth.HashPassword(password); err == nil {
				acc.PasswordHash = rehashed
			}
		}
		if err := s.store.Save(store.KeyAccounts, s.accounts); err != nil {
			slog.Error("persisting accounts after login", "error", err)
		}

		s.persistPrincipal(*acc)
		slog.Info("user signed in", "email", email, "id", acc.ID)
		return &Session{Account: acc.Sanitized()}, true
	}

	slog.Warn("failed login attempt", "email", email)
	return nil, false
}

// Register creates a new account with role user and signs the caller in as
// that account. The reserved admin email can never be claimed and emails
// must be unique (case-sensitive). Failures leave the collection unchanged.
func (s *Service) Register(name, email, password string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if name == "" || email == "" || password == "" {
		return nil, ErrMissingField
	}
	if email == s.admin.Email {
		return nil, ErrEmailReserved
	}
	if s.findByEmail(email) >= 0 {
		return nil, ErrEmailTaken
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hashing credential: %w", err)
	}

	now := s.now()
	acc := model.Account{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         model.RoleUser,
		CreatedAt:    now,
		LastLogin:    &now,
	}

	s.accounts = append(s.accounts, acc)
	if err := s.store.Save(store.KeyAccounts, s.accounts); err != nil {
		s.accounts = s.accounts[:len(s.accounts)-1]
		return nil, fmt.Errorf("persisting accounts: %w", err)
	}

	// Registration doubles as login.
	s.persistPrincipal(acc)
	slog.Info("account registered", "email", email, "id", acc.ID)
	return &Session{Account: acc.Sanitized()}, nil
}

// SignOut clears the persisted principal. Idempotent; the caller drops its
// session reference.
func (s *Service) SignOut() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Remove(store.KeyPrincipal); err != nil {
		slog.Error("clearing persisted principal", "error", err)
	}
}

// Restore rebuilds the session from the persisted principal, if any.
// Called once at startup so a sign-in survives a restart.
func (s *Service) Restore() (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var acc model.Account
	if !s.store.Load(store.KeyPrincipal, &acc) {
		return nil, false
	}

	// The reserved admin is rebuilt from configuration, a registered
	// account from its current row. A principal whose account no longer
	// exists is dropped.
	if acc.ID == ReservedAdminID {
		return &Session{Account: s.admin}, true
	}
	for i := range s.accounts {
		if s.accounts[i].ID == acc.ID {
			return &Session{Account: s.accounts[i].Sanitized()}, true
		}
	}
	return nil, false
}

// IsAccountActive classifies an account as active when its last login falls
// within the configured activity window. Pure function of its arguments and
// the window; nil means the account never signed in.
func (s *Service) IsAccountActive(lastLogin *time.Time, now time.Time) bool {
	if lastLogin == nil {
		return false
	}
	window := time.Duration(s.cfg.ActiveWindowDays) * 24 * time.Hour
	return now.Sub(*lastLogin) <= window
}

// ListAccounts returns sanitized copies of all registered accounts for an
// admin caller and an empty slice for everyone else. The reserved admin is
// never listed.
func (s *Service) ListAccounts(sess *Session) []model.Account {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !sess.IsAdmin() {
		return []model.Account{}
	}

	out := make([]model.Account, 0, len(s.accounts))
	for _, acc := range s.accounts {
		out = append(out, acc.Sanitized())
	}
	return out
}

// AccountCount returns the number of registered accounts for an admin
// caller and 0 for everyone else. Used by the dashboard stats.
func (s *Service) AccountCount(sess *Session) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !sess.IsAdmin() {
		return 0
	}
	return len(s.accounts)
}

// AccountPatch carries partial account data for updates. Nil fields are
// left unchanged; id and creation time are never updatable.
type AccountPatch struct {
	Name     *string
	Email    *string
	Password *string
	Role     *string
}

// CreateAccount adds a registered account with an explicitly chosen role.
// Admin-only.
func (s *Service) CreateAccount(sess *Session, name, email, password, role string) (model.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !sess.IsAdmin() {
		slog.Warn("denied account create", "caller", sess.AccountID())
		return model.Account{}, ErrDenied
	}
	if name == "" || email == "" || password == "" {
		return model.Account{}, ErrMissingField
	}
	if role != model.RoleAdmin && role != model.RoleUser {
		return model.Account{}, ErrInvalidRole
	}
	if email == s.admin.Email {
		return model.Account{}, ErrEmailReserved
	}
	if s.findByEmail(email) >= 0 {
		return model.Account{}, ErrEmailTaken
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return model.Account{}, fmt.Errorf("hashing credential: %w", err)
	}

	acc := model.Account{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    s.now(),
	}

	s.accounts = append(s.accounts, acc)
	if err := s.store.Save(store.KeyAccounts, s.accounts); err != nil {
		s.accounts = s.accounts[:len(s.accounts)-1]
		return model.Account{}, fmt.Errorf("persisting accounts: %w", err)
	}

	slog.Info("account created", "email", email, "id", acc.ID, "role", role)
	return acc.Sanitized(), nil
}

// UpdateAccount merges a partial patch into an account. Admin-only.
func (s *Service) UpdateAccount(sess *Session, id string, patch AccountPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !sess.IsAdmin() {
		slog.Warn("denied account update", "caller", sess.AccountID(), "target", id)
		return ErrDenied
	}

	idx := s.findByID(id)
	if idx < 0 {
		return ErrNotFound
	}
	acc := s.accounts[idx]

	if patch.Email != nil && *patch.Email != acc.Email {
		if *patch.Email == s.admin.Email {
			return ErrEmailReserved
		}
		if s.findByEmail(*patch.Email) >= 0 {
			return ErrEmailTaken
		}
		acc.Email = *patch.Email
	}
	if patch.Name != nil {
		if *patch.Name == "" {
			return ErrMissingField
		}
		acc.Name = *patch.Name
	}
	if patch.Role != nil {
		if *patch.Role != model.RoleAdmin && *patch.Role != model.RoleUser {
			return ErrInvalidRole
		}
		acc.Role = *patch.Role
	}
	if patch.Password != nil {
		if *patch.Password == "" {
			return ErrMissingField
		}
		hash, err := auth.HashPassword(*patch.Password)
		if err != nil {
			return fmt.Errorf("hashing credential: %w", err)
		}
		acc.PasswordHash = hash
	}

	s.accounts[idx] = acc
	if err := s.store.Save(store.KeyAccounts, s.accounts); err != nil {
		return fmt.Errorf("persisting accounts: %w", err)
	}
	return nil
}

// DeleteAccount removes a registered account. Admin-only; deleting the
// caller's own account is rejected before any mutation.
func (s *Service) DeleteAccount(sess *Session, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !sess.IsAdmin() {
		slog.Warn("denied account delete", "caller", sess.AccountID(), "target", id)
		return ErrDenied
	}
	if id == sess.AccountID() {
		slog.Warn("self-deletion rejected", "caller", sess.AccountID())
		return ErrSelfDelete
	}

	idx := s.findByID(id)
	if idx < 0 {
		return ErrNotFound
	}

	s.accounts = append(s.accounts[:idx], s.accounts[idx+1:]...)
	if err := s.store.Save(store.KeyAccounts, s.accounts); err != nil {
		return fmt.Errorf("persisting accounts: %w", err)
	}

	slog.Info("account deleted", "id", id)
	return nil
}

// AccountByID returns a sanitized account. Admin-only; non-admin callers
// get ErrDenied regardless of whether the account exists.
func (s *Service) AccountByID(sess *Session, id string) (model.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !sess.IsAdmin() {
		return model.Account{}, ErrDenied
	}

	idx := s.findByID(id)
	if idx < 0 {
		return model.Account{}, ErrNotFound
	}
	return s.accounts[idx].Sanitized(), nil
}

// persistPrincipal writes the sanitized account under the principal key.
// Caller holds the mutex.
func (s *Service) persistPrincipal(acc model.Account) {
	if err := s.store.Save(store.KeyPrincipal, acc.Sanitized()); err != nil {
		slog.Error("persisting principal", "error", err)
	}
}

// findByEmail returns the index of the account with the given email, or -1.
// Matching is exact and case-sensitive. Caller holds the mutex.
func (s *Service) findByEmail(email string) int {
	for i := range s.accounts {
		if s.accounts[i].Email == email {
			return i
		}
	}
	return -1
}

// findByID returns the index of the account with the given id, or -1.
// Caller holds the mutex.
func (s *Service) findByID(id string) int {
	for i := range s.accounts {
		if s.accounts[i].ID == id {
			return i
		}
	}
	return -1
}
