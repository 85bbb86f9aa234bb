package auth

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"staffsync/internal/domain/employees"
	"staffsync/internal/domain/session"
)

// Directory is the part of the employees service that sign-in depends on.
type Directory interface {
	GetByEmail(ctx context.Context, email string) (employees.Employee, error)
	GetOrCreateHRUser(ctx context.Context, accountID, email, displayName string) (employees.HRUser, error)
}

type Service struct {
	store     StoreAPI
	directory Directory
	sessions  session.Store
	Secret    string
	TokenTTL  time.Duration
	Now       func() time.Time
}

func NewService(store StoreAPI, directory Directory, sessions session.Store, secret string, ttl time.Duration) *Service {
	return &Service{
		store:     store,
		directory: directory,
		sessions:  sessions,
		Secret:    secret,
		TokenTTL:  ttl,
		Now:       time.Now,
	}
}

// Login verifies the password and signs the caller in to the given portal.
// Employee logins also record the session's logged-in employee pointer.
func (s *Service) Login(ctx context.Context, portal Portal, email, password string) (LoginResult, error) {
	if !portal.Valid() {
		return LoginResult{}, ErrInvalidPortal
	}
	acct, err := s.store.GetByEmail(ctx, email)
	if errors.Is(err, ErrAccountNotFound) {
		return LoginResult{}, ErrInvalidCredentials
	}
	if err != nil {
		return LoginResult{}, err
	}
	if err := CheckPassword(acct.PasswordHash, password); err != nil {
		return LoginResult{}, ErrInvalidCredentials
	}

	claims := Claims{
		UserID:    acct.ID,
		Email:     acct.Email,
		SessionID: uuid.NewString(),
	}
	var name string

	switch portal {
	case PortalHR:
		if acct.Role != RoleHR {
			return LoginResult{}, ErrWrongPortal
		}
		hr, err := s.directory.GetOrCreateHRUser(ctx, acct.ID, acct.Email, acct.DisplayName)
		if err != nil {
			return LoginResult{}, err
		}
		claims.Role = RoleHR
		name = hr.Name
	case PortalEmployee:
		emp, err := s.directory.GetByEmail(ctx, acct.Email)
		if errors.Is(err, employees.ErrNotFound) || (err == nil && emp.Role != employees.RoleEmployee) {
			return LoginResult{}, ErrNoEmployeeAccount
		}
		if err != nil {
			return LoginResult{}, err
		}
		if err := s.sessions.SetEmployee(ctx, claims.SessionID, emp.ID); err != nil {
			return LoginResult{}, err
		}
		claims.Role = RoleEmployee
		claims.EmployeeID = emp.ID
		name = emp.Name
	}

	token, err := GenerateToken(s.Secret, claims, s.TokenTTL)
	if err != nil {
		return LoginResult{}, err
	}
	now := s.Now().UTC()
	if err := s.store.TouchLogin(ctx, acct.ID, now); err != nil {
		slog.Warn("record last login failed", "err", err, "account", acct.ID)
	}

	return LoginResult{
		Token:      token,
		ExpiresAt:  now.Add(s.TokenTTL),
		Role:       claims.Role,
		UserID:     acct.ID,
		EmployeeID: claims.EmployeeID,
		Name:       name,
	}, nil
}

// Register creates the identity account for an employee HR has already
// added to the directory.
func (s *Service) Register(ctx context.Context, email, password, confirm string) (Account, error) {
	if password != confirm {
		return Account{}, ErrPasswordMismatch
	}
	if len(password) < minPasswordLength {
		return Account{}, ErrWeakPassword
	}
	emp, err := s.directory.GetByEmail(ctx, email)
	if errors.Is(err, employees.ErrNotFound) {
		return Account{}, ErrNotPreRegistered
	}
	if err != nil {
		return Account{}, err
	}
	return s.createAccount(ctx, email, password, emp.Name, emp.Role)
}

// EnsureHRAccount creates an HR identity account unless one exists. It
// reports whether a new account was created.
func (s *Service) EnsureHRAccount(ctx context.Context, email, password, name string) (Account, bool, error) {
	acct, err := s.store.GetByEmail(ctx, email)
	if err == nil {
		return acct, false, nil
	}
	if !errors.Is(err, ErrAccountNotFound) {
		return Account{}, false, err
	}
	acct, err = s.createAccount(ctx, email, password, name, RoleHR)
	if err != nil {
		return Account{}, false, err
	}
	return acct, true, nil
}

func (s *Service) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := s.sessions.Clear(ctx, sessionID); err != nil && !errors.Is(err, session.ErrNotFound) {
		return err
	}
	return nil
}

func (s *Service) createAccount(ctx context.Context, email, password, name, role string) (Account, error) {
	email = normalizeEmail(email)
	if _, err := s.store.GetByEmail(ctx, email); err == nil {
		return Account{}, ErrAccountExists
	} else if !errors.Is(err, ErrAccountNotFound) {
		return Account{}, err
	}

	hash, err := HashPassword(password)
	if err != nil {
		return Account{}, err
	}
	acct := Account{
		Email:        email,
		PasswordHash: hash,
		DisplayName:  strings.TrimSpace(name),
		Role:         role,
		CreatedAt:    s.Now().UTC(),
	}
	id, err := s.store.Create(ctx, acct)
	if err != nil {
		return Account{}, err
	}
	acct.ID = id
	return acct, nil
}

// SeedHRAccount adapts EnsureHRAccount for startup seeding.
func (s *Service) SeedHRAccount(ctx context.Context, email, password, name string) (bool, error) {
	_, created, err := s.EnsureHRAccount(ctx, email, password, name)
	return created, err
}
