package account

import (
	"context"
	"errors"
	"strings"

	"github.com/carelink/carelink/internal/platform/auth"
	"github.com/carelink/carelink/internal/platform/httperr"
)

type Service struct {
	accounts Repository
	tokens   *auth.TokenService
}

func NewService(accounts Repository, tokens *auth.TokenService) *Service {
	return &Service{accounts: accounts, tokens: tokens}
}

// RegisterInput is the payload for account registration.
type RegisterInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

func (in *RegisterInput) validate() error {
	if strings.TrimSpace(in.Username) == "" {
		return httperr.Validationf("username is required")
	}
	if strings.TrimSpace(in.Name) == "" {
		return httperr.Validationf("name is required")
	}
	if !strings.Contains(in.Email, "@") {
		return httperr.Validationf("email is invalid")
	}
	if len(in.Password) < 8 {
		return httperr.Validationf("password must be at least 8 characters")
	}
	return nil
}

// Register creates an account with a bcrypt credential hash and issues a
// fresh token pair.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*Account, *auth.TokenPair, error) {
	if err := in.validate(); err != nil {
		return nil, nil, err
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, nil, err
	}

	a := &Account{
		Username:     strings.TrimSpace(in.Username),
		Email:        strings.TrimSpace(in.Email),
		PasswordHash: hash,
		DisplayName:  strings.TrimSpace(in.Name),
	}
	if err := s.accounts.Create(ctx, a); err != nil {
		return nil, nil, err
	}

	pair, err := s.tokens.IssuePair(a.ID)
	if err != nil {
		return nil, nil, err
	}
	return a, pair, nil
}

// Login verifies the credential and issues a fresh token pair. An unknown
// username and a wrong password produce the same error.
func (s *Service) Login(ctx context.Context, username, password string) (*Account, *auth.TokenPair, error) {
	a, err := s.accounts.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, httperr.ErrNotFound) {
			return nil, nil, httperr.Authenticationf("invalid credentials")
		}
		return nil, nil, err
	}
	if !auth.CheckPassword(a.PasswordHash, password) {
		return nil, nil, httperr.Authenticationf("invalid credentials")
	}

	pair, err := s.tokens.IssuePair(a.ID)
	if err != nil {
		return nil, nil, err
	}
	return a, pair, nil
}

// Refresh exchanges a valid refresh token for a fresh pair. The account must
// still exist.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*auth.TokenPair, error) {
	accountID, err := s.tokens.Verify(refreshToken, auth.TokenTypeRefresh)
	if err != nil {
		return nil, err
	}
	if _, err := s.accounts.GetByID(ctx, accountID); err != nil {
		if errors.Is(err, httperr.ErrNotFound) {
			return nil, httperr.Authenticationf("account no longer exists")
		}
		return nil, err
	}
	return s.tokens.IssuePair(accountID)
}
