package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/natsalete/Password-Generator/internal/crypto"
	"github.com/natsalete/Password-Generator/internal/model"
	"github.com/natsalete/Password-Generator/internal/repository"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailRequired      = errors.New("email is required")
	ErrPasswordRequired   = errors.New("password is required")
	ErrEmailTaken         = errors.New("email already taken")
)

// AccountStore is the persistence AccountService needs.
type AccountStore interface {
	Create(ctx context.Context, account *model.Account) error
	GetByEmail(ctx context.Context, email string) (*model.Account, error)
	GetByID(ctx context.Context, id int64) (*model.Account, error)
}

// AccountService registers accounts and issues session tokens.
type AccountService struct {
	store     AccountStore
	jwtSecret string
	jwtExpiry time.Duration
}

func NewAccountService(store AccountStore, secret string, expiry time.Duration) *AccountService {
	return &AccountService{
		store:     store,
		jwtSecret: secret,
		jwtExpiry: expiry,
	}
}

// Register creates an account and returns a session for it.
func (s *AccountService) Register(ctx context.Context, req model.RegisterRequest) (model.SessionResponse, error) {
	email := normalizeEmail(req.Email)
	if email == "" {
		return model.SessionResponse{}, ErrEmailRequired
	}
	if req.Password == "" {
		return model.SessionResponse{}, ErrPasswordRequired
	}

	hash, err := crypto.HashAccountPassword(req.Password)
	if err != nil {
		return model.SessionResponse{}, err
	}

	account := &model.Account{
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.store.Create(ctx, account); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return model.SessionResponse{}, ErrEmailTaken
		}
		return model.SessionResponse{}, err
	}

	return s.session(account)
}

// Login checks credentials and returns a new session.
func (s *AccountService) Login(ctx context.Context, req model.LoginRequest) (model.SessionResponse, error) {
	account, err := s.store.GetByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return model.SessionResponse{}, ErrInvalidCredentials
		}
		return model.SessionResponse{}, err
	}

	ok, err := crypto.CheckAccountPassword(req.Password, account.PasswordHash)
	if err != nil {
		return model.SessionResponse{}, err
	}
	if !ok {
		return model.SessionResponse{}, ErrInvalidCredentials
	}

	return s.session(account)
}

// Get returns the public view of an account.
func (s *AccountService) Get(ctx context.Context, id int64) (model.AccountResponse, error) {
	account, err := s.store.GetByID(ctx, id)
	if err != nil {
		return model.AccountResponse{}, err
	}
	return toAccountResponse(account), nil
}

func (s *AccountService) session(account *model.Account) (model.SessionResponse, error) {
	token, err := crypto.IssueSessionToken(account.ID, s.jwtSecret, s.jwtExpiry)
	if err != nil {
		return model.SessionResponse{}, err
	}
	return model.SessionResponse{Token: token, Account: toAccountResponse(account)}, nil
}

func toAccountResponse(a *model.Account) model.AccountResponse {
	return model.AccountResponse{ID: a.ID, Email: a.Email, CreatedAt: a.CreatedAt}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
