package service

import (
	"context"
	"errors"

	"github.com/natsalete/Password-Generator/internal/crypto"
	"github.com/natsalete/Password-Generator/internal/model"
	"github.com/natsalete/Password-Generator/internal/repository"
)

// PreferencesStore is the persistence PreferencesService needs.
type PreferencesStore interface {
	Get(ctx context.Context, accountID int64) (*model.Preferences, error)
	Upsert(ctx context.Context, p *model.Preferences) error
}

// PreferencesService loads and saves the generator settings of an account and
// generates passwords with them.
type PreferencesService struct {
	store     PreferencesStore
	generator *GeneratorService
}

func NewPreferencesService(store PreferencesStore, gen *GeneratorService) *PreferencesService {
	return &PreferencesService{store: store, generator: gen}
}

// Defaults are the preferences of an account that never saved any.
func (s *PreferencesService) Defaults(accountID int64) model.Preferences {
	sel := crypto.DefaultSelection()
	return model.Preferences{
		AccountID:      accountID,
		Length:         s.generator.Limits().DefaultLength,
		Uppercase:      sel.Uppercase,
		Lowercase:      sel.Lowercase,
		Digits:         sel.Digits,
		Symbols:        sel.Symbols,
		ExcludeSimilar: sel.ExcludeSimilar,
	}
}

// Load returns the saved preferences, falling back to Defaults.
// The boolean reports whether anything was saved.
func (s *PreferencesService) Load(ctx context.Context, accountID int64) (model.Preferences, bool, error) {
	p, err := s.store.Get(ctx, accountID)
	if err != nil {
		if errors.Is(err, repository.ErrPreferencesNotFound) {
			return s.Defaults(accountID), false, nil
		}
		return model.Preferences{}, false, err
	}
	return *p, true, nil
}

// Get returns the API form of the account's preferences.
func (s *PreferencesService) Get(ctx context.Context, accountID int64) (model.PreferencesResponse, error) {
	p, saved, err := s.Load(ctx, accountID)
	if err != nil {
		return model.PreferencesResponse{}, err
	}
	return toPreferencesResponse(p, saved), nil
}

// Save validates req the same way generation would and stores it.
func (s *PreferencesService) Save(ctx context.Context, accountID int64, req model.PreferencesRequest) (model.PreferencesResponse, error) {
	sel := crypto.Selection{
		Uppercase:      req.Uppercase,
		Lowercase:      req.Lowercase,
		Digits:         req.Digits,
		Symbols:        req.Symbols,
		ExcludeSimilar: req.ExcludeSimilar,
	}
	if !sel.Any() {
		return model.PreferencesResponse{}, crypto.ErrNoClassSelected
	}
	if crypto.BuildCharacterPool(sel) == "" {
		return model.PreferencesResponse{}, crypto.ErrEmptyPool
	}

	length := req.Length
	if length == 0 {
		length = s.generator.Limits().DefaultLength
	}
	if err := s.generator.CheckLength(length); err != nil {
		return model.PreferencesResponse{}, err
	}

	p := model.Preferences{
		AccountID:      accountID,
		Length:         length,
		Uppercase:      sel.Uppercase,
		Lowercase:      sel.Lowercase,
		Digits:         sel.Digits,
		Symbols:        sel.Symbols,
		ExcludeSimilar: sel.ExcludeSimilar,
	}
	if err := s.store.Upsert(ctx, &p); err != nil {
		return model.PreferencesResponse{}, err
	}

	// Re-read so UpdatedAt reflects the database clock.
	saved, err := s.store.Get(ctx, accountID)
	if err != nil {
		return model.PreferencesResponse{}, err
	}
	return toPreferencesResponse(*saved, true), nil
}

// Generate produces a password from the saved preferences, with any fields
// set in req taking precedence.
func (s *PreferencesService) Generate(ctx context.Context, accountID int64, req model.GenerateRequest) (model.GenerateResponse, error) {
	p, _, err := s.Load(ctx, accountID)
	if err != nil {
		return model.GenerateResponse{}, err
	}
	return s.generator.GenerateWith(p, req)
}

func toPreferencesResponse(p model.Preferences, saved bool) model.PreferencesResponse {
	resp := model.PreferencesResponse{
		Length:         p.Length,
		Uppercase:      p.Uppercase,
		Lowercase:      p.Lowercase,
		Digits:         p.Digits,
		Symbols:        p.Symbols,
		ExcludeSimilar: p.ExcludeSimilar,
		Saved:          saved,
	}
	if saved && !p.UpdatedAt.IsZero() {
		updated := p.UpdatedAt
		resp.UpdatedAt = &updated
	}
	return resp
}
