package service

import (
	"context"
	"sync"
	"time"

	"github.com/natsalete/Password-Generator/internal/model"
	"github.com/natsalete/Password-Generator/internal/repository"
)

type memAccounts struct {
	mu     sync.Mutex
	nextID int64
	byID   map[int64]*model.Account
}

func newMemAccounts() *memAccounts {
	return &memAccounts{byID: make(map[int64]*model.Account)}
}

func (m *memAccounts) Create(_ context.Context, a *model.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.byID {
		if existing.Email == a.Email {
			return repository.ErrDuplicateEmail
		}
	}
	m.nextID++
	a.ID = m.nextID
	stored := *a
	m.byID[a.ID] = &stored
	return nil
}

func (m *memAccounts) GetByEmail(_ context.Context, email string) (*model.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.byID {
		if a.Email == email {
			found := *a
			return &found, nil
		}
	}
	return nil, repository.ErrAccountNotFound
}

func (m *memAccounts) GetByID(_ context.Context, id int64) (*model.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.byID[id]
	if !ok {
		return nil, repository.ErrAccountNotFound
	}
	found := *a
	return &found, nil
}

type memPreferences struct {
	mu   sync.Mutex
	data map[int64]model.Preferences
	err  error
}

func newMemPreferences() *memPreferences {
	return &memPreferences{data: make(map[int64]model.Preferences)}
}

func (m *memPreferences) Get(_ context.Context, accountID int64) (*model.Preferences, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	p, ok := m.data[accountID]
	if !ok {
		return nil, repository.ErrPreferencesNotFound
	}
	return &p, nil
}

func (m *memPreferences) Upsert(_ context.Context, p *model.Preferences) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	stored := *p
	stored.UpdatedAt = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	m.data[p.AccountID] = stored
	return nil
}
