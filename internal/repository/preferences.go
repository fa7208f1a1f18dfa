package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/natsalete/Password-Generator/internal/model"
)

var ErrPreferencesNotFound = errors.New("no saved preferences")

// PreferencesRepository persists each account's generator toggles and length.
type PreferencesRepository struct {
	db *sql.DB
}

func NewPreferencesRepository(db *sql.DB) *PreferencesRepository {
	return &PreferencesRepository{db: db}
}

const upsertPreferences = `
	INSERT INTO generator_preferences
		(account_id, length, uppercase, lowercase, digits, symbols, exclude_similar)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	ON DUPLICATE KEY UPDATE
		length          = VALUES(length),
		uppercase       = VALUES(uppercase),
		lowercase       = VALUES(lowercase),
		digits          = VALUES(digits),
		symbols         = VALUES(symbols),
		exclude_similar = VALUES(exclude_similar)`

// Upsert stores p, replacing any previous preferences of the same account.
func (r *PreferencesRepository) Upsert(ctx context.Context, p *model.Preferences) error {
	_, err := r.db.ExecContext(ctx, upsertPreferences,
		p.AccountID,
		p.Length,
		p.Uppercase,
		p.Lowercase,
		p.Digits,
		p.Symbols,
		p.ExcludeSimilar,
	)
	return err
}

// Get returns the saved preferences of an account, or ErrPreferencesNotFound.
func (r *PreferencesRepository) Get(ctx context.Context, accountID int64) (*model.Preferences, error) {
	query := `SELECT account_id, length, uppercase, lowercase, digits, symbols, exclude_similar, updated_at
		FROM generator_preferences WHERE account_id = ?`

	p := &model.Preferences{}
	err := r.db.QueryRowContext(ctx, query, accountID).Scan(
		&p.AccountID, &p.Length, &p.Uppercase, &p.Lowercase,
		&p.Digits, &p.Symbols, &p.ExcludeSimilar, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPreferencesNotFound
		}
		return nil, err
	}

	return p, nil
}
