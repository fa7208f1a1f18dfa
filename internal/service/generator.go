package service

import (
	"errors"
	"fmt"

	"github.com/natsalete/Password-Generator/internal/config"
	"github.com/natsalete/Password-Generator/internal/crypto"
	"github.com/natsalete/Password-Generator/internal/model"
)

var ErrLengthOutOfRange = errors.New("password length out of range")

// Recorder receives generator events. *metrics.Exporter implements it.
type Recorder interface {
	Generated(length, score int)
	Rejected()
	Failed()
	Checked(score int)
}

type nopRecorder struct{}

func (nopRecorder) Generated(int, int) {}
func (nopRecorder) Rejected()          {}
func (nopRecorder) Failed()            {}
func (nopRecorder) Checked(int)        {}

// GeneratorService handles password generation business logic.
type GeneratorService struct {
	limits   config.GeneratorLimits
	recorder Recorder
}

// NewGeneratorService creates a GeneratorService. A nil recorder discards events.
func NewGeneratorService(limits config.GeneratorLimits, rec Recorder) *GeneratorService {
	if rec == nil {
		rec = nopRecorder{}
	}
	return &GeneratorService{limits: limits, recorder: rec}
}

// Limits returns the length bounds requests are checked against.
func (s *GeneratorService) Limits() config.GeneratorLimits {
	return s.limits
}

// Generate produces a password for req. Missing toggles default to enabled,
// except exclude_similar which defaults to off; a zero length uses the
// configured default.
func (s *GeneratorService) Generate(req model.GenerateRequest) (model.GenerateResponse, error) {
	return s.generate(SelectionFromRequest(req, crypto.DefaultSelection()), req.Length)
}

// GenerateWith is like Generate but fills missing toggles and length from base.
func (s *GeneratorService) GenerateWith(base model.Preferences, req model.GenerateRequest) (model.GenerateResponse, error) {
	fallback := crypto.Selection{
		Uppercase:      base.Uppercase,
		Lowercase:      base.Lowercase,
		Digits:         base.Digits,
		Symbols:        base.Symbols,
		ExcludeSimilar: base.ExcludeSimilar,
	}
	length := req.Length
	if length == 0 {
		length = base.Length
	}
	return s.generate(SelectionFromRequest(req, fallback), length)
}

func (s *GeneratorService) generate(sel crypto.Selection, length int) (model.GenerateResponse, error) {
	if length == 0 {
		length = s.limits.DefaultLength
	}

	if !sel.Any() {
		s.recorder.Rejected()
		return model.GenerateResponse{}, crypto.ErrNoClassSelected
	}
	if err := s.CheckLength(length); err != nil {
		s.recorder.Rejected()
		return model.GenerateResponse{}, err
	}

	password, err := crypto.Generate(sel, length)
	if err != nil {
		if IsValidationError(err) {
			s.recorder.Rejected()
		} else {
			s.recorder.Failed()
		}
		return model.GenerateResponse{}, err
	}

	strength := crypto.Rate(password)
	s.recorder.Generated(len(password), strength.Score)

	return model.GenerateResponse{
		Password: password,
		Length:   len(password),
		Strength: strength,
	}, nil
}

// CheckLength reports ErrLengthOutOfRange for lengths outside the configured bounds.
func (s *GeneratorService) CheckLength(length int) error {
	if length < s.limits.MinLength || length > s.limits.MaxLength {
		return fmt.Errorf("%w: must be between %d and %d", ErrLengthOutOfRange, s.limits.MinLength, s.limits.MaxLength)
	}
	return nil
}

// Rate scores a caller-supplied password.
func (s *GeneratorService) Rate(req model.StrengthRequest) model.StrengthResponse {
	strength := crypto.Rate(req.Password)
	s.recorder.Checked(strength.Score)
	return model.StrengthResponse{Strength: strength}
}

// SelectionFromRequest resolves the toggles of req, taking unset ones from fallback.
func SelectionFromRequest(req model.GenerateRequest, fallback crypto.Selection) crypto.Selection {
	return crypto.Selection{
		Uppercase:      boolOrDefault(req.Uppercase, fallback.Uppercase),
		Lowercase:      boolOrDefault(req.Lowercase, fallback.Lowercase),
		Digits:         boolOrDefault(req.Digits, fallback.Digits),
		Symbols:        boolOrDefault(req.Symbols, fallback.Symbols),
		ExcludeSimilar: boolOrDefault(req.ExcludeSimilar, fallback.ExcludeSimilar),
	}
}

// IsValidationError reports whether err was caused by the caller's input.
func IsValidationError(err error) bool {
	return errors.Is(err, crypto.ErrNoClassSelected) ||
		errors.Is(err, crypto.ErrEmptyPool) ||
		errors.Is(err, crypto.ErrInvalidLength) ||
		errors.Is(err, ErrLengthOutOfRange)
}

// boolOrDefault returns the dereferenced pointer value, or the fallback if nil.
func boolOrDefault(p *bool, fallback bool) bool {
	if p == nil {
		return fallback
	}
	return *p
}
