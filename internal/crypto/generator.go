package crypto

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"
	"strings"
)

const (
	uppercaseChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	lowercaseChars = "abcdefghijklmnopqrstuvwxyz"
	digitChars     = "0123456789"
	symbolChars    = "!@#$%^&*()_+-=[]{}|;:,.<>?"

	// similarChars are the look-alike characters dropped when ExcludeSimilar is set.
	similarChars = "il1Lo0O"
)

var (
	ErrNoClassSelected = errors.New("select at least one character class")
	ErrEmptyPool       = errors.New("character pool is empty after filtering")
	ErrInvalidLength   = errors.New("password length must not be negative")
)

// Selection is the set of character-class toggles for one generation request.
type Selection struct {
	Uppercase      bool
	Lowercase      bool
	Digits         bool
	Symbols        bool
	ExcludeSimilar bool
}

// DefaultSelection enables every class and keeps look-alike characters.
func DefaultSelection() Selection {
	return Selection{
		Uppercase: true,
		Lowercase: true,
		Digits:    true,
		Symbols:   true,
	}
}

// Any reports whether at least one character class is enabled.
func (s Selection) Any() bool {
	return s.Uppercase || s.Lowercase || s.Digits || s.Symbols
}

// Classes returns the filtered alphabet of every enabled class, in the fixed
// order uppercase, lowercase, digits, symbols. Classes that filter down to
// nothing are returned as empty strings.
func (s Selection) Classes() []string {
	var classes []string
	if s.Uppercase {
		classes = append(classes, s.filter(uppercaseChars))
	}
	if s.Lowercase {
		classes = append(classes, s.filter(lowercaseChars))
	}
	if s.Digits {
		classes = append(classes, s.filter(digitChars))
	}
	if s.Symbols {
		classes = append(classes, s.filter(symbolChars))
	}
	return classes
}

func (s Selection) filter(alphabet string) string {
	if !s.ExcludeSimilar {
		return alphabet
	}
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(similarChars, r) {
			return -1
		}
		return r
	}, alphabet)
}

// BuildCharacterPool concatenates the filtered alphabets of every enabled class.
// Filtering is applied per class, so the result may be empty.
func BuildCharacterPool(sel Selection) string {
	return strings.Join(sel.Classes(), "")
}

// Generate creates a random password of the given length using crypto/rand.
func Generate(sel Selection, length int) (string, error) {
	return GenerateFrom(rand.Reader, sel, length)
}

// GenerateFrom creates a password drawing randomness from r.
//
// Every enabled class with a non-empty alphabet contributes one mandatory
// character. When there are more mandatory characters than length, only the
// first length of them (in class order) are kept, so full class coverage is
// guaranteed only for length >= len(sel.Classes()).
func GenerateFrom(r io.Reader, sel Selection, length int) (string, error) {
	if !sel.Any() {
		return "", ErrNoClassSelected
	}
	if length < 0 {
		return "", ErrInvalidLength
	}

	classes := sel.Classes()
	pool := strings.Join(classes, "")
	if pool == "" {
		return "", ErrEmptyPool
	}

	result := make([]byte, 0, length)

	for _, charset := range classes {
		if charset == "" {
			continue
		}
		if len(result) == length {
			break
		}
		ch, err := randChar(r, charset)
		if err != nil {
			return "", err
		}
		result = append(result, ch)
	}

	for len(result) < length {
		ch, err := randChar(r, pool)
		if err != nil {
			return "", err
		}
		result = append(result, ch)
	}

	if err := shuffle(r, result); err != nil {
		return "", err
	}

	return string(result), nil
}

// randChar picks a uniformly random byte from charset.
func randChar(r io.Reader, charset string) (byte, error) {
	n, err := rand.Int(r, big.NewInt(int64(len(charset))))
	if err != nil {
		return 0, fmt.Errorf("reading random source: %w", err)
	}
	return charset[n.Int64()], nil
}

// shuffle performs an in-place Fisher-Yates shuffle.
func shuffle(r io.Reader, data []byte) error {
	for i := len(data) - 1; i > 0; i-- {
		j, err := rand.Int(r, big.NewInt(int64(i+1)))
		if err != nil {
			return fmt.Errorf("reading random source: %w", err)
		}
		data[i], data[j.Int64()] = data[j.Int64()], data[i]
	}
	return nil
}
