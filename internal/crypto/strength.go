package crypto

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	MaxScore = 4

	// strongLength is the length at which a password earns its length point.
	strongLength = 8
)

// Strength labels, weakest first.
const (
	LabelVeryWeak = "Very Weak"
	LabelWeak     = "Weak"
	LabelMedium   = "Medium"
	LabelStrong   = "Strong"
)

// Strength is the display form of a score.
type Strength struct {
	Score   int    `json:"score"`
	Percent int    `json:"percent"`
	Label   string `json:"label"`
	Color   string `json:"color"`
}

// Score rates a password from 0 to MaxScore: one point each for reaching
// eight characters and for containing an uppercase letter, a lowercase
// letter, a digit and a symbol. Five points are possible; the result is
// clamped to MaxScore.
func Score(password string) int {
	score := 0

	if utf8.RuneCountInString(password) >= strongLength {
		score++
	}

	var hasUpper, hasLower, hasDigit, hasSymbol bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case strings.ContainsRune(symbolChars, r):
			hasSymbol = true
		}
	}

	for _, ok := range []bool{hasUpper, hasLower, hasDigit, hasSymbol} {
		if ok {
			score++
		}
	}

	return clamp(score, 0, MaxScore)
}

// Rate scores a password and maps the score to its display form.
func Rate(password string) Strength {
	return StrengthFor(Score(password))
}

// StrengthFor maps a score to a percentage, a label and a color.
// Thresholds are exclusive upper bounds, so exactly 50% is "Medium".
func StrengthFor(score int) Strength {
	percent := clamp(score*100/MaxScore, 0, 100)

	s := Strength{Score: clamp(score, 0, MaxScore), Percent: percent}
	switch {
	case percent < 25:
		s.Label, s.Color = LabelVeryWeak, "#E74C3C"
	case percent < 50:
		s.Label, s.Color = LabelWeak, "#F39C12"
	case percent < 75:
		s.Label, s.Color = LabelMedium, "#F1C40F"
	default:
		s.Label, s.Color = LabelStrong, "#27AE60"
	}
	return s
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
