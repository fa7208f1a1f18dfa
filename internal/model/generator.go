package model

import "github.com/natsalete/Password-Generator/internal/crypto"

// GenerateRequest represents a password generation request.
// Pointer bools distinguish a missing toggle (nil, use the default) from an explicit false.
type GenerateRequest struct {
	Length         int   `json:"length"`
	Uppercase      *bool `json:"uppercase"`
	Lowercase      *bool `json:"lowercase"`
	Digits         *bool `json:"digits"`
	Symbols        *bool `json:"symbols"`
	ExcludeSimilar *bool `json:"exclude_similar"`
}

// GenerateResponse carries a generated password and its strength.
type GenerateResponse struct {
	Password string          `json:"password"`
	Length   int             `json:"length"`
	Strength crypto.Strength `json:"strength"`
}

// StrengthRequest asks for the strength of an arbitrary password.
type StrengthRequest struct {
	Password string `json:"password"`
}

// StrengthResponse is the strength of the submitted password.
type StrengthResponse struct {
	crypto.Strength
}
