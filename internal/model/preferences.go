package model

import "time"

// Preferences is an account's saved generator screen: its toggles and length.
// Generated passwords themselves are never stored.
type Preferences struct {
	AccountID      int64
	Length         int
	Uppercase      bool
	Lowercase      bool
	Digits         bool
	Symbols        bool
	ExcludeSimilar bool
	UpdatedAt      time.Time
}

// PreferencesRequest replaces an account's saved preferences.
type PreferencesRequest struct {
	Length         int  `json:"length"`
	Uppercase      bool `json:"uppercase"`
	Lowercase      bool `json:"lowercase"`
	Digits         bool `json:"digits"`
	Symbols        bool `json:"symbols"`
	ExcludeSimilar bool `json:"exclude_similar"`
}

// PreferencesResponse is the API form of Preferences.
type PreferencesResponse struct {
	Length         int        `json:"length"`
	Uppercase      bool       `json:"uppercase"`
	Lowercase      bool       `json:"lowercase"`
	Digits         bool       `json:"digits"`
	Symbols        bool       `json:"symbols"`
	ExcludeSimilar bool       `json:"exclude_similar"`
	Saved          bool       `json:"saved"`
	UpdatedAt      *time.Time `json:"updated_at,omitempty"`
}
