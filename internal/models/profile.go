package models

import (
	"strings"
	"time"
)

type Profile struct {
	ID        ID        `json:"id"`
	Name      string    `json:"nome"`
	Color     string    `json:"cor"`
	Icon      string    `json:"icone"`
	Secret    *string   `json:"senha"`                     // plaintext secret as stored by the browser app
	InKeyring bool      `json:"senhaNoChaveiro,omitempty"` // secret lives in the OS keyring instead
	CreatedAt time.Time `json:"criadoEm"`
}

// IsProtected reports whether switching to the profile requires a secret.
func (p Profile) IsProtected() bool {
	if p.InKeyring {
		return true
	}
	return p.Secret != nil && strings.TrimSpace(*p.Secret) != ""
}
