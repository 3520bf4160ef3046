package domain

import (
	"errors"
	"time"
)

var (
	ErrWalletNotFound    = errors.New("wallet entry not found")
	ErrInvalidWalletName = errors.New("invalid wallet entry name")
)

// WalletEntry holds one stored credential. Secrets are stored as-is; there is
// no encryption at rest in this system.
type WalletEntry struct {
	ID        string    `json:"id" bson:"_id"`
	Name      string    `json:"name" bson:"name"`
	Username  string    `json:"username,omitempty" bson:"username,omitempty"`
	Secret    string    `json:"secret,omitempty" bson:"secret,omitempty"`
	Domain    string    `json:"domain,omitempty" bson:"domain,omitempty"`
	Notes     string    `json:"notes,omitempty" bson:"notes,omitempty"`
	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updated_at"`
}

type CreateWalletEntryRequest struct {
	Name     string `json:"name"`
	Username string `json:"username,omitempty"`
	Secret   string `json:"secret,omitempty"`
	Domain   string `json:"domain,omitempty"`
	Notes    string `json:"notes,omitempty"`
}

type UpdateWalletEntryRequest struct {
	Name     *string `json:"name,omitempty"`
	Username *string `json:"username,omitempty"`
	Secret   *string `json:"secret,omitempty"`
	Domain   *string `json:"domain,omitempty"`
	Notes    *string `json:"notes,omitempty"`
}
