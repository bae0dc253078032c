// Package backend selects and builds the ledger store from config.
package backend

import (
	"context"

	"budgetbuddy/internal/ledger"
)

// CleanupFunc releases the resources a backend holds.
type CleanupFunc func() error

// Result carries the built store and its optional cleanup.
type Result struct {
	Store   ledger.Store
	Cleanup CleanupFunc
}

// Factory creates a ledger store from configuration.
type Factory interface {
	CreateBackend(ctx context.Context, config Config) (*Result, error)
}

// Config holds configuration for backend creation.
type Config struct {
	Type Type

	// SQLite specific
	SQLiteDBPath string

	// Firestore specific
	FirestoreProjectID       string
	FirestoreCredentialsFile string
	FirestoreCredentialsJSON []byte
}

type Type string

const (
	SQLiteBackend    Type = "sqlite"
	FirestoreBackend Type = "firestore"
	MemoryBackend    Type = "memory"
)

func (t Type) String() string {
	return string(t)
}

func (t Type) IsValid() bool {
	switch t {
	case SQLiteBackend, FirestoreBackend, MemoryBackend:
		return true
	default:
		return false
	}
}
