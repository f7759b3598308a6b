package entities

import "time"

// VisitorWallet is an unauthenticated, client-local wallet entry. Entries are
// always read-only; the first entry is treated as primary locally.
type VisitorWallet struct {
	Address   string    `json:"address"`
	Label     string    `json:"label,omitempty"`
	ChainID   string    `json:"chainId,omitempty"`
	Provider  string    `json:"provider,omitempty"`
	IsPrimary bool      `json:"isPrimary"`
	AddedAt   time.Time `json:"addedAt,omitempty"`
}

// MigrationResult reports the outcome of a visitor wallet migration.
// Success is true only when every entry migrated or was skipped.
type MigrationResult struct {
	Success       bool     `json:"success"`
	MigratedCount int      `json:"migratedCount"`
	SkippedCount  int      `json:"skippedCount"`
	Errors        []string `json:"errors"`
}
