package model

import "github.com/google/uuid"

// Sync sources.
const (
	SyncSourceShopify  = "shopify"
	SyncSourceSnapshot = "snapshot"
)

// SyncResult summarises one reconciliation run.
// Total always equals Synced + Skipped.
type SyncResult struct {
	Synced     int       `json:"synced"`
	Skipped    int       `json:"skipped"`
	Total      int       `json:"total"`
	RunID      uuid.UUID `json:"runId"`
	Pages      int       `json:"pages"`
	DurationMS int64     `json:"durationMs"`
	Source     string    `json:"source"`
	Snapshot   string    `json:"snapshot,omitempty"`
}
