// Package model defines the core data types shared across the application.
package model

import (
	"crypto/sha256"
	"fmt"
	"strings"
	"time"
)

// Asset represents a single holding extracted from an uploaded statement or
// already persisted in a snapshot.
type Asset struct {
	CreatedAt    time.Time
	ID           string
	SnapshotID   string
	Name         string // Raw asset name as it appears on the statement
	SourceFile   string // Origin label (file the asset was parsed from)
	AssetType    string // Optional classification hint (equity, mf, fd, ...)
	CurrentValue float64
}

// GenerateHash creates a stable content hash used to short-circuit exact
// re-imports of the same holding.
func (a *Asset) GenerateHash() string {
	data := fmt.Sprintf("%s:%.2f:%s",
		strings.ToLower(strings.TrimSpace(a.Name)),
		a.CurrentValue,
		a.SourceFile)
	hash := sha256.Sum256([]byte(data))
	return fmt.Sprintf("%x", hash)
}

// MatchType categorizes how strongly a duplicate candidate resembles the
// subject asset. Informational only; it does not feed back into scoring.
type MatchType string

const (
	// MatchExact means both name and value similarity were exactly 100.
	MatchExact MatchType = "exact"
	// MatchNameAndValue means both similarities were at least 90.
	MatchNameAndValue MatchType = "name_and_value"
	// MatchName means the name carried the match on its own.
	MatchName MatchType = "name"
)

// DuplicateMatch records one candidate duplicate for a review asset. Created
// fresh on every detection run and never mutated afterwards.
type DuplicateMatch struct {
	AssetID         string // Stable id when matched against a stored asset
	AssetName       string
	SourceFile      string
	MatchType       MatchType
	CurrentValue    float64
	SimilarityScore float64 // Combined score in [0,100]
}

// ReviewAsset is an asset decorated with detection results, ready for the
// upload-review flow.
type ReviewAsset struct {
	Asset
	DuplicateMatches []DuplicateMatch
	IsDuplicate      bool
	IsSelected       bool
}

// Snapshot groups the assets persisted from one accepted statement upload.
type Snapshot struct {
	CreatedAt  time.Time
	ID         string
	Label      string
	SourceFile string
	AssetCount int
	TotalValue float64
}
