package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// Keyer builds cache keys. Implementations must return the same key for
// the same inputs across processes.
type Keyer interface {
	// CatalogueKey names a parsed catalogue.
	CatalogueKey(sourceHash string, opts CatalogueKeyOpts) string
	// ArtifactKey names a rendered node-link diagram.
	ArtifactKey(sourceHash string, opts ArtifactKeyOpts) string
	// PageKey names a generated HTML page.
	PageKey(sourceHash string, opts PageKeyOpts) string
}

// CatalogueKeyOpts holds the parse settings that change the result.
type CatalogueKeyOpts struct {
	Strict bool `json:"strict"`
}

// ArtifactKeyOpts holds everything that changes a rendered diagram.
type ArtifactKeyOpts struct {
	Root     string `json:"root"`
	Format   string `json:"format"`
	RankDir  string `json:"rankdir"`
	Shape    string `json:"shape"`
	Style    string `json:"style,omitempty"`
	Detailed bool   `json:"detailed,omitempty"`
	Tooltips bool   `json:"tooltips,omitempty"`
}

// PageKeyOpts holds everything that changes a generated page.
type PageKeyOpts struct {
	Kind   string `json:"kind"` // "hierarchy" or "network"
	Root   string `json:"root,omitempty"`
	RootID string `json:"root_id,omitempty"`
	Title  string `json:"title,omitempty"`
}

// DefaultKeyer produces keys of the form "kind:sha256(parts)".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// CatalogueKey implements [Keyer].
func (DefaultKeyer) CatalogueKey(sourceHash string, opts CatalogueKeyOpts) string {
	return hashKey("catalogue", sourceHash, opts)
}

// ArtifactKey implements [Keyer].
func (DefaultKeyer) ArtifactKey(sourceHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", sourceHash, opts)
}

// PageKey implements [Keyer].
func (DefaultKeyer) PageKey(sourceHash string, opts PageKeyOpts) string {
	return hashKey("page", sourceHash, opts)
}

// hashKey generates a cache key by hashing the components.
// The key format is: prefix:hash(parts...)
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(hash[:]))
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
