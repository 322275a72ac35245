// Package cache stores rendered artifacts so that regenerating an unchanged
// design is a lookup instead of a render.
//
// Three backends implement [Cache]:
//   - [FileCache]: a directory of JSON envelopes, used by the CLI
//   - [RedisCache]: a shared cache for the HTTP API
//   - [NullCache]: caching disabled
//
// Keys come from a [Keyer] and are derived from the SHA-256 of the
// parameter set and the generator build, so a parameter change or an
// upgrade produces a new key.
package cache

import (
	"context"
	"time"

	"github.com/matzehuels/meander/pkg/buildinfo"
)

// TTLArtifact is how long a rendered artifact stays cached.
const TTLArtifact = 7 * 24 * time.Hour

// Cache is a byte-oriented key/value store with expiry.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get returns the stored value and whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key; deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases backend resources.
	Close() error
}

// Keyer derives cache keys.
type Keyer interface {
	// ArtifactKey returns the key for one output format of one design.
	ArtifactKey(paramsHash, format string) string
}

// DefaultKeyer is the standard Keyer. Build identifies the generator that
// produced an artifact; entries written by another build never match.
type DefaultKeyer struct {
	Build string
}

// NewDefaultKeyer returns a DefaultKeyer for the running binary.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{Build: buildinfo.Version + "+" + buildinfo.Commit}
}

// ArtifactKey returns "artifact:<sha256(build, paramsHash, format)>".
func (k DefaultKeyer) ArtifactKey(paramsHash, format string) string {
	return hashKey("artifact", k.Build, paramsHash, format)
}
