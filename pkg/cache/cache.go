// Package cache stores rendered graph artifacts.
//
// Renders are keyed by the graph's fingerprint plus the render options (see
// [RenderKey]), so an unchanged graph is never laid out twice. Three
// backends implement [Cache]:
//
//   - [FileCache]: one JSON file per entry under the user cache directory
//   - [RedisCache]: a shared Redis instance, for `graphsketch serve`
//   - [NullCache]: caching disabled
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with per-entry expiry.
type Cache interface {
	// Get returns the value for key. A missing or expired entry is a miss
	// (false, nil), not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// RenderOpts are the inputs besides the graph that change a render.
type RenderOpts struct {
	Format     string  `json:"format"`
	NodeRadius float64 `json:"node_radius,omitempty"`
	Scale      float64 `json:"scale,omitempty"`
}

// RenderKey returns the cache key for rendering the graph with the given
// fingerprint using opts.
func RenderKey(fingerprint string, opts RenderOpts) string {
	return hashKey("render", fingerprint, opts)
}
