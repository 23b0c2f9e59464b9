package nodelink

import (
	"context"
	"time"

	"github.com/matzehuels/graphsketch/pkg/cache"
	"github.com/matzehuels/graphsketch/pkg/errors"
	"github.com/matzehuels/graphsketch/pkg/graph"
	graphio "github.com/matzehuels/graphsketch/pkg/io"
	"github.com/matzehuels/graphsketch/pkg/observability"
)

// Formats lists the formats [Render] produces.
var Formats = []string{errors.FormatSVG, errors.FormatPNG, errors.FormatDOT}

// Renderer renders snapshots through a cache keyed by the snapshot's
// fingerprint.
type Renderer struct {
	Cache cache.Cache
	TTL   time.Duration
	Opts  Options
}

// Render produces s in format ("svg", "png" or "dot"). SVG and PNG output
// is looked up in and stored to r.Cache; cache failures are not fatal.
func (r *Renderer) Render(ctx context.Context, s *graph.Snapshot, format string) ([]byte, error) {
	f, err := errors.ValidateFormat(format, Formats...)
	if err != nil {
		return nil, err
	}
	dot := ToDOT(s, r.Opts)
	if f == errors.FormatDOT {
		return []byte(dot), nil
	}

	c := r.Cache
	if c == nil {
		c = cache.NewNullCache()
	}
	opts := r.Opts.withDefaults()
	key := cache.RenderKey(graphio.Fingerprint(s), cache.RenderOpts{
		Format:     f,
		NodeRadius: opts.NodeRadius,
		Scale:      opts.Scale,
	})

	if data, hit, err := c.Get(ctx, key); err == nil && hit {
		observability.Cache().OnCacheHit(ctx, key)
		return data, nil
	}
	observability.Cache().OnCacheMiss(ctx, key)

	var out []byte
	switch f {
	case errors.FormatPNG:
		out, err = RenderPNG(dot, opts.Scale)
	default:
		out, err = RenderSVG(dot)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render %s", f)
	}

	if err := c.Set(ctx, key, out, r.TTL); err == nil {
		observability.Cache().OnCacheSet(ctx, key, len(out))
	}
	return out, nil
}
