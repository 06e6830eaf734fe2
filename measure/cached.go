package measure

import (
	"github.com/gogpu/ggchart"
	"github.com/gogpu/ggchart/cache"
	"github.com/gogpu/ggchart/sprite"
)

// Option configures a Cached measurer.
type Option func(*options)

type options struct {
	capacity int
}

// WithCapacity sets the per-shard entry limit.
func WithCapacity(n int) Option {
	return func(o *options) { o.capacity = n }
}

// Cached memoizes another measurer by label text.
type Cached struct {
	inner sprite.Measurer
	boxes *cache.Cache[string, ggchart.Rect]
}

// NewCached wraps m.
func NewCached(m sprite.Measurer, opts ...Option) *Cached {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return &Cached{
		inner: m,
		boxes: cache.New[string, ggchart.Rect](o.capacity, cache.StringHasher),
	}
}

// Measure returns the cached box for text, measuring it on first use.
func (c *Cached) Measure(text string) ggchart.Rect {
	return c.boxes.GetOrCreate(text, func() ggchart.Rect {
		return c.inner.Measure(text)
	})
}

// Stats reports cache counters.
func (c *Cached) Stats() cache.Stats {
	return c.boxes.Stats()
}
