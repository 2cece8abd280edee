package probe

import (
	"context"
	"log/slog"
	"os/exec"
	"path/filepath"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

const (
	// DefaultTimeout bounds a single snapshot collection.
	DefaultTimeout = 10 * time.Second
	// DefaultParallelism is the number of runtimes probed at once.
	DefaultParallelism = 4

	cacheSize = 16
)

// CollectFunc takes a snapshot of one runtime.
type CollectFunc func(ctx context.Context, binary string) (*Snapshot, error)

// Collector snapshots one or more runtimes. Binaries that resolve to the same
// executable share one collection and one cache entry.
type Collector struct {
	collect     CollectFunc
	timeout     time.Duration
	parallelism int

	cache *lru.Cache[string, *Snapshot]
	group singleflight.Group
}

// CollectorOption configures a Collector.
type CollectorOption func(*Collector)

// WithTimeout sets the per-runtime collection timeout.
func WithTimeout(d time.Duration) CollectorOption {
	return func(c *Collector) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithParallelism caps concurrent collections.
func WithParallelism(n int) CollectorOption {
	return func(c *Collector) {
		if n > 0 {
			c.parallelism = n
		}
	}
}

// WithCollectFunc replaces the collection function.
func WithCollectFunc(fn CollectFunc) CollectorOption {
	return func(c *Collector) {
		if fn != nil {
			c.collect = fn
		}
	}
}

// NewCollector creates a Collector that runs Collect by default.
func NewCollector(opts ...CollectorOption) *Collector {
	c := &Collector{
		collect:     Collect,
		timeout:     DefaultTimeout,
		parallelism: DefaultParallelism,
	}
	for _, opt := range opts {
		opt(c)
	}
	// only fails for a non-positive size
	c.cache, _ = lru.New[string, *Snapshot](cacheSize)
	return c
}

// Get returns the snapshot for binary, collecting it at most once.
func (c *Collector) Get(ctx context.Context, binary string) (*Snapshot, error) {
	key := resolveBinary(binary)
	if snap, ok := c.cache.Get(key); ok {
		slog.Debug("snapshot cache hit", slog.String("binary", key))
		return snap, nil
	}

	v, err, shared := c.group.Do(key, func() (any, error) {
		if snap, ok := c.cache.Get(key); ok {
			return snap, nil
		}
		cctx, cancel := context.WithTimeout(ctx, c.timeout)
		defer cancel()

		snap, err := c.collect(cctx, key)
		if err != nil {
			return nil, err
		}
		c.cache.Add(key, snap)
		return snap, nil
	})
	if err != nil {
		return nil, err
	}
	if shared {
		slog.Debug("snapshot collection shared", slog.String("binary", key))
	}
	return v.(*Snapshot), nil
}

// Collected is the outcome for one requested binary.
type Collected struct {
	Binary   string
	Snapshot *Snapshot
	Err      error
}

// CollectAll snapshots every binary with bounded parallelism. Results keep the
// input order; a failing binary does not stop the others.
func (c *Collector) CollectAll(ctx context.Context, binaries []string) []Collected {
	results := make([]Collected, len(binaries))

	var g errgroup.Group
	g.SetLimit(c.parallelism)
	for i, binary := range binaries {
		g.Go(func() error {
			snap, err := c.Get(ctx, binary)
			results[i] = Collected{Binary: binary, Snapshot: snap, Err: err}
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// resolveBinary maps a binary name to its real executable path so aliases
// such as php and php8.2 share a cache entry. Unresolvable names are returned
// unchanged and fail later in Collect.
func resolveBinary(binary string) string {
	path, err := exec.LookPath(binary)
	if err != nil {
		return binary
	}
	if real, err := filepath.EvalSymlinks(path); err == nil {
		path = real
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return path
}
