package imagecache

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"git.home.luguber.info/inful/relnotes/internal/httpclient"
	"git.home.luguber.info/inful/relnotes/internal/logfields"
	"git.home.luguber.info/inful/relnotes/internal/metrics"
	"git.home.luguber.info/inful/relnotes/internal/storage"
	"git.home.luguber.info/inful/relnotes/internal/util/sets"
)

const (
	defaultTimeout  = 30 * time.Second
	defaultMaxBytes = 20 << 20
)

// Cache resolves remote image locators to local public references.
type Cache struct {
	store      storage.ObjectStore
	publicPath string
	client     *http.Client
	maxBytes   int64
	userAgent  string
	recorder   metrics.Recorder
	logger     *slog.Logger

	group singleflight.Group

	mu       sync.Mutex
	resolved map[string]string
}

// Option configures a Cache.
type Option func(*Cache)

// WithHTTPClient replaces the default bounded-timeout client.
func WithHTTPClient(c *http.Client) Option {
	return func(cache *Cache) {
		if c != nil {
			cache.client = c
		}
	}
}

// WithMaxBytes limits the size of a fetched image.
func WithMaxBytes(n int64) Option {
	return func(c *Cache) {
		if n > 0 {
			c.maxBytes = n
		}
	}
}

// WithUserAgent sets the User-Agent header on image requests.
func WithUserAgent(ua string) Option { return func(c *Cache) { c.userAgent = ua } }

// WithRecorder reports hits, stores and failures to r.
func WithRecorder(r metrics.Recorder) Option {
	return func(c *Cache) { c.recorder = metrics.OrNoop(r) }
}

// WithLogger sets the logger; nil keeps the default.
func WithLogger(l *slog.Logger) Option {
	return func(c *Cache) {
		if l != nil {
			c.logger = l
		}
	}
}

// New returns a Cache storing objects in store and referencing them under
// publicPath (for example "/images/releases").
func New(store storage.ObjectStore, publicPath string, opts ...Option) *Cache {
	c := &Cache{
		store:      store,
		publicPath: strings.TrimRight(publicPath, "/"),
		client:     httpclient.New(defaultTimeout),
		maxBytes:   defaultMaxBytes,
		recorder:   metrics.NoopRecorder{},
		logger:     slog.Default(),
		resolved:   make(map[string]string),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// PublicRef is the reference written into pages for a cached object name.
func (c *Cache) PublicRef(name string) string {
	return c.publicPath + "/" + name
}

// Resolve returns the local public reference for locator, fetching and
// storing the image on a miss. Any failure yields locator unchanged. Each
// locator is attempted at most once per Cache.
func (c *Cache) Resolve(ctx context.Context, locator string) string {
	if !isRemote(locator) {
		return locator
	}

	c.mu.Lock()
	if ref, ok := c.resolved[locator]; ok {
		c.mu.Unlock()
		return ref
	}
	c.mu.Unlock()

	ref := c.resolve(ctx, locator)

	c.mu.Lock()
	c.resolved[locator] = ref
	c.mu.Unlock()
	return ref
}

func (c *Cache) resolve(ctx context.Context, locator string) string {
	name := ObjectName(locator)
	log := c.logger.With(logfields.ImageURL(redact(locator)), logfields.CacheKey(name))

	if ok, err := c.store.Exists(name); err == nil && ok {
		c.recorder.IncImageCache(metrics.ImageHit)
		log.Debug("Image cache hit")
		return c.PublicRef(name)
	}

	v, err, _ := c.group.Do(name, func() (any, error) {
		if ok, err := c.store.Exists(name); err == nil && ok {
			return metrics.ImageHit, nil
		}
		data, err := c.fetch(ctx, locator)
		if err != nil {
			return nil, err
		}
		out, format := Compress(data)
		if _, err := c.store.Put(name, out); err != nil {
			return nil, fmt.Errorf("store %s: %w", name, err)
		}
		log.Debug("Image cached",
			slog.String("format", string(format)),
			slog.Int("original_bytes", len(data)),
			slog.Int("stored_bytes", len(out)))
		return metrics.ImageStored, nil
	})
	if err != nil {
		c.recorder.IncImageCache(metrics.ImageFailed)
		log.Warn("Image not cached; keeping remote locator", logfields.Error(err))
		return locator
	}
	if outcome, ok := v.(string); ok {
		c.recorder.IncImageCache(outcome)
	}
	return c.PublicRef(name)
}

func (c *Cache) fetch(ctx context.Context, locator string) ([]byte, error) {
	return httpclient.Fetch(ctx, c.client, locator, c.userAgent, c.maxBytes)
}

// Stored lists the cached object names, sorted.
func (c *Cache) Stored() ([]string, error) {
	return c.store.List()
}

// Warm resolves locators concurrently with at most limit fetches in flight.
// It returns once every locator has been attempted or ctx is done.
func (c *Cache) Warm(ctx context.Context, locators []string, limit int) error {
	if limit <= 0 {
		limit = 1
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for _, loc := range sets.Unique(locators) {
		if !isRemote(loc) {
			continue
		}
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}
			c.Resolve(gctx, loc)
			return nil
		})
	}
	return g.Wait()
}

func isRemote(locator string) bool {
	return strings.HasPrefix(locator, "https://") || strings.HasPrefix(locator, "http://")
}

// redact drops the query string, which usually carries signing tokens.
func redact(locator string) string {
	u, err := url.Parse(locator)
	if err != nil {
		return locator
	}
	u.RawQuery = ""
	u.Fragment = ""
	return u.String()
}
