// Package lotsize resolves NSE F&O market lots from the exchange's daily
// contract file: discovery of the current archive on the reports page,
// download through the anti-bot gate, permissive CSV parsing and a
// single-entry TTL cache in front of it all.
package lotsize

import (
	"context"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"breezerelay/internal/logger"
	"breezerelay/internal/metrics"
)

// DefaultTTL is how long a loaded table stays fresh. The publisher
// updates the file daily; six hours keeps intraday drift low without
// hammering the site.
const DefaultTTL = 6 * time.Hour

// SourceLocator yields the URL of the current contract archive.
type SourceLocator interface {
	LatestURL(ctx context.Context) (string, error)
}

// ArchiveFetcher downloads a contract archive.
type ArchiveFetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Provider is the lot-size surface the HTTP layer and the quote service
// consume; *Cache implements it.
type Provider interface {
	Lookup(ctx context.Context, symbol string) (int, bool, error)
	Search(ctx context.Context, query string, limit int) ([]Match, error)
	Refresh(ctx context.Context, force bool) error
	Stats() Stats
}

// Stats describes the currently loaded table. Zero values mean no table
// has been loaded yet.
type Stats struct {
	Symbols   int
	LoadedAt  time.Time
	SourceURL string
}

// Cache holds the single in-memory lot-size table and refreshes it
// lazily. A refresh replaces the whole table; on failure the previous
// table stays untouched and the error propagates to the caller.
type Cache struct {
	source SourceLocator
	fetch  ArchiveFetcher
	ttl    time.Duration
	now    func() time.Time

	group singleflight.Group

	mu        sync.RWMutex
	table     Table
	loadedAt  time.Time
	sourceURL string

	closeIdle func()
}

var _ Provider = (*Cache)(nil)

// Option configures a Cache.
type Option func(*Cache)

// WithTTL overrides the freshness window.
func WithTTL(d time.Duration) Option {
	return func(c *Cache) { c.ttl = d }
}

// WithClock overrides the time source used for freshness checks.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) { c.now = now }
}

// NewCache wires a cache from explicit collaborators. Production code
// uses New; tests inject fakes here.
func NewCache(source SourceLocator, fetch ArchiveFetcher, opts ...Option) *Cache {
	c := &Cache{
		source: source,
		fetch:  fetch,
		ttl:    DefaultTTL,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Config collects the publisher endpoints New needs.
type Config struct {
	OverrideURL string // full archive URL; set only to bypass discovery
	ReportsURL  string
	ArchiveBase string
	HomeURL     string
}

// New builds the production cache: a shared publisher web client behind
// listing discovery and the archive fetcher.
func New(cfg Config, opts ...Option) *Cache {
	web := newPublisherClient(cfg.HomeURL)
	loc := &discoverer{
		override:    strings.TrimSpace(cfg.OverrideURL),
		reportsURL:  cfg.ReportsURL,
		archiveBase: strings.TrimRight(cfg.ArchiveBase, "/"),
		web:         web,
	}
	c := NewCache(loc, &fetcher{web: web}, opts...)
	c.closeIdle = web.closeIdleConnections
	return c
}

// Close releases idle publisher connections.
func (c *Cache) Close() {
	if c.closeIdle != nil {
		c.closeIdle()
	}
}

func (c *Cache) fresh() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.table != nil && c.now().Sub(c.loadedAt) < c.ttl
}

// ensureFresh refreshes the table when stale. Concurrent callers share a
// single flight; whoever arrives after a finished refresh re-checks
// freshness instead of fetching again.
func (c *Cache) ensureFresh(ctx context.Context, force bool) error {
	if !force && c.fresh() {
		return nil
	}
	_, err, _ := c.group.Do("refresh", func() (any, error) {
		if !force && c.fresh() {
			return nil, nil
		}
		return nil, c.refresh(ctx)
	})
	return err
}

// refresh runs discovery, download and parse, then swaps the new table
// in atomically.
func (c *Cache) refresh(ctx context.Context) error {
	start := time.Now()

	url, err := c.source.LatestURL(ctx)
	if err != nil {
		metrics.IncContractRefresh("error")
		return err
	}

	logger.L().Info().Str("url", url).Msg("refreshing lot-size table")

	raw, err := c.fetch.Fetch(ctx, url)
	if err != nil {
		metrics.IncContractRefresh("error")
		return err
	}

	table, err := Parse(raw)
	if err != nil {
		metrics.IncContractRefresh("error")
		return err
	}

	loadedAt := c.now()
	c.mu.Lock()
	c.table = table
	c.loadedAt = loadedAt
	c.sourceURL = url
	c.mu.Unlock()

	metrics.IncContractRefresh("ok")
	metrics.SetContractSymbols(len(table))
	metrics.SetContractLoadedAt(loadedAt)
	logger.L().Info().
		Str("url", url).
		Int("symbols", len(table)).
		Dur("elapsed", time.Since(start)).
		Msg("lot-size table refreshed")
	return nil
}

// Refresh reloads the table; force bypasses the freshness window.
func (c *Cache) Refresh(ctx context.Context, force bool) error {
	return c.ensureFresh(ctx, force)
}

// Lookup resolves one symbol's lot size, refreshing the table first when
// stale. A blank symbol is not-found without touching the upstream, and
// an absent symbol is not-found rather than zero.
func (c *Cache) Lookup(ctx context.Context, symbol string) (int, bool, error) {
	sym := NormalizeSymbol(symbol)
	if sym == "" {
		return 0, false, nil
	}
	if err := c.ensureFresh(ctx, false); err != nil {
		metrics.IncLotLookup("error")
		return 0, false, err
	}

	c.mu.RLock()
	lot, ok := c.table[sym]
	c.mu.RUnlock()

	if ok {
		metrics.IncLotLookup("hit")
	} else {
		metrics.IncLotLookup("miss")
	}
	return lot, ok, nil
}

// Search lists symbols containing the query, refreshing the table first
// when stale.
func (c *Cache) Search(ctx context.Context, query string, limit int) ([]Match, error) {
	if err := c.ensureFresh(ctx, false); err != nil {
		return nil, err
	}
	c.mu.RLock()
	t := c.table
	c.mu.RUnlock()
	return t.search(query, limit), nil
}

// Stats returns details of the loaded table.
func (c *Cache) Stats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return Stats{Symbols: len(c.table), LoadedAt: c.loadedAt, SourceURL: c.sourceURL}
}
