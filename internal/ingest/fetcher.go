package ingest

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/newsroom-tools/doppel/internal/cache"
	"github.com/newsroom-tools/doppel/internal/extract"
	"github.com/newsroom-tools/doppel/internal/model"
	"github.com/newsroom-tools/doppel/internal/util"
	"github.com/newsroom-tools/doppel/internal/worker"
)

// Fetcher retrieves article body text for items whose ingestion record
// carries none. It is polite by construction: robots.txt is honored,
// requests are rate-limited per domain, and responses are cached.
type Fetcher struct {
	httpClient *http.Client
	userAgent  string
	maxBytes   int64
	robots     *util.RobotsChecker
	limiter    *worker.Limiter
	cache      cache.Cache
	cacheTTL   time.Duration
}

// NewFetcher creates a fetcher from the HTTP and cache configuration.
// A nil bodyCache disables caching.
func NewFetcher(cfg model.HTTPConfig, bodyCache cache.Cache, cacheTTL time.Duration) *Fetcher {
	return &Fetcher{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		userAgent: cfg.UserAgent,
		maxBytes:  cfg.MaxBodyBytes,
		robots:    util.NewRobotsChecker(cfg.UserAgent, cfg.Timeout),
		limiter:   worker.NewLimiter(cfg.RequestsPerSec, cfg.Burst),
		cache:     bodyCache,
		cacheTTL:  cacheTTL,
	}
}

// FetchBody retrieves the visible text of the page at rawURL.
func (f *Fetcher) FetchBody(ctx context.Context, rawURL string) (string, error) {
	if f.cache != nil {
		if body, found := f.cache.Get(cache.Key(rawURL)); found {
			return string(body), nil
		}
	}

	allowed, crawlDelay, err := f.robots.CanFetch(ctx, rawURL)
	if err != nil {
		return "", fmt.Errorf("robots check: %w", err)
	}
	if !allowed {
		return "", fmt.Errorf("disallowed by robots.txt: %s", rawURL)
	}

	if err := f.limiter.Wait(ctx, rawURL); err != nil {
		return "", fmt.Errorf("rate limit: %w", err)
	}
	if crawlDelay > 0 {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(crawlDelay):
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("unexpected status: %d %s", resp.StatusCode, resp.Status)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes))
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}

	text := extract.VisibleText(string(raw))

	if f.cache != nil {
		_ = f.cache.Set(cache.Key(rawURL), []byte(text), f.cacheTTL)
	}

	return text, nil
}

// EnrichBodies fills in missing bodies from each item's source URL,
// fetching in parallel. Items that already have a body, have no source
// URL, or fail to fetch pass through unchanged; enrichment is
// best-effort and never blocks the dedup pass.
func (f *Fetcher) EnrichBodies(ctx context.Context, items []model.ContentItem, workers int) []model.ContentItem {
	pool := worker.NewPool(workers)
	pool.Start()

	submitted := 0
	for i := range items {
		if items[i].Body != "" || items[i].SourceURL == "" {
			continue
		}
		pool.Submit(&fetchJob{ctx: ctx, fetcher: f, index: i, url: items[i].SourceURL})
		submitted++
	}

	if submitted == 0 {
		pool.Shutdown()
		return items
	}

	enriched := append([]model.ContentItem(nil), items...)
	for _, res := range pool.Wait() {
		fr, ok := res.(*fetchResult)
		if !ok || fr.err != nil {
			continue
		}
		enriched[fr.index].Body = fr.body
	}

	return enriched
}

// fetchJob fetches one body on the worker pool. The caller's context
// rides along so cancelling the enrichment run cancels its fetches.
type fetchJob struct {
	ctx     context.Context
	fetcher *Fetcher
	index   int
	url     string
}

func (j *fetchJob) Execute(poolCtx context.Context) worker.Result {
	ctx := j.ctx
	if ctx == nil {
		ctx = poolCtx
	}
	body, err := j.fetcher.FetchBody(ctx, j.url)
	return &fetchResult{index: j.index, body: body, err: err}
}

type fetchResult struct {
	index int
	body  string
	err   error
}

func (r *fetchResult) GetError() error {
	return r.err
}
