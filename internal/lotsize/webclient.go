package lotsize

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"time"

	"breezerelay/internal/logger"
)

// Per-call budgets for the publisher's endpoints. The anti-bot gate makes
// responses slow, but every call stays bounded and none is retried.
const (
	primeTimeout   = 10 * time.Second
	listingTimeout = 15 * time.Second
	archiveTimeout = 20 * time.Second
)

// publisherClient wraps an http.Client with a cookie jar and the
// browser-shaped headers the NSE site expects; requests without them are
// rejected by the bot gate.
type publisherClient struct {
	hc      *http.Client
	homeURL string
}

func newPublisherClient(homeURL string) *publisherClient {
	jar, _ := cookiejar.New(nil)
	return &publisherClient{
		hc:      &http.Client{Jar: jar},
		homeURL: homeURL,
	}
}

func setBrowserHeaders(req *http.Request) {
	req.Header.Set("User-Agent", "Mozilla/5.0")
	req.Header.Set("Accept", "*/*")
	req.Header.Set("Referer", "https://www.nseindia.com/")
}

// prime hits the publisher's home page to pick up gate cookies. Failures
// are logged and ignored: the follow-up request may still succeed, and
// when it doesn't, its own error is the meaningful one.
func (p *publisherClient) prime(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, primeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.homeURL, nil)
	if err != nil {
		return
	}
	setBrowserHeaders(req)

	resp, err := p.hc.Do(req)
	if err != nil {
		logger.L().Debug().Err(err).Msg("publisher priming request failed")
		return
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}

// get performs one browser-shaped GET within the given budget and
// returns the status plus the full body.
func (p *publisherClient) get(ctx context.Context, url string, timeout time.Duration) (int, []byte, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, nil, fmt.Errorf("build request: %w", err)
	}
	setBrowserHeaders(req)

	resp, err := p.hc.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("read body: %w", err)
	}
	return resp.StatusCode, body, nil
}

func (p *publisherClient) closeIdleConnections() { p.hc.CloseIdleConnections() }
