// Package breeze is a minimal client for the ICICI Direct Breeze REST
// API, covering the slice the relay needs: quotes and option chains.
package breeze

import (
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"strings"
	"sync"
	"time"
)

const (
	// DefaultBaseURL is the production Breeze API root.
	DefaultBaseURL = "https://api.icicidirect.com/breezeapi/api/v1"

	defaultTimeout = 30 * time.Second
)

// Credentials are the secrets a Breeze session is built from. The session
// token is the short-lived value the user copies out of the Breeze login
// flow; the API session is negotiated from it on first use.
type Credentials struct {
	APIKey       string
	APISecret    string
	SessionToken string
}

// ConfigError reports missing broker credentials. Credentials are checked
// at call time, not construction time, so the relay can boot without them.
type ConfigError struct {
	Missing []string
}

func (e *ConfigError) Error() string {
	return "breeze credentials not configured: " + strings.Join(e.Missing, ", ")
}

// Client talks to the Breeze REST API. Safe for concurrent use.
type Client struct {
	baseURL string
	creds   Credentials
	httpc   *http.Client
	now     func() time.Time

	mu         sync.Mutex
	apiSession string // negotiated via customerdetails, cached for the client's lifetime
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API root. Used by tests against mock servers.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpc = h }
}

// WithClock overrides the timestamp source used for request signing.
func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

// NewClient builds a Breeze client. Credentials may be empty here; every
// call validates them and fails with *ConfigError when absent.
func NewClient(creds Credentials, opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		creds:   creds,
		httpc:   &http.Client{Timeout: defaultTimeout},
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CloseIdleConnections releases kept-alive upstream connections.
func (c *Client) CloseIdleConnections() { c.httpc.CloseIdleConnections() }

func (c *Client) checkCredentials() error {
	var missing []string
	if strings.TrimSpace(c.creds.APIKey) == "" {
		missing = append(missing, "BREEZE_API_KEY")
	}
	if strings.TrimSpace(c.creds.APISecret) == "" {
		missing = append(missing, "BREEZE_API_SECRET")
	}
	if strings.TrimSpace(c.creds.SessionToken) == "" {
		missing = append(missing, "BREEZE_SESSION_TOKEN")
	}
	if len(missing) > 0 {
		return &ConfigError{Missing: missing}
	}
	return nil
}

// signTimestamp renders the wall clock in the exact form the Breeze
// checksum scheme expects: second precision with a fixed .000Z suffix.
func (c *Client) signTimestamp() string {
	return c.now().UTC().Format("2006-01-02T15:04:05") + ".000Z"
}

func checksum(timestamp, body, secret string) string {
	sum := sha256.Sum256([]byte(timestamp + body + secret))
	return hex.EncodeToString(sum[:])
}
