package breeze

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"breezerelay/internal/logger"
	"breezerelay/internal/metrics"
)

const (
	pathCustomerDetails = "/customerdetails"
	pathQuotes          = "/quotes"
	pathOptionChain     = "/optionchain"
)

// Envelope is the wrapper every Breeze endpoint returns:
// {"Success": ..., "Status": ..., "Error": ...}. Success is normally a
// list of records; Raw preserves the whole decoded body so failures can
// be passed through to the consumer untouched.
type Envelope struct {
	Raw     map[string]any
	Success []Row
}

// Empty reports whether the envelope carries no usable records.
func (e *Envelope) Empty() bool { return e == nil || len(e.Success) == 0 }

// APIError is a non-2xx response from the Breeze API.
type APIError struct {
	StatusCode int
	Message    string
	Payload    any // decoded JSON body when possible, raw text otherwise
}

func (e *APIError) Error() string {
	return fmt.Sprintf("breeze api: %d %s", e.StatusCode, e.Message)
}

// session returns the negotiated API session token, performing the
// customerdetails exchange on first use. Callers must hold no locks.
func (c *Client) session(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.apiSession != "" {
		return c.apiSession, nil
	}

	body, err := json.Marshal(map[string]string{
		"SessionToken": c.creds.SessionToken,
		"AppKey":       c.creds.APIKey,
	})
	if err != nil {
		return "", fmt.Errorf("encode session request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+pathCustomerDetails, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build session request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	env, err := c.send(req, pathCustomerDetails)
	if err != nil {
		return "", err
	}
	obj, _ := env.Raw["Success"].(map[string]any)
	tok, _ := obj["session_token"].(string)
	if tok == "" {
		return "", fmt.Errorf("customerdetails: no session_token in response")
	}
	c.apiSession = tok
	logger.L().Debug().Msg("breeze api session established")
	return tok, nil
}

// do issues one signed request. The Breeze API reads JSON bodies on GET;
// the checksum covers timestamp, body and the API secret.
func (c *Client) do(ctx context.Context, path string, payload any) (*Envelope, error) {
	if err := c.checkCredentials(); err != nil {
		return nil, err
	}
	sess, err := c.session(ctx)
	if err != nil {
		return nil, fmt.Errorf("breeze session: %w", err)
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}
	ts := c.signTimestamp()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Checksum", "token "+checksum(ts, string(body), c.creds.APISecret))
	req.Header.Set("X-Timestamp", ts)
	req.Header.Set("X-AppKey", c.creds.APIKey)
	req.Header.Set("X-SessionToken", sess)

	return c.send(req, path)
}

func (c *Client) send(req *http.Request, path string) (*Envelope, error) {
	start := time.Now()
	resp, err := c.httpc.Do(req)
	if err != nil {
		metrics.IncBrokerRequest(path, "error")
		return nil, fmt.Errorf("breeze %s: %w", path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.IncBrokerRequest(path, "error")
		return nil, fmt.Errorf("breeze %s: read body: %w", path, err)
	}

	logger.L().Debug().
		Str("endpoint", path).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("breeze request")

	if resp.StatusCode < http.StatusOK || resp.StatusCode > 299 {
		metrics.IncBrokerRequest(path, "error")
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    http.StatusText(resp.StatusCode),
			Payload:    decodeLoose(raw),
		}
	}

	env, err := parseEnvelope(raw)
	if err != nil {
		metrics.IncBrokerRequest(path, "error")
		return nil, fmt.Errorf("breeze %s: %w", path, err)
	}
	metrics.IncBrokerRequest(path, "ok")
	return env, nil
}

// decodeLoose decodes JSON when it can and falls back to the body text.
func decodeLoose(b []byte) any {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return string(b)
	}
	return v
}

// parseEnvelope decodes a 2xx Breeze body. Success entries that are not
// objects are dropped rather than failing the whole response.
func parseEnvelope(b []byte) (*Envelope, error) {
	var raw map[string]any
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	env := &Envelope{Raw: raw}
	if list, ok := raw["Success"].([]any); ok {
		for _, item := range list {
			if m, ok := item.(map[string]any); ok {
				env.Success = append(env.Success, Row(m))
			}
		}
	}
	return env, nil
}
