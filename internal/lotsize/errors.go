package lotsize

import "fmt"

// DiscoveryError means the current contract file could not be located on
// the publisher's listing page.
type DiscoveryError struct {
	Reason string
	Err    error
}

func (e *DiscoveryError) Error() string {
	if e.Err != nil {
		return "discover contract file: " + e.Reason + ": " + e.Err.Error()
	}
	return "discover contract file: " + e.Reason
}

func (e *DiscoveryError) Unwrap() error { return e.Err }

// FetchError means the archive download failed at the HTTP level.
// StatusCode is zero when the request itself never completed.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ParseError means the downloaded archive could not be turned into a
// usable lot-size table.
type ParseError struct {
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return "parse contract file: " + e.Reason + ": " + e.Err.Error()
	}
	return "parse contract file: " + e.Reason
}

func (e *ParseError) Unwrap() error { return e.Err }
