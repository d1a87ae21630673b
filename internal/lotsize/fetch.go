package lotsize

import "context"

// fetcher downloads contract archives from the publisher's CDN.
type fetcher struct {
	web *publisherClient
}

// Fetch primes the gate cookies and downloads one archive. Non-2xx is an
// error; the body comes back raw (still gzipped) for the parser.
func (f *fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	f.web.prime(ctx)

	status, body, err := f.web.get(ctx, url, archiveTimeout)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	if status < 200 || status > 299 {
		return nil, &FetchError{URL: url, StatusCode: status}
	}
	return body, nil
}
