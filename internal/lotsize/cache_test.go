package lotsize

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

type fakeLocator struct {
	url   string
	err   error
	calls atomic.Int64
}

func (f *fakeLocator) LatestURL(ctx context.Context) (string, error) {
	f.calls.Add(1)
	if f.err != nil {
		return "", f.err
	}
	return f.url, nil
}

type fakeFetcher struct {
	mu    sync.Mutex
	data  []byte
	err   error
	delay time.Duration
	calls atomic.Int64
}

func (f *fakeFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	f.calls.Add(1)
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return f.data, nil
}

func (f *fakeFetcher) set(data []byte, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data = data
	f.err = err
}

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock() *testClock {
	return &testClock{now: time.Date(2026, 2, 15, 9, 0, 0, 0, time.UTC)}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func testTable(t *testing.T) []byte {
	t.Helper()
	return gzipCSV(t, "SYMBOL,MARKET LOT,INSTRUMENT\nTCS,175,OPTSTK\nNIFTY,75,OPTIDX\nBANKNIFTY,35,OPTIDX\n")
}

func TestLookup_LazyLoadAndReuse(t *testing.T) {
	loc := &fakeLocator{url: "https://archives.example/fo/NSE_FO_contract_15022026.csv.gz"}
	ftch := &fakeFetcher{data: testTable(t)}
	clock := newTestClock()
	c := NewCache(loc, ftch, WithClock(clock.Now))

	lot, ok, err := c.Lookup(context.Background(), "tcs")
	if err != nil || !ok || lot != 175 {
		t.Fatalf("Lookup = (%d, %v, %v), want (175, true, nil)", lot, ok, err)
	}

	// Second hit inside the window: no new fetch.
	if _, _, err := c.Lookup(context.Background(), "NIFTY"); err != nil {
		t.Fatalf("second lookup: %v", err)
	}
	if n := ftch.calls.Load(); n != 1 {
		t.Fatalf("fetch calls = %d, want 1", n)
	}

	st := c.Stats()
	if st.Symbols != 3 || st.SourceURL != loc.url || !st.LoadedAt.Equal(clock.Now()) {
		t.Fatalf("stats = %+v", st)
	}
}

func TestLookup_UnknownSymbolIsNotFound(t *testing.T) {
	c := NewCache(&fakeLocator{url: "u"}, &fakeFetcher{data: testTable(t)}, WithClock(newTestClock().Now))
	lot, ok, err := c.Lookup(context.Background(), "ZOMATO")
	if err != nil || ok || lot != 0 {
		t.Fatalf("Lookup = (%d, %v, %v), want (0, false, nil)", lot, ok, err)
	}
}

func TestLookup_BlankSymbolSkipsRefresh(t *testing.T) {
	ftch := &fakeFetcher{data: testTable(t)}
	c := NewCache(&fakeLocator{url: "u"}, ftch)

	lot, ok, err := c.Lookup(context.Background(), "   ")
	if err != nil || ok || lot != 0 {
		t.Fatalf("Lookup = (%d, %v, %v), want (0, false, nil)", lot, ok, err)
	}
	if ftch.calls.Load() != 0 {
		t.Fatal("blank symbol triggered a fetch")
	}
}

func TestLookup_TTLExpiry(t *testing.T) {
	loc := &fakeLocator{url: "u"}
	ftch := &fakeFetcher{data: testTable(t)}
	clock := newTestClock()
	c := NewCache(loc, ftch, WithClock(clock.Now))

	if _, _, err := c.Lookup(context.Background(), "TCS"); err != nil {
		t.Fatal(err)
	}
	clock.Advance(5 * time.Hour)
	if _, _, err := c.Lookup(context.Background(), "TCS"); err != nil {
		t.Fatal(err)
	}
	if n := ftch.calls.Load(); n != 1 {
		t.Fatalf("fetch calls = %d, want 1 inside the window", n)
	}

	clock.Advance(2 * time.Hour)
	if _, _, err := c.Lookup(context.Background(), "TCS"); err != nil {
		t.Fatal(err)
	}
	if n := ftch.calls.Load(); n != 2 {
		t.Fatalf("fetch calls = %d, want 2 after expiry", n)
	}
}

func TestLookup_RefreshFailurePropagates(t *testing.T) {
	ftch := &fakeFetcher{err: &FetchError{URL: "u", StatusCode: 403}}
	c := NewCache(&fakeLocator{url: "u"}, ftch)

	_, _, err := c.Lookup(context.Background(), "TCS")
	var ferr *FetchError
	if !errors.As(err, &ferr) {
		t.Fatalf("got %v, want *FetchError", err)
	}
}

func TestLookup_DiscoveryFailurePropagates(t *testing.T) {
	loc := &fakeLocator{err: &DiscoveryError{Reason: "no contract file links on listing page"}}
	ftch := &fakeFetcher{}
	c := NewCache(loc, ftch)

	_, _, err := c.Lookup(context.Background(), "TCS")
	var derr *DiscoveryError
	if !errors.As(err, &derr) {
		t.Fatalf("got %v, want *DiscoveryError", err)
	}
	if ftch.calls.Load() != 0 {
		t.Fatal("fetch attempted after failed discovery")
	}
}

func TestLookup_FailureKeepsPreviousTable(t *testing.T) {
	loc := &fakeLocator{url: "u"}
	ftch := &fakeFetcher{data: testTable(t)}
	clock := newTestClock()
	c := NewCache(loc, ftch, WithClock(clock.Now))

	if _, _, err := c.Lookup(context.Background(), "TCS"); err != nil {
		t.Fatal(err)
	}
	loadedAt := c.Stats().LoadedAt

	// Expire and break the upstream: lookups fail, the table stays.
	clock.Advance(7 * time.Hour)
	ftch.set(nil, &FetchError{URL: "u", StatusCode: 503})
	if _, _, err := c.Lookup(context.Background(), "TCS"); err == nil {
		t.Fatal("expected refresh failure")
	}
	if st := c.Stats(); st.Symbols != 3 || !st.LoadedAt.Equal(loadedAt) {
		t.Fatalf("stats after failure = %+v", st)
	}

	// Upstream recovers: next lookup refreshes and serves again.
	ftch.set(testTable(t), nil)
	lot, ok, err := c.Lookup(context.Background(), "TCS")
	if err != nil || !ok || lot != 175 {
		t.Fatalf("Lookup after recovery = (%d, %v, %v)", lot, ok, err)
	}
}

func TestConcurrentLookups_SingleFetch(t *testing.T) {
	loc := &fakeLocator{url: "u"}
	ftch := &fakeFetcher{data: testTable(t), delay: 25 * time.Millisecond}
	c := NewCache(loc, ftch, WithClock(newTestClock().Now))

	const n = 20
	var wg sync.WaitGroup
	errs := make([]error, n)
	lots := make([]int, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			lot, ok, err := c.Lookup(context.Background(), "TCS")
			if err == nil && !ok {
				err = errors.New("symbol missing")
			}
			lots[i], errs[i] = lot, err
		}(i)
	}
	wg.Wait()

	for i := 0; i < n; i++ {
		if errs[i] != nil {
			t.Fatalf("lookup %d: %v", i, errs[i])
		}
		if lots[i] != 175 {
			t.Fatalf("lookup %d = %d, want 175", i, lots[i])
		}
	}
	if got := ftch.calls.Load(); got != 1 {
		t.Fatalf("fetch calls = %d, want exactly 1", got)
	}
}

func TestRefresh_ForceBypassesFreshness(t *testing.T) {
	loc := &fakeLocator{url: "u"}
	ftch := &fakeFetcher{data: testTable(t)}
	clock := newTestClock()
	c := NewCache(loc, ftch, WithClock(clock.Now))

	if err := c.Refresh(context.Background(), false); err != nil {
		t.Fatal(err)
	}
	// Not forced and still fresh: no-op.
	if err := c.Refresh(context.Background(), false); err != nil {
		t.Fatal(err)
	}
	if n := ftch.calls.Load(); n != 1 {
		t.Fatalf("fetch calls = %d, want 1", n)
	}

	// Forced: refetches and picks up new data.
	ftch.set(gzipCSV(t, "SYMBOL,MARKET LOT\nTCS,200\n"), nil)
	if err := c.Refresh(context.Background(), true); err != nil {
		t.Fatal(err)
	}
	if n := ftch.calls.Load(); n != 2 {
		t.Fatalf("fetch calls = %d, want 2 after force", n)
	}
	lot, ok, err := c.Lookup(context.Background(), "TCS")
	if err != nil || !ok || lot != 200 {
		t.Fatalf("Lookup = (%d, %v, %v), want updated 200", lot, ok, err)
	}
}

func TestSearch(t *testing.T) {
	c := NewCache(&fakeLocator{url: "u"}, &fakeFetcher{data: testTable(t)}, WithClock(newTestClock().Now))

	matches, err := c.Search(context.Background(), "nifty", 0)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	want := []Match{{"BANKNIFTY", 35}, {"NIFTY", 75}}
	if len(matches) != len(want) {
		t.Fatalf("matches = %v, want %v", matches, want)
	}
	for i := range want {
		if matches[i] != want[i] {
			t.Fatalf("matches = %v, want %v", matches, want)
		}
	}

	limited, err := c.Search(context.Background(), "NIFTY", 1)
	if err != nil || len(limited) != 1 || limited[0].Symbol != "BANKNIFTY" {
		t.Fatalf("limited = %v, %v", limited, err)
	}
}

func TestStats_BeforeFirstLoad(t *testing.T) {
	c := NewCache(&fakeLocator{url: "u"}, &fakeFetcher{})
	st := c.Stats()
	if st.Symbols != 0 || st.SourceURL != "" || !st.LoadedAt.IsZero() {
		t.Fatalf("stats = %+v, want zero values", st)
	}
}
