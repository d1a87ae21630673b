package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"breezerelay/internal/breeze"
	"breezerelay/internal/domain/models"
	"breezerelay/internal/lotsize"
	"breezerelay/internal/service"
)

type mockQuoteService struct {
	quoteRes   *models.QuoteResult
	quoteErr   error
	strikeRes  *models.StrikeList
	strikeErr  error
	lastQuote  models.QuoteQuery
	lastStrike models.StrikeQuery
}

func (m *mockQuoteService) Quote(_ context.Context, q models.QuoteQuery) (*models.QuoteResult, error) {
	m.lastQuote = q
	return m.quoteRes, m.quoteErr
}

func (m *mockQuoteService) OptionStrikes(_ context.Context, q models.StrikeQuery) (*models.StrikeList, error) {
	m.lastStrike = q
	return m.strikeRes, m.strikeErr
}

var _ service.QuoteService = (*mockQuoteService)(nil)

type mockLots struct {
	lot        int
	found      bool
	lookupErr  error
	refreshErr error
	searchRes  []lotsize.Match
	searchErr  error
	stats      lotsize.Stats
	forced     []bool
}

func (m *mockLots) Lookup(_ context.Context, _ string) (int, bool, error) {
	return m.lot, m.found, m.lookupErr
}

func (m *mockLots) Search(_ context.Context, _ string, _ int) ([]lotsize.Match, error) {
	return m.searchRes, m.searchErr
}

func (m *mockLots) Refresh(_ context.Context, force bool) error {
	m.forced = append(m.forced, force)
	return m.refreshErr
}

func (m *mockLots) Stats() lotsize.Stats { return m.stats }

var _ lotsize.Provider = (*mockLots)(nil)

func setupHandlerRouter(svc service.QuoteService, lots lotsize.Provider) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(svc, lots)
	r := gin.New()
	r.POST("/quote", h.GetQuote)
	r.POST("/option_strikes", h.GetOptionStrikes)
	r.GET("/lot_size/:symbol", h.GetLotSize)
	r.POST("/lot_size/refresh", h.RefreshLotSizes)
	r.GET("/instruments", h.SearchInstruments)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid json: %v: %s", err, w.Body.String())
	}
	return out
}

func intPtr(v int) *int { return &v }

func TestGetQuote_TableDriven(t *testing.T) {
	okResult := &models.QuoteResult{
		Quote:   models.Quote{Exchange: "NFO", Symbol: "TCS", LTP: 123.45},
		LotSize: intPtr(175),
		Raw:     map[string]any{"ltp": 123.45},
		RawKeys: []string{"ltp"},
	}

	cases := []struct {
		name   string
		svc    *mockQuoteService
		body   string
		status int
		assert func(t *testing.T, out map[string]any)
	}{
		{
			name:   "invalid json",
			svc:    &mockQuoteService{},
			body:   "{not json",
			status: http.StatusBadRequest,
		},
		{
			name:   "missing stock code",
			svc:    &mockQuoteService{},
			body:   `{"exchange_code":"NSE"}`,
			status: http.StatusBadRequest,
		},
		{
			name:   "missing exchange code",
			svc:    &mockQuoteService{},
			body:   `{"stock_code":"TCS"}`,
			status: http.StatusBadRequest,
		},
		{
			name:   "collaborator failure keeps http 200",
			svc:    &mockQuoteService{quoteErr: &service.CollaboratorError{Payload: map[string]any{"Error": "no data"}}},
			body:   `{"stock_code":"TCS","exchange_code":"NSE"}`,
			status: http.StatusOK,
			assert: func(t *testing.T, out map[string]any) {
				if out["status"] != "error" {
					t.Fatalf("status = %v", out["status"])
				}
				errObj, ok := out["error"].(map[string]any)
				if !ok || errObj["Error"] != "no data" {
					t.Fatalf("error payload = %v", out["error"])
				}
				if _, present := out["attempted_right_values"]; present {
					t.Fatal("attempted_right_values must be omitted on the quote path")
				}
			},
		},
		{
			name:   "missing credentials is a server error",
			svc:    &mockQuoteService{quoteErr: &breeze.ConfigError{Missing: []string{"BREEZE_API_KEY"}}},
			body:   `{"stock_code":"TCS","exchange_code":"NSE"}`,
			status: http.StatusInternalServerError,
		},
		{
			name:   "success",
			svc:    &mockQuoteService{quoteRes: okResult},
			body:   `{"stock_code":"tcs","exchange_code":"nfo","product_type":"futures"}`,
			status: http.StatusOK,
			assert: func(t *testing.T, out map[string]any) {
				if out["status"] != "ok" {
					t.Fatalf("status = %v", out["status"])
				}
				quote := out["quote"].(map[string]any)
				if quote["ltp"] != 123.45 || quote["symbol"] != "TCS" {
					t.Fatalf("quote = %v", quote)
				}
				meta := out["meta"].(map[string]any)
				if meta["lot_size"] != float64(175) {
					t.Fatalf("meta = %v", meta)
				}
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := setupHandlerRouter(tc.svc, &mockLots{})
			w := postJSON(t, r, "/quote", tc.body)
			if w.Code != tc.status {
				t.Fatalf("expected %d, got %d: %s", tc.status, w.Code, w.Body.String())
			}
			if tc.assert != nil {
				tc.assert(t, decodeBody(t, w))
			}
		})
	}
}

func TestGetQuote_ForwardsFields(t *testing.T) {
	svc := &mockQuoteService{quoteRes: &models.QuoteResult{}}
	r := setupHandlerRouter(svc, &mockLots{})

	w := postJSON(t, r, "/quote",
		`{"stock_code":"NIFTY","exchange_code":"NFO","product_type":"options","expiry_date":"26-Mar-2026","strike_price":"22500","right":"call"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	want := models.QuoteQuery{
		StockCode: "NIFTY", ExchangeCode: "NFO", ProductType: "options",
		ExpiryDate: "26-Mar-2026", StrikePrice: "22500", Right: "call",
	}
	if svc.lastQuote != want {
		t.Fatalf("query = %+v, want %+v", svc.lastQuote, want)
	}
}

func TestGetOptionStrikes_TableDriven(t *testing.T) {
	spot := 22480.5
	okResult := &models.StrikeList{
		Exchange: "NFO", Symbol: "NIFTY", ExpiryDate: "26-Mar-2026",
		Right: "Call", SpotPrice: &spot, Strikes: []float64{22400, 22500},
	}

	cases := []struct {
		name   string
		svc    *mockQuoteService
		body   string
		status int
		assert func(t *testing.T, out map[string]any)
	}{
		{
			name:   "right rejected",
			svc:    &mockQuoteService{},
			body:   `{"stock_code":"NIFTY","exchange_code":"NFO","expiry_date":"26-Mar-2026","right":"straddle"}`,
			status: http.StatusBadRequest,
		},
		{
			name:   "right missing",
			svc:    &mockQuoteService{},
			body:   `{"stock_code":"NIFTY","exchange_code":"NFO","expiry_date":"26-Mar-2026"}`,
			status: http.StatusBadRequest,
		},
		{
			name:   "expiry missing",
			svc:    &mockQuoteService{},
			body:   `{"stock_code":"NIFTY","exchange_code":"NFO","right":"call"}`,
			status: http.StatusBadRequest,
		},
		{
			name: "both variants empty",
			svc: &mockQuoteService{strikeErr: &service.CollaboratorError{
				Payload:         map[string]any{"Error": "no chain"},
				AttemptedRights: []string{"call", "Call"},
			}},
			body:   `{"stock_code":"NIFTY","exchange_code":"NFO","expiry_date":"26-Mar-2026","right":"call"}`,
			status: http.StatusOK,
			assert: func(t *testing.T, out map[string]any) {
				if out["status"] != "error" {
					t.Fatalf("status = %v", out["status"])
				}
				attempted, ok := out["attempted_right_values"].([]any)
				if !ok || len(attempted) != 2 || attempted[0] != "call" || attempted[1] != "Call" {
					t.Fatalf("attempted = %v", out["attempted_right_values"])
				}
			},
		},
		{
			name:   "success",
			svc:    &mockQuoteService{strikeRes: okResult},
			body:   `{"stock_code":"NIFTY","exchange_code":"NFO","expiry_date":"26-Mar-2026","right":"call"}`,
			status: http.StatusOK,
			assert: func(t *testing.T, out map[string]any) {
				if out["status"] != "ok" || out["right"] != "Call" {
					t.Fatalf("status/right = %v/%v", out["status"], out["right"])
				}
				if out["count"] != float64(2) || out["spot_price"] != 22480.5 {
					t.Fatalf("count/spot = %v/%v", out["count"], out["spot_price"])
				}
				strikes := out["strikes"].([]any)
				if len(strikes) != 2 || strikes[0] != float64(22400) {
					t.Fatalf("strikes = %v", strikes)
				}
				if _, present := out["attempted_right_values"]; present {
					t.Fatal("attempted_right_values must be omitted on success")
				}
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := setupHandlerRouter(tc.svc, &mockLots{})
			w := postJSON(t, r, "/option_strikes", tc.body)
			if w.Code != tc.status {
				t.Fatalf("expected %d, got %d: %s", tc.status, w.Code, w.Body.String())
			}
			if tc.assert != nil {
				tc.assert(t, decodeBody(t, w))
			}
		})
	}
}

func TestGetOptionStrikes_NormalizesRight(t *testing.T) {
	svc := &mockQuoteService{strikeRes: &models.StrikeList{Right: "put"}}
	r := setupHandlerRouter(svc, &mockLots{})

	w := postJSON(t, r, "/option_strikes",
		`{"stock_code":"NIFTY","exchange_code":"NFO","expiry_date":"26-Mar-2026","right":" PUT "}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	if svc.lastStrike.Right != "put" {
		t.Fatalf("service received right %q, want put", svc.lastStrike.Right)
	}
}

func TestGetLotSize(t *testing.T) {
	cases := []struct {
		name   string
		lots   *mockLots
		assert func(t *testing.T, out map[string]any)
	}{
		{
			name: "known symbol",
			lots: &mockLots{lot: 175, found: true, stats: lotsize.Stats{SourceURL: "https://archives.example/fo/x.csv.gz"}},
			assert: func(t *testing.T, out map[string]any) {
				if out["status"] != "ok" || out["symbol"] != "TCS" {
					t.Fatalf("status/symbol = %v/%v", out["status"], out["symbol"])
				}
				if out["lot_size"] != float64(175) {
					t.Fatalf("lot_size = %v", out["lot_size"])
				}
				if out["source_url"] != "https://archives.example/fo/x.csv.gz" {
					t.Fatalf("source_url = %v", out["source_url"])
				}
			},
		},
		{
			name: "unknown symbol is null not error",
			lots: &mockLots{found: false},
			assert: func(t *testing.T, out map[string]any) {
				if out["status"] != "ok" {
					t.Fatalf("status = %v", out["status"])
				}
				v, present := out["lot_size"]
				if !present || v != nil {
					t.Fatalf("lot_size = %v (present=%v), want null", v, present)
				}
			},
		},
		{
			name: "refresh failure reported in band",
			lots: &mockLots{lookupErr: &lotsize.DiscoveryError{Reason: "listing page returned status 503"}},
			assert: func(t *testing.T, out map[string]any) {
				if out["status"] != "error" {
					t.Fatalf("status = %v", out["status"])
				}
				msg, ok := out["error"].(string)
				if !ok || !strings.Contains(msg, "503") {
					t.Fatalf("error = %v", out["error"])
				}
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := setupHandlerRouter(&mockQuoteService{}, tc.lots)
			req := httptest.NewRequest(http.MethodGet, "/lot_size/tcs", nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != http.StatusOK {
				t.Fatalf("status = %d", w.Code)
			}
			tc.assert(t, decodeBody(t, w))
		})
	}
}

func TestRefreshLotSizes(t *testing.T) {
	lots := &mockLots{stats: lotsize.Stats{Symbols: 212, SourceURL: "https://archives.example/fo/x.csv.gz"}}
	r := setupHandlerRouter(&mockQuoteService{}, lots)

	w := postJSON(t, r, "/lot_size/refresh", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	out := decodeBody(t, w)
	if out["status"] != "ok" || out["symbols"] != float64(212) {
		t.Fatalf("body = %v", out)
	}
	if len(lots.forced) != 1 || !lots.forced[0] {
		t.Fatalf("refresh force calls = %v, want [true]", lots.forced)
	}
}

func TestRefreshLotSizes_Failure(t *testing.T) {
	lots := &mockLots{refreshErr: &lotsize.FetchError{URL: "u", StatusCode: 403}}
	r := setupHandlerRouter(&mockQuoteService{}, lots)

	w := postJSON(t, r, "/lot_size/refresh", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if out := decodeBody(t, w); out["status"] != "error" {
		t.Fatalf("body = %v", out)
	}
}

func TestSearchInstruments(t *testing.T) {
	lots := &mockLots{
		searchRes: []lotsize.Match{{Symbol: "BANKNIFTY", LotSize: 35}, {Symbol: "NIFTY", LotSize: 75}},
		stats:     lotsize.Stats{SourceURL: "https://archives.example/fo/x.csv.gz"},
	}
	r := setupHandlerRouter(&mockQuoteService{}, lots)

	req := httptest.NewRequest(http.MethodGet, "/instruments?q=nif&limit=5", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	out := decodeBody(t, w)
	if out["status"] != "ok" || out["count"] != float64(2) || out["query"] != "nif" {
		t.Fatalf("body = %v", out)
	}
	matches := out["matches"].([]any)
	first := matches[0].(map[string]any)
	if first["symbol"] != "BANKNIFTY" || first["lot_size"] != float64(35) {
		t.Fatalf("matches = %v", matches)
	}
}

func TestSearchInstruments_Validation(t *testing.T) {
	r := setupHandlerRouter(&mockQuoteService{}, &mockLots{})

	for _, path := range []string{"/instruments", "/instruments?q=", "/instruments?q=nif&limit=x", "/instruments?q=nif&limit=-1"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("%s: status = %d, want 400", path, w.Code)
		}
	}
}
