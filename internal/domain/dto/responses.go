package dto

import (
	"time"

	"breezerelay/internal/domain/models"
)

// QuoteResponse is the JSON structure returned by POST /quote.
//
// The quote object carries a stable flat schema for the spreadsheet
// client; raw and raw_keys expose the untouched first broker row for
// debugging upstream field drift.
type QuoteResponse struct {
	Status  string         `json:"status" example:"ok"`
	Quote   models.Quote   `json:"quote"`
	Meta    QuoteMeta      `json:"meta"`
	Raw     map[string]any `json:"raw"`      // First broker row, verbatim
	RawKeys []string       `json:"raw_keys"` // Sorted keys of the raw row
}

// QuoteMeta carries enrichment metadata attached to a quote.
type QuoteMeta struct {
	LotSize *int `json:"lot_size" example:"250"` // null when unresolved
}

// StrikeListResponse is the JSON structure returned by POST /option_strikes
// on success.
type StrikeListResponse struct {
	Status     string    `json:"status" example:"ok"`
	Exchange   string    `json:"exchange" example:"NFO"`
	Symbol     string    `json:"symbol" example:"NIFTY"`
	ExpiryDate string    `json:"expiry_date" example:"2026-03-26T06:00:00.000Z"`
	Right      string    `json:"right" example:"Call"` // Right variant the broker accepted
	SpotPrice  *float64  `json:"spot_price"`
	Count      int       `json:"count" example:"92"`
	Strikes    []float64 `json:"strikes"` // Ascending, deduplicated
}

// LotSizeResponse is the JSON structure returned by GET /lot_size/{symbol}.
type LotSizeResponse struct {
	Status    string `json:"status" example:"ok"`
	Symbol    string `json:"symbol" example:"TCS"`
	LotSize   *int   `json:"lot_size" example:"175"` // null when the symbol is absent
	SourceURL string `json:"source_url"`             // Contract file the table was loaded from
}

// RefreshResponse is the JSON structure returned by POST /lot_size/refresh.
type RefreshResponse struct {
	Status    string    `json:"status" example:"ok"`
	Symbols   int       `json:"symbols" example:"212"`
	SourceURL string    `json:"source_url"`
	LoadedAt  time.Time `json:"loaded_at"`
}

// InstrumentMatch is one hit from the instrument search endpoint.
type InstrumentMatch struct {
	Symbol  string `json:"symbol" example:"NIFTY"`
	LotSize int    `json:"lot_size" example:"75"`
}

// InstrumentSearchResponse is the JSON structure returned by
// GET /instruments.
type InstrumentSearchResponse struct {
	Status    string            `json:"status" example:"ok"`
	Query     string            `json:"query" example:"NIF"`
	Count     int               `json:"count" example:"3"`
	Matches   []InstrumentMatch `json:"matches"`
	SourceURL string            `json:"source_url"`
}

// StatusErrorResponse is the body used when an upstream data path fails.
// It is intentionally returned with HTTP 200 so the consuming spreadsheet
// client only ever parses one envelope shape; status discriminates.
type StatusErrorResponse struct {
	Status               string   `json:"status" example:"error"`
	Error                any      `json:"error"`                            // Raw broker payload or error text
	AttemptedRightValues []string `json:"attempted_right_values,omitempty"` // Strike listing only
}
