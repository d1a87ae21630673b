package models

// Quote is the flat, spreadsheet-friendly projection of the first row the
// broker returns for a quote request.
//
// The broker's row schema is inconsistent across segments (cash vs
// derivatives) and across API revisions, so every upstream-sourced field
// is kept loosely typed and passed through as received; absent fields
// serialize as null rather than being dropped, keeping the column layout
// stable for the consumer.
type Quote struct {
	Exchange         string `json:"exchange" example:"NSE"`
	Symbol           string `json:"symbol" example:"RELIANCE"`
	LTP              any    `json:"ltp"`
	Open             any    `json:"open"`
	High             any    `json:"high"`
	Low              any    `json:"low"`
	PrevClose        any    `json:"prev_close"`
	Volume           any    `json:"volume"`
	LTT              any    `json:"ltt"`
	BidPrice         any    `json:"bid_price"`
	BidQty           any    `json:"bid_qty"`
	AskPrice         any    `json:"ask_price"`
	AskQty           any    `json:"ask_qty"`
	LTPPercentChange any    `json:"ltp_percent_change"`
	UpperCircuit     any    `json:"upper_circuit"`
	LowerCircuit     any    `json:"lower_circuit"`
	TotalQtyTraded   any    `json:"total_qty_traded"`
	SpotPrice        any    `json:"spot_price"`
	ExpiryDate       any    `json:"expiry_date"`
	StrikePrice      any    `json:"strike_price"`
	Right            any    `json:"right"`
}

// QuoteQuery carries the normalized parameters for a quote request.
// Optional derivative fields are forwarded only when non-empty.
type QuoteQuery struct {
	StockCode    string
	ExchangeCode string
	ProductType  string
	ExpiryDate   string
	StrikePrice  string
	Right        string
}

// QuoteResult is what the quote service hands back to the HTTP layer:
// the shaped quote, the optional lot-size enrichment and the untouched
// broker row it was derived from.
type QuoteResult struct {
	Quote   Quote
	LotSize *int
	Raw     map[string]any
	RawKeys []string
}
