package breeze

import "context"

// API is the slice of the Breeze client the relay consumes. *Client
// implements it; tests substitute fakes.
type API interface {
	GetQuotes(ctx context.Context, p QuoteParams) (*Envelope, error)
	GetOptionChain(ctx context.Context, p OptionChainParams) (*Envelope, error)
}

var _ API = (*Client)(nil)

// QuoteParams mirrors the Breeze quotes endpoint body. Optional fields
// are omitted from the payload when blank.
type QuoteParams struct {
	StockCode    string `json:"stock_code"`
	ExchangeCode string `json:"exchange_code"`
	ProductType  string `json:"product_type,omitempty"`
	ExpiryDate   string `json:"expiry_date,omitempty"`
	Right        string `json:"right,omitempty"`
	StrikePrice  string `json:"strike_price,omitempty"`
}

// OptionChainParams mirrors the option-chain endpoint body.
type OptionChainParams struct {
	StockCode    string `json:"stock_code"`
	ExchangeCode string `json:"exchange_code"`
	ProductType  string `json:"product_type"`
	ExpiryDate   string `json:"expiry_date"`
	Right        string `json:"right"`
}

// GetQuotes fetches quote rows for one instrument.
func (c *Client) GetQuotes(ctx context.Context, p QuoteParams) (*Envelope, error) {
	return c.do(ctx, pathQuotes, p)
}

// GetOptionChain fetches the option chain for one underlying, expiry and
// right.
func (c *Client) GetOptionChain(ctx context.Context, p OptionChainParams) (*Envelope, error) {
	return c.do(ctx, pathOptionChain, p)
}
