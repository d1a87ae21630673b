package dto

// QuoteRequest is the JSON body accepted by POST /quote.
//
// stock_code and exchange_code are mandatory; product_type defaults to
// cash. The derivative fields (expiry_date, right, strike_price) are
// forwarded to the broker only when present.
type QuoteRequest struct {
	StockCode    string `json:"stock_code" example:"RELIANCE"`                    // Broker stock code
	ExchangeCode string `json:"exchange_code" example:"NSE"`                      // NSE, BSE or NFO
	ProductType  string `json:"product_type" example:"cash"`                      // cash, futures or options
	ExpiryDate   string `json:"expiry_date" example:"2026-03-26T06:00:00.000Z"`   // Derivatives only
	Right        string `json:"right" example:"call"`                             // Options only
	StrikePrice  string `json:"strike_price" example:"2500"`                      // Options only
}

// StrikeListRequest is the JSON body accepted by POST /option_strikes.
type StrikeListRequest struct {
	StockCode    string `json:"stock_code" example:"NIFTY"`
	ExchangeCode string `json:"exchange_code" example:"NFO"`
	ProductType  string `json:"product_type" example:"options"` // Accepted for compatibility; the chain is always queried as options
	ExpiryDate   string `json:"expiry_date" example:"2026-03-26T06:00:00.000Z"`
	Right        string `json:"right" example:"call"` // call or put
}
