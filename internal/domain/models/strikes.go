package models

// StrikeQuery carries the normalized parameters for an option-chain
// strike listing. Right is lowercase call or put; the service decides
// which casing variant the broker ultimately accepts.
type StrikeQuery struct {
	StockCode    string
	ExchangeCode string
	ExpiryDate   string
	Right        string
}

// StrikeList is the distilled option chain for one expiry: the strike
// ladder plus the spot price, when the chain carried one.
type StrikeList struct {
	Exchange   string
	Symbol     string
	ExpiryDate string
	Right      string // Right variant the broker accepted
	SpotPrice  *float64
	Strikes    []float64 // Ascending, deduplicated
}
