package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"breezerelay/internal/breeze"
	"breezerelay/internal/domain/models"
	"breezerelay/internal/logger"
	"breezerelay/internal/lotsize"
)

// CollaboratorError reports a broker-side failure: a transport or HTTP
// error, or a well-formed response that carried no records. Payload
// holds whatever the broker sent so the consumer sees the upstream
// error verbatim; AttemptedRights lists the right variants tried before
// an option-chain request gave up.
type CollaboratorError struct {
	Payload         any
	AttemptedRights []string
	Err             error
}

func (e *CollaboratorError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("broker request failed: %v", e.Err)
	}
	return "broker returned no records"
}

func (e *CollaboratorError) Unwrap() error { return e.Err }

// QuoteService defines the market-data operations exposed over HTTP.
type QuoteService interface {
	Quote(ctx context.Context, q models.QuoteQuery) (*models.QuoteResult, error)
	OptionStrikes(ctx context.Context, q models.StrikeQuery) (*models.StrikeList, error)
}

type quoteService struct {
	api  breeze.API
	lots lotsize.Provider
}

func NewQuoteService(api breeze.API, lots lotsize.Provider) QuoteService {
	return &quoteService{api: api, lots: lots}
}

// Quote fetches one instrument's quote and flattens the first returned
// row into the stable spreadsheet schema. On NFO the result is enriched
// with the cached lot size; enrichment failures never fail the quote.
func (s *quoteService) Quote(ctx context.Context, q models.QuoteQuery) (*models.QuoteResult, error) {
	q = normalizeQuoteQuery(q)

	env, err := s.api.GetQuotes(ctx, breeze.QuoteParams{
		StockCode:    q.StockCode,
		ExchangeCode: q.ExchangeCode,
		ProductType:  q.ProductType,
		ExpiryDate:   q.ExpiryDate,
		Right:        q.Right,
		StrikePrice:  q.StrikePrice,
	})
	if err != nil {
		return nil, wrapBrokerError(err, nil)
	}
	if env.Empty() {
		return nil, &CollaboratorError{Payload: env.Raw}
	}

	row := env.Success[0]
	res := &models.QuoteResult{
		Quote:   shapeQuote(q, row),
		Raw:     row,
		RawKeys: sortedKeys(row),
	}

	if q.ExchangeCode == "NFO" {
		lot, ok, lerr := s.lots.Lookup(ctx, q.StockCode)
		switch {
		case lerr != nil:
			logger.L().Warn().Err(lerr).Str("symbol", q.StockCode).Msg("lot-size enrichment skipped")
		case ok:
			res.LotSize = &lot
		}
	}
	return res, nil
}

// OptionStrikes lists the strike ladder for one underlying and expiry.
// The broker's accepted right enumeration is inconsistent across
// segments, so the lowercase right is tried first and the capitalized
// form second; the first non-empty chain wins.
func (s *quoteService) OptionStrikes(ctx context.Context, q models.StrikeQuery) (*models.StrikeList, error) {
	q.StockCode = strings.ToUpper(strings.TrimSpace(q.StockCode))
	q.ExchangeCode = strings.ToUpper(strings.TrimSpace(q.ExchangeCode))
	q.ExpiryDate = strings.TrimSpace(q.ExpiryDate)
	right := strings.ToLower(strings.TrimSpace(q.Right))

	variants := []string{right}
	if c := capitalize(right); c != right {
		variants = append(variants, c)
	}

	var (
		attempted []string
		lastEnv   *breeze.Envelope
	)
	for _, variant := range variants {
		attempted = append(attempted, variant)
		env, err := s.api.GetOptionChain(ctx, breeze.OptionChainParams{
			StockCode:    q.StockCode,
			ExchangeCode: q.ExchangeCode,
			ProductType:  "options",
			ExpiryDate:   q.ExpiryDate,
			Right:        variant,
		})
		if err != nil {
			return nil, wrapBrokerError(err, attempted)
		}
		if env.Empty() {
			lastEnv = env
			continue
		}
		return distillStrikes(q, variant, env.Success), nil
	}

	var payload any
	if lastEnv != nil {
		payload = lastEnv.Raw
	}
	return nil, &CollaboratorError{Payload: payload, AttemptedRights: attempted}
}

// normalizeQuoteQuery applies the broker's conventions: codes uppercased,
// product type lowercased with a cash default, optional derivative
// fields forwarded only when non-blank.
func normalizeQuoteQuery(q models.QuoteQuery) models.QuoteQuery {
	q.StockCode = strings.ToUpper(strings.TrimSpace(q.StockCode))
	q.ExchangeCode = strings.ToUpper(strings.TrimSpace(q.ExchangeCode))
	q.ProductType = strings.ToLower(strings.TrimSpace(q.ProductType))
	if q.ProductType == "" {
		q.ProductType = "cash"
	}
	q.ExpiryDate = strings.TrimSpace(q.ExpiryDate)
	q.StrikePrice = strings.TrimSpace(q.StrikePrice)
	q.Right = strings.TrimSpace(q.Right)
	return q
}

// wrapBrokerError maps client failures onto the service error shape.
// Credential configuration problems pass through untouched so the HTTP
// layer reports them as server misconfiguration, not an upstream fault.
func wrapBrokerError(err error, attempted []string) error {
	var cfg *breeze.ConfigError
	if errors.As(err, &cfg) {
		return err
	}
	var api *breeze.APIError
	if errors.As(err, &api) {
		return &CollaboratorError{Payload: api.Payload, AttemptedRights: attempted, Err: err}
	}
	return &CollaboratorError{Payload: err.Error(), AttemptedRights: attempted, Err: err}
}

// shapeQuote flattens a broker row through the known key aliases into
// the stable schema the consumer expects.
func shapeQuote(q models.QuoteQuery, row breeze.Row) models.Quote {
	return models.Quote{
		Exchange:         q.ExchangeCode,
		Symbol:           q.StockCode,
		LTP:              row.Value("ltp", "LTP", "last_traded_price"),
		Open:             row.Value("open", "OPEN"),
		High:             row.Value("high", "HIGH"),
		Low:              row.Value("low", "LOW"),
		PrevClose:        row.Value("previous_close", "prev_close", "CLOSE"),
		Volume:           row.Value("volume", "VOLUME"),
		LTT:              row.Value("ltt", "LTT", "last_traded_time"),
		BidPrice:         row.Value("best_bid_price"),
		BidQty:           row.Value("best_bid_quantity"),
		AskPrice:         row.Value("best_offer_price"),
		AskQty:           row.Value("best_offer_quantity"),
		LTPPercentChange: row.Value("ltp_percent_change"),
		UpperCircuit:     row.Value("upper_circuit"),
		LowerCircuit:     row.Value("lower_circuit"),
		TotalQtyTraded:   row.Value("total_quantity_traded"),
		SpotPrice:        row.Value("spot_price"),
		ExpiryDate:       row.Value("expiry_date"),
		StrikePrice:      row.Value("strike_price"),
		Right:            row.Value("right"),
	}
}

// distillStrikes reduces chain rows to the unique ascending strike
// ladder plus the first spot price that parses. Rows with absent or
// unparsable strikes are skipped rather than failing the listing.
func distillStrikes(q models.StrikeQuery, right string, rows []breeze.Row) *models.StrikeList {
	seen := make(map[float64]struct{}, len(rows))
	strikes := make([]float64, 0, len(rows))
	var spot *float64
	for _, row := range rows {
		if v, ok := row.Float("strike_price"); ok {
			if _, dup := seen[v]; !dup {
				seen[v] = struct{}{}
				strikes = append(strikes, v)
			}
		}
		if spot == nil {
			if v, ok := row.Float("spot_price"); ok {
				spot = &v
			}
		}
	}
	sort.Float64s(strikes)

	return &models.StrikeList{
		Exchange:   q.ExchangeCode,
		Symbol:     q.StockCode,
		ExpiryDate: q.ExpiryDate,
		Right:      right,
		SpotPrice:  spot,
		Strikes:    strikes,
	}
}

func sortedKeys(row breeze.Row) []string {
	keys := make([]string, 0, len(row))
	for k := range row {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// capitalize uppercases the first letter only ("call" -> "Call").
func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
