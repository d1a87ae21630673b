package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"breezerelay/internal/breeze"
	"breezerelay/internal/domain/dto"
	"breezerelay/internal/domain/models"
	"breezerelay/internal/lotsize"
	"breezerelay/internal/middleware"
	"breezerelay/internal/service"
)

// Handler provides the HTTP handlers for the relay endpoints.
//
// Responsibilities:
//   - Validate incoming request bodies and parameters
//   - Delegate to the quote service and the lot-size provider
//   - Translate results and failures into the response envelopes the
//     spreadsheet consumer expects
type Handler struct {
	svc  service.QuoteService
	lots lotsize.Provider
}

// NewHandler constructs a Handler over the quote service and the shared
// lot-size provider.
func NewHandler(svc service.QuoteService, lots lotsize.Provider) *Handler {
	return &Handler{svc: svc, lots: lots}
}

// GetQuote godoc
// @Summary      Fetch a quote
// @Description  Returns a flattened quote for one instrument plus the raw broker row; on NFO the response is enriched with the cached lot size
// @Tags         quotes
// @Accept       json
// @Produce      json
// @Param        request  body      dto.QuoteRequest  true  "Instrument selector"
// @Success      200      {object}  dto.QuoteResponse      "Success, or status=error with the broker payload"
// @Failure      400      {object}  dto.ErrorResponse      "Bad Request"
// @Failure      401      {object}  dto.ErrorResponse      "Unauthorized"
// @Failure      500      {object}  dto.ErrorResponse      "Broker credentials not configured"
// @Security     ApiKeyAuth
// @Router       /quote [post]
func (h *Handler) GetQuote(c *gin.Context) {
	var req dto.QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if strings.TrimSpace(req.StockCode) == "" {
		middleware.AbortWithError(c, http.StatusBadRequest, "stock_code is required", nil)
		return
	}
	if strings.TrimSpace(req.ExchangeCode) == "" {
		middleware.AbortWithError(c, http.StatusBadRequest, "exchange_code is required", nil)
		return
	}

	res, err := h.svc.Quote(c.Request.Context(), models.QuoteQuery{
		StockCode:    req.StockCode,
		ExchangeCode: req.ExchangeCode,
		ProductType:  req.ProductType,
		ExpiryDate:   req.ExpiryDate,
		StrikePrice:  req.StrikePrice,
		Right:        req.Right,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.QuoteResponse{
		Status:  "ok",
		Quote:   res.Quote,
		Meta:    dto.QuoteMeta{LotSize: res.LotSize},
		Raw:     res.Raw,
		RawKeys: res.RawKeys,
	})
}

// GetOptionStrikes godoc
// @Summary      List option strikes
// @Description  Returns the deduplicated ascending strike ladder for one underlying and expiry, trying both right casings the broker accepts
// @Tags         quotes
// @Accept       json
// @Produce      json
// @Param        request  body      dto.StrikeListRequest  true  "Chain selector"
// @Success      200      {object}  dto.StrikeListResponse "Success, or status=error with attempted_right_values"
// @Failure      400      {object}  dto.ErrorResponse      "Bad Request"
// @Failure      401      {object}  dto.ErrorResponse      "Unauthorized"
// @Failure      500      {object}  dto.ErrorResponse      "Broker credentials not configured"
// @Security     ApiKeyAuth
// @Router       /option_strikes [post]
func (h *Handler) GetOptionStrikes(c *gin.Context) {
	var req dto.StrikeListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if strings.TrimSpace(req.StockCode) == "" {
		middleware.AbortWithError(c, http.StatusBadRequest, "stock_code is required", nil)
		return
	}
	if strings.TrimSpace(req.ExchangeCode) == "" {
		middleware.AbortWithError(c, http.StatusBadRequest, "exchange_code is required", nil)
		return
	}
	if strings.TrimSpace(req.ExpiryDate) == "" {
		middleware.AbortWithError(c, http.StatusBadRequest, "expiry_date is required", nil)
		return
	}
	right := strings.ToLower(strings.TrimSpace(req.Right))
	if right != "call" && right != "put" {
		middleware.AbortWithError(c, http.StatusBadRequest, "right must be 'call' or 'put'", nil)
		return
	}

	res, err := h.svc.OptionStrikes(c.Request.Context(), models.StrikeQuery{
		StockCode:    req.StockCode,
		ExchangeCode: req.ExchangeCode,
		ExpiryDate:   req.ExpiryDate,
		Right:        right,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.StrikeListResponse{
		Status:     "ok",
		Exchange:   res.Exchange,
		Symbol:     res.Symbol,
		ExpiryDate: res.ExpiryDate,
		Right:      res.Right,
		SpotPrice:  res.SpotPrice,
		Count:      len(res.Strikes),
		Strikes:    res.Strikes,
	})
}

// GetLotSize godoc
// @Summary      Look up a lot size
// @Description  Resolves one symbol against the cached contract table, refreshing it first when stale; lot_size is null for unknown symbols
// @Tags         lotsize
// @Produce      json
// @Param        symbol  path      string  true  "Underlying symbol" example(TCS)
// @Success      200     {object}  dto.LotSizeResponse  "Success, or status=error when the table cannot be loaded"
// @Failure      401     {object}  dto.ErrorResponse    "Unauthorized"
// @Security     ApiKeyAuth
// @Router       /lot_size/{symbol} [get]
func (h *Handler) GetLotSize(c *gin.Context) {
	symbol := c.Param("symbol")

	lot, found, err := h.lots.Lookup(c.Request.Context(), symbol)
	if err != nil {
		c.JSON(http.StatusOK, dto.StatusErrorResponse{Status: "error", Error: err.Error()})
		return
	}

	resp := dto.LotSizeResponse{
		Status:    "ok",
		Symbol:    strings.ToUpper(strings.TrimSpace(symbol)),
		SourceURL: h.lots.Stats().SourceURL,
	}
	if found {
		resp.LotSize = &lot
	}
	c.JSON(http.StatusOK, resp)
}

// RefreshLotSizes godoc
// @Summary      Force a contract table refresh
// @Description  Re-discovers and downloads the derivatives contract file regardless of cache freshness
// @Tags         lotsize
// @Produce      json
// @Success      200  {object}  dto.RefreshResponse  "Success, or status=error"
// @Failure      401  {object}  dto.ErrorResponse    "Unauthorized"
// @Security     ApiKeyAuth
// @Router       /lot_size/refresh [post]
func (h *Handler) RefreshLotSizes(c *gin.Context) {
	if err := h.lots.Refresh(c.Request.Context(), true); err != nil {
		c.JSON(http.StatusOK, dto.StatusErrorResponse{Status: "error", Error: err.Error()})
		return
	}

	st := h.lots.Stats()
	c.JSON(http.StatusOK, dto.RefreshResponse{
		Status:    "ok",
		Symbols:   st.Symbols,
		SourceURL: st.SourceURL,
		LoadedAt:  st.LoadedAt,
	})
}

// SearchInstruments godoc
// @Summary      Search instruments
// @Description  Substring search over the cached contract table symbols
// @Tags         lotsize
// @Produce      json
// @Param        q      query     string  true   "Substring to match" example(NIF)
// @Param        limit  query     int     false  "Maximum matches to return; 0 means all"
// @Success      200    {object}  dto.InstrumentSearchResponse  "Success, or status=error"
// @Failure      400    {object}  dto.ErrorResponse             "Bad Request"
// @Failure      401    {object}  dto.ErrorResponse             "Unauthorized"
// @Security     ApiKeyAuth
// @Router       /instruments [get]
func (h *Handler) SearchInstruments(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		middleware.AbortWithError(c, http.StatusBadRequest, "q is required", nil)
		return
	}
	limit := 0
	if s := c.Query("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			middleware.AbortWithError(c, http.StatusBadRequest, "limit must be a non-negative integer", err)
			return
		}
		limit = n
	}

	matches, err := h.lots.Search(c.Request.Context(), q, limit)
	if err != nil {
		c.JSON(http.StatusOK, dto.StatusErrorResponse{Status: "error", Error: err.Error()})
		return
	}

	out := make([]dto.InstrumentMatch, 0, len(matches))
	for _, m := range matches {
		out = append(out, dto.InstrumentMatch{Symbol: m.Symbol, LotSize: m.LotSize})
	}
	c.JSON(http.StatusOK, dto.InstrumentSearchResponse{
		Status:    "ok",
		Query:     q,
		Count:     len(out),
		Matches:   out,
		SourceURL: h.lots.Stats().SourceURL,
	})
}

// respondServiceError maps service failures onto the wire contract.
// Broker-side faults stay HTTP 200 with a status=error envelope so the
// consumer parses one shape; missing credentials are the server's fault
// and become a 500.
func respondServiceError(c *gin.Context, err error) {
	var cfg *breeze.ConfigError
	if errors.As(err, &cfg) {
		middleware.AbortWithError(c, http.StatusInternalServerError, "Breeze credentials not configured", err)
		return
	}
	var cerr *service.CollaboratorError
	if errors.As(err, &cerr) {
		c.JSON(http.StatusOK, dto.StatusErrorResponse{
			Status:               "error",
			Error:                cerr.Payload,
			AttemptedRightValues: cerr.AttemptedRights,
		})
		return
	}
	middleware.AbortWithError(c, http.StatusInternalServerError, "request failed", err)
}
