package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	deliveryhttp "github.com/temposwap/swapd/delivery/http"
	"github.com/temposwap/swapd/domain"
	"github.com/temposwap/swapd/domain/mvc"
	"github.com/temposwap/swapd/log"
	"github.com/temposwap/swapd/quote/types"
)

// QuoteHandler  represent the httphandler for the quote calculator
type QuoteHandler struct {
	QUsecase mvc.QuoteUsecase
	logger   log.Logger
}

// SwitchTokensResponse is the form after switching sides along with its fresh quote.
type SwitchTokensResponse struct {
	Form  domain.SwapForm `json:"form"`
	Quote domain.Quote    `json:"quote"`
}

const quoteResource = "/quote"

func formatQuoteResource(resource string) string {
	return quoteResource + resource
}

// NewQuoteHandler will initialize the quote/ resources endpoint
func NewQuoteHandler(e *echo.Echo, us mvc.QuoteUsecase, logger log.Logger) {
	handler := &QuoteHandler{
		QUsecase: us,
		logger:   logger,
	}
	e.GET(quoteResource, handler.GetQuote)
	e.GET(formatQuoteResource("/switch"), handler.SwitchTokens)
}

// @Summary Swap Quote
// @Description returns the expected output, LP fee, minimum received and rate for swapping amount of from into to.
// @Description Non-positive amounts return an empty quote.
// @ID get-quote
// @Produce  json
// @Param  from  query  string  true  "Symbol of the token sold"
// @Param  to  query  string  true  "Symbol of the token bought"
// @Param  amount  query  string  true  "Decimal amount of from"
// @Param  slippage  query  string  false  "Slippage tolerance in percent. 1 by default."
// @Success 200  {object}  domain.Quote  "The computed quote"
// @Router /quote [get]
func (a *QuoteHandler) GetQuote(c echo.Context) error {
	ctx, span := deliveryhttp.Span(c)

	var req types.GetQuoteRequest
	if err := deliveryhttp.ParseRequest(c, &req); err != nil {
		deliveryhttp.RecordSpanError(ctx, span, err)
		return deliveryhttp.RespondError(c, err)
	}

	quote, err := a.QUsecase.GetQuote(ctx, req.From, req.To, req.Amount, req.QuoteOptions()...)
	if err != nil {
		deliveryhttp.RecordSpanError(ctx, span, err)
		return deliveryhttp.RespondError(c, err)
	}

	return c.JSON(http.StatusOK, quote)
}

// @Summary Switch Tokens
// @Description exchanges the from and to sides of the swap form and re-quotes the new from amount.
// @ID switch-tokens
// @Produce  json
// @Param  from  query  string  true  "Symbol currently sold"
// @Param  to  query  string  true  "Symbol currently bought"
// @Param  fromAmount  query  string  false  "Amount currently entered on the from side"
// @Param  toAmount  query  string  false  "Amount currently shown on the to side"
// @Success 200  {object}  SwitchTokensResponse  "The switched form and its quote"
// @Router /quote/switch [get]
func (a *QuoteHandler) SwitchTokens(c echo.Context) error {
	ctx := c.Request().Context()

	var req types.SwitchTokensRequest
	if err := deliveryhttp.ParseRequest(c, &req); err != nil {
		return deliveryhttp.RespondError(c, err)
	}

	form, quote, err := a.QUsecase.SwitchTokens(ctx, req.Form, req.QuoteOptions()...)
	if err != nil {
		return deliveryhttp.RespondError(c, err)
	}

	return c.JSON(http.StatusOK, SwitchTokensResponse{Form: form, Quote: quote})
}
