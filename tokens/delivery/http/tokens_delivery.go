package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/temposwap/swapd/domain"
	"github.com/temposwap/swapd/domain/mvc"
	"github.com/temposwap/swapd/log"
)

// TokensHandler  represent the httphandler for the token registry
type TokensHandler struct {
	TUsecase mvc.TokensUsecase
	logger   log.Logger
}

const (
	tokensResource = "/tokens"
)

func formatTokensResource(resource string) string {
	return tokensResource + resource
}

// NewTokensHandler will initialize the tokens/ resources endpoint
func NewTokensHandler(e *echo.Echo, ts mvc.TokensUsecase, logger log.Logger) {
	handler := &TokensHandler{
		TUsecase: ts,
		logger:   logger,
	}
	e.GET(formatTokensResource("/metadata"), handler.GetMetadata)
	e.GET(formatTokensResource("/search"), handler.SearchTokens)
	e.GET(formatTokensResource("/prices"), handler.GetPrices)
}

// @Summary Token Metadata
// @Description returns token metadata with symbol, name, USD price, color and seed balance.
// @Description Without symbols, returns the whole registry in display order.
// @ID get-token-metadata
// @Produce  json
// @Param  symbols  query  string  false  "Comma separated list of symbols"
// @Success 200 {array} domain.Token "Success"
// @Router /tokens/metadata [get]
func (a *TokensHandler) GetMetadata(c echo.Context) (err error) {
	ctx := c.Request().Context()

	symbols := domain.SplitAndTrim(c.QueryParam("symbols"), ",")
	if len(symbols) == 0 {
		return c.JSON(http.StatusOK, a.TUsecase.GetAllTokens(ctx))
	}

	tokens := make([]domain.Token, 0, len(symbols))
	for _, symbol := range symbols {
		token, err := a.TUsecase.GetToken(ctx, symbol)
		if err != nil {
			return c.JSON(domain.GetStatusCode(err), domain.ResponseError{Message: err.Error()})
		}
		tokens = append(tokens, token)
	}

	return c.JSON(http.StatusOK, tokens)
}

// @Summary Search tokens
// @Description returns the tokens whose symbol or name contains the query, ignoring case.
// @ID search-tokens
// @Produce  json
// @Param  q  query  string  false  "Search term"
// @Success 200 {array} domain.Token "Success"
// @Router /tokens/search [get]
func (a *TokensHandler) SearchTokens(c echo.Context) error {
	return c.JSON(http.StatusOK, a.TUsecase.SearchTokens(c.Request().Context(), c.QueryParam("q")))
}

// @Summary Token prices
// @Description returns the static USD price for each requested symbol.
// @ID get-token-prices
// @Produce  json
// @Param  symbols  query  string  false  "Comma separated list of symbols"
// @Success 200 {object} map[string]string "Success"
// @Router /tokens/prices [get]
func (a *TokensHandler) GetPrices(c echo.Context) error {
	symbols := domain.SplitAndTrim(c.QueryParam("symbols"), ",")

	prices, err := a.TUsecase.GetPrices(c.Request().Context(), symbols)
	if err != nil {
		return c.JSON(domain.GetStatusCode(err), domain.ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, prices)
}
