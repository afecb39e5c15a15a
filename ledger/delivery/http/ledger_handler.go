package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/osmosis-labs/osmosis/osmomath"
	"go.uber.org/zap"

	deliveryhttp "github.com/temposwap/swapd/delivery/http"
	"github.com/temposwap/swapd/domain"
	"github.com/temposwap/swapd/domain/mvc"
	"github.com/temposwap/swapd/ledger/types"
	"github.com/temposwap/swapd/log"
)

// LedgerHandler  represent the httphandler for the mock ledger
type LedgerHandler struct {
	LUsecase mvc.LedgerUsecase
	logger   log.Logger
}

// AmountResponse is a percentage of a balance, ready to fill the from amount.
type AmountResponse struct {
	Symbol  string `json:"symbol"`
	Percent int    `json:"percent"`
	// @Type string
	Amount    osmomath.Dec `json:"amount"`
	Formatted string       `json:"formatted"`
}

const ledgerResource = "/ledger"

func formatLedgerResource(resource string) string {
	return ledgerResource + resource
}

// NewLedgerHandler will initialize the ledger/ resources endpoint
func NewLedgerHandler(e *echo.Echo, us mvc.LedgerUsecase, logger log.Logger) {
	handler := &LedgerHandler{
		LUsecase: us,
		logger:   logger,
	}
	e.GET(formatLedgerResource("/orders/:id"), handler.GetOrder)
	e.GET(formatLedgerResource("/:account/balances"), handler.GetBalances)
	e.GET(formatLedgerResource("/:account/portfolio"), handler.GetPortfolio)
	e.GET(formatLedgerResource("/:account/transactions"), handler.GetTransactions)
	e.GET(formatLedgerResource("/:account/amount"), handler.GetAmount)
	e.GET(formatLedgerResource("/:account/preview"), handler.PreviewSwap)
	e.POST(formatLedgerResource("/:account/swap"), handler.Swap)
}

// @Summary Balances
// @Description returns the mock balances of a connected account keyed by symbol.
// @ID get-balances
// @Produce  json
// @Param  account  path  string  true  "Hex account address"
// @Success 200  {object}  map[string]string  "Balances by symbol"
// @Router /ledger/{account}/balances [get]
func (a *LedgerHandler) GetBalances(c echo.Context) error {
	var req types.AccountRequest
	if err := deliveryhttp.ParseRequest(c, &req); err != nil {
		return deliveryhttp.RespondError(c, err)
	}

	balances, err := a.LUsecase.GetBalances(c.Request().Context(), req.Account)
	if err != nil {
		return deliveryhttp.RespondError(c, err)
	}

	return c.JSON(http.StatusOK, balances)
}

// @Summary Portfolio
// @Description returns every registry token with the account balance and its USD value, plus the total.
// @ID get-portfolio
// @Produce  json
// @Param  account  path  string  true  "Hex account address"
// @Success 200  {object}  domain.Portfolio  "Portfolio"
// @Router /ledger/{account}/portfolio [get]
func (a *LedgerHandler) GetPortfolio(c echo.Context) error {
	var req types.AccountRequest
	if err := deliveryhttp.ParseRequest(c, &req); err != nil {
		return deliveryhttp.RespondError(c, err)
	}

	portfolio, err := a.LUsecase.GetPortfolio(c.Request().Context(), req.Account)
	if err != nil {
		return deliveryhttp.RespondError(c, err)
	}

	return c.JSON(http.StatusOK, portfolio)
}

// @Summary Transaction history
// @Description returns the most recent settled swaps of the account, newest first.
// @ID get-transactions
// @Produce  json
// @Param  account  path  string  true  "Hex account address"
// @Success 200  {array}  domain.Transaction  "Transactions"
// @Router /ledger/{account}/transactions [get]
func (a *LedgerHandler) GetTransactions(c echo.Context) error {
	var req types.AccountRequest
	if err := deliveryhttp.ParseRequest(c, &req); err != nil {
		return deliveryhttp.RespondError(c, err)
	}

	transactions, err := a.LUsecase.GetTransactions(c.Request().Context(), req.Account)
	if err != nil {
		return deliveryhttp.RespondError(c, err)
	}

	return c.JSON(http.StatusOK, transactions)
}

// @Summary Percentage amount
// @Description returns percent of the account balance of symbol. Percent defaults to 100, the max amount.
// @ID get-amount
// @Produce  json
// @Param  account  path  string  true  "Hex account address"
// @Param  symbol  query  string  true  "Token symbol"
// @Param  percent  query  int  false  "Percentage between 1 and 100"
// @Success 200  {object}  AmountResponse  "Amount"
// @Router /ledger/{account}/amount [get]
func (a *LedgerHandler) GetAmount(c echo.Context) error {
	var req types.GetAmountRequest
	if err := deliveryhttp.ParseRequest(c, &req); err != nil {
		return deliveryhttp.RespondError(c, err)
	}

	amount, err := a.LUsecase.GetAmountForPercentage(c.Request().Context(), req.Account, req.Symbol, req.Percent)
	if err != nil {
		return deliveryhttp.RespondError(c, err)
	}

	return c.JSON(http.StatusOK, AmountResponse{
		Symbol:    req.Symbol,
		Percent:   req.Percent,
		Amount:    amount,
		Formatted: domain.FormatNumber(amount),
	})
}

// @Summary Swap preview
// @Description returns the quote along with the swap button state for the account.
// @ID preview-swap
// @Produce  json
// @Param  account  path  string  true  "Hex account address"
// @Param  from  query  string  true  "Symbol of the token sold"
// @Param  to  query  string  true  "Symbol of the token bought"
// @Param  amount  query  string  false  "Decimal amount of from"
// @Param  slippage  query  string  false  "Slippage tolerance in percent"
// @Success 200  {object}  domain.SwapPreview  "Preview"
// @Router /ledger/{account}/preview [get]
func (a *LedgerHandler) PreviewSwap(c echo.Context) error {
	var req types.SwapRequest
	if err := deliveryhttp.ParseRequest(c, &req); err != nil {
		return deliveryhttp.RespondError(c, err)
	}

	preview, err := a.LUsecase.PreviewSwap(c.Request().Context(), req.Account, req.From, req.To, req.Amount, req.QuoteOptions()...)
	if err != nil {
		return deliveryhttp.RespondError(c, err)
	}

	return c.JSON(http.StatusOK, preview)
}

// @Summary Swap
// @Description executes a swap against the mock ledger.
// @Description By default the call returns once the swap is settled. With async=true it returns as soon as the swap is submitted.
// @ID swap
// @Produce  json
// @Param  account  path  string  true  "Hex account address"
// @Param  from  query  string  true  "Symbol of the token sold"
// @Param  to  query  string  true  "Symbol of the token bought"
// @Param  amount  query  string  true  "Decimal amount of from"
// @Param  slippage  query  string  false  "Slippage tolerance in percent"
// @Param  async  query  bool  false  "Return once submitted"
// @Success 200  {object}  domain.SwapOrder  "Settled order"
// @Success 202  {object}  domain.SwapOrder  "Submitted order"
// @Router /ledger/{account}/swap [post]
func (a *LedgerHandler) Swap(c echo.Context) error {
	ctx, span := deliveryhttp.Span(c)

	var req types.SwapRequest
	if err := deliveryhttp.ParseRequest(c, &req); err != nil {
		deliveryhttp.RecordSpanError(ctx, span, err)
		return deliveryhttp.RespondError(c, err)
	}

	if req.Async {
		order, err := a.LUsecase.SubmitSwap(ctx, req.Account, req.From, req.To, req.Amount, req.QuoteOptions()...)
		if err != nil {
			deliveryhttp.RecordSpanError(ctx, span, err)
			return deliveryhttp.RespondError(c, err)
		}

		return c.JSON(http.StatusAccepted, order)
	}

	order, err := a.LUsecase.ExecuteSwap(ctx, req.Account, req.From, req.To, req.Amount, req.QuoteOptions()...)
	if err != nil {
		a.logger.Debug("swap failed", zap.String("account", req.Account), zap.String("order_id", order.ID), zap.Error(err))
		deliveryhttp.RecordSpanError(ctx, span, err)
		return deliveryhttp.RespondError(c, err)
	}

	return c.JSON(http.StatusOK, order)
}

// @Summary Swap order
// @Description returns a submitted order to follow its settlement.
// @ID get-order
// @Produce  json
// @Param  id  path  string  true  "Order ID"
// @Success 200  {object}  domain.SwapOrder  "Order"
// @Router /ledger/orders/{id} [get]
func (a *LedgerHandler) GetOrder(c echo.Context) error {
	order, err := a.LUsecase.GetOrder(c.Request().Context(), c.Param("id"))
	if err != nil {
		return deliveryhttp.RespondError(c, err)
	}

	return c.JSON(http.StatusOK, order)
}
