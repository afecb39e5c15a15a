package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	deliveryhttp "github.com/temposwap/swapd/delivery/http"
	"github.com/temposwap/swapd/domain/mvc"
	"github.com/temposwap/swapd/log"
	"github.com/temposwap/swapd/wallet/types"
)

// WalletHandler  represent the httphandler for wallet sessions
type WalletHandler struct {
	WUsecase mvc.WalletUsecase
	logger   log.Logger
}

const walletResource = "/wallet"

func formatWalletResource(resource string) string {
	return walletResource + resource
}

// NewWalletHandler will initialize the wallet/ resources endpoint
func NewWalletHandler(e *echo.Echo, us mvc.WalletUsecase, logger log.Logger) {
	handler := &WalletHandler{
		WUsecase: us,
		logger:   logger,
	}
	e.POST(formatWalletResource("/connect"), handler.Connect)
	e.POST(formatWalletResource("/restore"), handler.Restore)
	e.POST(formatWalletResource("/accounts-changed"), handler.OnAccountsChanged)
	e.GET(formatWalletResource("/:account"), handler.GetSession)
	e.POST(formatWalletResource("/:account/disconnect"), handler.Disconnect)
	e.POST(formatWalletResource("/:account/chain-changed"), handler.OnChainChanged)
}

// @Summary Connect wallet
// @Description connects the first account the wallet authorized and opens its mock balances.
// @ID connect-wallet
// @Accept  json
// @Produce  json
// @Param  provider  body  types.InjectedProvider  true  "What the browser wallet reported"
// @Success 200  {object}  domain.WalletSession  "Session"
// @Failure 403  {object}  domain.ResponseError  "User rejected the request"
// @Failure 503  {object}  domain.ResponseError  "No wallet installed"
// @Router /wallet/connect [post]
func (a *WalletHandler) Connect(c echo.Context) error {
	var req types.ConnectRequest
	if err := deliveryhttp.ParseRequest(c, &req); err != nil {
		return deliveryhttp.RespondError(c, err)
	}

	session, err := a.WUsecase.Connect(c.Request().Context(), req.WalletProvider())
	if err != nil {
		return deliveryhttp.RespondError(c, err)
	}

	return c.JSON(http.StatusOK, session)
}

// @Summary Restore wallet
// @Description reconnects an already authorized account without prompting, as on page load.
// @ID restore-wallet
// @Accept  json
// @Produce  json
// @Param  provider  body  types.InjectedProvider  true  "What the browser wallet reported"
// @Success 200  {object}  domain.WalletSession  "Session"
// @Router /wallet/restore [post]
func (a *WalletHandler) Restore(c echo.Context) error {
	var req types.ConnectRequest
	if err := deliveryhttp.ParseRequest(c, &req); err != nil {
		return deliveryhttp.RespondError(c, err)
	}

	session, err := a.WUsecase.Restore(c.Request().Context(), req.WalletProvider())
	if err != nil {
		return deliveryhttp.RespondError(c, err)
	}

	return c.JSON(http.StatusOK, session)
}

// @Summary Disconnect wallet
// @Description closes the session and resets the mock balances of the account.
// @ID disconnect-wallet
// @Param  account  path  string  true  "Hex account address"
// @Success 204
// @Router /wallet/{account}/disconnect [post]
func (a *WalletHandler) Disconnect(c echo.Context) error {
	if err := a.WUsecase.Disconnect(c.Request().Context(), c.Param("account")); err != nil {
		return deliveryhttp.RespondError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// @Summary Accounts changed
// @Description switches the session to the first reported account. An empty list disconnects.
// @ID wallet-accounts-changed
// @Accept  json
// @Produce  json
// @Param  request  body  types.AccountsChangedRequest  true  "Previous account and the new account list"
// @Success 200  {object}  domain.WalletSession  "Session"
// @Router /wallet/accounts-changed [post]
func (a *WalletHandler) OnAccountsChanged(c echo.Context) error {
	var req types.AccountsChangedRequest
	if err := deliveryhttp.ParseRequest(c, &req); err != nil {
		return deliveryhttp.RespondError(c, err)
	}

	session, err := a.WUsecase.OnAccountsChanged(c.Request().Context(), req.Previous, req.Accounts)
	if err != nil {
		return deliveryhttp.RespondError(c, err)
	}

	if session.Account == "" {
		return c.NoContent(http.StatusNoContent)
	}

	return c.JSON(http.StatusOK, session)
}

// @Summary Chain changed
// @Description records the new chain and resets the mock balances, as a reload would.
// @ID wallet-chain-changed
// @Accept  json
// @Produce  json
// @Param  account  path  string  true  "Hex account address"
// @Param  request  body  types.ChainChangedRequest  true  "New chain"
// @Success 200  {object}  domain.WalletSession  "Session"
// @Router /wallet/{account}/chain-changed [post]
func (a *WalletHandler) OnChainChanged(c echo.Context) error {
	var req types.ChainChangedRequest
	if err := deliveryhttp.ParseRequest(c, &req); err != nil {
		return deliveryhttp.RespondError(c, err)
	}

	session, err := a.WUsecase.OnChainChanged(c.Request().Context(), req.Account, req.ChainID)
	if err != nil {
		return deliveryhttp.RespondError(c, err)
	}

	return c.JSON(http.StatusOK, session)
}

// @Summary Wallet session
// @Description returns the session of a connected account.
// @ID get-wallet-session
// @Produce  json
// @Param  account  path  string  true  "Hex account address"
// @Success 200  {object}  domain.WalletSession  "Session"
// @Router /wallet/{account} [get]
func (a *WalletHandler) GetSession(c echo.Context) error {
	session, err := a.WUsecase.GetSession(c.Request().Context(), c.Param("account"))
	if err != nil {
		return deliveryhttp.RespondError(c, err)
	}

	return c.JSON(http.StatusOK, session)
}
