package types

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/labstack/echo/v4"

	"github.com/temposwap/swapd/domain"
)

// ErrInvalidBody is returned when the request body is not valid JSON.
var ErrInvalidBody = fmt.Errorf("%w: request body must be valid JSON", domain.ErrBadParamInput)

// InjectedProvider is what the browser wallet reported to the UI.
// It stands in for the wallet extension on the server.
type InjectedProvider struct {
	// Available is false when no wallet extension is installed.
	Available bool     `json:"available"`
	Accounts  []string `json:"accounts"`
	// Rejected is true when the user declined the connection prompt.
	Rejected bool   `json:"rejected"`
	ChainID  string `json:"chain_id"`
}

var _ domain.WalletProvider = &injectedProvider{}

type injectedProvider struct {
	reported InjectedProvider
}

// RequestAccounts implements domain.WalletProvider.
func (p *injectedProvider) RequestAccounts(ctx context.Context) ([]string, error) {
	if p.reported.Rejected {
		return nil, domain.ErrUserRejected
	}
	return p.reported.Accounts, nil
}

// Accounts implements domain.WalletProvider.
func (p *injectedProvider) Accounts(ctx context.Context) ([]string, error) {
	return p.reported.Accounts, nil
}

// ChainID implements domain.WalletProvider.
func (p *injectedProvider) ChainID(ctx context.Context) (string, error) {
	return p.reported.ChainID, nil
}

// ConnectRequest represents the /wallet/connect and /wallet/restore requests.
type ConnectRequest struct {
	Provider InjectedProvider
}

// UnmarshalHTTPRequest implements RequestUnmarshaler.
func (r *ConnectRequest) UnmarshalHTTPRequest(c echo.Context) error {
	return decodeBody(c, &r.Provider)
}

// WalletProvider returns the provider to connect through.
// Returns nil when no wallet is installed.
func (r *ConnectRequest) WalletProvider() domain.WalletProvider {
	if !r.Provider.Available {
		return nil
	}
	return &injectedProvider{reported: r.Provider}
}

// AccountsChangedRequest represents the accountsChanged notification.
type AccountsChangedRequest struct {
	Previous string   `json:"previous"`
	Accounts []string `json:"accounts"`
}

// UnmarshalHTTPRequest implements RequestUnmarshaler.
func (r *AccountsChangedRequest) UnmarshalHTTPRequest(c echo.Context) error {
	return decodeBody(c, r)
}

// ChainChangedRequest represents the chainChanged notification.
type ChainChangedRequest struct {
	Account string `json:"-"`
	ChainID string `json:"chain_id"`
}

// UnmarshalHTTPRequest implements RequestUnmarshaler.
func (r *ChainChangedRequest) UnmarshalHTTPRequest(c echo.Context) error {
	r.Account = c.Param("account")
	return decodeBody(c, r)
}

// Validate validates the ChainChangedRequest
func (r *ChainChangedRequest) Validate() error {
	if r.ChainID == "" {
		return fmt.Errorf("%w: chain_id is required", domain.ErrBadParamInput)
	}
	return nil
}

// decodeBody decodes the JSON body into v. An empty body leaves v untouched.
func decodeBody(c echo.Context, v any) error {
	if err := json.NewDecoder(c.Request().Body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return ErrInvalidBody
	}
	return nil
}
