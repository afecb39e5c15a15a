package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"

	"github.com/temposwap/swapd/domain"
	"github.com/temposwap/swapd/log"
)

const testAccount = "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"

// newTestServer builds a server over the defaults with instant settlement.
func newTestServer(t *testing.T, mutate func(*domain.Config)) *swapServer {
	t.Helper()

	config := cloneDefaultConfig()
	config.Ledger.SettlementDelayMinMs = 0
	config.Ledger.SettlementDelayMaxMs = 0
	if mutate != nil {
		mutate(&config)
	}

	server, err := NewSwapServer(context.Background(), config, log.NewNopLogger())
	require.NoError(t, err)

	s, ok := server.(*swapServer)
	require.True(t, ok)

	t.Cleanup(func() {
		require.NoError(t, s.Shutdown(context.Background()))
	})

	return s
}

func (s *swapServer) serve(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func TestSwapServer_ConnectAndSwap(t *testing.T) {
	s := newTestServer(t, nil)

	rec := s.serve(http.MethodGet, "/quote?from=INSDR&to=AlphaUSD&amount=100", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"output_amount":"15.760000000000000000"`)

	rec = s.serve(http.MethodPost, "/wallet/connect", `{"available":true,"accounts":["`+strings.ToLower(testAccount)+`"],"chain_id":"0x1"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), testAccount)

	rec = s.serve(http.MethodPost, "/ledger/"+testAccount+"/swap?from=INSDR&to=AlphaUSD&amount=100", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"status":"settled"`)

	balances, err := s.GetLedgerUseCase().GetBalances(context.Background(), testAccount)
	require.NoError(t, err)
	require.Equal(t, "990000900.000000000000000000", balances.Get("INSDR").String())
	require.Equal(t, "39000015.677545000000000000", balances.Get("AlphaUSD").String())

	require.Len(t, s.GetTokensUseCase().GetAllTokens(context.Background()), 4)
}

func TestSwapServer_RedisSink(t *testing.T) {
	redisServer := miniredis.RunT(t)

	s := newTestServer(t, func(config *domain.Config) {
		config.Events.RedisEnabled = true
		config.Events.RedisHost = redisServer.Host()
		config.Events.RedisPort = redisServer.Port()
	})
	require.NotNil(t, s.redisClient)

	rec := s.serve(http.MethodGet, "/healthcheck", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"status":"running","redis_status":"running","token_count":4}`, rec.Body.String())
}
