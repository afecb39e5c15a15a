package http_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/temposwap/swapd/domain"
	"github.com/temposwap/swapd/log"
	systemhttp "github.com/temposwap/swapd/system/delivery/http"
	"github.com/temposwap/swapd/tokens/usecase/tokenstesting"
)

func TestExtractVersion(t *testing.T) {
	testCases := []struct {
		name            string
		ldFlagsValue    string
		expectedVersion string
		expectErr       bool
	}{
		{
			name:            "version is specified first in the ldFlagsValue",
			ldFlagsValue:    "-X github.com/temposwap/swapd/version=0.1.2-4-g79c82c8     -w -s -linkmode=external -extldflags '-Wl,-z,muldefs -static'",
			expectedVersion: "0.1.2-4-g79c82c8",
		},
		{
			name:            "version is specified in the end of ldFlagsValue",
			ldFlagsValue:    "-w -s -linkmode=external -extldflags '-Wl,-z,muldefs -static' -X github.com/temposwap/swapd/version=0.1.2-4-g79c82c8",
			expectedVersion: "0.1.2-4-g79c82c8",
		},
		{
			name:            "version is specified in the middle of ldFlagsValue",
			ldFlagsValue:    "-extldflags '-Wl,-z,muldefs -static' -X github.com/temposwap/swapd/version=0.1.2-4-g79c82c8 -w -s -linkmode=external",
			expectedVersion: "0.1.2-4-g79c82c8",
		},
		{
			name:            "ldFlagsValue only version",
			ldFlagsValue:    "-X github.com/temposwap/swapd/version=0.1.2-4-g79c82c8",
			expectedVersion: "0.1.2-4-g79c82c8",
		},
		{
			name:         "no version",
			ldFlagsValue: "-w -s",
			expectErr:    true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := systemhttp.ExtractVersion(tc.ldFlagsValue)
			if tc.expectErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)

			require.Equal(t, tc.expectedVersion, result)
		})
	}
}

func TestGetHealthStatus(t *testing.T) {
	server := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{Addr: server.Addr(), MaxRetries: -1})
	defer client.Close()

	testCases := []struct {
		name               string
		redisClient        *redis.Client
		stopRedis          bool
		expectedStatusCode int
		expectedResponse   string
	}{
		{
			name:               "redis disabled",
			expectedStatusCode: http.StatusOK,
			expectedResponse:   `{"status":"running","redis_status":"disabled","token_count":3}`,
		},
		{
			name:               "redis reachable",
			redisClient:        client,
			expectedStatusCode: http.StatusOK,
			expectedResponse:   `{"status":"running","redis_status":"running","token_count":3}`,
		},
		{
			name:               "redis down",
			redisClient:        client,
			stopRedis:          true,
			expectedStatusCode: http.StatusServiceUnavailable,
			expectedResponse:   `{"message":"Error connecting to Redis"}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.stopRedis {
				server.Close()
			}

			e := echo.New()
			systemhttp.NewSystemHandler(e, domain.Config{LoggerIsProduction: true}, tc.redisClient, log.NewNopLogger(), tokenstesting.MustNewExampleTokensUsecase(nil))

			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthcheck", nil))

			require.Equal(t, tc.expectedStatusCode, rec.Code)
			require.JSONEq(t, tc.expectedResponse, rec.Body.String())
		})
	}
}
