package http

import (
	"fmt"
	"net/http"
	"net/http/pprof"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"

	"github.com/temposwap/swapd/domain"
	"github.com/temposwap/swapd/domain/mvc"
	"github.com/temposwap/swapd/log"
)

type SystemHandler struct {
	logger log.Logger
	// nil when the redis event sink is disabled
	redisClient *redis.Client
	TUsecase    mvc.TokensUsecase
	config      domain.Config
}

// HealthStatus is the /healthcheck response.
type HealthStatus struct {
	Status      string `json:"status"`
	RedisStatus string `json:"redis_status"`
	TokenCount  int    `json:"token_count"`
}

const (
	versionPlaceholder    = "version="
	whiteSpacePlaceholder = " "

	statusRunning  = "running"
	statusDisabled = "disabled"
)

// NewSystemHandler will initialize the /debug/ppof resources endpoint
func NewSystemHandler(e *echo.Echo, config domain.Config, redisClient *redis.Client, logger log.Logger, us mvc.TokensUsecase) {
	handler := &SystemHandler{
		logger:      logger,
		redisClient: redisClient,
		TUsecase:    us,
		config:      config,
	}

	// if debug mod, enable additional profiles that are too intensive
	// for production.
	if !config.LoggerIsProduction {
		runtime.SetMutexProfileFraction(2)
		runtime.SetBlockProfileRate(2)
	}

	e.GET("/debug/pprof/*", echo.WrapHandler(http.HandlerFunc(pprof.Index)))
	e.GET("/debug/pprof/cmdline", echo.WrapHandler(http.HandlerFunc(pprof.Cmdline)))
	e.GET("/debug/pprof/profile", echo.WrapHandler(http.HandlerFunc(pprof.Profile)))
	e.GET("/debug/pprof/symbol", echo.WrapHandler(http.HandlerFunc(pprof.Symbol)))
	e.GET("/debug/pprof/trace", echo.WrapHandler(http.HandlerFunc(pprof.Trace)))

	e.GET("/healthcheck", handler.GetHealthStatus)
	e.GET("/config", handler.GetConfig)
	e.GET("/version", handler.GetVersion)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.EchoWrapHandler(echoSwagger.URL("docs/swagger.json"), echoSwagger.URL("swagger.yaml")))
}

// GetConfig returns the config for the swap service
func (h *SystemHandler) GetConfig(c echo.Context) error {
	return c.JSON(http.StatusOK, h.config)
}

func (h *SystemHandler) GetVersion(c echo.Context) error {
	buildInfo, ok := debug.ReadBuildInfo()
	if !ok {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to read build info")
	}

	for _, setting := range buildInfo.Settings {
		if setting.Key == "-ldflags" {
			version, err := extractVersion(setting.Value)
			if err != nil {
				return echo.NewHTTPError(http.StatusInternalServerError, fmt.Sprintf("failed to extract version information: %v", err))
			}

			return c.JSON(http.StatusOK, version)
		}
	}

	return echo.NewHTTPError(http.StatusInternalServerError, "failed to find version information")
}

// extractVersion extracts the version string set with -X .../version= from the ldflags
func extractVersion(ldFlagsValueStr string) (string, error) {
	index := strings.Index(ldFlagsValueStr, versionPlaceholder)
	if index == -1 {
		return "", fmt.Errorf("no version string found")
	}

	substring := ldFlagsValueStr[index+len(versionPlaceholder):]

	// the version may be the last flag
	if end := strings.Index(substring, whiteSpacePlaceholder); end != -1 {
		substring = substring[:end]
	}

	if substring == "" {
		return "", fmt.Errorf("version string is empty")
	}

	return substring, nil
}

// GetHealthStatus reports whether the registry is loaded and, when enabled,
// whether Redis is reachable.
func (h *SystemHandler) GetHealthStatus(c echo.Context) error {
	ctx := c.Request().Context()

	tokenCount := len(h.TUsecase.GetAllTokens(ctx))
	if tokenCount == 0 {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "Token registry is empty")
	}

	redisStatus := statusDisabled
	if h.redisClient != nil {
		if err := h.redisClient.Ping(ctx).Err(); err != nil {
			h.logger.Error("Error connecting to Redis", zap.Error(err))
			return echo.NewHTTPError(http.StatusServiceUnavailable, "Error connecting to Redis")
		}
		redisStatus = statusRunning
	}

	return c.JSON(http.StatusOK, HealthStatus{
		Status:      statusRunning,
		RedisStatus: redisStatus,
		TokenCount:  tokenCount,
	})
}
