package main

import (
	"context"
	"fmt"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/temposwap/swapd/domain"
	"github.com/temposwap/swapd/domain/mvc"
	"github.com/temposwap/swapd/events"
	eventsws "github.com/temposwap/swapd/events/delivery/websocket"
	eventsredis "github.com/temposwap/swapd/events/redis"
	ledgerhttpdelivery "github.com/temposwap/swapd/ledger/delivery/http"
	ledgerrepo "github.com/temposwap/swapd/ledger/repository"
	ledgerusecase "github.com/temposwap/swapd/ledger/usecase"
	"github.com/temposwap/swapd/log"
	"github.com/temposwap/swapd/middleware"
	quotehttpdelivery "github.com/temposwap/swapd/quote/delivery/http"
	quoteusecase "github.com/temposwap/swapd/quote/usecase"
	systemhttpdelivery "github.com/temposwap/swapd/system/delivery/http"
	tokenshttpdelivery "github.com/temposwap/swapd/tokens/delivery/http"
	tokensusecase "github.com/temposwap/swapd/tokens/usecase"
	wallethttpdelivery "github.com/temposwap/swapd/wallet/delivery/http"
	walletusecase "github.com/temposwap/swapd/wallet/usecase"
)

// SwapServer defines an interface for the swap server.
// It owns the token registry, the quote calculator and the mock ledger
// and exposes them over HTTP together with the event stream.
type SwapServer interface {
	GetTokensUseCase() mvc.TokensUsecase
	GetLedgerUseCase() mvc.LedgerUsecase
	GetLogger() log.Logger
	Shutdown(context.Context) error
	Start(context.Context) error
}

type swapServer struct {
	tokensUseCase mvc.TokensUsecase
	ledgerUseCase mvc.LedgerUsecase
	bus           *events.Bus
	broadcaster   *eventsws.Broadcaster
	redisClient   *redis.Client
	e             *echo.Echo
	address       string
	logger        log.Logger
}

const (
	tracerName = "swapd"

	redisConnectBackoff = time.Second
)

var _ SwapServer = &swapServer{}

// GetTokensUseCase implements SwapServer.
func (s *swapServer) GetTokensUseCase() mvc.TokensUsecase {
	return s.tokensUseCase
}

// GetLedgerUseCase implements SwapServer.
func (s *swapServer) GetLedgerUseCase() mvc.LedgerUsecase {
	return s.ledgerUseCase
}

// GetLogger implements SwapServer.
func (s *swapServer) GetLogger() log.Logger {
	return s.logger
}

// Shutdown implements SwapServer.
// Pending settlements are rejected before the listener stops.
func (s *swapServer) Shutdown(ctx context.Context) error {
	if err := s.ledgerUseCase.Shutdown(ctx); err != nil {
		s.logger.Error("failed to shut down ledger", zap.Error(err))
	}

	// flush what the ledger published while shutting down
	if err := s.bus.Close(ctx); err != nil {
		s.logger.Error("failed to flush events", zap.Error(err))
	}

	s.broadcaster.Close()

	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			s.logger.Error("failed to close redis client", zap.Error(err))
		}
	}

	return s.e.Shutdown(ctx)
}

// Start implements SwapServer.
func (s *swapServer) Start(context.Context) error {
	s.logger.Info("Starting swap server", zap.String("address", s.address))
	return s.e.Start(s.address)
}

// NewSwapServer creates a new swap server.
func NewSwapServer(ctx context.Context, config domain.Config, logger log.Logger) (SwapServer, error) {
	// Setup echo server
	e := echo.New()
	middleware := middleware.InitMiddleware(config.CORS)
	e.Use(middleware.CORS)
	e.Use(middleware.InstrumentMiddleware)
	e.Use(middleware.TraceWithParamsMiddleware(tracerName))

	tokensUseCase, err := tokensusecase.NewTokensUsecase(config.Tokens, config.Rates)
	if err != nil {
		return nil, err
	}

	quoteUseCase, err := quoteusecase.NewQuoteUsecase(tokensUseCase, *config.Quote, logger)
	if err != nil {
		return nil, err
	}

	// Event sinks. Redis is optional and the server keeps running without it.
	broadcaster := eventsws.NewBroadcaster(config.Events.WebsocketBufferSize, config.CORS.AllowedOrigin, logger)
	sinkTimeout := time.Duration(config.Events.SinkTimeoutMs) * time.Millisecond
	bus := events.NewBus(config.Events.SinkBufferSize, sinkTimeout, logger, broadcaster)

	var redisClient *redis.Client
	if config.Events.RedisEnabled {
		redisAddress := fmt.Sprintf("%s:%s", config.Events.RedisHost, config.Events.RedisPort)
		logger.Info("Pinging redis", zap.String("redis_address", redisAddress))

		redisClient, err = eventsredis.Connect(ctx, redisAddress, domain.MaxInitRetries, redisConnectBackoff, logger)
		if err != nil {
			logger.Warn("redis event sink disabled", zap.Error(err))
			redisClient = nil
		} else {
			bus.RegisterSink(eventsredis.NewRedisPublisher(redisClient, config.Events.ChannelPrefix))
		}
	}

	ledgerRepository, err := ledgerrepo.New(config.Ledger.HistorySize)
	if err != nil {
		return nil, err
	}

	ledgerUseCase, err := ledgerusecase.NewLedgerUsecase(ledgerRepository, tokensUseCase, quoteUseCase, bus, *config.Ledger, logger)
	if err != nil {
		return nil, err
	}

	walletUseCase := walletusecase.NewWalletUsecase(ledgerUseCase, bus, logger)

	// HTTP handlers
	tokenshttpdelivery.NewTokensHandler(e, tokensUseCase, logger)
	quotehttpdelivery.NewQuoteHandler(e, quoteUseCase, logger)
	ledgerhttpdelivery.NewLedgerHandler(e, ledgerUseCase, logger)
	wallethttpdelivery.NewWalletHandler(e, walletUseCase, logger)
	eventsws.NewEventsHandler(e, broadcaster)
	systemhttpdelivery.NewSystemHandler(e, config, redisClient, logger, tokensUseCase)

	return &swapServer{
		tokensUseCase: tokensUseCase,
		ledgerUseCase: ledgerUseCase,
		bus:           bus,
		broadcaster:   broadcaster,
		redisClient:   redisClient,
		e:             e,
		address:       config.ServerAddress,
		logger:        logger,
	}, nil
}
