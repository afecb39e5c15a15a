package main

import (
	"errors"
	"os"

	"github.com/spf13/viper"

	"github.com/temposwap/swapd/domain"
)

// DefaultConfig defines the default config for the swap server.
var DefaultConfig = domain.Config{
	ServerAddress:             ":9092",
	ServerTimeoutDurationSecs: 10,

	LoggerFilename:     "swapd.log",
	LoggerIsProduction: true,
	LoggerLevel:        "info",

	Tokens: []domain.TokenConfig{
		{Symbol: "INSDR", Name: "Airdrop Insiders", PriceUSD: "0.1576", Color: "#8B5CF6", InitialBalance: "990001000"},
		{Symbol: "AlphaUSD", Name: "Alpha USD", PriceUSD: "1.00", Color: "#3B82F6", InitialBalance: "38999999.917545"},
		{Symbol: "BetaUSD", Name: "Beta USD", PriceUSD: "1.00", Color: "#10B981", InitialBalance: "1000000"},
		{Symbol: "ThetaUSD", Name: "Theta USD", PriceUSD: "1.00", Color: "#F59E0B", InitialBalance: "1000000"},
	},

	Quote: &domain.QuoteConfig{
		RateSource:                 domain.PriceRatioRateSourceType,
		FeeRate:                    "0.003",
		DefaultSlippagePercent:     "1",
		MinSlippagePercent:         "0.1",
		MaxSlippagePercent:         "50",
		PriceImpactReferenceAmount: "100000",
	},

	Ledger: &domain.LedgerConfig{
		HistorySize:          10,
		SettlementDelayMinMs: 1500,
		SettlementDelayMaxMs: 3000,
		OrderCacheSize:       1000,
	},

	Events: &domain.EventsConfig{
		RedisEnabled:        false,
		RedisHost:           "localhost",
		RedisPort:           "6379",
		ChannelPrefix:       "swapd.events",
		WebsocketBufferSize: 64,
		SinkBufferSize:      256,
		SinkTimeoutMs:       1000,
	},

	CORS: &domain.CORSConfig{
		AllowedHeaders: "Origin, Accept, Content-Type, X-Requested-With, X-Server-Time, Accept-Encoding, sentry-trace, baggage",
		AllowedMethods: "HEAD, GET, POST, OPTIONS",
		AllowedOrigin:  "*",
	},

	OTEL: &domain.OTELConfig{
		Environment: "development",
	},
}

// LoadConfig reads the config file at path over DefaultConfig.
// A missing file leaves the defaults in place.
func LoadConfig(path string) (domain.Config, error) {
	config := cloneDefaultConfig()

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return config, nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return domain.Config{}, err
	}

	if err := v.Unmarshal(&config); err != nil {
		return domain.Config{}, err
	}

	// slices are merged element-wise, so a configured registry replaces the default one
	if v.IsSet("tokens") {
		config.Tokens = nil
		if err := v.UnmarshalKey("tokens", &config.Tokens); err != nil {
			return domain.Config{}, err
		}
	}

	return config, nil
}

// cloneDefaultConfig copies DefaultConfig so that loading never mutates it.
func cloneDefaultConfig() domain.Config {
	config := DefaultConfig

	config.Tokens = append([]domain.TokenConfig(nil), DefaultConfig.Tokens...)

	quote := *DefaultConfig.Quote
	config.Quote = &quote

	ledger := *DefaultConfig.Ledger
	config.Ledger = &ledger

	events := *DefaultConfig.Events
	config.Events = &events

	cors := *DefaultConfig.CORS
	config.CORS = &cors

	otel := *DefaultConfig.OTEL
	config.OTEL = &otel

	return config
}
