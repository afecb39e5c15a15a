package domain

// Config defines the config for the swap server.
type Config struct {
	// Defines the web server configuration.
	ServerAddress             string `mapstructure:"server-address"`
	ServerTimeoutDurationSecs int    `mapstructure:"timeout-duration-secs"`

	// Defines the logger configuration.
	LoggerFilename     string `mapstructure:"logger-filename"`
	LoggerIsProduction bool   `mapstructure:"logger-is-production"`
	LoggerLevel        string `mapstructure:"logger-level"`

	// Tokens is the seeded token registry in display order.
	Tokens []TokenConfig `mapstructure:"tokens"`

	// Rates is an optional pairwise rate table keyed by from symbol, then to symbol.
	// Only consulted when Quote.RateSource is "pair-table".
	Rates map[string]map[string]string `mapstructure:"rates"`

	Quote *QuoteConfig `mapstructure:"quote"`

	Ledger *LedgerConfig `mapstructure:"ledger"`

	Events *EventsConfig `mapstructure:"events"`

	CORS *CORSConfig `mapstructure:"cors"`

	OTEL *OTELConfig `mapstructure:"otel"`
}

// TokenConfig is a single registry entry as read from the config file.
// Decimal values are kept as strings so that they are parsed without float rounding.
type TokenConfig struct {
	Symbol         string `mapstructure:"symbol" json:"symbol"`
	Name           string `mapstructure:"name" json:"name"`
	PriceUSD       string `mapstructure:"price-usd" json:"price_usd"`
	Color          string `mapstructure:"color" json:"color"`
	InitialBalance string `mapstructure:"initial-balance" json:"initial_balance"`
}

// QuoteConfig encapsulates the quote calculator config.
type QuoteConfig struct {
	// RateSource is either "price" or "pair-table".
	RateSource RateSourceType `mapstructure:"rate-source"`
	// FeeRate is the liquidity provider fee applied to the output amount.
	FeeRate string `mapstructure:"fee-rate"`
	// DefaultSlippagePercent is used when the request does not specify slippage.
	DefaultSlippagePercent string `mapstructure:"default-slippage-percent"`
	MinSlippagePercent     string `mapstructure:"min-slippage-percent"`
	MaxSlippagePercent     string `mapstructure:"max-slippage-percent"`
	// PriceImpactReferenceAmount is the input amount at which the reported price impact reaches 100%.
	PriceImpactReferenceAmount string `mapstructure:"price-impact-reference-amount"`
}

// LedgerConfig encapsulates the mock ledger config.
type LedgerConfig struct {
	// HistorySize is the number of transactions retained per account.
	HistorySize int `mapstructure:"history-size"`
	// Settlement delay is drawn uniformly from [min, max].
	SettlementDelayMinMs int `mapstructure:"settlement-delay-min-ms"`
	SettlementDelayMaxMs int `mapstructure:"settlement-delay-max-ms"`
	// OrderCacheSize bounds how many submitted orders can be looked up by ID.
	OrderCacheSize int `mapstructure:"order-cache-size"`
}

// EventsConfig encapsulates the event sinks config.
type EventsConfig struct {
	// RedisEnabled turns on the Redis pub/sub sink.
	RedisEnabled bool   `mapstructure:"redis-enabled"`
	RedisHost    string `mapstructure:"redis-host"`
	RedisPort    string `mapstructure:"redis-port"`
	// ChannelPrefix is prepended to the account address to form the channel name.
	ChannelPrefix string `mapstructure:"channel-prefix"`
	// WebsocketBufferSize is the per-client outbound buffer.
	WebsocketBufferSize int `mapstructure:"websocket-buffer-size"`
	// SinkBufferSize is the number of events queued per sink before new ones are dropped.
	SinkBufferSize int `mapstructure:"sink-buffer-size"`
	// SinkTimeoutMs bounds a single delivery to a sink.
	SinkTimeoutMs int `mapstructure:"sink-timeout-ms"`
}

// CORSConfig encapsulates the CORS headers.
type CORSConfig struct {
	AllowedHeaders string `mapstructure:"allowed-headers"`
	AllowedMethods string `mapstructure:"allowed-methods"`
	AllowedOrigin  string `mapstructure:"allowed-origin"`
}

// OTELConfig encapsulates the tracing config.
type OTELConfig struct {
	DSN                string  `mapstructure:"dsn"`
	SampleRate         float64 `mapstructure:"sample-rate"`
	EnableTracing      bool    `mapstructure:"enable-tracing"`
	ProfilesSampleRate float64 `mapstructure:"profiles-sample-rate"`
	Environment        string  `mapstructure:"environment"`

	CustomSampleRate struct {
		Quote float64 `mapstructure:"quote"`
		Swap  float64 `mapstructure:"swap"`
		Other float64 `mapstructure:"other"`
	} `mapstructure:"custom-sample-rate"`
}
