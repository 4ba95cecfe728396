package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Env                string `mapstructure:"env"`
	LocalStackEndpoint string `mapstructure:"localstack_endpoint"`
	Signer             SignerConfig
	DB                 DBConfig
	Redis              RedisConfig
	Strategy           StrategyConfig
	Risk               RiskConfig
	Execution          ExecutionConfig
	Hedger             HedgerConfig
	CTF                CTFConfig
	Feeds              FeedsConfig
	Venues             VenuesConfig
	Markets            MarketsConfig
}

// FeedsConfig holds the market-data WebSocket endpoints. With enabled set
// false the engine starts with no live books — useful for storage/replay
// work — and the Strategy engine simply never sees a snapshot.
type FeedsConfig struct {
	KalshiWSURL string `mapstructure:"kalshi_ws_url"`
	PolyWSURL   string `mapstructure:"poly_ws_url"`
	Enabled     bool   `mapstructure:"enabled"`
}

// VenuesConfig holds order-placement credentials and REST endpoints. Order
// clients only come up when enable_live_trading is set AND the venue's
// credentials are present.
type VenuesConfig struct {
	KalshiAPIKey         string `mapstructure:"kalshi_api_key"`
	KalshiPrivateKeyPath string `mapstructure:"kalshi_private_key_path"`
	KalshiRESTURL        string `mapstructure:"kalshi_rest_url"`
	PolyRESTURL          string `mapstructure:"poly_rest_url"`
	PolyAPIKey           string `mapstructure:"poly_api_key"`
}

// MarketsConfig enumerates the markets the engine watches. Polymarket
// entries carry the outcome-token bindings the CLOB addresses orders and
// book subscriptions by: "market_id:yes_token:no_token". Crypto
// short-duration markets are listed separately so the elevated threshold
// and dynamic fee apply.
type MarketsConfig struct {
	KalshiTickers       []string `mapstructure:"kalshi_tickers"`
	PolyMarkets         []string `mapstructure:"poly_markets"`
	CryptoShortDuration []string `mapstructure:"crypto_short_duration"`
}

// StrategyConfig holds the negative-spread detection thresholds.
type StrategyConfig struct {
	MinSpreadCents                    int64 `mapstructure:"min_spread_cents"`
	CryptoShortDurationMinSpreadCents int64 `mapstructure:"crypto_short_duration_min_spread_cents"`
	CapacityCapQty                    int64 `mapstructure:"capacity_cap_qty"`
}

// RiskConfig holds the position sizer's tunables.
type RiskConfig struct {
	MaxPositionSizeUSD   int64   `mapstructure:"max_position_size_usd"`
	BalanceFraction      float64 `mapstructure:"balance_fraction"`
	CrossVenueRiskFactor float64 `mapstructure:"cross_venue_risk_factor"`
	// CrossPlatformWhitelist entries are "kalshi_market:poly_market" pairs;
	// external policy, loaded from config rather than hard-coded.
	CrossPlatformWhitelist []string `mapstructure:"cross_platform_whitelist"`
	// Seed balances for the per-venue free-capital counters. Until venue
	// balance APIs are polled these are the operator's declared deposits.
	KalshiBalanceUSD     int64 `mapstructure:"kalshi_balance_usd"`
	PolymarketBalanceUSD int64 `mapstructure:"polymarket_balance_usd"`
}

// ExecutionConfig holds the enable/disable switch, leg timeouts, and the
// partial-fill floor below which an arb aborts instead of hedging.
type ExecutionConfig struct {
	EnableLiveTrading      bool          `mapstructure:"enable_live_trading"`
	PolymarketLegTimeoutMs int           `mapstructure:"polymarket_leg_timeout_ms"`
	KalshiLegTimeoutMs     int           `mapstructure:"kalshi_leg_timeout_ms"`
	CrossPlatformTimeoutMs int           `mapstructure:"cross_platform_leg_timeout_ms"`
	MinViableQty           int64         `mapstructure:"min_viable_qty"`
	ShutdownDeadline       time.Duration `mapstructure:"shutdown_deadline"`
}

// HedgerConfig holds the Hedger's chase/fade budget.
type HedgerConfig struct {
	MaxHedgeLossPerContractCents int64 `mapstructure:"max_hedge_loss_per_contract_cents"`
	HedgeTimeoutMs               int   `mapstructure:"hedge_timeout_ms"`
	WideSpreadThresholdCents     int64 `mapstructure:"wide_spread_threshold_cents"`
}

// CTFConfig holds the on-chain merge parameters and the gas oracle source.
type CTFConfig struct {
	ContractAddress string `mapstructure:"ctf_contract_address"`
	CollateralToken string `mapstructure:"collateral_token"`
	RPCEndpoint     string `mapstructure:"rpc_endpoint"`
	MergeMaxRetries int    `mapstructure:"merge_max_retries"`
	PrivateKeyHex   string `mapstructure:"private_key_hex"`
	GasStationURL   string `mapstructure:"gas_station_url"`
	GasLimit        int64  `mapstructure:"gas_limit"`
}

// SignerConfig holds signer-process settings.
type SignerConfig struct {
	SocketPath          string `mapstructure:"socket_path"`
	SessionTTLSec       int    `mapstructure:"session_ttl_sec"`
	KMSKeyID            string `mapstructure:"kms_key_id"`
	AWSRegion           string `mapstructure:"aws_region"`
	KeyCiphertextPath   string `mapstructure:"key_ciphertext_path"`
	MaxSessionValueUSDC int64  `mapstructure:"max_session_value_usdc"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

// DSN returns the PostgreSQL connection string.
func (d DBConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// RedisConfig holds Redis connection settings.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Load reads configuration from environment variables prefixed with ARBITER_.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("ARBITER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("env", "development")

	// Signer defaults.
	v.SetDefault("signer.socket_path", "/var/run/arbiter/signer.sock")
	v.SetDefault("signer.session_ttl_sec", 3600)
	v.SetDefault("signer.aws_region", "us-east-1")
	v.SetDefault("signer.max_session_value_usdc", 10000)

	// DB defaults.
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "arbiter")
	v.SetDefault("db.password", "arbiter")
	v.SetDefault("db.dbname", "arbiter")
	v.SetDefault("db.sslmode", "disable")

	// Redis defaults.
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	// Strategy defaults.
	v.SetDefault("strategy.min_spread_cents", 2)
	v.SetDefault("strategy.crypto_short_duration_min_spread_cents", 4)
	v.SetDefault("strategy.capacity_cap_qty", 0)

	// Risk defaults.
	v.SetDefault("risk.max_position_size_usd", 1000)
	v.SetDefault("risk.balance_fraction", 0.02)
	v.SetDefault("risk.cross_venue_risk_factor", 1.0)
	v.SetDefault("risk.cross_platform_whitelist", []string{})
	v.SetDefault("risk.kalshi_balance_usd", 0)
	v.SetDefault("risk.polymarket_balance_usd", 0)

	// Execution defaults.
	v.SetDefault("execution.enable_live_trading", false)
	v.SetDefault("execution.polymarket_leg_timeout_ms", 500)
	v.SetDefault("execution.kalshi_leg_timeout_ms", 2000)
	v.SetDefault("execution.cross_platform_leg_timeout_ms", 5000)
	v.SetDefault("execution.min_viable_qty", 1)
	v.SetDefault("execution.shutdown_deadline", 30*time.Second)

	// Hedger defaults.
	v.SetDefault("hedger.max_hedge_loss_per_contract_cents", 3)
	v.SetDefault("hedger.hedge_timeout_ms", 1500)
	v.SetDefault("hedger.wide_spread_threshold_cents", 5)

	// CTF defaults.
	v.SetDefault("ctf.ctf_contract_address", "0x4D97DCd97eC945f40cF65F87097ACe5EA0476045")
	v.SetDefault("ctf.collateral_token", "0x2791Bca1f2de4661ED88A30C99A7a9449Aa84174") // Polygon USDC
	v.SetDefault("ctf.rpc_endpoint", "https://polygon-rpc.com")
	v.SetDefault("ctf.merge_max_retries", 3)
	v.SetDefault("ctf.gas_station_url", "https://gasstation.polygon.technology/v2")
	v.SetDefault("ctf.gas_limit", 250000)

	// Feed defaults — off until the operator lists markets to watch, since
	// enabling opens real exchange connections.
	v.SetDefault("feeds.enabled", false)
	v.SetDefault("feeds.kalshi_ws_url", "wss://trading-api.kalshi.com/trade-api/ws/v2")
	v.SetDefault("feeds.poly_ws_url", "wss://ws-subscriptions-clob.polymarket.com/ws/market")

	// Venue order-API defaults; credentials have no defaults.
	v.SetDefault("venues.kalshi_rest_url", "https://trading-api.kalshi.com")
	v.SetDefault("venues.poly_rest_url", "https://clob.polymarket.com")

	// Market list defaults: empty; the engine trades nothing it wasn't told
	// to watch.
	v.SetDefault("markets.kalshi_tickers", []string{})
	v.SetDefault("markets.poly_markets", []string{})
	v.SetDefault("markets.crypto_short_duration", []string{})

	cfg := &Config{}

	cfg.Env = v.GetString("env")
	cfg.LocalStackEndpoint = v.GetString("localstack_endpoint")

	cfg.Signer = SignerConfig{
		SocketPath:          v.GetString("signer.socket_path"),
		SessionTTLSec:       v.GetInt("signer.session_ttl_sec"),
		KMSKeyID:            v.GetString("signer.kms_key_id"),
		AWSRegion:           v.GetString("signer.aws_region"),
		KeyCiphertextPath:   v.GetString("signer.key_ciphertext_path"),
		MaxSessionValueUSDC: v.GetInt64("signer.max_session_value_usdc"),
	}

	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		DBName:   v.GetString("db.dbname"),
		SSLMode:  v.GetString("db.sslmode"),
	}

	cfg.Redis = RedisConfig{
		Addr:     v.GetString("redis.addr"),
		Password: v.GetString("redis.password"),
		DB:       v.GetInt("redis.db"),
	}

	cfg.Strategy = StrategyConfig{
		MinSpreadCents:                    v.GetInt64("strategy.min_spread_cents"),
		CryptoShortDurationMinSpreadCents: v.GetInt64("strategy.crypto_short_duration_min_spread_cents"),
		CapacityCapQty:                    v.GetInt64("strategy.capacity_cap_qty"),
	}

	cfg.Risk = RiskConfig{
		MaxPositionSizeUSD:     v.GetInt64("risk.max_position_size_usd"),
		BalanceFraction:        v.GetFloat64("risk.balance_fraction"),
		CrossVenueRiskFactor:   v.GetFloat64("risk.cross_venue_risk_factor"),
		CrossPlatformWhitelist: v.GetStringSlice("risk.cross_platform_whitelist"),
		KalshiBalanceUSD:       v.GetInt64("risk.kalshi_balance_usd"),
		PolymarketBalanceUSD:   v.GetInt64("risk.polymarket_balance_usd"),
	}

	cfg.Feeds = FeedsConfig{
		KalshiWSURL: v.GetString("feeds.kalshi_ws_url"),
		PolyWSURL:   v.GetString("feeds.poly_ws_url"),
		Enabled:     v.GetBool("feeds.enabled"),
	}

	cfg.Venues = VenuesConfig{
		KalshiAPIKey:         v.GetString("venues.kalshi_api_key"),
		KalshiPrivateKeyPath: v.GetString("venues.kalshi_private_key_path"),
		KalshiRESTURL:        v.GetString("venues.kalshi_rest_url"),
		PolyRESTURL:          v.GetString("venues.poly_rest_url"),
		PolyAPIKey:           v.GetString("venues.poly_api_key"),
	}

	cfg.Markets = MarketsConfig{
		KalshiTickers:       v.GetStringSlice("markets.kalshi_tickers"),
		PolyMarkets:         v.GetStringSlice("markets.poly_markets"),
		CryptoShortDuration: v.GetStringSlice("markets.crypto_short_duration"),
	}

	cfg.Execution = ExecutionConfig{
		EnableLiveTrading:      v.GetBool("execution.enable_live_trading"),
		PolymarketLegTimeoutMs: v.GetInt("execution.polymarket_leg_timeout_ms"),
		KalshiLegTimeoutMs:     v.GetInt("execution.kalshi_leg_timeout_ms"),
		CrossPlatformTimeoutMs: v.GetInt("execution.cross_platform_leg_timeout_ms"),
		MinViableQty:           v.GetInt64("execution.min_viable_qty"),
		ShutdownDeadline:       v.GetDuration("execution.shutdown_deadline"),
	}

	cfg.Hedger = HedgerConfig{
		MaxHedgeLossPerContractCents: v.GetInt64("hedger.max_hedge_loss_per_contract_cents"),
		HedgeTimeoutMs:               v.GetInt("hedger.hedge_timeout_ms"),
		WideSpreadThresholdCents:     v.GetInt64("hedger.wide_spread_threshold_cents"),
	}

	cfg.CTF = CTFConfig{
		ContractAddress: v.GetString("ctf.ctf_contract_address"),
		CollateralToken: v.GetString("ctf.collateral_token"),
		RPCEndpoint:     v.GetString("ctf.rpc_endpoint"),
		MergeMaxRetries: v.GetInt("ctf.merge_max_retries"),
		PrivateKeyHex:   v.GetString("ctf.private_key_hex"),
		GasStationURL:   v.GetString("ctf.gas_station_url"),
		GasLimit:        v.GetInt64("ctf.gas_limit"),
	}

	return cfg, nil
}
