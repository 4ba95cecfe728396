// The arbiter binary runs the negative-spread engine end to end: venue
// feeds into the Normalizer, published books through the Strategy and Risk
// engines, approved signals into the Execution Coordinator, and terminal
// outcomes into storage. A second process (cmd/signer) holds the keys.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/caesar-terminal/arbiter/internal/adapter"
	"github.com/caesar-terminal/arbiter/internal/adapter/kalshi"
	"github.com/caesar-terminal/arbiter/internal/adapter/poly"
	"github.com/caesar-terminal/arbiter/internal/bookkeeping"
	"github.com/caesar-terminal/arbiter/internal/config"
	"github.com/caesar-terminal/arbiter/internal/ctf"
	"github.com/caesar-terminal/arbiter/internal/engine"
	"github.com/caesar-terminal/arbiter/internal/execution"
	"github.com/caesar-terminal/arbiter/internal/feemodel"
	"github.com/caesar-terminal/arbiter/internal/healthprobe"
	"github.com/caesar-terminal/arbiter/internal/hedger"
	"github.com/caesar-terminal/arbiter/internal/httpserver"
	"github.com/caesar-terminal/arbiter/internal/legstate"
	"github.com/caesar-terminal/arbiter/internal/money"
	"github.com/caesar-terminal/arbiter/internal/risk"
	"github.com/caesar-terminal/arbiter/internal/signer"
	"github.com/caesar-terminal/arbiter/internal/storage"
	"github.com/caesar-terminal/arbiter/internal/strategy"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := newLogger(cfg.Env)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("arbiter: starting",
		zap.String("env", cfg.Env),
		zap.Bool("live_trading", cfg.Execution.EnableLiveTrading),
		zap.Bool("feeds", cfg.Feeds.Enabled))

	checker := healthprobe.New()
	srv := httpserver.New(httpserver.Config{Port: operatorPort(), Logger: logger, Checker: checker})

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	srvErrCh := make(chan error, 1)
	go func() { srvErrCh <- srv.Start() }()

	// Gas oracle: a cached Polygon gas-station snapshot when feeds run and
	// a gas-station URL is set, ZeroGasOracle (zero gas) otherwise.
	var gasOracle feemodel.GasOracle = feemodel.ZeroGasOracle{}
	if cfg.Feeds.Enabled && cfg.CTF.GasStationURL != "" {
		cached := feemodel.NewCachingGasOracle(
			feemodel.NewHTTPGasOracle(cfg.CTF.GasStationURL, cfg.CTF.GasLimit),
			30*time.Second, 1, logger)
		go cached.Run(ctx)
		gasOracle = cached
	}

	registry := adapter.NewRegistry(gasOracle)
	whitelist := registerWhitelist(registry, cfg.Risk.CrossPlatformWhitelist, logger)
	registerTags(registry, cfg.Markets.CryptoShortDuration, logger)

	normalizer := bookkeeping.NewNormalizer(logger)

	// Every downstream consumer reads published books through the hub:
	// Strategy, the breaker's staleness monitor, the Redis dashboard
	// writer, and the cross-venue preview.
	hub := adapter.NewBroadcaster(logger)
	hub.Register(normalizer)
	breaker := adapter.NewCircuitBreaker(adapter.DefaultCircuitBreakerConfig(), hub.SubscribeAll())
	go breaker.Run(ctx)

	strategyEngine := strategy.NewEngine(strategy.Config{
		BaselineThresholdCents: cfg.Strategy.MinSpreadCents,
		CryptoThresholdCents:   cfg.Strategy.CryptoShortDurationMinSpreadCents,
		CapacityCapQty:         money.Quantity(cfg.Strategy.CapacityCapQty),
	}, registry, whitelist, logger, nil)

	balances := risk.NewBalances(map[bookkeeping.Venue]money.Cents{
		bookkeeping.VenueKalshi:     money.Cents(cfg.Risk.KalshiBalanceUSD * 100),
		bookkeeping.VenuePolymarket: money.Cents(cfg.Risk.PolymarketBalanceUSD * 100),
	})
	openLegs := legstate.NewOpenLegIndex()

	riskEngine := risk.NewEngine(risk.Config{
		MaxPositionSizeCents: cfg.Risk.MaxPositionSizeUSD * 100,
		BalanceFraction:      cfg.Risk.BalanceFraction,
		CrossVenueRiskFactor: cfg.Risk.CrossVenueRiskFactor,
	}, balances, openLegs, risk.NewCircuitBreakerLiveness(breaker), whitelist, logger, nil)

	kalshiOrders, polyOrders := buildOrderAdapters(cfg, logger)

	hedgerEngine := hedger.New(hedger.Config{
		MaxHedgeLossPerContract: money.Cents(cfg.Hedger.MaxHedgeLossPerContractCents),
		HedgeTimeout:            time.Duration(cfg.Hedger.HedgeTimeoutMs) * time.Millisecond,
		WideSpreadThreshold:     money.Cents(cfg.Hedger.WideSpreadThresholdCents),
	}, normalizerBooks{normalizer}, hedgeRouter{kalshi: kalshiOrders, poly: polyOrders}, logger)

	store := newStorage(cfg, logger)
	defer store.Close()

	// The preflight Validator only rejects sensibly once real feeds
	// populate the breaker's per-market freshness; without feeds, CanTrade
	// has never seen a book and would block every leg.
	var validator execution.PreflightValidator
	if cfg.Feeds.Enabled {
		validator = engine.NewValidator(breaker)
	}

	timeouts := execution.Timeouts{
		PolymarketOnly: time.Duration(cfg.Execution.PolymarketLegTimeoutMs) * time.Millisecond,
		KalshiOnly:     time.Duration(cfg.Execution.KalshiLegTimeoutMs) * time.Millisecond,
		CrossPlatform:  time.Duration(cfg.Execution.CrossPlatformTimeoutMs) * time.Millisecond,
	}
	if timeouts.PolymarketOnly == 0 && timeouts.KalshiOnly == 0 && timeouts.CrossPlatform == 0 {
		timeouts = execution.DefaultTimeouts()
	}

	coordinator := execution.NewCoordinator(kalshiOrders, polyOrders, balances, openLegs,
		buildMerger(ctx, cfg, logger), hedgerEngine, timeouts, logger, nil).
		WithRecorder(storageRecorder{store}).
		WithValidator(validator).
		WithMinViableQty(money.Quantity(cfg.Execution.MinViableQty))

	runCtx, runCancel := context.WithCancel(ctx)
	go hub.Run(runCtx)
	go strategyEngine.Run(runCtx, hub.SubscribeAll())
	go pumpSignals(runCtx, checker, strategyEngine, riskEngine, coordinator, logger)

	if cfg.Feeds.Enabled {
		go runFeeds(runCtx, cfg, registry, normalizer, hub, breaker, logger)
	}
	if cfg.Execution.EnableLiveTrading {
		go runFillTape(runCtx, cfg, logger)
	}

	checker.SetReady(true)
	logger.Info("arbiter: ready")

	select {
	case <-ctx.Done():
		logger.Info("arbiter: shutdown signal received, draining")
	case err := <-srvErrCh:
		if err != nil {
			logger.Error("arbiter: operator http server failed", zap.Error(err))
		}
	}

	// Refuse new signals, then give in-flight legs the shutdown deadline to
	// reach a terminal state before tearing anything down.
	checker.BeginDrain()
	runCancel()

	deadline := cfg.Execution.ShutdownDeadline
	if deadline <= 0 {
		deadline = 30 * time.Second
	}
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), deadline)
	defer shutdownCancel()

	if err := coordinator.Drain(shutdownCtx); err != nil {
		logger.Warn("arbiter: shutdown deadline hit with legs still in flight", zap.Error(err))
	}
	_ = srv.Shutdown(shutdownCtx)

	logger.Info("arbiter: shutdown complete")
}

// pumpSignals drains ArbSignals from the Strategy engine, gates each
// through Risk, and executes approved signals on their own goroutine so one
// arb's lifetime never blocks the next signal's evaluation. Once the drain
// flag is up, signals are discarded unexecuted.
func pumpSignals(ctx context.Context, checker *healthprobe.HealthChecker, se *strategy.Engine, re *risk.Engine, co *execution.Coordinator, logger *zap.Logger) {
	for {
		select {
		case <-ctx.Done():
			return
		case sig, ok := <-se.Signals():
			if !ok {
				return
			}
			if checker.Draining() {
				continue
			}
			dec := re.Evaluate(sig)
			if !dec.Approved {
				continue
			}
			go func(sig strategy.ArbSignal, dec risk.Decision) {
				state := co.Execute(ctx, sig, dec, conditionIDFor(sig))
				logger.Info("arbiter: arb terminal",
					zap.String("state", state.String()),
					zap.String("leg1_market", sig.Leg1.MarketID),
					zap.String("leg2_market", sig.Leg2.MarketID))
			}(sig, dec)
		}
	}
}

// conditionIDFor derives the CTF condition ID the merge call targets. Both
// legs of a Polymarket-only arb share the same condition; for any other
// pairing the Coordinator never invokes the merger.
func conditionIDFor(sig strategy.ArbSignal) string {
	return sig.Leg1.MarketID
}

// runFeeds connects both venue feeds, drives the Normalizer, and brings up
// the operator preview (crossed-book alerts, Redis dashboard tops). An auth
// failure takes down only that venue's feed; the engine continues with
// degraded coverage and the breaker keeps its markets untradable.
func runFeeds(ctx context.Context, cfg *config.Config, registry *adapter.Registry, norm *bookkeeping.Normalizer, hub *adapter.Broadcaster, breaker *adapter.CircuitBreaker, logger *zap.Logger) {
	kalshiCfg := adapter.DefaultWSConfig(cfg.Feeds.KalshiWSURL)
	if cfg.Venues.KalshiAPIKey != "" && cfg.Venues.KalshiPrivateKeyPath != "" {
		pemKey, err := os.ReadFile(cfg.Venues.KalshiPrivateKeyPath)
		if err != nil {
			logger.Error("arbiter: kalshi private key unreadable, feed disabled", zap.Error(err))
		} else if headers, err := kalshi.AuthHeaders(cfg.Venues.KalshiAPIKey, pemKey); err != nil {
			logger.Error("arbiter: kalshi feed auth failed, feed disabled", zap.Error(err))
		} else {
			kalshiCfg.Headers = headers
		}
	}

	kalshiWS := adapter.NewWSClient(kalshiCfg, logger)
	polyWS := adapter.NewWSClient(adapter.DefaultWSConfig(cfg.Feeds.PolyWSURL), logger)

	kalshiFeed := kalshi.NewFeed(kalshiWS, norm, logger)
	polyFeed := poly.NewFeed(polyWS, norm, logger)

	breaker.WatchConnection(bookkeeping.VenueKalshi, kalshiWS)
	breaker.WatchConnection(bookkeeping.VenuePolymarket, polyWS)

	kalshiUp := connectFeed(ctx, kalshiWS, "kalshi", logger)
	polyUp := connectFeed(ctx, polyWS, "polymarket", logger)
	if kalshiUp {
		defer kalshiWS.Close()
		go kalshiFeed.Run(ctx)
	}
	if polyUp {
		defer polyWS.Close()
		go polyFeed.Run(ctx)
	}

	subscribeMarkets(cfg, registry, kalshiFeed, polyFeed)

	preview := adapter.NewUnifiedBook(hub, 0)
	for _, pair := range registry.Pairs() {
		preview.AddPair(pair)
	}
	go logCrossedBooks(ctx, preview, logger)

	if cfg.Redis.Addr != "" {
		rdb := goredis.NewClient(&goredis.Options{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		rw := adapter.NewRedisWriter(adapter.NewGoRedisClient(rdb), hub.SubscribeAll())
		go rw.Run(ctx)
	}

	preview.Run(ctx)
}

func connectFeed(ctx context.Context, ws *adapter.WSClient, name string, logger *zap.Logger) bool {
	if err := ws.Connect(ctx); err != nil {
		logger.Error("arbiter: feed connect failed, venue coverage degraded",
			zap.String("venue", name), zap.Error(err))
		return false
	}
	return true
}

// subscribeMarkets subscribes both feeds to every configured market: the
// standalone watch lists plus both legs of every whitelisted pair.
func subscribeMarkets(cfg *config.Config, registry *adapter.Registry, kalshiFeed *kalshi.Feed, polyFeed *poly.Feed) {
	seenKalshi := make(map[string]bool)
	for _, ticker := range cfg.Markets.KalshiTickers {
		seenKalshi[ticker] = true
		kalshiFeed.Subscribe(ticker)
	}
	for _, pair := range registry.Pairs() {
		if !seenKalshi[pair.KalshiMarketID] {
			seenKalshi[pair.KalshiMarketID] = true
			kalshiFeed.Subscribe(pair.KalshiMarketID)
		}
	}

	for _, entry := range cfg.Markets.PolyMarkets {
		marketID, yesToken, noToken, ok := splitPolyMarket(entry)
		if !ok {
			continue
		}
		polyFeed.Bind(yesToken, marketID, bookkeeping.Yes)
		polyFeed.Bind(noToken, marketID, bookkeeping.No)
		polyFeed.Subscribe(yesToken)
		polyFeed.Subscribe(noToken)
	}
}

func splitPolyMarket(entry string) (marketID, yesToken, noToken string, ok bool) {
	parts := strings.Split(entry, ":")
	if len(parts) != 3 {
		return "", "", "", false
	}
	return parts[0], parts[1], parts[2], true
}

func logCrossedBooks(ctx context.Context, preview *adapter.UnifiedBook, logger *zap.Logger) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-preview.Events():
			if !ok {
				return
			}
			logger.Info("arbiter: crossed book (preview)",
				zap.String("pair", ev.Pair.Name),
				zap.String("bid_venue", string(ev.BidVenue)),
				zap.String("spread", ev.SpreadCents.Dollars()))
		}
	}
}

// runFillTape opens the authenticated per-venue private feed and logs every
// order-update frame — the operator's live record of what actually filled,
// independent of the Coordinator's own bookkeeping.
func runFillTape(ctx context.Context, cfg *config.Config, logger *zap.Logger) {
	if cfg.Venues.KalshiAPIKey == "" || cfg.Venues.KalshiPrivateKeyPath == "" {
		return
	}
	pemKey, err := os.ReadFile(cfg.Venues.KalshiPrivateKeyPath)
	if err != nil {
		logger.Warn("arbiter: fill tape disabled, key unreadable", zap.Error(err))
		return
	}
	headers, err := kalshi.AuthHeaders(cfg.Venues.KalshiAPIKey, pemKey)
	if err != nil {
		logger.Warn("arbiter: fill tape disabled, auth failed", zap.Error(err))
		return
	}

	feeds := adapter.NewPrivateFeedManager()
	defer feeds.CloseAll()

	feed, err := feeds.Open(ctx, adapter.PrivateFeedConfig{
		Venue:   bookkeeping.VenueKalshi,
		URL:     cfg.Feeds.KalshiWSURL,
		Headers: headers,
	})
	if err != nil {
		logger.Warn("arbiter: fill tape disabled, private feed connect failed", zap.Error(err))
		return
	}

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-feed.Messages():
			if !ok {
				return
			}
			logger.Info("arbiter: private feed frame",
				zap.String("venue", string(bookkeeping.VenueKalshi)),
				zap.ByteString("frame", msg))
		}
	}
}

// buildOrderAdapters returns the venue order clients: live REST clients
// when live trading is enabled and credentials are present, the paper
// adapter otherwise.
func buildOrderAdapters(cfg *config.Config, logger *zap.Logger) (execution.KalshiOrderAdapter, execution.PolymarketOrderAdapter) {
	var kalshiOrders execution.KalshiOrderAdapter = execution.PaperAdapter{}
	var polyOrders execution.PolymarketOrderAdapter = execution.PaperAdapter{}

	if !cfg.Execution.EnableLiveTrading {
		return kalshiOrders, polyOrders
	}

	if cfg.Venues.KalshiAPIKey != "" && cfg.Venues.KalshiPrivateKeyPath != "" {
		pemKey, err := os.ReadFile(cfg.Venues.KalshiPrivateKeyPath)
		if err != nil {
			logger.Error("arbiter: kalshi private key unreadable, kalshi orders stay paper", zap.Error(err))
		} else if rs, err := kalshi.NewRequestSigner(cfg.Venues.KalshiAPIKey, pemKey); err != nil {
			logger.Error("arbiter: kalshi signer init failed, kalshi orders stay paper", zap.Error(err))
		} else {
			kalshiOrders = kalshi.NewOrderClient(cfg.Venues.KalshiRESTURL, rs, logger)
			logger.Info("arbiter: kalshi live order client up")
		}
	} else {
		logger.Warn("arbiter: live trading enabled without kalshi credentials, kalshi orders stay paper")
	}

	if cfg.Venues.PolyAPIKey != "" {
		signerClient, err := signer.Dial(cfg.Signer.SocketPath)
		if err != nil {
			logger.Error("arbiter: signer unreachable, polymarket orders stay paper", zap.Error(err))
		} else {
			client := poly.NewOrderClient(cfg.Venues.PolyRESTURL, cfg.Venues.PolyAPIKey, signerClient, logger)
			for _, entry := range cfg.Markets.PolyMarkets {
				marketID, yesToken, noToken, ok := splitPolyMarket(entry)
				if !ok {
					continue
				}
				client.Bind(marketID, bookkeeping.Yes, yesToken)
				client.Bind(marketID, bookkeeping.No, noToken)
			}
			polyOrders = client
			logger.Info("arbiter: polymarket live order client up")
		}
	} else {
		logger.Warn("arbiter: live trading enabled without polymarket credentials, polymarket orders stay paper")
	}

	return kalshiOrders, polyOrders
}

// buildMerger wires the CTF merge path when a Polygon key is configured;
// without one, Polymarket pairs are held to resolution instead of merged.
func buildMerger(ctx context.Context, cfg *config.Config, logger *zap.Logger) execution.Merger {
	if cfg.CTF.PrivateKeyHex == "" {
		return nil
	}

	client, err := ethclient.DialContext(ctx, cfg.CTF.RPCEndpoint)
	if err != nil {
		logger.Error("arbiter: polygon rpc unreachable, merge path disabled", zap.Error(err))
		return nil
	}

	key, err := crypto.HexToECDSA(strings.TrimPrefix(cfg.CTF.PrivateKeyHex, "0x"))
	if err != nil {
		logger.Error("arbiter: invalid merge key, merge path disabled", zap.Error(err))
		return nil
	}

	merger, err := ctf.New(ctf.Config{
		CTFAddress:        cfg.CTF.ContractAddress,
		CollateralToken:   cfg.CTF.CollateralToken,
		MaxRetries:        cfg.CTF.MergeMaxRetries,
		GasLimit:          uint64(cfg.CTF.GasLimit),
		ReorgRecheckDelay: 2 * time.Second,
	}, client, key, logger)
	if err != nil {
		logger.Error("arbiter: merger init failed, merge path disabled", zap.Error(err))
		return nil
	}
	logger.Info("arbiter: CTF merge path up", zap.String("contract", cfg.CTF.ContractAddress))
	return merger
}

func operatorPort() string {
	if p := os.Getenv("ARBITER_OPERATOR_PORT"); p != "" {
		return p
	}
	return "8090"
}

func newLogger(env string) (*zap.Logger, error) {
	if env == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// registerWhitelist loads the cross-platform policy pairs into the registry
// and returns the Strategy's whitelist view of them.
func registerWhitelist(reg *adapter.Registry, entries []string, logger *zap.Logger) *strategy.CrossVenueWhitelist {
	for _, raw := range entries {
		parts := strings.SplitN(raw, ":", 2)
		if len(parts) != 2 {
			logger.Warn("arbiter: malformed cross_platform_whitelist entry, skipping", zap.String("entry", raw))
			continue
		}
		reg.RegisterPair(adapter.MarketPair{
			Name:           parts[0] + "↔" + parts[1],
			KalshiMarketID: parts[0],
			PolyMarketID:   parts[1],
		})
	}
	return reg.Whitelist()
}

// registerTags marks crypto short-duration markets ("venue:market_id") so
// the dynamic fee and elevated threshold apply.
func registerTags(reg *adapter.Registry, entries []string, logger *zap.Logger) {
	for _, raw := range entries {
		parts := strings.SplitN(raw, ":", 2)
		if len(parts) != 2 {
			logger.Warn("arbiter: malformed crypto_short_duration entry, skipping", zap.String("entry", raw))
			continue
		}
		reg.SetTags(bookkeeping.Venue(parts[0]), parts[1], feemodel.MarketTags{
			IsCrypto:        true,
			IsShortDuration: true,
		})
	}
}

// normalizerBooks adapts the Normalizer's book accessor to the Hedger's
// ask-depth reads.
type normalizerBooks struct {
	norm *bookkeeping.Normalizer
}

func (b normalizerBooks) Asks(venue bookkeeping.Venue, marketID string, side bookkeeping.Side) []bookkeeping.BookLevel {
	ob, ok := b.norm.Book(venue, marketID)
	if !ok {
		return nil
	}
	if side == bookkeeping.No {
		return ob.NoAsks
	}
	return ob.YesAsks
}

// hedgeRouter adapts the two venue order clients to the Hedger's
// venue-agnostic order surface. Polymarket has no resting-order client
// here, so both IOC and the fade's passive limit degrade to a FOK attempt
// at the target price.
type hedgeRouter struct {
	kalshi execution.KalshiOrderAdapter
	poly   execution.PolymarketOrderAdapter
}

func (r hedgeRouter) PlaceIOC(ctx context.Context, venue bookkeeping.Venue, marketID string, side bookkeeping.Side, px money.Cents, qty money.Quantity) execution.OrderResult {
	if venue == bookkeeping.VenuePolymarket {
		return r.poly.PlaceFOK(ctx, marketID, side, px, qty)
	}
	orderID, err := r.kalshi.PlaceIOC(ctx, marketID, side, px, qty)
	if err != nil {
		return execution.OrderResult{Status: execution.FillRejected, Err: err}
	}
	return r.kalshi.Await(ctx, orderID)
}

func (r hedgeRouter) PlaceLimit(ctx context.Context, venue bookkeeping.Venue, marketID string, side bookkeeping.Side, px money.Cents, qty money.Quantity, ttl time.Duration) execution.OrderResult {
	if venue == bookkeeping.VenuePolymarket {
		return r.poly.PlaceFOK(ctx, marketID, side, px, qty)
	}
	limitCtx, cancel := context.WithTimeout(ctx, ttl)
	defer cancel()
	orderID, err := r.kalshi.PlaceIOC(limitCtx, marketID, side, px, qty)
	if err != nil {
		return execution.OrderResult{Status: execution.FillRejected, Err: err}
	}
	res := r.kalshi.Await(limitCtx, orderID)
	if res.Status == execution.FillTimedOut {
		_ = r.kalshi.Cancel(context.Background(), orderID)
	}
	return res
}

// newStorage picks PostgresStorage when the configured database is
// reachable, falling back to ConsoleStorage — a readable trade tape with
// zero setup — on connection failure.
func newStorage(cfg *config.Config, logger *zap.Logger) storage.Storage {
	pg, err := storage.NewPostgresStorage(&storage.PostgresConfig{
		Host: cfg.DB.Host, Port: fmt.Sprintf("%d", cfg.DB.Port), User: cfg.DB.User,
		Password: cfg.DB.Password, Database: cfg.DB.DBName, SSLMode: cfg.DB.SSLMode, Logger: logger,
	})
	if err != nil {
		logger.Warn("arbiter: postgres storage unavailable, falling back to console", zap.Error(err))
		return storage.NewConsoleStorage(logger)
	}
	return pg
}

// storageRecorder adapts storage.Storage to execution.TradeRecorder,
// translating the Coordinator's terminal-state view into the persisted
// trade-record shape.
type storageRecorder struct {
	store storage.Storage
}

func (r storageRecorder) RecordTrade(ctx context.Context, rec *execution.TradeRecord) error {
	return r.store.RecordTrade(ctx, &storage.TradeRecord{
		DetectedAt: rec.DetectedAt,
		ClosedAt:   rec.ClosedAt,
		Leg1: storage.LegFill{
			Venue: rec.Leg1Venue, MarketID: rec.Leg1MarketID, Side: rec.Leg1Side,
			AskPrice: rec.Leg1AskPrice, FilledQty: rec.Leg1FilledQty,
		},
		Leg2: storage.LegFill{
			Venue: rec.Leg2Venue, MarketID: rec.Leg2MarketID, Side: rec.Leg2Side,
			AskPrice: rec.Leg2AskPrice, FilledQty: rec.Leg2FilledQty,
		},
		FinalState:  rec.FinalState,
		FeesCents:   rec.FeesCents,
		GasCents:    rec.GasCents,
		MergeTxHash: rec.MergeTxHash,
		RealizedPnL: rec.RealizedPnL,
	})
}
