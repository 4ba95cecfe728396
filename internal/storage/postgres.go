package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

// PostgresStorage implements Storage using PostgreSQL.
type PostgresStorage struct {
	db     *sql.DB
	logger *zap.Logger
}

// PostgresConfig holds the connection parameters for PostgresStorage.
type PostgresConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Database string
	SSLMode  string
	Logger   *zap.Logger
}

// NewPostgresStorage opens a connection pool and verifies it with a ping.
func NewPostgresStorage(cfg *PostgresConfig) (*PostgresStorage, error) {
	connStr := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Database, cfg.SSLMode,
	)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	cfg.Logger.Info("postgres-storage-connected",
		zap.String("host", cfg.Host),
		zap.String("database", cfg.Database))

	return &PostgresStorage{db: db, logger: cfg.Logger}, nil
}

// RecordTrade inserts one terminal arb outcome. A blank ID is assigned a
// fresh UUID so callers never have to mint one themselves.
func (p *PostgresStorage) RecordTrade(ctx context.Context, rec *TradeRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}

	const query = `
		INSERT INTO trade_records (
			id, detected_at, closed_at,
			leg1_venue, leg1_market_id, leg1_side, leg1_ask_price_cents, leg1_filled_qty,
			leg2_venue, leg2_market_id, leg2_side, leg2_ask_price_cents, leg2_filled_qty,
			final_state, fees_cents, gas_cents, merge_tx_hash, realized_pnl_cents
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18
		)
	`

	_, err := p.db.ExecContext(ctx, query,
		rec.ID, rec.DetectedAt, rec.ClosedAt,
		string(rec.Leg1.Venue), rec.Leg1.MarketID, rec.Leg1.Side.String(), int64(rec.Leg1.AskPrice), int64(rec.Leg1.FilledQty),
		string(rec.Leg2.Venue), rec.Leg2.MarketID, rec.Leg2.Side.String(), int64(rec.Leg2.AskPrice), int64(rec.Leg2.FilledQty),
		rec.FinalState.String(), int64(rec.FeesCents), int64(rec.GasCents), rec.MergeTxHash, int64(rec.RealizedPnL),
	)
	if err != nil {
		return fmt.Errorf("insert trade record: %w", err)
	}

	p.logger.Debug("trade-record-stored",
		zap.String("trade-id", rec.ID),
		zap.String("final-state", rec.FinalState.String()))

	return nil
}

// UpsertPosition writes the current holding for one (venue, market, side),
// replacing any existing row on that key.
func (p *PostgresStorage) UpsertPosition(ctx context.Context, pos *Position) error {
	const query = `
		INSERT INTO positions (venue, market_id, side, qty, avg_cost_cents, acquired_ts)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (venue, market_id, side) DO UPDATE SET
			qty = EXCLUDED.qty,
			avg_cost_cents = EXCLUDED.avg_cost_cents,
			acquired_ts = EXCLUDED.acquired_ts
	`

	_, err := p.db.ExecContext(ctx, query,
		string(pos.Venue), pos.MarketID, pos.Side.String(), int64(pos.Qty), int64(pos.AvgCost), pos.AcquiredAt,
	)
	if err != nil {
		return fmt.Errorf("upsert position: %w", err)
	}

	return nil
}

// Close closes the database connection.
func (p *PostgresStorage) Close() error {
	p.logger.Info("closing-postgres-storage")
	return p.db.Close()
}

var _ Storage = (*PostgresStorage)(nil)
