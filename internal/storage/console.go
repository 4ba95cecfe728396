package storage

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// ConsoleStorage implements Storage by pretty-printing every trade record
// and position update to stdout. cmd/arbiter falls back to it when the
// Postgres connection cannot be established — an operator running in paper
// mode still gets a readable trade tape without standing up a database.
type ConsoleStorage struct {
	logger *zap.Logger
}

// NewConsoleStorage creates a ConsoleStorage.
func NewConsoleStorage(logger *zap.Logger) *ConsoleStorage {
	logger.Info("console-storage-initialized")
	return &ConsoleStorage{logger: logger}
}

// RecordTrade pretty-prints a terminal arb outcome to console.
func (c *ConsoleStorage) RecordTrade(ctx context.Context, rec *TradeRecord) error {
	fmt.Println("\n" + "────────────────────────────────────────────────────")
	fmt.Printf("TRADE RECORD  %s\n", rec.ID)
	fmt.Printf("  leg1: %-10s %-20s %-4s ask=%s filled=%d\n",
		rec.Leg1.Venue, rec.Leg1.MarketID, rec.Leg1.Side, rec.Leg1.AskPrice.Dollars(), rec.Leg1.FilledQty)
	fmt.Printf("  leg2: %-10s %-20s %-4s ask=%s filled=%d\n",
		rec.Leg2.Venue, rec.Leg2.MarketID, rec.Leg2.Side, rec.Leg2.AskPrice.Dollars(), rec.Leg2.FilledQty)
	fmt.Printf("  final state:  %s\n", rec.FinalState)
	fmt.Printf("  fees=%s gas=%s merge_tx=%s\n", rec.FeesCents.Dollars(), rec.GasCents.Dollars(), rec.MergeTxHash)
	fmt.Printf("  realized pnl: %s\n", rec.RealizedPnL.Dollars())
	fmt.Println("────────────────────────────────────────────────────")
	return nil
}

// UpsertPosition pretty-prints a position update to console.
func (c *ConsoleStorage) UpsertPosition(ctx context.Context, pos *Position) error {
	fmt.Printf("POSITION  %s %s %s qty=%d avg_cost=%s\n",
		pos.Venue, pos.MarketID, pos.Side, pos.Qty, pos.AvgCost.Dollars())
	return nil
}

// Close is a no-op for console storage.
func (c *ConsoleStorage) Close() error {
	c.logger.Info("closing-console-storage")
	return nil
}

var _ Storage = (*ConsoleStorage)(nil)
