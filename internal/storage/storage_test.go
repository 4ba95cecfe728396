package storage

import (
	"bytes"
	"context"
	"io"
	"os"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/caesar-terminal/arbiter/internal/bookkeeping"
	"github.com/caesar-terminal/arbiter/internal/legstate"
)

func testTradeRecord() *TradeRecord {
	return &TradeRecord{
		ID:         "11111111-1111-1111-1111-111111111111",
		DetectedAt: time.Unix(1700000000, 0),
		ClosedAt:   time.Unix(1700000005, 0),
		Leg1: LegFill{
			Venue: bookkeeping.VenueKalshi, MarketID: "KXBTC-100K", Side: bookkeeping.Yes,
			AskPrice: 48, FilledQty: 100,
		},
		Leg2: LegFill{
			Venue: bookkeeping.VenuePolymarket, MarketID: "0xabc", Side: bookkeeping.No,
			AskPrice: 51, FilledQty: 100,
		},
		FinalState:  legstate.Merged,
		FeesCents:   30,
		GasCents:    12,
		MergeTxHash: "0xdeadbeef",
		RealizedPnL: 58,
	}
}

func testPosition() *Position {
	return &Position{
		Venue: bookkeeping.VenueKalshi, MarketID: "KXBTC-100K", Side: bookkeeping.Yes,
		Qty: 100, AvgCost: 48, AcquiredAt: time.Unix(1700000000, 0),
	}
}

func TestConsoleStorage_New(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	s := NewConsoleStorage(logger)
	require.NotNil(t, s)
	require.NotNil(t, s.logger)
}

func TestConsoleStorage_RecordTrade(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	s := NewConsoleStorage(logger)

	oldStdout := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	err := s.RecordTrade(context.Background(), testTradeRecord())

	w.Close()
	os.Stdout = oldStdout

	var buf bytes.Buffer
	io.Copy(&buf, r)
	out := buf.String()

	require.NoError(t, err)
	assert.Contains(t, out, "TRADE RECORD")
	assert.Contains(t, out, "KXBTC-100K")
	assert.Contains(t, out, "merged")
}

func TestConsoleStorage_UpsertPosition(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	s := NewConsoleStorage(logger)

	oldStdout := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	err := s.UpsertPosition(context.Background(), testPosition())

	w.Close()
	os.Stdout = oldStdout

	var buf bytes.Buffer
	io.Copy(&buf, r)

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "POSITION")
}

func TestConsoleStorage_Close(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	s := NewConsoleStorage(logger)
	assert.NoError(t, s.Close())
}

func TestPostgresStorage_RecordTrade(t *testing.T) {
	logger, _ := zap.NewDevelopment()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	s := &PostgresStorage{db: db, logger: logger}
	rec := testTradeRecord()

	mock.ExpectExec("INSERT INTO trade_records").
		WithArgs(
			rec.ID, rec.DetectedAt, rec.ClosedAt,
			string(rec.Leg1.Venue), rec.Leg1.MarketID, rec.Leg1.Side.String(), int64(rec.Leg1.AskPrice), int64(rec.Leg1.FilledQty),
			string(rec.Leg2.Venue), rec.Leg2.MarketID, rec.Leg2.Side.String(), int64(rec.Leg2.AskPrice), int64(rec.Leg2.FilledQty),
			rec.FinalState.String(), int64(rec.FeesCents), int64(rec.GasCents), rec.MergeTxHash, int64(rec.RealizedPnL),
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, s.RecordTrade(context.Background(), rec))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStorage_RecordTrade_AssignsID(t *testing.T) {
	logger, _ := zap.NewDevelopment()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	s := &PostgresStorage{db: db, logger: logger}
	rec := testTradeRecord()
	rec.ID = ""

	mock.ExpectExec("INSERT INTO trade_records").WithArgs(
		sqlmock.AnyArg(), rec.DetectedAt, rec.ClosedAt,
		string(rec.Leg1.Venue), rec.Leg1.MarketID, rec.Leg1.Side.String(), int64(rec.Leg1.AskPrice), int64(rec.Leg1.FilledQty),
		string(rec.Leg2.Venue), rec.Leg2.MarketID, rec.Leg2.Side.String(), int64(rec.Leg2.AskPrice), int64(rec.Leg2.FilledQty),
		rec.FinalState.String(), int64(rec.FeesCents), int64(rec.GasCents), rec.MergeTxHash, int64(rec.RealizedPnL),
	).WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, s.RecordTrade(context.Background(), rec))
	assert.NotEmpty(t, rec.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStorage_RecordTrade_Error(t *testing.T) {
	logger, _ := zap.NewDevelopment()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	s := &PostgresStorage{db: db, logger: logger}
	rec := testTradeRecord()

	mock.ExpectExec("INSERT INTO trade_records").WillReturnError(sqlmock.ErrCancelled)

	err = s.RecordTrade(context.Background(), rec)
	assert.Error(t, err)
}

func TestPostgresStorage_UpsertPosition(t *testing.T) {
	logger, _ := zap.NewDevelopment()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	s := &PostgresStorage{db: db, logger: logger}
	pos := testPosition()

	mock.ExpectExec("INSERT INTO positions").
		WithArgs(string(pos.Venue), pos.MarketID, pos.Side.String(), int64(pos.Qty), int64(pos.AvgCost), pos.AcquiredAt).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, s.UpsertPosition(context.Background(), pos))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStorage_Close(t *testing.T) {
	logger, _ := zap.NewDevelopment()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	s := &PostgresStorage{db: db, logger: logger}
	mock.ExpectClose()

	require.NoError(t, s.Close())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStorage_InterfaceSatisfied(t *testing.T) {
	logger, _ := zap.NewDevelopment()

	var _ Storage = NewConsoleStorage(logger)

	db, _, _ := sqlmock.New()
	defer db.Close()
	var _ Storage = &PostgresStorage{db: db, logger: logger}
}
