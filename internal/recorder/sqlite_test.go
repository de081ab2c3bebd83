package recorder

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"RentMarket/internal/model"
)

func openRecorder(t *testing.T) *SQLiteRecorder {
	t.Helper()
	r, err := NewSQLiteRecorder(filepath.Join(t.TempDir(), "history", "rent.db"))
	require.NoError(t, err)
	t.Cleanup(func() { r.Close() })
	return r
}

func count(t *testing.T, r *SQLiteRecorder, table string) int {
	t.Helper()
	var n int
	require.NoError(t, r.db.QueryRow("SELECT COUNT(*) FROM "+table).Scan(&n))
	return n
}

func TestSQLiteRecorderWritesEachTable(t *testing.T) {
	r := openRecorder(t)
	state := &model.MarketState{
		Net: model.ResourceState{Weight: 100, WeightRatio: 5, Utilization: 10, AdjustedUtilization: 12},
		CPU: model.ResourceState{Weight: 200, WeightRatio: 6},
	}
	snap := SnapshotOf(state)
	assert.Equal(t, int64(12), snap.Net.AdjustedUtilization)
	assert.Equal(t, int64(200), snap.CPU.Weight)

	require.NoError(t, r.RecordConfigure(&ConfigureEvent{
		Time:     1_600_000_000,
		Config:   state.Config(),
		Snapshot: snap,
	}))
	require.NoError(t, r.RecordTick(&TickEvent{Time: 1_600_000_060, Caller: "alice", Drained: 2, Snapshot: snap}))
	require.NoError(t, r.RecordRent(&RentEvent{
		Time:  1_600_000_120,
		Payer: "alice",
		Receipt: model.RentReceipt{
			Order: model.RentalOrder{ID: 7, Owner: "bob", NetWeight: 10, Expires: 1_602_592_120},
			Fee:   model.MustParseAsset("12.3456 TST"),
		},
		Snapshot: snap,
	}))

	assert.Equal(t, 1, count(t, r, "configure_events"))
	assert.Equal(t, 1, count(t, r, "tick_events"))
	assert.Equal(t, 1, count(t, r, "rent_events"))

	var caller, session string
	var drained int
	require.NoError(t, r.db.QueryRow("SELECT caller, drained, session FROM tick_events").Scan(&caller, &drained, &session))
	assert.Equal(t, "alice", caller)
	assert.Equal(t, 2, drained)
	assert.Equal(t, r.Session(), session)

	var fee string
	var units, orderID int64
	require.NoError(t, r.db.QueryRow("SELECT fee, fee_units, order_id FROM rent_events").Scan(&fee, &units, &orderID))
	assert.Equal(t, "12.3456 TST", fee)
	assert.Equal(t, int64(123456), units)
	assert.Equal(t, int64(7), orderID)
}

func TestSQLiteRecorderReopenKeepsHistory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rent.db")
	r, err := NewSQLiteRecorder(path)
	require.NoError(t, err)
	first := r.Session()
	require.NoError(t, r.RecordTick(&TickEvent{Time: 1, Caller: "a"}))
	require.NoError(t, r.Close())

	r, err = NewSQLiteRecorder(path)
	require.NoError(t, err)
	defer r.Close()
	assert.NotEqual(t, first, r.Session())
	require.NoError(t, r.RecordTick(&TickEvent{Time: 2, Caller: "b"}))
	assert.Equal(t, 2, count(t, r, "tick_events"))
}

func TestSQLiteRecordersShareFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rent.db")
	daemon, err := NewSQLiteRecorder(path)
	require.NoError(t, err)
	defer daemon.Close()
	cli, err := NewSQLiteRecorder(path)
	require.NoError(t, err)
	defer cli.Close()

	require.NoError(t, daemon.RecordTick(&TickEvent{Time: 1, Caller: "rentbw.sched"}))
	require.NoError(t, cli.RecordRent(&RentEvent{Time: 2, Payer: "alice"}))
	require.NoError(t, daemon.RecordTick(&TickEvent{Time: 3, Caller: "rentbw.sched"}))
	assert.Equal(t, 2, count(t, cli, "tick_events"))
	assert.Equal(t, 1, count(t, daemon, "rent_events"))
}

func TestNoopRecorder(t *testing.T) {
	var r Recorder = NewNoopRecorder()
	assert.NoError(t, r.RecordTick(&TickEvent{}))
	assert.NoError(t, r.RecordRent(&RentEvent{}))
	assert.NoError(t, r.RecordConfigure(&ConfigureEvent{}))
	assert.NoError(t, r.Close())
}
