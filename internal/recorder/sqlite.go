package recorder

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/xid"
	_ "modernc.org/sqlite"
)

// SQLiteRecorder appends market history to a SQLite database. Every row is
// tagged with the session id of the process that wrote it.
type SQLiteRecorder struct {
	db      *sql.DB
	mu      sync.Mutex
	session string
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	if dir := filepath.Dir(dbPath); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create sqlite directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// One connection, so the busy timeout below applies to every write.
	db.SetMaxOpenConns(1)

	// WAL lets dashboards read while the daemon writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}
	// serve and one-off commands may append at the same time.
	if _, err := db.Exec("PRAGMA busy_timeout=5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set busy timeout: %w", err)
	}

	r := &SQLiteRecorder{db: db, session: xid.New().String()}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s (session %s)", dbPath, r.session)
	return r, nil
}

// Session returns the id stamped on rows written by this recorder.
func (r *SQLiteRecorder) Session() string { return r.session }

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS configure_events (
			id                 INTEGER PRIMARY KEY AUTOINCREMENT,
			session            TEXT NOT NULL,
			timestamp          INTEGER NOT NULL,
			config             TEXT,
			net_weight         INTEGER,
			net_weight_ratio   INTEGER,
			cpu_weight         INTEGER,
			cpu_weight_ratio   INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_configure_ts ON configure_events(timestamp)`,

		`CREATE TABLE IF NOT EXISTS tick_events (
			id                   INTEGER PRIMARY KEY AUTOINCREMENT,
			session              TEXT NOT NULL,
			timestamp            INTEGER NOT NULL,
			caller               TEXT,
			drained              INTEGER,
			net_weight           INTEGER,
			net_weight_ratio     INTEGER,
			net_utilization      INTEGER,
			net_adjusted         INTEGER,
			cpu_weight           INTEGER,
			cpu_weight_ratio     INTEGER,
			cpu_utilization      INTEGER,
			cpu_adjusted         INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_tick_ts ON tick_events(timestamp)`,

		`CREATE TABLE IF NOT EXISTS rent_events (
			id               INTEGER PRIMARY KEY AUTOINCREMENT,
			session          TEXT NOT NULL,
			timestamp        INTEGER NOT NULL,
			order_id         INTEGER,
			payer            TEXT,
			receiver         TEXT,
			net_amount       INTEGER,
			cpu_amount       INTEGER,
			fee              TEXT,
			fee_units        INTEGER,
			expires          INTEGER,
			net_utilization  INTEGER,
			net_adjusted     INTEGER,
			cpu_utilization  INTEGER,
			cpu_adjusted     INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_rent_ts ON rent_events(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordConfigure(evt *ConfigureEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cfg, err := json.Marshal(evt.Config)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	snap := evt.Snapshot
	_, err = r.db.Exec(`INSERT INTO configure_events
		(session, timestamp, config, net_weight, net_weight_ratio, cpu_weight, cpu_weight_ratio)
		VALUES (?,?,?,?,?,?,?)`,
		r.session, int64(evt.Time), string(cfg),
		snap.Net.Weight, snap.Net.WeightRatio, snap.CPU.Weight, snap.CPU.WeightRatio,
	)
	return err
}

func (r *SQLiteRecorder) RecordTick(evt *TickEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	n, c := evt.Snapshot.Net, evt.Snapshot.CPU
	_, err := r.db.Exec(`INSERT INTO tick_events
		(session, timestamp, caller, drained,
		 net_weight, net_weight_ratio, net_utilization, net_adjusted,
		 cpu_weight, cpu_weight_ratio, cpu_utilization, cpu_adjusted)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?)`,
		r.session, int64(evt.Time), evt.Caller, evt.Drained,
		n.Weight, n.WeightRatio, n.Utilization, n.AdjustedUtilization,
		c.Weight, c.WeightRatio, c.Utilization, c.AdjustedUtilization,
	)
	return err
}

func (r *SQLiteRecorder) RecordRent(evt *RentEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	o := evt.Receipt.Order
	n, c := evt.Snapshot.Net, evt.Snapshot.CPU
	_, err := r.db.Exec(`INSERT INTO rent_events
		(session, timestamp, order_id, payer, receiver, net_amount, cpu_amount,
		 fee, fee_units, expires,
		 net_utilization, net_adjusted, cpu_utilization, cpu_adjusted)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		r.session, int64(evt.Time), int64(o.ID), evt.Payer, o.Owner, o.NetWeight, o.CPUWeight,
		evt.Receipt.Fee.String(), evt.Receipt.Fee.Amount, int64(o.Expires),
		n.Utilization, n.AdjustedUtilization, c.Utilization, c.AdjustedUtilization,
	)
	return err
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
