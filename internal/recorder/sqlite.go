package recorder

import (
	"database/sql"
	"fmt"
	"sync"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists the audit trail to a SQLite database.
type SQLiteRecorder struct {
	db  *sql.DB
	mu  sync.Mutex
	log *zap.Logger
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string, log *zap.Logger) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL lets reporting tools read while the bot writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r, err := newWithDB(db, log)
	if err != nil {
		db.Close()
		return nil, err
	}
	log.Info("sqlite recorder opened", zap.String("path", dbPath))
	return r, nil
}

func newWithDB(db *sql.DB, log *zap.Logger) (*SQLiteRecorder, error) {
	r := &SQLiteRecorder{db: db, log: log}
	if err := r.migrate(); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS turns (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp  INTEGER NOT NULL,
			session_id TEXT NOT NULL,
			channel    TEXT,
			input      TEXT,
			intents    TEXT,
			rule       TEXT,
			asset      TEXT,
			disclaimer INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_turns_ts ON turns(timestamp)`,
		`CREATE INDEX IF NOT EXISTS idx_turns_session ON turns(session_id)`,

		`CREATE TABLE IF NOT EXISTS sessions (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL UNIQUE,
			channel    TEXT,
			started_at INTEGER NOT NULL,
			ended_at   INTEGER NOT NULL,
			turns      INTEGER,
			end_reason TEXT
		)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:30], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordTurn(evt *TurnEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO turns
		(timestamp, session_id, channel, input, intents, rule, asset, disclaimer)
		VALUES (?,?,?,?,?,?,?,?)`,
		evt.At.Unix(), evt.SessionID, evt.Channel, evt.Input,
		evt.Intents, evt.Rule, evt.Asset, evt.Disclaimer,
	)
	if err != nil {
		return fmt.Errorf("insert turn: %w", err)
	}
	return nil
}

func (r *SQLiteRecorder) RecordSession(evt *SessionEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO sessions
		(session_id, channel, started_at, ended_at, turns, end_reason)
		VALUES (?,?,?,?,?,?)`,
		evt.SessionID, evt.Channel, evt.StartedAt.Unix(), evt.EndedAt.Unix(),
		evt.Turns, evt.EndReason,
	)
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

// RuleCount is how often a response rule fired.
type RuleCount struct {
	Rule  string
	Count int
}

// RuleCounts aggregates recorded turns by rule, most frequent first.
func (r *SQLiteRecorder) RuleCounts() ([]RuleCount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows, err := r.db.Query(`SELECT rule, COUNT(*) FROM turns GROUP BY rule ORDER BY COUNT(*) DESC, rule`)
	if err != nil {
		return nil, fmt.Errorf("query rule counts: %w", err)
	}
	defer rows.Close()

	var out []RuleCount
	for rows.Next() {
		var rc RuleCount
		if err := rows.Scan(&rc.Rule, &rc.Count); err != nil {
			return nil, fmt.Errorf("scan rule count: %w", err)
		}
		out = append(out, rc)
	}
	return out, rows.Err()
}

func (r *SQLiteRecorder) Close() error {
	r.log.Info("closing sqlite recorder")
	return r.db.Close()
}
