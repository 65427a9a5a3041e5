package turnlog

// #region imports
import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// #endregion

// #region schema
const schema = `
CREATE TABLE IF NOT EXISTS turn_log (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id    TEXT NOT NULL,
	turn_id       TEXT NOT NULL,
	flags_json    TEXT,
	offer_before  INTEGER NOT NULL,
	offer_after   INTEGER NOT NULL,
	status        TEXT NOT NULL,
	reason        TEXT,
	degraded      INTEGER NOT NULL DEFAULT 0,
	created_at    TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_turn_log_session ON turn_log (session_id, id);
`

// #endregion schema

// #region entry
// Entry is one processed turn. Degraded marks turns where the generator's
// metadata block failed validation and the neutral fallback was used.
type Entry struct {
	SessionID   string
	TurnID      string
	FlagsJSON   string
	OfferBefore int
	OfferAfter  int
	Status      string
	Reason      string
	Degraded    bool
	CreatedAt   time.Time
}

// #endregion entry

// #region store
// Store writes per-turn diagnostics to SQLite. Negotiation state itself is
// never persisted here; the log exists so rule tuning can be audited after
// the fact.
type Store struct {
	db *sql.DB
}

// NewStore opens the diagnostics database and runs migrations.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("pragma: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// #endregion store

// #region log-turn
// LogTurn appends one entry to the turn log.
func (s *Store) LogTurn(e Entry) error {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	degraded := 0
	if e.Degraded {
		degraded = 1
	}
	_, err := s.db.Exec(
		`INSERT INTO turn_log (session_id, turn_id, flags_json, offer_before, offer_after, status, reason, degraded, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.SessionID, e.TurnID, nullIfEmpty(e.FlagsJSON), e.OfferBefore, e.OfferAfter,
		e.Status, nullIfEmpty(e.Reason), degraded, e.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("log turn: %w", err)
	}
	return nil
}

// #endregion log-turn

// #region by-session
// BySession returns the most recent entries for a session, newest first.
func (s *Store) BySession(sessionID string, limit int) ([]Entry, error) {
	rows, err := s.db.Query(
		`SELECT session_id, turn_id, flags_json, offer_before, offer_after, status, reason, degraded, created_at
		 FROM turn_log WHERE session_id = ? ORDER BY id DESC LIMIT ?`,
		sessionID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query turns: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var flagsJSON, reason sql.NullString
		var degraded int
		var createdStr string
		if err := rows.Scan(&e.SessionID, &e.TurnID, &flagsJSON, &e.OfferBefore, &e.OfferAfter,
			&e.Status, &reason, &degraded, &createdStr); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		e.FlagsJSON = flagsJSON.String
		e.Reason = reason.String
		e.Degraded = degraded != 0
		e.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdStr)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// #endregion by-session

// #region helpers
func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// #endregion helpers
