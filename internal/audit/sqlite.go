package audit

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteLog appends audit records as rows. The table is append-only from the
// relay's perspective; operators query it with external tooling.
type SQLiteLog struct {
	db *sql.DB
}

const auditSchema = `
CREATE TABLE IF NOT EXISTS audit_events (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	at         TIMESTAMP NOT NULL,
	event      TEXT NOT NULL,
	conn_id    TEXT,
	identity   TEXT,
	message    TEXT,
	actor      TEXT,
	action     TEXT,
	target     TEXT,
	minutes    INTEGER
);
`

// OpenSQLite opens the audit database, creating the schema if needed.
func OpenSQLite(dbPath string) (*SQLiteLog, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// SQLite works best with a single connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(auditSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply audit schema: %w", err)
	}

	return &SQLiteLog{db: db}, nil
}

func (l *SQLiteLog) Connect(connID string) {
	l.insert("INSERT INTO audit_events (at, event, conn_id) VALUES (?, 'connect', ?)", connID)
}

func (l *SQLiteLog) Disconnect(connID string) {
	l.insert("INSERT INTO audit_events (at, event, conn_id) VALUES (?, 'disconnect', ?)", connID)
}

func (l *SQLiteLog) Filtered(identity, message string) {
	l.insert("INSERT INTO audit_events (at, event, identity, message) VALUES (?, 'filtered', ?, ?)", identity, message)
}

func (l *SQLiteLog) AdminAction(actor, action, target string, minutes int) {
	l.insert("INSERT INTO audit_events (at, event, actor, action, target, minutes) VALUES (?, 'admin', ?, ?, ?, ?)",
		actor, action, target, minutes)
}

// insert prepends the timestamp argument and swallows write errors: auditing
// must never take a connection down with it.
func (l *SQLiteLog) insert(query string, args ...any) {
	all := append([]any{time.Now().UTC()}, args...)
	_, _ = l.db.Exec(query, all...)
}

// Close closes the database.
func (l *SQLiteLog) Close() error {
	return l.db.Close()
}
