// Package audit is the append-only audit collaborator: the core writes one
// record per connect, disconnect, filtered message and admin action, and
// never reads anything back.
package audit

import "fmt"

// Backends selectable via configuration.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Log receives audit records. Implementations must be safe for concurrent
// use; the core calls them from connection goroutines.
type Log interface {
	Connect(connID string)
	Disconnect(connID string)
	Filtered(identity, message string)
	AdminAction(actor, action, target string, minutes int)
	Close() error
}

// Open builds the configured audit sink. path is the log file for the file
// backend and the database file for the sqlite backend.
func Open(backend, path string) (Log, error) {
	switch backend {
	case BackendFile:
		return OpenFile(path)
	case BackendSQLite:
		return OpenSQLite(path)
	default:
		return nil, fmt.Errorf("unknown audit backend %q", backend)
	}
}

// Nop discards all records. Used when auditing is disabled and in tests.
type Nop struct{}

func (Nop) Connect(string)                          {}
func (Nop) Disconnect(string)                       {}
func (Nop) Filtered(string, string)                 {}
func (Nop) AdminAction(string, string, string, int) {}
func (Nop) Close() error                            { return nil }
