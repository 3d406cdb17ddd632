package audit

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
)

// FileLog appends one JSON line per record to a log file.
type FileLog struct {
	f   *os.File
	log zerolog.Logger
}

// OpenFile opens (or creates) the append-only audit file.
func OpenFile(path string) (*FileLog, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open audit log: %w", err)
	}
	return &FileLog{
		f:   f,
		log: zerolog.New(f).With().Timestamp().Logger(),
	}, nil
}

func (l *FileLog) Connect(connID string) {
	l.log.Log().Str("event", "connect").Str("conn_id", connID).Send()
}

func (l *FileLog) Disconnect(connID string) {
	l.log.Log().Str("event", "disconnect").Str("conn_id", connID).Send()
}

func (l *FileLog) Filtered(identity, message string) {
	l.log.Log().Str("event", "filtered").Str("identity", identity).Str("message", message).Send()
}

func (l *FileLog) AdminAction(actor, action, target string, minutes int) {
	e := l.log.Log().Str("event", "admin").Str("actor", actor).Str("action", action).Str("target", target)
	if minutes > 0 {
		e = e.Int("minutes", minutes)
	}
	e.Send()
}

// Close flushes and closes the underlying file.
func (l *FileLog) Close() error {
	return l.f.Close()
}
