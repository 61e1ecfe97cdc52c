// Package eventlog appends webhook events to a flat text file.
package eventlog

import (
	"fmt"
	"os"
	"sync"

	"github.com/ovl11/club-payment/internal/core/domain"
)

// FileLog writes one line per event. The file is opened and closed on every
// append; mu keeps concurrent lines from interleaving.
type FileLog struct {
	path string
	mu   sync.Mutex
}

func NewFileLog(path string) *FileLog {
	return &FileLog{path: path}
}

// Path returns the file the log appends to.
func (l *FileLog) Path() string { return l.path }

// Append writes "<id> - <type> - <created>\n" in a single write.
func (l *FileLog) Append(ev domain.WebhookEvent) error {
	line := fmt.Sprintf("%s - %s - %d\n", ev.ID, ev.Type, ev.Created)

	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open event log: %w", err)
	}
	defer func() { _ = f.Close() }()

	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("write event log: %w", err)
	}
	return nil
}
