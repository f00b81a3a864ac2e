package history

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

// Event is one line of the audit log.
type Event struct {
	ID      string    `json:"id"`
	At      time.Time `json:"at"`
	Message string    `json:"message"`
	Paths   []string  `json:"paths"`
}

// AuditLog appends events as JSON lines. It needs no external tools.
type AuditLog struct {
	Path string
	now  func() time.Time
}

func NewAuditLog(path string) *AuditLog {
	return &AuditLog{Path: path, now: time.Now}
}

func (a *AuditLog) Record(_ context.Context, paths []string, message string) error {
	at := a.now().UTC()
	ev := Event{
		ID:      "evt_" + newULID(at),
		At:      at,
		Message: message,
		Paths:   append([]string{}, paths...),
	}
	b, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(a.Path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(a.Path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.Write(append(b, '\n')); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// ReadEvents loads every event from an audit log file.
func ReadEvents(path string) ([]Event, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var events []Event
	for i, line := range strings.Split(string(b), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		var ev Event
		if err := json.Unmarshal([]byte(line), &ev); err != nil {
			return events, fmt.Errorf("%s:%d: %w", path, i+1, err)
		}
		events = append(events, ev)
	}
	return events, nil
}

type randReader struct{}

func (randReader) Read(p []byte) (int, error) { return rand.Read(p) }

func newULID(t time.Time) string {
	entropy := ulid.Monotonic(randReader{}, 0)
	id, err := ulid.New(ulid.Timestamp(t), entropy)
	if err != nil {
		// fallback
		return fmt.Sprintf("%d", t.UnixNano())
	}
	return strings.ToUpper(id.String())
}
