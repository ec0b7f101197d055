package logger

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultPath is the conversation log file, relative to the working directory.
const DefaultPath = "logs/conversation.txt"

// Sender identifies who wrote a conversation entry.
type Sender string

const (
	User   Sender = "user"
	Bot    Sender = "bot"
	System Sender = "system"
)

// Entry is one line of the conversation.
type Entry struct {
	ID     uuid.UUID
	Sender Sender
	Text   string
	Time   time.Time
}

// Logger keeps the conversation in memory and appends every entry to a file on disk.
// It is append-only and safe for concurrent use.
type Logger struct {
	mu      sync.Mutex
	path    string
	session uuid.UUID
	entries []Entry
	now     func() time.Time
}

// New returns a Logger writing to path. An empty path keeps the log in memory only.
// The file's directory is created if needed; write failures are ignored so a read-only
// working directory never blocks the chat.
func New(path string) *Logger {
	if path != "" {
		_ = os.MkdirAll(filepath.Dir(path), 0755)
	}
	return &Logger{path: path, session: uuid.New(), now: time.Now}
}

// Session returns the id shared by all entries written by this Logger.
func (l *Logger) Session() uuid.UUID {
	return l.session
}

// Log appends an entry and returns it.
func (l *Logger) Log(sender Sender, text string) Entry {
	e := Entry{ID: uuid.New(), Sender: sender, Text: text, Time: l.now()}

	l.mu.Lock()
	l.entries = append(l.entries, e)
	path := l.path
	l.mu.Unlock()

	if path == "" {
		return e
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return e
	}
	_, _ = f.WriteString(Format(e) + " session=" + l.session.String() + "\n")
	_ = f.Close()
	return e
}

// Entries returns a copy of all entries in order.
func (l *Logger) Entries() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Lines returns every entry formatted for display.
func (l *Logger) Lines() []string {
	entries := l.Entries()
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = Format(e)
	}
	return out
}

// Len returns the number of entries.
func (l *Logger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// Format renders an entry as "[2006-01-02 15:04:05] sender: text".
func Format(e Entry) string {
	return "[" + e.Time.Format("2006-01-02 15:04:05") + "] " + string(e.Sender) + ": " + e.Text
}
