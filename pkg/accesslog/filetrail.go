package accesslog

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/ironlatch/accessnode/pkg/util"
)

// FileTrail optionally mirrors delivered and pending entries to a local
// JSON-lines file. It never changes the queue's at-least-once delivery
// semantics: entries are appended, never deduplicated against prior runs,
// and FileTrail failures are logged and otherwise ignored — a missing
// disk mirror does not stop the controller delivery path.
type FileTrail struct {
	mu      sync.Mutex
	path    string
	file    *os.File
	encoder *json.Encoder
}

// NewFileTrail opens (creating if needed) a JSON-lines file at path.
func NewFileTrail(path string) (*FileTrail, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating access log directory: %w", err)
	}
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("opening access log file: %w", err)
	}
	return &FileTrail{path: path, file: file, encoder: json.NewEncoder(file)}, nil
}

// Append writes entry as one JSON line. Errors are logged, not returned,
// by the caller's usual pattern — but the method itself still reports them
// so tests can assert on failures directly.
func (t *FileTrail) Append(entry Entry) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.encoder.Encode(entry); err != nil {
		util.Warnf("accesslog: failed to append entry to %s: %v", t.path, err)
		return err
	}
	return nil
}

// Tail reads up to limit most recent entries from the file, oldest first
// within the returned slice. limit <= 0 means no limit.
func (t *FileTrail) Tail(limit int) ([]Entry, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	file, err := os.Open(t.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer file.Close()

	var entries []Entry
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		var e Entry
		if err := json.Unmarshal(scanner.Bytes(), &e); err != nil {
			continue
		}
		entries = append(entries, e)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if limit > 0 && len(entries) > limit {
		entries = entries[len(entries)-limit:]
	}
	return entries, nil
}

// Close closes the underlying file.
func (t *FileTrail) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.file.Close()
}
