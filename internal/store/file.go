package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// FileKV is a [KV] backed by a single JSON file.
//
// The whole file is read once when the store is opened and rewritten on
// every Set. Writes go through a temp file and rename, so a crash
// mid-write leaves the previous contents intact. The file holds a flat
// JSON object mapping keys to raw values.
//
// FileKV is sized for widget state (a handful of small entries), not for
// use as a general database.
type FileKV struct {
	mu     sync.Mutex
	path   string
	values map[string]json.RawMessage
}

// OpenFileKV opens (or initialises) a file-backed [KV] at path.
//
// A missing file yields an empty store; the file is created on first Set.
// A file that exists but cannot be read or parsed is an error: silently
// rewriting it would destroy state that a fixed deployment could still
// recover.
func OpenFileKV(path string) (*FileKV, error) {
	kv := &FileKV{
		path:   path,
		values: make(map[string]json.RawMessage),
	}

	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return kv, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read state file %s: %w", path, err)
	}
	if len(raw) == 0 {
		return kv, nil
	}
	if err := json.Unmarshal(raw, &kv.values); err != nil {
		return nil, fmt.Errorf("failed to parse state file %s: %w", path, err)
	}
	return kv, nil
}

// Get returns the raw value for key and whether it exists.
func (f *FileKV) Get(key string) ([]byte, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	v, ok := f.values[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

// Set stores value under key and rewrites the backing file.
func (f *FileKV) Set(key string, value []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.values[key] = append(json.RawMessage(nil), value...)

	raw, err := json.MarshalIndent(f.values, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode state: %w", err)
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".tickface-state-*")
	if err != nil {
		return fmt.Errorf("failed to create temp state file: %w", err)
	}
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write state: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close temp state file: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace state file: %w", err)
	}
	return nil
}
