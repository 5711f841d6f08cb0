package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// FileStore keeps every key in a single JSON document on disk. Writes go
// through a temp file and rename so a crash never leaves a torn state file.
type FileStore struct {
	mu   sync.Mutex
	path string
	doc  []byte
}

// NewFileStore opens or creates the state document at path.
// A missing file starts empty; an unreadable or corrupt document is
// discarded and restarted empty rather than blocking startup.
func NewFileStore(path string) (*FileStore, error) {
	fs := &FileStore{path: path, doc: []byte("{}")}

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		return fs, nil
	case err != nil:
		return nil, fmt.Errorf("open state file: %w", err)
	}

	if json.Valid(data) && gjson.ParseBytes(data).IsObject() {
		fs.doc = data
	}
	return fs, nil
}

// Path returns the on-disk location of the state document.
func (fs *FileStore) Path() string {
	return fs.path
}

// Load implements Store.
func (fs *FileStore) Load(key string) ([]byte, bool, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	res := gjson.GetBytes(fs.doc, key)
	if !res.Exists() {
		return nil, false, nil
	}
	return []byte(res.Raw), true, nil
}

// Save implements Store.
func (fs *FileStore) Save(key string, raw []byte) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	doc, err := sjson.SetRawBytes(fs.doc, key, raw)
	if err != nil {
		return fmt.Errorf("set %q: %w", key, err)
	}
	if err := fs.writeLocked(doc); err != nil {
		return err
	}
	fs.doc = doc
	return nil
}

// writeLocked persists the document atomically.
func (fs *FileStore) writeLocked(doc []byte) error {
	dir := filepath.Dir(fs.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".linemine-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp state file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(doc); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write state file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close state file: %w", err)
	}
	if err := os.Rename(tmpName, fs.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace state file: %w", err)
	}
	return nil
}
