package profile

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	applog "github.com/janisto/contact-card/internal/platform/logging"
)

// FileStore keeps the record as <dir>/<key>.json. Writes go to a temp
// file in the same directory and are renamed into place, so a failed
// write leaves the previous record intact.
type FileStore struct {
	dir  string
	key  string
	path string
	mu   sync.Mutex
}

// NewFileStore creates the data directory if needed.
func NewFileStore(dir, key string) (*FileStore, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return nil, fmt.Errorf("invalid store key %q", key)
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &FileStore{
		dir:  dir,
		key:  key,
		path: filepath.Join(dir, key+".json"),
	}, nil
}

// Path returns the file holding the record.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the record file.
func (s *FileStore) Load(ctx context.Context) (Profile, bool, error) {
	if err := ctx.Err(); err != nil {
		return Profile{}, false, storeError("load", err)
	}

	s.mu.Lock()
	data, err := os.ReadFile(s.path)
	s.mu.Unlock()
	if errors.Is(err, fs.ErrNotExist) {
		applog.LogStoreEvent(ctx, "load", "file", s.key, "absent", nil)
		return Profile{}, false, nil
	}
	if err != nil {
		return Profile{}, false, s.fail(ctx, "load", err)
	}

	p, err := decodeRecord(data)
	if err != nil {
		return Profile{}, false, s.fail(ctx, "load", err)
	}
	applog.LogStoreEvent(ctx, "load", "file", s.key, "success", nil)
	return p, true, nil
}

// Save atomically replaces the record file.
func (s *FileStore) Save(ctx context.Context, p Profile) error {
	if err := ctx.Err(); err != nil {
		return storeError("save", err)
	}
	data, err := encodeRecord(p)
	if err != nil {
		return s.fail(ctx, "save", err)
	}

	s.mu.Lock()
	err = s.writeAtomic(data)
	s.mu.Unlock()
	if err != nil {
		return s.fail(ctx, "save", err)
	}
	applog.LogStoreEvent(ctx, "save", "file", s.key, "success", nil)
	return nil
}

func (s *FileStore) writeAtomic(data []byte) (err error) {
	tmp, err := os.CreateTemp(s.dir, "."+s.key+"-*.tmp")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err = tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	if err = os.Chmod(tmp.Name(), 0o600); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), s.path)
}

func (s *FileStore) fail(ctx context.Context, action string, err error) error {
	applog.LogStoreEvent(ctx, action, "file", s.key, "failure",
		map[string]any{"error": categorizeError(err)})
	return storeError(action, err)
}

var _ Store = (*FileStore)(nil)
