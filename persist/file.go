package persist

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rustyeddy/folio/ledger"
)

// FileBackend keeps the blob in a JSON file.
type FileBackend struct {
	Path string
}

func NewFile(path string) *FileBackend {
	return &FileBackend{Path: path}
}

// Load reads the blob. A missing file is not an error; found is false.
// A migrated blob is written back immediately.
func (f *FileBackend) Load(ctx context.Context) (st ledger.State, found bool, err error) {
	data, err := os.ReadFile(f.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return ledger.State{}, false, nil
	}
	if err != nil {
		return ledger.State{}, false, fmt.Errorf("read %s: %w", f.Path, err)
	}

	st, migrated, err := Decode(data)
	if err != nil {
		return ledger.State{}, false, fmt.Errorf("%s: %w", f.Path, err)
	}
	if migrated {
		if err := f.Save(ctx, st); err != nil {
			return ledger.State{}, false, err
		}
	}
	return st, true, nil
}

// Save writes the blob atomically: temp file, sync, rename.
func (f *FileBackend) Save(ctx context.Context, st ledger.State) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := Encode(st)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(f.Path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}

	tmp := f.Path + ".tmp"
	out, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	if _, err := out.Write(data); err != nil {
		out.Close()
		os.Remove(tmp)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := out.Sync(); err != nil {
		out.Close()
		os.Remove(tmp)
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := out.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp, f.Path); err != nil {
		return fmt.Errorf("replace %s: %w", f.Path, err)
	}
	return nil
}

func (f *FileBackend) Close() error { return nil }
