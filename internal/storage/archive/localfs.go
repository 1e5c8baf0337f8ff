package archive

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/Rigvedsarougi/Project-A/internal/core"
)

// LocalFS stores reports as files under a base directory.
type LocalFS struct {
	base string
}

// NewLocalFS creates the base directory if needed.
func NewLocalFS(base string) (*LocalFS, error) {
	if err := os.MkdirAll(base, 0o755); err != nil {
		return nil, core.WrapError(core.ErrExportFailed, err)
	}
	return &LocalFS{base: base}, nil
}

func (l *LocalFS) path(key string) string {
	return filepath.Join(l.base, filepath.FromSlash(key))
}

func (l *LocalFS) Put(_ context.Context, key string, data []byte) error {
	p := l.path(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return core.WrapError(core.ErrExportFailed, err)
	}
	if err := os.WriteFile(p, data, 0o644); err != nil {
		return core.WrapError(core.ErrExportFailed, err)
	}
	return nil
}

func (l *LocalFS) Get(_ context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(l.path(key))
	if err != nil {
		return nil, core.WrapError(core.ErrExportFailed, err)
	}
	return data, nil
}

func (l *LocalFS) List(_ context.Context, prefix string) ([]string, error) {
	root := l.path(prefix)

	var keys []string
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(l.base, p)
		if err != nil {
			return err
		}
		keys = append(keys, filepath.ToSlash(rel))
		return nil
	})
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, core.WrapError(core.ErrExportFailed, err)
	}
	return keys, nil
}
