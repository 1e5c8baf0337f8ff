// Package archive persists exported reports to a storage backend,
// either the local filesystem or an S3-compatible object store.
package archive

import (
	"context"
	"fmt"

	"github.com/Rigvedsarougi/Project-A/internal/config"
	"github.com/Rigvedsarougi/Project-A/internal/core"
)

// Store is a flat key/value report store.
type Store interface {
	// Put stores a report under the given key.
	Put(ctx context.Context, key string, data []byte) error

	// Get retrieves a previously stored report.
	Get(ctx context.Context, key string) ([]byte, error)

	// List returns all keys under the prefix.
	List(ctx context.Context, prefix string) ([]string, error)
}

// New builds the store named by the export configuration.
func New(cfg config.ExportConfig) (Store, error) {
	switch cfg.Type {
	case "localfs":
		return NewLocalFS(cfg.Path)
	case "s3":
		return NewS3(cfg.S3)
	default:
		return nil, core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("unknown export type %q", cfg.Type))
	}
}
