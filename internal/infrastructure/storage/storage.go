package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/gdugdh24/cofounders-backend/internal/config"
)

// Storage stores public objects such as mirrored avatars.
type Storage interface {
	// Upload stores data under key and returns the key it was written to
	Upload(ctx context.Context, key, contentType string, data io.Reader) (string, error)

	Delete(ctx context.Context, key string) error
}

type StorageType string

const (
	StorageTypeNone  StorageType = "none"
	StorageTypeLocal StorageType = "local"
	StorageTypeS3    StorageType = "s3"
)

// NewStorage creates a storage backend from configuration. It returns nil
// for the "none" type.
func NewStorage(ctx context.Context, cfg config.StorageConfig) (Storage, error) {
	switch StorageType(cfg.Type) {
	case StorageTypeNone, "":
		return nil, nil
	case StorageTypeLocal:
		return NewLocalStorage(cfg.Path)
	case StorageTypeS3:
		return NewS3Storage(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown storage type: %s", cfg.Type)
	}
}

// cleanKey keeps keys relative and free of parent references.
func cleanKey(key string) (string, error) {
	key = path.Clean("/" + strings.ReplaceAll(key, "\\", "/"))
	key = strings.TrimPrefix(key, "/")
	if key == "" || key == "." {
		return "", fmt.Errorf("empty storage key")
	}
	return key, nil
}
