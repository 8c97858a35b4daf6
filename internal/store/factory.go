package store

import (
	"fmt"
	"path/filepath"

	"digilib-go/internal/config"
	"digilib-go/internal/library"
)

// NewStoreFromConfig creates a Store implementation based on the store config type.
func NewStoreFromConfig(cfg config.StoreConfig) (library.Store, error) {
	switch cfg.Type {
	case "memory":
		return NewMemoryStore(), nil
	case "filesystem":
		if cfg.DataDir == "" {
			return nil, fmt.Errorf("filesystem store requires data_dir to be set")
		}
		return NewFileSystemStore(cfg.DataDir)
	case "sqlite":
		if cfg.DataDir == "" {
			return nil, fmt.Errorf("sqlite store requires data_dir to be set")
		}
		return NewSQLiteStore(filepath.Join(cfg.DataDir, "library.db"))
	case "s3":
		return nil, fmt.Errorf("s3 store not yet implemented")
	default:
		return nil, fmt.Errorf("unknown store type: %s", cfg.Type)
	}
}
