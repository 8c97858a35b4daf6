package store

import (
	"strings"
	"testing"

	"digilib-go/internal/config"
)

func TestNewStoreFromConfig(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.StoreConfig
		wantErr string
	}{
		{
			name: "memory store",
			cfg:  config.StoreConfig{Type: "memory"},
		},
		{
			name: "filesystem store",
			cfg:  config.StoreConfig{Type: "filesystem", DataDir: t.TempDir()},
		},
		{
			name: "sqlite store",
			cfg:  config.StoreConfig{Type: "sqlite", DataDir: t.TempDir()},
		},
		{
			name:    "filesystem requires data_dir",
			cfg:     config.StoreConfig{Type: "filesystem"},
			wantErr: "data_dir",
		},
		{
			name:    "sqlite requires data_dir",
			cfg:     config.StoreConfig{Type: "sqlite"},
			wantErr: "data_dir",
		},
		{
			name:    "s3 not implemented",
			cfg:     config.StoreConfig{Type: "s3", S3Bucket: "b"},
			wantErr: "not yet implemented",
		},
		{
			name:    "unknown type",
			cfg:     config.StoreConfig{Type: "redis"},
			wantErr: "unknown store type",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewStoreFromConfig(tt.cfg)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("NewStoreFromConfig() error = %v", err)
				}
				defer s.Close()
				if err := s.ValidateSetup(); err != nil {
					t.Errorf("ValidateSetup() error = %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("NewStoreFromConfig() expected error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}
