package config

import (
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.StorageDriver != DriverMemory {
		t.Errorf("Expected memory driver by default, got %q", cfg.StorageDriver)
	}
	if cfg.Addr() != "localhost:8080" {
		t.Errorf("Expected localhost:8080, got %q", cfg.Addr())
	}
	if cfg.DictionariesDir != "dictionaries" {
		t.Errorf("Expected dictionaries dir, got %q", cfg.DictionariesDir)
	}
	if cfg.UpdateRetries != 3 {
		t.Errorf("Expected 3 retries, got %d", cfg.UpdateRetries)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("STORAGE_DRIVER", "sqlite")
	t.Setenv("SQLITE_PATH", "/tmp/test.db")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Port != "9000" {
		t.Errorf("Expected port 9000, got %q", cfg.Port)
	}
	if cfg.StorageDriver != DriverSQLite {
		t.Errorf("Expected sqlite driver, got %q", cfg.StorageDriver)
	}
	if cfg.SQLitePath != "/tmp/test.db" {
		t.Errorf("Expected overridden sqlite path, got %q", cfg.SQLitePath)
	}
}

func TestValidate(t *testing.T) {
	t.Run("unknown driver", func(t *testing.T) {
		t.Setenv("STORAGE_DRIVER", "postgres")
		_, err := Load()
		if err == nil {
			t.Fatal("Expected error for unknown driver")
		}
		if !strings.Contains(err.Error(), "storage driver") {
			t.Errorf("Expected a storage driver error, got %v", err)
		}
	})

	t.Run("negative retries", func(t *testing.T) {
		t.Setenv("UPDATE_RETRIES", "-1")
		if _, err := Load(); err == nil {
			t.Fatal("Expected error for negative retries")
		}
	})
}
