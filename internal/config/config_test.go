package config

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/jpl-au/rbloom"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rbloom.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
filter:
  bit_space: 16777216
  hashes: [djb, crc32, fnv]
  bucket: users:seen
  batch_limit: 500
redis:
  url: redis://cache.internal:6380/2
  read_timeout: 3s
  db: 4
logging:
  level: debug
  format: json
`)
	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Filter.BitSpace != 1<<24 {
		t.Errorf("BitSpace = %d", c.Filter.BitSpace)
	}
	if !slices.Equal(c.Filter.Hashes, []string{"djb", "crc32", "fnv"}) {
		t.Errorf("Hashes = %v", c.Filter.Hashes)
	}
	if c.Filter.Bucket != "users:seen" || c.Filter.BatchLimit != 500 {
		t.Errorf("Filter = %+v", c.Filter)
	}
	if c.Redis.URL != "redis://cache.internal:6380/2" || c.Redis.ReadTimeout != 3*time.Second {
		t.Errorf("Redis = %+v", c.Redis)
	}
	if c.Redis.DB == nil || *c.Redis.DB != 4 {
		t.Errorf("Redis.DB = %v", c.Redis.DB)
	}
	if c.Logging.Level != "debug" || c.Logging.Format != "json" {
		t.Errorf("Logging = %+v", c.Logging)
	}
}

// TestLoadPartialKeepsDefaults verifies that keys absent from the file keep
// their default values.
func TestLoadPartialKeepsDefaults(t *testing.T) {
	c, err := Load(writeConfig(t, "filter:\n  bucket: b\n"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Filter.BitSpace != rbloom.DefaultBitSpace {
		t.Errorf("BitSpace = %d, want default", c.Filter.BitSpace)
	}
	if !slices.Equal(c.Filter.Hashes, rbloom.DefaultHashes) {
		t.Errorf("Hashes = %v, want default", c.Filter.Hashes)
	}
	if c.Logging.Level != "warn" {
		t.Errorf("Level = %q, want warn", c.Logging.Level)
	}
}

func TestLoadEmptyFile(t *testing.T) {
	c, err := Load(writeConfig(t, ""))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Filter.BitSpace != rbloom.DefaultBitSpace {
		t.Errorf("BitSpace = %d, want default", c.Filter.BitSpace)
	}
}

func TestLoadUnknownKey(t *testing.T) {
	path := writeConfig(t, "filter:\n  buckett: typo\n")
	_, err := Load(path)
	if err == nil {
		t.Fatal("Load accepted an unknown key")
	}
	if !strings.Contains(err.Error(), path) {
		t.Errorf("error %q does not name the file", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); !os.IsNotExist(err) {
		t.Errorf("Load = %v, want not-exist error", err)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv(EnvRedisURL, "redis://env:6379/0")
	t.Setenv(EnvRedisPassword, "from-env")
	t.Setenv(EnvBucket, "env:bucket")

	c, err := Load(writeConfig(t, "filter:\n  bucket: file\nredis:\n  url: redis://file:6379/0\n"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Redis.URL != "redis://env:6379/0" {
		t.Errorf("URL = %q", c.Redis.URL)
	}
	if c.Redis.Password != "from-env" {
		t.Errorf("Password = %q", c.Redis.Password)
	}
	if c.Filter.Bucket != "env:bucket" {
		t.Errorf("Bucket = %q", c.Filter.Bucket)
	}
}

func TestLoadNoFile(t *testing.T) {
	t.Setenv(EnvBucket, "only-env")
	c, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Filter.Bucket != "only-env" {
		t.Errorf("Bucket = %q", c.Filter.Bucket)
	}
}

// TestDefaultIsolated verifies that Default does not hand out the package's
// DefaultHashes slice.
func TestDefaultIsolated(t *testing.T) {
	c := Default()
	c.Filter.Hashes[0] = "changed"
	if rbloom.DefaultHashes[0] == "changed" {
		t.Fatal("Default aliases rbloom.DefaultHashes")
	}
}
