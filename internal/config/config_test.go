package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.APIURL != defaultAPIURL {
		t.Fatalf("APIURL = %q, want %q", cfg.APIURL, defaultAPIURL)
	}
	if cfg.PageSize != defaultPageSize {
		t.Fatalf("PageSize = %d, want %d", cfg.PageSize, defaultPageSize)
	}
	if cfg.Timeout() != time.Duration(defaultTimeout)*time.Second {
		t.Fatalf("Timeout() = %v", cfg.Timeout())
	}
}

func TestLoad_ReadsFileValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	body := "api_url = \"catalog.example.com\"\nrequest_timeout_seconds = 3\npage_size = 25\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.APIURL != "catalog.example.com" {
		t.Fatalf("APIURL = %q", cfg.APIURL)
	}
	if cfg.TimeoutSeconds != 3 || cfg.PageSize != 25 {
		t.Fatalf("cfg = %+v", cfg)
	}
}

func TestLoad_EnvironmentOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("api_url = \"from-file\"\npage_size = 25\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("STARCAT_API_URL", "from-env")
	t.Setenv("STARCAT_PAGE_SIZE", "100")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.APIURL != "from-env" {
		t.Fatalf("APIURL = %q, want from-env", cfg.APIURL)
	}
	if cfg.PageSize != 100 {
		t.Fatalf("PageSize = %d, want 100", cfg.PageSize)
	}
}

func TestLoad_RejectsUnknownPageSize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("page_size = 7\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected an error for page_size 7")
	}
}

func TestLoad_MalformedFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("api_url = [broken"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected a parse error")
	}
}

func TestValidPageSize(t *testing.T) {
	for _, size := range PageSizes {
		if !ValidPageSize(size) {
			t.Fatalf("ValidPageSize(%d) = false", size)
		}
	}
	for _, size := range []int{0, -1, 7, 50} {
		if ValidPageSize(size) {
			t.Fatalf("ValidPageSize(%d) = true", size)
		}
	}
}
