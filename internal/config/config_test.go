package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Worker.Timeout != 15*time.Second {
		t.Errorf("worker.timeout = %v, want 15s", cfg.Worker.Timeout)
	}
	if cfg.Worker.JobTimeout != 15*time.Minute {
		t.Errorf("worker.job_timeout = %v, want 15m", cfg.Worker.JobTimeout)
	}
	if cfg.Engine.MaxTempoPct != 8 || cfg.Engine.CrossfadeBeats != 2 || cfg.Engine.MaxCrossfade != 2 {
		t.Errorf("engine = %+v", cfg.Engine)
	}
	if cfg.Preview.CacheTTL != 10*time.Minute {
		t.Errorf("preview.cache_ttl = %v", cfg.Preview.CacheTTL)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("WORKER_JOB_TIMEOUT", "90s")
	t.Setenv("ENGINE_MAX_TEMPO_PCT", "5")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Worker.JobTimeout != 90*time.Second {
		t.Errorf("job timeout = %v, want 90s", cfg.Worker.JobTimeout)
	}
	if cfg.Engine.MaxTempoPct != 5 {
		t.Errorf("max tempo = %v, want 5", cfg.Engine.MaxTempoPct)
	}
}

func TestReadSecret(t *testing.T) {
	path := filepath.Join(t.TempDir(), "secret")
	if err := os.WriteFile(path, []byte("s3cr3t\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("WEBHOOK_SECRET", "")
	t.Setenv("WEBHOOK_SECRET_FILE", path)
	readSecret("WEBHOOK_SECRET")
	if got := os.Getenv("WEBHOOK_SECRET"); got != "s3cr3t" {
		t.Errorf("WEBHOOK_SECRET = %q, want s3cr3t", got)
	}

	t.Setenv("WEBHOOK_SECRET", "direct")
	readSecret("WEBHOOK_SECRET")
	if got := os.Getenv("WEBHOOK_SECRET"); got != "direct" {
		t.Errorf("direct value overwritten: %q", got)
	}
}
