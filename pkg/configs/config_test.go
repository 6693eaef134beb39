package configs_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/yeisme/goatdesk/pkg/configs"
)

func TestDefault(t *testing.T) {
	cfg := configs.Default()

	if cfg.Media.Prefix() != "/uploads/" {
		t.Fatalf("prefix = %q", cfg.Media.Prefix())
	}

	if cfg.Media.Image.MaxSizeBytes() != 5<<20 {
		t.Fatalf("image max = %d", cfg.Media.Image.MaxSizeBytes())
	}

	if cfg.Media.Video.MaxSizeBytes() != 10<<20 {
		t.Fatalf("video max = %d", cfg.Media.Video.MaxSizeBytes())
	}

	if !cfg.Media.Image.Allowed("image/PNG; charset=binary") {
		t.Fatalf("png should be allowed")
	}

	if cfg.Media.Image.Allowed("image/gif") {
		t.Fatalf("gif should not be allowed")
	}

	if cfg.Auth.TokenTTL != 12*time.Hour {
		t.Fatalf("token ttl = %v", cfg.Auth.TokenTTL)
	}
}

func TestInitConfig_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "config.yaml")

	content := "server:\n  port: 9090\n  reload_config: false\nmedia:\n  url_prefix: /media\nsweep:\n  min_age: 10m\n"
	if err := os.WriteFile(file, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv("GOATDESK_DB_TYPE", "mysql")

	if err := configs.InitConfig(file); err != nil {
		t.Fatalf("init config: %v", err)
	}
	t.Cleanup(func() { configs.SetConfig(configs.Default()) })

	cfg := configs.GetConfig()
	if cfg.Server.Port != 9090 {
		t.Fatalf("port = %d", cfg.Server.Port)
	}

	if cfg.Media.Prefix() != "/media/" {
		t.Fatalf("prefix = %q", cfg.Media.Prefix())
	}

	if cfg.Sweep.MinAge != 10*time.Minute {
		t.Fatalf("min age = %v", cfg.Sweep.MinAge)
	}

	if string(cfg.DB.Type) != "mysql" {
		t.Fatalf("db type = %q", cfg.DB.Type)
	}
}

func TestRedacted(t *testing.T) {
	cfg := configs.Default()
	cfg.Auth.JWTSecret = "s3cret"
	cfg.DB.Password = "pw"

	r := cfg.Redacted()
	if r.Auth.JWTSecret == "s3cret" || r.DB.Password == "pw" {
		t.Fatalf("secrets not masked")
	}

	if cfg.Auth.JWTSecret != "s3cret" {
		t.Fatalf("original modified")
	}

	if r.Auth.AdminPasswordHash != "" {
		t.Fatalf("empty values should stay empty")
	}
}
