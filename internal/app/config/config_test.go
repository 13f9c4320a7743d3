package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"

	"gallery/internal/domain/thumb"
)

func TestLoadRequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Chdir(t.TempDir())

	if _, err := load(viper.New()); err == nil {
		t.Fatalf("expected error without DATABASE_URL")
	}
}

func TestLoadDefaultsAndEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("DATABASE_URL", "postgres://localhost/gallery")
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("THUMB_WIDTH", "250")

	cfg, err := load(viper.New())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.HTTPAddr != ":9090" || cfg.Thumb.Width != 250 || cfg.Thumb.Height != 192 {
		t.Fatalf("cfg = %+v", cfg)
	}

	defaults := cfg.Defaults()
	if err := thumb.Validate(defaults); err != nil {
		t.Fatalf("default thumbnail settings are invalid: %v", err)
	}
	if defaults.GetInt(thumb.KeyWidth) != 250 || defaults.GetString("title") != "Gallery" {
		t.Fatalf("defaults = %v", defaults)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("DATABASE_URL", "postgres://localhost/gallery")

	yaml := "thumb:\n  fit: fill\n  upscale: true\nsite:\n  title: Pictures\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := load(viper.New())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Thumb.Fit != "fill" || !cfg.Thumb.Upscale || cfg.Site["title"] != "Pictures" {
		t.Fatalf("cfg = %+v", cfg)
	}
	if cfg.Site["login_memory"] != "365" {
		t.Fatalf("site defaults lost when the file sets part of the section: %v", cfg.Site)
	}
}

func TestLoadRejectsEmptyWorkerPool(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("DATABASE_URL", "postgres://localhost/gallery")

	for _, size := range []string{"0", "-2"} {
		t.Setenv("WORKERS_SIZE", size)
		if _, err := load(viper.New()); err == nil {
			t.Fatalf("workers.size=%s accepted", size)
		}
	}
}
