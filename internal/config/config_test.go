package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Tolerance != 0.01 || cfg.AngleTolerance != 1.0 {
		t.Errorf("defaults = %+v", cfg)
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg != Default() {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "envelope.toml")
	data := "tolerance = 0.001\nangle_tolerance = 0.5\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Tolerance != 0.001 || cfg.AngleTolerance != 0.5 {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv(EnvTolerance, "0.05")
	t.Setenv(EnvAngleTolerance, "2.5")
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Tolerance != 0.05 || cfg.AngleTolerance != 2.5 {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestLoad_RejectsBadValues(t *testing.T) {
	t.Setenv(EnvTolerance, "not-a-number")
	if _, err := Load(""); err == nil {
		t.Error("non-numeric override accepted")
	}

	t.Setenv(EnvTolerance, "-1")
	if _, err := Load(""); err == nil {
		t.Error("negative tolerance accepted")
	}
}
