package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Logging.Level != "info" {
		t.Errorf("level = %q, want info", cfg.Logging.Level)
	}
	if cfg.Checkers.Orientation.SameWindingRatio != 0.5 {
		t.Errorf("same_winding_ratio = %g, want 0.5", cfg.Checkers.Orientation.SameWindingRatio)
	}
	if cfg.Checkers.Geometry.MaxFaceVerts != 4 {
		t.Errorf("max_face_verts = %d, want 4", cfg.Checkers.Geometry.MaxFaceVerts)
	}
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("level = %q, want the default", cfg.Logging.Level)
	}
}

func TestLoadMergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	src := `
logging:
  level: debug
checkers:
  geometry:
    small_face_area: 0.01
  disabled: [naming]
  rule_scripts: [rules/budget.zy]
`
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("level = %q, want debug", cfg.Logging.Level)
	}
	if cfg.Checkers.Geometry.SmallFaceArea != 0.01 {
		t.Errorf("small_face_area = %g, want 0.01", cfg.Checkers.Geometry.SmallFaceArea)
	}
	// Untouched keys keep their defaults.
	if cfg.Checkers.Geometry.MaxFaceVerts != 4 {
		t.Errorf("max_face_verts = %d, want the default 4", cfg.Checkers.Geometry.MaxFaceVerts)
	}
	if cfg.Checkers.Orientation.SameWindingRatio != 0.5 {
		t.Errorf("same_winding_ratio = %g, want the default 0.5", cfg.Checkers.Orientation.SameWindingRatio)
	}

	if cfg.Checkers.Enabled("naming") {
		t.Error("naming should be disabled")
	}
	if !cfg.Checkers.Enabled("orientation") {
		t.Error("orientation should stay enabled")
	}
	if len(cfg.Checkers.RuleScripts) != 1 {
		t.Errorf("rule_scripts = %v", cfg.Checkers.RuleScripts)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for a missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("logging: ["), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for malformed YAML")
	}
}
