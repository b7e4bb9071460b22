package cfgfile

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDiscoverFindsKreuzbergToml(t *testing.T) {
	dir := t.TempDir()
	nested := filepath.Join(dir, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	configPath := filepath.Join(dir, "kreuzberg.toml")
	if err := os.WriteFile(configPath, []byte("[ocr]\nbackend = \"tesseract\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	found, err := Discover(nested)
	if err != nil {
		t.Fatalf("Discover() error: %v", err)
	}
	if found != configPath {
		t.Fatalf("expected %s, got %s", configPath, found)
	}
}

func TestDiscoverNoneFound(t *testing.T) {
	dir := t.TempDir()
	found, err := Discover(dir)
	if err != nil {
		t.Fatalf("Discover() error: %v", err)
	}
	if found != "" {
		t.Fatalf("expected no config found, got %s", found)
	}
}

func TestLoadExtractionConfigRejectsV3Keys(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "kreuzberg.toml")
	content := "ocr_backend = \"tesseract\"\nchunk_content = true\n"
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadExtractionConfig(configPath)
	if err == nil {
		t.Fatal("expected validation error for legacy v3 keys")
	}
}

func TestLoadExtractionConfigDefaultsWhenEmpty(t *testing.T) {
	cfg, err := LoadExtractionConfig("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg == nil || cfg.OCR == nil {
		t.Fatal("expected default config with OCR section")
	}
}
