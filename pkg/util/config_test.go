package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
)

func TestReadConfigFromDirectory(t *testing.T) {
	viper.Reset()
	dir := t.TempDir()
	err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("API_PORT: 7171\n"), 0o644)
	if err != nil {
		t.Fatalf("err: %v", err)
	}

	if err := ReadConfig(dir); err != nil {
		t.Fatalf("err: %v", err)
	}
	if got := viper.GetInt("API_PORT"); got != 7171 {
		t.Errorf("API_PORT = %d, want 7171", got)
	}
}

func TestReadConfigMissingFile(t *testing.T) {
	viper.Reset()
	if err := ReadConfig(t.TempDir()); err == nil {
		t.Error("expected error for directory without a config file")
	}
}
