package applog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSetupWritesToRotatingFile(t *testing.T) {
	dir := t.TempDir()
	Setup(dir)

	Printf("loaded image %s (%dx%d)", "sunset.png", 3840, 2160)

	data, err := os.ReadFile(filepath.Join(dir, "logs", "wallsplit.log"))
	if err != nil {
		t.Fatalf("log file not written: %v", err)
	}
	if !strings.Contains(string(data), "loaded image sunset.png (3840x2160)") {
		t.Errorf("log file missing message, got: %s", data)
	}
}
