package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSetupDisabledDiscards(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")
	logger, w, err := Setup(false, path)
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	logger.Info("hello")
	w.Close()
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("disabled logger should not create %s", path)
	}
}

func TestSetupDebugWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")
	logger, w, err := Setup(true, path)
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	logger.Debug("resolved artifact", "device", "austin")
	w.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "device=austin") {
		t.Errorf("log = %q, want device=austin", data)
	}
}
