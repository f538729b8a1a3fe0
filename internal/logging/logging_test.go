package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/juju/errors"
	"github.com/op/go-logging"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    logging.Level
		wantErr bool
	}{
		{"", logging.INFO, false},
		{"debug", logging.DEBUG, false},
		{"INFO", logging.INFO, false},
		{"warning", logging.WARNING, false},
		{"error", logging.ERROR, false},
		{"loud", logging.INFO, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if err != nil && !errors.IsNotValid(err) {
			t.Errorf("ParseLevel(%q) error = %v, want NotValid", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestConfigureFile(t *testing.T) {
	t.Setenv(EnvLevel, "")
	path := filepath.Join(t.TempDir(), "keyled.log")

	closer, err := Configure("info", path)
	if err != nil {
		t.Fatalf("Configure() error = %v", err)
	}

	log := logging.MustGetLogger("test")
	log.Debug("hidden")
	log.Info("visible")
	closer.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, "visible") {
		t.Errorf("log = %q, want it to contain %q", out, "visible")
	}
	if strings.Contains(out, "hidden") {
		t.Errorf("log = %q, debug line should be filtered", out)
	}
	if !strings.HasPrefix(out, "I") {
		t.Errorf("log = %q, want level prefix I", out)
	}
}

func TestConfigureEnvOverride(t *testing.T) {
	t.Setenv(EnvLevel, "bogus")
	if _, err := Configure("info", ""); err == nil {
		t.Error("Configure() with invalid env level returned nil error")
	}
}
