package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/lgbarn/movetx/internal/config"
	"github.com/lgbarn/movetx/internal/errors"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name      string
		cfg       config.LogConfig
		wantLevel logrus.Level
		wantErr   bool
	}{
		{"text info", config.LogConfig{Level: "info", Format: config.LogFormatText}, logrus.InfoLevel, false},
		{"json debug", config.LogConfig{Level: "debug", Format: config.LogFormatJSON}, logrus.DebugLevel, false},
		{"default format", config.LogConfig{Level: "warn"}, logrus.WarnLevel, false},
		{"bad level", config.LogConfig{Level: "chatty", Format: config.LogFormatText}, 0, true},
		{"bad format", config.LogConfig{Level: "info", Format: "xml"}, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, err := New(tt.cfg, &bytes.Buffer{})
			if tt.wantErr {
				if !errors.Is(err, errors.ErrInvalidConfig) {
					t.Errorf("New() error = %v, want ErrInvalidConfig", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			if log.GetLevel() != tt.wantLevel {
				t.Errorf("level = %v, want %v", log.GetLevel(), tt.wantLevel)
			}
		})
	}
}

func TestNew_JSONOutput(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(config.LogConfig{Level: "info", Format: config.LogFormatJSON}, &buf)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	log.WithField("event", "move-000001").Info("move committed")

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output %q is not JSON: %v", buf.String(), err)
	}
	if entry["msg"] != "move committed" {
		t.Errorf("msg = %v, want move committed", entry["msg"])
	}
	if entry["event"] != "move-000001" {
		t.Errorf("event = %v, want move-000001", entry["event"])
	}
}

func TestNew_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(config.LogConfig{Level: "warn", Format: config.LogFormatText}, &buf)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	log.Info("hidden")
	log.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info entry written at warn level: %q", out)
	}
	if !strings.Contains(out, "shown") {
		t.Errorf("warn entry missing: %q", out)
	}
}
