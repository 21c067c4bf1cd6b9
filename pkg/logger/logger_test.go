package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name      string
		config    *Config
		wantError bool
	}{
		{name: "Valid defaults", config: DefaultConfig()},
		{name: "Debug json", config: &Config{Level: DebugLevel, Format: JSONFormat}},
		{name: "Invalid level", config: &Config{Level: "loud", Format: TextFormat}, wantError: true},
		{name: "Invalid format", config: &Config{Level: InfoLevel, Format: "xml"}, wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantError {
				t.Errorf("Validate() error = %v, wantError %v", err, tt.wantError)
			}
		})
	}
}

func TestJSONOutputCarriesFields(t *testing.T) {
	var buf bytes.Buffer
	l, err := NewLogger(&Config{Level: InfoLevel, Format: JSONFormat, Output: &buf})
	if err != nil {
		t.Fatalf("NewLogger() error: %v", err)
	}

	l.WithComponent("parse").WithField("records", 7).Info("done")

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Log line is not JSON: %v (%s)", err, buf.String())
	}
	if entry["component"] != "parse" {
		t.Errorf("component = %v", entry["component"])
	}
	if entry["records"] != float64(7) {
		t.Errorf("records = %v", entry["records"])
	}
	if entry["msg"] != "done" {
		t.Errorf("msg = %v", entry["msg"])
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l, err := NewLogger(&Config{Level: WarnLevel, Format: TextFormat, Output: &buf})
	if err != nil {
		t.Fatalf("NewLogger() error: %v", err)
	}

	l.Info("quiet")
	l.Warn("audible")

	out := buf.String()
	if strings.Contains(out, "quiet") {
		t.Error("Info line leaked through warn-level logger")
	}
	if !strings.Contains(out, "audible") {
		t.Error("Warn line missing from output")
	}
}

func TestGlobalLoggerSwap(t *testing.T) {
	original := GetGlobalLogger()
	t.Cleanup(func() { SetGlobalLogger(original) })

	var buf bytes.Buffer
	l, err := NewLogger(&Config{Level: DebugLevel, Format: TextFormat, Output: &buf})
	if err != nil {
		t.Fatal(err)
	}
	SetGlobalLogger(l)

	Debugf("swap check %d", 1)
	if !strings.Contains(buf.String(), "swap check 1") {
		t.Error("Global logger did not route to the replacement")
	}
}
