package logging

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

// capture redirects the default logger into a buffer for one test
func capture(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() {
		SetOutput(os.Stdout)
		SetLevel(INFO)
	})
	return &buf
}

func TestLevel_String(t *testing.T) {
	tests := []struct {
		level Level
		want  string
	}{
		{DEBUG, "DEBUG"},
		{INFO, "INFO"},
		{WARN, "WARN"},
		{ERROR, "ERROR"},
		{Level(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		if got := tt.level.String(); got != tt.want {
			t.Errorf("Level(%d).String() = %q, want %q", tt.level, got, tt.want)
		}
	}
}

func TestLevelFiltering(t *testing.T) {
	buf := capture(t)

	Debug("hidden")
	Info("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("debug message should be filtered at INFO level")
	}
	if !strings.Contains(out, "shown") {
		t.Error("info message should pass at INFO level")
	}

	SetLevel(DEBUG)
	Debug("now visible")
	if !strings.Contains(buf.String(), "now visible") {
		t.Error("debug message should pass at DEBUG level")
	}
}

func TestFormatting(t *testing.T) {
	buf := capture(t)

	Info("created %d items in %s", 3, "pantry")

	if !strings.Contains(buf.String(), "created 3 items in pantry") {
		t.Errorf("output = %q, want formatted message", buf.String())
	}
}

func TestWithField(t *testing.T) {
	buf := capture(t)

	log := New("sweep").WithField("item", "milk")
	log.Info("checking")

	out := buf.String()
	if !strings.Contains(out, "component=sweep") {
		t.Errorf("output = %q, want component field", out)
	}
	if !strings.Contains(out, "item=milk") {
		t.Errorf("output = %q, want item field", out)
	}
}

func TestWithFields_DoesNotMutateParent(t *testing.T) {
	buf := capture(t)

	parent := New("api")
	_ = parent.WithFields(map[string]interface{}{"request": "abc"})

	parent.Info("plain")

	if strings.Contains(buf.String(), "request=abc") {
		t.Error("child fields leaked into the parent logger")
	}
}

// Fields are printed in sorted key order so log lines are stable
func TestFieldOrdering(t *testing.T) {
	buf := capture(t)

	New("z").WithFields(map[string]interface{}{
		"beta":  2,
		"alpha": 1,
	}).Info("ordered")

	out := buf.String()
	alpha := strings.Index(out, "alpha=1")
	beta := strings.Index(out, "beta=2")
	component := strings.Index(out, "component=z")

	if alpha == -1 || beta == -1 || component == -1 {
		t.Fatalf("output = %q, missing fields", out)
	}
	if !(alpha < beta && beta < component) {
		t.Errorf("output = %q, fields not in sorted order", out)
	}
}

// Loggers created before SetOutput still write to the new destination
func TestSetOutput_AffectsExistingLoggers(t *testing.T) {
	log := New("early")

	buf := capture(t)
	log.Info("late message")

	if !strings.Contains(buf.String(), "late message") {
		t.Error("pre-existing logger should follow the global output")
	}
}
