// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_LevelFiltering(t *testing.T) {
	tests := []struct {
		name      string
		level     string
		wantDebug bool
		wantInfo  bool
		wantWarn  bool
	}{
		{"debug shows everything", "debug", true, true, true},
		{"info hides debug", "info", false, true, true},
		{"warn hides info", "warn", false, false, true},
		{"unknown level defaults to info", "chatty", false, true, true},
		{"case insensitive", "DEBUG", true, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			l := New(&Config{Level: tt.level, Output: &buf})

			l.Debug("debug-line")
			l.Info("info-line")
			l.Warn("warn-line")

			out := buf.String()
			assert.Equal(t, tt.wantDebug, strings.Contains(out, "debug-line"))
			assert.Equal(t, tt.wantInfo, strings.Contains(out, "info-line"))
			assert.Equal(t, tt.wantWarn, strings.Contains(out, "warn-line"))
		})
	}
}

func TestNew_JSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	l := New(&Config{Level: InfoLevel, JSON: true, Output: &buf})

	l.Error("Failed to extract text", "path", "a.pdf")

	line := strings.TrimSpace(buf.String())
	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(line), &rec))
	assert.Equal(t, "Failed to extract text", rec["msg"])
	assert.Equal(t, "a.pdf", rec["path"])
	assert.Equal(t, "error", rec["level"])
}

func TestContextRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	l := New(&Config{Output: &buf})
	ctx := ContextWithLogger(context.Background(), l)

	FromContext(ctx).Info("hello")
	assert.Contains(t, buf.String(), "hello")
}

func TestFromContext_FallsBackToDefault(t *testing.T) {
	assert.NotNil(t, FromContext(context.Background()))
}

func TestDiscard(t *testing.T) {
	l := Discard()
	l.Error("nothing happens")
}
