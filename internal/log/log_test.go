package log

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func captureOutput(t *testing.T, debug bool) *bytes.Buffer {
	t.Helper()

	var buf bytes.Buffer
	prevOutput, prevDebug := output, debugMode
	SetOutput(&buf)
	SetDebugMode(debug)
	t.Cleanup(func() {
		SetOutput(prevOutput)
		SetDebugMode(prevDebug)
	})
	return &buf
}

func TestDebug_OnlyInDebugMode(t *testing.T) {
	buf := captureOutput(t, false)
	Debug("hidden %d", 1)
	assert.Empty(t, buf.String())

	SetDebugMode(true)
	Debug("shown %d", 2)
	assert.Contains(t, buf.String(), "[DEBUG] shown 2")
}

func TestWarnAndError(t *testing.T) {
	buf := captureOutput(t, false)

	Warn("git said %s", "hint")
	Error("boom")

	out := buf.String()
	assert.Contains(t, out, "Warning: git said hint")
	assert.Contains(t, out, "Error: boom")
}

func TestDebugResponse_Truncates(t *testing.T) {
	buf := captureOutput(t, true)

	body := bytes.Repeat([]byte("x"), 3000)
	DebugResponse(200, string(body))

	assert.Contains(t, buf.String(), "API Response: 200")
	assert.Contains(t, buf.String(), "...")
	assert.Less(t, buf.Len(), 2200)
}

func TestMaskSecret(t *testing.T) {
	tests := []struct {
		name   string
		secret string
		want   string
	}{
		{name: "empty", secret: "", want: "(not set)"},
		{name: "short", secret: "abc", want: "***"},
		{name: "long", secret: "sk-proj-1234567890abcd", want: "sk-proj...abcd"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MaskSecret(tt.secret))
		})
	}
}
