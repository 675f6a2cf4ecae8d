package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_TextOutput(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "debug", false)

	log.Debug(context.Background(), "dbg", "a", 1)
	log.With("request_id", "abc").Warn(context.Background(), "slow query", "ms", 250)

	out := buf.String()
	assert.Contains(t, out, "level=DEBUG")
	assert.Contains(t, out, "msg=dbg")
	assert.Contains(t, out, "request_id=abc")
	assert.Contains(t, out, "ms=250")
}

func TestNew_JSONOutputRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "warn", true)

	log.Info(context.Background(), "ignored")
	log.Error(context.Background(), "failed", "err", "boom")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 1)
	assert.Contains(t, lines[0], `"msg":"failed"`)
	assert.Contains(t, lines[0], `"err":"boom"`)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("nonsense"))
}
