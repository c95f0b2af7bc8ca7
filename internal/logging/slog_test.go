package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBufferLogger() (*SlogLogger, *bytes.Buffer) {
	var buf bytes.Buffer
	l := slog.New(slog.NewJSONHandler(&buf, nil))
	return NewSlogLogger(l), &buf
}

func lastRecord(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	return rec
}

func TestSlogLogger_Info(t *testing.T) {
	log, buf := newBufferLogger()

	log.Info(context.Background(), "hello", "k", "v")

	rec := lastRecord(t, buf)
	assert.Equal(t, "hello", rec["msg"])
	assert.Equal(t, "INFO", rec["level"])
	assert.Equal(t, "v", rec["k"])
}

func TestSlogLogger_WithAddsFields(t *testing.T) {
	log, buf := newBufferLogger()

	child := log.With("module", "rest")
	child.Error(context.Background(), "failed")

	rec := lastRecord(t, buf)
	assert.Equal(t, "rest", rec["module"])
	assert.Equal(t, "ERROR", rec["level"])
}
