package logging

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	charmlog "github.com/charmbracelet/log"
	"github.com/stretchr/testify/require"
)

func newTestLogger(t *testing.T) (*SlogLogger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	h := slog.NewTextHandler(&buf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})
	return NewSlogLogger(slog.New(h)), &buf
}

func TestSlogLogger_Levels_WriteExpectedOutput(t *testing.T) {
	log, buf := newTestLogger(t)
	ctx := context.Background()

	log.Debug(ctx, "dbg", "a", 1)
	log.Info(ctx, "inf", "b", 2)
	log.Warn(ctx, "wrn", "c", 3)
	log.Error(ctx, "err", "d", 4)

	out := buf.String()

	tests := []struct {
		level string
		msg   string
		key   string
		val   string
	}{
		{"DEBUG", "dbg", "a", "1"},
		{"INFO", "inf", "b", "2"},
		{"WARN", "wrn", "c", "3"},
		{"ERROR", "err", "d", "4"},
	}

	for _, tc := range tests {
		if !strings.Contains(out, "level="+tc.level) {
			t.Fatalf("expected line with level=%s in output:\n%s", tc.level, out)
		}
		if !strings.Contains(out, "msg="+tc.msg) {
			t.Fatalf("expected line with msg=%q in output:\n%s", tc.msg, out)
		}
		if !strings.Contains(out, tc.key+"="+tc.val) {
			t.Fatalf("expected attribute %s=%s in output:\n%s", tc.key, tc.val, out)
		}
	}
}

func TestSlogLogger_With_AddsAttributes(t *testing.T) {
	log, buf := newTestLogger(t)

	log.With("date", "2024-05-01", "mode", "local").Info(context.Background(), "day saved", "k", "v")

	out := buf.String()
	for _, s := range []string{"level=INFO", `msg="day saved"`, "date=2024-05-01", "mode=local", "k=v"} {
		if !strings.Contains(out, s) {
			t.Fatalf("expected %q in output, got:\n%s", s, out)
		}
	}
}

func TestCharmHandler_WritesThroughSlog(t *testing.T) {
	var buf bytes.Buffer
	l := NewSlogLogger(slog.New(newCharmHandler(&buf, charmlog.DebugLevel, false)))

	l.Warn(context.Background(), "push failed", "date", "2024-05-01")

	out := buf.String()
	require.Contains(t, out, "push failed")
	require.Contains(t, out, "date=2024-05-01")
}

func TestNewFileLogger_CreatesDirectoryAndFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "client.log")

	l, closer, err := NewFileLogger(FileConfig{Path: path})
	require.NoError(t, err)
	defer closer.Close()

	l.Info(context.Background(), "hello", "k", "v")

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(b), "hello")
}

func TestNop_DoesNotPanic(t *testing.T) {
	var l Logger = Nop{}
	ctx := context.TODO()
	l.Debug(ctx, "x")
	l.Info(ctx, "x")
	l.Warn(ctx, "x")
	l.Error(ctx, "x")
	l.With("a", 1).Info(ctx, "y")
}
