package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestLevelForEnv(t *testing.T) {
	cases := map[string]zerolog.Level{
		"dev":   zerolog.DebugLevel,
		"prod":  zerolog.InfoLevel,
		"local": zerolog.TraceLevel,
	}
	for env, want := range cases {
		got, err := LevelForEnv(env)
		if err != nil {
			t.Fatalf("level for %s: %v", env, err)
		}
		if got != want {
			t.Fatalf("env %s: expected %s, got %s", env, want, got)
		}
	}
	if _, err := LevelForEnv("staging"); err == nil {
		t.Fatal("expected error for unknown env")
	}
}

func TestNewWritesJSONWithTimestamp(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New("prod", &buf)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	logger.Debug().Msg("hidden")
	logger.Info().Str("op", "refresh").Msg("fetched tasks")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected only the info line, got %q", buf.String())
	}
	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("decode log line: %v", err)
	}
	if entry["message"] != "fetched tasks" || entry["op"] != "refresh" {
		t.Fatalf("unexpected entry: %v", entry)
	}
	if _, ok := entry["timestamp"]; !ok {
		t.Fatalf("expected timestamp field: %v", entry)
	}
}

func TestOpenFile(t *testing.T) {
	logger, closeFn, err := OpenFile("dev", "")
	if err != nil {
		t.Fatalf("open empty: %v", err)
	}
	logger.Info().Msg("discarded")
	if err := closeFn(); err != nil {
		t.Fatalf("close nop: %v", err)
	}

	path := filepath.Join(t.TempDir(), "tasksync.log")
	logger, closeFn, err = OpenFile("dev", path)
	if err != nil {
		t.Fatalf("open file: %v", err)
	}
	logger.Debug().Msg("written")
	if err := closeFn(); err != nil {
		t.Fatalf("close: %v", err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(raw), "written") {
		t.Fatalf("expected log line in file, got %q", raw)
	}
}
