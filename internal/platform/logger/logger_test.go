package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func fixedLogger(buf *bytes.Buffer, lvl Level, format Format) *StdLogger {
	l := New(Options{Level: lvl, Format: format, App: "pets-service", Output: buf}).(*StdLogger)
	l.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }
	return l
}

func TestStdLogger_TextSortedKeys(t *testing.T) {
	var buf bytes.Buffer
	l := fixedLogger(&buf, Info, FormatText)

	l.Info("hello", map[string]any{"b": 2, "a": 1})

	got := strings.TrimSpace(buf.String())
	want := "a=1 app=pets-service b=2 level=info msg=hello ts=2026-01-02T03:04:05Z"
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestStdLogger_JSONAndWith(t *testing.T) {
	var buf bytes.Buffer
	l := fixedLogger(&buf, Debug, FormatJSON)

	l.With(map[string]any{"req_id": "r-1", " ": "skip"}).Error("boom", map[string]any{"error": errors.New("disk full")})

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("unmarshal: %v (%s)", err, buf.String())
	}
	if entry["req_id"] != "r-1" || entry["error"] != "disk full" || entry["level"] != "error" {
		t.Fatalf("unexpected entry: %v", entry)
	}
	if _, ok := entry[" "]; ok {
		t.Fatalf("blank key must be dropped: %v", entry)
	}
}

func TestStdLogger_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	l := fixedLogger(&buf, Warn, FormatText)

	l.Debug("d", nil)
	l.Info("i", nil)
	if buf.Len() != 0 {
		t.Fatalf("expected nothing below warn, got %q", buf.String())
	}
	l.Warn("w", nil)
	if !strings.Contains(buf.String(), "msg=w") {
		t.Fatalf("expected warn entry, got %q", buf.String())
	}
}

func TestParseLevelAndFormat(t *testing.T) {
	cases := map[string]Level{"": Info, "DEBUG": Debug, "warning": Warn, " error ": Error}
	for in, want := range cases {
		got, err := ParseLevel(in)
		if err != nil || got != want {
			t.Fatalf("ParseLevel(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatalf("expected error for unknown level")
	}

	if f, err := ParseFormat("JSON"); err != nil || f != FormatJSON {
		t.Fatalf("ParseFormat(JSON) = %v, %v", f, err)
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}
