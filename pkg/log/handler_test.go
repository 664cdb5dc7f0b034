package log

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"reflect"
	"testing"
	"testing/slogtest"
)

func TestLogHandler_Default(t *testing.T) {
	var buf bytes.Buffer
	if err := slogtest.TestHandler(NewHandler(&buf, "test", nil), func() []map[string]any {
		return parseLogEntries(t, buf.Bytes())
	}); err != nil {
		t.Error(err)
	}
}

func TestLogHandler_CustomOptions(t *testing.T) {
	var buf bytes.Buffer
	if err := slogtest.TestHandler(NewHandler(&buf, "test", &HandlerOptions{
		Level: slog.LevelInfo,
	}), func() []map[string]any {
		return parseLogEntries(t, buf.Bytes())
	}); err != nil {
		t.Error(err)
	}
}

func TestLogHandler_Component(t *testing.T) {
	tests := []struct {
		name      string
		component string
		level     slog.Level
		want      map[string]any
		wantEmpty bool
	}{
		{
			name:      "default",
			component: "store",
			level:     slog.LevelInfo,
			want: map[string]any{
				"level":     "INFO",
				"component": "store",
				"msg":       "Loading source",
				"source":    "dir",
			},
		},
		{
			name:  "no component",
			level: slog.LevelWarn,
			want: map[string]any{
				"level":  "WARN",
				"msg":    "Loading source",
				"source": "dir",
			},
		},
		{
			name:      "level disabled",
			component: "store",
			level:     slog.LevelDebug,
			wantEmpty: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := slog.New(NewHandler(&buf, tt.component, &HandlerOptions{Level: slog.LevelInfo}))
			logger.Log(context.Background(), tt.level, "Loading source", "source", "dir")

			entries := parseLogEntries(t, buf.Bytes())
			if tt.wantEmpty {
				if len(entries) != 0 {
					t.Errorf("Handle() entries = %v, want none", entries)
				}
				return
			}
			if len(entries) != 1 {
				t.Fatalf("Handle() entries = %v, want 1", entries)
			}
			delete(entries[0], "time")
			if !reflect.DeepEqual(entries[0], tt.want) {
				t.Errorf("Handle() = %v, want %v", entries[0], tt.want)
			}
		})
	}
}

func TestSetDebug(t *testing.T) {
	defer ProgramLevel.Set(slog.LevelInfo)

	SetDebug(true)
	if ProgramLevel.Level() != slog.LevelDebug {
		t.Errorf("SetDebug(true) level = %v", ProgramLevel.Level())
	}
	SetDebug(false)
	if ProgramLevel.Level() != slog.LevelInfo {
		t.Errorf("SetDebug(false) level = %v", ProgramLevel.Level())
	}
}

func parseLogEntries(t *testing.T, data []byte) []map[string]any {
	ms := []map[string]any{}
	for _, line := range bytes.Split(data, []byte{'\n'}) {
		if len(line) == 0 {
			continue
		}
		m := map[string]any{}
		for _, field := range splitFields(line) {
			key, value, found := bytes.Cut(field, []byte{'='})
			if !found || len(key) == 0 || len(value) == 0 {
				t.Fatal(fmt.Errorf("failed to parse field '%s' for line '%s'", string(field), string(line)))
			}
			keyItems := bytes.Split(key, []byte{'.'})

			switch i := len(keyItems); {
			case i == 2:
				group := string(keyItems[0])
				if m[group] == nil {
					m[group] = map[string]any{}
				}
				m[group].(map[string]any)[string(keyItems[len(keyItems)-1])] = string(bytes.Trim(value, "\""))
			case i > 2:
				groups := keyItems[:len(keyItems)-1]
				var mg map[string]any = m
				for _, g := range groups {
					group := string(g)
					if mg[group] == nil {
						mg[group] = map[string]any{}
					}
					mg = mg[group].(map[string]any)
				}
				mg[string(keyItems[len(keyItems)-1])] = string(bytes.Trim(value, "\""))
			default:
				m[string(key)] = string(bytes.Trim(value, "\""))
			}
		}
		ms = append(ms, m)
	}
	return ms
}

func splitFields(b []byte) [][]byte {
	var quoted bool
	return bytes.FieldsFunc(b, func(r1 rune) bool {
		if r1 == '"' {
			quoted = !quoted
		}
		return !quoted && r1 == ' '
	})
}
