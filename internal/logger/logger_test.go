package logger

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"pgregory.net/rapid"
)

// newSession points XDG_STATE_HOME at a temp dir and opens a logger there.
func newSession(t *testing.T, level string) (*Logger, string) {
	t.Helper()
	state := t.TempDir()
	t.Setenv("XDG_STATE_HOME", state)

	l, err := New(level)
	if err != nil {
		t.Fatalf("New(%q): %v", level, err)
	}
	return l, filepath.Join(state, appName)
}

func readSession(t *testing.T, l *Logger) string {
	t.Helper()
	content, err := os.ReadFile(l.Path())
	if err != nil {
		t.Fatalf("reading session log: %v", err)
	}
	return string(content)
}

// writeOldSession creates a session file aged by age.
func writeOldSession(t *testing.T, dir, name string, age time.Duration) {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("old\n"), filePermissions); err != nil {
		t.Fatal(err)
	}
	when := time.Now().Add(-age)
	if err := os.Chtimes(path, when, when); err != nil {
		t.Fatal(err)
	}
}

// =============================================================================
// Unit Tests - Levels
// =============================================================================

func TestNew_Levels(t *testing.T) {
	tests := []struct {
		level   string
		written []string
		dropped []string
	}{
		{"debug", []string{"d-msg", "i-msg", "w-msg", "e-msg"}, nil},
		{"INFO", []string{"i-msg", "w-msg", "e-msg"}, []string{"d-msg"}},
		{"Warn", []string{"w-msg", "e-msg"}, []string{"d-msg", "i-msg"}},
		{"error", []string{"e-msg"}, []string{"d-msg", "i-msg", "w-msg"}},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			l, _ := newSession(t, tt.level)
			l.Debug("d-msg")
			l.Info("i-msg")
			l.Warn("w-msg")
			l.Error("e-msg")
			l.Close()

			content := readSession(t, l)
			for _, msg := range tt.written {
				if !strings.Contains(content, msg) {
					t.Errorf("%s level should write %q", tt.level, msg)
				}
			}
			for _, msg := range tt.dropped {
				if strings.Contains(content, msg) {
					t.Errorf("%s level should drop %q", tt.level, msg)
				}
			}
		})
	}
}

func TestNew_InvalidLevel(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		level := rapid.StringMatching(`[a-zA-Z0-9]{1,10}`).Draw(rt, "level")
		if slices.Contains([]string{"debug", "info", "warn", "error"}, strings.ToLower(level)) {
			rt.Skip("valid level")
		}

		l, err := New(level)
		if !errors.Is(err, ErrInvalidLogLevel) {
			if l != nil {
				l.Close()
			}
			rt.Fatalf("New(%q) = %v, want ErrInvalidLogLevel", level, err)
		}
	})
}

func TestNew_EmptyLevelTouchesNothing(t *testing.T) {
	state := t.TempDir()
	t.Setenv("XDG_STATE_HOME", state)

	l, err := New("")
	if err != nil {
		t.Fatal(err)
	}
	defer l.Close()

	l.Error("dropped")

	if l.Path() != "" {
		t.Errorf("Path() = %q, want empty", l.Path())
	}
	if _, err := os.Stat(filepath.Join(state, appName)); !os.IsNotExist(err) {
		t.Error("no log directory should be created")
	}
}

// =============================================================================
// Unit Tests - Session file
// =============================================================================

func TestNew_SessionFileNamedByPID(t *testing.T) {
	l, dir := newSession(t, "info")
	defer l.Close()

	want := filepath.Join(dir, fmt.Sprintf("hotbar-%d.log", os.Getpid()))
	if l.Path() != want {
		t.Errorf("Path() = %q, want %q", l.Path(), want)
	}
	if !strings.Contains(readSession(t, l), "session started") {
		t.Error("session log should open with a start record")
	}
}

func TestNew_TruncatesSameSession(t *testing.T) {
	l1, dir := newSession(t, "info")
	l1.Info("first run")
	l1.Close()

	l2, err := New("info")
	if err != nil {
		t.Fatal(err)
	}
	l2.Info("second run")
	l2.Close()

	if l2.Path() != l1.Path() || !strings.HasPrefix(l2.Path(), dir) {
		t.Fatalf("expected the same session file, got %q and %q", l1.Path(), l2.Path())
	}
	content := readSession(t, l2)
	if strings.Contains(content, "first run") || !strings.Contains(content, "second run") {
		t.Errorf("session file should be truncated, got:\n%s", content)
	}
}

func TestNew_PrunesOldSessions(t *testing.T) {
	state := t.TempDir()
	t.Setenv("XDG_STATE_HOME", state)
	dir := filepath.Join(state, appName)
	if err := os.MkdirAll(dir, dirPermissions); err != nil {
		t.Fatal(err)
	}

	// hotbar-900001.log is the newest old session, hotbar-900008.log the oldest.
	for i := 1; i <= 8; i++ {
		writeOldSession(t, dir, fmt.Sprintf("hotbar-90000%d.log", i), time.Duration(i)*time.Hour)
	}
	writeOldSession(t, dir, "notes.txt", 48*time.Hour)

	l, err := New("info")
	if err != nil {
		t.Fatal(err)
	}
	defer l.Close()

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}

	want := []string{
		"hotbar-900001.log",
		"hotbar-900002.log",
		"hotbar-900003.log",
		"hotbar-900004.log",
		filepath.Base(l.Path()),
		"notes.txt",
	}
	slices.Sort(want)
	if !slices.Equal(names, want) {
		t.Errorf("after pruning got %v, want %v", names, want)
	}
	if !strings.Contains(readSession(t, l), "pruned=4") {
		t.Error("start record should report pruned sessions")
	}
}

func TestPruneSessions_FewerThanKeep(t *testing.T) {
	dir := t.TempDir()
	writeOldSession(t, dir, "hotbar-1.log", time.Hour)

	removed, err := pruneSessions(dir, filepath.Join(dir, "hotbar-2.log"), keepSessions)
	if err != nil || removed != 0 {
		t.Errorf("removed %d, err %v", removed, err)
	}
}

func TestPruneSessions_KeepOneRemovesAllOthers(t *testing.T) {
	dir := t.TempDir()
	current := filepath.Join(dir, "hotbar-2.log")
	writeOldSession(t, dir, "hotbar-1.log", time.Hour)
	writeOldSession(t, dir, "hotbar-2.log", 0)

	removed, err := pruneSessions(dir, current, 1)
	if err != nil || removed != 1 {
		t.Fatalf("removed %d, err %v", removed, err)
	}
	if _, err := os.Stat(current); err != nil {
		t.Error("the current session must survive")
	}
}

// =============================================================================
// Unit Tests - Derived loggers
// =============================================================================

func TestWith_ScopesAttributes(t *testing.T) {
	l, _ := newSession(t, "debug")

	child := l.With("component", "workspace")
	child.Info("child message")
	l.Info("parent message", "path", "note.md", "line", 3)

	// Closing a child must not close the shared file.
	child.Close()
	l.Info("after child close")
	l.Close()

	content := readSession(t, l)
	for _, want := range []string{"component=workspace", "path=note.md", "line=3", "after child close"} {
		if !strings.Contains(content, want) {
			t.Errorf("log should contain %q", want)
		}
	}
	for _, line := range strings.Split(content, "\n") {
		if strings.Contains(line, "parent message") && strings.Contains(line, "component=") {
			t.Errorf("parent record picked up child attributes: %q", line)
		}
	}
	if child.Path() != "" {
		t.Error("derived loggers do not own the session file")
	}
}

func TestDiscard(t *testing.T) {
	l := Discard()
	defer l.Close()

	l.With("k", "v").Error("dropped")
	if l.Path() != "" {
		t.Errorf("Path() = %q, want empty", l.Path())
	}
}
