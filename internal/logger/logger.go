// Package logger writes structured session logs for the hotbar editor. The
// terminal belongs to the UI, so records go to one file per session under
// $XDG_STATE_HOME/hotbar; older session files are pruned on startup.
package logger

import (
	"cmp"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// ErrInvalidLogLevel is returned when an unrecognised log level is provided.
var ErrInvalidLogLevel = errors.New("invalid log level")

const (
	appName = "hotbar"

	// keepSessions is how many session logs survive pruning, the new one
	// included.
	keepSessions = 5

	dirPermissions  = 0o755
	filePermissions = 0o644
)

// Logger is a leveled key/value logger. The zero-cost form from Discard or
// New("") drops every record and never touches the disk.
type Logger struct {
	log  *slog.Logger
	file *os.File // nil unless this logger owns the session file
}

// New opens a session log at level (debug, info, warn or error, any case).
// An empty level returns a logger that discards everything.
func New(level string) (*Logger, error) {
	if level == "" {
		return Discard(), nil
	}

	slogLevel, err := parseLogLevel(level)
	if err != nil {
		return nil, err
	}

	dir, err := logDir()
	if err != nil {
		return nil, err
	}

	file, err := os.OpenFile(sessionPath(dir, os.Getpid()), os.O_CREATE|os.O_WRONLY|os.O_TRUNC, filePermissions)
	if err != nil {
		return nil, fmt.Errorf("opening session log: %w", err)
	}

	l := &Logger{
		log:  slog.New(slog.NewTextHandler(file, &slog.HandlerOptions{Level: slogLevel})),
		file: file,
	}

	removed, err := pruneSessions(dir, file.Name(), keepSessions)
	if err != nil {
		l.Warn("pruning old session logs", "dir", dir, "err", err)
	}
	l.Info("session started", "pid", os.Getpid(), "level", strings.ToLower(level), "pruned", removed)

	return l, nil
}

// Discard returns a logger that drops every record.
func Discard() *Logger {
	return &Logger{log: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

// With returns a logger that adds args to every record. It shares the
// session file; only the logger returned by New closes it.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{log: l.log.With(args...)}
}

// Path returns the session log file, or "" when nothing is written.
func (l *Logger) Path() string {
	if l.file == nil {
		return ""
	}
	return l.file.Name()
}

// Close flushes and closes the session file, if this logger owns one.
func (l *Logger) Close() {
	if l.file != nil {
		l.file.Close()
	}
}

func (l *Logger) Debug(msg string, args ...any) { l.log.Debug(msg, args...) }
func (l *Logger) Info(msg string, args ...any) { l.log.Info(msg, args...) }
func (l *Logger) Warn(msg string, args ...any) { l.log.Warn(msg, args...) }
func (l *Logger) Error(msg string, args ...any) { l.log.Error(msg, args...) }

func logDir() (string, error) {
	state := os.Getenv("XDG_STATE_HOME")
	if state == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("finding home directory: %w", err)
		}
		state = filepath.Join(home, ".local", "state")
	}

	dir := filepath.Join(state, appName)
	if err := os.MkdirAll(dir, dirPermissions); err != nil {
		return "", fmt.Errorf("creating log directory: %w", err)
	}
	return dir, nil
}

func sessionPath(dir string, pid int) string {
	return filepath.Join(dir, fmt.Sprintf("%s-%d.log", appName, pid))
}

// pruneSessions deletes all but the newest keep session logs in dir. current
// is never deleted. Files that are not session logs are left alone.
func pruneSessions(dir, current string, keep int) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("reading log directory: %w", err)
	}

	type session struct {
		path    string
		modTime int64
	}
	var sessions []session
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, appName+"-") || filepath.Ext(name) != ".log" {
			continue
		}
		path := filepath.Join(dir, name)
		if path == current {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		sessions = append(sessions, session{path: path, modTime: info.ModTime().UnixNano()})
	}

	// Newest first; the current session takes one of the kept places.
	slices.SortFunc(sessions, func(a, b session) int {
		return cmp.Compare(b.modTime, a.modTime)
	})

	removed := 0
	var errs []error
	for _, s := range sessions[min(len(sessions), max(0, keep-1)):] {
		if err := os.Remove(s.path); err != nil {
			errs = append(errs, err)
			continue
		}
		removed++
	}
	return removed, errors.Join(errs...)
}

func parseLogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("%w: %q (use debug, info, warn or error)", ErrInvalidLogLevel, level)
}
