// Package log provides leveled, categorized logging for install and uninstall runs.
// Logging is off until Init or InitFile is called.
package log

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Level represents log severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Category groups related log messages.
type Category string

const (
	CatInstall   Category = "install"
	CatUninstall Category = "uninstall"
	CatExtract   Category = "extract"
	CatIcon      Category = "icon"
	CatLocate    Category = "locate"
	CatNotify    Category = "notify"
	CatConfig    Category = "config"
)

type logger struct {
	mu       sync.Mutex
	writer   io.Writer
	minLevel Level
	now      func() time.Time
}

var std = &logger{minLevel: LevelDebug, now: time.Now}

// Init directs log output to w. A nil writer disables logging.
func Init(w io.Writer) {
	std.mu.Lock()
	std.writer = w
	std.mu.Unlock()
}

// InitFile appends log output to the file at path.
// The returned function closes the file.
func InitFile(path string) (func(), error) {
	f, err := tea.LogToFile(path, "appimage-installer")
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	Init(f)
	return func() {
		Init(nil)
		_ = f.Close()
	}, nil
}

// SetMinLevel sets the minimum log level.
func SetMinLevel(level Level) {
	std.mu.Lock()
	std.minLevel = level
	std.mu.Unlock()
}

// Debug logs at debug level.
func Debug(cat Category, msg string, fields ...any) {
	write(LevelDebug, cat, msg, fields...)
}

// Info logs at info level.
func Info(cat Category, msg string, fields ...any) {
	write(LevelInfo, cat, msg, fields...)
}

// Warn logs at warning level.
func Warn(cat Category, msg string, fields ...any) {
	write(LevelWarn, cat, msg, fields...)
}

// Error logs at error level.
func Error(cat Category, msg string, fields ...any) {
	write(LevelError, cat, msg, fields...)
}

// ErrorErr logs an error with the error value.
func ErrorErr(cat Category, msg string, err error, fields ...any) {
	if err != nil {
		fields = append(fields, "error", err.Error())
	} else {
		fields = append(fields, "error", "<nil>")
	}
	write(LevelError, cat, msg, fields...)
}

// Format renders one log line without the trailing newline.
// Format: 2025-12-06T10:45:00 [WARN] [icon] message key=value key2=value2
func Format(ts time.Time, level Level, cat Category, msg string, fields ...any) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s [%s] [%s] %s", ts.Format("2006-01-02T15:04:05"), level, cat, msg)
	for i := 0; i+1 < len(fields); i += 2 {
		fmt.Fprintf(&sb, " %v=%v", fields[i], fields[i+1])
	}
	if len(fields)%2 != 0 {
		fmt.Fprintf(&sb, " %v=<missing>", fields[len(fields)-1])
	}
	return sb.String()
}

func write(level Level, cat Category, msg string, fields ...any) {
	std.mu.Lock()
	defer std.mu.Unlock()

	if std.writer == nil || level < std.minLevel {
		return
	}
	_, _ = io.WriteString(std.writer, Format(std.now(), level, cat, msg, fields...)+"\n")
}
