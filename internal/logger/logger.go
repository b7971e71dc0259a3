package logger

import (
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"golang.org/x/term"
)

type Level int

const (
	LevelInfo Level = iota
	LevelWarn
	LevelError
)

var (
	logFile     *os.File
	logDir      string
	currentDay  string
	logMu       sync.Mutex
	fileLogging bool

	out      io.Writer = os.Stderr
	minLevel           = LevelWarn
	colored            = isTerminal(os.Stderr)
)

// ParseLevel maps "info", "warn" and "error" to a Level. Unknown values yield fallback.
func ParseLevel(s string, fallback Level) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "info":
		return LevelInfo
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	}
	return fallback
}

// SetLevel drops messages below lvl on every output.
func SetLevel(lvl Level) {
	logMu.Lock()
	defer logMu.Unlock()
	minLevel = lvl
}

// SetOutput redirects console output. Stdout must stay free for prompts,
// so the default is stderr.
func SetOutput(w io.Writer) {
	logMu.Lock()
	defer logMu.Unlock()
	out = w
	colored = isTerminal(w)
}

func Init(logDir string) error {
	if logDir == "" {
		return nil
	}
	// If caller passes /var/lib/credcheck, write logs to /var/lib/credcheck/logs.
	// If caller already passes .../logs, keep it as-is.
	resolved := logDir
	if path.Base(filepath.ToSlash(logDir)) != "logs" {
		resolved = filepath.Join(logDir, "logs")
	}

	if err := os.MkdirAll(resolved, 0o750); err != nil {
		return err
	}

	logMu.Lock()
	defer logMu.Unlock()
	setDirLocked(resolved)
	fileLogging = true
	if err := rotateLocked(time.Now()); err != nil {
		fileLogging = false
		return err
	}
	return nil
}

func Close() {
	logMu.Lock()
	defer logMu.Unlock()
	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}
	fileLogging = false
	currentDay = ""
}

func Info(format string, args ...interface{}) {
	log(LevelInfo, format, args...)
}

func Warn(format string, args ...interface{}) {
	log(LevelWarn, format, args...)
}

func Error(format string, args ...interface{}) {
	log(LevelError, format, args...)
}

func log(lvl Level, format string, args ...interface{}) {
	logMu.Lock()
	defer logMu.Unlock()
	if lvl < minLevel {
		return
	}

	nowTime := time.Now()
	now := nowTime.Format("2006/01/02 15:04:05")
	msg := fmt.Sprintf(format, args...)
	var label, colorStart string
	switch lvl {
	case LevelInfo:
		colorStart = "\033[32m" // Green
		label = "[INFO] "
	case LevelWarn:
		colorStart = "\033[33m" // Yellow
		label = "[WARN] "
	case LevelError:
		colorStart = "\033[31m" // Red
		label = "[EROR] "       // 4 chars align
	}

	// File output (no color), with daily rollover
	if fileLogging {
		if err := rotateLocked(nowTime); err == nil && logFile != nil {
			_, _ = fmt.Fprintf(logFile, "%s %s%s\n", now, label, msg)
		}
	}

	if out == nil {
		return
	}
	if colored {
		fmt.Fprintf(out, "%s %s%s\033[0m%s\n", now, colorStart, label, msg)
		return
	}
	fmt.Fprintf(out, "%s %s%s\n", now, label, msg)
}

func setDirLocked(dir string) {
	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}
	logDir = dir
	currentDay = ""
}

func rotateLocked(t time.Time) error {
	if logDir == "" {
		return nil
	}
	day := t.Format("2006-01-02")
	if logFile != nil && currentDay == day {
		return nil
	}
	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}

	filePath := filepath.Join(logDir, day+".log")
	f, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o640)
	if err != nil {
		return err
	}
	logFile = f
	currentDay = day
	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
