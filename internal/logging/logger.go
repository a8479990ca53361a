// Package logging writes process diagnostics to .skillgap/logs/skillgap.log:
// startup, shutdown, and errors that would otherwise vanish with the
// alternate screen. User gestures go to the logbook journal instead.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kingrea/skillgap/internal/config"
)

const fileName = "skillgap.log"

// Logger appends timestamped lines to the diagnostics file.
type Logger struct {
	file *os.File
	now  func() time.Time
}

// New opens (or creates) the diagnostics log under cfg's logs directory.
func New(cfg *config.Config) (*Logger, error) {
	if err := os.MkdirAll(cfg.LogsDir(), 0o755); err != nil {
		return nil, fmt.Errorf("logging: ensure log dir: %w", err)
	}
	f, err := os.OpenFile(Path(cfg), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("logging: open log file: %w", err)
	}
	return &Logger{file: f, now: time.Now}, nil
}

// Path is where New writes for cfg.
func Path(cfg *config.Config) string {
	return filepath.Join(cfg.LogsDir(), fileName)
}

// Close releases the file handle.
func (l *Logger) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	return l.file.Close()
}

// Printf writes a single timestamped line.
func (l *Logger) Printf(format string, args ...any) {
	if l == nil || l.file == nil {
		return
	}
	line := strings.TrimRight(fmt.Sprintf(format, args...), "\n")
	fmt.Fprintf(l.file, "[%s] %s\n", l.now().Format(time.RFC3339), line)
}

// Errorf records err with context and returns it unchanged, so call sites
// can log and propagate in one step.
func (l *Logger) Errorf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	l.Printf("error: %s: %v", fmt.Sprintf(format, args...), err)
	return err
}
