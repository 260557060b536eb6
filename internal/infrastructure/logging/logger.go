package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/andrescamacho/craftchain-go/internal/application/common"
	"github.com/andrescamacho/craftchain-go/internal/infrastructure/config"
)

var levelRank = map[string]int{
	common.LevelDebug: 0,
	common.LevelInfo:  1,
	common.LevelWarn:  2,
	common.LevelError: 3,
}

// Logger writes leveled log lines through the standard library logger.
// It implements common.Logger.
type Logger struct {
	mu       sync.Mutex
	out      *log.Logger
	format   string
	minLevel int
	closer   io.Closer
	now      func() time.Time
}

// NewLogger builds a logger from the logging configuration
func NewLogger(cfg config.LoggingConfig) (*Logger, error) {
	var (
		w      io.Writer
		closer io.Closer
	)

	switch cfg.Output {
	case "", "stderr":
		w = os.Stderr
	case "stdout":
		w = os.Stdout
	case "file":
		f, err := os.OpenFile(cfg.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file %s: %w", cfg.FilePath, err)
		}
		w, closer = f, f
	default:
		return nil, fmt.Errorf("unsupported log output: %s", cfg.Output)
	}

	logger := NewWriterLogger(w, cfg.Format, cfg.Level)
	logger.closer = closer
	return logger, nil
}

// NewWriterLogger logs to w. Unknown levels fall back to info, unknown formats to text.
func NewWriterLogger(w io.Writer, format, level string) *Logger {
	return &Logger{
		out:      log.New(w, "", 0),
		format:   strings.ToLower(format),
		minLevel: rankOf(normalizeLevel(level)),
		now:      time.Now,
	}
}

// Log implements common.Logger
func (l *Logger) Log(level, message string, metadata map[string]interface{}) {
	level = normalizeLevel(level)
	if rankOf(level) < l.minLevel {
		return
	}

	timestamp := l.now().UTC().Format(time.RFC3339)

	var line string
	if l.format == "json" {
		line = jsonLine(timestamp, level, message, metadata)
	} else {
		line = textLine(timestamp, level, message, metadata)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.out.Println(line)
}

// Close releases the log file, if any
func (l *Logger) Close() error {
	if l.closer == nil {
		return nil
	}
	return l.closer.Close()
}

func textLine(timestamp, level, message string, metadata map[string]interface{}) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s: %s", timestamp, level, message)
	for _, key := range sortedKeys(metadata) {
		fmt.Fprintf(&b, " %s=%v", key, metadata[key])
	}
	return b.String()
}

func jsonLine(timestamp, level, message string, metadata map[string]interface{}) string {
	entry := map[string]interface{}{
		"time":    timestamp,
		"level":   level,
		"message": message,
	}
	if len(metadata) > 0 {
		entry["metadata"] = metadata
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return textLine(timestamp, level, message, map[string]interface{}{"marshal_error": err.Error()})
	}
	return string(data)
}

// normalizeLevel maps config spellings (debug, warn) onto the canonical log levels
func normalizeLevel(level string) string {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return common.LevelDebug
	case "WARN", "WARNING":
		return common.LevelWarn
	case "ERROR":
		return common.LevelError
	default:
		return common.LevelInfo
	}
}

func rankOf(level string) int {
	return levelRank[level]
}

func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
