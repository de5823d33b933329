// Package logger is a small leveled file logger with key=value fields and
// size/age based rotation. Console output is off by default so log lines
// never land on top of the dashboard.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"
)

// Level represents log severity
type Level int

const (
	DEBUG Level = iota
	INFO
	WARN
	ERROR
)

func (l Level) String() string {
	switch l {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel converts a level name to a Level, ignoring case. Unknown
// names map to INFO.
func ParseLevel(s string) Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return DEBUG
	case "WARN", "WARNING":
		return WARN
	case "ERROR":
		return ERROR
	default:
		return INFO
	}
}

// Field is a key=value pair appended to a log line
type Field struct {
	Key   string
	Value interface{}
}

// F is a shorthand for creating a Field
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// Config holds logger configuration
type Config struct {
	Level      Level
	FilePath   string // empty disables the file output
	MaxSize    int64  // bytes before rotation
	MaxAge     int    // days before rotation
	MaxBackups int
	Console    bool // copy lines to stderr
}

// DefaultConfig logs INFO and above to ~/.daysince/logs/daysince.log
func DefaultConfig() Config {
	logPath := ""
	if home, err := os.UserHomeDir(); err == nil {
		logPath = filepath.Join(home, ".daysince", "logs", "daysince.log")
	}

	return Config{
		Level:      INFO,
		FilePath:   logPath,
		MaxSize:    10 * 1024 * 1024,
		MaxAge:     7,
		MaxBackups: 5,
	}
}

// output is shared between a Logger and the loggers derived from it with
// WithFields, so rotation swaps the file for all of them.
type output struct {
	mu      sync.Mutex
	config  Config
	file    *os.File
	writers []io.Writer
	now     func() time.Time
}

// Logger writes leveled lines to a file and optionally stderr
type Logger struct {
	out    *output
	fields []Field
}

var (
	globalMu     sync.RWMutex
	globalLogger *Logger
)

// Init replaces the global logger
func Init(config Config) error {
	l, err := New(config)
	if err != nil {
		return err
	}
	globalMu.Lock()
	old := globalLogger
	globalLogger = l
	globalMu.Unlock()
	if old != nil {
		_ = old.Close()
	}
	return nil
}

func global() *Logger {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return globalLogger
}

// New creates a logger, opening (and rotating if due) the log file
func New(config Config) (*Logger, error) {
	o := &output{config: config, now: time.Now}

	if config.FilePath != "" {
		if err := os.MkdirAll(filepath.Dir(config.FilePath), 0o700); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		if err := o.open(); err != nil {
			return nil, err
		}
		if err := o.rotateIfNeeded(); err != nil {
			return nil, err
		}
	} else {
		o.resetWriters()
	}

	return &Logger{out: o}, nil
}

func (o *output) open() error {
	file, err := os.OpenFile(o.config.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	o.file = file
	o.resetWriters()
	return nil
}

func (o *output) resetWriters() {
	o.writers = o.writers[:0]
	if o.file != nil {
		o.writers = append(o.writers, o.file)
	}
	if o.config.Console {
		o.writers = append(o.writers, os.Stderr)
	}
}

// rotateIfNeeded must be called with o.mu held or before the output is shared
func (o *output) rotateIfNeeded() error {
	if o.file == nil {
		return nil
	}

	info, err := o.file.Stat()
	if err != nil {
		return err
	}

	tooBig := o.config.MaxSize > 0 && info.Size() >= o.config.MaxSize
	tooOld := o.config.MaxAge > 0 && info.Size() > 0 &&
		o.now().Sub(info.ModTime()) > time.Duration(o.config.MaxAge)*24*time.Hour
	if !tooBig && !tooOld {
		return nil
	}
	return o.rotate()
}

// rotate shifts daysince.log.N to .N+1, moves the live file to .1 and
// reopens it.
func (o *output) rotate() error {
	_ = o.file.Close()
	o.file = nil

	path := o.config.FilePath
	for i := o.config.MaxBackups - 1; i >= 1; i-- {
		_ = os.Rename(fmt.Sprintf("%s.%d", path, i), fmt.Sprintf("%s.%d", path, i+1))
	}
	if o.config.MaxBackups > 0 {
		if err := os.Rename(path, path+".1"); err != nil && !os.IsNotExist(err) {
			return err
		}
	} else {
		_ = os.Remove(path)
	}

	return o.open()
}

func (l *Logger) log(level Level, msg string, fields []Field) {
	o := l.out
	if level < o.config.Level {
		return
	}

	_, file, line, ok := runtime.Caller(3)
	caller := "???"
	if ok {
		caller = fmt.Sprintf("%s:%d", filepath.Base(file), line)
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	_ = o.rotateIfNeeded()

	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s %s: %s", o.now().Format("2006-01-02 15:04:05.000"), level, caller, msg)
	if len(l.fields)+len(fields) > 0 {
		b.WriteString(" |")
		for _, f := range append(append([]Field{}, l.fields...), fields...) {
			fmt.Fprintf(&b, " %s=%v", f.Key, f.Value)
		}
	}
	b.WriteByte('\n')

	entry := []byte(b.String())
	for _, w := range o.writers {
		_, _ = w.Write(entry)
	}
}

// WithFields returns a logger that adds fields to every line
func (l *Logger) WithFields(fields ...Field) *Logger {
	return &Logger{
		out:    l.out,
		fields: append(append([]Field{}, l.fields...), fields...),
	}
}

func (l *Logger) Debug(msg string, fields ...Field) { l.write(DEBUG, msg, fields) }
func (l *Logger) Info(msg string, fields ...Field)  { l.write(INFO, msg, fields) }
func (l *Logger) Warn(msg string, fields ...Field)  { l.write(WARN, msg, fields) }
func (l *Logger) Error(msg string, fields ...Field) { l.write(ERROR, msg, fields) }

// write keeps the call depth equal for methods and package functions
func (l *Logger) write(level Level, msg string, fields []Field) {
	l.log(level, msg, fields)
}

// Close closes the log file
func (l *Logger) Close() error {
	l.out.mu.Lock()
	defer l.out.mu.Unlock()

	if l.out.file != nil {
		err := l.out.file.Close()
		l.out.file = nil
		l.out.resetWriters()
		return err
	}
	return nil
}

// Debug logs with the global logger; a no-op before Init
func Debug(msg string, fields ...Field) {
	if l := global(); l != nil {
		l.write(DEBUG, msg, fields)
	}
}

func Info(msg string, fields ...Field) {
	if l := global(); l != nil {
		l.write(INFO, msg, fields)
	}
}

func Warn(msg string, fields ...Field) {
	if l := global(); l != nil {
		l.write(WARN, msg, fields)
	}
}

func Error(msg string, fields ...Field) {
	if l := global(); l != nil {
		l.write(ERROR, msg, fields)
	}
}

// WithFields derives from the global logger. It returns nil before Init.
func WithFields(fields ...Field) *Logger {
	if l := global(); l != nil {
		return l.WithFields(fields...)
	}
	return nil
}

// Close closes the global logger
func Close() error {
	if l := global(); l != nil {
		return l.Close()
	}
	return nil
}

// GetConfig returns the global logger's configuration
func GetConfig() Config {
	if l := global(); l != nil {
		return l.out.config
	}
	return DefaultConfig()
}
