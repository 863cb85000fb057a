package log

// Two zap loggers: a file logger that records everything at debug level and
// a console logger that only prints the user-facing success and error lines.
// Both are no-ops until Setup runs.

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"
)

const (
	LogFileName = "app.log"

	// MaxLogFileSize is the size at which the log file is truncated (50 MB).
	MaxLogFileSize = 50 * 1024 * 1024
)

// Config controls where logs go.
type Config struct {
	Dir     string    // directory of the log file; empty disables file logging
	Debug   bool      // also print debug lines on the console
	Console io.Writer // console sink, stderr when nil
	NoColor bool      // plain level names, for pipes and CI logs
}

var (
	mu            sync.RWMutex
	fileLogger    = zap.NewNop()
	consoleLogger = zap.NewNop()
	bufPool       = buffer.NewPool()
)

// Setup installs the loggers. The returned func flushes and closes the log file.
func Setup(cfg Config) (func() error, error) {
	console := cfg.Console
	if console == nil {
		console = os.Stderr
	}

	consoleLevel := zapcore.InfoLevel
	if cfg.Debug {
		consoleLevel = zapcore.DebugLevel
	}
	levelEncoder := colorLevelEncoder
	if cfg.NoColor {
		levelEncoder = plainLevelEncoder
	}
	consoleConfig := zapcore.EncoderConfig{
		TimeKey:       "time",
		LevelKey:      "level",
		MessageKey:    "msg",
		LineEnding:    zapcore.DefaultLineEnding,
		EncodeLevel:   levelEncoder,
		EncodeTime:    zapcore.TimeEncoderOfLayout("15:04:05"),
		EncodeCaller:  nil,
		StacktraceKey: "",
	}
	newConsole := zap.New(zapcore.NewCore(
		zapcore.NewConsoleEncoder(consoleConfig),
		zapcore.AddSync(console),
		consoleLevel,
	))

	newFile := zap.NewNop()
	var writer *rotatingLogWriter
	if cfg.Dir != "" {
		if err := os.MkdirAll(cfg.Dir, 0755); err != nil {
			install(zap.NewNop(), newConsole)
			return nil, fmt.Errorf("failed to create logs directory: %w", err)
		}
		w, err := openLogFile(filepath.Join(cfg.Dir, LogFileName))
		if err != nil {
			install(zap.NewNop(), newConsole)
			return nil, err
		}
		writer = w

		fileConfig := zapcore.EncoderConfig{
			TimeKey:        "time",
			LevelKey:       "level",
			MessageKey:     "msg",
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeLevel:    zapcore.CapitalLevelEncoder,
			EncodeTime:     zapcore.TimeEncoderOfLayout(time.DateTime),
			EncodeDuration: zapcore.MillisDurationEncoder,
		}
		newFile = zap.New(zapcore.NewCore(
			&fileEncoder{Encoder: zapcore.NewConsoleEncoder(fileConfig)},
			writer,
			zapcore.DebugLevel,
		))
	}

	install(newFile, newConsole)
	newFile.Debug("logger initialized", zap.String("dir", cfg.Dir), zap.Bool("debug", cfg.Debug))

	cleanup := func() error {
		mu.Lock()
		f := fileLogger
		fileLogger = zap.NewNop()
		consoleLogger = zap.NewNop()
		mu.Unlock()

		_ = f.Sync()
		if writer != nil {
			return writer.Close()
		}
		return nil
	}
	return cleanup, nil
}

func install(file, console *zap.Logger) {
	mu.Lock()
	defer mu.Unlock()
	fileLogger = file
	consoleLogger = console
}

func loggers() (*zap.Logger, *zap.Logger) {
	mu.RLock()
	defer mu.RUnlock()
	return fileLogger, consoleLogger
}

// LogInfo goes to the file only.
func LogInfo(message string, fields ...zap.Field) {
	f, _ := loggers()
	f.Info(message, fields...)
}

// LogDebug goes to the file, and to the console in debug mode.
func LogDebug(message string, fields ...zap.Field) {
	f, c := loggers()
	f.Debug(message, fields...)
	c.Debug(message, fields...)
}

// LogWarn goes to the file and the console.
func LogWarn(message string, fields ...zap.Field) {
	f, c := loggers()
	f.Warn(message, fields...)
	c.Warn("! " + message)
}

// LogSuccess goes to the file and prints a check line on the console.
func LogSuccess(message string, fields ...zap.Field) {
	f, c := loggers()
	f.Info(message, fields...)
	if ms := extractDuration(fields); ms > 0 {
		c.Info(fmt.Sprintf("✓ %s (%dms)", message, ms))
		return
	}
	c.Info("✓ " + message)
}

// LogError goes to the file and prints a cross line on the console.
func LogError(message string, fields ...zap.Field) {
	f, c := loggers()
	f.Error(message, fields...)
	if err := extractError(fields); err != nil {
		c.Error(fmt.Sprintf("✗ %s: %v", message, err))
		return
	}
	c.Error("✗ " + message)
}

// extractDuration finds a duration_ms field.
func extractDuration(fields []zap.Field) int64 {
	for _, field := range fields {
		if field.Key == "duration_ms" && field.Type == zapcore.Int64Type {
			return field.Integer
		}
	}
	return 0
}

func extractError(fields []zap.Field) error {
	for _, field := range fields {
		if field.Type == zapcore.ErrorType {
			if err, ok := field.Interface.(error); ok {
				return err
			}
		}
	}
	return nil
}

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
)

func colorLevelEncoder(level zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	switch level {
	case zapcore.DebugLevel:
		enc.AppendString(colorCyan + "DEBUG" + colorReset)
	case zapcore.InfoLevel:
		enc.AppendString(colorGreen + "SUCCESS" + colorReset)
	case zapcore.WarnLevel:
		enc.AppendString(colorYellow + "WARN" + colorReset)
	default:
		enc.AppendString(colorRed + level.CapitalString() + colorReset)
	}
}

func plainLevelEncoder(level zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	if level == zapcore.InfoLevel {
		enc.AppendString("SUCCESS")
		return
	}
	enc.AppendString(level.CapitalString())
}

// fileEncoder writes "time     LEVEL message\t{json fields}" lines.
type fileEncoder struct {
	zapcore.Encoder
}

func (e *fileEncoder) Clone() zapcore.Encoder {
	return &fileEncoder{Encoder: e.Encoder.Clone()}
}

func (e *fileEncoder) EncodeEntry(entry zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	buf := bufPool.Get()

	buf.AppendString(entry.Time.Format(time.DateTime))
	buf.AppendString("     ")
	buf.AppendString(entry.Level.CapitalString())
	buf.AppendString(" ")
	buf.AppendString(entry.Message)

	if len(fields) > 0 {
		enc := zapcore.NewMapObjectEncoder()
		for _, field := range fields {
			field.AddTo(enc)
		}
		if data, err := json.Marshal(enc.Fields); err == nil {
			buf.AppendString("\t")
			buf.AppendString(string(data))
		}
	}

	buf.AppendString("\n")
	return buf, nil
}

// rotatingLogWriter truncates the log file once it outgrows MaxLogFileSize.
type rotatingLogWriter struct {
	mu   sync.Mutex
	file *os.File
	path string
}

func openLogFile(path string) (*rotatingLogWriter, error) {
	flags := os.O_CREATE | os.O_WRONLY | os.O_APPEND
	if info, err := os.Stat(path); err == nil && info.Size() > MaxLogFileSize {
		flags = os.O_CREATE | os.O_WRONLY | os.O_TRUNC
	}
	file, err := os.OpenFile(path, flags, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", path, err)
	}
	return &rotatingLogWriter{file: file, path: path}, nil
}

func (w *rotatingLogWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if info, err := w.file.Stat(); err == nil && info.Size() > MaxLogFileSize {
		w.file.Close()
		file, err := os.OpenFile(w.path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
		if err != nil {
			return 0, fmt.Errorf("failed to truncate log file: %w", err)
		}
		w.file = file
	}
	return w.file.Write(p)
}

func (w *rotatingLogWriter) Sync() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.file.Sync()
}

func (w *rotatingLogWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.file.Close()
}
