// Package logging is the process-wide logger. The terminal belongs to the
// browser UI, so records go to a rotating file under the XDG state directory.
package logging

import (
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	logger *Logger
	raw    *zap.Logger

	noopLogger = &Logger{zap.NewNop().Sugar()}
)

// Logger wraps zap's SugaredLogger.
type Logger struct {
	*zap.SugaredLogger
}

// With adds structured fields and returns a new Logger.
func (l *Logger) With(args ...interface{}) *Logger {
	if l == nil {
		return noopLogger
	}
	return &Logger{l.SugaredLogger.With(args...)}
}

// L returns the global logger, or a no-op logger before Init.
func L() *Logger {
	if logger == nil {
		return noopLogger
	}
	return logger
}

// Init sets up the global logger.
//
// FIELDLENS_ENV=dev selects human-readable output in app-debug.log, anything
// else JSON in app.log. LOG_LEVEL overrides the level; debug forces debug level.
func Init(appName string, debug bool) string {
	mode := detectMode()
	logPath := selectLogPath(appName, mode)

	level := detectLogLevel(mode)
	if debug {
		level = zap.DebugLevel
	}

	writer := zapcore.AddSync(&lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    10, // MB
		MaxBackups: 3,
		MaxAge:     14, // days
		Compress:   true,
	})

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	var encoder zapcore.Encoder
	if mode == "dev" {
		encoder = zapcore.NewConsoleEncoder(encoderCfg)
	} else {
		encoder = zapcore.NewJSONEncoder(encoderCfg)
	}

	raw = zap.New(zapcore.NewCore(encoder, writer, level), zap.AddCaller())
	logger = &Logger{raw.Sugar()}

	logger.Debugf("logger initialized in %s mode, writing to %s", mode, logPath)
	return logPath
}

// InitTest logs to stdout at debug level.
func InitTest() {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	cfg.OutputPaths = []string{"stdout"}
	raw, _ = cfg.Build(zap.AddCaller())
	logger = &Logger{raw.Sugar()}
}

// Sync flushes buffered entries.
func Sync() {
	if logger != nil {
		_ = logger.Sync()
	}
}

func detectMode() string {
	switch strings.ToLower(os.Getenv("FIELDLENS_ENV")) {
	case "dev", "development":
		return "dev"
	default:
		return "prod"
	}
}

func selectLogPath(appName, mode string) string {
	fileName := "app.log"
	if mode == "dev" {
		fileName = "app-debug.log"
	}

	if xdg := os.Getenv("XDG_STATE_HOME"); xdg != "" {
		path := filepath.Join(xdg, appName)
		_ = os.MkdirAll(path, 0o755)
		return filepath.Join(path, fileName)
	}

	if home, err := os.UserHomeDir(); err == nil {
		path := filepath.Join(home, ".local", "state", appName)
		_ = os.MkdirAll(path, 0o755)
		return filepath.Join(path, fileName)
	}

	path := filepath.Join(os.TempDir(), appName)
	_ = os.MkdirAll(path, 0o755)
	return filepath.Join(path, fileName)
}

func detectLogLevel(mode string) zapcore.Level {
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		return zap.DebugLevel
	case "info":
		return zap.InfoLevel
	case "warn", "warning":
		return zap.WarnLevel
	case "error":
		return zap.ErrorLevel
	default:
		if mode == "dev" {
			return zap.DebugLevel
		}
		return zap.InfoLevel
	}
}
