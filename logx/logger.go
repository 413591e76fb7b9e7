// Package logx is the ambient logging layer: a Logger interface kept
// deliberately small (With/Debug/Info/Warn/Error/Fatal/WithFields),
// backed by zap in production and a no-op implementation for tests.
// Grounded on luxfi-consensus's log.Logger surface and its NoLog
// no-op, trimmed to the subset this repo actually calls — the full
// luxfi/log.Logger interface pulls in an external module this repo's
// go.mod doesn't carry, so only the "Node compatibility" subset
// (WithFields, Fatal) plus the geth-style level methods are kept.
package logx

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger is the surface every package in this repo logs through.
type Logger interface {
	With(fields ...zap.Field) Logger
	WithFields(fields ...zap.Field) Logger
	Debug(msg string, fields ...zap.Field)
	Info(msg string, fields ...zap.Field)
	Warn(msg string, fields ...zap.Field)
	Error(msg string, fields ...zap.Field)
	Fatal(msg string, fields ...zap.Field)
	Sync() error
}

type zapLogger struct {
	z *zap.Logger
}

// Options configures a production Logger.
type Options struct {
	// Verbose enables debug-level output.
	Verbose bool
	// LogFile, if non-empty, adds a rotating file sink (lumberjack)
	// alongside stderr.
	LogFile string
}

// New builds a zap-backed Logger per Options.
func New(opts Options) Logger {
	level := zap.InfoLevel
	if opts.Verbose {
		level = zap.DebugLevel
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoder := zapcore.NewJSONEncoder(encoderCfg)

	cores := []zapcore.Core{
		zapcore.NewCore(encoder, zapcore.Lock(zapcore.AddSync(os.Stderr)), level),
	}
	if opts.LogFile != "" {
		rotator := &lumberjack.Logger{
			Filename:   opts.LogFile,
			MaxSize:    50,
			MaxBackups: 3,
			MaxAge:     28,
			Compress:   true,
		}
		cores = append(cores, zapcore.NewCore(encoder, zapcore.AddSync(rotator), level))
	}

	z := zap.New(zapcore.NewTee(cores...), zap.AddCaller())
	return &zapLogger{z: z}
}

func (l *zapLogger) With(fields ...zap.Field) Logger       { return &zapLogger{z: l.z.With(fields...)} }
func (l *zapLogger) WithFields(fields ...zap.Field) Logger { return l.With(fields...) }
func (l *zapLogger) Debug(msg string, fields ...zap.Field) { l.z.Debug(msg, fields...) }
func (l *zapLogger) Info(msg string, fields ...zap.Field)  { l.z.Info(msg, fields...) }
func (l *zapLogger) Warn(msg string, fields ...zap.Field)  { l.z.Warn(msg, fields...) }
func (l *zapLogger) Error(msg string, fields ...zap.Field) { l.z.Error(msg, fields...) }
func (l *zapLogger) Fatal(msg string, fields ...zap.Field) { l.z.Fatal(msg, fields...) }
func (l *zapLogger) Sync() error                           { return l.z.Sync() }

// noOp is the NoLog equivalent for tests and library callers that
// don't want log output.
type noOp struct{}

// NewNoOp returns a Logger that discards everything.
func NewNoOp() Logger { return noOp{} }

func (noOp) With(_ ...zap.Field) Logger       { return noOp{} }
func (noOp) WithFields(_ ...zap.Field) Logger { return noOp{} }
func (noOp) Debug(_ string, _ ...zap.Field)   {}
func (noOp) Info(_ string, _ ...zap.Field)    {}
func (noOp) Warn(_ string, _ ...zap.Field)    {}
func (noOp) Error(_ string, _ ...zap.Field)   {}
func (noOp) Fatal(_ string, _ ...zap.Field)   {}
func (noOp) Sync() error                      { return nil }
