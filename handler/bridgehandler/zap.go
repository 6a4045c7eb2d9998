package bridgehandler

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/philipp01105/nlogconf/core"
	"github.com/philipp01105/nlogconf/handler"
)

// ZapHandler forwards entries to a zap core. Fatal and panic entries are
// written without terminating the process.
type ZapHandler struct {
	handler.Base
	logger *zap.Logger
}

// ZapConfig holds configuration for NewZapHandler.
type ZapConfig struct {
	// OutputPaths are zap sink URLs or paths (default: stdout)
	OutputPaths []string
	// Encoding is "json" or "console" (default: json)
	Encoding string
	// Level is the minimum level forwarded
	Level core.Level
}

// NewZapHandler builds a zap logger from cfg.
func NewZapHandler(cfg ZapConfig) (*ZapHandler, error) {
	if len(cfg.OutputPaths) == 0 {
		cfg.OutputPaths = []string{"stdout"}
	}
	if cfg.Encoding == "" {
		cfg.Encoding = "json"
	}
	zcfg := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapcore.DebugLevel),
		Encoding:         cfg.Encoding,
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      cfg.OutputPaths,
		ErrorOutputPaths: []string{"stderr"},
	}
	l, err := zcfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build zap logger: %w", err)
	}
	h := NewZapHandlerFromLogger(l)
	h.SetLevel(cfg.Level)
	return h, nil
}

// NewZapHandlerFromLogger wraps an existing zap logger.
func NewZapHandlerFromLogger(l *zap.Logger) *ZapHandler {
	return &ZapHandler{
		Base:   handler.NewBase(core.DebugLevel, true),
		logger: l,
	}
}

// ZapLevel maps a level to its zap equivalent.
func ZapLevel(l core.Level) zapcore.Level {
	switch l {
	case core.DebugLevel:
		return zapcore.DebugLevel
	case core.InfoLevel:
		return zapcore.InfoLevel
	case core.WarnLevel:
		return zapcore.WarnLevel
	case core.ErrorLevel:
		return zapcore.ErrorLevel
	case core.FatalLevel:
		return zapcore.FatalLevel
	default:
		return zapcore.PanicLevel
	}
}

// Handle writes entry through the logger's core.
func (h *ZapHandler) Handle(entry *core.Entry) error {
	ze := zapcore.Entry{
		Level:      ZapLevel(entry.Level),
		Time:       entry.Time,
		LoggerName: entry.Channel,
		Message:    entry.Message,
	}
	if entry.Caller.Defined {
		ze.Caller = zapcore.EntryCaller{
			Defined:  true,
			File:     entry.Caller.File,
			Line:     entry.Caller.Line,
			Function: entry.Caller.Function,
		}
	}

	ce := h.logger.Core().Check(ze, nil)
	if ce == nil {
		return nil
	}
	fields := make([]zap.Field, 0, len(entry.Fields))
	for _, f := range entry.Fields {
		fields = append(fields, zapField(f))
	}
	ce.Write(fields...)
	return nil
}

func zapField(f core.Field) zap.Field {
	switch f.Type {
	case core.StringType:
		return zap.String(f.Key, f.Str)
	case core.IntType, core.Int64Type:
		return zap.Int64(f.Key, f.Int64)
	case core.Float64Type:
		return zap.Float64(f.Key, f.Float64)
	case core.BoolType:
		return zap.Bool(f.Key, f.Int64 == 1)
	case core.ErrorType:
		return zap.String(f.Key, f.Str)
	default:
		return zap.Any(f.Key, f.Value())
	}
}

// Close flushes buffered output.
func (h *ZapHandler) Close() error {
	err := h.logger.Sync()
	if err != nil && isIgnorableSyncError(err) {
		return nil
	}
	return err
}
