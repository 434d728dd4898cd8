package log

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// Options select where and how the process logs. The zero value writes info and
// above to stdout in console format.
type Options struct {
	Level   string
	Format  string
	Service string
	// Outputs defaults to stdout.
	Outputs []string
}

// InitLog builds the process logger. Every entry carries the service name when one is set.
func InitLog(opts Options) (*zap.Logger, error) {
	format := opts.Format
	if format == "" {
		format = FormatConsole
	}
	if format != FormatConsole && format != FormatJSON {
		return nil, fmt.Errorf("unknown log format %q", opts.Format)
	}

	outputs := opts.Outputs
	if len(outputs) == 0 {
		outputs = []string{"stdout"}
	}

	cfg := zap.Config{
		Level:            ParseLevel(opts.Level),
		Encoding:         format,
		EncoderConfig:    encoderConfig(format),
		OutputPaths:      outputs,
		ErrorOutputPaths: []string{"stderr"},
	}
	if opts.Service != "" {
		cfg.InitialFields = map[string]any{"service": opts.Service}
	}

	return cfg.Build(zap.AddStacktrace(zap.DPanicLevel))
}

func encoderConfig(format string) zapcore.EncoderConfig {
	enc := zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "severity",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "message",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeTime:     zapcore.RFC3339TimeEncoder,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeDuration: zapcore.MillisDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
	if format == FormatJSON {
		// log collectors parse sub-second timestamps and numeric durations
		enc.EncodeTime = zapcore.RFC3339NanoTimeEncoder
		enc.EncodeDuration = zapcore.SecondsDurationEncoder
	}
	return enc
}

// ParseLevel falls back to info when the configured level is not recognized.
func ParseLevel(level string) zap.AtomicLevel {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return zap.NewAtomicLevelAt(zapcore.InfoLevel)
	}
	return lvl
}
