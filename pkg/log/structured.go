package log

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/watchair/watchair/pkg/requestid"
)

// StructuredLogger emits operation scoped, key/value log lines at debug level.
// Usage:
//
//	tracer := log.NewDebugLogger("ingestion").WithContext(ctx).Operation("process_file").WithString("job_id", id).Build()
//	tracer.Step("read_workbook").WithInt("sheets", n).Log()
//	tracer.Success().Log()
type StructuredLogger struct {
	name string
	ctx  context.Context
}

func NewDebugLogger(name string) *StructuredLogger {
	return &StructuredLogger{name: name, ctx: context.Background()}
}

func (l *StructuredLogger) WithContext(ctx context.Context) *OperationBuilder {
	return &OperationBuilder{
		logger: &StructuredLogger{name: l.name, ctx: ctx},
		fields: make([]any, 0, 8),
	}
}

type OperationBuilder struct {
	logger    *StructuredLogger
	operation string
	fields    []any
}

func (b *OperationBuilder) Operation(op string) *OperationBuilder {
	b.operation = op
	return b
}

func (b *OperationBuilder) WithString(key, value string) *OperationBuilder {
	b.fields = append(b.fields, key, value)
	return b
}

func (b *OperationBuilder) WithInt(key string, value int) *OperationBuilder {
	b.fields = append(b.fields, key, value)
	return b
}

func (b *OperationBuilder) WithUUID(key string, value uuid.UUID) *OperationBuilder {
	b.fields = append(b.fields, key, value.String())
	return b
}

func (b *OperationBuilder) WithParam(key string, value any) *OperationBuilder {
	b.fields = append(b.fields, key, value)
	return b
}

func (b *OperationBuilder) Build() *OperationTracer {
	fields := append([]any{}, b.fields...)
	if rid := requestid.FromContext(b.logger.ctx); rid != "" {
		fields = append(fields, "request_id", rid)
	}
	return &OperationTracer{
		sugar:     zap.S().Named(b.logger.name),
		operation: b.operation,
		fields:    fields,
		start:     time.Now(),
	}
}

// OperationTracer logs the steps of a single operation with its shared fields.
type OperationTracer struct {
	sugar     *zap.SugaredLogger
	operation string
	fields    []any
	start     time.Time
}

func (t *OperationTracer) Step(name string) *LogEntry {
	return t.entry(zapcore.DebugLevel, "step", "step", name)
}

func (t *OperationTracer) Error(err error) *LogEntry {
	return t.entry(zapcore.ErrorLevel, "failed", "error", err.Error())
}

func (t *OperationTracer) Success() *LogEntry {
	return t.entry(zapcore.DebugLevel, "succeeded", "duration", time.Since(t.start))
}

func (t *OperationTracer) entry(lvl zapcore.Level, msg string, kv ...any) *LogEntry {
	fields := append([]any{"operation", t.operation}, t.fields...)
	return &LogEntry{
		sugar:  t.sugar,
		level:  lvl,
		msg:    t.operation + " " + msg,
		fields: append(fields, kv...),
	}
}

type LogEntry struct {
	sugar  *zap.SugaredLogger
	level  zapcore.Level
	msg    string
	fields []any
}

func (e *LogEntry) WithString(key, value string) *LogEntry {
	e.fields = append(e.fields, key, value)
	return e
}

func (e *LogEntry) WithInt(key string, value int) *LogEntry {
	e.fields = append(e.fields, key, value)
	return e
}

func (e *LogEntry) WithParam(key string, value any) *LogEntry {
	e.fields = append(e.fields, key, value)
	return e
}

func (e *LogEntry) Log() {
	switch e.level {
	case zapcore.ErrorLevel:
		e.sugar.Errorw(e.msg, e.fields...)
	case zapcore.WarnLevel:
		e.sugar.Warnw(e.msg, e.fields...)
	case zapcore.InfoLevel:
		e.sugar.Infow(e.msg, e.fields...)
	default:
		e.sugar.Debugw(e.msg, e.fields...)
	}
}
