package log

import (
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm/logger"
)

type gormWriter struct {
	sugar *zap.SugaredLogger
}

func (w gormWriter) Printf(format string, args ...any) {
	w.sugar.Warnf(format, args...)
}

// NewGormLogger routes gorm's slow query and error reports through the global zap logger.
func NewGormLogger() logger.Interface {
	return logger.New(
		gormWriter{sugar: zap.S().Named("gorm")},
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			ParameterizedQueries:      true,
			Colorful:                  false,
		},
	)
}
