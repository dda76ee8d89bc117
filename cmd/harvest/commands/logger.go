package commands

import (
	"go.uber.org/zap"

	"github.com/fivetwenty-io/harvest/pkg/harvest"
)

// zapLogger backs harvest.Logger with zap.
type zapLogger struct {
	logger *zap.Logger
}

var _ harvest.Logger = (*zapLogger)(nil)

// newLogger builds a production logger, or a development logger with debug
// output when verbose is set.
func newLogger(verbose bool) (*zapLogger, error) {
	var (
		logger *zap.Logger
		err    error
	)

	if verbose {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}

	if err != nil {
		return nil, err
	}

	return &zapLogger{logger: logger}, nil
}

func (l *zapLogger) Debug(msg string, fields map[string]interface{}) {
	l.logger.Debug(msg, zapFields(fields)...)
}

func (l *zapLogger) Info(msg string, fields map[string]interface{}) {
	l.logger.Info(msg, zapFields(fields)...)
}

func (l *zapLogger) Warn(msg string, fields map[string]interface{}) {
	l.logger.Warn(msg, zapFields(fields)...)
}

func (l *zapLogger) Error(msg string, fields map[string]interface{}) {
	l.logger.Error(msg, zapFields(fields)...)
}

// Sync flushes buffered log entries.
func (l *zapLogger) Sync() {
	_ = l.logger.Sync()
}

func zapFields(fields map[string]interface{}) []zap.Field {
	zapped := make([]zap.Field, 0, len(fields))
	for key, value := range fields {
		zapped = append(zapped, zap.Any(key, value))
	}

	return zapped
}
