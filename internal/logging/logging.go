// Package logging provides the shared logrus loggers and the standardized
// field names used for structured log output across the application.
package logging

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// Standardized field names for structured logging.
const (
	FieldFile        = "file_path"
	FieldTransaction = "transaction_id"
	FieldPayment     = "payment_id"
	FieldBorrower    = "borrower"
	FieldCycle       = "cycle_index"
	FieldAmount      = "amount"
	FieldError       = "error"
	FieldCount       = "count"
)

var (
	mu      sync.Mutex
	loggers []*logrus.Logger
)

// GetLogger creates a logger registered with the package so that later
// level and format changes reach every package-level logger.
func GetLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	mu.Lock()
	loggers = append(loggers, logger)
	mu.Unlock()

	return logger
}

// SetAllLogLevels applies the level to every registered logger.
func SetAllLogLevels(level logrus.Level) {
	mu.Lock()
	defer mu.Unlock()
	for _, logger := range loggers {
		logger.SetLevel(level)
	}
}

// SetAllFormatters applies the formatter to every registered logger.
func SetAllFormatters(formatter logrus.Formatter) {
	mu.Lock()
	defer mu.Unlock()
	for _, logger := range loggers {
		logger.SetFormatter(formatter)
	}
}
