package utils

import (
	"strings"

	"github.com/sirupsen/logrus"
)

var logger = logrus.New()

// InitLogger configures the shared logger. JSON output is for production;
// anything else keeps logrus defaults for local reading.
func InitLogger(format string) {
	if strings.EqualFold(format, "json") {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	logger.SetLevel(logrus.InfoLevel)
}

// Logger exposes the shared logger for middleware.
func Logger() *logrus.Logger {
	return logger
}

// LogEvent emits a standardized line with module/action/request_id fields.
// Avoid logging sensitive payload; message should be summarized.
func LogEvent(requestID, module, action, message string) {
	logger.WithFields(logrus.Fields{
		"module":     strings.ToUpper(module),
		"action":     action,
		"request_id": strings.TrimSpace(requestID),
	}).Info(message)
}

// LogError mirrors LogEvent for failure paths, keeping the same fields.
func LogError(requestID, module, action string, err error) {
	logger.WithFields(logrus.Fields{
		"module":     strings.ToUpper(module),
		"action":     action,
		"request_id": strings.TrimSpace(requestID),
	}).WithError(err).Error("operation failed")
}
