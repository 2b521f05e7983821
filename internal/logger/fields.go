package logger

import (
	"strings"

	"go.uber.org/zap"
)

const (
	// FieldService is the structured log field key for an external service name.
	FieldService = "service"
	// FieldRunID is the structured log field key for a matching run identifier.
	FieldRunID = "run_id"
	// FieldSessionID is the structured log field key for a persisted session.
	FieldSessionID = "session_id"
)

// StringField describes a string-valued structured logging field.
type StringField struct {
	Key   string
	Value string
}

// StringFields converts the provided key/value pairs into zap fields, trimming
// whitespace and omitting entries with empty keys or values.
func StringFields(fields ...StringField) []zap.Field {
	result := make([]zap.Field, 0, len(fields))
	for _, field := range fields {
		key := strings.TrimSpace(field.Key)
		if key == "" {
			continue
		}

		value := strings.TrimSpace(field.Value)
		if value == "" {
			continue
		}

		result = append(result, zap.String(key, value))
	}

	return result
}

// WithFields safely attaches the provided fields to the logger.
// If the logger is nil or no fields are supplied, the input logger is returned
// unchanged, defaulting to a no-op logger when nil.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}

	if len(fields) == 0 {
		return logger
	}

	return logger.With(fields...)
}

// ForService returns a logger tagged with the external service it talks to.
func ForService(logger *zap.Logger, service string) *zap.Logger {
	return WithFields(logger, StringFields(StringField{Key: FieldService, Value: service})...)
}

// ForRun returns a logger tagged with a run and, once known, a session id.
func ForRun(logger *zap.Logger, runID, sessionID string) *zap.Logger {
	return WithFields(logger, StringFields(
		StringField{Key: FieldRunID, Value: runID},
		StringField{Key: FieldSessionID, Value: sessionID},
	)...)
}
