package logger

import (
	"strings"

	"go.uber.org/zap"
)

const (
	// FieldProvider is the structured log field key for the AI provider name.
	FieldProvider = "ai_provider"
	// FieldModel is the structured log field key for the AI model identifier.
	FieldModel = "ai_model"
	// FieldStrategy names the ingestion strategy being attempted.
	FieldStrategy = "ingest_strategy"
	// FieldAttempt is the 1-based position of the strategy in the cascade.
	FieldAttempt = "ingest_attempt"
	// FieldRequestID correlates all entries of one ingestion call.
	FieldRequestID = "request_id"
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

// WithFields attaches fields to the logger, substituting a no-op logger for nil.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}

	if len(fields) == 0 {
		return logger
	}

	return logger.With(fields...)
}

// CommonFields returns the provider and model fields, skipping empty values.
func CommonFields(provider, model string) []zap.Field {
	return StringFields(
		StringField{Key: FieldProvider, Value: provider},
		StringField{Key: FieldModel, Value: model},
	)
}

// WithCommonFields attaches the provider and model fields to the logger.
func WithCommonFields(logger *zap.Logger, provider, model string) *zap.Logger {
	return WithFields(logger, CommonFields(provider, model)...)
}

// StrategyFields describes one step of the ingestion cascade.
func StrategyFields(name string, attempt int) []zap.Field {
	fields := StringFields(StringField{Key: FieldStrategy, Value: name})
	if attempt > 0 {
		fields = append(fields, zap.Int(FieldAttempt, attempt))
	}
	return fields
}
