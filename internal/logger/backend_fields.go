package logger

import (
	"strings"

	"go.uber.org/zap"
)

const (
	// FieldProvider is the structured log field key for the scoring backend provider name.
	FieldProvider = "backend_provider"
	// FieldModel is the structured log field key for the model identifier.
	FieldModel = "backend_model"
)

// CommonFields returns standard zap fields that describe the scoring backend provider and model.
// Empty values are ignored to keep log entries compact when information is missing.
func CommonFields(provider, model string) []zap.Field {
	fields := make([]zap.Field, 0, 2)

	if provider = strings.TrimSpace(provider); provider != "" {
		fields = append(fields, zap.String(FieldProvider, provider))
	}

	if model = strings.TrimSpace(model); model != "" {
		fields = append(fields, zap.String(FieldModel, model))
	}

	return fields
}

// WithCommonFields safely attaches provider and model fields to the logger.
// A nil logger defaults to a no-op logger.
func WithCommonFields(logger *zap.Logger, provider, model string) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}

	fields := CommonFields(provider, model)
	if len(fields) == 0 {
		return logger
	}

	return logger.With(fields...)
}
