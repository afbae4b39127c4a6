package logging

import (
	"context"

	"go.uber.org/zap"
)

// LogStoreEvent records a profile store operation.
//
// Args:
//   - action: "load" or "save"
//   - backend: the store implementation ("file", "redis", "firestore", "memory")
//   - key: the storage key holding the profile record
//   - result: "success", "absent" or "failure"
//   - details: optional extra fields, e.g. a categorized error
func LogStoreEvent(
	ctx context.Context,
	action, backend, key, result string,
	details map[string]any,
) {
	logger := LoggerFromContext(ctx)

	fields := []zap.Field{
		zap.String("store.action", action),
		zap.String("store.backend", backend),
		zap.String("store.key", key),
		zap.String("store.result", result),
	}
	if len(details) > 0 {
		fields = append(fields, zap.Any("store.details", details))
	}

	if result == "failure" {
		logger.Warn("Store event", fields...)
		return
	}
	logger.Info("Store event", fields...)
}
