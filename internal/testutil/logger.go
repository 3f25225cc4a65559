package testutil

import (
	"go.uber.org/zap"
)

// NopLogger returns a logger that discards all output.
// Use this in tests to avoid log noise.
func NopLogger() *zap.Logger {
	return zap.NewNop()
}
