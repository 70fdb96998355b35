// Package clog is the compiler's structured logging setup, shared by
// cmd/gocc and the core packages that trace registry/evaluator
// activity in verbose mode. Adopted from the wider retrieval pack
// rather than the teacher (a minifier CLI that only prints
// diagnostics, with no logger of its own): onflow-cadence and
// nspcc-dev-neo-go both wire a single *zap.Logger through their
// compiler/VM packages the same way this package does.
package clog

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds the compiler's logger. Verbose mode uses zap's
// development encoder (human-readable, debug level enabled); normal
// mode uses production defaults at info level so routine compiles stay
// quiet.
func New(verbose bool) (*zap.Logger, error) {
	if verbose {
		cfg := zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		return cfg.Build()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	return cfg.Build()
}

// Nop returns a logger that discards everything, used by tests and by
// library callers that don't want the core's trace output.
func Nop() *zap.Logger {
	return zap.NewNop()
}
