// File: internal/logging/logger.go
// Brief: logr logger construction backed by zap.

// Package logging builds the structured logger shared by tplan commands.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-logr/logr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	crzap "sigs.k8s.io/controller-runtime/pkg/log/zap"
)

// ParseLevel maps a level name to a zap level. Debug enables logr V(1).
func ParseLevel(level string) (zapcore.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zapcore.DebugLevel, nil
	case "info", "":
		return zapcore.InfoLevel, nil
	case "warn", "warning":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	default:
		return zapcore.InfoLevel, fmt.Errorf("unknown log level %q (expected debug, info, warn, or error)", level)
	}
}

// New returns a logger writing to w (stderr when nil) at the given level.
func New(level string, w io.Writer) (logr.Logger, error) {
	zapLevel, err := ParseLevel(level)
	if err != nil {
		return logr.Logger{}, err
	}
	if w == nil {
		w = os.Stderr
	}
	atomic := zap.NewAtomicLevelAt(zapLevel)
	opts := crzap.Options{
		Development: zapLevel == zapcore.DebugLevel,
		Level:       &atomic,
		DestWriter:  w,
	}
	return crzap.New(crzap.UseFlagOptions(&opts)), nil
}
