/*
 * Copyright (c) 2018 Miguel Ángel Ortuño.
 * See the LICENSE file for more information.
 */

package zap

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options configures a zap backed logger.
type Options struct {
	// Level is one of debug, info, warn, error or fatal.
	Level string

	// Encoding is either 'json' or 'console'. Defaults to 'json'.
	Encoding string

	// LogPath is an optional file where entries are appended to,
	// in addition to standard error.
	LogPath string
}

// Logger represents a zap logger implementation.
// Every entry is flushed right after being written.
type Logger struct {
	base  *zap.Logger
	sugar *zap.SugaredLogger
}

// NewLogger creates an initialized zap logger instance.
func NewLogger(opts Options) (*Logger, error) {
	cfg, err := buildConfig(opts)
	if err != nil {
		return nil, err
	}
	base, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return &Logger{base: base, sugar: base.Sugar()}, nil
}

func buildConfig(opts Options) (zap.Config, error) {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(opts.Level)); err != nil {
		return zap.Config{}, err
	}
	var cfg zap.Config
	if opts.Encoding == "console" {
		cfg = zap.NewDevelopmentConfig()
		cfg.Development = false
	} else {
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.EncodeTime = zapcore.RFC3339TimeEncoder
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.DisableCaller = true
	cfg.DisableStacktrace = true
	cfg.Sampling = nil

	// standard output is reserved to the XML stream
	cfg.OutputPaths = []string{"stderr"}
	if len(opts.LogPath) > 0 {
		cfg.OutputPaths = append(cfg.OutputPaths, opts.LogPath)
	}
	return cfg, nil
}

func (l *Logger) flush() { _ = l.base.Sync() }

// Debugf logs a templated 'debug' message.
func (l *Logger) Debugf(msg string, args ...interface{}) {
	defer l.flush()
	l.sugar.Debugf(msg, args...)
}

// Debugw logs a 'debug' message with additional key/value context.
func (l *Logger) Debugw(msg string, keysAndValues ...interface{}) {
	defer l.flush()
	l.sugar.Debugw(msg, keysAndValues...)
}

// Infof logs a templated 'info' message.
func (l *Logger) Infof(msg string, args ...interface{}) {
	defer l.flush()
	l.sugar.Infof(msg, args...)
}

// Warnf logs a templated 'warn' message.
func (l *Logger) Warnf(msg string, args ...interface{}) {
	defer l.flush()
	l.sugar.Warnf(msg, args...)
}

// Errorf logs a templated 'error' message.
func (l *Logger) Errorf(msg string, args ...interface{}) {
	defer l.flush()
	l.sugar.Errorf(msg, args...)
}

// Errorw logs an 'error' message with additional key/value context.
func (l *Logger) Errorw(msg string, keysAndValues ...interface{}) {
	defer l.flush()
	l.sugar.Errorw(msg, keysAndValues...)
}

// Fatalf logs a templated 'fatal' message and exits.
func (l *Logger) Fatalf(msg string, args ...interface{}) {
	l.sugar.Fatalf(msg, args...)
}
