/*
 * Copyright (c) 2018 Miguel Ángel Ortuño.
 * See the LICENSE file for more information.
 */

package log

import (
	"fmt"
	"sync"

	zaplog "github.com/atalk/xmppcore/log/zap"
)

// Logger represents a leveled logging backend.
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Fatalf(format string, args ...interface{})
}

var (
	inst   Logger = Disabled
	instMu sync.RWMutex
)

// Initialize sets up the default log subsystem from cfg.
func Initialize(cfg *Config) error {
	l, err := zaplog.NewLogger(zaplog.Options{
		Level:    cfg.Level.String(),
		Encoding: cfg.Format,
		LogPath:  cfg.LogPath,
	})
	if err != nil {
		return err
	}
	Set(l)
	return nil
}

// Set replaces the default logger.
// A nil value disables logging.
func Set(l Logger) {
	instMu.Lock()
	defer instMu.Unlock()
	if l == nil {
		l = Disabled
	}
	inst = l
}

// Shutdown restores the disabled logger.
// This method should be used only for testing purposes.
func Shutdown() {
	Set(nil)
}

func instance() Logger {
	instMu.RLock()
	defer instMu.RUnlock()
	return inst
}

// Debugf logs a 'debug' message.
func Debugf(format string, args ...interface{}) {
	instance().Debugf(format, args...)
}

// Infof logs an 'info' message.
func Infof(format string, args ...interface{}) {
	instance().Infof(format, args...)
}

// Warnf logs a 'warning' message.
func Warnf(format string, args ...interface{}) {
	instance().Warnf(format, args...)
}

// Errorf logs an 'error' message.
func Errorf(format string, args ...interface{}) {
	instance().Errorf(format, args...)
}

// Error logs an 'error' value.
func Error(err error) {
	instance().Errorf("%v", err)
}

// Fatalf logs a 'fatal' message.
// Application will terminate after logging.
func Fatalf(format string, args ...interface{}) {
	instance().Fatalf(format, args...)
}

// Disabled is a Logger that discards every message.
var Disabled Logger = &disabledLogger{}

// String satisfies fmt.Stringer interface.
func (l LogLevel) String() string {
	switch l {
	case DebugLevel:
		return "debug"
	case InfoLevel:
		return "info"
	case WarningLevel:
		return "warn"
	case ErrorLevel:
		return "error"
	case FatalLevel:
		return "fatal"
	}
	return fmt.Sprintf("level(%d)", int(l))
}
