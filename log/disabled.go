/*
 * Copyright (c) 2018 Miguel Ángel Ortuño.
 * See the LICENSE file for more information.
 */

package log

type disabledLogger struct{}

func (_ *disabledLogger) Debugf(format string, args ...interface{}) {}
func (_ *disabledLogger) Infof(format string, args ...interface{})  {}
func (_ *disabledLogger) Warnf(format string, args ...interface{})  {}
func (_ *disabledLogger) Errorf(format string, args ...interface{}) {}
func (_ *disabledLogger) Fatalf(format string, args ...interface{}) {}
