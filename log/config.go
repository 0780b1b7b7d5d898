/*
 * Copyright (c) 2018 Miguel Ángel Ortuño.
 * See the LICENSE file for more information.
 */

package log

import (
	"fmt"
	"strings"
)

// LogLevel represents log level type.
type LogLevel int

// Log levels, from most to least verbose.
const (
	DebugLevel LogLevel = iota
	InfoLevel
	WarningLevel
	ErrorLevel
	FatalLevel
)

var levelNames = map[string]LogLevel{
	"debug":   DebugLevel,
	"info":    InfoLevel,
	"warning": WarningLevel,
	"warn":    WarningLevel,
	"error":   ErrorLevel,
	"fatal":   FatalLevel,
}

// Output encodings.
const (
	JSONFormat    = "json"
	ConsoleFormat = "console"
)

// Config represents a logger manager configuration.
type Config struct {
	Level   LogLevel
	Format  string
	LogPath string
}

// UnmarshalYAML satisfies Unmarshaler interface.
// Level defaults to 'info' and format to 'json'.
func (c *Config) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var raw struct {
		Level   string `yaml:"level"`
		Format  string `yaml:"format"`
		LogPath string `yaml:"log_path"`
	}
	if err := unmarshal(&raw); err != nil {
		return err
	}
	c.Level = InfoLevel
	if len(raw.Level) > 0 {
		lvl, ok := levelNames[strings.ToLower(raw.Level)]
		if !ok {
			return fmt.Errorf("log.Config: unrecognized log level: %s", raw.Level)
		}
		c.Level = lvl
	}
	switch raw.Format {
	case "":
		c.Format = JSONFormat
	case JSONFormat, ConsoleFormat:
		c.Format = raw.Format
	default:
		return fmt.Errorf("log.Config: unrecognized log format: %s", raw.Format)
	}
	c.LogPath = raw.LogPath
	return nil
}
