/*
 * Copyright (c) 2018 Miguel Ángel Ortuño.
 * See the LICENSE file for more information.
 */

package app

import (
	"bytes"
	"io/ioutil"

	"github.com/atalk/xmppcore/history"
	"github.com/atalk/xmppcore/log"
	"github.com/atalk/xmppcore/module"
	"github.com/atalk/xmppcore/xmpp/jid"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

const (
	defaultLocalJID       = "xmppcore@localhost/core"
	defaultDispatcherName = "xmppcore"
	defaultMaxStanzaSize  = 65536
)

// debugConfig represents debug server configuration.
type debugConfig struct {
	Port int `yaml:"port"`
}

type dispatcherConfig struct {
	Name string `yaml:"name"`
}

type streamConfig struct {
	JID           string `yaml:"jid"`
	MaxStanzaSize int    `yaml:"max_stanza_size"`
}

// Config represents a global configuration.
type Config struct {
	Debug      debugConfig      `yaml:"debug"`
	Logger     log.Config       `yaml:"logger"`
	Stream     streamConfig     `yaml:"stream"`
	Dispatcher dispatcherConfig `yaml:"dispatcher"`
	History    history.Config   `yaml:"history"`
	Modules    module.Config    `yaml:"modules"`
}

// FromFile loads default global configuration from
// a specified file.
func (cfg *Config) FromFile(configFile string) error {
	b, err := ioutil.ReadFile(configFile)
	if err != nil {
		return err
	}
	return cfg.load(b)
}

// FromBuffer loads default global configuration from
// a specified byte buffer.
func (cfg *Config) FromBuffer(buf *bytes.Buffer) error {
	return cfg.load(buf.Bytes())
}

// LocalJID returns the parsed local stream address.
func (cfg *Config) LocalJID() (*jid.JID, error) {
	return jid.NewWithString(cfg.Stream.JID, false)
}

func (cfg *Config) load(b []byte) error {
	cfg.Logger = log.Config{Level: log.InfoLevel, Format: log.JSONFormat}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return err
	}
	if len(cfg.Stream.JID) == 0 {
		cfg.Stream.JID = defaultLocalJID
	}
	if cfg.Stream.MaxStanzaSize == 0 {
		cfg.Stream.MaxStanzaSize = defaultMaxStanzaSize
	}
	if len(cfg.Dispatcher.Name) == 0 {
		cfg.Dispatcher.Name = defaultDispatcherName
	}
	if cfg.Debug.Port < 0 {
		return errors.Errorf("app.Config: invalid debug port: %d", cfg.Debug.Port)
	}
	if _, err := cfg.LocalJID(); err != nil {
		return errors.Wrap(err, "app.Config: invalid stream jid")
	}
	return nil
}
