/*
 * Copyright (c) 2018 Miguel Ángel Ortuño.
 * See the LICENSE file for more information.
 */

package module

import (
	"fmt"
	"time"

	"github.com/atalk/xmppcore/module/xep0092"
	"github.com/atalk/xmppcore/module/xep0166"
	"github.com/atalk/xmppcore/module/xep0199"
)

// Config represents modules configuration.
type Config struct {
	Enabled   map[string]struct{}
	IQTimeout time.Duration
	Version   xep0092.Config
	Ping      xep0199.Config
	Jingle    xep0166.Config
}

type configProxy struct {
	Enabled   []string       `yaml:"enabled"`
	IQTimeout int            `yaml:"iq_timeout"`
	Version   xep0092.Config `yaml:"mod_version"`
	Ping      xep0199.Config `yaml:"mod_ping"`
	Jingle    xep0166.Config `yaml:"mod_jingle"`
}

// UnmarshalYAML satisfies Unmarshaler interface.
func (cfg *Config) UnmarshalYAML(unmarshal func(interface{}) error) error {
	p := configProxy{}
	if err := unmarshal(&p); err != nil {
		return err
	}
	// validate modules
	enabled := make(map[string]struct{}, len(p.Enabled))
	for _, mod := range p.Enabled {
		switch mod {
		case xep0092.ModuleName, xep0166.ModuleName, xep0199.ModuleName:
			break
		default:
			return fmt.Errorf("module.Config: unrecognized module: %s", mod)
		}
		enabled[mod] = struct{}{}
	}
	if p.IQTimeout < 0 {
		return fmt.Errorf("module.Config: iq timeout must be a positive value")
	}
	cfg.Enabled = enabled
	cfg.IQTimeout = time.Second * time.Duration(p.IQTimeout)
	if cfg.IQTimeout == 0 {
		cfg.IQTimeout = DefaultResponseTimeout
	}
	cfg.Version = p.Version
	cfg.Ping = p.Ping
	cfg.Jingle = p.Jingle
	return nil
}

// IsEnabled tells whether a module has been enabled in configuration.
func (cfg *Config) IsEnabled(moduleName string) bool {
	_, ok := cfg.Enabled[moduleName]
	return ok
}
