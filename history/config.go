/*
 * Copyright (c) 2018 Miguel Ángel Ortuño.
 * See the LICENSE file for more information.
 */

package history

import (
	"fmt"

	"github.com/pkg/errors"
)

const (
	defaultSQLPoolSize = 16
	defaultSQLitePath  = "./history.db"
	defaultSSLMode     = "disable"
)

// StorageType represents a call history storage type.
type StorageType int

const (
	// Memory represents an in-memory storage type.
	Memory StorageType = iota

	// SQL represents a database/sql backed storage type.
	SQL
)

// SQL driver names.
const (
	MySQLDriver    = "mysql"
	PostgresDriver = "postgres"
	SQLiteDriver   = "sqlite"
)

// SQLConfig represents SQL storage configuration.
type SQLConfig struct {
	Driver   string `yaml:"driver"`
	Host     string `yaml:"host"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	PoolSize int    `yaml:"pool_size"`
	SSLMode  string `yaml:"ssl_mode"`
	Path     string `yaml:"path"`
}

// DSN returns the data source name for the configured driver.
func (c *SQLConfig) DSN() string {
	switch c.Driver {
	case PostgresDriver:
		return fmt.Sprintf("postgres://%s:%s@%s/%s?sslmode=%s", c.User, c.Password, c.Host, c.Database, c.SSLMode)
	case SQLiteDriver:
		return c.Path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	default:
		return fmt.Sprintf("%s:%s@tcp(%s)/%s?parseTime=true", c.User, c.Password, c.Host, c.Database)
	}
}

// Config represents call history storage configuration.
type Config struct {
	Type StorageType
	SQL  *SQLConfig
}

type configProxy struct {
	Type string     `yaml:"type"`
	SQL  *SQLConfig `yaml:"sql"`
}

// UnmarshalYAML satisfies Unmarshaler interface.
func (c *Config) UnmarshalYAML(unmarshal func(interface{}) error) error {
	p := configProxy{}
	if err := unmarshal(&p); err != nil {
		return err
	}
	switch p.Type {
	case "memory", "":
		c.Type = Memory

	case "sql":
		if p.SQL == nil {
			return errors.New("history.Config: couldn't read SQL configuration")
		}
		c.Type = SQL
		c.SQL = p.SQL

		// assign storage defaults
		switch c.SQL.Driver {
		case MySQLDriver, PostgresDriver:
			if len(c.SQL.Host) == 0 {
				return errors.Errorf("history.Config: %s host is required", c.SQL.Driver)
			}
		case SQLiteDriver:
			if len(c.SQL.Path) == 0 {
				c.SQL.Path = defaultSQLitePath
			}
		case "":
			return errors.New("history.Config: unspecified SQL driver")
		default:
			return errors.Errorf("history.Config: unrecognized SQL driver: %s", c.SQL.Driver)
		}
		if c.SQL.PoolSize == 0 {
			c.SQL.PoolSize = defaultSQLPoolSize
		}
		if len(c.SQL.SSLMode) == 0 {
			c.SQL.SSLMode = defaultSSLMode
		}

	default:
		return errors.Errorf("history.Config: unrecognized storage type: %s", p.Type)
	}
	return nil
}
