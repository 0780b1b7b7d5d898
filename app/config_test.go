/*
 * Copyright (c) 2018 Miguel Ángel Ortuño.
 * See the LICENSE file for more information.
 */

package app

import (
	"bytes"
	"testing"
	"time"

	"github.com/atalk/xmppcore/history"
	"github.com/atalk/xmppcore/log"
	"github.com/stretchr/testify/require"
)

func TestConfig_FromFile(t *testing.T) {
	var cfg Config
	require.Nil(t, cfg.FromFile("testdata/config_basic.yml"))

	require.Equal(t, log.ErrorLevel, cfg.Logger.Level)
	require.Equal(t, "xmppcore-test", cfg.Dispatcher.Name)
	require.Equal(t, 32768, cfg.Stream.MaxStanzaSize)
	require.Equal(t, history.Memory, cfg.History.Type)
	require.True(t, cfg.Modules.IsEnabled("jingle"))
	require.Equal(t, 8, cfg.Modules.Jingle.MaxSessions)
	require.Equal(t, time.Second*5, cfg.Modules.IQTimeout)

	j, err := cfg.LocalJID()
	require.Nil(t, err)
	require.Equal(t, "localhost", j.Domain())

	require.NotNil(t, cfg.FromFile("testdata/not_found.yml"))
}

func TestConfig_Defaults(t *testing.T) {
	var cfg Config
	require.Nil(t, cfg.FromBuffer(bytes.NewBufferString("debug:\n  port: 0\n")))

	require.Equal(t, defaultLocalJID, cfg.Stream.JID)
	require.Equal(t, defaultMaxStanzaSize, cfg.Stream.MaxStanzaSize)
	require.Equal(t, defaultDispatcherName, cfg.Dispatcher.Name)
	require.Equal(t, history.Memory, cfg.History.Type)
}

func TestConfig_SQLHistory(t *testing.T) {
	var cfg Config
	require.Nil(t, cfg.FromBuffer(bytes.NewBufferString(`
history:
  type: sql
  sql:
    driver: sqlite
`)))
	require.Equal(t, history.SQL, cfg.History.Type)
	require.Equal(t, history.SQLiteDriver, cfg.History.SQL.Driver)

	repo := newHistoryRepository(&cfg.History)
	require.NotNil(t, repo)
}

func TestConfig_Invalid(t *testing.T) {
	var cfg Config
	require.NotNil(t, cfg.FromBuffer(bytes.NewBufferString("debug:\n  port: -1\n")))

	cfg = Config{}
	require.NotNil(t, cfg.FromBuffer(bytes.NewBufferString("stream:\n  jid: \"juliet@\"\n")))

	cfg = Config{}
	require.NotNil(t, cfg.FromBuffer(bytes.NewBufferString("modules:\n  enabled: [roster]\n")))

	cfg = Config{}
	require.NotNil(t, cfg.FromBuffer(bytes.NewBufferString("logger:\n  level: verbose\n")))
}
