/*
 * Copyright (c) 2018 Miguel Ángel Ortuño.
 * See the LICENSE file for more information.
 */

package xep0199

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/atalk/xmppcore/log"
	"github.com/atalk/xmppcore/provider"
	"github.com/atalk/xmppcore/stream"
	"github.com/atalk/xmppcore/xmpp"
	"github.com/atalk/xmppcore/xmpp/jid"
	"github.com/pkg/errors"
)

const pingNamespace = "urn:xmpp:ping"

// ModuleName represents ping module name.
const ModuleName = "ping"

// ErrConnectionTimeout is reported on disconnection when a ping gets no answer in time.
var ErrConnectionTimeout = errors.New("connection-timeout")

// Config represents XMPP Ping module (XEP-0199) configuration.
type Config struct {
	Send         bool
	SendInterval time.Duration
}

type configProxy struct {
	Send         bool `yaml:"send"`
	SendInterval int  `yaml:"send_interval"`
}

// UnmarshalYAML satisfies Unmarshaler interface.
func (c *Config) UnmarshalYAML(unmarshal func(interface{}) error) error {
	p := configProxy{}
	if err := unmarshal(&p); err != nil {
		return err
	}
	c.Send = p.Send
	c.SendInterval = time.Second * time.Duration(p.SendInterval)
	if c.Send && c.SendInterval < time.Second {
		return fmt.Errorf("xep0199.Config: send interval must be 1 or higher")
	}
	return nil
}

type ping struct{}

func (p *ping) Name() string      { return "ping" }
func (p *ping) Namespace() string { return pingNamespace }

func (p *ping) Element() *xmpp.Element {
	return xmpp.NewElementNamespace("ping", pingNamespace)
}

// Ping represents a ping module.
type Ping struct {
	cfg    Config
	stm    stream.Stream
	sender iqSender

	mu      sync.Mutex
	timer   *time.Timer
	stopped bool
}

// New returns a ping IQ handler module.
func New(cfg Config, stm stream.Stream, sender iqSender) *Ping {
	return &Ping{
		cfg:    cfg,
		stm:    stm,
		sender: sender,
	}
}

// Name satisfies module.Module interface.
func (x *Ping) Name() string { return ModuleName }

// Start starts pinging the local server when configured to.
func (x *Ping) Start(_ context.Context) error {
	x.schedulePing()
	log.Infof("started ping module")
	return nil
}

// Stop cancels any scheduled ping.
func (x *Ping) Stop(_ context.Context) error {
	x.mu.Lock()
	x.stopped = true
	if x.timer != nil {
		x.timer.Stop()
	}
	x.mu.Unlock()

	log.Infof("stopped ping module")
	return nil
}

// MatchesIQ returns whether or not an IQ should be
// processed by the ping module.
func (x *Ping) MatchesIQ(iq *provider.IQ) bool {
	p := iq.PayloadElement()
	return (iq.IsGet() || iq.IsSet()) && p != nil && p.Name() == "ping" && p.Namespace() == pingNamespace
}

// ProcessIQ processes a ping IQ taking according actions
// over the associated stream.
func (x *Ping) ProcessIQ(_ context.Context, iq *provider.IQ) error {
	p := iq.PayloadElement()
	if !iq.IsGet() || p.Elements().Count() > 0 {
		x.stm.SendElement(iq.ErrorStanza(xmpp.ErrBadRequest))
		return nil
	}
	log.Infof("received ping... id: %s", iq.ID())

	x.stm.SendElement(iq.ResultIQ())
	log.Infof("sent pong... id: %s", iq.ID())
	return nil
}

func (x *Ping) schedulePing() {
	if !x.cfg.Send {
		return
	}
	x.mu.Lock()
	defer x.mu.Unlock()
	if x.stopped {
		return
	}
	x.timer = time.AfterFunc(x.cfg.SendInterval, x.sendPing)
}

func (x *Ping) sendPing() {
	local := x.stm.JID()
	srvJID, _ := jid.New("", local.Domain(), "", true)

	iq := provider.NewIQ("", xmpp.GetType, local, srvJID, &ping{})
	if err := x.sender.Send(iq, x.handlePong); err != nil {
		log.Error(err)
		return
	}
	log.Infof("sent ping... id: %s", iq.ID())
}

func (x *Ping) handlePong(resp *provider.IQ) {
	if resp.IsTimeout() {
		x.stm.Disconnect(ErrConnectionTimeout)
		return
	}
	log.Infof("received pong... id: %s", resp.ID())
	x.schedulePing()
}
