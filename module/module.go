/*
 * Copyright (c) 2018 Miguel Ángel Ortuño.
 * See the LICENSE file for more information.
 */

package module

import (
	"context"

	"github.com/atalk/xmppcore/log"
	"github.com/atalk/xmppcore/provider"
	"github.com/atalk/xmppcore/stream"
	"github.com/atalk/xmppcore/xmpp"
)

// Module represents generic module interface.
type Module interface {
	// Name returns specific module name.
	Name() string

	// Start starts module.
	Start(ctx context.Context) error

	// Stop stops module.
	Stop(ctx context.Context) error
}

// IQHandler represents an IQ handler module.
type IQHandler interface {
	Module

	// MatchesIQ returns whether or not an IQ should be
	// processed by this module.
	MatchesIQ(iq *provider.IQ) bool

	// ProcessIQ processes a module IQ taking according actions
	// over the associated stream.
	ProcessIQ(ctx context.Context, iq *provider.IQ) error
}

// Modules is the module hub IQs are routed through.
type Modules struct {
	mods       []Module
	iqHandlers []IQHandler
	stm        stream.Stream
	rc         *ResponseCollector
}

// New returns a new initialized Modules instance.
func New(mods []Module, stm stream.Stream, rc *ResponseCollector) *Modules {
	m := &Modules{
		mods: mods,
		stm:  stm,
		rc:   rc,
	}
	for _, mod := range mods {
		if iqHnd, ok := mod.(IQHandler); ok {
			m.iqHandlers = append(m.iqHandlers, iqHnd)
		}
	}
	return m
}

// Start starts modules.
func (m *Modules) Start(ctx context.Context) error {
	for _, mod := range m.mods {
		if err := mod.Start(ctx); err != nil {
			return err
		}
	}
	log.Infof("started %d modules (iq handlers: %d)", len(m.mods), len(m.iqHandlers))
	return nil
}

// Stop stops modules and discards every pending request.
func (m *Modules) Stop(ctx context.Context) error {
	for _, mod := range m.mods {
		if err := mod.Stop(ctx); err != nil {
			return err
		}
	}
	m.rc.Stop()
	log.Infof("stopped %d modules", len(m.mods))
	return nil
}

// ProcessIQ routes the iq to the corresponding iq handler module.
// Result and error IQs are delivered to the response collector.
func (m *Modules) ProcessIQ(ctx context.Context, iq *provider.IQ) error {
	switch iq.IQType() {
	case xmpp.ResultIQ, xmpp.ErrorIQ:
		if !m.rc.Collect(iq) {
			log.Debugf("discarding unsolicited %s iq... id: %s", iq.Type(), iq.ID())
		}
		return nil
	}
	for _, iqHnd := range m.iqHandlers {
		if !iqHnd.MatchesIQ(iq) {
			continue
		}
		return iqHnd.ProcessIQ(ctx, iq)
	}
	// ...IQ not handled...
	m.stm.SendElement(iq.ErrorStanza(xmpp.ErrServiceUnavailable))
	return nil
}

// IsEnabled tells whether a specific module it's been registered.
func (m *Modules) IsEnabled(moduleName string) bool {
	for _, mod := range m.mods {
		if mod.Name() == moduleName {
			return true
		}
	}
	return false
}

// AllModules returns all configured modules.
func (m *Modules) AllModules() []Module {
	return m.mods
}
