/*
 * Copyright (c) 2018 Miguel Ángel Ortuño.
 * See the LICENSE file for more information.
 */

package provider

import (
	"github.com/atalk/xmppcore/log"
	"github.com/atalk/xmppcore/xmpp"
	"github.com/atalk/xmppcore/xmpp/jid"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// IQ is an IQ envelope carrying a typed payload.
type IQ struct {
	*xmpp.IQ
	Payload Payload
}

// NewIQ returns a typed IQ.
// A random identifier is assigned when id is empty.
func NewIQ(id string, iqType string, from, to *jid.JID, payload Payload) *IQ {
	if len(id) == 0 {
		id = uuid.New().String()
	}
	env := xmpp.NewIQType(id, iqType)
	env.SetFromJID(from)
	env.SetToJID(to)
	return &IQ{IQ: env, Payload: payload}
}

// Result returns the result IQ answering this request.
func (iq *IQ) Result(payload Payload) *IQ {
	return &IQ{IQ: iq.IQ.ResultIQ(), Payload: payload}
}

// Stanza serializes the typed IQ back to its XML representation.
func (iq *IQ) Stanza() *xmpp.IQ {
	st := xmpp.NewIQType(iq.ID(), iq.Type())
	st.SetFromJID(iq.FromJID())
	st.SetToJID(iq.ToJID())
	if len(iq.Language()) > 0 {
		st.SetLanguage(iq.Language())
	}
	if iq.Payload != nil {
		st.AppendElement(iq.Payload.Element())
	}
	if errEl := iq.IQ.Error(); errEl != nil {
		st.AppendElement(errEl)
	}
	return st
}

// ErrorStanza returns an error answer to this IQ carrying the original payload.
func (iq *IQ) ErrorStanza(stanzaErr *xmpp.StanzaError, appConditions ...xmpp.XElement) *xmpp.IQ {
	return iq.Stanza().ErrorIQ(stanzaErr, appConditions...)
}

// UnparsedPayload holds an IQ child no provider is registered for.
type UnparsedPayload struct {
	elem *xmpp.Element
}

// Name satisfies Payload interface.
func (p *UnparsedPayload) Name() string { return p.elem.Name() }

// Namespace satisfies Payload interface.
func (p *UnparsedPayload) Namespace() string { return p.elem.Namespace() }

// Element satisfies Payload interface.
func (p *UnparsedPayload) Element() *xmpp.Element { return xmpp.NewElementFromElement(p.elem) }

// XElement returns the raw payload element.
func (p *UnparsedPayload) XElement() xmpp.XElement { return p.elem }

// ParseIQ validates an <iq/> element and parses its payload through the registered provider.
// Result and error IQs without a payload are returned with a nil Payload.
func (m *Manager) ParseIQ(elem xmpp.XElement) (*IQ, error) {
	from, err := jid.NewWithString(elem.From(), false)
	if err != nil {
		return nil, errors.Wrap(err, "provider: invalid 'from' address")
	}
	to, err := jid.NewWithString(elem.To(), false)
	if err != nil {
		return nil, errors.Wrap(err, "provider: invalid 'to' address")
	}
	env, err := xmpp.NewIQFromElement(elem, from, to)
	if err != nil {
		return nil, err
	}
	iq := &IQ{IQ: env}

	child := env.PayloadElement()
	if child == nil {
		return iq, nil
	}
	p := m.IQProvider(child.Name(), child.Namespace())
	if p == nil {
		log.Debugf("no iq provider for <%s xmlns='%s'>", child.Name(), child.Namespace())
		iq.Payload = &UnparsedPayload{elem: xmpp.NewElementFromElement(child)}
		return iq, nil
	}
	payload, err := p.ParseIQ(child)
	if err != nil {
		return nil, &ParseError{Name: child.Name(), Namespace: child.Namespace(), Err: err}
	}
	iq.Payload = payload
	return iq, nil
}
