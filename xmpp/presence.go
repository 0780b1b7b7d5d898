/*
 * Copyright (c) 2018 Miguel Ángel Ortuño.
 * See the LICENSE file for more information.
 */

package xmpp

import (
	"strconv"

	"github.com/atalk/xmppcore/xmpp/jid"
	"github.com/pkg/errors"
)

// Presence types.
const (
	AvailableType    = ""
	UnavailableType  = "unavailable"
	SubscribeType    = "subscribe"
	UnsubscribeType  = "unsubscribe"
	SubscribedType   = "subscribed"
	UnsubscribedType = "unsubscribed"
	ProbeType        = "probe"
)

var presenceTypes = map[string]bool{
	ErrorType:        true,
	AvailableType:    true,
	UnavailableType:  true,
	SubscribeType:    true,
	UnsubscribeType:  true,
	SubscribedType:   true,
	UnsubscribedType: true,
	ProbeType:        true,
}

// Presence type represents a <presence> element.
// Rayo servers announce call state changes through presence extensions.
type Presence struct {
	stanzaElement
	priority int8
}

// NewPresenceFromElement creates a Presence object from XElement.
func NewPresenceFromElement(e XElement, from *jid.JID, to *jid.JID) (*Presence, error) {
	if e.Name() != PresenceName {
		return nil, errors.Errorf("xmpp: wrong presence element name: %s", e.Name())
	}
	if !presenceTypes[e.Type()] {
		return nil, errors.Errorf(`xmpp: invalid presence "type" attribute: %s`, e.Type())
	}
	if len(e.Elements().Children("show")) > 1 {
		return nil, errors.New("xmpp: presence carries more than one <show/> element")
	}
	priority, err := parsePriority(e.Elements().Children("priority"))
	if err != nil {
		return nil, err
	}
	p := &Presence{priority: priority}
	p.copyFrom(e)
	p.SetFromJID(from)
	p.SetToJID(to)
	p.SetNamespace("")
	return p, nil
}

// NewPresence creates and returns a new Presence element.
func NewPresence(from *jid.JID, to *jid.JID, presenceType string) *Presence {
	p := &Presence{}
	p.SetName(PresenceName)
	p.SetFromJID(from)
	p.SetToJID(to)
	p.SetType(presenceType)
	return p
}

// IsAvailable returns true if this is an 'available' type Presence.
func (p *Presence) IsAvailable() bool { return p.Type() == AvailableType }

// IsUnavailable returns true if this is an 'unavailable' type Presence.
func (p *Presence) IsUnavailable() bool { return p.Type() == UnavailableType }

// Show returns the <show/> value, or an empty string when not present.
func (p *Presence) Show() string { return p.childText("show") }

// Status returns presence stanza default status.
func (p *Presence) Status() string { return p.childText("status") }

// Priority returns presence stanza priority value.
func (p *Presence) Priority() int8 { return p.priority }

func (p *Presence) childText(name string) string {
	if el := p.elements.Child(name); el != nil {
		return el.Text()
	}
	return ""
}

func parsePriority(els []XElement) (int8, error) {
	switch len(els) {
	case 0:
		return 0, nil
	case 1:
		pr, err := strconv.ParseInt(els[0].Text(), 10, 8)
		if err != nil {
			return 0, errors.Wrap(err, "xmpp: presence priority must be an integer between -128 and +127")
		}
		return int8(pr), nil
	}
	return 0, errors.New("xmpp: presence carries more than one <priority/> element")
}
