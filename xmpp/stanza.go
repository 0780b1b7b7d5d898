/*
 * Copyright (c) 2018 Miguel Ángel Ortuño.
 * See the LICENSE file for more information.
 */

package xmpp

import (
	"github.com/atalk/xmppcore/xmpp/jid"
)

// stanzaElement carries the parsed addresses alongside the raw
// 'from' and 'to' attributes, keeping both in sync.
type stanzaElement struct {
	Element
	fromJID *jid.JID
	toJID   *jid.JID
}

// FromJID returns the stanza sender address.
func (s *stanzaElement) FromJID() *jid.JID { return s.fromJID }

// ToJID returns the stanza recipient address.
func (s *stanzaElement) ToJID() *jid.JID { return s.toJID }

// SetFromJID sets the stanza sender address.
func (s *stanzaElement) SetFromJID(j *jid.JID) {
	s.fromJID = j
	s.SetFrom(addressString(j))
}

// SetToJID sets the stanza recipient address.
func (s *stanzaElement) SetToJID(j *jid.JID) {
	s.toJID = j
	s.SetTo(addressString(j))
}

func addressString(j *jid.JID) string {
	if j == nil {
		return ""
	}
	return j.String()
}
