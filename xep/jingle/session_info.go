/*
 * Copyright (c) 2018 Miguel Ángel Ortuño.
 * See the LICENSE file for more information.
 */

package jingle

import "github.com/atalk/xmppcore/xmpp"

// SessionInfoNamespace is the XEP-0167 informational messages namespace.
const SessionInfoNamespace = "urn:xmpp:jingle:apps:rtp:info:1"

// SessionInfoType represents an RTP session informational message.
type SessionInfoType string

const (
	// ActiveInfo signals the principal is actively participating.
	ActiveInfo SessionInfoType = "active"

	// HoldInfo signals the principal is temporarily not listening.
	HoldInfo SessionInfoType = "hold"

	// UnholdInfo ends a previous hold.
	UnholdInfo SessionInfoType = "unhold"

	// MuteInfo signals the principal is temporarily not sending media.
	MuteInfo SessionInfoType = "mute"

	// UnmuteInfo ends a previous mute.
	UnmuteInfo SessionInfoType = "unmute"

	// RingingInfo signals the device is ringing but the principal has not answered yet.
	RingingInfo SessionInfoType = "ringing"
)

// IsValid returns true for known informational message types.
func (t SessionInfoType) IsValid() bool {
	switch t {
	case ActiveInfo, HoldInfo, UnholdInfo, MuteInfo, UnmuteInfo, RingingInfo:
		return true
	}
	return false
}

// SessionInfoElement represents a session-info payload such as <ringing/> or <mute/>.
// Name carries the content name of mute and unmute messages.
type SessionInfoElement struct {
	Type SessionInfoType
	Name string
}

// Element returns the XML representation of the informational message.
func (si *SessionInfoElement) Element() *xmpp.Element {
	el := xmpp.NewElementNamespace(string(si.Type), SessionInfoNamespace)
	if si.Type == MuteInfo || si.Type == UnmuteInfo {
		el.SetAttribute("name", si.Name)
	}
	return el
}
