/*
 * Copyright (c) 2018 Miguel Ángel Ortuño.
 * See the LICENSE file for more information.
 */

package colibri

import (
	"github.com/atalk/xmppcore/xmpp"
)

// Shutdown element names.
const (
	GracefulShutdownElement = "graceful-shutdown"
	ForceShutdownElement    = "force-shutdown"
)

// Shutdown represents a bridge shutdown request.
type Shutdown struct {
	Graceful bool
}

// Name satisfies provider.Payload interface.
func (s *Shutdown) Name() string {
	if s.Graceful {
		return GracefulShutdownElement
	}
	return ForceShutdownElement
}

// Namespace satisfies provider.Payload interface.
func (s *Shutdown) Namespace() string { return Namespace }

// Element satisfies provider.Payload interface.
func (s *Shutdown) Element() *xmpp.Element {
	return xmpp.NewElementNamespace(s.Name(), Namespace)
}

// IsValidShutdownElement tells whether name denotes a shutdown request.
func IsValidShutdownElement(name string) bool {
	return name == GracefulShutdownElement || name == ForceShutdownElement
}
