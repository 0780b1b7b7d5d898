/*
 * Copyright (c) 2018 Miguel Ángel Ortuño.
 * See the LICENSE file for more information.
 */

package xep0199

import "github.com/atalk/xmppcore/provider"

//go:generate moq -out iq_sender.mock_test.go . iqSender
type iqSender interface {
	Send(iq *provider.IQ, handler func(response *provider.IQ)) error
}
