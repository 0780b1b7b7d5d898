/*
 * Copyright (c) 2018 Miguel Ángel Ortuño.
 * See the LICENSE file for more information.
 */

package rayo

import (
	"github.com/atalk/xmppcore/extension"
	"github.com/atalk/xmppcore/provider"
	"github.com/atalk/xmppcore/xmpp"
	"github.com/atalk/xmppcore/xmpp/jid"
	"github.com/pkg/errors"
)

// Register binds the Rayo IQ and extension providers to m.
func Register(m *provider.Manager) {
	p := provider.IQProviderFunc(ParseIQ)
	m.RegisterIQProvider("dial", Namespace, p)
	m.RegisterIQProvider("ref", Namespace, p)
	m.RegisterIQProvider("hangup", Namespace, p)
	m.RegisterExtensionProvider("end", Namespace, provider.ExtensionProviderFunc(ParseEnd))
}

// ParseIQ parses a Rayo command or answer.
func ParseIQ(elem xmpp.XElement) (provider.Payload, error) {
	if elem.Namespace() != Namespace {
		return nil, errors.Errorf("rayo: unexpected namespace '%s'", elem.Namespace())
	}
	attrs := elem.Attributes()
	switch elem.Name() {
	case "dial":
		to := attrs.Get("to")
		if len(to) == 0 {
			return nil, errors.New("rayo: dial destination is required")
		}
		return &Dial{From: attrs.Get("from"), To: to, Headers: parseHeaders(elem)}, nil

	case "ref":
		uri := attrs.Get("uri")
		if len(uri) == 0 {
			return nil, errors.New("rayo: ref uri is required")
		}
		return &Ref{URI: uri, Headers: parseHeaders(elem)}, nil

	case "hangup":
		return &Hangup{Headers: parseHeaders(elem)}, nil
	}
	return nil, errors.Errorf("rayo: unknown command <%s/>", elem.Name())
}

// ParseEnd parses an <end/> presence extension.
func ParseEnd(elem xmpp.XElement) (extension.Extension, error) {
	e := &End{Headers: parseHeaders(elem)}
	for _, child := range elem.Elements().All() {
		if child.Name() != "header" {
			e.Reason = EndReason(child.Name())
			break
		}
	}
	return e, nil
}

func parseHeaders(elem xmpp.XElement) Headers {
	var hs Headers
	for _, h := range elem.Elements().Children("header") {
		hs = append(hs, Header{Name: h.Attributes().Get("name"), Value: h.Attributes().Get("value")})
	}
	return hs
}

// NewDial returns a dial command addressed to a Rayo server.
func NewDial(from, server *jid.JID, source, destination string) *provider.IQ {
	return provider.NewIQ("", xmpp.SetType, from, server, &Dial{From: source, To: destination})
}

// NewRefResult returns the result answering request with the URI of the created call.
func NewRefResult(request *provider.IQ, uri string) *provider.IQ {
	return request.Result(&Ref{URI: uri})
}

// NewHangup returns a hangup command for the call addressed by callJID.
func NewHangup(from, callJID *jid.JID) *provider.IQ {
	return provider.NewIQ("", xmpp.SetType, from, callJID, &Hangup{})
}
