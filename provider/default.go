/*
 * Copyright (c) 2018 Miguel Ángel Ortuño.
 * See the LICENSE file for more information.
 */

package provider

import (
	"github.com/atalk/xmppcore/extension"
	"github.com/atalk/xmppcore/xmpp"
)

// DefaultExtensionProvider builds generic extension elements.
// Children bound to a registered provider are parsed through it.
type DefaultExtensionProvider struct {
	m         *Manager
	namespace string
}

// NewDefaultExtensionProvider returns a generic provider resolving children against m.
// namespace is the effective namespace of parsed elements that don't declare one.
func NewDefaultExtensionProvider(m *Manager, namespace string) *DefaultExtensionProvider {
	return &DefaultExtensionProvider{m: m, namespace: namespace}
}

func (m *Manager) defaultProvider(namespace string) *DefaultExtensionProvider {
	return NewDefaultExtensionProvider(m, namespace)
}

// ParseExtension satisfies ExtensionProvider interface.
func (p *DefaultExtensionProvider) ParseExtension(elem xmpp.XElement) (extension.Extension, error) {
	ns := elem.Namespace()
	if len(ns) == 0 {
		ns = p.namespace
	}
	ext := extension.New(elem.Name(), elem.Namespace())
	for _, a := range elem.Attributes().All() {
		if a.Label == "xmlns" {
			continue
		}
		ext.SetAttribute(a.Label, a.Value)
	}
	ext.SetText(elem.Text())
	for _, child := range elem.Elements().All() {
		childExt, err := p.m.ParseChildExtension(child, ns)
		if err != nil {
			return nil, err
		}
		ext.AddChild(childExt)
	}
	return ext, nil
}
