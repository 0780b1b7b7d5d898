/*
 * Copyright (c) 2018 Miguel Ángel Ortuño.
 * See the LICENSE file for more information.
 */

package provider

import (
	"fmt"
	"sync"

	"github.com/atalk/xmppcore/extension"
	"github.com/atalk/xmppcore/log"
	"github.com/atalk/xmppcore/xmpp"
	"github.com/pkg/errors"
)

// ErrParse is matched by every error returned from a failing provider.
var ErrParse = errors.New("provider: parse error")

// ParseError describes a provider failure for a given element.
type ParseError struct {
	Name      string
	Namespace string
	Err       error
}

// Error satisfies error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("provider: failed to parse <%s xmlns='%s'>: %v", e.Name, e.Namespace, e.Err)
}

// Unwrap returns the underlying provider error.
func (e *ParseError) Unwrap() error { return e.Err }

// Is reports ErrParse as a match.
func (e *ParseError) Is(target error) bool { return target == ErrParse }

// Payload represents the typed child of an IQ.
type Payload interface {
	extension.Extension
}

// IQProvider parses the child element of an IQ into a typed payload.
type IQProvider interface {
	ParseIQ(elem xmpp.XElement) (Payload, error)
}

// IQProviderFunc adapts a function to the IQProvider interface.
type IQProviderFunc func(elem xmpp.XElement) (Payload, error)

// ParseIQ satisfies IQProvider interface.
func (f IQProviderFunc) ParseIQ(elem xmpp.XElement) (Payload, error) { return f(elem) }

// ExtensionProvider parses a stanza extension element.
type ExtensionProvider interface {
	ParseExtension(elem xmpp.XElement) (extension.Extension, error)
}

// ExtensionProviderFunc adapts a function to the ExtensionProvider interface.
type ExtensionProviderFunc func(elem xmpp.XElement) (extension.Extension, error)

// ParseExtension satisfies ExtensionProvider interface.
func (f ExtensionProviderFunc) ParseExtension(elem xmpp.XElement) (extension.Extension, error) {
	return f(elem)
}

type key struct {
	name      string
	namespace string
}

// Manager maps (element, namespace) pairs to IQ and extension providers.
// It's safe for concurrent use.
type Manager struct {
	mu           sync.RWMutex
	iqProviders  map[key]IQProvider
	extProviders map[key]ExtensionProvider
}

// NewManager returns an empty provider manager.
func NewManager() *Manager {
	return &Manager{
		iqProviders:  make(map[key]IQProvider),
		extProviders: make(map[key]ExtensionProvider),
	}
}

// RegisterIQProvider binds an IQ provider to an element name and namespace.
// A previously registered provider for the same pair is replaced.
func (m *Manager) RegisterIQProvider(name, namespace string, p IQProvider) {
	m.mu.Lock()
	m.iqProviders[key{name, namespace}] = p
	m.mu.Unlock()
	log.Debugf("registered iq provider: <%s xmlns='%s'>", name, namespace)
}

// RemoveIQProvider unbinds an IQ provider.
func (m *Manager) RemoveIQProvider(name, namespace string) {
	m.mu.Lock()
	delete(m.iqProviders, key{name, namespace})
	m.mu.Unlock()
}

// IQProvider returns the IQ provider bound to name and namespace, or nil.
func (m *Manager) IQProvider(name, namespace string) IQProvider {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.iqProviders[key{name, namespace}]
}

// RegisterExtensionProvider binds an extension provider to an element name and namespace.
func (m *Manager) RegisterExtensionProvider(name, namespace string, p ExtensionProvider) {
	m.mu.Lock()
	m.extProviders[key{name, namespace}] = p
	m.mu.Unlock()
	log.Debugf("registered extension provider: <%s xmlns='%s'>", name, namespace)
}

// RemoveExtensionProvider unbinds an extension provider.
func (m *Manager) RemoveExtensionProvider(name, namespace string) {
	m.mu.Lock()
	delete(m.extProviders, key{name, namespace})
	m.mu.Unlock()
}

// ExtensionProvider returns the extension provider bound to name and namespace, or nil.
func (m *Manager) ExtensionProvider(name, namespace string) ExtensionProvider {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.extProviders[key{name, namespace}]
}

// ParseExtension parses elem through its registered provider,
// falling back to the default generic provider.
func (m *Manager) ParseExtension(elem xmpp.XElement) (extension.Extension, error) {
	return m.parseExtension(elem, elem.Namespace())
}

// ParseChildExtension parses a child element whose namespace may be inherited from parentNS.
func (m *Manager) ParseChildExtension(elem xmpp.XElement, parentNS string) (extension.Extension, error) {
	ns := elem.Namespace()
	if len(ns) == 0 {
		ns = parentNS
	}
	return m.parseExtension(elem, ns)
}

func (m *Manager) parseExtension(elem xmpp.XElement, namespace string) (extension.Extension, error) {
	p := m.ExtensionProvider(elem.Name(), namespace)
	if p == nil {
		return m.defaultProvider(namespace).ParseExtension(elem)
	}
	ext, err := p.ParseExtension(elem)
	if err != nil {
		return nil, &ParseError{Name: elem.Name(), Namespace: namespace, Err: err}
	}
	return ext, nil
}
