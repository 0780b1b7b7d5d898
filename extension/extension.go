/*
 * Copyright (c) 2018 Miguel Ángel Ortuño.
 * See the LICENSE file for more information.
 */

package extension

import (
	"net/url"
	"strconv"

	"github.com/atalk/xmppcore/xmpp"
)

// Extension represents a stanza extension element.
type Extension interface {
	Name() string
	Namespace() string
	Element() *xmpp.Element
}

// Element is a generic extension element.
// Attributes keep insertion order, which is also the serialization order.
type Element struct {
	name      string
	namespace string
	attrs     []xmpp.Attribute
	text      string
	children  []Extension
}

// New returns an empty extension element.
func New(name, namespace string) *Element {
	return &Element{name: name, namespace: namespace}
}

// Name returns element name.
func (e *Element) Name() string { return e.name }

// Namespace returns element namespace, or an empty string when it inherits the parent one.
func (e *Element) Namespace() string { return e.namespace }

// Attribute returns the value of an attribute, or an empty string if not set.
func (e *Element) Attribute(name string) string {
	for _, a := range e.attrs {
		if a.Label == name {
			return a.Value
		}
	}
	return ""
}

// HasAttribute returns true if the attribute is set.
func (e *Element) HasAttribute(name string) bool {
	for _, a := range e.attrs {
		if a.Label == name {
			return true
		}
	}
	return false
}

// SetAttribute sets an attribute value.
// An empty value removes the attribute.
func (e *Element) SetAttribute(name, value string) {
	if len(value) == 0 {
		e.RemoveAttribute(name)
		return
	}
	for i := range e.attrs {
		if e.attrs[i].Label == name {
			e.attrs[i].Value = value
			return
		}
	}
	e.attrs = append(e.attrs, xmpp.Attribute{Label: name, Value: value})
}

// SetIntAttribute sets an integer attribute value.
func (e *Element) SetIntAttribute(name string, value int) {
	e.SetAttribute(name, strconv.Itoa(value))
}

// SetBoolAttribute sets a boolean attribute value.
func (e *Element) SetBoolAttribute(name string, value bool) {
	e.SetAttribute(name, strconv.FormatBool(value))
}

// RemoveAttribute removes an attribute.
func (e *Element) RemoveAttribute(name string) {
	for i := range e.attrs {
		if e.attrs[i].Label == name {
			e.attrs = append(e.attrs[:i], e.attrs[i+1:]...)
			return
		}
	}
}

// Attributes returns a copy of all element attributes.
func (e *Element) Attributes() []xmpp.Attribute {
	ret := make([]xmpp.Attribute, len(e.attrs))
	copy(ret, e.attrs)
	return ret
}

// AttributeAsInt returns an attribute integer value,
// or defaultValue when the attribute is not set or not a number.
func (e *Element) AttributeAsInt(name string, defaultValue int) int {
	v, err := strconv.Atoi(e.Attribute(name))
	if err != nil {
		return defaultValue
	}
	return v
}

// AttributeAsBool returns an attribute boolean value.
// Both 'true' and '1' are accepted as true.
func (e *Element) AttributeAsBool(name string) bool {
	switch e.Attribute(name) {
	case "true", "1":
		return true
	}
	return false
}

// AttributeAsURI parses an attribute as an URI.
// It returns nil when the attribute is not set.
func (e *Element) AttributeAsURI(name string) (*url.URL, error) {
	v := e.Attribute(name)
	if len(v) == 0 {
		return nil, nil
	}
	return url.Parse(v)
}

// Text returns element character data.
func (e *Element) Text() string { return e.text }

// SetText sets element character data.
func (e *Element) SetText(text string) { e.text = text }

// Children returns all child extensions.
func (e *Element) Children() []Extension { return e.children }

// AddChild appends a child extension.
func (e *Element) AddChild(child Extension) {
	e.children = append(e.children, child)
}

// ChildrenByName returns all child extensions with the given name.
func (e *Element) ChildrenByName(name string) []Extension {
	var ret []Extension
	for _, c := range e.children {
		if c.Name() == name {
			ret = append(ret, c)
		}
	}
	return ret
}

// FirstChild returns the first child extension with the given name, or nil.
func (e *Element) FirstChild(name string) Extension {
	for _, c := range e.children {
		if c.Name() == name {
			return c
		}
	}
	return nil
}

// SetChild replaces every child with the same name as child.
// A nil child is ignored.
func (e *Element) SetChild(child Extension) {
	if child == nil {
		return
	}
	e.RemoveChildren(child.Name())
	e.children = append(e.children, child)
}

// RemoveChildren removes all children with the given name.
func (e *Element) RemoveChildren(name string) {
	filtered := e.children[:0]
	for _, c := range e.children {
		if c.Name() != name {
			filtered = append(filtered, c)
		}
	}
	e.children = filtered
}

// Clone returns a copy of the element carrying attributes, namespace and text.
// Children are not copied.
func (e *Element) Clone() *Element {
	return &Element{
		name:      e.name,
		namespace: e.namespace,
		attrs:     e.Attributes(),
		text:      e.text,
	}
}

// Element returns the XML representation of the extension.
func (e *Element) Element() *xmpp.Element {
	el := xmpp.NewElementName(e.name)
	if len(e.namespace) > 0 {
		el.SetNamespace(e.namespace)
	}
	for _, a := range e.attrs {
		el.SetAttribute(a.Label, a.Value)
	}
	el.SetText(e.text)
	for _, c := range e.children {
		el.AppendElement(c.Element())
	}
	return el
}

// String returns the XML string representation of the extension.
func (e *Element) String() string {
	return e.Element().String()
}

// FromXElement builds a generic extension from an XML element.
// The namespace of child elements is kept only when it differs from its parent one.
func FromXElement(elem xmpp.XElement) *Element {
	return fromXElement(elem, "")
}

func fromXElement(elem xmpp.XElement, parentNS string) *Element {
	ns := elem.Namespace()
	e := New(elem.Name(), ns)
	if ns == parentNS {
		e.namespace = ""
	}
	for _, a := range elem.Attributes().All() {
		if a.Label == "xmlns" {
			continue
		}
		e.SetAttribute(a.Label, a.Value)
	}
	e.text = elem.Text()
	if len(ns) == 0 {
		ns = parentNS
	}
	for _, child := range elem.Elements().All() {
		e.AddChild(fromXElement(child, ns))
	}
	return e
}

// IntAttribute reads an integer attribute from an XML element,
// returning defaultValue when absent or malformed.
func IntAttribute(elem xmpp.XElement, name string, defaultValue int) int {
	v, err := strconv.Atoi(elem.Attributes().Get(name))
	if err != nil {
		return defaultValue
	}
	return v
}

// BoolAttribute reads a boolean attribute from an XML element.
func BoolAttribute(elem xmpp.XElement, name string) bool {
	switch elem.Attributes().Get(name) {
	case "true", "1":
		return true
	}
	return false
}
