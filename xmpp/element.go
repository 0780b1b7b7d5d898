/*
 * Copyright (c) 2018 Miguel Ángel Ortuño.
 * See the LICENSE file for more information.
 */

package xmpp

import (
	"encoding/xml"
	"io"
)

// Stanza names.
const (
	MessageName  = "message"
	PresenceName = "presence"
	IQName       = "iq"
)

// Well known attribute labels.
const (
	attrNamespace = "xmlns"
	attrID        = "id"
	attrLang      = "xml:lang"
	attrFrom      = "from"
	attrTo        = "to"
	attrType      = "type"
)

// Element represents a generic XML node element.
// Accessors never change name or namespace; setters are meant for builders.
type Element struct {
	name     string
	text     string
	attrs    attributeSet
	elements elementSet
}

// NewElementName creates an XML element with a given name.
func NewElementName(name string) *Element {
	return &Element{name: name}
}

// NewElementNamespace creates an XML element with a given name and namespace.
func NewElementNamespace(name, namespace string) *Element {
	e := &Element{name: name}
	e.attrs.set(attrNamespace, namespace)
	return e
}

// NewElementFromElement returns a deep copy of elem.
func NewElementFromElement(elem XElement) *Element {
	e := &Element{}
	e.copyFrom(elem)
	return e
}

// Name returns XML node name.
func (e *Element) Name() string { return e.name }

// Attributes returns XML node attributes.
func (e *Element) Attributes() AttributeSet { return e.attrs }

// Elements returns XML node child elements.
func (e *Element) Elements() ElementSet { return e.elements }

// Text returns XML node text value.
func (e *Element) Text() string { return e.text }

// Namespace returns 'xmlns' node attribute.
func (e *Element) Namespace() string { return e.attrs.Get(attrNamespace) }

// ID returns 'id' node attribute.
func (e *Element) ID() string { return e.attrs.Get(attrID) }

// Language returns 'xml:lang' node attribute.
func (e *Element) Language() string { return e.attrs.Get(attrLang) }

// From returns 'from' node attribute.
func (e *Element) From() string { return e.attrs.Get(attrFrom) }

// To returns 'to' node attribute.
func (e *Element) To() string { return e.attrs.Get(attrTo) }

// Type returns 'type' node attribute.
func (e *Element) Type() string { return e.attrs.Get(attrType) }

// IsStanza returns true if element is an XMPP stanza.
func (e *Element) IsStanza() bool {
	return e.name == IQName || e.name == PresenceName || e.name == MessageName
}

// IsError returns true if element has a 'type' attribute of value 'error'.
func (e *Element) IsError() bool { return e.Type() == ErrorType }

// Error returns the <error/> child element, or nil.
func (e *Element) Error() XElement { return e.elements.Child("error") }

// SetName sets XML node name.
func (e *Element) SetName(name string) *Element {
	e.name = name
	return e
}

// SetAttribute sets an XML node attribute.
// An empty value removes the attribute.
func (e *Element) SetAttribute(label, value string) *Element {
	if len(value) == 0 {
		e.attrs.remove(label)
	} else {
		e.attrs.set(label, value)
	}
	return e
}

// RemoveAttribute removes an XML node attribute.
func (e *Element) RemoveAttribute(label string) *Element {
	e.attrs.remove(label)
	return e
}

// SetNamespace sets 'xmlns' node attribute.
func (e *Element) SetNamespace(namespace string) *Element {
	return e.SetAttribute(attrNamespace, namespace)
}

// SetID sets 'id' node attribute.
func (e *Element) SetID(identifier string) *Element { return e.SetAttribute(attrID, identifier) }

// SetLanguage sets 'xml:lang' node attribute.
func (e *Element) SetLanguage(language string) *Element { return e.SetAttribute(attrLang, language) }

// SetFrom sets 'from' node attribute.
func (e *Element) SetFrom(from string) *Element { return e.SetAttribute(attrFrom, from) }

// SetTo sets 'to' node attribute.
func (e *Element) SetTo(to string) *Element { return e.SetAttribute(attrTo, to) }

// SetType sets 'type' node attribute.
func (e *Element) SetType(tp string) *Element { return e.SetAttribute(attrType, tp) }

// SetText sets XML node text value.
func (e *Element) SetText(text string) *Element {
	e.text = text
	return e
}

// AppendElement appends a child element.
func (e *Element) AppendElement(element XElement) *Element {
	e.elements.append(element)
	return e
}

// AppendElements appends several child elements.
func (e *Element) AppendElements(elements []XElement) *Element {
	e.elements.append(elements...)
	return e
}

// RemoveElements removes every child element named name.
func (e *Element) RemoveElements(name string) *Element {
	e.elements.removeMatching(byName(name))
	return e
}

// RemoveElementsNamespace removes every child element with a given name and namespace.
func (e *Element) RemoveElementsNamespace(name, namespace string) *Element {
	e.elements.removeMatching(byNameNamespace(name, namespace))
	return e
}

// ClearElements removes all child elements.
func (e *Element) ClearElements() *Element {
	e.elements = nil
	return e
}

// String returns the element XML representation.
func (e *Element) String() string {
	buf := bufPool.Get()
	defer bufPool.Put(buf)

	e.ToXML(buf, true)
	return buf.String()
}

// ToXML writes the element XML representation to w.
// When includeClosing is false the element is left open.
func (e *Element) ToXML(w io.Writer, includeClosing bool) {
	empty := len(e.elements) == 0 && len(e.text) == 0

	writeString(w, "<", e.name)
	for _, attr := range e.attrs {
		writeString(w, " ", attr.Label, `="`)
		_ = xml.EscapeText(w, []byte(attr.Value))
		writeString(w, `"`)
	}
	switch {
	case empty && includeClosing:
		writeString(w, "/>")
		return
	case empty:
		writeString(w, ">")
		return
	}
	writeString(w, ">")
	if len(e.text) > 0 {
		_ = xml.EscapeText(w, []byte(e.text))
	}
	for _, child := range e.elements {
		child.ToXML(w, true)
	}
	if includeClosing {
		writeString(w, "</", e.name, ">")
	}
}

func (e *Element) copyFrom(el XElement) {
	e.name = el.Name()
	e.text = el.Text()
	e.attrs = attributeSet(el.Attributes().All())
	e.elements = elementSet(el.Elements().All()).deepCopy()
}

func writeString(w io.Writer, parts ...string) {
	for _, p := range parts {
		_, _ = io.WriteString(w, p)
	}
}
