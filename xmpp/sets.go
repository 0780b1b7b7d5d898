/*
 * Copyright (c) 2018 Miguel Ángel Ortuño.
 * See the LICENSE file for more information.
 */

package xmpp

// Attribute represents an XML node attribute (label=value).
type Attribute struct {
	Label string
	Value string
}

// AttributeSet interface represents a read-only set of XML attributes.
type AttributeSet interface {
	Get(string) string
	Has(string) bool
	All() []Attribute
	Count() int
}

// ElementSet interface represents a read-only set of XML sub elements.
type ElementSet interface {
	// Children returns all elements identified by name.
	Children(name string) []XElement

	// Child returns first element identified by name, or nil.
	Child(name string) XElement

	// ChildrenNamespace returns all elements identified by name and namespace.
	ChildrenNamespace(name, namespace string) []XElement

	// ChildNamespace returns first element identified by name and namespace, or nil.
	ChildNamespace(name, namespace string) XElement

	// All returns every child element in document order.
	All() []XElement

	// Count returns child elements count.
	Count() int
}

// attributeSet keeps insertion order, which is also serialization order.
type attributeSet []Attribute

func (as attributeSet) index(label string) int {
	for i := range as {
		if as[i].Label == label {
			return i
		}
	}
	return -1
}

func (as attributeSet) Get(label string) string {
	if i := as.index(label); i >= 0 {
		return as[i].Value
	}
	return ""
}

func (as attributeSet) Has(label string) bool { return as.index(label) >= 0 }

func (as attributeSet) All() []Attribute { return append([]Attribute(nil), as...) }

func (as attributeSet) Count() int { return len(as) }

func (as *attributeSet) set(label, value string) {
	if i := as.index(label); i >= 0 {
		(*as)[i].Value = value
		return
	}
	*as = append(*as, Attribute{Label: label, Value: value})
}

func (as *attributeSet) remove(label string) {
	if i := as.index(label); i >= 0 {
		*as = append((*as)[:i], (*as)[i+1:]...)
	}
}

type elementMatcher func(XElement) bool

func byName(name string) elementMatcher {
	return func(el XElement) bool { return el.Name() == name }
}

func byNameNamespace(name, namespace string) elementMatcher {
	return func(el XElement) bool { return el.Name() == name && el.Namespace() == namespace }
}

type elementSet []XElement

func (es elementSet) first(m elementMatcher) XElement {
	for _, el := range es {
		if m(el) {
			return el
		}
	}
	return nil
}

func (es elementSet) filter(m elementMatcher) []XElement {
	var ret []XElement
	for _, el := range es {
		if m(el) {
			ret = append(ret, el)
		}
	}
	return ret
}

func (es elementSet) Children(name string) []XElement { return es.filter(byName(name)) }

func (es elementSet) Child(name string) XElement { return es.first(byName(name)) }

func (es elementSet) ChildrenNamespace(name, namespace string) []XElement {
	return es.filter(byNameNamespace(name, namespace))
}

func (es elementSet) ChildNamespace(name, namespace string) XElement {
	return es.first(byNameNamespace(name, namespace))
}

func (es elementSet) All() []XElement { return es }

func (es elementSet) Count() int { return len(es) }

func (es *elementSet) append(elems ...XElement) { *es = append(*es, elems...) }

// removeMatching drops every child satisfying m, keeping document order.
func (es *elementSet) removeMatching(m elementMatcher) {
	kept := (*es)[:0]
	for _, el := range *es {
		if !m(el) {
			kept = append(kept, el)
		}
	}
	*es = kept
}

// deepCopy returns a copy in which every child has been copied as well.
func (es elementSet) deepCopy() elementSet {
	if len(es) == 0 {
		return nil
	}
	ret := make(elementSet, len(es))
	for i, el := range es {
		ret[i] = NewElementFromElement(el)
	}
	return ret
}
