/*
 * Copyright (c) 2018 Miguel Ángel Ortuño.
 * See the LICENSE file for more information.
 */

package xmpp

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

const streamName = "stream"

// ParsingMode defines the way in which special parsed element
// should be considered or not according to the reader nature.
type ParsingMode int

const (
	// DefaultMode treats incoming elements as provided from raw byte reader.
	DefaultMode = ParsingMode(iota)

	// SocketStream treats incoming elements as provided from a socket transport.
	// The <stream:stream> opening tag is returned as soon as it's read.
	SocketStream
)

// ErrTooLargeStanza is returned by ParseElement when the size of
// the incoming stanza is too large.
var ErrTooLargeStanza = errors.New("xml: too large stanza")

// ErrStreamClosedByPeer is returned by ParseElement when peer closes the stream.
var ErrStreamClosedByPeer = errors.New("xml: stream closed by peer")

// Parser parses arbitrary XML input and returns one complete top level element per call.
type Parser struct {
	dec           *xml.Decoder
	mode          ParsingMode
	stack         []*Element
	lastOffset    int64
	maxStanzaSize int64
}

// NewParser creates an empty Parser instance.
// A maxStanzaSize of zero disables the size check.
func NewParser(reader io.Reader, mode ParsingMode, maxStanzaSize int) *Parser {
	return &Parser{
		dec:           xml.NewDecoder(reader),
		mode:          mode,
		maxStanzaSize: int64(maxStanzaSize),
	}
}

// ParseElement parses next available XML element from reader.
// A nil element with a nil error is returned for top level
// character data and processing instructions.
func (p *Parser) ParseElement() (XElement, error) {
	for {
		t, err := p.dec.RawToken()
		if err != nil {
			return nil, err
		}
		if p.maxStanzaSize > 0 && p.dec.InputOffset()-p.lastOffset > p.maxStanzaSize {
			return nil, ErrTooLargeStanza
		}
		elem, done, err := p.handleToken(t)
		if err != nil {
			return nil, err
		}
		if done {
			p.lastOffset = p.dec.InputOffset()
			if elem == nil {
				return nil, nil
			}
			return elem, nil
		}
	}
}

// handleToken feeds a single token into the parsing stack.
// done is set once a top level item has been completely read.
func (p *Parser) handleToken(t xml.Token) (elem *Element, done bool, err error) {
	switch tk := t.(type) {
	case xml.ProcInst:
		return nil, true, nil

	case xml.CharData:
		if len(p.stack) == 0 {
			return nil, true, nil
		}
		p.top().text += string(tk)

	case xml.StartElement:
		p.push(tk)
		if p.mode == SocketStream && isStreamName(tk.Name) {
			return p.pop(), true, nil
		}

	case xml.EndElement:
		if p.mode == SocketStream && isStreamName(tk.Name) {
			return nil, false, ErrStreamClosedByPeer
		}
		name := xmlName(tk.Name.Space, tk.Name.Local)
		if len(p.stack) == 0 || p.top().name != name {
			return nil, false, fmt.Errorf("unexpected end element </%s>", name)
		}
		if closed := p.pop(); len(p.stack) == 0 {
			return closed, true, nil
		}
	}
	return nil, false, nil
}

func (p *Parser) top() *Element { return p.stack[len(p.stack)-1] }

func (p *Parser) push(t xml.StartElement) {
	elem := &Element{name: xmlName(t.Name.Space, t.Name.Local)}
	for _, a := range t.Attr {
		elem.attrs.set(xmlName(a.Name.Space, a.Name.Local), a.Value)
	}
	p.stack = append(p.stack, elem)
}

// pop removes the innermost open element and attaches it to its parent.
func (p *Parser) pop() *Element {
	elem := p.top()
	p.stack = p.stack[:len(p.stack)-1]

	// whitespace between child elements is not element text
	if len(elem.elements) > 0 && len(strings.TrimSpace(elem.text)) == 0 {
		elem.text = ""
	}
	if len(p.stack) > 0 {
		p.top().AppendElement(elem)
	}
	return elem
}

func isStreamName(n xml.Name) bool {
	return n.Local == streamName && n.Space == streamName
}

func xmlName(space, local string) string {
	if len(space) > 0 {
		return space + ":" + local
	}
	return local
}
