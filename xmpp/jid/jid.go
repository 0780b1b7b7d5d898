/*
 * Copyright (c) 2018 Miguel Ángel Ortuño.
 * See the LICENSE file for more information.
 */

package jid

import (
	"net"
	"strings"
	"unicode/utf8"

	"github.com/atalk/xmppcore/pool"
	"github.com/pkg/errors"
	"golang.org/x/net/idna"
	"golang.org/x/text/secure/precis"
)

const maxPartLength = 1023

var (
	// ErrEmptyDomain is returned when parsing an address without domain part.
	ErrEmptyDomain = errors.New("jid: empty domain")

	// ErrEmptyResource is returned when an address ends with a resource separator.
	ErrEmptyResource = errors.New("jid: empty resource")
)

var bufPool = pool.NewBufferPool()

// MatchingOptions represents a matching jid mask.
type MatchingOptions int8

const (
	// MatchesNode indicates that left and right operand has same node value.
	MatchesNode = MatchingOptions(1 << iota)

	// MatchesDomain indicates that left and right operand has same domain value.
	MatchesDomain

	// MatchesResource indicates that left and right operand has same resource value.
	MatchesResource

	// MatchesBare indicates that left and right operand has same node and domain value.
	MatchesBare = MatchesNode | MatchesDomain

	// MatchesFull indicates that every part of both operands is equal.
	MatchesFull = MatchesBare | MatchesResource
)

// JID represents an XMPP address: an optional node, a domain and an optional resource.
type JID struct {
	node     string
	domain   string
	resource string
}

// New builds an address from its parts.
// Unless skipStringPrep is set every part goes through RFC 7622 preparation and enforcement.
func New(node, domain, resource string, skipStringPrep bool) (*JID, error) {
	if skipStringPrep {
		return &JID{node: node, domain: domain, resource: resource}, nil
	}
	return prepare(node, domain, resource)
}

// NewWithString parses the string representation of an address.
// An empty string yields the empty JID.
func NewWithString(str string, skipStringPrep bool) (*JID, error) {
	if len(str) == 0 {
		return &JID{}, nil
	}
	node, domain, resource, err := split(str)
	if err != nil {
		return nil, err
	}
	return New(node, domain, resource, skipStringPrep)
}

// MustParse parses an address and panics on failure.
func MustParse(str string) *JID {
	j, err := NewWithString(str, false)
	if err != nil {
		panic(err)
	}
	return j
}

// Node returns the local part of the address.
func (j *JID) Node() string { return j.node }

// Domain returns the domain part of the address.
func (j *JID) Domain() string { return j.domain }

// Resource returns the resource part of the address.
func (j *JID) Resource() string { return j.resource }

// ToBareJID returns a copy of the address without resource.
func (j *JID) ToBareJID() *JID {
	return &JID{node: j.node, domain: j.domain}
}

// IsEmpty reports whether this is the empty address.
func (j *JID) IsEmpty() bool { return len(j.domain) == 0 }

// IsServer reports whether the address has no node part.
func (j *JID) IsServer() bool { return len(j.node) == 0 }

// IsBare reports whether the address is node@domain.
func (j *JID) IsBare() bool { return len(j.node) > 0 && len(j.resource) == 0 }

// IsFull reports whether the address carries a resource.
func (j *JID) IsFull() bool { return len(j.resource) > 0 }

// IsFullWithServer reports whether the address is domain/resource.
func (j *JID) IsFullWithServer() bool { return j.IsServer() && j.IsFull() }

// IsFullWithUser reports whether the address is node@domain/resource.
func (j *JID) IsFullWithUser() bool { return !j.IsServer() && j.IsFull() }

// Matches compares the parts of both addresses selected by options.
func (j *JID) Matches(j2 *JID, options MatchingOptions) bool {
	switch {
	case options&MatchesNode != 0 && j.node != j2.node:
		return false
	case options&MatchesDomain != 0 && j.domain != j2.domain:
		return false
	case options&MatchesResource != 0 && j.resource != j2.resource:
		return false
	}
	return true
}

// Equal reports whether both addresses are identical.
// Two nil addresses are equal.
func (j *JID) Equal(j2 *JID) bool {
	if j == nil || j2 == nil {
		return j == j2
	}
	return j.Matches(j2, MatchesFull)
}

// String returns the address string representation.
func (j *JID) String() string {
	buf := bufPool.Get()
	defer bufPool.Put(buf)

	if len(j.node) > 0 {
		buf.WriteString(j.node)
		buf.WriteByte('@')
	}
	buf.WriteString(j.domain)
	if len(j.resource) > 0 {
		buf.WriteByte('/')
		buf.WriteString(j.resource)
	}
	return buf.String()
}

// split breaks str into its parts.
// The resource starts at the first '/', so it may contain '@' characters.
func split(str string) (node, domain, resource string, err error) {
	bare := str
	if i := strings.IndexByte(str, '/'); i >= 0 {
		bare, resource = str[:i], str[i+1:]
		if len(resource) == 0 {
			return "", "", "", ErrEmptyResource
		}
	}
	domain = bare
	if i := strings.IndexByte(bare, '@'); i >= 0 {
		node, domain = bare[:i], bare[i+1:]
	}
	if len(domain) == 0 {
		return "", "", "", ErrEmptyDomain
	}
	return node, domain, resource, nil
}

func prepare(node, domain, resource string) (*JID, error) {
	if !utf8.ValidString(node) || !utf8.ValidString(resource) {
		return nil, errors.New("jid: invalid UTF-8 sequence")
	}
	var err error
	j := &JID{}
	if j.domain, err = prepareDomain(domain); err != nil {
		return nil, err
	}
	if len(node) > 0 {
		if j.node, err = precis.UsernameCaseMapped.String(node); err != nil {
			return nil, errors.Wrap(err, "jid: invalid node")
		}
		if len(j.node) > maxPartLength {
			return nil, errors.New("jid: node must be smaller than 1024 bytes")
		}
		// RFC 7622 3.3.1 characters not excluded by the username profile
		if strings.ContainsAny(j.node, `"&'/:<>@`) {
			return nil, errors.New("jid: node contains forbidden characters")
		}
	}
	if len(resource) > 0 {
		if j.resource, err = precis.OpaqueString.String(resource); err != nil {
			return nil, errors.Wrap(err, "jid: invalid resource")
		}
		if len(j.resource) > maxPartLength {
			return nil, errors.New("jid: resource must be smaller than 1024 bytes")
		}
	}
	return j, nil
}

func prepareDomain(domain string) (string, error) {
	// A-labels are converted into U-labels (RFC 7622 3.2.1)
	d, err := idna.ToUnicode(domain)
	if err != nil {
		return "", errors.Wrap(err, "jid: invalid domain")
	}
	if !utf8.ValidString(d) {
		return "", errors.New("jid: invalid UTF-8 domain")
	}
	if len(d) == 0 || len(d) > maxPartLength {
		return "", errors.New("jid: domain must be between 1 and 1023 bytes")
	}
	if l := len(d); l > 2 && d[0] == '[' && d[l-1] == ']' {
		if ip := net.ParseIP(d[1 : l-1]); ip == nil || ip.To4() != nil {
			return "", errors.New("jid: domain is not a valid IPv6 address")
		}
	}
	return d, nil
}
