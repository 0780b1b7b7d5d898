/*
 * Copyright (c) 2018 Miguel Ángel Ortuño.
 * See the LICENSE file for more information.
 */

package colibri

import (
	"github.com/atalk/xmppcore/xmpp"
)

// StatsElement is the name of the bridge statistics element.
const StatsElement = "stats"

// Stat is a single named statistic.
type Stat struct {
	Name  string
	Value string
}

// Stats represents a <stats/> IQ payload.
type Stats struct {
	Stats []Stat
}

// Name satisfies provider.Payload interface.
func (s *Stats) Name() string { return StatsElement }

// Namespace satisfies provider.Payload interface.
func (s *Stats) Namespace() string { return Namespace }

// Stat returns the value of the named statistic, or an empty string.
func (s *Stats) Stat(name string) string {
	for _, st := range s.Stats {
		if st.Name == name {
			return st.Value
		}
	}
	return ""
}

// AddStat appends a statistic, replacing a previous value with the same name.
func (s *Stats) AddStat(name, value string) {
	for i := range s.Stats {
		if s.Stats[i].Name == name {
			s.Stats[i].Value = value
			return
		}
	}
	s.Stats = append(s.Stats, Stat{Name: name, Value: value})
}

// Element satisfies provider.Payload interface.
func (s *Stats) Element() *xmpp.Element {
	el := xmpp.NewElementNamespace(StatsElement, Namespace)
	for _, st := range s.Stats {
		stEl := xmpp.NewElementName("stat")
		stEl.SetAttribute("name", st.Name)
		stEl.SetAttribute("value", st.Value)
		el.AppendElement(stEl)
	}
	return el
}
