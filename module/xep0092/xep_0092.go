/*
 * Copyright (c) 2018 Miguel Ángel Ortuño.
 * See the LICENSE file for more information.
 */

package xep0092

import (
	"context"
	"os/exec"
	"strings"

	"github.com/atalk/xmppcore/log"
	"github.com/atalk/xmppcore/provider"
	"github.com/atalk/xmppcore/stream"
	"github.com/atalk/xmppcore/version"
	"github.com/atalk/xmppcore/xmpp"
)

const versionNamespace = "jabber:iq:version"

// ModuleName represents version module name.
const ModuleName = "version"

var getOSInfo = func(ctx context.Context) string {
	out, _ := exec.CommandContext(ctx, "uname", "-rs").Output()
	return strings.TrimSpace(string(out))
}

// Config represents XMPP Software Version module (XEP-0092) configuration.
type Config struct {
	ShowOS bool `yaml:"show_os"`
}

// SoftwareVersion is the <query xmlns='jabber:iq:version'/> result payload.
type SoftwareVersion struct {
	AppName string
	Version string
	OS      string
}

// Name satisfies provider.Payload interface.
func (sv *SoftwareVersion) Name() string { return "query" }

// Namespace satisfies provider.Payload interface.
func (sv *SoftwareVersion) Namespace() string { return versionNamespace }

// Element satisfies provider.Payload interface.
func (sv *SoftwareVersion) Element() *xmpp.Element {
	q := xmpp.NewElementNamespace("query", versionNamespace)
	q.AppendElement(xmpp.NewElementName("name").SetText(sv.AppName))
	q.AppendElement(xmpp.NewElementName("version").SetText(sv.Version))
	if len(sv.OS) > 0 {
		q.AppendElement(xmpp.NewElementName("os").SetText(sv.OS))
	}
	return q
}

// Version answers software version requests.
type Version struct {
	cfg    Config
	stm    stream.Stream
	result SoftwareVersion
}

// New returns a version IQ handler module.
func New(cfg Config, stm stream.Stream) *Version {
	return &Version{
		cfg: cfg,
		stm: stm,
		result: SoftwareVersion{
			AppName: version.ApplicationName,
			Version: version.ApplicationVersion.String(),
		},
	}
}

// Name satisfies module.Module interface.
func (x *Version) Name() string { return ModuleName }

// Start satisfies module.Module interface.
// Host OS is resolved once, when enabled.
func (x *Version) Start(ctx context.Context) error {
	if x.cfg.ShowOS {
		x.result.OS = getOSInfo(ctx)
	}
	log.Infof("started version module")
	return nil
}

// Stop satisfies module.Module interface.
func (x *Version) Stop(_ context.Context) error {
	log.Infof("stopped version module")
	return nil
}

// MatchesIQ satisfies module.IQHandler interface.
func (x *Version) MatchesIQ(iq *provider.IQ) bool {
	if !iq.IsGet() && !iq.IsSet() {
		return false
	}
	q := iq.PayloadElement()
	return q != nil && q.Name() == "query" && q.Namespace() == versionNamespace
}

// ProcessIQ satisfies module.IQHandler interface.
func (x *Version) ProcessIQ(_ context.Context, iq *provider.IQ) error {
	switch {
	case iq.IsSet():
		x.stm.SendElement(iq.ErrorStanza(xmpp.ErrForbidden))
	case iq.PayloadElement().Elements().Count() > 0:
		x.stm.SendElement(iq.ErrorStanza(xmpp.ErrBadRequest))
	default:
		res := x.result
		x.stm.SendElement(iq.Result(&res).Stanza())
		log.Infof("sent software version %s to %s", res.Version, iq.FromJID())
	}
	return nil
}
