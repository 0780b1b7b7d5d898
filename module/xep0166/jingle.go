/*
 * Copyright (c) 2018 Miguel Ángel Ortuño.
 * See the LICENSE file for more information.
 */

package xep0166

import (
	"context"
	"sync"
	"time"

	"github.com/atalk/xmppcore/event"
	"github.com/atalk/xmppcore/history"
	"github.com/atalk/xmppcore/log"
	"github.com/atalk/xmppcore/provider"
	"github.com/atalk/xmppcore/stream"
	"github.com/atalk/xmppcore/xep/jingle"
	"github.com/atalk/xmppcore/xmpp"
	"github.com/atalk/xmppcore/xmpp/jid"
	"github.com/pkg/errors"
)

// ModuleName represents Jingle module name.
const ModuleName = "jingle"

var (
	// ErrSessionNotFound is returned when referencing an unknown or ended session.
	ErrSessionNotFound = errors.New("xep0166: session not found")

	// ErrOutOfOrder is returned when an action is not allowed in the current session state.
	ErrOutOfOrder = errors.New("xep0166: action out of order")
)

// Config represents Jingle module (XEP-0166) configuration.
type Config struct {
	// MaxSessions limits the number of simultaneous sessions. Zero means no limit.
	MaxSessions int `yaml:"max_sessions"`
}

// Jingle represents a Jingle session manager module.
type Jingle struct {
	cfg    Config
	stm    stream.Stream
	sender iqSender
	d      *event.Dispatcher
	rep    history.Repository

	mu       sync.RWMutex
	sessions map[string]*session

	// held while recording a transition, acquired before mu is released
	notifyMu sync.Mutex
}

// New returns a Jingle IQ handler module.
func New(cfg Config, stm stream.Stream, sender iqSender, d *event.Dispatcher, rep history.Repository) *Jingle {
	return &Jingle{
		cfg:      cfg,
		stm:      stm,
		sender:   sender,
		d:        d,
		rep:      rep,
		sessions: make(map[string]*session),
	}
}

// Name satisfies module.Module interface.
func (x *Jingle) Name() string { return ModuleName }

// Start satisfies module.Module interface.
func (x *Jingle) Start(_ context.Context) error {
	log.Infof("started jingle module")
	return nil
}

// Stop ends every live session with a 'gone' reason.
func (x *Jingle) Stop(ctx context.Context) error {
	x.mu.Lock()
	sessions := x.sessions
	x.sessions = make(map[string]*session)
	snapshots := make([]Session, 0, len(sessions))
	for _, s := range sessions {
		s.State = history.Ended
		snapshots = append(snapshots, s.Session)
	}
	x.notifyMu.Lock()
	x.mu.Unlock()
	defer x.notifyMu.Unlock()

	now := time.Now()
	for i := range snapshots {
		x.notify(ctx, &snapshots[i], jingle.SessionTerminate, string(jingle.Gone), now)
	}
	log.Infof("stopped jingle module (ended sessions: %d)", len(sessions))
	return nil
}

// Session returns a snapshot of the live session identified by sid.
func (x *Jingle) Session(sid string) (Session, bool) {
	x.mu.RLock()
	defer x.mu.RUnlock()
	s := x.sessions[sid]
	if s == nil {
		return Session{}, false
	}
	return s.Session, true
}

// SessionCount returns the number of live sessions.
func (x *Jingle) SessionCount() int {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return len(x.sessions)
}

// MatchesIQ returns whether or not an IQ should be
// processed by the Jingle module.
func (x *Jingle) MatchesIQ(iq *provider.IQ) bool {
	_, ok := iq.Payload.(*jingle.Jingle)
	return ok && iq.IsSet()
}

// ProcessIQ applies a Jingle action to its session.
func (x *Jingle) ProcessIQ(ctx context.Context, iq *provider.IQ) error {
	j := iq.Payload.(*jingle.Jingle)
	switch j.Action {
	case jingle.SessionInitiate:
		x.processInitiate(ctx, iq, j)
	case jingle.SessionAccept:
		x.processAccept(ctx, iq, j)
	case jingle.SessionTerminate:
		x.processTerminate(ctx, iq, j)
	default:
		x.processSessionAction(ctx, iq, j)
	}
	return nil
}

// Initiate sends a session-initiate offer to peer and tracks the new outgoing session.
func (x *Jingle) Initiate(ctx context.Context, peer *jid.JID, contents []*jingle.Content) (string, error) {
	local := x.stm.JID()
	sid := jingle.NewSID()
	iq := jingle.NewSessionInitiate(local, peer, sid, contents)

	s := &session{
		Session: Session{
			SID:       sid,
			Peer:      peer,
			Initiator: local,
			State:     history.Pending,
			StartedAt: time.Now(),
		},
		offer: iq.Payload.(*jingle.Jingle),
	}
	x.mu.Lock()
	x.sessions[sid] = s
	x.mu.Unlock()

	if err := x.sender.Send(iq, func(resp *provider.IQ) { x.handleResponse(resp, sid) }); err != nil {
		x.removeSession(sid)
		return "", err
	}
	x.publishIfCurrent(ctx, s, history.Pending, jingle.SessionInitiate)
	return sid, nil
}

// Accept answers the incoming pending session identified by sid.
func (x *Jingle) Accept(ctx context.Context, sid string, contents []*jingle.Content) error {
	x.mu.Lock()
	s := x.sessions[sid]
	if s == nil {
		x.mu.Unlock()
		return ErrSessionNotFound
	}
	if !s.Incoming || s.State != history.Pending {
		x.mu.Unlock()
		return ErrOutOfOrder
	}
	s.State = history.Active
	offer := s.offer
	x.mu.Unlock()

	iq := jingle.NewSessionAccept(x.stm.JID(), offer, contents)
	if err := x.sender.Send(iq, func(resp *provider.IQ) { x.handleResponse(resp, sid) }); err != nil {
		return err
	}
	x.publishIfCurrent(ctx, s, history.Active, jingle.SessionAccept)
	return nil
}

// Terminate ends the session identified by sid notifying the peer.
func (x *Jingle) Terminate(ctx context.Context, sid string, condition jingle.ReasonCondition, text string) error {
	x.mu.Lock()
	s := x.sessions[sid]
	if s == nil {
		x.mu.Unlock()
		return ErrSessionNotFound
	}
	delete(x.sessions, sid)
	s.State = history.Ended
	peer := s.Peer
	x.publish(ctx, s.Session, jingle.SessionTerminate, string(condition), time.Now())

	iq := jingle.NewSessionTerminate(x.stm.JID(), peer, sid, condition, text)
	return x.sender.Send(iq, func(resp *provider.IQ) {
		if !resp.IsResult() {
			log.Warnf("jingle: session-terminate not acknowledged... sid: %s, type: %s", sid, resp.Type())
		}
	})
}

func (x *Jingle) processInitiate(ctx context.Context, iq *provider.IQ, j *jingle.Jingle) {
	initiator := j.Initiator
	if initiator == nil {
		initiator = iq.FromJID()
		j.Initiator = initiator
	}
	s := &session{
		Session: Session{
			SID:       j.SID,
			Peer:      iq.FromJID(),
			Initiator: initiator,
			Incoming:  true,
			State:     history.Pending,
			StartedAt: time.Now(),
		},
		offer: j,
	}
	x.mu.Lock()
	if _, ok := x.sessions[j.SID]; ok {
		x.mu.Unlock()
		x.stm.SendElement(iq.ErrorStanza(xmpp.ErrConflict))
		return
	}
	if x.cfg.MaxSessions > 0 && len(x.sessions) >= x.cfg.MaxSessions {
		x.mu.Unlock()
		x.stm.SendElement(iq.ResultIQ())

		// never tracked, so nothing else can touch s
		log.Infof("jingle: rejecting session as busy... sid: %s", j.SID)
		s.State = history.Ended
		_ = x.sender.Send(jingle.NewBusy(x.stm.JID(), s.Peer, j.SID), func(*provider.IQ) {})
		x.notify(ctx, &s.Session, jingle.SessionInitiate, string(jingle.Busy), time.Now())
		return
	}
	x.sessions[j.SID] = s
	x.publish(ctx, s.Session, jingle.SessionInitiate, "", time.Time{})

	x.stm.SendElement(iq.ResultIQ())
}

func (x *Jingle) processAccept(ctx context.Context, iq *provider.IQ, j *jingle.Jingle) {
	x.mu.Lock()
	s := x.sessions[j.SID]
	if s == nil || !s.matchesPeer(iq.FromJID()) {
		x.mu.Unlock()
		x.sendUnknownSession(iq)
		return
	}
	// only the responder of an outgoing offer may accept it
	if s.Incoming || s.State != history.Pending {
		x.mu.Unlock()
		x.stm.SendElement(iq.ErrorStanza(xmpp.ErrUnexpectedRequest, jingle.OutOfOrderError()))
		return
	}
	s.State = history.Active
	if s.Peer.IsBare() {
		s.Peer = iq.FromJID()
	}
	x.publish(ctx, s.Session, jingle.SessionAccept, "", time.Time{})

	x.stm.SendElement(iq.ResultIQ())
}

func (x *Jingle) processTerminate(ctx context.Context, iq *provider.IQ, j *jingle.Jingle) {
	x.mu.Lock()
	s := x.sessions[j.SID]
	if s == nil || !s.matchesPeer(iq.FromJID()) {
		x.mu.Unlock()
		x.sendUnknownSession(iq)
		return
	}
	delete(x.sessions, j.SID)
	s.State = history.Ended
	var reason string
	if j.Reason != nil {
		reason = string(j.Reason.Condition)
	}
	x.publish(ctx, s.Session, jingle.SessionTerminate, reason, time.Now())

	x.stm.SendElement(iq.ResultIQ())
}

func (x *Jingle) processSessionAction(ctx context.Context, iq *provider.IQ, j *jingle.Jingle) {
	x.mu.Lock()
	s := x.sessions[j.SID]
	if s == nil || !s.matchesPeer(iq.FromJID()) {
		x.mu.Unlock()
		x.sendUnknownSession(iq)
		return
	}
	x.publish(ctx, s.Session, j.Action, "", time.Time{})

	x.stm.SendElement(iq.ResultIQ())
}

func (x *Jingle) handleResponse(resp *provider.IQ, sid string) {
	if resp.IsResult() {
		return
	}
	reason := string(jingle.Timeout)
	if se := resp.StanzaError(); se != nil {
		reason = se.Condition()
	}
	x.mu.Lock()
	s := x.sessions[sid]
	if s == nil {
		x.mu.Unlock()
		return
	}
	delete(x.sessions, sid)
	s.State = history.Ended
	log.Warnf("jingle: request failed, ending session... sid: %s, reason: %s", sid, reason)
	x.publish(context.Background(), s.Session, jingle.SessionTerminate, reason, time.Now())
}

// publishIfCurrent records s unless another transition replaced or moved it
// past state since the caller released the lock.
func (x *Jingle) publishIfCurrent(ctx context.Context, s *session, state history.State, action jingle.Action) {
	x.mu.Lock()
	if x.sessions[s.SID] != s || s.State != state {
		x.mu.Unlock()
		return
	}
	x.publish(ctx, s.Session, action, "", time.Time{})
}

// publish records a session snapshot taken under x.mu. It must be called
// with x.mu held and releases it.
func (x *Jingle) publish(ctx context.Context, snap Session, action jingle.Action, reason string, endedAt time.Time) {
	x.notifyMu.Lock()
	x.mu.Unlock()
	defer x.notifyMu.Unlock()
	x.notify(ctx, &snap, action, reason, endedAt)
}

func (x *Jingle) removeSession(sid string) {
	x.mu.Lock()
	defer x.mu.Unlock()
	delete(x.sessions, sid)
}

func (x *Jingle) sendUnknownSession(iq *provider.IQ) {
	x.stm.SendElement(iq.ErrorStanza(xmpp.ErrItemNotFound, jingle.UnknownSessionError()))
}

func (x *Jingle) notify(ctx context.Context, s *Session, action jingle.Action, reason string, endedAt time.Time) {
	rec := s.record(reason, endedAt)
	if err := x.rep.UpsertSession(ctx, rec); err != nil {
		log.Errorf("jingle: failed to record session %s: %v", rec.SID, err)
	}
	_ = x.d.Dispatch(event.CallClass, &event.CallEvent{
		SID:      rec.SID,
		Action:   string(action),
		Peer:     rec.Peer,
		Incoming: rec.Direction == history.Incoming,
		State:    string(rec.State),
		Reason:   rec.Reason,
	})
}
