/*
 * Copyright (c) 2018 Miguel Ángel Ortuño.
 * See the LICENSE file for more information.
 */

package measuredhistory

import (
	"context"
	"testing"

	"github.com/atalk/xmppcore/history"
	"github.com/atalk/xmppcore/xmpp/jid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestMeasuredHistory_UpsertSession(t *testing.T) {
	// given
	repMock := &repositoryMock{}
	repMock.UpsertSessionFunc = func(ctx context.Context, r *history.Record) error {
		return nil
	}
	m := New(repMock)
	before := testutil.ToFloat64(historyOperations.WithLabelValues(upsertOp, "true"))

	// when
	err := m.UpsertSession(context.Background(), &history.Record{SID: "s1"})

	// then
	require.Nil(t, err)
	require.Len(t, repMock.UpsertSessionCalls(), 1)
	require.Equal(t, "s1", repMock.UpsertSessionCalls()[0].R.SID)
	require.Equal(t, before+1, testutil.ToFloat64(historyOperations.WithLabelValues(upsertOp, "true")))
}

func TestMeasuredHistory_FetchSessionNotFound(t *testing.T) {
	// given
	repMock := &repositoryMock{}
	repMock.FetchSessionFunc = func(ctx context.Context, sid string) (*history.Record, error) {
		return nil, history.ErrNotFound
	}
	m := New(repMock)
	before := testutil.ToFloat64(historyOperations.WithLabelValues(fetchOp, "true"))

	// when
	rec, err := m.FetchSession(context.Background(), "s1")

	// then
	require.Nil(t, rec)
	require.Equal(t, history.ErrNotFound, err)
	require.Len(t, repMock.FetchSessionCalls(), 1)
	require.Equal(t, before+1, testutil.ToFloat64(historyOperations.WithLabelValues(fetchOp, "true")))
}

func TestMeasuredHistory_FetchPeerSessions(t *testing.T) {
	// given
	repMock := &repositoryMock{}
	repMock.FetchPeerSessionsFunc = func(ctx context.Context, peer *jid.JID) ([]*history.Record, error) {
		return []*history.Record{{SID: "s1"}}, nil
	}
	m := New(repMock)

	// when
	recs, _ := m.FetchPeerSessions(context.Background(), jid.MustParse("juliet@capulet.lit"))

	// then
	require.Len(t, recs, 1)
	require.Len(t, repMock.FetchPeerSessionsCalls(), 1)
}

func TestMeasuredHistory_DeleteSession(t *testing.T) {
	// given
	repMock := &repositoryMock{}
	repMock.DeleteSessionFunc = func(ctx context.Context, sid string) error {
		return nil
	}
	m := New(repMock)

	// when
	_ = m.DeleteSession(context.Background(), "s1")

	// then
	require.Len(t, repMock.DeleteSessionCalls(), 1)
}

func TestMeasuredHistory_StartStop(t *testing.T) {
	// given
	repMock := &repositoryMock{}
	repMock.StartFunc = func(ctx context.Context) error { return nil }
	repMock.StopFunc = func(ctx context.Context) error { return nil }
	m := New(repMock)

	// when
	_ = m.Start(context.Background())
	_ = m.Stop(context.Background())

	// then
	require.Len(t, repMock.StartCalls(), 1)
	require.Len(t, repMock.StopCalls(), 1)
}
