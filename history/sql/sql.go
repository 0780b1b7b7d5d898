/*
 * Copyright (c) 2018 Miguel Ángel Ortuño.
 * See the LICENSE file for more information.
 */

package sqlhistory

import (
	"context"
	"database/sql"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/atalk/xmppcore/history"
	"github.com/atalk/xmppcore/log"
	"github.com/atalk/xmppcore/xmpp/jid"
	_ "github.com/go-sql-driver/mysql" // MySQL driver
	_ "github.com/lib/pq"              // PostgreSQL driver
	"github.com/pkg/errors"
	"github.com/sony/gobreaker"
	_ "modernc.org/sqlite" // SQLite driver
)

const (
	tableName = "call_history"

	breakerTimeout          = time.Second * 30
	breakerFailureThreshold = 5
)

var columns = []string{"sid", "peer", "peer_bare", "initiator", "direction", "state", "reason", "started_at", "ended_at"}

var schema = `CREATE TABLE IF NOT EXISTS call_history (
	sid VARCHAR(255) PRIMARY KEY,
	peer VARCHAR(1023) NOT NULL,
	peer_bare VARCHAR(1023) NOT NULL,
	initiator VARCHAR(1023) NOT NULL,
	direction VARCHAR(8) NOT NULL,
	state VARCHAR(16) NOT NULL,
	reason VARCHAR(64) NOT NULL,
	started_at BIGINT NOT NULL,
	ended_at BIGINT NOT NULL
)`

type rowScanner interface {
	Scan(...interface{}) error
}

// Repository represents a SQL call history repository.
type Repository struct {
	cfg *history.SQLConfig
	db  *sql.DB
	sb  sq.StatementBuilderType
	cb  *gobreaker.CircuitBreaker
}

// New returns a SQL call history repository. The connection is established on Start.
func New(cfg *history.SQLConfig) *Repository {
	return &Repository{
		cfg: cfg,
		sb:  statementBuilder(cfg.Driver),
		cb:  newCircuitBreaker(cfg.Driver),
	}
}

func newWithDB(db *sql.DB, driver string) *Repository {
	return &Repository{
		cfg: &history.SQLConfig{Driver: driver},
		db:  db,
		sb:  statementBuilder(driver),
		cb:  newCircuitBreaker(driver),
	}
}

// Start opens the database connection and creates the history table if needed.
func (r *Repository) Start(ctx context.Context) error {
	db, err := sql.Open(r.cfg.Driver, r.cfg.DSN())
	if err != nil {
		return errors.Wrapf(err, "sqlhistory: failed to open %s connection", r.cfg.Driver)
	}
	db.SetMaxOpenConns(r.cfg.PoolSize)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return errors.Wrapf(err, "sqlhistory: unable to verify %s connection", r.cfg.Driver)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return errors.Wrap(err, "sqlhistory: failed to create history table")
	}
	r.db = db
	log.Infof("sqlhistory: dialed %s connection", r.cfg.Driver)
	return nil
}

// Stop closes the database connection.
func (r *Repository) Stop(_ context.Context) error {
	if r.db == nil {
		return nil
	}
	if err := r.db.Close(); err != nil {
		return errors.Wrapf(err, "sqlhistory: failed to close %s connection", r.cfg.Driver)
	}
	log.Infof("sqlhistory: closed %s connection", r.cfg.Driver)
	return nil
}

// UpsertSession satisfies history.Repository interface.
func (r *Repository) UpsertSession(ctx context.Context, rec *history.Record) error {
	if rec.Peer == nil {
		return errors.New("sqlhistory: session peer is required")
	}
	q := r.sb.Insert(tableName).
		Columns(columns...).
		Values(
			rec.SID,
			jidString(rec.Peer),
			jidString(rec.Peer.ToBareJID()),
			jidString(rec.Initiator),
			string(rec.Direction),
			string(rec.State),
			rec.Reason,
			toMillis(rec.StartedAt),
			toMillis(rec.EndedAt),
		).
		Suffix(upsertSuffix(r.cfg.Driver))

	return r.execute(func() error {
		_, err := q.RunWith(r.db).ExecContext(ctx)
		return err
	})
}

// FetchSession satisfies history.Repository interface.
func (r *Repository) FetchSession(ctx context.Context, sid string) (*history.Record, error) {
	q := r.sb.Select(columns...).
		From(tableName).
		Where(sq.Eq{"sid": sid})

	var rec *history.Record
	err := r.execute(func() error {
		var err error
		rec, err = scanRecord(q.RunWith(r.db).QueryRowContext(ctx))
		if err == sql.ErrNoRows {
			return nil
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, history.ErrNotFound
	}
	return rec, nil
}

// FetchPeerSessions satisfies history.Repository interface.
func (r *Repository) FetchPeerSessions(ctx context.Context, peer *jid.JID) ([]*history.Record, error) {
	q := r.sb.Select(columns...).
		From(tableName).
		Where(sq.Eq{"peer_bare": peer.ToBareJID().String()}).
		OrderBy("started_at DESC")

	var recs []*history.Record
	err := r.execute(func() error {
		rows, err := q.RunWith(r.db).QueryContext(ctx)
		if err != nil {
			return err
		}
		defer closeRows(rows)

		for rows.Next() {
			rec, err := scanRecord(rows)
			if err != nil {
				return err
			}
			recs = append(recs, rec)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return recs, nil
}

// DeleteSession satisfies history.Repository interface.
func (r *Repository) DeleteSession(ctx context.Context, sid string) error {
	q := r.sb.Delete(tableName).Where(sq.Eq{"sid": sid})
	return r.execute(func() error {
		_, err := q.RunWith(r.db).ExecContext(ctx)
		return err
	})
}

func (r *Repository) execute(fn func() error) error {
	_, err := r.cb.Execute(func() (interface{}, error) {
		return nil, fn()
	})
	return err
}

func scanRecord(scanner rowScanner) (*history.Record, error) {
	var sid, peer, peerBare, initiator, direction, state, reason string
	var startedAt, endedAt int64

	if err := scanner.Scan(&sid, &peer, &peerBare, &initiator, &direction, &state, &reason, &startedAt, &endedAt); err != nil {
		return nil, err
	}
	rec := &history.Record{
		SID:       sid,
		Direction: history.Direction(direction),
		State:     history.State(state),
		Reason:    reason,
		StartedAt: fromMillis(startedAt),
		EndedAt:   fromMillis(endedAt),
	}
	var err error
	if rec.Peer, err = parseJID(peer); err != nil {
		return nil, err
	}
	if rec.Initiator, err = parseJID(initiator); err != nil {
		return nil, err
	}
	return rec, nil
}

func statementBuilder(driver string) sq.StatementBuilderType {
	if driver == history.PostgresDriver {
		return sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	}
	return sq.StatementBuilder.PlaceholderFormat(sq.Question)
}

func upsertSuffix(driver string) string {
	if driver == history.MySQLDriver {
		return "ON DUPLICATE KEY UPDATE peer = VALUES(peer), peer_bare = VALUES(peer_bare), state = VALUES(state), reason = VALUES(reason), ended_at = VALUES(ended_at)"
	}
	return "ON CONFLICT (sid) DO UPDATE SET peer = EXCLUDED.peer, peer_bare = EXCLUDED.peer_bare, state = EXCLUDED.state, reason = EXCLUDED.reason, ended_at = EXCLUDED.ended_at"
}

func newCircuitBreaker(driver string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "history-" + driver,
		Timeout: breakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= breakerFailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warnf("sqlhistory: circuit breaker %s changed from %s to %s", name, from, to)
		},
	})
}

func jidString(j *jid.JID) string {
	if j == nil {
		return ""
	}
	return j.String()
}

func parseJID(s string) (*jid.JID, error) {
	if len(s) == 0 {
		return nil, nil
	}
	return jid.NewWithString(s, true)
}

func toMillis(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UTC().UnixNano() / int64(time.Millisecond)
}

func fromMillis(ms int64) time.Time {
	if ms == 0 {
		return time.Time{}
	}
	return time.Unix(0, ms*int64(time.Millisecond)).UTC()
}

func closeRows(rows *sql.Rows) {
	if err := rows.Close(); err != nil {
		log.Warnf("sqlhistory: failed to close SQL rows: %v", err)
	}
}
