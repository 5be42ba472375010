package lock

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
)

const (
	tryAdvisoryLockSQL = `SELECT pg_try_advisory_lock($1)`
	advisoryUnlockSQL  = `SELECT pg_advisory_unlock($1)`
)

// Postgres uses session-level advisory locks. Each lease pins a dedicated
// connection from the pool, since the lock belongs to the session that took it.
type Postgres struct {
	db *sql.DB
}

var _ Locker = (*Postgres)(nil)

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

func (p *Postgres) TryAcquire(ctx context.Context, id int64) (Lease, bool, error) {
	conn, err := p.db.Conn(ctx)
	if err != nil {
		return nil, false, fmt.Errorf("get connection: %w", err)
	}

	var ok bool
	if err := conn.QueryRowContext(ctx, tryAdvisoryLockSQL, id).Scan(&ok); err != nil {
		// The lock may have been taken before the error surfaced.
		discard(conn)
		return nil, false, fmt.Errorf("pg_try_advisory_lock: %w", err)
	}
	if !ok {
		_ = conn.Close()
		return nil, false, nil
	}
	return &pgLease{conn: conn, id: id}, true, nil
}

type pgLease struct {
	conn *sql.Conn
	id   int64
}

func (l *pgLease) Release(ctx context.Context) error {
	var released bool
	if err := l.conn.QueryRowContext(ctx, advisoryUnlockSQL, l.id).Scan(&released); err != nil {
		// The session may still hold the lock; it must not go back to the pool.
		discard(l.conn)
		return fmt.Errorf("pg_advisory_unlock: %w", err)
	}
	_ = l.conn.Close()
	if !released {
		return ErrNotHeld
	}
	return nil
}

// discard closes the session behind conn instead of returning it to the pool,
// which drops every advisory lock it holds.
func discard(conn *sql.Conn) {
	_ = conn.Raw(func(any) error { return driver.ErrBadConn })
	_ = conn.Close()
}
