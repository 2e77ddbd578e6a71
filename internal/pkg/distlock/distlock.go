// Package distlock guards operations that must not run twice at the same
// time across panel instances, such as executing a recurring campaign.
package distlock

import (
	"context"
	"database/sql"
	"hash/fnv"
	"time"

	"github.com/redis/go-redis/v9"
)

// DistLock is a non-blocking mutual exclusion handle. A single instance
// serves one acquire/release cycle from one goroutine; callers needing
// concurrency create separate instances for separate keys.
type DistLock interface {
	// Acquire attempts the lock without blocking. True means this instance
	// now holds it.
	Acquire(ctx context.Context) (bool, error)
	// Release gives the lock up, but only if this instance still owns it.
	Release(ctx context.Context) error
}

// NewLock picks the strongest available backend: Redis when a client is
// configured, otherwise a Postgres advisory lock on the same database the
// panel already talks to.
func NewLock(redisClient *redis.Client, db *sql.DB, key string, ttl time.Duration) DistLock {
	if redisClient != nil {
		return NewRedisLock(redisClient, key, ttl)
	}
	return NewPGAdvisoryLock(db, key)
}

// PGAdvisoryLock implements DistLock over pg_try_advisory_lock. Advisory
// locks are session-scoped, so a crashed holder frees the lock as soon as
// its connection drops, much like a Redis TTL expiring.
type PGAdvisoryLock struct {
	db     *sql.DB
	lockID int64
}

// NewPGAdvisoryLock derives a deterministic 64-bit lock id from key, so
// every instance hashing the same campaign key contends on the same lock.
func NewPGAdvisoryLock(db *sql.DB, key string) *PGAdvisoryLock {
	h := fnv.New64a()
	h.Write([]byte(key))
	return &PGAdvisoryLock{
		db:     db,
		lockID: int64(h.Sum64()),
	}
}

// Acquire is non-blocking; pg_try_advisory_lock returns immediately.
func (l *PGAdvisoryLock) Acquire(ctx context.Context) (bool, error) {
	var acquired bool
	err := l.db.QueryRowContext(ctx, "SELECT pg_try_advisory_lock($1)", l.lockID).Scan(&acquired)
	return acquired, err
}

// Release unlocks the advisory lock.
func (l *PGAdvisoryLock) Release(ctx context.Context) error {
	_, err := l.db.ExecContext(ctx, "SELECT pg_advisory_unlock($1)", l.lockID)
	return err
}
