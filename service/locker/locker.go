package locker

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/x-xyz/launchpad/base/backoff"
	"github.com/x-xyz/launchpad/base/ctx"
	"github.com/x-xyz/launchpad/base/log"
	"github.com/x-xyz/launchpad/domain"
	"github.com/x-xyz/launchpad/service/redis"
)

const (
	defaultTTL  = 30 * time.Second
	defaultWait = 5 * time.Second
)

// Unlock releases the locks taken by one Lock call
type Unlock func()

// Locker serializes writers of the same ledger entries across api instances
type Locker interface {
	// Lock acquires every key or none. Keys are taken in sorted order so two callers
	// locking overlapping sets cannot deadlock. Returns domain.ErrLockTimeout when a key
	// stays busy longer than the wait time.
	Lock(c ctx.Ctx, keys ...string) (Unlock, error)
}

type Cfg struct {
	Redis redis.Service
	// TTL bounds how long a crashed holder keeps a key
	TTL time.Duration
	// Wait bounds how long Lock waits for a busy key
	Wait time.Duration
}

type redisLocker struct {
	redis redis.Service
	ttl   time.Duration
	wait  time.Duration
}

func New(cfg Cfg) Locker {
	l := &redisLocker{redis: cfg.Redis, ttl: cfg.TTL, wait: cfg.Wait}
	if l.ttl == 0 {
		l.ttl = defaultTTL
	}
	if l.wait == 0 {
		l.wait = defaultWait
	}
	return l
}

func sortedKeys(keys []string) []string {
	res := lo.Uniq(keys)
	sort.Strings(res)
	return res
}

func (l *redisLocker) Lock(c ctx.Ctx, keys ...string) (Unlock, error) {
	token := []byte(uuid.NewString())
	held := []string{}
	release := func() {
		for i := len(held) - 1; i >= 0; i-- {
			if _, err := l.redis.DelIfEqual(ctx.Background(), held[i], token); err != nil {
				c.WithFields(log.Fields{"err": err, "key": held[i]}).Warn("release lock failed")
			}
		}
	}

	waitCtx, cancel := ctx.WithTimeout(c, l.wait)
	defer cancel()

	for _, key := range sortedKeys(keys) {
		b := backoff.NewExponential(10*time.Millisecond, 200*time.Millisecond)
		for {
			ok, err := l.redis.SetNX(c, key, token, l.ttl)
			if err != nil {
				release()
				return nil, err
			}
			if ok {
				held = append(held, key)
				break
			}
			if err := b.Backoff(waitCtx); err != nil {
				c.WithFields(log.Fields{"key": key, "attempts": b.Attempts()}).Warn("lock wait timeout")
				release()
				return nil, domain.ErrLockTimeout
			}
		}
	}
	return release, nil
}
