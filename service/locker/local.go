package locker

import (
	"sync"
	"time"

	"github.com/x-xyz/launchpad/base/ctx"
	"github.com/x-xyz/launchpad/domain"
)

type localLocker struct {
	mu   sync.Mutex
	held map[string]chan struct{}
	wait time.Duration
}

// NewLocal returns an in-process Locker, for a single instance deployment and tests
func NewLocal(wait time.Duration) Locker {
	if wait == 0 {
		wait = defaultWait
	}
	return &localLocker{held: map[string]chan struct{}{}, wait: wait}
}

func (l *localLocker) Lock(c ctx.Ctx, keys ...string) (Unlock, error) {
	timeout := time.NewTimer(l.wait)
	defer timeout.Stop()

	taken := []string{}
	release := func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		for _, k := range taken {
			close(l.held[k])
			delete(l.held, k)
		}
	}

	for _, key := range sortedKeys(keys) {
		for {
			l.mu.Lock()
			busy, ok := l.held[key]
			if !ok {
				l.held[key] = make(chan struct{})
				l.mu.Unlock()
				taken = append(taken, key)
				break
			}
			l.mu.Unlock()

			select {
			case <-busy:
			case <-timeout.C:
				release()
				return nil, domain.ErrLockTimeout
			case <-c.Done():
				release()
				return nil, c.Err()
			}
		}
	}
	return release, nil
}
