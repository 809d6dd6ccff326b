package redis

import (
	"errors"
	"time"

	"github.com/x-xyz/launchpad/base/ctx"
)

const (
	// Forever means the key never expires
	Forever = time.Duration(-1)
)

var (
	// ErrNotFound is returned when the key does not exist
	ErrNotFound = errors.New("redis: key not found")
	// ErrExpireNotExistOrTimeout is returned when the expire of a missing key is set
	ErrExpireNotExistOrTimeout = errors.New("redis: key does not exist or the timeout could not be set")
)

// Service is the redis client used by the service
type Service interface {
	Get(context ctx.Ctx, key string) ([]byte, error)
	Set(context ctx.Ctx, key string, val []byte, expire time.Duration) error
	// SetNX sets the key only if it does not exist, ok is false when the key is already set
	SetNX(context ctx.Ctx, key string, val []byte, expire time.Duration) (ok bool, err error)
	// GetDel reads and removes the key atomically
	GetDel(context ctx.Ctx, key string) ([]byte, error)
	// DelIfEqual removes the key only if it still holds val, used to release locks
	DelIfEqual(context ctx.Ctx, key string, val []byte) (bool, error)
	Del(context ctx.Ctx, keys ...string) (int, error)
	Expire(context ctx.Ctx, key string, ttl time.Duration) error
	Incr(context ctx.Ctx, key string) (int64, error)
	IncrBy(context ctx.Ctx, key string, val int64) (int64, error)
	Exists(context ctx.Ctx, key string) (bool, error)
	// TTL is the remaining time to live, Forever for a key without expire
	TTL(context ctx.Ctx, key string) (time.Duration, error)
	Ping(context ctx.Ctx) error
}
