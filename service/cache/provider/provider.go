package provider

import (
	"errors"
	"time"

	"github.com/x-xyz/launchpad/base/ctx"
)

var (
	ErrNotFound = errors.New("cache: key not found")
)

// Provider stores raw bytes, expiry is handled by the backend
type Provider interface {
	Get(c ctx.Ctx, key string) ([]byte, error)
	Set(c ctx.Ctx, key string, value []byte, ttl time.Duration) error
	Del(c ctx.Ctx, key string) error
}
