package redis

import (
	"time"

	"github.com/x-xyz/launchpad/base/ctx"
	"github.com/x-xyz/launchpad/service/cache/provider"
	"github.com/x-xyz/launchpad/service/redis"
)

type impl struct {
	redis redis.Service
}

// NewRedis returns nil when redis is not configured, layered caches skip nil providers
func NewRedis(r redis.Service) provider.Provider {
	if r == nil {
		return nil
	}
	return &impl{r}
}

func (im *impl) Get(c ctx.Ctx, key string) ([]byte, error) {
	val, err := im.redis.Get(c, key)
	if err == redis.ErrNotFound {
		return nil, provider.ErrNotFound
	} else if err != nil {
		c.WithField("err", err).WithField("key", key).Error("redis.Get failed")
		return nil, err
	}
	return val, nil
}

func (im *impl) Set(c ctx.Ctx, key string, value []byte, ttl time.Duration) error {
	if err := im.redis.Set(c, key, value, ttl); err != nil {
		c.WithField("err", err).WithField("key", key).Error("redis.Set failed")
		return err
	}
	return nil
}

func (im *impl) Del(c ctx.Ctx, key string) error {
	if _, err := im.redis.Del(c, key); err != nil {
		c.WithField("err", err).WithField("key", key).Error("redis.Del failed")
		return err
	}
	return nil
}
