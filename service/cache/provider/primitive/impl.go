package primitive

import (
	"time"

	"github.com/coocood/freecache"

	"github.com/x-xyz/launchpad/base/ctx"
	"github.com/x-xyz/launchpad/base/log"
	"github.com/x-xyz/launchpad/service/cache/provider"
)

type impl struct {
	name  string
	cache *freecache.Cache
}

// NewPrimitive is an in-process cache of sizeMB megabytes
func NewPrimitive(name string, sizeMB int) provider.Provider {
	return &impl{name: name, cache: freecache.NewCache(sizeMB * 1024 * 1024)}
}

// expireSeconds rounds ttl up to whole seconds, freecache treats 0 as no expiry
func expireSeconds(ttl time.Duration) int {
	if ttl <= 0 {
		return 0
	}
	secs := int(ttl / time.Second)
	if ttl%time.Second != 0 {
		secs++
	}
	return secs
}

func (im *impl) Get(c ctx.Ctx, key string) ([]byte, error) {
	val, err := im.cache.Get([]byte(key))
	if err == freecache.ErrNotFound {
		return nil, provider.ErrNotFound
	} else if err != nil {
		c.WithFields(log.Fields{"err": err, "key": key, "cache": im.name}).Error("freecache.Get failed")
		return nil, err
	}
	return val, nil
}

func (im *impl) Set(c ctx.Ctx, key string, value []byte, ttl time.Duration) error {
	if err := im.cache.Set([]byte(key), value, expireSeconds(ttl)); err != nil {
		c.WithFields(log.Fields{"err": err, "key": key, "cache": im.name, "size": len(value)}).Error("freecache.Set failed")
		return err
	}
	return nil
}

func (im *impl) Del(c ctx.Ctx, key string) error {
	im.cache.Del([]byte(key))
	return nil
}
