package cache

import (
	"encoding/json"
	"time"

	"github.com/x-xyz/launchpad/base/ctx"
	"github.com/x-xyz/launchpad/base/log"
	"github.com/x-xyz/launchpad/domain/keys"
	"github.com/x-xyz/launchpad/service/cache/provider"
)

type impl struct {
	ttl         time.Duration
	pfx         string
	cache       provider.Provider
	serialize   Serializer
	deserialize Deserializer
}

// New defaults to json encoding
func New(config ServiceConfig) Service {
	if config.Serialize == nil {
		config.Serialize = json.Marshal
	}
	if config.Deserialize == nil {
		config.Deserialize = json.Unmarshal
	}
	return &impl{
		ttl:         config.Ttl,
		pfx:         config.Pfx,
		cache:       config.Cache,
		serialize:   config.Serialize,
		deserialize: config.Deserialize,
	}
}

func (im *impl) GetByFunc(c ctx.Ctx, key string, container interface{}, getter OneTimeGetter) error {
	if err := im.Get(c, key, container); err == nil {
		return nil
	} else if err != ErrNotFound {
		return err
	}

	val, err := getter()
	if err != nil {
		return err
	}
	b, err := im.serialize(val)
	if err != nil {
		c.WithFields(log.Fields{"err": err, "key": key}).Error("serialize failed")
		return err
	}
	if err := im.cache.Set(c, keys.RedisKey(im.pfx, key), b, im.ttl); err != nil {
		c.WithFields(log.Fields{"err": err, "key": key}).Warn("cache.Set failed")
	}
	return im.deserialize(b, container)
}

func (im *impl) Get(c ctx.Ctx, key string, container interface{}) error {
	key = keys.RedisKey(im.pfx, key)
	val, err := im.cache.Get(c, key)
	if err == provider.ErrNotFound {
		return ErrNotFound
	} else if err != nil {
		return err
	}
	if err := im.deserialize(val, container); err != nil {
		c.WithFields(log.Fields{"err": err, "key": key}).Error("deserialize failed")
		return err
	}
	return nil
}

func (im *impl) Set(c ctx.Ctx, key string, value interface{}) error {
	b, err := im.serialize(value)
	if err != nil {
		c.WithFields(log.Fields{"err": err, "key": key}).Error("serialize failed")
		return err
	}
	return im.cache.Set(c, keys.RedisKey(im.pfx, key), b, im.ttl)
}

func (im *impl) Del(c ctx.Ctx, key string) error {
	return im.cache.Del(c, keys.RedisKey(im.pfx, key))
}
