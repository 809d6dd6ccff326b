package compoundcache

import (
	"encoding/json"
	"time"

	"github.com/x-xyz/launchpad/base/ctx"
	"github.com/x-xyz/launchpad/base/log"
	"github.com/x-xyz/launchpad/service/cache"
	"github.com/x-xyz/launchpad/service/cache/provider"
)

// Layer is one level of a layered cache
type Layer struct {
	Ttl   time.Duration
	Cache provider.Provider
}

type impl struct {
	layers []cache.Service
}

// NewLayered stacks providers under one prefix, fastest first. Nil providers are skipped.
func NewLayered(pfx string, layers ...Layer) cache.Service {
	services := make([]cache.Service, 0, len(layers))
	for _, l := range layers {
		if l.Cache == nil {
			continue
		}
		services = append(services, cache.New(cache.ServiceConfig{Ttl: l.Ttl, Pfx: pfx, Cache: l.Cache}))
	}
	return NewCompoundCache(services)
}

func NewCompoundCache(layers []cache.Service) cache.Service {
	return &impl{layers: layers}
}

func (im *impl) GetByFunc(c ctx.Ctx, key string, container interface{}, getter cache.OneTimeGetter) error {
	if err := im.Get(c, key, container); err == nil {
		return nil
	} else if err != cache.ErrNotFound {
		return err
	}

	val, err := getter()
	if err != nil {
		return err
	}
	if err := im.Set(c, key, val); err != nil {
		c.WithFields(log.Fields{"err": err, "key": key}).Warn("Set failed")
	}
	b, err := json.Marshal(val)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, container)
}

// Get returns the first hit and backfills the layers above it
func (im *impl) Get(c ctx.Ctx, key string, container interface{}) error {
	for idx, lyr := range im.layers {
		err := lyr.Get(c, key, container)
		if err == cache.ErrNotFound {
			continue
		} else if err != nil {
			return err
		}
		for _, upper := range im.layers[:idx] {
			if err := upper.Set(c, key, container); err != nil {
				c.WithFields(log.Fields{"err": err, "key": key}).Warn("backfill failed")
			}
		}
		return nil
	}
	return cache.ErrNotFound
}

func (im *impl) Set(c ctx.Ctx, key string, value interface{}) error {
	for _, lyr := range im.layers {
		if err := lyr.Set(c, key, value); err != nil {
			return err
		}
	}
	return nil
}

func (im *impl) Del(c ctx.Ctx, key string) error {
	for _, lyr := range im.layers {
		if err := lyr.Del(c, key); err != nil {
			return err
		}
	}
	return nil
}
