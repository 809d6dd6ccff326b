package usecase

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	bCtx "github.com/x-xyz/launchpad/base/ctx"
	"github.com/x-xyz/launchpad/domain"
	"github.com/x-xyz/launchpad/domain/keys"
	"github.com/x-xyz/launchpad/domain/marketplace"
	"github.com/x-xyz/launchpad/service/cache"
	compoundcache "github.com/x-xyz/launchpad/service/cache/compoundCache"
	"github.com/x-xyz/launchpad/service/cache/provider/primitive"
	redisCache "github.com/x-xyz/launchpad/service/cache/provider/redis"
	"github.com/x-xyz/launchpad/service/redis"
)

const activeGenKey = "active:gen"

// NewListingCache keeps listing reads in memory and, when redis is given, in redis.
// The memory layer is not cleared by writes on other replicas, its ttl bounds that staleness.
func NewListingCache(redis redis.Service) cache.Service {
	return compoundcache.NewLayered(keys.PfxListing,
		compoundcache.Layer{Ttl: time.Second, Cache: primitive.NewPrimitive(keys.PfxListing, 32)},
		compoundcache.Layer{Ttl: time.Minute, Cache: redisCache.NewRedis(redis)},
	)
}

// generation names the current set of cached reads, a write drops it so every key built on
// the old generation is missed afterwards, including values filled by reads that raced the write
func (u *uc) generation(c bCtx.Ctx) (string, error) {
	gen := ""
	if err := u.cache.GetByFunc(c, activeGenKey, &gen, func() (interface{}, error) {
		v := uuid.NewString()
		return &v, nil
	}); err != nil {
		return "", err
	}
	return gen, nil
}

func listingCacheKey(gen string, collection domain.Address, tokenId domain.TokenId) string {
	return keys.RedisKey("item", gen, collection.ToLowerStr(), tokenId.String())
}

func (u *uc) activeKey(c bCtx.Ctx, filter marketplace.ListingFilter) (string, error) {
	gen, err := u.generation(c)
	if err != nil {
		return "", err
	}
	b, err := json.Marshal(filter)
	if err != nil {
		return "", err
	}
	return keys.RedisKey("active", gen, keys.MD5(string(b))), nil
}

func (u *uc) evict(c bCtx.Ctx) {
	if u.cache == nil {
		return
	}
	if err := u.cache.Del(c, activeGenKey); err != nil {
		c.WithField("err", err).Warn("evict listings failed")
	}
}
