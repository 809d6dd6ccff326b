package ens

import (
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	goens "github.com/wealdtech/go-ens/v3"

	"github.com/x-xyz/launchpad/base/ctx"
	"github.com/x-xyz/launchpad/base/ethereum"
	"github.com/x-xyz/launchpad/base/log"
	"github.com/x-xyz/launchpad/base/ptr"
	"github.com/x-xyz/launchpad/domain"
	"github.com/x-xyz/launchpad/domain/keys"
	"github.com/x-xyz/launchpad/service/cache"
	compoundcache "github.com/x-xyz/launchpad/service/cache/compoundCache"
	"github.com/x-xyz/launchpad/service/cache/provider/primitive"
	redisCache "github.com/x-xyz/launchpad/service/cache/provider/redis"
	"github.com/x-xyz/launchpad/service/redis"
)

const maxInflightCalls = 8

type resolver interface {
	Resolve(name string) (common.Address, error)
	ReverseResolve(address common.Address) (string, error)
}

type registryResolver struct {
	backend bind.ContractBackend
}

func (r *registryResolver) Resolve(name string) (common.Address, error) {
	return goens.Resolve(r.backend, name)
}

func (r *registryResolver) ReverseResolve(address common.Address) (string, error) {
	return goens.ReverseResolve(r.backend, address)
}

type impl struct {
	resolver resolver
	cache    cache.Service
}

// New dials rpc lazily. redis may be nil, lookups are then cached in process only.
func New(rpc string, redis redis.Service) (ENS, error) {
	client, err := ethclient.Dial(rpc)
	if err != nil {
		return nil, err
	}
	backend := ethereum.NewTrottledClient(client, maxInflightCalls)
	return newImpl(&registryResolver{backend}, redis), nil
}

func newImpl(r resolver, redis redis.Service) *impl {
	return &impl{
		resolver: r,
		cache: compoundcache.NewLayered(keys.PfxEns,
			compoundcache.Layer{Ttl: 30 * time.Second, Cache: primitive.NewPrimitive(keys.PfxEns, 64)},
			compoundcache.Layer{Ttl: 24 * time.Hour, Cache: redisCache.NewRedis(redis)},
		),
	}
}

// isMissing reports the errors go-ens returns for names or addresses without a record
func isMissing(err error) bool {
	msg := err.Error()
	return msg == "unregistered name" || msg == "not a resolver" || msg == "no resolver" || strings.HasPrefix(msg, "no address")
}

func (im *impl) Resolve(ctx ctx.Ctx, name string) (domain.Address, error) {
	res := domain.Address("")
	key := keys.RedisKey("resolve", strings.ToLower(name))
	err := im.cache.GetByFunc(ctx, key, &res, func() (interface{}, error) {
		addr, err := im.resolver.Resolve(name)
		if err != nil && isMissing(err) {
			val := domain.Address("")
			return &val, nil
		} else if err != nil {
			ctx.WithFields(log.Fields{
				"err":  err,
				"name": name,
			}).Error("goens.Resolve failed")
			return nil, err
		}
		val := domain.AddressFromCommon(addr)
		return &val, nil
	})
	if err != nil {
		return "", err
	}
	return res, nil
}

func (im *impl) ReverseResolve(ctx ctx.Ctx, address domain.Address) (string, error) {
	res := ""
	key := keys.RedisKey("reverse", address.ToLowerStr())
	err := im.cache.GetByFunc(ctx, key, &res, func() (interface{}, error) {
		name, err := im.resolver.ReverseResolve(address.ToCommon())
		if err != nil && isMissing(err) {
			return ptr.String(""), nil
		} else if err != nil {
			ctx.WithFields(log.Fields{
				"err":     err,
				"address": address,
			}).Error("goens.ReverseResolve failed")
			return nil, err
		}
		return &name, nil
	})
	if err != nil {
		return "", err
	}
	return res, nil
}
