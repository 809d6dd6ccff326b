package redis

import (
	"fmt"
	"time"

	"github.com/gomodule/redigo/redis"

	"github.com/x-xyz/launchpad/base/ctx"
	"github.com/x-xyz/launchpad/base/log"
	"github.com/x-xyz/launchpad/base/metrics"
	"github.com/x-xyz/launchpad/domain/keys"
)

var (
	// KEYS[1] key, ARGV[1] expected value
	delIfEqualScript = redis.NewScript(1, `
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`)

	// KEYS[1] key
	getDelScript = redis.NewScript(1, `
local v = redis.call("GET", KEYS[1])
if v then
	redis.call("DEL", KEYS[1])
end
return v`)
)

type redImpl struct {
	name  string
	met   metrics.Service
	pools *Pools
}

// Pools represents different pool types
type Pools struct {
	Src *redis.Pool
}

// New redis service
func New(name string, metrics metrics.Service, pools *Pools) Service {
	return &redImpl{
		name:  name,
		met:   metrics,
		pools: pools,
	}
}

func (r *redImpl) getConn(context ctx.Ctx) (redis.Conn, error) {
	defer r.met.BumpTime("getconn.time", "cluster", r.name).End()
	conn, err := r.pools.Src.GetContext(context)
	if err != nil {
		r.met.BumpSum("getConn.err", 1, "cluster", r.name)
		return nil, err
	}
	return conn, nil
}

func (r *redImpl) tags(fn, key string) []string {
	return []string{"func", fn, "cluster", r.name, "prefix", keys.GetPrefix(key)}
}

func (r *redImpl) connDo(context ctx.Ctx, commandName string, args ...interface{}) (interface{}, error) {
	conn, err := r.getConn(context)
	if err != nil {
		return nil, err
	}
	reply, err := conn.Do(commandName, args...)

	// Closing conn explicitly asap keeps the pool small
	if err := conn.Close(); err != nil {
		r.met.BumpSum("conn.Close.err", 1, "cluster", r.name)
	}
	return reply, err
}

func (r *redImpl) runScript(context ctx.Ctx, script *redis.Script, args ...interface{}) (interface{}, error) {
	conn, err := r.getConn(context)
	if err != nil {
		return nil, err
	}
	defer conn.Close()
	return script.Do(conn, args...)
}

func (r *redImpl) Get(context ctx.Ctx, key string) ([]byte, error) {
	tags := r.tags("get", key)
	defer r.met.BumpTime("time", tags...).End()

	val, err := redis.Bytes(r.connDo(context, "GET", key))
	if err == redis.ErrNil {
		return nil, ErrNotFound
	} else if err != nil {
		context.WithFields(log.Fields{"err": err, "key": key}).Error("GET redis failed")
		return nil, err
	}
	r.met.BumpHistogram("bytes", float64(len(val)), tags...)
	return val, nil
}

func (r *redImpl) Set(context ctx.Ctx, key string, val []byte, expire time.Duration) error {
	tags := r.tags("set", key)
	defer r.met.BumpTime("time", tags...).End()
	r.met.BumpHistogram("bytes", float64(len(val)), tags...)

	var err error
	if expire == Forever {
		_, err = r.connDo(context, "SET", key, val)
	} else {
		_, err = r.connDo(context, "SET", key, val, "PX", int64(expire/time.Millisecond))
	}
	if err != nil {
		context.WithFields(log.Fields{"err": err, "key": key}).Error("SET redis failed")
	}
	return err
}

func (r *redImpl) SetNX(context ctx.Ctx, key string, val []byte, expire time.Duration) (bool, error) {
	tags := r.tags("setnx", key)
	defer r.met.BumpTime("time", tags...).End()

	var (
		reply interface{}
		err   error
	)
	if expire == Forever {
		reply, err = r.connDo(context, "SET", key, val, "NX")
	} else {
		reply, err = r.connDo(context, "SET", key, val, "NX", "PX", int64(expire/time.Millisecond))
	}
	if err != nil {
		context.WithFields(log.Fields{"err": err, "key": key}).Error("SET NX redis failed")
		return false, err
	}
	// nil reply means the key exists
	return reply != nil, nil
}

func (r *redImpl) GetDel(context ctx.Ctx, key string) ([]byte, error) {
	defer r.met.BumpTime("time", r.tags("getdel", key)...).End()

	val, err := redis.Bytes(r.runScript(context, getDelScript, key))
	if err == redis.ErrNil {
		return nil, ErrNotFound
	} else if err != nil {
		context.WithFields(log.Fields{"err": err, "key": key}).Error("GETDEL redis failed")
		return nil, err
	}
	return val, nil
}

func (r *redImpl) DelIfEqual(context ctx.Ctx, key string, val []byte) (bool, error) {
	defer r.met.BumpTime("time", r.tags("delifequal", key)...).End()

	n, err := redis.Int(r.runScript(context, delIfEqualScript, key, val))
	if err != nil {
		context.WithFields(log.Fields{"err": err, "key": key}).Error("DelIfEqual redis failed")
		return false, err
	}
	return n == 1, nil
}

func (r *redImpl) Del(context ctx.Ctx, ks ...string) (int, error) {
	if len(ks) == 0 {
		return 0, fmt.Errorf("length of keys is 0")
	}
	defer r.met.BumpTime("time", r.tags("del", ks[0])...).End()

	n, err := redis.Int(r.connDo(context, "DEL", redis.Args{}.AddFlat(ks)...))
	if err != nil {
		context.WithFields(log.Fields{"err": err, "keys": ks}).Error("DEL redis failed")
		return 0, err
	}
	return n, nil
}

func (r *redImpl) Expire(context ctx.Ctx, key string, ttl time.Duration) error {
	defer r.met.BumpTime("time", r.tags("expire", key)...).End()

	if ttl == Forever {
		_, err := r.connDo(context, "PERSIST", key)
		if err != nil {
			context.WithField("err", err).Error("Expire PERSIST redis key failed")
		}
		return err
	}

	n, err := redis.Int(r.connDo(context, "PEXPIRE", key, int64(ttl/time.Millisecond)))
	if err != nil {
		context.WithField("err", err).Error("Expire redis failed")
		return err
	}
	// Return value will be 0 if key does not exist or the timeout could not be set.
	if n != 1 {
		return ErrExpireNotExistOrTimeout
	}
	return nil
}

func (r *redImpl) Incr(context ctx.Ctx, key string) (int64, error) {
	defer r.met.BumpTime("time", r.tags("incr", key)...).End()

	n, err := redis.Int64(r.connDo(context, "INCR", key))
	if err != nil {
		context.WithFields(log.Fields{"err": err, "key": key}).Error("INCR redis failed")
		return 0, err
	}
	return n, nil
}

func (r *redImpl) IncrBy(context ctx.Ctx, key string, val int64) (int64, error) {
	defer r.met.BumpTime("time", r.tags("incrby", key)...).End()

	n, err := redis.Int64(r.connDo(context, "INCRBY", key, val))
	if err != nil {
		context.WithFields(log.Fields{"err": err, "key": key}).Error("INCRBY redis failed")
		return 0, err
	}
	return n, nil
}

func (r *redImpl) Exists(context ctx.Ctx, key string) (bool, error) {
	defer r.met.BumpTime("time", r.tags("exists", key)...).End()

	ok, err := redis.Bool(r.connDo(context, "EXISTS", key))
	if err != nil {
		context.WithFields(log.Fields{"err": err, "key": key}).Error("EXISTS redis failed")
		return false, err
	}
	return ok, nil
}

func (r *redImpl) TTL(context ctx.Ctx, key string) (time.Duration, error) {
	defer r.met.BumpTime("time", r.tags("pttl", key)...).End()

	ms, err := redis.Int64(r.connDo(context, "PTTL", key))
	if err != nil {
		context.WithFields(log.Fields{"err": err, "key": key}).Error("PTTL redis failed")
		return 0, err
	}
	switch ms {
	case -2:
		return 0, ErrNotFound
	case -1:
		return Forever, nil
	}
	return time.Duration(ms) * time.Millisecond, nil
}

func (r *redImpl) Ping(context ctx.Ctx) error {
	_, err := r.connDo(context, "PING")
	return err
}
