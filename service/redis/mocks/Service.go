package mocks

import (
	time "time"

	mock "github.com/stretchr/testify/mock"

	ctx "github.com/x-xyz/launchpad/base/ctx"
)

// Service is a mock type for the redis.Service type
type Service struct {
	mock.Mock
}

func bytesOf(v interface{}) []byte {
	if v == nil {
		return nil
	}
	return v.([]byte)
}

// Get provides a mock function with given fields: context, key
func (_m *Service) Get(context ctx.Ctx, key string) ([]byte, error) {
	ret := _m.Called(context, key)
	return bytesOf(ret.Get(0)), ret.Error(1)
}

// Set provides a mock function with given fields: context, key, val, expire
func (_m *Service) Set(context ctx.Ctx, key string, val []byte, expire time.Duration) error {
	ret := _m.Called(context, key, val, expire)
	return ret.Error(0)
}

// SetNX provides a mock function with given fields: context, key, val, expire
func (_m *Service) SetNX(context ctx.Ctx, key string, val []byte, expire time.Duration) (bool, error) {
	ret := _m.Called(context, key, val, expire)
	return ret.Bool(0), ret.Error(1)
}

// GetDel provides a mock function with given fields: context, key
func (_m *Service) GetDel(context ctx.Ctx, key string) ([]byte, error) {
	ret := _m.Called(context, key)
	return bytesOf(ret.Get(0)), ret.Error(1)
}

// DelIfEqual provides a mock function with given fields: context, key, val
func (_m *Service) DelIfEqual(context ctx.Ctx, key string, val []byte) (bool, error) {
	ret := _m.Called(context, key, val)
	return ret.Bool(0), ret.Error(1)
}

// Del provides a mock function with given fields: context, keys
func (_m *Service) Del(context ctx.Ctx, keys ...string) (int, error) {
	ret := _m.Called(context, keys)
	return ret.Int(0), ret.Error(1)
}

// Expire provides a mock function with given fields: context, key, ttl
func (_m *Service) Expire(context ctx.Ctx, key string, ttl time.Duration) error {
	ret := _m.Called(context, key, ttl)
	return ret.Error(0)
}

// Incr provides a mock function with given fields: context, key
func (_m *Service) Incr(context ctx.Ctx, key string) (int64, error) {
	ret := _m.Called(context, key)
	return ret.Get(0).(int64), ret.Error(1)
}

// Ping provides a mock function with given fields: context
func (_m *Service) Ping(context ctx.Ctx) error {
	ret := _m.Called(context)
	return ret.Error(0)
}

// IncrBy provides a mock function with given fields: context, key, val
func (_m *Service) IncrBy(context ctx.Ctx, key string, val int64) (int64, error) {
	ret := _m.Called(context, key, val)
	return ret.Get(0).(int64), ret.Error(1)
}

// Exists provides a mock function with given fields: context, key
func (_m *Service) Exists(context ctx.Ctx, key string) (bool, error) {
	ret := _m.Called(context, key)
	return ret.Bool(0), ret.Error(1)
}

// TTL provides a mock function with given fields: context, key
func (_m *Service) TTL(context ctx.Ctx, key string) (time.Duration, error) {
	ret := _m.Called(context, key)
	return ret.Get(0).(time.Duration), ret.Error(1)
}
