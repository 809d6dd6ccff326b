package redis

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/launchpad/base/ctx"
	"github.com/x-xyz/launchpad/service/cache/provider"
	"github.com/x-xyz/launchpad/service/redis"
	mockRedis "github.com/x-xyz/launchpad/service/redis/mocks"
)

type redisSuite struct {
	suite.Suite
	c     ctx.Ctx
	im    provider.Provider
	redis *mockRedis.Service
}

func TestRedisSuite(t *testing.T) {
	suite.Run(t, new(redisSuite))
}

func (s *redisSuite) SetupTest() {
	s.c = ctx.Background()
	s.redis = &mockRedis.Service{}
	s.im = NewRedis(s.redis)
}

func (s *redisSuite) TearDownTest() {
	s.redis.AssertExpectations(s.T())
}

func (s *redisSuite) TestNilRedis() {
	s.Nil(NewRedis(nil))
}

func (s *redisSuite) TestSet() {
	s.redis.On("Set", s.c, "ens:reverse", []byte("v"), time.Hour).Return(nil).Once()
	s.NoError(s.im.Set(s.c, "ens:reverse", []byte("v"), time.Hour))
}

func (s *redisSuite) TestGet() {
	s.redis.On("Get", s.c, "ens:reverse").Return([]byte("v"), nil).Once()
	val, err := s.im.Get(s.c, "ens:reverse")
	s.NoError(err)
	s.Equal([]byte("v"), val)
}

func (s *redisSuite) TestGetMissing() {
	s.redis.On("Get", s.c, "ens:reverse").Return(nil, redis.ErrNotFound).Once()
	_, err := s.im.Get(s.c, "ens:reverse")
	s.Equal(provider.ErrNotFound, err)
}

func (s *redisSuite) TestGetFailure() {
	boom := errors.New("conn refused")
	s.redis.On("Get", s.c, "ens:reverse").Return(nil, boom).Once()
	_, err := s.im.Get(s.c, "ens:reverse")
	s.Equal(boom, err)
}

func (s *redisSuite) TestDel() {
	s.redis.On("Del", s.c, []string{"ens:reverse"}).Return(1, nil).Once()
	s.NoError(s.im.Del(s.c, "ens:reverse"))
}
