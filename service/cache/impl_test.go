package cache

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/launchpad/base/ctx"
	"github.com/x-xyz/launchpad/service/cache/provider/primitive"
)

type listing struct {
	Seller string `json:"seller"`
	Price  string `json:"price"`
}

type cacheSuite struct {
	suite.Suite
	c  ctx.Ctx
	im Service
}

func TestCacheSuite(t *testing.T) {
	suite.Run(t, new(cacheSuite))
}

func (s *cacheSuite) SetupTest() {
	s.c = ctx.Background()
	s.im = New(ServiceConfig{
		Ttl:   time.Minute,
		Pfx:   "test",
		Cache: primitive.NewPrimitive("test", 1),
	})
}

func (s *cacheSuite) TestSetGet() {
	s.Require().NoError(s.im.Set(s.c, "k", &listing{"0xa", "1"}))
	got := listing{}
	s.Require().NoError(s.im.Get(s.c, "k", &got))
	s.Equal(listing{"0xa", "1"}, got)
}

func (s *cacheSuite) TestGetMissing() {
	got := listing{}
	s.Equal(ErrNotFound, s.im.Get(s.c, "k", &got))
}

func (s *cacheSuite) TestGetByFuncCallsGetterOnce() {
	calls := 0
	getter := func() (interface{}, error) {
		calls++
		return listing{"0xb", "2"}, nil
	}
	for i := 0; i < 3; i++ {
		got := listing{}
		s.Require().NoError(s.im.GetByFunc(s.c, "k", &got, getter))
		s.Equal(listing{"0xb", "2"}, got)
	}
	s.Equal(1, calls)
}

func (s *cacheSuite) TestGetByFuncErrorNotCached() {
	boom := errors.New("boom")
	got := listing{}
	s.Equal(boom, s.im.GetByFunc(s.c, "k", &got, func() (interface{}, error) { return nil, boom }))
	s.Equal(ErrNotFound, s.im.Get(s.c, "k", &got))
}

func (s *cacheSuite) TestDel() {
	s.Require().NoError(s.im.Set(s.c, "k", "v"))
	s.Require().NoError(s.im.Del(s.c, "k"))
	v := ""
	s.Equal(ErrNotFound, s.im.Get(s.c, "k", &v))
}
