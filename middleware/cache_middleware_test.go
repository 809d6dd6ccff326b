package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/launchpad/base/ctx"
)

type cacheMiddlewareSuite struct {
	suite.Suite

	e     *echo.Echo
	cache *HttpCache
}

func TestCacheMiddlewareSuite(t *testing.T) {
	suite.Run(t, new(cacheMiddlewareSuite))
}

func (s *cacheMiddlewareSuite) SetupTest() {
	s.e = echo.New()
	s.cache = NewHttpCache(nil)
}

func (s *cacheMiddlewareSuite) serve(method, target string, status int, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	c := s.e.NewContext(httptest.NewRequest(method, target, nil), rec)
	c.Set("ctx", ctx.Background())
	h := func(c echo.Context) error {
		return c.String(status, body)
	}
	s.Require().NoError(s.cache.Handle(30*time.Second)(h)(c))
	return rec
}

func (s *cacheMiddlewareSuite) TestCacheHit() {
	rec := s.serve(http.MethodGet, "/tokens?b=2&a=1", http.StatusOK, "Hello, World")
	s.Equal(http.StatusOK, rec.Code)
	s.Equal("Hello, World", rec.Body.String())

	rec = s.serve(http.MethodGet, "/tokens?a=1&b=2", http.StatusOK, "Hello, again")
	s.Equal(http.StatusOK, rec.Code)
	s.Equal("Hello, World", rec.Body.String())
}

func (s *cacheMiddlewareSuite) TestErrorNotCached() {
	rec := s.serve(http.MethodGet, "/collections", http.StatusInternalServerError, "boom")
	s.Equal(http.StatusInternalServerError, rec.Code)

	rec = s.serve(http.MethodGet, "/collections", http.StatusOK, "ok")
	s.Equal("ok", rec.Body.String())
}

func (s *cacheMiddlewareSuite) TestPostBypassed() {
	s.serve(http.MethodPost, "/faucet", http.StatusOK, "first")
	rec := s.serve(http.MethodPost, "/faucet", http.StatusOK, "second")
	s.Equal("second", rec.Body.String())
}
