package middleware

import (
	"bufio"
	"bytes"
	"hash/fnv"
	"io"
	"net"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/x-xyz/launchpad/base/ctx"
	"github.com/x-xyz/launchpad/base/log"
	"github.com/x-xyz/launchpad/domain/keys"
	"github.com/x-xyz/launchpad/service/cache"
	compoundcache "github.com/x-xyz/launchpad/service/cache/compoundCache"
	"github.com/x-xyz/launchpad/service/cache/provider"
	"github.com/x-xyz/launchpad/service/cache/provider/primitive"
	redisCache "github.com/x-xyz/launchpad/service/cache/provider/redis"
	"github.com/x-xyz/launchpad/service/redis"
)

const (
	// bodies above this size skip the in-process layer
	maxLocalBodySize = 64 * 1024
	maxLocalTTL      = 10 * time.Second
)

// Response is the cached response data structure.
type Response struct {
	// Value is the cached response value.
	Value []byte

	// Header is the cached response header.
	Header http.Header
}

type bodyDumpResponseWriter struct {
	statusCode int
	io.Writer
	http.ResponseWriter
}

func (w *bodyDumpResponseWriter) WriteHeader(code int) {
	w.statusCode = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *bodyDumpResponseWriter) Write(b []byte) (int, error) {
	if w.statusCode == 0 {
		w.statusCode = http.StatusOK
	}
	return w.Writer.Write(b)
}

func (w *bodyDumpResponseWriter) Flush() {
	w.ResponseWriter.(http.Flusher).Flush()
}

func (w *bodyDumpResponseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	return w.ResponseWriter.(http.Hijacker).Hijack()
}

func sortURLParams(URL *url.URL) {
	params := URL.Query()
	for _, param := range params {
		sort.Strings(param)
	}
	URL.RawQuery = params.Encode()
}

func generateKey(URL string) string {
	hash := fnv.New64a()
	hash.Write([]byte(URL))

	return strconv.FormatUint(hash.Sum64(), 36)
}

// HttpCache caches successful GET responses. Handlers backed by the ledger use short ttls since
// writes do not invalidate it.
type HttpCache struct {
	local provider.Provider
	redis provider.Provider
}

// NewHttpCache keeps responses in process and, when redis is given, in redis
func NewHttpCache(redis redis.Service) *HttpCache {
	return &HttpCache{
		local: primitive.NewPrimitive(keys.PfxHttpCache, 128),
		redis: redisCache.NewRedis(redis),
	}
}

func (h *HttpCache) layers(ttl time.Duration, size int) cache.Service {
	localTTL := maxLocalTTL
	if ttl < localTTL {
		localTTL = ttl
	}
	local := h.local
	if size > maxLocalBodySize {
		local = nil
	}
	return compoundcache.NewLayered(keys.PfxHttpCache,
		compoundcache.Layer{Ttl: localTTL, Cache: local},
		compoundcache.Layer{Ttl: ttl, Cache: h.redis},
	)
}

func (h *HttpCache) Handle(ttl time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Request().Method != http.MethodGet {
				return next(c)
			}

			ctx := c.Get("ctx").(ctx.Ctx)

			sortURLParams(c.Request().URL)
			key := generateKey(c.Request().URL.String())

			response := Response{}
			err := h.layers(ttl, 0).Get(ctx, key, &response)
			if err == nil {
				// cache hit
				for k, v := range response.Header {
					c.Response().Header().Set(k, strings.Join(v, ","))
				}
				c.Response().WriteHeader(http.StatusOK)
				_, err := c.Response().Write(response.Value)
				return err
			} else if err != cache.ErrNotFound {
				ctx.WithFields(log.Fields{
					"err": err,
				}).Error("failed to cacheService.Get")
			}

			// cache miss
			resBody := new(bytes.Buffer)
			mw := io.MultiWriter(c.Response().Writer, resBody)
			writer := &bodyDumpResponseWriter{Writer: mw, ResponseWriter: c.Response().Writer}
			c.Response().Writer = writer
			if err := next(c); err != nil {
				c.Error(err)
			}

			if writer.statusCode >= 400 {
				return nil
			}

			value := resBody.Bytes()
			response = Response{
				Value:  value,
				Header: writer.Header(),
			}
			if err := h.layers(ttl, len(value)).Set(ctx, key, response); err != nil {
				ctx.WithFields(log.Fields{
					"err": err,
				}).Error("failed to cacheService.Set")
			}
			return nil
		}
	}
}
