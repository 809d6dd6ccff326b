package usecase

import (
	"encoding/json"
	"net/url"
	"regexp"
	"strings"
	"time"

	bCtx "github.com/x-xyz/launchpad/base/ctx"
	"github.com/x-xyz/launchpad/base/log"
	"github.com/x-xyz/launchpad/domain"
	"github.com/x-xyz/launchpad/domain/file"
	"github.com/x-xyz/launchpad/domain/keys"
	"github.com/x-xyz/launchpad/service/cache"
	compoundcache "github.com/x-xyz/launchpad/service/cache/compoundCache"
	"github.com/x-xyz/launchpad/service/cache/provider/primitive"
	redisCache "github.com/x-xyz/launchpad/service/cache/provider/redis"
	"github.com/x-xyz/launchpad/service/redis"
)

var (
	gatewayPrefixes = []string{
		"https://gateway.pinata.cloud/ipfs/",
		"https://ipfs.io/ipfs/",
		"https://cloudflare-ipfs.com/ipfs/",
	}
	dedicatedPinata = regexp.MustCompile(`^https://[^/]+\.mypinata\.cloud/ipfs/`)
)

type MetadataUseCaseCfg struct {
	HttpReader    file.ReaderRepo
	IpfsReader    file.ReaderRepo
	DataUriReader file.ReaderRepo
	// Cache is optional, see NewMetadataCache
	Cache cache.Service
}

type metadataUseCase struct {
	httpReader    file.ReaderRepo
	ipfsReader    file.ReaderRepo
	dataUriReader file.ReaderRepo
	cache         cache.Service
}

func NewMetadataUseCase(cfg *MetadataUseCaseCfg) file.MetadataUseCase {
	return &metadataUseCase{
		httpReader:    cfg.HttpReader,
		ipfsReader:    cfg.IpfsReader,
		dataUriReader: cfg.DataUriReader,
		cache:         cfg.Cache,
	}
}

// NewMetadataCache keeps resolved documents, content behind an ipfs uri never changes
func NewMetadataCache(redis redis.Service) cache.Service {
	return compoundcache.NewLayered(keys.PfxMetadata,
		compoundcache.Layer{Ttl: 10 * time.Minute, Cache: primitive.NewPrimitive(keys.PfxMetadata, 16)},
		compoundcache.Layer{Ttl: 24 * time.Hour, Cache: redisCache.NewRedis(redis)},
	)
}

func (u *metadataUseCase) GetFromUrl(c bCtx.Ctx, rawUrl string) (*file.NFTMetadata, error) {
	if u.cache == nil {
		return u.fetch(c, rawUrl)
	}
	res := &file.NFTMetadata{}
	if err := u.cache.GetByFunc(c, keys.RedisKey("uri", keys.MD5(rawUrl)), res, func() (interface{}, error) {
		return u.fetch(c, rawUrl)
	}); err != nil {
		return nil, err
	}
	return res, nil
}

func (u *metadataUseCase) fetch(c bCtx.Ctx, rawUrl string) (*file.NFTMetadata, error) {
	data, err := u.get(c, rawUrl)
	if err != nil {
		return nil, err
	}
	if !json.Valid(data) {
		c.WithField("url", rawUrl).Warn("invalid json")
		return nil, domain.ErrInvalidJsonFormat
	}
	res := &file.NFTMetadata{}
	if err := json.Unmarshal(data, res); err != nil {
		c.WithFields(log.Fields{"url": rawUrl, "err": err}).Warn("json.Unmarshal failed")
		return nil, domain.ErrInvalidJsonFormat
	}
	return res, nil
}

func (u *metadataUseCase) get(c bCtx.Ctx, rawUrl string) ([]byte, error) {
	pUrl, err := url.Parse(rawUrl)
	if err != nil {
		c.WithFields(log.Fields{"url": rawUrl, "err": err}).Warn("failed to parse url")
		return nil, domain.ErrBadParamInput
	}

	var data []byte
	switch pUrl.Scheme {
	case "https", "http":
		data, err = u.httpReader.Get(c, rawUrl)
	case "ipfs":
		data, err = u.ipfsReader.Get(c, rawUrl)
	case "data":
		data, err = u.dataUriReader.Get(c, rawUrl)
	default:
		return nil, domain.ErrUnsupportedSchema
	}
	if err == nil {
		return data, nil
	}

	if ipfsUrl := toIpfsUrl(rawUrl); ipfsUrl != "" {
		c.WithFields(log.Fields{"url": rawUrl, "ipfsUrl": ipfsUrl}).Info("falling back to ipfs")
		return u.get(c, ipfsUrl)
	}
	c.WithFields(log.Fields{"schema": pUrl.Scheme, "url": rawUrl, "err": err}).Error("failed to fetch")
	return nil, err
}

// toIpfsUrl rewrites a known gateway url to ipfs://, empty when url is not on a gateway
func toIpfsUrl(url string) string {
	for _, p := range gatewayPrefixes {
		if strings.HasPrefix(url, p) {
			return file.IpfsScheme + strings.TrimPrefix(url, p)
		}
	}
	if dedicatedPinata.MatchString(url) {
		return dedicatedPinata.ReplaceAllLiteralString(url, file.IpfsScheme)
	}
	return ""
}
