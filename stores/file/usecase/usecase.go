package usecase

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/viney-shih/goroutines"

	"github.com/x-xyz/launchpad/base/ctx"
	"github.com/x-xyz/launchpad/base/log"
	"github.com/x-xyz/launchpad/domain"
	"github.com/x-xyz/launchpad/domain/file"
	"github.com/x-xyz/launchpad/service/pinata"
)

const (
	imgDataHeaderPrefix    = "data:image/"
	imgDataHeaderSuffix    = ";base64,"
	imgDataHeaderMaxLength = 50

	DefaultGateway = "https://gateway.pinata.cloud/ipfs/"
)

type Cfg struct {
	Pinner pinata.Service
	// Mirror is optional
	Mirror  file.MirrorRepo
	Gateway string
}

type impl struct {
	pinner     pinata.Service
	mirror     file.MirrorRepo
	gateway    string
	workerPool *goroutines.Pool
}

func New(cfg *Cfg) file.Usecase {
	gateway := cfg.Gateway
	if gateway == "" {
		gateway = DefaultGateway
	}
	if !strings.HasSuffix(gateway, "/") {
		gateway += "/"
	}
	return &impl{
		pinner:     cfg.Pinner,
		mirror:     cfg.Mirror,
		gateway:    gateway,
		workerPool: goroutines.NewPool(32, goroutines.WithTaskQueueLength(1024), goroutines.WithPreAllocWorkers(8)),
	}
}

func (im *impl) Upload(c ctx.Ctx, data []byte, filename string) (*file.Pinned, error) {
	if len(data) == 0 || len(data) > file.MaxImageSize {
		return nil, domain.ErrBadParamInput
	}
	return im.pin(c, data, filename, mimetype.Detect(data).String())
}

func (im *impl) UploadImage(c ctx.Ctx, data []byte, filename string) (*file.Pinned, error) {
	if len(data) == 0 || len(data) > file.MaxImageSize {
		return nil, domain.ErrBadParamInput
	}
	mime := mimetype.Detect(data)
	if !strings.HasPrefix(mime.String(), "image/") {
		c.WithFields(log.Fields{
			"filename": filename,
			"mime":     mime.String(),
		}).Warn("unsupported image type")
		return nil, domain.ErrUnsupportedMedia
	}
	if path.Ext(filename) == "" {
		filename += mime.Extension()
	}

	pinned, err := im.pin(c, data, filename, mime.String())
	if err != nil {
		return nil, err
	}
	im.scheduleMirror(c, pinned, data)
	return pinned, nil
}

func (im *impl) UploadDataURI(c ctx.Ctx, dataURI string, filename string) (*file.Pinned, error) {
	data, extension, err := parseImgData(dataURI)
	if err != nil {
		c.WithField("err", err).Warn("parseImgData failed")
		return nil, domain.ErrBadParamInput
	}
	if path.Ext(filename) == "" {
		filename = fmt.Sprintf("%s.%s", filename, extension)
	}
	return im.UploadImage(c, data, filename)
}

func (im *impl) UploadJson(c ctx.Ctx, value interface{}, name string) (*file.Pinned, error) {
	hash, err := im.pinner.PinJson(c, value, pinata.WithName(name))
	if err != nil {
		c.WithFields(log.Fields{
			"name": name,
			"err":  err,
		}).Error("pinner.PinJson failed")
		return nil, err
	}
	c.WithField("hash", hash).Info("pinner.PinJson success")
	return im.toPinned(hash, "application/json"), nil
}

func (im *impl) pin(c ctx.Ctx, data []byte, filename, mime string) (*file.Pinned, error) {
	hash, err := im.pinner.Pin(c, bytes.NewReader(data), filename, pinata.WithName(filename))
	if err != nil {
		c.WithFields(log.Fields{
			"filename": filename,
			"err":      err,
		}).Error("pinner.Pin failed")
		return nil, err
	}
	c.WithField("hash", hash).Info("pinner.Pin success")
	return im.toPinned(hash, mime), nil
}

func (im *impl) toPinned(hash, mime string) *file.Pinned {
	return &file.Pinned{
		IpfsHash:   hash,
		URI:        file.IpfsScheme + hash,
		GatewayURL: im.gateway + hash,
		MimeType:   mime,
	}
}

func (im *impl) scheduleMirror(c ctx.Ctx, pinned *file.Pinned, data []byte) {
	if im.mirror == nil {
		return
	}
	bg := ctx.Wrap(c, context.Background())
	err := im.workerPool.ScheduleWithTimeout(3*time.Second, func() {
		p := path.Join("images", pinned.IpfsHash)
		if _, err := im.mirror.Store(bg, p, data, pinned.MimeType); err != nil {
			bg.WithFields(log.Fields{
				"path": p,
				"err":  err,
			}).Error("mirror.Store failed")
		}
	})
	if err != nil {
		c.WithFields(log.Fields{
			"hash": pinned.IpfsHash,
			"err":  err,
		}).Error("failed to ScheduleWithTimeout")
	}
}

func parseImgData(data string) (decoded []byte, extension string, err error) {
	if !strings.HasPrefix(data, imgDataHeaderPrefix) {
		return nil, "", fmt.Errorf("image data has wrong prefix")
	}
	// search header suffix in a limited range
	searchLength := imgDataHeaderMaxLength
	if len(data) < searchLength {
		searchLength = len(data)
	}
	headerSuffixIdx := strings.Index(data[:searchLength], imgDataHeaderSuffix)
	if headerSuffixIdx == -1 {
		return nil, "", fmt.Errorf("can't find image data header suffix")
	}

	extension = data[len(imgDataHeaderPrefix):headerSuffixIdx]
	dataStartIdx := headerSuffixIdx + len(imgDataHeaderSuffix)
	decoded, err = base64.StdEncoding.DecodeString(data[dataStartIdx:])
	if err != nil {
		return nil, "", err
	}
	return decoded, extension, nil
}
