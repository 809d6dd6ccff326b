package repository

import (
	"bytes"
	"io"
	"net/url"
	"time"

	"cloud.google.com/go/storage"

	bCtx "github.com/x-xyz/launchpad/base/ctx"
	"github.com/x-xyz/launchpad/base/log"
	"github.com/x-xyz/launchpad/domain/file"
)

type CloudStorageWriterRepoCfg struct {
	Timeout    time.Duration
	Client     *storage.Client
	BucketName string
	// Url is the public base url of the bucket
	Url string
}

type cloudStorageWriterRepo struct {
	client     *storage.Client
	bucketName string
	ctxTimeout time.Duration
	baseUrl    *url.URL
}

func NewCloudStorageWriterRepo(cfg *CloudStorageWriterRepoCfg) (file.MirrorRepo, error) {
	baseUrl, err := url.Parse(cfg.Url)
	if err != nil {
		return nil, err
	}
	return &cloudStorageWriterRepo{
		client:     cfg.Client,
		bucketName: cfg.BucketName,
		ctxTimeout: cfg.Timeout,
		baseUrl:    baseUrl,
	}, nil
}

func (r *cloudStorageWriterRepo) Store(c bCtx.Ctx, path string, body []byte, contentType string) (string, error) {
	contentPath, err := url.Parse(path)
	if err != nil {
		c.WithFields(log.Fields{
			"path": path,
			"err":  err,
		}).Error("failed to parse path")
		return "", err
	}

	ctx, cancel := bCtx.WithTimeout(c, r.ctxTimeout)
	defer cancel()
	w := r.client.Bucket(r.bucketName).Object(path).NewWriter(ctx)
	if len(contentType) > 0 {
		w.ObjectAttrs.ContentType = contentType
	}
	w.ObjectAttrs.CacheControl = "public, max-age=31536000, immutable"
	if _, err := io.Copy(w, bytes.NewReader(body)); err != nil {
		ctx.WithFields(log.Fields{
			"err":  err,
			"path": path,
		}).Error("failed to copy")
		return "", err
	}
	if err := w.Close(); err != nil {
		ctx.WithFields(log.Fields{
			"err":  err,
			"path": path,
		}).Error("failed to close writer")
		return "", err
	}
	return r.baseUrl.ResolveReference(contentPath).String(), nil
}
