package pinata

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/x-xyz/launchpad/base/ctx"
	"github.com/x-xyz/launchpad/base/log"
)

const (
	endpoint    = "https://api.pinata.cloud"
	pinPath     = "/pinning/pinFileToIPFS"
	pinJsonPath = "/pinning/pinJSONToIPFS"
)

type Cfg struct {
	// Jwt takes precedence over the api key pair
	Jwt       string
	ApiKey    string
	ApiSecret string
	Endpoint  string
	Timeout   time.Duration
}

type pinataImpl struct {
	jwt       string
	apiKey    string
	apiSecret string
	endpoint  string
	client    *http.Client
}

func New(cfg Cfg) Service {
	im := &pinataImpl{
		jwt:       cfg.Jwt,
		apiKey:    cfg.ApiKey,
		apiSecret: cfg.ApiSecret,
		endpoint:  cfg.Endpoint,
		client:    &http.Client{Timeout: cfg.Timeout},
	}
	if im.endpoint == "" {
		im.endpoint = endpoint
	}
	if cfg.Timeout == 0 {
		im.client.Timeout = time.Minute
	}
	return im
}

func (im *pinataImpl) authorize(req *http.Request) {
	if im.jwt != "" {
		req.Header.Set("Authorization", "Bearer "+im.jwt)
		return
	}
	req.Header.Set("pinata_api_key", im.apiKey)
	req.Header.Set("pinata_secret_api_key", im.apiSecret)
}

func (im *pinataImpl) Pin(c ctx.Ctx, file io.Reader, filename string, optFns ...Options) (string, error) {
	opts, err := GetPinOptions(optFns...)
	if err != nil {
		c.WithField("err", err).Error("GetPinOptions failed")
		return "", err
	}

	var b bytes.Buffer

	w := multipart.NewWriter(&b)
	if fw, err := w.CreateFormFile("file", filename); err != nil {
		c.WithField("err", err).Error("w.CreateFormField failed")
		return "", err
	} else if _, err := io.Copy(fw, file); err != nil {
		c.WithField("err", err).Error("io.Copy failed")
		return "", err
	}

	if opts.Metadata != nil {
		if b, err := json.Marshal(opts.Metadata); err != nil {
			c.WithField("err", err).Error("json.Marshal failed")
			return "", err
		} else if err := w.WriteField("pinataMetadata", string(b)); err != nil {
			return "", err
		}
	}

	if opts.Options != nil {
		if b, err := json.Marshal(opts.Options); err != nil {
			c.WithField("err", err).Error("json.Marshal failed")
			return "", err
		} else if err := w.WriteField("pinataOptions", string(b)); err != nil {
			return "", err
		}
	}

	if err := w.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(c, http.MethodPost, fmt.Sprintf("%s%s", im.endpoint, pinPath), &b)
	if err != nil {
		c.WithField("err", err).Error("http.NewRequest failed")
		return "", err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	return im.do(c, req)
}

func (im *pinataImpl) PinJson(c ctx.Ctx, value interface{}, optFns ...Options) (string, error) {
	opts, err := GetPinOptions(optFns...)
	if err != nil {
		c.WithField("err", err).Error("GetPinOptions failed")
		return "", err
	}

	opts.PinataContent = value

	body, err := json.Marshal(opts)
	if err != nil {
		c.WithField("err", err).Error("json.Marshal failed")
		return "", err
	}

	req, err := http.NewRequestWithContext(c, http.MethodPost, fmt.Sprintf("%s%s", im.endpoint, pinJsonPath), bytes.NewBuffer(body))
	if err != nil {
		c.WithField("err", err).Error("http.NewRequest failed")
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	return im.do(c, req)
}

func (im *pinataImpl) do(c ctx.Ctx, req *http.Request) (string, error) {
	im.authorize(req)

	resp, err := im.client.Do(req)
	if err != nil {
		c.WithField("err", err).Error("client.Do failed")
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		errorBody, _ := io.ReadAll(resp.Body)
		c.WithFields(log.Fields{"status": resp.StatusCode, "errorBody": string(errorBody)}).Error("Request failed")
		return "", ErrRequestFailed
	}

	type payload struct {
		IpfsHash string `json:"IpfsHash"`
	}

	p := &payload{}

	if err := json.NewDecoder(resp.Body).Decode(p); err != nil {
		c.WithField("err", err).Error("json.NewDecoder.Decode failed")
		return "", err
	}

	return p.IpfsHash, nil
}
