package pinata

import (
	"errors"
	"io"

	"github.com/x-xyz/launchpad/base/ctx"
)

var (
	ErrRequestFailed = errors.New("request failed")
)

type PinataMetadata struct {
	Name string `json:"name,omitempty"`
	// can only store string, bool, int
	KeyValues map[string]interface{} `json:"keyvalues,omitempty"`
}

type PinataOptions struct {
	CidVersion CidVersion `json:"cidVersion"`
}

type CidVersion uint8

const (
	CidVersion_0 CidVersion = 0
	CidVersion_1 CidVersion = 1
)

type PinOptions struct {
	Metadata      *PinataMetadata `json:"pinataMetadata"`
	Options       *PinataOptions  `json:"pinataOptions"`
	PinataContent interface{}     `json:"pinataContent"`
}

type Options func(*PinOptions) error

func GetPinOptions(opts ...Options) (*PinOptions, error) {
	res := &PinOptions{}

	for _, opt := range opts {
		if err := opt(res); err != nil {
			return nil, err
		}
	}

	return res, nil
}

func WithMetadata(metadata PinataMetadata) Options {
	return func(options *PinOptions) error {
		options.Metadata = &metadata
		return nil
	}
}

func WithOptions(pinataOptions PinataOptions) Options {
	return func(options *PinOptions) error {
		options.Options = &pinataOptions
		return nil
	}
}

// Service pins content to ipfs and returns its cid
type Service interface {
	Pin(c ctx.Ctx, file io.Reader, filename string, opts ...Options) (string, error)
	PinJson(c ctx.Ctx, value interface{}, opts ...Options) (string, error)
}

// WithName names the pin, it shows up in the pinata dashboard
func WithName(name string) Options {
	return func(options *PinOptions) error {
		if options.Metadata == nil {
			options.Metadata = &PinataMetadata{}
		}
		options.Metadata.Name = name
		return nil
	}
}
