package file

import (
	"github.com/x-xyz/launchpad/base/ctx"
	"github.com/x-xyz/launchpad/domain"
)

const (
	// MaxImageSize caps uploaded images
	MaxImageSize = 10 << 20

	IpfsScheme = "ipfs://"
)

// Pinned is a file stored on ipfs
type Pinned struct {
	IpfsHash   string `json:"ipfsHash"`
	URI        string `json:"uri"`
	GatewayURL string `json:"gatewayUrl"`
	MimeType   string `json:"mimeType,omitempty"`
}

// Attribute is one trait of an nft metadata document
type Attribute struct {
	TraitType string `json:"trait_type"`
	Value     string `json:"value"`
}

// NFTMetadata is the json document a collection's metadata uri points to
type NFTMetadata struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Image       string      `json:"image,omitempty"`
	Attributes  []Attribute `json:"attributes"`
}

// NewCollectionMetadata builds the metadata of a new collection. The reward token trait is
// only present when a reward token is set.
func NewCollectionMetadata(name, description, image string, soulbound bool, rewardToken domain.Address) *NFTMetadata {
	soulboundValue := "false"
	if soulbound {
		soulboundValue = "true"
	}
	m := &NFTMetadata{
		Name:        name,
		Description: description,
		Image:       image,
		Attributes: []Attribute{
			{TraitType: "Soulbound", Value: soulboundValue},
		},
	}
	if !rewardToken.IsZero() {
		m.Attributes = append(m.Attributes, Attribute{TraitType: "Reward Token", Value: rewardToken.ToLowerStr()})
	}
	return m
}

type Usecase interface {
	// Upload pins any file up to MaxImageSize
	Upload(c ctx.Ctx, data []byte, filename string) (*Pinned, error)
	// UploadImage only accepts image/* content, it is mirrored to cloud storage when configured
	UploadImage(c ctx.Ctx, data []byte, filename string) (*Pinned, error)
	// UploadDataURI takes a base64 data:image/...;base64, uri
	UploadDataURI(c ctx.Ctx, dataURI string, filename string) (*Pinned, error)
	UploadJson(c ctx.Ctx, value interface{}, name string) (*Pinned, error)
}

// ReaderRepo fetches the raw content behind a uri of one scheme
type ReaderRepo interface {
	Get(c ctx.Ctx, uri string) ([]byte, error)
}

// MetadataUseCase resolves token uris to their metadata documents
type MetadataUseCase interface {
	// GetFromUrl accepts ipfs://, http(s):// and data: uris, domain.ErrUnsupportedSchema otherwise
	GetFromUrl(c ctx.Ctx, uri string) (*NFTMetadata, error)
}

// MirrorRepo keeps a copy of uploaded images in a bucket
type MirrorRepo interface {
	Store(c ctx.Ctx, path string, body []byte, contentType string) (string, error)
}
