package usecase

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	bCtx "github.com/x-xyz/launchpad/base/ctx"
	"github.com/x-xyz/launchpad/domain"
	"github.com/x-xyz/launchpad/domain/file"
	"github.com/x-xyz/launchpad/domain/file/mocks"
)

const artJson = `{"name":"Art #1","description":"first","image":"ipfs://bafyimage","attributes":[{"trait_type":"Soulbound","value":"false"}]}`

func Test_metadataUseCase_GetFromUrl(t *testing.T) {
	art := &file.NFTMetadata{
		Name:        "Art #1",
		Description: "first",
		Image:       "ipfs://bafyimage",
		Attributes:  []file.Attribute{{TraitType: "Soulbound", Value: "false"}},
	}
	type call struct {
		reader string
		url    string
		body   string
		err    error
	}
	tests := []struct {
		name    string
		url     string
		calls   []call
		want    *file.NFTMetadata
		wantErr error
	}{
		{
			name:    "unsupported schema",
			url:     "ftp://host/meta.json",
			wantErr: domain.ErrUnsupportedSchema,
		},
		{
			name:  "ipfs",
			url:   "ipfs://bafymeta/1",
			calls: []call{{reader: "ipfs", url: "ipfs://bafymeta/1", body: artJson}},
			want:  art,
		},
		{
			name:  "https",
			url:   "https://example.com/1.json",
			calls: []call{{reader: "http", url: "https://example.com/1.json", body: artJson}},
			want:  art,
		},
		{
			name:  "data uri",
			url:   "data:application/json,{}",
			calls: []call{{reader: "data", url: "data:application/json,{}", body: artJson}},
			want:  art,
		},
		{
			name: "gateway falls back to ipfs",
			url:  "https://gateway.pinata.cloud/ipfs/bafymeta/1",
			calls: []call{
				{reader: "http", url: "https://gateway.pinata.cloud/ipfs/bafymeta/1", err: errors.New("status 429")},
				{reader: "ipfs", url: "ipfs://bafymeta/1", body: artJson},
			},
			want: art,
		},
		{
			name: "dedicated pinata gateway falls back to ipfs",
			url:  "https://launchpad.mypinata.cloud/ipfs/bafymeta",
			calls: []call{
				{reader: "http", url: "https://launchpad.mypinata.cloud/ipfs/bafymeta", err: errors.New("timeout")},
				{reader: "ipfs", url: "ipfs://bafymeta", body: artJson},
			},
			want: art,
		},
		{
			name:    "invalid json",
			url:     "ipfs://bafybroken",
			calls:   []call{{reader: "ipfs", url: "ipfs://bafybroken", body: "{"}},
			wantErr: domain.ErrInvalidJsonFormat,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			readers := map[string]*mocks.ReaderRepo{"http": {}, "ipfs": {}, "data": {}}
			for _, c := range tt.calls {
				var body interface{}
				if c.err == nil {
					body = []byte(c.body)
				}
				readers[c.reader].On("Get", mock.Anything, c.url).Return(body, c.err).Once()
			}
			u := NewMetadataUseCase(&MetadataUseCaseCfg{
				HttpReader:    readers["http"],
				IpfsReader:    readers["ipfs"],
				DataUriReader: readers["data"],
			})

			got, err := u.GetFromUrl(bCtx.Background(), tt.url)
			if tt.wantErr != nil {
				req.ErrorIs(err, tt.wantErr)
			} else {
				req.NoError(err)
				req.Equal(tt.want, got)
			}
			for _, r := range readers {
				r.AssertExpectations(t)
			}
		})
	}
}

func Test_metadataUseCase_Cached(t *testing.T) {
	req := require.New(t)
	ipfs := &mocks.ReaderRepo{}
	ipfs.On("Get", mock.Anything, "ipfs://bafymeta/1").Return([]byte(artJson), nil).Once()
	u := NewMetadataUseCase(&MetadataUseCaseCfg{IpfsReader: ipfs, Cache: NewMetadataCache(nil)})

	for i := 0; i < 3; i++ {
		got, err := u.GetFromUrl(bCtx.Background(), "ipfs://bafymeta/1")
		req.NoError(err)
		req.Equal("Art #1", got.Name)
		req.Equal("ipfs://bafyimage", got.Image)
	}
	ipfs.AssertExpectations(t)
}
