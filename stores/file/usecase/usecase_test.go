package usecase

import (
	"encoding/base64"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/launchpad/base/ctx"
	"github.com/x-xyz/launchpad/domain"
	"github.com/x-xyz/launchpad/domain/file"
	"github.com/x-xyz/launchpad/service/pinata/mocks"
)

// smallest valid png, 1x1 transparent pixel
var pngPixel, _ = base64.StdEncoding.DecodeString(
	"iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAQAAAC1HAwCAAAAC0lEQVR42mNkYAAAAAYAAjCB0C8AAAAASUVORK5CYII=")

type mirrorCall struct {
	path        string
	contentType string
}

type fakeMirror struct {
	calls chan mirrorCall
}

func (f *fakeMirror) Store(_ ctx.Ctx, path string, _ []byte, contentType string) (string, error) {
	f.calls <- mirrorCall{path, contentType}
	return "https://storage.example/" + path, nil
}

type fileSuite struct {
	suite.Suite
	ctx    ctx.Ctx
	pinner *mocks.Service
	mirror *fakeMirror
	im     file.Usecase
}

func TestFileSuite(t *testing.T) {
	suite.Run(t, new(fileSuite))
}

func (s *fileSuite) SetupTest() {
	s.ctx = ctx.Background()
	s.pinner = &mocks.Service{}
	s.mirror = &fakeMirror{calls: make(chan mirrorCall, 4)}
	s.im = New(&Cfg{Pinner: s.pinner, Mirror: s.mirror, Gateway: "https://ipfs.example/ipfs"})
}

func (s *fileSuite) TearDownTest() {
	s.pinner.AssertExpectations(s.T())
}

func (s *fileSuite) TestUploadImage() {
	s.pinner.On("Pin", mock.Anything, mock.Anything, "logo.png").Return("bafyimage", nil).Once()

	pinned, err := s.im.UploadImage(s.ctx, pngPixel, "logo")
	s.Require().NoError(err)
	s.Equal(&file.Pinned{
		IpfsHash:   "bafyimage",
		URI:        "ipfs://bafyimage",
		GatewayURL: "https://ipfs.example/ipfs/bafyimage",
		MimeType:   "image/png",
	}, pinned)

	select {
	case call := <-s.mirror.calls:
		s.Equal(mirrorCall{"images/bafyimage", "image/png"}, call)
	case <-time.After(3 * time.Second):
		s.Fail("image is not mirrored")
	}
}

func (s *fileSuite) TestUploadImageRejectsNonImage() {
	_, err := s.im.UploadImage(s.ctx, []byte(`{"not":"an image"}`), "data.json")
	s.ErrorIs(err, domain.ErrUnsupportedMedia)
}

func (s *fileSuite) TestUploadImageRejectsOversized() {
	data := make([]byte, file.MaxImageSize+1)
	copy(data, pngPixel)
	_, err := s.im.UploadImage(s.ctx, data, "huge.png")
	s.ErrorIs(err, domain.ErrBadParamInput)

	_, err = s.im.UploadImage(s.ctx, nil, "empty.png")
	s.ErrorIs(err, domain.ErrBadParamInput)
}

func (s *fileSuite) TestUploadImagePinFailure() {
	boom := errors.New("boom")
	s.pinner.On("Pin", mock.Anything, mock.Anything, "logo.png").Return("", boom).Once()

	_, err := s.im.UploadImage(s.ctx, pngPixel, "logo.png")
	s.ErrorIs(err, boom)
	s.Empty(s.mirror.calls)
}

func (s *fileSuite) TestUpload() {
	s.pinner.On("Pin", mock.Anything, mock.Anything, "notes.txt").Return("bafytext", nil).Once()

	pinned, err := s.im.Upload(s.ctx, []byte("hello"), "notes.txt")
	s.Require().NoError(err)
	s.Equal("ipfs://bafytext", pinned.URI)
	s.Equal("text/plain; charset=utf-8", pinned.MimeType)
}

func (s *fileSuite) TestUploadDataURI() {
	s.pinner.On("Pin", mock.Anything, mock.Anything, "avatar.png").Return("bafyavatar", nil).Once()

	uri := "data:image/png;base64," + base64.StdEncoding.EncodeToString(pngPixel)
	pinned, err := s.im.UploadDataURI(s.ctx, uri, "avatar")
	s.Require().NoError(err)
	s.Equal("bafyavatar", pinned.IpfsHash)

	_, err = s.im.UploadDataURI(s.ctx, "data:text/plain;base64,aGVsbG8=", "avatar")
	s.ErrorIs(err, domain.ErrBadParamInput)

	_, err = s.im.UploadDataURI(s.ctx, "data:image/png;base64,***", "avatar")
	s.ErrorIs(err, domain.ErrBadParamInput)
}

func (s *fileSuite) TestUploadJson() {
	meta := file.NewCollectionMetadata("Badges", "desc", "ipfs://bafyimage", true, domain.Address(""))
	s.pinner.On("PinJson", mock.Anything, meta).Return("bafymeta", nil).Once()

	pinned, err := s.im.UploadJson(s.ctx, meta, "Badges-metadata.json")
	s.Require().NoError(err)
	s.Equal("ipfs://bafymeta", pinned.URI)
	s.Equal("application/json", pinned.MimeType)
}

func (s *fileSuite) TestParseImgData() {
	data, ext, err := parseImgData("data:image/gif;base64,R0lG")
	s.Require().NoError(err)
	s.Equal("gif", ext)
	s.Equal([]byte("GIF"), data)

	_, _, err = parseImgData("data:image/png")
	s.Error(err)
}
