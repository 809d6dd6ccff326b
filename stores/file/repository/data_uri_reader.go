package repository

import (
	"encoding/base64"
	"net/url"
	"strings"

	"golang.org/x/xerrors"

	"github.com/x-xyz/launchpad/base/ctx"
	"github.com/x-xyz/launchpad/domain/file"
)

const dataUriSchema = "data:"

type dataUriReaderRepo struct{}

// NewDataUriReaderRepo decodes inline data:[<mediatype>][;base64],<data> uris
func NewDataUriReaderRepo() file.ReaderRepo {
	return &dataUriReaderRepo{}
}

func (r *dataUriReaderRepo) Get(_ ctx.Ctx, uri string) ([]byte, error) {
	if !strings.HasPrefix(uri, dataUriSchema) {
		return nil, xerrors.Errorf("invalid data uri")
	}
	parts := strings.SplitN(strings.TrimPrefix(uri, dataUriSchema), ",", 2)
	if len(parts) < 2 || len(parts[1]) == 0 {
		return nil, xerrors.Errorf("no data part provided")
	}
	if strings.HasSuffix(parts[0], ";base64") {
		return base64.StdEncoding.DecodeString(parts[1])
	}
	data, err := url.PathUnescape(parts[1])
	if err != nil {
		return nil, err
	}
	return []byte(data), nil
}
