package delivery

import (
	"errors"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/x-xyz/launchpad/domain"
)

// FormFile reads an uploaded file of a multipart form. found is false when the field is absent.
func FormFile(c echo.Context, field string, maxSize int64) (data []byte, filename string, found bool, err error) {
	fh, err := c.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, "", false, nil
	} else if err != nil {
		return nil, "", false, domain.ErrBadParamInput
	}
	if fh.Size > maxSize {
		return nil, "", true, domain.ErrBadParamInput
	}
	f, err := fh.Open()
	if err != nil {
		return nil, "", true, err
	}
	defer f.Close()

	data, err = io.ReadAll(io.LimitReader(f, maxSize+1))
	if err != nil {
		return nil, "", true, err
	}
	if int64(len(data)) > maxSize {
		return nil, "", true, domain.ErrBadParamInput
	}
	return data, fh.Filename, true, nil
}
