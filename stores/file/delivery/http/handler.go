package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/x-xyz/launchpad/base/ctx"
	"github.com/x-xyz/launchpad/base/delivery"
	"github.com/x-xyz/launchpad/domain"
	"github.com/x-xyz/launchpad/domain/file"
	authMiddleware "github.com/x-xyz/launchpad/stores/auth/delivery/http/middleware"
)

type handler struct {
	file file.Usecase
}

func New(e *echo.Echo, file file.Usecase, authMiddleware *authMiddleware.AuthMiddleware) {
	h := &handler{file}

	g := e.Group("/api/ipfs", authMiddleware.Auth())
	g.POST("/upload", h.upload)
	g.POST("/upload-json", h.uploadJson)
}

// upload
//
//	@Summary		Upload image
//	@Description	Pin an image to ipfs, max 10MiB
//	@Tags			ipfs
//	@Accept			mpfd
//	@Produce		json
//	@Security		ApiKeyAuth
//	@Param			file	formData	file	true	"image"
//	@Success		200		{object}	object{data=file.Pinned}
//	@Failure		400
//	@Failure		415
//	@Router			/api/ipfs/upload [post]
func (h *handler) upload(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	data, filename, found, err := delivery.FormFile(c, "file", file.MaxImageSize)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	} else if !found {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrBadParamInput)
	}

	pinned, err := h.file.UploadImage(ctx, data, filename)
	if err != nil {
		delivery.LogFailure(ctx.WithField("err", err), err, "file.UploadImage failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, pinned)
}

// uploadJson
//
//	@Summary	Upload json
//	@Tags		ipfs
//	@Accept		json
//	@Produce	json
//	@Security	ApiKeyAuth
//	@Param		name	query		string	false	"pin name"
//	@Param		body	body		object	true	"any json document"
//	@Success	200		{object}	object{data=file.Pinned}
//	@Router		/api/ipfs/upload-json [post]
func (h *handler) uploadJson(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	var doc map[string]interface{}
	if err := (&echo.DefaultBinder{}).BindBody(c, &doc); err != nil || len(doc) == 0 {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrInvalidJsonFormat)
	}
	name := c.QueryParam("name")
	if name == "" {
		name = "metadata.json"
	}

	pinned, err := h.file.UploadJson(ctx, doc, name)
	if err != nil {
		delivery.LogFailure(ctx.WithField("err", err), err, "file.UploadJson failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, pinned)
}
