package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/x-xyz/launchpad/base/ctx"
	"github.com/x-xyz/launchpad/base/delivery"
	"github.com/x-xyz/launchpad/domain"
)

type authHandler struct {
	auth domain.AuthUsecase
}

func New(e *echo.Echo, auth domain.AuthUsecase) {
	handler := &authHandler{
		auth: auth,
	}
	g := e.Group("/auth")
	g.GET("/nonce/:address", handler.nonce)
	g.POST("/login", handler.login)
}

// nonce
//
//	@Summary		Get login message
//	@Description	Issue a one-time nonce and the message the wallet signs with personal_sign
//	@Tags			auth
//	@Produce		json
//	@Param			address	path		string	true	"wallet address"
//	@Success		200		{object}	object{data=domain.LoginNonce}
//	@Failure		400
//	@Router			/auth/nonce/{address} [get]
func (h *authHandler) nonce(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		Address domain.Address `param:"address" validate:"required,address"`
	}

	p := &params{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	nonce, err := h.auth.IssueNonce(ctx, p.Address)
	if err != nil {
		delivery.LogFailure(ctx.WithField("err", err), err, "auth.IssueNonce failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, nonce)
}

// login
//
//	@Summary		Get access token
//	@Description	Exchange a signed login message for an access token
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			params	body		http.login.params	true	"params"
//	@Success		201		{object}	object{data=string}
//	@Failure		400
//	@Failure		401
//	@Router			/auth/login [post]
func (h *authHandler) login(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		Address   domain.Address `json:"address" validate:"required,address" example:"0xbc4ca0eda7647a8ab7c2061c2e118a18a936f13d"`
		Signature string         `json:"signature" validate:"required"`
	}

	p := &params{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	tkn, err := h.auth.Login(ctx, p.Address, p.Signature)
	if err != nil {
		ctx.WithField("err", err).Info("auth.Login failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusCreated, tkn)
}
