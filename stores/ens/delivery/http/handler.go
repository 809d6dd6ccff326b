package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/x-xyz/launchpad/base/ctx"
	"github.com/x-xyz/launchpad/base/delivery"
	"github.com/x-xyz/launchpad/domain"
	"github.com/x-xyz/launchpad/service/ens"
)

type handler struct {
	ens ens.ENS
}

type nameResp struct {
	Name    string         `json:"name"`
	Address domain.Address `json:"address"`
}

func New(e *echo.Echo, ens ens.ENS) {
	h := &handler{ens}

	g := e.Group("/ens")
	g.GET("/resolve/:name", h.resolve)
	g.GET("/reverse/:address", h.reverse)
}

// resolve
//
//	@Summary	Resolve ens name
//	@Tags		ens
//	@Produce	json
//	@Param		name	path		string	true	"ens name"
//	@Success	200		{object}	object{data=http.nameResp}
//	@Router		/ens/resolve/{name} [get]
func (h *handler) resolve(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		Name string `param:"name" validate:"required,fqdn"`
	}

	p := &params{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	address, err := h.ens.Resolve(ctx, p.Name)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, nameResp{Name: p.Name, Address: address})
}

// reverse
//
//	@Summary	Reverse resolve address
//	@Tags		ens
//	@Produce	json
//	@Param		address	path		string	true	"account address"
//	@Success	200		{object}	object{data=http.nameResp}
//	@Router		/ens/reverse/{address} [get]
func (h *handler) reverse(c echo.Context) error {
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

	name, err := h.ens.ReverseResolve(ctx, p.Address)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, nameResp{Name: name, Address: p.Address.ToLower()})
}
