package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/x-xyz/launchpad/base/ctx"
	"github.com/x-xyz/launchpad/base/delivery"
	"github.com/x-xyz/launchpad/base/log"
	"github.com/x-xyz/launchpad/domain"
	"github.com/x-xyz/launchpad/domain/marketplace"
	authMiddleware "github.com/x-xyz/launchpad/stores/auth/delivery/http/middleware"
)

type handler struct {
	marketplace marketplace.UseCase
}

func New(e *echo.Echo, marketplace marketplace.UseCase, authMiddleware *authMiddleware.AuthMiddleware) {
	h := &handler{marketplace}

	g := e.Group("/marketplace")
	g.GET("/listings", h.listings)
	g.GET("/listings/:collection/:tokenId", h.getListing)
	g.POST("/list", h.list, authMiddleware.Auth())
	g.POST("/unlist", h.unlist, authMiddleware.Auth())
	g.POST("/buy", h.buy, authMiddleware.Auth())
}

type listingRef struct {
	Collection domain.Address `json:"contractAddress" validate:"required,address"`
	TokenId    domain.TokenId `json:"tokenId" validate:"required,numeric"`
}

// listings
//
//	@Summary		List active listings
//	@Description	Newest first, prices are in ether
//	@Tags			marketplace
//	@Produce		json
//	@Param			collection	query		string	false	"collection address"
//	@Param			seller		query		string	false	"seller address"
//	@Param			minPrice	query		number	false	"min price"
//	@Param			maxPrice	query		number	false	"max price"
//	@Param			offset		query		int		false	"offset"
//	@Param			limit		query		int		false	"limit, max 100"
//	@Success		200			{object}	object{data=[]marketplace.ListingView}
//	@Router			/marketplace/listings [get]
func (h *handler) listings(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		Collection *domain.Address `query:"collection" validate:"omitempty,address"`
		Seller     *domain.Address `query:"seller" validate:"omitempty,address"`
		MinPrice   *float64        `query:"minPrice" validate:"omitempty,min=0"`
		MaxPrice   *float64        `query:"maxPrice" validate:"omitempty,min=0"`
		Offset     int32           `query:"offset" validate:"min=0"`
		Limit      int32           `query:"limit" validate:"min=0,max=100"`
	}

	p := &params{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	filter := marketplace.ListingFilter{
		MinPrice: p.MinPrice,
		MaxPrice: p.MaxPrice,
		Offset:   p.Offset,
		Limit:    p.Limit,
	}
	if p.Collection != nil {
		filter.Collection = p.Collection.ToLowerPtr()
	}
	if p.Seller != nil {
		filter.Seller = p.Seller.ToLowerPtr()
	}

	views, err := h.marketplace.ActiveListings(ctx, filter)
	if err != nil {
		delivery.LogFailure(ctx.WithFields(log.Fields{"filter": filter, "err": err}), err, "marketplace.ActiveListings failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, views)
}

// getListing
//
//	@Summary	Get the listing of a token
//	@Tags		marketplace
//	@Produce	json
//	@Param		collection	path		string	true	"collection address"
//	@Param		tokenId		path		string	true	"token id"
//	@Success	200			{object}	object{data=marketplace.Listing}
//	@Failure	404
//	@Router		/marketplace/listings/{collection}/{tokenId} [get]
func (h *handler) getListing(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		Collection domain.Address `param:"collection" validate:"required,address"`
		TokenId    domain.TokenId `param:"tokenId" validate:"required,numeric"`
	}

	p := &params{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	listing, err := h.marketplace.GetListing(ctx, p.Collection.ToLower(), p.TokenId)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, listing)
}

// list
//
//	@Summary		List nft
//	@Description	The marketplace must be approved for the token before listing
//	@Tags			marketplace
//	@Accept			json
//	@Produce		json
//	@Security		ApiKeyAuth
//	@Param			params	body		object{contractAddress=string,tokenId=string,price=string}	true	"price in ether"
//	@Success		200		{object}	object{data=ledger.Receipt}
//	@Failure		403
//	@Failure		422
//	@Router			/marketplace/list [post]
func (h *handler) list(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		listingRef
		Price string `json:"price" validate:"required,ether"`
	}

	p := &params{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	price, err := domain.ParseEther(p.Price)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	receipt, err := h.marketplace.List(ctx, authMiddleware.Caller(c), p.Collection.ToLower(), p.TokenId, price)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, receipt)
}

// unlist
//
//	@Summary	Unlist nft
//	@Tags		marketplace
//	@Accept		json
//	@Produce	json
//	@Security	ApiKeyAuth
//	@Param		params	body		object{contractAddress=string,tokenId=string}	true	"params"
//	@Success	200		{object}	object{data=ledger.Receipt}
//	@Failure	403
//	@Failure	422
//	@Router		/marketplace/unlist [post]
func (h *handler) unlist(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := &listingRef{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	receipt, err := h.marketplace.Unlist(ctx, authMiddleware.Caller(c), p.Collection.ToLower(), p.TokenId)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, receipt)
}

// buy
//
//	@Summary		Buy nft
//	@Description	Payment is in ether, only the listed price is taken
//	@Tags			marketplace
//	@Accept			json
//	@Produce		json
//	@Security		ApiKeyAuth
//	@Param			params	body		object{contractAddress=string,tokenId=string,payment=string}	true	"params"
//	@Success		200		{object}	object{data=ledger.Receipt}
//	@Failure		422
//	@Router			/marketplace/buy [post]
func (h *handler) buy(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		listingRef
		Payment string `json:"payment" validate:"required,ether"`
	}

	p := &params{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	payment, err := domain.ParseEther(p.Payment)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	caller := authMiddleware.Caller(c)
	receipt, err := h.marketplace.Buy(ctx, caller, p.Collection.ToLower(), p.TokenId, payment)
	if err != nil {
		ctx.WithFields(log.Fields{
			"buyer":      caller,
			"collection": p.Collection,
			"tokenId":    p.TokenId,
			"err":        err,
		}).Info("marketplace.Buy failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, receipt)
}
