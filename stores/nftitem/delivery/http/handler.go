package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/x-xyz/launchpad/base/ctx"
	"github.com/x-xyz/launchpad/base/delivery"
	"github.com/x-xyz/launchpad/base/log"
	"github.com/x-xyz/launchpad/domain"
	"github.com/x-xyz/launchpad/domain/nftitem"
	authMiddleware "github.com/x-xyz/launchpad/stores/auth/delivery/http/middleware"
)

type handler struct {
	nftitem nftitem.UseCase
}

func New(e *echo.Echo, nftitem nftitem.UseCase, authMiddleware *authMiddleware.AuthMiddleware) {
	h := &handler{nftitem}

	e.POST("/api/nft/mint", h.mint, authMiddleware.Auth())

	e.GET("/nfts/:collection/:tokenId", h.get)
	e.GET("/accounts/:address/nfts", h.listByOwner)

	g := e.Group("/nfts/:collection", authMiddleware.Auth())
	g.POST("/approve", h.approve)
	g.POST("/approval-for-all", h.setApprovalForAll)
	g.POST("/transfer", h.transfer)
}

type mintResp struct {
	Success         bool           `json:"success"`
	TokenId         domain.TokenId `json:"tokenId"`
	TransactionHash domain.TxHash  `json:"transactionHash"`
}

// mint
//
//	@Summary		Mint nft
//	@Description	Mint the next token of a collection, only the collection creator can mint
//	@Tags			nft
//	@Accept			json
//	@Produce		json
//	@Security		ApiKeyAuth
//	@Param			params	body		object{contractAddress=string,recipientAddress=string,metadataUri=string}	true	"params"
//	@Success		200		{object}	object{data=http.mintResp}
//	@Failure		403
//	@Router			/api/nft/mint [post]
func (h *handler) mint(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		ContractAddress  domain.Address `json:"contractAddress" validate:"required,address"`
		RecipientAddress domain.Address `json:"recipientAddress" validate:"required,address"`
		MetadataUri      string         `json:"metadataUri" validate:"required"`
	}

	p := &params{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	minted, err := h.nftitem.Mint(ctx, authMiddleware.Caller(c), p.ContractAddress.ToLower(), p.RecipientAddress, p.MetadataUri)
	if err != nil {
		delivery.LogFailure(ctx.WithFields(log.Fields{
			"collection": p.ContractAddress,
			"to":         p.RecipientAddress,
			"err":        err,
		}), err, "nftitem.Mint failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, mintResp{
		Success:         true,
		TokenId:         minted.TokenId,
		TransactionHash: minted.Receipt.TxHash,
	})
}

// get
//
//	@Summary	Get nft
//	@Tags		nft
//	@Produce	json
//	@Param		collection	path		string	true	"collection address"
//	@Param		tokenId		path		string	true	"token id"
//	@Success	200			{object}	object{data=nftitem.NftItem}
//	@Failure	404
//	@Router		/nfts/{collection}/{tokenId} [get]
func (h *handler) get(c echo.Context) error {
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

	item, err := h.nftitem.GetItem(ctx, p.Collection.ToLower(), p.TokenId)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, item)
}

// listByOwner
//
//	@Summary	List nfts of an account
//	@Tags		nft
//	@Produce	json
//	@Param		address	path		string	true	"owner address"
//	@Param		offset	query		int		false	"offset"
//	@Param		limit	query		int		false	"limit, max 100"
//	@Success	200		{object}	object{data=[]nftitem.NftItem}
//	@Router		/accounts/{address}/nfts [get]
func (h *handler) listByOwner(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		Address domain.Address `param:"address" validate:"required,address"`
		Offset  int32          `query:"offset" validate:"min=0"`
		Limit   int32          `query:"limit" validate:"min=0,max=100"`
	}

	p := &params{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	items, err := h.nftitem.ListByOwner(ctx, p.Address, p.Offset, p.Limit)
	if err != nil {
		delivery.LogFailure(ctx.WithFields(log.Fields{"owner": p.Address, "err": err}), err, "nftitem.ListByOwner failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, items)
}

// approve
//
//	@Summary		Approve nft
//	@Description	Approve spender for one token, the zero address clears the approval
//	@Tags			nft
//	@Accept			json
//	@Produce		json
//	@Security		ApiKeyAuth
//	@Param			collection	path		string										true	"collection address"
//	@Param			params		body		object{spender=string,tokenId=string}		true	"params"
//	@Success		200			{object}	object{data=ledger.Receipt}
//	@Router			/nfts/{collection}/approve [post]
func (h *handler) approve(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		Collection domain.Address `param:"collection" validate:"required,address"`
		Spender    domain.Address `json:"spender" validate:"required,address"`
		TokenId    domain.TokenId `json:"tokenId" validate:"required,numeric"`
	}

	p := &params{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	receipt, err := h.nftitem.Approve(ctx, authMiddleware.Caller(c), p.Collection.ToLower(), p.Spender, p.TokenId)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, receipt)
}

// setApprovalForAll
//
//	@Summary	Set operator
//	@Tags		nft
//	@Accept		json
//	@Produce	json
//	@Security	ApiKeyAuth
//	@Param		collection	path		string									true	"collection address"
//	@Param		params		body		object{operator=string,approved=bool}	true	"params"
//	@Success	200			{object}	object{data=ledger.Receipt}
//	@Router		/nfts/{collection}/approval-for-all [post]
func (h *handler) setApprovalForAll(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		Collection domain.Address `param:"collection" validate:"required,address"`
		Operator   domain.Address `json:"operator" validate:"required,address"`
		Approved   bool           `json:"approved"`
	}

	p := &params{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	receipt, err := h.nftitem.SetApprovalForAll(ctx, authMiddleware.Caller(c), p.Collection.ToLower(), p.Operator, p.Approved)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, receipt)
}

// transfer
//
//	@Summary		Transfer nft
//	@Description	Move a token, from defaults to the caller
//	@Tags			nft
//	@Accept			json
//	@Produce		json
//	@Security		ApiKeyAuth
//	@Param			collection	path		string										true	"collection address"
//	@Param			params		body		object{from=string,to=string,tokenId=string}	true	"params"
//	@Success		200			{object}	object{data=ledger.Receipt}
//	@Router			/nfts/{collection}/transfer [post]
func (h *handler) transfer(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		Collection domain.Address `param:"collection" validate:"required,address"`
		From       domain.Address `json:"from" validate:"omitempty,address"`
		To         domain.Address `json:"to" validate:"required,address"`
		TokenId    domain.TokenId `json:"tokenId" validate:"required,numeric"`
	}

	p := &params{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	caller := authMiddleware.Caller(c)
	from := p.From
	if from.IsEmpty() {
		from = caller
	}
	receipt, err := h.nftitem.SendTransferFrom(ctx, caller, p.Collection.ToLower(), from, p.To, p.TokenId)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, receipt)
}
