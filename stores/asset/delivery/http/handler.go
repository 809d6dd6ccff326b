package http

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/x-xyz/launchpad/base/ctx"
	"github.com/x-xyz/launchpad/base/delivery"
	"github.com/x-xyz/launchpad/base/log"
	"github.com/x-xyz/launchpad/base/validator"
	"github.com/x-xyz/launchpad/domain"
	"github.com/x-xyz/launchpad/domain/asset"
	"github.com/x-xyz/launchpad/domain/file"
	"github.com/x-xyz/launchpad/middleware"
	authMiddleware "github.com/x-xyz/launchpad/stores/auth/delivery/http/middleware"
)

const (
	ContractTypeMarketplace = "marketplace"
	ContractTypeSoulbound   = "soulbound"
)

type handler struct {
	asset asset.UseCase
	file  file.Usecase
}

func New(e *echo.Echo, asset asset.UseCase, file file.Usecase, authMiddleware *authMiddleware.AuthMiddleware, httpCache *middleware.HttpCache) {
	h := &handler{asset, file}

	e.POST("/api/token/create", h.createToken, authMiddleware.Auth())
	e.POST("/api/nft/create", h.createNFT, authMiddleware.Auth())

	e.GET("/tokens", h.listTokens, httpCache.Handle(5*time.Second))
	e.GET("/collections", h.listCollections, httpCache.Handle(5*time.Second))
	e.GET("/assets/:address", h.get, httpCache.Handle(5*time.Second))
}

type tokenCreatedResp struct {
	Success         bool               `json:"success"`
	TransactionHash domain.TxHash      `json:"transactionHash"`
	TokenAddress    domain.Address     `json:"tokenAddress"`
	BlockNumber     domain.BlockNumber `json:"blockNumber"`
	Name            string             `json:"name"`
	Symbol          string             `json:"symbol"`
	InitialSupply   string             `json:"initialSupply"`
}

// createToken
//
//	@Summary		Create token
//	@Description	Deploy an ERC20 through the token factory, the whole supply goes to the caller
//	@Tags			factory
//	@Accept			json
//	@Produce		json
//	@Security		ApiKeyAuth
//	@Param			params	body		object{name=string,symbol=string,initialSupply=string}	true	"initialSupply in ether units"
//	@Success		200		{object}	object{data=http.tokenCreatedResp}
//	@Failure		400
//	@Router			/api/token/create [post]
func (h *handler) createToken(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		Name          string `json:"name" validate:"required"`
		Symbol        string `json:"symbol" validate:"required"`
		InitialSupply string `json:"initialSupply" validate:"required,ether"`
	}

	p := &params{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	supply, err := domain.ParseEther(p.InitialSupply)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	created, err := h.asset.CreateToken(ctx, authMiddleware.Caller(c), p.Name, p.Symbol, supply)
	if err != nil {
		delivery.LogFailure(ctx.WithFields(log.Fields{
			"name":   p.Name,
			"symbol": p.Symbol,
			"err":    err,
		}), err, "asset.CreateToken failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, tokenCreatedResp{
		Success:         true,
		TransactionHash: created.Receipt.TxHash,
		TokenAddress:    created.Address,
		BlockNumber:     created.Receipt.BlockNumber,
		Name:            strings.TrimSpace(p.Name),
		Symbol:          strings.TrimSpace(p.Symbol),
		InitialSupply:   p.InitialSupply,
	})
}

type nftCreatedResp struct {
	Success         bool               `json:"success"`
	TransactionHash domain.TxHash      `json:"transactionHash"`
	ContractAddress domain.Address     `json:"contractAddress"`
	BlockNumber     domain.BlockNumber `json:"blockNumber"`
	ContractType    string             `json:"contractType"`
	Name            string             `json:"name"`
	Symbol          string             `json:"symbol"`
	MetadataUri     string             `json:"metadataUri"`
	ImageUri        *string            `json:"imageUri"`
	Soulbound       bool               `json:"soulbound"`
}

// createNFT
//
//	@Summary		Create nft collection
//	@Description	Pin the image and the collection metadata to ipfs, then deploy a collection through the nft factory.
//	@Description	A failed image upload does not fail the request.
//	@Tags			factory
//	@Accept			mpfd
//	@Produce		json
//	@Security		ApiKeyAuth
//	@Param			name		formData	string	true	"collection name"
//	@Param			symbol		formData	string	true	"collection symbol"
//	@Param			description	formData	string	true	"description"
//	@Param			rewardToken	formData	string	false	"reward token address"
//	@Param			soulbound	formData	bool	false	"non-transferable collection"
//	@Param			image		formData	file	false	"collection image, max 10MiB"
//	@Success		200			{object}	object{data=http.nftCreatedResp}
//	@Failure		400
//	@Router			/api/nft/create [post]
func (h *handler) createNFT(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		Name        string         `form:"name" validate:"required"`
		Symbol      string         `form:"symbol" validate:"required"`
		Description string         `form:"description" validate:"required"`
		RewardToken domain.Address `form:"rewardToken" validate:"omitempty,address"`
		Soulbound   string         `form:"soulbound"`
	}

	p := &params{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	soulbound, _ := strconv.ParseBool(p.Soulbound)

	data, filename, found, err := delivery.FormFile(c, "image", file.MaxImageSize)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	imageUri := ""
	if found {
		if pinned, err := h.file.UploadImage(ctx, data, filename); err != nil {
			ctx.WithFields(log.Fields{
				"filename": filename,
				"err":      err,
			}).Warn("file.UploadImage failed, continue without image")
		} else {
			imageUri = pinned.URI
		}
	}

	metadata := file.NewCollectionMetadata(p.Name, p.Description, imageUri, soulbound, p.RewardToken)
	pinnedMeta, err := h.file.UploadJson(ctx, metadata, p.Name+"-metadata.json")
	if err != nil {
		delivery.LogFailure(ctx.WithField("err", err), err, "file.UploadJson failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	opts := asset.NFTOptions{
		Description: p.Description,
		Soulbound:   soulbound,
		MetadataURI: pinnedMeta.URI,
		ImageURI:    imageUri,
		RewardToken: p.RewardToken.ToLower(),
	}
	created, err := h.asset.CreateNFTCollection(ctx, authMiddleware.Caller(c), p.Name, p.Symbol, opts)
	if err != nil {
		delivery.LogFailure(ctx.WithFields(log.Fields{
			"name":      p.Name,
			"soulbound": soulbound,
			"err":       err,
		}), err, "asset.CreateNFTCollection failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	res := nftCreatedResp{
		Success:         true,
		TransactionHash: created.Receipt.TxHash,
		ContractAddress: created.Address,
		BlockNumber:     created.Receipt.BlockNumber,
		ContractType:    ContractTypeMarketplace,
		Name:            strings.TrimSpace(p.Name),
		Symbol:          strings.TrimSpace(p.Symbol),
		MetadataUri:     pinnedMeta.URI,
		Soulbound:       soulbound,
	}
	if soulbound {
		res.ContractType = ContractTypeSoulbound
	}
	if imageUri != "" {
		res.ImageUri = &imageUri
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

type listParams struct {
	Creator domain.Address `query:"creator" validate:"omitempty,address"`
	Offset  int            `query:"offset" validate:"min=0"`
	Limit   int            `query:"limit" validate:"min=0,max=100"`
}

// listTokens
//
//	@Summary	List tokens
//	@Tags		factory
//	@Produce	json
//	@Param		creator	query		string	false	"creator address"
//	@Param		offset	query		int		false	"offset"
//	@Param		limit	query		int		false	"limit, max 100"
//	@Success	200		{object}	object{data=[]asset.DeployedAsset}
//	@Router		/tokens [get]
func (h *handler) listTokens(c echo.Context) error {
	return h.list(c, asset.KindToken)
}

// listCollections
//
//	@Summary	List nft collections
//	@Tags		factory
//	@Produce	json
//	@Param		creator	query		string	false	"creator address"
//	@Param		offset	query		int		false	"offset"
//	@Param		limit	query		int		false	"limit, max 100"
//	@Success	200		{object}	object{data=[]asset.DeployedAsset}
//	@Router		/collections [get]
func (h *handler) listCollections(c echo.Context) error {
	return h.list(c, asset.KindNft)
}

func (h *handler) list(c echo.Context, kind asset.Kind) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := &listParams{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	opts := asset.ListOptions{Kind: &kind, Offset: p.Offset, Limit: p.Limit}
	if !p.Creator.IsEmpty() {
		opts.Creator = p.Creator.ToLowerPtr()
	}
	assets, err := h.asset.ListAssets(ctx, opts)
	if err != nil {
		delivery.LogFailure(ctx.WithFields(log.Fields{
			"kind": kind,
			"err":  err,
		}), err, "asset.ListAssets failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, assets)
}

// get
//
//	@Summary	Get deployed asset
//	@Tags		factory
//	@Produce	json
//	@Param		address	path		string	true	"token or collection address"
//	@Success	200		{object}	object{data=asset.DeployedAsset}
//	@Failure	404
//	@Router		/assets/{address} [get]
func (h *handler) get(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	address := domain.Address(c.Param("address"))
	if !validator.IsValidAddress(string(address)) {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrInvalidAddress)
	}
	a, err := h.asset.GetAsset(ctx, address.ToLower())
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, a)
}
