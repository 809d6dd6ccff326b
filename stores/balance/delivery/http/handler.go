package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/x-xyz/launchpad/base/ctx"
	"github.com/x-xyz/launchpad/base/delivery"
	"github.com/x-xyz/launchpad/base/log"
	"github.com/x-xyz/launchpad/base/validator"
	"github.com/x-xyz/launchpad/domain"
	"github.com/x-xyz/launchpad/domain/balance"
	authMiddleware "github.com/x-xyz/launchpad/stores/auth/delivery/http/middleware"
)

type handler struct {
	balance balance.UseCase
}

type balanceResp struct {
	Token   domain.Address `json:"token"`
	Account domain.Address `json:"account"`
	Wei     string         `json:"wei"`
	Ether   string         `json:"ether"`
}

func New(e *echo.Echo, balance balance.UseCase, authMiddleware *authMiddleware.AuthMiddleware) {
	h := &handler{balance}

	e.GET("/balances/:token/:account", h.get)
	e.GET("/accounts/:address/balances", h.list)

	g := e.Group("/tokens/:token", authMiddleware.Auth())
	g.POST("/approve", h.approve)
	g.POST("/transfer", h.transfer)

	e.POST("/faucet", h.faucet, authMiddleware.Auth(), authMiddleware.IsAdmin())
}

// get
//
//	@Summary	Get balance
//	@Tags		balance
//	@Produce	json
//	@Param		token	path		string	true	"token address, zero address for the native coin"
//	@Param		account	path		string	true	"account address"
//	@Success	200		{object}	object{data=http.balanceResp}
//	@Router		/balances/{token}/{account} [get]
func (h *handler) get(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		Token   domain.Address `param:"token" validate:"required,address"`
		Account domain.Address `param:"account" validate:"required,address"`
	}

	p := &params{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	bal, err := h.balance.BalanceOf(ctx, p.Token, p.Account)
	if err != nil {
		delivery.LogFailure(ctx.WithField("err", err), err, "balance.BalanceOf failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, balanceResp{
		Token:   p.Token.ToLower(),
		Account: p.Account.ToLower(),
		Wei:     bal.String(),
		Ether:   domain.FormatEther(bal),
	})
}

func (h *handler) list(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	address := domain.Address(c.Param("address"))
	if !validator.IsValidAddress(string(address)) {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrInvalidAddress)
	}

	list, err := h.balance.ListByAccount(ctx, address)
	if err != nil {
		delivery.LogFailure(ctx.WithField("err", err), err, "balance.ListByAccount failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	res := make([]balanceResp, 0, len(list))
	for _, b := range list {
		wei, err := b.Amount.Big()
		if err != nil {
			return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
		}
		res = append(res, balanceResp{Token: b.Token, Account: b.Account, Wei: wei.String(), Ether: domain.FormatEther(wei)})
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

type amountParams struct {
	Token  domain.Address `param:"token" validate:"required,address"`
	To     domain.Address `json:"to" validate:"required,address"`
	Amount string         `json:"amount" validate:"required,ether" example:"1.5"`
}

// approve
//
//	@Summary		Approve spender
//	@Description	Set the allowance of spender (`to`) over the caller's tokens, amount in ether units
//	@Tags			balance
//	@Accept			json
//	@Produce		json
//	@Security		ApiKeyAuth
//	@Param			token	path		string				true	"token address"
//	@Param			params	body		http.amountParams	true	"params"
//	@Success		200		{object}	object{data=ledger.Receipt}
//	@Router			/tokens/{token}/approve [post]
func (h *handler) approve(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := &amountParams{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	amount, err := domain.ParseEther(p.Amount)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	receipt, err := h.balance.SendApprove(ctx, authMiddleware.Caller(c), p.Token, p.To, amount)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, receipt)
}

// transfer
//
//	@Summary	Transfer tokens
//	@Tags		balance
//	@Accept		json
//	@Produce	json
//	@Security	ApiKeyAuth
//	@Param		token	path		string				true	"token address, zero address for the native coin"
//	@Param		params	body		http.amountParams	true	"params"
//	@Success	200		{object}	object{data=ledger.Receipt}
//	@Router		/tokens/{token}/transfer [post]
func (h *handler) transfer(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := &amountParams{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	amount, err := domain.ParseEther(p.Amount)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	receipt, err := h.balance.SendTransfer(ctx, authMiddleware.Caller(c), p.Token, p.To, amount)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, receipt)
}

func (h *handler) faucet(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		To     domain.Address `json:"to" validate:"required,address"`
		Amount string         `json:"amount" validate:"required,ether"`
	}

	p := &params{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	amount, err := domain.ParseEther(p.Amount)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	receipt, err := h.balance.Faucet(ctx, p.To, amount)
	if err != nil {
		delivery.LogFailure(ctx.WithFields(log.Fields{"err": err, "to": p.To}), err, "balance.Faucet failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, receipt)
}
