package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/x-xyz/launchpad/base/ctx"
	"github.com/x-xyz/launchpad/base/delivery"
	"github.com/x-xyz/launchpad/base/log"
	"github.com/x-xyz/launchpad/domain"
	"github.com/x-xyz/launchpad/domain/staking"
	authMiddleware "github.com/x-xyz/launchpad/stores/auth/delivery/http/middleware"
)

type handler struct {
	staking staking.UseCase
}

func New(e *echo.Echo, staking staking.UseCase, authMiddleware *authMiddleware.AuthMiddleware) {
	h := &handler{staking}

	g := e.Group("/staking")
	g.GET("/pool", h.getPool)
	g.GET("/accounts/:address", h.getAccount)
	g.POST("/stake", h.stake, authMiddleware.Auth())
	g.POST("/withdraw", h.withdraw, authMiddleware.Auth())
	g.POST("/claim", h.claim, authMiddleware.Auth())
	g.POST("/exit", h.exit, authMiddleware.Auth())
	g.POST("/reward-rate", h.setRewardRate, authMiddleware.Auth())
}

type amountParams struct {
	Amount string `json:"amount" validate:"required,ether"`
}

// getPool
//
//	@Summary	Get staking pool
//	@Tags		staking
//	@Produce	json
//	@Success	200	{object}	object{data=staking.PoolView}
//	@Router		/staking/pool [get]
func (h *handler) getPool(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	pool, err := h.staking.GetPool(ctx)
	if err != nil {
		delivery.LogFailure(ctx.WithField("err", err), err, "staking.GetPool failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, pool)
}

// getAccount
//
//	@Summary		Get stake account
//	@Description	An address that never staked gets a zero account
//	@Tags			staking
//	@Produce		json
//	@Param			address	path		string	true	"account address"
//	@Success		200		{object}	object{data=staking.AccountView}
//	@Router			/staking/accounts/{address} [get]
func (h *handler) getAccount(c echo.Context) error {
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

	account, err := h.staking.GetAccount(ctx, p.Address.ToLower())
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, account)
}

// stake
//
//	@Summary		Stake
//	@Description	The pool must be approved for the staking token
//	@Tags			staking
//	@Accept			json
//	@Produce		json
//	@Security		ApiKeyAuth
//	@Param			params	body		object{amount=string}	true	"amount in ether"
//	@Success		200		{object}	object{data=ledger.Receipt}
//	@Failure		422
//	@Router			/staking/stake [post]
func (h *handler) stake(c echo.Context) error {
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

	receipt, err := h.staking.Stake(ctx, authMiddleware.Caller(c), amount)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, receipt)
}

// withdraw
//
//	@Summary	Withdraw stake
//	@Tags		staking
//	@Accept		json
//	@Produce	json
//	@Security	ApiKeyAuth
//	@Param		params	body		object{amount=string}	true	"amount in ether"
//	@Success	200		{object}	object{data=ledger.Receipt}
//	@Failure	422
//	@Router		/staking/withdraw [post]
func (h *handler) withdraw(c echo.Context) error {
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

	receipt, err := h.staking.Withdraw(ctx, authMiddleware.Caller(c), amount)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, receipt)
}

// claim
//
//	@Summary	Claim reward
//	@Tags		staking
//	@Produce	json
//	@Security	ApiKeyAuth
//	@Success	200	{object}	object{data=ledger.Receipt}
//	@Failure	422	"nothing to claim"
//	@Router		/staking/claim [post]
func (h *handler) claim(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	receipt, err := h.staking.Claim(ctx, authMiddleware.Caller(c))
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, receipt)
}

// exit
//
//	@Summary	Withdraw everything and claim
//	@Tags		staking
//	@Produce	json
//	@Security	ApiKeyAuth
//	@Success	200	{object}	object{data=ledger.Receipt}
//	@Router		/staking/exit [post]
func (h *handler) exit(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	receipt, err := h.staking.Exit(ctx, authMiddleware.Caller(c))
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, receipt)
}

// setRewardRate
//
//	@Summary		Set reward rate
//	@Description	Pool owner only. Rate is in wei per second, a zero duration accrues without end.
//	@Tags			staking
//	@Accept			json
//	@Produce		json
//	@Security		ApiKeyAuth
//	@Param			params	body		object{rate=string,duration=int}	true	"duration in seconds"
//	@Success		200		{object}	object{data=ledger.Receipt}
//	@Failure		403
//	@Router			/staking/reward-rate [post]
func (h *handler) setRewardRate(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		Rate     domain.Amount `json:"rate" validate:"required,numeric"`
		Duration int64         `json:"duration" validate:"min=0"`
	}

	p := &params{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	rate, err := p.Rate.Big()
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	caller := authMiddleware.Caller(c)
	receipt, err := h.staking.SetRewardRate(ctx, caller, rate, time.Duration(p.Duration)*time.Second)
	if err != nil {
		ctx.WithFields(log.Fields{"caller": caller, "rate": rate, "err": err}).Info("staking.SetRewardRate failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, receipt)
}
