package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/x-xyz/launchpad/base/ctx"
	"github.com/x-xyz/launchpad/base/delivery"
	"github.com/x-xyz/launchpad/base/log"
	"github.com/x-xyz/launchpad/domain"
	"github.com/x-xyz/launchpad/domain/ledger"
)

type handler struct {
	ledger ledger.UseCase
}

type blockResp struct {
	BlockNumber domain.BlockNumber `json:"blockNumber"`
}

func New(e *echo.Echo, ledger ledger.UseCase) {
	h := &handler{ledger}

	e.GET("/tx/:hash", h.getReceipt)
	e.GET("/events", h.findEvents)
	e.GET("/blocks/latest", h.latestBlock)
}

// getReceipt
//
//	@Summary	Get transaction receipt
//	@Tags		ledger
//	@Produce	json
//	@Param		hash	path		string	true	"transaction hash"
//	@Success	200		{object}	object{data=ledger.Receipt}
//	@Failure	404
//	@Router		/tx/{hash} [get]
func (h *handler) getReceipt(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		Hash domain.TxHash `param:"hash" validate:"required,startswith=0x,len=66,hexadecimal"`
	}

	p := &params{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	receipt, err := h.ledger.GetReceipt(ctx, p.Hash.ToLower())
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, receipt)
}

// findEvents
//
//	@Summary		Find event logs
//	@Description	Ordered by block then log index
//	@Tags			ledger
//	@Produce		json
//	@Param			address		query		[]string	false	"emitting contract"
//	@Param			event		query		[]string	false	"event name, e.g. Sold"
//	@Param			fromBlock	query		int			false	"first block"
//	@Param			toBlock		query		int			false	"last block"
//	@Param			offset		query		int			false	"offset"
//	@Param			limit		query		int			false	"limit, max 1000"
//	@Success		200			{object}	object{data=[]ledger.EventLog}
//	@Router			/events [get]
func (h *handler) findEvents(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		Addresses []domain.Address    `query:"address" validate:"dive,address"`
		Events    []string            `query:"event"`
		FromBlock *domain.BlockNumber `query:"fromBlock"`
		ToBlock   *domain.BlockNumber `query:"toBlock"`
		Offset    int                 `query:"offset" validate:"min=0"`
		Limit     int                 `query:"limit" validate:"min=0,max=1000"`
	}

	p := &params{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if p.FromBlock != nil && p.ToBlock != nil && *p.FromBlock > *p.ToBlock {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrBadParamInput)
	}

	filter := ledger.LogFilter{
		FromBlock: p.FromBlock,
		ToBlock:   p.ToBlock,
		Events:    p.Events,
		Offset:    p.Offset,
		Limit:     p.Limit,
	}
	for _, a := range p.Addresses {
		filter.Addresses = append(filter.Addresses, a.ToLower())
	}

	logs, err := h.ledger.FindLogs(ctx, filter)
	if err != nil {
		delivery.LogFailure(ctx.WithFields(log.Fields{"filter": filter, "err": err}), err, "ledger.FindLogs failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, logs)
}

// latestBlock
//
//	@Summary	Get latest block number
//	@Tags		ledger
//	@Produce	json
//	@Success	200	{object}	object{data=http.blockResp}
//	@Router		/blocks/latest [get]
func (h *handler) latestBlock(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	block, err := h.ledger.LatestBlock(ctx)
	if err != nil {
		delivery.LogFailure(ctx.WithField("err", err), err, "ledger.LatestBlock failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, blockResp{block})
}
