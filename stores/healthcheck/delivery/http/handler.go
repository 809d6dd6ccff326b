package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/x-xyz/launchpad/base/ctx"
	"github.com/x-xyz/launchpad/base/delivery"
	hcdomain "github.com/x-xyz/launchpad/domain/healthcheck"
)

type healthCheckHandler struct {
	healthCheck hcdomain.HealthCheckUsecase
}

// New will initialize the healthcheck/
func New(e *echo.Echo, us hcdomain.HealthCheckUsecase) {
	handler := &healthCheckHandler{
		healthCheck: us,
	}
	g := e.Group("/health")
	g.GET("", handler.check)
}

// check
//
//	@Summary	Service health
//	@Tags		health
//	@Produce	json
//	@Success	200	{object}	object{data=healthcheck.Status}
//	@Router		/health [get]
func (h *healthCheckHandler) check(c echo.Context) error {
	context := c.Get("ctx").(ctx.Ctx)
	status, err := h.healthCheck.Check(context)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusServiceUnavailable, err.Error())
	}
	return delivery.MakeJsonResp(c, http.StatusOK, status)
}
