package healthcheck

import (
	"github.com/x-xyz/launchpad/base/ctx"
)

// Status is reported by GET /health
type Status struct {
	Healthy     bool   `json:"healthy"`
	BlockNumber uint64 `json:"blockNumber"`
}

// HealthCheckUsecase represents the healthCheck's usecases
type HealthCheckUsecase interface {
	Check(context ctx.Ctx) (*Status, error)
}

// HealthCheckRepo is repository layer of healthCheck
type HealthCheckRepo interface {
	PingDB(context ctx.Ctx) error
}
