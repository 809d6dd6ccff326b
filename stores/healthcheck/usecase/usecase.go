package usecase

import (
	"github.com/x-xyz/launchpad/base/ctx"
	hcdomain "github.com/x-xyz/launchpad/domain/healthcheck"
	"github.com/x-xyz/launchpad/domain/ledger"
)

type impl struct {
	repo   hcdomain.HealthCheckRepo
	ledger ledger.UseCase
}

// New reports the stores reachable and the latest block of the ledger
func New(repo hcdomain.HealthCheckRepo, ledger ledger.UseCase) hcdomain.HealthCheckUsecase {
	return &impl{
		repo:   repo,
		ledger: ledger,
	}
}

func (im *impl) Check(context ctx.Ctx) (*hcdomain.Status, error) {
	if err := im.repo.PingDB(context); err != nil {
		return nil, err
	}
	block, err := im.ledger.LatestBlock(context)
	if err != nil {
		context.WithField("err", err).Error("ledger.LatestBlock failed")
		return nil, err
	}
	return &hcdomain.Status{Healthy: true, BlockNumber: uint64(block)}, nil
}
