package usecase

import (
	"time"

	bCtx "github.com/x-xyz/launchpad/base/ctx"
	"github.com/x-xyz/launchpad/domain"
)

type trackerStateUseCase struct {
	trackerStatusRepo domain.TrackerStateRepo
	ctxTimeout        time.Duration
	now               func() time.Time
}

// NewTrackerStateUseCase bounds every repo call by ctxTimeout
func NewTrackerStateUseCase(r domain.TrackerStateRepo, ctxTimeout time.Duration) domain.TrackerStateUseCase {
	return &trackerStateUseCase{
		trackerStatusRepo: r,
		ctxTimeout:        ctxTimeout,
		now:               time.Now,
	}
}

func (u *trackerStateUseCase) Get(c bCtx.Ctx, id *domain.TrackerStateId) (*domain.TrackerState, error) {
	ctx, cancel := bCtx.WithTimeout(c, u.ctxTimeout)
	defer cancel()
	return u.trackerStatusRepo.Get(ctx, id)
}

func (u *trackerStateUseCase) Update(c bCtx.Ctx, state *domain.TrackerState) error {
	ctx, cancel := bCtx.WithTimeout(c, u.ctxTimeout)
	defer cancel()
	state.ContractAddress = state.ContractAddress.ToLower()
	state.UpdatedAt = u.now().UTC()
	return u.trackerStatusRepo.Update(ctx, state)
}

func (u *trackerStateUseCase) Store(c bCtx.Ctx, state *domain.TrackerState) error {
	ctx, cancel := bCtx.WithTimeout(c, u.ctxTimeout)
	defer cancel()
	state.ContractAddress = state.ContractAddress.ToLower()
	state.UpdatedAt = u.now().UTC()
	return u.trackerStatusRepo.Store(ctx, state)
}
