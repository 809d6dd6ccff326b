package mongo

import (
	"errors"

	"go.mongodb.org/mongo-driver/bson"

	bCtx "github.com/x-xyz/launchpad/base/ctx"
	"github.com/x-xyz/launchpad/base/log"
	"github.com/x-xyz/launchpad/domain"
	"github.com/x-xyz/launchpad/service/query"
)

// idSelector keeps zero values, an empty contract address means every address
func idSelector(id *domain.TrackerStateId) bson.M {
	return bson.M{
		"chainId":         id.ChainId,
		"contractAddress": id.ContractAddress.ToLower(),
		"tag":             id.Tag,
	}
}

type trackerStateMongoRepo struct {
	m query.Mongo
}

func NewTrackerStateMongoRepo(mCon query.Mongo) domain.TrackerStateRepo {
	return &trackerStateMongoRepo{m: mCon}
}

func (r *trackerStateMongoRepo) EnsureIndexes(ctx bCtx.Ctx) error {
	return r.m.EnsureIndexes(ctx, domain.TableTrackerStates, []query.Index{
		{Keys: bson.D{{Key: "chainId", Value: 1}, {Key: "contractAddress", Value: 1}, {Key: "tag", Value: 1}}, Unique: true},
	})
}

func (r *trackerStateMongoRepo) Get(ctx bCtx.Ctx, id *domain.TrackerStateId) (*domain.TrackerState, error) {
	qry := idSelector(id)
	state := &domain.TrackerState{}
	if err := r.m.FindOne(ctx, domain.TableTrackerStates, qry, state); errors.Is(err, query.ErrNotFound) {
		return nil, domain.ErrNotFound
	} else if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
			"id":  qry,
		}).Error("failed to FindOne")
		return nil, err
	}
	return state, nil
}

// Update writes the whole state, the tracker owns its document
func (r *trackerStateMongoRepo) Update(ctx bCtx.Ctx, state *domain.TrackerState) error {
	if err := r.m.Upsert(ctx, domain.TableTrackerStates, idSelector(state.ToId()), state); err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
			"id":  state.ToId(),
		}).Error("failed to update")
		return err
	}
	return nil
}

func (r *trackerStateMongoRepo) Store(ctx bCtx.Ctx, state *domain.TrackerState) error {
	if err := r.m.Insert(ctx, domain.TableTrackerStates, state); errors.Is(err, query.ErrDuplicateKey) {
		return domain.ErrConflict
	} else if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
			"id":  state.ToId(),
		}).Error("failed to store")
		return err
	}
	return nil
}
