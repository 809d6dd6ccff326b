package repository

import (
	"go.mongodb.org/mongo-driver/bson"

	bCtx "github.com/x-xyz/launchpad/base/ctx"
	"github.com/x-xyz/launchpad/base/log"
	"github.com/x-xyz/launchpad/domain"
	"github.com/x-xyz/launchpad/domain/asset"
	"github.com/x-xyz/launchpad/service/query"
)

type repo struct {
	q query.Mongo
}

func New(q query.Mongo) asset.Repo {
	return &repo{q}
}

func (r *repo) EnsureIndexes(ctx bCtx.Ctx) error {
	return r.q.EnsureIndexes(ctx, domain.TableDeployedAssets, []query.Index{
		{Keys: bson.D{{Key: "address", Value: 1}}, Unique: true},
		{Keys: bson.D{{Key: "kind", Value: 1}, {Key: "blockNumber", Value: -1}}},
		{Keys: bson.D{{Key: "creator", Value: 1}, {Key: "kind", Value: 1}}},
	})
}

func (r *repo) Insert(ctx bCtx.Ctx, a *asset.DeployedAsset) error {
	if err := r.q.Insert(ctx, domain.TableDeployedAssets, a); err == query.ErrDuplicateKey {
		return domain.ErrConflict
	} else if err != nil {
		ctx.WithFields(log.Fields{"err": err, "address": a.Address}).Error("q.Insert failed")
		return err
	}
	return nil
}

func (r *repo) FindOne(ctx bCtx.Ctx, address domain.Address) (*asset.DeployedAsset, error) {
	res := &asset.DeployedAsset{}
	if err := r.q.FindOne(ctx, domain.TableDeployedAssets, bson.M{"address": address.ToLower()}, res); err == query.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		ctx.WithFields(log.Fields{"err": err, "address": address}).Error("q.FindOne failed")
		return nil, err
	}
	return res, nil
}

func (r *repo) FindAll(ctx bCtx.Ctx, opts asset.ListOptions) ([]*asset.DeployedAsset, error) {
	qry := bson.M{}
	if opts.Kind != nil {
		qry["kind"] = *opts.Kind
	}
	if opts.Creator != nil {
		qry["creator"] = opts.Creator.ToLower()
	}
	res := []*asset.DeployedAsset{}
	if err := r.q.Search(ctx, domain.TableDeployedAssets, opts.Offset, opts.Limit, "-blockNumber", qry, &res); err != nil {
		ctx.WithFields(log.Fields{"err": err, "qry": qry}).Error("q.Search failed")
		return nil, err
	}
	return res, nil
}

func (r *repo) IncrNextTokenId(ctx bCtx.Ctx, address domain.Address) (int64, error) {
	res := &asset.DeployedAsset{}
	if err := r.q.Increment(ctx, domain.TableDeployedAssets, bson.M{"address": address.ToLower()}, res, "nextTokenId", 1); err != nil {
		ctx.WithFields(log.Fields{"err": err, "address": address}).Error("q.Increment failed")
		return 0, err
	}
	return res.NextTokenId, nil
}
