package repository

import (
	"errors"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/x-xyz/launchpad/base/ctx"
	"github.com/x-xyz/launchpad/base/log"
	"github.com/x-xyz/launchpad/domain"
	"github.com/x-xyz/launchpad/domain/staking"
	"github.com/x-xyz/launchpad/service/query"
)

type stakingImpl struct {
	q query.Mongo
}

func NewStaking(q query.Mongo) staking.Repo {
	return &stakingImpl{q}
}

func (im *stakingImpl) EnsureIndexes(c ctx.Ctx) error {
	if err := im.q.EnsureIndexes(c, domain.TableStakingPools, []query.Index{
		{Keys: bson.D{{Key: "address", Value: 1}}, Unique: true},
	}); err != nil {
		return err
	}
	return im.q.EnsureIndexes(c, domain.TableStakeAccounts, []query.Index{
		{Keys: bson.D{{Key: "pool", Value: 1}, {Key: "owner", Value: 1}}, Unique: true},
	})
}

func (im *stakingImpl) FindPool(c ctx.Ctx, address domain.Address) (*staking.Pool, error) {
	res := &staking.Pool{}
	if err := im.q.FindOne(c, domain.TableStakingPools, bson.M{"address": address.ToLowerStr()}, res); errors.Is(err, query.ErrNotFound) {
		return nil, domain.ErrNotFound
	} else if err != nil {
		c.WithFields(log.Fields{
			"err":     err,
			"address": address,
		}).Error("q.FindOne failed")
		return nil, err
	}
	return res, nil
}

func (im *stakingImpl) UpsertPool(c ctx.Ctx, pool *staking.Pool) error {
	pool.Address = pool.Address.ToLower()
	selector := bson.M{"address": pool.Address}
	if err := im.q.Upsert(c, domain.TableStakingPools, selector, pool); err != nil {
		c.WithFields(log.Fields{
			"err":      err,
			"selector": selector,
		}).Error("q.Upsert failed")
		return err
	}
	return nil
}

func (im *stakingImpl) FindAccount(c ctx.Ctx, pool, owner domain.Address) (*staking.StakeAccount, error) {
	res := &staking.StakeAccount{}
	qry := bson.M{
		"pool":  pool.ToLowerStr(),
		"owner": owner.ToLowerStr(),
	}
	if err := im.q.FindOne(c, domain.TableStakeAccounts, qry, res); errors.Is(err, query.ErrNotFound) {
		return nil, domain.ErrNotFound
	} else if err != nil {
		c.WithFields(log.Fields{
			"err": err,
			"qry": qry,
		}).Error("q.FindOne failed")
		return nil, err
	}
	return res, nil
}

func (im *stakingImpl) FindAccounts(c ctx.Ctx, pool domain.Address) ([]*staking.StakeAccount, error) {
	res := []*staking.StakeAccount{}
	qry := bson.M{"pool": pool.ToLowerStr()}
	if err := im.q.SearchNSorts(c, domain.TableStakeAccounts, 0, 0, []string{"owner"}, qry, &res); err != nil {
		c.WithFields(log.Fields{
			"err": err,
			"qry": qry,
		}).Error("q.SearchNSorts failed")
		return nil, err
	}
	return res, nil
}

func (im *stakingImpl) UpsertAccount(c ctx.Ctx, account *staking.StakeAccount) error {
	account.Pool, account.Owner = account.Pool.ToLower(), account.Owner.ToLower()
	selector := bson.M{
		"pool":  account.Pool,
		"owner": account.Owner,
	}
	if err := im.q.Upsert(c, domain.TableStakeAccounts, selector, account); err != nil {
		c.WithFields(log.Fields{
			"err":      err,
			"selector": selector,
		}).Error("q.Upsert failed")
		return err
	}
	return nil
}
