package repository

import (
	"math/big"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	bCtx "github.com/x-xyz/launchpad/base/ctx"
	"github.com/x-xyz/launchpad/base/log"
	"github.com/x-xyz/launchpad/domain"
	"github.com/x-xyz/launchpad/domain/balance"
	"github.com/x-xyz/launchpad/service/query"
)

type repo struct {
	q query.Mongo
}

func New(q query.Mongo) balance.Repo {
	return &repo{q}
}

func (r *repo) EnsureIndexes(ctx bCtx.Ctx) error {
	if err := r.q.EnsureIndexes(ctx, domain.TableBalances, []query.Index{
		{Keys: bson.D{{Key: "token", Value: 1}, {Key: "account", Value: 1}}, Unique: true},
		{Keys: bson.D{{Key: "account", Value: 1}}},
	}); err != nil {
		return err
	}
	return r.q.EnsureIndexes(ctx, domain.TableAllowances, []query.Index{
		{Keys: bson.D{{Key: "token", Value: 1}, {Key: "owner", Value: 1}, {Key: "spender", Value: 1}}, Unique: true},
	})
}

func (r *repo) Get(ctx bCtx.Ctx, token, account domain.Address) (*big.Int, error) {
	qry := bson.M{"token": token.ToLower(), "account": account.ToLower()}
	res := &balance.Balance{}
	if err := r.q.FindOne(ctx, domain.TableBalances, qry, res); err == query.ErrNotFound {
		return new(big.Int), nil
	} else if err != nil {
		ctx.WithFields(log.Fields{"err": err, "qry": qry}).Error("q.FindOne failed")
		return nil, err
	}
	return res.Amount.Big()
}

func (r *repo) Set(ctx bCtx.Ctx, token, account domain.Address, amount *big.Int, at time.Time) error {
	doc := &balance.Balance{
		Token:     token.ToLower(),
		Account:   account.ToLower(),
		Amount:    domain.NewAmount(amount),
		UpdatedAt: at,
	}
	selector := bson.M{"token": doc.Token, "account": doc.Account}
	if err := r.q.Upsert(ctx, domain.TableBalances, selector, doc); err != nil {
		ctx.WithFields(log.Fields{"err": err, "selector": selector}).Error("q.Upsert failed")
		return err
	}
	return nil
}

func (r *repo) GetAllowance(ctx bCtx.Ctx, token, owner, spender domain.Address) (*big.Int, error) {
	qry := bson.M{"token": token.ToLower(), "owner": owner.ToLower(), "spender": spender.ToLower()}
	res := &balance.Allowance{}
	if err := r.q.FindOne(ctx, domain.TableAllowances, qry, res); err == query.ErrNotFound {
		return new(big.Int), nil
	} else if err != nil {
		ctx.WithFields(log.Fields{"err": err, "qry": qry}).Error("q.FindOne failed")
		return nil, err
	}
	return res.Amount.Big()
}

func (r *repo) SetAllowance(ctx bCtx.Ctx, token, owner, spender domain.Address, amount *big.Int, at time.Time) error {
	doc := &balance.Allowance{
		Token:     token.ToLower(),
		Owner:     owner.ToLower(),
		Spender:   spender.ToLower(),
		Amount:    domain.NewAmount(amount),
		UpdatedAt: at,
	}
	selector := bson.M{"token": doc.Token, "owner": doc.Owner, "spender": doc.Spender}
	if err := r.q.Upsert(ctx, domain.TableAllowances, selector, doc); err != nil {
		ctx.WithFields(log.Fields{"err": err, "selector": selector}).Error("q.Upsert failed")
		return err
	}
	return nil
}

func (r *repo) ListByAccount(ctx bCtx.Ctx, account domain.Address) ([]*balance.Balance, error) {
	qry := bson.M{"account": account.ToLower()}
	res := []*balance.Balance{}
	if err := r.q.Search(ctx, domain.TableBalances, 0, 0, "token", qry, &res); err != nil {
		ctx.WithFields(log.Fields{"err": err, "qry": qry}).Error("q.Search failed")
		return nil, err
	}
	return res, nil
}
