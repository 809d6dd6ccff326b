package repository

import (
	"errors"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/x-xyz/launchpad/base/ctx"
	"github.com/x-xyz/launchpad/base/log"
	"github.com/x-xyz/launchpad/domain"
	"github.com/x-xyz/launchpad/domain/nftitem"
	"github.com/x-xyz/launchpad/service/query"
)

func makeFindQuery(opts nftitem.FindAllOptions) bson.M {
	query := bson.M{}
	if opts.Collection != nil {
		query["collection"] = opts.Collection.ToLowerStr()
	}
	if opts.Owner != nil {
		query["owner"] = opts.Owner.ToLowerStr()
	}
	return query
}

type nftitemImpl struct {
	q query.Mongo
}

func NewNftItem(q query.Mongo) nftitem.Repo {
	return &nftitemImpl{q}
}

func (im *nftitemImpl) EnsureIndexes(c ctx.Ctx) error {
	if err := im.q.EnsureIndexes(c, domain.TableNftItems, []query.Index{
		{Keys: bson.D{{Key: "collection", Value: 1}, {Key: "tokenId", Value: 1}}, Unique: true},
		{Keys: bson.D{{Key: "owner", Value: 1}, {Key: "mintedAt", Value: -1}}},
	}); err != nil {
		return err
	}
	return im.q.EnsureIndexes(c, domain.TableOperatorApprovals, []query.Index{
		{Keys: bson.D{{Key: "collection", Value: 1}, {Key: "owner", Value: 1}, {Key: "operator", Value: 1}}, Unique: true},
	})
}

func (im *nftitemImpl) FindAll(c ctx.Ctx, optFns ...nftitem.FindAllOptionsFunc) ([]*nftitem.NftItem, error) {
	opts, err := nftitem.GetFindAllOptions(optFns...)
	if err != nil {
		c.WithField("err", err).Error("nftitem.GetFindAllOptions failed")
		return nil, err
	}

	offset, limit := 0, 0
	if opts.Offset != nil {
		offset = int(*opts.Offset)
	}
	if opts.Limit != nil {
		limit = int(*opts.Limit)
	}

	query := makeFindQuery(opts)
	sort := []string{"-mintedAt", "-_id"}
	res := []*nftitem.NftItem{}
	if err := im.q.SearchNSorts(c, domain.TableNftItems, offset, limit, sort, query, &res); err != nil {
		c.WithFields(log.Fields{
			"err":   err,
			"query": query,
		}).Error("q.SearchNSorts failed")
		return nil, err
	}
	return res, nil
}

func (im *nftitemImpl) FindOne(c ctx.Ctx, collection domain.Address, tokenId domain.TokenId) (*nftitem.NftItem, error) {
	res := &nftitem.NftItem{}
	if err := im.q.FindOne(c, domain.TableNftItems, bson.M{
		"collection": collection.ToLowerStr(),
		"tokenId":    tokenId,
	}, res); errors.Is(err, query.ErrNotFound) {
		return nil, domain.ErrNotFound
	} else if err != nil {
		c.WithFields(log.Fields{
			"err":        err,
			"collection": collection,
			"tokenId":    tokenId,
		}).Error("q.FindOne failed")
		return nil, err
	}
	return res, nil
}

func (im *nftitemImpl) Create(c ctx.Ctx, item *nftitem.NftItem) error {
	if err := im.q.Insert(c, domain.TableNftItems, item); errors.Is(err, query.ErrDuplicateKey) {
		return domain.ErrConflict
	} else if err != nil {
		c.WithFields(log.Fields{
			"err": err,
			"id":  item.ToId(),
		}).Error("q.Insert failed")
		return err
	}
	return nil
}

func (im *nftitemImpl) Update(c ctx.Ctx, item *nftitem.NftItem) error {
	selector := bson.M{
		"collection": item.Collection.ToLowerStr(),
		"tokenId":    item.TokenId,
	}
	patch := bson.M{
		"owner":     item.Owner.ToLowerStr(),
		"approved":  item.Approved.ToLowerStr(),
		"updatedAt": item.UpdatedAt,
	}
	if err := im.q.Patch(c, domain.TableNftItems, selector, patch); errors.Is(err, query.ErrNotFound) {
		return domain.ErrNotFound
	} else if err != nil {
		c.WithFields(log.Fields{
			"err":      err,
			"selector": selector,
		}).Error("q.Patch failed")
		return err
	}
	return nil
}

func (im *nftitemImpl) IsApprovedForAll(c ctx.Ctx, collection, owner, operator domain.Address) (bool, error) {
	res := &nftitem.OperatorApproval{}
	qry := bson.M{
		"collection": collection.ToLowerStr(),
		"owner":      owner.ToLowerStr(),
		"operator":   operator.ToLowerStr(),
	}
	if err := im.q.FindOne(c, domain.TableOperatorApprovals, qry, res); errors.Is(err, query.ErrNotFound) {
		return false, nil
	} else if err != nil {
		c.WithFields(log.Fields{
			"err": err,
			"qry": qry,
		}).Error("q.FindOne failed")
		return false, err
	}
	return res.Approved, nil
}

func (im *nftitemImpl) SetApprovalForAll(c ctx.Ctx, a *nftitem.OperatorApproval) error {
	a.Collection, a.Owner, a.Operator = a.Collection.ToLower(), a.Owner.ToLower(), a.Operator.ToLower()
	selector := bson.M{
		"collection": a.Collection,
		"owner":      a.Owner,
		"operator":   a.Operator,
	}
	if err := im.q.Upsert(c, domain.TableOperatorApprovals, selector, a); err != nil {
		c.WithFields(log.Fields{
			"err":      err,
			"selector": selector,
		}).Error("q.Upsert failed")
		return err
	}
	return nil
}
