package repository

import (
	"errors"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/x-xyz/launchpad/base/ctx"
	"github.com/x-xyz/launchpad/base/log"
	"github.com/x-xyz/launchpad/domain"
	"github.com/x-xyz/launchpad/domain/marketplace"
	"github.com/x-xyz/launchpad/service/query"
)

func makeFindQuery(opts marketplace.FindAllOptions) bson.M {
	query := bson.M{}
	if opts.Collection != nil {
		query["collection"] = opts.Collection.ToLowerStr()
	}
	if opts.Seller != nil {
		query["seller"] = opts.Seller.ToLowerStr()
	}
	if opts.Active != nil {
		query["active"] = *opts.Active
	}
	if opts.MinPrice != nil || opts.MaxPrice != nil {
		price := bson.M{}
		if opts.MinPrice != nil {
			price["$gte"] = *opts.MinPrice
		}
		if opts.MaxPrice != nil {
			price["$lte"] = *opts.MaxPrice
		}
		query["priceInEther"] = price
	}
	return query
}

type listingImpl struct {
	q query.Mongo
}

func NewListing(q query.Mongo) marketplace.Repo {
	return &listingImpl{q}
}

func (im *listingImpl) EnsureIndexes(c ctx.Ctx) error {
	return im.q.EnsureIndexes(c, domain.TableListings, []query.Index{
		{Keys: bson.D{{Key: "collection", Value: 1}, {Key: "tokenId", Value: 1}}, Unique: true},
		{Keys: bson.D{{Key: "active", Value: 1}, {Key: "listedBlock", Value: -1}}},
		{Keys: bson.D{{Key: "seller", Value: 1}, {Key: "active", Value: 1}}},
	})
}

func (im *listingImpl) FindOne(c ctx.Ctx, collection domain.Address, tokenId domain.TokenId) (*marketplace.Listing, error) {
	res := &marketplace.Listing{}
	if err := im.q.FindOne(c, domain.TableListings, bson.M{
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

func (im *listingImpl) FindAll(c ctx.Ctx, optFns ...marketplace.FindAllOptionsFunc) ([]*marketplace.Listing, error) {
	opts, err := marketplace.GetFindAllOptions(optFns...)
	if err != nil {
		c.WithField("err", err).Error("marketplace.GetFindAllOptions failed")
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
	res := []*marketplace.Listing{}
	if err := im.q.SearchNSorts(c, domain.TableListings, offset, limit, []string{"-listedBlock"}, query, &res); err != nil {
		c.WithFields(log.Fields{
			"err":   err,
			"query": query,
		}).Error("q.SearchNSorts failed")
		return nil, err
	}
	return res, nil
}

func (im *listingImpl) Upsert(c ctx.Ctx, listing *marketplace.Listing) error {
	listing.Collection, listing.Seller = listing.Collection.ToLower(), listing.Seller.ToLower()
	selector := bson.M{
		"collection": listing.Collection,
		"tokenId":    listing.TokenId,
	}
	if err := im.q.Upsert(c, domain.TableListings, selector, listing); err != nil {
		c.WithFields(log.Fields{
			"err":      err,
			"selector": selector,
		}).Error("q.Upsert failed")
		return err
	}
	return nil
}
