// Package marketplacetest keeps listings in memory for usecase tests
package marketplacetest

import (
	"sort"
	"sync"

	"github.com/x-xyz/launchpad/base/ctx"
	"github.com/x-xyz/launchpad/domain"
	"github.com/x-xyz/launchpad/domain/marketplace"
)

type listingKey struct {
	collection domain.Address
	tokenId    domain.TokenId
}

type Repo struct {
	mu       sync.Mutex
	listings map[listingKey]marketplace.Listing
}

func NewRepo() *Repo {
	return &Repo{listings: map[listingKey]marketplace.Listing{}}
}

func (r *Repo) Snapshot() func() {
	r.mu.Lock()
	defer r.mu.Unlock()
	saved := make(map[listingKey]marketplace.Listing, len(r.listings))
	for k, v := range r.listings {
		saved[k] = v
	}
	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.listings = saved
	}
}

func (r *Repo) EnsureIndexes(ctx.Ctx) error {
	return nil
}

func (r *Repo) FindOne(_ ctx.Ctx, collection domain.Address, tokenId domain.TokenId) (*marketplace.Listing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.listings[listingKey{collection.ToLower(), tokenId}]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &l, nil
}

func (r *Repo) FindAll(_ ctx.Ctx, optFns ...marketplace.FindAllOptionsFunc) ([]*marketplace.Listing, error) {
	opts, err := marketplace.GetFindAllOptions(optFns...)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	res := []*marketplace.Listing{}
	for _, l := range r.listings {
		l := l
		switch {
		case opts.Collection != nil && !l.Collection.Equals(*opts.Collection),
			opts.Seller != nil && !l.Seller.Equals(*opts.Seller),
			opts.Active != nil && l.Active != *opts.Active,
			opts.MinPrice != nil && l.PriceInEther < *opts.MinPrice,
			opts.MaxPrice != nil && l.PriceInEther > *opts.MaxPrice:
			continue
		}
		res = append(res, &l)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].ListedBlock > res[j].ListedBlock })
	if opts.Offset != nil && opts.Limit != nil {
		start := int(*opts.Offset)
		if start > len(res) {
			start = len(res)
		}
		end := start + int(*opts.Limit)
		if end > len(res) {
			end = len(res)
		}
		res = res[start:end]
	}
	return res, nil
}

func (r *Repo) Upsert(_ ctx.Ctx, l *marketplace.Listing) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listings[listingKey{l.Collection.ToLower(), l.TokenId}] = *l
	return nil
}
