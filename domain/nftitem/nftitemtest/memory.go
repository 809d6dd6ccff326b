// Package nftitemtest keeps nft items in memory for usecase tests
package nftitemtest

import (
	"sort"
	"sync"

	"github.com/x-xyz/launchpad/base/ctx"
	"github.com/x-xyz/launchpad/domain"
	"github.com/x-xyz/launchpad/domain/nftitem"
)

type operatorKey struct {
	collection, owner, operator domain.Address
}

type Repo struct {
	mu        sync.Mutex
	items     map[nftitem.Id]nftitem.NftItem
	operators map[operatorKey]bool
}

func NewRepo() *Repo {
	return &Repo{
		items:     map[nftitem.Id]nftitem.NftItem{},
		operators: map[operatorKey]bool{},
	}
}

func (r *Repo) Snapshot() func() {
	r.mu.Lock()
	defer r.mu.Unlock()
	items := make(map[nftitem.Id]nftitem.NftItem, len(r.items))
	for k, v := range r.items {
		items[k] = v
	}
	operators := make(map[operatorKey]bool, len(r.operators))
	for k, v := range r.operators {
		operators[k] = v
	}
	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.items = items
		r.operators = operators
	}
}

func (r *Repo) EnsureIndexes(ctx.Ctx) error {
	return nil
}

func toId(collection domain.Address, tokenId domain.TokenId) nftitem.Id {
	return nftitem.Id{Collection: collection.ToLower(), TokenId: tokenId}
}

func (r *Repo) FindOne(_ ctx.Ctx, collection domain.Address, tokenId domain.TokenId) (*nftitem.NftItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[toId(collection, tokenId)]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &item, nil
}

func (r *Repo) FindAll(_ ctx.Ctx, optFns ...nftitem.FindAllOptionsFunc) ([]*nftitem.NftItem, error) {
	opts, err := nftitem.GetFindAllOptions(optFns...)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	res := []*nftitem.NftItem{}
	for _, item := range r.items {
		item := item
		if opts.Collection != nil && !item.Collection.Equals(*opts.Collection) {
			continue
		}
		if opts.Owner != nil && !item.Owner.Equals(*opts.Owner) {
			continue
		}
		res = append(res, &item)
	}
	sort.Slice(res, func(i, j int) bool {
		if !res[i].MintedAt.Equal(res[j].MintedAt) {
			return res[i].MintedAt.After(res[j].MintedAt)
		}
		return res[i].MintTxHash > res[j].MintTxHash
	})
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

func (r *Repo) Create(_ ctx.Ctx, item *nftitem.NftItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := toId(item.Collection, item.TokenId)
	if _, ok := r.items[id]; ok {
		return domain.ErrConflict
	}
	r.items[id] = *item
	return nil
}

func (r *Repo) Update(_ ctx.Ctx, item *nftitem.NftItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := toId(item.Collection, item.TokenId)
	saved, ok := r.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	saved.Owner = item.Owner
	saved.Approved = item.Approved
	saved.UpdatedAt = item.UpdatedAt
	r.items[id] = saved
	return nil
}

func (r *Repo) IsApprovedForAll(_ ctx.Ctx, collection, owner, operator domain.Address) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.operators[operatorKey{collection.ToLower(), owner.ToLower(), operator.ToLower()}], nil
}

func (r *Repo) SetApprovalForAll(_ ctx.Ctx, a *nftitem.OperatorApproval) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.operators[operatorKey{a.Collection.ToLower(), a.Owner.ToLower(), a.Operator.ToLower()}] = a.Approved
	return nil
}
