// Package assettest keeps deployed assets in memory for usecase tests
package assettest

import (
	"sort"
	"sync"

	"github.com/x-xyz/launchpad/base/ctx"
	"github.com/x-xyz/launchpad/domain"
	"github.com/x-xyz/launchpad/domain/asset"
)

type Repo struct {
	mu     sync.Mutex
	assets map[domain.Address]asset.DeployedAsset
}

func NewRepo() *Repo {
	return &Repo{assets: map[domain.Address]asset.DeployedAsset{}}
}

func (r *Repo) Snapshot() func() {
	r.mu.Lock()
	defer r.mu.Unlock()
	saved := make(map[domain.Address]asset.DeployedAsset, len(r.assets))
	for k, v := range r.assets {
		saved[k] = v
	}
	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.assets = saved
	}
}

func (r *Repo) EnsureIndexes(ctx.Ctx) error {
	return nil
}

func (r *Repo) Insert(_ ctx.Ctx, a *asset.DeployedAsset) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.assets[a.Address.ToLower()]; ok {
		return domain.ErrConflict
	}
	r.assets[a.Address.ToLower()] = *a
	return nil
}

func (r *Repo) FindOne(_ ctx.Ctx, address domain.Address) (*asset.DeployedAsset, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.assets[address.ToLower()]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &a, nil
}

func (r *Repo) FindAll(_ ctx.Ctx, opts asset.ListOptions) ([]*asset.DeployedAsset, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	res := []*asset.DeployedAsset{}
	for _, a := range r.assets {
		a := a
		if opts.Kind != nil && a.Kind != *opts.Kind {
			continue
		}
		if opts.Creator != nil && !a.Creator.Equals(*opts.Creator) {
			continue
		}
		res = append(res, &a)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].BlockNumber < res[j].BlockNumber })
	return res, nil
}

func (r *Repo) IncrNextTokenId(_ ctx.Ctx, address domain.Address) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.assets[address.ToLower()]
	if !ok {
		return 0, domain.ErrNotFound
	}
	a.NextTokenId++
	r.assets[address.ToLower()] = a
	return a.NextTokenId, nil
}
