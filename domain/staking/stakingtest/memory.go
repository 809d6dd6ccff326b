// Package stakingtest keeps pools and stake accounts in memory for usecase tests
package stakingtest

import (
	"sort"
	"sync"

	"github.com/x-xyz/launchpad/base/ctx"
	"github.com/x-xyz/launchpad/domain"
	"github.com/x-xyz/launchpad/domain/staking"
)

type accountKey struct {
	pool  domain.Address
	owner domain.Address
}

type Repo struct {
	mu       sync.Mutex
	pools    map[domain.Address]staking.Pool
	accounts map[accountKey]staking.StakeAccount
}

func NewRepo() *Repo {
	return &Repo{
		pools:    map[domain.Address]staking.Pool{},
		accounts: map[accountKey]staking.StakeAccount{},
	}
}

func (r *Repo) Snapshot() func() {
	r.mu.Lock()
	defer r.mu.Unlock()
	pools := make(map[domain.Address]staking.Pool, len(r.pools))
	for k, v := range r.pools {
		pools[k] = v
	}
	accounts := make(map[accountKey]staking.StakeAccount, len(r.accounts))
	for k, v := range r.accounts {
		accounts[k] = v
	}
	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.pools, r.accounts = pools, accounts
	}
}

func (r *Repo) EnsureIndexes(ctx.Ctx) error {
	return nil
}

func (r *Repo) FindPool(_ ctx.Ctx, address domain.Address) (*staking.Pool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.pools[address.ToLower()]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

func (r *Repo) UpsertPool(_ ctx.Ctx, p *staking.Pool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pools[p.Address.ToLower()] = *p
	return nil
}

func (r *Repo) FindAccount(_ ctx.Ctx, pool, owner domain.Address) (*staking.StakeAccount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.accounts[accountKey{pool.ToLower(), owner.ToLower()}]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &a, nil
}

func (r *Repo) FindAccounts(_ ctx.Ctx, pool domain.Address) ([]*staking.StakeAccount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	res := []*staking.StakeAccount{}
	for k, a := range r.accounts {
		a := a
		if k.pool == pool.ToLower() {
			res = append(res, &a)
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Owner < res[j].Owner })
	return res, nil
}

func (r *Repo) UpsertAccount(_ ctx.Ctx, a *staking.StakeAccount) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.accounts[accountKey{a.Pool.ToLower(), a.Owner.ToLower()}] = *a
	return nil
}
