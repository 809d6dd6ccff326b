// Package balancetest keeps balances in memory for usecase tests
package balancetest

import (
	"math/big"
	"sort"
	"sync"
	"time"

	"github.com/x-xyz/launchpad/base/ctx"
	"github.com/x-xyz/launchpad/domain"
	"github.com/x-xyz/launchpad/domain/balance"
)

type balanceKey struct {
	token, account domain.Address
}

type allowanceKey struct {
	token, owner, spender domain.Address
}

type Repo struct {
	mu         sync.Mutex
	balances   map[balanceKey]*big.Int
	allowances map[allowanceKey]*big.Int
}

func NewRepo() *Repo {
	return &Repo{
		balances:   map[balanceKey]*big.Int{},
		allowances: map[allowanceKey]*big.Int{},
	}
}

func (r *Repo) Snapshot() func() {
	r.mu.Lock()
	defer r.mu.Unlock()
	balances := copyMap(r.balances)
	allowances := copyMap(r.allowances)
	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.balances = balances
		r.allowances = allowances
	}
}

func copyMap[K comparable](m map[K]*big.Int) map[K]*big.Int {
	res := make(map[K]*big.Int, len(m))
	for k, v := range m {
		res[k] = new(big.Int).Set(v)
	}
	return res
}

func (r *Repo) EnsureIndexes(ctx.Ctx) error {
	return nil
}

func (r *Repo) Get(_ ctx.Ctx, token, account domain.Address) (*big.Int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if v, ok := r.balances[balanceKey{token.ToLower(), account.ToLower()}]; ok {
		return new(big.Int).Set(v), nil
	}
	return new(big.Int), nil
}

func (r *Repo) Set(_ ctx.Ctx, token, account domain.Address, amount *big.Int, _ time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.balances[balanceKey{token.ToLower(), account.ToLower()}] = new(big.Int).Set(amount)
	return nil
}

func (r *Repo) GetAllowance(_ ctx.Ctx, token, owner, spender domain.Address) (*big.Int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if v, ok := r.allowances[allowanceKey{token.ToLower(), owner.ToLower(), spender.ToLower()}]; ok {
		return new(big.Int).Set(v), nil
	}
	return new(big.Int), nil
}

func (r *Repo) SetAllowance(_ ctx.Ctx, token, owner, spender domain.Address, amount *big.Int, _ time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.allowances[allowanceKey{token.ToLower(), owner.ToLower(), spender.ToLower()}] = new(big.Int).Set(amount)
	return nil
}

func (r *Repo) ListByAccount(_ ctx.Ctx, account domain.Address) ([]*balance.Balance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	res := []*balance.Balance{}
	for k, v := range r.balances {
		if k.account != account.ToLower() {
			continue
		}
		res = append(res, &balance.Balance{
			Token:   k.token,
			Account: account.ToLower(),
			Amount:  domain.NewAmount(v),
		})
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Token < res[j].Token })
	return res, nil
}
