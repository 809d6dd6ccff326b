package usecase

import (
	"errors"
	"math/big"
	"time"

	bAbi "github.com/x-xyz/launchpad/base/abi"
	bCtx "github.com/x-xyz/launchpad/base/ctx"
	"github.com/x-xyz/launchpad/base/log"
	"github.com/x-xyz/launchpad/domain"
	"github.com/x-xyz/launchpad/domain/balance"
	"github.com/x-xyz/launchpad/domain/ledger"
	"github.com/x-xyz/launchpad/domain/staking"
)

// errPoolExists aborts an init that lost the race to another creator
var errPoolExists = errors.New("staking pool exists")

type Cfg struct {
	Repo    staking.Repo
	Ledger  ledger.UseCase
	Bank    balance.UseCase
	Address domain.Address
	// Now evaluates reads, writes use the block time. time.Now when nil.
	Now func() time.Time
}

type uc struct {
	repo    staking.Repo
	ledger  ledger.UseCase
	bank    balance.UseCase
	address domain.Address
	now     func() time.Time
}

func New(cfg *Cfg) staking.UseCase {
	u := &uc{
		repo:    cfg.Repo,
		ledger:  cfg.Ledger,
		bank:    cfg.Bank,
		address: cfg.Address.ToLower(),
		now:     cfg.Now,
	}
	if u.now == nil {
		u.now = time.Now
	}
	return u
}

func (u *uc) Address() domain.Address {
	return u.address
}

func (u *uc) InitPool(c bCtx.Ctx, cfg staking.PoolConfig) (*staking.Pool, error) {
	if pool, err := u.repo.FindPool(c, u.address); err == nil {
		return pool, nil
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	rate := cfg.RewardRate
	if rate == nil {
		rate = staking.DefaultRewardRate
	}
	var pool *staking.Pool
	call := ledger.Call{
		From:   cfg.Owner,
		To:     u.address,
		Method: "constructor(address,uint256)",
		Locks:  []string{staking.LockKey(u.address), balance.LockKey(cfg.RewardToken, u.address)},
	}
	_, err := u.ledger.Execute(c, call, func(c bCtx.Ctx, tx *ledger.Tx) error {
		if existing, err := u.repo.FindPool(c, u.address); err == nil {
			pool = existing
			return errPoolExists
		} else if !errors.Is(err, domain.ErrNotFound) {
			return err
		}
		pool = &staking.Pool{
			Address:              u.address,
			StakingToken:         cfg.StakingToken.ToLower(),
			RewardToken:          cfg.RewardToken.ToLower(),
			Owner:                cfg.Owner.ToLower(),
			RewardRate:           domain.NewAmount(rate),
			TotalStaked:          domain.ZeroAmount,
			RewardPerTokenStored: domain.ZeroAmount,
			LastUpdateTime:       tx.BlockTime,
			CreatedAt:            tx.BlockTime,
			UpdatedAt:            tx.BlockTime,
		}
		tx.SetContractAddress(u.address)
		if err := u.repo.UpsertPool(c, pool); err != nil {
			return err
		}
		if cfg.RewardBudget != nil && cfg.RewardBudget.Sign() > 0 {
			return u.bank.Mint(c, tx, pool.RewardToken, u.address, cfg.RewardBudget)
		}
		return nil
	})
	if errors.Is(err, errPoolExists) {
		return pool, nil
	} else if err != nil {
		c.WithFields(log.Fields{"pool": u.address, "err": err}).Error("init staking pool failed")
		return nil, err
	}
	c.WithFields(log.Fields{"pool": u.address, "stakingToken": pool.StakingToken, "rewardRate": pool.RewardRate}).Info("staking pool created")
	return pool, nil
}

// execute runs fn on the decoded pool and account of caller and persists both when fn succeeds
func (u *uc) execute(c bCtx.Ctx, caller domain.Address, method string, fn func(c bCtx.Ctx, tx *ledger.Tx, pool *staking.Pool, p *staking.PoolState, a *staking.AccountState, acct *staking.StakeAccount) error) (*ledger.Receipt, error) {
	pool, err := u.repo.FindPool(c, u.address)
	if err != nil {
		return nil, err
	}
	call := ledger.Call{
		From:   caller,
		To:     u.address,
		Method: bAbi.MethodSig(bAbi.StakingPoolABI, method),
		Locks: []string{
			staking.LockKey(u.address),
			balance.LockKey(pool.StakingToken, caller),
			balance.LockKey(pool.StakingToken, u.address),
			balance.LockKey(pool.RewardToken, caller),
			balance.LockKey(pool.RewardToken, u.address),
		},
	}
	return u.ledger.Execute(c, call, func(c bCtx.Ctx, tx *ledger.Tx) error {
		pool, err := u.repo.FindPool(c, u.address)
		if err != nil {
			return err
		}
		acct, err := u.repo.FindAccount(c, u.address, caller)
		if errors.Is(err, domain.ErrNotFound) {
			acct = staking.NewStakeAccount(u.address, caller)
		} else if err != nil {
			return err
		}
		p, err := pool.State()
		if err != nil {
			return err
		}
		a, err := acct.State()
		if err != nil {
			return err
		}

		if err := fn(c, tx, pool, p, a, acct); err != nil {
			return err
		}

		pool.Apply(p, tx.BlockTime)
		acct.Apply(a, tx.BlockTime)
		if err := u.repo.UpsertPool(c, pool); err != nil {
			return err
		}
		return u.repo.UpsertAccount(c, acct)
	})
}

func (u *uc) Stake(c bCtx.Ctx, caller domain.Address, amount *big.Int) (*ledger.Receipt, error) {
	if amount == nil || amount.Sign() <= 0 {
		return nil, domain.ErrInvalidAmount
	}
	return u.execute(c, caller, "stake", func(c bCtx.Ctx, tx *ledger.Tx, pool *staking.Pool, p *staking.PoolState, a *staking.AccountState, _ *staking.StakeAccount) error {
		if err := p.Stake(a, amount, tx.BlockTime); err != nil {
			return err
		}
		if err := u.pull(c, tx, pool.StakingToken, caller, amount); err != nil {
			return err
		}
		return tx.Emit(bAbi.PackStakedLog(u.address.ToCommon(), &bAbi.StakedLog{
			User:   caller.ToCommon(),
			Amount: amount,
		}))
	})
}

// pull moves amount of the staking token from caller into the pool. Erc20 needs an allowance, the native coin is taken directly.
func (u *uc) pull(c bCtx.Ctx, tx *ledger.Tx, token, caller domain.Address, amount *big.Int) error {
	if !token.Equals(domain.NativeToken) {
		return u.bank.TransferFrom(c, tx, token, u.address, caller, u.address, amount)
	}
	err := u.bank.Transfer(c, tx, token, caller, u.address, amount)
	if errors.Is(err, domain.ErrInsufficientBalance) {
		return domain.ErrTransferFailed
	}
	return err
}

func (u *uc) Withdraw(c bCtx.Ctx, caller domain.Address, amount *big.Int) (*ledger.Receipt, error) {
	if amount == nil || amount.Sign() <= 0 {
		return nil, domain.ErrInvalidAmount
	}
	return u.execute(c, caller, "withdraw", func(c bCtx.Ctx, tx *ledger.Tx, pool *staking.Pool, p *staking.PoolState, a *staking.AccountState, _ *staking.StakeAccount) error {
		return u.withdraw(c, tx, pool, p, a, caller, amount)
	})
}

func (u *uc) withdraw(c bCtx.Ctx, tx *ledger.Tx, pool *staking.Pool, p *staking.PoolState, a *staking.AccountState, caller domain.Address, amount *big.Int) error {
	if err := p.Withdraw(a, amount, tx.BlockTime); err != nil {
		return err
	}
	if err := u.bank.Transfer(c, tx, pool.StakingToken, u.address, caller, amount); err != nil {
		return err
	}
	return tx.Emit(bAbi.PackWithdrawnLog(u.address.ToCommon(), &bAbi.WithdrawnLog{
		User:   caller.ToCommon(),
		Amount: amount,
	}))
}

func (u *uc) Claim(c bCtx.Ctx, caller domain.Address) (*ledger.Receipt, error) {
	return u.execute(c, caller, "getReward", func(c bCtx.Ctx, tx *ledger.Tx, pool *staking.Pool, p *staking.PoolState, a *staking.AccountState, acct *staking.StakeAccount) error {
		return u.claim(c, tx, pool, p, a, acct, caller)
	})
}

func (u *uc) claim(c bCtx.Ctx, tx *ledger.Tx, pool *staking.Pool, p *staking.PoolState, a *staking.AccountState, acct *staking.StakeAccount, caller domain.Address) error {
	reward, err := p.Claim(a, tx.BlockTime)
	if err != nil {
		return err
	}
	if err := u.bank.Transfer(c, tx, pool.RewardToken, u.address, caller, reward); err != nil {
		c.WithFields(log.Fields{"pool": u.address, "reward": reward, "err": err}).Warn("reward payout failed")
		return err
	}
	claimed, err := acct.TotalClaimed.Big()
	if err != nil {
		return err
	}
	acct.TotalClaimed = domain.NewAmount(claimed.Add(claimed, reward))
	return tx.Emit(bAbi.PackRewardPaidLog(u.address.ToCommon(), &bAbi.RewardPaidLog{
		User:   caller.ToCommon(),
		Reward: reward,
	}))
}

func (u *uc) Exit(c bCtx.Ctx, caller domain.Address) (*ledger.Receipt, error) {
	return u.execute(c, caller, "exit", func(c bCtx.Ctx, tx *ledger.Tx, pool *staking.Pool, p *staking.PoolState, a *staking.AccountState, acct *staking.StakeAccount) error {
		withdrawn := false
		if a.Balance.Sign() > 0 {
			if err := u.withdraw(c, tx, pool, p, a, caller, new(big.Int).Set(a.Balance)); err != nil {
				return err
			}
			withdrawn = true
		}
		err := u.claim(c, tx, pool, p, a, acct, caller)
		if errors.Is(err, domain.ErrNothingToClaim) && withdrawn {
			return nil
		}
		return err
	})
}

func (u *uc) SetRewardRate(c bCtx.Ctx, caller domain.Address, rate *big.Int, duration time.Duration) (*ledger.Receipt, error) {
	pool, err := u.repo.FindPool(c, u.address)
	if err != nil {
		return nil, err
	}
	if !pool.Owner.Equals(caller) {
		return nil, domain.ErrNotPoolOwner
	}

	call := ledger.Call{
		From:   caller,
		To:     u.address,
		Method: bAbi.MethodSig(bAbi.StakingPoolABI, "setRewardRate"),
		Locks:  []string{staking.LockKey(u.address)},
	}
	return u.ledger.Execute(c, call, func(c bCtx.Ctx, tx *ledger.Tx) error {
		pool, err := u.repo.FindPool(c, u.address)
		if err != nil {
			return err
		}
		p, err := pool.State()
		if err != nil {
			return err
		}
		if err := p.SetRewardRate(rate, duration, tx.BlockTime); err != nil {
			return err
		}
		pool.Apply(p, tx.BlockTime)
		if err := u.repo.UpsertPool(c, pool); err != nil {
			return err
		}

		finish := new(big.Int)
		if p.PeriodFinish != nil {
			finish.SetInt64(p.PeriodFinish.Unix())
		}
		return tx.Emit(bAbi.PackRewardRateUpdatedLog(u.address.ToCommon(), &bAbi.RewardRateUpdatedLog{
			RewardRate:   rate,
			PeriodFinish: finish,
		}))
	})
}

func (u *uc) Earned(c bCtx.Ctx, account domain.Address) (*big.Int, error) {
	view, err := u.GetAccount(c, account)
	if err != nil {
		return nil, err
	}
	return view.Earned.Big()
}

func (u *uc) GetPool(c bCtx.Ctx) (*staking.PoolView, error) {
	pool, err := u.repo.FindPool(c, u.address)
	if err != nil {
		return nil, err
	}
	p, err := pool.State()
	if err != nil {
		return nil, err
	}
	rewards, err := u.bank.BalanceOf(c, pool.RewardToken, u.address)
	if err != nil {
		return nil, err
	}
	return &staking.PoolView{
		Pool:           pool,
		RewardPerToken: domain.NewAmount(p.RewardPerToken(u.now())),
		RewardBalance:  domain.NewAmount(rewards),
	}, nil
}

func (u *uc) GetAccount(c bCtx.Ctx, account domain.Address) (*staking.AccountView, error) {
	pool, err := u.repo.FindPool(c, u.address)
	if err != nil {
		return nil, err
	}
	acct, err := u.repo.FindAccount(c, u.address, account)
	if errors.Is(err, domain.ErrNotFound) {
		acct = staking.NewStakeAccount(u.address, account)
	} else if err != nil {
		return nil, err
	}
	p, err := pool.State()
	if err != nil {
		return nil, err
	}
	a, err := acct.State()
	if err != nil {
		return nil, err
	}
	return &staking.AccountView{
		StakeAccount: acct,
		Earned:       domain.NewAmount(p.Earned(a, u.now())),
	}, nil
}
