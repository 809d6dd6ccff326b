package staking

import (
	"math/big"
	"time"

	"github.com/x-xyz/launchpad/base/ctx"
	"github.com/x-xyz/launchpad/domain"
	"github.com/x-xyz/launchpad/domain/ledger"
)

type Pool struct {
	Address              domain.Address `json:"address" bson:"address"`
	StakingToken         domain.Address `json:"stakingToken" bson:"stakingToken"`
	RewardToken          domain.Address `json:"rewardToken" bson:"rewardToken"`
	Owner                domain.Address `json:"owner" bson:"owner"`
	RewardRate           domain.Amount  `json:"rewardRate" bson:"rewardRate"`
	TotalStaked          domain.Amount  `json:"totalStaked" bson:"totalStaked"`
	RewardPerTokenStored domain.Amount  `json:"rewardPerTokenStored" bson:"rewardPerTokenStored"`
	LastUpdateTime       time.Time      `json:"lastUpdateTime" bson:"lastUpdateTime"`
	PeriodFinish         *time.Time     `json:"periodFinish,omitempty" bson:"periodFinish,omitempty"`
	CreatedAt            time.Time      `json:"createdAt" bson:"createdAt"`
	UpdatedAt            time.Time      `json:"updatedAt" bson:"updatedAt"`
}

func (p *Pool) State() (*PoolState, error) {
	rate, err := p.RewardRate.Big()
	if err != nil {
		return nil, err
	}
	total, err := p.TotalStaked.Big()
	if err != nil {
		return nil, err
	}
	stored, err := p.RewardPerTokenStored.Big()
	if err != nil {
		return nil, err
	}
	return &PoolState{
		RewardRate:           rate,
		TotalStaked:          total,
		RewardPerTokenStored: stored,
		LastUpdateTime:       p.LastUpdateTime,
		PeriodFinish:         p.PeriodFinish,
	}, nil
}

func (p *Pool) Apply(s *PoolState, at time.Time) {
	p.RewardRate = domain.NewAmount(s.RewardRate)
	p.TotalStaked = domain.NewAmount(s.TotalStaked)
	p.RewardPerTokenStored = domain.NewAmount(s.RewardPerTokenStored)
	p.LastUpdateTime = s.LastUpdateTime
	p.PeriodFinish = s.PeriodFinish
	p.UpdatedAt = at
}

// StakeAccount is created on the first stake and kept at zero balance
type StakeAccount struct {
	Pool               domain.Address `json:"pool" bson:"pool"`
	Owner              domain.Address `json:"owner" bson:"owner"`
	Balance            domain.Amount  `json:"balance" bson:"balance"`
	RewardPerTokenPaid domain.Amount  `json:"rewardPerTokenPaid" bson:"rewardPerTokenPaid"`
	Rewards            domain.Amount  `json:"rewards" bson:"rewards"`
	TotalClaimed       domain.Amount  `json:"totalClaimed" bson:"totalClaimed"`
	LastUpdateTime     time.Time      `json:"lastUpdateTime" bson:"lastUpdateTime"`
}

func NewStakeAccount(pool, owner domain.Address) *StakeAccount {
	return &StakeAccount{
		Pool:               pool.ToLower(),
		Owner:              owner.ToLower(),
		Balance:            "0",
		RewardPerTokenPaid: "0",
		Rewards:            "0",
		TotalClaimed:       "0",
	}
}

func (a *StakeAccount) State() (*AccountState, error) {
	bal, err := a.Balance.Big()
	if err != nil {
		return nil, err
	}
	paid, err := a.RewardPerTokenPaid.Big()
	if err != nil {
		return nil, err
	}
	rewards, err := a.Rewards.Big()
	if err != nil {
		return nil, err
	}
	return &AccountState{Balance: bal, RewardPerTokenPaid: paid, Rewards: rewards}, nil
}

func (a *StakeAccount) Apply(s *AccountState, at time.Time) {
	a.Balance = domain.NewAmount(s.Balance)
	a.RewardPerTokenPaid = domain.NewAmount(s.RewardPerTokenPaid)
	a.Rewards = domain.NewAmount(s.Rewards)
	a.LastUpdateTime = at
}

// AccountView is an account with its reward evaluated at a point in time
type AccountView struct {
	*StakeAccount
	Earned domain.Amount `json:"earned"`
}

// PoolView is a pool with the accumulator evaluated at a point in time
type PoolView struct {
	*Pool
	RewardPerToken domain.Amount `json:"rewardPerToken"`
	RewardBalance  domain.Amount `json:"rewardBalance"`
}

// PoolConfig describes the pool created on first start
type PoolConfig struct {
	StakingToken domain.Address
	RewardToken  domain.Address
	Owner        domain.Address
	RewardRate   *big.Int
	// RewardBudget is minted to the pool when it is created
	RewardBudget *big.Int
}

// LockKey guards the accumulator of a pool
func LockKey(pool domain.Address) string {
	return "staking:" + pool.ToLowerStr()
}

type Repo interface {
	EnsureIndexes(c ctx.Ctx) error
	// FindPool returns domain.ErrNotFound when the pool was never created
	FindPool(c ctx.Ctx, address domain.Address) (*Pool, error)
	UpsertPool(c ctx.Ctx, pool *Pool) error
	// FindAccount returns domain.ErrNotFound when owner never staked
	FindAccount(c ctx.Ctx, pool, owner domain.Address) (*StakeAccount, error)
	FindAccounts(c ctx.Ctx, pool domain.Address) ([]*StakeAccount, error)
	UpsertAccount(c ctx.Ctx, account *StakeAccount) error
}

type UseCase interface {
	// InitPool creates the pool of cfg unless it exists
	InitPool(c ctx.Ctx, cfg PoolConfig) (*Pool, error)

	Stake(c ctx.Ctx, caller domain.Address, amount *big.Int) (*ledger.Receipt, error)
	Withdraw(c ctx.Ctx, caller domain.Address, amount *big.Int) (*ledger.Receipt, error)
	// Claim fails with domain.ErrNothingToClaim and changes nothing when no reward accrued
	Claim(c ctx.Ctx, caller domain.Address) (*ledger.Receipt, error)
	// Exit withdraws the whole balance and claims the reward in one transaction
	Exit(c ctx.Ctx, caller domain.Address) (*ledger.Receipt, error)
	SetRewardRate(c ctx.Ctx, caller domain.Address, rate *big.Int, duration time.Duration) (*ledger.Receipt, error)

	Earned(c ctx.Ctx, account domain.Address) (*big.Int, error)
	GetPool(c ctx.Ctx) (*PoolView, error)
	// GetAccount returns a zero account for an address that never staked
	GetAccount(c ctx.Ctx, account domain.Address) (*AccountView, error)
	Address() domain.Address
}
