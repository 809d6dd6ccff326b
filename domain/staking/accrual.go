package staking

import (
	"math/big"
	"time"

	"github.com/x-xyz/launchpad/domain"
)

// Precision scales the reward per token accumulator
var Precision = big.NewInt(1e18)

// DefaultRewardRate is 0.1 reward token per second
var DefaultRewardRate = new(big.Int).Div(Precision, big.NewInt(10))

// PoolState is the numeric state of a pool
type PoolState struct {
	RewardRate           *big.Int
	TotalStaked          *big.Int
	RewardPerTokenStored *big.Int
	LastUpdateTime       time.Time
	// PeriodFinish stops accrual, nil accrues forever
	PeriodFinish *time.Time
}

// AccountState is the numeric state of one stake
type AccountState struct {
	Balance            *big.Int
	RewardPerTokenPaid *big.Int
	Rewards            *big.Int
}

func NewAccountState() *AccountState {
	return &AccountState{
		Balance:            new(big.Int),
		RewardPerTokenPaid: new(big.Int),
		Rewards:            new(big.Int),
	}
}

func (p *PoolState) LastTimeRewardApplicable(now time.Time) time.Time {
	if p.PeriodFinish != nil && p.PeriodFinish.Before(now) {
		return *p.PeriodFinish
	}
	return now
}

func (p *PoolState) RewardPerToken(now time.Time) *big.Int {
	if p.TotalStaked.Sign() == 0 {
		return new(big.Int).Set(p.RewardPerTokenStored)
	}
	elapsed := p.LastTimeRewardApplicable(now).Unix() - p.LastUpdateTime.Unix()
	if elapsed <= 0 {
		return new(big.Int).Set(p.RewardPerTokenStored)
	}
	inc := new(big.Int).Mul(big.NewInt(elapsed), p.RewardRate)
	inc.Mul(inc, Precision)
	inc.Quo(inc, p.TotalStaked)
	return inc.Add(inc, p.RewardPerTokenStored)
}

// Earned is the reward of a at now, including what was settled before
func (p *PoolState) Earned(a *AccountState, now time.Time) *big.Int {
	delta := new(big.Int).Sub(p.RewardPerToken(now), a.RewardPerTokenPaid)
	earned := delta.Mul(delta, a.Balance)
	earned.Quo(earned, Precision)
	return earned.Add(earned, a.Rewards)
}

// Settle moves the accumulator to now and, when a is not nil, checkpoints a against it
func (p *PoolState) Settle(a *AccountState, now time.Time) {
	rpt := p.RewardPerToken(now)
	if a != nil {
		a.Rewards = p.Earned(a, now)
		a.RewardPerTokenPaid = new(big.Int).Set(rpt)
	}
	p.RewardPerTokenStored = rpt
	if applicable := p.LastTimeRewardApplicable(now); applicable.After(p.LastUpdateTime) {
		p.LastUpdateTime = applicable
	}
}

func (p *PoolState) Stake(a *AccountState, amount *big.Int, now time.Time) error {
	if amount == nil || amount.Sign() <= 0 {
		return domain.ErrInvalidAmount
	}
	p.Settle(a, now)
	a.Balance = new(big.Int).Add(a.Balance, amount)
	p.TotalStaked = new(big.Int).Add(p.TotalStaked, amount)
	return nil
}

func (p *PoolState) Withdraw(a *AccountState, amount *big.Int, now time.Time) error {
	if amount == nil || amount.Sign() <= 0 {
		return domain.ErrInvalidAmount
	}
	if a.Balance.Cmp(amount) < 0 {
		return domain.ErrInsufficientBalance
	}
	p.Settle(a, now)
	a.Balance = new(big.Int).Sub(a.Balance, amount)
	p.TotalStaked = new(big.Int).Sub(p.TotalStaked, amount)
	return nil
}

// Claim settles a and takes its rewards, a zero reward leaves both states untouched
func (p *PoolState) Claim(a *AccountState, now time.Time) (*big.Int, error) {
	if p.Earned(a, now).Sign() == 0 {
		return nil, domain.ErrNothingToClaim
	}
	p.Settle(a, now)
	reward := a.Rewards
	a.Rewards = new(big.Int)
	return reward, nil
}

// SetRewardRate settles the accumulator under the old rate first. A zero duration removes the period end.
func (p *PoolState) SetRewardRate(rate *big.Int, duration time.Duration, now time.Time) error {
	if rate == nil || rate.Sign() < 0 || duration < 0 {
		return domain.ErrInvalidAmount
	}
	p.Settle(nil, now)
	p.LastUpdateTime = now
	p.RewardRate = new(big.Int).Set(rate)
	if duration > 0 {
		finish := now.Add(duration)
		p.PeriodFinish = &finish
	} else {
		p.PeriodFinish = nil
	}
	return nil
}
