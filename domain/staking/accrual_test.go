package staking

import (
	"math/big"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/x-xyz/launchpad/domain"
)

var t0 = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func newPool(rate int64) *PoolState {
	return &PoolState{
		RewardRate:           big.NewInt(rate),
		TotalStaked:          new(big.Int),
		RewardPerTokenStored: new(big.Int),
		LastUpdateTime:       t0,
	}
}

func TestSingleStakerScenario(t *testing.T) {
	p := newPool(1)
	x := NewAccountState()
	require.NoError(t, p.Stake(x, big.NewInt(100), t0))

	now := t0.Add(100 * time.Second)
	assert.Equal(t, int64(100), p.Earned(x, now).Int64())

	reward, err := p.Claim(x, now)
	require.NoError(t, err)
	assert.Equal(t, int64(100), reward.Int64())
	assert.Equal(t, int64(0), p.Earned(x, now).Int64())
}

func TestNoAccrualWithoutStake(t *testing.T) {
	p := newPool(1)
	assert.Equal(t, int64(0), p.RewardPerToken(t0.Add(time.Hour)).Int64())

	x := NewAccountState()
	require.NoError(t, p.Stake(x, big.NewInt(10), t0.Add(time.Hour)))
	assert.Equal(t, int64(0), p.Earned(x, t0.Add(time.Hour)).Int64())
}

func TestSharedDenominator(t *testing.T) {
	p := newPool(10)
	x, y := NewAccountState(), NewAccountState()
	require.NoError(t, p.Stake(x, big.NewInt(100), t0))
	// x alone for 10s earns 100
	require.NoError(t, p.Stake(y, big.NewInt(300), t0.Add(10*time.Second)))
	// then x gets a quarter of 10/s for 20s
	now := t0.Add(30 * time.Second)
	assert.Equal(t, int64(150), p.Earned(x, now).Int64())
	assert.Equal(t, int64(150), p.Earned(y, now).Int64())

	// y leaving does not change what x earned so far
	require.NoError(t, p.Withdraw(y, big.NewInt(300), now))
	assert.Equal(t, int64(150), p.Earned(x, now).Int64())
	assert.Equal(t, int64(250), p.Earned(x, now.Add(10*time.Second)).Int64())
	assert.Equal(t, int64(150), p.Earned(y, now.Add(10*time.Second)).Int64())
}

func TestWithdrawErrors(t *testing.T) {
	p := newPool(1)
	x := NewAccountState()
	require.NoError(t, p.Stake(x, big.NewInt(5), t0))

	assert.ErrorIs(t, p.Withdraw(x, big.NewInt(6), t0), domain.ErrInsufficientBalance)
	assert.ErrorIs(t, p.Withdraw(x, big.NewInt(0), t0), domain.ErrInvalidAmount)
	assert.ErrorIs(t, p.Stake(x, big.NewInt(-1), t0), domain.ErrInvalidAmount)
	assert.Equal(t, int64(5), p.TotalStaked.Int64())
}

func TestClaimNothing(t *testing.T) {
	p := newPool(1)
	x := NewAccountState()
	_, err := p.Claim(x, t0.Add(time.Minute))
	assert.ErrorIs(t, err, domain.ErrNothingToClaim)
	assert.True(t, p.LastUpdateTime.Equal(t0))
}

func TestPeriodFinish(t *testing.T) {
	p := newPool(0)
	require.NoError(t, p.SetRewardRate(big.NewInt(2), 50*time.Second, t0))
	x := NewAccountState()
	require.NoError(t, p.Stake(x, big.NewInt(1), t0))

	assert.Equal(t, int64(100), p.Earned(x, t0.Add(time.Hour)).Int64())

	// a new rate after the end accrues from the time it is set
	later := t0.Add(time.Hour)
	require.NoError(t, p.SetRewardRate(big.NewInt(1), 0, later))
	assert.Nil(t, p.PeriodFinish)
	assert.Equal(t, int64(110), p.Earned(x, later.Add(10*time.Second)).Int64())
}

func TestSetRewardRateSettlesOldRate(t *testing.T) {
	p := newPool(1)
	x := NewAccountState()
	require.NoError(t, p.Stake(x, big.NewInt(1), t0))
	require.NoError(t, p.SetRewardRate(big.NewInt(5), 0, t0.Add(10*time.Second)))
	assert.Equal(t, int64(15), p.Earned(x, t0.Add(11*time.Second)).Int64())
	assert.ErrorIs(t, p.SetRewardRate(big.NewInt(-1), 0, t0), domain.ErrInvalidAmount)
}

func TestConcurrentBalancesMatchTotal(t *testing.T) {
	p := newPool(1e9)
	accounts := make([]*AccountState, 8)
	for i := range accounts {
		accounts[i] = NewAccountState()
	}

	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			rnd := rand.New(rand.NewSource(seed))
			for i := 0; i < 200; i++ {
				a := accounts[rnd.Intn(len(accounts))]
				amount := big.NewInt(rnd.Int63n(1000) + 1)
				now := t0.Add(time.Duration(i) * time.Second)

				mu.Lock()
				switch rnd.Intn(3) {
				case 0:
					_ = p.Stake(a, amount, now)
				case 1:
					_ = p.Withdraw(a, amount, now)
				default:
					_, _ = p.Claim(a, now)
				}
				sum := new(big.Int)
				for _, acc := range accounts {
					sum.Add(sum, acc.Balance)
				}
				assert.Equal(t, 0, sum.Cmp(p.TotalStaked))
				mu.Unlock()
			}
		}(int64(w))
	}
	wg.Wait()
}
