package usecase

import (
	"math/big"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	bAbi "github.com/x-xyz/launchpad/base/abi"
	"github.com/x-xyz/launchpad/base/ctx"
	"github.com/x-xyz/launchpad/domain"
	"github.com/x-xyz/launchpad/domain/balance"
	"github.com/x-xyz/launchpad/domain/balance/balancetest"
	"github.com/x-xyz/launchpad/domain/ledger"
	"github.com/x-xyz/launchpad/domain/ledger/ledgertest"
	"github.com/x-xyz/launchpad/domain/staking"
	"github.com/x-xyz/launchpad/domain/staking/stakingtest"
	balanceUC "github.com/x-xyz/launchpad/stores/balance/usecase"
)

var (
	operator    = domain.Address("0x00000000000000000000000000000000000000f0")
	pool        = domain.Address("0x00000000000000000000000000000000000000f4")
	stakeToken  = domain.Address("0x00000000000000000000000000000000000000a1")
	rewardToken = domain.Address("0x00000000000000000000000000000000000000a2")
	owner       = domain.Address("0x9999999999999999999999999999999999999999")
	alice       = domain.Address("0x1111111111111111111111111111111111111111")
	bob         = domain.Address("0x2222222222222222222222222222222222222222")
)

type stakingSuite struct {
	suite.Suite

	ctx    ctx.Ctx
	mu     sync.Mutex
	now    time.Time
	ledger *ledgertest.Executor
	repo   *stakingtest.Repo
	bank   balance.UseCase
	uc     staking.UseCase
}

func TestStakingSuite(t *testing.T) {
	suite.Run(t, new(stakingSuite))
}

func (s *stakingSuite) clock() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

func (s *stakingSuite) advance(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = s.now.Add(d)
}

func (s *stakingSuite) SetupTest() {
	s.ctx = ctx.Background()
	s.now = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	balances := balancetest.NewRepo()
	s.repo = stakingtest.NewRepo()
	s.ledger = ledgertest.NewExecutor(balances, s.repo)
	s.ledger.Now = s.clock
	s.bank = balanceUC.New(&balanceUC.Cfg{Repo: balances, Ledger: s.ledger, Operator: operator})
	s.uc = New(&Cfg{Repo: s.repo, Ledger: s.ledger, Bank: s.bank, Address: pool, Now: s.clock})

	_, err := s.uc.InitPool(s.ctx, staking.PoolConfig{
		StakingToken: stakeToken,
		RewardToken:  rewardToken,
		Owner:        owner,
		RewardRate:   big.NewInt(1),
		RewardBudget: big.NewInt(1_000_000),
	})
	s.Require().NoError(err)

	for _, a := range []domain.Address{alice, bob} {
		s.fund(a, big.NewInt(1000))
		s.approve(a, big.NewInt(1000))
	}
}

func (s *stakingSuite) fund(to domain.Address, amount *big.Int) {
	_, err := s.ledger.Execute(s.ctx, ledger.Call{From: operator, To: stakeToken, Method: "mint"}, func(c ctx.Ctx, tx *ledger.Tx) error {
		return s.bank.Mint(c, tx, stakeToken, to, amount)
	})
	s.Require().NoError(err)
}

func (s *stakingSuite) approve(from domain.Address, amount *big.Int) {
	_, err := s.bank.SendApprove(s.ctx, from, stakeToken, pool, amount)
	s.Require().NoError(err)
}

func (s *stakingSuite) balanceOf(token, account domain.Address) int64 {
	bal, err := s.bank.BalanceOf(s.ctx, token, account)
	s.Require().NoError(err)
	return bal.Int64()
}

func (s *stakingSuite) TestInitPoolOnce() {
	p, err := s.uc.InitPool(s.ctx, staking.PoolConfig{Owner: alice, RewardBudget: big.NewInt(5)})
	s.Require().NoError(err)
	s.Equal(owner, p.Owner)
	s.Equal(int64(1_000_000), s.balanceOf(rewardToken, pool))

	view, err := s.uc.GetPool(s.ctx)
	s.Require().NoError(err)
	s.Equal(domain.Amount("1"), view.RewardRate)
	s.Equal(domain.Amount("1000000"), view.RewardBalance)
}

// staleRepo reports the pool missing for the first misses lookups
type staleRepo struct {
	staking.Repo
	misses int32
}

func (r *staleRepo) FindPool(c ctx.Ctx, address domain.Address) (*staking.Pool, error) {
	if atomic.AddInt32(&r.misses, -1) >= 0 {
		return nil, domain.ErrNotFound
	}
	return r.Repo.FindPool(c, address)
}

func (s *stakingSuite) TestInitPoolRaceKeepsStakes() {
	_, err := s.uc.Stake(s.ctx, alice, big.NewInt(100))
	s.Require().NoError(err)

	late := New(&Cfg{Repo: &staleRepo{Repo: s.repo, misses: 1}, Ledger: s.ledger, Bank: s.bank, Address: pool, Now: s.clock})
	before := len(s.ledger.Receipts())
	p, err := late.InitPool(s.ctx, staking.PoolConfig{
		StakingToken: stakeToken,
		RewardToken:  rewardToken,
		Owner:        alice,
		RewardBudget: big.NewInt(1_000_000),
	})
	s.Require().NoError(err)
	s.Equal(owner, p.Owner)
	s.Equal(domain.Amount("100"), p.TotalStaked)
	s.Len(s.ledger.Receipts(), before)

	view, err := s.uc.GetPool(s.ctx)
	s.Require().NoError(err)
	s.Equal(domain.Amount("100"), view.TotalStaked)
	s.Equal(domain.Amount("1000000"), view.RewardBalance)

	acct, err := s.uc.GetAccount(s.ctx, alice)
	s.Require().NoError(err)
	s.Equal(view.TotalStaked, acct.Balance)
}

func (s *stakingSuite) TestStakeAndClaim() {
	receipt, err := s.uc.Stake(s.ctx, alice, big.NewInt(100))
	s.Require().NoError(err)
	raw, err := receipt.FindLog("Staked").ToLog()
	s.Require().NoError(err)
	staked, err := bAbi.ToStakedLog(raw)
	s.Require().NoError(err)
	s.Equal(alice.ToCommon(), staked.User)
	s.Equal(int64(100), staked.Amount.Int64())
	s.Equal(int64(900), s.balanceOf(stakeToken, alice))
	s.Equal(int64(100), s.balanceOf(stakeToken, pool))

	s.advance(100 * time.Second)
	earned, err := s.uc.Earned(s.ctx, alice)
	s.Require().NoError(err)
	s.Equal(int64(100), earned.Int64())

	receipt, err = s.uc.Claim(s.ctx, alice)
	s.Require().NoError(err)
	raw, err = receipt.FindLog("RewardPaid").ToLog()
	s.Require().NoError(err)
	paid, err := bAbi.ToRewardPaidLog(raw)
	s.Require().NoError(err)
	s.Equal(int64(100), paid.Reward.Int64())
	s.Equal(int64(100), s.balanceOf(rewardToken, alice))

	view, err := s.uc.GetAccount(s.ctx, alice)
	s.Require().NoError(err)
	s.Equal(domain.Amount("0"), view.Earned)
	s.Equal(domain.Amount("100"), view.TotalClaimed)
	s.Equal(domain.Amount("100"), view.Balance)
}

func (s *stakingSuite) TestClaimNothing() {
	before := len(s.ledger.Receipts())
	_, err := s.uc.Claim(s.ctx, alice)
	s.ErrorIs(err, domain.ErrNothingToClaim)
	s.Len(s.ledger.Receipts(), before)

	_, err = s.uc.GetAccount(s.ctx, alice)
	s.Require().NoError(err)
	_, err = s.repo.FindAccount(s.ctx, pool, alice)
	s.ErrorIs(err, domain.ErrNotFound)
}

func (s *stakingSuite) TestStakeRejected() {
	_, err := s.uc.Stake(s.ctx, alice, big.NewInt(0))
	s.ErrorIs(err, domain.ErrInvalidAmount)

	_, err = s.uc.Stake(s.ctx, alice, big.NewInt(1001))
	s.ErrorIs(err, domain.ErrTransferFailed)

	s.approve(bob, big.NewInt(10))
	_, err = s.uc.Stake(s.ctx, bob, big.NewInt(11))
	s.ErrorIs(err, domain.ErrTransferFailed)

	view, err := s.uc.GetPool(s.ctx)
	s.Require().NoError(err)
	s.Equal(domain.Amount("0"), view.TotalStaked)
}

func (s *stakingSuite) TestWithdraw() {
	_, err := s.uc.Stake(s.ctx, alice, big.NewInt(100))
	s.Require().NoError(err)

	_, err = s.uc.Withdraw(s.ctx, alice, big.NewInt(101))
	s.ErrorIs(err, domain.ErrInsufficientBalance)
	_, err = s.uc.Withdraw(s.ctx, alice, big.NewInt(-1))
	s.ErrorIs(err, domain.ErrInvalidAmount)

	s.advance(10 * time.Second)
	receipt, err := s.uc.Withdraw(s.ctx, alice, big.NewInt(100))
	s.Require().NoError(err)
	s.NotNil(receipt.FindLog("Withdrawn"))
	s.Equal(int64(1000), s.balanceOf(stakeToken, alice))

	// the record stays with the settled reward
	view, err := s.uc.GetAccount(s.ctx, alice)
	s.Require().NoError(err)
	s.Equal(domain.Amount("0"), view.Balance)
	s.Equal(domain.Amount("10"), view.Rewards)

	s.advance(10 * time.Second)
	earned, err := s.uc.Earned(s.ctx, alice)
	s.Require().NoError(err)
	s.Equal(int64(10), earned.Int64())
}

func (s *stakingSuite) TestExit() {
	_, err := s.uc.Exit(s.ctx, alice)
	s.ErrorIs(err, domain.ErrNothingToClaim)

	_, err = s.uc.Stake(s.ctx, alice, big.NewInt(50))
	s.Require().NoError(err)
	s.advance(20 * time.Second)

	receipt, err := s.uc.Exit(s.ctx, alice)
	s.Require().NoError(err)
	s.NotNil(receipt.FindLog("Withdrawn"))
	s.NotNil(receipt.FindLog("RewardPaid"))
	s.Equal(int64(1000), s.balanceOf(stakeToken, alice))
	s.Equal(int64(20), s.balanceOf(rewardToken, alice))
}

func (s *stakingSuite) TestSetRewardRate() {
	_, err := s.uc.SetRewardRate(s.ctx, alice, big.NewInt(5), 0)
	s.ErrorIs(err, domain.ErrNotPoolOwner)

	_, err = s.uc.Stake(s.ctx, alice, big.NewInt(10))
	s.Require().NoError(err)
	s.advance(10 * time.Second)

	receipt, err := s.uc.SetRewardRate(s.ctx, owner, big.NewInt(5), 10*time.Second)
	s.Require().NoError(err)
	s.NotNil(receipt.FindLog("RewardRateUpdated"))

	s.advance(time.Minute)
	earned, err := s.uc.Earned(s.ctx, alice)
	s.Require().NoError(err)
	// 10s at 1/s then 10s at 5/s until the period ends
	s.Equal(int64(60), earned.Int64())
}

func (s *stakingSuite) TestTwoStakers() {
	_, err := s.uc.Stake(s.ctx, alice, big.NewInt(100))
	s.Require().NoError(err)
	s.advance(10 * time.Second)
	_, err = s.uc.Stake(s.ctx, bob, big.NewInt(100))
	s.Require().NoError(err)
	s.advance(10 * time.Second)

	a, err := s.uc.Earned(s.ctx, alice)
	s.Require().NoError(err)
	b, err := s.uc.Earned(s.ctx, bob)
	s.Require().NoError(err)
	s.Equal(int64(15), a.Int64())
	s.Equal(int64(5), b.Int64())
}

func (s *stakingSuite) TestConcurrentBalancesMatchTotal() {
	var wg sync.WaitGroup
	for _, who := range []domain.Address{alice, bob} {
		wg.Add(1)
		go func(who domain.Address) {
			defer wg.Done()
			for i := 0; i < 20; i++ {
				if i%3 == 2 {
					_, _ = s.uc.Withdraw(s.ctx, who, big.NewInt(7))
				} else {
					_, _ = s.uc.Stake(s.ctx, who, big.NewInt(5))
				}
			}
		}(who)
	}
	wg.Wait()

	accounts, err := s.repo.FindAccounts(s.ctx, pool)
	s.Require().NoError(err)
	sum := new(big.Int)
	for _, a := range accounts {
		sum.Add(sum, a.Balance.MustBig())
	}
	view, err := s.uc.GetPool(s.ctx)
	s.Require().NoError(err)
	s.Equal(domain.NewAmount(sum), view.TotalStaked)
	s.Equal(sum.Int64(), s.balanceOf(stakeToken, pool))
}
