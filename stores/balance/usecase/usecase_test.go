package usecase

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/launchpad/base/ctx"
	"github.com/x-xyz/launchpad/domain"
	"github.com/x-xyz/launchpad/domain/balance"
	"github.com/x-xyz/launchpad/domain/balance/balancetest"
	"github.com/x-xyz/launchpad/domain/ledger"
	"github.com/x-xyz/launchpad/domain/ledger/ledgertest"
)

var (
	operator = domain.Address("0x00000000000000000000000000000000000000f0")
	token    = domain.Address("0x00000000000000000000000000000000000000e2")
	alice    = domain.Address("0x1111111111111111111111111111111111111111")
	bob      = domain.Address("0x2222222222222222222222222222222222222222")
	pool     = domain.Address("0x3333333333333333333333333333333333333333")
)

type balanceSuite struct {
	suite.Suite

	ctx    ctx.Ctx
	repo   *balancetest.Repo
	ledger *ledgertest.Executor
	uc     balance.UseCase
}

func TestBalanceSuite(t *testing.T) {
	suite.Run(t, new(balanceSuite))
}

func (s *balanceSuite) SetupTest() {
	s.ctx = ctx.Background()
	s.repo = balancetest.NewRepo()
	s.ledger = ledgertest.NewExecutor(s.repo)
	s.uc = New(&Cfg{Repo: s.repo, Ledger: s.ledger, Operator: operator})
}

func (s *balanceSuite) mint(tkn, to domain.Address, amount int64) {
	_, err := s.ledger.Execute(s.ctx, ledger.Call{From: operator, To: tkn, Method: "mint(address,uint256)"}, func(c ctx.Ctx, tx *ledger.Tx) error {
		return s.uc.Mint(c, tx, tkn, to, big.NewInt(amount))
	})
	s.Require().NoError(err)
}

func (s *balanceSuite) balanceOf(tkn, account domain.Address) int64 {
	bal, err := s.uc.BalanceOf(s.ctx, tkn, account)
	s.Require().NoError(err)
	return bal.Int64()
}

func (s *balanceSuite) TestTransfer() {
	s.mint(token, alice, 100)

	receipt, err := s.uc.SendTransfer(s.ctx, alice, token, bob, big.NewInt(30))
	s.Require().NoError(err)
	s.Equal(int64(70), s.balanceOf(token, alice))
	s.Equal(int64(30), s.balanceOf(token, bob))
	s.Require().Len(receipt.Logs, 1)
	s.Equal("Transfer", receipt.Logs[0].Event)
	s.Equal(token, receipt.Logs[0].Address)
}

func (s *balanceSuite) TestTransferInsufficient() {
	s.mint(token, alice, 10)

	receipt, err := s.uc.SendTransfer(s.ctx, alice, token, bob, big.NewInt(11))
	s.ErrorIs(err, domain.ErrInsufficientBalance)
	s.Nil(receipt)
	s.Equal(int64(10), s.balanceOf(token, alice))
	s.Equal(int64(0), s.balanceOf(token, bob))
}

func (s *balanceSuite) TestSelfTransfer() {
	s.mint(token, alice, 10)
	_, err := s.uc.SendTransfer(s.ctx, alice, token, alice, big.NewInt(10))
	s.Require().NoError(err)
	s.Equal(int64(10), s.balanceOf(token, alice))
}

func (s *balanceSuite) TestTransferFrom() {
	s.mint(token, alice, 100)
	_, err := s.uc.SendApprove(s.ctx, alice, token, pool, big.NewInt(50))
	s.Require().NoError(err)

	transferFrom := func(amount int64) error {
		_, err := s.ledger.Execute(s.ctx, ledger.Call{From: alice, To: pool, Method: "stake(uint256)"}, func(c ctx.Ctx, tx *ledger.Tx) error {
			return s.uc.TransferFrom(c, tx, token, pool, alice, pool, big.NewInt(amount))
		})
		return err
	}

	s.Require().NoError(transferFrom(40))
	s.Equal(int64(40), s.balanceOf(token, pool))
	allowance, err := s.uc.Allowance(s.ctx, token, alice, pool)
	s.Require().NoError(err)
	s.Equal(int64(10), allowance.Int64())

	// allowance exhausted
	s.ErrorIs(transferFrom(20), domain.ErrTransferFailed)
	s.Equal(int64(60), s.balanceOf(token, alice))
}

func (s *balanceSuite) TestTransferFromInsufficientBalance() {
	s.mint(token, alice, 5)
	_, err := s.uc.SendApprove(s.ctx, alice, token, pool, big.NewInt(50))
	s.Require().NoError(err)

	_, err = s.ledger.Execute(s.ctx, ledger.Call{From: alice, To: pool}, func(c ctx.Ctx, tx *ledger.Tx) error {
		return s.uc.TransferFrom(c, tx, token, pool, alice, pool, big.NewInt(10))
	})
	s.ErrorIs(err, domain.ErrTransferFailed)

	// the allowance spend is rolled back with the failed transfer
	allowance, err := s.uc.Allowance(s.ctx, token, alice, pool)
	s.Require().NoError(err)
	s.Equal(int64(50), allowance.Int64())
}

func (s *balanceSuite) TestApproveNative() {
	_, err := s.uc.SendApprove(s.ctx, alice, domain.NativeToken, pool, big.NewInt(1))
	s.ErrorIs(err, domain.ErrBadParamInput)
}

func (s *balanceSuite) TestFaucet() {
	receipt, err := s.uc.Faucet(s.ctx, bob, big.NewInt(1e18))
	s.Require().NoError(err)
	s.Empty(receipt.Logs)
	s.Equal(operator, receipt.From)
	s.Equal(int64(1e18), s.balanceOf(domain.NativeToken, bob))

	_, err = s.uc.Faucet(s.ctx, bob, big.NewInt(0))
	s.ErrorIs(err, domain.ErrInvalidAmount)

	list, err := s.uc.ListByAccount(s.ctx, bob)
	s.Require().NoError(err)
	s.Len(list, 1)
}

func TestDebit(t *testing.T) {
	req := require.New(t)
	left, err := balance.Debit(big.NewInt(5), big.NewInt(5))
	req.NoError(err)
	req.Equal(int64(0), left.Int64())
	_, err = balance.Debit(big.NewInt(5), big.NewInt(6))
	req.ErrorIs(err, domain.ErrInsufficientBalance)
	_, err = balance.Debit(big.NewInt(5), big.NewInt(-1))
	req.ErrorIs(err, domain.ErrInvalidAmount)
}
