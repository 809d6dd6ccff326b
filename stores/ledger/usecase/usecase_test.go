package usecase

import (
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/launchpad/base/abi"
	"github.com/x-xyz/launchpad/base/ctx"
	"github.com/x-xyz/launchpad/base/metrics"
	"github.com/x-xyz/launchpad/domain"
	"github.com/x-xyz/launchpad/domain/ledger"
	mLedger "github.com/x-xyz/launchpad/domain/ledger/mocks"
	"github.com/x-xyz/launchpad/service/locker"
	"github.com/x-xyz/launchpad/service/query"
)

// txMongo runs the closure in place, rollback is the repo's concern in these tests
type txMongo struct {
	query.Mongo
	runs int
}

func (m *txMongo) RunWithTransaction(c ctx.Ctx, run func(ctx.Ctx) error) error {
	m.runs++
	return run(c)
}

type ledgerSuite struct {
	suite.Suite

	repo  *mLedger.Repo
	mongo *txMongo
	uc    ledger.UseCase
	now   time.Time
}

var (
	alice  = domain.Address("0x1111111111111111111111111111111111111111")
	market = domain.Address("0x00000000000000000000000000000000000000a1")
)

func (s *ledgerSuite) SetupTest() {
	s.repo = &mLedger.Repo{}
	s.mongo = &txMongo{}
	s.now = time.Unix(1700000000, 0)
	s.uc = New(&Cfg{
		Repo:    s.repo,
		Mongo:   s.mongo,
		Locker:  locker.NewLocal(time.Second),
		Metrics: metrics.New("ledger_test"),
		Now:     func() time.Time { return s.now },
	})
}

func TestLedgerSuite(t *testing.T) {
	suite.Run(t, new(ledgerSuite))
}

func (s *ledgerSuite) TestExecute() {
	c := ctx.Background()
	s.repo.On("NextBlock", mock.Anything).Return(domain.BlockNumber(5), nil).Once()
	s.repo.On("IncrNonce", mock.Anything, alice).Return(uint64(2), nil).Once()
	s.repo.On("InsertReceipt", mock.Anything, mock.MatchedBy(func(r *ledger.Receipt) bool {
		return r.BlockNumber == 5 && r.Nonce == 2 && r.Method == "listNFT(address,uint256,uint256)"
	})).Return(nil).Once()
	s.repo.On("InsertLogs", mock.Anything, mock.MatchedBy(func(logs []*ledger.EventLog) bool {
		return len(logs) == 1 && logs[0].Event == "Listed" && logs[0].BlockNumber == 5
	})).Return(nil).Once()

	call := ledger.Call{
		From:   alice,
		To:     market,
		Method: abi.MethodSig(abi.MarketplaceABI, "listNFT"),
		Locks:  []string{"listing:0x01:1"},
	}
	receipt, err := s.uc.Execute(c, call, func(c ctx.Ctx, tx *ledger.Tx) error {
		s.Equal(domain.BlockNumber(5), tx.BlockNumber)
		return tx.Emit(abi.PackListedLog(market.ToCommon(), &abi.ListedLog{
			Collection: common.HexToAddress("0x01"),
			TokenId:    big.NewInt(1),
			Seller:     alice.ToCommon(),
			Price:      big.NewInt(10),
		}))
	})
	s.Require().NoError(err)
	s.Equal(ledger.StatusSuccess, receipt.Status)
	s.Equal(s.now.UTC(), receipt.BlockTime)
	s.Len(receipt.Logs, 1)
	s.Equal(receipt.TxHash, receipt.Logs[0].TxHash)
	s.Len(string(receipt.TxHash), 66)
	s.Equal(1, s.mongo.runs)
	s.repo.AssertExpectations(s.T())
}

func (s *ledgerSuite) TestExecuteRevert() {
	c := ctx.Background()
	s.repo.On("NextBlock", mock.Anything).Return(domain.BlockNumber(6), nil).Once()
	s.repo.On("IncrNonce", mock.Anything, alice).Return(uint64(3), nil).Once()

	receipt, err := s.uc.Execute(c, ledger.Call{From: alice, To: market, Method: "buyNFT(address,uint256)"}, func(c ctx.Ctx, tx *ledger.Tx) error {
		return domain.ErrNotListed
	})
	s.ErrorIs(err, domain.ErrNotListed)
	s.Nil(receipt)
	s.repo.AssertNotCalled(s.T(), "InsertReceipt", mock.Anything, mock.Anything)
	s.repo.AssertNotCalled(s.T(), "InsertLogs", mock.Anything, mock.Anything)
}

func (s *ledgerSuite) TestExecuteInvalidAddress() {
	_, err := s.uc.Execute(ctx.Background(), ledger.Call{From: "bob", To: market}, func(ctx.Ctx, *ledger.Tx) error {
		s.Fail("must not run")
		return nil
	})
	s.ErrorIs(err, domain.ErrInvalidAddress)
	s.Equal(0, s.mongo.runs)
}

func (s *ledgerSuite) TestExecuteRepoError() {
	boom := errors.New("boom")
	s.repo.On("NextBlock", mock.Anything).Return(domain.BlockNumber(0), boom).Once()
	_, err := s.uc.Execute(ctx.Background(), ledger.Call{From: alice, To: market}, func(ctx.Ctx, *ledger.Tx) error {
		s.Fail("must not run")
		return nil
	})
	s.ErrorIs(err, boom)
}

func (s *ledgerSuite) TestFindLogsLimit() {
	s.repo.On("FindLogs", mock.Anything, mock.MatchedBy(func(f ledger.LogFilter) bool {
		return f.Limit == 1000
	})).Return([]*ledger.EventLog{}, nil).Once()
	_, err := s.uc.FindLogs(ctx.Background(), ledger.LogFilter{})
	s.NoError(err)
	s.repo.AssertExpectations(s.T())
}
