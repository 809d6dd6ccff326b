package usecase

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/suite"

	bAbi "github.com/x-xyz/launchpad/base/abi"
	"github.com/x-xyz/launchpad/base/ctx"
	"github.com/x-xyz/launchpad/domain"
	"github.com/x-xyz/launchpad/domain/asset"
	"github.com/x-xyz/launchpad/domain/asset/assettest"
	"github.com/x-xyz/launchpad/domain/balance"
	"github.com/x-xyz/launchpad/domain/balance/balancetest"
	"github.com/x-xyz/launchpad/domain/ledger"
	"github.com/x-xyz/launchpad/domain/ledger/ledgertest"
	balanceUC "github.com/x-xyz/launchpad/stores/balance/usecase"
)

var (
	operator     = domain.Address("0x00000000000000000000000000000000000000f0")
	tokenFactory = domain.Address("0x00000000000000000000000000000000000000f1")
	nftFactory   = domain.Address("0x00000000000000000000000000000000000000f2")
	alice        = domain.Address("0x1111111111111111111111111111111111111111")
)

type assetSuite struct {
	suite.Suite

	ctx     ctx.Ctx
	repo    *assettest.Repo
	ledger  *ledgertest.Executor
	balance balance.UseCase
	uc      asset.UseCase
}

func TestAssetSuite(t *testing.T) {
	suite.Run(t, new(assetSuite))
}

func (s *assetSuite) SetupTest() {
	s.ctx = ctx.Background()
	s.repo = assettest.NewRepo()
	balances := balancetest.NewRepo()
	s.ledger = ledgertest.NewExecutor(s.repo, balances)
	s.balance = balanceUC.New(&balanceUC.Cfg{Repo: balances, Ledger: s.ledger, Operator: operator})
	s.uc = New(&Cfg{
		Repo:         s.repo,
		Ledger:       s.ledger,
		Bank:         s.balance,
		TokenFactory: tokenFactory,
		NFTFactory:   nftFactory,
		Operator:     operator,
	})
}

func (s *assetSuite) TestCreateToken() {
	supply := new(big.Int).Mul(big.NewInt(1000), big.NewInt(1e18))
	created, err := s.uc.CreateToken(s.ctx, alice, "Test Token", "TST", supply)
	s.Require().NoError(err)
	s.Equal(*created.Receipt.ContractAddress, created.Address)

	a, err := s.uc.GetAsset(s.ctx, created.Address)
	s.Require().NoError(err)
	s.Equal(asset.KindToken, a.Kind)
	s.Equal(alice, a.Creator)
	s.Equal(domain.NewAmount(supply), a.InitialSupply)

	bal, err := s.balance.BalanceOf(s.ctx, created.Address, alice)
	s.Require().NoError(err)
	s.Equal(0, supply.Cmp(bal))

	// mint Transfer from zero then TokenCreated from the factory
	s.Require().Len(created.Receipt.Logs, 2)
	s.Equal("Transfer", created.Receipt.Logs[0].Event)
	tokenCreated := created.Receipt.FindLog("TokenCreated")
	s.Require().NotNil(tokenCreated)
	s.Equal(tokenFactory, tokenCreated.Address)
	l, err := tokenCreated.ToLog()
	s.Require().NoError(err)
	parsed, err := bAbi.ToTokenCreatedLog(l)
	s.Require().NoError(err)
	s.Equal(created.Address, domain.AddressFromCommon(parsed.TokenAddress))
	s.Equal("TST", parsed.Symbol)
}

func (s *assetSuite) TestCreateTokenNotIdempotent() {
	first, err := s.uc.CreateToken(s.ctx, alice, "Same", "SAME", big.NewInt(1))
	s.Require().NoError(err)
	second, err := s.uc.CreateToken(s.ctx, alice, "Same", "SAME", big.NewInt(1))
	s.Require().NoError(err)
	s.NotEqual(first.Address, second.Address)

	kind := asset.KindToken
	list, err := s.uc.ListAssets(s.ctx, asset.ListOptions{Kind: &kind})
	s.Require().NoError(err)
	s.Len(list, 2)

	for _, created := range []*asset.Created{first, second} {
		raw, err := created.Receipt.FindLog("TokenCreated").ToLog()
		s.Require().NoError(err)
		parsed, err := bAbi.ToTokenCreatedLog(raw)
		s.Require().NoError(err)
		s.Equal(created.Address, domain.AddressFromCommon(parsed.TokenAddress))
		s.Equal(alice, domain.AddressFromCommon(parsed.Creator))
	}

	logs, err := s.ledger.FindLogs(s.ctx, ledger.LogFilter{
		Addresses: []domain.Address{tokenFactory},
		Events:    []string{"TokenCreated"},
		Limit:     10,
	})
	s.Require().NoError(err)
	s.Require().Len(logs, 2)
	found := []domain.Address{}
	for _, l := range logs {
		raw, err := l.ToLog()
		s.Require().NoError(err)
		parsed, err := bAbi.ToTokenCreatedLog(raw)
		s.Require().NoError(err)
		found = append(found, domain.AddressFromCommon(parsed.TokenAddress))
	}
	s.ElementsMatch([]domain.Address{first.Address, second.Address}, found)
}

func (s *assetSuite) TestCreateTokenInvalid() {
	_, err := s.uc.CreateToken(s.ctx, alice, "Zero", "ZERO", big.NewInt(0))
	s.ErrorIs(err, domain.ErrInvalidAmount)
	_, err = s.uc.CreateToken(s.ctx, alice, " ", "X", big.NewInt(1))
	s.ErrorIs(err, domain.ErrBadParamInput)
	s.Empty(s.ledger.Receipts())
}

func (s *assetSuite) TestCreateNFTCollection() {
	created, err := s.uc.CreateNFTCollection(s.ctx, alice, "Badges", "BDG", asset.NFTOptions{
		Soulbound:   true,
		MetadataURI: "ipfs://meta",
	})
	s.Require().NoError(err)
	s.Equal("createSoulboundNFT(string,string)", created.Receipt.Method)
	s.Equal(nftFactory, created.Receipt.To)
	s.NotNil(created.Receipt.FindLog("NFTCreated"))

	a, err := s.uc.GetAsset(s.ctx, created.Address)
	s.Require().NoError(err)
	s.True(a.Soulbound)
	s.True(a.IsCollection())
	s.Nil(a.RewardToken)

	id, err := s.uc.NextTokenId(s.ctx, created.Address)
	s.Require().NoError(err)
	s.Equal(int64(1), id)
}

func (s *assetSuite) TestFactoryAddressesDiffer() {
	token, err := s.uc.CreateToken(s.ctx, alice, "T", "T", big.NewInt(1))
	s.Require().NoError(err)
	nft, err := s.uc.CreateNFTCollection(s.ctx, alice, "N", "N", asset.NFTOptions{})
	s.Require().NoError(err)
	s.NotEqual(token.Address, nft.Address)
	s.Equal(operator, s.uc.Owner(asset.KindNft))
	s.Equal(nftFactory, s.uc.Factory(asset.KindNft))
}
