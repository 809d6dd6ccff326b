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
	"github.com/x-xyz/launchpad/domain/balance/balancetest"
	"github.com/x-xyz/launchpad/domain/ledger/ledgertest"
	"github.com/x-xyz/launchpad/domain/nftitem"
	"github.com/x-xyz/launchpad/domain/nftitem/nftitemtest"
	assetUC "github.com/x-xyz/launchpad/stores/asset/usecase"
	balanceUC "github.com/x-xyz/launchpad/stores/balance/usecase"
)

var (
	operator = domain.Address("0x00000000000000000000000000000000000000f0")
	alice    = domain.Address("0x1111111111111111111111111111111111111111")
	bob      = domain.Address("0x2222222222222222222222222222222222222222")
	carol    = domain.Address("0x3333333333333333333333333333333333333333")
)

type nftSuite struct {
	suite.Suite

	ctx       ctx.Ctx
	ledger    *ledgertest.Executor
	asset     asset.UseCase
	uc        nftitem.UseCase
	art       domain.Address
	soulbound domain.Address
}

func TestNftSuite(t *testing.T) {
	suite.Run(t, new(nftSuite))
}

func (s *nftSuite) SetupTest() {
	s.ctx = ctx.Background()
	assets := assettest.NewRepo()
	balances := balancetest.NewRepo()
	items := nftitemtest.NewRepo()
	s.ledger = ledgertest.NewExecutor(assets, balances, items)
	s.asset = assetUC.New(&assetUC.Cfg{
		Repo:         assets,
		Ledger:       s.ledger,
		Bank:         balanceUC.New(&balanceUC.Cfg{Repo: balances, Ledger: s.ledger, Operator: operator}),
		TokenFactory: "0x00000000000000000000000000000000000000f1",
		NFTFactory:   "0x00000000000000000000000000000000000000f2",
		Operator:     operator,
	})
	s.uc = New(&Cfg{Repo: items, Ledger: s.ledger, Asset: s.asset})

	created, err := s.asset.CreateNFTCollection(s.ctx, alice, "Art", "ART", asset.NFTOptions{})
	s.Require().NoError(err)
	s.art = created.Address
	created, err = s.asset.CreateNFTCollection(s.ctx, alice, "Badges", "BDG", asset.NFTOptions{Soulbound: true})
	s.Require().NoError(err)
	s.soulbound = created.Address
}

func (s *nftSuite) mint(collection, to domain.Address) domain.TokenId {
	minted, err := s.uc.Mint(s.ctx, alice, collection, to, "ipfs://bafymeta")
	s.Require().NoError(err)
	return minted.TokenId
}

func (s *nftSuite) TestMint() {
	minted, err := s.uc.Mint(s.ctx, alice, s.art, bob, "ipfs://bafy1")
	s.Require().NoError(err)
	s.Equal(domain.TokenId("1"), minted.TokenId)

	s.Require().Len(minted.Receipt.Logs, 2)
	transfer, err := minted.Receipt.Logs[0].ToLog()
	s.Require().NoError(err)
	tl, err := bAbi.ToERC721TransferLog(transfer)
	s.Require().NoError(err)
	s.Equal(domain.EmptyAddress.ToCommon(), tl.From)
	s.Equal(bob.ToCommon(), tl.To)
	s.Equal(0, big.NewInt(1).Cmp(tl.TokenId))

	mintedLog, err := minted.Receipt.FindLog("Minted").ToLog()
	s.Require().NoError(err)
	ml, err := bAbi.ToMintedLog(mintedLog)
	s.Require().NoError(err)
	s.Equal("ipfs://bafy1", ml.TokenURI)

	second, err := s.uc.Mint(s.ctx, alice, s.art, carol, "ipfs://bafy2")
	s.Require().NoError(err)
	s.Equal(domain.TokenId("2"), second.TokenId)

	owner, err := s.uc.OwnerOf(s.ctx, s.art, "1")
	s.Require().NoError(err)
	s.Equal(bob, owner)
	uri, err := s.uc.TokenURI(s.ctx, s.art, "2")
	s.Require().NoError(err)
	s.Equal("ipfs://bafy2", uri)
}

func (s *nftSuite) TestMintRestrictions() {
	_, err := s.uc.Mint(s.ctx, bob, s.art, bob, "ipfs://bafy1")
	s.ErrorIs(err, domain.ErrNotMinter)

	_, err = s.uc.Mint(s.ctx, alice, s.art, domain.EmptyAddress, "ipfs://bafy1")
	s.ErrorIs(err, domain.ErrInvalidRecipient)

	_, err = s.uc.Mint(s.ctx, alice, s.art, bob, "  ")
	s.ErrorIs(err, domain.ErrBadParamInput)

	_, err = s.uc.Mint(s.ctx, alice, carol, bob, "ipfs://bafy1")
	s.ErrorIs(err, domain.ErrNotFound)

	// failed mints do not burn ids
	s.Equal(domain.TokenId("1"), s.mint(s.art, bob))
}

func (s *nftSuite) TestSoulboundMintButNoTransfer() {
	id := s.mint(s.soulbound, bob)

	_, err := s.uc.SendTransferFrom(s.ctx, bob, s.soulbound, bob, carol, id)
	s.ErrorIs(err, domain.ErrSoulbound)
	_, err = s.uc.Approve(s.ctx, bob, s.soulbound, carol, id)
	s.ErrorIs(err, domain.ErrSoulbound)
	_, err = s.uc.SetApprovalForAll(s.ctx, bob, s.soulbound, carol, true)
	s.ErrorIs(err, domain.ErrSoulbound)

	owner, err := s.uc.OwnerOf(s.ctx, s.soulbound, id)
	s.Require().NoError(err)
	s.Equal(bob, owner)
}

func (s *nftSuite) TestTransferByOwner() {
	id := s.mint(s.art, bob)

	receipt, err := s.uc.SendTransferFrom(s.ctx, bob, s.art, bob, carol, id)
	s.Require().NoError(err)
	s.NotNil(receipt.FindLog("Transfer"))

	owner, err := s.uc.OwnerOf(s.ctx, s.art, id)
	s.Require().NoError(err)
	s.Equal(carol, owner)

	_, err = s.uc.SendTransferFrom(s.ctx, bob, s.art, bob, carol, id)
	s.ErrorIs(err, domain.ErrNotOwner)
}

func (s *nftSuite) TestApproveAndTransfer() {
	id := s.mint(s.art, bob)

	_, err := s.uc.SendTransferFrom(s.ctx, carol, s.art, bob, carol, id)
	s.ErrorIs(err, domain.ErrNotApproved)

	_, err = s.uc.Approve(s.ctx, carol, s.art, carol, id)
	s.ErrorIs(err, domain.ErrNotOwner)

	_, err = s.uc.Approve(s.ctx, bob, s.art, carol, id)
	s.Require().NoError(err)
	ok, err := s.uc.IsApprovedOrOwner(s.ctx, carol, s.art, id)
	s.Require().NoError(err)
	s.True(ok)

	_, err = s.uc.SendTransferFrom(s.ctx, carol, s.art, bob, alice, id)
	s.Require().NoError(err)

	// approval is cleared by the transfer
	item, err := s.uc.GetItem(s.ctx, s.art, id)
	s.Require().NoError(err)
	s.Equal(alice, item.Owner)
	s.True(item.Approved.IsEmpty())
	ok, err = s.uc.IsApprovedOrOwner(s.ctx, carol, s.art, id)
	s.Require().NoError(err)
	s.False(ok)
}

func (s *nftSuite) TestOperator() {
	id := s.mint(s.art, bob)

	_, err := s.uc.SetApprovalForAll(s.ctx, bob, s.art, bob, true)
	s.ErrorIs(err, domain.ErrBadParamInput)

	receipt, err := s.uc.SetApprovalForAll(s.ctx, bob, s.art, carol, true)
	s.Require().NoError(err)
	s.NotNil(receipt.FindLog("ApprovalForAll"))

	// operators may approve on behalf of the owner
	_, err = s.uc.Approve(s.ctx, carol, s.art, alice, id)
	s.Require().NoError(err)

	_, err = s.uc.SetApprovalForAll(s.ctx, bob, s.art, carol, false)
	s.Require().NoError(err)
	approved, err := s.uc.IsApprovedForAll(s.ctx, s.art, bob, carol)
	s.Require().NoError(err)
	s.False(approved)

	_, err = s.uc.SendTransferFrom(s.ctx, carol, s.art, bob, carol, id)
	s.ErrorIs(err, domain.ErrNotApproved)
	_, err = s.uc.SendTransferFrom(s.ctx, alice, s.art, bob, alice, id)
	s.Require().NoError(err)
}

func (s *nftSuite) TestListByOwner() {
	s.mint(s.art, bob)
	s.mint(s.art, carol)
	s.mint(s.soulbound, bob)

	items, err := s.uc.ListByOwner(s.ctx, bob, 0, 0)
	s.Require().NoError(err)
	s.Len(items, 2)

	items, err = s.uc.ListByOwner(s.ctx, bob, 1, 10)
	s.Require().NoError(err)
	s.Len(items, 1)
}
