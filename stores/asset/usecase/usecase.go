package usecase

import (
	"math/big"
	"strings"

	bAbi "github.com/x-xyz/launchpad/base/abi"
	bCtx "github.com/x-xyz/launchpad/base/ctx"
	"github.com/x-xyz/launchpad/base/log"
	"github.com/x-xyz/launchpad/domain"
	"github.com/x-xyz/launchpad/domain/asset"
	"github.com/x-xyz/launchpad/domain/balance"
	"github.com/x-xyz/launchpad/domain/ledger"
)

type Cfg struct {
	Repo   asset.Repo
	Ledger ledger.UseCase
	Bank   balance.Bank

	TokenFactory domain.Address
	NFTFactory   domain.Address
	// Operator owns both factories
	Operator domain.Address
}

type uc struct {
	repo         asset.Repo
	ledger       ledger.UseCase
	bank         balance.Bank
	tokenFactory domain.Address
	nftFactory   domain.Address
	operator     domain.Address
}

func New(cfg *Cfg) asset.UseCase {
	return &uc{
		repo:         cfg.Repo,
		ledger:       cfg.Ledger,
		bank:         cfg.Bank,
		tokenFactory: cfg.TokenFactory.ToLower(),
		nftFactory:   cfg.NFTFactory.ToLower(),
		operator:     cfg.Operator.ToLower(),
	}
}

func factoryLock(factory domain.Address) string {
	return "factory:" + factory.ToLowerStr()
}

func (u *uc) CreateToken(c bCtx.Ctx, caller domain.Address, name, symbol string, initialSupply *big.Int) (*asset.Created, error) {
	name, symbol = strings.TrimSpace(name), strings.TrimSpace(symbol)
	if name == "" || symbol == "" {
		return nil, domain.ErrBadParamInput
	}
	if initialSupply == nil || initialSupply.Sign() <= 0 {
		return nil, domain.ErrInvalidAmount
	}

	var address domain.Address
	call := ledger.Call{
		From:   caller,
		To:     u.tokenFactory,
		Method: bAbi.MethodSig(bAbi.TokenFactoryABI, "createToken"),
		Locks:  []string{factoryLock(u.tokenFactory)},
	}
	receipt, err := u.ledger.Execute(c, call, func(c bCtx.Ctx, tx *ledger.Tx) error {
		addr, err := tx.DeployAddress(c, u.tokenFactory)
		if err != nil {
			return err
		}
		if err := u.repo.Insert(c, &asset.DeployedAsset{
			Address:       addr,
			Kind:          asset.KindToken,
			Factory:       u.tokenFactory,
			Name:          name,
			Symbol:        symbol,
			Creator:       caller.ToLower(),
			InitialSupply: domain.NewAmount(initialSupply),
			Decimals:      asset.TokenDecimals,
			TxHash:        tx.Hash,
			BlockNumber:   tx.BlockNumber,
			CreatedAt:     tx.BlockTime,
		}); err != nil {
			return err
		}
		// the whole supply goes to the creator on deployment
		if err := u.bank.Mint(c, tx, addr, caller, initialSupply); err != nil {
			return err
		}
		if err := tx.Emit(bAbi.PackTokenCreatedLog(u.tokenFactory.ToCommon(), &bAbi.TokenCreatedLog{
			TokenAddress:  addr.ToCommon(),
			Creator:       caller.ToCommon(),
			Name:          name,
			Symbol:        symbol,
			InitialSupply: initialSupply,
		})); err != nil {
			return err
		}
		tx.SetContractAddress(addr)
		address = addr
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.WithFields(log.Fields{"address": address, "creator": caller, "symbol": symbol}).Info("token created")
	return &asset.Created{Address: address, Receipt: receipt}, nil
}

func (u *uc) CreateNFTCollection(c bCtx.Ctx, caller domain.Address, name, symbol string, opts asset.NFTOptions) (*asset.Created, error) {
	name, symbol = strings.TrimSpace(name), strings.TrimSpace(symbol)
	if name == "" || symbol == "" {
		return nil, domain.ErrBadParamInput
	}

	method := bAbi.MethodSig(bAbi.NFTFactoryABI, "createNFT")
	if opts.Soulbound {
		method = bAbi.MethodSig(bAbi.NFTFactoryABI, "createSoulboundNFT")
	}

	var address domain.Address
	call := ledger.Call{
		From:   caller,
		To:     u.nftFactory,
		Method: method,
		Locks:  []string{factoryLock(u.nftFactory)},
	}
	receipt, err := u.ledger.Execute(c, call, func(c bCtx.Ctx, tx *ledger.Tx) error {
		addr, err := tx.DeployAddress(c, u.nftFactory)
		if err != nil {
			return err
		}
		a := &asset.DeployedAsset{
			Address:     addr,
			Kind:        asset.KindNft,
			Factory:     u.nftFactory,
			Name:        name,
			Symbol:      symbol,
			Creator:     caller.ToLower(),
			Description: opts.Description,
			Soulbound:   opts.Soulbound,
			MetadataURI: opts.MetadataURI,
			ImageURI:    opts.ImageURI,
			TxHash:      tx.Hash,
			BlockNumber: tx.BlockNumber,
			CreatedAt:   tx.BlockTime,
		}
		if !opts.RewardToken.IsZero() {
			a.RewardToken = opts.RewardToken.ToLowerPtr()
		}
		if err := u.repo.Insert(c, a); err != nil {
			return err
		}
		if err := tx.Emit(bAbi.PackNFTCreatedLog(u.nftFactory.ToCommon(), &bAbi.NFTCreatedLog{
			NftAddress: addr.ToCommon(),
			Name:       name,
			Symbol:     symbol,
			Creator:    caller.ToCommon(),
		})); err != nil {
			return err
		}
		tx.SetContractAddress(addr)
		address = addr
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.WithFields(log.Fields{"address": address, "creator": caller, "soulbound": opts.Soulbound}).Info("nft collection created")
	return &asset.Created{Address: address, Receipt: receipt}, nil
}

func (u *uc) GetAsset(c bCtx.Ctx, address domain.Address) (*asset.DeployedAsset, error) {
	return u.repo.FindOne(c, address)
}

func (u *uc) ListAssets(c bCtx.Ctx, opts asset.ListOptions) ([]*asset.DeployedAsset, error) {
	if opts.Limit <= 0 || opts.Limit > 100 {
		opts.Limit = 100
	}
	return u.repo.FindAll(c, opts)
}

func (u *uc) NextTokenId(c bCtx.Ctx, collection domain.Address) (int64, error) {
	return u.repo.IncrNextTokenId(c, collection)
}

func (u *uc) Owner(kind asset.Kind) domain.Address {
	return u.operator
}

func (u *uc) Factory(kind asset.Kind) domain.Address {
	if kind == asset.KindNft {
		return u.nftFactory
	}
	return u.tokenFactory
}
