package usecase

import (
	"errors"
	"math/big"

	bAbi "github.com/x-xyz/launchpad/base/abi"
	bCtx "github.com/x-xyz/launchpad/base/ctx"
	"github.com/x-xyz/launchpad/base/log"
	"github.com/x-xyz/launchpad/domain"
	"github.com/x-xyz/launchpad/domain/asset"
	"github.com/x-xyz/launchpad/domain/balance"
	"github.com/x-xyz/launchpad/domain/file"
	"github.com/x-xyz/launchpad/domain/ledger"
	"github.com/x-xyz/launchpad/domain/marketplace"
	"github.com/x-xyz/launchpad/domain/nftitem"
	"github.com/x-xyz/launchpad/service/cache"
)

const maxListingLimit = 100

type Cfg struct {
	Repo    marketplace.Repo
	Ledger  ledger.UseCase
	Bank    balance.Bank
	Nft     nftitem.UseCase
	Asset   asset.UseCase
	Address domain.Address
	// Metadata is optional, listings are shown without name and image when nil
	Metadata file.MetadataUseCase
	// Cache is optional, see NewListingCache
	Cache cache.Service
}

type uc struct {
	repo    marketplace.Repo
	ledger  ledger.UseCase
	bank    balance.Bank
	nft     nftitem.UseCase
	asset   asset.UseCase
	address domain.Address
	meta    file.MetadataUseCase
	cache   cache.Service
}

func New(cfg *Cfg) marketplace.UseCase {
	return &uc{
		repo:    cfg.Repo,
		ledger:  cfg.Ledger,
		bank:    cfg.Bank,
		nft:     cfg.Nft,
		asset:   cfg.Asset,
		address: cfg.Address.ToLower(),
		meta:    cfg.Metadata,
		cache:   cfg.Cache,
	}
}

func (u *uc) Address() domain.Address {
	return u.address
}

func (u *uc) List(c bCtx.Ctx, caller, collection domain.Address, tokenId domain.TokenId, price *big.Int) (*ledger.Receipt, error) {
	id, err := tokenId.ToBig()
	if err != nil {
		return nil, domain.ErrBadParamInput
	}
	if price == nil || price.Sign() <= 0 {
		return nil, domain.ErrInvalidPrice
	}
	collection = collection.ToLower()

	call := ledger.Call{
		From:   caller,
		To:     u.address,
		Method: bAbi.MethodSig(bAbi.MarketplaceABI, "listNFT"),
		Locks:  []string{marketplace.LockKey(collection, tokenId), nftitem.LockKey(collection, tokenId)},
	}
	receipt, err := u.ledger.Execute(c, call, func(c bCtx.Ctx, tx *ledger.Tx) error {
		soulbound, err := u.nft.IsSoulbound(c, collection)
		if err != nil {
			return err
		}
		if soulbound {
			return domain.ErrSoulbound
		}
		owner, err := u.nft.OwnerOf(c, collection, tokenId)
		if err != nil {
			return err
		}
		if !owner.Equals(caller) {
			return domain.ErrNotOwner
		}
		approved, err := u.nft.IsApprovedOrOwner(c, u.address, collection, tokenId)
		if err != nil {
			return err
		}
		if !approved {
			return domain.ErrNotApproved
		}

		amount := domain.NewAmount(price)
		if err := u.repo.Upsert(c, &marketplace.Listing{
			Collection:   collection,
			TokenId:      tokenId,
			Seller:       caller.ToLower(),
			Price:        amount,
			PriceInEther: amount.ToEther().InexactFloat64(),
			Active:       true,
			ListedAt:     tx.BlockTime,
			ListedBlock:  tx.BlockNumber,
			TxHash:       tx.Hash,
			UpdatedAt:    tx.BlockTime,
		}); err != nil {
			return err
		}
		return tx.Emit(bAbi.PackListedLog(u.address.ToCommon(), &bAbi.ListedLog{
			Collection: collection.ToCommon(),
			TokenId:    id,
			Seller:     caller.ToCommon(),
			Price:      price,
		}))
	})
	if err != nil {
		return nil, err
	}

	u.evict(c)
	c.WithFields(log.Fields{"collection": collection, "tokenId": tokenId, "seller": caller, "price": price}).Info("nft listed")
	return receipt, nil
}

func (u *uc) Unlist(c bCtx.Ctx, caller, collection domain.Address, tokenId domain.TokenId) (*ledger.Receipt, error) {
	id, err := tokenId.ToBig()
	if err != nil {
		return nil, domain.ErrBadParamInput
	}
	collection = collection.ToLower()

	call := ledger.Call{
		From:   caller,
		To:     u.address,
		Method: bAbi.MethodSig(bAbi.MarketplaceABI, "unlistNFT"),
		Locks:  []string{marketplace.LockKey(collection, tokenId)},
	}
	receipt, err := u.ledger.Execute(c, call, func(c bCtx.Ctx, tx *ledger.Tx) error {
		listing, err := u.activeListing(c, collection, tokenId)
		if err != nil {
			return err
		}
		if !listing.Seller.Equals(caller) {
			return domain.ErrNotSeller
		}
		listing.Active = false
		listing.UpdatedAt = tx.BlockTime
		if err := u.repo.Upsert(c, listing); err != nil {
			return err
		}
		return tx.Emit(bAbi.PackUnlistedLog(u.address.ToCommon(), &bAbi.UnlistedLog{
			Collection: collection.ToCommon(),
			TokenId:    id,
			Seller:     caller.ToCommon(),
		}))
	})
	if err != nil {
		return nil, err
	}

	u.evict(c)
	return receipt, nil
}

func (u *uc) Buy(c bCtx.Ctx, caller, collection domain.Address, tokenId domain.TokenId, payment *big.Int) (*ledger.Receipt, error) {
	id, err := tokenId.ToBig()
	if err != nil {
		return nil, domain.ErrBadParamInput
	}
	if payment == nil || payment.Sign() < 0 {
		return nil, domain.ErrInvalidAmount
	}
	collection = collection.ToLower()

	// the seller is read ahead to lock both balances, it cannot change while the listing lock is held
	pre, err := u.activeListing(c, collection, tokenId)
	if err != nil {
		return nil, err
	}

	call := ledger.Call{
		From:   caller,
		To:     u.address,
		Method: bAbi.MethodSig(bAbi.MarketplaceABI, "buyNFT"),
		Value:  domain.NewAmount(payment),
		Locks: []string{
			marketplace.LockKey(collection, tokenId),
			nftitem.LockKey(collection, tokenId),
			balance.LockKey(domain.NativeToken, caller),
			balance.LockKey(domain.NativeToken, pre.Seller),
		},
	}
	receipt, err := u.ledger.Execute(c, call, func(c bCtx.Ctx, tx *ledger.Tx) error {
		listing, err := u.activeListing(c, collection, tokenId)
		if err != nil {
			return err
		}
		if !listing.Seller.Equals(pre.Seller) {
			return domain.ErrLockTimeout
		}
		price, err := listing.Price.Big()
		if err != nil {
			return err
		}
		if payment.Cmp(price) < 0 {
			return domain.ErrInsufficientPayment
		}
		if listing.Seller.Equals(caller) {
			return domain.ErrCannotBuyOwn
		}

		if err := u.nft.TransferFrom(c, tx, u.address, collection, listing.Seller, caller, tokenId); err != nil {
			c.WithFields(log.Fields{
				"collection": collection,
				"tokenId":    tokenId,
				"seller":     listing.Seller,
				"err":        err,
			}).Info("nft.TransferFrom rejected")
			return err
		}
		if err := u.bank.Transfer(c, tx, domain.NativeToken, caller, listing.Seller, price); err != nil {
			return err
		}

		buyer := caller.ToLower()
		sold := domain.NewAmount(price)
		at := tx.BlockTime
		listing.Active = false
		listing.Buyer = &buyer
		listing.SoldPrice = &sold
		listing.SoldAt = &at
		listing.UpdatedAt = at
		if err := u.repo.Upsert(c, listing); err != nil {
			return err
		}
		return tx.Emit(bAbi.PackSoldLog(u.address.ToCommon(), &bAbi.SoldLog{
			Collection: collection.ToCommon(),
			TokenId:    id,
			Buyer:      caller.ToCommon(),
			Seller:     listing.Seller.ToCommon(),
			Price:      price,
		}))
	})
	if err != nil {
		return nil, err
	}

	u.evict(c)
	c.WithFields(log.Fields{"collection": collection, "tokenId": tokenId, "buyer": caller, "price": pre.Price}).Info("nft sold")
	return receipt, nil
}

func (u *uc) activeListing(c bCtx.Ctx, collection domain.Address, tokenId domain.TokenId) (*marketplace.Listing, error) {
	listing, err := u.repo.FindOne(c, collection, tokenId)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrNotListed
	} else if err != nil {
		return nil, err
	}
	if !listing.Active {
		return nil, domain.ErrNotListed
	}
	return listing, nil
}

func (u *uc) GetListing(c bCtx.Ctx, collection domain.Address, tokenId domain.TokenId) (*marketplace.Listing, error) {
	if u.cache == nil {
		return u.repo.FindOne(c, collection, tokenId)
	}
	gen, err := u.generation(c)
	if err != nil {
		return nil, err
	}
	res := &marketplace.Listing{}
	if err := u.cache.GetByFunc(c, listingCacheKey(gen, collection, tokenId), res, func() (interface{}, error) {
		return u.repo.FindOne(c, collection, tokenId)
	}); err != nil {
		return nil, err
	}
	return res, nil
}

func (u *uc) ActiveListings(c bCtx.Ctx, filter marketplace.ListingFilter) ([]*marketplace.ListingView, error) {
	if filter.Limit <= 0 || filter.Limit > maxListingLimit {
		filter.Limit = maxListingLimit
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	if u.cache == nil {
		return u.activeListings(c, filter)
	}

	key, err := u.activeKey(c, filter)
	if err != nil {
		return nil, err
	}
	res := []*marketplace.ListingView{}
	if err := u.cache.GetByFunc(c, key, &res, func() (interface{}, error) {
		views, err := u.activeListings(c, filter)
		return &views, err
	}); err != nil {
		return nil, err
	}
	return res, nil
}

func (u *uc) activeListings(c bCtx.Ctx, filter marketplace.ListingFilter) ([]*marketplace.ListingView, error) {
	opts := []marketplace.FindAllOptionsFunc{
		marketplace.WithActive(true),
		marketplace.WithPriceRange(filter.MinPrice, filter.MaxPrice),
		marketplace.WithPagination(filter.Offset, filter.Limit),
	}
	if filter.Collection != nil {
		opts = append(opts, marketplace.WithCollection(*filter.Collection))
	}
	if filter.Seller != nil {
		opts = append(opts, marketplace.WithSeller(*filter.Seller))
	}
	listings, err := u.repo.FindAll(c, opts...)
	if err != nil {
		c.WithFields(log.Fields{"filter": filter, "err": err}).Error("repo.FindAll failed")
		return nil, err
	}

	collections := map[domain.Address]*asset.DeployedAsset{}
	res := make([]*marketplace.ListingView, 0, len(listings))
	for _, l := range listings {
		view := &marketplace.ListingView{Listing: l}
		if col, ok := collections[l.Collection]; ok {
			if col != nil {
				view.CollectionName, view.Symbol = col.Name, col.Symbol
			}
		} else if col, err := u.asset.GetAsset(c, l.Collection); err == nil {
			collections[l.Collection] = col
			view.CollectionName, view.Symbol = col.Name, col.Symbol
		} else {
			collections[l.Collection] = nil
		}
		if uri, err := u.nft.TokenURI(c, l.Collection, l.TokenId); err == nil {
			view.TokenUri = uri
		}
		if u.meta != nil && view.TokenUri != "" {
			if m, err := u.meta.GetFromUrl(c, view.TokenUri); err == nil {
				view.Name, view.Image = m.Name, m.Image
			} else {
				c.WithFields(log.Fields{"uri": view.TokenUri, "err": err}).Warn("metadata.GetFromUrl failed")
			}
		}
		res = append(res, view)
	}
	return res, nil
}
