package usecase

import (
	"errors"
	"math/big"
	"strings"

	bAbi "github.com/x-xyz/launchpad/base/abi"
	bCtx "github.com/x-xyz/launchpad/base/ctx"
	"github.com/x-xyz/launchpad/base/log"
	"github.com/x-xyz/launchpad/domain"
	"github.com/x-xyz/launchpad/domain/asset"
	"github.com/x-xyz/launchpad/domain/ledger"
	"github.com/x-xyz/launchpad/domain/nftitem"
)

type Cfg struct {
	Repo   nftitem.Repo
	Ledger ledger.UseCase
	Asset  asset.UseCase
}

type uc struct {
	repo   nftitem.Repo
	ledger ledger.UseCase
	asset  asset.UseCase
}

func New(cfg *Cfg) nftitem.UseCase {
	return &uc{
		repo:   cfg.Repo,
		ledger: cfg.Ledger,
		asset:  cfg.Asset,
	}
}

func collectionLock(collection domain.Address) string {
	return "collection:" + collection.ToLowerStr()
}

func operatorLock(collection, owner domain.Address) string {
	return "operator:" + collection.ToLowerStr() + ":" + owner.ToLowerStr()
}

func (u *uc) collection(c bCtx.Ctx, address domain.Address) (*asset.DeployedAsset, error) {
	a, err := u.asset.GetAsset(c, address)
	if err != nil {
		return nil, err
	}
	if !a.IsCollection() {
		return nil, domain.ErrBadParamInput
	}
	return a, nil
}

func (u *uc) Mint(c bCtx.Ctx, caller, collection, to domain.Address, tokenUri string) (*nftitem.Minted, error) {
	tokenUri = strings.TrimSpace(tokenUri)
	if tokenUri == "" {
		return nil, domain.ErrBadParamInput
	}
	if to.IsZero() {
		return nil, domain.ErrInvalidRecipient
	}
	col, err := u.collection(c, collection)
	if err != nil {
		return nil, err
	}
	if !col.Creator.Equals(caller) {
		return nil, domain.ErrNotMinter
	}

	var tokenId domain.TokenId
	call := ledger.Call{
		From:   caller,
		To:     col.Address,
		Method: bAbi.MethodSig(bAbi.ERC721ABI, "mint"),
		Locks:  []string{collectionLock(col.Address)},
	}
	receipt, err := u.ledger.Execute(c, call, func(c bCtx.Ctx, tx *ledger.Tx) error {
		next, err := u.asset.NextTokenId(c, col.Address)
		if err != nil {
			return err
		}
		id := big.NewInt(next)
		tokenId = domain.TokenIdFromBig(id)
		item := &nftitem.NftItem{
			Collection: col.Address,
			TokenId:    tokenId,
			Owner:      to.ToLower(),
			TokenUri:   tokenUri,
			MintTxHash: tx.Hash,
			MintedAt:   tx.BlockTime,
			UpdatedAt:  tx.BlockTime,
		}
		if err := u.repo.Create(c, item); err != nil {
			return err
		}
		if err := tx.Emit(bAbi.PackERC721TransferLog(col.Address.ToCommon(), &bAbi.ERC721TransferLog{
			From:    domain.EmptyAddress.ToCommon(),
			To:      to.ToCommon(),
			TokenId: id,
		})); err != nil {
			return err
		}
		return tx.Emit(bAbi.PackMintedLog(col.Address.ToCommon(), &bAbi.MintedLog{
			TokenId:  id,
			Owner:    to.ToCommon(),
			TokenURI: tokenUri,
		}))
	})
	if err != nil {
		return nil, err
	}

	c.WithFields(log.Fields{"collection": col.Address, "tokenId": tokenId, "to": to}).Info("nft minted")
	return &nftitem.Minted{TokenId: tokenId, Receipt: receipt}, nil
}

func (u *uc) Approve(c bCtx.Ctx, caller, collection, spender domain.Address, tokenId domain.TokenId) (*ledger.Receipt, error) {
	id, err := tokenId.ToBig()
	if err != nil {
		return nil, domain.ErrBadParamInput
	}
	col, err := u.collection(c, collection)
	if err != nil {
		return nil, err
	}
	if col.Soulbound {
		return nil, domain.ErrSoulbound
	}

	call := ledger.Call{
		From:   caller,
		To:     col.Address,
		Method: bAbi.MethodSig(bAbi.ERC721ABI, "approve"),
		Locks:  []string{nftitem.LockKey(col.Address, tokenId)},
	}
	return u.ledger.Execute(c, call, func(c bCtx.Ctx, tx *ledger.Tx) error {
		item, err := u.repo.FindOne(c, col.Address, tokenId)
		if err != nil {
			return err
		}
		if !item.Owner.Equals(caller) {
			operator, err := u.repo.IsApprovedForAll(c, col.Address, item.Owner, caller)
			if err != nil {
				return err
			}
			if !operator {
				return domain.ErrNotOwner
			}
		}
		item.Approved = ""
		if !spender.IsZero() {
			item.Approved = spender.ToLower()
		}
		item.UpdatedAt = tx.BlockTime
		if err := u.repo.Update(c, item); err != nil {
			return err
		}
		return tx.Emit(bAbi.PackERC721ApprovalLog(col.Address.ToCommon(), &bAbi.ERC721ApprovalLog{
			Owner:    item.Owner.ToCommon(),
			Approved: spender.ToCommon(),
			TokenId:  id,
		}))
	})
}

func (u *uc) SetApprovalForAll(c bCtx.Ctx, caller, collection, operator domain.Address, approved bool) (*ledger.Receipt, error) {
	if operator.IsZero() || operator.Equals(caller) {
		return nil, domain.ErrBadParamInput
	}
	col, err := u.collection(c, collection)
	if err != nil {
		return nil, err
	}
	if col.Soulbound {
		return nil, domain.ErrSoulbound
	}

	call := ledger.Call{
		From:   caller,
		To:     col.Address,
		Method: bAbi.MethodSig(bAbi.ERC721ABI, "setApprovalForAll"),
		Locks:  []string{operatorLock(col.Address, caller)},
	}
	return u.ledger.Execute(c, call, func(c bCtx.Ctx, tx *ledger.Tx) error {
		if err := u.repo.SetApprovalForAll(c, &nftitem.OperatorApproval{
			Collection: col.Address,
			Owner:      caller.ToLower(),
			Operator:   operator.ToLower(),
			Approved:   approved,
			UpdatedAt:  tx.BlockTime,
		}); err != nil {
			return err
		}
		return tx.Emit(bAbi.PackApprovalForAllLog(col.Address.ToCommon(), &bAbi.ApprovalForAllLog{
			Owner:    caller.ToCommon(),
			Operator: operator.ToCommon(),
			Approved: approved,
		}))
	})
}

func (u *uc) TransferFrom(c bCtx.Ctx, tx *ledger.Tx, spender, collection, from, to domain.Address, tokenId domain.TokenId) error {
	id, err := tokenId.ToBig()
	if err != nil {
		return domain.ErrBadParamInput
	}
	if to.IsZero() {
		return domain.ErrInvalidRecipient
	}
	soulbound, err := u.IsSoulbound(c, collection)
	if err != nil {
		return err
	}
	if soulbound {
		return domain.ErrSoulbound
	}

	item, err := u.repo.FindOne(c, collection, tokenId)
	if err != nil {
		return err
	}
	if !item.Owner.Equals(from) {
		return domain.ErrNotOwner
	}
	ok, err := u.isApprovedOrOwner(c, spender, item)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotApproved
	}

	item.Owner = to.ToLower()
	item.Approved = ""
	item.UpdatedAt = tx.BlockTime
	if err := u.repo.Update(c, item); err != nil {
		return err
	}
	return tx.Emit(bAbi.PackERC721TransferLog(collection.ToCommon(), &bAbi.ERC721TransferLog{
		From:    from.ToCommon(),
		To:      to.ToCommon(),
		TokenId: id,
	}))
}

func (u *uc) SendTransferFrom(c bCtx.Ctx, caller, collection, from, to domain.Address, tokenId domain.TokenId) (*ledger.Receipt, error) {
	call := ledger.Call{
		From:   caller,
		To:     collection,
		Method: bAbi.MethodSig(bAbi.ERC721ABI, "transferFrom"),
		Locks:  []string{nftitem.LockKey(collection, tokenId)},
	}
	return u.ledger.Execute(c, call, func(c bCtx.Ctx, tx *ledger.Tx) error {
		return u.TransferFrom(c, tx, caller, collection, from, to, tokenId)
	})
}

func (u *uc) OwnerOf(c bCtx.Ctx, collection domain.Address, tokenId domain.TokenId) (domain.Address, error) {
	item, err := u.repo.FindOne(c, collection, tokenId)
	if err != nil {
		return "", err
	}
	return item.Owner, nil
}

func (u *uc) IsApprovedOrOwner(c bCtx.Ctx, spender, collection domain.Address, tokenId domain.TokenId) (bool, error) {
	item, err := u.repo.FindOne(c, collection, tokenId)
	if err != nil {
		return false, err
	}
	return u.isApprovedOrOwner(c, spender, item)
}

func (u *uc) isApprovedOrOwner(c bCtx.Ctx, spender domain.Address, item *nftitem.NftItem) (bool, error) {
	if item.Owner.Equals(spender) || (!item.Approved.IsEmpty() && item.Approved.Equals(spender)) {
		return true, nil
	}
	return u.repo.IsApprovedForAll(c, item.Collection, item.Owner, spender)
}

func (u *uc) IsApprovedForAll(c bCtx.Ctx, collection, owner, operator domain.Address) (bool, error) {
	return u.repo.IsApprovedForAll(c, collection, owner, operator)
}

func (u *uc) IsSoulbound(c bCtx.Ctx, collection domain.Address) (bool, error) {
	col, err := u.collection(c, collection)
	if err != nil {
		return false, err
	}
	return col.Soulbound, nil
}

func (u *uc) GetItem(c bCtx.Ctx, collection domain.Address, tokenId domain.TokenId) (*nftitem.NftItem, error) {
	if _, err := tokenId.ToBig(); err != nil {
		return nil, domain.ErrBadParamInput
	}
	return u.repo.FindOne(c, collection, tokenId)
}

func (u *uc) TokenURI(c bCtx.Ctx, collection domain.Address, tokenId domain.TokenId) (string, error) {
	item, err := u.repo.FindOne(c, collection, tokenId)
	if errors.Is(err, domain.ErrNotFound) {
		return "", err
	} else if err != nil {
		c.WithFields(log.Fields{"collection": collection, "tokenId": tokenId, "err": err}).Error("repo.FindOne failed")
		return "", err
	}
	return item.TokenUri, nil
}

func (u *uc) ListByOwner(c bCtx.Ctx, owner domain.Address, offset, limit int32) ([]*nftitem.NftItem, error) {
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	return u.repo.FindAll(c, nftitem.WithOwner(owner), nftitem.WithPagination(offset, limit))
}
