package nftitem

import (
	"time"

	"github.com/x-xyz/launchpad/base/ctx"
	"github.com/x-xyz/launchpad/domain"
	"github.com/x-xyz/launchpad/domain/ledger"
)

type Id struct {
	Collection domain.Address `json:"collection" bson:"collection"`
	TokenId    domain.TokenId `json:"tokenId" bson:"tokenId"`
}

// NftItem is one token of a collection deployed by the nft factory
type NftItem struct {
	Collection domain.Address `json:"collection" bson:"collection"`
	TokenId    domain.TokenId `json:"tokenId" bson:"tokenId"`
	Owner      domain.Address `json:"owner" bson:"owner"`
	TokenUri   string         `json:"tokenUri" bson:"tokenUri"`
	// Approved is the single token approval, empty when unset
	Approved   domain.Address `json:"approved" bson:"approved"`
	MintTxHash domain.TxHash  `json:"mintTxHash" bson:"mintTxHash"`
	MintedAt   time.Time      `json:"mintedAt" bson:"mintedAt"`
	UpdatedAt  time.Time      `json:"updatedAt" bson:"updatedAt"`
}

func (n *NftItem) ToId() Id {
	return Id{Collection: n.Collection, TokenId: n.TokenId}
}

type OperatorApproval struct {
	Collection domain.Address `json:"collection" bson:"collection"`
	Owner      domain.Address `json:"owner" bson:"owner"`
	Operator   domain.Address `json:"operator" bson:"operator"`
	Approved   bool           `json:"approved" bson:"approved"`
	UpdatedAt  time.Time      `json:"updatedAt" bson:"updatedAt"`
}

type FindAllOptions struct {
	Collection *domain.Address
	Owner      *domain.Address
	Offset     *int32
	Limit      *int32
}

type FindAllOptionsFunc func(*FindAllOptions) error

func GetFindAllOptions(opts ...FindAllOptionsFunc) (FindAllOptions, error) {
	res := FindAllOptions{}

	for _, opt := range opts {
		if err := opt(&res); err != nil {
			return res, err
		}
	}

	return res, nil
}

func WithCollection(address domain.Address) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.Collection = address.ToLowerPtr()
		return nil
	}
}

func WithOwner(address domain.Address) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.Owner = address.ToLowerPtr()
		return nil
	}
}

func WithPagination(offset int32, limit int32) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.Offset = &offset
		options.Limit = &limit
		return nil
	}
}

// LockKey guards one token while a transaction moves it
func LockKey(collection domain.Address, tokenId domain.TokenId) string {
	return "nft:" + collection.ToLowerStr() + ":" + tokenId.String()
}

type Repo interface {
	EnsureIndexes(c ctx.Ctx) error
	// FindOne returns domain.ErrNotFound for a token never minted
	FindOne(c ctx.Ctx, collection domain.Address, tokenId domain.TokenId) (*NftItem, error)
	FindAll(c ctx.Ctx, opts ...FindAllOptionsFunc) ([]*NftItem, error)
	Create(c ctx.Ctx, item *NftItem) error
	// Update replaces the owner, approval and update time of an existing item
	Update(c ctx.Ctx, item *NftItem) error
	IsApprovedForAll(c ctx.Ctx, collection, owner, operator domain.Address) (bool, error)
	SetApprovalForAll(c ctx.Ctx, approval *OperatorApproval) error
}

type Minted struct {
	TokenId domain.TokenId  `json:"tokenId"`
	Receipt *ledger.Receipt `json:"receipt"`
}

// Registry moves tokens inside a running ledger transaction
type Registry interface {
	// TransferFrom moves tokenId by spender, who must be the owner, approved or an operator.
	// It fails with domain.ErrNotOwner when from does not own the token and domain.ErrNotApproved
	// when spender has no right over it.
	TransferFrom(c ctx.Ctx, tx *ledger.Tx, spender, collection, from, to domain.Address, tokenId domain.TokenId) error
	OwnerOf(c ctx.Ctx, collection domain.Address, tokenId domain.TokenId) (domain.Address, error)
	IsApprovedOrOwner(c ctx.Ctx, spender, collection domain.Address, tokenId domain.TokenId) (bool, error)
	IsSoulbound(c ctx.Ctx, collection domain.Address) (bool, error)
}

type UseCase interface {
	Registry

	// Mint is restricted to the collection creator, token ids start at 1
	Mint(c ctx.Ctx, caller, collection, to domain.Address, tokenUri string) (*Minted, error)
	Approve(c ctx.Ctx, caller, collection, spender domain.Address, tokenId domain.TokenId) (*ledger.Receipt, error)
	SetApprovalForAll(c ctx.Ctx, caller, collection, operator domain.Address, approved bool) (*ledger.Receipt, error)
	SendTransferFrom(c ctx.Ctx, caller, collection, from, to domain.Address, tokenId domain.TokenId) (*ledger.Receipt, error)

	GetItem(c ctx.Ctx, collection domain.Address, tokenId domain.TokenId) (*NftItem, error)
	TokenURI(c ctx.Ctx, collection domain.Address, tokenId domain.TokenId) (string, error)
	ListByOwner(c ctx.Ctx, owner domain.Address, offset, limit int32) ([]*NftItem, error)
	IsApprovedForAll(c ctx.Ctx, collection, owner, operator domain.Address) (bool, error)
}
