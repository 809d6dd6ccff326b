package asset

import (
	"math/big"
	"time"

	"github.com/x-xyz/launchpad/base/ctx"
	"github.com/x-xyz/launchpad/domain"
	"github.com/x-xyz/launchpad/domain/ledger"
)

type Kind string

const (
	KindToken Kind = "token"
	KindNft   Kind = "nft"
)

const TokenDecimals = 18

// DeployedAsset is a token or nft collection created by one of the factories. It is written
// once at creation, only NextTokenId of a collection moves afterwards.
type DeployedAsset struct {
	Address       domain.Address     `json:"address" bson:"address"`
	Kind          Kind               `json:"kind" bson:"kind"`
	Factory       domain.Address     `json:"factory" bson:"factory"`
	Name          string             `json:"name" bson:"name"`
	Symbol        string             `json:"symbol" bson:"symbol"`
	Creator       domain.Address     `json:"creator" bson:"creator"`
	InitialSupply domain.Amount      `json:"initialSupply,omitempty" bson:"initialSupply,omitempty"`
	Decimals      uint8              `json:"decimals,omitempty" bson:"decimals,omitempty"`
	Description   string             `json:"description,omitempty" bson:"description,omitempty"`
	Soulbound     bool               `json:"soulbound" bson:"soulbound"`
	RewardToken   *domain.Address    `json:"rewardToken,omitempty" bson:"rewardToken,omitempty"`
	MetadataURI   string             `json:"metadataUri,omitempty" bson:"metadataUri,omitempty"`
	ImageURI      string             `json:"imageUri,omitempty" bson:"imageUri,omitempty"`
	NextTokenId   int64              `json:"nextTokenId,omitempty" bson:"nextTokenId"`
	TxHash        domain.TxHash      `json:"transactionHash" bson:"txHash"`
	BlockNumber   domain.BlockNumber `json:"blockNumber" bson:"blockNumber"`
	CreatedAt     time.Time          `json:"createdAt" bson:"createdAt"`
}

func (a *DeployedAsset) IsCollection() bool {
	return a.Kind == KindNft
}

type NFTOptions struct {
	Description string
	Soulbound   bool
	RewardToken domain.Address
	MetadataURI string
	ImageURI    string
}

type ListOptions struct {
	Kind    *Kind
	Creator *domain.Address
	Offset  int
	Limit   int
}

// Created is the result of a factory call, the address is known without parsing logs
type Created struct {
	Address domain.Address  `json:"address"`
	Receipt *ledger.Receipt `json:"receipt"`
}

type Repo interface {
	EnsureIndexes(c ctx.Ctx) error
	Insert(c ctx.Ctx, a *DeployedAsset) error
	FindOne(c ctx.Ctx, address domain.Address) (*DeployedAsset, error)
	FindAll(c ctx.Ctx, opts ListOptions) ([]*DeployedAsset, error)
	// IncrNextTokenId hands out the next token id of a collection, starting at 1
	IncrNextTokenId(c ctx.Ctx, address domain.Address) (int64, error)
}

type UseCase interface {
	CreateToken(c ctx.Ctx, caller domain.Address, name, symbol string, initialSupply *big.Int) (*Created, error)
	CreateNFTCollection(c ctx.Ctx, caller domain.Address, name, symbol string, opts NFTOptions) (*Created, error)
	GetAsset(c ctx.Ctx, address domain.Address) (*DeployedAsset, error)
	ListAssets(c ctx.Ctx, opts ListOptions) ([]*DeployedAsset, error)
	// NextTokenId is used by the collection itself while minting
	NextTokenId(c ctx.Ctx, collection domain.Address) (int64, error)
	// Owner returns the owner of the factory deploying kind
	Owner(kind Kind) domain.Address
	Factory(kind Kind) domain.Address
}
