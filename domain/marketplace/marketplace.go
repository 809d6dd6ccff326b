package marketplace

import (
	"math/big"
	"time"

	"github.com/x-xyz/launchpad/base/ctx"
	"github.com/x-xyz/launchpad/domain"
	"github.com/x-xyz/launchpad/domain/ledger"
)

// Listing is keyed by (collection, tokenId). Relisting overwrites it and it is never deleted,
// an inactive listing keeps the last sale.
type Listing struct {
	Collection   domain.Address     `json:"collection" bson:"collection"`
	TokenId      domain.TokenId     `json:"tokenId" bson:"tokenId"`
	Seller       domain.Address     `json:"seller" bson:"seller"`
	Price        domain.Amount      `json:"price" bson:"price"`
	PriceInEther float64            `json:"priceInEther" bson:"priceInEther"`
	Active       bool               `json:"active" bson:"active"`
	ListedAt     time.Time          `json:"listedAt" bson:"listedAt"`
	ListedBlock  domain.BlockNumber `json:"listedBlock" bson:"listedBlock"`
	TxHash       domain.TxHash      `json:"transactionHash" bson:"txHash"`
	Buyer        *domain.Address    `json:"buyer,omitempty" bson:"buyer,omitempty"`
	SoldPrice    *domain.Amount     `json:"soldPrice,omitempty" bson:"soldPrice,omitempty"`
	SoldAt       *time.Time         `json:"soldAt,omitempty" bson:"soldAt,omitempty"`
	UpdatedAt    time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// ListingView is an active listing with what a buyer needs to display it
type ListingView struct {
	*Listing
	TokenUri       string `json:"tokenUri"`
	CollectionName string `json:"collectionName"`
	Symbol         string `json:"symbol"`
	// Name and Image come from the token's metadata document when it resolves
	Name  string `json:"name,omitempty"`
	Image string `json:"image,omitempty"`
}

type FindAllOptions struct {
	Collection *domain.Address
	Seller     *domain.Address
	Active     *bool
	MinPrice   *float64
	MaxPrice   *float64
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

func WithSeller(address domain.Address) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.Seller = address.ToLowerPtr()
		return nil
	}
}

func WithActive(active bool) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.Active = &active
		return nil
	}
}

// WithPriceRange filters by price in ether, a nil bound is open
func WithPriceRange(min, max *float64) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		if min != nil && max != nil && *min > *max {
			return domain.ErrBadParamInput
		}
		options.MinPrice = min
		options.MaxPrice = max
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

// ListingFilter is the query of active listings
type ListingFilter struct {
	Collection *domain.Address `json:"collection,omitempty"`
	Seller     *domain.Address `json:"seller,omitempty"`
	MinPrice   *float64        `json:"minPrice,omitempty"`
	MaxPrice   *float64        `json:"maxPrice,omitempty"`
	Offset     int32           `json:"offset"`
	Limit      int32           `json:"limit"`
}

// LockKey guards the listing of one token
func LockKey(collection domain.Address, tokenId domain.TokenId) string {
	return "listing:" + collection.ToLowerStr() + ":" + tokenId.String()
}

type Repo interface {
	EnsureIndexes(c ctx.Ctx) error
	// FindOne returns domain.ErrNotFound when the token was never listed
	FindOne(c ctx.Ctx, collection domain.Address, tokenId domain.TokenId) (*Listing, error)
	FindAll(c ctx.Ctx, opts ...FindAllOptionsFunc) ([]*Listing, error)
	Upsert(c ctx.Ctx, listing *Listing) error
}

type UseCase interface {
	// List requires the caller to own the token and the marketplace to be approved for it
	List(c ctx.Ctx, caller, collection domain.Address, tokenId domain.TokenId, price *big.Int) (*ledger.Receipt, error)
	Unlist(c ctx.Ctx, caller, collection domain.Address, tokenId domain.TokenId) (*ledger.Receipt, error)
	// Buy moves the token and the price in native coin at once, payment above the price is not taken
	Buy(c ctx.Ctx, caller, collection domain.Address, tokenId domain.TokenId, payment *big.Int) (*ledger.Receipt, error)

	GetListing(c ctx.Ctx, collection domain.Address, tokenId domain.TokenId) (*Listing, error)
	ActiveListings(c ctx.Ctx, filter ListingFilter) ([]*ListingView, error)
	Address() domain.Address
}
