package abi

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

const marketplaceABI = `[
{"anonymous":false,"inputs":[{"indexed":true,"name":"collection","type":"address"},{"indexed":true,"name":"tokenId","type":"uint256"},{"indexed":true,"name":"seller","type":"address"},{"indexed":false,"name":"price","type":"uint256"}],"name":"Listed","type":"event"},
{"anonymous":false,"inputs":[{"indexed":true,"name":"collection","type":"address"},{"indexed":true,"name":"tokenId","type":"uint256"},{"indexed":true,"name":"seller","type":"address"}],"name":"Unlisted","type":"event"},
{"anonymous":false,"inputs":[{"indexed":true,"name":"collection","type":"address"},{"indexed":true,"name":"tokenId","type":"uint256"},{"indexed":true,"name":"buyer","type":"address"},{"indexed":false,"name":"seller","type":"address"},{"indexed":false,"name":"price","type":"uint256"}],"name":"Sold","type":"event"},
{"inputs":[{"name":"collection","type":"address"},{"name":"tokenId","type":"uint256"},{"name":"price","type":"uint256"}],"name":"listNFT","outputs":[],"stateMutability":"nonpayable","type":"function"},
{"inputs":[{"name":"collection","type":"address"},{"name":"tokenId","type":"uint256"}],"name":"unlistNFT","outputs":[],"stateMutability":"nonpayable","type":"function"},
{"inputs":[{"name":"collection","type":"address"},{"name":"tokenId","type":"uint256"}],"name":"buyNFT","outputs":[],"stateMutability":"payable","type":"function"},
{"inputs":[{"name":"","type":"address"},{"name":"","type":"uint256"}],"name":"listings","outputs":[{"name":"seller","type":"address"},{"name":"price","type":"uint256"},{"name":"active","type":"bool"}],"stateMutability":"view","type":"function"}
]`

var MarketplaceABI = mustParse("marketplace", marketplaceABI)

type ListedLog struct {
	Collection common.Address // indexed
	TokenId    *big.Int       // indexed
	Seller     common.Address // indexed
	Price      *big.Int
}

type UnlistedLog struct {
	Collection common.Address // indexed
	TokenId    *big.Int       // indexed
	Seller     common.Address // indexed
}

type SoldLog struct {
	Collection common.Address // indexed
	TokenId    *big.Int       // indexed
	Buyer      common.Address // indexed
	Seller     common.Address
	Price      *big.Int
}

func PackListedLog(marketplace common.Address, l *ListedLog) (*types.Log, error) {
	return packLog(MarketplaceABI, "Listed", marketplace, l.Collection, l.TokenId, l.Seller, l.Price)
}

func PackUnlistedLog(marketplace common.Address, l *UnlistedLog) (*types.Log, error) {
	return packLog(MarketplaceABI, "Unlisted", marketplace, l.Collection, l.TokenId, l.Seller)
}

func PackSoldLog(marketplace common.Address, l *SoldLog) (*types.Log, error) {
	return packLog(MarketplaceABI, "Sold", marketplace, l.Collection, l.TokenId, l.Buyer, l.Seller, l.Price)
}

func ToListedLog(log *types.Log) (*ListedLog, error) {
	if err := checkLog(MarketplaceABI, "Listed", log); err != nil {
		return nil, err
	}
	var listed ListedLog
	if err := MarketplaceABI.UnpackIntoInterface(&listed, "Listed", log.Data); err != nil {
		return nil, err
	}
	listed.Collection = topicToAddress(log.Topics[1])
	listed.TokenId = topicToBig(log.Topics[2])
	listed.Seller = topicToAddress(log.Topics[3])
	return &listed, nil
}

func ToUnlistedLog(log *types.Log) (*UnlistedLog, error) {
	if err := checkLog(MarketplaceABI, "Unlisted", log); err != nil {
		return nil, err
	}
	return &UnlistedLog{
		Collection: topicToAddress(log.Topics[1]),
		TokenId:    topicToBig(log.Topics[2]),
		Seller:     topicToAddress(log.Topics[3]),
	}, nil
}

func ToSoldLog(log *types.Log) (*SoldLog, error) {
	if err := checkLog(MarketplaceABI, "Sold", log); err != nil {
		return nil, err
	}
	var sold SoldLog
	if err := MarketplaceABI.UnpackIntoInterface(&sold, "Sold", log.Data); err != nil {
		return nil, err
	}
	sold.Collection = topicToAddress(log.Topics[1])
	sold.TokenId = topicToBig(log.Topics[2])
	sold.Buyer = topicToAddress(log.Topics[3])
	return &sold, nil
}
