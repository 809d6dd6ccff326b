package abi

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

const tokenFactoryABI = `[
{"anonymous":false,"inputs":[{"indexed":true,"name":"tokenAddress","type":"address"},{"indexed":true,"name":"creator","type":"address"},{"indexed":false,"name":"name","type":"string"},{"indexed":false,"name":"symbol","type":"string"},{"indexed":false,"name":"initialSupply","type":"uint256"}],"name":"TokenCreated","type":"event"},
{"inputs":[{"name":"name","type":"string"},{"name":"symbol","type":"string"},{"name":"initialSupply","type":"uint256"}],"name":"createToken","outputs":[{"name":"","type":"address"}],"stateMutability":"nonpayable","type":"function"},
{"inputs":[],"name":"getAllTokens","outputs":[{"name":"","type":"address[]"}],"stateMutability":"view","type":"function"},
{"inputs":[],"name":"owner","outputs":[{"name":"","type":"address"}],"stateMutability":"view","type":"function"}
]`

const nftFactoryABI = `[
{"anonymous":false,"inputs":[{"indexed":true,"name":"nftAddress","type":"address"},{"indexed":false,"name":"name","type":"string"},{"indexed":false,"name":"symbol","type":"string"},{"indexed":true,"name":"creator","type":"address"}],"name":"NFTCreated","type":"event"},
{"inputs":[{"name":"name","type":"string"},{"name":"symbol","type":"string"},{"name":"rewardToken","type":"address"}],"name":"createNFT","outputs":[{"name":"","type":"address"}],"stateMutability":"nonpayable","type":"function"},
{"inputs":[{"name":"name","type":"string"},{"name":"symbol","type":"string"}],"name":"createSoulboundNFT","outputs":[{"name":"","type":"address"}],"stateMutability":"nonpayable","type":"function"},
{"inputs":[],"name":"owner","outputs":[{"name":"","type":"address"}],"stateMutability":"view","type":"function"}
]`

var (
	TokenFactoryABI = mustParse("token factory", tokenFactoryABI)
	NFTFactoryABI   = mustParse("nft factory", nftFactoryABI)
)

type TokenCreatedLog struct {
	TokenAddress  common.Address // indexed
	Creator       common.Address // indexed
	Name          string
	Symbol        string
	InitialSupply *big.Int
}

type NFTCreatedLog struct {
	NftAddress common.Address // indexed
	Name       string
	Symbol     string
	Creator    common.Address // indexed
}

func PackTokenCreatedLog(factory common.Address, l *TokenCreatedLog) (*types.Log, error) {
	return packLog(TokenFactoryABI, "TokenCreated", factory, l.TokenAddress, l.Creator, l.Name, l.Symbol, l.InitialSupply)
}

func PackNFTCreatedLog(factory common.Address, l *NFTCreatedLog) (*types.Log, error) {
	return packLog(NFTFactoryABI, "NFTCreated", factory, l.NftAddress, l.Name, l.Symbol, l.Creator)
}

func ToTokenCreatedLog(log *types.Log) (*TokenCreatedLog, error) {
	if err := checkLog(TokenFactoryABI, "TokenCreated", log); err != nil {
		return nil, err
	}
	var created TokenCreatedLog
	if err := TokenFactoryABI.UnpackIntoInterface(&created, "TokenCreated", log.Data); err != nil {
		return nil, err
	}
	created.TokenAddress = topicToAddress(log.Topics[1])
	created.Creator = topicToAddress(log.Topics[2])
	return &created, nil
}

func ToNFTCreatedLog(log *types.Log) (*NFTCreatedLog, error) {
	if err := checkLog(NFTFactoryABI, "NFTCreated", log); err != nil {
		return nil, err
	}
	var created NFTCreatedLog
	if err := NFTFactoryABI.UnpackIntoInterface(&created, "NFTCreated", log.Data); err != nil {
		return nil, err
	}
	created.NftAddress = topicToAddress(log.Topics[1])
	created.Creator = topicToAddress(log.Topics[2])
	return &created, nil
}
