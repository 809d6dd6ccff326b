package abi

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

const erc721ABI = `[
{"anonymous":false,"inputs":[{"indexed":true,"name":"from","type":"address"},{"indexed":true,"name":"to","type":"address"},{"indexed":true,"name":"tokenId","type":"uint256"}],"name":"Transfer","type":"event"},
{"anonymous":false,"inputs":[{"indexed":true,"name":"owner","type":"address"},{"indexed":true,"name":"approved","type":"address"},{"indexed":true,"name":"tokenId","type":"uint256"}],"name":"Approval","type":"event"},
{"anonymous":false,"inputs":[{"indexed":true,"name":"owner","type":"address"},{"indexed":true,"name":"operator","type":"address"},{"indexed":false,"name":"approved","type":"bool"}],"name":"ApprovalForAll","type":"event"},
{"anonymous":false,"inputs":[{"indexed":true,"name":"tokenId","type":"uint256"},{"indexed":true,"name":"owner","type":"address"},{"indexed":false,"name":"tokenURI","type":"string"}],"name":"Minted","type":"event"},
{"inputs":[{"name":"to","type":"address"},{"name":"tokenURI","type":"string"}],"name":"mint","outputs":[{"name":"","type":"uint256"}],"stateMutability":"nonpayable","type":"function"},
{"inputs":[{"name":"to","type":"address"},{"name":"tokenId","type":"uint256"}],"name":"approve","outputs":[],"stateMutability":"nonpayable","type":"function"},
{"inputs":[{"name":"operator","type":"address"},{"name":"approved","type":"bool"}],"name":"setApprovalForAll","outputs":[],"stateMutability":"nonpayable","type":"function"},
{"inputs":[{"name":"from","type":"address"},{"name":"to","type":"address"},{"name":"tokenId","type":"uint256"}],"name":"transferFrom","outputs":[],"stateMutability":"nonpayable","type":"function"},
{"inputs":[{"name":"tokenId","type":"uint256"}],"name":"ownerOf","outputs":[{"name":"","type":"address"}],"stateMutability":"view","type":"function"},
{"inputs":[{"name":"tokenId","type":"uint256"}],"name":"tokenURI","outputs":[{"name":"","type":"string"}],"stateMutability":"view","type":"function"}
]`

var ERC721ABI = mustParse("erc721", erc721ABI)

type ERC721TransferLog struct {
	From    common.Address // indexed
	To      common.Address // indexed
	TokenId *big.Int       // indexed
}

type ERC721ApprovalLog struct {
	Owner    common.Address // indexed
	Approved common.Address // indexed
	TokenId  *big.Int       // indexed
}

type ApprovalForAllLog struct {
	Owner    common.Address // indexed
	Operator common.Address // indexed
	Approved bool
}

type MintedLog struct {
	TokenId  *big.Int       // indexed
	Owner    common.Address // indexed
	TokenURI string
}

func PackERC721TransferLog(collection common.Address, l *ERC721TransferLog) (*types.Log, error) {
	return packLog(ERC721ABI, "Transfer", collection, l.From, l.To, l.TokenId)
}

func PackERC721ApprovalLog(collection common.Address, l *ERC721ApprovalLog) (*types.Log, error) {
	return packLog(ERC721ABI, "Approval", collection, l.Owner, l.Approved, l.TokenId)
}

func PackApprovalForAllLog(collection common.Address, l *ApprovalForAllLog) (*types.Log, error) {
	return packLog(ERC721ABI, "ApprovalForAll", collection, l.Owner, l.Operator, l.Approved)
}

func PackMintedLog(collection common.Address, l *MintedLog) (*types.Log, error) {
	return packLog(ERC721ABI, "Minted", collection, l.TokenId, l.Owner, l.TokenURI)
}

func ToERC721TransferLog(log *types.Log) (*ERC721TransferLog, error) {
	if err := checkLog(ERC721ABI, "Transfer", log); err != nil {
		return nil, err
	}
	return &ERC721TransferLog{
		From:    topicToAddress(log.Topics[1]),
		To:      topicToAddress(log.Topics[2]),
		TokenId: topicToBig(log.Topics[3]),
	}, nil
}

func ToMintedLog(log *types.Log) (*MintedLog, error) {
	if err := checkLog(ERC721ABI, "Minted", log); err != nil {
		return nil, err
	}
	var minted MintedLog
	if err := ERC721ABI.UnpackIntoInterface(&minted, "Minted", log.Data); err != nil {
		return nil, err
	}
	minted.TokenId = topicToBig(log.Topics[1])
	minted.Owner = topicToAddress(log.Topics[2])
	return &minted, nil
}
