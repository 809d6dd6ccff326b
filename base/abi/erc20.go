package abi

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

const erc20ABI = `[
{"anonymous":false,"inputs":[{"indexed":true,"name":"from","type":"address"},{"indexed":true,"name":"to","type":"address"},{"indexed":false,"name":"value","type":"uint256"}],"name":"Transfer","type":"event"},
{"anonymous":false,"inputs":[{"indexed":true,"name":"owner","type":"address"},{"indexed":true,"name":"spender","type":"address"},{"indexed":false,"name":"value","type":"uint256"}],"name":"Approval","type":"event"},
{"inputs":[{"name":"to","type":"address"},{"name":"amount","type":"uint256"}],"name":"transfer","outputs":[{"name":"","type":"bool"}],"stateMutability":"nonpayable","type":"function"},
{"inputs":[{"name":"spender","type":"address"},{"name":"amount","type":"uint256"}],"name":"approve","outputs":[{"name":"","type":"bool"}],"stateMutability":"nonpayable","type":"function"},
{"inputs":[{"name":"from","type":"address"},{"name":"to","type":"address"},{"name":"amount","type":"uint256"}],"name":"transferFrom","outputs":[{"name":"","type":"bool"}],"stateMutability":"nonpayable","type":"function"},
{"inputs":[{"name":"to","type":"address"},{"name":"amount","type":"uint256"}],"name":"mint","outputs":[],"stateMutability":"nonpayable","type":"function"}
]`

var ERC20ABI = mustParse("erc20", erc20ABI)

type ERC20TransferLog struct {
	From  common.Address // indexed
	To    common.Address // indexed
	Value *big.Int
}

type ERC20ApprovalLog struct {
	Owner   common.Address // indexed
	Spender common.Address // indexed
	Value   *big.Int
}

func PackERC20TransferLog(token common.Address, l *ERC20TransferLog) (*types.Log, error) {
	return packLog(ERC20ABI, "Transfer", token, l.From, l.To, l.Value)
}

func PackERC20ApprovalLog(token common.Address, l *ERC20ApprovalLog) (*types.Log, error) {
	return packLog(ERC20ABI, "Approval", token, l.Owner, l.Spender, l.Value)
}

func ToERC20TransferLog(log *types.Log) (*ERC20TransferLog, error) {
	if err := checkLog(ERC20ABI, "Transfer", log); err != nil {
		return nil, err
	}
	var transfer ERC20TransferLog
	if err := ERC20ABI.UnpackIntoInterface(&transfer, "Transfer", log.Data); err != nil {
		return nil, err
	}
	transfer.From = topicToAddress(log.Topics[1])
	transfer.To = topicToAddress(log.Topics[2])
	return &transfer, nil
}
