package abi

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

const stakingPoolABI = `[
{"anonymous":false,"inputs":[{"indexed":true,"name":"user","type":"address"},{"indexed":false,"name":"amount","type":"uint256"}],"name":"Staked","type":"event"},
{"anonymous":false,"inputs":[{"indexed":true,"name":"user","type":"address"},{"indexed":false,"name":"amount","type":"uint256"}],"name":"Withdrawn","type":"event"},
{"anonymous":false,"inputs":[{"indexed":true,"name":"user","type":"address"},{"indexed":false,"name":"reward","type":"uint256"}],"name":"RewardPaid","type":"event"},
{"anonymous":false,"inputs":[{"indexed":false,"name":"rewardRate","type":"uint256"},{"indexed":false,"name":"periodFinish","type":"uint256"}],"name":"RewardRateUpdated","type":"event"},
{"inputs":[{"name":"amount","type":"uint256"}],"name":"stake","outputs":[],"stateMutability":"nonpayable","type":"function"},
{"inputs":[{"name":"amount","type":"uint256"}],"name":"withdraw","outputs":[],"stateMutability":"nonpayable","type":"function"},
{"inputs":[],"name":"getReward","outputs":[],"stateMutability":"nonpayable","type":"function"},
{"inputs":[],"name":"exit","outputs":[],"stateMutability":"nonpayable","type":"function"},
{"inputs":[{"name":"account","type":"address"}],"name":"earned","outputs":[{"name":"","type":"uint256"}],"stateMutability":"view","type":"function"},
{"inputs":[{"name":"rate","type":"uint256"},{"name":"duration","type":"uint256"}],"name":"setRewardRate","outputs":[],"stateMutability":"nonpayable","type":"function"},
{"inputs":[],"name":"owner","outputs":[{"name":"","type":"address"}],"stateMutability":"view","type":"function"}
]`

var StakingPoolABI = mustParse("staking pool", stakingPoolABI)

type StakedLog struct {
	User   common.Address // indexed
	Amount *big.Int
}

type WithdrawnLog struct {
	User   common.Address // indexed
	Amount *big.Int
}

type RewardPaidLog struct {
	User   common.Address // indexed
	Reward *big.Int
}

type RewardRateUpdatedLog struct {
	RewardRate   *big.Int
	PeriodFinish *big.Int
}

func PackStakedLog(pool common.Address, l *StakedLog) (*types.Log, error) {
	return packLog(StakingPoolABI, "Staked", pool, l.User, l.Amount)
}

func PackWithdrawnLog(pool common.Address, l *WithdrawnLog) (*types.Log, error) {
	return packLog(StakingPoolABI, "Withdrawn", pool, l.User, l.Amount)
}

func PackRewardPaidLog(pool common.Address, l *RewardPaidLog) (*types.Log, error) {
	return packLog(StakingPoolABI, "RewardPaid", pool, l.User, l.Reward)
}

func PackRewardRateUpdatedLog(pool common.Address, l *RewardRateUpdatedLog) (*types.Log, error) {
	return packLog(StakingPoolABI, "RewardRateUpdated", pool, l.RewardRate, l.PeriodFinish)
}

func ToStakedLog(log *types.Log) (*StakedLog, error) {
	if err := checkLog(StakingPoolABI, "Staked", log); err != nil {
		return nil, err
	}
	var staked StakedLog
	if err := StakingPoolABI.UnpackIntoInterface(&staked, "Staked", log.Data); err != nil {
		return nil, err
	}
	staked.User = topicToAddress(log.Topics[1])
	return &staked, nil
}

func ToWithdrawnLog(log *types.Log) (*WithdrawnLog, error) {
	if err := checkLog(StakingPoolABI, "Withdrawn", log); err != nil {
		return nil, err
	}
	var withdrawn WithdrawnLog
	if err := StakingPoolABI.UnpackIntoInterface(&withdrawn, "Withdrawn", log.Data); err != nil {
		return nil, err
	}
	withdrawn.User = topicToAddress(log.Topics[1])
	return &withdrawn, nil
}

func ToRewardPaidLog(log *types.Log) (*RewardPaidLog, error) {
	if err := checkLog(StakingPoolABI, "RewardPaid", log); err != nil {
		return nil, err
	}
	var paid RewardPaidLog
	if err := StakingPoolABI.UnpackIntoInterface(&paid, "RewardPaid", log.Data); err != nil {
		return nil, err
	}
	paid.User = topicToAddress(log.Topics[1])
	return &paid, nil
}
