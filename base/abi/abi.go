package abi

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

func mustParse(name, def string) abi.ABI {
	_abi, err := abi.JSON(strings.NewReader(def))
	if err != nil {
		panic(fmt.Sprintf("Failed to parse %s abi: %v", name, err))
	}
	return _abi
}

// packLog encodes an event the same way the EVM does: topic0 is the event id, indexed
// arguments follow as topics and the rest is abi encoded into data. args follow the
// declaration order of the event inputs.
func packLog(contract abi.ABI, name string, address common.Address, args ...interface{}) (*types.Log, error) {
	ev, ok := contract.Events[name]
	if !ok {
		return nil, fmt.Errorf("event %s not found", name)
	}
	if len(args) != len(ev.Inputs) {
		return nil, fmt.Errorf("event %s expects %d args, got %d", name, len(ev.Inputs), len(args))
	}

	topics := []common.Hash{ev.ID}
	nonIndexed := abi.Arguments{}
	values := []interface{}{}
	for i, input := range ev.Inputs {
		if !input.Indexed {
			nonIndexed = append(nonIndexed, input)
			values = append(values, args[i])
			continue
		}
		t, err := abi.MakeTopics([]interface{}{args[i]})
		if err != nil {
			return nil, fmt.Errorf("topic %s of %s: %w", input.Name, name, err)
		}
		topics = append(topics, t[0][0])
	}

	data, err := nonIndexed.Pack(values...)
	if err != nil {
		return nil, fmt.Errorf("pack %s: %w", name, err)
	}
	return &types.Log{
		Address: address,
		Topics:  topics,
		Data:    data,
	}, nil
}

func checkLog(contract abi.ABI, name string, log *types.Log) error {
	ev := contract.Events[name]
	if len(log.Topics) == 0 || log.Topics[0] != ev.ID {
		return fmt.Errorf("log is not %s", name)
	}
	indexed := 0
	for _, input := range ev.Inputs {
		if input.Indexed {
			indexed++
		}
	}
	if len(log.Topics) != indexed+1 {
		return fmt.Errorf("log %s expects %d topics, got %d", name, indexed+1, len(log.Topics))
	}
	return nil
}

func topicToAddress(h common.Hash) common.Address {
	return common.BytesToAddress(h.Bytes())
}

func topicToBig(h common.Hash) *big.Int {
	return new(big.Int).SetBytes(h.Bytes())
}

// EventName returns the name of the event a log carries, it looks at every known contract
func EventName(log *types.Log) string {
	if len(log.Topics) == 0 {
		return ""
	}
	// erc20 and erc721 Transfer/Approval share topic0, the indexed token id tells them apart
	if len(log.Topics) == 4 {
		if ev, err := ERC721ABI.EventByID(log.Topics[0]); err == nil {
			return ev.Name
		}
	}
	for _, contract := range []abi.ABI{MarketplaceABI, StakingPoolABI, TokenFactoryABI, NFTFactoryABI, ERC20ABI, ERC721ABI} {
		if ev, err := contract.EventByID(log.Topics[0]); err == nil {
			return ev.Name
		}
	}
	return ""
}

// MethodSig returns the canonical signature of a method, e.g. buyNFT(address,uint256)
func MethodSig(contract abi.ABI, name string) string {
	if m, ok := contract.Methods[name]; ok {
		return m.Sig
	}
	return name
}
