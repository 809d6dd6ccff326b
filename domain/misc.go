package domain

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/xerrors"
)

type ChainId int32

type Address string

const EmptyAddress = Address("0x0000000000000000000000000000000000000000")

// NativeToken is the token address used for the chain's native coin balances
const NativeToken = EmptyAddress

func AddressFromCommon(a common.Address) Address {
	return Address(a.Hex()).ToLower()
}

func (a Address) ToLower() Address {
	return Address(strings.ToLower(string(a)))
}

func (a Address) ToLowerPtr() *Address {
	res := a.ToLower()
	return &res
}

func (a Address) ToLowerStr() string {
	return strings.ToLower(string(a))
}

func (a Address) IsEmpty() bool {
	return len(a) == 0
}

func (a Address) IsZero() bool {
	return a.IsEmpty() || a.Equals(EmptyAddress)
}

func (a Address) Equals(b Address) bool {
	return a.ToLowerStr() == b.ToLowerStr()
}

func (a Address) ToCommon() common.Address {
	return common.HexToAddress(string(a))
}

// Checksum returns the EIP-55 representation
func (a Address) Checksum() string {
	return a.ToCommon().Hex()
}

type TokenId string

func TokenIdFromBig(id *big.Int) TokenId {
	return TokenId(id.String())
}

func (i TokenId) String() string {
	return string(i)
}

func (i TokenId) ToBig() (*big.Int, error) {
	id, ok := new(big.Int).SetString(i.String(), 10)
	if !ok || id.Sign() < 0 {
		return nil, xerrors.Errorf("invalid id %s", i)
	}
	return id, nil
}

func (i TokenId) ToHexString() (string, error) {
	id, err := i.ToBig()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%064x", id), nil
}

type BlockNumber uint64

type TxHash string

func (h TxHash) ToLower() TxHash {
	return TxHash(strings.ToLower(string(h)))
}

func ToBigInt(nums []string) ([]*big.Int, error) {
	var bns []*big.Int
	for _, n := range nums {
		bn, ok := new(big.Int).SetString(n, 10)
		if !ok {
			return nil, ErrInvalidNumberFormat
		}
		bns = append(bns, bn)
	}
	return bns, nil
}
