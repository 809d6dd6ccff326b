package ethereum

import (
	"crypto/ecdsa"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

func GenerateKey() (*ecdsa.PrivateKey, *ecdsa.PublicKey, error) {
	if privateKey, err := crypto.GenerateKey(); err != nil {
		return nil, nil, err
	} else {
		publicKey := privateKey.Public().(*ecdsa.PublicKey)
		return privateKey, publicKey, nil
	}
}

// ContractAddress is the address a CREATE from deployer at nonce ends up at
func ContractAddress(deployer common.Address, nonce uint64) common.Address {
	return crypto.CreateAddress(deployer, nonce)
}

// TxHash identifies a ledger transaction: keccak256(from | nonce | to | method | block)
func TxHash(from common.Address, nonce uint64, to common.Address, method string, block uint64) common.Hash {
	return crypto.Keccak256Hash(
		from.Bytes(),
		common.LeftPadBytes(new(big.Int).SetUint64(nonce).Bytes(), 32),
		to.Bytes(),
		[]byte(method),
		common.LeftPadBytes(new(big.Int).SetUint64(block).Bytes(), 32),
	)
}
