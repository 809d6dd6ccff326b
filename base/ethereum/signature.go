package ethereum

import (
	"crypto/ecdsa"
	"fmt"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

// ValidateMsgSignature checks an EIP-191 personal_sign signature of message against signer
func ValidateMsgSignature(message []byte, signature, signer string) (bool, error) {
	if !common.IsHexAddress(signer) {
		return false, fmt.Errorf("invalid signer %s", signer)
	}
	sig, err := hexutil.Decode(signature)
	if err != nil {
		return false, err
	}
	recovered, err := recoverSigner(accounts.TextHash(message), sig)
	if err != nil {
		return false, err
	}
	return recovered == common.HexToAddress(signer), nil
}

// SignMessage produces the same signature a wallet returns for personal_sign
func SignMessage(message []byte, key *ecdsa.PrivateKey) (string, error) {
	sig, err := crypto.Sign(accounts.TextHash(message), key)
	if err != nil {
		return "", err
	}
	sig[crypto.RecoveryIDOffset] += 27
	return hexutil.Encode(sig), nil
}

// recoverSigner accepts V as 0/1 or 27/28, wallets return either
func recoverSigner(hash, signature []byte) (common.Address, error) {
	if len(signature) != crypto.SignatureLength {
		return common.Address{}, fmt.Errorf("signature must be %d bytes long", crypto.SignatureLength)
	}
	sig := common.CopyBytes(signature)
	switch v := sig[crypto.RecoveryIDOffset]; v {
	case 0, 1:
	case 27, 28:
		sig[crypto.RecoveryIDOffset] = v - 27
	default:
		return common.Address{}, fmt.Errorf("invalid signature recovery id %d", v)
	}
	pub, err := crypto.SigToPub(hash, sig)
	if err != nil {
		return common.Address{}, err
	}
	return crypto.PubkeyToAddress(*pub), nil
}
