package ethereum

import (
	"fmt"
	"testing"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"
)

func TestValidateMsgSignature(t *testing.T) {
	req := require.New(t)
	key, pub, err := GenerateKey()
	req.NoError(err)
	signer := crypto.PubkeyToAddress(*pub).Hex()
	_, otherPub, err := GenerateKey()
	req.NoError(err)
	message := []byte(fmt.Sprintf("Sign this message to log in to the launchpad.\n\nNonce: %s", "9f2c"))

	raw, err := crypto.Sign(accounts.TextHash(message), key)
	req.NoError(err)
	wallet, err := SignMessage(message, key)
	req.NoError(err)

	tests := []struct {
		name    string
		message []byte
		sig     string
		signer  string
		valid   bool
	}{
		{"wallet v", message, wallet, signer, true},
		{"raw v", message, hexutil.Encode(raw), signer, true},
		{"lowercase signer", message, wallet, hexutil.Encode(crypto.PubkeyToAddress(*pub).Bytes()), true},
		{"other nonce", []byte("Nonce: 0000"), wallet, signer, false},
		{"other signer", message, wallet, crypto.PubkeyToAddress(*otherPub).Hex(), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			valid, err := ValidateMsgSignature(tt.message, tt.sig, tt.signer)
			require.NoError(t, err)
			require.Equal(t, tt.valid, valid)
		})
	}
}

func TestValidateMsgSignatureMalformed(t *testing.T) {
	req := require.New(t)
	signer := "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"
	_, err := ValidateMsgSignature([]byte("x"), "not-hex", signer)
	req.Error(err)
	_, err = ValidateMsgSignature([]byte("x"), "0x1234", signer)
	req.Error(err)
	_, err = ValidateMsgSignature([]byte("x"), "0x1234", "bob")
	req.Error(err)

	key, _, err := GenerateKey()
	req.NoError(err)
	sig, err := crypto.Sign(accounts.TextHash([]byte("x")), key)
	req.NoError(err)
	sig[crypto.RecoveryIDOffset] = 30
	_, err = ValidateMsgSignature([]byte("x"), hexutil.Encode(sig), signer)
	req.Error(err)
}

func TestSignMessageReusable(t *testing.T) {
	req := require.New(t)
	key, pub, err := GenerateKey()
	req.NoError(err)
	sig, err := SignMessage([]byte("login nonce 42"), key)
	req.NoError(err)
	for i := 0; i < 2; i++ {
		valid, err := ValidateMsgSignature([]byte("login nonce 42"), sig, crypto.PubkeyToAddress(*pub).Hex())
		req.NoError(err)
		req.True(valid)
	}
}
