package domain

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseEther(t *testing.T) {
	req := require.New(t)

	v, err := ParseEther("1.5")
	req.NoError(err)
	req.Equal("1500000000000000000", v.String())

	v, err = ParseEther("1000")
	req.NoError(err)
	req.Equal("1000000000000000000000", v.String())

	_, err = ParseEther("0.0000000000000000001")
	req.ErrorIs(err, ErrInvalidNumberFormat)

	_, err = ParseEther("x")
	req.ErrorIs(err, ErrInvalidNumberFormat)
}

func TestFormatEther(t *testing.T) {
	req := require.New(t)
	v, _ := new(big.Int).SetString("100000000000000000", 10)
	req.Equal("0.1", FormatEther(v))
	req.Equal("0", FormatEther(big.NewInt(0)))
}

func TestAmount(t *testing.T) {
	req := require.New(t)
	req.Equal(ZeroAmount, NewAmount(nil))

	v, err := Amount("").Big()
	req.NoError(err)
	req.Equal(0, v.Sign())

	_, err = Amount("1e3").Big()
	req.ErrorIs(err, ErrInvalidNumberFormat)

	req.True(Amount("10").IsPositive())
	req.False(Amount("0").IsPositive())
	req.Equal("0.00000000000000001", Amount("10").ToEther().String())
}

func TestAddress(t *testing.T) {
	req := require.New(t)
	a := Address("0x939ae6A4C8dfDBB1f7085189574F0A938013952A")
	req.True(a.Equals("0x939ae6a4c8dfdbb1f7085189574f0a938013952a"))
	req.Equal(Address("0x939ae6a4c8dfdbb1f7085189574f0a938013952a"), AddressFromCommon(a.ToCommon()))
	req.True(Address("").IsZero())
	req.True(EmptyAddress.IsZero())
	req.False(a.IsZero())
}

func TestTokenId(t *testing.T) {
	req := require.New(t)
	id, err := TokenId("12").ToBig()
	req.NoError(err)
	req.Equal(int64(12), id.Int64())
	_, err = TokenId("-1").ToBig()
	req.Error(err)
	h, err := TokenId("1").ToHexString()
	req.NoError(err)
	req.Len(h, 64)
}
