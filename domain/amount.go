package domain

import (
	"math/big"

	"github.com/shopspring/decimal"
	"golang.org/x/xerrors"
)

// EtherDecimals is the number of decimals of the native coin and every token deployed by the factory
const EtherDecimals = 18

// Amount is an integer quantity in wei, persisted as a base 10 string so it keeps full precision
type Amount string

const ZeroAmount = Amount("0")

func NewAmount(v *big.Int) Amount {
	if v == nil {
		return ZeroAmount
	}
	return Amount(v.String())
}

// Big returns the amount as big.Int, empty amount is treated as zero
func (a Amount) Big() (*big.Int, error) {
	if a == "" {
		return new(big.Int), nil
	}
	v, ok := new(big.Int).SetString(string(a), 10)
	if !ok {
		return nil, xerrors.Errorf("invalid amount %q: %w", string(a), ErrInvalidNumberFormat)
	}
	return v, nil
}

// MustBig panics on malformed amounts; used for values the service wrote itself
func (a Amount) MustBig() *big.Int {
	v, err := a.Big()
	if err != nil {
		panic(err)
	}
	return v
}

func (a Amount) String() string {
	return string(a)
}

func (a Amount) IsPositive() bool {
	v, err := a.Big()
	return err == nil && v.Sign() > 0
}

// ToEther converts wei to ether units for display
func (a Amount) ToEther() decimal.Decimal {
	v, err := a.Big()
	if err != nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(v, -EtherDecimals)
}

// ParseEther parses a human amount such as "1.5" into wei. More than 18 decimals is rejected.
func ParseEther(s string) (*big.Int, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, xerrors.Errorf("parse %q: %w", s, ErrInvalidNumberFormat)
	}
	wei := d.Shift(EtherDecimals)
	if !wei.Equal(wei.Truncate(0)) {
		return nil, xerrors.Errorf("too many decimals in %q: %w", s, ErrInvalidNumberFormat)
	}
	return wei.BigInt(), nil
}

// FormatEther formats wei as ether without trailing zeros
func FormatEther(v *big.Int) string {
	return decimal.NewFromBigInt(v, -EtherDecimals).String()
}
