package validator

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/x-xyz/launchpad/domain"
)

// IsValidAddress returns is an address valid or not
func IsValidAddress(address string) bool {
	if !common.IsHexAddress(address) {
		return false
	}
	checksum := common.HexToAddress(address).Hex()
	return strings.ToLower(checksum) == strings.ToLower(address)
}

// IsPositiveEther returns true for decimal strings like "1.5" that are greater than zero
func IsPositiveEther(s string) bool {
	v, err := domain.ParseEther(s)
	return err == nil && v.Sign() > 0
}

// IsPositiveWei returns true for base 10 integer strings greater than zero
func IsPositiveWei(s string) bool {
	return domain.Amount(s).IsPositive()
}

func NewCustomValidator(v *validator.Validate) echo.Validator {
	_ = v.RegisterValidation("address", func(fl validator.FieldLevel) bool {
		return IsValidAddress(fl.Field().String())
	})
	_ = v.RegisterValidation("ether", func(fl validator.FieldLevel) bool {
		return IsPositiveEther(fl.Field().String())
	})
	_ = v.RegisterValidation("wei", func(fl validator.FieldLevel) bool {
		return IsPositiveWei(fl.Field().String())
	})
	return &CustomValidator{v}
}

type CustomValidator struct {
	validator *validator.Validate
}

func (v *CustomValidator) Validate(i interface{}) error {
	if err := v.validator.Struct(i); err != nil {
		return err
	}
	return nil
}
