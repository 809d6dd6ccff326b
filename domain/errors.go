package domain

import "errors"

var (
	// ErrInternalServerError will throw if any the Internal Server Error happen
	ErrInternalServerError = errors.New("Internal Server Error")
	// ErrNotFound will throw if the requested item is not exists
	ErrNotFound = errors.New("Your requested Item is not found")
	// ErrConflict will throw if the current action already exists
	ErrConflict = errors.New("Your Item already exist")
	// ErrBadParamInput will throw if the given request-body or params is not valid
	ErrBadParamInput       = errors.New("Given Param is not valid")
	ErrInvalidJsonFormat   = errors.New("invalid JSON format")
	ErrInvalidNumberFormat = errors.New("invalid number format")

	// request error
	ErrInvalidAddress    = errors.New("Invalid address")
	ErrInvalidSignature  = errors.New("Invalid signature")
	ErrUnsupportedMedia  = errors.New("unsupported media type")
	ErrUnsupportedSchema = errors.New("unsupported uri schema")

	// authorization error, surfaced by the ledger
	ErrNotOwner     = errors.New("caller is not the owner")
	ErrNotApproved  = errors.New("marketplace is not approved")
	ErrNotSeller    = errors.New("caller is not the seller")
	ErrNotPoolOwner = errors.New("caller is not the pool owner")
	ErrNotMinter    = errors.New("caller is not allowed to mint")

	// logical error, the transaction is reverted
	ErrInvalidPrice        = errors.New("price must be greater than zero")
	ErrInvalidAmount       = errors.New("amount must be greater than zero")
	ErrNotListed           = errors.New("item is not listed")
	ErrInsufficientPayment = errors.New("insufficient payment")
	ErrCannotBuyOwn        = errors.New("seller cannot buy own listing")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrTransferFailed      = errors.New("token transfer failed")
	ErrNothingToClaim      = errors.New("nothing to claim")
	ErrSoulbound           = errors.New("soulbound token is not transferable")
	ErrInvalidRecipient    = errors.New("invalid recipient")

	// transient error
	ErrLockTimeout = errors.New("resource is busy")
)
