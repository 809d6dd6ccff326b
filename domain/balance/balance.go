package balance

import (
	"math/big"
	"time"

	"github.com/x-xyz/launchpad/base/ctx"
	"github.com/x-xyz/launchpad/domain"
	"github.com/x-xyz/launchpad/domain/ledger"
)

type Balance struct {
	Token     domain.Address `json:"token" bson:"token"`
	Account   domain.Address `json:"account" bson:"account"`
	Amount    domain.Amount  `json:"amount" bson:"amount"`
	UpdatedAt time.Time      `json:"updatedAt" bson:"updatedAt"`
}

type Allowance struct {
	Token     domain.Address `json:"token" bson:"token"`
	Owner     domain.Address `json:"owner" bson:"owner"`
	Spender   domain.Address `json:"spender" bson:"spender"`
	Amount    domain.Amount  `json:"amount" bson:"amount"`
	UpdatedAt time.Time      `json:"updatedAt" bson:"updatedAt"`
}

// LockKey names the ledger entry of one balance
func LockKey(token, account domain.Address) string {
	return "balance:" + token.ToLowerStr() + ":" + account.ToLowerStr()
}

// Debit subtracts amount from bal, the result never goes below zero
func Debit(bal, amount *big.Int) (*big.Int, error) {
	if amount.Sign() < 0 {
		return nil, domain.ErrInvalidAmount
	}
	if bal.Cmp(amount) < 0 {
		return nil, domain.ErrInsufficientBalance
	}
	return new(big.Int).Sub(bal, amount), nil
}

type Repo interface {
	EnsureIndexes(c ctx.Ctx) error
	// Get returns zero for an account never credited
	Get(c ctx.Ctx, token, account domain.Address) (*big.Int, error)
	Set(c ctx.Ctx, token, account domain.Address, amount *big.Int, at time.Time) error
	GetAllowance(c ctx.Ctx, token, owner, spender domain.Address) (*big.Int, error)
	SetAllowance(c ctx.Ctx, token, owner, spender domain.Address, amount *big.Int, at time.Time) error
	ListByAccount(c ctx.Ctx, account domain.Address) ([]*Balance, error)
}

// Bank moves funds inside a running ledger transaction. The native coin uses
// domain.NativeToken and emits no logs, every other token emits erc20 events.
type Bank interface {
	Transfer(c ctx.Ctx, tx *ledger.Tx, token, from, to domain.Address, amount *big.Int) error
	// TransferFrom spends an allowance of spender, failures are domain.ErrTransferFailed
	TransferFrom(c ctx.Ctx, tx *ledger.Tx, token, spender, from, to domain.Address, amount *big.Int) error
	Approve(c ctx.Ctx, tx *ledger.Tx, token, owner, spender domain.Address, amount *big.Int) error
	Mint(c ctx.Ctx, tx *ledger.Tx, token, to domain.Address, amount *big.Int) error
}

type UseCase interface {
	Bank

	BalanceOf(c ctx.Ctx, token, account domain.Address) (*big.Int, error)
	Allowance(c ctx.Ctx, token, owner, spender domain.Address) (*big.Int, error)
	ListByAccount(c ctx.Ctx, account domain.Address) ([]*Balance, error)

	SendTransfer(c ctx.Ctx, caller, token, to domain.Address, amount *big.Int) (*ledger.Receipt, error)
	SendApprove(c ctx.Ctx, caller, token, spender domain.Address, amount *big.Int) (*ledger.Receipt, error)
	// Faucet credits native coin, callers must be admins
	Faucet(c ctx.Ctx, to domain.Address, amount *big.Int) (*ledger.Receipt, error)
}
