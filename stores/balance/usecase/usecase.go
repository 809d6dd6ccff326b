package usecase

import (
	"errors"
	"math/big"

	bAbi "github.com/x-xyz/launchpad/base/abi"
	bCtx "github.com/x-xyz/launchpad/base/ctx"
	"github.com/x-xyz/launchpad/base/log"
	"github.com/x-xyz/launchpad/domain"
	"github.com/x-xyz/launchpad/domain/balance"
	"github.com/x-xyz/launchpad/domain/ledger"
)

type Cfg struct {
	Repo   balance.Repo
	Ledger ledger.UseCase
	// Operator signs faucet transactions
	Operator domain.Address
}

type uc struct {
	repo     balance.Repo
	ledger   ledger.UseCase
	operator domain.Address
}

func New(cfg *Cfg) balance.UseCase {
	return &uc{
		repo:     cfg.Repo,
		ledger:   cfg.Ledger,
		operator: cfg.Operator.ToLower(),
	}
}

func (u *uc) BalanceOf(c bCtx.Ctx, token, account domain.Address) (*big.Int, error) {
	return u.repo.Get(c, token, account)
}

func (u *uc) Allowance(c bCtx.Ctx, token, owner, spender domain.Address) (*big.Int, error) {
	return u.repo.GetAllowance(c, token, owner, spender)
}

func (u *uc) ListByAccount(c bCtx.Ctx, account domain.Address) ([]*balance.Balance, error) {
	return u.repo.ListByAccount(c, account)
}

func (u *uc) Transfer(c bCtx.Ctx, tx *ledger.Tx, token, from, to domain.Address, amount *big.Int) error {
	if amount == nil || amount.Sign() < 0 {
		return domain.ErrInvalidAmount
	}
	if to.IsZero() {
		return domain.ErrInvalidRecipient
	}

	fromBal, err := u.repo.Get(c, token, from)
	if err != nil {
		return err
	}
	left, err := balance.Debit(fromBal, amount)
	if err != nil {
		return err
	}
	if err := u.repo.Set(c, token, from, left, tx.BlockTime); err != nil {
		return err
	}
	// read after the debit so a self transfer nets to zero
	toBal, err := u.repo.Get(c, token, to)
	if err != nil {
		return err
	}
	if err := u.repo.Set(c, token, to, new(big.Int).Add(toBal, amount), tx.BlockTime); err != nil {
		return err
	}

	if token.Equals(domain.NativeToken) {
		return nil
	}
	return tx.Emit(bAbi.PackERC20TransferLog(token.ToCommon(), &bAbi.ERC20TransferLog{
		From:  from.ToCommon(),
		To:    to.ToCommon(),
		Value: amount,
	}))
}

func (u *uc) TransferFrom(c bCtx.Ctx, tx *ledger.Tx, token, spender, from, to domain.Address, amount *big.Int) error {
	if !spender.Equals(from) {
		allowance, err := u.repo.GetAllowance(c, token, from, spender)
		if err != nil {
			return err
		}
		left, err := balance.Debit(allowance, amount)
		if errors.Is(err, domain.ErrInsufficientBalance) {
			c.WithFields(log.Fields{"token": token, "from": from, "spender": spender, "allowance": allowance}).Info("allowance exceeded")
			return domain.ErrTransferFailed
		} else if err != nil {
			return err
		}
		if err := u.repo.SetAllowance(c, token, from, spender, left, tx.BlockTime); err != nil {
			return err
		}
	}

	err := u.Transfer(c, tx, token, from, to, amount)
	if errors.Is(err, domain.ErrInsufficientBalance) {
		return domain.ErrTransferFailed
	}
	return err
}

func (u *uc) Approve(c bCtx.Ctx, tx *ledger.Tx, token, owner, spender domain.Address, amount *big.Int) error {
	if token.Equals(domain.NativeToken) {
		return domain.ErrBadParamInput
	}
	if spender.IsZero() {
		return domain.ErrInvalidRecipient
	}
	if amount == nil || amount.Sign() < 0 {
		return domain.ErrInvalidAmount
	}
	if err := u.repo.SetAllowance(c, token, owner, spender, amount, tx.BlockTime); err != nil {
		return err
	}
	return tx.Emit(bAbi.PackERC20ApprovalLog(token.ToCommon(), &bAbi.ERC20ApprovalLog{
		Owner:   owner.ToCommon(),
		Spender: spender.ToCommon(),
		Value:   amount,
	}))
}

func (u *uc) Mint(c bCtx.Ctx, tx *ledger.Tx, token, to domain.Address, amount *big.Int) error {
	if to.IsZero() {
		return domain.ErrInvalidRecipient
	}
	if amount == nil || amount.Sign() <= 0 {
		return domain.ErrInvalidAmount
	}
	bal, err := u.repo.Get(c, token, to)
	if err != nil {
		return err
	}
	if err := u.repo.Set(c, token, to, new(big.Int).Add(bal, amount), tx.BlockTime); err != nil {
		return err
	}
	if token.Equals(domain.NativeToken) {
		return nil
	}
	return tx.Emit(bAbi.PackERC20TransferLog(token.ToCommon(), &bAbi.ERC20TransferLog{
		From:  domain.EmptyAddress.ToCommon(),
		To:    to.ToCommon(),
		Value: amount,
	}))
}

func (u *uc) SendTransfer(c bCtx.Ctx, caller, token, to domain.Address, amount *big.Int) (*ledger.Receipt, error) {
	call := ledger.Call{
		From:   caller,
		To:     token,
		Method: bAbi.MethodSig(bAbi.ERC20ABI, "transfer"),
		Locks:  []string{balance.LockKey(token, caller), balance.LockKey(token, to)},
	}
	return u.ledger.Execute(c, call, func(c bCtx.Ctx, tx *ledger.Tx) error {
		return u.Transfer(c, tx, token, caller, to, amount)
	})
}

func (u *uc) SendApprove(c bCtx.Ctx, caller, token, spender domain.Address, amount *big.Int) (*ledger.Receipt, error) {
	call := ledger.Call{
		From:   caller,
		To:     token,
		Method: bAbi.MethodSig(bAbi.ERC20ABI, "approve"),
		Locks:  []string{"allowance:" + token.ToLowerStr() + ":" + caller.ToLowerStr()},
	}
	return u.ledger.Execute(c, call, func(c bCtx.Ctx, tx *ledger.Tx) error {
		return u.Approve(c, tx, token, caller, spender, amount)
	})
}

func (u *uc) Faucet(c bCtx.Ctx, to domain.Address, amount *big.Int) (*ledger.Receipt, error) {
	call := ledger.Call{
		From:   u.operator,
		To:     domain.NativeToken,
		Method: "faucet(address,uint256)",
		Locks:  []string{balance.LockKey(domain.NativeToken, to)},
	}
	return u.ledger.Execute(c, call, func(c bCtx.Ctx, tx *ledger.Tx) error {
		return u.Mint(c, tx, domain.NativeToken, to, amount)
	})
}
