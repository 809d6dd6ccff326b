package mocks

import (
	mock "github.com/stretchr/testify/mock"

	ctx "github.com/x-xyz/launchpad/base/ctx"
	domain "github.com/x-xyz/launchpad/domain"
	ledger "github.com/x-xyz/launchpad/domain/ledger"
)

// Repo is a mock type for the ledger.Repo type
type Repo struct {
	mock.Mock
}

// EnsureIndexes provides a mock function with given fields: c
func (_m *Repo) EnsureIndexes(c ctx.Ctx) error {
	ret := _m.Called(c)
	return ret.Error(0)
}

// NextBlock provides a mock function with given fields: c
func (_m *Repo) NextBlock(c ctx.Ctx) (domain.BlockNumber, error) {
	ret := _m.Called(c)

	var r0 domain.BlockNumber
	if rf, ok := ret.Get(0).(func(ctx.Ctx) domain.BlockNumber); ok {
		r0 = rf(c)
	} else {
		r0 = ret.Get(0).(domain.BlockNumber)
	}
	return r0, ret.Error(1)
}

// LatestBlock provides a mock function with given fields: c
func (_m *Repo) LatestBlock(c ctx.Ctx) (domain.BlockNumber, error) {
	ret := _m.Called(c)
	return ret.Get(0).(domain.BlockNumber), ret.Error(1)
}

// IncrNonce provides a mock function with given fields: c, address
func (_m *Repo) IncrNonce(c ctx.Ctx, address domain.Address) (uint64, error) {
	ret := _m.Called(c, address)

	var r0 uint64
	if rf, ok := ret.Get(0).(func(ctx.Ctx, domain.Address) uint64); ok {
		r0 = rf(c, address)
	} else {
		r0 = ret.Get(0).(uint64)
	}
	return r0, ret.Error(1)
}

// Nonce provides a mock function with given fields: c, address
func (_m *Repo) Nonce(c ctx.Ctx, address domain.Address) (uint64, error) {
	ret := _m.Called(c, address)
	return ret.Get(0).(uint64), ret.Error(1)
}

// InsertReceipt provides a mock function with given fields: c, receipt
func (_m *Repo) InsertReceipt(c ctx.Ctx, receipt *ledger.Receipt) error {
	ret := _m.Called(c, receipt)
	return ret.Error(0)
}

// InsertLogs provides a mock function with given fields: c, logs
func (_m *Repo) InsertLogs(c ctx.Ctx, logs []*ledger.EventLog) error {
	ret := _m.Called(c, logs)
	return ret.Error(0)
}

// FindReceipt provides a mock function with given fields: c, hash
func (_m *Repo) FindReceipt(c ctx.Ctx, hash domain.TxHash) (*ledger.Receipt, error) {
	ret := _m.Called(c, hash)

	var r0 *ledger.Receipt
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*ledger.Receipt)
	}
	return r0, ret.Error(1)
}

// FindLogs provides a mock function with given fields: c, filter
func (_m *Repo) FindLogs(c ctx.Ctx, filter ledger.LogFilter) ([]*ledger.EventLog, error) {
	ret := _m.Called(c, filter)

	var r0 []*ledger.EventLog
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*ledger.EventLog)
	}
	return r0, ret.Error(1)
}
