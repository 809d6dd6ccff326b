// Package ledgertest provides an in-memory ledger for usecase tests
package ledgertest

import (
	"sync"
	"time"

	"github.com/samber/lo"

	"github.com/x-xyz/launchpad/base/ctx"
	"github.com/x-xyz/launchpad/base/ethereum"
	"github.com/x-xyz/launchpad/domain"
	"github.com/x-xyz/launchpad/domain/ledger"
)

// Snapshotter is implemented by in-memory repos, the returned func restores the state
type Snapshotter interface {
	Snapshot() (restore func())
}

// Executor runs transactions one at a time and rolls tracked repos back when fn fails
type Executor struct {
	mu       sync.Mutex
	block    domain.BlockNumber
	nonces   map[domain.Address]uint64
	receipts []*ledger.Receipt
	stores   []Snapshotter

	Now func() time.Time
}

func NewExecutor(stores ...Snapshotter) *Executor {
	return &Executor{
		nonces: map[domain.Address]uint64{},
		stores: stores,
		Now:    time.Now,
	}
}

// Track registers more repos to roll back on failure
func (e *Executor) Track(stores ...Snapshotter) {
	e.stores = append(e.stores, stores...)
}

func (e *Executor) Execute(c ctx.Ctx, call ledger.Call, fn ledger.TxFunc) (*ledger.Receipt, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	restores := make([]func(), 0, len(e.stores))
	for _, s := range e.stores {
		restores = append(restores, s.Snapshot())
	}
	nonces := make(map[domain.Address]uint64, len(e.nonces))
	for k, v := range e.nonces {
		nonces[k] = v
	}

	block := e.block + 1
	from := call.From.ToLower()
	nonce := e.nonces[from]
	e.nonces[from] = nonce + 1
	blockTime := e.Now().UTC().Truncate(time.Second)
	hash := ethereum.TxHash(call.From.ToCommon(), nonce, call.To.ToCommon(), call.Method, uint64(block))

	tx := ledger.NewTx(domain.TxHash(hash.Hex()).ToLower(), block, blockTime, call, func(_ ctx.Ctx, a domain.Address) (uint64, error) {
		n := e.nonces[a.ToLower()]
		e.nonces[a.ToLower()] = n + 1
		return n, nil
	})
	if err := fn(c, tx); err != nil {
		for _, restore := range restores {
			restore()
		}
		e.nonces = nonces
		return nil, err
	}

	logs := make([]*ledger.EventLog, 0, len(tx.Logs()))
	for _, l := range tx.Logs() {
		logs = append(logs, ledger.NewEventLog(l, blockTime))
	}
	r := &ledger.Receipt{
		TxHash:          tx.Hash,
		BlockNumber:     block,
		BlockTime:       blockTime,
		From:            tx.From,
		To:              tx.To,
		Method:          call.Method,
		Value:           call.Value,
		Nonce:           nonce,
		Status:          ledger.StatusSuccess,
		ContractAddress: tx.ContractAddress(),
		Logs:            logs,
	}
	e.block = block
	e.receipts = append(e.receipts, r)
	return r, nil
}

func (e *Executor) GetReceipt(c ctx.Ctx, hash domain.TxHash) (*ledger.Receipt, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, r := range e.receipts {
		if r.TxHash == hash.ToLower() {
			return r, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (e *Executor) LatestBlock(c ctx.Ctx) (domain.BlockNumber, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.block, nil
}

func (e *Executor) FindLogs(c ctx.Ctx, filter ledger.LogFilter) ([]*ledger.EventLog, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	res := []*ledger.EventLog{}
	for _, r := range e.receipts {
		if filter.FromBlock != nil && r.BlockNumber < *filter.FromBlock {
			continue
		}
		if filter.ToBlock != nil && r.BlockNumber > *filter.ToBlock {
			continue
		}
		if filter.TxHash != nil && r.TxHash != filter.TxHash.ToLower() {
			continue
		}
		for _, l := range r.Logs {
			if len(filter.Events) > 0 && !lo.Contains(filter.Events, l.Event) {
				continue
			}
			if len(filter.Addresses) > 0 && !lo.ContainsBy(filter.Addresses, l.Address.Equals) {
				continue
			}
			res = append(res, l)
		}
	}
	if filter.Offset >= len(res) {
		return []*ledger.EventLog{}, nil
	}
	res = res[filter.Offset:]
	if filter.Limit > 0 && filter.Limit < len(res) {
		res = res[:filter.Limit]
	}
	return res, nil
}

func (e *Executor) Nonce(c ctx.Ctx, address domain.Address) (uint64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.nonces[address.ToLower()], nil
}

// Receipts returns every successful transaction so far
func (e *Executor) Receipts() []*ledger.Receipt {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]*ledger.Receipt{}, e.receipts...)
}
