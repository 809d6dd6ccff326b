package usecase

import (
	"time"

	"github.com/ethereum/go-ethereum/common"

	bCtx "github.com/x-xyz/launchpad/base/ctx"
	"github.com/x-xyz/launchpad/base/ethereum"
	"github.com/x-xyz/launchpad/base/log"
	"github.com/x-xyz/launchpad/base/metrics"
	"github.com/x-xyz/launchpad/domain"
	"github.com/x-xyz/launchpad/domain/keys"
	"github.com/x-xyz/launchpad/domain/ledger"
	"github.com/x-xyz/launchpad/service/locker"
	"github.com/x-xyz/launchpad/service/query"
)

type Cfg struct {
	Repo    ledger.Repo
	Mongo   query.Mongo
	Locker  locker.Locker
	Metrics metrics.Service
	// Now is the block clock, time.Now when nil
	Now func() time.Time
}

type uc struct {
	repo   ledger.Repo
	q      query.Mongo
	locker locker.Locker
	met    metrics.Service
	now    func() time.Time
}

func New(cfg *Cfg) ledger.UseCase {
	u := &uc{
		repo:   cfg.Repo,
		q:      cfg.Mongo,
		locker: cfg.Locker,
		met:    cfg.Metrics,
		now:    cfg.Now,
	}
	if u.now == nil {
		u.now = time.Now
	}
	return u
}

func (u *uc) Execute(c bCtx.Ctx, call ledger.Call, fn ledger.TxFunc) (*ledger.Receipt, error) {
	if !common.IsHexAddress(string(call.From)) || !common.IsHexAddress(string(call.To)) {
		return nil, domain.ErrInvalidAddress
	}
	c.Logger = c.Logger.WithFields(log.Fields{"from": call.From, "to": call.To, "method": call.Method})
	timer := u.met.BumpTime("tx.time", "method", call.Method)
	defer timer.End()

	if len(call.Locks) > 0 && u.locker != nil {
		lockKeys := make([]string, 0, len(call.Locks))
		for _, k := range call.Locks {
			lockKeys = append(lockKeys, keys.LockKey(k))
		}
		unlock, err := u.locker.Lock(c, lockKeys...)
		if err != nil {
			c.WithField("err", err).Warn("locker.Lock failed")
			return nil, err
		}
		defer unlock()
	}

	var receipt *ledger.Receipt
	err := u.q.RunWithTransaction(c, func(c bCtx.Ctx) error {
		// the closure may be retried, nothing from a previous attempt survives
		receipt = nil

		block, err := u.repo.NextBlock(c)
		if err != nil {
			return err
		}
		nonce, err := u.repo.IncrNonce(c, call.From)
		if err != nil {
			return err
		}
		blockTime := u.now().UTC().Truncate(time.Second)
		hash := ethereum.TxHash(call.From.ToCommon(), nonce, call.To.ToCommon(), call.Method, uint64(block))

		tx := ledger.NewTx(domain.TxHash(hash.Hex()).ToLower(), block, blockTime, call, u.repo.IncrNonce)
		if err := fn(c, tx); err != nil {
			return err
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
		if err := u.repo.InsertReceipt(c, r); err != nil {
			return err
		}
		if err := u.repo.InsertLogs(c, logs); err != nil {
			return err
		}
		receipt = r
		return nil
	})
	if err != nil {
		u.met.BumpSum("tx.reverted", 1, "method", call.Method)
		c.WithField("err", err).Info("tx reverted")
		return nil, err
	}

	u.met.BumpSum("tx.success", 1, "method", call.Method)
	return receipt, nil
}

func (u *uc) GetReceipt(c bCtx.Ctx, hash domain.TxHash) (*ledger.Receipt, error) {
	return u.repo.FindReceipt(c, hash)
}

func (u *uc) LatestBlock(c bCtx.Ctx) (domain.BlockNumber, error) {
	return u.repo.LatestBlock(c)
}

func (u *uc) FindLogs(c bCtx.Ctx, filter ledger.LogFilter) ([]*ledger.EventLog, error) {
	if filter.Limit <= 0 || filter.Limit > 1000 {
		filter.Limit = 1000
	}
	return u.repo.FindLogs(c, filter)
}

func (u *uc) Nonce(c bCtx.Ctx, address domain.Address) (uint64, error) {
	return u.repo.Nonce(c, address)
}
