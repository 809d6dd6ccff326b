package repository

import (
	"fmt"

	"github.com/samber/lo"
	"go.mongodb.org/mongo-driver/bson"

	bCtx "github.com/x-xyz/launchpad/base/ctx"
	"github.com/x-xyz/launchpad/base/log"
	"github.com/x-xyz/launchpad/domain"
	"github.com/x-xyz/launchpad/domain/ledger"
	"github.com/x-xyz/launchpad/service/query"
)

const blockCounter = "block"

type counter struct {
	Id    string `bson:"_id"`
	Value int64  `bson:"value"`
}

func nonceKey(address domain.Address) string {
	return fmt.Sprintf("nonce:%s", address.ToLowerStr())
}

type repo struct {
	q query.Mongo
}

func New(q query.Mongo) ledger.Repo {
	return &repo{q}
}

func (r *repo) EnsureIndexes(ctx bCtx.Ctx) error {
	if err := r.q.EnsureIndexes(ctx, domain.TableReceipts, []query.Index{
		{Keys: bson.D{{Key: "txHash", Value: 1}}, Unique: true},
		{Keys: bson.D{{Key: "blockNumber", Value: 1}}, Unique: true},
	}); err != nil {
		return err
	}
	return r.q.EnsureIndexes(ctx, domain.TableEventLogs, []query.Index{
		{Keys: bson.D{{Key: "blockNumber", Value: 1}, {Key: "logIndex", Value: 1}}, Unique: true},
		{Keys: bson.D{{Key: "address", Value: 1}, {Key: "event", Value: 1}}},
		{Keys: bson.D{{Key: "txHash", Value: 1}}},
	})
}

func (r *repo) NextBlock(ctx bCtx.Ctx) (domain.BlockNumber, error) {
	c := counter{}
	if err := r.q.Increment(ctx, domain.TableCounters, bson.M{"_id": blockCounter}, &c, "value", 1); err != nil {
		ctx.WithField("err", err).Error("q.Increment failed")
		return 0, err
	}
	return domain.BlockNumber(c.Value), nil
}

func (r *repo) LatestBlock(ctx bCtx.Ctx) (domain.BlockNumber, error) {
	c := counter{}
	if err := r.q.FindOne(ctx, domain.TableCounters, bson.M{"_id": blockCounter}, &c); err == query.ErrNotFound {
		return 0, nil
	} else if err != nil {
		ctx.WithField("err", err).Error("q.FindOne failed")
		return 0, err
	}
	return domain.BlockNumber(c.Value), nil
}

func (r *repo) IncrNonce(ctx bCtx.Ctx, address domain.Address) (uint64, error) {
	c := counter{}
	if err := r.q.Increment(ctx, domain.TableCounters, bson.M{"_id": nonceKey(address)}, &c, "value", 1); err != nil {
		ctx.WithFields(log.Fields{"err": err, "address": address}).Error("q.Increment failed")
		return 0, err
	}
	return uint64(c.Value - 1), nil
}

func (r *repo) Nonce(ctx bCtx.Ctx, address domain.Address) (uint64, error) {
	c := counter{}
	if err := r.q.FindOne(ctx, domain.TableCounters, bson.M{"_id": nonceKey(address)}, &c); err == query.ErrNotFound {
		return 0, nil
	} else if err != nil {
		ctx.WithFields(log.Fields{"err": err, "address": address}).Error("q.FindOne failed")
		return 0, err
	}
	return uint64(c.Value), nil
}

func (r *repo) InsertReceipt(ctx bCtx.Ctx, receipt *ledger.Receipt) error {
	if err := r.q.Insert(ctx, domain.TableReceipts, receipt); err != nil {
		ctx.WithFields(log.Fields{"err": err, "txHash": receipt.TxHash}).Error("q.Insert failed")
		return err
	}
	return nil
}

func (r *repo) InsertLogs(ctx bCtx.Ctx, logs []*ledger.EventLog) error {
	for _, l := range logs {
		if err := r.q.Insert(ctx, domain.TableEventLogs, l); err != nil {
			ctx.WithFields(log.Fields{"err": err, "txHash": l.TxHash, "logIndex": l.LogIndex}).Error("q.Insert failed")
			return err
		}
	}
	return nil
}

func (r *repo) FindReceipt(ctx bCtx.Ctx, hash domain.TxHash) (*ledger.Receipt, error) {
	receipt := &ledger.Receipt{}
	if err := r.q.FindOne(ctx, domain.TableReceipts, bson.M{"txHash": hash.ToLower()}, receipt); err == query.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		ctx.WithFields(log.Fields{"err": err, "txHash": hash}).Error("q.FindOne failed")
		return nil, err
	}

	logs := []*ledger.EventLog{}
	if err := r.q.Search(ctx, domain.TableEventLogs, 0, 0, "logIndex", bson.M{"txHash": receipt.TxHash}, &logs); err != nil {
		ctx.WithFields(log.Fields{"err": err, "txHash": hash}).Error("q.Search failed")
		return nil, err
	}
	receipt.Logs = logs
	return receipt, nil
}

func (r *repo) FindLogs(ctx bCtx.Ctx, filter ledger.LogFilter) ([]*ledger.EventLog, error) {
	qry := bson.M{}
	blockRange := bson.M{}
	if filter.FromBlock != nil {
		blockRange["$gte"] = *filter.FromBlock
	}
	if filter.ToBlock != nil {
		blockRange["$lte"] = *filter.ToBlock
	}
	if len(blockRange) > 0 {
		qry["blockNumber"] = blockRange
	}
	if len(filter.Addresses) > 0 {
		qry["address"] = bson.M{"$in": lo.Map(filter.Addresses, func(a domain.Address, _ int) domain.Address { return a.ToLower() })}
	}
	if len(filter.Events) > 0 {
		qry["event"] = bson.M{"$in": filter.Events}
	}
	if filter.TxHash != nil {
		qry["txHash"] = filter.TxHash.ToLower()
	}

	logs := []*ledger.EventLog{}
	if err := r.q.SearchNSorts(ctx, domain.TableEventLogs, filter.Offset, filter.Limit, []string{"blockNumber", "logIndex"}, qry, &logs); err != nil {
		ctx.WithFields(log.Fields{"err": err, "qry": qry}).Error("q.SearchNSorts failed")
		return nil, err
	}
	return logs, nil
}
