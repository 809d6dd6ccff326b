package tracker

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/xerrors"

	bCtx "github.com/x-xyz/launchpad/base/ctx"
	"github.com/x-xyz/launchpad/base/goroutine"
	"github.com/x-xyz/launchpad/base/log"
	"github.com/x-xyz/launchpad/base/metrics"
	"github.com/x-xyz/launchpad/domain"
	"github.com/x-xyz/launchpad/domain/ledger"
)

var metOnce sync.Once
var met metrics.Service

// LogSource is the read side of the ledger
type LogSource interface {
	LatestBlock(bCtx.Ctx) (domain.BlockNumber, error)
	FindLogs(bCtx.Ctx, ledger.LogFilter) ([]*ledger.EventLog, error)
}

// Transactor runs the handler and the tracker state update atomically
type Transactor interface {
	RunWithTransaction(bCtx.Ctx, func(bCtx.Ctx) error) error
}

type EventHandler interface {
	// Events lists the event names the handler consumes, empty means all
	Events() []string
	ProcessEvents(bCtx.Ctx, []*ledger.EventLog) error
}

const (
	Version                = 1
	DefaultInterval        = 5 * time.Second
	DefaultBatchSize       = 5
	DefaultMaxLogsPerQuery = 1000
)

type EventTrackerCfg struct {
	ChainId             int64
	Interval            time.Duration
	Ledger              LogSource
	Transactor          Transactor
	TrackerStateUseCase domain.TrackerStateUseCase

	// empty means events of every address
	ContractAddress domain.Address

	EventHandl      EventHandler
	ErrorCh         chan<- error
	TrackerTag      string
	BatchSize       int
	MaxLogsPerQuery int

	// FromLatest starts a new tracker after the current head instead of block 1
	FromLatest bool
}

type EventTracker struct {
	chainId             int64
	interval            time.Duration
	ledger              LogSource
	transactor          Transactor
	trackerStateUseCase domain.TrackerStateUseCase
	contractAddress     domain.Address
	eventHandler        EventHandler
	errorCh             chan<- error
	trackerTag          string
	batchSize           int
	maxLogsPerQuery     int
	fromLatest          bool
	filter              ledger.LogFilter
	trackerState        *domain.TrackerState
	stoppedCh           chan interface{}
}

func NewEventTracker(cfg *EventTrackerCfg) (*EventTracker, error) {
	metOnce.Do(func() {
		met = metrics.New("tracker")
	})
	if cfg.EventHandl == nil || cfg.Ledger == nil || cfg.TrackerStateUseCase == nil || cfg.Transactor == nil {
		return nil, errors.New("config error: ledger, transactor, tracker state and handler are required")
	}

	filter := ledger.LogFilter{Events: cfg.EventHandl.Events()}
	if !cfg.ContractAddress.IsEmpty() {
		filter.Addresses = []domain.Address{cfg.ContractAddress.ToLower()}
	}

	f := &EventTracker{
		chainId:             cfg.ChainId,
		interval:            cfg.Interval,
		ledger:              cfg.Ledger,
		transactor:          cfg.Transactor,
		trackerStateUseCase: cfg.TrackerStateUseCase,
		contractAddress:     cfg.ContractAddress.ToLower(),
		eventHandler:        cfg.EventHandl,
		errorCh:             cfg.ErrorCh,
		trackerTag:          cfg.TrackerTag,
		batchSize:           cfg.BatchSize,
		maxLogsPerQuery:     cfg.MaxLogsPerQuery,
		fromLatest:          cfg.FromLatest,
		filter:              filter,
		stoppedCh:           make(chan interface{}),
	}
	if f.interval <= 0 {
		f.interval = DefaultInterval
	}
	if f.batchSize <= 0 {
		f.batchSize = DefaultBatchSize
	}
	if f.maxLogsPerQuery <= 0 {
		f.maxLogsPerQuery = DefaultMaxLogsPerQuery
	}
	if f.trackerTag == "" {
		f.trackerTag = domain.DefaultTag
	}
	return f, nil
}

func (f *EventTracker) Start(ctx bCtx.Ctx) {
	go func() {
		defer close(f.stoppedCh)
		var err error
		if ev, panicked := <-goroutine.RecoverableGo(func() { err = f.loop(ctx) }); panicked {
			err = xerrors.Errorf("tracker %s panicked: %v", f.trackerTag, ev.Panic)
		}
		if err != nil && f.errorCh != nil {
			f.errorCh <- err
		}
	}()
}

func (f *EventTracker) Wait() {
	<-f.stoppedCh
}

func (f *EventTracker) loop(ctx bCtx.Ctx) error {
	state, err := f.setupTrackerState(ctx)
	if err != nil {
		ctx.WithField("err", err).Error("setupTrackerState failed")
		return err
	}
	f.trackerState = state

	ticker := time.NewTicker(f.interval)
	defer ticker.Stop()
	for {
		if err := f.poll(ctx); err != nil {
			ctx.WithFields(log.Fields{
				"err":      err,
				"contract": f.contractAddress,
				"tag":      f.trackerTag,
			}).Error("poll failed")
			return err
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

// poll processes every block from the tracker state up to the current head
func (f *EventTracker) poll(ctx bCtx.Ctx) error {
	current, err := f.ledger.LatestBlock(ctx)
	if err != nil {
		ctx.WithField("err", err).Error("ledger.LatestBlock failed")
		return err
	}
	met.BumpAvg("ledger.lastBlock", float64(current), "chainId", fmt.Sprint(f.chainId))

	start := f.trackerState.NextBlock
	if current < start {
		return nil
	}
	if err := f.processBlkRange(ctx, newBlockRange(start, current)); err != nil {
		ctx.WithField("err", err).Error("f.processBlkRange failed")
		return err
	}
	met.BumpAvg("tracker.lastBlock", float64(f.trackerState.NextBlock), "tag", f.trackerTag)
	return nil
}

func (f *EventTracker) setupTrackerState(ctx bCtx.Ctx) (*domain.TrackerState, error) {
	id := &domain.TrackerStateId{
		ChainId:         domain.ChainId(f.chainId),
		ContractAddress: f.contractAddress,
		Tag:             f.trackerTag,
	}
	state, err := f.trackerStateUseCase.Get(ctx, id)
	if err == nil {
		if state.Version != Version {
			return nil, fmt.Errorf("cannot migrate tracker state from %d to %d", state.Version, Version)
		}
		return state, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	first := domain.BlockNumber(1)
	if f.fromLatest {
		current, err := f.ledger.LatestBlock(ctx)
		if err != nil {
			return nil, err
		}
		first = current + 1
	}
	state = &domain.TrackerState{
		ChainId:         id.ChainId,
		ContractAddress: id.ContractAddress,
		Tag:             id.Tag,
		Version:         Version,
		NextBlock:       first,
		LastLogIndex:    -1,
	}
	if err := f.trackerStateUseCase.Store(ctx, state); err != nil {
		ctx.WithFields(log.Fields{
			"contract": f.contractAddress,
			"tag":      f.trackerTag,
			"err":      err,
		}).Error("failed to store tracker state")
		return nil, err
	}
	ctx.WithFields(log.Fields{
		"contract":   f.contractAddress,
		"tag":        f.trackerTag,
		"firstBlock": first,
	}).Info("tracker state created")
	return state, nil
}

func (f *EventTracker) processBlkRange(ctx bCtx.Ctx, blkRange *blockRange) error {
	ranges := []*blockRange{blkRange}
	for len(ranges) > 0 {
		idx := len(ranges) - 1
		r := ranges[idx]
		ranges = ranges[:idx]

		filter := f.filter
		filter.FromBlock = &r.begin
		filter.ToBlock = &r.end
		if !r.single() {
			filter.Limit = f.maxLogsPerQuery + 1
		}
		logs, err := f.ledger.FindLogs(ctx, filter)
		if err != nil {
			ctx.WithFields(log.Fields{
				"err":   err,
				"range": r.String(),
			}).Error("ledger.FindLogs failed")
			return err
		}
		if len(logs) > f.maxLogsPerQuery && !r.single() {
			r1, r2 := r.split()
			ranges = append(ranges, r2, r1)
			ctx.WithFields(log.Fields{
				"tag":           f.trackerTag,
				"originalRange": r.String(),
				"range1":        r1.String(),
				"range2":        r2.String(),
			}).Info("splitting blockRange")
			continue
		}

		// skip processed logs
		nonProcessedIndex := 0
		for _, l := range logs {
			if l.BlockNumber > f.trackerState.NextBlock {
				break
			}
			if l.BlockNumber == f.trackerState.NextBlock && int64(l.LogIndex) > f.trackerState.LastLogIndex {
				break
			}
			nonProcessedIndex++
		}
		logs = logs[nonProcessedIndex:]

		for i := 0; i < len(logs); i += f.batchSize {
			j := i + f.batchSize
			if j > len(logs) {
				j = len(logs)
			}
			batch := logs[i:j]
			last := batch[len(batch)-1]
			if err := f.processEvents(ctx, batch, last.BlockNumber, int64(last.LogIndex)); err != nil {
				ctx.WithField("err", err).Error("f.processEvents failed")
				return err
			}
		}

		// the whole range is done
		if err := f.processEvents(ctx, nil, r.end+1, -1); err != nil {
			ctx.WithField("err", err).Error("f.processEvents failed")
			return err
		}
	}
	return nil
}

func (f *EventTracker) processEvents(ctx bCtx.Ctx, logs []*ledger.EventLog, end domain.BlockNumber, logIndex int64) error {
	run := func(c bCtx.Ctx) error {
		if len(logs) > 0 {
			if err := f.eventHandler.ProcessEvents(c, logs); err != nil {
				return xerrors.Errorf("failed to process events: %w", err)
			}
		}
		state := *f.trackerState
		state.NextBlock = end
		state.LastLogIndex = logIndex
		if err := f.trackerStateUseCase.Update(c, &state); err != nil {
			return xerrors.Errorf("failed to store tracker state: %w", err)
		}
		return nil
	}

	if err := f.transactor.RunWithTransaction(ctx, run); err != nil {
		return err
	}
	f.trackerState.NextBlock = end
	f.trackerState.LastLogIndex = logIndex
	return nil
}
