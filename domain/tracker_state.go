package domain

import (
	"time"

	"github.com/x-xyz/launchpad/base/ctx"
)

const DefaultTag = "default"

// TrackerState is the progress of one event log consumer, keyed by chain, contract and tag.
// Logs of NextBlock with an index above LastLogIndex are still pending, -1 means the whole block is.
type TrackerState struct {
	ChainId         ChainId     `json:"chainId" bson:"chainId"`
	ContractAddress Address     `json:"contractAddress" bson:"contractAddress"`
	Tag             string      `json:"tag" bson:"tag"`
	Version         uint64      `json:"version" bson:"version"`
	NextBlock       BlockNumber `json:"nextBlock" bson:"nextBlock"`
	LastLogIndex    int64       `json:"lastLogIndex" bson:"lastLogIndex"`
	UpdatedAt       time.Time   `json:"updatedAt" bson:"updatedAt"`
}

func (s *TrackerState) ToId() *TrackerStateId {
	return &TrackerStateId{ChainId: s.ChainId, ContractAddress: s.ContractAddress, Tag: s.Tag}
}

type TrackerStateId struct {
	ChainId         ChainId
	ContractAddress Address
	Tag             string
}

type TrackerStateRepo interface {
	EnsureIndexes(ctx.Ctx) error
	Get(ctx.Ctx, *TrackerStateId) (*TrackerState, error)
	// Update replaces the state, inserting it when missing
	Update(ctx.Ctx, *TrackerState) error
	// Store fails with ErrConflict when the id exists
	Store(ctx.Ctx, *TrackerState) error
}

type TrackerStateUseCase interface {
	Get(ctx.Ctx, *TrackerStateId) (*TrackerState, error)
	Update(ctx.Ctx, *TrackerState) error
	Store(ctx.Ctx, *TrackerState) error
}
