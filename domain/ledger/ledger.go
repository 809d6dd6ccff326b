package ledger

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/x-xyz/launchpad/base/abi"
	"github.com/x-xyz/launchpad/base/ctx"
	"github.com/x-xyz/launchpad/base/ethereum"
	"github.com/x-xyz/launchpad/domain"
)

type Status string

const (
	StatusSuccess Status = "success"
)

// Call describes who invokes which contract method
type Call struct {
	From   domain.Address
	To     domain.Address
	Method string
	// Value is the native coin attached to the call, in wei
	Value domain.Amount
	// Locks are the state keys the call writes, they are held for the whole transaction
	Locks []string
}

type Receipt struct {
	TxHash          domain.TxHash      `json:"transactionHash" bson:"txHash"`
	BlockNumber     domain.BlockNumber `json:"blockNumber" bson:"blockNumber"`
	BlockTime       time.Time          `json:"blockTime" bson:"blockTime"`
	From            domain.Address     `json:"from" bson:"from"`
	To              domain.Address     `json:"to" bson:"to"`
	Method          string             `json:"method" bson:"method"`
	Value           domain.Amount      `json:"value" bson:"value"`
	Nonce           uint64             `json:"nonce" bson:"nonce"`
	Status          Status             `json:"status" bson:"status"`
	ContractAddress *domain.Address    `json:"contractAddress,omitempty" bson:"contractAddress,omitempty"`
	Logs            []*EventLog        `json:"logs" bson:"-"`
}

// FindLog returns the first log carrying event name
func (r *Receipt) FindLog(event string) *EventLog {
	for _, l := range r.Logs {
		if l.Event == event {
			return l
		}
	}
	return nil
}

type EventLog struct {
	Address     domain.Address     `json:"address" bson:"address"`
	Topics      []string           `json:"topics" bson:"topics"`
	Data        string             `json:"data" bson:"data"`
	Event       string             `json:"event" bson:"event"`
	BlockNumber domain.BlockNumber `json:"blockNumber" bson:"blockNumber"`
	BlockTime   time.Time          `json:"blockTime" bson:"blockTime"`
	TxHash      domain.TxHash      `json:"transactionHash" bson:"txHash"`
	LogIndex    uint               `json:"logIndex" bson:"logIndex"`
}

func (l *EventLog) ToLog() (*types.Log, error) {
	topics := make([]common.Hash, 0, len(l.Topics))
	for _, t := range l.Topics {
		topics = append(topics, common.HexToHash(t))
	}
	data, err := hexutil.Decode(l.Data)
	if err != nil {
		return nil, err
	}
	return &types.Log{
		Address:     l.Address.ToCommon(),
		Topics:      topics,
		Data:        data,
		BlockNumber: uint64(l.BlockNumber),
		TxHash:      common.HexToHash(string(l.TxHash)),
		Index:       l.LogIndex,
	}, nil
}

type LogFilter struct {
	FromBlock *domain.BlockNumber
	ToBlock   *domain.BlockNumber
	Addresses []domain.Address
	Events    []string
	TxHash    *domain.TxHash
	Offset    int
	Limit     int
}

// Tx is the execution context of one ledger transaction
type Tx struct {
	Hash        domain.TxHash
	BlockNumber domain.BlockNumber
	BlockTime   time.Time
	From        domain.Address
	To          domain.Address
	Value       domain.Amount

	contractAddress *domain.Address
	logs            []*types.Log
	nonceOf         func(ctx.Ctx, domain.Address) (uint64, error)
}

func NewTx(hash domain.TxHash, block domain.BlockNumber, blockTime time.Time, call Call, nonceOf func(ctx.Ctx, domain.Address) (uint64, error)) *Tx {
	return &Tx{
		Hash:        hash,
		BlockNumber: block,
		BlockTime:   blockTime,
		From:        call.From.ToLower(),
		To:          call.To.ToLower(),
		Value:       call.Value,
		nonceOf:     nonceOf,
	}
}

// Emit appends an event log. It takes the output of the abi Pack* helpers as is.
func (tx *Tx) Emit(log *types.Log, err error) error {
	if err != nil {
		return err
	}
	log.BlockNumber = uint64(tx.BlockNumber)
	log.TxHash = common.HexToHash(string(tx.Hash))
	log.Index = uint(len(tx.logs))
	tx.logs = append(tx.logs, log)
	return nil
}

func (tx *Tx) Logs() []*types.Log {
	return tx.logs
}

func (tx *Tx) SetContractAddress(address domain.Address) {
	a := address.ToLower()
	tx.contractAddress = &a
}

func (tx *Tx) ContractAddress() *domain.Address {
	return tx.contractAddress
}

// DeployAddress consumes the next nonce of deployer and returns the CREATE address for it
func (tx *Tx) DeployAddress(c ctx.Ctx, deployer domain.Address) (domain.Address, error) {
	nonce, err := tx.nonceOf(c, deployer)
	if err != nil {
		return "", err
	}
	return domain.AddressFromCommon(ethereum.ContractAddress(deployer.ToCommon(), nonce)), nil
}

// NewEventLog converts an emitted log to its stored form
func NewEventLog(log *types.Log, blockTime time.Time) *EventLog {
	topics := make([]string, 0, len(log.Topics))
	for _, t := range log.Topics {
		topics = append(topics, t.Hex())
	}
	return &EventLog{
		Address:     domain.AddressFromCommon(log.Address),
		Topics:      topics,
		Data:        hexutil.Encode(log.Data),
		Event:       abi.EventName(log),
		BlockNumber: domain.BlockNumber(log.BlockNumber),
		BlockTime:   blockTime,
		TxHash:      domain.TxHash(log.TxHash.Hex()).ToLower(),
		LogIndex:    log.Index,
	}
}

type TxFunc func(ctx.Ctx, *Tx) error

type Repo interface {
	EnsureIndexes(c ctx.Ctx) error
	// NextBlock increments the block counter and returns the new height
	NextBlock(c ctx.Ctx) (domain.BlockNumber, error)
	LatestBlock(c ctx.Ctx) (domain.BlockNumber, error)
	// IncrNonce returns the current nonce of address and advances it
	IncrNonce(c ctx.Ctx, address domain.Address) (uint64, error)
	Nonce(c ctx.Ctx, address domain.Address) (uint64, error)
	InsertReceipt(c ctx.Ctx, receipt *Receipt) error
	InsertLogs(c ctx.Ctx, logs []*EventLog) error
	FindReceipt(c ctx.Ctx, hash domain.TxHash) (*Receipt, error)
	FindLogs(c ctx.Ctx, filter LogFilter) ([]*EventLog, error)
}

type UseCase interface {
	// Execute runs fn as one atomic ledger transaction, an error from fn leaves no trace
	Execute(c ctx.Ctx, call Call, fn TxFunc) (*Receipt, error)
	GetReceipt(c ctx.Ctx, hash domain.TxHash) (*Receipt, error)
	LatestBlock(c ctx.Ctx) (domain.BlockNumber, error)
	FindLogs(c ctx.Ctx, filter LogFilter) ([]*EventLog, error)
	Nonce(c ctx.Ctx, address domain.Address) (uint64, error)
}
