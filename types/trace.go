package types

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/holiman/uint256"
)

// ContractType classifies a known contract address.
type ContractType string

const (
	ContractTypeSystem     ContractType = "system"
	ContractTypePrecompile ContractType = "precompile"
	ContractTypePopular    ContractType = "popular"
	ContractTypeUnknown    ContractType = "unknown"
)

// KnownAddress is one entry of the embedded address dataset.
type KnownAddress struct {
	Address      common.Address `json:"address"`
	Name         string         `json:"name"`
	ContractType ContractType   `json:"contractType"`
}

// CallType is the kind of call frame the VM produced.
type CallType string

const (
	CallTypeCall         CallType = "Call"
	CallTypeDelegateCall CallType = "DelegateCall"
	CallTypeStaticCall   CallType = "StaticCall"
	CallTypeCreate       CallType = "Create"
)

// CallTrace is a single frame of the per-transaction call tree. Calls holds
// the subcalls in original call order; the tree is acyclic by construction
// from the VM call stack.
type CallTrace struct {
	Type         CallType       `json:"type"`
	To           common.Address `json:"to"`
	Input        hexutil.Bytes  `json:"input"`
	GasUsed      uint64         `json:"gasUsed"`
	RevertReason *string        `json:"revertReason,omitempty"`
	Error        *string        `json:"error,omitempty"`
	Calls        []*CallTrace   `json:"calls,omitempty"`
}

// EventRecord is an event emitted during execution.
type EventRecord struct {
	Address       common.Address `json:"address"`
	IndexedTopics []common.Hash  `json:"indexedTopics"`
}

// StorageLogKind is the kind of storage access a log entry describes.
type StorageLogKind string

const (
	StorageLogRead          StorageLogKind = "Read"
	StorageLogInitialWrite  StorageLogKind = "InitialWrite"
	StorageLogRepeatedWrite StorageLogKind = "RepeatedWrite"
)

// StorageLogEntry is one entry of the VM storage access log. WrittenValue is
// only meaningful when Kind is not StorageLogRead.
type StorageLogEntry struct {
	Kind         StorageLogKind `json:"kind"`
	Address      common.Address `json:"address"`
	Key          *uint256.Int   `json:"key"`
	ReadValue    *uint256.Int   `json:"readValue"`
	WrittenValue *uint256.Int   `json:"writtenValue,omitempty"`
}

// ExecutionSummary is the partial execution result the VM reports per batch.
type ExecutionSummary struct {
	CyclesUsed           uint64  `json:"cyclesUsed"`
	ComputationalGasUsed uint64  `json:"computationalGasUsed"`
	ContractsUsed        int     `json:"contractsUsed"`
	RevertReason         *string `json:"revertReason,omitempty"`
}

// DisplayMode controls which call frames the trace renderer prints.
type DisplayMode int

const (
	DisplayAll DisplayMode = iota
	DisplayNone
	DisplayUser
	DisplaySystem
)

func (m DisplayMode) String() string {
	switch m {
	case DisplayAll:
		return "all"
	case DisplayNone:
		return "none"
	case DisplayUser:
		return "user"
	case DisplaySystem:
		return "system"
	default:
		return fmt.Sprintf("DisplayMode(%d)", int(m))
	}
}

// ParseDisplayMode parses a display mode from its config/CLI representation.
func ParseDisplayMode(value string) (DisplayMode, error) {
	switch value {
	case "all":
		return DisplayAll, nil
	case "none":
		return DisplayNone, nil
	case "user":
		return DisplayUser, nil
	case "system":
		return DisplaySystem, nil
	default:
		return DisplayAll, fmt.Errorf("unknown display mode: %v", value)
	}
}

// ExecutionIntent is the purpose a transaction is simulated under. It selects
// which system contract bundle the executor uses.
type ExecutionIntent int

const (
	IntentVerifyExecute ExecutionIntent = iota
	IntentEstimateFee
	IntentEthCall
)

func (i ExecutionIntent) String() string {
	switch i {
	case IntentVerifyExecute:
		return "VerifyExecute"
	case IntentEstimateFee:
		return "EstimateFee"
	case IntentEthCall:
		return "EthCall"
	default:
		return fmt.Sprintf("ExecutionIntent(%d)", int(i))
	}
}

// TransactionTrace is the full dump of one executed transaction, as produced
// by the VM and consumed by the renderers (and the trace CLI command).
type TransactionTrace struct {
	Call        *CallTrace         `json:"call"`
	Events      []*EventRecord     `json:"events,omitempty"`
	StorageLogs []*StorageLogEntry `json:"storageLogs,omitempty"`
	Summary     *ExecutionSummary  `json:"summary,omitempty"`
}
