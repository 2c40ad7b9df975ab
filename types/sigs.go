package types

// FunctionSelector is the 4-byte selector identifying a contract function.
type FunctionSelector [4]byte

// EventSelector is the 32-byte topic hash identifying an event.
type EventSelector [32]byte

type SignatureLookupStatus uint8

var (
	SigStatusPending SignatureLookupStatus = 0
	SigStatusFound   SignatureLookupStatus = 1
	SigStatusUnknown SignatureLookupStatus = 2
)
