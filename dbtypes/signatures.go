package dbtypes

// SelectorKind discriminates function selectors from event topic selectors in
// the shared unknown-signatures table.
type SelectorKind uint8

const (
	SelectorKindFunction SelectorKind = 0
	SelectorKindEvent    SelectorKind = 1
)

type FunctionSignature struct {
	Bytes     []byte `db:"bytes"`
	Signature string `db:"signature"`
	Name      string `db:"name"`
}

type EventSignature struct {
	Bytes     []byte `db:"bytes"`
	Signature string `db:"signature"`
	Name      string `db:"name"`
}

type UnknownSignature struct {
	Bytes     []byte       `db:"bytes"`
	Kind      SelectorKind `db:"kind"`
	LastCheck uint64       `db:"lastcheck"`
}
