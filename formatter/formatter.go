// Package formatter renders VM execution traces (call trees, events, storage
// logs and execution summaries) into human readable text for local debugging.
package formatter

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/sirupsen/logrus"

	"github.com/ethpandaops/zvmtrace/types"
)

// AddressLabeler is the directory capability the renderers need: contract
// classification and display labels for call targets and event emitters.
type AddressLabeler interface {
	Classify(address common.Address) types.ContractType
	DisplayName(address common.Address) string
	IsKnown(address common.Address) bool
}

// SelectorResolver is the narrow resolution capability used by the renderers.
// Implementations may block on network I/O; they report a not-found result
// instead of failing.
type SelectorResolver interface {
	ResolveFunctionSelector(selector types.FunctionSelector) (string, bool)
	ResolveEventSelector(selector types.EventSelector) (string, bool)
}

// LineWriter is the line oriented output sink the renderers emit to.
type LineWriter interface {
	WriteLine(line string)
}

// Formatter renders execution traces through a LineWriter. The directory and
// resolver are shared read-only state; a Formatter itself keeps no mutable
// state, so independent traces may be rendered concurrently with separate
// writers.
type Formatter struct {
	directory AddressLabeler
	resolver  SelectorResolver
	out       LineWriter
}

func NewFormatter(directory AddressLabeler, resolver SelectorResolver, out LineWriter) *Formatter {
	return &Formatter{
		directory: directory,
		resolver:  resolver,
		out:       out,
	}
}

// TraceOptions controls which parts of a transaction trace are rendered.
type TraceOptions struct {
	ShowCalls       types.DisplayMode
	ResolveHashes   bool
	ShowStorageLogs bool
	ShowVMDetails   bool
	ShowEvents      bool
}

// PrintTransaction renders a full transaction trace dump according to the
// given options.
func (f *Formatter) PrintTransaction(trace *types.TransactionTrace, options *TraceOptions) {
	if trace.Call != nil && options.ShowCalls != types.DisplayNone {
		f.PrintCall(trace.Call, 0, options.ShowCalls, options.ResolveHashes)
	}
	if options.ShowEvents {
		for _, event := range trace.Events {
			f.PrintEvent(event, options.ResolveHashes)
		}
	}
	if options.ShowStorageLogs {
		for _, entry := range trace.StorageLogs {
			f.PrintStorageLog(entry)
		}
	}
	if options.ShowVMDetails && trace.Summary != nil {
		f.PrintExecutionSummary(trace.Summary)
	}
}

// LogWriter adapts a logrus logger into a LineWriter.
type LogWriter struct {
	logger logrus.FieldLogger
}

func NewLogWriter(logger logrus.FieldLogger) *LogWriter {
	return &LogWriter{logger: logger}
}

func (lw *LogWriter) WriteLine(line string) {
	lw.logger.Info(line)
}

// BufferWriter collects rendered lines, used by tests and the CLI.
type BufferWriter struct {
	Lines []string
}

func (bw *BufferWriter) WriteLine(line string) {
	bw.Lines = append(bw.Lines, line)
}
