package formatter

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/ethpandaops/zvmtrace/types"
)

var (
	failureColor    = color.New(color.BgRed)
	rawAddressColor = color.New(color.Bold)
)

var renderedCallsMetric = promauto.NewCounter(prometheus.CounterOpts{
	Name: "zvmtrace_rendered_calls_total",
	Help: "Total number of call frames rendered.",
})

// shouldPrintCall is the visibility policy: contract classification crossed
// with the display mode. Visibility is evaluated per frame and never
// inherited from the parent.
func shouldPrintCall(contractType types.ContractType, mode types.DisplayMode) bool {
	switch mode {
	case types.DisplayAll:
		return true
	case types.DisplayNone:
		return false
	}

	// now we're left only with 'user' and 'system'
	switch contractType {
	case types.ContractTypeUnknown, types.ContractTypePopular:
		return true
	case types.ContractTypePrecompile:
		return false
	}

	// now we're left with system contracts
	return mode == types.DisplaySystem
}

// PrintCall pretty-prints the contents of a call frame including all
// subcalls. If resolveHashes is set, function selectors are resolved to
// names via the resolver, falling back to raw hex.
func (f *Formatter) PrintCall(call *types.CallTrace, padding int, mode types.DisplayMode, resolveHashes bool) {
	contractType := f.directory.Classify(call.To)

	if shouldPrintCall(contractType, mode) {
		var functionSignature string
		if len(call.Input) >= 4 {
			sig := hex.EncodeToString(call.Input[:4])

			if contractType == types.ContractTypePrecompile || !resolveHashes {
				functionSignature = fmt.Sprintf("%16s", sig)
			} else {
				selector := types.FunctionSelector{}
				copy(selector[:], call.Input[:4])
				resolved, found := f.resolver.ResolveFunctionSelector(selector)
				if found {
					functionSignature = resolved
				} else {
					// fall back to the same raw hex rendering used when
					// resolution is disabled
					functionSignature = fmt.Sprintf("%16s", sig)
				}
			}
		} else {
			functionSignature = "0x" + hex.EncodeToString(call.Input)
		}

		label := f.directory.DisplayName(call.To)
		if !f.directory.IsKnown(call.To) {
			label = rawAddressColor.Sprint(label)
		}

		revertReason := ""
		if call.RevertReason != nil {
			revertReason = fmt.Sprintf("Revert: %v", *call.RevertReason)
		}
		callError := ""
		if call.Error != nil {
			callError = fmt.Sprintf("Error: %v", *call.Error)
		}

		line := fmt.Sprintf("%s%v %-52v %v %v %v %v",
			strings.Repeat(" ", padding),
			call.Type,
			label,
			functionSignature,
			revertReason,
			callError,
			call.GasUsed,
		)

		if call.RevertReason != nil || call.Error != nil {
			f.out.WriteLine(failureColor.Sprint(line))
		} else {
			f.out.WriteLine(line)
		}

		renderedCallsMetric.Inc()
	}

	for _, subcall := range call.Calls {
		f.PrintCall(subcall, padding+2, mode, resolveHashes)
	}
}
