package formatter

import (
	"fmt"

	"github.com/ethpandaops/zvmtrace/types"
)

// PrintExecutionSummary pretty-prints the VM execution summary. A present
// revert reason is rendered as an additional emphasized failure line.
func (f *Formatter) PrintExecutionSummary(summary *types.ExecutionSummary) {
	f.out.WriteLine("")
	f.out.WriteLine("┌──────────────────────────┐")
	f.out.WriteLine("│   VM EXECUTION RESULTS   │")
	f.out.WriteLine("└──────────────────────────┘")

	f.out.WriteLine(fmt.Sprintf("Cycles Used:          %v", summary.CyclesUsed))
	f.out.WriteLine(fmt.Sprintf("Computation Gas Used: %v", summary.ComputationalGasUsed))
	f.out.WriteLine(fmt.Sprintf("Contracts Used:       %v", summary.ContractsUsed))

	if summary.RevertReason != nil {
		f.out.WriteLine("")
		f.out.WriteLine(failureColor.Sprintf("[!] Revert Reason:    %v", *summary.RevertReason))
	}

	f.out.WriteLine("════════════════════════════")
}
