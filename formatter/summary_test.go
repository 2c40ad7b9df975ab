package formatter

import (
	"strings"
	"testing"

	"github.com/ethpandaops/zvmtrace/types"
)

func TestExecutionSummaryRendering(t *testing.T) {
	revertReason := "Error function_selector = 0x, data = 0x"

	tests := []struct {
		name         string
		summary      *types.ExecutionSummary
		expectRevert bool
	}{
		{
			name: "successful execution",
			summary: &types.ExecutionSummary{
				CyclesUsed:           4233,
				ComputationalGasUsed: 184922,
				ContractsUsed:        11,
			},
		},
		{
			name: "reverted execution",
			summary: &types.ExecutionSummary{
				CyclesUsed:           120,
				ComputationalGasUsed: 21000,
				ContractsUsed:        2,
				RevertReason:         &revertReason,
			},
			expectRevert: true,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			output := &BufferWriter{}
			f := NewFormatter(newTestDirectory(), &testResolver{}, output)
			f.PrintExecutionSummary(test.summary)

			rendered := strings.Join(output.Lines, "\n")
			for _, expected := range []string{
				"VM EXECUTION RESULTS",
				"Cycles Used:",
				"Computation Gas Used:",
				"Contracts Used:",
			} {
				if !strings.Contains(rendered, expected) {
					t.Errorf("expected output to contain %q, got:\n%v", expected, rendered)
				}
			}

			hasRevert := strings.Contains(rendered, "[!] Revert Reason:")
			if hasRevert != test.expectRevert {
				t.Errorf("revert line presence: expected %v, got %v", test.expectRevert, hasRevert)
			}
			if test.expectRevert && !strings.Contains(rendered, revertReason) {
				t.Errorf("expected revert reason text in output, got:\n%v", rendered)
			}
		})
	}
}
