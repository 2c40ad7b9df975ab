package formatter

import (
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"

	"github.com/ethpandaops/zvmtrace/types"
)

func TestEventRendering(t *testing.T) {
	topic1 := common.HexToHash("0xddf252ad1be2c89b69c2b068fc378daa952ba7f163c4a11628f55a4df523b3ef")
	topic2 := common.HexToHash("0x0000000000000000000000000000000000000000000000000000000000000001")

	tests := []struct {
		name          string
		event         *types.EventRecord
		resolveHashes bool
		resolver      *testResolver
		check         func(t *testing.T, line string)
	}{
		{
			name: "known popular address with unresolved topics",
			event: &types.EventRecord{
				Address:       common.HexToAddress("0xf000"),
				IndexedTopics: []common.Hash{topic1, topic2},
			},
			resolveHashes: true,
			resolver:      &testResolver{},
			check: func(t *testing.T, line string) {
				if !strings.HasPrefix(line, "Foo") {
					t.Errorf("expected line to start with the known name, got: %v", line)
				}
				if !strings.Contains(line, topic1.Hex()+", "+topic2.Hex()) {
					t.Errorf("expected raw topics joined with comma-space, got: %v", line)
				}
			},
		},
		{
			name: "unknown address renders raw hex",
			event: &types.EventRecord{
				Address:       common.HexToAddress("0xdead"),
				IndexedTopics: []common.Hash{topic1},
			},
			resolver: &testResolver{},
			check: func(t *testing.T, line string) {
				if !strings.Contains(line, common.HexToAddress("0xdead").Hex()) {
					t.Errorf("expected raw address, got: %v", line)
				}
			},
		},
		{
			name: "resolved topic uses event name",
			event: &types.EventRecord{
				Address:       common.HexToAddress("0xf000"),
				IndexedTopics: []common.Hash{topic1},
			},
			resolveHashes: true,
			resolver: &testResolver{
				eventNames: map[types.EventSelector]string{
					types.EventSelector(topic1): "Transfer(address,address,uint256)",
				},
			},
			check: func(t *testing.T, line string) {
				if !strings.Contains(line, "Transfer(address,address,uint256)") {
					t.Errorf("expected resolved event name, got: %v", line)
				}
			},
		},
		{
			name: "resolution disabled renders raw topics without resolver calls",
			event: &types.EventRecord{
				Address:       common.HexToAddress("0xf000"),
				IndexedTopics: []common.Hash{topic1, topic2},
			},
			resolver: &testResolver{},
			check:    func(t *testing.T, line string) {},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			output := &BufferWriter{}
			f := NewFormatter(newTestDirectory(), test.resolver, output)
			f.PrintEvent(test.event, test.resolveHashes)

			if len(output.Lines) != 1 {
				t.Fatalf("expected 1 rendered line, got %v", len(output.Lines))
			}
			test.check(t, output.Lines[0])

			if !test.resolveHashes && test.resolver.eventCalls != 0 {
				t.Errorf("expected no resolver calls with resolution disabled, got %v", test.resolver.eventCalls)
			}
		})
	}
}
