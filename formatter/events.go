package formatter

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/ethpandaops/zvmtrace/types"
)

var eventAddressColor = color.New(color.FgBlue)

// PrintEvent pretty-prints an emitted event as one line: the emitting address
// label followed by the indexed topics. If resolveHashes is set, topic hashes
// are resolved to event names, falling back to the raw hash.
func (f *Formatter) PrintEvent(event *types.EventRecord, resolveHashes bool) {
	topics := make([]string, 0, len(event.IndexedTopics))
	if !resolveHashes {
		for _, topic := range event.IndexedTopics {
			topics = append(topics, topic.Hex())
		}
	} else {
		for _, topic := range event.IndexedTopics {
			resolved, found := f.resolver.ResolveEventSelector(types.EventSelector(topic))
			if found {
				topics = append(topics, resolved)
			} else {
				topics = append(topics, topic.Hex())
			}
		}
	}

	label := event.Address.Hex()
	if f.directory.IsKnown(event.Address) {
		label = f.directory.DisplayName(event.Address)
	}

	f.out.WriteLine(fmt.Sprintf("%-42v %v",
		eventAddressColor.Sprint(label),
		strings.Join(topics, ", "),
	))
}
