package formatter

import (
	"fmt"
	"strings"

	"github.com/holiman/uint256"

	"github.com/ethpandaops/zvmtrace/types"
)

var storageLogSeparator = strings.Repeat("─", 82)

func formatWord(value *uint256.Int) string {
	if value == nil {
		value = uint256.NewInt(0)
	}
	word := value.Bytes32()
	return fmt.Sprintf("0x%x", word)
}

// PrintStorageLog pretty-prints one entry of the VM storage access log. The
// written value is only printed for write entries.
func (f *Formatter) PrintStorageLog(entry *types.StorageLogEntry) {
	f.out.WriteLine(fmt.Sprintf("%-15v %v", "Type:", entry.Kind))

	label := entry.Address.Hex()
	if f.directory.IsKnown(entry.Address) {
		label = f.directory.DisplayName(entry.Address)
	}
	f.out.WriteLine(fmt.Sprintf("%-15v %v", "Address:", label))

	f.out.WriteLine(fmt.Sprintf("%-15v %v", "Key:", formatWord(entry.Key)))
	f.out.WriteLine(fmt.Sprintf("%-15v %v", "Read Value:", formatWord(entry.ReadValue)))

	if entry.Kind != types.StorageLogRead {
		f.out.WriteLine(fmt.Sprintf("%-15v %v", "Written Value:", formatWord(entry.WrittenValue)))
	}

	f.out.WriteLine(storageLogSeparator)
}
