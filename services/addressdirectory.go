package services

import (
	"encoding/json"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/fatih/color"
	"github.com/sirupsen/logrus"

	"github.com/ethpandaops/zvmtrace/config"
	"github.com/ethpandaops/zvmtrace/types"
)

var logger_ad = logrus.StandardLogger().WithField("module", "address_directory")

var (
	precompileColor = color.New(color.Faint)
	popularColor    = color.New(color.FgGreen)
)

// AddressDirectory is the immutable lookup from contract address to display
// name and contract classification. It is built once at startup from the
// embedded dataset and shared read-only across all concurrent renders.
type AddressDirectory struct {
	entries map[common.Address]*types.KnownAddress
}

// NewAddressDirectory parses the embedded known-address dataset. A malformed
// dataset is a packaging defect, so callers treat an error as fatal.
func NewAddressDirectory() (*AddressDirectory, error) {
	return newAddressDirectory(config.KnownAddressesJson)
}

// MustNewAddressDirectory is NewAddressDirectory for main wiring; it dies on
// a malformed dataset.
func MustNewAddressDirectory() *AddressDirectory {
	directory, err := NewAddressDirectory()
	if err != nil {
		logger_ad.Fatalf("error loading known addresses dataset: %v", err)
	}
	return directory
}

func newAddressDirectory(dataset []byte) (*AddressDirectory, error) {
	knownAddresses := []*types.KnownAddress{}
	err := json.Unmarshal(dataset, &knownAddresses)
	if err != nil {
		return nil, fmt.Errorf("error parsing known addresses dataset: %w", err)
	}

	entries := make(map[common.Address]*types.KnownAddress, len(knownAddresses))
	for _, knownAddress := range knownAddresses {
		switch knownAddress.ContractType {
		case types.ContractTypeSystem, types.ContractTypePrecompile, types.ContractTypePopular, types.ContractTypeUnknown:
		default:
			return nil, fmt.Errorf("unknown contract type %q for address %v", knownAddress.ContractType, knownAddress.Address)
		}
		entries[knownAddress.Address] = knownAddress
	}

	logger_ad.Debugf("loaded %v known addresses", len(entries))

	return &AddressDirectory{
		entries: entries,
	}, nil
}

// Classify returns the contract classification for an address, or
// ContractTypeUnknown when the address is not part of the dataset.
func (ad *AddressDirectory) Classify(address common.Address) types.ContractType {
	entry := ad.entries[address]
	if entry == nil {
		return types.ContractTypeUnknown
	}
	return entry.ContractType
}

// DisplayName returns the human readable label for an address: the known name
// with emphasis keyed to the contract type, or the raw hex address when the
// address is not known.
func (ad *AddressDirectory) DisplayName(address common.Address) string {
	entry := ad.entries[address]
	if entry == nil {
		return address.Hex()
	}
	switch entry.ContractType {
	case types.ContractTypePrecompile:
		return precompileColor.Sprint(entry.Name)
	case types.ContractTypePopular:
		return popularColor.Sprint(entry.Name)
	default:
		return entry.Name
	}
}

// IsKnown reports whether the address is part of the dataset.
func (ad *AddressDirectory) IsKnown(address common.Address) bool {
	return ad.entries[address] != nil
}
