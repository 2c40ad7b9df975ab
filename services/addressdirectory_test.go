package services

import (
	"os"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/fatih/color"

	"github.com/ethpandaops/zvmtrace/types"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

func TestAddressDirectoryLoadsEmbeddedDataset(t *testing.T) {
	directory, err := NewAddressDirectory()
	if err != nil {
		t.Fatalf("error loading embedded dataset: %v", err)
	}
	if len(directory.entries) == 0 {
		t.Fatalf("expected non-empty dataset")
	}
}

func TestAddressDirectoryMalformedDataset(t *testing.T) {
	tests := []struct {
		name    string
		dataset string
	}{
		{"invalid json", `[{`},
		{"invalid address", `[{"address": "0xzz", "name": "Broken", "contractType": "system"}]`},
		{"invalid contract type", `[{"address": "0x0000000000000000000000000000000000008001", "name": "Bootloader", "contractType": "magic"}]`},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := newAddressDirectory([]byte(test.dataset))
			if err == nil {
				t.Errorf("expected error for malformed dataset")
			}
		})
	}
}

func TestAddressDirectoryLookups(t *testing.T) {
	dataset := `[
		{"address": "0x0000000000000000000000000000000000008001", "name": "Bootloader", "contractType": "system"},
		{"address": "0x0000000000000000000000000000000000000001", "name": "Ecrecover", "contractType": "precompile"},
		{"address": "0x5aea5775959fbc2557cc8789bc1bf90a239d9a91", "name": "WETH", "contractType": "popular"}
	]`
	directory, err := newAddressDirectory([]byte(dataset))
	if err != nil {
		t.Fatalf("error loading dataset: %v", err)
	}

	tests := []struct {
		name         string
		address      common.Address
		contractType types.ContractType
		displayName  string
	}{
		{
			name:         "system contract",
			address:      common.HexToAddress("0x0000000000000000000000000000000000008001"),
			contractType: types.ContractTypeSystem,
			displayName:  "Bootloader",
		},
		{
			name:         "precompile",
			address:      common.HexToAddress("0x0000000000000000000000000000000000000001"),
			contractType: types.ContractTypePrecompile,
			displayName:  "Ecrecover",
		},
		{
			name:         "popular contract",
			address:      common.HexToAddress("0x5aea5775959fbc2557cc8789bc1bf90a239d9a91"),
			contractType: types.ContractTypePopular,
			displayName:  "WETH",
		},
		{
			name:         "absent address",
			address:      common.HexToAddress("0x00000000000000000000000000000000deadbeef"),
			contractType: types.ContractTypeUnknown,
			displayName:  common.HexToAddress("0x00000000000000000000000000000000deadbeef").Hex(),
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if contractType := directory.Classify(test.address); contractType != test.contractType {
				t.Errorf("expected contract type %v, got %v", test.contractType, contractType)
			}
			if displayName := directory.DisplayName(test.address); displayName != test.displayName {
				t.Errorf("expected display name %v, got %v", test.displayName, displayName)
			}
			isKnown := test.contractType != types.ContractTypeUnknown
			if known := directory.IsKnown(test.address); known != isKnown {
				t.Errorf("expected IsKnown %v, got %v", isKnown, known)
			}
		})
	}
}
