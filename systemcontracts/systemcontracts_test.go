package systemcontracts

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ethpandaops/zvmtrace/types"
)

func TestHashBytecode(t *testing.T) {
	word := bytes.Repeat([]byte{0xab}, 32)

	tests := []struct {
		name      string
		code      []byte
		expectErr string
	}{
		{
			name: "single word",
			code: bytes.Repeat(word, 1),
		},
		{
			name: "three words",
			code: bytes.Repeat(word, 3),
		},
		{
			name:      "not word aligned",
			code:      bytes.Repeat([]byte{0xab}, 33),
			expectErr: "not divisible",
		},
		{
			name:      "even word count",
			code:      bytes.Repeat(word, 2),
			expectErr: "even number of words",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			hash, err := HashBytecode(test.code)
			if test.expectErr != "" {
				if err == nil || !strings.Contains(err.Error(), test.expectErr) {
					t.Errorf("expected error containing %q, got %v", test.expectErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if hash[0] != 1 || hash[1] != 0 {
				t.Errorf("expected version marker {1, 0}, got {%v, %v}", hash[0], hash[1])
			}
			words := len(test.code) / 32
			if got := int(hash[2])<<8 | int(hash[3]); got != words {
				t.Errorf("expected encoded word count %v, got %v", words, got)
			}
		})
	}
}

func TestHashBytecodeContentIdentity(t *testing.T) {
	code := bytes.Repeat([]byte{0x11}, 96)

	hash1, err := HashBytecode(code)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	hash2, err := HashBytecode(bytes.Clone(code))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hash1 != hash2 {
		t.Errorf("identical bytecode must yield identical hashes: %v != %v", hash1, hash2)
	}

	changed := bytes.Clone(code)
	changed[50] ^= 0x01
	hash3, err := HashBytecode(changed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hash1 == hash3 {
		t.Errorf("changed bytecode must yield a different hash")
	}
}

func TestBundleSelectionByIntent(t *testing.T) {
	contracts, err := New(SourceBuiltIn, &types.Config{})
	if err != nil {
		t.Fatalf("error building contracts: %v", err)
	}

	// repeated and reordered selections always map the same way
	for i := 0; i < 3; i++ {
		if bundle := contracts.ForIntent(types.IntentEthCall); bundle != contracts.Playground {
			t.Errorf("EthCall must select playground bundle")
		}
		if bundle := contracts.ForIntent(types.IntentVerifyExecute); bundle != contracts.Baseline {
			t.Errorf("VerifyExecute must select baseline bundle")
		}
		if bundle := contracts.ForIntent(types.IntentEstimateFee); bundle != contracts.FeeEstimate {
			t.Errorf("EstimateFee must select fee estimate bundle")
		}
	}

	if contracts.ForL2Call() != contracts.Playground {
		t.Errorf("ForL2Call must select playground bundle")
	}
	if contracts.ForFeeEstimate() != contracts.FeeEstimate {
		t.Errorf("ForFeeEstimate must select fee estimate bundle")
	}
}

func TestBuiltInBundles(t *testing.T) {
	contracts, err := New(SourceBuiltIn, &types.Config{})
	if err != nil {
		t.Fatalf("error building contracts: %v", err)
	}

	// the three bundles use distinct bootloaders but share the default account
	hashes := map[string]bool{}
	for _, bundle := range []*ContractBundle{contracts.Baseline, contracts.Playground, contracts.FeeEstimate} {
		hashes[bundle.Bootloader.Hash.Hex()] = true
		if bundle.DefaultAccount.Hash != contracts.Baseline.DefaultAccount.Hash {
			t.Errorf("all bundles must share the same default account code")
		}
	}
	if len(hashes) != 3 {
		t.Errorf("expected 3 distinct bootloader hashes, got %v", len(hashes))
	}
}

func TestNoSecurityDefaultAccount(t *testing.T) {
	checking, err := New(SourceBuiltIn, &types.Config{})
	if err != nil {
		t.Fatalf("error building contracts: %v", err)
	}
	nonChecking, err := New(SourceBuiltInWithoutSecurity, &types.Config{})
	if err != nil {
		t.Fatalf("error building contracts: %v", err)
	}

	if checking.Baseline.DefaultAccount.Hash == nonChecking.Baseline.DefaultAccount.Hash {
		t.Errorf("no-security default account must differ from the checking variant")
	}
	if checking.Baseline.Bootloader.Hash != nonChecking.Baseline.Bootloader.Hash {
		t.Errorf("bootloader must not depend on the security variant")
	}
}

func TestLocalSourceMissingArtifact(t *testing.T) {
	cfg := &types.Config{}
	cfg.SystemContracts.Path = t.TempDir()

	_, err := New(SourceLocal, cfg)
	if err == nil {
		t.Fatalf("expected error for missing local artifacts")
	}
	if !strings.Contains(err.Error(), "proved_block") {
		t.Errorf("expected error naming the missing artifact, got: %v", err)
	}
}

func TestLocalSourceLoadsArtifacts(t *testing.T) {
	basePath := t.TempDir()
	if err := os.MkdirAll(filepath.Join(basePath, "bootloader"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Join(basePath, "contracts"), 0o755); err != nil {
		t.Fatal(err)
	}

	bootloaderCode := bytes.Repeat([]byte{0x01}, 96)
	for _, name := range []string{"proved_block", "playground_block", "fee_estimate"} {
		err := os.WriteFile(filepath.Join(basePath, "bootloader", name+".yul.zbin"), bootloaderCode, 0o644)
		if err != nil {
			t.Fatal(err)
		}
	}

	accountCode := bytes.Repeat([]byte{0x02}, 160)
	artifact, err := json.Marshal(map[string]any{
		"contractName": "DefaultAccount",
		"bytecode":     "0x" + strings.Repeat("02", 160),
	})
	if err != nil {
		t.Fatal(err)
	}
	err = os.WriteFile(filepath.Join(basePath, "contracts", "DefaultAccount.json"), artifact, 0o644)
	if err != nil {
		t.Fatal(err)
	}

	cfg := &types.Config{}
	cfg.SystemContracts.Path = basePath

	contracts, err := New(SourceLocal, cfg)
	if err != nil {
		t.Fatalf("error building contracts from local source: %v", err)
	}

	if !bytes.Equal(contracts.Baseline.Bootloader.Code, bootloaderCode) {
		t.Errorf("baseline bootloader code mismatch")
	}
	if !bytes.Equal(contracts.Baseline.DefaultAccount.Code, accountCode) {
		t.Errorf("default account code mismatch")
	}

	expectedHash, err := HashBytecode(accountCode)
	if err != nil {
		t.Fatal(err)
	}
	if contracts.Baseline.DefaultAccount.Hash != expectedHash {
		t.Errorf("default account hash mismatch")
	}
}

func TestParseBytecodeSource(t *testing.T) {
	tests := []struct {
		value     string
		source    BytecodeSource
		expectErr bool
	}{
		{"built-in", SourceBuiltIn, false},
		{"local", SourceLocal, false},
		{"built-in-no-security", SourceBuiltInWithoutSecurity, false},
		{"builtin", SourceBuiltIn, true},
		{"", SourceBuiltIn, true},
	}

	for _, test := range tests {
		source, err := ParseBytecodeSource(test.value)
		if test.expectErr {
			if err == nil {
				t.Errorf("%q: expected error", test.value)
			}
			continue
		}
		if err != nil {
			t.Errorf("%q: unexpected error: %v", test.value, err)
		}
		if source != test.source {
			t.Errorf("%q: expected source %v, got %v", test.value, test.source, source)
		}
	}
}
