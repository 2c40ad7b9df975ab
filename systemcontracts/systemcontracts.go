// Package systemcontracts builds the immutable bootloader and default-account
// bytecode bundles the node executes transactions with, and selects the
// bundle matching a transaction's execution intent.
package systemcontracts

import (
	_ "embed"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/sirupsen/logrus"

	"github.com/ethpandaops/zvmtrace/types"
)

var logger = logrus.StandardLogger().WithField("module", "system_contracts")

//go:embed contracts/proved_block.yul.zbin
var builtinProvedBlockBootloader []byte

//go:embed contracts/playground_block.yul.zbin
var builtinPlaygroundBootloader []byte

//go:embed contracts/fee_estimate.yul.zbin
var builtinFeeEstimateBootloader []byte

//go:embed contracts/DefaultAccount.json
var builtinDefaultAccountArtifact []byte

//go:embed contracts/DefaultAccountNoSecurity.json
var builtinDefaultAccountNoSecurityArtifact []byte

// BytecodeSource selects where the system contract bytecode is loaded from.
type BytecodeSource int

const (
	// SourceBuiltIn uses the compiled-in contracts.
	SourceBuiltIn BytecodeSource = iota
	// SourceLocal loads the contracts bytecode at runtime from the configured path.
	SourceLocal
	// SourceBuiltInWithoutSecurity uses the compiled-in contracts without
	// signature verification (used only for testing).
	SourceBuiltInWithoutSecurity
)

// ParseBytecodeSource parses the config/CLI representation of a bytecode source.
func ParseBytecodeSource(value string) (BytecodeSource, error) {
	switch value {
	case "built-in":
		return SourceBuiltIn, nil
	case "local":
		return SourceLocal, nil
	case "built-in-no-security":
		return SourceBuiltInWithoutSecurity, nil
	default:
		return SourceBuiltIn, fmt.Errorf("unknown bytecode source: %v", value)
	}
}

// ContractCode is a bytecode blob together with its content hash. The hash is
// the code identity used for code-existence checks by the executor.
type ContractCode struct {
	Code []byte
	Hash common.Hash
}

// ContractBundle pairs a mode-specific bootloader program with the
// default-account program. Bundles are immutable once built.
type ContractBundle struct {
	Bootloader     ContractCode
	DefaultAccount ContractCode
}

// SystemContracts holds the three contract bundles used by the node. It is
// built once at startup and shared read-only for the node's lifetime.
type SystemContracts struct {
	Baseline    *ContractBundle
	Playground  *ContractBundle
	FeeEstimate *ContractBundle
}

// New builds the three contract bundles from the given bytecode source. For
// SourceLocal, a missing or unreadable artifact is an error; the node must
// not start without a complete contract set. For the built-in sources an
// error indicates corrupted embedded data.
func New(source BytecodeSource, cfg *types.Config) (*SystemContracts, error) {
	baseline, err := loadBundle(source, cfg, "proved_block", builtinProvedBlockBootloader)
	if err != nil {
		return nil, fmt.Errorf("error building baseline contracts: %w", err)
	}
	playground, err := loadBundle(source, cfg, "playground_block", builtinPlaygroundBootloader)
	if err != nil {
		return nil, fmt.Errorf("error building playground contracts: %w", err)
	}
	feeEstimate, err := loadBundle(source, cfg, "fee_estimate", builtinFeeEstimateBootloader)
	if err != nil {
		return nil, fmt.Errorf("error building fee estimate contracts: %w", err)
	}

	logger.WithFields(logrus.Fields{
		"bootloader":     baseline.Bootloader.Hash.Hex(),
		"defaultAccount": baseline.DefaultAccount.Hash.Hex(),
	}).Debugf("loaded system contracts")

	return &SystemContracts{
		Baseline:    baseline,
		Playground:  playground,
		FeeEstimate: feeEstimate,
	}, nil
}

// MustNew is New for main wiring; it dies when the contract set is incomplete.
func MustNew(source BytecodeSource, cfg *types.Config) *SystemContracts {
	contracts, err := New(source, cfg)
	if err != nil {
		logger.Fatalf("error loading system contracts: %v", err)
	}
	return contracts
}

// loadBundle builds one bundle: the named bootloader program paired with the
// default-account program matching the source.
func loadBundle(source BytecodeSource, cfg *types.Config, bootloaderName string, builtinBootloader []byte) (*ContractBundle, error) {
	var bootloaderBytecode []byte
	var err error
	switch source {
	case SourceBuiltIn, SourceBuiltInWithoutSecurity:
		bootloaderBytecode = builtinBootloader
	case SourceLocal:
		bootloaderBytecode, err = readLocalBootloaderBytecode(cfg.SystemContracts.Path, bootloaderName)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown bytecode source: %v", source)
	}

	bootloader, err := newContractCode(bootloaderBytecode)
	if err != nil {
		return nil, fmt.Errorf("invalid %v bootloader bytecode: %w", bootloaderName, err)
	}

	var accountBytecode []byte
	switch source {
	case SourceBuiltIn:
		accountBytecode, err = bytecodeFromArtifact("DefaultAccount", builtinDefaultAccountArtifact)
	case SourceBuiltInWithoutSecurity:
		accountBytecode, err = bytecodeFromArtifact("DefaultAccountNoSecurity", builtinDefaultAccountNoSecurityArtifact)
	case SourceLocal:
		accountBytecode, err = readLocalContractBytecode(cfg.SystemContracts.Path, "DefaultAccount")
	}
	if err != nil {
		return nil, err
	}

	defaultAccount, err := newContractCode(accountBytecode)
	if err != nil {
		return nil, fmt.Errorf("invalid default account bytecode: %w", err)
	}

	return &ContractBundle{
		Bootloader:     bootloader,
		DefaultAccount: defaultAccount,
	}, nil
}

// ForIntent returns the bundle matching an execution intent. It is a pure
// total function over the three intents.
func (sc *SystemContracts) ForIntent(intent types.ExecutionIntent) *ContractBundle {
	switch intent {
	case types.IntentVerifyExecute:
		// 'real' contracts, that do all the checks
		return sc.Baseline
	case types.IntentEstimateFee:
		// fee estimation requests are often unsigned and keep changing the
		// gas limit, so signatures rarely match - don't check them
		return sc.FeeEstimate
	case types.IntentEthCall:
		// read-only call - no signature checks, fixed gas limit
		return sc.Playground
	default:
		return sc.Baseline
	}
}

// ForL2Call returns the bundle used for read-only eth_call handling.
func (sc *SystemContracts) ForL2Call() *ContractBundle {
	return sc.ForIntent(types.IntentEthCall)
}

// ForFeeEstimate returns the bundle used for eth_estimateGas handling.
func (sc *SystemContracts) ForFeeEstimate() *ContractBundle {
	return sc.ForIntent(types.IntentEstimateFee)
}
