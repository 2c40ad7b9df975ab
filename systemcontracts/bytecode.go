package systemcontracts

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

const bytecodeWordSize = 32

// HashBytecode computes the content digest used as code identity for a
// bytecode blob: a sha256 digest whose first four bytes are replaced by the
// version marker {1, 0} and the big-endian bytecode length in 32-byte words.
// The bytecode must be a whole number of words with an odd word count.
func HashBytecode(code []byte) (common.Hash, error) {
	if len(code)%bytecodeWordSize != 0 {
		return common.Hash{}, fmt.Errorf("bytecode length is not divisible by %v", bytecodeWordSize)
	}
	words := len(code) / bytecodeWordSize
	if words%2 == 0 {
		return common.Hash{}, fmt.Errorf("bytecode cannot contain an even number of words: %v", words)
	}
	if words > 0xffff {
		return common.Hash{}, fmt.Errorf("bytecode is too long: %v words", words)
	}

	digest := sha256.Sum256(code)
	digest[0] = 1
	digest[1] = 0
	binary.BigEndian.PutUint16(digest[2:4], uint16(words))

	return common.Hash(digest), nil
}

// newContractCode pairs a bytecode blob with its content hash.
func newContractCode(code []byte) (ContractCode, error) {
	hash, err := HashBytecode(code)
	if err != nil {
		return ContractCode{}, err
	}
	return ContractCode{
		Code: code,
		Hash: hash,
	}, nil
}

// contractArtifact is the compiler output format the default-account
// bytecode is shipped in.
type contractArtifact struct {
	ContractName string        `json:"contractName"`
	Bytecode     hexutil.Bytes `json:"bytecode"`
}

func bytecodeFromArtifact(name string, artifactJson []byte) ([]byte, error) {
	artifact := &contractArtifact{}
	err := json.Unmarshal(artifactJson, artifact)
	if err != nil {
		return nil, fmt.Errorf("error parsing %v artifact: %w", name, err)
	}
	if len(artifact.Bytecode) == 0 {
		return nil, fmt.Errorf("%v artifact contains no bytecode", name)
	}
	return artifact.Bytecode, nil
}

// readLocalBootloaderBytecode loads a bootloader program from the configured
// system contracts directory.
func readLocalBootloaderBytecode(basePath, name string) ([]byte, error) {
	path := filepath.Join(basePath, "bootloader", name+".yul.zbin")
	code, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading bootloader bytecode %v: %w", path, err)
	}
	return code, nil
}

// readLocalContractBytecode loads a compiled contract artifact from the
// configured system contracts directory.
func readLocalContractBytecode(basePath, name string) ([]byte, error) {
	path := filepath.Join(basePath, "contracts", name+".json")
	artifactJson, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading contract artifact %v: %w", path, err)
	}
	return bytecodeFromArtifact(name, artifactJson)
}
