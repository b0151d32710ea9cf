package ethereum

import (
	"bytes"
	"embed"
	"fmt"

	"github.com/ethereum/go-ethereum/accounts/abi"

	"github.com/feral-file/ionic-indexer/internal/domain"
)

//go:embed abis/*.json
var abiFiles embed.FS

// ABIs maps each contract kind to its parsed ABI
type ABIs map[domain.ContractKind]*abi.ABI

// LoadABIs parses the embedded ABI of every contract kind
func LoadABIs() (ABIs, error) {
	abis := make(ABIs, len(domain.ContractKinds))
	for _, kind := range domain.ContractKinds {
		raw, err := abiFiles.ReadFile(fmt.Sprintf("abis/%s.json", kind))
		if err != nil {
			return nil, fmt.Errorf("failed to read %s abi: %w", kind, err)
		}

		parsed, err := abi.JSON(bytes.NewReader(raw))
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s abi: %w", kind, err)
		}
		abis[kind] = &parsed
	}
	return abis, nil
}

// convertTuple converts an unpacked tuple into T, which must mirror the
// tuple components field by field
func convertTuple[T any](v interface{}) (out T, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("failed to convert tuple to %T: %v", out, r)
		}
	}()
	return *abi.ConvertType(v, new(T)).(*T), nil
}
