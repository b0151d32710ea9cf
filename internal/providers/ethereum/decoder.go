package ethereum

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/feral-file/ionic-indexer/internal/domain"
)

// Decoder turns raw logs of the followed contracts into contract events
type Decoder interface {
	// Addresses returns the followed contract addresses in a stable order
	Addresses() []common.Address

	// Decode decodes a log emitted in a block with the given timestamp.
	// It returns nil when the log does not belong to a followed contract
	// or carries an unknown event signature.
	Decode(vLog types.Log, timestamp time.Time) (*domain.ContractEvent, error)
}

type decoder struct {
	chain     domain.Chain
	kinds     map[common.Address]domain.ContractKind
	abis      ABIs
	addresses []common.Address
}

// NewDecoder creates a decoder for the contracts configured by kind
func NewDecoder(chain domain.Chain, addresses map[domain.ContractKind]string, abis ABIs) (Decoder, error) {
	d := &decoder{
		chain: chain,
		kinds: make(map[common.Address]domain.ContractKind, len(addresses)),
		abis:  abis,
	}
	for kind, raw := range addresses {
		if raw == "" {
			continue
		}
		if !common.IsHexAddress(raw) {
			return nil, fmt.Errorf("invalid %s contract address: %s", kind, raw)
		}
		if abis[kind] == nil {
			return nil, fmt.Errorf("missing %s abi", kind)
		}
		address := common.HexToAddress(raw)
		if existing, ok := d.kinds[address]; ok {
			return nil, fmt.Errorf("address %s configured for both %s and %s", raw, existing, kind)
		}
		d.kinds[address] = kind
		d.addresses = append(d.addresses, address)
	}
	sort.Slice(d.addresses, func(i, j int) bool {
		return bytes.Compare(d.addresses[i].Bytes(), d.addresses[j].Bytes()) < 0
	})
	return d, nil
}

func (d *decoder) Addresses() []common.Address {
	return d.addresses
}

func (d *decoder) Decode(vLog types.Log, timestamp time.Time) (*domain.ContractEvent, error) {
	kind, ok := d.kinds[vLog.Address]
	if !ok || len(vLog.Topics) == 0 {
		return nil, nil
	}

	event, err := d.abis[kind].EventByID(vLog.Topics[0])
	if err != nil {
		return nil, nil
	}

	params := make(map[string]interface{}, len(event.Inputs))
	if err := event.Inputs.UnpackIntoMap(params, vLog.Data); err != nil {
		return nil, fmt.Errorf("failed to unpack %s data: %w", event.Name, err)
	}

	var indexed abi.Arguments
	for _, input := range event.Inputs {
		if input.Indexed {
			indexed = append(indexed, input)
		}
	}
	if err := abi.ParseTopicsIntoMap(params, indexed, vLog.Topics[1:]); err != nil {
		return nil, fmt.Errorf("failed to parse %s topics: %w", event.Name, err)
	}

	raw, err := json.Marshal(params)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s params: %w", event.Name, err)
	}

	return &domain.ContractEvent{
		Chain:           d.chain,
		ContractAddress: strings.ToLower(vLog.Address.Hex()),
		EventName:       event.Name,
		BlockNumber:     vLog.BlockNumber,
		BlockHash:       vLog.BlockHash.Hex(),
		BlockTimestamp:  timestamp.UTC(),
		TxHash:          vLog.TxHash.Hex(),
		LogIndex:        vLog.Index,
		Params:          raw,
	}, nil
}
