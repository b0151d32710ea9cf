package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Chain represents the blockchain network identifier using CAIP-2 format
type Chain string

const (
	ChainEthereumMainnet Chain = "eip155:1"
	ChainEthereumSepolia Chain = "eip155:11155111"
	ChainBaseMainnet     Chain = "eip155:8453"
	ChainBaseSepolia     Chain = "eip155:84532"
)

// IsValidChain checks if a chain is valid
func IsValidChain(chain Chain) bool {
	return chain == ChainEthereumMainnet ||
		chain == ChainEthereumSepolia ||
		chain == ChainBaseMainnet ||
		chain == ChainBaseSepolia
}

// ContractKind names one of the Ionic contracts the indexer follows
type ContractKind string

const (
	ContractAppraisals    ContractKind = "appraisals"
	ContractConductors    ContractKind = "conductors"
	ContractDesigners     ContractKind = "designers"
	ContractReactionPacks ContractKind = "reaction_packs"
	ContractNFT           ContractKind = "nft"
	ContractAccessControl ContractKind = "access_control"
)

// ContractKinds lists every kind in a stable order
var ContractKinds = []ContractKind{
	ContractAppraisals,
	ContractConductors,
	ContractDesigners,
	ContractReactionPacks,
	ContractNFT,
	ContractAccessControl,
}

// Event names emitted by the Ionic contracts
const (
	EventAppraisalCreated = "AppraisalCreated"
	EventNFTSubmitted     = "NFTSubmitted"
	EventNFTRemoved       = "NFTRemoved"

	EventConductorRegistered   = "ConductorRegistered"
	EventConductorDeleted      = "ConductorDeleted"
	EventConductorUpdated      = "ConductorUpdated"
	EventConductorStatsUpdated = "ConductorStatsUpdated"
	EventReviewSubmitted       = "ReviewSubmitted"
	EventReviewerURIUpdated    = "ReviewerURIUpdated"

	EventDesignerInvited     = "DesignerInvited"
	EventDesignerDeactivated = "DesignerDeactivated"
	EventDesignerURI         = "DesignerURI"

	EventReactionPackCreated = "ReactionPackCreated"
	EventReactionAdded       = "ReactionAdded"
	EventPackPurchased       = "PackPurchased"

	EventApproval          = "Approval"
	EventApprovalForAll    = "ApprovalForAll"
	EventMintersAuthorized = "MintersAuthorized"
	EventTokenMinted       = "TokenMinted"
	EventTokenURIUpdated   = "TokenURIUpdated"
	EventTransfer          = "Transfer"

	EventAdminAdded       = "AdminAdded"
	EventAdminRemoved     = "AdminRemoved"
	EventAdminRevoked     = "AdminRevoked"
	EventMonaTokenUpdated = "MonaTokenUpdated"
	EventPodeTokenUpdated = "PodeTokenUpdated"
)

// ContractEvent is a decoded contract log.
// This is the message format published to NATS.
type ContractEvent struct {
	Chain           Chain           `json:"chain"`
	ContractAddress string          `json:"contract_address"`
	EventName       string          `json:"event_name"`
	BlockNumber     uint64          `json:"block_number"`
	BlockHash       string          `json:"block_hash"`
	BlockTimestamp  time.Time       `json:"block_timestamp"`
	TxHash          string          `json:"tx_hash"`
	LogIndex        uint            `json:"log_index"`
	Params          json.RawMessage `json:"params"`
}

// Position returns the location of the event in the chain
func (e *ContractEvent) Position() Position {
	return Position{BlockNumber: e.BlockNumber, LogIndex: e.LogIndex}
}

// DecodeParams unmarshals the event params into v
func (e *ContractEvent) DecodeParams(v interface{}) error {
	if len(e.Params) == 0 {
		return fmt.Errorf("%w: %s has no params", ErrInvalidParams, e.EventName)
	}
	if err := json.Unmarshal(e.Params, v); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidParams, e.EventName, err)
	}
	return nil
}

// NormalizedAddress returns the lower-cased contract address
func (e *ContractEvent) NormalizedAddress() string {
	return strings.ToLower(e.ContractAddress)
}

// Position orders events within a chain
type Position struct {
	BlockNumber uint64 `json:"block_number"`
	LogIndex    uint   `json:"log_index"`
}

// After reports whether p comes strictly after o
func (p Position) After(o Position) bool {
	if p.BlockNumber != o.BlockNumber {
		return p.BlockNumber > o.BlockNumber
	}
	return p.LogIndex > o.LogIndex
}
