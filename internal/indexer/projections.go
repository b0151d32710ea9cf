package indexer

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"gorm.io/datatypes"

	"github.com/feral-file/ionic-indexer/internal/domain"
	"github.com/feral-file/ionic-indexer/internal/store/schema"
)

var nftEvents = []string{
	domain.EventApproval,
	domain.EventApprovalForAll,
	domain.EventMintersAuthorized,
	domain.EventTokenMinted,
	domain.EventTokenURIUpdated,
	domain.EventTransfer,
}

var accessControlEvents = []string{
	domain.EventAdminAdded,
	domain.EventAdminRemoved,
	domain.EventAdminRevoked,
	domain.EventMonaTokenUpdated,
	domain.EventPodeTokenUpdated,
}

// projections routes every name in events to the event record projection
func projections(d *dispatcher, events []string) map[string]handler {
	handlers := make(map[string]handler, len(events))
	for _, name := range events {
		handlers[name] = d.handleProjection
	}
	return handlers
}

// handleProjection stores the event as an immutable record.
// Replaying the same log overwrites the identical record.
func (d *dispatcher) handleProjection(ctx context.Context, ec *eventContext) error {
	params := ec.event.Params
	if len(params) == 0 {
		params = []byte("{}")
	}

	record := &schema.EventRecord{
		ID:              domain.EventID(common.HexToHash(ec.event.TxHash), ec.event.LogIndex),
		Contract:        string(ec.kind),
		ContractAddress: ec.event.NormalizedAddress(),
		EventName:       ec.event.EventName,
		Params:          datatypes.JSON(params),
		BlockNumber:     ec.block(),
		BlockTimestamp:  ec.timestamp(),
		TransactionHash: ec.event.TxHash,
		LogIndex:        ec.event.LogIndex,
	}
	if err := ec.store.Save(ctx, record); err != nil {
		return fmt.Errorf("failed to save %s event record: %w", ec.event.EventName, err)
	}
	return nil
}
