package ethereum_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ionic-indexer/internal/domain"
	"github.com/feral-file/ionic-indexer/internal/providers/ethereum"
)

func TestLoadABIs(t *testing.T) {
	abis, err := ethereum.LoadABIs()
	require.NoError(t, err)
	require.Len(t, abis, len(domain.ContractKinds))

	events := map[domain.ContractKind][]string{
		domain.ContractAppraisals: {
			domain.EventAppraisalCreated, domain.EventNFTSubmitted, domain.EventNFTRemoved,
		},
		domain.ContractConductors: {
			domain.EventConductorRegistered, domain.EventConductorDeleted, domain.EventConductorUpdated,
			domain.EventConductorStatsUpdated, domain.EventReviewSubmitted, domain.EventReviewerURIUpdated,
		},
		domain.ContractDesigners: {
			domain.EventDesignerInvited, domain.EventDesignerDeactivated, domain.EventDesignerURI,
		},
		domain.ContractReactionPacks: {
			domain.EventReactionPackCreated, domain.EventReactionAdded, domain.EventPackPurchased,
		},
	}
	for kind, names := range events {
		for _, name := range names {
			_, ok := abis[kind].Events[name]
			assert.True(t, ok, "%s abi is missing %s", kind, name)
		}
	}
}
