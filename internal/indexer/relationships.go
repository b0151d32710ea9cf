package indexer

import (
	"context"
	"fmt"
	"math/big"

	"go.uber.org/zap"

	"github.com/feral-file/ionic-indexer/internal/contracts"
	"github.com/feral-file/ionic-indexer/internal/domain"
	"github.com/feral-file/ionic-indexer/internal/logger"
	"github.com/feral-file/ionic-indexer/internal/relation"
	"github.com/feral-file/ionic-indexer/internal/store"
	"github.com/feral-file/ionic-indexer/internal/store/schema"
)

// loadRegistry returns the conductor registry, creating it when absent
func loadRegistry(ctx context.Context, st store.Store) (*schema.ConductorRegistry, error) {
	registry, err := store.Find[*schema.ConductorRegistry](ctx, st, domain.RegistryID)
	if err != nil {
		return nil, fmt.Errorf("failed to load conductor registry: %w", err)
	}
	if registry == nil {
		registry = &schema.ConductorRegistry{ID: domain.RegistryID}
	}
	return registry, nil
}

// updateRegisteredConductors applies fn to every conductor in the registry
// and saves the ones fn reports as changed. Registry entries whose conductor
// is no longer stored are ignored.
func updateRegisteredConductors(ctx context.Context, st store.Store, fn func(*schema.Conductor) bool) error {
	registry, err := store.Find[*schema.ConductorRegistry](ctx, st, domain.RegistryID)
	if err != nil {
		return fmt.Errorf("failed to load conductor registry: %w", err)
	}
	if registry == nil {
		return nil
	}

	for _, decimal := range registry.ConductorIDs {
		conductorID, ok := parseDecimal(decimal)
		if !ok {
			logger.WarnCtx(ctx, "invalid conductor id in registry", zap.String("conductorId", decimal))
			continue
		}

		id := domain.NumericID(conductorID)
		conductor, err := store.Find[*schema.Conductor](ctx, st, id)
		if err != nil {
			return fmt.Errorf("failed to load conductor %s: %w", id, err)
		}
		if conductor == nil {
			continue
		}

		if !fn(conductor) {
			continue
		}
		if err := st.Save(ctx, conductor); err != nil {
			return fmt.Errorf("failed to save conductor %s: %w", id, err)
		}
	}

	return nil
}

// saveReactionUsages loads or creates the shared usage record of every
// (count, reaction) pair and returns their ids in order
func saveReactionUsages(ctx context.Context, st store.Store, usages []contracts.ReactionCount) (relation.IDList, error) {
	var ids relation.IDList
	for _, u := range usages {
		id := domain.ReactionUsageID(u.Count, u.ReactionID)

		usage, err := store.Find[*schema.ReactionUsage](ctx, st, id)
		if err != nil {
			return nil, fmt.Errorf("failed to load reaction usage %s: %w", id, err)
		}
		if usage == nil {
			usage = &schema.ReactionUsage{ID: id}
		}
		usage.Count = domain.BigString(u.Count)
		usage.ReactionID = domain.BigString(u.ReactionID)
		usage.Reaction = domain.NumericID(u.ReactionID)

		if err := st.Save(ctx, usage); err != nil {
			return nil, fmt.Errorf("failed to save reaction usage %s: %w", id, err)
		}
		ids = ids.AppendUnique(id)
	}
	return ids, nil
}

// parseDecimal parses a stored decimal id
func parseDecimal(s string) (*big.Int, bool) {
	return new(big.Int).SetString(s, 10)
}
