package store

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/feral-file/ionic-indexer/internal/domain"
)

// CursorStore defines the interface for storing and retrieving cursors
type CursorStore interface {
	// GetBlockCursor retrieves the last emitted block number for a chain
	GetBlockCursor(ctx context.Context, chain string) (uint64, error)
	// SetBlockCursor stores the last emitted block number for a chain
	SetBlockCursor(ctx context.Context, chain string, blockNumber uint64) error
	// GetEventCursor retrieves the position of the last event applied from a stream, nil if none
	GetEventCursor(ctx context.Context, stream string) (*domain.Position, error)
	// SetEventCursor stores the position of the last event applied from a stream
	SetEventCursor(ctx context.Context, stream string, position domain.Position) error
}

// keyValues is the raw key/value access the cursors are stored through
type keyValues interface {
	getValue(ctx context.Context, key string) (string, bool, error)
	setValue(ctx context.Context, key string, value string) error
}

type cursorStore struct {
	kv keyValues
}

// GetBlockCursor retrieves the last emitted block number for a chain
func (s cursorStore) GetBlockCursor(ctx context.Context, chain string) (uint64, error) {
	value, ok, err := s.kv.getValue(ctx, fmt.Sprintf("block_cursor:%s", chain))
	if err != nil {
		return 0, fmt.Errorf("failed to get block cursor: %w", err)
	}
	if !ok {
		return 0, nil
	}

	blockNumber, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse block cursor: %w", err)
	}

	return blockNumber, nil
}

// SetBlockCursor stores the last emitted block number for a chain
func (s cursorStore) SetBlockCursor(ctx context.Context, chain string, blockNumber uint64) error {
	err := s.kv.setValue(ctx, fmt.Sprintf("block_cursor:%s", chain), strconv.FormatUint(blockNumber, 10))
	if err != nil {
		return fmt.Errorf("failed to set block cursor: %w", err)
	}
	return nil
}

// GetEventCursor retrieves the position of the last event applied from a stream
func (s cursorStore) GetEventCursor(ctx context.Context, stream string) (*domain.Position, error) {
	value, ok, err := s.kv.getValue(ctx, fmt.Sprintf("event_cursor:%s", stream))
	if err != nil {
		return nil, fmt.Errorf("failed to get event cursor: %w", err)
	}
	if !ok {
		return nil, nil
	}

	block, index, found := strings.Cut(value, ":")
	if !found {
		return nil, fmt.Errorf("failed to parse event cursor %q", value)
	}
	blockNumber, err := strconv.ParseUint(block, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("failed to parse event cursor block: %w", err)
	}
	logIndex, err := strconv.ParseUint(index, 10, 32)
	if err != nil {
		return nil, fmt.Errorf("failed to parse event cursor log index: %w", err)
	}

	return &domain.Position{BlockNumber: blockNumber, LogIndex: uint(logIndex)}, nil
}

// SetEventCursor stores the position of the last event applied from a stream
func (s cursorStore) SetEventCursor(ctx context.Context, stream string, position domain.Position) error {
	value := fmt.Sprintf("%d:%d", position.BlockNumber, position.LogIndex)
	if err := s.kv.setValue(ctx, fmt.Sprintf("event_cursor:%s", stream), value); err != nil {
		return fmt.Errorf("failed to set event cursor: %w", err)
	}
	return nil
}
