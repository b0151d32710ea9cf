package ethereum

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sort"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"

	"github.com/feral-file/ionic-indexer/internal/adapter"
	"github.com/feral-file/ionic-indexer/internal/block"
	"github.com/feral-file/ionic-indexer/internal/domain"
	"github.com/feral-file/ionic-indexer/internal/logger"
	"github.com/feral-file/ionic-indexer/internal/messaging"
)

const (
	defaultBackfillStep = uint64(5000)
	minBackfillStep     = uint64(1)
)

// Config holds the configuration for the contract log subscription
type Config struct {
	ChainID domain.Chain

	// BackfillStep is the block range of a single eth_getLogs call while catching up.
	// It is halved whenever the node rejects a range as too large.
	BackfillStep uint64
}

type ethSubscriber struct {
	client  adapter.EthClient
	decoder Decoder
	blocks  block.BlockProvider
	config  Config

	last *domain.Position
}

// NewSubscriber creates a subscriber for the contracts known to decoder
func NewSubscriber(cfg Config, client adapter.EthClient, decoder Decoder, blocks block.BlockProvider) messaging.Subscriber {
	if cfg.BackfillStep == 0 {
		cfg.BackfillStep = defaultBackfillStep
	}
	return &ethSubscriber{
		client:  client,
		decoder: decoder,
		blocks:  blocks,
		config:  cfg,
	}
}

// SubscribeEvents catches up from fromBlock to the current head with
// eth_getLogs, then follows new logs over the websocket subscription.
// Logs delivered by both paths are handled once.
func (s *ethSubscriber) SubscribeEvents(ctx context.Context, fromBlock uint64, handler messaging.EventHandler) error {
	addresses := s.decoder.Addresses()
	if len(addresses) == 0 {
		return errors.New("no contract addresses to subscribe to")
	}
	query := ethereum.FilterQuery{Addresses: addresses}

	latest, err := s.blocks.GetLatestBlock(ctx)
	if err != nil {
		return fmt.Errorf("failed to get latest block: %w", err)
	}

	next := fromBlock
	if fromBlock <= latest {
		logger.InfoCtx(ctx, "Backfilling contract logs",
			zap.Uint64("from_block", fromBlock),
			zap.Uint64("to_block", latest))
		if err := s.backfill(ctx, query, fromBlock, latest, handler); err != nil {
			return err
		}
		next = latest + 1
	}

	query.FromBlock = new(big.Int).SetUint64(next)
	logs := make(chan types.Log)
	sub, err := s.client.SubscribeFilterLogs(ctx, query, logs)
	if err != nil {
		return fmt.Errorf("%w: failed to subscribe to filter logs: %w", domain.ErrSubscriptionFailed, err)
	}
	defer func() {
		logger.InfoCtx(ctx, "Unsubscribing from contract logs")
		sub.Unsubscribe()
	}()

	logger.InfoCtx(ctx, "Subscribed to contract logs",
		zap.Uint64("from_block", next),
		zap.Int("contracts", len(addresses)))

	// The subscription only carries logs mined after it was created, so
	// fill the blocks mined between the head read and now from the node
	head, err := s.client.BlockNumber(ctx)
	if err != nil {
		return fmt.Errorf("failed to get head after subscribing: %w", err)
	}
	if head >= next {
		logger.InfoCtx(ctx, "Backfilling logs mined while subscribing",
			zap.Uint64("from_block", next),
			zap.Uint64("to_block", head))
		if err := s.backfill(ctx, query, next, head, handler); err != nil {
			return err
		}
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-sub.Err():
			return fmt.Errorf("%w: %w", domain.ErrSubscriptionFailed, err)
		case vLog := <-logs:
			if err := s.deliver(ctx, vLog, handler); err != nil {
				return err
			}
		}
	}
}

// backfill delivers the logs of [from, to] in chunks, halving the chunk when
// the node reports too many results
func (s *ethSubscriber) backfill(ctx context.Context, query ethereum.FilterQuery, from, to uint64, handler messaging.EventHandler) error {
	step := s.config.BackfillStep
	current := from

	for current <= to {
		if err := ctx.Err(); err != nil {
			return err
		}

		end := current + step - 1
		if end > to || end < current {
			end = to
		}

		chunk := query
		chunk.FromBlock = new(big.Int).SetUint64(current)
		chunk.ToBlock = new(big.Int).SetUint64(end)

		logs, err := s.client.FilterLogs(ctx, chunk)
		if err != nil {
			if !isTooManyResultsError(err) || step <= minBackfillStep {
				return fmt.Errorf("failed to filter logs %d-%d: %w", current, end, err)
			}
			step /= 2
			logger.WarnCtx(ctx, "Too many results, reducing step size",
				zap.Uint64("old_step", step*2),
				zap.Uint64("new_step", step),
				zap.Uint64("from_block", current),
				zap.Uint64("to_block", end))
			continue
		}

		sort.SliceStable(logs, func(i, j int) bool {
			if logs[i].BlockNumber != logs[j].BlockNumber {
				return logs[i].BlockNumber < logs[j].BlockNumber
			}
			return logs[i].Index < logs[j].Index
		})
		for _, vLog := range logs {
			if err := s.deliver(ctx, vLog, handler); err != nil {
				return err
			}
		}

		current = end + 1
		if step < s.config.BackfillStep {
			step *= 2
		}
	}
	return nil
}

// deliver decodes a log and passes it to the handler. Logs at or before the
// last delivered position are dropped so backfill and live overlap is harmless.
func (s *ethSubscriber) deliver(ctx context.Context, vLog types.Log, handler messaging.EventHandler) error {
	if vLog.Removed {
		logger.WarnCtx(ctx, "Skipping removed log",
			zap.Uint64("block_number", vLog.BlockNumber),
			zap.String("tx_hash", vLog.TxHash.Hex()))
		return nil
	}

	pos := domain.Position{BlockNumber: vLog.BlockNumber, LogIndex: vLog.Index}
	if s.last != nil && !pos.After(*s.last) {
		return nil
	}

	timestamp, err := s.blocks.GetBlockTimestamp(ctx, vLog.BlockNumber)
	if err != nil {
		return fmt.Errorf("failed to get block timestamp: %w", err)
	}

	event, err := s.decoder.Decode(vLog, timestamp)
	if err != nil {
		logger.ErrorCtx(ctx, err,
			zap.String("message", "Error decoding log"),
			zap.Uint64("block_number", vLog.BlockNumber),
			zap.Uint("log_index", vLog.Index))
		s.last = &pos
		return nil
	}
	if event == nil {
		s.last = &pos
		return nil
	}

	if err := handler(ctx, event); err != nil {
		return fmt.Errorf("failed to handle %s at block %d: %w", event.EventName, event.BlockNumber, err)
	}
	s.last = &pos
	return nil
}

// GetLatestBlock returns the latest block number
func (s *ethSubscriber) GetLatestBlock(ctx context.Context) (uint64, error) {
	return s.blocks.GetLatestBlock(ctx)
}

// Close closes the connection
func (s *ethSubscriber) Close() {
	if s.client == nil {
		return
	}

	s.client.Close()
	logger.Info("Ethereum WebSocket connection closed")
}

// isTooManyResultsError checks if the node rejected a log range as too large
func isTooManyResultsError(err error) bool {
	if err == nil {
		return false
	}

	errStr := err.Error()
	return strings.Contains(errStr, "query returned more than 10000 results") ||
		strings.Contains(errStr, "query timeout exceeded") ||
		strings.Contains(errStr, "too many results") ||
		strings.Contains(errStr, "exceeded maximum") ||
		strings.Contains(errStr, "block range")
}
