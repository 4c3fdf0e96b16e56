// Package sync pulls settled logs from the chain in bounded chunks, resolves
// block timestamps, and feeds them to the projection in chain order.
package sync

import (
	"context"
	"database/sql"
	"fmt"
	"math/big"
	"sort"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/aegis-protocol/aegis-indexer/internal/config"
	"github.com/aegis-protocol/aegis-indexer/internal/logger"
	"github.com/aegis-protocol/aegis-indexer/internal/rpc"
	"github.com/aegis-protocol/aegis-indexer/pkg/indexer"
)

// Syncer walks the chain from the projection cursor to the settled head,
// chunk by chunk. It only hands over logs that are at least the configured
// number of confirmations behind the head.
type Syncer struct {
	client rpc.EthClient
	db     *sql.DB
	sink   indexer.Indexer
	cfg    config.SyncConfig
	log    *logger.Logger

	addresses []common.Address
}

// New creates a syncer feeding the given sink.
func New(client rpc.EthClient, database *sql.DB, sink indexer.Indexer,
	cfg config.SyncConfig, log *logger.Logger) *Syncer {
	addrSet := sink.AddressesToIndex()
	addresses := make([]common.Address, 0, len(addrSet))
	for addr := range addrSet {
		addresses = append(addresses, addr)
	}
	sort.Slice(addresses, func(i, j int) bool {
		return addresses[i].Cmp(addresses[j]) < 0
	})

	return &Syncer{
		client:    client,
		db:        database,
		sink:      sink,
		cfg:       cfg,
		log:       log,
		addresses: addresses,
	}
}

// Run drives the sync loop until the context is cancelled. Once caught up it
// polls the head at the configured interval.
func (s *Syncer) Run(ctx context.Context) error {
	s.log.Infof("starting sync from block %d for %d contracts", s.nextBlock(), len(s.addresses))

	for {
		caughtUp, err := s.step(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			s.log.Errorf("sync step failed: %v", err)
			SyncErrorsInc()
			caughtUp = true // back off before retrying
		}

		if caughtUp {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(s.cfg.PollInterval.Duration):
			}
		}
	}
}

// nextBlock returns the first block the next chunk should start at.
func (s *Syncer) nextBlock() uint64 {
	cursor, found, err := loadCursor(s.db)
	if err != nil || !found {
		return s.sink.StartBlock()
	}

	return max(cursor+1, s.sink.StartBlock())
}

// step processes one chunk. It reports true when the cursor has reached the
// settled head and the loop should idle before polling again.
func (s *Syncer) step(ctx context.Context) (bool, error) {
	head, err := s.client.GetLatestBlockHeader(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to fetch chain head: %w", err)
	}

	headNum := head.Number.Uint64()
	if headNum < s.cfg.Confirmations {
		return true, nil
	}
	settled := headNum - s.cfg.Confirmations

	from := s.nextBlock()
	if from > settled {
		SyncLagSet(0)
		return true, nil
	}
	to := min(from+s.cfg.ChunkSize-1, settled)

	logs, err := s.client.GetLogs(ctx, ethereum.FilterQuery{
		FromBlock: new(big.Int).SetUint64(from),
		ToBlock:   new(big.Int).SetUint64(to),
		Addresses: s.addresses,
	})
	if err != nil {
		return false, fmt.Errorf("failed to fetch logs for blocks %d-%d: %w", from, to, err)
	}

	enveloped, err := s.attachTimestamps(ctx, logs)
	if err != nil {
		return false, err
	}

	if err := s.sink.HandleLogs(enveloped); err != nil {
		return false, fmt.Errorf("failed to handle logs for blocks %d-%d: %w", from, to, err)
	}

	if err := saveCursor(s.db, to); err != nil {
		return false, err
	}

	LogsFetchedAdd(len(logs))
	LastSyncedBlockSet(to)
	SyncLagSet(settled - to)
	s.log.Debugf("synced blocks %d-%d (%d logs, %d behind settled head)", from, to, len(logs), settled-to)

	return to == settled, nil
}

// attachTimestamps resolves the block timestamp of every log via one batched
// header fetch per distinct block.
func (s *Syncer) attachTimestamps(ctx context.Context, logs []types.Log) ([]indexer.Log, error) {
	if len(logs) == 0 {
		return nil, nil
	}

	seen := make(map[uint64]struct{})
	var blockNums []uint64
	for i := range logs {
		if _, ok := seen[logs[i].BlockNumber]; !ok {
			seen[logs[i].BlockNumber] = struct{}{}
			blockNums = append(blockNums, logs[i].BlockNumber)
		}
	}

	headers, err := s.client.BatchGetBlockHeaders(ctx, blockNums)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch block headers: %w", err)
	}

	timestamps := make(map[uint64]uint64, len(headers))
	for _, h := range headers {
		if h != nil {
			timestamps[h.Number.Uint64()] = h.Time
		}
	}

	enveloped := make([]indexer.Log, len(logs))
	for i := range logs {
		enveloped[i] = indexer.Log{
			Log:            logs[i],
			BlockTimestamp: timestamps[logs[i].BlockNumber],
		}
	}

	return enveloped, nil
}
