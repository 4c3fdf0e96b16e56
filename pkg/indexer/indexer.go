// Package indexer defines the contract between the chain syncer and the
// components that consume logs.
package indexer

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// Log is a raw chain log together with the timestamp of its containing block.
// Handlers need the block time for daily aggregates, and eth_getLogs does not
// carry it, so the syncer resolves and attaches it.
type Log struct {
	types.Log

	// BlockTimestamp is the Unix timestamp of the block that contains the log.
	BlockTimestamp uint64
}

// Indexer receives settled logs from the syncer and handles reorganizations.
type Indexer interface {
	// AddressesToIndex returns the set of contract addresses whose logs this
	// indexer wants to receive.
	AddressesToIndex() map[common.Address]struct{}

	// HandleLogs processes a batch of logs in chain order. Implementations
	// decode and persist the relevant events. The batch is atomic: either all
	// of its effects are applied or the error rolls the batch back.
	HandleLogs(logs []Log) error

	// HandleReorg rolls back any data persisted at or after the given block.
	HandleReorg(blockNum uint64) error

	// StartBlock returns the block number from which this indexer wants to
	// start processing logs.
	StartBlock() uint64
}
