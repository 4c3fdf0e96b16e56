package db

import (
	"math/big"
	"path/filepath"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/russross/meddler"
	"github.com/stretchr/testify/require"

	"github.com/aegis-protocol/aegis-indexer/internal/logger"
)

type meddlerProbe struct {
	ID     int64           `meddler:"id,pk"`
	Wallet common.Address  `meddler:"wallet,address"`
	TxHash common.Hash     `meddler:"tx_hash,hash"`
	Amount *big.Int        `meddler:"amount,bigint"`
	MaybeW *common.Address `meddler:"maybe_wallet,address"`
}

const probeMigration = `-- +migrate Down
DROP TABLE IF EXISTS meddler_probe;

-- +migrate Up
CREATE TABLE meddler_probe (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    wallet TEXT NOT NULL,
    tx_hash TEXT NOT NULL,
    amount TEXT,
    maybe_wallet TEXT
);`

func TestMeddlersRoundTrip(t *testing.T) {
	t.Parallel()

	database, err := NewSQLiteDB(filepath.Join(t.TempDir(), "probe.sqlite"))
	require.NoError(t, err)
	defer database.Close()

	require.NoError(t, RunMigrations(logger.NewNopLogger(), database,
		[]Migration{{ID: "0001_probe", SQL: probeMigration}}))

	amount, ok := new(big.Int).SetString("340282366920938463463374607431768211456", 10)
	require.True(t, ok)

	in := &meddlerProbe{
		Wallet: common.HexToAddress("0x1111111111111111111111111111111111111111"),
		TxHash: common.HexToHash("0x2222222222222222222222222222222222222222222222222222222222222222"),
		Amount: amount,
	}
	require.NoError(t, meddler.Insert(database, "meddler_probe", in))

	out := &meddlerProbe{}
	require.NoError(t, meddler.QueryRow(database, out, "SELECT * FROM meddler_probe WHERE id = ?", in.ID))

	require.Equal(t, in.Wallet, out.Wallet)
	require.Equal(t, in.TxHash, out.TxHash)
	require.Zero(t, amount.Cmp(out.Amount))
	require.Nil(t, out.MaybeW)
}

func TestMeddlersNullableColumns(t *testing.T) {
	t.Parallel()

	database, err := NewSQLiteDB(filepath.Join(t.TempDir(), "probe.sqlite"))
	require.NoError(t, err)
	defer database.Close()

	require.NoError(t, RunMigrations(logger.NewNopLogger(), database,
		[]Migration{{ID: "0001_probe", SQL: probeMigration}}))

	wallet := common.HexToAddress("0x3333333333333333333333333333333333333333")
	in := &meddlerProbe{
		Wallet: wallet,
		TxHash: common.Hash{},
		Amount: nil,
		MaybeW: &wallet,
	}
	require.NoError(t, meddler.Insert(database, "meddler_probe", in))

	out := &meddlerProbe{}
	require.NoError(t, meddler.QueryRow(database, out, "SELECT * FROM meddler_probe WHERE id = ?", in.ID))

	require.Nil(t, out.Amount)
	require.NotNil(t, out.MaybeW)
	require.Equal(t, wallet, *out.MaybeW)
}

func TestRunMigrations_MissingSeparator(t *testing.T) {
	t.Parallel()

	database, err := NewSQLiteDB(filepath.Join(t.TempDir(), "probe.sqlite"))
	require.NoError(t, err)
	defer database.Close()

	err = RunMigrations(logger.NewNopLogger(), database,
		[]Migration{{ID: "0001_broken", SQL: "CREATE TABLE broken (id INTEGER);"}})
	require.ErrorContains(t, err, "missing")
}
