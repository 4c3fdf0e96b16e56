package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeTempConfig(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoadFromFile_YAML(t *testing.T) {
	t.Parallel()

	path := writeTempConfig(t, "config.yaml", `
sync:
  rpc_url: "http://localhost:8545"
  start_block: 12345
  poll_interval: "3s"
contracts:
  escrow: "0x1111111111111111111111111111111111111111"
  dispute: "0x2222222222222222222222222222222222222222"
db:
  path: "/tmp/aegis.sqlite"
logging:
  default_level: "debug"
  component_levels:
    syncer: "warn"
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	require.Equal(t, "http://localhost:8545", cfg.Sync.RPCURL)
	require.Equal(t, uint64(12345), cfg.Sync.StartBlock)
	require.Equal(t, 3*time.Second, cfg.Sync.PollInterval.Duration)
	require.Equal(t, uint64(5000), cfg.Sync.ChunkSize, "chunk size default applied")
	require.Equal(t, uint64(12), cfg.Sync.Confirmations, "confirmations default applied")
	require.Equal(t, "WAL", cfg.DB.JournalMode, "journal mode default applied")
	require.Equal(t, "debug", cfg.Logging.GetDefaultLevel())
	require.Len(t, cfg.Contracts.Addresses(), 2)
}

func TestLoadFromFile_JSON(t *testing.T) {
	t.Parallel()

	path := writeTempConfig(t, "config.json", `{
  "sync": {"rpc_url": "http://localhost:8545"},
  "contracts": {"escrow": "0x1111111111111111111111111111111111111111"},
  "db": {"path": "/tmp/aegis.sqlite"}
}`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	require.Equal(t, "http://localhost:8545", cfg.Sync.RPCURL)
}

func TestLoadFromFile_TOML(t *testing.T) {
	t.Parallel()

	path := writeTempConfig(t, "config.toml", `
[sync]
rpc_url = "http://localhost:8545"
poll_interval = "10s"

[contracts]
escrow = "0x1111111111111111111111111111111111111111"

[db]
path = "/tmp/aegis.sqlite"
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	require.Equal(t, 10*time.Second, cfg.Sync.PollInterval.Duration)
}

func TestLoadFromFile_UnsupportedExtension(t *testing.T) {
	t.Parallel()

	path := writeTempConfig(t, "config.ini", "rpc_url = x")

	_, err := LoadFromFile(path)
	require.ErrorContains(t, err, "unsupported config file format")
}

func TestLoadFromFile_MissingRPCURL(t *testing.T) {
	t.Parallel()

	path := writeTempConfig(t, "config.yaml", `
contracts:
  escrow: "0x1111111111111111111111111111111111111111"
db:
  path: "/tmp/aegis.sqlite"
`)

	_, err := LoadFromFile(path)
	require.ErrorContains(t, err, "sync.rpc_url is required")
}

func TestValidate_ContractAddresses(t *testing.T) {
	t.Parallel()

	cfg := &Config{
		Sync:      SyncConfig{RPCURL: "http://localhost:8545"},
		Contracts: ContractsConfig{Escrow: "not-an-address"},
		DB:        DatabaseConfig{Path: "/tmp/aegis.sqlite"},
	}
	cfg.ApplyDefaults()

	require.ErrorContains(t, cfg.Validate(), "contracts.escrow")

	cfg.Contracts.Escrow = ""
	require.ErrorContains(t, cfg.Validate(), "contracts.escrow is required")
}

func TestValidate_UnknownLoggingComponent(t *testing.T) {
	t.Parallel()

	cfg := &Config{
		Sync:      SyncConfig{RPCURL: "http://localhost:8545"},
		Contracts: ContractsConfig{Escrow: "0x1111111111111111111111111111111111111111"},
		DB:        DatabaseConfig{Path: "/tmp/aegis.sqlite"},
		Logging: &LoggingConfig{
			ComponentLevels: map[string]string{"gremlin": "debug"},
		},
	}
	cfg.ApplyDefaults()

	require.ErrorContains(t, cfg.Validate(), "unknown component")
}
