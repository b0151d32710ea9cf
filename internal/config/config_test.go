package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ionic-indexer/internal/domain"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	tmpDir := t.TempDir()
	if content == "" {
		return filepath.Join(tmpDir, "nonexistent.yaml")
	}
	configFile := filepath.Join(tmpDir, "config.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte(content), 0600))
	return configFile
}

func TestLoadEmitterConfig(t *testing.T) {
	tests := []struct {
		name        string
		configFile  string
		expectError bool
		validate    func(*testing.T, *EmitterConfig)
	}{
		{
			name: "valid config file",
			configFile: `
debug: true
sentry_dsn: "https://sentry.example.com"
database:
  host: localhost
  port: 5432
  user: testuser
  password: testpass
  dbname: testdb
  sslmode: require
nats:
  url: "nats://localhost:4222"
  stream_name: "TEST_STREAM"
  max_reconnects: 5
  reconnect_wait: "5s"
  max_age: "168h"
ethereum:
  websocket_url: "ws://localhost:8545"
  rpc_url: "http://localhost:8545"
  chain_id: "eip155:11155111"
  start_block: 1000
  backfill_step: 200
contracts:
  appraisals: "0x00000000000000000000000000000000000000a1"
  conductors: "0x00000000000000000000000000000000000000c1"
cursor:
  save_freq: 3
  save_delay: "1s"
`,
			validate: func(t *testing.T, cfg *EmitterConfig) {
				assert.True(t, cfg.Debug)
				assert.Equal(t, "https://sentry.example.com", cfg.SentryDSN)
				assert.Equal(t, "localhost", cfg.Database.Host)
				assert.Equal(t, "testuser", cfg.Database.User)
				assert.Equal(t, "require", cfg.Database.SSLMode)
				assert.Equal(t, "nats://localhost:4222", cfg.NATS.URL)
				assert.Equal(t, "TEST_STREAM", cfg.NATS.StreamName)
				assert.Equal(t, 5, cfg.NATS.MaxReconnects)
				assert.Equal(t, 5*time.Second, cfg.NATS.ReconnectWait)
				assert.Equal(t, 168*time.Hour, cfg.NATS.MaxAge)
				assert.Equal(t, domain.ChainEthereumSepolia, cfg.Ethereum.ChainID)
				assert.Equal(t, uint64(1000), cfg.Ethereum.StartBlock)
				assert.Equal(t, uint64(200), cfg.Ethereum.BackfillStep)
				assert.Equal(t, uint64(3), cfg.Cursor.SaveFreq)
				assert.Equal(t, time.Second, cfg.Cursor.SaveDelay)
				assert.Equal(t, map[domain.ContractKind]string{
					domain.ContractAppraisals: "0x00000000000000000000000000000000000000a1",
					domain.ContractConductors: "0x00000000000000000000000000000000000000c1",
				}, cfg.Contracts.Addresses())
			},
		},
		{
			name: "config with defaults",
			configFile: `
nats:
  url: "nats://localhost:4222"
ethereum:
  websocket_url: "ws://localhost:8545"
contracts:
  designers: "0x00000000000000000000000000000000000000d1"
`,
			validate: func(t *testing.T, cfg *EmitterConfig) {
				assert.Equal(t, "postgres", cfg.Database.Driver)
				assert.Equal(t, 5432, cfg.Database.Port)
				assert.Equal(t, "disable", cfg.Database.SSLMode)
				assert.Equal(t, 10, cfg.NATS.MaxReconnects)
				assert.Equal(t, "2s", cfg.NATS.ReconnectWait.String())
				assert.Equal(t, "IONIC_EVENTS", cfg.NATS.StreamName)
				assert.Equal(t, "ionic-event-emitter", cfg.NATS.ConnectionName)
				assert.Equal(t, 2*time.Minute, cfg.NATS.DuplicateWindow)
				assert.Equal(t, domain.ChainEthereumMainnet, cfg.Ethereum.ChainID)
				assert.Equal(t, uint64(5000), cfg.Ethereum.BackfillStep)
				assert.Equal(t, 12*time.Second, cfg.Ethereum.BlockHeadTTL)
				assert.Equal(t, 4096, cfg.Ethereum.TimestampCacheSize)
				assert.Equal(t, uint64(10), cfg.Cursor.SaveFreq)
				assert.Equal(t, 5*time.Second, cfg.Cursor.SaveDelay)
			},
		},
		{
			name:        "missing config file has no contracts",
			configFile:  "",
			expectError: true,
		},
		{
			name: "unsupported chain",
			configFile: `
ethereum:
  chain_id: "tezos:mainnet"
contracts:
  designers: "0x00000000000000000000000000000000000000d1"
`,
			expectError: true,
		},
		{
			name: "invalid yaml",
			configFile: `
				database:
				  host: localhost
				  port: invalid
			`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadEmitterConfig(writeConfig(t, tt.configFile), t.TempDir())

			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, cfg)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, cfg)
			tt.validate(t, cfg)
		})
	}
}

func TestLoadWorkerConfig(t *testing.T) {
	tests := []struct {
		name        string
		configFile  string
		expectError bool
		validate    func(*testing.T, *WorkerConfig)
	}{
		{
			name: "valid config file",
			configFile: `
server:
  host: "127.0.0.1"
  port: 9090
database:
  driver: sqlite
  path: "/var/lib/ionic/ionic.db"
nats:
  url: "nats://localhost:4222"
  consumer_name: "test-consumer"
  ack_wait: "1m"
  max_deliver: 5
ethereum:
  rpc_url: "http://localhost:8545"
contracts:
  appraisals: "0x00000000000000000000000000000000000000a1"
  reaction_packs: "0x00000000000000000000000000000000000000e1"
temporal:
  host_port: "temporal:7233"
  content_task_queue: "content"
uri:
  ipfs_gateways:
    - "https://gateway.one"
    - "https://gateway.two"
content:
  scheduler: temporal
  concurrency: 8
  legacy_base_description: false
  http_timeout: "10s"
  maximum_attempts: 3
  gateway_requests_per_second: 2.5
  gateway_burst: 5
`,
			validate: func(t *testing.T, cfg *WorkerConfig) {
				assert.Equal(t, "127.0.0.1", cfg.Server.Host)
				assert.Equal(t, 9090, cfg.Server.Port)
				assert.Equal(t, "sqlite", cfg.Database.Driver)
				assert.Equal(t, "/var/lib/ionic/ionic.db", cfg.Database.DSN())
				assert.Equal(t, "test-consumer", cfg.NATS.ConsumerName)
				assert.Equal(t, time.Minute, cfg.NATS.AckWait)
				assert.Equal(t, 5, cfg.NATS.MaxDeliver)
				assert.Equal(t, "http://localhost:8545", cfg.Ethereum.RPCURL)
				assert.Len(t, cfg.Contracts.Addresses(), 2)
				assert.Equal(t, "temporal:7233", cfg.Temporal.HostPort)
				assert.Equal(t, "content", cfg.Temporal.ContentTaskQueue)
				assert.Equal(t, []string{"https://gateway.one", "https://gateway.two"}, cfg.URI.IPFSGateways)
				assert.Equal(t, SchedulerTemporal, cfg.Content.Scheduler)
				assert.Equal(t, 8, cfg.Content.Concurrency)
				assert.False(t, cfg.Content.LegacyBaseDescription)
				assert.Equal(t, 10*time.Second, cfg.Content.HTTPTimeout)
				assert.Equal(t, int32(3), cfg.Content.MaximumAttempts)
				assert.Equal(t, 2.5, cfg.Content.GatewayRequestsPerSecond)
				assert.Equal(t, 5, cfg.Content.GatewayBurst)
			},
		},
		{
			name:       "missing config file uses defaults",
			configFile: "",
			validate: func(t *testing.T, cfg *WorkerConfig) {
				assert.Equal(t, "0.0.0.0", cfg.Server.Host)
				assert.Equal(t, 8080, cfg.Server.Port)
				assert.Equal(t, 120, cfg.Server.IdleTimeout)
				assert.Equal(t, "ionic-worker", cfg.NATS.ConsumerName)
				assert.Equal(t, 30*time.Second, cfg.NATS.AckWait)
				assert.Equal(t, -1, cfg.NATS.MaxDeliver)
				assert.Equal(t, "localhost:7233", cfg.Temporal.HostPort)
				assert.Equal(t, "default", cfg.Temporal.Namespace)
				assert.Equal(t, "ionic-content", cfg.Temporal.ContentTaskQueue)
				assert.Equal(t, 30*time.Minute, cfg.Temporal.WorkflowRunTimeout)
				assert.Equal(t, []string{domain.DEFAULT_IPFS_GATEWAY}, cfg.URI.IPFSGateways)
				assert.Equal(t, SchedulerPool, cfg.Content.Scheduler)
				assert.Equal(t, 4, cfg.Content.Concurrency)
				assert.True(t, cfg.Content.LegacyBaseDescription)
				assert.Equal(t, 2*time.Minute, cfg.Content.MaxFetchElapsed)
				assert.Equal(t, 5*time.Minute, cfg.Content.ActivityTimeout)
				assert.Equal(t, 10.0, cfg.Content.GatewayRequestsPerSecond)
				assert.Equal(t, 20, cfg.Content.GatewayBurst)
			},
		},
		{
			name: "unknown scheduler",
			configFile: `
content:
  scheduler: cron
`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadWorkerConfig(writeConfig(t, tt.configFile), t.TempDir())

			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, cfg)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, cfg)
			tt.validate(t, cfg)
		})
	}
}

func TestLoadContentWorkerConfig(t *testing.T) {
	configFile := writeConfig(t, `
temporal:
  namespace: "ionic"
  max_concurrent_activity_execution_size: 50
  worker_activities_per_second: 12.5
`)

	cfg, err := LoadContentWorkerConfig(configFile, t.TempDir())
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "ionic", cfg.Temporal.Namespace)
	assert.Equal(t, 50, cfg.Temporal.MaxConcurrentActivityExecutionSize)
	assert.Equal(t, 12.5, cfg.Temporal.WorkerActivitiesPerSecond)
	assert.Equal(t, 4, cfg.Temporal.MaxConcurrentActivityTaskPollers)
	assert.Equal(t, SchedulerTemporal, cfg.Content.Scheduler)
	assert.True(t, cfg.Content.LegacyBaseDescription)
}

func TestContractsConfig_Addresses(t *testing.T) {
	cfg := ContractsConfig{
		Appraisals:    "0xa1",
		Conductors:    "  ",
		NFT:           " 0xb1 ",
		AccessControl: "0xc1",
	}

	assert.Equal(t, map[domain.ContractKind]string{
		domain.ContractAppraisals:    "0xa1",
		domain.ContractNFT:           "0xb1",
		domain.ContractAccessControl: "0xc1",
	}, cfg.Addresses())
	assert.Empty(t, ContractsConfig{}.Addresses())
}

func TestDatabaseConfig_DSN(t *testing.T) {
	tests := []struct {
		name     string
		config   DatabaseConfig
		expected string
	}{
		{
			name: "complete config",
			config: DatabaseConfig{
				Host:     "localhost",
				Port:     5432,
				User:     "testuser",
				Password: "testpass",
				DBName:   "testdb",
				SSLMode:  "require",
			},
			expected: "host=localhost port=5432 user=testuser password=testpass dbname=testdb sslmode=require",
		},
		{
			name: "with special characters in password",
			config: DatabaseConfig{
				Driver:   "postgres",
				Host:     "localhost",
				Port:     5432,
				User:     "testuser",
				Password: "p@ssw0rd!",
				DBName:   "testdb",
				SSLMode:  "disable",
			},
			expected: "host=localhost port=5432 user=testuser password=p@ssw0rd! dbname=testdb sslmode=disable",
		},
		{
			name:     "sqlite file",
			config:   DatabaseConfig{Driver: "sqlite", Path: "/tmp/ionic.db"},
			expected: "/tmp/ionic.db",
		},
		{
			name:     "sqlite in memory",
			config:   DatabaseConfig{Driver: "sqlite"},
			expected: ":memory:",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.config.DSN())
		})
	}
}

func TestConfigWithEnvironmentVariables(t *testing.T) {
	tmpDir := t.TempDir()

	envDir := filepath.Join(tmpDir, "env")
	require.NoError(t, os.MkdirAll(envDir, 0750))

	// godotenv.Overload sets process environment variables, so unset them afterwards
	envVars := map[string]string{
		"IONIC_INDEXER_DEBUG":                     "true",
		"IONIC_INDEXER_DATABASE_HOST":             "env-host",
		"IONIC_INDEXER_DATABASE_PORT":             "3306",
		"IONIC_INDEXER_DATABASE_USER":             "env-user",
		"IONIC_INDEXER_CONTENT_CONCURRENCY":       "16",
		"IONIC_INDEXER_TEMPORAL_HOST_PORT":        "env-temporal:7233",
		"IONIC_INDEXER_CONTENT_HTTP_TIMEOUT":      "45s",
		"IONIC_INDEXER_CONTENT_MAX_FETCH_ELAPSED": "3m",
	}
	var envContent string
	for key, value := range envVars {
		envContent += key + "=" + value + "\n"
		t.Cleanup(func() { _ = os.Unsetenv(key) })
	}
	require.NoError(t, os.WriteFile(filepath.Join(envDir, ".env"), []byte(envContent), 0600))

	// Per-service local overrides win over the shared file
	require.NoError(t, os.WriteFile(
		filepath.Join(envDir, ".env.ionic-content-worker.local"),
		[]byte("IONIC_INDEXER_DATABASE_USER=local-user\n"), 0600))

	configPath := filepath.Join(tmpDir, "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(`
debug: false
database:
  host: file-host
  port: 5432
  user: file-user
content:
  concurrency: 2
`), 0600))

	cfg, err := LoadContentWorkerConfig(configPath, envDir)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.True(t, cfg.Debug)
	assert.Equal(t, "env-host", cfg.Database.Host)
	assert.Equal(t, 3306, cfg.Database.Port)
	assert.Equal(t, "local-user", cfg.Database.User)
	assert.Equal(t, 16, cfg.Content.Concurrency)
	assert.Equal(t, "env-temporal:7233", cfg.Temporal.HostPort)
	assert.Equal(t, 45*time.Second, cfg.Content.HTTPTimeout)
	assert.Equal(t, 3*time.Minute, cfg.Content.MaxFetchElapsed)
}
