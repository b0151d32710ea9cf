package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/feral-file/ionic-indexer/internal/domain"
)

// Content scheduler kinds
const (
	SchedulerPool     = "pool"
	SchedulerTemporal = "temporal"
)

// BaseConfig holds base configuration
type BaseConfig struct {
	Debug     bool   `mapstructure:"debug"`
	SentryDSN string `mapstructure:"sentry_dsn"`
}

// URIConfig holds URI resolver configuration
type URIConfig struct {
	IPFSGateways []string `mapstructure:"ipfs_gateways"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver"` // postgres or sqlite
	Path            string        `mapstructure:"path"`   // sqlite file, ":memory:" for an in-process database
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`     // Maximum number of open connections to the database
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`     // Maximum number of idle connections in the pool
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`  // Maximum amount of time a connection may be reused (e.g., "5m", "1h")
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"` // Maximum amount of time a connection may be idle (e.g., "10m", "30m")
}

// NATSConfig holds NATS JetStream configuration
type NATSConfig struct {
	URL             string        `mapstructure:"url"`
	StreamName      string        `mapstructure:"stream_name"`
	ConsumerName    string        `mapstructure:"consumer_name"`
	MaxReconnects   int           `mapstructure:"max_reconnects"`
	ReconnectWait   time.Duration `mapstructure:"reconnect_wait"`
	ConnectionName  string        `mapstructure:"connection_name"`
	AckWait         time.Duration `mapstructure:"ack_wait"`
	MaxDeliver      int           `mapstructure:"max_deliver"`
	MaxAge          time.Duration `mapstructure:"max_age"`
	DuplicateWindow time.Duration `mapstructure:"duplicate_window"`
}

// EthereumConfig holds Ethereum-specific configuration
type EthereumConfig struct {
	WebSocketURL         string        `mapstructure:"websocket_url"`
	RPCURL               string        `mapstructure:"rpc_url"`
	ChainID              domain.Chain  `mapstructure:"chain_id"`
	StartBlock           uint64        `mapstructure:"start_block"`
	BackfillStep         uint64        `mapstructure:"backfill_step"`
	BlockHeadTTL         time.Duration `mapstructure:"block_head_ttl"`
	BlockHeadStaleWindow time.Duration `mapstructure:"block_head_stale_window"`
	TimestampCacheSize   int           `mapstructure:"timestamp_cache_size"`
}

// ContractsConfig holds the deployed address of every followed contract
type ContractsConfig struct {
	Appraisals    string `mapstructure:"appraisals"`
	Conductors    string `mapstructure:"conductors"`
	Designers     string `mapstructure:"designers"`
	ReactionPacks string `mapstructure:"reaction_packs"`
	NFT           string `mapstructure:"nft"`
	AccessControl string `mapstructure:"access_control"`
}

// Addresses returns the configured addresses by contract kind, skipping empty ones
func (c ContractsConfig) Addresses() map[domain.ContractKind]string {
	all := map[domain.ContractKind]string{
		domain.ContractAppraisals:    c.Appraisals,
		domain.ContractConductors:    c.Conductors,
		domain.ContractDesigners:     c.Designers,
		domain.ContractReactionPacks: c.ReactionPacks,
		domain.ContractNFT:           c.NFT,
		domain.ContractAccessControl: c.AccessControl,
	}
	addresses := make(map[domain.ContractKind]string, len(all))
	for kind, address := range all {
		if address = strings.TrimSpace(address); address != "" {
			addresses[kind] = address
		}
	}
	return addresses
}

// TemporalConfig holds Temporal configuration
type TemporalConfig struct {
	HostPort                           string        `mapstructure:"host_port"`
	Namespace                          string        `mapstructure:"namespace"`
	ContentTaskQueue                   string        `mapstructure:"content_task_queue"`
	WorkflowRunTimeout                 time.Duration `mapstructure:"workflow_run_timeout"`
	MaxConcurrentActivityExecutionSize int           `mapstructure:"max_concurrent_activity_execution_size"`
	WorkerActivitiesPerSecond          float64       `mapstructure:"worker_activities_per_second"`
	MaxConcurrentActivityTaskPollers   int           `mapstructure:"max_concurrent_activity_task_pollers"`
}

// ContentConfig holds content resolution configuration
type ContentConfig struct {
	Scheduler   string `mapstructure:"scheduler"` // pool or temporal
	Concurrency int    `mapstructure:"concurrency"`

	// LegacyBaseDescription copies the title into the description of base metadata
	LegacyBaseDescription bool `mapstructure:"legacy_base_description"`

	HTTPTimeout     time.Duration `mapstructure:"http_timeout"`
	MaxFetchElapsed time.Duration `mapstructure:"max_fetch_elapsed"`
	ActivityTimeout time.Duration `mapstructure:"activity_timeout"`
	MaximumAttempts int32         `mapstructure:"maximum_attempts"`

	// Requests per second allowed to each IPFS gateway, zero disables pacing
	GatewayRequestsPerSecond float64 `mapstructure:"gateway_requests_per_second"`
	GatewayBurst             int     `mapstructure:"gateway_burst"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	ReadTimeout  int    `mapstructure:"read_timeout"`  // in seconds
	WriteTimeout int    `mapstructure:"write_timeout"` // in seconds
	IdleTimeout  int    `mapstructure:"idle_timeout"`  // in seconds
}

// CursorConfig controls how often the emitter persists its block cursor
type CursorConfig struct {
	SaveFreq  uint64        `mapstructure:"save_freq"`
	SaveDelay time.Duration `mapstructure:"save_delay"`
}

// EmitterConfig holds configuration for ionic-event-emitter
type EmitterConfig struct {
	BaseConfig `mapstructure:",squash"`
	Database   DatabaseConfig  `mapstructure:"database"`
	NATS       NATSConfig      `mapstructure:"nats"`
	Ethereum   EthereumConfig  `mapstructure:"ethereum"`
	Contracts  ContractsConfig `mapstructure:"contracts"`
	Cursor     CursorConfig    `mapstructure:"cursor"`
}

// WorkerConfig holds configuration for ionic-worker
type WorkerConfig struct {
	BaseConfig `mapstructure:",squash"`
	Server     ServerConfig    `mapstructure:"server"`
	Database   DatabaseConfig  `mapstructure:"database"`
	NATS       NATSConfig      `mapstructure:"nats"`
	Ethereum   EthereumConfig  `mapstructure:"ethereum"`
	Contracts  ContractsConfig `mapstructure:"contracts"`
	Temporal   TemporalConfig  `mapstructure:"temporal"`
	URI        URIConfig       `mapstructure:"uri"`
	Content    ContentConfig   `mapstructure:"content"`
}

// ContentWorkerConfig holds configuration for ionic-content-worker
type ContentWorkerConfig struct {
	BaseConfig `mapstructure:",squash"`
	Database   DatabaseConfig `mapstructure:"database"`
	Temporal   TemporalConfig `mapstructure:"temporal"`
	URI        URIConfig      `mapstructure:"uri"`
	Content    ContentConfig  `mapstructure:"content"`
}

// LoadEmitterConfig loads configuration for ionic-event-emitter
func LoadEmitterConfig(configFile string, envPath string) (*EmitterConfig, error) {
	v := configureViper("ionic-event-emitter", configFile, envPath)

	setDatabaseDefaults(v)
	setNATSDefaults(v)
	setEthereumDefaults(v)
	v.SetDefault("nats.connection_name", "ionic-event-emitter")
	v.SetDefault("cursor.save_freq", 10)
	v.SetDefault("cursor.save_delay", "5s")

	var config EmitterConfig
	if err := load(v, &config); err != nil {
		return nil, err
	}

	if !domain.IsValidChain(config.Ethereum.ChainID) {
		return nil, fmt.Errorf("unsupported chain id %q", config.Ethereum.ChainID)
	}
	if len(config.Contracts.Addresses()) == 0 {
		return nil, errors.New("at least one contract address is required")
	}

	return &config, nil
}

// LoadWorkerConfig loads configuration for ionic-worker
func LoadWorkerConfig(configFile string, envPath string) (*WorkerConfig, error) {
	v := configureViper("ionic-worker", configFile, envPath)

	setDatabaseDefaults(v)
	setNATSDefaults(v)
	setEthereumDefaults(v)
	setTemporalDefaults(v)
	setContentDefaults(v)
	v.SetDefault("nats.consumer_name", "ionic-worker")
	v.SetDefault("nats.connection_name", "ionic-worker")
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 10)
	v.SetDefault("server.idle_timeout", 120)

	var config WorkerConfig
	if err := load(v, &config); err != nil {
		return nil, err
	}

	if !domain.IsValidChain(config.Ethereum.ChainID) {
		return nil, fmt.Errorf("unsupported chain id %q", config.Ethereum.ChainID)
	}
	if err := validateContent(config.Content); err != nil {
		return nil, err
	}

	return &config, nil
}

// LoadContentWorkerConfig loads configuration for ionic-content-worker
func LoadContentWorkerConfig(configFile string, envPath string) (*ContentWorkerConfig, error) {
	v := configureViper("ionic-content-worker", configFile, envPath)

	setDatabaseDefaults(v)
	setTemporalDefaults(v)
	setContentDefaults(v)
	v.SetDefault("content.scheduler", SchedulerTemporal)

	var config ContentWorkerConfig
	if err := load(v, &config); err != nil {
		return nil, err
	}

	if err := validateContent(config.Content); err != nil {
		return nil, err
	}

	return &config, nil
}

func setDatabaseDefaults(v *viper.Viper) {
	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
}

func setNATSDefaults(v *viper.Viper) {
	v.SetDefault("nats.max_reconnects", 10)
	v.SetDefault("nats.reconnect_wait", "2s")
	v.SetDefault("nats.stream_name", "IONIC_EVENTS")
	v.SetDefault("nats.ack_wait", "30s")
	v.SetDefault("nats.max_deliver", -1)
	v.SetDefault("nats.duplicate_window", "2m")
}

func setEthereumDefaults(v *viper.Viper) {
	v.SetDefault("ethereum.chain_id", string(domain.ChainEthereumMainnet))
	v.SetDefault("ethereum.backfill_step", 5000)
	v.SetDefault("ethereum.block_head_ttl", "12s")
	v.SetDefault("ethereum.block_head_stale_window", "60s")
	v.SetDefault("ethereum.timestamp_cache_size", 4096)
}

func setTemporalDefaults(v *viper.Viper) {
	v.SetDefault("temporal.host_port", "localhost:7233")
	v.SetDefault("temporal.namespace", "default")
	v.SetDefault("temporal.content_task_queue", "ionic-content")
	v.SetDefault("temporal.workflow_run_timeout", "30m")
	v.SetDefault("temporal.max_concurrent_activity_execution_size", 20)
	v.SetDefault("temporal.worker_activities_per_second", 20)
	v.SetDefault("temporal.max_concurrent_activity_task_pollers", 4)
}

func setContentDefaults(v *viper.Viper) {
	v.SetDefault("content.scheduler", SchedulerPool)
	v.SetDefault("content.concurrency", 4)
	v.SetDefault("content.legacy_base_description", true)
	v.SetDefault("content.http_timeout", "30s")
	v.SetDefault("content.max_fetch_elapsed", "2m")
	v.SetDefault("content.activity_timeout", "5m")
	v.SetDefault("content.gateway_requests_per_second", 10)
	v.SetDefault("content.gateway_burst", 20)
	v.SetDefault("uri.ipfs_gateways", []string{domain.DEFAULT_IPFS_GATEWAY})
}

func validateContent(c ContentConfig) error {
	switch c.Scheduler {
	case SchedulerPool, SchedulerTemporal:
		return nil
	default:
		return fmt.Errorf("unknown content scheduler %q", c.Scheduler)
	}
}

// load reads the config file, when there is one, and unmarshals into out
func load(v *viper.Viper, out interface{}) error {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found, use environment variables
	}

	if err := v.Unmarshal(out); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return nil
}

// configureViper returns a viper instance with the config file and environment variables set
func configureViper(service string, configFile string, envPath string) *viper.Viper {
	v := viper.New()

	// Load environment variables
	loadEnv(envPath, service)

	// Set config file
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		// Search for config.yaml in multiple locations:
		// 1. Current directory
		v.AddConfigPath(".")
		// 2. Service-specific directory (e.g., cmd/ionic-worker/)
		v.AddConfigPath(fmt.Sprintf("cmd/%s/", service))
		// 3. Config directory
		v.AddConfigPath("config/")
	}

	// Set environment variables
	v.SetEnvPrefix("IONIC_INDEXER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Explicitly bind all environment variables
	bindAllEnvVars(v)
	return v
}

// bindAllEnvVars explicitly binds all possible environment variables
// This is required for viper to map env vars to config struct fields when no config file exists
func bindAllEnvVars(v *viper.Viper) {
	keys := []string{
		"debug",
		"sentry_dsn",
		// Database
		"database.driver",
		"database.path",
		"database.host",
		"database.port",
		"database.user",
		"database.password",
		"database.dbname",
		"database.sslmode",
		"database.max_open_conns",
		"database.max_idle_conns",
		"database.conn_max_lifetime",
		"database.conn_max_idle_time",
		// NATS
		"nats.url",
		"nats.stream_name",
		"nats.consumer_name",
		"nats.max_reconnects",
		"nats.reconnect_wait",
		"nats.connection_name",
		"nats.ack_wait",
		"nats.max_deliver",
		"nats.max_age",
		"nats.duplicate_window",
		// Ethereum
		"ethereum.websocket_url",
		"ethereum.rpc_url",
		"ethereum.chain_id",
		"ethereum.start_block",
		"ethereum.backfill_step",
		"ethereum.block_head_ttl",
		"ethereum.block_head_stale_window",
		"ethereum.timestamp_cache_size",
		// Contracts
		"contracts.appraisals",
		"contracts.conductors",
		"contracts.designers",
		"contracts.reaction_packs",
		"contracts.nft",
		"contracts.access_control",
		// Temporal
		"temporal.host_port",
		"temporal.namespace",
		"temporal.content_task_queue",
		"temporal.workflow_run_timeout",
		"temporal.max_concurrent_activity_execution_size",
		"temporal.worker_activities_per_second",
		"temporal.max_concurrent_activity_task_pollers",
		// Content
		"content.scheduler",
		"content.concurrency",
		"content.legacy_base_description",
		"content.http_timeout",
		"content.max_fetch_elapsed",
		"content.activity_timeout",
		"content.maximum_attempts",
		"content.gateway_requests_per_second",
		"content.gateway_burst",
		// URI
		"uri.ipfs_gateways",
		// Server
		"server.host",
		"server.port",
		"server.read_timeout",
		"server.write_timeout",
		"server.idle_timeout",
		// Emitter cursor
		"cursor.save_freq",
		"cursor.save_delay",
	}

	for _, key := range keys {
		_ = v.BindEnv(key)
	}
}

// loadEnv loads environment variables from the config directory
func loadEnv(envPath string, service string) {
	// Always try shared base first, then local, then optional per-service local.
	envFiles := []string{".env", ".env.local"}
	if service != "" {
		envFiles = append(envFiles, ".env."+service+".local")
	}

	// Default to config directory
	if envPath == "" {
		envPath = "config/"
	}

	for _, envFile := range envFiles {
		candidate := filepath.Join(envPath, envFile)
		_ = godotenv.Overload(candidate) // Overload lets later files override earlier ones
	}
}

// ChdirRepoRoot changes the current working directory to the repository root
func ChdirRepoRoot() {
	cwd, _ := os.Getwd()
	for range 5 {
		if _, err := os.Stat(filepath.Join(cwd, "config")); err == nil {
			_ = os.Chdir(cwd)
			return
		}
		cwd = filepath.Dir(cwd)
	}
}

// DSN returns the database connection string: a postgres keyword string or
// the sqlite path
func (c *DatabaseConfig) DSN() string {
	if c.Driver == "sqlite" {
		if c.Path == "" {
			return ":memory:"
		}
		return c.Path
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}
