package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/spf13/viper"
	"github.com/tdex-network/tdex-signer/internal/core/application"
	"github.com/tdex-network/tdex-signer/internal/core/application/device"
	"github.com/tdex-network/tdex-signer/internal/core/domain"
	"github.com/tdex-network/tdex-signer/internal/infrastructure/explorer"
)

const (
	// LogLevelKey are the different logging levels. For reference on the values https://godoc.org/github.com/sirupsen/logrus#Level
	LogLevelKey = "LOG_LEVEL"
	// DatadirKey is the local data directory where wallets are stored
	DatadirKey = "DATADIR"
	// DBTypeKey is used to switch database type between those supported
	DBTypeKey = "DB_TYPE"
	// NetworkKey is the network of the wallets to migrate or restore, ie. ark.mainnet
	NetworkKey = "NETWORK"
	// SignerRPCAddrKey is the url of the remote signer JSON-RPC endpoint
	SignerRPCAddrKey = "SIGNER_RPC_ADDR"
	// ExplorerURLKey is the base url of the explorer providing fees and balances
	ExplorerURLKey = "EXPLORER_URL"
	// ExplorerRequestTimeoutKey is the timeout of every explorer request
	ExplorerRequestTimeoutKey = "EXPLORER_REQUEST_TIMEOUT"
	// ExplorerRateLimitKey is the max number of explorer requests per second
	ExplorerRateLimitKey = "EXPLORER_RATE_LIMIT"
	// RetryCountKey is the max number of device connection retries
	RetryCountKey = "RETRY_COUNT"
	// RetryFactorKey is the growth factor of the delay between retries
	RetryFactorKey = "RETRY_FACTOR"
	// RetryMinTimeoutKey is the delay before the first retry
	RetryMinTimeoutKey = "RETRY_MIN_TIMEOUT"
	// RetryMaxTimeoutKey caps the delay between retries
	RetryMaxTimeoutKey = "RETRY_MAX_TIMEOUT"
	// RetryRandomizeKey enables jitter on the delay between retries
	RetryRandomizeKey = "RETRY_RANDOMIZE"
	// RestoreConcurrencyKey is the number of wallets restored in parallel
	RestoreConcurrencyKey = "RESTORE_CONCURRENCY"
	// RestoreRateLimitKey is the max number of signer calls per second while restoring
	RestoreRateLimitKey = "RESTORE_RATE_LIMIT"
	// MetricsAddrKey is the address where prometheus metrics are served
	MetricsAddrKey = "METRICS_ADDR"
	// EnableMetricsKey enables the metrics endpoint
	EnableMetricsKey = "ENABLE_METRICS"

	DbLocation = "db"
)

var vip *viper.Viper
var defaultDatadir = btcutil.AppDataDir("tdex-signer", false)

func InitConfig() error {
	vip = viper.New()
	vip.SetEnvPrefix("SIGNER")
	vip.AutomaticEnv()

	retry := device.DefaultRetryPolicy()

	vip.SetDefault(LogLevelKey, 4)
	vip.SetDefault(DatadirKey, defaultDatadir)
	vip.SetDefault(DBTypeKey, application.DBBadger)
	vip.SetDefault(NetworkKey, "ark.mainnet")
	vip.SetDefault(ExplorerRequestTimeoutKey, explorer.DefaultRequestTimeout)
	vip.SetDefault(ExplorerRateLimitKey, 5)
	vip.SetDefault(RetryCountKey, retry.Retries)
	vip.SetDefault(RetryFactorKey, retry.Factor)
	vip.SetDefault(RetryMinTimeoutKey, retry.MinTimeout)
	vip.SetDefault(RetryMaxTimeoutKey, retry.MaxTimeout)
	vip.SetDefault(RetryRandomizeKey, retry.Randomize)
	vip.SetDefault(RestoreConcurrencyKey, 4)
	vip.SetDefault(RestoreRateLimitKey, 10)
	vip.SetDefault(MetricsAddrKey, ":9090")
	vip.SetDefault(EnableMetricsKey, false)

	if err := validate(); err != nil {
		return fmt.Errorf("error while validating config: %s", err)
	}

	if err := initDatadir(); err != nil {
		return fmt.Errorf("error while creating datadir: %s", err)
	}

	return nil
}

func GetString(key string) string {
	return vip.GetString(key)
}

func GetInt(key string) int {
	return vip.GetInt(key)
}

func GetFloat(key string) float64 {
	return vip.GetFloat64(key)
}

func GetDuration(key string) time.Duration {
	return vip.GetDuration(key)
}

func GetBool(key string) bool {
	return vip.GetBool(key)
}

func GetDatadir() string {
	return GetString(DatadirKey)
}

// Set overrides the value of the given key, used by cli flags.
func Set(key string, value interface{}) {
	vip.Set(key, value)
}

// GetRetryPolicy returns the device connection retry policy.
func GetRetryPolicy() device.RetryPolicy {
	return device.RetryPolicy{
		Retries:    GetInt(RetryCountKey),
		Factor:     GetFloat(RetryFactorKey),
		Randomize:  GetBool(RetryRandomizeKey),
		MinTimeout: GetDuration(RetryMinTimeoutKey),
		MaxTimeout: GetDuration(RetryMaxTimeoutKey),
	}
}

// GetAppConfig returns the application config built from the current values.
func GetAppConfig() *application.Config {
	var dbConfig interface{}
	if GetString(DBTypeKey) == application.DBBadger {
		dbConfig = filepath.Join(GetDatadir(), DbLocation)
	}

	return &application.Config{
		DBType:        GetString(DBTypeKey),
		DBConfig:      dbConfig,
		SignerRPCAddr: GetString(SignerRPCAddrKey),
		ExplorerOpts: explorer.Opts{
			URL:            GetString(ExplorerURLKey),
			RequestTimeout: GetDuration(ExplorerRequestTimeoutKey),
			RateLimit:      GetInt(ExplorerRateLimitKey),
		},
		RetryPolicy:        GetRetryPolicy(),
		RestoreConcurrency: GetInt(RestoreConcurrencyKey),
		RestoreRateLimit:   GetInt(RestoreRateLimitKey),
	}
}

func validate() error {
	datadir := GetString(DatadirKey)
	if len(datadir) <= 0 {
		return fmt.Errorf("missing datadir")
	}

	dbType := GetString(DBTypeKey)
	if _, ok := application.SupportedDBType[dbType]; !ok {
		return fmt.Errorf("db type %q not supported", dbType)
	}

	if _, err := domain.CoinFromNetwork(GetString(NetworkKey)); err != nil {
		return fmt.Errorf("%s: %s", NetworkKey, err)
	}

	if GetInt(RestoreConcurrencyKey) <= 0 {
		return fmt.Errorf("%s must be a positive number", RestoreConcurrencyKey)
	}
	if GetInt(RestoreRateLimitKey) < 0 || GetInt(ExplorerRateLimitKey) < 0 {
		return fmt.Errorf("rate limits must not be negative")
	}

	if err := GetRetryPolicy().Validate(); err != nil {
		return err
	}

	return nil
}

func initDatadir() error {
	if GetString(DBTypeKey) != application.DBBadger {
		return nil
	}
	return makeDirectoryIfNotExists(filepath.Join(GetDatadir(), DbLocation))
}

func makeDirectoryIfNotExists(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return os.MkdirAll(path, os.ModeDir|0755)
	}
	return nil
}
