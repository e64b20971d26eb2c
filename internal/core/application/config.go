package application

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/tdex-signer/internal/core/application/device"
	"github.com/tdex-network/tdex-signer/internal/core/application/migration"
	"github.com/tdex-network/tdex-signer/internal/core/application/signatory"
	"github.com/tdex-network/tdex-signer/internal/core/ports"
	"github.com/tdex-network/tdex-signer/internal/infrastructure/device/ledger"
	"github.com/tdex-network/tdex-signer/internal/infrastructure/explorer"
	"github.com/tdex-network/tdex-signer/internal/infrastructure/keystore"
	signerrpc "github.com/tdex-network/tdex-signer/internal/infrastructure/signer-rpc"
	dbbadger "github.com/tdex-network/tdex-signer/internal/infrastructure/storage/db/badger"
	"github.com/tdex-network/tdex-signer/internal/infrastructure/storage/db/inmemory"
	"github.com/tdex-network/tdex-signer/pkg/stats"
	"github.com/tdex-network/tdex-signer/pkg/wallet"
)

const (
	DBBadger   = "badger"
	DBInMemory = "inmemory"
)

var (
	SupportedDBType = map[string]struct{}{
		DBBadger:   {},
		DBInMemory: {},
	}
)

// Explorer is the source of fees and balances.
type Explorer interface {
	ports.FeeOracle
	ports.BalanceProvider
}

type Config struct {
	DBType   string
	DBConfig interface{}

	SignerRPCAddr      string
	ExplorerOpts       explorer.Opts
	RetryPolicy        device.RetryPolicy
	RestoreConcurrency int
	RestoreRateLimit   int
	ScryptParams       *wallet.ScryptParams

	// DeviceTransport, Signer and Explorer replace the default adapters when
	// set.
	DeviceTransport ports.DeviceTransport
	Signer          ports.Signer
	Explorer        Explorer

	repo        ports.RepoManager
	credentials ports.CredentialStore
	link        *device.Link
	driver      *device.RetryDriver
	resolver    *signatory.Resolver
	wallet      WalletService
	restore     RestoreService
	transaction TransactionService
}

func (c *Config) Validate() error {
	if _, ok := SupportedDBType[c.DBType]; !ok {
		return fmt.Errorf("db type %q not supported", c.DBType)
	}
	if _, err := c.repoManager(); err != nil {
		return err
	}
	if _, err := c.signer(); err != nil {
		return err
	}
	if _, err := c.explorer(); err != nil {
		return err
	}
	if _, err := c.retryDriver(); err != nil {
		return err
	}
	return nil
}

// ValidateLocal checks only the components that do not reach remote
// services: the wallet store and the device driver.
func (c *Config) ValidateLocal() error {
	if _, err := c.repoManager(); err != nil {
		return err
	}
	if _, err := c.retryDriver(); err != nil {
		return err
	}
	return nil
}

func (c *Config) RepoManager() ports.RepoManager {
	svc, _ := c.repoManager()
	return svc
}

func (c *Config) WalletService() WalletService {
	svc, _ := c.walletService()
	return svc
}

func (c *Config) RestoreService() RestoreService {
	svc, _ := c.restoreService()
	return svc
}

func (c *Config) TransactionService() TransactionService {
	svc, _ := c.transactionService()
	return svc
}

func (c *Config) RetryDriver() *device.RetryDriver {
	driver, _ := c.retryDriver()
	return driver
}

// NewMigrator returns a fresh migrator for the given network.
func (c *Config) NewMigrator(network string) (*migration.Migrator, error) {
	repo, err := c.repoManager()
	if err != nil {
		return nil, err
	}
	signer, err := c.signer()
	if err != nil {
		return nil, err
	}
	explorerSvc, err := c.explorer()
	if err != nil {
		return nil, err
	}
	driver, err := c.retryDriver()
	if err != nil {
		return nil, err
	}
	builder, err := c.transactionService()
	if err != nil {
		return nil, err
	}

	return migration.NewMigrator(migration.Opts{
		Network:    network,
		Repository: repo.WalletRepository(),
		Builder:    builder,
		Signer:     signer,
		FeeOracle:  explorerSvc,
		Balances:   explorerSvc,
		Recipients: migration.NewLedgerRecipientResolver(
			c.deviceLink(), driver, signer,
		),
	})
}

func (c *Config) repoManager() (ports.RepoManager, error) {
	if c.repo == nil {
		switch c.DBType {
		case DBBadger:
			datadir, _ := c.DBConfig.(string)
			repoManager, err := dbbadger.NewRepoManager(datadir, log.New())
			if err != nil {
				return nil, err
			}
			c.repo = repoManager
		case DBInMemory:
			c.repo = inmemory.NewRepoManager()
		default:
			return nil, fmt.Errorf("db type %q not supported", c.DBType)
		}
	}
	return c.repo, nil
}

func (c *Config) credentialStore() ports.CredentialStore {
	if c.credentials == nil {
		c.credentials = keystore.NewCredentialStore(c.ScryptParams)
	}
	return c.credentials
}

func (c *Config) deviceLink() *device.Link {
	if c.link == nil {
		transport := c.DeviceTransport
		if transport == nil {
			transport = ledger.NewTransport(nil)
		}
		c.link = device.NewLink(transport)
	}
	return c.link
}

func (c *Config) retryDriver() (*device.RetryDriver, error) {
	if c.driver == nil {
		validator := device.NewAppAccessValidator(c.deviceLink(), nil)
		driver, err := device.NewRetryDriver(
			validator, c.RetryPolicy, func(a device.ConnectionAttempt) {
				stats.RecordConnectionAttempt(a.CoinID)
				log.WithFields(log.Fields{
					"coin":    a.CoinID,
					"path":    a.DerivationPath,
					"attempt": a.Number,
				}).Info("connecting to device")
			},
		)
		if err != nil {
			return nil, err
		}
		c.driver = driver
	}
	return c.driver, nil
}

func (c *Config) signer() (ports.Signer, error) {
	if c.Signer == nil {
		driver, err := c.retryDriver()
		if err != nil {
			return nil, err
		}
		signer, err := signerrpc.NewService(c.SignerRPCAddr, driver)
		if err != nil {
			return nil, err
		}
		c.Signer = signer
	}
	return c.Signer, nil
}

func (c *Config) explorer() (Explorer, error) {
	if c.Explorer == nil {
		svc, err := explorer.NewService(c.ExplorerOpts)
		if err != nil {
			return nil, err
		}
		c.Explorer = svc
	}
	return c.Explorer, nil
}

func (c *Config) signatoryResolver() (*signatory.Resolver, error) {
	if c.resolver == nil {
		driver, err := c.retryDriver()
		if err != nil {
			return nil, err
		}
		c.resolver = signatory.NewResolver(
			c.credentialStore(), c.deviceLink(), driver,
		)
	}
	return c.resolver, nil
}

func (c *Config) walletService() (WalletService, error) {
	if c.wallet == nil {
		repo, err := c.repoManager()
		if err != nil {
			return nil, err
		}
		wallet, err := NewWalletService(repo, c.credentialStore())
		if err != nil {
			return nil, err
		}
		c.wallet = wallet
	}
	return c.wallet, nil
}

func (c *Config) restoreService() (RestoreService, error) {
	if c.restore == nil {
		repo, err := c.repoManager()
		if err != nil {
			return nil, err
		}
		signer, err := c.signer()
		if err != nil {
			return nil, err
		}
		restore, err := NewRestoreService(
			repo, signer, c.RestoreConcurrency, c.RestoreRateLimit,
		)
		if err != nil {
			return nil, err
		}
		c.restore = restore
	}
	return c.restore, nil
}

func (c *Config) transactionService() (TransactionService, error) {
	if c.transaction == nil {
		signer, err := c.signer()
		if err != nil {
			return nil, err
		}
		resolver, err := c.signatoryResolver()
		if err != nil {
			return nil, err
		}
		c.transaction = NewTransactionService(signer, resolver)
	}
	return c.transaction, nil
}
