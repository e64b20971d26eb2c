package wallet

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/tdex-signer/internal/core/domain"
	"github.com/tdex-network/tdex-signer/internal/core/ports"
)

var (
	// ErrAddressAlreadyImported is returned when importing an address already
	// stored for the same network.
	ErrAddressAlreadyImported = errors.New("wallet address is already imported")
	// ErrInvalidPublicKey ...
	ErrInvalidPublicKey = errors.New("invalid public key")
)

// ImportArgs holds the data of a wallet to import. Secret and Password are
// only used by software wallets and never stored in clear.
type ImportArgs struct {
	Alias          string
	Address        string
	Network        string
	PublicKey      string
	AuthMode       domain.AuthMode
	Secret         string
	Password       string
	DerivationPath string
	MultiSignature *domain.MultiSignatureAsset
}

type Service struct {
	repository  domain.WalletRepository
	credentials ports.CredentialStore
}

func NewService(
	repository domain.WalletRepository, credentials ports.CredentialStore,
) (*Service, error) {
	if repository == nil {
		return nil, fmt.Errorf("missing wallet repository")
	}
	if credentials == nil {
		return nil, fmt.Errorf("missing credential store")
	}
	return &Service{repository, credentials}, nil
}

// Import validates and stores a new wallet. The secret of encrypted software
// wallets is sealed with the password before being stored.
func (s *Service) Import(
	ctx context.Context, args ImportArgs,
) (*domain.Wallet, error) {
	if args.PublicKey != "" {
		if err := validatePublicKey(args.PublicKey); err != nil {
			return nil, err
		}
	}
	if args.MultiSignature != nil {
		for _, key := range args.MultiSignature.PublicKeys {
			if err := validatePublicKey(key); err != nil {
				return nil, fmt.Errorf("multi-signature: %w", err)
			}
		}
	}

	var sealed string
	if args.AuthMode.IsSoftware() {
		var err error
		if sealed, err = s.credentials.Seal(
			ctx, args.AuthMode, args.Secret, args.Password,
		); err != nil {
			return nil, err
		}
	}

	w, err := domain.NewWallet(domain.NewWalletArgs{
		Alias:           args.Alias,
		Address:         args.Address,
		Network:         args.Network,
		PublicKey:       args.PublicKey,
		AuthMode:        args.AuthMode,
		DerivationPath:  args.DerivationPath,
		MultiSignature:  args.MultiSignature,
		EncryptedSecret: sealed,
	})
	if err != nil {
		return nil, err
	}

	existing, err := s.repository.FindByAddress(ctx, w.Network, w.Address)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAddressAlreadyImported
	}

	if err := s.repository.Push(ctx, w); err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"id":      w.ID,
		"network": w.Network,
		"mode":    w.AuthMode,
	}).Info("wallet imported")
	return w, nil
}

// List returns the wallets of the network, all of them if network is empty.
func (s *Service) List(
	ctx context.Context, network string,
) ([]domain.Wallet, error) {
	if network == "" {
		return s.repository.All(ctx)
	}
	return s.repository.FindByNetwork(ctx, network)
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Wallet, error) {
	return s.repository.FindByID(ctx, id)
}

func (s *Service) Rename(ctx context.Context, id, alias string) error {
	return s.repository.Update(
		ctx, id, func(w *domain.Wallet) (*domain.Wallet, error) {
			if err := w.Rename(alias); err != nil {
				return nil, err
			}
			return w, nil
		},
	)
}

func (s *Service) Remove(ctx context.Context, id string) error {
	return s.repository.Forget(ctx, id)
}

// Export dumps every stored wallet keyed by id.
func (s *Service) Export(ctx context.Context) (map[string]domain.Wallet, error) {
	return s.repository.ToObject(ctx)
}

// Restore replaces the stored wallets with the given dump. If the dump
// cannot be loaded the previous wallets are put back.
func (s *Service) Restore(
	ctx context.Context, dump map[string]domain.Wallet,
) error {
	previous, err := s.repository.ToObject(ctx)
	if err != nil {
		return err
	}
	if err := s.repository.Flush(ctx); err != nil {
		return err
	}

	if fillErr := s.repository.Fill(ctx, dump); fillErr != nil {
		log.WithError(fillErr).Warn("restore failed, reverting to previous wallets")
		if err := s.repository.Flush(ctx); err != nil {
			return err
		}
		if err := s.repository.Fill(ctx, previous); err != nil {
			return fmt.Errorf("%s, revert failed: %w", fillErr, err)
		}
		return fillErr
	}

	log.Infof("restored %d wallet(s)", len(dump))
	return nil
}

func validatePublicKey(key string) error {
	buf, err := hex.DecodeString(key)
	if err != nil {
		return ErrInvalidPublicKey
	}
	if _, err := btcec.ParsePubKey(buf); err != nil {
		return ErrInvalidPublicKey
	}
	return nil
}
