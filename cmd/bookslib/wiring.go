package main

import (
	"context"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/rs/zerolog"

	"bookslib/internal/config"
	"bookslib/internal/identity"
	"bookslib/internal/ledger"
	"bookslib/internal/manager"
	"bookslib/internal/session"
)

const chainIDLookupTimeout = 10 * time.Second

// app is the assembled controller: node client, identity, binder and manager.
type app struct {
	cfg      config.Config
	log      zerolog.Logger
	client   *ethclient.Client
	provider *identity.FileProvider
	binder   *session.Binder
	mgr      *manager.Manager

	chainMu sync.Mutex
	chainID *big.Int
}

func newApp(ctx context.Context, cfg config.Config, log zerolog.Logger, events manager.EventPublisher) (*app, error) {
	if !common.IsHexAddress(cfg.RegistryAddress) {
		return nil, fmt.Errorf("registry address %q is not a hex address", cfg.RegistryAddress)
	}
	parsed, err := ledger.ParseABI()
	if err != nil {
		return nil, fmt.Errorf("registry ABI: %w", err)
	}
	client, err := ethclient.DialContext(ctx, cfg.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", cfg.RPCURL, err)
	}
	a := &app{cfg: cfg, log: log, client: client}
	if cfg.ChainID != 0 {
		a.chainID = big.NewInt(cfg.ChainID)
	}

	provider, err := identity.NewFileProvider(cfg.KeyFile, identity.Passphrases{
		Keystore: cfg.KeystorePassphrase,
		Mnemonic: cfg.MnemonicPassphrase,
	}, log.With().Str("component", "identity").Logger())
	if err != nil {
		// the provider is still usable; the identity stays absent until the file is fixed
		log.Warn().Err(err).Msg("identity not loaded")
	}
	if provider == nil {
		client.Close()
		return nil, err
	}
	a.provider = provider

	addr := common.HexToAddress(cfg.RegistryAddress)
	a.binder = session.New(session.Config{
		Address: addr,
		ABI:     parsed,
		Logger:  log.With().Str("component", "session").Logger(),
		Connect: func(id *identity.Identity) (ledger.Gateway, error) {
			chainID, err := a.resolveChainID()
			if err != nil {
				return nil, err
			}
			return ledger.NewContract(client, addr, parsed, id.Key, chainID)
		},
	})
	a.mgr = manager.NewWithConfig(manager.ManagerConfig{
		Handles:  a.binder,
		Registry: addr.Hex(),
		Events:   events,
		Logger:   &log,
	})
	return a, nil
}

// resolveChainID returns the configured chain id or asks the node once.
func (a *app) resolveChainID() (*big.Int, error) {
	a.chainMu.Lock()
	defer a.chainMu.Unlock()
	if a.chainID != nil {
		return a.chainID, nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), chainIDLookupTimeout)
	defer cancel()
	id, err := a.client.ChainID(ctx)
	if err != nil {
		return nil, fmt.Errorf("chain id from %s: %w", a.cfg.RPCURL, err)
	}
	a.log.Info().Str("chain_id", id.String()).Msg("chain id from node")
	a.chainID = id
	return id, nil
}

// bindOnce binds the identity currently in the key file, for one-shot commands.
func (a *app) bindOnce() {
	_ = a.binder.Bind(a.provider.Current())
}

func (a *app) Close() {
	a.client.Close()
}
