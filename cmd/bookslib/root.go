package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"bookslib/internal/config"
	"bookslib/internal/printer"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

// globalOptions holds persistent flag values; only flags the user set
// override env and file values.
type globalOptions struct {
	configPath string
	rpcURL     string
	registry   string
	chainID    int64
	keyFile    string
	logLevel   string
	addr       string
}

// cli is the state shared by every command after PersistentPreRunE.
type cli struct {
	opts globalOptions
	cfg  config.Config
	log  zerolog.Logger
	out  *printer.Printer
}

func newRootCmd() *cobra.Command {
	c := &cli{out: printer.New(nil, nil)}
	root := &cobra.Command{
		Use:           "bookslib",
		Short:         "Client for the on-chain books library registry",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&c.opts.configPath, "config", "", "Config file (.yaml, .yml, .json or .toml)")
	pf.StringVar(&c.opts.rpcURL, "rpc-url", "", "Ledger node JSON-RPC endpoint (default http://127.0.0.1:8545)")
	pf.StringVar(&c.opts.registry, "registry", "", "Registry contract address")
	pf.Int64Var(&c.opts.chainID, "chain-id", 0, "Chain id for signing (0 = ask the node)")
	pf.StringVar(&c.opts.keyFile, "key-file", "", "Identity key file: hex key, keystore JSON or BIP39 mnemonic; a mnemonic signs as its m/44'/60'/0'/0/0 account (default ~/.bookslib/key)")
	pf.StringVar(&c.opts.logLevel, "log-level", "", "Log level: debug|info|warn|error (default info)")

	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveConfig(c.opts, cmd.Flags().Changed, os.LookupEnv)
		if err != nil {
			return c.out.Error("Invalid configuration", err.Error(), nil)
		}
		log, err := newLogger(cfg.LogLevel, os.Stderr)
		if err != nil {
			return c.out.Error("Invalid log level", err.Error(), []string{"Use one of debug, info, warn or error."})
		}
		c.cfg, c.log = cfg, log
		return nil
	}

	root.AddCommand(
		newServeCmd(c),
		newAddCmd(c),
		newItemCmd(c, "checkout", "Check out an item by id"),
		newItemCmd(c, "return", "Return a checked out item by id"),
		newListCmd(c),
		newStateCmd(c),
		newKeygenCmd(c),
		&cobra.Command{
			Use:   "version",
			Short: "Print the version",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintln(cmd.OutOrStdout(), version)
			},
		},
	)
	return root
}

// resolveConfig applies precedence flags > env > file > defaults.
func resolveConfig(o globalOptions, changed func(string) bool, lookup func(string) (string, bool)) (config.Config, error) {
	var file config.Config
	if o.configPath != "" {
		var err error
		if file, err = config.Load(o.configPath); err != nil {
			return config.Config{}, fmt.Errorf("load %s: %w", o.configPath, err)
		}
	}
	env, err := config.FromEnv(lookup)
	if err != nil {
		return config.Config{}, err
	}
	var flags config.Config
	if changed("rpc-url") {
		flags.RPCURL = o.rpcURL
	}
	if changed("registry") {
		flags.RegistryAddress = o.registry
	}
	if changed("chain-id") {
		flags.ChainID = o.chainID
	}
	if changed("key-file") {
		flags.KeyFile = o.keyFile
	}
	if changed("log-level") {
		flags.LogLevel = o.logLevel
	}
	if changed("addr") {
		flags.Addr = o.addr
	}
	return config.Merge(flags, config.Merge(env, config.Merge(file, config.Defaults()))), nil
}
