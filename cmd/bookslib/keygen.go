package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"bookslib/internal/common/fsutil"
	"bookslib/internal/identity"
)

func newKeygenCmd(c *cli) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Write a new BIP39 mnemonic identity to the key file",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, id, err := writeMnemonicKey(c.cfg.KeyFile, c.cfg.MnemonicPassphrase, force)
			if err != nil {
				return c.out.Error("Cannot create key", err.Error(), []string{"Use --force to replace an existing key file."})
			}
			c.out.Success("wrote %s", path)
			c.out.Info("account: %s (%s)", id.Address.Hex(), identity.MnemonicPath)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing key file")
	return cmd
}

// writeMnemonicKey creates the key file with mode 0600 and returns its path
// and the identity it holds.
func writeMnemonicKey(keyFile, passphrase string, force bool) (string, *identity.Identity, error) {
	path, err := fsutil.ExpandHome(keyFile)
	if err != nil {
		return "", nil, err
	}
	if _, err := os.Stat(path); err == nil && !force {
		return "", nil, fmt.Errorf("%s already exists", path)
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return "", nil, err
	}
	mnemonic, err := identity.NewMnemonic()
	if err != nil {
		return "", nil, err
	}
	id, err := identity.FromMnemonic(mnemonic, passphrase)
	if err != nil {
		return "", nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return "", nil, err
	}
	if err := os.WriteFile(path, []byte(mnemonic+"\n"), 0o600); err != nil {
		return "", nil, err
	}
	// WriteFile keeps the mode of a file it overwrites
	if err := os.Chmod(path, 0o600); err != nil {
		return "", nil, err
	}
	return path, id, nil
}
