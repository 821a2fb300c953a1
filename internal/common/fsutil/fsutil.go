package fsutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ExpandHome expands a leading '~' to the user's home directory.
func ExpandHome(path string) (string, error) {
	if path == "" {
		return path, nil
	}
	if path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home dir: %w", err)
	}
	if path == "~" {
		return home, nil
	}
	// handle cases like ~/.bookslib/key
	return filepath.Join(home, strings.TrimPrefix(path, "~/")), nil
}

// ReadSecret reads a small credential file and trims surrounding whitespace.
// A missing file is reported as os.ErrNotExist so callers can treat it as
// "no credential" rather than a failure.
func ReadSecret(path string) (string, error) {
	p, err := ExpandHome(path)
	if err != nil {
		return "", err
	}
	b, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", os.ErrNotExist
		}
		return "", fmt.Errorf("read %s: %w", p, err)
	}
	return strings.TrimSpace(string(b)), nil
}

// GroupOrWorldReadable reports whether the file mode lets anyone but the owner read it.
func GroupOrWorldReadable(path string) bool {
	fi, err := os.Stat(path)
	if err != nil {
		return false
	}
	return fi.Mode().Perm()&0o044 != 0
}
