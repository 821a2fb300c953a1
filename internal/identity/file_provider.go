package identity

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"bookslib/internal/common/fsutil"
)

// FileProvider loads the identity from a key file and reloads it whenever the
// file changes. A missing or unreadable file yields no identity.
type FileProvider struct {
	path string
	pw   Passphrases
	log  zerolog.Logger
	h    hub
}

// NewFileProvider performs the initial load. A missing file is not an error.
func NewFileProvider(path string, pw Passphrases, log zerolog.Logger) (*FileProvider, error) {
	p, err := fsutil.ExpandHome(path)
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		return nil, fmt.Errorf("abs path: %w", err)
	}
	fp := &FileProvider{path: abs, pw: pw, log: log.With().Str("key_file", abs).Logger()}
	if err := fp.Reload(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fp, err
	}
	return fp, nil
}

func (p *FileProvider) Current() *Identity                    { return p.h.current() }
func (p *FileProvider) Subscribe() (<-chan *Identity, func()) { return p.h.subscribe() }

// Path returns the absolute key file path.
func (p *FileProvider) Path() string { return p.path }

// Reload re-reads the key file. On any failure the identity becomes absent.
func (p *FileProvider) Reload() error {
	raw, err := fsutil.ReadSecret(p.path)
	if err != nil {
		if p.h.set(nil) {
			p.log.Info().Msg("identity removed")
		}
		return err
	}
	if fsutil.GroupOrWorldReadable(p.path) {
		p.log.Warn().Msg("key file is readable by group or others")
	}
	id, err := Parse(raw, p.pw)
	if err != nil {
		if p.h.set(nil) {
			p.log.Warn().Err(err).Msg("identity unusable")
		}
		return err
	}
	if p.h.set(id) {
		p.log.Info().Str("account", id.Address.Hex()).Str("source", string(id.Source)).Msg("identity loaded")
	}
	return nil
}

// Watch reloads the identity on file system events until ctx is done.
// The parent directory is watched so editors that replace the file are handled.
func (p *FileProvider) Watch(ctx context.Context) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watcher: %w", err)
	}
	defer w.Close()
	if err := w.Add(filepath.Dir(p.path)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(p.path), err)
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != p.path {
				continue
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename|fsnotify.Chmod) == 0 {
				continue
			}
			if err := p.Reload(); err != nil && !errors.Is(err, os.ErrNotExist) {
				p.log.Debug().Err(err).Str("event", ev.Op.String()).Msg("reload failed")
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			p.log.Error().Err(err).Msg("watch error")
		}
	}
}
