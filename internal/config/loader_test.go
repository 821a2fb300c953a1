package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return p
}

func TestLoadYAML(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.yaml", "addr: :9999\nrpc_url: http://node:8545\nchain_id: 11155111\nregistry_address: 0xabc\nkey_file: /keys/k\ncors_origins: [\"http://a\"]\n")
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":9999" || cfg.RPCURL != "http://node:8545" || cfg.ChainID != 11155111 || cfg.RegistryAddress != "0xabc" || cfg.KeyFile != "/keys/k" {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
	if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "http://a" {
		t.Fatalf("unexpected cors origins: %v", cfg.CORSOrigins)
	}
}

func TestLoadJSON(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.json", `{"addr":":7070","rpc_url":"ws://n","chain_id":5,"log_level":"debug","rate_limit_rps":2.5,"rate_limit_burst":4}`)
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":7070" || cfg.RPCURL != "ws://n" || cfg.ChainID != 5 || cfg.LogLevel != "debug" || cfg.RateLimitRPS != 2.5 || cfg.RateLimitBurst != 4 {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
}

func TestLoadTOML(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.toml", "addr=\":8081\"\nrpc_url=\"http://x\"\nchain_id=31337\nkeystore_passphrase=\"pw\"\nmax_body_bytes=2048\n")
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":8081" || cfg.RPCURL != "http://x" || cfg.ChainID != 31337 || cfg.KeystorePassphrase != "pw" || cfg.MaxBodyBytes != 2048 {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(""); err == nil {
		t.Fatalf("expected error on empty path")
	}
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.txt", "not supported")
	if _, err := Load(p); err == nil {
		t.Fatalf("expected unsupported extension error")
	}
}

func TestMergeFillsOnlyZeroFields(t *testing.T) {
	got := Merge(Config{Addr: ":1", ChainID: 7}, Defaults())
	if got.Addr != ":1" || got.ChainID != 7 {
		t.Fatalf("explicit values overwritten: %+v", got)
	}
	if got.RegistryAddress != DefaultRegistryAddress || got.RPCURL == "" || got.MaxBodyBytes != 1<<20 {
		t.Fatalf("defaults not applied: %+v", got)
	}
}

func TestRateLimitDisabledOnlyByNegativeRPS(t *testing.T) {
	d := t.TempDir()
	off, err := Load(writeTempFile(t, d, "off.yaml", "rate_limit_rps: -1\n"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := Merge(off, Defaults()); got.RateLimited() || got.RateLimitRPS != -1 {
		t.Fatalf("negative rps should survive Merge and disable: %+v", got)
	}
	zero, err := Load(writeTempFile(t, d, "zero.yaml", "rate_limit_rps: 0\n"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := Merge(zero, Defaults()); !got.RateLimited() || got.RateLimitRPS != Defaults().RateLimitRPS {
		t.Fatalf("zero rps means unspecified and takes the default: %+v", got)
	}
	env, err := FromEnv(func(k string) (string, bool) {
		if k == "BOOKSLIB_RATE_LIMIT_RPS" {
			return "-0.5", true
		}
		return "", false
	})
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}
	if Merge(env, Defaults()).RateLimited() {
		t.Fatalf("negative env rps should disable")
	}
}
