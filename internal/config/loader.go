package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// DefaultRegistryAddress is the deployed books library contract.
const DefaultRegistryAddress = "0x29c7DA5e258E1bAc4E203a9f1127D7f279591F05"

// Config holds runtime parameters for the client.
// Zero values mean "unspecified" and are replaced by Defaults via Merge, so
// rate limiting is switched off with a negative rate_limit_rps, not with 0.
type Config struct {
	Addr               string   `json:"addr" yaml:"addr" toml:"addr"`
	RPCURL             string   `json:"rpc_url" yaml:"rpc_url" toml:"rpc_url"`
	ChainID            int64    `json:"chain_id" yaml:"chain_id" toml:"chain_id"`
	RegistryAddress    string   `json:"registry_address" yaml:"registry_address" toml:"registry_address"`
	KeyFile            string   `json:"key_file" yaml:"key_file" toml:"key_file"`
	KeystorePassphrase string   `json:"keystore_passphrase" yaml:"keystore_passphrase" toml:"keystore_passphrase"`
	MnemonicPassphrase string   `json:"mnemonic_passphrase" yaml:"mnemonic_passphrase" toml:"mnemonic_passphrase"`
	LogLevel           string   `json:"log_level" yaml:"log_level" toml:"log_level"`
	CORSOrigins        []string `json:"cors_origins" yaml:"cors_origins" toml:"cors_origins"`
	RateLimitRPS       float64  `json:"rate_limit_rps" yaml:"rate_limit_rps" toml:"rate_limit_rps"`
	RateLimitBurst     int      `json:"rate_limit_burst" yaml:"rate_limit_burst" toml:"rate_limit_burst"`
	MaxBodyBytes       int64    `json:"max_body_bytes" yaml:"max_body_bytes" toml:"max_body_bytes"`
}

// Defaults returns the configuration used when nothing else is specified.
func Defaults() Config {
	return Config{
		Addr:            ":8080",
		RPCURL:          "http://127.0.0.1:8545",
		RegistryAddress: DefaultRegistryAddress,
		KeyFile:         "~/.bookslib/key",
		LogLevel:        "info",
		RateLimitRPS:    5,
		RateLimitBurst:  10,
		MaxBodyBytes:    1 << 20,
	}
}

// Load reads a configuration file based on its extension.
// Supports: .yaml/.yml, .json, .toml
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, fmt.Errorf("empty config path")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".json":
		if err := json.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".toml":
		if err := toml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	return cfg, nil
}

// Merge fills every zero field of cfg from base and returns the result.
func Merge(cfg, base Config) Config {
	if cfg.Addr == "" {
		cfg.Addr = base.Addr
	}
	if cfg.RPCURL == "" {
		cfg.RPCURL = base.RPCURL
	}
	if cfg.ChainID == 0 {
		cfg.ChainID = base.ChainID
	}
	if cfg.RegistryAddress == "" {
		cfg.RegistryAddress = base.RegistryAddress
	}
	if cfg.KeyFile == "" {
		cfg.KeyFile = base.KeyFile
	}
	if cfg.KeystorePassphrase == "" {
		cfg.KeystorePassphrase = base.KeystorePassphrase
	}
	if cfg.MnemonicPassphrase == "" {
		cfg.MnemonicPassphrase = base.MnemonicPassphrase
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = base.LogLevel
	}
	if len(cfg.CORSOrigins) == 0 {
		cfg.CORSOrigins = append([]string(nil), base.CORSOrigins...)
	}
	if cfg.RateLimitRPS == 0 {
		cfg.RateLimitRPS = base.RateLimitRPS
	}
	if cfg.RateLimitBurst == 0 {
		cfg.RateLimitBurst = base.RateLimitBurst
	}
	if cfg.MaxBodyBytes == 0 {
		cfg.MaxBodyBytes = base.MaxBodyBytes
	}
	return cfg
}

// FromEnv reads BOOKSLIB_* variables through lookup (os.LookupEnv in main).
// Unparseable numeric values are reported rather than ignored.
func FromEnv(lookup func(string) (string, bool)) (Config, error) {
	var cfg Config
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok {
			*dst = strings.TrimSpace(v)
		}
	}
	str("BOOKSLIB_ADDR", &cfg.Addr)
	str("BOOKSLIB_RPC_URL", &cfg.RPCURL)
	str("BOOKSLIB_REGISTRY_ADDRESS", &cfg.RegistryAddress)
	str("BOOKSLIB_KEY_FILE", &cfg.KeyFile)
	str("BOOKSLIB_KEYSTORE_PASSPHRASE", &cfg.KeystorePassphrase)
	str("BOOKSLIB_MNEMONIC_PASSPHRASE", &cfg.MnemonicPassphrase)
	str("BOOKSLIB_LOG_LEVEL", &cfg.LogLevel)
	if v, ok := lookup("BOOKSLIB_CORS_ORIGINS"); ok {
		cfg.CORSOrigins = SplitCSV(v)
	}
	if v, ok := lookup("BOOKSLIB_CHAIN_ID"); ok && strings.TrimSpace(v) != "" {
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return cfg, fmt.Errorf("BOOKSLIB_CHAIN_ID: %w", err)
		}
		cfg.ChainID = n
	}
	if v, ok := lookup("BOOKSLIB_RATE_LIMIT_RPS"); ok && strings.TrimSpace(v) != "" {
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return cfg, fmt.Errorf("BOOKSLIB_RATE_LIMIT_RPS: %w", err)
		}
		cfg.RateLimitRPS = f
	}
	if v, ok := lookup("BOOKSLIB_RATE_LIMIT_BURST"); ok && strings.TrimSpace(v) != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return cfg, fmt.Errorf("BOOKSLIB_RATE_LIMIT_BURST: %w", err)
		}
		cfg.RateLimitBurst = n
	}
	return cfg, nil
}

// RateLimited reports whether mutating HTTP routes are rate limited.
func (c Config) RateLimited() bool { return c.RateLimitRPS > 0 }

// SplitCSV splits a comma-separated list, trimming blanks and dropping empty items.
func SplitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
