// Copyright 2025 The Witness Contributors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/labstack/gommon/bytes"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"
)

const (
	EnvPrefix = "VTS"
	redacted  = "REDACTED"
)

type Server struct {
	ListenAddress   string        `mapstructure:"listen_address" yaml:"listen_address"`
	BodyLimit       string        `mapstructure:"body_limit" yaml:"body_limit"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
}

type Keys struct {
	Provider       string `mapstructure:"provider" yaml:"provider"`
	PrivateKeyPath string `mapstructure:"private_key_path" yaml:"private_key_path"`
	PublicKeyPath  string `mapstructure:"public_key_path" yaml:"public_key_path"`
	PrivateKey     string `mapstructure:"private_key" yaml:"private_key"`
	PublicKey      string `mapstructure:"public_key" yaml:"public_key"`
	Generate       bool   `mapstructure:"generate" yaml:"generate"`
}

type Client struct {
	ServerURL   string        `mapstructure:"server_url" yaml:"server_url"`
	Timeout     time.Duration `mapstructure:"timeout" yaml:"timeout"`
	KeyCacheTTL time.Duration `mapstructure:"key_cache_ttl" yaml:"key_cache_ttl"`
}

type Log struct {
	Level   string `mapstructure:"level" yaml:"level"`
	Format  string `mapstructure:"format" yaml:"format"`
	Backend string `mapstructure:"backend" yaml:"backend"`
}

type Config struct {
	Server Server `mapstructure:"server" yaml:"server"`
	Keys   Keys   `mapstructure:"keys" yaml:"keys"`
	Client Client `mapstructure:"client" yaml:"client"`
	Log    Log    `mapstructure:"log" yaml:"log"`
}

func Default() Config {
	return Config{
		Server: Server{
			ListenAddress:   "0.0.0.0:8008",
			BodyLimit:       "1M",
			ShutdownTimeout: 10 * time.Second,
		},
		Keys: Keys{
			Provider:       "file",
			PrivateKeyPath: "private_key.bin",
			PublicKeyPath:  "public_key.bin",
			Generate:       true,
		},
		Client: Client{
			ServerURL:   "http://127.0.0.1:8008",
			Timeout:     10 * time.Second,
			KeyCacheTTL: 5 * time.Minute,
		},
		Log: Log{
			Level:   "info",
			Format:  "text",
			Backend: "logrus",
		},
	}
}

// SetDefaults registers every key with v so environment overrides are seen by
// Unmarshal even when no config file sets them.
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("server.listen_address", d.Server.ListenAddress)
	v.SetDefault("server.body_limit", d.Server.BodyLimit)
	v.SetDefault("server.shutdown_timeout", d.Server.ShutdownTimeout)
	v.SetDefault("keys.provider", d.Keys.Provider)
	v.SetDefault("keys.private_key_path", d.Keys.PrivateKeyPath)
	v.SetDefault("keys.public_key_path", d.Keys.PublicKeyPath)
	v.SetDefault("keys.private_key", d.Keys.PrivateKey)
	v.SetDefault("keys.public_key", d.Keys.PublicKey)
	v.SetDefault("keys.generate", d.Keys.Generate)
	v.SetDefault("client.server_url", d.Client.ServerURL)
	v.SetDefault("client.timeout", d.Client.Timeout)
	v.SetDefault("client.key_cache_ttl", d.Client.KeyCacheTTL)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("log.backend", d.Log.Backend)
}

// Load reads configuration from defaults, the optional file at path and VTS_*
// environment variables, in increasing order of precedence. Values set directly
// on v (for example from CLI flags) take precedence over all of them.
func Load(v *viper.Viper, path string) (Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("error reading config file %s: %w", path, err)
		}
	}

	cfg := Config{}
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return cfg, cfg.Validate()
}

type ErrInvalidConfig struct {
	Field  string
	Reason string
}

func (e ErrInvalidConfig) Error() string {
	return fmt.Sprintf("invalid config value for %s: %s", e.Field, e.Reason)
}

func (c Config) Validate() error {
	var errs []error
	if _, _, err := net.SplitHostPort(c.Server.ListenAddress); err != nil {
		errs = append(errs, ErrInvalidConfig{Field: "server.listen_address", Reason: err.Error()})
	}

	if c.Server.BodyLimit == "" {
		errs = append(errs, ErrInvalidConfig{Field: "server.body_limit", Reason: "must not be empty"})
	} else if _, err := bytes.Parse(c.Server.BodyLimit); err != nil {
		errs = append(errs, ErrInvalidConfig{Field: "server.body_limit", Reason: err.Error()})
	}

	if c.Server.ShutdownTimeout < 0 {
		errs = append(errs, ErrInvalidConfig{Field: "server.shutdown_timeout", Reason: "must not be negative"})
	}

	switch c.Keys.Provider {
	case "file":
		if c.Keys.PrivateKeyPath == "" || c.Keys.PublicKeyPath == "" {
			errs = append(errs, ErrInvalidConfig{Field: "keys", Reason: "file provider requires private_key_path and public_key_path"})
		}
	case "static":
		if c.Keys.PrivateKey == "" || c.Keys.PublicKey == "" {
			errs = append(errs, ErrInvalidConfig{Field: "keys", Reason: "static provider requires private_key and public_key"})
		}
	case "memory":
	default:
		errs = append(errs, ErrInvalidConfig{Field: "keys.provider", Reason: fmt.Sprintf("unknown provider %q", c.Keys.Provider)})
	}

	if c.Client.Timeout < 0 || c.Client.KeyCacheTTL < 0 {
		errs = append(errs, ErrInvalidConfig{Field: "client", Reason: "durations must not be negative"})
	}

	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, ErrInvalidConfig{Field: "log.level", Reason: err.Error()})
	}

	if c.Log.Format != "text" && c.Log.Format != "json" {
		errs = append(errs, ErrInvalidConfig{Field: "log.format", Reason: "must be text or json"})
	}

	if c.Log.Backend != "logrus" && c.Log.Backend != "zerolog" {
		errs = append(errs, ErrInvalidConfig{Field: "log.backend", Reason: "must be logrus or zerolog"})
	}

	return errors.Join(errs...)
}

// ProviderOptions maps the key settings onto the option names the selected
// signer provider registers.
func (k Keys) ProviderOptions() map[string]any {
	switch k.Provider {
	case "file":
		return map[string]any{
			"private-key-path": k.PrivateKeyPath,
			"public-key-path":  k.PublicKeyPath,
			"generate":         k.Generate,
		}
	case "static":
		return map[string]any{
			"private-key": k.PrivateKey,
			"public-key":  k.PublicKey,
		}
	default:
		return map[string]any{}
	}
}

// Redacted returns a copy of c that is safe to print.
func (c Config) Redacted() Config {
	if c.Keys.PrivateKey != "" {
		c.Keys.PrivateKey = redacted
	}

	return c
}

// Dump renders the redacted configuration in the same shape Load reads.
func (c Config) Dump() ([]byte, error) {
	b, err := yaml.Marshal(c.Redacted())
	if err != nil {
		return nil, fmt.Errorf("error marshaling config: %w", err)
	}

	return b, nil
}
