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
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, "0.0.0.0:8008", cfg.Server.ListenAddress)
	assert.Equal(t, "private_key.bin", cfg.Keys.PrivateKeyPath)
	assert.Equal(t, "public_key.bin", cfg.Keys.PublicKeyPath)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vts.yaml")
	contents := `
server:
  listen_address: 127.0.0.1:9009
  shutdown_timeout: 3s
keys:
  provider: file
  private_key_path: /var/lib/vts/private_key.bin
  public_key_path: /var/lib/vts/public_key.bin
  generate: false
log:
  level: debug
  format: json
  backend: zerolog
`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))

	cfg, err := Load(viper.New(), path)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9009", cfg.Server.ListenAddress)
	assert.Equal(t, 3*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "1M", cfg.Server.BodyLimit)
	assert.False(t, cfg.Keys.Generate)
	assert.Equal(t, "/var/lib/vts/private_key.bin", cfg.Keys.PrivateKeyPath)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "zerolog", cfg.Log.Backend)
	assert.Equal(t, map[string]any{
		"private-key-path": "/var/lib/vts/private_key.bin",
		"public-key-path":  "/var/lib/vts/public_key.bin",
		"generate":         false,
	}, cfg.Keys.ProviderOptions())
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("VTS_SERVER_LISTEN_ADDRESS", "127.0.0.1:1234")
	t.Setenv("VTS_KEYS_PROVIDER", "memory")
	t.Setenv("VTS_CLIENT_KEY_CACHE_TTL", "1m")

	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:1234", cfg.Server.ListenAddress)
	assert.Equal(t, "memory", cfg.Keys.Provider)
	assert.Equal(t, time.Minute, cfg.Client.KeyCacheTTL)
	assert.Empty(t, cfg.Keys.ProviderOptions())
}

func TestLoadRejectsBadBodyLimit(t *testing.T) {
	t.Setenv("VTS_SERVER_BODY_LIMIT", "abc")

	_, err := Load(viper.New(), "")
	var cfgErr ErrInvalidConfig
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "server.body_limit", cfgErr.Field)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(viper.New(), filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad listen address", func(c *Config) { c.Server.ListenAddress = "no-port" }},
		{"empty body limit", func(c *Config) { c.Server.BodyLimit = "" }},
		{"unparseable body limit", func(c *Config) { c.Server.BodyLimit = "one megabyte" }},
		{"body limit without number", func(c *Config) { c.Server.BodyLimit = "abc" }},
		{"negative shutdown timeout", func(c *Config) { c.Server.ShutdownTimeout = -time.Second }},
		{"unknown provider", func(c *Config) { c.Keys.Provider = "hsm" }},
		{"file provider without paths", func(c *Config) { c.Keys.PrivateKeyPath = "" }},
		{"static provider without keys", func(c *Config) { c.Keys.Provider = "static" }},
		{"negative client timeout", func(c *Config) { c.Client.Timeout = -1 }},
		{"bad log level", func(c *Config) { c.Log.Level = "loud" }},
		{"bad log format", func(c *Config) { c.Log.Format = "xml" }},
		{"bad log backend", func(c *Config) { c.Log.Backend = "glog" }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)
			assert.ErrorAs(t, cfg.Validate(), &ErrInvalidConfig{})
		})
	}

	assert.NoError(t, Default().Validate())
	static := Default()
	static.Keys = Keys{Provider: "static", PrivateKey: "a", PublicKey: "b"}
	assert.NoError(t, static.Validate())
}

func TestDumpRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Keys = Keys{Provider: "static", PrivateKey: "c2VjcmV0", PublicKey: "cHVibGlj"}
	cfg.Server.ShutdownTimeout = 7 * time.Second

	b, err := cfg.Dump()
	require.NoError(t, err)
	assert.NotContains(t, string(b), "c2VjcmV0")
	assert.Contains(t, string(b), "private_key: REDACTED")
	assert.Contains(t, string(b), "shutdown_timeout: 7s")

	path := filepath.Join(t.TempDir(), "dumped.yaml")
	require.NoError(t, os.WriteFile(path, b, 0o600))
	loaded, err := Load(viper.New(), path)
	require.NoError(t, err)
	assert.Equal(t, cfg.Redacted(), loaded)
	assert.Equal(t, "c2VjcmV0", cfg.Keys.PrivateKey)
}
