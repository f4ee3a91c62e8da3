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

package router_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	vts "github.com/in-toto/go-vts"
	"github.com/in-toto/go-vts/client"
	"github.com/in-toto/go-vts/cryptoutil"
	"github.com/in-toto/go-vts/internal/api"
	"github.com/in-toto/go-vts/internal/api/router"
	"github.com/in-toto/go-vts/internal/config"
	"github.com/in-toto/go-vts/log"
	"github.com/in-toto/go-vts/protocol"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, kp *cryptoutil.KeyPair) (*api.Server, *httptest.Server) {
	t.Helper()
	s, err := api.InitNewServerWithKeyPair(config.Default(), kp, t)
	require.NoError(t, err)
	router.Init(s)
	require.True(t, s.Ready())

	ts := httptest.NewServer(s.Echo)
	t.Cleanup(ts.Close)
	return s, ts
}

func do(t *testing.T, method, url, body string) (int, string) {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(b)
}

func TestKeyEndpoint(t *testing.T) {
	kp, err := cryptoutil.GenerateKeyPair()
	require.NoError(t, err)
	_, ts := newTestServer(t, kp)

	code, body := do(t, http.MethodGet, ts.URL+"/key", "")
	require.Equal(t, http.StatusOK, code)

	raw := map[string]string{}
	require.NoError(t, json.Unmarshal([]byte(body), &raw))
	assert.Len(t, raw, 3)
	assert.Equal(t, "GET", raw["request"])
	_, err = protocol.ParseTimestamp(raw["time-requested"])
	assert.NoError(t, err)

	vk, err := protocol.DecodeVerificationKey(raw["public-key"])
	require.NoError(t, err)
	assert.True(t, vk.Equal(kp.VerificationKey()))
}

func TestSignAndVerifyOverHTTP(t *testing.T) {
	kp, err := cryptoutil.GenerateKeyPair()
	require.NoError(t, err)
	_, ts := newTestServer(t, kp)

	c := client.New(ts.URL)
	key, err := c.RequestKey(context.Background())
	require.NoError(t, err)
	resp, err := c.RequestTimestamp(context.Background(), "Hello, VTS!")
	require.NoError(t, err)

	assert.Equal(t, "POST", resp.Request)
	assert.Equal(t, "Hello, VTS!", resp.Message)
	assert.True(t, vts.VerifyResponse(resp, key))

	ok, err := c.Verify(context.Background(), resp)
	require.NoError(t, err)
	assert.True(t, ok)

	other, err := cryptoutil.GenerateKeyPair()
	require.NoError(t, err)
	assert.False(t, vts.VerifyResponseWithKey(resp, other.VerificationKey()))
}

func TestSignEmptyMessage(t *testing.T) {
	kp, err := cryptoutil.GenerateKeyPair()
	require.NoError(t, err)
	_, ts := newTestServer(t, kp)

	code, body := do(t, http.MethodPost, ts.URL+"/sign", `{"message":""}`)
	require.Equal(t, http.StatusOK, code)

	resp := protocol.SignResponse{}
	require.NoError(t, json.Unmarshal([]byte(body), &resp))
	assert.Empty(t, resp.Message)
	assert.True(t, vts.VerifyResponseWithKey(resp, kp.VerificationKey()))
}

func TestInvalidRequests(t *testing.T) {
	kp, err := cryptoutil.GenerateKeyPair()
	require.NoError(t, err)
	_, ts := newTestServer(t, kp)

	tests := []struct {
		name     string
		method   string
		path     string
		body     string
		wantCode int
		wantBody string
		wantJSON bool
	}{
		{"unknown route", http.MethodGet, "/invalid", "", http.StatusBadRequest, "Invalid request", false},
		{"root", http.MethodGet, "/", "", http.StatusBadRequest, "Invalid request", false},
		{"wrong method on sign", http.MethodGet, "/sign", "", http.StatusBadRequest, "Invalid request", false},
		{"wrong method on key", http.MethodPost, "/key", "{}", http.StatusBadRequest, "Invalid request", false},
		{"malformed json", http.MethodPost, "/sign", `{"message":`, http.StatusBadRequest, "", true},
		{"missing message", http.MethodPost, "/sign", `{}`, http.StatusBadRequest, "", true},
		{"message not a string", http.MethodPost, "/sign", `{"message":42}`, http.StatusBadRequest, "", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			code, body := do(t, tc.method, ts.URL+tc.path, tc.body)
			assert.Equal(t, tc.wantCode, code)
			if !tc.wantJSON {
				assert.Equal(t, tc.wantBody, body)
				return
			}

			errResp := protocol.ErrorResponse{}
			require.NoError(t, json.Unmarshal([]byte(body), &errResp))
			assert.NotEmpty(t, errResp.Error)
		})
	}
}

func TestBodyLimit(t *testing.T) {
	kp, err := cryptoutil.GenerateKeyPair()
	require.NoError(t, err)
	cfg := config.Default()
	cfg.Server.BodyLimit = "1K"
	s, err := api.InitNewServerWithKeyPair(cfg, kp, t)
	require.NoError(t, err)
	router.Init(s)
	ts := httptest.NewServer(s.Echo)
	defer ts.Close()

	code, body := do(t, http.MethodPost, ts.URL+"/sign", `{"message":"`+strings.Repeat("a", 4096)+`"}`)
	assert.Equal(t, http.StatusRequestEntityTooLarge, code)
	errResp := protocol.ErrorResponse{}
	require.NoError(t, json.Unmarshal([]byte(body), &errResp))
	assert.NotEmpty(t, errResp.Error)

	code, _ = do(t, http.MethodPost, ts.URL+"/sign", `{"message":"small"}`)
	assert.Equal(t, http.StatusOK, code)
}

func TestKeyUnavailable(t *testing.T) {
	kp, err := cryptoutil.GenerateKeyPair()
	require.NoError(t, err)
	s, ts := newTestServer(t, kp)
	require.NoError(t, s.Service.Close())

	code, body := do(t, http.MethodPost, ts.URL+"/sign", `{"message":"late"}`)
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.JSONEq(t, `{"error":"Key load error"}`, body)
}

func TestRequestLogging(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.InfoLevel)
	log.SetLogger(logger)
	t.Cleanup(func() { log.SetLogger(nil) })

	kp, err := cryptoutil.GenerateKeyPair()
	require.NoError(t, err)
	_, ts := newTestServer(t, kp)

	code, _ := do(t, http.MethodPost, ts.URL+"/sign", `{"message":"secret message"}`)
	require.Equal(t, http.StatusOK, code)

	var found bool
	for _, entry := range hook.AllEntries() {
		if strings.HasPrefix(entry.Message, "POST /sign status=200") {
			found = true
			assert.Contains(t, entry.Message, "request_id=")
		}

		assert.NotContains(t, entry.Message, "secret message")
	}

	assert.True(t, found)
}

func TestInitNewServerFromConfig(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Keys.PrivateKeyPath = filepath.Join(dir, "private_key.bin")
	cfg.Keys.PublicKeyPath = filepath.Join(dir, "public_key.bin")

	first, err := api.InitNewServer(context.Background(), cfg)
	require.NoError(t, err)
	second, err := api.InitNewServer(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, first.Service.Key().PublicKey, second.Service.Key().PublicKey)
	assert.False(t, first.Ready())

	cfg.Keys.Generate = false
	cfg.Keys.PublicKeyPath = filepath.Join(dir, "missing.bin")
	_, err = api.InitNewServer(context.Background(), cfg)
	assert.ErrorAs(t, err, &vts.ErrKeyUnavailable{})

	memory := config.Default()
	memory.Keys.Provider = "memory"
	s, err := api.InitNewServer(context.Background(), memory)
	require.NoError(t, err)
	assert.NotEmpty(t, s.Service.Key().PublicKey)

	unknown := config.Default()
	unknown.Keys.Provider = "hsm"
	_, err = api.InitNewServer(context.Background(), unknown)
	assert.Error(t, err)
}

func TestShutdownZeroesKey(t *testing.T) {
	kp, err := cryptoutil.GenerateKeyPair()
	require.NoError(t, err)
	s, err := api.InitNewServerWithKeyPair(config.Default(), kp, t)
	require.NoError(t, err)
	router.Init(s)

	assert.Empty(t, s.Shutdown(context.Background()))
	assert.Equal(t, make([]byte, cryptoutil.SigningKeySize), kp.SigningKeyBytes())
}
