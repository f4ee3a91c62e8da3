// Copyright 2022 The Witness Contributors
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

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	vts "github.com/in-toto/go-vts"
	"github.com/in-toto/go-vts/log"
	"github.com/in-toto/go-vts/protocol"
	"github.com/jellydator/ttlcache/v3"
)

const (
	DefaultTimeout     = 10 * time.Second
	DefaultKeyCacheTTL = 5 * time.Minute

	keyCacheKey = "key"
)

// ErrTransport covers every failure to obtain a well formed response from the
// server: connection errors, non-2xx statuses and undecodable bodies.
type ErrTransport struct {
	Op         string
	StatusCode int
	Err        error
}

func (e ErrTransport) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: server returned %d: %v", e.Op, e.StatusCode, e.Err)
	}

	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e ErrTransport) Unwrap() error {
	return e.Err
}

type Client struct {
	url         string
	headers     http.Header
	timeout     time.Duration
	keyCacheTTL time.Duration
	httpClient  *http.Client
	keyCache    *ttlcache.Cache[string, protocol.KeyResponse]
}

type Option func(*Client)

func WithHeaders(h http.Header) Option {
	return func(c *Client) {
		if h != nil {
			c.headers = h
		}
	}
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithKeyCacheTTL sets how long RequestKey reuses a fetched key. Zero disables
// caching.
func WithKeyCacheTTL(ttl time.Duration) Option {
	return func(c *Client) {
		c.keyCacheTTL = ttl
	}
}

func New(url string, opts ...Option) *Client {
	c := &Client{
		url:         strings.TrimSuffix(url, "/"),
		timeout:     DefaultTimeout,
		keyCacheTTL: DefaultKeyCacheTTL,
		httpClient:  http.DefaultClient,
	}

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		opt(c)
	}

	if c.keyCacheTTL > 0 {
		c.keyCache = ttlcache.New[string, protocol.KeyResponse](
			ttlcache.WithTTL[string, protocol.KeyResponse](c.keyCacheTTL),
			ttlcache.WithDisableTouchOnHit[string, protocol.KeyResponse](),
		)
	}

	return c
}

func (c *Client) URL() string {
	return c.url
}

// RequestKey fetches the server's verification key with GET /key.
func (c *Client) RequestKey(ctx context.Context) (protocol.KeyResponse, error) {
	if c.keyCache == nil {
		return c.fetchKey(ctx)
	}

	var lerr error
	loader := ttlcache.LoaderFunc[string, protocol.KeyResponse](
		func(cache *ttlcache.Cache[string, protocol.KeyResponse], key string) *ttlcache.Item[string, protocol.KeyResponse] {
			var resp protocol.KeyResponse
			resp, lerr = c.fetchKey(ctx)
			if lerr != nil {
				return nil
			}

			return cache.Set(key, resp, ttlcache.DefaultTTL)
		},
	)

	item := c.keyCache.Get(keyCacheKey, ttlcache.WithLoader[string, protocol.KeyResponse](loader))
	if item != nil {
		return item.Value(), nil
	}

	return protocol.KeyResponse{}, lerr
}

// InvalidateKey drops any cached key so the next RequestKey goes to the server.
func (c *Client) InvalidateKey() {
	if c.keyCache != nil {
		c.keyCache.Delete(keyCacheKey)
	}
}

func (c *Client) fetchKey(ctx context.Context) (protocol.KeyResponse, error) {
	resp := protocol.KeyResponse{}
	err := c.do(ctx, "request key", http.MethodGet, "/key", nil, &resp)
	return resp, err
}

// RequestTimestamp asks the server to sign message with POST /sign.
func (c *Client) RequestTimestamp(ctx context.Context, message string) (protocol.SignResponse, error) {
	body, err := json.Marshal(protocol.SignRequest{Message: message})
	if err != nil {
		return protocol.SignResponse{}, fmt.Errorf("failed to encode sign request: %w", err)
	}

	resp := protocol.SignResponse{}
	err = c.do(ctx, "request timestamp", http.MethodPost, "/sign", body, &resp)
	return resp, err
}

// Verify checks resp against the server's current key. A transport failure is
// returned as an error; an invalid signature is (false, nil).
func (c *Client) Verify(ctx context.Context, resp protocol.SignResponse) (bool, error) {
	key, err := c.RequestKey(ctx)
	if err != nil {
		return false, err
	}

	return vts.VerifyResponse(resp, key), nil
}

func (c *Client) do(ctx context.Context, op, method, path string, body []byte, out interface{}) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url+path, reader)
	if err != nil {
		return ErrTransport{Op: op, Err: err}
	}

	for k, vs := range c.headers {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	log.Debugf("%s %s", method, req.URL)
	httpResp, err := c.httpClient.Do(req)
	if err != nil {
		return ErrTransport{Op: op, Err: err}
	}

	defer httpResp.Body.Close()
	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return ErrTransport{Op: op, StatusCode: httpResp.StatusCode, Err: err}
	}

	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		return ErrTransport{Op: op, StatusCode: httpResp.StatusCode, Err: serverError(respBody)}
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return ErrTransport{Op: op, StatusCode: httpResp.StatusCode, Err: fmt.Errorf("failed to decode response: %w", err)}
	}

	return nil
}

func serverError(body []byte) error {
	errResp := protocol.ErrorResponse{}
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
		return errors.New(errResp.Error)
	}

	return errors.New(strings.TrimSpace(string(body)))
}
