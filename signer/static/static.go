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

package static

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/in-toto/go-vts/cryptoutil"
	"github.com/in-toto/go-vts/registry"
	"github.com/in-toto/go-vts/signer"
)

func init() {
	signer.Register("static", func() signer.SignerProvider { return New() },
		registry.StringConfigOption(
			"private-key",
			"Base64 encoded 32-byte signing key",
			"",
			func(sp signer.SignerProvider, key string) (signer.SignerProvider, error) {
				ssp, ok := sp.(StaticSignerProvider)
				if !ok {
					return ssp, fmt.Errorf("provided signer provider is not a static signer provider")
				}

				WithPrivateKey(key)(&ssp)
				return ssp, nil
			},
		),
		registry.StringConfigOption(
			"public-key",
			"Base64 encoded 33-byte compressed verification key",
			"",
			func(sp signer.SignerProvider, key string) (signer.SignerProvider, error) {
				ssp, ok := sp.(StaticSignerProvider)
				if !ok {
					return ssp, fmt.Errorf("provided signer provider is not a static signer provider")
				}

				WithPublicKey(key)(&ssp)
				return ssp, nil
			},
		),
	)
}

// StaticSignerProvider takes both keys inline, base64 encoded, typically from a
// configuration file or environment variable.
type StaticSignerProvider struct {
	PrivateKey string
	PublicKey  string
}

type Option func(*StaticSignerProvider)

func WithPrivateKey(key string) Option {
	return func(ssp *StaticSignerProvider) {
		ssp.PrivateKey = key
	}
}

func WithPublicKey(key string) Option {
	return func(ssp *StaticSignerProvider) {
		ssp.PublicKey = key
	}
}

func New(opts ...Option) StaticSignerProvider {
	ssp := StaticSignerProvider{}
	for _, opt := range opts {
		opt(&ssp)
	}

	return ssp
}

func (ssp StaticSignerProvider) KeyPair(ctx context.Context) (*cryptoutil.KeyPair, error) {
	if ssp.PrivateKey == "" || ssp.PublicKey == "" {
		return nil, fmt.Errorf("static signer provider requires both a private and a public key")
	}

	priv, err := base64.StdEncoding.DecodeString(ssp.PrivateKey)
	if err != nil {
		return nil, fmt.Errorf("failed to decode private key: %w", err)
	}

	defer clear(priv)
	pub, err := base64.StdEncoding.DecodeString(ssp.PublicKey)
	if err != nil {
		return nil, fmt.Errorf("failed to decode public key: %w", err)
	}

	return cryptoutil.KeyPairFromBytes(priv, pub)
}
