// Copyright 2023 The Witness Contributors
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

package signer

import (
	"context"

	"github.com/in-toto/go-vts/cryptoutil"
	"github.com/in-toto/go-vts/registry"
)

var signerRegistry = registry.New[SignerProvider]()

// SignerProvider supplies the key pair a signing service runs with.
type SignerProvider interface {
	KeyPair(context.Context) (*cryptoutil.KeyPair, error)
}

func Register(name string, factory func() SignerProvider, opts ...registry.Configurer) {
	signerRegistry.Register(name, factory, opts...)
}

func RegistryEntries() []registry.Entry[SignerProvider] {
	return signerRegistry.AllEntries()
}

func NewSignerProvider(name string, opts ...func(SignerProvider) (SignerProvider, error)) (SignerProvider, error) {
	return signerRegistry.NewEntity(name, opts...)
}

// NewSignerProviderFromConfigMap builds the provider registered as name with
// options taken from configMap, keyed by option name.
func NewSignerProviderFromConfigMap(name string, configMap map[string]any) (SignerProvider, error) {
	return signerRegistry.NewEntityFromConfigMap(name, configMap)
}

// Signer is a convenience for callers that only need the cryptoutil.Signer view
// of a provider's key pair.
func Signer(ctx context.Context, sp SignerProvider) (cryptoutil.Signer, error) {
	kp, err := sp.KeyPair(ctx)
	if err != nil {
		return nil, err
	}

	return cryptoutil.NewSigner(kp)
}
