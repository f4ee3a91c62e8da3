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

// Package memory provides an ephemeral key pair that lives only as long as the
// process. It is meant for tests and local development.
package memory

import (
	"context"
	"sync"

	"github.com/in-toto/go-vts/cryptoutil"
	"github.com/in-toto/go-vts/log"
	"github.com/in-toto/go-vts/signer"
)

func init() {
	signer.Register("memory", func() signer.SignerProvider { return New() })
}

type MemorySignerProvider struct {
	once sync.Once
	kp   *cryptoutil.KeyPair
	err  error
}

func New() *MemorySignerProvider {
	return &MemorySignerProvider{}
}

// KeyPair generates the pair on first use and returns the same one afterwards.
func (msp *MemorySignerProvider) KeyPair(ctx context.Context) (*cryptoutil.KeyPair, error) {
	msp.once.Do(func() {
		msp.kp, msp.err = cryptoutil.GenerateKeyPair()
		if msp.err == nil {
			log.Warn("using an in-memory signing key; signatures will not verify after restart")
		}
	})

	return msp.kp, msp.err
}
