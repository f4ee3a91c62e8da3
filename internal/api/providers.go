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

package api

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/dropbox/godropbox/time2"
	vts "github.com/in-toto/go-vts"
	"github.com/in-toto/go-vts/cryptoutil"
	"github.com/in-toto/go-vts/internal/config"
	"github.com/in-toto/go-vts/signer"

	// key providers selectable through keys.provider
	_ "github.com/in-toto/go-vts/signer/file"
	_ "github.com/in-toto/go-vts/signer/memory"
	_ "github.com/in-toto/go-vts/signer/static"
)

// PROVIDERS - https://github.com/google/wire/blob/main/docs/guide.md#defining-providers

func NewClock(t ...*testing.T) time2.Clock {
	if len(t) > 0 && t[0] != nil {
		return time2.NewMockClock(time.Now())
	}

	return time2.DefaultClock
}

func NewSignerProvider(cfg config.Config) (signer.SignerProvider, error) {
	sp, err := signer.NewSignerProviderFromConfigMap(cfg.Keys.Provider, cfg.Keys.ProviderOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to create %s key provider: %w", cfg.Keys.Provider, err)
	}

	return sp, nil
}

// NewKeyPair loads key material once at startup. Failure here is fatal: the
// server never starts without a usable key.
func NewKeyPair(ctx context.Context, sp signer.SignerProvider) (*cryptoutil.KeyPair, error) {
	kp, err := sp.KeyPair(ctx)
	if err != nil {
		return nil, vts.ErrKeyUnavailable{Err: err}
	}

	return kp, nil
}

func NewService(kp *cryptoutil.KeyPair, clock time2.Clock) (*vts.Service, error) {
	return vts.NewService(kp, vts.ServiceWithClock(clock))
}

func NoTest() []*testing.T {
	return nil
}
