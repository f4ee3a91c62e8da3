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

package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/in-toto/go-vts/cryptoutil"
	"github.com/in-toto/go-vts/log"
	"github.com/in-toto/go-vts/registry"
	"github.com/in-toto/go-vts/signer"
)

const (
	DefaultPrivateKeyPath = "private_key.bin"
	DefaultPublicKeyPath  = "public_key.bin"
)

func init() {
	signer.Register("file", func() signer.SignerProvider { return New() },
		registry.StringConfigOption(
			"private-key-path",
			"Path to the file containing the raw 32-byte signing key",
			DefaultPrivateKeyPath,
			func(sp signer.SignerProvider, keyPath string) (signer.SignerProvider, error) {
				fsp, ok := sp.(FileSignerProvider)
				if !ok {
					return fsp, fmt.Errorf("provided signer provider is not a file signer provider")
				}

				WithPrivateKeyPath(keyPath)(&fsp)
				return fsp, nil
			},
		),
		registry.StringConfigOption(
			"public-key-path",
			"Path to the file containing the raw 33-byte compressed verification key",
			DefaultPublicKeyPath,
			func(sp signer.SignerProvider, keyPath string) (signer.SignerProvider, error) {
				fsp, ok := sp.(FileSignerProvider)
				if !ok {
					return fsp, fmt.Errorf("provided signer provider is not a file signer provider")
				}

				WithPublicKeyPath(keyPath)(&fsp)
				return fsp, nil
			},
		),
		registry.BoolConfigOption(
			"generate",
			"Generate and save a new key pair when either key file is missing",
			true,
			func(sp signer.SignerProvider, generate bool) (signer.SignerProvider, error) {
				fsp, ok := sp.(FileSignerProvider)
				if !ok {
					return fsp, fmt.Errorf("provided signer provider is not a file signer provider")
				}

				WithGenerate(generate)(&fsp)
				return fsp, nil
			},
		),
	)
}

// FileSignerProvider loads a key pair from two headerless .bin files.
type FileSignerProvider struct {
	PrivateKeyPath string
	PublicKeyPath  string
	Generate       bool
}

type Option func(fsp *FileSignerProvider)

func WithPrivateKeyPath(keyPath string) Option {
	return func(fsp *FileSignerProvider) {
		fsp.PrivateKeyPath = keyPath
	}
}

func WithPublicKeyPath(keyPath string) Option {
	return func(fsp *FileSignerProvider) {
		fsp.PublicKeyPath = keyPath
	}
}

func WithGenerate(generate bool) Option {
	return func(fsp *FileSignerProvider) {
		fsp.Generate = generate
	}
}

func New(opts ...Option) FileSignerProvider {
	fsp := FileSignerProvider{
		PrivateKeyPath: DefaultPrivateKeyPath,
		PublicKeyPath:  DefaultPublicKeyPath,
		Generate:       true,
	}

	for _, opt := range opts {
		opt(&fsp)
	}

	return fsp
}

// KeyPair reads both key files. If either is missing and Generate is set, a
// fresh pair is generated and both files are (over)written.
func (fsp FileSignerProvider) KeyPair(ctx context.Context) (*cryptoutil.KeyPair, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	missing, err := anyMissing(fsp.PrivateKeyPath, fsp.PublicKeyPath)
	if err != nil {
		return nil, err
	}

	if !missing {
		kp, err := cryptoutil.LoadKeyPairFiles(fsp.PrivateKeyPath, fsp.PublicKeyPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load key pair: %w", err)
		}

		log.Debugf("loaded key pair from %s and %s", fsp.PrivateKeyPath, fsp.PublicKeyPath)
		return kp, nil
	}

	if !fsp.Generate {
		return nil, fmt.Errorf("key files %s and %s must both exist: %w", fsp.PrivateKeyPath, fsp.PublicKeyPath, os.ErrNotExist)
	}

	kp, err := cryptoutil.GenerateKeyPair()
	if err != nil {
		return nil, err
	}

	for _, p := range []string{fsp.PrivateKeyPath, fsp.PublicKeyPath} {
		if err := os.MkdirAll(filepath.Dir(p), 0o700); err != nil {
			return nil, fmt.Errorf("failed to create key directory: %w", err)
		}
	}

	if err := cryptoutil.SaveKeyPairFiles(kp, fsp.PrivateKeyPath, fsp.PublicKeyPath); err != nil {
		kp.Zero()
		return nil, err
	}

	log.Infof("generated new key pair at %s and %s", fsp.PrivateKeyPath, fsp.PublicKeyPath)
	return kp, nil
}

func anyMissing(paths ...string) (bool, error) {
	for _, p := range paths {
		_, err := os.Stat(p)
		if errors.Is(err, os.ErrNotExist) {
			return true, nil
		} else if err != nil {
			return false, fmt.Errorf("failed to stat %s: %w", p, err)
		}
	}

	return false, nil
}
