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

package cryptoutil

import (
	"fmt"
	"os"
)

// The .bin formats carry no header, version or checksum. A reader has to know the
// exact byte count: 32 for a signing key, 33 for a verification key and 64 for a
// signature.

// SaveKeyPairFiles writes the raw signing key (mode 0600) and the raw compressed
// verification key (mode 0644).
func SaveKeyPairFiles(kp *KeyPair, privatePath, publicPath string) error {
	priv, pub := kp.Bytes()
	defer clear(priv[:])

	if err := os.WriteFile(privatePath, priv[:], 0o600); err != nil {
		return fmt.Errorf("failed to write signing key: %w", err)
	}

	if err := os.WriteFile(publicPath, pub[:], 0o644); err != nil {
		return fmt.Errorf("failed to write verification key: %w", err)
	}

	return nil
}

func LoadKeyPairFiles(privatePath, publicPath string) (*KeyPair, error) {
	priv, err := os.ReadFile(privatePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read signing key: %w", err)
	}

	defer clear(priv)
	pub, err := os.ReadFile(publicPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read verification key: %w", err)
	}

	return KeyPairFromBytes(priv, pub)
}

func WriteSignatureFile(sig Signature, path string) error {
	if err := os.WriteFile(path, sig[:], 0o644); err != nil {
		return fmt.Errorf("failed to write signature: %w", err)
	}

	return nil
}

func ReadSignatureFile(path string) (Signature, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Signature{}, fmt.Errorf("failed to read signature: %w", err)
	}

	return ParseSignature(b)
}
