// Copyright 2021 The Witness Contributors
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
	"crypto"
	"encoding/hex"
	"fmt"
)

type ErrUnsupportedHash string

func (e ErrUnsupportedHash) Error() string {
	return fmt.Sprintf("unsupported hash function: %v", string(e))
}

func DigestBytes(data []byte, hash crypto.Hash) ([]byte, error) {
	if !hash.Available() {
		return nil, ErrUnsupportedHash(hash.String())
	}

	hf := hash.New()
	if _, err := hf.Write(data); err != nil {
		return nil, err
	}

	return hf.Sum(nil), nil
}

// GeneratePublicKeyID is the hex encoded SHA-256 of the compressed verification key.
func GeneratePublicKeyID(pub *VerificationKey) (string, error) {
	if pub == nil {
		return "", fmt.Errorf("cannot generate key id for nil verification key")
	}

	b := pub.Bytes()
	digest, err := DigestBytes(b[:], crypto.SHA256)
	if err != nil {
		return "", err
	}

	return hex.EncodeToString(digest), nil
}
