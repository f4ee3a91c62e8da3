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
	"context"
	"crypto"
)

type ErrVerifyFailed struct{}

func (e ErrVerifyFailed) Error() string {
	return "verification failed"
}

// Secp256k1Signer adapts a KeyPair to the Signer interface. The hash is fixed
// to SHA-256 because KeyPair.Sign always digests with it.
type Secp256k1Signer struct {
	kp *KeyPair
}

func NewSecp256k1Signer(kp *KeyPair) *Secp256k1Signer {
	return &Secp256k1Signer{kp}
}

func (s *Secp256k1Signer) KeyID() (string, error) {
	return GeneratePublicKeyID(s.kp.VerificationKey())
}

func (s *Secp256k1Signer) Algorithm() crypto.Hash {
	return crypto.SHA256
}

func (s *Secp256k1Signer) Sign(ctx context.Context, data []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sig := s.kp.Sign(data)
	return sig[:], nil
}

func (s *Secp256k1Signer) Verifier() (Verifier, error) {
	return NewSecp256k1Verifier(s.kp.VerificationKey()), nil
}

type Secp256k1Verifier struct {
	pub *VerificationKey
}

func NewSecp256k1Verifier(pub *VerificationKey) *Secp256k1Verifier {
	return &Secp256k1Verifier{pub}
}

func (v *Secp256k1Verifier) KeyID() (string, error) {
	return GeneratePublicKeyID(v.pub)
}

func (v *Secp256k1Verifier) Verify(ctx context.Context, data []byte, sig []byte) error {
	parsed, err := ParseSignature(sig)
	if err != nil {
		return err
	}

	if !v.pub.Verify(data, parsed) {
		return ErrVerifyFailed{}
	}

	return nil
}

func (v *Secp256k1Verifier) Public() *VerificationKey {
	return v.pub
}

func (v *Secp256k1Verifier) Bytes() ([]byte, error) {
	b := v.pub.Bytes()
	return b[:], nil
}
