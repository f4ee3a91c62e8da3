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
	"crypto/sha256"
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
)

const (
	// SigningKeySize is the length of a big-endian secp256k1 scalar.
	SigningKeySize = 32
	// VerificationKeySize is the length of a SEC1 compressed secp256k1 point.
	VerificationKeySize = 33
	// SignatureSize is the length of a big-endian r||s signature.
	SignatureSize = 64
)

type ErrInvalidKeyEncoding struct {
	Reason string
}

func (e ErrInvalidKeyEncoding) Error() string {
	return fmt.Sprintf("invalid key encoding: %s", e.Reason)
}

type ErrInvalidSignatureEncoding struct {
	Reason string
}

func (e ErrInvalidSignatureEncoding) Error() string {
	return fmt.Sprintf("invalid signature encoding: %s", e.Reason)
}

// KeyPair holds a secp256k1 signing key and the verification key derived from it.
// A KeyPair is never mutated after construction, so a single instance may be
// shared by any number of goroutines.
type KeyPair struct {
	priv *secp256k1.PrivateKey
	pub  *VerificationKey
}

// GenerateKeyPair draws a uniformly random scalar in [1, N-1] from crypto/rand.
func GenerateKeyPair() (*KeyPair, error) {
	priv, err := secp256k1.GeneratePrivateKey()
	if err != nil {
		return nil, fmt.Errorf("failed to generate secp256k1 key: %w", err)
	}

	return &KeyPair{
		priv: priv,
		pub:  &VerificationKey{pub: priv.PubKey()},
	}, nil
}

// KeyPairFromBytes reconstructs a KeyPair from its fixed width encodings: a
// 32-byte big-endian scalar and a 33-byte compressed point. The point must be
// the one derived from the scalar.
func KeyPairFromBytes(signing, verification []byte) (*KeyPair, error) {
	priv, err := parseSigningKey(signing)
	if err != nil {
		return nil, err
	}

	pub, err := ParseVerificationKey(verification)
	if err != nil {
		priv.Zero()
		return nil, err
	}

	if !priv.PubKey().IsEqual(pub.pub) {
		priv.Zero()
		return nil, ErrInvalidKeyEncoding{Reason: "verification key does not belong to signing key"}
	}

	return &KeyPair{priv: priv, pub: pub}, nil
}

func parseSigningKey(b []byte) (*secp256k1.PrivateKey, error) {
	if len(b) != SigningKeySize {
		return nil, ErrInvalidKeyEncoding{Reason: fmt.Sprintf("signing key must be %d bytes, got %d", SigningKeySize, len(b))}
	}

	var scalar secp256k1.ModNScalar
	if overflow := scalar.SetByteSlice(b); overflow {
		scalar.Zero()
		return nil, ErrInvalidKeyEncoding{Reason: "signing key is not less than the curve order"}
	}

	if scalar.IsZero() {
		return nil, ErrInvalidKeyEncoding{Reason: "signing key is zero"}
	}

	return secp256k1.NewPrivateKey(&scalar), nil
}

// Bytes returns the 32-byte signing key and the 33-byte verification key.
func (kp *KeyPair) Bytes() ([SigningKeySize]byte, [VerificationKeySize]byte) {
	return kp.priv.Key.Bytes(), kp.pub.Bytes()
}

func (kp *KeyPair) SigningKeyBytes() []byte {
	b := kp.priv.Key.Bytes()
	return b[:]
}

func (kp *KeyPair) VerificationKeyBytes() []byte {
	b := kp.pub.Bytes()
	return b[:]
}

// VerificationKey returns the public half of the pair.
func (kp *KeyPair) VerificationKey() *VerificationKey {
	return kp.pub
}

// Sign produces an RFC 6979 deterministic, low-S ECDSA signature over the
// SHA-256 digest of data.
func (kp *KeyPair) Sign(data []byte) Signature {
	digest := sha256.Sum256(data)
	sig := ecdsa.Sign(kp.priv, digest[:])

	var out Signature
	r, s := sig.R(), sig.S()
	r.PutBytesUnchecked(out[:32])
	s.PutBytesUnchecked(out[32:])
	return out
}

// Verify reports whether sig is a valid signature over data by this pair's
// verification key.
func (kp *KeyPair) Verify(data []byte, sig Signature) bool {
	return kp.pub.Verify(data, sig)
}

// Zero overwrites the signing scalar. The KeyPair must not be used afterwards.
func (kp *KeyPair) Zero() {
	kp.priv.Zero()
}

// VerificationKey is a secp256k1 public key.
type VerificationKey struct {
	pub *secp256k1.PublicKey
}

// ParseVerificationKey decodes a 33-byte SEC1 compressed point. Uncompressed and
// hybrid encodings are rejected because the wire format fixes the length.
func ParseVerificationKey(b []byte) (*VerificationKey, error) {
	if len(b) != VerificationKeySize {
		return nil, ErrInvalidKeyEncoding{Reason: fmt.Sprintf("verification key must be %d bytes, got %d", VerificationKeySize, len(b))}
	}

	pub, err := secp256k1.ParsePubKey(b)
	if err != nil {
		return nil, ErrInvalidKeyEncoding{Reason: err.Error()}
	}

	return &VerificationKey{pub: pub}, nil
}

func (vk *VerificationKey) Bytes() [VerificationKeySize]byte {
	var out [VerificationKeySize]byte
	copy(out[:], vk.pub.SerializeCompressed())
	return out
}

func (vk *VerificationKey) Equal(other *VerificationKey) bool {
	if vk == nil || other == nil {
		return vk == other
	}

	return vk.pub.IsEqual(other.pub)
}

// Verify never panics: out of range r or s values simply fail.
func (vk *VerificationKey) Verify(data []byte, sig Signature) bool {
	if vk == nil || vk.pub == nil {
		return false
	}

	r, s, err := sig.scalars()
	if err != nil {
		return false
	}

	digest := sha256.Sum256(data)
	return ecdsa.NewSignature(&r, &s).Verify(digest[:], vk.pub)
}

// Signature is a secp256k1 ECDSA signature encoded as big-endian r||s.
type Signature [SignatureSize]byte

// ParseSignature checks that b holds exactly 64 bytes with 0 < r,s < N.
func ParseSignature(b []byte) (Signature, error) {
	var sig Signature
	if len(b) != SignatureSize {
		return sig, ErrInvalidSignatureEncoding{Reason: fmt.Sprintf("signature must be %d bytes, got %d", SignatureSize, len(b))}
	}

	copy(sig[:], b)
	if _, _, err := sig.scalars(); err != nil {
		return Signature{}, err
	}

	return sig, nil
}

func (sig Signature) scalars() (secp256k1.ModNScalar, secp256k1.ModNScalar, error) {
	var r, s secp256k1.ModNScalar
	if overflow := r.SetByteSlice(sig[:32]); overflow || r.IsZero() {
		return r, s, ErrInvalidSignatureEncoding{Reason: "r is not in [1, N-1]"}
	}

	if overflow := s.SetByteSlice(sig[32:]); overflow || s.IsZero() {
		return r, s, ErrInvalidSignatureEncoding{Reason: "s is not in [1, N-1]"}
	}

	return r, s, nil
}

func (sig Signature) Bytes() []byte {
	return sig[:]
}
