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
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

type ErrUnsupportedKeyType struct {
	t string
}

func (e ErrUnsupportedKeyType) Error() string {
	return fmt.Sprintf("unsupported signer key type: %v", e.t)
}

type Signer interface {
	KeyIdentifier
	Sign(ctx context.Context, data []byte) ([]byte, error)
	Verifier() (Verifier, error)
}

type Verifier interface {
	KeyIdentifier
	Verify(ctx context.Context, data []byte, sig []byte) error
	Bytes() ([]byte, error)
}

type KeyIdentifier interface {
	KeyID() (string, error)
}

// NewSigner accepts a *KeyPair or a raw *secp256k1.PrivateKey.
func NewSigner(priv interface{}) (Signer, error) {
	switch key := priv.(type) {
	case *KeyPair:
		return NewSecp256k1Signer(key), nil
	case *secp256k1.PrivateKey:
		return NewSecp256k1Signer(&KeyPair{
			priv: key,
			pub:  &VerificationKey{pub: key.PubKey()},
		}), nil
	default:
		return nil, ErrUnsupportedKeyType{
			t: fmt.Sprintf("%T", priv),
		}
	}
}

// NewVerifier accepts a *VerificationKey, a raw *secp256k1.PublicKey, or the
// 33-byte compressed encoding of one.
func NewVerifier(pub interface{}) (Verifier, error) {
	switch key := pub.(type) {
	case *VerificationKey:
		return NewSecp256k1Verifier(key), nil
	case *secp256k1.PublicKey:
		return NewSecp256k1Verifier(&VerificationKey{pub: key}), nil
	case []byte:
		vk, err := ParseVerificationKey(key)
		if err != nil {
			return nil, err
		}

		return NewSecp256k1Verifier(vk), nil
	default:
		return nil, ErrUnsupportedKeyType{
			t: fmt.Sprintf("%T", pub),
		}
	}
}
