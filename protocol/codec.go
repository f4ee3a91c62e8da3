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

package protocol

import (
	"encoding/base64"
	"fmt"

	"github.com/in-toto/go-vts/cryptoutil"
)

type ErrDecode struct {
	Field string
	Err   error
}

func (e ErrDecode) Error() string {
	return fmt.Sprintf("failed to decode %s: %v", e.Field, e.Err)
}

func (e ErrDecode) Unwrap() error {
	return e.Err
}

func EncodeVerificationKey(vk *cryptoutil.VerificationKey) string {
	b := vk.Bytes()
	return base64.StdEncoding.EncodeToString(b[:])
}

func DecodeVerificationKey(s string) (*cryptoutil.VerificationKey, error) {
	raw, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, ErrDecode{Field: "public-key", Err: err}
	}

	vk, err := cryptoutil.ParseVerificationKey(raw)
	if err != nil {
		return nil, ErrDecode{Field: "public-key", Err: err}
	}

	return vk, nil
}

func EncodeSignature(sig cryptoutil.Signature) string {
	return base64.StdEncoding.EncodeToString(sig[:])
}

func DecodeSignature(s string) (cryptoutil.Signature, error) {
	raw, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return cryptoutil.Signature{}, ErrDecode{Field: "signature", Err: err}
	}

	sig, err := cryptoutil.ParseSignature(raw)
	if err != nil {
		return cryptoutil.Signature{}, ErrDecode{Field: "signature", Err: err}
	}

	return sig, nil
}
