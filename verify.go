// Copyright 2022 The Witness Contributors
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

package vts

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/in-toto/go-vts/cryptoutil"
	"github.com/in-toto/go-vts/protocol"
)

// VerifyResponse reports whether resp carries a valid signature over
// resp.Message ++ resp.TimeSigned by the key in key. Malformed input of any
// kind yields false.
func VerifyResponse(resp protocol.SignResponse, key protocol.KeyResponse) bool {
	return VerifyResponseDetailed(resp, key.PublicKey) == nil
}

// VerifyResponseWithKey is VerifyResponse for an already decoded key.
func VerifyResponseWithKey(resp protocol.SignResponse, vk *cryptoutil.VerificationKey) bool {
	if vk == nil {
		return false
	}

	return verifyWithKey(resp, vk) == nil
}

// VerifyResponseDetailed runs the same checks as VerifyResponse but returns the
// reason for a rejection: a protocol.ErrDecode for malformed fields or
// cryptoutil.ErrVerifyFailed for a well formed signature that does not match.
func VerifyResponseDetailed(resp protocol.SignResponse, publicKey string) error {
	vk, err := protocol.DecodeVerificationKey(publicKey)
	if err != nil {
		return err
	}

	return verifyWithKey(resp, vk)
}

func verifyWithKey(resp protocol.SignResponse, vk *cryptoutil.VerificationKey) error {
	payload := resp.SignedPayload()
	sig, err := protocol.DecodeSignature(resp.Signature)
	if err != nil {
		return err
	}

	return cryptoutil.NewSecp256k1Verifier(vk).Verify(context.Background(), payload, sig[:])
}

// VerifySignature decodes a JSON sign response from r and verifies it against
// the base64 encoded public key.
func VerifySignature(r io.Reader, publicKey string) (protocol.SignResponse, error) {
	decoder := json.NewDecoder(r)
	resp := protocol.SignResponse{}
	if err := decoder.Decode(&resp); err != nil {
		return resp, fmt.Errorf("failed to parse sign response: %w", err)
	}

	return resp, VerifyResponseDetailed(resp, publicKey)
}
