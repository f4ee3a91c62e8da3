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

const (
	RequestGet  = "GET"
	RequestPost = "POST"
)

// KeyResponse is the body returned by GET /key.
type KeyResponse struct {
	Request       string `json:"request" jsonschema:"title=Request,description=HTTP method that produced this response,enum=GET"`
	TimeRequested string `json:"time-requested" jsonschema:"title=Time Requested,description=UTC time the key was requested,example=2025-04-01T12:00:00.123456Z"`
	PublicKey     string `json:"public-key" jsonschema:"title=Public Key,description=Base64 of the 33-byte compressed secp256k1 verification key"`
}

// SignRequest is the body accepted by POST /sign.
type SignRequest struct {
	Message string `json:"message" jsonschema:"title=Message,description=UTF-8 message to timestamp"`
}

// SignResponse is the body returned by POST /sign. TimeSigned is the exact
// string that was appended to Message before signing.
type SignResponse struct {
	Request    string `json:"request" jsonschema:"title=Request,description=HTTP method that produced this response,enum=POST"`
	Message    string `json:"message" jsonschema:"title=Message,description=The message as received"`
	TimeSigned string `json:"time-signed" jsonschema:"title=Time Signed,description=UTC signing time with microsecond precision,example=2025-04-01T12:00:00.123456Z"`
	Signature  string `json:"signature" jsonschema:"title=Signature,description=Base64 of the 64-byte big-endian r||s ECDSA signature"`
}

// SignedPayload is the byte string the signature in r covers.
func (r SignResponse) SignedPayload() []byte {
	return BuildSignedPayload(r.Message, r.TimeSigned)
}

type ErrorResponse struct {
	Error string `json:"error" jsonschema:"title=Error,description=Human readable failure reason"`
}
