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

package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	vts "github.com/in-toto/go-vts"
	"github.com/in-toto/go-vts/protocol"
	"github.com/in-toto/go-vts/timestamp"
)

var (
	_ timestamp.Timestamper       = Timestamper{}
	_ timestamp.TimestampVerifier = Timestamper{}
)

type ErrMessageMismatch struct{}

func (ErrMessageMismatch) Error() string {
	return "timestamped message does not match the provided data"
}

// Timestamper exposes a Client through the timestamp interfaces. The token it
// produces is the JSON encoded sign response.
type Timestamper struct {
	Client *Client
}

func NewTimestamper(c *Client) Timestamper {
	return Timestamper{Client: c}
}

func (t Timestamper) Timestamp(ctx context.Context, r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read data: %w", err)
	}

	resp, err := t.Client.RequestTimestamp(ctx, string(data))
	if err != nil {
		return nil, err
	}

	return json.Marshal(resp)
}

// Verify checks that ts is a sign response over exactly data by the server's
// key and returns the time it was signed.
func (t Timestamper) Verify(ctx context.Context, ts io.Reader, data io.Reader) (time.Time, error) {
	resp := protocol.SignResponse{}
	if err := json.NewDecoder(ts).Decode(&resp); err != nil {
		return time.Time{}, fmt.Errorf("failed to decode timestamp: %w", err)
	}

	b, err := io.ReadAll(data)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to read data: %w", err)
	}

	if string(b) != resp.Message {
		return time.Time{}, ErrMessageMismatch{}
	}

	key, err := t.Client.RequestKey(ctx)
	if err != nil {
		return time.Time{}, err
	}

	if err := vts.VerifyResponseDetailed(resp, key.PublicKey); err != nil {
		return time.Time{}, err
	}

	return protocol.ParseTimestamp(resp.TimeSigned)
}
