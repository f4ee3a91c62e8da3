// Copyright 2024 The Witness Contributors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package vts

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"testing"
	"time"

	"github.com/dropbox/godropbox/time2"
	"github.com/in-toto/go-vts/cryptoutil"
	"github.com/in-toto/go-vts/protocol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var signingTime = time.Date(2025, time.April, 1, 12, 0, 0, 123456789, time.UTC)

func newTestService(t *testing.T) *Service {
	t.Helper()
	kp, err := cryptoutil.GenerateKeyPair()
	require.NoError(t, err)
	s, err := NewService(kp, ServiceWithClock(time2.NewMockClock(signingTime)))
	require.NoError(t, err)
	return s
}

func TestVerifyResponse(t *testing.T) {
	s := newTestService(t)
	key := s.Key()
	resp, err := s.Sign(context.Background(), "Hello, VTS!")
	require.NoError(t, err)

	assert.Equal(t, "POST", resp.Request)
	assert.Equal(t, "Hello, VTS!", resp.Message)
	assert.Equal(t, "2025-04-01T12:00:00.123456Z", resp.TimeSigned)
	assert.True(t, VerifyResponse(resp, key))
	assert.True(t, VerifyResponseWithKey(resp, s.PublicKey()))
	assert.NoError(t, VerifyResponseDetailed(resp, key.PublicKey))

	t.Run("unrelated key", func(t *testing.T) {
		other := newTestService(t)
		assert.False(t, VerifyResponse(resp, other.Key()))
		err := VerifyResponseDetailed(resp, other.Key().PublicKey)
		assert.ErrorAs(t, err, &cryptoutil.ErrVerifyFailed{})
	})

	t.Run("tampered message", func(t *testing.T) {
		tampered := resp
		tampered.Message = "Hello, VTS?"
		assert.False(t, VerifyResponse(tampered, key))
	})

	t.Run("tampered timestamp", func(t *testing.T) {
		tampered := resp
		tampered.TimeSigned = "2025-04-01T12:00:00.123457Z"
		assert.False(t, VerifyResponse(tampered, key))
	})

	t.Run("garbage signature", func(t *testing.T) {
		tampered := resp
		tampered.Signature = "not base64!!"
		assert.False(t, VerifyResponse(tampered, key))
		err := VerifyResponseDetailed(tampered, key.PublicKey)
		assert.ErrorAs(t, err, &protocol.ErrDecode{})
	})

	t.Run("short signature", func(t *testing.T) {
		tampered := resp
		tampered.Signature = base64.StdEncoding.EncodeToString(make([]byte, 63))
		assert.False(t, VerifyResponse(tampered, key))
	})

	t.Run("garbage key", func(t *testing.T) {
		assert.False(t, VerifyResponse(resp, protocol.KeyResponse{PublicKey: "%%%"}))
		assert.False(t, VerifyResponse(resp, protocol.KeyResponse{}))
		assert.False(t, VerifyResponseWithKey(resp, nil))
	})
}

func TestVerifyRejectsSpliceAcrossResponses(t *testing.T) {
	s := newTestService(t)
	key := s.Key()
	first, err := s.Sign(context.Background(), "first")
	require.NoError(t, err)
	second, err := s.Sign(context.Background(), "second")
	require.NoError(t, err)

	spliced := first
	spliced.Signature = second.Signature
	assert.False(t, VerifyResponse(spliced, key))
}

func TestVerifySignature(t *testing.T) {
	s := newTestService(t)
	buf := &bytes.Buffer{}
	require.NoError(t, Sign(context.Background(), s, bytes.NewBufferString("from a reader"), buf))

	raw := buf.Bytes()
	resp, err := VerifySignature(bytes.NewReader(raw), s.Key().PublicKey)
	require.NoError(t, err)
	assert.Equal(t, "from a reader", resp.Message)

	other := newTestService(t)
	_, err = VerifySignature(bytes.NewReader(raw), other.Key().PublicKey)
	assert.ErrorAs(t, err, &cryptoutil.ErrVerifyFailed{})

	_, err = VerifySignature(bytes.NewBufferString("{"), s.Key().PublicKey)
	assert.Error(t, err)
}

func TestSignResponseJSON(t *testing.T) {
	s := newTestService(t)
	resp, err := s.Sign(context.Background(), "json")
	require.NoError(t, err)

	b, err := json.Marshal(resp)
	require.NoError(t, err)

	decoded := protocol.SignResponse{}
	require.NoError(t, json.Unmarshal(b, &decoded))
	assert.True(t, VerifyResponse(decoded, s.Key()))
}
