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

// Package protocol defines the bytes a VTS signature covers and the wire shapes
// that carry keys and signatures between a server and its clients.
//
// The timestamp is embedded in the signed bytes as text, so TimestampLayout is
// part of the wire contract: a verifier must see the exact string the signer
// formatted. Changing the layout breaks every signature made under it.
package protocol

import (
	"fmt"
	"time"
)

const (
	ProtocolVersion = "vts/1"

	// TimestampLayout is UTC with exactly six fractional digits and a literal Z.
	TimestampLayout = "2006-01-02T15:04:05.000000Z"
)

// BuildSignedPayload returns utf8(message) ++ utf8(timestamp) with no separator
// and no length prefix. Signers and verifiers must both build the signed bytes
// through this function.
func BuildSignedPayload(message, timestamp string) []byte {
	payload := make([]byte, 0, len(message)+len(timestamp))
	payload = append(payload, message...)
	return append(payload, timestamp...)
}

// FormatTimestamp converts t to UTC and truncates it to microseconds.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Truncate(time.Microsecond).Format(TimestampLayout)
}

type ErrInvalidTimestamp struct {
	Value string
}

func (e ErrInvalidTimestamp) Error() string {
	return fmt.Sprintf("timestamp %q does not match layout %s", e.Value, TimestampLayout)
}

// ParseTimestamp only accepts strings that FormatTimestamp could have produced.
func ParseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse(TimestampLayout, s)
	if err != nil || t.Format(TimestampLayout) != s {
		return time.Time{}, ErrInvalidTimestamp{Value: s}
	}

	return t, nil
}
