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
)

// Sign reads the whole message from r, timestamps it with s and writes the
// JSON encoded response to w.
func Sign(ctx context.Context, s *Service, r io.Reader, w io.Writer) error {
	message, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("failed to read message: %w", err)
	}

	resp, err := s.Sign(ctx, string(message))
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(w)
	return encoder.Encode(&resp)
}
