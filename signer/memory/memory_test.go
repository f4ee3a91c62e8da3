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

package memory

import (
	"context"
	"testing"

	"github.com/in-toto/go-vts/signer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemorySignerProvider(t *testing.T) {
	sp, err := signer.NewSignerProvider("memory")
	require.NoError(t, err)

	first, err := sp.KeyPair(context.Background())
	require.NoError(t, err)
	second, err := sp.KeyPair(context.Background())
	require.NoError(t, err)
	assert.Same(t, first, second)

	other, err := signer.NewSignerProvider("memory")
	require.NoError(t, err)
	third, err := other.KeyPair(context.Background())
	require.NoError(t, err)
	assert.False(t, first.VerificationKey().Equal(third.VerificationKey()))
}
