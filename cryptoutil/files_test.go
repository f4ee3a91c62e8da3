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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyFileOperations(t *testing.T) {
	dir := t.TempDir()
	privPath := filepath.Join(dir, "private_key.bin")
	pubPath := filepath.Join(dir, "public_key.bin")

	kp, err := GenerateKeyPair()
	require.NoError(t, err)
	require.NoError(t, SaveKeyPairFiles(kp, privPath, pubPath))

	privRaw, err := os.ReadFile(privPath)
	require.NoError(t, err)
	pubRaw, err := os.ReadFile(pubPath)
	require.NoError(t, err)
	assert.Len(t, privRaw, SigningKeySize)
	assert.Len(t, pubRaw, VerificationKeySize)
	assert.Equal(t, kp.SigningKeyBytes(), privRaw)
	assert.Equal(t, kp.VerificationKeyBytes(), pubRaw)

	info, err := os.Stat(privPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	loaded, err := LoadKeyPairFiles(privPath, pubPath)
	require.NoError(t, err)

	message := []byte("Hello, World!")
	assert.True(t, loaded.Verify(message, kp.Sign(message)))
}

func TestLoadKeyPairFilesErrors(t *testing.T) {
	dir := t.TempDir()
	privPath := filepath.Join(dir, "private_key.bin")
	pubPath := filepath.Join(dir, "public_key.bin")

	_, err := LoadKeyPairFiles(privPath, pubPath)
	assert.ErrorIs(t, err, os.ErrNotExist)

	require.NoError(t, os.WriteFile(privPath, []byte("too short"), 0o600))
	require.NoError(t, os.WriteFile(pubPath, []byte("also too short"), 0o644))
	_, err = LoadKeyPairFiles(privPath, pubPath)
	assert.ErrorAs(t, err, &ErrInvalidKeyEncoding{})
}

func TestSignatureFileOperations(t *testing.T) {
	kp, err := GenerateKeyPair()
	require.NoError(t, err)

	message := []byte("Lorem ipsum dolor sit amet, consectetur adipiscing elit, sed do eiusmod tempor incididunt ut labore et dolore magna aliqua.")
	sig := kp.Sign(message)
	path := filepath.Join(t.TempDir(), "signature.bin")

	require.NoError(t, WriteSignatureFile(sig, path))
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Len(t, raw, SignatureSize)

	loaded, err := ReadSignatureFile(path)
	require.NoError(t, err)
	assert.True(t, kp.Verify(message, loaded))
}

func TestBadSignatureFile(t *testing.T) {
	kp, err := GenerateKeyPair()
	require.NoError(t, err)

	message := []byte("Lorem ipsum dolor sit amet")
	sig := kp.Sign(message)
	sig[10] ^= 0x55
	path := filepath.Join(t.TempDir(), "signature.bin")
	require.NoError(t, WriteSignatureFile(sig, path))

	loaded, err := ReadSignatureFile(path)
	require.NoError(t, err)
	assert.False(t, kp.Verify(message, loaded))

	require.NoError(t, os.WriteFile(path, sig[:8], 0o644))
	_, err = ReadSignatureFile(path)
	assert.ErrorAs(t, err, &ErrInvalidSignatureEncoding{})
}
