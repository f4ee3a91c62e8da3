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

package log

import (
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsSilent(t *testing.T) {
	SetLogger(nil)
	assert.IsType(t, SilentLogger{}, GetLogger())
	// must not panic
	Infof("hello %s", "world")
	Errorf("failed: %w", errors.New("boom"))
}

func TestLogrusBackend(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	SetLogger(logger)
	t.Cleanup(func() { SetLogger(nil) })

	Infof("signed %d messages", 3)
	require.Len(t, hook.AllEntries(), 1)
	assert.Equal(t, logrus.InfoLevel, hook.LastEntry().Level)
	assert.Equal(t, "signed 3 messages", hook.LastEntry().Message)

	Warnf("key load failed: %w", errors.New("short read"))
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
	assert.Equal(t, "key load failed: short read", hook.LastEntry().Message)

	Debug("debug line")
	assert.Equal(t, logrus.DebugLevel, hook.LastEntry().Level)
	assert.Len(t, hook.AllEntries(), 3)
}
