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
	"fmt"
	"sync"
)

var (
	mu  sync.RWMutex
	log Logger = SilentLogger{}
)

// Logger is used by go-vts to log information. Library code never configures a
// logging backend itself; the consuming application installs one with SetLogger.
// A *logrus.Logger satisfies this interface as is.
type Logger interface {
	Errorf(format string, args ...interface{})
	Error(args ...interface{})
	Warnf(format string, args ...interface{})
	Warn(args ...interface{})
	Debugf(format string, args ...interface{})
	Debug(args ...interface{})
	Infof(format string, args ...interface{})
	Info(args ...interface{})
}

// SetLogger will set the Logger instance that all go-vts packages will use.
// Passing nil restores the SilentLogger.
func SetLogger(l Logger) {
	mu.Lock()
	defer mu.Unlock()
	if l == nil {
		l = SilentLogger{}
	}

	log = l
}

// GetLogger returns the Logger instance currently in use.
func GetLogger() Logger {
	mu.RLock()
	defer mu.RUnlock()
	return log
}

// Errorf wraps the arguments with fmt.Errorf so %w verbs behave, then logs the result.
func Errorf(format string, args ...interface{}) {
	err := fmt.Errorf(format, args...)
	GetLogger().Error(err)
}

func Error(args ...interface{}) {
	GetLogger().Error(args...)
}

// Warnf wraps the arguments with fmt.Errorf so %w verbs behave, then logs the result.
func Warnf(format string, args ...interface{}) {
	err := fmt.Errorf(format, args...)
	GetLogger().Warn(err)
}

func Warn(args ...interface{}) {
	GetLogger().Warn(args...)
}

func Debugf(format string, args ...interface{}) {
	GetLogger().Debugf(format, args...)
}

func Debug(args ...interface{}) {
	GetLogger().Debug(args...)
}

func Infof(format string, args ...interface{}) {
	GetLogger().Infof(format, args...)
}

func Info(args ...interface{}) {
	GetLogger().Info(args...)
}
