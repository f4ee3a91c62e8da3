// Copyright 2023 The Witness Contributors
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

package registry

import (
	"fmt"
)

type Option interface {
	string | bool
}

// Configurer is the type-erased view of a ConfigOption.
type Configurer interface {
	Description() string
	Name() string
	SetPrefix(string)
}

type ConfigOption[T any, TOption Option] struct {
	name        string
	prefix      string
	description string
	defaultVal  TOption
	setter      func(T, TOption) (T, error)
}

func (co *ConfigOption[T, TOption]) Name() string {
	if len(co.prefix) > 0 {
		return fmt.Sprintf("%s-%s", co.prefix, co.name)
	}

	return co.name
}

func (co *ConfigOption[T, TOption]) DefaultVal() TOption {
	return co.defaultVal
}

func (co *ConfigOption[T, TOption]) Description() string {
	return co.description
}

func (co *ConfigOption[T, TOption]) SetPrefix(prefix string) {
	co.prefix = prefix
}

func (co *ConfigOption[T, TOption]) Setter() func(T, TOption) (T, error) {
	return co.setter
}

func StringConfigOption[T any](name, description, defaultVal string, setter func(T, string) (T, error)) *ConfigOption[T, string] {
	return &ConfigOption[T, string]{
		name:        name,
		description: description,
		defaultVal:  defaultVal,
		setter:      setter,
	}
}

func BoolConfigOption[T any](name, description string, defaultVal bool, setter func(T, bool) (T, error)) *ConfigOption[T, bool] {
	return &ConfigOption[T, bool]{
		name:        name,
		description: description,
		defaultVal:  defaultVal,
		setter:      setter,
	}
}
