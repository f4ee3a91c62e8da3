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
	"sort"

	"github.com/in-toto/go-vts/log"
)

// Registry maps a name to a factory and the options that entity accepts. Key
// providers register themselves here so configuration files and CLI flags can
// select and configure one by name.
type Registry[T any] struct {
	entriesByName map[string]Entry[T]
}

type FactoryFunc[T any] func() T

type Entry[T any] struct {
	Factory FactoryFunc[T]
	Name    string
	Options []Configurer
}

func New[T any]() Registry[T] {
	return Registry[T]{
		entriesByName: make(map[string]Entry[T]),
	}
}

// Register adds or replaces the entry for name.
func (r Registry[T]) Register(name string, factoryFunc FactoryFunc[T], opts ...Configurer) Entry[T] {
	entry := Entry[T]{
		Name:    name,
		Factory: factoryFunc,
		Options: opts,
	}

	r.entriesByName[name] = entry
	return entry
}

func (r Registry[T]) Entry(name string) (Entry[T], bool) {
	entry, ok := r.entriesByName[name]
	return entry, ok
}

// AllEntries returns every entry sorted by name.
func (r Registry[T]) AllEntries() []Entry[T] {
	results := make([]Entry[T], 0, len(r.entriesByName))
	for _, registration := range r.entriesByName {
		results = append(results, registration)
	}

	sort.Slice(results, func(i, j int) bool { return results[i].Name < results[j].Name })
	return results
}

// NewEntity creates an entity with its default option values applied, then runs
// each of optSetters over it in order.
func (r Registry[T]) NewEntity(name string, optSetters ...func(T) (T, error)) (T, error) {
	var result T
	entry, ok := r.Entry(name)
	if !ok {
		return result, ErrUnknownEntry(name)
	}

	result, err := SetDefaultVals(entry.Factory(), entry.Options)
	if err != nil {
		return result, fmt.Errorf("could not set default values: %w", err)
	}

	return SetOptions(result, optSetters...)
}

// NewEntityFromConfigMap creates an entity and sets every option whose name is a
// key of configMap. Unknown keys are logged and ignored.
func (r Registry[T]) NewEntityFromConfigMap(name string, configMap map[string]any) (T, error) {
	var result T
	entry, ok := r.Entry(name)
	if !ok {
		return result, ErrUnknownEntry(name)
	}

	result, err := SetDefaultVals(entry.Factory(), entry.Options)
	if err != nil {
		return result, fmt.Errorf("could not set default values: %w", err)
	}

	return SetOptionsFromConfigMap(result, entry.Options, configMap)
}

type ErrUnknownEntry string

func (e ErrUnknownEntry) Error() string {
	return fmt.Sprintf("could not find entry with name %v", string(e))
}

func SetOptions[T any](entity T, optSetters ...func(T) (T, error)) (T, error) {
	var err error
	result := entity
	for _, setter := range optSetters {
		result, err = setter(result)
		if err != nil {
			return result, err
		}
	}

	return result, nil
}

func SetDefaultVals[T any](entity T, opts []Configurer) (T, error) {
	var err error
	for _, opt := range opts {
		switch o := opt.(type) {
		case *ConfigOption[T, string]:
			entity, err = o.Setter()(entity, o.DefaultVal())
		case *ConfigOption[T, bool]:
			entity, err = o.Setter()(entity, o.DefaultVal())
		}

		if err != nil {
			return entity, err
		}
	}

	return entity, nil
}

func SetOptionsFromConfigMap[T any](entity T, configurers []Configurer, configMap map[string]any) (T, error) {
	optsByName := make(map[string]Configurer)
	for _, opt := range configurers {
		optsByName[opt.Name()] = opt
	}

	var err error
	for name, value := range configMap {
		opt, ok := optsByName[name]
		if !ok {
			log.Debugf("unknown option name in config map: %v", name)
			continue
		}

		switch o := opt.(type) {
		case *ConfigOption[T, string]:
			val, ok := value.(string)
			if !ok {
				return entity, ErrOptionType{Name: name, Expected: "string", Value: value}
			}
			entity, err = o.Setter()(entity, val)
		case *ConfigOption[T, bool]:
			val, ok := value.(bool)
			if !ok {
				return entity, ErrOptionType{Name: name, Expected: "bool", Value: value}
			}
			entity, err = o.Setter()(entity, val)
		}

		if err != nil {
			return entity, err
		}
	}

	return entity, nil
}

type ErrOptionType struct {
	Name     string
	Expected string
	Value    any
}

func (e ErrOptionType) Error() string {
	return fmt.Sprintf("expected value for option %v to be a %v but got %T", e.Name, e.Expected, e.Value)
}
