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

package protocol

import (
	"fmt"

	"github.com/invopop/jsonschema"
)

const schemaBaseID = "https://in-toto.io/"

// Schemas returns JSON Schemas for every wire type, keyed by a stable file name.
func Schemas() map[string]*jsonschema.Schema {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
		ExpandedStruct:            true,
	}

	types := map[string]struct {
		value       any
		description string
	}{
		"key-response":   {&KeyResponse{}, "Response to a verification key request"},
		"sign-request":   {&SignRequest{}, "Request to timestamp a message"},
		"sign-response":  {&SignResponse{}, "Signed timestamp over message ++ time-signed"},
		"error-response": {&ErrorResponse{}, "Error returned for failed requests"},
	}

	schemas := make(map[string]*jsonschema.Schema, len(types))
	for name, t := range types {
		schema := reflector.Reflect(t.value)
		schema.ID = jsonschema.ID(fmt.Sprintf("%s%s/%s", schemaBaseID, ProtocolVersion, name))
		schema.Title = name
		schema.Description = t.description
		schemas[name] = schema
	}

	return schemas
}
