// Copyright ABC Solver Contributors
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package orchestrate

import (
	"github.com/segmentio/encoding/json"

	"github.com/abc-solver/core/pkg/ast"
	"github.com/abc-solver/core/pkg/relate"
)

// ComponentResult is the per-component triple spec §6 "Produced outputs"
// names: the and-component term itself (an identity-only back-reference,
// owned by the caller's AST, never serialized), the track map extracted
// for it, and its produced automata.
type ComponentResult struct {
	Component ast.Term
	Tracks    *relate.TrackMap
	Bundle    Bundle
}

// MarshalJSON renders Tracks as a plain name→index map; Component is
// omitted, since it is a caller-owned AST node with no serializable form
// of its own.
func (r ComponentResult) MarshalJSON() ([]byte, error) {
	tracks := make(map[string]int)

	if r.Tracks != nil {
		for _, name := range r.Tracks.Names() {
			idx, _ := r.Tracks.Index(name)
			tracks[name] = idx
		}
	}

	wire := struct {
		Tracks map[string]int `json:"tracks"`
		Bundle Bundle         `json:"bundle"`
	}{Tracks: tracks, Bundle: r.Bundle}

	return json.Marshal(wire)
}
