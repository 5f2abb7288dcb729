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

// Package orchestrate wires pkg/relate's string-relational extraction and
// pkg/intauto's binary-integer automata together into the per-component
// output spec §4.6/§6 ("Produced outputs") describes, and serializes that
// output for golden-file tests and debug dumps.
package orchestrate

import (
	"github.com/segmentio/encoding/json"

	"github.com/abc-solver/core/pkg/intauto"
)

// OpaqueStringDFA is a placeholder handle for a string-theory DFA
// instance. The string-DFA subsystem itself is out of scope for this
// module (spec §1); Solve never constructs one, so Bundle.String is
// always empty on a value Solve returns. The type exists so a caller's
// own string-DFA layer has a typed slot to attach its handles to, indexed
// by the component's track, before re-serializing the bundle.
type OpaqueStringDFA struct {
	Track int `json:"track"`
}

// Bundle is a component's produced outputs: one BinaryIntAutomaton per
// recognized length/count constraint, plus whatever string-DFA handles a
// caller has attached.
type Bundle struct {
	Integer []*intauto.Automaton
	String  []OpaqueStringDFA
}

// MarshalJSON summarizes Integer as formula strings rather than embedding
// the automata themselves — an *intauto.Automaton owns kernel handles that
// don't survive serialization, per spec §4.8.
func (b Bundle) MarshalJSON() ([]byte, error) {
	integer := make([]string, len(b.Integer))
	for i, a := range b.Integer {
		integer[i] = a.String()
	}

	wire := struct {
		Integer []string          `json:"integer"`
		String  []OpaqueStringDFA `json:"string,omitempty"`
	}{Integer: integer, String: b.String}

	return json.Marshal(wire)
}
