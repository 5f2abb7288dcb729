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
package relate

// TrackMap assigns each string variable encountered while walking one
// and-component a dense, zero-based coordinate index, in first-occurrence
// order.
type TrackMap struct {
	index map[string]int
	order []string
}

// NewTrackMap returns an empty track map.
func NewTrackMap() *TrackMap {
	return &TrackMap{index: make(map[string]int)}
}

// Track returns name's index, assigning it the next unused index (the
// current map size) if this is the first time name has been tracked.
func (m *TrackMap) Track(name string) int {
	if i, ok := m.index[name]; ok {
		return i
	}

	i := len(m.order)
	m.index[name] = i
	m.order = append(m.order, name)

	return i
}

// Index looks up name's assigned index without tracking it.
func (m *TrackMap) Index(name string) (int, bool) {
	i, ok := m.index[name]
	return i, ok
}

// Len returns the number of distinct variables tracked.
func (m *TrackMap) Len() int { return len(m.order) }

// Names returns the tracked variables in first-occurrence (index) order.
func (m *TrackMap) Names() []string { return append([]string(nil), m.order...) }
