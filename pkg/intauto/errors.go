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
package intauto

import (
	"fmt"

	"github.com/abc-solver/core/pkg/arith"
)

// ErrOrderingMismatch is returned by Intersect/Union when the two operand
// automata's variable orderings differ. Combining them would silently
// misalign bit positions, so this is always a caller bug; it is never
// raised by construction from a single formula.
type ErrOrderingMismatch struct {
	Left, Right []string
}

func (e *ErrOrderingMismatch) Error() string {
	return fmt.Sprintf("intauto: variable orderings differ: %v vs %v", e.Left, e.Right)
}

// ErrUnsupportedKind is returned by FromComparison for an arith.Kind
// outside {EQ,NEQ,LT,LE,GT,GE}.
type ErrUnsupportedKind struct {
	Kind arith.Kind
}

func (e *ErrUnsupportedKind) Error() string {
	return fmt.Sprintf("intauto: unsupported comparison kind %s", e.Kind)
}

// ErrNotSingleVariable is returned by operations, such as ToSemilinearSet,
// that only make sense for an automaton tracking exactly one variable.
type ErrNotSingleVariable struct {
	Variables []string
}

func (e *ErrNotSingleVariable) Error() string {
	return fmt.Sprintf("intauto: operation requires exactly one tracked variable, got %v", e.Variables)
}
