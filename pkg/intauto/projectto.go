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
	"math/big"

	"github.com/abc-solver/core/pkg/arith"
)

// ProjectTo eliminates every variable except name, existentially
// quantifying the rest out one bit index at a time and minimizing after
// each elimination, per §4.3.5 "project_to eliminates every BDD index
// except the target's ... and remaps the remaining index to 0".
func (a *Automaton) ProjectTo(name string) (*Automaton, error) {
	target := indexOf(a.variables, name)
	if target < 0 {
		return nil, fmt.Errorf("intauto: variable %q is not tracked by this automaton", name)
	}

	vars := append([]string(nil), a.variables...)
	cur := a.dfa.Copy()

	for i := 0; i < len(vars); {
		if vars[i] == name {
			i++
			continue
		}

		next, err := cur.Project(i)
		if err != nil {
			cur.Close()
			return nil, err
		}

		minimized := next.Minimize()
		next.Close()
		cur.Close()
		cur = minimized

		vars = append(vars[:i], vars[i+1:]...)
	}

	coeff := new(big.Int).Set(a.formula.Coeffs[target])

	out := &Automaton{
		dfa:       cur,
		formula:   arith.Formula{Kind: a.formula.Kind, Constant: new(big.Int).Set(a.formula.Constant), Names: []string{name}, Coeffs: []*big.Int{coeff}},
		variables: vars,
	}

	return out, nil
}

// indexOf returns the position of name in vars, or -1.
func indexOf(vars []string, name string) int {
	for i, v := range vars {
		if v == name {
			return i
		}
	}

	return -1
}
