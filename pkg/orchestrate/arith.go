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
	"math/big"

	"github.com/abc-solver/core/pkg/arith"
	"github.com/abc-solver/core/pkg/ast"
)

// buildArithFormula recognizes the two shapes of integer-sorted comparison
// ast.Term can express — var ⊙ var and var ⊙ literal, the latter in either
// operand order (literal ⊙ var is mirrored) — and reports false
// for everything else (string-sorted comparisons, booleans, and any
// comparison with no variable side at all), which are left for the
// surrounding solver per spec §4.6 "forwarded unchanged".
func buildArithFormula(t ast.Term, symbols ast.SymbolTable) (arith.Formula, bool) {
	kind, ok := arithKind(t.Type())
	if !ok {
		return arith.Formula{}, false
	}

	left, right := t.LeftTerm(), t.RightTerm()

	leftVar, leftIsVar := intVariable(left, symbols)
	rightVar, rightIsVar := intVariable(right, symbols)

	switch {
	case leftIsVar && rightIsVar:
		return arith.New(kind, big.NewInt(0), []string{leftVar, rightVar}, []*big.Int{big.NewInt(1), big.NewInt(-1)}), true
	case leftIsVar:
		c, ok := intConstant(right)
		if !ok {
			return arith.Formula{}, false
		}

		return arith.New(kind, c, []string{leftVar}, []*big.Int{big.NewInt(1)}), true
	case rightIsVar:
		c, ok := intConstant(left)
		if !ok {
			return arith.Formula{}, false
		}
		// "5 < x" reads the same as "x > 5": mirror the comparison
		// direction rather than the operand order.
		return arith.New(mirrorKind(kind), c, []string{rightVar}, []*big.Int{big.NewInt(1)}), true
	default:
		return arith.Formula{}, false
	}
}

func arithKind(k ast.Kind) (arith.Kind, bool) {
	switch k {
	case ast.Eq:
		return arith.EQ, true
	case ast.Neq:
		return arith.NEQ, true
	case ast.Lt:
		return arith.LT, true
	case ast.Le:
		return arith.LE, true
	case ast.Gt:
		return arith.GT, true
	case ast.Ge:
		return arith.GE, true
	default:
		return 0, false
	}
}

func mirrorKind(k arith.Kind) arith.Kind {
	switch k {
	case arith.LT:
		return arith.GT
	case arith.GT:
		return arith.LT
	case arith.LE:
		return arith.GE
	case arith.GE:
		return arith.LE
	default:
		return k
	}
}

func intVariable(t ast.Term, symbols ast.SymbolTable) (string, bool) {
	name, ok := t.VariableRef()
	if !ok {
		return "", false
	}

	v, found := symbols.GetVariable(name)
	if !found || v.Sort() != ast.Int {
		return "", false
	}

	return name, true
}

func intConstant(t ast.Term) (*big.Int, bool) {
	if t.Type() != ast.TermConstant {
		return nil, false
	}

	text, kind := t.ConstantPayload()
	if kind != ast.StringLiteral {
		return nil, false
	}

	n := new(big.Int)

	_, ok := n.SetString(text, 10)

	return n, ok
}
