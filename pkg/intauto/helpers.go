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
	"math/big"

	"github.com/abc-solver/core/pkg/util/bitword"
)

func bigZero() *big.Int { return big.NewInt(0) }

// allWords enumerates every word of the given width, in mask order.
func allWords(numVars int) []bitword.Word {
	out := make([]bitword.Word, 0, 1<<uint(numVars))

	bitword.AllMasks(uint(numVars), func(mask uint64) bool {
		out = append(out, bitword.FromMask(mask, uint(numVars)))
		return true
	})

	return out
}

// zeroCoeffs returns n zero coefficients, for the INTERSECT/UNION marker
// formulas §3 says "have zero coefficients".
func zeroCoeffs(n int) []*big.Int {
	out := make([]*big.Int, n)
	for i := range out {
		out[i] = big.NewInt(0)
	}

	return out
}

func subOne(v *big.Int) *big.Int { return new(big.Int).Sub(v, big.NewInt(1)) }
