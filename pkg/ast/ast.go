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

// Package ast defines the contract this module consumes from its caller: an
// already-parsed assertion tree and an already-populated symbol table.  The
// module never constructs a Term itself — parsing, the symbol table, and the
// AST visitor scaffolding are external collaborators (see spec §1).
package ast

// Sort identifies the declared type of a Variable.
type Sort int

const (
	// Bool identifies a boolean-sorted variable.
	Bool Sort = iota
	// Int identifies an integer-sorted variable.
	Int
	// String identifies a string-sorted variable.
	String
)

func (s Sort) String() string {
	switch s {
	case Bool:
		return "bool"
	case Int:
		return "int"
	case String:
		return "string"
	default:
		return "?"
	}
}

// Variable is a named entity with a sort and a stable identity.  Two
// Variable values are the same declaration iff they are ==-equal; the
// module never compares variables by name across scopes.
type Variable interface {
	// Name returns the variable's declared name.
	Name() string
	// Sort returns the variable's declared sort.
	Sort() Sort
}

// SymbolTable looks up a variable's declared sort by name.
type SymbolTable interface {
	// GetVariable returns the Variable declared under name, or false if no
	// such declaration exists in scope.
	GetVariable(name string) (Variable, bool)
}

// ComponentOracle pre-classifies and-terms that should bear a track map.
// The extractor never decides this for itself; see spec §4.5.
type ComponentOracle interface {
	// IsComponent reports whether t is an and-term whose children should be
	// interpreted as a single relational component.
	IsComponent(t Term) bool
}

// Kind tags the shape of a Term.  Only the kinds the core inspects are
// listed; a caller's AST may carry additional kinds the core never visits.
type Kind int

const (
	// Qualidentifier is a bare variable reference.
	Qualidentifier Kind = iota
	// TermConstant is a literal: a string constant or a regular expression.
	TermConstant
	// Concat is a binary string concatenation.
	Concat
	// And is a boolean conjunction over TermList.
	And
	// Or is a boolean disjunction over TermList.
	Or
	// Not is a boolean negation of LeftTerm.
	Not
	// Eq is string/arithmetic equality between LeftTerm and RightTerm.
	Eq
	// Neq is disequality between LeftTerm and RightTerm.
	Neq
	// Lt is strict less-than between LeftTerm and RightTerm.
	Lt
	// Le is less-than-or-equal between LeftTerm and RightTerm.
	Le
	// Gt is strict greater-than between LeftTerm and RightTerm.
	Gt
	// Ge is greater-than-or-equal between LeftTerm and RightTerm.
	Ge
	// Begins asserts SubjectTerm begins with SearchTerm.
	Begins
	// NotBegins asserts SubjectTerm does not begin with SearchTerm.
	NotBegins
)

// ConstantKind distinguishes the two flavours of TermConstant.
type ConstantKind int

const (
	// StringLiteral marks a TermConstant carrying a literal string payload.
	StringLiteral ConstantKind = iota
	// RegexLiteral marks a TermConstant carrying a regular-expression payload.
	RegexLiteral
)

// Term is a node in the caller's assertion tree.  Accessors not relevant to
// a given Kind return nil/zero and are never called by this module in that
// case; see spec §6 "AST contract (consumed)".
type Term interface {
	// Type reports this term's Kind.
	Type() Kind
	// LeftTerm returns the left/only child of a unary or binary node.
	LeftTerm() Term
	// RightTerm returns the right child of a binary node.
	RightTerm() Term
	// SubjectTerm returns the subject of a Begins/NotBegins node.
	SubjectTerm() Term
	// SearchTerm returns the search pattern of a Begins/NotBegins node.
	SearchTerm() Term
	// TermList returns the children of an And/Or node.
	TermList() []Term
	// VariableRef returns the name of the variable a Qualidentifier node
	// refers to, with ok true (for non-Qualidentifier terms the name is the
	// constant's payload and ok is false).
	VariableRef() (name string, ok bool)
	// ConstantPayload returns a TermConstant's literal text and flavour.
	ConstantPayload() (text string, kind ConstantKind)
}
