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

// Package relate walks a caller-supplied assertion tree (pkg/ast) and
// extracts the string-relational skeleton it carries: per and-component, a
// dense track map from string variable to coordinate index, plus one
// StringRelation per relational node that survives the extractor's
// rejection rules.
package relate

import "fmt"

// Tag identifies the shape of a Relation node.
type Tag int

const (
	// StringVar is a leaf referring to a string variable by name.
	StringVar Tag = iota
	// StringConstant is a leaf literal string payload.
	StringConstant
	// Regex is a leaf regular-expression payload.
	Regex
	// ConcatVarConstant tags a Concat node. The concat visitor builds it for
	// every Concat: a variable-plus-constant concat becomes a leaf carrying
	// both halves, and any other concat becomes an inner node whose Left and
	// Right are its children's relations.
	ConcatVarConstant
	// Eq is string/arithmetic equality between Left and Right.
	Eq
	// Neq is disequality between Left and Right.
	Neq
	// Lt is strict less-than between Left and Right.
	Lt
	// Le is less-than-or-equal between Left and Right.
	Le
	// Gt is strict greater-than between Left and Right.
	Gt
	// Ge is greater-than-or-equal between Left and Right.
	Ge
	// Begins asserts Left begins with Right.
	Begins
	// NotBegins asserts Left does not begin with Right.
	NotBegins
)

func (t Tag) String() string {
	switch t {
	case StringVar:
		return "STRING_VAR"
	case StringConstant:
		return "STRING_CONSTANT"
	case Regex:
		return "REGEX"
	case ConcatVarConstant:
		return "CONCAT_VAR_CONSTANT"
	case Eq:
		return "EQ"
	case Neq:
		return "NEQ"
	case Lt:
		return "LT"
	case Le:
		return "LE"
	case Gt:
		return "GT"
	case Ge:
		return "GE"
	case Begins:
		return "BEGINS"
	case NotBegins:
		return "NOTBEGINS"
	default:
		return fmt.Sprintf("Tag(%d)", int(t))
	}
}

// Relation is a node of the extracted string-relational tree. Leaves
// (StringVar, StringConstant, Regex, a variable-plus-constant
// ConcatVarConstant) carry Payload and/or Variable; inner nodes (the
// comparison and begins/not-begins tags, and any other ConcatVarConstant)
// own up to two children.
type Relation struct {
	Tag Tag
	// Variable names the tracked variable for a StringVar or
	// ConcatVarConstant leaf; empty for every other tag.
	Variable string
	// Payload carries a StringConstant's or Regex's literal text, or a
	// ConcatVarConstant's constant half; empty for every other tag.
	Payload string
	// Left and Right are the children of an inner node. A leaf has neither;
	// an inner node whose operand resolved to no relation (e.g. a variable
	// that is not string-sorted) is nil on that side.
	Left, Right *Relation
}

func (r *Relation) String() string {
	if r == nil {
		return "<nil>"
	}

	switch r.Tag {
	case StringVar:
		return r.Variable
	case StringConstant:
		return fmt.Sprintf("%q", r.Payload)
	case Regex:
		return fmt.Sprintf("/%s/", r.Payload)
	case ConcatVarConstant:
		return fmt.Sprintf("(%s ++ %q)", r.Variable, r.Payload)
	default:
		return fmt.Sprintf("%s(%s, %s)", r.Tag, r.Left, r.Right)
	}
}

// Clone returns a deep, independently owned copy of r. Relations built by
// Extractor are never mutated after construction, so sharing a pointer
// across two parents is safe in practice; Clone exists for callers that
// want a copy they can own and mutate without aliasing the extractor's own
// relations table.
func (r *Relation) Clone() *Relation {
	if r == nil {
		return nil
	}

	return &Relation{
		Tag:      r.Tag,
		Variable: r.Variable,
		Payload:  r.Payload,
		Left:     r.Left.Clone(),
		Right:    r.Right.Clone(),
	}
}
