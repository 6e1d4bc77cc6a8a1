package ast

import (
	"strings"

	"effectlint/internal/source"
)

// Synth builds new nodes inside an existing tree. Built nodes are flagged
// FlagSynthetic and may reference original subtrees, which are never mutated.
type Synth struct {
	t *Tree
}

func NewSynth(t *Tree) *Synth {
	return &Synth{t: t}
}

func (s *Synth) Node(kind Kind, text string, flags Flags, kids ...NodeID) NodeID {
	return s.t.New(kind, source.Span{}, text, flags|FlagSynthetic, kids...)
}

func (s *Synth) Ident(name string) NodeID {
	return s.Node(Ident, name, 0)
}

// Dotted builds a member chain from a name such as "Effect.log".
func (s *Synth) Dotted(name string) NodeID {
	parts := strings.Split(name, ".")
	id := s.Ident(parts[0])
	for _, p := range parts[1:] {
		id = s.Member(id, p)
	}
	return id
}

func (s *Synth) Member(obj NodeID, prop string) NodeID {
	return s.Node(MemberExpr, "", 0, obj, s.Ident(prop))
}

func (s *Synth) Call(callee NodeID, args ...NodeID) NodeID {
	kids := make([]NodeID, 0, len(args)+2)
	kids = append(kids, callee, NoNode)
	kids = append(kids, args...)
	return s.Node(CallExpr, "", 0, kids...)
}

func (s *Synth) Param(name string) NodeID {
	return s.Node(Param, "", 0, NoNode, s.Ident(name), NoNode, NoNode)
}

// Arrow builds (params) => body, where body is an expression or a Block.
func (s *Synth) Arrow(params []string, body NodeID) NodeID {
	ps := make([]NodeID, 0, len(params))
	for _, p := range params {
		ps = append(ps, s.Param(p))
	}
	return s.Node(ArrowFunc, "", 0, NoNode, s.Node(Params, "", 0, ps...), NoNode, body)
}

// Yield builds yield or yield* around operand.
func (s *Synth) Yield(operand NodeID, delegate bool) NodeID {
	var f Flags
	if delegate {
		f = FlagDelegate
	}
	return s.Node(YieldExpr, "", f, operand)
}

func (s *Synth) Return(expr NodeID) NodeID {
	return s.Node(ReturnStmt, "", 0, expr)
}

func (s *Synth) ExprStmt(expr NodeID) NodeID {
	return s.Node(ExprStmt, "", 0, expr)
}

func (s *Synth) Paren(expr NodeID) NodeID {
	return s.Node(ParenExpr, "", 0, expr)
}

// String builds a double-quoted string literal; value must not need escaping.
func (s *Synth) String(value string) NodeID {
	return s.Node(StringLit, `"`+value+`"`, 0)
}

func (s *Synth) Number(raw string) NodeID {
	return s.Node(NumberLit, raw, 0)
}
