package ast

import (
	"effectlint/internal/source"
	"effectlint/internal/token"
)

// NodeID addresses a node inside a Tree's arena. NoNode marks an empty slot.
type NodeID uint32

const NoNode NodeID = 0

type Flags uint32

const (
	FlagAsync Flags = 1 << iota
	FlagGenerator
	FlagStatic
	FlagAbstract
	FlagReadonly
	FlagDeclare
	FlagOptional
	FlagRest
	FlagDelegate // yield*
	FlagPrefix   // ++x
	FlagOptionalChain
	FlagTypeOnly
	FlagDefault
	FlagConst
	FlagAwait // for await
	FlagPublic
	FlagPrivate
	FlagProtected
	FlagOverride
	FlagAccessor
	FlagDefinite // x!: T
	FlagNoArgs   // new Foo without parentheses
	FlagSynthetic
)

// Node is one syntax node. Text carries the identifier name, literal source,
// operator or sub-kind depending on Kind.
type Node struct {
	Kind  Kind
	Flags Flags
	Span  source.Span
	Text  string
	Kids  []NodeID
}

func (n *Node) Has(f Flags) bool { return n.Flags&f != 0 }

// Tree owns every node of one parsed file.
type Tree struct {
	File     *source.File
	Nodes    *Arena[Node]
	Root     NodeID
	Comments []token.Trivia
}

func NewTree(file *source.File, capHint uint) *Tree {
	return &Tree{
		File:  file,
		Nodes: NewArena[Node](capHint),
	}
}

// New allocates a node and returns its id.
func (t *Tree) New(kind Kind, span source.Span, text string, flags Flags, kids ...NodeID) NodeID {
	return NodeID(t.Nodes.Allocate(Node{Kind: kind, Flags: flags, Span: span, Text: text, Kids: kids}))
}

// Node returns the node for id, or nil for NoNode.
func (t *Tree) Node(id NodeID) *Node {
	return t.Nodes.Get(uint32(id))
}

func (t *Tree) Kind(id NodeID) Kind {
	if n := t.Node(id); n != nil {
		return n.Kind
	}
	return Invalid
}

func (t *Tree) Text(id NodeID) string {
	if n := t.Node(id); n != nil {
		return n.Text
	}
	return ""
}

func (t *Tree) Span(id NodeID) source.Span {
	if n := t.Node(id); n != nil {
		return n.Span
	}
	return source.Span{}
}

func (t *Tree) Has(id NodeID, f Flags) bool {
	if n := t.Node(id); n != nil {
		return n.Has(f)
	}
	return false
}

// Kid returns the i-th kid or NoNode when the slot is absent.
func (t *Tree) Kid(id NodeID, i int) NodeID {
	n := t.Node(id)
	if n == nil || i < 0 || i >= len(n.Kids) {
		return NoNode
	}
	return n.Kids[i]
}

func (t *Tree) Kids(id NodeID) []NodeID {
	if n := t.Node(id); n != nil {
		return n.Kids
	}
	return nil
}

// Source returns the original text covered by the node's span.
func (t *Tree) Source(id NodeID) string {
	n := t.Node(id)
	if n == nil || n.Has(FlagSynthetic) || t.File == nil {
		return ""
	}
	return t.File.Text(n.Span)
}

// Is reports whether id is an identifier with the given name.
func (t *Tree) Is(id NodeID, kind Kind, text string) bool {
	n := t.Node(id)
	return n != nil && n.Kind == kind && n.Text == text
}

// IsIdent reports whether id is an identifier named name.
func (t *Tree) IsIdent(id NodeID, name string) bool {
	return t.Is(id, Ident, name)
}

// Unparen strips any number of enclosing parentheses.
func (t *Tree) Unparen(id NodeID) NodeID {
	for t.Kind(id) == ParenExpr {
		id = t.Kid(id, 0)
	}
	return id
}

// Callee returns the callee of a call or new expression.
func (t *Tree) Callee(call NodeID) NodeID { return t.Kid(call, 0) }

// Args returns the argument list of a call or new expression.
func (t *Tree) Args(call NodeID) []NodeID {
	kids := t.Kids(call)
	if len(kids) < 2 {
		return nil
	}
	return kids[2:]
}

// Arg returns the i-th call argument or NoNode.
func (t *Tree) Arg(call NodeID, i int) NodeID {
	args := t.Args(call)
	if i < 0 || i >= len(args) {
		return NoNode
	}
	return args[i]
}

// FuncParams returns the Params node of a function-like node.
func (t *Tree) FuncParams(fn NodeID) NodeID {
	switch t.Kind(fn) {
	case FuncDecl, FuncExpr:
		return t.Kid(fn, 2)
	case ArrowFunc:
		return t.Kid(fn, 1)
	case MethodDecl:
		return t.Kid(fn, 3)
	}
	return NoNode
}

// FuncBody returns the body of a function-like node: a Block, or an
// expression for concise arrows.
func (t *Tree) FuncBody(fn NodeID) NodeID {
	switch t.Kind(fn) {
	case FuncDecl, FuncExpr:
		return t.Kid(fn, 4)
	case ArrowFunc:
		return t.Kid(fn, 3)
	case MethodDecl:
		return t.Kid(fn, 5)
	}
	return NoNode
}

// DottedName renders a chain of identifiers and member accesses such as
// Effect.runPromise. Any other shape yields "".
func (t *Tree) DottedName(id NodeID) string {
	n := t.Node(id)
	if n == nil {
		return ""
	}
	switch n.Kind {
	case Ident, ThisExpr:
		if n.Kind == ThisExpr {
			return "this"
		}
		return n.Text
	case MemberExpr:
		obj := t.DottedName(n.Kids[0])
		prop := t.Node(n.Kids[1])
		if obj == "" || prop == nil || prop.Kind != Ident {
			return ""
		}
		return obj + "." + prop.Text
	case ParenExpr:
		return t.DottedName(n.Kids[0])
	}
	return ""
}

// StringValue returns the contents of a string literal without quotes.
// Escape sequences are kept as written.
func (t *Tree) StringValue(id NodeID) (string, bool) {
	n := t.Node(id)
	if n == nil {
		return "", false
	}
	switch n.Kind {
	case StringLit:
		if len(n.Text) < 2 {
			return "", false
		}
		return n.Text[1 : len(n.Text)-1], true
	case TemplateLit:
		if len(n.Kids) != 0 {
			return "", false
		}
		return n.Text, true
	}
	return "", false
}
