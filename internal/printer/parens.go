package printer

import "effectlint/internal/ast"

// Expression levels, loosest first. A child printed at a position that
// requires a tighter level than its own is parenthesized.
const (
	levelSeq = iota
	levelAssign
	levelCond
	levelCoalesce
	levelOr
	levelAnd
	levelBitOr
	levelBitXor
	levelBitAnd
	levelEquality
	levelRelational
	levelShift
	levelAdditive
	levelMultiplicative
	levelExponent
	levelUnary
	levelPostfix
	levelCall
	levelPrimary
)

var binaryLevel = map[string]int{
	"??": levelCoalesce,
	"||": levelOr,
	"&&": levelAnd,
	"|":  levelBitOr,
	"^":  levelBitXor,
	"&":  levelBitAnd,
	"==": levelEquality, "!=": levelEquality, "===": levelEquality, "!==": levelEquality,
	"<": levelRelational, ">": levelRelational, "<=": levelRelational, ">=": levelRelational,
	"instanceof": levelRelational, "in": levelRelational,
	"<<": levelShift, ">>": levelShift, ">>>": levelShift,
	"+": levelAdditive, "-": levelAdditive,
	"*": levelMultiplicative, "/": levelMultiplicative, "%": levelMultiplicative,
	"**": levelExponent,
}

// level returns the binding level of an expression node.
func (p *printer) level(id ast.NodeID) int {
	n := p.tree.Node(id)
	if n == nil {
		return levelPrimary
	}
	switch n.Kind {
	case ast.SequenceExpr:
		return levelSeq
	case ast.AssignExpr, ast.ArrowFunc, ast.YieldExpr:
		return levelAssign
	case ast.CondExpr:
		return levelCond
	case ast.BinaryExpr:
		if l, ok := binaryLevel[n.Text]; ok {
			return l
		}
		return levelCoalesce
	case ast.AsExpr:
		if n.Text == "<>" {
			return levelUnary
		}
		return levelRelational
	case ast.UnaryExpr, ast.AwaitExpr:
		return levelUnary
	case ast.UpdateExpr:
		if n.Has(ast.FlagPrefix) {
			return levelUnary
		}
		return levelPostfix
	case ast.CallExpr, ast.MemberExpr, ast.IndexExpr, ast.NonNullExpr, ast.TaggedTemplate:
		return levelCall
	case ast.NewExpr:
		if n.Has(ast.FlagNoArgs) {
			return levelPostfix
		}
		return levelCall
	}
	return levelPrimary
}

// printAt prints id in a position requiring at least level min.
func (p *printer) printAt(id ast.NodeID, min int) {
	if p.level(id) < min {
		p.write("(")
		p.print(id)
		p.write(")")
		return
	}
	p.print(id)
}

// startsWithBrace reports whether the printed form of id would begin with
// '{', which is read as a block in statement or concise-body position.
func (p *printer) startsWithBrace(id ast.NodeID) bool {
	for {
		n := p.tree.Node(id)
		if n == nil {
			return false
		}
		switch n.Kind {
		case ast.ObjectLit:
			return true
		case ast.MemberExpr, ast.IndexExpr, ast.CallExpr, ast.NonNullExpr, ast.TaggedTemplate,
			ast.BinaryExpr, ast.AssignExpr, ast.CondExpr, ast.SequenceExpr, ast.AsExpr:
			if n.Kind == ast.AsExpr && n.Text == "<>" {
				return false
			}
			id = n.Kids[0]
		default:
			return false
		}
	}
}
