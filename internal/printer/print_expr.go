package printer

import (
	"strings"

	"effectlint/internal/ast"
)

func (p *printer) printExpr(id ast.NodeID, n *ast.Node) {
	t := p.tree
	switch n.Kind {
	case ast.Ident, ast.PrivateName, ast.ThisExpr, ast.SuperExpr, ast.NullLit, ast.BoolLit,
		ast.NumberLit, ast.BigIntLit, ast.StringLit, ast.RegExpLit, ast.TypeRef:
		p.write(n.Text)

	case ast.Omitted:

	case ast.TemplateLit:
		p.printTemplate(n)

	case ast.TaggedTemplate:
		p.printAt(n.Kids[0], levelCall)
		p.print(n.Kids[1])
		p.print(n.Kids[2])

	case ast.ParenExpr:
		p.write("(")
		p.print(n.Kids[0])
		p.write(")")

	case ast.MemberExpr:
		p.printAt(n.Kids[0], levelCall)
		if n.Has(ast.FlagOptionalChain) {
			p.write("?.")
		} else {
			p.write(".")
		}
		p.print(n.Kids[1])

	case ast.IndexExpr:
		p.printAt(n.Kids[0], levelCall)
		if n.Has(ast.FlagOptionalChain) {
			p.write("?.")
		}
		p.write("[")
		p.printAt(n.Kids[1], levelSeq)
		p.write("]")

	case ast.NonNullExpr:
		p.printAt(n.Kids[0], levelCall)
		p.write("!")

	case ast.CallExpr:
		p.printAt(n.Kids[0], levelCall)
		if n.Has(ast.FlagOptionalChain) {
			p.write("?.")
		}
		p.print(n.Kids[1])
		p.write("(")
		p.list(t.Args(id), ", ")
		p.write(")")

	case ast.NewExpr:
		p.write("new ")
		p.printAt(n.Kids[0], levelCall)
		p.print(n.Kids[1])
		if !n.Has(ast.FlagNoArgs) {
			p.write("(")
			p.list(t.Args(id), ", ")
			p.write(")")
		}

	case ast.ExprWithTypeArgs:
		p.printAt(n.Kids[0], levelCall)
		p.print(n.Kids[1])

	case ast.ArrowFunc:
		p.printArrow(n)

	case ast.FuncExpr:
		p.printFunction(n)

	case ast.Params:
		p.write("(")
		p.list(n.Kids, ", ")
		p.write(")")

	case ast.Param:
		p.printParam(n)

	case ast.YieldExpr:
		p.write("yield")
		if n.Has(ast.FlagDelegate) {
			p.write("*")
		}
		if arg := n.Kids[0]; arg != ast.NoNode {
			p.write(" ")
			p.printAt(arg, levelAssign)
		}

	case ast.AwaitExpr:
		p.write("await ")
		p.printAt(n.Kids[0], levelUnary)

	case ast.UnaryExpr:
		p.write(n.Text)
		if isWordOperator(n.Text) {
			p.write(" ")
		}
		p.printAt(n.Kids[0], levelUnary)

	case ast.UpdateExpr:
		if n.Has(ast.FlagPrefix) {
			p.write(n.Text)
			p.printAt(n.Kids[0], levelUnary)
		} else {
			p.printAt(n.Kids[0], levelCall)
			p.write(n.Text)
		}

	case ast.BinaryExpr:
		lvl := p.level(id)
		left, right := lvl, lvl+1
		if n.Text == "**" {
			left, right = lvl+1, lvl
		}
		p.printAt(n.Kids[0], left)
		p.write(" " + n.Text + " ")
		p.printAt(n.Kids[1], right)

	case ast.AssignExpr:
		p.printAt(n.Kids[0], levelCall)
		p.write(" " + n.Text + " ")
		p.printAt(n.Kids[1], levelAssign)

	case ast.CondExpr:
		p.printAt(n.Kids[0], levelCoalesce)
		p.write(" ? ")
		p.printAt(n.Kids[1], levelAssign)
		p.write(" : ")
		p.printAt(n.Kids[2], levelAssign)

	case ast.SequenceExpr:
		p.list(n.Kids, ", ")

	case ast.AsExpr:
		if n.Text == "<>" {
			p.write("<")
			p.print(n.Kids[1])
			p.write(">")
			p.printAt(n.Kids[0], levelUnary)
			return
		}
		p.printAt(n.Kids[0], levelRelational)
		p.write(" " + n.Text + " ")
		p.print(n.Kids[1])

	case ast.ArrayLit:
		p.write("[")
		p.list(n.Kids, ", ")
		p.write("]")

	case ast.ObjectLit:
		if len(n.Kids) == 0 {
			p.write("{}")
			return
		}
		p.write("{ ")
		p.list(n.Kids, ", ")
		p.write(" }")

	case ast.PropertyAssign:
		p.print(n.Kids[0])
		p.write(": ")
		p.printAt(n.Kids[1], levelAssign)

	case ast.ShorthandProp:
		p.print(n.Kids[0])
		if n.Kids[1] != ast.NoNode {
			p.write(" = ")
			p.printAt(n.Kids[1], levelAssign)
		}

	case ast.SpreadElement:
		p.write("...")
		p.printAt(n.Kids[0], levelAssign)

	case ast.ComputedKey:
		p.write("[")
		p.printAt(n.Kids[0], levelAssign)
		p.write("]")

	case ast.TypeArgs, ast.TypeParams:
		p.write("<")
		p.typeList(n.Kids)
		p.write(">")

	case ast.TypeExpr:
		if n.Text != "" {
			p.write(n.Text)
			return
		}
		p.typeList(n.Kids)

	default:
		p.write(t.Text(id))
	}
}

func (p *printer) typeList(ids []ast.NodeID) {
	for i, id := range ids {
		if i > 0 {
			p.write(", ")
		}
		p.print(id)
	}
}

func isWordOperator(op string) bool {
	return op == "typeof" || op == "void" || op == "delete"
}

// printTemplate rebuilds a template from its "${}"-joined quasis.
func (p *printer) printTemplate(n *ast.Node) {
	quasis := strings.Split(n.Text, "${}")
	p.write("`")
	for i, q := range quasis {
		p.write(q)
		if i < len(n.Kids) {
			p.write("${")
			p.printAt(n.Kids[i], levelSeq)
			p.write("}")
		}
	}
	p.write("`")
}

func (p *printer) printArrow(n *ast.Node) {
	if n.Has(ast.FlagAsync) {
		p.write("async ")
	}
	p.print(n.Kids[0])
	p.print(n.Kids[1])
	if ret := n.Kids[2]; ret != ast.NoNode {
		p.write(": ")
		p.print(ret)
	}
	p.write(" => ")
	body := n.Kids[3]
	switch {
	case p.tree.Kind(body) == ast.Block:
		p.print(body)
	case p.startsWithBrace(body) || p.level(body) < levelAssign:
		p.write("(")
		p.print(body)
		p.write(")")
	default:
		p.print(body)
	}
}

func (p *printer) printFunction(n *ast.Node) {
	if n.Has(ast.FlagAsync) {
		p.write("async ")
	}
	p.write("function")
	if n.Has(ast.FlagGenerator) {
		p.write("*")
	}
	if name := n.Kids[0]; name != ast.NoNode {
		p.write(" ")
		p.print(name)
	}
	p.print(n.Kids[1])
	p.print(n.Kids[2])
	if ret := n.Kids[3]; ret != ast.NoNode {
		p.write(": ")
		p.print(ret)
	}
	p.write(" ")
	p.print(n.Kids[4])
}

func (p *printer) printParam(n *ast.Node) {
	if n.Has(ast.FlagRest) {
		p.write("...")
	}
	p.print(n.Kids[1])
	if n.Has(ast.FlagOptional) {
		p.write("?")
	}
	if typ := n.Kids[2]; typ != ast.NoNode {
		p.write(": ")
		p.print(typ)
	}
	if init := n.Kids[3]; init != ast.NoNode {
		p.write(" = ")
		p.printAt(init, levelAssign)
	}
}
