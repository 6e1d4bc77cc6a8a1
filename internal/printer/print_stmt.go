package printer

import "effectlint/internal/ast"

func (p *printer) printStmt(id ast.NodeID, n *ast.Node) {
	switch n.Kind {
	case ast.Block:
		if len(n.Kids) == 0 {
			p.write("{}")
			return
		}
		p.write("{")
		p.writer.IndentPush()
		for _, stmt := range n.Kids {
			p.writer.Newline()
			p.print(stmt)
		}
		p.writer.IndentPop()
		p.writer.Newline()
		p.write("}")

	case ast.EmptyStmt:
		p.write(";")

	case ast.ExprStmt:
		expr := n.Kids[0]
		if p.startsWithBrace(expr) || p.tree.Kind(expr) == ast.FuncExpr || p.tree.Kind(expr) == ast.ClassExpr {
			p.write("(")
			p.print(expr)
			p.write(")")
		} else {
			p.printAt(expr, levelSeq)
		}
		p.write(";")

	case ast.ReturnStmt, ast.ThrowStmt:
		if n.Kind == ast.ReturnStmt {
			p.write("return")
		} else {
			p.write("throw")
		}
		if arg := n.Kids[0]; arg != ast.NoNode {
			p.write(" ")
			p.printAt(arg, levelSeq)
		}
		p.write(";")

	case ast.VarDecl:
		p.write(n.Text + " ")
		for i, decl := range n.Kids {
			if i > 0 {
				p.write(", ")
			}
			p.print(decl)
		}
		p.write(";")

	case ast.VarDeclarator:
		p.print(n.Kids[0])
		if typ := n.Kids[1]; typ != ast.NoNode {
			p.write(": ")
			p.print(typ)
		}
		if init := n.Kids[2]; init != ast.NoNode {
			p.write(" = ")
			p.printAt(init, levelAssign)
		}

	case ast.ImportDecl:
		p.printImport(n)

	case ast.NamedImports, ast.NamedExports:
		if len(n.Kids) == 0 {
			p.write("{}")
			return
		}
		p.write("{ ")
		for i, spec := range n.Kids {
			if i > 0 {
				p.write(", ")
			}
			p.print(spec)
		}
		p.write(" }")

	case ast.ImportSpec, ast.ExportSpec:
		if n.Has(ast.FlagTypeOnly) {
			p.write("type ")
		}
		p.print(n.Kids[0])
		if alias := n.Kids[1]; alias != ast.NoNode {
			p.write(" as ")
			p.print(alias)
		}

	default:
		p.write(p.tree.Text(id))
	}
}

// printImport renders 'import [type] def, * as ns, { named } from "mod";'.
func (p *printer) printImport(n *ast.Node) {
	def, ns, named, mod := n.Kids[0], n.Kids[1], n.Kids[2], n.Kids[3]
	p.write("import ")
	if n.Has(ast.FlagTypeOnly) {
		p.write("type ")
	}
	var parts int
	if def != ast.NoNode {
		p.print(def)
		parts++
	}
	if ns != ast.NoNode {
		if parts > 0 {
			p.write(", ")
		}
		p.write("* as ")
		p.print(ns)
		parts++
	}
	if named != ast.NoNode {
		if parts > 0 {
			p.write(", ")
		}
		p.print(named)
		parts++
	}
	if parts > 0 {
		p.write(" from ")
	}
	p.print(mod)
	p.write(";")
}
