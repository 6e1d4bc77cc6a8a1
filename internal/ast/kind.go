package ast

// Kind tags a syntax node. Kids are positional per kind; optional slots hold NoNode.
//
//	File, Block, ClassBody, Params, Decorators, ArrayLit, ObjectLit,
//	SequenceExpr, NamedImports, NamedExports   [items...]
//	VarDecl            Text=const|let|var|using  [declarators...]
//	VarDeclarator      [binding, type, init]
//	FuncDecl, FuncExpr [name, typeParams, params, returnType, body]
//	ArrowFunc          [typeParams, params, returnType, body]
//	ClassDecl, ClassExpr [decorators, name, typeParams, extends, implements, body]
//	MethodDecl         Text=get|set|"" [decorators, key, typeParams, params, returnType, body]
//	PropertyDecl       [decorators, key, type, init]
//	Param              [decorators, binding, type, init]
//	BindingElem        [key, binding, init]  (key is NoNode for shorthand and array elements)
//	ObjectPattern, ArrayPattern [elements...]
//	PropertyAssign     [key, value]
//	ShorthandProp      [name, init]
//	SpreadElement, NonNullExpr, AwaitExpr, YieldExpr, ParenExpr, Decorator  [expr]
//	CondExpr           [test, consequent, alternate]
//	CallExpr, NewExpr  [callee, typeArgs, args...]
//	MemberExpr         [object, property]
//	IndexExpr          [object, index]
//	AsExpr             Text=as|satisfies|<> [expr, type]
//	BinaryExpr, AssignExpr  Text=operator [left, right]
//	UnaryExpr, UpdateExpr   Text=operator [operand]
//	IfStmt             [test, consequent, alternate]
//	ForStmt            [init, test, update, body]
//	ForInStmt, ForOfStmt [left, right, body]
//	TryStmt            [block, handler, finalizer]
//	CatchClause        [binding, type, block]
//	SwitchStmt         [discriminant, cases...]
//	CaseClause         [test, statements...]
//	ImportDecl         [default, namespace, named, module]
//	ImportSpec         [imported, local]
//	ImportEquals       [name, reference]
//	ExportNamed        Text=*|"" [named or namespace, module]
//	ExportSpec         [local, exported]
//	TypeAliasDecl      [name, typeParams, type]
//	InterfaceDecl      [name, typeParams, heritage, body]
//	EnumDecl           [name, members...]
//	ModuleDecl         Text=namespace|module|global [name, body]
//	TemplateLit        Text=quasis joined by "${}" [substitutions...]
//	TaggedTemplate     [tag, typeArgs, template]
//	ExprWithTypeArgs   [expr, typeArgs]  (class heritage, instantiation expressions)
//
// Type positions (TypeExpr, TypeArgs, TypeParams, IndexSignature) are flat:
// their kids are the TypeRef leaves in source order, each spanning one
// possibly qualified name such as any, string or Effect.Effect.
type Kind uint8

const (
	Invalid Kind = iota
	File

	Block
	EmptyStmt
	ExprStmt
	VarDecl
	VarDeclarator
	FuncDecl
	ClassDecl
	IfStmt
	ForStmt
	ForInStmt
	ForOfStmt
	WhileStmt
	DoWhileStmt
	ReturnStmt
	ThrowStmt
	BreakStmt
	ContinueStmt
	TryStmt
	CatchClause
	SwitchStmt
	CaseClause
	LabeledStmt
	DebuggerStmt
	WithStmt
	ImportDecl
	NamedImports
	ImportSpec
	ImportEquals
	ExportDecl
	ExportNamed
	NamedExports
	ExportSpec
	ExportAssign
	TypeAliasDecl
	InterfaceDecl
	EnumDecl
	EnumMember
	ModuleDecl

	ClassBody
	MethodDecl
	PropertyDecl
	StaticBlock
	IndexSignature
	Decorators
	Decorator

	Params
	Param
	TypeParams
	TypeArgs
	TypeExpr
	TypeRef

	ObjectPattern
	ArrayPattern
	BindingElem

	Ident
	PrivateName
	ThisExpr
	SuperExpr
	NullLit
	BoolLit
	NumberLit
	BigIntLit
	StringLit
	RegExpLit
	TemplateLit
	TaggedTemplate
	ArrayLit
	ObjectLit
	PropertyAssign
	ShorthandProp
	SpreadElement
	ComputedKey
	Omitted
	FuncExpr
	ArrowFunc
	ClassExpr
	CallExpr
	NewExpr
	MemberExpr
	IndexExpr
	NonNullExpr
	AsExpr
	UnaryExpr
	AwaitExpr
	YieldExpr
	UpdateExpr
	BinaryExpr
	AssignExpr
	CondExpr
	ParenExpr
	SequenceExpr
	ExprWithTypeArgs

	kindCount
)

var kindNames = [...]string{
	Invalid: "Invalid", File: "File",
	Block: "Block", EmptyStmt: "EmptyStmt", ExprStmt: "ExprStmt", VarDecl: "VarDecl",
	VarDeclarator: "VarDeclarator", FuncDecl: "FuncDecl", ClassDecl: "ClassDecl", IfStmt: "IfStmt",
	ForStmt: "ForStmt", ForInStmt: "ForInStmt", ForOfStmt: "ForOfStmt", WhileStmt: "WhileStmt",
	DoWhileStmt: "DoWhileStmt", ReturnStmt: "ReturnStmt", ThrowStmt: "ThrowStmt", BreakStmt: "BreakStmt",
	ContinueStmt: "ContinueStmt", TryStmt: "TryStmt", CatchClause: "CatchClause", SwitchStmt: "SwitchStmt",
	CaseClause: "CaseClause", LabeledStmt: "LabeledStmt", DebuggerStmt: "DebuggerStmt", WithStmt: "WithStmt",
	ImportDecl: "ImportDecl", NamedImports: "NamedImports", ImportSpec: "ImportSpec", ImportEquals: "ImportEquals",
	ExportDecl: "ExportDecl", ExportNamed: "ExportNamed", NamedExports: "NamedExports", ExportSpec: "ExportSpec",
	ExportAssign: "ExportAssign", TypeAliasDecl: "TypeAliasDecl", InterfaceDecl: "InterfaceDecl",
	EnumDecl: "EnumDecl", EnumMember: "EnumMember", ModuleDecl: "ModuleDecl",
	ClassBody: "ClassBody", MethodDecl: "MethodDecl", PropertyDecl: "PropertyDecl", StaticBlock: "StaticBlock",
	IndexSignature: "IndexSignature", Decorators: "Decorators", Decorator: "Decorator",
	Params: "Params", Param: "Param", TypeParams: "TypeParams", TypeArgs: "TypeArgs", TypeExpr: "TypeExpr",
	TypeRef: "TypeRef", ObjectPattern: "ObjectPattern", ArrayPattern: "ArrayPattern", BindingElem: "BindingElem",
	Ident: "Ident", PrivateName: "PrivateName", ThisExpr: "ThisExpr", SuperExpr: "SuperExpr", NullLit: "NullLit",
	BoolLit: "BoolLit", NumberLit: "NumberLit", BigIntLit: "BigIntLit", StringLit: "StringLit",
	RegExpLit: "RegExpLit", TemplateLit: "TemplateLit", TaggedTemplate: "TaggedTemplate", ArrayLit: "ArrayLit",
	ObjectLit: "ObjectLit", PropertyAssign: "PropertyAssign", ShorthandProp: "ShorthandProp",
	SpreadElement: "SpreadElement", ComputedKey: "ComputedKey", Omitted: "Omitted", FuncExpr: "FuncExpr",
	ArrowFunc: "ArrowFunc", ClassExpr: "ClassExpr", CallExpr: "CallExpr", NewExpr: "NewExpr",
	MemberExpr: "MemberExpr", IndexExpr: "IndexExpr", NonNullExpr: "NonNullExpr", AsExpr: "AsExpr",
	UnaryExpr: "UnaryExpr", AwaitExpr: "AwaitExpr", YieldExpr: "YieldExpr", UpdateExpr: "UpdateExpr",
	BinaryExpr: "BinaryExpr", AssignExpr: "AssignExpr", CondExpr: "CondExpr", ParenExpr: "ParenExpr",
	SequenceExpr: "SequenceExpr", ExprWithTypeArgs: "ExprWithTypeArgs",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(?)"
}

// KindCount is the number of node kinds; dispatch tables are sized with it.
const KindCount = int(kindCount)

// IsFunctionLike reports whether nodes of this kind introduce a function body.
func (k Kind) IsFunctionLike() bool {
	switch k {
	case FuncDecl, FuncExpr, ArrowFunc, MethodDecl:
		return true
	}
	return false
}
