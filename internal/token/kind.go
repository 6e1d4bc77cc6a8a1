package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	Ident
	PrivateName // #name

	NumberLit
	BigIntLit
	StringLit
	RegExpLit
	NoSubstTemplate // `text`
	TemplateHead    // `text${
	TemplateMiddle  // }text${
	TemplateTail    // }text`

	KwBreak
	KwCase
	KwCatch
	KwClass
	KwConst
	KwContinue
	KwDebugger
	KwDefault
	KwDelete
	KwDo
	KwElse
	KwEnum
	KwExport
	KwExtends
	KwFalse
	KwFinally
	KwFor
	KwFunction
	KwIf
	KwImport
	KwIn
	KwInstanceof
	KwNew
	KwNull
	KwReturn
	KwSuper
	KwSwitch
	KwThis
	KwThrow
	KwTrue
	KwTry
	KwTypeof
	KwVar
	KwVoid
	KwWhile
	KwWith
	KwYield
	KwAwait
	KwLet

	LBrace    // {
	RBrace    // }
	LParen    // (
	RParen    // )
	LBracket  // [
	RBracket  // ]
	Dot       // .
	DotDotDot // ...
	Semicolon // ;
	Comma     // ,
	Lt        // <
	Gt        // >
	LtEq      // <=
	EqEq      // ==
	BangEq    // !=
	EqEqEq    // ===
	BangEqEq  // !==
	Plus      // +
	Minus     // -
	Star      // *
	Slash     // /
	Percent   // %
	StarStar  // **
	PlusPlus  // ++
	MinusMinus
	Shl   // <<
	Amp   // &
	Pipe  // |
	Caret // ^
	Bang  // !
	Tilde // ~
	AndAnd
	OrOr
	QuestionQuestion // ??
	Question         // ?
	QuestionDot      // ?.
	Colon            // :
	Assign           // =
	PlusAssign
	MinusAssign
	StarAssign
	SlashAssign
	PercentAssign
	StarStarAssign
	ShlAssign
	AmpAssign
	PipeAssign
	CaretAssign
	AndAndAssign
	OrOrAssign
	QuestionQuestionAssign
	FatArrow // =>
	At       // @
	Hash     // # (shebang-free stray hash)
)

var kindNames = [...]string{
	Invalid:                "Invalid",
	EOF:                    "EOF",
	Ident:                  "identifier",
	PrivateName:            "private name",
	NumberLit:              "number",
	BigIntLit:              "bigint",
	StringLit:              "string",
	RegExpLit:              "regexp",
	NoSubstTemplate:        "template",
	TemplateHead:           "template head",
	TemplateMiddle:         "template middle",
	TemplateTail:           "template tail",
	KwBreak:                "break",
	KwCase:                 "case",
	KwCatch:                "catch",
	KwClass:                "class",
	KwConst:                "const",
	KwContinue:             "continue",
	KwDebugger:             "debugger",
	KwDefault:              "default",
	KwDelete:               "delete",
	KwDo:                   "do",
	KwElse:                 "else",
	KwEnum:                 "enum",
	KwExport:               "export",
	KwExtends:              "extends",
	KwFalse:                "false",
	KwFinally:              "finally",
	KwFor:                  "for",
	KwFunction:             "function",
	KwIf:                   "if",
	KwImport:               "import",
	KwIn:                   "in",
	KwInstanceof:           "instanceof",
	KwNew:                  "new",
	KwNull:                 "null",
	KwReturn:               "return",
	KwSuper:                "super",
	KwSwitch:               "switch",
	KwThis:                 "this",
	KwThrow:                "throw",
	KwTrue:                 "true",
	KwTry:                  "try",
	KwTypeof:               "typeof",
	KwVar:                  "var",
	KwVoid:                 "void",
	KwWhile:                "while",
	KwWith:                 "with",
	KwYield:                "yield",
	KwAwait:                "await",
	KwLet:                  "let",
	LBrace:                 "{",
	RBrace:                 "}",
	LParen:                 "(",
	RParen:                 ")",
	LBracket:               "[",
	RBracket:               "]",
	Dot:                    ".",
	DotDotDot:              "...",
	Semicolon:              ";",
	Comma:                  ",",
	Lt:                     "<",
	Gt:                     ">",
	LtEq:                   "<=",
	EqEq:                   "==",
	BangEq:                 "!=",
	EqEqEq:                 "===",
	BangEqEq:               "!==",
	Plus:                   "+",
	Minus:                  "-",
	Star:                   "*",
	Slash:                  "/",
	Percent:                "%",
	StarStar:               "**",
	PlusPlus:               "++",
	MinusMinus:             "--",
	Shl:                    "<<",
	Amp:                    "&",
	Pipe:                   "|",
	Caret:                  "^",
	Bang:                   "!",
	Tilde:                  "~",
	AndAnd:                 "&&",
	OrOr:                   "||",
	QuestionQuestion:       "??",
	Question:               "?",
	QuestionDot:            "?.",
	Colon:                  ":",
	Assign:                 "=",
	PlusAssign:             "+=",
	MinusAssign:            "-=",
	StarAssign:             "*=",
	SlashAssign:            "/=",
	PercentAssign:          "%=",
	StarStarAssign:         "**=",
	ShlAssign:              "<<=",
	AmpAssign:              "&=",
	PipeAssign:             "|=",
	CaretAssign:            "^=",
	AndAndAssign:           "&&=",
	OrOrAssign:             "||=",
	QuestionQuestionAssign: "??=",
	FatArrow:               "=>",
	At:                     "@",
	Hash:                   "#",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(?)"
}
