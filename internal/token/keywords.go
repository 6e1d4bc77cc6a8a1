package token

var keywords = map[string]Kind{
	"break":      KwBreak,
	"case":       KwCase,
	"catch":      KwCatch,
	"class":      KwClass,
	"const":      KwConst,
	"continue":   KwContinue,
	"debugger":   KwDebugger,
	"default":    KwDefault,
	"delete":     KwDelete,
	"do":         KwDo,
	"else":       KwElse,
	"enum":       KwEnum,
	"export":     KwExport,
	"extends":    KwExtends,
	"false":      KwFalse,
	"finally":    KwFinally,
	"for":        KwFor,
	"function":   KwFunction,
	"if":         KwIf,
	"import":     KwImport,
	"in":         KwIn,
	"instanceof": KwInstanceof,
	"new":        KwNew,
	"null":       KwNull,
	"return":     KwReturn,
	"super":      KwSuper,
	"switch":     KwSwitch,
	"this":       KwThis,
	"throw":      KwThrow,
	"true":       KwTrue,
	"try":        KwTry,
	"typeof":     KwTypeof,
	"var":        KwVar,
	"void":       KwVoid,
	"while":      KwWhile,
	"with":       KwWith,
	"yield":      KwYield,
	"await":      KwAwait,
	"let":        KwLet,
}

// LookupKeyword reports whether ident is a reserved word. Keywords are case-sensitive.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}
