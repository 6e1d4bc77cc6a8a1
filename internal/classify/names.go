package classify

import (
	"strings"

	"effectlint/internal/ast"
)

// Namespaces whose members are effect constructors or combinators.
var effectNamespaces = map[string]bool{
	"Effect": true, "Stream": true, "Layer": true, "STM": true, "Option": true,
	"Either": true, "Schedule": true, "Fiber": true, "Micro": true, "Sink": true,
	"Channel": true, "Scope": true,
}

// Combinators whose function arguments run inside the effect they build.
var combinators = map[string]bool{
	"map": true, "flatMap": true, "tap": true, "catchAll": true, "catchTag": true,
	"catchTags": true, "match": true, "matchEffect": true, "zip": true, "zipWith": true,
	"forEach": true, "all": true, "andThen": true, "orElse": true, "tapError": true,
	"mapError": true, "filterOrFail": true, "acquireRelease": true, "ensuring": true,
	"onExit": true, "suspend": true, "sync": true, "try": true, "tryPromise": true,
	"promise": true, "iterate": true, "loop": true, "repeat": true, "retry": true,
	"acquireUseRelease": true, "addFinalizer": true, "catchAllCause": true,
	"tapBoth": true, "flatten": true, "pipe": true,
}

// IsEffectNamespace reports whether name is one of the runtime's module namespaces.
func IsEffectNamespace(name string) bool { return effectNamespaces[name] }

// IsCombinatorName reports whether method is a known callback-taking combinator.
func IsCombinatorName(method string) bool { return combinators[method] }

// CalleeName splits the callee of a call into its receiver and method, so
// Effect.map(f) yields ("Effect", "map") and pipe(x) yields ("", "pipe").
// A receiver that is not a plain dotted name is returned as "".
func CalleeName(t *ast.Tree, call ast.NodeID) (recv, method string) {
	switch t.Kind(call) {
	case ast.CallExpr, ast.NewExpr:
	default:
		return "", ""
	}
	callee := StripTypeArgs(t, t.Callee(call))
	switch t.Kind(callee) {
	case ast.Ident:
		return "", t.Text(callee)
	case ast.MemberExpr:
		prop := t.Kid(callee, 1)
		if t.Kind(prop) != ast.Ident {
			return "", ""
		}
		return t.DottedName(t.Kid(callee, 0)), t.Text(prop)
	}
	return "", ""
}

// CalleeDotted returns the full dotted callee name such as "Effect.runPromise".
func CalleeDotted(t *ast.Tree, call ast.NodeID) string {
	recv, method := CalleeName(t, call)
	if recv == "" {
		return method
	}
	return recv + "." + method
}

// StripTypeArgs unwraps parentheses and instantiation expressions.
func StripTypeArgs(t *ast.Tree, id ast.NodeID) ast.NodeID {
	for {
		switch t.Kind(id) {
		case ast.ParenExpr, ast.ExprWithTypeArgs:
			id = t.Kid(id, 0)
		default:
			return id
		}
	}
}

// IsGenCall reports whether call runs a generator as an effect body:
// Effect.gen and its siblings, or Effect.fn(...)(function* () {}).
func IsGenCall(t *ast.Tree, call ast.NodeID) bool {
	if t.Kind(call) != ast.CallExpr {
		return false
	}
	recv, method := CalleeName(t, call)
	if method == "gen" && effectNamespaces[recv] {
		return true
	}
	if recv == "Effect" && (method == "fn" || method == "fnUntraced") {
		return true
	}
	inner := StripTypeArgs(t, t.Callee(call))
	if t.Kind(inner) == ast.CallExpr {
		r, m := CalleeName(t, inner)
		return r == "Effect" && (m == "fn" || m == "fnUntraced")
	}
	return false
}

// GenFunction returns the generator function argument of a gen call.
func GenFunction(t *ast.Tree, call ast.NodeID) ast.NodeID {
	for _, arg := range t.Args(call) {
		arg = t.Unparen(arg)
		if t.Kind(arg) == ast.FuncExpr && t.Has(arg, ast.FlagGenerator) {
			return arg
		}
	}
	return ast.NoNode
}

// IsCombinatorCall reports whether the function arguments of call are
// effect callbacks: Namespace.combinator(...), pipe(...) or x.pipe(...).
func IsCombinatorCall(t *ast.Tree, call ast.NodeID) bool {
	if t.Kind(call) != ast.CallExpr {
		return false
	}
	recv, method := CalleeName(t, call)
	if method == "pipe" {
		return true
	}
	if !combinators[method] {
		return false
	}
	return effectNamespaces[rootName(recv)]
}

// IsRunCall reports whether call executes an effect on a runtime, such as
// Effect.runPromise or runtime.runSync.
func IsRunCall(t *ast.Tree, call ast.NodeID) bool {
	if t.Kind(call) != ast.CallExpr {
		return false
	}
	recv, method := CalleeName(t, call)
	switch method {
	case "runPromise", "runSync", "runFork", "runCallback", "runPromiseExit", "runSyncExit", "runMain":
	default:
		return false
	}
	return recv != "" && recv != "this"
}

func rootName(dotted string) string {
	if i := strings.IndexByte(dotted, '.'); i >= 0 {
		return dotted[:i]
	}
	return dotted
}

// argIndex returns the position of child among the call's arguments, or -1.
func argIndex(t *ast.Tree, call, child ast.NodeID) int {
	for i, arg := range t.Args(call) {
		if arg == child {
			return i
		}
	}
	return -1
}
