package refactor

import (
	"strings"

	"effectlint/internal/ast"
)

// builtin lists the transforms for every codemod fix in the catalog.
func builtin() []Transform {
	return []Transform{
		replaceNodeImport("replace-node-fs", "node-fs", "FileSystem"),
		replaceNodeImport("replace-node-path", "node-path", "Path"),
		fixDeepImport(),
		useNamespaceImport(),
		useEffectFail(),
		replaceConsoleLog(),
		yieldInsteadOfRun(),
		boundConcurrency(),
		renameCombinator("use-fork-scoped", "fork-result-discarded", "fork,forkDaemon", "forkScoped"),
		useDurationString(),
		genToSync(),
		addYieldStar(),
		removeGenAdapter(),
		removeUnnecessaryPipe(),
		explicitLambda(),
		renameCombinator("map-to-flatmap", "map-returns-effect", "map", "flatMap"),
		flatMapToMap(),
		replaceAnyUnknown(),
		tsIgnoreToExpectError(),
	}
}

func replaceAnyUnknown() Transform {
	return Transform{
		FixID: "replace-any-unknown",
		Rules: []string{"any-type"},
		Rewrite: func(u *Unit, m Match) []Edit {
			if u.Tree.Kind(m.Node) != ast.TypeRef || u.Tree.Source(m.Node) != "any" {
				return nil
			}
			return []Edit{u.ReplaceText(u.Tree.Span(m.Node), "unknown")}
		},
	}
}

const (
	tsIgnore      = "@ts-ignore"
	tsExpectError = "@ts-expect-error"
)

// tsIgnoreToExpectError rewrites the directive inside the matched comment.
func tsIgnoreToExpectError() Transform {
	return Transform{
		FixID: "ts-ignore-to-expect-error",
		Rules: []string{"ts-ignore"},
		Rewrite: func(u *Unit, m Match) []Edit {
			text := u.Tree.File.Text(m.Span)
			i := strings.Index(text, tsIgnore)
			if i < 0 {
				return nil
			}
			sp := m.Span
			sp.Start += uint32(i)
			sp.End = sp.Start + uint32(len(tsIgnore))
			return []Edit{u.ReplaceText(sp, tsExpectError)}
		},
	}
}
