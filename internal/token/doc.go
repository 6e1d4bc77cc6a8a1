// Package token defines lexical token kinds and trivia for the TypeScript
// subset read by effectlint.
// Invariants:
//   - Token.Text is the exact source slice covered by Token.Span.
//   - Comments and whitespace never appear in the token stream; they are kept
//     as leading Trivia of the next significant token.
//   - '>' is always emitted as a single Gt token. The parser fuses adjacent
//     '>' and '=' tokens into shift and comparison operators so that nested
//     type arguments like Array<Set<T>> close naturally.
//   - Contextual keywords (type, async, of, as, from, get, set, declare,
//     namespace, readonly, satisfies, ...) are identifiers; the parser
//     recognises them by text.
package token
