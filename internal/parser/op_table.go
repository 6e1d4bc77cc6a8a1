package parser

import "effectlint/internal/token"

const (
	precNone = iota
	precCoalesce
	precOr
	precAnd
	precBitOr
	precBitXor
	precBitAnd
	precEquality
	precRelational
	precShift
	precAdditive
	precMultiplicative
	precExponent
)

var binaryPrec = map[token.Kind]int{
	token.QuestionQuestion: precCoalesce,
	token.OrOr:             precOr,
	token.AndAnd:           precAnd,
	token.Pipe:             precBitOr,
	token.Caret:            precBitXor,
	token.Amp:              precBitAnd,
	token.EqEq:             precEquality,
	token.BangEq:           precEquality,
	token.EqEqEq:           precEquality,
	token.BangEqEq:         precEquality,
	token.Lt:               precRelational,
	token.LtEq:             precRelational,
	token.KwInstanceof:     precRelational,
	token.KwIn:             precRelational,
	token.Shl:              precShift,
	token.Plus:             precAdditive,
	token.Minus:            precAdditive,
	token.Star:             precMultiplicative,
	token.Slash:            precMultiplicative,
	token.Percent:          precMultiplicative,
	token.StarStar:         precExponent,
}
