package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// lexical
	LexInfo                     Code = 1000
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexBadNumber                Code = 1004
	LexUnterminatedTemplate     Code = 1005
	LexUnterminatedRegExp       Code = 1006

	// syntax
	SynInfo               Code = 2000
	SynUnexpectedToken    Code = 2001
	SynUnclosedDelimiter  Code = 2002
	SynExpectIdentifier   Code = 2003
	SynExpectExpression   Code = 2004
	SynExpectType         Code = 2005
	SynExpectSemicolon    Code = 2006
	SynUnsupportedSyntax  Code = 2007
	SynTooDeep            Code = 2008
	SynForBadHeader       Code = 2009
	SynExpectModuleString Code = 2010

	// configuration
	CfgInfo        Code = 5000
	CfgParseError  Code = 5001
	CfgUnknownRule Code = 5002

	// input/output
	IOLoadFileError Code = 4001
)

var codeDescription = map[Code]string{
	UnknownCode:                 "Unknown error",
	LexInfo:                     "Lexical information",
	LexUnknownChar:              "Unknown character",
	LexUnterminatedString:       "Unterminated string literal",
	LexUnterminatedBlockComment: "Unterminated block comment",
	LexBadNumber:                "Invalid numeric literal",
	LexUnterminatedTemplate:     "Unterminated template literal",
	LexUnterminatedRegExp:       "Unterminated regular expression",
	SynInfo:                     "Syntax information",
	SynUnexpectedToken:          "Unexpected token",
	SynUnclosedDelimiter:        "Unclosed delimiter",
	SynExpectIdentifier:         "Expected identifier",
	SynExpectExpression:         "Expected expression",
	SynExpectType:               "Expected type",
	SynExpectSemicolon:          "Expected semicolon",
	SynUnsupportedSyntax:        "Unsupported syntax",
	SynTooDeep:                  "Nesting too deep",
	SynForBadHeader:             "Malformed for header",
	SynExpectModuleString:       "Expected module specifier",
	CfgInfo:                     "Configuration information",
	CfgParseError:               "Malformed configuration",
	CfgUnknownRule:              "Unknown rule id",
	IOLoadFileError:             "Failed to load file",
}

func (c Code) ID() string {
	ic := int(c)
	switch {
	case ic == 0:
		return "E0000"
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("CFG%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
