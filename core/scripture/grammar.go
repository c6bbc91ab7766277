package scripture

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// citationGrammar is the participle grammar for citations.
// Examples: "창1", "요 3:16", "롬8:28-30", "John3:16", "1Cor 13:4-7", "Röm8:28"
//
//nolint:govet // participle grammar tags are not standard struct tags
type citationGrammar struct {
	Prefix  *int         `parser:"( @Number Space? )?"`
	Book    string       `parser:"@Letters Space?"`
	Chapter int          `parser:"@Number"`
	Verses  *verseTokens `parser:"( \":\" @@ )?"`
}

//nolint:govet // participle grammar tags are not standard struct tags
type verseTokens struct {
	Start int  `parser:"@Number"`
	End   *int `parser:"( \"-\" @Number )?"`
}

// citationLexer tokenizes citations. Letters is Unicode-aware so Hangul,
// umlauts and ASCII all form book tokens.
var citationLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Letters", Pattern: `\p{L}+`},
	{Name: "Number", Pattern: `[0-9]+`},
	{Name: "Punct", Pattern: `[:\-]`},
	{Name: "Space", Pattern: `[ \t]+`},
})

// citationParser is the participle parser for citations. Whitespace is only
// legal between the book token and the chapter, so it is not elided.
var citationParser = participle.MustBuild[citationGrammar](
	participle.Lexer(citationLexer),
)
