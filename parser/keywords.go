package parser

// keywordTag classifies a reserved identifier by the syntactic role it
// plays. The lexer never special-cases keywords — every reserved word
// still lexes as a plain IDENTIFIER. The parser consults this table to
// recognise query-type, block, and make/convert keywords and settings
// keys; 'out', 'else', the individual block keywords, and the "out"
// setting key are matched by comparing lexemes directly.
type keywordTag int

const (
	kwNone keywordTag = iota
	kwQueryType
	kwBlock
	kwElse
	kwOut
	kwMake
	kwFilterKey
	kwSettingKey
)

// keywords is the single fixed mapping from reserved lexeme to role,
// covering every reserved word named in the lexer's identifier grammar
// (§4.2 item 4).
var keywords = map[string]keywordTag{
	"node":     kwQueryType,
	"way":      kwQueryType,
	"rel":      kwQueryType,
	"relation": kwQueryType,
	"nwr":      kwQueryType,
	"nw":       kwQueryType,
	"nr":       kwQueryType,
	"wr":       kwQueryType,
	"area":     kwQueryType,
	"is_in":    kwQueryType,

	"union":      kwBlock,
	"difference": kwBlock,
	"if":         kwBlock,
	"foreach":    kwBlock,
	"for":        kwBlock,
	"complete":   kwBlock,
	"retro":      kwBlock,
	"compare":    kwBlock,

	"else": kwElse,
	"out":  kwOut,

	"make":    kwMake,
	"convert": kwMake,

	"around":  kwFilterKey,
	"poly":    kwFilterKey,
	"user":    kwFilterKey,
	"uid":     kwFilterKey,
	"newer":   kwFilterKey,
	"changed": kwFilterKey,
	"id":      kwFilterKey,
	"pivot":   kwFilterKey,

	"timeout": kwSettingKey,
	"maxsize": kwSettingKey,
	"bbox":    kwSettingKey,
	"date":    kwSettingKey,
	"diff":    kwSettingKey,
}

func lookupKeyword(lexeme string) keywordTag {
	return keywords[lexeme]
}

func isQueryTypeKeyword(lexeme string) bool {
	return lookupKeyword(lexeme) == kwQueryType
}

func isBlockKeyword(lexeme string) bool {
	return lookupKeyword(lexeme) == kwBlock
}

func isMakeKeyword(lexeme string) bool {
	return lookupKeyword(lexeme) == kwMake
}

// isSettingKey reports whether lexeme is one of the settings keys
// accepted silently by the settings header (timeout, maxsize, bbox,
// date, diff, out); any other key still parses but earns a warning.
func isSettingKey(lexeme string) bool {
	tag := lookupKeyword(lexeme)
	return tag == kwSettingKey || lexeme == "out"
}
