package lexer

// keywords maps keyword lexemes to their token types for O(1) lookup.
var keywords = map[string]TokenType{
	"state":      TOKEN_STATE,
	"transition": TOKEN_TRANSITION,
	"when":       TOKEN_WHEN,

	"let":    TOKEN_LET,
	"fn":     TOKEN_FN,
	"if":     TOKEN_IF,
	"else":   TOKEN_ELSE,
	"return": TOKEN_RETURN,
	"print":  TOKEN_PRINT,

	"true":  TOKEN_TRUE,
	"false": TOKEN_FALSE,
	"null":  TOKEN_NULL,

	"and": TOKEN_AND,
	"or":  TOKEN_OR,

	"endpoint":   TOKEN_ENDPOINT,
	"GET":        TOKEN_GET,
	"POST":       TOKEN_POST,
	"PUT":        TOKEN_PUT,
	"DELETE":     TOKEN_DELETE,
	"PATCH":      TOKEN_PATCH,
	"middleware": TOKEN_MIDDLEWARE,
	"use":        TOKEN_USE,
	"next":       TOKEN_NEXT,

	"validate": TOKEN_VALIDATE,
	"optional": TOKEN_OPTIONAL,

	"server": TOKEN_SERVER,
}

// lookupKeyword checks if an identifier is a keyword.
// Returns the token type and true if it's a keyword, TOKEN_IDENTIFIER and false otherwise.
func lookupKeyword(identifier string) (TokenType, bool) {
	if tokenType, ok := keywords[identifier]; ok {
		return tokenType, true
	}
	return TOKEN_IDENTIFIER, false
}
