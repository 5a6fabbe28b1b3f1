package lexer

import "fmt"

// TokenType represents the type of token in the Rulang language.
type TokenType int

const (
	// Special tokens
	TOKEN_EOF TokenType = iota
	TOKEN_ERROR

	// Keywords - state machines
	TOKEN_STATE
	TOKEN_TRANSITION
	TOKEN_WHEN

	// Keywords - general statements
	TOKEN_LET
	TOKEN_FN
	TOKEN_IF
	TOKEN_ELSE
	TOKEN_RETURN
	TOKEN_PRINT

	// Keywords - literals
	TOKEN_TRUE
	TOKEN_FALSE
	TOKEN_NULL

	// Keywords - logical
	TOKEN_AND
	TOKEN_OR

	// Keywords - HTTP endpoints
	TOKEN_ENDPOINT
	TOKEN_GET
	TOKEN_POST
	TOKEN_PUT
	TOKEN_DELETE
	TOKEN_PATCH
	TOKEN_MIDDLEWARE
	TOKEN_USE
	TOKEN_NEXT

	// Keywords - validation
	TOKEN_VALIDATE
	TOKEN_OPTIONAL

	// Keywords - server
	TOKEN_SERVER

	// Literals
	TOKEN_IDENTIFIER
	TOKEN_NUMBER
	TOKEN_STRING

	// Operators - single character
	TOKEN_PLUS
	TOKEN_MINUS
	TOKEN_STAR
	TOKEN_SLASH
	TOKEN_PERCENT
	TOKEN_LESS
	TOKEN_GREATER
	TOKEN_EQUAL
	TOKEN_BANG

	// Operators - multi character
	TOKEN_ARROW         // ->
	TOKEN_EQUAL_EQUAL   // ==
	TOKEN_BANG_EQUAL    // !=
	TOKEN_LESS_EQUAL    // <=
	TOKEN_GREATER_EQUAL // >=

	// Delimiters
	TOKEN_LPAREN    // (
	TOKEN_RPAREN    // )
	TOKEN_LBRACE    // {
	TOKEN_RBRACE    // }
	TOKEN_LBRACKET  // [
	TOKEN_RBRACKET  // ]
	TOKEN_COMMA     // ,
	TOKEN_SEMICOLON // ;
	TOKEN_DOT       // .
	TOKEN_COLON     // :
)

var tokenNames = map[TokenType]string{
	TOKEN_EOF:           "EOF",
	TOKEN_ERROR:         "ERROR",
	TOKEN_STATE:         "STATE",
	TOKEN_TRANSITION:    "TRANSITION",
	TOKEN_WHEN:          "WHEN",
	TOKEN_LET:           "LET",
	TOKEN_FN:            "FN",
	TOKEN_IF:            "IF",
	TOKEN_ELSE:          "ELSE",
	TOKEN_RETURN:        "RETURN",
	TOKEN_PRINT:         "PRINT",
	TOKEN_TRUE:          "TRUE",
	TOKEN_FALSE:         "FALSE",
	TOKEN_NULL:          "NULL",
	TOKEN_AND:           "AND",
	TOKEN_OR:            "OR",
	TOKEN_ENDPOINT:      "ENDPOINT",
	TOKEN_GET:           "GET",
	TOKEN_POST:          "POST",
	TOKEN_PUT:           "PUT",
	TOKEN_DELETE:        "DELETE",
	TOKEN_PATCH:         "PATCH",
	TOKEN_MIDDLEWARE:    "MIDDLEWARE",
	TOKEN_USE:           "USE",
	TOKEN_NEXT:          "NEXT",
	TOKEN_VALIDATE:      "VALIDATE",
	TOKEN_OPTIONAL:      "OPTIONAL",
	TOKEN_SERVER:        "SERVER",
	TOKEN_IDENTIFIER:    "IDENTIFIER",
	TOKEN_NUMBER:        "NUMBER",
	TOKEN_STRING:        "STRING",
	TOKEN_PLUS:          "PLUS",
	TOKEN_MINUS:         "MINUS",
	TOKEN_STAR:          "STAR",
	TOKEN_SLASH:         "SLASH",
	TOKEN_PERCENT:       "PERCENT",
	TOKEN_LESS:          "LESS",
	TOKEN_GREATER:       "GREATER",
	TOKEN_EQUAL:         "EQUAL",
	TOKEN_BANG:          "BANG",
	TOKEN_ARROW:         "ARROW",
	TOKEN_EQUAL_EQUAL:   "EQUAL_EQUAL",
	TOKEN_BANG_EQUAL:    "BANG_EQUAL",
	TOKEN_LESS_EQUAL:    "LESS_EQUAL",
	TOKEN_GREATER_EQUAL: "GREATER_EQUAL",
	TOKEN_LPAREN:        "LPAREN",
	TOKEN_RPAREN:        "RPAREN",
	TOKEN_LBRACE:        "LBRACE",
	TOKEN_RBRACE:        "RBRACE",
	TOKEN_LBRACKET:      "LBRACKET",
	TOKEN_RBRACKET:      "RBRACKET",
	TOKEN_COMMA:         "COMMA",
	TOKEN_SEMICOLON:     "SEMICOLON",
	TOKEN_DOT:           "DOT",
	TOKEN_COLON:         "COLON",
}

// String returns a string representation of the token type.
func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return "UNKNOWN"
}

// Token represents a single lexical token.
type Token struct {
	Type    TokenType
	Lexeme  string
	Literal interface{} // decoded value for NUMBER/STRING tokens
	Line    int
	Column  int
}

// String returns a human-readable representation of the token.
func (t Token) String() string {
	if t.Literal != nil {
		return fmt.Sprintf("%s(%v) [%d:%d]", t.Type, t.Literal, t.Line, t.Column)
	}
	return fmt.Sprintf("%s(%s) [%d:%d]", t.Type, t.Lexeme, t.Line, t.Column)
}

// LexError represents a lexical analysis error.
type LexError struct {
	Message string
	Line    int
	Column  int
}

// Error implements the error interface.
func (e LexError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Message)
}
