// Package parser turns a Rulang token stream into a Program AST using
// recursive descent with a Pratt-style expression precedence climb. The
// parser never recovers from an error: the first ParseError aborts the
// parse and is returned to the caller.
package parser

import (
	"fmt"

	"github.com/JangRuBin2/rulang/compiler/lexer"
)

// Parser transforms a token stream into an AST.
type Parser struct {
	tokens  []lexer.Token
	current int
}

// New creates a Parser over the given token stream (as produced by
// lexer.ScanTokens).
func New(tokens []lexer.Token) *Parser {
	return &Parser{tokens: tokens}
}

// Parse parses the full token stream into a Program. It returns the first
// ParseError encountered, if any; the parser does not attempt recovery.
func (p *Parser) Parse() (program *Program, err error) {
	defer func() {
		if r := recover(); r != nil {
			if pe, ok := r.(*ParseError); ok {
				program = nil
				err = pe
				return
			}
			panic(r)
		}
	}()

	stmts := []StmtNode{}
	for !p.isAtEnd() {
		stmts = append(stmts, p.parseStatement())
	}
	return &Program{Statements: stmts}, nil
}

// parseStatement dispatches on the leading token of a statement.
func (p *Parser) parseStatement() StmtNode {
	switch {
	case p.check(lexer.TOKEN_STATE):
		return p.parseStateStmt()
	case p.check(lexer.TOKEN_TRANSITION):
		return p.parseTransitionStmt()
	case p.check(lexer.TOKEN_LET):
		return p.parseLetStmt()
	case p.check(lexer.TOKEN_FN):
		return p.parseFnStmt()
	case p.check(lexer.TOKEN_IF):
		return p.parseIfStmt()
	case p.check(lexer.TOKEN_RETURN):
		return p.parseReturnStmt()
	case p.check(lexer.TOKEN_PRINT):
		return p.parsePrintStmt()
	case p.check(lexer.TOKEN_LBRACE):
		return p.parseBlockStmt()
	case p.check(lexer.TOKEN_ENDPOINT):
		return p.parseEndpointStmt()
	case p.check(lexer.TOKEN_MIDDLEWARE):
		return p.parseMiddlewareStmt()
	case p.check(lexer.TOKEN_USE):
		return p.parseUseStmt()
	case p.check(lexer.TOKEN_VALIDATE):
		return p.parseValidateStmt()
	case p.check(lexer.TOKEN_SERVER):
		return p.parseServerStmt()
	default:
		return p.parseExpressionStmt()
	}
}

// Token-stream helpers

func (p *Parser) isAtEnd() bool {
	return p.peek().Type == lexer.TOKEN_EOF
}

func (p *Parser) peek() lexer.Token {
	if p.current >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.current]
}

func (p *Parser) previous() lexer.Token {
	if p.current == 0 {
		return p.tokens[0]
	}
	return p.tokens[p.current-1]
}

func (p *Parser) advance() lexer.Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) check(t lexer.TokenType) bool {
	if p.isAtEnd() {
		return t == lexer.TOKEN_EOF
	}
	return p.peek().Type == t
}

func (p *Parser) match(types ...lexer.TokenType) bool {
	for _, t := range types {
		if p.check(t) {
			p.advance()
			return true
		}
	}
	return false
}

// consume advances past a token of the given type or raises a ParseError.
func (p *Parser) consume(t lexer.TokenType, message string) lexer.Token {
	if p.check(t) {
		return p.advance()
	}
	p.fail(message)
	panic("unreachable")
}

func (p *Parser) loc() SourceLocation {
	tok := p.peek()
	return SourceLocation{Line: tok.Line, Column: tok.Column}
}

// fail raises a ParseError at the current token, aborting the parse.
func (p *Parser) fail(message string) {
	tok := p.peek()
	panic(&ParseError{
		Line:    tok.Line,
		Column:  tok.Column,
		Message: message,
		Actual:  fmt.Sprintf("%s(%q)", tok.Type, tok.Lexeme),
	})
}

// identifierLike reports whether the current token may stand in for a plain
// identifier: either an IDENTIFIER itself, or any keyword lexeme, which the
// grammar permits as object-literal keys and member-access property names.
func (p *Parser) identifierLike() (string, bool) {
	tok := p.peek()
	if tok.Type == lexer.TOKEN_IDENTIFIER {
		p.advance()
		return tok.Lexeme, true
	}
	if isKeywordToken(tok.Type) {
		p.advance()
		return tok.Lexeme, true
	}
	return "", false
}

// isKeywordToken reports whether t is one of the fixed keyword token kinds
// (as opposed to literals, operators, or delimiters).
func isKeywordToken(t lexer.TokenType) bool {
	switch t {
	case lexer.TOKEN_STATE, lexer.TOKEN_TRANSITION, lexer.TOKEN_WHEN,
		lexer.TOKEN_LET, lexer.TOKEN_FN, lexer.TOKEN_IF, lexer.TOKEN_ELSE,
		lexer.TOKEN_RETURN, lexer.TOKEN_PRINT,
		lexer.TOKEN_TRUE, lexer.TOKEN_FALSE, lexer.TOKEN_NULL,
		lexer.TOKEN_AND, lexer.TOKEN_OR,
		lexer.TOKEN_ENDPOINT, lexer.TOKEN_GET, lexer.TOKEN_POST, lexer.TOKEN_PUT,
		lexer.TOKEN_DELETE, lexer.TOKEN_PATCH, lexer.TOKEN_MIDDLEWARE,
		lexer.TOKEN_USE, lexer.TOKEN_NEXT,
		lexer.TOKEN_VALIDATE, lexer.TOKEN_OPTIONAL,
		lexer.TOKEN_SERVER:
		return true
	}
	return false
}
