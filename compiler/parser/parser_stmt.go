package parser

import "github.com/JangRuBin2/rulang/compiler/lexer"

// parseStateStmt parses `state NAME { ID (,? ID)* }`.
func (p *Parser) parseStateStmt() StmtNode {
	loc := p.loc()
	p.advance() // 'state'
	name := p.consumeName("Expected state machine name")

	p.consume(lexer.TOKEN_LBRACE, "Expected '{' after state name")

	states := []string{}
	for !p.check(lexer.TOKEN_RBRACE) && !p.isAtEnd() {
		states = append(states, p.consumeName("Expected state identifier"))
		p.match(lexer.TOKEN_COMMA) // commas between state identifiers are optional
	}
	p.consume(lexer.TOKEN_RBRACE, "Expected '}' to close state declaration")

	return &StateStmt{Name: name, States: states, Location: loc}
}

// parseTransitionStmt parses `transition NAME { (ID -> ID when DOTTED_ID)* }`.
func (p *Parser) parseTransitionStmt() StmtNode {
	loc := p.loc()
	p.advance() // 'transition'
	name := p.consumeName("Expected state machine name")

	p.consume(lexer.TOKEN_LBRACE, "Expected '{' after transition name")

	rules := []TransitionRule{}
	for !p.check(lexer.TOKEN_RBRACE) && !p.isAtEnd() {
		from := p.consumeName("Expected source state name")
		p.consume(lexer.TOKEN_ARROW, "Expected '->' in transition rule")
		to := p.consumeName("Expected destination state name")
		p.consume(lexer.TOKEN_WHEN, "Expected 'when' in transition rule")
		event := p.parseDottedIdentifier()
		rules = append(rules, TransitionRule{From: from, To: to, Event: event})
	}
	p.consume(lexer.TOKEN_RBRACE, "Expected '}' to close transition declaration")

	return &TransitionStmt{StateName: name, Rules: rules, Location: loc}
}

// parseDottedIdentifier parses one or more identifiers joined by '.' into a
// single dotted event name.
func (p *Parser) parseDottedIdentifier() string {
	name := p.consumeName("Expected event name")
	for p.check(lexer.TOKEN_DOT) {
		p.advance()
		name += "." + p.consumeName("Expected identifier after '.' in event name")
	}
	return name
}

// consumeName consumes an IDENTIFIER token and returns its lexeme.
func (p *Parser) consumeName(message string) string {
	tok := p.consume(lexer.TOKEN_IDENTIFIER, message)
	return tok.Lexeme
}

// parseLetStmt parses `let NAME = EXPR`.
func (p *Parser) parseLetStmt() StmtNode {
	loc := p.loc()
	p.advance() // 'let'
	name := p.consumeName("Expected identifier after 'let'")
	p.consume(lexer.TOKEN_EQUAL, "Expected '=' in let declaration")
	value := p.parseExpression()
	p.match(lexer.TOKEN_SEMICOLON)
	return &LetStmt{Name: name, Value: value, Location: loc}
}

// parseFnStmt parses `fn NAME ( params ) BLOCK`.
func (p *Parser) parseFnStmt() StmtNode {
	loc := p.loc()
	p.advance() // 'fn'
	name := p.consumeName("Expected function name")
	params := p.parseParamList()
	body := p.parseBlockStmt().(*BlockStmt)
	return &FnStmt{Name: name, Params: params, Body: body.Body, Location: loc}
}

// parseParamList parses `( NAME (, NAME)* )`.
func (p *Parser) parseParamList() []string {
	p.consume(lexer.TOKEN_LPAREN, "Expected '(' before parameter list")
	params := []string{}
	if !p.check(lexer.TOKEN_RPAREN) {
		for {
			params = append(params, p.consumeName("Expected parameter name"))
			if !p.match(lexer.TOKEN_COMMA) {
				break
			}
		}
	}
	p.consume(lexer.TOKEN_RPAREN, "Expected ')' after parameter list")
	return params
}

// parseIfStmt parses `if ( EXPR ) BLOCK (else (IF | BLOCK))?`.
func (p *Parser) parseIfStmt() StmtNode {
	loc := p.loc()
	p.advance() // 'if'
	p.consume(lexer.TOKEN_LPAREN, "Expected '(' after 'if'")
	cond := p.parseExpression()
	p.consume(lexer.TOKEN_RPAREN, "Expected ')' after if condition")
	then := p.parseBlockStmt().(*BlockStmt)

	var elseBranch StmtNode
	if p.match(lexer.TOKEN_ELSE) {
		if p.check(lexer.TOKEN_IF) {
			elseBranch = p.parseIfStmt()
		} else {
			elseBranch = p.parseBlockStmt()
		}
	}

	return &IfStmt{Cond: cond, Then: then, Else: elseBranch, Location: loc}
}

// parseReturnStmt parses `return EXPR?`.
func (p *Parser) parseReturnStmt() StmtNode {
	loc := p.loc()
	p.advance() // 'return'

	var arg ExprNode
	if p.canStartExpression() {
		arg = p.parseExpression()
	}
	p.match(lexer.TOKEN_SEMICOLON)
	return &ReturnStmt{Arg: arg, Location: loc}
}

// parsePrintStmt parses `print ( EXPR )`.
func (p *Parser) parsePrintStmt() StmtNode {
	loc := p.loc()
	p.advance() // 'print'
	p.consume(lexer.TOKEN_LPAREN, "Expected '(' after 'print'")
	arg := p.parseExpression()
	p.consume(lexer.TOKEN_RPAREN, "Expected ')' after print argument")
	p.match(lexer.TOKEN_SEMICOLON)
	return &PrintStmt{Arg: arg, Location: loc}
}

// parseBlockStmt parses `{ STMT* }`.
func (p *Parser) parseBlockStmt() StmtNode {
	loc := p.loc()
	p.consume(lexer.TOKEN_LBRACE, "Expected '{' to open block")

	body := []StmtNode{}
	for !p.check(lexer.TOKEN_RBRACE) && !p.isAtEnd() {
		body = append(body, p.parseStatement())
	}
	p.consume(lexer.TOKEN_RBRACE, "Expected '}' to close block")

	return &BlockStmt{Body: body, Location: loc}
}

// parseExpressionStmt parses a bare expression used as a statement.
func (p *Parser) parseExpressionStmt() StmtNode {
	loc := p.loc()
	expr := p.parseExpression()
	p.match(lexer.TOKEN_SEMICOLON)
	return &ExpressionStmt{Expr: expr, Location: loc}
}

// parseEndpointStmt parses `endpoint METHOD STRING (use [ ID (, ID)* ])? BLOCK`.
func (p *Parser) parseEndpointStmt() StmtNode {
	loc := p.loc()
	p.advance() // 'endpoint'
	method := p.consumeMethod()

	pathTok := p.consume(lexer.TOKEN_STRING, "Expected path string after HTTP method")
	path, _ := pathTok.Literal.(string)

	middlewares := []string{}
	if p.match(lexer.TOKEN_USE) {
		middlewares = p.parseMiddlewareNameList()
	}

	body := p.parseBlockStmt().(*BlockStmt)

	return &EndpointStmt{Method: method, Path: path, Middlewares: middlewares, Body: body, Location: loc}
}

// consumeMethod consumes one of the five HTTP method keywords and returns its
// textual name.
func (p *Parser) consumeMethod() string {
	tok := p.peek()
	switch tok.Type {
	case lexer.TOKEN_GET, lexer.TOKEN_POST, lexer.TOKEN_PUT, lexer.TOKEN_DELETE, lexer.TOKEN_PATCH:
		p.advance()
		return tok.Lexeme
	}
	p.fail("Expected HTTP method (GET, POST, PUT, DELETE, PATCH)")
	panic("unreachable")
}

// parseMiddlewareNameList parses `[ ID (, ID)* ]`, allowing an empty list.
func (p *Parser) parseMiddlewareNameList() []string {
	p.consume(lexer.TOKEN_LBRACKET, "Expected '[' after 'use'")
	names := []string{}
	if !p.check(lexer.TOKEN_RBRACKET) {
		for {
			names = append(names, p.consumeName("Expected middleware name"))
			if !p.match(lexer.TOKEN_COMMA) {
				break
			}
		}
	}
	p.consume(lexer.TOKEN_RBRACKET, "Expected ']' after middleware list")
	return names
}

// parseMiddlewareStmt parses `middleware ID BLOCK`.
func (p *Parser) parseMiddlewareStmt() StmtNode {
	loc := p.loc()
	p.advance() // 'middleware'
	name := p.consumeName("Expected middleware name")
	body := p.parseBlockStmt().(*BlockStmt)
	return &MiddlewareStmt{Name: name, Body: body, Location: loc}
}

// parseUseStmt parses `use ID` or `use [ ID (, ID)* ]`.
func (p *Parser) parseUseStmt() StmtNode {
	loc := p.loc()
	p.advance() // 'use'

	var names []string
	if p.check(lexer.TOKEN_LBRACKET) {
		names = p.parseMiddlewareNameList()
	} else {
		names = []string{p.consumeName("Expected middleware name after 'use'")}
	}
	p.match(lexer.TOKEN_SEMICOLON)
	return &UseStmt{Middlewares: names, Location: loc}
}

// parseValidateStmt parses `validate EXPR { FIELD* }`.
func (p *Parser) parseValidateStmt() StmtNode {
	loc := p.loc()
	p.advance() // 'validate'
	target := p.parseExpression()

	p.consume(lexer.TOKEN_LBRACE, "Expected '{' after validate target")
	fields := []*ValidationField{}
	for !p.check(lexer.TOKEN_RBRACE) && !p.isAtEnd() {
		fields = append(fields, p.parseValidationField())
	}
	p.consume(lexer.TOKEN_RBRACE, "Expected '}' to close validate schema")

	return &ValidateStmt{Target: target, Fields: fields, Location: loc}
}

// parseValidationField parses `ID : optional? TYPENAME NESTED?`.
func (p *Parser) parseValidationField() *ValidationField {
	name := p.consumeName("Expected field name in validate schema")
	p.consume(lexer.TOKEN_COLON, "Expected ':' after validate field name")

	optional := p.match(lexer.TOKEN_OPTIONAL)
	typeName := p.consumeName("Expected field type (string, number, boolean, array, object)")

	field := &ValidationField{Name: name, Type: typeName, Optional: optional}

	if typeName == "object" && p.check(lexer.TOKEN_LBRACE) {
		p.advance()
		for !p.check(lexer.TOKEN_RBRACE) && !p.isAtEnd() {
			field.Nested = append(field.Nested, p.parseValidationField())
		}
		p.consume(lexer.TOKEN_RBRACE, "Expected '}' to close nested validate schema")
	}

	p.match(lexer.TOKEN_COMMA)
	return field
}

// parseServerStmt parses `server EXPR`.
func (p *Parser) parseServerStmt() StmtNode {
	loc := p.loc()
	p.advance() // 'server'
	port := p.parseExpression()
	p.match(lexer.TOKEN_SEMICOLON)
	return &ServerStmt{Port: port, Location: loc}
}

// canStartExpression reports whether the current token can begin an
// expression, used to detect a bare `return` with no argument.
func (p *Parser) canStartExpression() bool {
	switch p.peek().Type {
	case lexer.TOKEN_RBRACE, lexer.TOKEN_EOF, lexer.TOKEN_SEMICOLON:
		return false
	}
	return true
}
