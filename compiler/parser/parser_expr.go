package parser

import "github.com/JangRuBin2/rulang/compiler/lexer"

// parseExpression parses a full expression at the lowest precedence
// (assignment).
func (p *Parser) parseExpression() ExprNode {
	return p.parseAssignment()
}

// parseAssignment implements `IDENT = EXPR`, right-associative. Any other
// left-hand side is a ParseError.
func (p *Parser) parseAssignment() ExprNode {
	expr := p.parseOr()

	if p.match(lexer.TOKEN_EQUAL) {
		ident, ok := expr.(*Identifier)
		if !ok {
			p.fail("Invalid assignment target: left-hand side must be an identifier")
		}
		value := p.parseAssignment()
		return &AssignExpr{Name: ident.Name, Value: value, Location: ident.Location}
	}

	return expr
}

func (p *Parser) parseOr() ExprNode {
	expr := p.parseAnd()
	for p.check(lexer.TOKEN_OR) {
		tok := p.advance()
		right := p.parseAnd()
		expr = &BinaryExpr{Left: expr, Operator: tok.Lexeme, Right: right, Location: expr.GetLocation()}
	}
	return expr
}

func (p *Parser) parseAnd() ExprNode {
	expr := p.parseEquality()
	for p.check(lexer.TOKEN_AND) {
		tok := p.advance()
		right := p.parseEquality()
		expr = &BinaryExpr{Left: expr, Operator: tok.Lexeme, Right: right, Location: expr.GetLocation()}
	}
	return expr
}

func (p *Parser) parseEquality() ExprNode {
	expr := p.parseComparison()
	for p.check(lexer.TOKEN_EQUAL_EQUAL) || p.check(lexer.TOKEN_BANG_EQUAL) {
		tok := p.advance()
		right := p.parseComparison()
		expr = &BinaryExpr{Left: expr, Operator: tok.Lexeme, Right: right, Location: expr.GetLocation()}
	}
	return expr
}

func (p *Parser) parseComparison() ExprNode {
	expr := p.parseAdditive()
	for p.check(lexer.TOKEN_LESS) || p.check(lexer.TOKEN_GREATER) ||
		p.check(lexer.TOKEN_LESS_EQUAL) || p.check(lexer.TOKEN_GREATER_EQUAL) {
		tok := p.advance()
		right := p.parseAdditive()
		expr = &BinaryExpr{Left: expr, Operator: tok.Lexeme, Right: right, Location: expr.GetLocation()}
	}
	return expr
}

func (p *Parser) parseAdditive() ExprNode {
	expr := p.parseMultiplicative()
	for p.check(lexer.TOKEN_PLUS) || p.check(lexer.TOKEN_MINUS) {
		tok := p.advance()
		right := p.parseMultiplicative()
		expr = &BinaryExpr{Left: expr, Operator: tok.Lexeme, Right: right, Location: expr.GetLocation()}
	}
	return expr
}

func (p *Parser) parseMultiplicative() ExprNode {
	expr := p.parseUnary()
	for p.check(lexer.TOKEN_STAR) || p.check(lexer.TOKEN_SLASH) || p.check(lexer.TOKEN_PERCENT) {
		tok := p.advance()
		right := p.parseUnary()
		expr = &BinaryExpr{Left: expr, Operator: tok.Lexeme, Right: right, Location: expr.GetLocation()}
	}
	return expr
}

// parseUnary handles prefix `-`; everything else falls through to
// call/member chaining over a primary expression.
func (p *Parser) parseUnary() ExprNode {
	if p.check(lexer.TOKEN_MINUS) {
		tok := p.advance()
		operand := p.parseUnary()
		return &UnaryExpr{Operand: operand, Location: SourceLocation{Line: tok.Line, Column: tok.Column}}
	}
	return p.parseCallOrMember()
}

// parseCallOrMember parses the left-associative postfix chain of calls
// `( args )` and member accesses `.name`.
func (p *Parser) parseCallOrMember() ExprNode {
	expr := p.parsePrimary()

	for {
		switch {
		case p.check(lexer.TOKEN_LPAREN):
			expr = p.parseCallTail(expr)
		case p.check(lexer.TOKEN_DOT):
			p.advance()
			name, ok := p.identifierLike()
			if !ok {
				p.fail("Expected property name after '.'")
			}
			expr = &MemberExpr{Object: expr, Property: name, Location: expr.GetLocation()}
		default:
			return expr
		}
	}
}

// parseCallTail parses `( args )` applied to an already-parsed callee.
func (p *Parser) parseCallTail(callee ExprNode) ExprNode {
	loc := p.loc()
	p.advance() // '('

	args := []ExprNode{}
	if !p.check(lexer.TOKEN_RPAREN) {
		for {
			args = append(args, p.parseExpression())
			if !p.match(lexer.TOKEN_COMMA) {
				break
			}
		}
	}
	p.consume(lexer.TOKEN_RPAREN, "Expected ')' after call arguments")

	return &CallExpr{Callee: callee, Args: args, Location: loc}
}

// parsePrimary parses literals, identifiers, grouped expressions, array and
// object literals, and anonymous function expressions.
func (p *Parser) parsePrimary() ExprNode {
	loc := p.loc()

	switch {
	case p.check(lexer.TOKEN_NUMBER):
		tok := p.advance()
		return &NumberLiteral{Value: tok.Literal.(float64), Location: loc}

	case p.check(lexer.TOKEN_STRING):
		tok := p.advance()
		value, _ := tok.Literal.(string)
		return &StringLiteral{Value: value, Location: loc}

	case p.match(lexer.TOKEN_TRUE):
		return &BoolLiteral{Value: true, Location: loc}

	case p.match(lexer.TOKEN_FALSE):
		return &BoolLiteral{Value: false, Location: loc}

	case p.match(lexer.TOKEN_NULL):
		return &NullLiteral{Location: loc}

	case p.check(lexer.TOKEN_LBRACE):
		return p.parseObjectLiteral()

	case p.check(lexer.TOKEN_LBRACKET):
		return p.parseArrayLiteral()

	case p.check(lexer.TOKEN_LPAREN):
		p.advance()
		expr := p.parseExpression()
		p.consume(lexer.TOKEN_RPAREN, "Expected ')' after grouped expression")
		return expr

	case p.check(lexer.TOKEN_FN):
		return p.parseFunctionExpr()

	case p.check(lexer.TOKEN_IDENTIFIER):
		tok := p.advance()
		return &Identifier{Name: tok.Lexeme, Location: loc}

	case p.check(lexer.TOKEN_NEXT):
		// `next` is a keyword but also the callable bound by the host in
		// middleware/handler scopes, e.g. `next()`.
		p.advance()
		return &Identifier{Name: "next", Location: loc}
	}

	p.fail("Expected expression")
	panic("unreachable")
}

// parseArrayLiteral parses `[ elem (, elem)* ]`.
func (p *Parser) parseArrayLiteral() ExprNode {
	loc := p.loc()
	p.advance() // '['

	elements := []ExprNode{}
	if !p.check(lexer.TOKEN_RBRACKET) {
		for {
			elements = append(elements, p.parseExpression())
			if !p.match(lexer.TOKEN_COMMA) {
				break
			}
		}
	}
	p.consume(lexer.TOKEN_RBRACKET, "Expected ']' after array elements")

	return &ArrayLiteral{Elements: elements, Location: loc}
}

// parseObjectLiteral parses `{ key: value (, key: value)* }`. Keys may be
// string literals or identifier-like lexemes, including keywords.
func (p *Parser) parseObjectLiteral() ExprNode {
	loc := p.loc()
	p.advance() // '{'

	pairs := []ObjectPair{}
	for !p.check(lexer.TOKEN_RBRACE) && !p.isAtEnd() {
		key := p.parseObjectKey()
		p.consume(lexer.TOKEN_COLON, "Expected ':' after object key")
		value := p.parseExpression()
		pairs = append(pairs, ObjectPair{Key: key, Value: value})

		if !p.match(lexer.TOKEN_COMMA) {
			break
		}
	}
	p.consume(lexer.TOKEN_RBRACE, "Expected '}' to close object literal")

	return &ObjectLiteral{Pairs: pairs, Location: loc}
}

// parseObjectKey accepts a string literal or any identifier-like lexeme
// (identifiers and keywords alike) as an object key.
func (p *Parser) parseObjectKey() string {
	if p.check(lexer.TOKEN_STRING) {
		tok := p.advance()
		value, _ := tok.Literal.(string)
		return value
	}
	if name, ok := p.identifierLike(); ok {
		return name
	}
	p.fail("Expected object key")
	panic("unreachable")
}

// parseFunctionExpr parses `fn ( params ) BLOCK`.
func (p *Parser) parseFunctionExpr() ExprNode {
	loc := p.loc()
	p.advance() // 'fn'
	params := p.parseParamList()
	body := p.parseBlockStmt().(*BlockStmt)
	return &FunctionExpr{Params: params, Body: body.Body, Location: loc}
}
