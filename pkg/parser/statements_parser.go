package parser

import (
	"github.com/eugecm/lox/pkg/ast"
)

func (p *Parser) statement() (ast.Statement, error) {
	switch {
	case p.match(Print):
		return p.printStatement()
	case p.match(If):
		return p.ifStatement()
	case p.match(While):
		return p.whileStatement()
	case p.match(For):
		return p.forStatement()
	case p.match(Return):
		return p.returnStatement()
	case p.match(LeftBrace):
		brace := p.previous()
		body, err := p.block()
		if err != nil {
			return nil, err
		}
		return at(ast.NewBlockStatement(body), brace), nil
	default:
		return p.expressionStatement()
	}
}

func (p *Parser) printStatement() (ast.Statement, error) {
	keyword := p.previous()
	value, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(Semicolon, "Expect ';' after value."); err != nil {
		return nil, err
	}
	return at(ast.NewPrintStatement(value), keyword), nil
}

func (p *Parser) expressionStatement() (ast.Statement, error) {
	start := p.peek()
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(Semicolon, "Expect ';' after expression."); err != nil {
		return nil, err
	}
	return at(ast.NewExpressionStatement(expr), start), nil
}

func (p *Parser) ifStatement() (ast.Statement, error) {
	keyword := p.previous()
	cond, err := p.parenthesized("'if'", "condition")
	if err != nil {
		return nil, err
	}
	then, err := p.statement()
	if err != nil {
		return nil, err
	}
	var otherwise ast.Statement
	if p.match(Else) {
		otherwise, err = p.statement()
		if err != nil {
			return nil, err
		}
	}
	return at(ast.NewIfStatement(cond, then, otherwise), keyword), nil
}

func (p *Parser) whileStatement() (ast.Statement, error) {
	keyword := p.previous()
	cond, err := p.parenthesized("'while'", "condition")
	if err != nil {
		return nil, err
	}
	body, err := p.statement()
	if err != nil {
		return nil, err
	}
	return at(ast.NewWhileStatement(cond, body), keyword), nil
}

// forStatement desugars `for (init; cond; step) body` into
// `{ init; while (cond) { body; step; } }`.
func (p *Parser) forStatement() (ast.Statement, error) {
	keyword := p.previous()
	if _, err := p.consume(LeftParen, "Expect '(' after 'for'."); err != nil {
		return nil, err
	}

	var initializer ast.Statement
	var err error
	switch {
	case p.match(Semicolon):
	case p.match(Var):
		initializer, err = p.varDeclaration()
	default:
		initializer, err = p.expressionStatement()
	}
	if err != nil {
		return nil, err
	}

	var cond ast.Expression
	if !p.check(Semicolon) {
		if cond, err = p.expression(); err != nil {
			return nil, err
		}
	}
	if _, err := p.consume(Semicolon, "Expect ';' after loop condition."); err != nil {
		return nil, err
	}

	var step ast.Expression
	if !p.check(RightParen) {
		if step, err = p.expression(); err != nil {
			return nil, err
		}
	}
	if _, err := p.consume(RightParen, "Expect ')' after for clauses."); err != nil {
		return nil, err
	}

	body, err := p.statement()
	if err != nil {
		return nil, err
	}
	if step != nil {
		body = at(ast.NewBlockStatement([]ast.Statement{body, at(ast.NewExpressionStatement(step), keyword)}), keyword)
	}
	if cond == nil {
		cond = at(ast.NewBooleanLiteral(true), keyword)
	}
	var loop ast.Statement = at(ast.NewWhileStatement(cond, body), keyword)
	if initializer != nil {
		loop = at(ast.NewBlockStatement([]ast.Statement{initializer, loop}), keyword)
	}
	return loop, nil
}

func (p *Parser) returnStatement() (ast.Statement, error) {
	keyword := p.previous()
	var value ast.Expression
	if !p.check(Semicolon) {
		var err error
		if value, err = p.expression(); err != nil {
			return nil, err
		}
	}
	if _, err := p.consume(Semicolon, "Expect ';' after return value."); err != nil {
		return nil, err
	}
	return at(ast.NewReturnStatement(value), keyword), nil
}

// block parses declarations up to and including the closing brace.
func (p *Parser) block() ([]ast.Statement, error) {
	var body []ast.Statement
	for !p.check(RightBrace) && !p.atEnd() {
		stmt, err := p.declaration()
		if err != nil {
			return nil, err
		}
		body = append(body, stmt)
	}
	if _, err := p.consume(RightBrace, "Expect '}' after block."); err != nil {
		return nil, err
	}
	return body, nil
}

func (p *Parser) parenthesized(keyword, what string) (ast.Expression, error) {
	if _, err := p.consume(LeftParen, "Expect '(' after "+keyword+"."); err != nil {
		return nil, err
	}
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(RightParen, "Expect ')' after "+what+"."); err != nil {
		return nil, err
	}
	return expr, nil
}
