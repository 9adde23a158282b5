package parser

import (
	"github.com/eugecm/lox/pkg/ast"
)

func (p *Parser) declaration() (ast.Statement, error) {
	switch {
	case p.match(Class):
		return p.classDeclaration()
	case p.match(Fun):
		return p.function("function")
	case p.match(Var):
		return p.varDeclaration()
	default:
		return p.statement()
	}
}

func (p *Parser) classDeclaration() (ast.Statement, error) {
	keyword := p.previous()
	name, err := p.consume(Identifier, "Expect class name.")
	if err != nil {
		return nil, err
	}

	var superclass *ast.Variable
	if p.match(Less) {
		super, err := p.consume(Identifier, "Expect superclass name.")
		if err != nil {
			return nil, err
		}
		superclass = at(ast.NewVariable(super.Lexeme), super)
	}

	if _, err := p.consume(LeftBrace, "Expect '{' before class body."); err != nil {
		return nil, err
	}
	var methods []*ast.FunctionDeclaration
	for !p.check(RightBrace) && !p.atEnd() {
		method, err := p.function("method")
		if err != nil {
			return nil, err
		}
		methods = append(methods, method)
	}
	if _, err := p.consume(RightBrace, "Expect '}' after class body."); err != nil {
		return nil, err
	}
	return at(ast.NewClassDeclaration(name.Lexeme, superclass, methods), keyword), nil
}

// function parses the part of a function or method after `fun`.
func (p *Parser) function(kind string) (*ast.FunctionDeclaration, error) {
	name, err := p.consume(Identifier, expectMessage(kind, "name"))
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(LeftParen, expectMessage("'('", "after "+kind+" name")); err != nil {
		return nil, err
	}
	var params []string
	if !p.check(RightParen) {
		for {
			if len(params) >= maxArguments {
				return nil, p.errorAt(p.peek(), ErrTooManyArguments, "Can't have more than 255 parameters.")
			}
			param, err := p.consume(Identifier, "Expect parameter name.")
			if err != nil {
				return nil, err
			}
			params = append(params, param.Lexeme)
			if !p.match(Comma) {
				break
			}
		}
	}
	if _, err := p.consume(RightParen, "Expect ')' after parameters."); err != nil {
		return nil, err
	}
	if _, err := p.consume(LeftBrace, expectMessage("'{'", "before "+kind+" body")); err != nil {
		return nil, err
	}
	body, err := p.block()
	if err != nil {
		return nil, err
	}
	return at(ast.NewFunctionDeclaration(name.Lexeme, params, body), name), nil
}

func (p *Parser) varDeclaration() (ast.Statement, error) {
	name, err := p.consume(Identifier, "Expect variable name.")
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(Equal, "Expect '=' after variable name."); err != nil {
		return nil, err
	}
	initializer, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(Semicolon, "Expect ';' after variable declaration."); err != nil {
		return nil, err
	}
	return at(ast.NewVarDeclaration(name.Lexeme, initializer), name), nil
}
