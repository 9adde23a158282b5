package parser

import (
	"strconv"

	"github.com/eugecm/lox/pkg/ast"
)

func (p *Parser) expression() (ast.Expression, error) {
	return p.assignment()
}

func (p *Parser) assignment() (ast.Expression, error) {
	expr, err := p.or()
	if err != nil {
		return nil, err
	}
	if !p.match(Equal) {
		return expr, nil
	}
	equals := p.previous()
	value, err := p.assignment()
	if err != nil {
		return nil, err
	}
	switch target := expr.(type) {
	case *ast.Variable:
		return at(ast.NewAssignment(target.Name, value), equals), nil
	case *ast.GetExpression:
		return at(ast.NewSetExpression(target.Object, target.Name, value), equals), nil
	default:
		return nil, p.errorAt(equals, ErrInvalidAssignment, "Invalid assignment target.")
	}
}

func (p *Parser) or() (ast.Expression, error) {
	return p.logical(Or, "or", p.and)
}

func (p *Parser) and() (ast.Expression, error) {
	return p.logical(And, "and", p.equality)
}

func (p *Parser) logical(tok TokenType, operator string, next func() (ast.Expression, error)) (ast.Expression, error) {
	expr, err := next()
	if err != nil {
		return nil, err
	}
	for p.match(tok) {
		opTok := p.previous()
		right, err := next()
		if err != nil {
			return nil, err
		}
		expr = at(ast.NewLogicalExpression(operator, expr, right), opTok)
	}
	return expr, nil
}

func (p *Parser) equality() (ast.Expression, error) {
	return p.binary(p.comparison, BangEqual, EqualEqual)
}

func (p *Parser) comparison() (ast.Expression, error) {
	return p.binary(p.term, Greater, GreaterEqual, Less, LessEqual)
}

func (p *Parser) term() (ast.Expression, error) {
	return p.binary(p.factor, Minus, Plus)
}

func (p *Parser) factor() (ast.Expression, error) {
	return p.binary(p.unary, Slash, Star)
}

// binary parses a left-associative chain of operators at one precedence level.
func (p *Parser) binary(next func() (ast.Expression, error), operators ...TokenType) (ast.Expression, error) {
	expr, err := next()
	if err != nil {
		return nil, err
	}
	for p.match(operators...) {
		op := p.previous()
		right, err := next()
		if err != nil {
			return nil, err
		}
		expr = at(ast.NewBinaryExpression(op.Lexeme, expr, right), op)
	}
	return expr, nil
}

func (p *Parser) unary() (ast.Expression, error) {
	if p.match(Bang, Minus) {
		op := p.previous()
		operand, err := p.unary()
		if err != nil {
			return nil, err
		}
		return at(ast.NewUnaryExpression(op.Lexeme, operand), op), nil
	}
	return p.call()
}

func (p *Parser) call() (ast.Expression, error) {
	expr, err := p.primary()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.match(LeftParen):
			if expr, err = p.finishCall(expr); err != nil {
				return nil, err
			}
		case p.match(Dot):
			name, err := p.consume(Identifier, "Expect property name after '.'.")
			if err != nil {
				return nil, err
			}
			expr = at(ast.NewGetExpression(expr, name.Lexeme), name)
		default:
			return expr, nil
		}
	}
}

func (p *Parser) finishCall(callee ast.Expression) (ast.Expression, error) {
	var args []ast.Expression
	if !p.check(RightParen) {
		for {
			if len(args) >= maxArguments {
				return nil, p.errorAt(p.peek(), ErrTooManyArguments, "Can't have more than 255 arguments.")
			}
			arg, err := p.expression()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if !p.match(Comma) {
				break
			}
		}
	}
	paren, err := p.consume(RightParen, "Expect ')' after arguments.")
	if err != nil {
		return nil, err
	}
	return at(ast.NewCallExpression(callee, args), paren), nil
}

func (p *Parser) primary() (ast.Expression, error) {
	tok := p.peek()
	switch {
	case p.match(False):
		return at(ast.NewBooleanLiteral(false), tok), nil
	case p.match(True):
		return at(ast.NewBooleanLiteral(true), tok), nil
	case p.match(Nil):
		return at(ast.NewNilLiteral(), tok), nil
	case p.match(Number):
		value, err := strconv.ParseFloat(tok.Lexeme, 64)
		if err != nil {
			return nil, p.errorAt(tok, ErrUnexpectedToken, "Invalid number literal.")
		}
		return at(ast.NewNumberLiteral(value), tok), nil
	case p.match(String):
		return at(ast.NewStringLiteral(tok.Lexeme), tok), nil
	case p.match(This):
		return at(ast.NewThisExpression(), tok), nil
	case p.match(Super):
		if _, err := p.consume(Dot, "Expect '.' after 'super'."); err != nil {
			return nil, err
		}
		method, err := p.consume(Identifier, "Expect superclass method name.")
		if err != nil {
			return nil, err
		}
		return at(ast.NewSuperExpression(method.Lexeme), tok), nil
	case p.match(Identifier):
		return at(ast.NewVariable(tok.Lexeme), tok), nil
	case p.match(LeftParen):
		expr, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(RightParen, "Expect ')' after expression."); err != nil {
			return nil, err
		}
		return at(ast.NewGrouping(expr), tok), nil
	}
	return nil, p.errorAt(tok, ErrUnexpectedToken, "Expect expression.")
}
