package parser

import (
	"fmt"

	"github.com/eugecm/lox/pkg/ast"
)

// maxArguments bounds both call arguments and function parameters.
const maxArguments = 255

// Parser is a recursive-descent parser over a scanned token stream.
type Parser struct {
	tokens  []Token
	current int
}

// Parse scans and parses source into a program. The first lexical or
// syntactic problem is returned as *Error.
func Parse(source string) (*ast.Program, error) {
	tokens, err := NewScanner(source).ScanTokens()
	if err != nil {
		return nil, err
	}
	return NewParser(tokens).ParseProgram()
}

func NewParser(tokens []Token) *Parser {
	if len(tokens) == 0 || tokens[len(tokens)-1].Type != EOF {
		line := 1
		if len(tokens) > 0 {
			line = tokens[len(tokens)-1].Line
		}
		tokens = append(tokens, Token{Type: EOF, Line: line})
	}
	return &Parser{tokens: tokens}
}

// ParseProgram consumes declarations until EOF.
func (p *Parser) ParseProgram() (*ast.Program, error) {
	var body []ast.Statement
	for !p.atEnd() {
		stmt, err := p.declaration()
		if err != nil {
			return nil, err
		}
		body = append(body, stmt)
	}
	program := ast.NewProgram(body)
	program.SetLine(1)
	return program, nil
}

type lineSetter interface {
	SetLine(int)
}

func at[T lineSetter](node T, tok Token) T {
	node.SetLine(tok.Line)
	return node
}

func (p *Parser) match(types ...TokenType) bool {
	for _, t := range types {
		if p.check(t) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) check(t TokenType) bool {
	return p.peek().Type == t
}

func (p *Parser) advance() Token {
	if !p.atEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) atEnd() bool {
	return p.peek().Type == EOF
}

func (p *Parser) peek() Token {
	return p.tokens[p.current]
}

func (p *Parser) previous() Token {
	return p.tokens[p.current-1]
}

func (p *Parser) consume(t TokenType, message string) (Token, error) {
	if p.check(t) {
		return p.advance(), nil
	}
	return Token{}, p.errorAt(p.peek(), ErrUnexpectedToken, message)
}

func (p *Parser) errorAt(tok Token, kind ErrorKind, message string) *Error {
	return &Error{
		Kind:    kind,
		Line:    tok.Line,
		Lexeme:  tok.Lexeme,
		Message: message,
		AtEOF:   tok.Type == EOF,
	}
}

func expectMessage(what, where string) string {
	return fmt.Sprintf("Expect %s %s.", what, where)
}
