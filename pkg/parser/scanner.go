package parser

import (
	"fmt"
	"unicode"
	"unicode/utf8"
)

// TokenType enumerates the lexical categories.
type TokenType int

const (
	// Single-character tokens.
	LeftParen TokenType = iota
	RightParen
	LeftBrace
	RightBrace
	Comma
	Dot
	Minus
	Plus
	Semicolon
	Slash
	Star

	// One or two character tokens.
	Bang
	BangEqual
	Equal
	EqualEqual
	Greater
	GreaterEqual
	Less
	LessEqual

	// Literals.
	Identifier
	String
	Number

	// Keywords.
	And
	Class
	Else
	False
	Fun
	For
	If
	Nil
	Or
	Print
	Return
	Super
	This
	True
	Var
	While

	EOF
)

var tokenNames = map[TokenType]string{
	LeftParen: "(", RightParen: ")", LeftBrace: "{", RightBrace: "}",
	Comma: ",", Dot: ".", Minus: "-", Plus: "+", Semicolon: ";", Slash: "/", Star: "*",
	Bang: "!", BangEqual: "!=", Equal: "=", EqualEqual: "==",
	Greater: ">", GreaterEqual: ">=", Less: "<", LessEqual: "<=",
	Identifier: "identifier", String: "string", Number: "number",
	EOF: "end of input",
}

var keywords = map[string]TokenType{
	"and":    And,
	"class":  Class,
	"else":   Else,
	"false":  False,
	"for":    For,
	"fun":    Fun,
	"if":     If,
	"nil":    Nil,
	"or":     Or,
	"print":  Print,
	"return": Return,
	"super":  Super,
	"this":   This,
	"true":   True,
	"var":    Var,
	"while":  While,
}

func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	for word, typ := range keywords {
		if typ == t {
			return word
		}
	}
	return fmt.Sprintf("token(%d)", int(t))
}

// Token is a lexeme with its category. For strings Lexeme excludes the quotes.
type Token struct {
	Type   TokenType
	Lexeme string
	Line   int
}

func (t Token) String() string {
	if t.Type == EOF {
		return "EOF"
	}
	return t.Lexeme
}

// Scanner turns source text into tokens.
type Scanner struct {
	source  string
	start   int
	current int
	line    int
}

func NewScanner(source string) *Scanner {
	return &Scanner{source: source, line: 1}
}

// ScanTokens returns every token ending with EOF, or the first lexical error.
func (s *Scanner) ScanTokens() ([]Token, error) {
	var tokens []Token
	for {
		tok, err := s.Next()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Type == EOF {
			return tokens, nil
		}
	}
}

// Next scans one token, skipping whitespace and comments.
func (s *Scanner) Next() (Token, error) {
	for {
		s.start = s.current
		if s.atEnd() {
			return Token{Type: EOF, Line: s.line}, nil
		}
		c := s.advance()
		switch c {
		case '(':
			return s.token(LeftParen), nil
		case ')':
			return s.token(RightParen), nil
		case '{':
			return s.token(LeftBrace), nil
		case '}':
			return s.token(RightBrace), nil
		case ',':
			return s.token(Comma), nil
		case '.':
			return s.token(Dot), nil
		case '-':
			return s.token(Minus), nil
		case '+':
			return s.token(Plus), nil
		case ';':
			return s.token(Semicolon), nil
		case '*':
			return s.token(Star), nil
		case '!':
			return s.token(s.pick('=', BangEqual, Bang)), nil
		case '=':
			return s.token(s.pick('=', EqualEqual, Equal)), nil
		case '<':
			return s.token(s.pick('=', LessEqual, Less)), nil
		case '>':
			return s.token(s.pick('=', GreaterEqual, Greater)), nil
		case '/':
			if s.match('/') {
				for !s.atEnd() && s.peek() != '\n' {
					s.advance()
				}
				continue
			}
			return s.token(Slash), nil
		case ' ', '\r', '\t':
			continue
		case '\n':
			s.line++
			continue
		case '"':
			return s.string()
		default:
			switch {
			case isDigit(c):
				return s.number(), nil
			case isIdentStart(c):
				return s.identifier(), nil
			}
			return Token{}, &Error{
				Kind:    ErrUnexpectedCharacter,
				Line:    s.line,
				Lexeme:  string(c),
				Message: "Unexpected character.",
			}
		}
	}
}

func (s *Scanner) string() (Token, error) {
	startLine := s.line
	for !s.atEnd() && s.peek() != '"' {
		if s.peek() == '\n' {
			s.line++
		}
		s.advance()
	}
	if s.atEnd() {
		return Token{}, &Error{Kind: ErrUnterminatedString, Line: startLine, Message: "Unterminated string."}
	}
	s.advance()
	return Token{Type: String, Lexeme: s.source[s.start+1 : s.current-1], Line: startLine}, nil
}

func (s *Scanner) number() Token {
	for isDigit(s.peek()) {
		s.advance()
	}
	if s.peek() == '.' && isDigit(s.peekNext()) {
		s.advance()
		for isDigit(s.peek()) {
			s.advance()
		}
	}
	return s.token(Number)
}

func (s *Scanner) identifier() Token {
	for isIdentPart(s.peek()) {
		s.advance()
	}
	if kw, ok := keywords[s.source[s.start:s.current]]; ok {
		return s.token(kw)
	}
	return s.token(Identifier)
}

func (s *Scanner) token(t TokenType) Token {
	return Token{Type: t, Lexeme: s.source[s.start:s.current], Line: s.line}
}

func (s *Scanner) pick(next rune, matched, otherwise TokenType) TokenType {
	if s.match(next) {
		return matched
	}
	return otherwise
}

func (s *Scanner) atEnd() bool {
	return s.current >= len(s.source)
}

func (s *Scanner) advance() rune {
	r, size := utf8.DecodeRuneInString(s.source[s.current:])
	s.current += size
	return r
}

func (s *Scanner) match(expected rune) bool {
	if s.atEnd() || s.peek() != expected {
		return false
	}
	s.advance()
	return true
}

func (s *Scanner) peek() rune {
	if s.atEnd() {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(s.source[s.current:])
	return r
}

func (s *Scanner) peekNext() rune {
	if s.atEnd() {
		return 0
	}
	_, size := utf8.DecodeRuneInString(s.source[s.current:])
	if s.current+size >= len(s.source) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(s.source[s.current+size:])
	return r
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || unicode.IsDigit(r)
}
