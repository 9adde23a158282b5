package parser

import (
	"errors"
	"testing"
)

func TestScanTokens(t *testing.T) {
	tokens, err := NewScanner("var x = 1.5; // trailing\nprint x >= \"hi\";").ScanTokens()
	if err != nil {
		t.Fatalf("ScanTokens returned error: %v", err)
	}
	want := []TokenType{Var, Identifier, Equal, Number, Semicolon, Print, Identifier, GreaterEqual, String, Semicolon, EOF}
	if len(tokens) != len(want) {
		t.Fatalf("expected %d tokens, got %d: %v", len(want), len(tokens), tokens)
	}
	for i, typ := range want {
		if tokens[i].Type != typ {
			t.Fatalf("token %d: expected %s, got %s", i, typ, tokens[i].Type)
		}
	}
	if tokens[3].Lexeme != "1.5" {
		t.Fatalf("expected number lexeme 1.5, got %q", tokens[3].Lexeme)
	}
	if tokens[8].Lexeme != "hi" || tokens[8].Line != 2 {
		t.Fatalf("unexpected string token %#v", tokens[8])
	}
}

func TestScanKeywordsAndIdentifiers(t *testing.T) {
	tokens, err := NewScanner("class classy _this this").ScanTokens()
	if err != nil {
		t.Fatalf("ScanTokens returned error: %v", err)
	}
	want := []TokenType{Class, Identifier, Identifier, This, EOF}
	for i, typ := range want {
		if tokens[i].Type != typ {
			t.Fatalf("token %d: expected %s, got %s", i, typ, tokens[i].Type)
		}
	}
}

func TestScanNumberTrailingDot(t *testing.T) {
	tokens, err := NewScanner("12.").ScanTokens()
	if err != nil {
		t.Fatalf("ScanTokens returned error: %v", err)
	}
	if tokens[0].Type != Number || tokens[0].Lexeme != "12" || tokens[1].Type != Dot {
		t.Fatalf("expected number then dot, got %v", tokens)
	}
}

func TestScanErrors(t *testing.T) {
	_, err := NewScanner("var a = 1;\n@").ScanTokens()
	var perr *Error
	if !errors.As(err, &perr) || perr.Kind != ErrUnexpectedCharacter || perr.Line != 2 {
		t.Fatalf("expected unexpected character on line 2, got %v", err)
	}

	_, err = NewScanner("\"open\nstill open").ScanTokens()
	if !errors.As(err, &perr) || perr.Kind != ErrUnterminatedString || perr.Line != 1 {
		t.Fatalf("expected unterminated string on line 1, got %v", err)
	}
}
