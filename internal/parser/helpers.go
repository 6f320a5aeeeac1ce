package parser

import (
	"fmt"
	"strings"

	"github.com/leengari/tabquery/internal/domain/errors"
	"github.com/leengari/tabquery/internal/parser/lexer"
)

// isComparisonOperator checks if a token type is a comparison operator
func isComparisonOperator(t lexer.TokenType) bool {
	return t == lexer.EQUALS ||
		t == lexer.LESS_THAN ||
		t == lexer.GREATER_THAN ||
		t == lexer.LESS_EQUAL ||
		t == lexer.GREATER_EQUAL ||
		t == lexer.NOT_EQUAL
}

// comparisonOperator normalises == to = and <> to !=
func comparisonOperator(tok lexer.Token) string {
	switch tok.Type {
	case lexer.EQUALS:
		return "="
	case lexer.NOT_EQUAL:
		return "!="
	}
	return tok.Literal
}

// isJoinModifier checks for the words that may precede JOIN
func isJoinModifier(word string) bool {
	switch strings.ToUpper(word) {
	case "INNER", "LEFT", "RIGHT", "FULL", "OUTER", "CROSS", "NATURAL":
		return true
	}
	return false
}

// unsupported names a recognised keyword outside the supported subset
func unsupported(tok lexer.Token, reason string) error {
	clause := strings.ToUpper(tok.Literal)
	if tok.Type == lexer.ORDER {
		clause = "ORDER BY"
	}
	return &errors.UnsupportedQueryError{Clause: clause, Reason: reason}
}

func (p *Parser) expected(what string) error {
	if p.curTok.Type == lexer.EOF {
		return fmt.Errorf("expected %s, got end of input", what)
	}
	return fmt.Errorf("expected %s, got %q at line %d, col %d", what, p.curTok.Literal, p.curTok.Line, p.curTok.Column)
}

func (p *Parser) unexpected() error {
	if p.curTok.Type == lexer.EOF {
		return fmt.Errorf("unexpected end of input")
	}
	return fmt.Errorf("unexpected token %q at line %d, col %d", p.curTok.Literal, p.curTok.Line, p.curTok.Column)
}
