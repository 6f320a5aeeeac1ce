package lexer

import (
	"strings"
	"testing"
)

func TestNextToken(t *testing.T) {
	input := `SELECT ROUND(AVG(Salary), 2) AS AVG_Salary, Department
FROM employees WHERE Age >= 30.5 AND Emp_Name != 'O''Brien' GROUP BY Department;`

	tests := []struct {
		expectedType    TokenType
		expectedLiteral string
	}{
		{SELECT, "SELECT"},
		{IDENTIFIER, "ROUND"},
		{PAREN_OPEN, "("},
		{IDENTIFIER, "AVG"},
		{PAREN_OPEN, "("},
		{IDENTIFIER, "Salary"},
		{PAREN_CLOSE, ")"},
		{COMMA, ","},
		{NUMBER, "2"},
		{PAREN_CLOSE, ")"},
		{AS, "AS"},
		{IDENTIFIER, "AVG_Salary"},
		{COMMA, ","},
		{IDENTIFIER, "Department"},
		{FROM, "FROM"},
		{IDENTIFIER, "employees"},
		{WHERE, "WHERE"},
		{IDENTIFIER, "Age"},
		{GREATER_EQUAL, ">="},
		{NUMBER, "30.5"},
		{AND, "AND"},
		{IDENTIFIER, "Emp_Name"},
		{NOT_EQUAL, "!="},
		{STRING, "O'Brien"},
		{GROUP, "GROUP"},
		{BY, "BY"},
		{IDENTIFIER, "Department"},
		{SEMICOLON, ";"},
		{EOF, ""},
	}

	l := New(input)

	for i, tt := range tests {
		tok := l.NextToken()

		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%q, got=%q",
				i, tt.expectedType, tok.Type)
		}

		if tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d] - literal wrong. expected=%q, got=%q",
				i, tt.expectedLiteral, tok.Literal)
		}
	}
}

func TestOperators(t *testing.T) {
	tokens, err := Tokenize(`a = 1 == b <> c < d <= e > f + g - h * i / j`)
	if err != nil {
		t.Fatalf("Tokenize error: %v", err)
	}

	expected := []TokenType{
		IDENTIFIER, EQUALS, NUMBER, EQUALS, IDENTIFIER, NOT_EQUAL, IDENTIFIER,
		LESS_THAN, IDENTIFIER, LESS_EQUAL, IDENTIFIER, GREATER_THAN, IDENTIFIER,
		PLUS, IDENTIFIER, MINUS, IDENTIFIER, ASTERISK, IDENTIFIER, SLASH, IDENTIFIER,
	}
	if len(tokens) != len(expected) {
		t.Fatalf("expected %d tokens, got %d", len(expected), len(tokens))
	}
	for i, typ := range expected {
		if tokens[i].Type != typ {
			t.Errorf("token %d: expected %s, got %s", i, typ, tokens[i].Type)
		}
	}
}

func TestKeywordsCaseInsensitive(t *testing.T) {
	tokens, err := Tokenize("select * from t order by x limit 3")
	if err != nil {
		t.Fatalf("Tokenize error: %v", err)
	}
	if tokens[0].Type != SELECT || tokens[2].Type != FROM {
		t.Errorf("lower-case keywords not recognised: %v", tokens)
	}
	if !tokens[4].Type.IsUnsupportedKeyword() || !tokens[7].Type.IsUnsupportedKeyword() {
		t.Errorf("ORDER and LIMIT should be unsupported keywords: %v", tokens)
	}
	if SELECT.IsUnsupportedKeyword() || IDENTIFIER.IsUnsupportedKeyword() {
		t.Error("SELECT and IDENTIFIER are supported")
	}

	for _, word := range []string{"like", "In", "IS", "between", "except", "INTERSECT"} {
		if !LookupIdent(word).IsUnsupportedKeyword() {
			t.Errorf("%s should be an unsupported keyword", word)
		}
	}
}

func TestTokenPositions(t *testing.T) {
	tokens, err := Tokenize("SELECT *\nFROM t")
	if err != nil {
		t.Fatalf("Tokenize error: %v", err)
	}
	from := tokens[2]
	if from.Line != 2 || from.Column != 1 {
		t.Errorf("expected FROM at 2:1, got %d:%d", from.Line, from.Column)
	}
}

func TestTokenizeErrors(t *testing.T) {
	tests := []struct {
		input   string
		message string
	}{
		{"SELECT 'open", "unterminated string"},
		{"SELECT # FROM t", "illegal token"},
		{"SELECT a ! b", "illegal token"},
	}
	for _, tt := range tests {
		_, err := Tokenize(tt.input)
		if err == nil || !strings.Contains(err.Error(), tt.message) {
			t.Errorf("Tokenize(%q): expected %q error, got %v", tt.input, tt.message, err)
		}
	}
}
