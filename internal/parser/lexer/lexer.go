package lexer

import (
	"fmt"
	"strings"
)

type TokenType int

const (
	// Special
	ILLEGAL TokenType = iota
	EOF
	WS // Whitespace

	// Literals
	IDENTIFIER // table_name, column_name
	STRING     // 'value'
	NUMBER     // 123, 1.23

	// Keywords
	SELECT
	FROM
	WHERE
	GROUP
	BY
	AS
	AND
	OR
	NOT
	TRUE
	FALSE
	NULL

	// Keywords outside the supported subset; recognised so the parser can
	// name them in errors
	ORDER
	LIMIT
	OFFSET
	JOIN
	HAVING
	DISTINCT
	UNION
	EXCEPT
	INTERSECT
	LIKE
	IN
	IS
	BETWEEN
	INSERT
	UPDATE
	DELETE
	CREATE
	DROP

	// Operators & Punctuation
	ASTERISK      // *
	PLUS          // +
	MINUS         // -
	SLASH         // /
	COMMA         // ,
	DOT           // .
	PAREN_OPEN    // (
	PAREN_CLOSE   // )
	EQUALS        // =
	NOT_EQUAL     // != or <>
	LESS_THAN     // <
	LESS_EQUAL    // <=
	GREATER_THAN  // >
	GREATER_EQUAL // >=
	SEMICOLON     // ;
)

var keywords = map[string]TokenType{
	"SELECT":    SELECT,
	"FROM":      FROM,
	"WHERE":     WHERE,
	"GROUP":     GROUP,
	"BY":        BY,
	"AS":        AS,
	"AND":       AND,
	"OR":        OR,
	"NOT":       NOT,
	"TRUE":      TRUE,
	"FALSE":     FALSE,
	"NULL":      NULL,
	"ORDER":     ORDER,
	"LIMIT":     LIMIT,
	"OFFSET":    OFFSET,
	"JOIN":      JOIN,
	"HAVING":    HAVING,
	"DISTINCT":  DISTINCT,
	"UNION":     UNION,
	"EXCEPT":    EXCEPT,
	"INTERSECT": INTERSECT,
	"LIKE":      LIKE,
	"IN":        IN,
	"IS":        IS,
	"BETWEEN":   BETWEEN,
	"INSERT":    INSERT,
	"UPDATE":    UPDATE,
	"DELETE":    DELETE,
	"CREATE":    CREATE,
	"DROP":      DROP,
}

var tokenNames = map[TokenType]string{
	ILLEGAL:       "ILLEGAL",
	EOF:           "EOF",
	IDENTIFIER:    "IDENTIFIER",
	STRING:        "STRING",
	NUMBER:        "NUMBER",
	ASTERISK:      "*",
	PLUS:          "+",
	MINUS:         "-",
	SLASH:         "/",
	COMMA:         ",",
	DOT:           ".",
	PAREN_OPEN:    "(",
	PAREN_CLOSE:   ")",
	EQUALS:        "=",
	NOT_EQUAL:     "!=",
	LESS_THAN:     "<",
	LESS_EQUAL:    "<=",
	GREATER_THAN:  ">",
	GREATER_EQUAL: ">=",
	SEMICOLON:     ";",
}

func init() {
	for word, t := range keywords {
		tokenNames[t] = word
	}
}

func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TokenType(%d)", int(t))
}

// IsUnsupportedKeyword reports keywords the engine recognises but does not run
func (t TokenType) IsUnsupportedKeyword() bool {
	return t >= ORDER && t <= DROP
}

type Token struct {
	Type    TokenType
	Literal string
	Line    int
	Column  int
}

func (t Token) String() string {
	return fmt.Sprintf("Token(%s, %q)", t.Type, t.Literal)
}

type Lexer struct {
	input        string
	position     int  // current position in input (points to current char)
	readPosition int  // current reading position in input (after current char)
	ch           byte // current char under examination
	line         int
	column       int
}

func New(input string) *Lexer {
	l := &Lexer{input: input, line: 1, column: 0}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.readPosition >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPosition]
	}
	l.position = l.readPosition
	l.readPosition += 1
	l.column++
}

func (l *Lexer) peekChar() byte {
	if l.readPosition >= len(l.input) {
		return 0
	}
	return l.input[l.readPosition]
}

func (l *Lexer) NextToken() Token {
	var tok Token

	l.skipWhitespace()

	line, col := l.line, l.column

	switch l.ch {
	case '*':
		tok = newToken(ASTERISK, l.ch, line, col)
	case '+':
		tok = newToken(PLUS, l.ch, line, col)
	case '-':
		tok = newToken(MINUS, l.ch, line, col)
	case '/':
		tok = newToken(SLASH, l.ch, line, col)
	case ',':
		tok = newToken(COMMA, l.ch, line, col)
	case '.':
		tok = newToken(DOT, l.ch, line, col)
	case '(':
		tok = newToken(PAREN_OPEN, l.ch, line, col)
	case ')':
		tok = newToken(PAREN_CLOSE, l.ch, line, col)
	case ';':
		tok = newToken(SEMICOLON, l.ch, line, col)
	case '=':
		if l.peekChar() == '=' {
			l.readChar()
			tok = Token{Type: EQUALS, Literal: "==", Line: line, Column: col}
		} else {
			tok = newToken(EQUALS, l.ch, line, col)
		}
	case '!':
		if l.peekChar() == '=' {
			l.readChar()
			tok = Token{Type: NOT_EQUAL, Literal: "!=", Line: line, Column: col}
		} else {
			tok = newToken(ILLEGAL, l.ch, line, col)
		}
	case '<':
		switch l.peekChar() {
		case '=':
			l.readChar()
			tok = Token{Type: LESS_EQUAL, Literal: "<=", Line: line, Column: col}
		case '>':
			l.readChar()
			tok = Token{Type: NOT_EQUAL, Literal: "<>", Line: line, Column: col}
		default:
			tok = newToken(LESS_THAN, l.ch, line, col)
		}
	case '>':
		if l.peekChar() == '=' {
			l.readChar()
			tok = Token{Type: GREATER_EQUAL, Literal: ">=", Line: line, Column: col}
		} else {
			tok = newToken(GREATER_THAN, l.ch, line, col)
		}
	case '\'', '"':
		quote := l.ch
		lit, ok := l.readString(quote)
		if !ok {
			// keep the opening quote so the error can say what went wrong
			return Token{Type: ILLEGAL, Literal: string(quote) + lit, Line: line, Column: col}
		}
		return Token{Type: STRING, Literal: lit, Line: line, Column: col}
	case 0:
		tok = Token{Type: EOF, Line: line, Column: col}
	default:
		if isLetter(l.ch) {
			lit := l.readIdentifier()
			return Token{Type: LookupIdent(lit), Literal: lit, Line: line, Column: col}
		} else if isDigit(l.ch) {
			return Token{Type: NUMBER, Literal: l.readNumber(), Line: line, Column: col}
		}
		tok = newToken(ILLEGAL, l.ch, line, col)
	}

	l.readChar()
	return tok
}

func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
		if l.ch == '\n' {
			l.line++
			l.column = 0
		}
		l.readChar()
	}
}

func (l *Lexer) readIdentifier() string {
	position := l.position
	for isLetter(l.ch) || isDigit(l.ch) || l.ch == '_' {
		l.readChar()
	}
	return l.input[position:l.position]
}

func (l *Lexer) readNumber() string {
	position := l.position
	for isDigit(l.ch) {
		l.readChar()
	}
	// Support simple floats
	if l.ch == '.' && isDigit(l.peekChar()) {
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
	}
	return l.input[position:l.position]
}

// readString reads a quoted string; a doubled quote is an escaped quote.
// ok is false when the input ends before the closing quote.
func (l *Lexer) readString(quote byte) (string, bool) {
	var b strings.Builder
	for {
		l.readChar()
		switch l.ch {
		case 0:
			return b.String(), false
		case quote:
			if l.peekChar() == quote {
				l.readChar()
				b.WriteByte(quote)
				continue
			}
			// Consume the closing quote
			l.readChar()
			return b.String(), true
		case '\n':
			l.line++
			l.column = 0
		}
		b.WriteByte(l.ch)
	}
}

func newToken(tokenType TokenType, ch byte, line, col int) Token {
	return Token{Type: tokenType, Literal: string(ch), Line: line, Column: col}
}

func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[strings.ToUpper(ident)]; ok {
		return tok
	}
	return IDENTIFIER
}

func isLetter(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_'
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}

// Tokenize lexes the entire input; the returned slice excludes EOF
func Tokenize(input string) ([]Token, error) {
	l := New(input)
	var tokens []Token
	for {
		tok := l.NextToken()
		if tok.Type == EOF {
			break
		}
		if tok.Type == ILLEGAL {
			if q := tok.Literal[0]; q == '\'' || q == '"' {
				return nil, fmt.Errorf("unterminated string at line %d, col %d", tok.Line, tok.Column)
			}
			return nil, fmt.Errorf("illegal token at line %d, col %d: %s", tok.Line, tok.Column, tok.Literal)
		}
		tokens = append(tokens, tok)
	}
	return tokens, nil
}
