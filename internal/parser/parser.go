// Package parser turns a token stream into a SELECT statement AST.
//
// The grammar is a small SQL subset:
//
//	SELECT (* | item {, item}) FROM table [WHERE expr] [GROUP BY col {, col}] [;]
//	item := expr [AS alias]
//
// Recognised clauses outside the subset fail with UnsupportedQueryError.
package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/leengari/tabquery/internal/domain/errors"
	"github.com/leengari/tabquery/internal/parser/ast"
	"github.com/leengari/tabquery/internal/parser/lexer"
)

type Parser struct {
	tokens  []lexer.Token
	curPos  int
	curTok  lexer.Token
	peekTok lexer.Token
}

func New(tokens []lexer.Token) *Parser {
	p := &Parser{tokens: tokens, curPos: 0}
	// Read two tokens to set curTok and peekTok
	p.nextToken()
	p.nextToken()
	return p
}

// ParseSQL lexes and parses a single SELECT statement
func ParseSQL(input string) (*ast.SelectStatement, error) {
	tokens, err := lexer.Tokenize(input)
	if err != nil {
		return nil, err
	}
	stmt, err := New(tokens).Parse()
	if err != nil {
		return nil, err
	}
	return stmt.(*ast.SelectStatement), nil
}

func (p *Parser) nextToken() {
	p.curTok = p.peekTok
	if p.curPos < len(p.tokens) {
		p.peekTok = p.tokens[p.curPos]
		p.curPos++
	} else {
		p.peekTok = lexer.Token{Type: lexer.EOF}
	}
}

func (p *Parser) Parse() (ast.Statement, error) {
	switch {
	case p.curTok.Type == lexer.SELECT:
		return p.parseSelect()
	case p.curTok.Type.IsUnsupportedKeyword():
		return nil, unsupported(p.curTok, "only SELECT statements are supported")
	case p.curTok.Type == lexer.EOF:
		return nil, fmt.Errorf("empty query")
	default:
		return nil, p.expected("SELECT")
	}
}

func (p *Parser) parseSelect() (*ast.SelectStatement, error) {
	stmt := &ast.SelectStatement{}

	// SELECT
	p.nextToken()
	if p.curTok.Type == lexer.DISTINCT {
		return nil, unsupported(p.curTok, "")
	}

	// Select list
	if p.curTok.Type == lexer.ASTERISK {
		stmt.Star = true
		p.nextToken()
	} else {
		items, err := p.parseSelectItems()
		if err != nil {
			return nil, err
		}
		stmt.Items = items
	}

	// FROM
	if p.curTok.Type != lexer.FROM {
		return nil, p.expected("FROM")
	}
	p.nextToken()

	// Table Name
	if p.curTok.Type == lexer.PAREN_OPEN {
		return nil, &errors.UnsupportedQueryError{Clause: "subquery", Reason: "FROM must name a registered view"}
	}
	if p.curTok.Type != lexer.IDENTIFIER {
		return nil, p.expected("table name")
	}
	stmt.TableName = &ast.Identifier{TokenLiteralValue: p.curTok.Literal, Value: p.curTok.Literal}
	p.nextToken()

	switch {
	case p.curTok.Type == lexer.COMMA:
		return nil, &errors.UnsupportedQueryError{Clause: "JOIN", Reason: "only one table may be queried"}
	case p.curTok.Type == lexer.IDENTIFIER && isJoinModifier(p.curTok.Literal):
		return nil, &errors.UnsupportedQueryError{Clause: "JOIN"}
	case p.curTok.Type == lexer.IDENTIFIER || p.curTok.Type == lexer.AS:
		return nil, &errors.UnsupportedQueryError{Clause: "table alias", Reason: "views are referenced by name only"}
	}

	// WHERE (Optional)
	if p.curTok.Type == lexer.WHERE {
		p.nextToken()
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		stmt.Where = expr
	}

	// GROUP BY (Optional)
	if p.curTok.Type == lexer.GROUP {
		p.nextToken()
		if p.curTok.Type != lexer.BY {
			return nil, p.expected("BY")
		}
		p.nextToken()
		cols, err := p.parseIdentifierList()
		if err != nil {
			return nil, err
		}
		stmt.GroupBy = cols
	}

	// Semicolon (Optional)
	if p.curTok.Type == lexer.SEMICOLON {
		p.nextToken()
	}

	if p.curTok.Type != lexer.EOF {
		if p.curTok.Type.IsUnsupportedKeyword() || p.curTok.Type == lexer.IDENTIFIER {
			return nil, unsupported(p.curTok, "")
		}
		return nil, p.unexpected()
	}

	return stmt, nil
}

func (p *Parser) parseSelectItems() ([]*ast.SelectItem, error) {
	var items []*ast.SelectItem
	for {
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		item := &ast.SelectItem{Expr: expr}

		if p.curTok.Type == lexer.AS {
			p.nextToken()
			if p.curTok.Type != lexer.IDENTIFIER {
				return nil, p.expected("alias")
			}
			item.Alias = p.curTok.Literal
			p.nextToken()
		} else if p.curTok.Type == lexer.IDENTIFIER {
			return nil, &errors.UnsupportedQueryError{Clause: "alias without AS"}
		}
		items = append(items, item)

		if p.curTok.Type != lexer.COMMA {
			return items, nil
		}
		p.nextToken()
	}
}

func (p *Parser) parseIdentifierList() ([]*ast.Identifier, error) {
	var identifiers []*ast.Identifier
	for {
		ident, err := p.parseIdentifier()
		if err != nil {
			return nil, err
		}
		identifiers = append(identifiers, ident)

		if p.curTok.Type != lexer.COMMA {
			return identifiers, nil
		}
		p.nextToken()
	}
}

// parseIdentifier reads name or qualifier.name
func (p *Parser) parseIdentifier() (*ast.Identifier, error) {
	if p.curTok.Type != lexer.IDENTIFIER {
		return nil, p.expected("identifier")
	}
	name := p.curTok.Literal
	p.nextToken()

	if p.curTok.Type == lexer.DOT {
		p.nextToken()
		if p.curTok.Type != lexer.IDENTIFIER {
			return nil, p.expected("column name after '.'")
		}
		name = name + "." + p.curTok.Literal
		p.nextToken()
	}
	return &ast.Identifier{TokenLiteralValue: name, Value: name}, nil
}

// Expression grammar, lowest precedence first:
//
//	or  := and {OR and}
//	and := not {AND not}
//	not := NOT not | cmp
//	cmp := sum [(= | != | < | <= | > | >=) sum]
//	sum := term {(+ | -) term}
//	term := unary {(* | /) unary}
//	unary := - unary | atom
func (p *Parser) parseExpression() (ast.Expression, error) {
	return p.parseOr()
}

func (p *Parser) parseOr() (ast.Expression, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.curTok.Type == lexer.OR {
		p.nextToken()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpression{Left: left, Operator: "OR", Right: right}
	}
	return left, nil
}

func (p *Parser) parseAnd() (ast.Expression, error) {
	left, err := p.parseNot()
	if err != nil {
		return nil, err
	}
	for p.curTok.Type == lexer.AND {
		p.nextToken()
		right, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpression{Left: left, Operator: "AND", Right: right}
	}
	return left, nil
}

func (p *Parser) parseNot() (ast.Expression, error) {
	if p.curTok.Type == lexer.NOT {
		p.nextToken()
		operand, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryExpression{Operator: "NOT", Operand: operand}, nil
	}
	return p.parseComparison()
}

func (p *Parser) parseComparison() (ast.Expression, error) {
	left, err := p.parseSum()
	if err != nil {
		return nil, err
	}
	// x LIKE / IN / IS / BETWEEN, and their NOT forms
	if p.curTok.Type.IsUnsupportedKeyword() {
		return nil, unsupported(p.curTok, "")
	}
	if p.curTok.Type == lexer.NOT && p.peekTok.Type.IsUnsupportedKeyword() {
		return nil, unsupported(p.peekTok, "")
	}
	if isComparisonOperator(p.curTok.Type) {
		op := comparisonOperator(p.curTok)
		p.nextToken()
		right, err := p.parseSum()
		if err != nil {
			return nil, err
		}
		return &ast.BinaryExpression{Left: left, Operator: op, Right: right}, nil
	}
	return left, nil
}

func (p *Parser) parseSum() (ast.Expression, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for p.curTok.Type == lexer.PLUS || p.curTok.Type == lexer.MINUS {
		op := p.curTok.Literal
		p.nextToken()
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpression{Left: left, Operator: op, Right: right}
	}
	return left, nil
}

func (p *Parser) parseTerm() (ast.Expression, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.curTok.Type == lexer.ASTERISK || p.curTok.Type == lexer.SLASH {
		op := p.curTok.Literal
		p.nextToken()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpression{Left: left, Operator: op, Right: right}
	}
	return left, nil
}

func (p *Parser) parseUnary() (ast.Expression, error) {
	if p.curTok.Type == lexer.MINUS {
		p.nextToken()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		// fold negative numeric literals
		if lit, ok := operand.(*ast.Literal); ok {
			switch v := lit.Value.(type) {
			case int64:
				return &ast.Literal{TokenLiteralValue: "-" + lit.TokenLiteralValue, Value: -v}, nil
			case float64:
				return &ast.Literal{TokenLiteralValue: "-" + lit.TokenLiteralValue, Value: -v}, nil
			}
		}
		return &ast.UnaryExpression{Operator: "-", Operand: operand}, nil
	}
	return p.parseAtom()
}

func (p *Parser) parseAtom() (ast.Expression, error) {
	switch p.curTok.Type {
	case lexer.IDENTIFIER:
		if p.peekTok.Type == lexer.PAREN_OPEN {
			return p.parseFunctionCall()
		}
		return p.parseIdentifier()
	case lexer.STRING:
		val := p.curTok.Literal
		p.nextToken()
		return &ast.Literal{TokenLiteralValue: val, Value: val}, nil
	case lexer.NUMBER:
		valStr := p.curTok.Literal
		p.nextToken()
		// Try int
		if i, err := strconv.ParseInt(valStr, 10, 64); err == nil {
			return &ast.Literal{TokenLiteralValue: valStr, Value: i}, nil
		}
		// Try float
		if f, err := strconv.ParseFloat(valStr, 64); err == nil {
			return &ast.Literal{TokenLiteralValue: valStr, Value: f}, nil
		}
		return nil, fmt.Errorf("invalid number: %s", valStr)
	case lexer.TRUE:
		p.nextToken()
		return &ast.Literal{TokenLiteralValue: "TRUE", Value: true}, nil
	case lexer.FALSE:
		p.nextToken()
		return &ast.Literal{TokenLiteralValue: "FALSE", Value: false}, nil
	case lexer.NULL:
		p.nextToken()
		return &ast.Literal{TokenLiteralValue: "NULL", Value: nil}, nil
	case lexer.PAREN_OPEN:
		p.nextToken()
		if p.curTok.Type == lexer.SELECT {
			return nil, &errors.UnsupportedQueryError{Clause: "subquery"}
		}
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if p.curTok.Type != lexer.PAREN_CLOSE {
			return nil, p.expected(")")
		}
		p.nextToken()
		return expr, nil
	default:
		if p.curTok.Type.IsUnsupportedKeyword() {
			return nil, unsupported(p.curTok, "")
		}
		return nil, p.unexpected()
	}
}

func (p *Parser) parseFunctionCall() (ast.Expression, error) {
	call := &ast.FunctionCall{Name: strings.ToUpper(p.curTok.Literal)}
	p.nextToken() // name
	p.nextToken() // (

	switch p.curTok.Type {
	case lexer.ASTERISK:
		call.Star = true
		p.nextToken()
	case lexer.DISTINCT:
		return nil, unsupported(p.curTok, "")
	case lexer.PAREN_CLOSE:
	default:
		for {
			arg, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			call.Args = append(call.Args, arg)
			if p.curTok.Type != lexer.COMMA {
				break
			}
			p.nextToken()
		}
	}

	if p.curTok.Type != lexer.PAREN_CLOSE {
		return nil, p.expected(")")
	}
	p.nextToken()
	return call, nil
}
