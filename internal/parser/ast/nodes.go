package ast

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/leengari/tabquery/internal/domain/data"
)

// Node is the base interface for all AST nodes
type Node interface {
	TokenLiteral() string
	String() string
}

// Statement represents a standalone SQL statement
type Statement interface {
	Node
	statementNode()
}

// Expression represents a value or operation
type Expression interface {
	Node
	expressionNode()
}

// Identifier represents a column or table name
type Identifier struct {
	TokenLiteralValue string // The token literal (e.g. "users")
	Value             string // The value (e.g. "users")
}

func (i *Identifier) expressionNode()      {}
func (i *Identifier) TokenLiteral() string { return i.TokenLiteralValue }
func (i *Identifier) String() string       { return i.Value }

// Literal represents a fixed value: int64, float64, string, bool or nil
type Literal struct {
	TokenLiteralValue string
	Value             interface{}
}

func (l *Literal) expressionNode()      {}
func (l *Literal) TokenLiteral() string { return l.TokenLiteralValue }
func (l *Literal) String() string {
	if s, ok := l.Value.(string); ok {
		return fmt.Sprintf("'%s'", strings.ReplaceAll(s, "'", "''"))
	}
	return data.FormatValue(l.Value)
}

// BinaryExpression: Left Operator Right (e.g. Age > 30)
type BinaryExpression struct {
	Left     Expression
	Operator string
	Right    Expression
}

func (e *BinaryExpression) expressionNode()      {}
func (e *BinaryExpression) TokenLiteral() string { return e.Operator }
func (e *BinaryExpression) String() string {
	return fmt.Sprintf("(%s %s %s)", e.Left.String(), e.Operator, e.Right.String())
}

// UnaryExpression: NOT x, -x
type UnaryExpression struct {
	Operator string
	Operand  Expression
}

func (e *UnaryExpression) expressionNode()      {}
func (e *UnaryExpression) TokenLiteral() string { return e.Operator }
func (e *UnaryExpression) String() string {
	if e.Operator == "NOT" {
		return fmt.Sprintf("(NOT %s)", e.Operand.String())
	}
	return fmt.Sprintf("(%s%s)", e.Operator, e.Operand.String())
}

// FunctionCall: name(args) or name(*)
type FunctionCall struct {
	Name string // upper-cased
	Args []Expression
	Star bool
}

func (f *FunctionCall) expressionNode()      {}
func (f *FunctionCall) TokenLiteral() string { return f.Name }
func (f *FunctionCall) String() string {
	if f.Star {
		return f.Name + "(*)"
	}
	args := make([]string, len(f.Args))
	for i, a := range f.Args {
		args[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", f.Name, strings.Join(args, ", "))
}

// SelectItem is one entry of the select list
type SelectItem struct {
	Expr  Expression
	Alias string
}

func (s *SelectItem) String() string {
	if s.Alias == "" {
		return s.Expr.String()
	}
	return fmt.Sprintf("%s AS %s", s.Expr.String(), s.Alias)
}

// SelectStatement: SELECT items FROM table [WHERE pred] [GROUP BY cols]
type SelectStatement struct {
	Star      bool // SELECT *
	Items     []*SelectItem
	TableName *Identifier
	Where     Expression
	GroupBy   []*Identifier
}

func (s *SelectStatement) statementNode()       {}
func (s *SelectStatement) TokenLiteral() string { return "SELECT" }
func (s *SelectStatement) String() string {
	var out bytes.Buffer
	out.WriteString("SELECT ")
	if s.Star {
		out.WriteString("*")
	}
	for i, item := range s.Items {
		out.WriteString(item.String())
		if i < len(s.Items)-1 {
			out.WriteString(", ")
		}
	}
	out.WriteString(" FROM ")
	out.WriteString(s.TableName.String())
	if s.Where != nil {
		out.WriteString(" WHERE ")
		out.WriteString(s.Where.String())
	}
	if len(s.GroupBy) > 0 {
		out.WriteString(" GROUP BY ")
		for i, g := range s.GroupBy {
			out.WriteString(g.String())
			if i < len(s.GroupBy)-1 {
				out.WriteString(", ")
			}
		}
	}
	return out.String()
}
