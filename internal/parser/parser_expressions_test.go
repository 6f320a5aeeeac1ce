package parser

import (
	"testing"

	"github.com/leengari/tabquery/internal/parser/ast"
)

// TestParseComparisonExpressions tests parsing of all comparison operators
func TestParseComparisonExpressions(t *testing.T) {
	tests := []struct {
		name             string
		input            string
		expectedOperator string
	}{
		{name: "=", input: "SELECT * FROM employees WHERE Age = 25;", expectedOperator: "="},
		{name: "==", input: "SELECT * FROM employees WHERE Age == 25;", expectedOperator: "="},
		{name: "<", input: "SELECT * FROM employees WHERE Age < 30;", expectedOperator: "<"},
		{name: ">", input: "SELECT * FROM employees WHERE Age > 18;", expectedOperator: ">"},
		{name: "<=", input: "SELECT * FROM employees WHERE Age <= 65;", expectedOperator: "<="},
		{name: ">=", input: "SELECT * FROM employees WHERE Age >= 21;", expectedOperator: ">="},
		{name: "!=", input: "SELECT * FROM employees WHERE Department != 'HR';", expectedOperator: "!="},
		{name: "<>", input: "SELECT * FROM employees WHERE Department <> 'HR';", expectedOperator: "!="},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel, err := ParseSQL(tt.input)
			if err != nil {
				t.Fatalf("Parser error: %v", err)
			}

			binExpr, ok := sel.Where.(*ast.BinaryExpression)
			if !ok {
				t.Fatalf("Expected BinaryExpression, got %T", sel.Where)
			}
			if binExpr.Operator != tt.expectedOperator {
				t.Errorf("Expected operator %s, got %s", tt.expectedOperator, binExpr.Operator)
			}
		})
	}
}

// TestParsePrecedence tests operator binding via the canonical String form
func TestParsePrecedence(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"a OR b AND c", "(a OR (b AND c))"},
		{"NOT a AND b", "((NOT a) AND b)"},
		{"Salary + Salary * 0.1", "(Salary + (Salary * 0.1))"},
		{"(Salary + Salary) * 0.1", "((Salary + Salary) * 0.1)"},
		{"Age > 30 AND Department = 'IT'", "((Age > 30) AND (Department = 'IT'))"},
		{"a - b - c", "((a - b) - c)"},
		{"Age > -5", "(Age > -5)"},
		{"-Age < 0", "((-Age) < 0)"},
		{"contains(Emp_Name, 'o')", "CONTAINS(Emp_Name, 'o')"},
		{"Emp_Name = 'O''Brien'", "(Emp_Name = 'O''Brien')"},
		{"Salary = NULL OR TRUE", "((Salary = null) OR true)"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			sel, err := ParseSQL("SELECT * FROM t WHERE " + tt.input)
			if err != nil {
				t.Fatalf("Parser error: %v", err)
			}
			if got := sel.Where.String(); got != tt.expected {
				t.Errorf("Expected %s, got %s", tt.expected, got)
			}
		})
	}
}

// TestParseLiteralTypes tests number literal typing
func TestParseLiteralTypes(t *testing.T) {
	tests := []struct {
		input    string
		expected interface{}
	}{
		{"1", int64(1)},
		{"0.1", 0.1},
		{"'IT'", "IT"},
		{"\"IT\"", "IT"},
		{"true", true},
		{"NULL", nil},
	}

	for _, tt := range tests {
		sel, err := ParseSQL("SELECT * FROM t WHERE x = " + tt.input)
		if err != nil {
			t.Fatalf("%s: Parser error: %v", tt.input, err)
		}
		lit := sel.Where.(*ast.BinaryExpression).Right.(*ast.Literal)
		if lit.Value != tt.expected {
			t.Errorf("%s: expected %v (%T), got %v (%T)", tt.input, tt.expected, tt.expected, lit.Value, lit.Value)
		}
	}
}
