package operations_test

import (
	stderrors "errors"
	"testing"

	"github.com/leengari/tabquery/internal/domain/errors"
	"github.com/leengari/tabquery/internal/domain/schema"
	"github.com/leengari/tabquery/internal/query/expression"
	"github.com/leengari/tabquery/internal/query/operations"
	"github.com/leengari/tabquery/internal/query/operations/testutil"
)

func bonus() expression.Expression {
	return expression.Add(
		expression.Col("Salary"),
		expression.Mul(expression.Col("Salary"), expression.Lit(0.1)),
	)
}

// TestWithColumn_Append tests appending a derived float column
func TestWithColumn_Append(t *testing.T) {
	table := testutil.CreateScenarioTable()

	result, err := operations.WithColumn(table, "SalaryAfterBonus", bonus())
	testutil.AssertNoError(t, err, "WithColumn")

	testutil.AssertColumns(t, result,
		[]string{"Emp_No", "Emp_Name", "Salary", "Age", "Department", "SalaryAfterBonus"},
		"WithColumn")
	col, _ := result.Schema.Column("SalaryAfterBonus")
	if col.Type != schema.ColumnTypeFloat || !col.Nullable {
		t.Errorf("expected nullable float column, got %+v", col)
	}
	testutil.AssertValue(t, result.Rows[0], "SalaryAfterBonus", 5500.0, "Tom")
	testutil.AssertValue(t, result.Rows[1], "SalaryAfterBonus", 6600.0, "Ann")
	testutil.AssertConforms(t, result, "WithColumn")

	// input keeps its schema
	testutil.AssertColumnCount(t, table.Schema.Len(), 5, "Input schema")
	testutil.AssertColumnNotExists(t, table.Rows[0], "SalaryAfterBonus", "Input row")
}

// TestWithColumn_ReplaceInPlace tests that an existing column keeps its position
func TestWithColumn_ReplaceInPlace(t *testing.T) {
	table := testutil.CreateScenarioTable()

	result, err := operations.WithColumn(table, "Salary", expression.Mul(expression.Col("Salary"), expression.Lit(1.1)))
	testutil.AssertNoError(t, err, "Replace Salary")

	testutil.AssertColumns(t, result, table.Schema.Names(), "Replace Salary")
	col, _ := result.Schema.Column("Salary")
	if col.Type != schema.ColumnTypeFloat {
		t.Errorf("expected Salary re-inferred as float, got %s", col.Type)
	}
	testutil.AssertValue(t, result.Rows[0], "Salary", 5500.0, "Tom")
	testutil.AssertValue(t, table.Rows[0], "Salary", int64(5000), "Input row")
}

// TestWithColumn_NullPropagates tests NULL operands produce NULL
func TestWithColumn_NullPropagates(t *testing.T) {
	table := testutil.CreateEmployeesTable()

	result, err := operations.WithColumn(table, "SalaryAfterBonus", bonus())
	testutil.AssertNoError(t, err, "WithColumn with NULL salary")

	testutil.AssertNullValue(t, result.Rows[9]["SalaryAfterBonus"], "Nobody")
	testutil.AssertConforms(t, result, "WithColumn with NULL salary")
}

// TestWithColumn_Errors tests type errors and invalid names
func TestWithColumn_Errors(t *testing.T) {
	table := testutil.CreateScenarioTable()

	_, err := operations.WithColumn(table, "Bad", expression.Add(expression.Col("Emp_Name"), expression.Lit(1)))
	var typeErr *errors.TypeError
	if !stderrors.As(err, &typeErr) {
		t.Errorf("expected TypeError, got %v", err)
	}

	_, err = operations.WithColumn(table, "", expression.Lit(1))
	testutil.AssertError(t, err, "Empty column name")
}
