package join_test

import (
	stderrors "errors"
	"testing"

	"github.com/leengari/tabquery/internal/domain/data"
	"github.com/leengari/tabquery/internal/domain/errors"
	"github.com/leengari/tabquery/internal/domain/schema"
	"github.com/leengari/tabquery/internal/query/operations/join"
	"github.com/leengari/tabquery/internal/query/operations/testutil"
)

// Helper to create users table for JOIN tests
func createUsersTable() *schema.Table {
	return &schema.Table{
		Name: "users",
		Schema: &schema.TableSchema{
			TableName: "users",
			Columns: []schema.Column{
				{Name: "user_id", Type: schema.ColumnTypeInteger, Nullable: true},
				{Name: "username", Type: schema.ColumnTypeString},
			},
		},
		Rows: []data.Row{
			{"user_id": int64(1), "username": "alice"},
			{"user_id": int64(2), "username": "bob"},
			{"user_id": int64(3), "username": "charlie"},
			{"user_id": nil, "username": "ghost"},
		},
	}
}

// Helper to create orders table for JOIN tests
func createOrdersTable() *schema.Table {
	return &schema.Table{
		Name: "orders",
		Schema: &schema.TableSchema{
			TableName: "orders",
			Columns: []schema.Column{
				{Name: "order_id", Type: schema.ColumnTypeInteger},
				{Name: "user_id", Type: schema.ColumnTypeInteger, Nullable: true},
				{Name: "product", Type: schema.ColumnTypeString},
			},
		},
		Rows: []data.Row{
			{"order_id": int64(1), "user_id": int64(1), "product": "Laptop"},
			{"order_id": int64(2), "user_id": int64(1), "product": "Mouse"},
			{"order_id": int64(3), "user_id": int64(2), "product": "Keyboard"},
			{"order_id": int64(4), "user_id": int64(9), "product": "Monitor"},
			{"order_id": int64(5), "user_id": nil, "product": "Cable"},
			// Note: user_id 3 (charlie) has no orders
		},
	}
}

// TestInnerJoin_Basic tests basic INNER JOIN functionality
func TestInnerJoin_Basic(t *testing.T) {
	users := createUsersTable()
	orders := createOrdersTable()

	result, err := join.Execute(users, orders, "user_id", join.JoinTypeInner, join.Options{})
	testutil.AssertNoError(t, err, "INNER JOIN")

	// alice has 2 orders, bob 1; NULL keys never match
	testutil.AssertRowCount(t, result.Len(), 3, "INNER JOIN")
	testutil.AssertColumns(t, result, []string{"user_id", "username", "order_id", "product"}, "INNER JOIN")
	testutil.AssertValue(t, result.Rows[0], "product", "Laptop", "First match")
	testutil.AssertValue(t, result.Rows[1], "product", "Mouse", "Second match")
	testutil.AssertValue(t, result.Rows[2], "username", "bob", "Third match")
	testutil.AssertConforms(t, result, "INNER JOIN")
}

// TestOuterJoins tests unmatched row handling for each join type
func TestOuterJoins(t *testing.T) {
	tests := []struct {
		name     string
		joinType join.JoinType
		expected int
	}{
		{"INNER", join.JoinTypeInner, 3},
		{"LEFT", join.JoinTypeLeft, 5},   // + charlie, ghost
		{"RIGHT", join.JoinTypeRight, 5}, // + Monitor, Cable
		{"FULL", join.JoinTypeFull, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := join.Execute(createUsersTable(), createOrdersTable(), "user_id", tt.joinType, join.Options{})
			testutil.AssertNoError(t, err, tt.joinType.String())
			testutil.AssertRowCount(t, result.Len(), tt.expected, tt.joinType.String())
			testutil.AssertConforms(t, result, tt.joinType.String())
		})
	}
}

// TestRightJoin_KeyFromRightSide tests that unmatched right rows keep their key
func TestRightJoin_KeyFromRightSide(t *testing.T) {
	result, err := join.Execute(createUsersTable(), createOrdersTable(), "user_id", join.JoinTypeRight, join.Options{})
	testutil.AssertNoError(t, err, "RIGHT JOIN")

	monitor := result.Rows[3]
	testutil.AssertValue(t, monitor, "user_id", int64(9), "Unmatched right row")
	testutil.AssertNullValue(t, monitor["username"], "Unmatched right row username")
}

// TestSelfJoin_UniqueKeyKeepsRowCount tests self-join with qualified sides
func TestSelfJoin_UniqueKeyKeepsRowCount(t *testing.T) {
	employees := testutil.CreateEmployeesTable()

	result, err := join.Execute(employees, employees, "Emp_No", join.JoinTypeInner, join.Qualified)
	testutil.AssertNoError(t, err, "Self join")

	testutil.AssertRowCount(t, result.Len(), employees.Len(), "Self join")
	testutil.AssertColumnCount(t, result.Schema.Len(), 9, "Self join")
	for _, row := range result.Rows {
		if row["l.Emp_Name"] != row["r.Emp_Name"] {
			t.Errorf("self join paired different rows: %v", row)
		}
	}
}

// TestSelfJoin_DuplicateKeys tests that each row pairs with every row sharing its key
func TestSelfJoin_DuplicateKeys(t *testing.T) {
	employees := testutil.CreateEmployeesTable()

	// Ages: 29 x2, 36 x2, others unique, one NULL
	result, err := join.Execute(employees, employees, "Age", join.JoinTypeInner, join.Qualified)
	testutil.AssertNoError(t, err, "Self join on Age")

	// 2*2 + 2*2 + 5 unique
	testutil.AssertRowCount(t, result.Len(), 13, "Self join on Age")
}

// TestJoin_AmbiguousColumn tests that unqualified non-key collisions fail
func TestJoin_AmbiguousColumn(t *testing.T) {
	employees := testutil.CreateScenarioTable()

	_, err := join.Execute(employees, employees, "Emp_No", join.JoinTypeInner, join.Options{})
	var ambiguous *errors.AmbiguousColumnError
	if !stderrors.As(err, &ambiguous) {
		t.Fatalf("expected AmbiguousColumnError, got %v", err)
	}
	if ambiguous.Column != "Emp_Name" {
		t.Errorf("expected Emp_Name to be ambiguous, got %s", ambiguous.Column)
	}
}

// TestJoin_InvalidCondition tests key validation
func TestJoin_InvalidCondition(t *testing.T) {
	users := createUsersTable()
	employees := testutil.CreateScenarioTable()

	_, err := join.Execute(users, employees, "user_id", join.JoinTypeInner, join.Options{})
	var notFound *errors.ColumnNotFoundError
	if !stderrors.As(err, &notFound) {
		t.Errorf("expected ColumnNotFoundError, got %v", err)
	}

	_, err = join.Execute(users, createOrdersTable(), "user_id", join.JoinType(42), join.Options{})
	testutil.AssertError(t, err, "Unknown join type")
}

// TestJoin_DoesNotMutateInputs tests that joined rows are fresh
func TestJoin_DoesNotMutateInputs(t *testing.T) {
	employees := testutil.CreateEmployeesTable()
	snapshot := testutil.SnapshotRows(employees)

	_, err := join.Execute(employees, employees, "Emp_No", join.JoinTypeFull, join.Qualified)
	testutil.AssertNoError(t, err, "Full self join")

	testutil.AssertRowsUnchanged(t, employees, snapshot, "Full self join")
}
