package integration_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/leengari/tabquery/internal/analysis"
	"github.com/leengari/tabquery/internal/domain/schema"
	"github.com/leengari/tabquery/internal/output"
	"github.com/leengari/tabquery/internal/query/expression"
	"github.com/leengari/tabquery/internal/query/operations"
	"github.com/leengari/tabquery/internal/query/operations/join"
	"github.com/leengari/tabquery/internal/storage/loader"
)

func TestSQLMatchesOperators(t *testing.T) {
	eng, table := setupEngine(t)

	viaSQL, err := eng.SQL("SELECT * FROM employees WHERE Age > 30")
	if err != nil {
		t.Fatalf("SQL failed: %v", err)
	}
	viaFilter, err := operations.Filter(table, expression.Gt(expression.Col("Age"), expression.Lit(30)))
	if err != nil {
		t.Fatalf("Filter failed: %v", err)
	}
	if !viaSQL.Equal(viaFilter) {
		t.Errorf("SQL and Filter disagree: %d vs %d rows", viaSQL.Len(), viaFilter.Len())
	}

	grouped, err := eng.SQL("SELECT Department, SUM(Salary) AS Total_Salary FROM employees GROUP BY Department")
	if err != nil {
		t.Fatalf("SQL failed: %v", err)
	}
	viaGroupBy, err := operations.GroupBy(table, []string{"Department"}, operations.Sum("Salary").As("Total_Salary"))
	if err != nil {
		t.Fatalf("GroupBy failed: %v", err)
	}
	if !grouped.Equal(viaGroupBy) {
		t.Error("SQL GROUP BY and GroupBy disagree")
	}
}

func TestFilterComplement(t *testing.T) {
	_, table := setupEngine(t)
	pred := expression.Eq(expression.Col("Department"), expression.Lit("IT"))

	kept, err := operations.Filter(table, pred)
	if err != nil {
		t.Fatalf("Filter failed: %v", err)
	}
	none, err := operations.Filter(kept, expression.Negate(pred))
	if err != nil {
		t.Fatalf("Filter failed: %v", err)
	}
	if none.Len() != 0 {
		t.Errorf("Expected empty complement, got %d rows", none.Len())
	}

	all, err := operations.Filter(table, expression.Lit(true))
	if err != nil {
		t.Fatalf("Filter failed: %v", err)
	}
	if !all.Equal(table) {
		t.Error("Filter(true) changed the table")
	}
}

func TestSortIdempotent(t *testing.T) {
	_, table := setupEngine(t)
	keys := []operations.SortKey{operations.Asc("Age"), operations.Desc("Salary")}

	once, err := operations.Sort(table, keys...)
	if err != nil {
		t.Fatalf("Sort failed: %v", err)
	}
	twice, err := operations.Sort(once, keys...)
	if err != nil {
		t.Fatalf("Sort failed: %v", err)
	}
	if !once.Equal(twice) {
		t.Error("Sort is not idempotent")
	}
}

func TestGroupCountsSumToTotal(t *testing.T) {
	_, table := setupEngine(t)

	counts, err := operations.GroupBy(table, []string{"Department"}, operations.CountAll().As("n"))
	if err != nil {
		t.Fatalf("GroupBy failed: %v", err)
	}
	var total int64
	for _, row := range counts.Rows {
		total += row["n"].(int64)
	}
	if total != int64(table.Len()) {
		t.Errorf("Group counts sum to %d, table has %d rows", total, table.Len())
	}
}

func TestSelfJoinUniqueKey(t *testing.T) {
	_, table := setupEngine(t)

	joined, err := join.Execute(table, table, "Emp_No", join.JoinTypeInner, join.Qualified)
	if err != nil {
		t.Fatalf("Join failed: %v", err)
	}
	if joined.Len() != table.Len() {
		t.Errorf("Self-join on Emp_No: expected %d rows, got %d", table.Len(), joined.Len())
	}
}

func TestCSVRoundTrip(t *testing.T) {
	_, table := setupEngine(t)

	var buf bytes.Buffer
	if err := output.WriteCSV(&buf, table, ",", true); err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}
	reloaded, err := loader.Load(&buf, "employees", schema.EmployeeSchema(), loader.DefaultOptions())
	if err != nil {
		t.Fatalf("Reload failed: %v", err)
	}
	if !reloaded.Equal(table) {
		t.Error("load -> WriteCSV -> load changed the table")
	}

	// quotes and surrounding spaces in String fields are kept verbatim
	tricky := "Emp_No,Emp_Name,Salary,Age,Department\n" +
		"1,O\"Brien,5000,28,IT\n" +
		"2, Ann,6000,35,HR\n"
	loaded, err := loader.Load(strings.NewReader(tricky), "employees", schema.EmployeeSchema(), loader.DefaultOptions())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	buf.Reset()
	if err := output.WriteCSV(&buf, loaded, ",", true); err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}
	if buf.String() != tricky {
		t.Errorf("Expected %q, got %q", tricky, buf.String())
	}
	again, err := loader.Load(&buf, "employees", schema.EmployeeSchema(), loader.DefaultOptions())
	if err != nil {
		t.Fatalf("Reload failed: %v", err)
	}
	if !again.Equal(loaded) || again.Rows[0]["Emp_Name"] != `O"Brien` || again.Rows[1]["Emp_Name"] != " Ann" {
		t.Errorf("Round trip changed names: %v", again.Rows)
	}
}

func TestAnalysisRun(t *testing.T) {
	eng, table := setupEngine(t)
	snapshot := make([]string, 0, table.Len())
	for _, row := range table.Rows {
		snapshot = append(snapshot, row.String())
	}

	var out bytes.Buffer
	runner := &analysis.Runner{Engine: eng, View: "employees", Out: &out, FailFast: true}
	if err := runner.Run(); err != nil {
		t.Fatalf("Analysis failed: %v", err)
	}
	if !bytes.Contains(out.Bytes(), []byte("only showing top 20 rows")) {
		t.Error("Expected truncated results for the 30-row sample")
	}

	// the registered view is never mutated by the tasks
	view, _ := eng.Table("employees")
	for i, row := range view.Rows {
		if row.String() != snapshot[i] {
			t.Fatalf("Row %d changed: %s -> %s", i, snapshot[i], row.String())
		}
	}
}
