package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/leengari/tabquery/internal/domain/data"
	"github.com/leengari/tabquery/internal/domain/schema"
	"github.com/leengari/tabquery/internal/query/expression"
	"github.com/leengari/tabquery/internal/query/operations"
	"github.com/leengari/tabquery/internal/query/operations/testutil"
	"github.com/leengari/tabquery/internal/storage/loader"
)

func TestTableFormatter(t *testing.T) {
	var buf bytes.Buffer
	if err := NewTableFormatter(&buf).Format(testutil.CreateScenarioTable()); err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	out := buf.String()

	for _, want := range []string{"Emp_No", "Emp_Name", "Department", "Tom", "Ann", "5000"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected output to contain %q:\n%s", want, out)
		}
	}
	// header keeps its case and comes before the first row
	if strings.Index(out, "Emp_Name") > strings.Index(out, "Tom") {
		t.Errorf("Expected header before rows:\n%s", out)
	}
}

func TestTableFormatter_NullAndFloat(t *testing.T) {
	table := testutil.CreateScenarioTable()
	derived, err := operations.WithColumn(table, "Bonus",
		expression.Mul(expression.Col("Salary"), expression.Lit(1.1)))
	if err != nil {
		t.Fatalf("WithColumn failed: %v", err)
	}
	derived.Rows[1]["Department"] = nil

	var buf bytes.Buffer
	if err := NewTableFormatter(&buf).Format(derived); err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "5500.0") {
		t.Errorf("Expected float rendered as 5500.0:\n%s", out)
	}
	if !strings.Contains(out, "null") {
		t.Errorf("Expected NULL rendered as null:\n%s", out)
	}
}

func TestShow_Truncates(t *testing.T) {
	table := testutil.CreateEmployeesTable()

	var buf bytes.Buffer
	if err := Show(&buf, table, 3); err != nil {
		t.Fatalf("Show failed: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "only showing top 3 rows") {
		t.Errorf("Expected truncation footer:\n%s", out)
	}
	if !strings.Contains(out, "Douglas") || strings.Contains(out, "Michael") {
		t.Errorf("Expected exactly the first 3 rows:\n%s", out)
	}
}

func TestShow_NoFooterWhenComplete(t *testing.T) {
	var buf bytes.Buffer
	if err := Show(&buf, testutil.CreateScenarioTable(), 0); err != nil {
		t.Fatalf("Show failed: %v", err)
	}
	if strings.Contains(buf.String(), "only showing") {
		t.Errorf("Unexpected footer:\n%s", buf.String())
	}
}

func TestPrintSchema(t *testing.T) {
	var buf bytes.Buffer
	if err := PrintSchema(&buf, schema.EmployeeSchema()); err != nil {
		t.Fatalf("PrintSchema failed: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "root\n") {
		t.Errorf("Expected schema tree to start with root:\n%s", buf.String())
	}
	if !strings.Contains(buf.String(), " |-- Emp_No: integer (nullable = true)") {
		t.Errorf("Expected Emp_No line:\n%s", buf.String())
	}
}

func TestWriteCSV_RoundTrip(t *testing.T) {
	original := testutil.CreateEmployeesTable()

	var buf bytes.Buffer
	if err := WriteCSV(&buf, original, ",", true); err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}

	loaded, err := loader.Load(&buf, original.Name, schema.EmployeeSchema(), loader.DefaultOptions())
	if err != nil {
		t.Fatalf("Load failed: %v\n%s", err, buf.String())
	}
	if !loaded.Equal(original) {
		t.Errorf("Round trip changed the table")
	}
}

func TestWriteCSV_RoundTripVerbatimStrings(t *testing.T) {
	input := "Emp_No,Emp_Name,Salary,Age,Department\n" +
		"1,O\"Brien,5000,28,IT\n" +
		"2, Ann,6000,35, HR \n" +
		"3,'Bob',,41,IT\n"

	original, err := loader.Load(strings.NewReader(input), "employees", schema.EmployeeSchema(), loader.DefaultOptions())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got := original.Rows[1]["Emp_Name"]; got != " Ann" {
		t.Errorf("Expected leading space kept, got %q", got)
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, original, ",", true); err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}
	if buf.String() != input {
		t.Errorf("Expected output identical to input\nexpected: %q\ngot:      %q", input, buf.String())
	}

	reloaded, err := loader.Load(&buf, "employees", schema.EmployeeSchema(), loader.DefaultOptions())
	if err != nil {
		t.Fatalf("Reload failed: %v", err)
	}
	if !reloaded.Equal(original) {
		t.Errorf("Round trip changed the table")
	}
}

func TestWriteCSV_UnrepresentableField(t *testing.T) {
	for _, name := range []string{"Smith, John", "multi\nline", "cr\rname"} {
		table := &schema.Table{
			Name:   "employees",
			Schema: schema.EmployeeSchema(),
			Rows: []data.Row{
				{"Emp_No": int64(1), "Emp_Name": name, "Salary": int64(5000), "Age": int64(28), "Department": "IT"},
			},
		}
		var buf bytes.Buffer
		if err := WriteCSV(&buf, table, ",", false); err == nil {
			t.Errorf("Expected error for field %q, got output %q", name, buf.String())
		}
	}

	// the same value is fine under another delimiter
	table := &schema.Table{
		Name:   "employees",
		Schema: schema.EmployeeSchema(),
		Rows: []data.Row{
			{"Emp_No": int64(1), "Emp_Name": "Smith, John", "Salary": nil, "Age": int64(28), "Department": "IT"},
		},
	}
	var buf bytes.Buffer
	if err := WriteCSV(&buf, table, ";", false); err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}
	if buf.String() != "1;Smith, John;;28;IT\n" {
		t.Errorf("Unexpected output %q", buf.String())
	}
}

func TestWriteCSV_Delimiter(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, testutil.CreateScenarioTable(), ";", false); err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}
	expected := "1;Tom;5000;28;IT\n2;Ann;6000;35;HR\n"
	if buf.String() != expected {
		t.Errorf("Expected %q, got %q", expected, buf.String())
	}

	if err := WriteCSV(&buf, testutil.CreateScenarioTable(), ";;", false); err == nil {
		t.Error("Expected error for multi-character delimiter")
	}
}

func TestJSONFormatter(t *testing.T) {
	table := &schema.Table{
		Name:   "employees",
		Schema: schema.EmployeeSchema(),
		Rows: []data.Row{
			{"Emp_No": int64(1), "Emp_Name": "Tom", "Salary": nil, "Age": int64(28), "Department": "IT"},
		},
	}

	var buf bytes.Buffer
	if err := NewJSONFormatter(&buf).Format(table); err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	expected := `{"Emp_No":1,"Emp_Name":"Tom","Salary":null,"Age":28,"Department":"IT"}` + "\n"
	if buf.String() != expected {
		t.Errorf("Expected %s, got %s", expected, buf.String())
	}
}

func TestNewFormatter(t *testing.T) {
	var buf bytes.Buffer
	for _, name := range []string{"", "table", "csv", "json"} {
		if _, err := NewFormatter(name, &buf); err != nil {
			t.Errorf("NewFormatter(%q) failed: %v", name, err)
		}
	}
	if _, err := NewFormatter("xml", &buf); err == nil {
		t.Error("Expected error for unknown format")
	}
}
