package testutil

import (
	"github.com/leengari/tabquery/internal/domain/data"
	"github.com/leengari/tabquery/internal/domain/schema"
)

// employee builds a row of the employees schema
func employee(no int64, name string, salary, age int64, dept string) data.Row {
	return data.Row{
		"Emp_No":     no,
		"Emp_Name":   name,
		"Salary":     salary,
		"Age":        age,
		"Department": dept,
	}
}

// CreateScenarioTable returns the two-row table used in the worked example:
// (1,"Tom",5000,28,"IT"), (2,"Ann",6000,35,"HR")
func CreateScenarioTable() *schema.Table {
	return &schema.Table{
		Name:   "employees",
		Schema: schema.EmployeeSchema(),
		Rows: []data.Row{
			employee(1, "Tom", 5000, 28, "IT"),
			employee(2, "Ann", 6000, 35, "HR"),
		},
	}
}

// CreateEmployeesTable returns a larger employees table with repeated
// ages, salaries and departments plus one row holding NULLs
func CreateEmployeesTable() *schema.Table {
	rows := []data.Row{
		employee(198, "Donald", 2600, 29, "IT"),
		employee(199, "Douglas", 2600, 34, "Sales"),
		employee(200, "Jennifer", 4400, 36, "Marketing"),
		employee(201, "Michael", 13000, 32, "IT"),
		employee(202, "Pat", 6000, 39, "HR"),
		employee(203, "Susan", 6500, 36, "Marketing"),
		employee(204, "Hermann", 10000, 29, "Finance"),
		employee(205, "Shelley", 12008, 35, "Finance"),
		employee(206, "William", 8300, 30, "IT"),
		{
			"Emp_No":     int64(207),
			"Emp_Name":   "Nobody",
			"Salary":     nil,
			"Age":        nil,
			"Department": nil,
		},
	}
	return &schema.Table{
		Name:   "employees",
		Schema: schema.EmployeeSchema(),
		Rows:   rows,
	}
}

// CreateTestTable creates an empty table with the given name and schema
func CreateTestTable(name string, columns ...schema.Column) *schema.Table {
	return &schema.Table{
		Name: name,
		Schema: &schema.TableSchema{
			TableName: name,
			Columns:   columns,
		},
		Rows: []data.Row{},
	}
}

// SnapshotRows deep-copies rows so tests can detect mutation of an input table
func SnapshotRows(table *schema.Table) []data.Row {
	rows := make([]data.Row, len(table.Rows))
	for i, r := range table.Rows {
		rows[i] = r.Copy()
	}
	return rows
}
