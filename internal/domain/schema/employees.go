package schema

// EmployeeSchema is the fixed schema of the employees CSV.
// Every column is nullable.
func EmployeeSchema() *TableSchema {
	return &TableSchema{
		TableName: "employees",
		Columns: []Column{
			{Name: "Emp_No", Type: ColumnTypeInteger, Nullable: true},
			{Name: "Emp_Name", Type: ColumnTypeString, Nullable: true},
			{Name: "Salary", Type: ColumnTypeInteger, Nullable: true},
			{Name: "Age", Type: ColumnTypeInteger, Nullable: true},
			{Name: "Department", Type: ColumnTypeString, Nullable: true},
		},
	}
}
