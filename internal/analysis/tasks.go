// Package analysis holds the canned employee analysis: a fixed sequence of
// queries run against the registered employees view.
package analysis

import (
	"github.com/leengari/tabquery/internal/domain/schema"
	"github.com/leengari/tabquery/internal/engine"
	"github.com/leengari/tabquery/internal/query/expression"
	"github.com/leengari/tabquery/internal/query/operations"
	"github.com/leengari/tabquery/internal/query/operations/join"
)

// Context is what tasks run against. Frame starts as the registered view
// and is replaced by tasks that derive columns, so later tasks see them.
type Context struct {
	Engine *engine.Engine
	View   string
	Frame  *schema.Table
}

// Task is one numbered step of the analysis
type Task struct {
	ID    int
	Title string
	Run   func(c *Context) (*schema.Table, error)
}

// Tasks returns the analysis steps in order
func Tasks() []Task {
	return []Task{
		{
			ID:    5,
			Title: "Employees older than 30",
			Run: func(c *Context) (*schema.Table, error) {
				return c.Engine.SQL("SELECT * FROM " + c.View + " WHERE Age > 30")
			},
		},
		{
			ID:    6,
			Title: "Average salary by department",
			Run: func(c *Context) (*schema.Table, error) {
				return c.Engine.SQL("SELECT ROUND(AVG(Salary), 2) AS AVG_Salary, Department FROM " +
					c.View + " GROUP BY Department")
			},
		},
		{
			ID:    7,
			Title: "Employees in the IT department",
			Run: func(c *Context) (*schema.Table, error) {
				return operations.Filter(c.Frame, expression.Eq(expression.Col("Department"), expression.Lit("IT")))
			},
		},
		{
			ID:    8,
			Title: "Add 10% bonus to salaries",
			Run: func(c *Context) (*schema.Table, error) {
				salary := expression.Col("Salary")
				bonus := expression.Add(salary, expression.Mul(salary, expression.Lit(0.1)))
				derived, err := operations.WithColumn(c.Frame, "SalaryAfterBonus", bonus)
				if err != nil {
					return nil, err
				}
				c.Frame = derived
				return derived, nil
			},
		},
		{
			ID:    9,
			Title: "Max salary by age",
			Run: func(c *Context) (*schema.Table, error) {
				return operations.GroupBy(c.Frame, []string{"Age"}, operations.Max("Salary").As("Max_Salary"))
			},
		},
		{
			ID:    10,
			Title: "Self-join on Emp_No",
			Run: func(c *Context) (*schema.Table, error) {
				return join.Execute(c.Frame, c.Frame, "Emp_No", join.JoinTypeInner, join.Qualified)
			},
		},
		{
			ID:    11,
			Title: "Average employee age",
			Run: func(c *Context) (*schema.Table, error) {
				return operations.Aggregate(c.Frame, operations.Avg("Age").As("AVG_Age"))
			},
		},
		{
			ID:    12,
			Title: "Total salary by department",
			Run: func(c *Context) (*schema.Table, error) {
				return operations.GroupBy(c.Frame, []string{"Department"}, operations.Sum("Salary").As("Total_Salary"))
			},
		},
		{
			ID:    13,
			Title: "Sort by Age (asc), Salary (desc)",
			Run: func(c *Context) (*schema.Table, error) {
				return operations.Sort(c.Frame, operations.Asc("Age"), operations.Desc("Salary"))
			},
		},
		{
			ID:    14,
			Title: "Number of employees per department",
			Run: func(c *Context) (*schema.Table, error) {
				return operations.GroupBy(c.Frame, []string{"Department"}, operations.Count("Emp_No").As("Emp_Count"))
			},
		},
		{
			ID:    15,
			Title: "Employees with 'o' in their name",
			Run: func(c *Context) (*schema.Table, error) {
				return operations.Filter(c.Frame, expression.Contains(expression.Col("Emp_Name"), expression.Lit("o")))
			},
		},
	}
}
