package integration_test

import (
	"testing"

	"github.com/leengari/tabquery/internal/domain/schema"
	"github.com/leengari/tabquery/internal/engine"
	"github.com/leengari/tabquery/internal/storage/loader"
)

const dataPath = "../../data/employees.csv"

// MockObserver records every event
type MockObserver struct {
	Events []engine.Event
}

func (m *MockObserver) OnEvent(event engine.Event) {
	m.Events = append(m.Events, event)
}

// setupEngine loads the sample employees file as view "employees"
func setupEngine(t *testing.T) (*engine.Engine, *schema.Table) {
	t.Helper()
	eng := engine.New()
	table, err := eng.LoadCSV(dataPath, "employees", schema.EmployeeSchema(), loader.DefaultOptions())
	if err != nil {
		t.Fatalf("Failed to load %s: %v", dataPath, err)
	}
	if table.Len() == 0 {
		t.Fatal("Sample data is empty")
	}
	return eng, table
}
