package engine

import (
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/leengari/tabquery/internal/domain/errors"
	"github.com/leengari/tabquery/internal/domain/schema"
	"github.com/leengari/tabquery/internal/domain/session"
	"github.com/leengari/tabquery/internal/executor"
	"github.com/leengari/tabquery/internal/parser"
	"github.com/leengari/tabquery/internal/parser/ast"
	"github.com/leengari/tabquery/internal/parser/lexer"
	"github.com/leengari/tabquery/internal/plan"
	"github.com/leengari/tabquery/internal/planner"
	"github.com/leengari/tabquery/internal/storage/loader"
	"github.com/leengari/tabquery/internal/validation"
)

// Engine is the main entry point for querying registered views
type Engine struct {
	views     map[string]*schema.Table
	observers []Observer // Observers for lifecycle events
}

// New creates an engine with no views
func New() *Engine {
	return &Engine{
		views:     make(map[string]*schema.Table),
		observers: make([]Observer, 0),
	}
}

// Register makes table queryable under name, replacing any existing view
// of that name
func (e *Engine) Register(name string, table *schema.Table) error {
	if err := validation.ValidateIdentifier(name); err != nil {
		return fmt.Errorf("register view: %w", err)
	}
	if table == nil {
		return fmt.Errorf("register view %s: nil table", name)
	}

	view := table
	if table.Name != name {
		view = &schema.Table{Name: name, Schema: table.Schema, Rows: table.Rows}
	}
	_, replaced := e.views[name]
	e.views[name] = view

	slog.Info("View registered",
		slog.String("view", name),
		slog.Int("rows", view.Len()),
		slog.Bool("replaced", replaced),
	)
	return nil
}

// Table implements planner.Catalog
func (e *Engine) Table(name string) (*schema.Table, error) {
	t, ok := e.views[name]
	if !ok {
		return nil, &errors.TableNotFoundError{TableName: name}
	}
	return t, nil
}

// Views returns the registered view names in sorted order
func (e *Engine) Views() []string {
	names := make([]string, 0, len(e.views))
	for name := range e.views {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LoadCSV loads a delimited file and registers it as view
func (e *Engine) LoadCSV(path, view string, s *schema.TableSchema, opts loader.Options) (*schema.Table, error) {
	table, err := loader.LoadFile(path, view, s, opts)
	if err != nil {
		return nil, err
	}
	if err := e.Register(view, table); err != nil {
		return nil, err
	}
	return e.views[view], nil
}

// SQL runs one query of the supported SELECT subset and returns its result
func (e *Engine) SQL(sql string) (*schema.Table, error) {
	sess := session.New(sql)
	defer sess.Close()

	e.notify(Event{Type: EventQueryStart, SessionID: sess.ID, Data: sql})

	node, err := e.prepare(sess)
	if err != nil {
		return nil, e.fail(sess, err)
	}

	// 4. Execute
	e.notify(Event{Type: EventExecStart, SessionID: sess.ID})
	result, err := executor.Execute(node, e)
	if err != nil {
		return nil, e.fail(sess, fmt.Errorf("execution error: %w", err))
	}
	e.notify(Event{Type: EventExecEnd, SessionID: sess.ID, Data: map[string]interface{}{
		"rows_returned": result.Len(),
		"columns":       result.Schema.Len(),
	}})

	sess.Close()
	e.notify(Event{Type: EventQueryEnd, SessionID: sess.ID, Data: sess.Duration()})
	return result, nil
}

// Explain plans a query without running it and returns the plan tree
func (e *Engine) Explain(sql string) (string, error) {
	sess := session.New(sql)
	defer sess.Close()

	e.notify(Event{Type: EventQueryStart, SessionID: sess.ID, Data: sql})
	node, err := e.prepare(sess)
	if err != nil {
		return "", e.fail(sess, err)
	}
	sess.Close()
	e.notify(Event{Type: EventQueryEnd, SessionID: sess.ID, Data: sess.Duration()})
	return plan.PrintTree(node), nil
}

// prepare runs lex, parse and plan for the session's query
func (e *Engine) prepare(sess *session.Session) (plan.Node, error) {
	// 1. Tokenize
	e.notify(Event{Type: EventLexStart, SessionID: sess.ID, Data: sess.Query})
	tokens, err := lexer.Tokenize(sess.Query)
	if err != nil {
		return nil, fmt.Errorf("lexer error: %w", err)
	}
	e.notify(Event{Type: EventLexEnd, SessionID: sess.ID, Data: len(tokens)})

	// 2. Parse
	e.notify(Event{Type: EventParseStart, SessionID: sess.ID})
	stmt, err := parser.New(tokens).Parse()
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	sel, ok := stmt.(*ast.SelectStatement)
	if !ok {
		return nil, fmt.Errorf("parse error: unexpected statement %T", stmt)
	}
	e.notify(Event{Type: EventParseEnd, SessionID: sess.ID, Data: sel.String()})

	// 3. Plan
	e.notify(Event{Type: EventPlanStart, SessionID: sess.ID})
	node, err := planner.Plan(sel, e, sess)
	if err != nil {
		return nil, fmt.Errorf("planning error: %w", err)
	}
	e.notify(Event{Type: EventPlanEnd, SessionID: sess.ID, Data: plan.CountNodes(node)})
	return node, nil
}

func (e *Engine) fail(sess *session.Session, err error) error {
	e.notify(Event{Type: EventError, SessionID: sess.ID, Data: err})
	return err
}

// AddObserver registers an observer to receive lifecycle events
func (e *Engine) AddObserver(observer Observer) {
	e.observers = append(e.observers, observer)
}

// RemoveObserver unregisters an observer
func (e *Engine) RemoveObserver(observer Observer) {
	for i, o := range e.observers {
		if o == observer {
			e.observers = append(e.observers[:i], e.observers[i+1:]...)
			return
		}
	}
}

// notify sends an event to all registered observers
func (e *Engine) notify(event Event) {
	event.Timestamp = time.Now()
	for _, observer := range e.observers {
		observer.OnEvent(event)
	}
}
