package analysis

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"go.uber.org/multierr"

	"github.com/leengari/tabquery/internal/engine"
	"github.com/leengari/tabquery/internal/output"
)

// Runner prints the view schema, then runs each task and shows its result
type Runner struct {
	Engine   *engine.Engine
	View     string
	Out      io.Writer
	MaxRows  int    // rows shown per result; <= 0 means output.DefaultShowRows
	FailFast bool   // stop at the first failing task instead of skipping it
	Tasks    []Task // defaults to Tasks()
}

// Run executes the tasks in order. With FailFast the first failure is
// returned; otherwise failing tasks are skipped and all their errors are
// returned together once every task has had its turn.
func (r *Runner) Run() error {
	frame, err := r.Engine.Table(r.View)
	if err != nil {
		return err
	}

	tasks := r.Tasks
	if tasks == nil {
		tasks = Tasks()
	}

	if err := output.PrintSchema(r.Out, frame.Schema); err != nil {
		return err
	}

	ctx := &Context{Engine: r.Engine, View: r.View, Frame: frame}
	var failures error
	completed := 0

	for _, task := range tasks {
		fmt.Fprintf(r.Out, "Task %d: %s\n", task.ID, task.Title)

		start := time.Now()
		result, err := task.Run(ctx)
		if err == nil {
			err = output.Show(r.Out, result, r.MaxRows)
		}
		if err != nil {
			err = fmt.Errorf("task %d (%s): %w", task.ID, task.Title, err)
			slog.Error("Task failed",
				slog.Int("task", task.ID),
				slog.String("title", task.Title),
				slog.Any("error", err),
			)
			if r.FailFast {
				return err
			}
			failures = multierr.Append(failures, err)
			continue
		}

		completed++
		slog.Info("Task completed",
			slog.Int("task", task.ID),
			slog.Int("rows", result.Len()),
			slog.Duration("duration", time.Since(start)),
		)
	}

	if failures != nil {
		slog.Warn("Analysis finished with skipped tasks",
			slog.Int("completed", completed),
			slog.Int("failed", len(multierr.Errors(failures))),
		)
	}
	return failures
}
