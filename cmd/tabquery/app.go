package main

import (
	"context"
	"log/slog"
	"time"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/leengari/tabquery/internal/config"
	"github.com/leengari/tabquery/internal/domain/schema"
	"github.com/leengari/tabquery/internal/engine"
	"github.com/leengari/tabquery/internal/logging"
	"github.com/leengari/tabquery/internal/storage/loader"
)

// app holds what every command shares once flags are parsed
type app struct {
	cfg      *config.Config
	closeLog func()
	tp       *sdktrace.TracerProvider
}

// setup loads the configuration and installs logging and tracing
func (a *app) setup(opts config.Options) error {
	cfg, err := config.Load(opts)
	if err != nil {
		return err
	}
	a.cfg = cfg

	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}
	logger, closeFn := logging.SetupLogger(logging.Options{Level: level, SeqURL: cfg.Log.SeqURL})
	slog.SetDefault(logger)
	a.closeLog = closeFn

	if cfg.Tracing.Enabled {
		a.tp = sdktrace.NewTracerProvider(
			sdktrace.WithSpanProcessor(logging.NewSpanLogger(logger)),
		)
	}

	slog.Debug("Configuration loaded",
		slog.String("data", cfg.Data.Path),
		slog.String("schema", cfg.Schema.Path),
		slog.String("view", cfg.View),
		slog.Bool("tracing", cfg.Tracing.Enabled),
	)
	return nil
}

// close flushes spans and logs; safe to call when setup never ran
func (a *app) close() {
	if a.tp != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := a.tp.Shutdown(ctx); err != nil {
			slog.Warn("Tracer shutdown failed", slog.Any("error", err))
		}
	}
	if a.closeLog != nil {
		a.closeLog()
	}
}

// schema returns the configured schema, or the built-in employees schema
func (a *app) schema() (*schema.TableSchema, error) {
	if a.cfg.Schema.Path == "" {
		return schema.EmployeeSchema(), nil
	}
	return schema.LoadSchemaFile(a.cfg.Schema.Path)
}

// engine builds an engine with observers attached and the data file
// registered as the configured view
func (a *app) engine() (*engine.Engine, error) {
	s, err := a.schema()
	if err != nil {
		return nil, err
	}

	eng := engine.New()
	eng.AddObserver(engine.NewLoggingObserver())
	if a.tp != nil {
		eng.AddObserver(engine.NewTracingObserver(a.tp))
	}

	opts := loader.Options{HasHeader: a.cfg.Data.HasHeader, Delimiter: a.cfg.Data.Delimiter}
	if _, err := eng.LoadCSV(a.cfg.Data.Path, a.cfg.View, s, opts); err != nil {
		return nil, err
	}
	return eng, nil
}
