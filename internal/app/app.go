// Package app implements the application layer for glow.
package app

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"go.trai.ch/glow/internal/core/domain"
	"go.trai.ch/glow/internal/core/ports"
	"go.trai.ch/glow/internal/engine/lazy"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	factory      *lazy.Factory
	store        ports.SnapshotStore
	telemetry    ports.Telemetry
	logger       ports.Logger
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	factory *lazy.Factory,
	store ports.SnapshotStore,
	telemetry ports.Telemetry,
	logger ports.Logger,
) *App {
	return &App{
		configLoader: loader,
		factory:      factory,
		store:        store,
		telemetry:    telemetry,
		logger:       logger,
	}
}

// SetConfigLoader replaces the configuration source, e.g. when the CLI
// points at a non-default config file.
func (a *App) SetConfigLoader(loader ports.ConfigLoader) {
	a.configLoader = loader
}

// ModuleStatus describes one configured module and whether its stored
// snapshot is still current.
type ModuleStatus struct {
	Name        string
	Fingerprint string
	Fresh       bool
}

// Run evaluates the named module with the given inputs. The module's
// snapshot is persisted afterwards so later invocations can skip
// regeneration.
func (a *App) Run(ctx context.Context, name string, inputs []domain.Value) (domain.Value, error) {
	def, err := a.find(name)
	if err != nil {
		return nil, err
	}

	_, vtx := a.telemetry.Record(ctx, "run "+name)
	m, restored, err := a.module(def)
	if err != nil {
		vtx.Complete(err)
		return nil, err
	}
	if restored {
		vtx.Cached()
	}

	out, err := m.Call(inputs...)
	if err != nil {
		vtx.Complete(err)
		return nil, zerr.With(err, "module", name)
	}

	if err := a.persist(m); err != nil {
		vtx.Complete(err)
		return nil, err
	}

	vtx.Complete(nil)
	return out, nil
}

// Show returns the generated source of the named module, regenerating
// it if the stored snapshot is out of date.
func (a *App) Show(ctx context.Context, name string) (string, error) {
	def, err := a.find(name)
	if err != nil {
		return "", err
	}

	_, vtx := a.telemetry.Record(ctx, "show "+name)
	m, restored, err := a.module(def)
	if err != nil {
		vtx.Complete(err)
		return "", err
	}
	if restored {
		vtx.Cached()
	}

	src, err := m.SourceCode()
	if err != nil {
		vtx.Complete(err)
		return "", zerr.With(err, "module", name)
	}

	if err := a.persist(m); err != nil {
		vtx.Complete(err)
		return "", err
	}

	vtx.Complete(nil)
	return src, nil
}

// Status reports, per configured module, whether the stored snapshot
// matches the current configuration. It never regenerates anything.
func (a *App) Status(_ context.Context) ([]ModuleStatus, error) {
	defs, err := a.load()
	if err != nil {
		return nil, err
	}

	statuses := make([]ModuleStatus, 0, len(defs))
	for _, def := range defs {
		fp := def.Graph.Fingerprint()
		snap, err := a.store.Get(def.Name)
		if err != nil {
			return nil, zerr.With(err, "module", def.Name)
		}
		statuses = append(statuses, ModuleStatus{
			Name:        def.Name,
			Fingerprint: fp,
			Fresh:       snap != nil && snap.Fingerprint == fp,
		})
	}
	return statuses, nil
}

// CompileAll regenerates every configured module whose snapshot is out
// of date. Modules are independent, so they compile concurrently; each
// goroutine owns its module exclusively.
func (a *App) CompileAll(ctx context.Context) error {
	defs, err := a.load()
	if err != nil {
		return err
	}

	eg, ctx := errgroup.WithContext(ctx)
	for _, def := range defs {
		eg.Go(func() error {
			_, vtx := a.telemetry.Record(ctx, "compile "+def.Name)

			m, restored, err := a.module(def)
			if err != nil {
				vtx.Complete(err)
				return err
			}
			if restored {
				vtx.Cached()
				vtx.Complete(nil)
				return nil
			}

			snap, err := m.Snapshot()
			if err != nil {
				vtx.Complete(err)
				return zerr.With(err, "module", def.Name)
			}
			if err := a.store.Put(*snap); err != nil {
				vtx.Complete(err)
				return zerr.With(err, "module", def.Name)
			}

			vtx.Log(domain.LogLevelInfo, "regenerated")
			vtx.Complete(nil)
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return zerr.Wrap(err, "compile failed")
	}

	a.logger.Info(fmt.Sprintf("compiled %d modules", len(defs)))
	return nil
}

func (a *App) load() ([]domain.ModuleDef, error) {
	defs, err := a.configLoader.Load(".")
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}
	return defs, nil
}

func (a *App) find(name string) (domain.ModuleDef, error) {
	defs, err := a.load()
	if err != nil {
		return domain.ModuleDef{}, err
	}
	for _, def := range defs {
		if def.Name == name {
			return def, nil
		}
	}
	return domain.ModuleDef{}, zerr.With(domain.ErrUnknownModule, "module", name)
}

// module builds the runtime module for a definition. A stored snapshot
// whose fingerprint matches the configured graph is restored directly,
// skipping regeneration; anything else starts stale.
func (a *App) module(def domain.ModuleDef) (*lazy.Module, bool, error) {
	snap, err := a.store.Get(def.Name)
	if err != nil {
		return nil, false, zerr.With(err, "module", def.Name)
	}
	if snap != nil && snap.Fingerprint == def.Graph.Fingerprint() {
		m, err := a.factory.Restore(snap)
		if err != nil {
			return nil, false, zerr.With(err, "module", def.Name)
		}
		return m, true, nil
	}
	return a.factory.Module(def.Name, def.Graph), false, nil
}

func (a *App) persist(m *lazy.Module) error {
	snap, err := m.Snapshot()
	if err != nil {
		return zerr.With(err, "module", m.Name())
	}
	if err := a.store.Put(*snap); err != nil {
		return zerr.With(err, "module", m.Name())
	}
	return nil
}
