package app_test

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/glow/internal/adapters/lowering"
	"go.trai.ch/glow/internal/app"
	"go.trai.ch/glow/internal/core/domain"
	"go.trai.ch/glow/internal/core/ports"
	"go.trai.ch/glow/internal/core/ports/mocks"
	"go.trai.ch/glow/internal/engine/lazy"
	"go.uber.org/mock/gomock"
)

func waveDef(t *testing.T, target string) domain.ModuleDef {
	t.Helper()
	g := domain.NewGraph()
	require.NoError(t, g.Append(domain.Node{Name: domain.NewInternedString("x"), Op: domain.OpPlaceholder}))
	require.NoError(t, g.Append(domain.Node{
		Name:   domain.NewInternedString("y"),
		Op:     domain.OpCall,
		Target: domain.NewInternedString(target),
		Args:   []domain.InternedString{domain.NewInternedString("x")},
	}))
	require.NoError(t, g.Append(domain.Node{
		Name: domain.NewInternedString("out"),
		Op:   domain.OpOutput,
		Args: []domain.InternedString{domain.NewInternedString("y")},
	}))
	return domain.ModuleDef{Name: "wave", Graph: g}
}

func waveSnapshot(t *testing.T, target string) *domain.Snapshot {
	t.Helper()
	def := waveDef(t, target)
	m := lazy.New(def.Name, def.Graph, lowering.New())
	snap, err := m.Snapshot()
	require.NoError(t, err)
	return snap
}

type fixture struct {
	loader    *mocks.MockConfigLoader
	store     *mocks.MockSnapshotStore
	telemetry *mocks.MockTelemetry
	vertex    *mocks.MockVertex
	logger    *mocks.MockLogger
	app       *app.App
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	f := &fixture{
		loader:    mocks.NewMockConfigLoader(ctrl),
		store:     mocks.NewMockSnapshotStore(ctrl),
		telemetry: mocks.NewMockTelemetry(ctrl),
		vertex:    mocks.NewMockVertex(ctrl),
		logger:    mocks.NewMockLogger(ctrl),
	}
	f.telemetry.EXPECT().
		Record(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ string) (context.Context, ports.Vertex) {
			return ctx, f.vertex
		}).
		AnyTimes()
	f.app = app.New(f.loader, lazy.NewFactory(lowering.New()), f.store, f.telemetry, f.logger)
	return f
}

func TestApp_Run_EvaluatesAndPersists(t *testing.T) {
	f := newFixture(t)
	def := waveDef(t, "sin")

	f.loader.EXPECT().Load(".").Return([]domain.ModuleDef{def}, nil)
	f.store.EXPECT().Get("wave").Return(nil, nil)
	f.store.EXPECT().Put(gomock.Any()).DoAndReturn(func(snap domain.Snapshot) error {
		assert.Equal(t, "wave", snap.Name)
		assert.Equal(t, def.Graph.Fingerprint(), snap.Fingerprint)
		return nil
	})
	f.vertex.EXPECT().Complete(nil)

	out, err := f.app.Run(context.Background(), "wave", []domain.Value{domain.Scalar(0.5)})
	require.NoError(t, err)
	assert.InDelta(t, math.Sin(0.5), out[0], 1e-12)
}

func TestApp_Run_UnknownModule(t *testing.T) {
	f := newFixture(t)

	f.loader.EXPECT().Load(".").Return([]domain.ModuleDef{}, nil)

	_, err := f.app.Run(context.Background(), "missing", []domain.Value{domain.Scalar(1)})
	assert.ErrorIs(t, err, domain.ErrUnknownModule)
}

func TestApp_Run_RestoresMatchingSnapshot(t *testing.T) {
	f := newFixture(t)
	def := waveDef(t, "sin")
	snap := waveSnapshot(t, "sin")

	f.loader.EXPECT().Load(".").Return([]domain.ModuleDef{def}, nil)
	f.store.EXPECT().Get("wave").Return(snap, nil)
	// A restored module is already fresh; persisting it is still cheap
	// and keeps the store in sync.
	f.store.EXPECT().Put(gomock.Any()).Return(nil)
	f.vertex.EXPECT().Cached()
	f.vertex.EXPECT().Complete(nil)

	out, err := f.app.Run(context.Background(), "wave", []domain.Value{domain.Scalar(0.5)})
	require.NoError(t, err)
	assert.InDelta(t, math.Sin(0.5), out[0], 1e-12)
}

func TestApp_Show_ReturnsSource(t *testing.T) {
	f := newFixture(t)
	def := waveDef(t, "sin")

	f.loader.EXPECT().Load(".").Return([]domain.ModuleDef{def}, nil)
	f.store.EXPECT().Get("wave").Return(nil, nil)
	f.store.EXPECT().Put(gomock.Any()).Return(nil)
	f.vertex.EXPECT().Complete(nil)

	src, err := f.app.Show(context.Background(), "wave")
	require.NoError(t, err)
	assert.Contains(t, src, "ops.Sin(x)")
}

func TestApp_Status(t *testing.T) {
	f := newFixture(t)
	sin := waveDef(t, "sin")
	stale := waveSnapshot(t, "cos") // fingerprint differs from the config

	f.loader.EXPECT().Load(".").Return([]domain.ModuleDef{sin}, nil)
	f.store.EXPECT().Get("wave").Return(stale, nil)

	statuses, err := f.app.Status(context.Background())
	require.NoError(t, err)
	require.Len(t, statuses, 1)
	assert.Equal(t, "wave", statuses[0].Name)
	assert.False(t, statuses[0].Fresh)

	f.loader.EXPECT().Load(".").Return([]domain.ModuleDef{sin}, nil)
	f.store.EXPECT().Get("wave").Return(waveSnapshot(t, "sin"), nil)

	statuses, err = f.app.Status(context.Background())
	require.NoError(t, err)
	assert.True(t, statuses[0].Fresh)
}

func TestApp_CompileAll_RegeneratesAndStores(t *testing.T) {
	f := newFixture(t)
	def := waveDef(t, "sin")

	f.loader.EXPECT().Load(".").Return([]domain.ModuleDef{def}, nil)
	f.store.EXPECT().Get("wave").Return(nil, nil)
	f.store.EXPECT().Put(gomock.Any()).Return(nil)
	f.vertex.EXPECT().Log(domain.LogLevelInfo, "regenerated")
	f.vertex.EXPECT().Complete(nil)
	f.logger.EXPECT().Info("compiled 1 modules")

	require.NoError(t, f.app.CompileAll(context.Background()))
}

func TestApp_CompileAll_SkipsFreshSnapshot(t *testing.T) {
	f := newFixture(t)
	def := waveDef(t, "sin")

	f.loader.EXPECT().Load(".").Return([]domain.ModuleDef{def}, nil)
	f.store.EXPECT().Get("wave").Return(waveSnapshot(t, "sin"), nil)
	f.vertex.EXPECT().Cached()
	f.vertex.EXPECT().Complete(nil)
	f.logger.EXPECT().Info("compiled 1 modules")

	require.NoError(t, f.app.CompileAll(context.Background()))
}

func TestApp_CompileAll_PropagatesLoweringFailure(t *testing.T) {
	f := newFixture(t)
	def := waveDef(t, "sinh") // not a registered target

	f.loader.EXPECT().Load(".").Return([]domain.ModuleDef{def}, nil)
	f.store.EXPECT().Get("wave").Return(nil, nil)
	f.vertex.EXPECT().Complete(gomock.Not(gomock.Nil()))

	err := f.app.CompileAll(context.Background())
	assert.ErrorIs(t, err, domain.ErrGraphLowering)
}
