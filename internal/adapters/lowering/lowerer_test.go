package lowering_test

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/glow/internal/adapters/lowering"
	"go.trai.ch/glow/internal/core/domain"
)

func buildGraph(t *testing.T, target string) *domain.Graph {
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
	return g
}

func TestLower_Sin(t *testing.T) {
	l := lowering.New()
	art, err := l.Lower(buildGraph(t, "sin"))
	require.NoError(t, err)

	assert.Contains(t, art.Source, "ops.Sin(x)")
	assert.Contains(t, art.Source, "func forward(x []float64) []float64")
	assert.Contains(t, art.Source, "return y")

	entry, err := l.Bind(art)
	require.NoError(t, err)

	got, err := entry(domain.Value{0, math.Pi / 2})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.InDelta(t, 0, got[0], 1e-12)
	assert.InDelta(t, 1, got[1], 1e-12)
}

func TestLower_UnknownTarget(t *testing.T) {
	l := lowering.New()
	_, err := l.Lower(buildGraph(t, "sinh"))
	assert.ErrorIs(t, err, domain.ErrGraphLowering)
	assert.ErrorIs(t, err, domain.ErrUnknownTarget)
}

func TestLower_ArityMismatch(t *testing.T) {
	g := domain.NewGraph()
	require.NoError(t, g.Append(domain.Node{Name: domain.NewInternedString("x"), Op: domain.OpPlaceholder}))
	require.NoError(t, g.Append(domain.Node{
		Name:   domain.NewInternedString("y"),
		Op:     domain.OpCall,
		Target: domain.NewInternedString("add"),
		Args:   []domain.InternedString{domain.NewInternedString("x")},
	}))
	require.NoError(t, g.Append(domain.Node{
		Name: domain.NewInternedString("out"),
		Op:   domain.OpOutput,
		Args: []domain.InternedString{domain.NewInternedString("y")},
	}))

	_, err := lowering.New().Lower(g)
	assert.ErrorIs(t, err, domain.ErrGraphLowering)
	assert.ErrorIs(t, err, domain.ErrArityMismatch)
}

func TestLower_InvalidGraph(t *testing.T) {
	g := domain.NewGraph()
	require.NoError(t, g.Append(domain.Node{Name: domain.NewInternedString("x"), Op: domain.OpPlaceholder}))

	_, err := lowering.New().Lower(g)
	assert.ErrorIs(t, err, domain.ErrGraphLowering)
	assert.ErrorIs(t, err, domain.ErrNoOutput)
}

func TestLower_MultiOpGraph(t *testing.T) {
	// y = sin(x) * x + 1
	g := domain.NewGraph()
	x := domain.NewInternedString("x")
	require.NoError(t, g.Append(domain.Node{Name: x, Op: domain.OpPlaceholder}))
	require.NoError(t, g.Append(domain.Node{
		Name: domain.NewInternedString("s"), Op: domain.OpCall,
		Target: domain.NewInternedString("sin"), Args: []domain.InternedString{x},
	}))
	require.NoError(t, g.Append(domain.Node{
		Name: domain.NewInternedString("m"), Op: domain.OpCall,
		Target: domain.NewInternedString("mul"),
		Args:   []domain.InternedString{domain.NewInternedString("s"), x},
	}))
	require.NoError(t, g.Append(domain.Node{
		Name: domain.NewInternedString("o"), Op: domain.OpCall,
		Target: domain.NewInternedString("offset"),
		Args:   []domain.InternedString{domain.NewInternedString("m")},
		Attrs:  map[string]float64{"bias": 1},
	}))
	require.NoError(t, g.Append(domain.Node{
		Name: domain.NewInternedString("out"), Op: domain.OpOutput,
		Args: []domain.InternedString{domain.NewInternedString("o")},
	}))

	l := lowering.New()
	art, err := l.Lower(g)
	require.NoError(t, err)
	assert.Contains(t, art.Source, "ops.Offset(m) // bias=1")

	entry, err := l.Bind(art)
	require.NoError(t, err)

	in := 1.3
	got, err := entry(domain.Scalar(in))
	require.NoError(t, err)
	assert.InDelta(t, math.Sin(in)*in+1, got[0], 1e-12)
}

func TestEntry_ArityChecked(t *testing.T) {
	l := lowering.New()
	art, err := l.Lower(buildGraph(t, "sin"))
	require.NoError(t, err)
	entry, err := l.Bind(art)
	require.NoError(t, err)

	_, err = entry(domain.Scalar(1), domain.Scalar(2))
	assert.ErrorIs(t, err, domain.ErrArityMismatch)
}

func TestEntry_Broadcast(t *testing.T) {
	// y = x + c where c is a length-1 vector.
	g := domain.NewGraph()
	x := domain.NewInternedString("x")
	c := domain.NewInternedString("c")
	require.NoError(t, g.Append(domain.Node{Name: x, Op: domain.OpPlaceholder}))
	require.NoError(t, g.Append(domain.Node{Name: c, Op: domain.OpPlaceholder}))
	require.NoError(t, g.Append(domain.Node{
		Name: domain.NewInternedString("y"), Op: domain.OpCall,
		Target: domain.NewInternedString("add"), Args: []domain.InternedString{x, c},
	}))
	require.NoError(t, g.Append(domain.Node{
		Name: domain.NewInternedString("out"), Op: domain.OpOutput,
		Args: []domain.InternedString{domain.NewInternedString("y")},
	}))

	l := lowering.New()
	art, err := l.Lower(g)
	require.NoError(t, err)
	entry, err := l.Bind(art)
	require.NoError(t, err)

	got, err := entry(domain.Value{1, 2, 3}, domain.Scalar(10))
	require.NoError(t, err)
	assert.Equal(t, domain.Value{11, 12, 13}, got)

	_, err = entry(domain.Value{1, 2, 3}, domain.Value{1, 2})
	assert.ErrorIs(t, err, domain.ErrShapeMismatch)
}

func TestBind_FromSerializedArtifact(t *testing.T) {
	l := lowering.New()
	art, err := l.Lower(buildGraph(t, "cos"))
	require.NoError(t, err)

	data, err := json.Marshal(art)
	require.NoError(t, err)
	var decoded domain.Artifact
	require.NoError(t, json.Unmarshal(data, &decoded))

	entry, err := l.Bind(&decoded)
	require.NoError(t, err)
	got, err := entry(domain.Scalar(0))
	require.NoError(t, err)
	assert.InDelta(t, 1, got[0], 1e-12)
}

func TestTargets_ListsRegisteredOps(t *testing.T) {
	targets := lowering.Targets()
	assert.Contains(t, targets, "sin")
	assert.Contains(t, targets, "add")
	assert.Contains(t, targets, "offset")
}

func TestBind_RejectsDanglingTarget(t *testing.T) {
	art := &domain.Artifact{
		Program: domain.Program{
			Registers: 2,
			Inputs:    []int{0},
			Output:    1,
			Instructions: []domain.Instruction{
				{Target: domain.NewInternedString("gone"), Dst: 1, Srcs: []int{0}},
			},
		},
	}
	_, err := lowering.New().Bind(art)
	assert.ErrorIs(t, err, domain.ErrUnknownTarget)
}
