// Package trace implements the tracing frontend: it records operations
// applied to proxy values and builds the corresponding computation graph.
package trace

import (
	"fmt"

	"go.trai.ch/glow/internal/core/domain"
	"go.trai.ch/glow/internal/core/ports"
	"go.trai.ch/glow/internal/engine/lazy"
	"go.trai.ch/zerr"
)

// Frontend traces Go functions over proxy values into lazy modules.
type Frontend struct {
	lowerer ports.Lowerer
}

// NewFrontend creates a Frontend backed by the given lowering backend.
func NewFrontend(lowerer ports.Lowerer) *Frontend {
	return &Frontend{lowerer: lowerer}
}

// Proxy stands in for a runtime value during tracing. Every operation on
// a proxy appends a node to the graph under construction and returns a
// proxy for the result.
type Proxy struct {
	g    *domain.Graph
	node domain.InternedString
}

// Trace runs fn over fresh proxies for the named inputs and wraps the
// recorded graph in a new lazy module. The module starts stale, like any
// freshly traced module: nothing is lowered until first access.
func (f *Frontend) Trace(name string, inputs []string, fn func(args []*Proxy) *Proxy) (*lazy.Module, error) {
	g := domain.NewGraph()
	proxies := make([]*Proxy, len(inputs))
	for i, in := range inputs {
		n := domain.NewInternedString(in)
		if err := g.Append(domain.Node{Name: n, Op: domain.OpPlaceholder}); err != nil {
			return nil, zerr.Wrap(err, "failed to record input")
		}
		proxies[i] = &Proxy{g: g, node: n}
	}

	out := fn(proxies)
	if out == nil || out.g != g {
		return nil, zerr.With(domain.ErrNodeNotFound, "module", name)
	}
	if err := g.Append(domain.Node{
		Name: domain.NewInternedString("output"),
		Op:   domain.OpOutput,
		Args: []domain.InternedString{out.node},
	}); err != nil {
		return nil, zerr.Wrap(err, "failed to record output")
	}

	return lazy.New(name, g, f.lowerer), nil
}

// Retrace re-enters the frontend on an existing module. The frontend
// cannot observe a pending recompilation, so the module is realized
// first; the returned module carries a copy of the now-stable graph and
// starts stale, exactly like a first trace.
func (f *Frontend) Retrace(m *lazy.Module) (*lazy.Module, error) {
	if err := m.Realize(); err != nil {
		return nil, zerr.Wrap(err, "cannot retrace a module that fails to lower")
	}
	return lazy.New(m.Name(), m.Graph().Clone(), f.lowerer), nil
}

// apply records a call node and returns its proxy.
func (p *Proxy) apply(target string, extra ...*Proxy) *Proxy {
	args := make([]domain.InternedString, 1+len(extra))
	args[0] = p.node
	for i, e := range extra {
		args[i+1] = e.node
	}
	name := domain.NewInternedString(fmt.Sprintf("%s_%d", target, p.g.NodeCount()))
	// Append on a graph under construction only fails on programming
	// errors in the frontend itself.
	if err := p.g.Append(domain.Node{
		Name:   name,
		Op:     domain.OpCall,
		Target: domain.NewInternedString(target),
		Args:   args,
	}); err != nil {
		panic(err)
	}
	return &Proxy{g: p.g, node: name}
}

// Sin records sin(p).
func (p *Proxy) Sin() *Proxy { return p.apply("sin") }

// Cos records cos(p).
func (p *Proxy) Cos() *Proxy { return p.apply("cos") }

// Tan records tan(p).
func (p *Proxy) Tan() *Proxy { return p.apply("tan") }

// Exp records exp(p).
func (p *Proxy) Exp() *Proxy { return p.apply("exp") }

// Log records log(p).
func (p *Proxy) Log() *Proxy { return p.apply("log") }

// Sqrt records sqrt(p).
func (p *Proxy) Sqrt() *Proxy { return p.apply("sqrt") }

// Abs records abs(p).
func (p *Proxy) Abs() *Proxy { return p.apply("abs") }

// Neg records -p.
func (p *Proxy) Neg() *Proxy { return p.apply("neg") }

// Relu records max(p, 0).
func (p *Proxy) Relu() *Proxy { return p.apply("relu") }

// Add records p + o.
func (p *Proxy) Add(o *Proxy) *Proxy { return p.apply("add", o) }

// Sub records p - o.
func (p *Proxy) Sub(o *Proxy) *Proxy { return p.apply("sub", o) }

// Mul records p * o.
func (p *Proxy) Mul(o *Proxy) *Proxy { return p.apply("mul", o) }

// Div records p / o.
func (p *Proxy) Div(o *Proxy) *Proxy { return p.apply("div", o) }

// Pow records p ** o.
func (p *Proxy) Pow(o *Proxy) *Proxy { return p.apply("pow", o) }
