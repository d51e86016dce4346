// Package lowering implements the compilation backend: a pure translation
// from a computation graph to generated source text and a flat register
// program, plus the binding of that program to a callable entry point.
package lowering

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"go.trai.ch/glow/internal/core/domain"
	"go.trai.ch/glow/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Lowerer = (*Lowerer)(nil)

// Lowerer translates graphs into artifacts. It is stateless; a single
// instance serves any number of modules.
type Lowerer struct{}

// New creates a new Lowerer.
func New() *Lowerer {
	return &Lowerer{}
}

// Lower generates the source text and register program for the graph.
// The graph is validated first; any structural problem or unknown target
// fails with an error chain containing domain.ErrGraphLowering and nothing
// is returned, so the caller's cache keeps its previous state.
func (l *Lowerer) Lower(g *domain.Graph) (*domain.Artifact, error) {
	if err := g.Validate(); err != nil {
		return nil, zerr.Wrap(errors.Join(domain.ErrGraphLowering, err), "graph rejected")
	}

	regs := make(map[domain.InternedString]int, g.NodeCount())
	prog := domain.Program{}
	var body strings.Builder

	for n := range g.Walk() {
		switch n.Op {
		case domain.OpPlaceholder:
			r := prog.Registers
			prog.Registers++
			regs[n.Name] = r
			prog.Inputs = append(prog.Inputs, r)

		case domain.OpCall:
			target := n.Target.String()
			def, ok := registry[target]
			if !ok {
				return nil, zerr.With(zerr.With(
					errors.Join(domain.ErrGraphLowering, domain.ErrUnknownTarget),
					"node", n.Name.String()), "target", target)
			}
			if len(n.Args) != def.arity {
				return nil, zerr.With(zerr.With(
					errors.Join(domain.ErrGraphLowering, domain.ErrArityMismatch),
					"node", n.Name.String()), "target", target)
			}

			srcs := make([]int, len(n.Args))
			for i, arg := range n.Args {
				srcs[i] = regs[arg]
			}
			r := prog.Registers
			prog.Registers++
			regs[n.Name] = r
			prog.Instructions = append(prog.Instructions, domain.Instruction{
				Target: n.Target,
				Dst:    r,
				Srcs:   srcs,
				Attrs:  n.Attrs,
			})
			body.WriteString(renderCall(n))

		case domain.OpOutput:
			prog.Output = regs[n.Args[0]]
			fmt.Fprintf(&body, "\treturn %s\n", n.Args[0].String())
		}
	}

	source := renderSignature(g) + body.String() + "}\n"
	return &domain.Artifact{Source: source, Program: prog}, nil
}

// Bind builds the callable entry for an artifact. The program is checked
// for dangling targets and register bounds — a snapshot from an older
// binary may reference operations this build no longer has — but no
// lowering happens here.
func (l *Lowerer) Bind(a *domain.Artifact) (domain.Entry, error) {
	p := a.Program
	for _, ins := range p.Instructions {
		def, ok := registry[ins.Target.String()]
		if !ok {
			return nil, zerr.With(domain.ErrUnknownTarget, "target", ins.Target.String())
		}
		if len(ins.Srcs) != def.arity {
			return nil, zerr.With(domain.ErrArityMismatch, "target", ins.Target.String())
		}
		if ins.Dst < 0 || ins.Dst >= p.Registers {
			return nil, zerr.With(domain.ErrUnknownTarget, "register", ins.Dst)
		}
		for _, s := range ins.Srcs {
			if s < 0 || s >= p.Registers {
				return nil, zerr.With(domain.ErrUnknownTarget, "register", s)
			}
		}
	}
	if p.Output < 0 || p.Output >= p.Registers {
		return nil, zerr.With(domain.ErrUnknownTarget, "register", p.Output)
	}

	return func(inputs ...domain.Value) (domain.Value, error) {
		if len(inputs) != len(p.Inputs) {
			return nil, zerr.With(zerr.With(domain.ErrArityMismatch,
				"want", len(p.Inputs)), "got", len(inputs))
		}
		regs := make([]domain.Value, p.Registers)
		for i, r := range p.Inputs {
			regs[r] = inputs[i]
		}
		for _, ins := range p.Instructions {
			args := make([]domain.Value, len(ins.Srcs))
			for i, s := range ins.Srcs {
				args[i] = regs[s]
			}
			out, err := registry[ins.Target.String()].fn(args, ins.Attrs)
			if err != nil {
				return nil, zerr.With(err, "instruction", ins.Target.String())
			}
			regs[ins.Dst] = out
		}
		return regs[p.Output], nil
	}, nil
}

// renderSignature renders the function header of the generated source.
func renderSignature(g *domain.Graph) string {
	inputs := g.Inputs()
	names := make([]string, len(inputs))
	for i, in := range inputs {
		names[i] = in.String()
	}
	params := ""
	if len(names) > 0 {
		params = strings.Join(names, ", ") + " []float64"
	}
	return fmt.Sprintf("// lowered by glow; regenerated when the graph changes\nfunc forward(%s) []float64 {\n", params)
}

// renderCall renders one call node as a source line, e.g.
//
//	s := ops.Sin(x)
func renderCall(n domain.Node) string {
	args := make([]string, len(n.Args))
	for i, arg := range n.Args {
		args[i] = arg.String()
	}
	line := fmt.Sprintf("\t%s := ops.%s(%s)", n.Name.String(), exportName(n.Target.String()), strings.Join(args, ", "))
	if len(n.Attrs) > 0 {
		keys := make([]string, 0, len(n.Attrs))
		for k := range n.Attrs {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		pairs := make([]string, len(keys))
		for i, k := range keys {
			pairs[i] = fmt.Sprintf("%s=%v", k, n.Attrs[k])
		}
		line += " // " + strings.Join(pairs, " ")
	}
	return line + "\n"
}

func exportName(target string) string {
	if target == "" {
		return ""
	}
	return strings.ToUpper(target[:1]) + target[1:]
}
