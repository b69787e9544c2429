package analysis

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"netlint/internal/observability"
	"netlint/internal/symbols"
	"netlint/internal/syntax"
)

// Rule is a stateless unit of analysis. Check may read the tree and query
// the oracle but must not mutate either; it reports findings through the
// pass. Rules must be total over well-formed trees: a panic aborts the whole
// compilation unit.
type Rule interface {
	Info() RuleInfo
	Kinds() []syntax.Kind
	Check(pass *Pass, node *syntax.Node)
}

// Pass carries the per-unit state handed to rules: the tree under analysis,
// the symbol oracle, and the diagnostic buffer.
type Pass struct {
	Unit   *syntax.Node
	Oracle symbols.Oracle

	diags []Diagnostic
}

// Report records one finding for the given rule at the node's location.
func (p *Pass) Report(info RuleInfo, node *syntax.Node, args ...string) {
	p.diags = append(p.diags, newDiagnostic(info, node, args...))
	observability.DiagnosticsEmitted.WithLabelValues(info.ID).Inc()
}

// Engine dispatches syntax nodes to registered rules. Register everything
// up front; Analyze may then be called concurrently from independent
// compilation-unit runs.
type Engine struct {
	byKind map[syntax.Kind][]Rule
	rules  []Rule
}

func NewEngine() *Engine {
	return &Engine{byKind: make(map[syntax.Kind][]Rule)}
}

// Register subscribes a rule to the node kinds it declared.
func (e *Engine) Register(rules ...Rule) {
	for _, r := range rules {
		e.rules = append(e.rules, r)
		for _, k := range r.Kinds() {
			e.byKind[k] = append(e.byKind[k], r)
		}
	}
}

// Rules returns the registered rules in registration order.
func (e *Engine) Rules() []Rule {
	return e.rules
}

// Analyze walks the unit once in document order, invoking every rule
// registered for each node's kind, and returns the collected diagnostics
// grouped by rule and source position.
//
// A rule panic is a fatal engine error: the unit's diagnostics are discarded
// and an error is returned, so the host never sees silent partial results.
// Cancellation is checked at every node boundary.
func (e *Engine) Analyze(ctx context.Context, unit *syntax.Node, oracle symbols.Oracle) (diags []Diagnostic, err error) {
	start := time.Now()
	ctx, span := observability.Tracer.Start(ctx, "engine.Analyze",
		trace.WithAttributes(attribute.String("unit", unit.Span.File)))
	defer span.End()
	defer func() {
		observability.AnalysisDuration.Observe(time.Since(start).Seconds())
	}()

	defer func() {
		if r := recover(); r != nil {
			observability.RulePanics.Inc()
			diags = nil
			err = fmt.Errorf("rule fault while analyzing %s: %v", unit.Span.File, r)
		}
	}()

	pass := &Pass{Unit: unit, Oracle: oracle}

	var walkErr error
	syntax.Walk(unit, func(n *syntax.Node) bool {
		if ctxErr := ctx.Err(); ctxErr != nil {
			walkErr = ctxErr
			return false
		}
		for _, r := range e.byKind[n.Kind] {
			r.Check(pass, n)
		}
		return true
	})
	if walkErr != nil {
		return nil, walkErr
	}

	sortDiagnostics(pass.diags)
	return pass.diags, nil
}
