package rules

import (
	"netlint/internal/analysis"
	"netlint/internal/symbols"
	"netlint/internal/syntax"
)

// resourceDisposal flags locals of disposable types that are neither
// disposed nor handed off before the method ends.
//
// The disposed/escaped checks are deliberately syntactic and
// flow-insensitive: no branch or loop sensitivity, no alias tracking, no
// reassignment modeling. A Dispose call behind an if counts as disposed; a
// local passed to a logging call counts as escaped even though the logger
// takes no ownership. That trades soundness for predictable matches on the
// overwhelmingly common patterns.
type resourceDisposal struct {
	info analysis.RuleInfo
}

func NewResourceDisposal() analysis.Rule {
	return &resourceDisposal{
		info: analysis.RuleInfo{
			ID:          IDResourceDisposal,
			Name:        "DisposeLocalResources",
			Severity:    analysis.SeverityWarning,
			Title:       "Dispose locally owned resources",
			Message:     "Local of disposable type '%s' is never disposed",
			Description: "A local that owns a disposable resource must dispose it, wrap it in a using, or hand it off before the method returns.",
		},
	}
}

func (r *resourceDisposal) Info() analysis.RuleInfo { return r.info }

func (r *resourceDisposal) Kinds() []syntax.Kind {
	return []syntax.Kind{syntax.KindMethodDecl}
}

func (r *resourceDisposal) Check(pass *analysis.Pass, node *syntax.Node) {
	body := node.FirstChild(syntax.KindBlock)
	if body == nil {
		return
	}

	for _, local := range syntax.Descendants(body, syntax.KindLocalDecl) {
		sym, ok := pass.Oracle.ResolveType(local.FirstChild(syntax.KindTypeRef))
		if !ok {
			continue
		}
		if !sym.Implements(symbols.CapDisposable) {
			continue
		}

		name := local.Name()
		if name == "" {
			continue
		}
		if isDisposed(body, local, name) || hasEscaped(body, name) {
			continue
		}
		pass.Report(r.info, local, sym.Name)
	}
}

// isDisposed reports whether the local is released on every exit path that
// the syntactic patterns can see: it is the subject of a using statement
// (declaration or expression form), or a statement-level x.Dispose() call
// names it. Only the using's own declaration counts as its subject; a local
// declared in the body of an enclosing using block is not covered by it.
func isDisposed(body, local *syntax.Node, name string) bool {
	if local.Parent != nil && local.Parent.Kind == syntax.KindUsingStatement {
		return true
	}

	for _, using := range syntax.Descendants(body, syntax.KindUsingStatement) {
		for _, c := range using.Children {
			if c.Kind == syntax.KindIdentifier && c.Text == name {
				return true
			}
		}
	}

	for _, stmt := range syntax.Descendants(body, syntax.KindExpressionStatement) {
		inv := stmt.FirstChild(syntax.KindInvocation)
		if inv == nil {
			continue
		}
		callee := inv.Callee()
		if callee == nil || callee.Kind != syntax.KindMemberAccess {
			continue
		}
		if memberName(callee) != disposeMethod {
			continue
		}
		recv := callee.Children[0]
		if recv.Kind == syntax.KindIdentifier && recv.Text == name {
			return true
		}
	}
	return false
}

// hasEscaped reports whether the local leaves the method's control: it is
// returned directly, or appears as a direct argument to any invocation (the
// callee is assumed to take ownership).
func hasEscaped(body *syntax.Node, name string) bool {
	for _, ret := range syntax.Descendants(body, syntax.KindReturnStatement) {
		if len(ret.Children) == 1 && ret.Children[0].Kind == syntax.KindIdentifier && ret.Children[0].Text == name {
			return true
		}
	}

	for _, arg := range syntax.Descendants(body, syntax.KindArgument) {
		if len(arg.Children) == 1 && arg.Children[0].Kind == syntax.KindIdentifier && arg.Children[0].Text == name {
			return true
		}
	}
	return false
}
