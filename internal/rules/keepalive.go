package rules

import (
	"strings"

	"netlint/internal/analysis"
	"netlint/internal/symbols"
	"netlint/internal/syntax"
)

// lifetimeExtension flags interop methods that hand a managed object to
// native code without a GC.KeepAlive call. Once the only remaining use of an
// object is through an opaque native handle, the collector cannot see it and
// may reclaim it mid-call; KeepAlive pins the lifetime past the last native
// use.
type lifetimeExtension struct {
	info analysis.RuleInfo
}

func NewLifetimeExtension() analysis.Rule {
	return &lifetimeExtension{
		info: analysis.RuleInfo{
			ID:          IDLifetimeExtension,
			Name:        "UseKeepAliveForInterop",
			Severity:    analysis.SeverityInfo,
			Title:       "Extend managed lifetimes across native calls",
			Message:     "Parameter '%s' is used in native code without a GC.KeepAlive call",
			Description: "Reference parameters passed to native code need GC.KeepAlive to survive until the native side is done with them.",
		},
	}
}

func (r *lifetimeExtension) Info() analysis.RuleInfo { return r.info }

func (r *lifetimeExtension) Kinds() []syntax.Kind {
	return []syntax.Kind{syntax.KindMethodDecl}
}

func (r *lifetimeExtension) Check(pass *analysis.Pass, node *syntax.Node) {
	body := node.FirstChild(syntax.KindBlock)
	if body == nil {
		return
	}
	if !hasInteropSurface(pass, node, body) {
		return
	}

	for _, param := range node.ChildrenOf(syntax.KindParameter) {
		sym, ok := pass.Oracle.ResolveType(param.FirstChild(syntax.KindTypeRef))
		if !ok {
			continue
		}
		if !sym.ReferenceType || sym.Name == "string" || sym.FullName == "System.String" {
			continue
		}

		name := param.Name()
		if name == "" {
			continue
		}
		if !usedUnsafely(pass, body, name) {
			continue
		}
		if hasKeepAliveCall(pass, body, name) {
			continue
		}
		pass.Report(r.info, param, name)
	}
}

// hasInteropSurface reports whether the method calls into foreign code:
// either it carries a DllImport-style attribute or its body invokes an
// externally implemented symbol.
func hasInteropSurface(pass *analysis.Pass, method, body *syntax.Node) bool {
	for _, attr := range method.ChildrenOf(syntax.KindAttribute) {
		if strings.Contains(attr.Name(), dllImportAttr) {
			return true
		}
	}
	for _, inv := range syntax.Descendants(body, syntax.KindInvocation) {
		if isExternCall(pass, inv) {
			return true
		}
	}
	return false
}

func isExternCall(pass *analysis.Pass, inv *syntax.Node) bool {
	callee := inv.Callee()
	if callee == nil {
		return false
	}
	name := syntax.QualifiedText(callee)
	if name == "" {
		return false
	}
	sym, ok := pass.Oracle.ResolveName(name)
	return ok && sym.Extern
}

// usedUnsafely reports whether the parameter's identifier shows up inside an
// unsafe or fixed block, or is passed directly to an extern call. Either way
// the object is only reachable through memory the collector cannot track.
func usedUnsafely(pass *analysis.Pass, body *syntax.Node, param string) bool {
	for _, id := range syntax.Descendants(body, syntax.KindIdentifier) {
		if id.Text != param {
			continue
		}
		if syntax.HasAncestor(id, syntax.KindUnsafeBlock, syntax.KindFixedStatement) {
			return true
		}
	}
	for _, inv := range syntax.Descendants(body, syntax.KindInvocation) {
		if !isExternCall(pass, inv) {
			continue
		}
		for _, arg := range inv.Arguments() {
			if len(arg.Children) == 1 && arg.Children[0].Kind == syntax.KindIdentifier && arg.Children[0].Text == param {
				return true
			}
		}
	}
	return false
}

// hasKeepAliveCall reports whether the body invokes GC.KeepAlive with the
// parameter as an argument. The receiver matches like RULE-001's: lexically
// for the plain and qualified spellings, through the oracle for aliases.
func hasKeepAliveCall(pass *analysis.Pass, body *syntax.Node, param string) bool {
	for _, inv := range syntax.Descendants(body, syntax.KindInvocation) {
		callee := inv.Callee()
		if callee == nil || callee.Kind != syntax.KindMemberAccess {
			continue
		}
		if memberName(callee) != keepAliveMethod {
			continue
		}
		receiver := syntax.QualifiedText(callee.Children[0])
		if receiver != gcShortName && receiver != gcFullName {
			sym, ok := pass.Oracle.ResolveName(receiver)
			if !ok || sym.FullName != symbols.RuntimeGC {
				continue
			}
		}
		for _, arg := range inv.Arguments() {
			if syntax.MentionsIdentifier(arg, param) {
				return true
			}
		}
	}
	return false
}
