package rules

import (
	"netlint/internal/analysis"
	"netlint/internal/symbols"
	"netlint/internal/syntax"
)

// unmanagedCollect flags explicit calls to the runtime garbage collector.
// Forcing a collection stalls the whole process; the runtime schedules
// collections better than call sites do.
type unmanagedCollect struct {
	info analysis.RuleInfo
}

func NewUnmanagedCollect() analysis.Rule {
	return &unmanagedCollect{
		info: analysis.RuleInfo{
			ID:          IDUnmanagedCollect,
			Name:        "DoNotForceGC",
			Severity:    analysis.SeverityWarning,
			Title:       "Do not force garbage collection",
			Message:     "Avoid calling GC.Collect explicitly",
			Description: "Explicit collections pause the process and defeat the runtime's own scheduling heuristics.",
		},
	}
}

func (r *unmanagedCollect) Info() analysis.RuleInfo { return r.info }

func (r *unmanagedCollect) Kinds() []syntax.Kind {
	return []syntax.Kind{syntax.KindInvocation}
}

func (r *unmanagedCollect) Check(pass *analysis.Pass, node *syntax.Node) {
	callee := node.Callee()
	if callee == nil || callee.Kind != syntax.KindMemberAccess {
		return
	}
	if memberName(callee) != collectMethod {
		return
	}

	receiver := syntax.QualifiedText(callee.Children[0])
	if receiver == "" {
		return
	}

	// Unqualified and fully qualified spellings match lexically; anything
	// else (aliases, usings) goes through the oracle.
	if receiver == gcShortName || receiver == gcFullName {
		pass.Report(r.info, node)
		return
	}
	if sym, ok := pass.Oracle.ResolveName(receiver); ok && sym.FullName == symbols.RuntimeGC {
		pass.Report(r.info, node)
	}
}

// memberName returns the accessed member of a member-access node.
func memberName(access *syntax.Node) string {
	if len(access.Children) < 2 {
		return ""
	}
	last := access.Children[len(access.Children)-1]
	if last.Kind != syntax.KindIdentifier {
		return ""
	}
	return last.Text
}
