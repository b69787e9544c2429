package rules

import (
	"strings"

	"netlint/internal/syntax"
)

// isTestContext reports whether a node sits inside test code: an enclosing
// method or class whose name contains "Test", or which carries an attribute
// whose name contains "Test" or "Fact". Kept separate from the rule matchers
// so the detection can change without touching rule logic.
func isTestContext(n *syntax.Node) bool {
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Kind != syntax.KindMethodDecl && p.Kind != syntax.KindClassDecl {
			continue
		}
		if strings.Contains(p.Name(), "Test") {
			return true
		}
		for _, attr := range p.ChildrenOf(syntax.KindAttribute) {
			name := attr.Name()
			if strings.Contains(name, "Test") || strings.Contains(name, "Fact") {
				return true
			}
		}
	}
	return false
}
