// Package rules implements the netlint rule catalogue: six structural and
// naming checks over C#-shaped syntax trees. Every rule is a pure function
// of (node, tree, oracle) and holds no state across invocations.
package rules

import (
	"netlint/internal/analysis"
)

// Stable rule identifiers. These are a compatibility contract: hosts key
// suppressions and baselines on them, so they never change.
const (
	IDUnmanagedCollect  = "RULE-001"
	IDLifetimeExtension = "RULE-002"
	IDResourceDisposal  = "RULE-003"
	IDInterfaceThrows   = "RULE-004"
	IDFieldNaming       = "RULE-005"
	IDEmbeddedStrings   = "RULE-006"
)

// Well-known member and attribute names the rules match on.
const (
	collectMethod   = "Collect"
	keepAliveMethod = "KeepAlive"
	disposeMethod   = "Dispose"
	gcShortName     = "GC"
	gcFullName      = "System.GC"
	dllImportAttr   = "DllImport"
)

// All returns the full catalogue with the given embedded-string settings,
// in rule-id order.
func All(literals LiteralSettings) []analysis.Rule {
	return []analysis.Rule{
		NewUnmanagedCollect(),
		NewLifetimeExtension(),
		NewResourceDisposal(),
		NewInterfaceThrows(),
		NewFieldNaming(),
		NewEmbeddedStrings(literals),
	}
}
