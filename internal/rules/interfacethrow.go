package rules

import (
	"strings"

	"netlint/internal/analysis"
	"netlint/internal/syntax"
)

// interfaceThrows flags interface methods whose default body throws or
// whose documentation declares an exception tag. Interface contracts here
// are expected to be exception-free; failures travel through return values.
type interfaceThrows struct {
	info analysis.RuleInfo
}

func NewInterfaceThrows() analysis.Rule {
	return &interfaceThrows{
		info: analysis.RuleInfo{
			ID:          IDInterfaceThrows,
			Name:        "InterfacesDoNotThrow",
			Severity:    analysis.SeverityWarning,
			Title:       "Interface contracts must not throw",
			Message:     "Interface method '%s' declares or throws an exception",
			Description: "Interface members may not throw or document exceptions; error conditions belong in the return contract.",
		},
	}
}

func (r *interfaceThrows) Info() analysis.RuleInfo { return r.info }

func (r *interfaceThrows) Kinds() []syntax.Kind {
	return []syntax.Kind{syntax.KindMethodDecl}
}

func (r *interfaceThrows) Check(pass *analysis.Pass, node *syntax.Node) {
	iface := node.Parent
	if iface == nil || iface.Kind != syntax.KindInterfaceDecl {
		return
	}

	if !throwsInBody(node) && !documentsException(node) {
		return
	}

	display := node.Name()
	if ifaceName := iface.Name(); ifaceName != "" {
		display = ifaceName + "." + display
	}
	pass.Report(r.info, node, display)
}

// throwsInBody covers both statement-bodied and expression-bodied members:
// any throw statement or throw expression below the method counts.
func throwsInBody(method *syntax.Node) bool {
	return len(syntax.Descendants(method, syntax.KindThrowStatement)) > 0 ||
		len(syntax.Descendants(method, syntax.KindThrowExpression)) > 0
}

func documentsException(method *syntax.Node) bool {
	doc := method.FirstChild(syntax.KindDocComment)
	return doc != nil && strings.Contains(doc.Text, "<exception")
}
