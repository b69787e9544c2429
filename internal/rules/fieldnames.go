package rules

import (
	"netlint/internal/analysis"
	"netlint/internal/syntax"
)

// fieldNaming enforces the `_lowerCamel` convention on private instance
// fields. Static, const and readonly fields follow different conventions and
// are skipped, as are interface and enum members.
type fieldNaming struct {
	info analysis.RuleInfo
}

func NewFieldNaming() analysis.Rule {
	return &fieldNaming{
		info: analysis.RuleInfo{
			ID:          IDFieldNaming,
			Name:        "PrivateFieldNaming",
			Severity:    analysis.SeverityWarning,
			Title:       "Private fields use _lowerCamel names",
			Message:     "Field '%s' does not follow the _lowerCamel naming convention",
			Description: "Private instance fields start with a single underscore followed by a lowercase letter, then ASCII letters and digits only.",
		},
	}
}

func (r *fieldNaming) Info() analysis.RuleInfo { return r.info }

func (r *fieldNaming) Kinds() []syntax.Kind {
	return []syntax.Kind{syntax.KindFieldDecl}
}

func (r *fieldNaming) Check(pass *analysis.Pass, node *syntax.Node) {
	if node.HasModifier("static") || node.HasModifier("const") || node.HasModifier("readonly") {
		return
	}

	encl := syntax.EnclosingType(node)
	if encl == nil {
		// Field without a fixed-up enclosing type: malformed shape, skip.
		return
	}
	if encl.Kind == syntax.KindInterfaceDecl || encl.Kind == syntax.KindEnumDecl {
		return
	}

	fieldPrivate := !node.HasModifier("public") && !node.HasModifier("protected") && !node.HasModifier("internal")
	typePrivate := encl.HasModifier("private")
	if !fieldPrivate && !typePrivate {
		return
	}

	// One field declaration may introduce several names.
	for _, id := range node.ChildrenOf(syntax.KindIdentifier) {
		if !validFieldName(id.Text) {
			pass.Report(r.info, id, id.Text)
		}
	}
}

// validFieldName matches ^_[a-z][A-Za-z0-9]*$ over ASCII: exactly one
// leading underscore, then a lowercase letter, then letters and digits.
func validFieldName(name string) bool {
	if len(name) < 2 || name[0] != '_' {
		return false
	}
	if name[1] < 'a' || name[1] > 'z' {
		return false
	}
	for i := 2; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
		default:
			return false
		}
	}
	return true
}
