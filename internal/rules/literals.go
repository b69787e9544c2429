package rules

import (
	"unicode/utf8"

	"netlint/internal/analysis"
	"netlint/internal/syntax"
)

// LiteralSettings configures the embedded-string rule.
type LiteralSettings struct {
	// MinimumLength is the shortest literal (in runes) worth flagging.
	MinimumLength int
	// AllowedLiterals are exact values that never get flagged.
	AllowedLiterals []string
}

// DefaultLiteralSettings returns the stock configuration: length 3 and an
// allow-list of whitespace, escapes and single punctuation characters.
func DefaultLiteralSettings() LiteralSettings {
	return LiteralSettings{
		MinimumLength: 3,
		AllowedLiterals: []string{
			"", " ",
			`\n`, `\r`, `\t`,
			"\n", "\r", "\t",
			",", ".", ":", ";", "-", "_", "=", "+", "*", "/", `\`,
			"(", ")", "[", "]", "{", "}", "<", ">", `"`, "'", "`",
		},
	}
}

// embeddedStrings flags string literals that belong in the string resource
// catalogue instead of the code.
type embeddedStrings struct {
	info      analysis.RuleInfo
	minLength int
	allowed   map[string]struct{}
}

func NewEmbeddedStrings(settings LiteralSettings) analysis.Rule {
	allowed := make(map[string]struct{}, len(settings.AllowedLiterals))
	for _, v := range settings.AllowedLiterals {
		allowed[v] = struct{}{}
	}
	return &embeddedStrings{
		info: analysis.RuleInfo{
			ID:          IDEmbeddedStrings,
			Name:        "NoEmbeddedStrings",
			Severity:    analysis.SeverityInfo,
			Title:       "Externalize embedded string literals",
			Message:     "String literal %q should be externalized",
			Description: "User-visible strings live in the resource catalogue so they can be translated and audited.",
		},
		minLength: settings.MinimumLength,
		allowed:   allowed,
	}
}

func (r *embeddedStrings) Info() analysis.RuleInfo { return r.info }

func (r *embeddedStrings) Kinds() []syntax.Kind {
	return []syntax.Kind{syntax.KindStringLiteral}
}

func (r *embeddedStrings) Check(pass *analysis.Pass, node *syntax.Node) {
	value := node.Text
	if utf8.RuneCountInString(value) < r.minLength {
		return
	}
	if _, ok := r.allowed[value]; ok {
		return
	}
	if syntax.HasAncestor(node, syntax.KindAttribute, syntax.KindDocComment) {
		return
	}
	if isTestContext(node) {
		return
	}
	pass.Report(r.info, node, value)
}
