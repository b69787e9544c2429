package analysis

import (
	"fmt"
	"sort"

	"netlint/internal/syntax"
)

// Severity of a diagnostic.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	}
	return "unknown"
}

const (
	helpLinkBase = "https://netlint.dev/rules/"
	helpLinkExt  = ".html"
)

// RuleInfo is the static metadata of a rule, constructed once at startup.
// Message is a fmt template applied to a diagnostic's arguments.
type RuleInfo struct {
	ID          string
	Name        string
	Severity    Severity
	Title       string
	Message     string
	Description string
}

// HelpURI returns the documentation link for the rule.
func (ri RuleInfo) HelpURI() string {
	return helpLinkBase + ri.ID + helpLinkExt
}

// Diagnostic is a single finding. Immutable once created.
type Diagnostic struct {
	RuleID   string
	Severity Severity
	Location syntax.Span
	Message  string
	Args     []string
	HelpURI  string
}

func newDiagnostic(info RuleInfo, node *syntax.Node, args ...string) Diagnostic {
	msg := info.Message
	if len(args) > 0 {
		fmtArgs := make([]any, len(args))
		for i, a := range args {
			fmtArgs[i] = a
		}
		msg = fmt.Sprintf(info.Message, fmtArgs...)
	}
	return Diagnostic{
		RuleID:   info.ID,
		Severity: info.Severity,
		Location: node.Span,
		Message:  msg,
		Args:     args,
		HelpURI:  info.HelpURI(),
	}
}

// sortDiagnostics orders findings by rule, then source position. This is the
// presentation order promised to the host; it also makes runs comparable.
func sortDiagnostics(diags []Diagnostic) {
	sort.SliceStable(diags, func(i, j int) bool {
		a, b := diags[i], diags[j]
		if a.RuleID != b.RuleID {
			return a.RuleID < b.RuleID
		}
		if a.Location.File != b.Location.File {
			return a.Location.File < b.Location.File
		}
		if a.Location.Line != b.Location.Line {
			return a.Location.Line < b.Location.Line
		}
		return a.Location.Column < b.Location.Column
	})
}
