package report

import (
	"encoding/json"
	"strings"
	"testing"

	"netlint/internal/analysis"
	"netlint/internal/syntax"
)

func testInfos() []analysis.RuleInfo {
	return []analysis.RuleInfo{
		{ID: "RULE-001", Name: "DoNotForceGC", Severity: analysis.SeverityWarning, Title: "Do not force garbage collection"},
		{ID: "RULE-006", Name: "NoEmbeddedStrings", Severity: analysis.SeverityInfo, Title: "Externalize embedded string literals"},
	}
}

func TestGenerateSARIF(t *testing.T) {
	diags := []analysis.Diagnostic{
		{
			RuleID:   "RULE-001",
			Severity: analysis.SeverityWarning,
			Location: syntax.Span{File: "src/Worker.cs", Line: 12, Column: 9},
			Message:  "Avoid calling GC.Collect explicitly",
		},
	}

	data, err := GenerateSARIF("", "1.0.0", testInfos(), diags)
	if err != nil {
		t.Fatalf("GenerateSARIF failed: %v", err)
	}

	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}
	if doc["version"] != "2.1.0" {
		t.Errorf("Expected SARIF version 2.1.0, got %v", doc["version"])
	}

	runs := doc["runs"].([]any)
	if len(runs) != 1 {
		t.Fatalf("Expected 1 run, got %d", len(runs))
	}
	run := runs[0].(map[string]any)

	results := run["results"].([]any)
	if len(results) != 1 {
		t.Fatalf("Expected 1 result, got %d", len(results))
	}
	result := results[0].(map[string]any)
	if result["ruleId"] != "RULE-001" {
		t.Errorf("Expected ruleId RULE-001, got %v", result["ruleId"])
	}
	if result["level"] != "warning" {
		t.Errorf("Expected level warning, got %v", result["level"])
	}

	driver := run["tool"].(map[string]any)["driver"].(map[string]any)
	rules := driver["rules"].([]any)
	if len(rules) != 1 {
		t.Fatalf("Expected only fired rules in metadata, got %d", len(rules))
	}
	rule := rules[0].(map[string]any)
	if rule["helpUri"] != "https://netlint.dev/rules/RULE-001.html" {
		t.Errorf("Unexpected helpUri %v", rule["helpUri"])
	}
}

func TestGenerateSARIF_NoFindings(t *testing.T) {
	data, err := GenerateSARIF("", "1.0.0", testInfos(), nil)
	if err != nil {
		t.Fatalf("GenerateSARIF failed: %v", err)
	}

	var doc sarifReport
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatal(err)
	}
	if len(doc.Runs[0].Results) != 0 {
		t.Errorf("Expected no results, got %d", len(doc.Runs[0].Results))
	}
	if len(doc.Runs[0].Tool.Driver.Rules) != 0 {
		t.Errorf("Expected no rule metadata, got %d", len(doc.Runs[0].Tool.Driver.Rules))
	}
}

func TestSeverityToLevel(t *testing.T) {
	if severityToLevel(analysis.SeverityError) != "error" {
		t.Error("Expected error level")
	}
	if severityToLevel(analysis.SeverityWarning) != "warning" {
		t.Error("Expected warning level")
	}
	if severityToLevel(analysis.SeverityInfo) != "note" {
		t.Error("Expected note level")
	}
}

func TestRelativeURI(t *testing.T) {
	if got := relativeURI("/proj", "/proj/src/Worker.cs"); got != "src/Worker.cs" {
		t.Errorf("Expected src/Worker.cs, got %q", got)
	}
	if got := relativeURI("", "src/Worker.cs"); got != "src/Worker.cs" {
		t.Errorf("Expected pass-through for relative paths, got %q", got)
	}
}

func TestSummary(t *testing.T) {
	diags := []analysis.Diagnostic{
		{RuleID: "RULE-001", Severity: analysis.SeverityWarning, Location: syntax.Span{File: "a.cs", Line: 1, Column: 2}, Message: "msg"},
		{RuleID: "RULE-006", Severity: analysis.SeverityInfo, Location: syntax.Span{File: "a.cs", Line: 3, Column: 4}, Message: "other"},
	}

	out := Summary(1, diags)
	if !strings.Contains(out, "RULE-001") || !strings.Contains(out, "a.cs:1:2") {
		t.Errorf("Expected findings in summary, got %q", out)
	}
	if !strings.Contains(out, "2 findings (1 warnings, 1 info)") {
		t.Errorf("Expected totals line, got %q", out)
	}

	clean := Summary(3, nil)
	if !strings.Contains(clean, "no findings") {
		t.Errorf("Expected clean summary, got %q", clean)
	}
}
