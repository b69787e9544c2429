package history

import (
	"path/filepath"
	"testing"

	"netlint/internal/analysis"
	"netlint/internal/syntax"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestRecordAndQueryRuns(t *testing.T) {
	store := openTestStore(t)

	diags := []analysis.Diagnostic{
		{RuleID: "RULE-001", Severity: analysis.SeverityWarning, Location: syntax.Span{File: "a.cs"}},
		{RuleID: "RULE-003", Severity: analysis.SeverityWarning, Location: syntax.Span{File: "a.cs"}},
		{RuleID: "RULE-003", Severity: analysis.SeverityWarning, Location: syntax.Span{File: "b.cs"}},
		{RuleID: "RULE-006", Severity: analysis.SeverityInfo, Location: syntax.Span{File: "b.cs"}},
	}

	id, err := store.RecordRun(2, diags)
	if err != nil {
		t.Fatalf("RecordRun failed: %v", err)
	}
	if id == "" {
		t.Fatal("Expected a generated run id")
	}

	runs, err := store.RecentRuns(10)
	if err != nil {
		t.Fatalf("RecentRuns failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("Expected 1 run, got %d", len(runs))
	}

	run := runs[0]
	if run.ID != id {
		t.Errorf("Expected run id %s, got %s", id, run.ID)
	}
	if run.UnitCount != 2 {
		t.Errorf("Expected 2 units, got %d", run.UnitCount)
	}
	if run.Diagnostics != 4 || run.Warnings != 3 || run.Infos != 1 {
		t.Errorf("Expected 4/3/1 counts, got %d/%d/%d", run.Diagnostics, run.Warnings, run.Infos)
	}
	if run.ByRule["RULE-003"] != 2 {
		t.Errorf("Expected 2 RULE-003 findings, got %d", run.ByRule["RULE-003"])
	}
}

func TestRecentRuns_Order(t *testing.T) {
	store := openTestStore(t)

	var ids []string
	for i := 0; i < 3; i++ {
		id, err := store.RecordRun(1, nil)
		if err != nil {
			t.Fatal(err)
		}
		ids = append(ids, id)
	}

	runs, err := store.RecentRuns(2)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 2 {
		t.Fatalf("Expected limit to cap results at 2, got %d", len(runs))
	}
}

func TestEnsureSchema_Idempotent(t *testing.T) {
	store := openTestStore(t)

	if err := EnsureSchema(store.db); err != nil {
		t.Errorf("Expected re-running migrations to be a no-op, got %v", err)
	}
}
