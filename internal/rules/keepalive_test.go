package rules

import (
	"context"
	"testing"

	"netlint/internal/analysis"
	"netlint/internal/symbols"
	"netlint/internal/syntax"
)

// interopMethod builds: void Send(Buffer buf) { Native.Frob(buf); ... }
func interopMethod(extra ...*syntax.Node) *syntax.Node {
	stmts := []*syntax.Node{
		exprStmt(call(member(ident("Native"), "Frob"), ident("buf"))),
	}
	stmts = append(stmts, extra...)
	return unit(class("Transport",
		method("Send",
			param("Buffer", "buf"),
			block(stmts...),
		),
	))
}

func TestLifetimeExtension_MissingKeepAlive(t *testing.T) {
	diags := runRule(t, NewLifetimeExtension(), interopMethod())
	if len(diags) != 1 {
		t.Fatalf("Expected 1 diagnostic, got %d", len(diags))
	}
	if len(diags[0].Args) != 1 || diags[0].Args[0] != "buf" {
		t.Errorf("Expected argument \"buf\", got %v", diags[0].Args)
	}
}

func TestLifetimeExtension_KeepAlivePresent(t *testing.T) {
	keepAlive := exprStmt(call(member(ident("GC"), "KeepAlive"), ident("buf")))
	diags := runRule(t, NewLifetimeExtension(), interopMethod(keepAlive))
	if len(diags) != 0 {
		t.Errorf("Expected no diagnostics with GC.KeepAlive, got %d", len(diags))
	}
}

func TestLifetimeExtension_QualifiedKeepAlive(t *testing.T) {
	keepAlive := exprStmt(call(member(member(ident("System"), "GC"), "KeepAlive"), ident("buf")))
	diags := runRule(t, NewLifetimeExtension(), interopMethod(keepAlive))
	if len(diags) != 0 {
		t.Errorf("Expected no diagnostics with System.GC.KeepAlive, got %d", len(diags))
	}
}

func TestLifetimeExtension_AliasedKeepAlive(t *testing.T) {
	// A using-alias for System.GC resolves through the oracle, same as the
	// receiver matching in the collect rule.
	oracle := symbols.NewTable(
		symbols.Symbol{Name: "Collector", FullName: "System.GC", Kind: symbols.KindType},
		symbols.Symbol{Name: "Buffer", FullName: "App.Buffer", Kind: symbols.KindType, ReferenceType: true},
		symbols.Symbol{Name: "Frob", FullName: "Native.Frob", Kind: symbols.KindMethod, Extern: true},
	)
	keepAlive := exprStmt(call(member(ident("Collector"), "KeepAlive"), ident("buf")))

	engine := analysis.NewEngine()
	engine.Register(NewLifetimeExtension())
	diags, err := engine.Analyze(context.Background(), interopMethod(keepAlive), oracle)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if len(diags) != 0 {
		t.Errorf("Expected no diagnostics with an aliased KeepAlive receiver, got %d", len(diags))
	}
}

func TestLifetimeExtension_NoInteropSurface(t *testing.T) {
	root := unit(class("Transport",
		method("Send",
			param("Buffer", "buf"),
			block(
				exprStmt(call(ident("Helper"), ident("buf"))),
			),
		),
	))
	diags := runRule(t, NewLifetimeExtension(), root)
	if len(diags) != 0 {
		t.Errorf("Expected no diagnostics without an interop surface, got %d", len(diags))
	}
}

func TestLifetimeExtension_StringParameterSkipped(t *testing.T) {
	root := unit(class("Transport",
		method("Send",
			param("string", "name"),
			block(
				exprStmt(call(member(ident("Native"), "Frob"), ident("name"))),
			),
		),
	))
	diags := runRule(t, NewLifetimeExtension(), root)
	if len(diags) != 0 {
		t.Errorf("Expected string parameters to be skipped, got %d diagnostics", len(diags))
	}
}

func TestLifetimeExtension_ValueTypeParameterSkipped(t *testing.T) {
	root := unit(class("Transport",
		method("Send",
			param("Point", "p"),
			block(
				exprStmt(call(member(ident("Native"), "Frob"), ident("p"))),
			),
		),
	))
	diags := runRule(t, NewLifetimeExtension(), root)
	if len(diags) != 0 {
		t.Errorf("Expected value-type parameters to be skipped, got %d diagnostics", len(diags))
	}
}

func TestLifetimeExtension_AttributeMarksInterop(t *testing.T) {
	// The attribute alone marks the interop surface; the unsafe usage comes
	// from a fixed block touching the parameter.
	root := unit(class("Transport",
		method("Send",
			attribute("DllImport"),
			param("Buffer", "buf"),
			block(
				syntax.New(syntax.KindFixedStatement, "",
					block(exprStmt(call(ident("Helper"), ident("buf")))),
				),
			),
		),
	))
	diags := runRule(t, NewLifetimeExtension(), root)
	if len(diags) != 1 {
		t.Fatalf("Expected 1 diagnostic, got %d", len(diags))
	}
}

func TestLifetimeExtension_UnsafeBlockUsage(t *testing.T) {
	root := unit(class("Transport",
		method("Send",
			param("Buffer", "buf"),
			block(
				exprStmt(call(member(ident("Native"), "Frob"))),
				syntax.New(syntax.KindUnsafeBlock, "",
					block(exprStmt(ident("buf"))),
				),
			),
		),
	))
	diags := runRule(t, NewLifetimeExtension(), root)
	if len(diags) != 1 {
		t.Fatalf("Expected 1 diagnostic for unsafe-block usage, got %d", len(diags))
	}
}

func TestLifetimeExtension_ParameterNotUsedUnsafely(t *testing.T) {
	// Extern call present, but the parameter never reaches it and never
	// appears in unsafe memory.
	root := unit(class("Transport",
		method("Send",
			param("Buffer", "buf"),
			block(
				exprStmt(call(member(ident("Native"), "Frob"), ident("other"))),
				exprStmt(call(ident("Helper"), ident("buf"))),
			),
		),
	))
	diags := runRule(t, NewLifetimeExtension(), root)
	if len(diags) != 0 {
		t.Errorf("Expected no diagnostics for safe usage, got %d", len(diags))
	}
}
