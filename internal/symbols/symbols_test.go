package symbols

import (
	"testing"

	"netlint/internal/syntax"
)

func testTable() *Table {
	return NewTable(
		Symbol{Name: "GC", FullName: "System.GC", Kind: KindType},
		Symbol{Name: "ResourceType", FullName: "App.ResourceType", Kind: KindType, ReferenceType: true, Capabilities: []string{CapDisposable}},
		Symbol{Name: "Frob", FullName: "Native.Frob", Kind: KindMethod, Extern: true},
	)
}

func TestResolveName(t *testing.T) {
	table := testTable()

	if _, ok := table.ResolveName("GC"); !ok {
		t.Error("Expected short name to resolve")
	}
	if _, ok := table.ResolveName("System.GC"); !ok {
		t.Error("Expected full name to resolve")
	}
	if _, ok := table.ResolveName("Unknown"); ok {
		t.Error("Expected unknown name to fail")
	}

	sym, ok := table.ResolveName("Native.Frob")
	if !ok || !sym.Extern {
		t.Errorf("Expected extern method, got %+v (%v)", sym, ok)
	}
}

func TestResolveType_Explicit(t *testing.T) {
	table := testTable()
	ref := syntax.New(syntax.KindTypeRef, "ResourceType")

	sym, ok := table.ResolveType(ref)
	if !ok {
		t.Fatal("Expected explicit type reference to resolve")
	}
	if !sym.Implements(CapDisposable) {
		t.Error("Expected disposal capability")
	}
}

func TestResolveType_VarInference(t *testing.T) {
	table := testTable()
	ref := syntax.New(syntax.KindTypeRef, "var")
	syntax.New(syntax.KindLocalDecl, "",
		ref,
		syntax.New(syntax.KindIdentifier, "s"),
		syntax.New(syntax.KindObjectCreation, "", syntax.New(syntax.KindTypeRef, "ResourceType")),
	)

	sym, ok := table.ResolveType(ref)
	if !ok {
		t.Fatal("Expected var to infer through the initializer")
	}
	if sym.Name != "ResourceType" {
		t.Errorf("Expected ResourceType, got %s", sym.Name)
	}
}

func TestResolveType_VarWithoutInitializer(t *testing.T) {
	table := testTable()
	ref := syntax.New(syntax.KindTypeRef, "var")
	syntax.New(syntax.KindLocalDecl, "", ref, syntax.New(syntax.KindIdentifier, "s"))

	if _, ok := table.ResolveType(ref); ok {
		t.Error("Expected var without initializer to stay unresolved")
	}
}

func TestResolveType_MethodSymbolRejected(t *testing.T) {
	table := testTable()
	ref := syntax.New(syntax.KindTypeRef, "Frob")

	if _, ok := table.ResolveType(ref); ok {
		t.Error("Expected a method symbol not to resolve as a type")
	}
}

func TestResolveType_NonTypeRefNode(t *testing.T) {
	table := testTable()
	if _, ok := table.ResolveType(syntax.New(syntax.KindIdentifier, "ResourceType")); ok {
		t.Error("Expected non-TypeRef nodes to be rejected")
	}
	if _, ok := table.ResolveType(nil); ok {
		t.Error("Expected nil to be rejected")
	}
}
