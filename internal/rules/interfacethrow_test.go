package rules

import (
	"testing"

	"netlint/internal/syntax"
)

func iface(name string, members ...*syntax.Node) *syntax.Node {
	all := append([]*syntax.Node{ident(name)}, members...)
	return syntax.New(syntax.KindInterfaceDecl, "", all...)
}

func docComment(text string) *syntax.Node {
	return syntax.New(syntax.KindDocComment, text)
}

func TestInterfaceThrows_ThrowStatement(t *testing.T) {
	root := unit(iface("IParser",
		method("Parse", block(
			syntax.New(syntax.KindThrowStatement, ""),
		)),
	))
	diags := runRule(t, NewInterfaceThrows(), root)
	if len(diags) != 1 {
		t.Fatalf("Expected 1 diagnostic, got %d", len(diags))
	}
	if len(diags[0].Args) != 1 || diags[0].Args[0] != "IParser.Parse" {
		t.Errorf("Expected argument \"IParser.Parse\", got %v", diags[0].Args)
	}
}

func TestInterfaceThrows_ThrowExpression(t *testing.T) {
	root := unit(iface("IParser",
		method("Parse",
			syntax.New(syntax.KindThrowExpression, ""),
		),
	))
	diags := runRule(t, NewInterfaceThrows(), root)
	if len(diags) != 1 {
		t.Fatalf("Expected 1 diagnostic for an expression-bodied throw, got %d", len(diags))
	}
}

func TestInterfaceThrows_ExceptionDocTag(t *testing.T) {
	root := unit(iface("IParser",
		method("Parse",
			docComment(`<summary>Parses.</summary><exception cref="FormatException">bad input</exception>`),
			block(),
		),
	))
	diags := runRule(t, NewInterfaceThrows(), root)
	if len(diags) != 1 {
		t.Fatalf("Expected 1 diagnostic for a documented exception, got %d", len(diags))
	}
}

func TestInterfaceThrows_CleanInterfaceMethod(t *testing.T) {
	root := unit(iface("IParser",
		method("Parse",
			docComment("<summary>Parses.</summary>"),
			block(),
		),
	))
	diags := runRule(t, NewInterfaceThrows(), root)
	if len(diags) != 0 {
		t.Errorf("Expected no diagnostics, got %d", len(diags))
	}
}

func TestInterfaceThrows_ClassMethodIgnored(t *testing.T) {
	root := unit(class("Parser",
		method("Parse", block(
			syntax.New(syntax.KindThrowStatement, ""),
		)),
	))
	diags := runRule(t, NewInterfaceThrows(), root)
	if len(diags) != 0 {
		t.Errorf("Expected class methods to be ignored, got %d diagnostics", len(diags))
	}
}
