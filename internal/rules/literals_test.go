package rules

import (
	"testing"

	"netlint/internal/syntax"
)

func literalInMethod(className, methodName string, lit *syntax.Node, extras ...*syntax.Node) *syntax.Node {
	methodChildren := append(extras, block(exprStmt(lit)))
	return unit(class(className, method(methodName, methodChildren...)))
}

func TestEmbeddedStrings_Flagged(t *testing.T) {
	const text = "Unexpected failure occurred"
	root := literalInMethod("Worker", "Run", strLit(text))
	diags := runRule(t, NewEmbeddedStrings(DefaultLiteralSettings()), root)
	if len(diags) != 1 {
		t.Fatalf("Expected 1 diagnostic, got %d", len(diags))
	}
	if len(diags[0].Args) != 1 || diags[0].Args[0] != text {
		t.Errorf("Expected argument %q, got %v", text, diags[0].Args)
	}
}

func TestEmbeddedStrings_ShortLiteralSuppressed(t *testing.T) {
	root := literalInMethod("Worker", "Run", strLit("ok"))
	diags := runRule(t, NewEmbeddedStrings(DefaultLiteralSettings()), root)
	if len(diags) != 0 {
		t.Errorf("Expected short literals to be suppressed, got %d diagnostics", len(diags))
	}
}

func TestEmbeddedStrings_AllowListSuppressed(t *testing.T) {
	for _, v := range []string{"", " ", ",", ".", `\n`, "\n", "`"} {
		root := literalInMethod("Worker", "Run", strLit(v))
		diags := runRule(t, NewEmbeddedStrings(DefaultLiteralSettings()), root)
		if len(diags) != 0 {
			t.Errorf("Expected %q to be allow-listed, got %d diagnostics", v, len(diags))
		}
	}
}

func TestEmbeddedStrings_AttributeArgumentSuppressed(t *testing.T) {
	attr := syntax.New(syntax.KindAttribute, "",
		ident("Description"),
		arg(strLit("Unexpected failure occurred")),
	)
	root := unit(class("Worker", method("Run", attr, block())))
	diags := runRule(t, NewEmbeddedStrings(DefaultLiteralSettings()), root)
	if len(diags) != 0 {
		t.Errorf("Expected attribute literals to be suppressed, got %d diagnostics", len(diags))
	}
}

func TestEmbeddedStrings_DocCommentSuppressed(t *testing.T) {
	doc := syntax.New(syntax.KindDocComment, "",
		strLit("Unexpected failure occurred"),
	)
	root := unit(class("Worker", method("Run", doc, block())))
	diags := runRule(t, NewEmbeddedStrings(DefaultLiteralSettings()), root)
	if len(diags) != 0 {
		t.Errorf("Expected doc-comment literals to be suppressed, got %d diagnostics", len(diags))
	}
}

func TestEmbeddedStrings_TestClassSuppressed(t *testing.T) {
	root := literalInMethod("UserTests", "Run", strLit("Unexpected failure occurred"))
	diags := runRule(t, NewEmbeddedStrings(DefaultLiteralSettings()), root)
	if len(diags) != 0 {
		t.Errorf("Expected literals inside test classes to be suppressed, got %d diagnostics", len(diags))
	}
}

func TestEmbeddedStrings_FactAttributeSuppressed(t *testing.T) {
	root := literalInMethod("Worker", "Run", strLit("Unexpected failure occurred"), attribute("Fact"))
	diags := runRule(t, NewEmbeddedStrings(DefaultLiteralSettings()), root)
	if len(diags) != 0 {
		t.Errorf("Expected literals under [Fact] methods to be suppressed, got %d diagnostics", len(diags))
	}
}

func TestEmbeddedStrings_CustomMinimumLength(t *testing.T) {
	settings := DefaultLiteralSettings()
	settings.MinimumLength = 30
	root := literalInMethod("Worker", "Run", strLit("Unexpected failure occurred"))
	diags := runRule(t, NewEmbeddedStrings(settings), root)
	if len(diags) != 0 {
		t.Errorf("Expected literal below custom minimum length to be suppressed, got %d diagnostics", len(diags))
	}
}

func TestEmbeddedStrings_RuneLength(t *testing.T) {
	// Two runes, four bytes: still below the default minimum of three.
	root := literalInMethod("Worker", "Run", strLit("éé"))
	diags := runRule(t, NewEmbeddedStrings(DefaultLiteralSettings()), root)
	if len(diags) != 0 {
		t.Errorf("Expected length to be counted in runes, got %d diagnostics", len(diags))
	}
}
