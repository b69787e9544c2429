package symbols

import (
	"netlint/internal/syntax"
)

// Capability names used by the rule catalogue.
const (
	CapDisposable = "IDisposable"
)

// Well-known runtime types.
const (
	RuntimeGC = "System.GC"
)

// SymbolKind distinguishes the flavors of resolved symbols.
type SymbolKind int

const (
	KindType SymbolKind = iota
	KindMethod
	KindField
)

// Symbol is the resolved identity of a name or type reference.
type Symbol struct {
	Name          string
	FullName      string
	Kind          SymbolKind
	Extern        bool     // method implemented outside the managed runtime
	ReferenceType bool     // type lives on the heap (classes, not structs)
	Capabilities  []string // interface names the type implements, transitively
}

// Implements reports whether the symbol's type implements the named
// capability.
func (s Symbol) Implements(capability string) bool {
	for _, c := range s.Capabilities {
		if c == capability {
			return true
		}
	}
	return false
}

// Oracle answers symbol questions for one compilation unit. It is read-only
// and safe for concurrent use. A false second return value means the name
// could not be resolved; callers must skip the candidate rather than guess.
type Oracle interface {
	// ResolveName resolves a simple or dotted name to its symbol.
	ResolveName(name string) (Symbol, bool)
	// ResolveType resolves a type-reference node to its declared type,
	// inferring through `var` when the declaration has an object-creation
	// initializer.
	ResolveType(ref *syntax.Node) (Symbol, bool)
}

// Table is a map-backed Oracle. The loader populates one per compilation
// unit from the serialized symbol section; tests build them directly.
type Table struct {
	byName map[string]Symbol
}

// NewTable builds a Table indexing every symbol by both short and full name.
// Full names win on short-name collisions encountered later.
func NewTable(syms ...Symbol) *Table {
	t := &Table{byName: make(map[string]Symbol, len(syms)*2)}
	for _, s := range syms {
		t.Add(s)
	}
	return t
}

func (t *Table) Add(s Symbol) {
	if s.FullName != "" {
		t.byName[s.FullName] = s
	}
	if s.Name != "" {
		if _, taken := t.byName[s.Name]; !taken {
			t.byName[s.Name] = s
		}
	}
}

func (t *Table) ResolveName(name string) (Symbol, bool) {
	s, ok := t.byName[name]
	return s, ok
}

func (t *Table) ResolveType(ref *syntax.Node) (Symbol, bool) {
	if ref == nil || ref.Kind != syntax.KindTypeRef {
		return Symbol{}, false
	}

	name := ref.Text
	if name == "var" {
		// Inferred declaration: take the type from the initializer's
		// object creation, when there is one.
		decl := ref.Parent
		if decl == nil {
			return Symbol{}, false
		}
		creation := decl.FirstChild(syntax.KindObjectCreation)
		if creation == nil {
			return Symbol{}, false
		}
		name = creation.ChildText(syntax.KindTypeRef)
		if name == "" {
			return Symbol{}, false
		}
	}

	s, ok := t.byName[name]
	if !ok || s.Kind != KindType {
		return Symbol{}, false
	}
	return s, true
}
