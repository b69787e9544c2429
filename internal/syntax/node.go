package syntax

// Kind identifies the syntactic category of a node. The set is closed:
// compilation units arrive pre-parsed, so every node the engine can ever
// see is one of these.
type Kind int

const (
	KindCompilationUnit Kind = iota
	KindClassDecl
	KindInterfaceDecl
	KindEnumDecl
	KindMethodDecl
	KindFieldDecl
	KindLocalDecl
	KindParameter
	KindTypeRef
	KindModifier
	KindBlock
	KindExpressionStatement
	KindInvocation
	KindArgument
	KindMemberAccess
	KindIdentifier
	KindStringLiteral
	KindObjectCreation
	KindThrowStatement
	KindThrowExpression
	KindUsingStatement
	KindUnsafeBlock
	KindFixedStatement
	KindAttribute
	KindDocComment
	KindReturnStatement
)

var kindNames = map[Kind]string{
	KindCompilationUnit:     "CompilationUnit",
	KindClassDecl:           "ClassDecl",
	KindInterfaceDecl:       "InterfaceDecl",
	KindEnumDecl:            "EnumDecl",
	KindMethodDecl:          "MethodDecl",
	KindFieldDecl:           "FieldDecl",
	KindLocalDecl:           "LocalDecl",
	KindParameter:           "Parameter",
	KindTypeRef:             "TypeRef",
	KindModifier:            "Modifier",
	KindBlock:               "Block",
	KindExpressionStatement: "ExpressionStatement",
	KindInvocation:          "Invocation",
	KindArgument:            "Argument",
	KindMemberAccess:        "MemberAccess",
	KindIdentifier:          "Identifier",
	KindStringLiteral:       "StringLiteral",
	KindObjectCreation:      "ObjectCreation",
	KindThrowStatement:      "ThrowStatement",
	KindThrowExpression:     "ThrowExpression",
	KindUsingStatement:      "UsingStatement",
	KindUnsafeBlock:         "UnsafeBlock",
	KindFixedStatement:      "FixedStatement",
	KindAttribute:           "Attribute",
	KindDocComment:          "DocComment",
	KindReturnStatement:     "ReturnStatement",
}

var kindsByName = func() map[string]Kind {
	m := make(map[string]Kind, len(kindNames))
	for k, name := range kindNames {
		m[name] = k
	}
	return m
}()

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// KindFromName maps a serialized kind name back to its Kind.
func KindFromName(name string) (Kind, bool) {
	k, ok := kindsByName[name]
	return k, ok
}

// Span locates a node in its source file. Line and Column are 1-based.
type Span struct {
	File   string
	Line   int
	Column int
}

// Node is a single vertex of an immutable syntax tree. Trees are built once
// per compilation unit (by the loader or by the host) and never mutated
// afterwards; rules only read them.
type Node struct {
	Kind     Kind
	Span     Span
	Text     string // literal text for leaf nodes (identifiers, literals, modifiers)
	Children []*Node
	Parent   *Node // nil for the root
}

// New builds a node and fixes up the parent back-references of its children.
func New(kind Kind, text string, children ...*Node) *Node {
	n := &Node{Kind: kind, Text: text, Children: children}
	for _, c := range children {
		c.Parent = n
	}
	return n
}

// At returns the node with its span set. Intended for builder-style
// construction: syntax.New(...).At(span).
func (n *Node) At(span Span) *Node {
	n.Span = span
	return n
}

// FirstChild returns the first direct child of the given kind, or nil.
func (n *Node) FirstChild(kind Kind) *Node {
	for _, c := range n.Children {
		if c.Kind == kind {
			return c
		}
	}
	return nil
}

// ChildrenOf returns all direct children of the given kind in order.
func (n *Node) ChildrenOf(kind Kind) []*Node {
	var out []*Node
	for _, c := range n.Children {
		if c.Kind == kind {
			out = append(out, c)
		}
	}
	return out
}

// ChildText returns the text of the first direct child of the given kind.
func (n *Node) ChildText(kind Kind) string {
	if c := n.FirstChild(kind); c != nil {
		return c.Text
	}
	return ""
}

// Name returns the declared name of a declaration node: the text of its
// first identifier child.
func (n *Node) Name() string {
	return n.ChildText(KindIdentifier)
}

// Callee returns the invoked expression of an invocation node: its first
// child. Arguments follow as Argument children.
func (n *Node) Callee() *Node {
	if n.Kind != KindInvocation || len(n.Children) == 0 {
		return nil
	}
	first := n.Children[0]
	if first.Kind == KindArgument {
		return nil
	}
	return first
}

// Arguments returns the Argument children of an invocation in order.
func (n *Node) Arguments() []*Node {
	return n.ChildrenOf(KindArgument)
}

// HasModifier reports whether a declaration carries the given modifier
// keyword among its Modifier children.
func (n *Node) HasModifier(keyword string) bool {
	for _, m := range n.ChildrenOf(KindModifier) {
		if m.Text == keyword {
			return true
		}
	}
	return false
}
