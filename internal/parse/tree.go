package parse

// Node is a statement-level element of the typed syntax tree. Blocks and
// decorator wrappers are flattened away, so the children of a definition are
// exactly the statements of its body.
type Node interface {
	Accept(v Visitor)
}

// Visitor dispatches on the concrete node variant.
type Visitor interface {
	VisitClass(n *ClassDef)
	VisitFunction(n *FuncDef)
	VisitAssign(n *Assign)
	VisitOther(n *Other)
}

// ClassDef is a class definition.
type ClassDef struct {
	Name      string
	Docstring string
	StartLine int // 1-based, the line of the class keyword
	EndLine   int
	Body      []Node
}

// FuncDef is a function or method definition.
type FuncDef struct {
	Name      string
	Docstring string
	StartLine int // 1-based, the line of the def keyword
	EndLine   int
	Body      []Node
}

// Assign is a plain assignment statement. Targets holds the names bound by
// simple name targets; tuple, attribute and subscript targets are omitted.
type Assign struct {
	Targets []string
}

// Other is any other syntax with its nested statements.
type Other struct {
	Children []Node
}

func (n *ClassDef) Accept(v Visitor) { v.VisitClass(n) }
func (n *FuncDef) Accept(v Visitor)  { v.VisitFunction(n) }
func (n *Assign) Accept(v Visitor)   { v.VisitAssign(n) }
func (n *Other) Accept(v Visitor)    { v.VisitOther(n) }
