package parse

import (
	"strings"

	"github.com/phobologic/namecheck/internal/model"
)

// Entities walks the unit breadth-first and returns every class definition
// (at any depth) and every function that is not a direct member of a class
// body. Methods are never reported as functions.
func Entities(u *SourceUnit) (classes, functions []model.Entity) {
	c := &collector{unit: u}
	c.enqueue(u.Body, false)
	for len(c.queue) > 0 {
		item := c.queue[0]
		c.queue = c.queue[1:]
		c.inClass = item.inClass
		item.node.Accept(c)
	}
	return c.classes, c.functions
}

type queued struct {
	node    Node
	inClass bool
}

// collector carries the "directly inside a class body" flag for the node being
// visited so method membership is decided during the walk itself.
type collector struct {
	unit      *SourceUnit
	queue     []queued
	inClass   bool
	classes   []model.Entity
	functions []model.Entity
}

func (c *collector) enqueue(nodes []Node, inClass bool) {
	for _, n := range nodes {
		c.queue = append(c.queue, queued{node: n, inClass: inClass})
	}
}

func (c *collector) VisitClass(n *ClassDef) {
	var m members
	for _, child := range n.Body {
		child.Accept(&m)
	}
	c.classes = append(c.classes, model.Entity{
		Name:       n.Name,
		Kind:       model.Class,
		Docstring:  n.Docstring,
		Line:       n.StartLine,
		Methods:    m.methods,
		Attributes: m.attributes,
	})
	c.enqueue(n.Body, true)
}

func (c *collector) VisitFunction(n *FuncDef) {
	if !c.inClass {
		c.functions = append(c.functions, model.Entity{
			Name:      n.Name,
			Kind:      model.Function,
			Docstring: n.Docstring,
			Line:      n.StartLine,
			Body:      strings.Join(c.unit.LineRange(n.StartLine, n.EndLine), " "),
		})
	}
	c.enqueue(n.Body, false)
}

func (c *collector) VisitAssign(*Assign) {}

func (c *collector) VisitOther(n *Other) {
	c.enqueue(n.Children, false)
}

// members gathers the direct methods and assigned attributes of a class body.
type members struct {
	methods    []string
	attributes []string
}

func (m *members) VisitClass(*ClassDef) {}

func (m *members) VisitFunction(n *FuncDef) {
	m.methods = append(m.methods, n.Name)
}

func (m *members) VisitAssign(n *Assign) {
	m.attributes = append(m.attributes, n.Targets...)
}

func (m *members) VisitOther(*Other) {}
