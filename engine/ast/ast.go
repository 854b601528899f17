package ast

import "fmt"

type Visitor interface {
	VisitAssign(name, value string)
	VisitPrint(expr Expr)
	VisitIf(condition, body string)
	VisitLoop(condition, body string)
	VisitMalformed(role Role, raw string)
	VisitUnknown(raw string)
}

type VisitorString interface {
	VisitAssign(name, value string) string
	VisitPrint(expr Expr) string
	VisitIf(condition, body string) string
	VisitLoop(condition, body string) string
	VisitMalformed(role Role, raw string) string
	VisitUnknown(raw string) string
}

type Statement interface {
	Accept(v Visitor)
	AcceptString(v VisitorString) string
}

var _ Statement = (*Assign)(nil)
var _ Statement = (*Print)(nil)
var _ Statement = (*If)(nil)
var _ Statement = (*Loop)(nil)
var _ Statement = (*Malformed)(nil)
var _ Statement = (*Unknown)(nil)

// Assign binds Name to Value. Value is already unquoted and is never
// evaluated as an expression.
type Assign struct {
	Name  string
	Value string
}

type Print struct {
	Expr Expr
}

// If runs Body, an unparsed single line, when Condition is the truth literal.
type If struct {
	Condition string
	Body      string
}

// Loop has the same shape as If. Its body runs at most once.
type Loop struct {
	Condition string
	Body      string
}

// Malformed is a line whose keyword matched but whose separator is missing.
type Malformed struct {
	Role Role
	Raw  string
}

type Unknown struct {
	Raw string
}

func (a *Assign) Accept(v Visitor) { v.VisitAssign(a.Name, a.Value) }
func (a *Assign) AcceptString(v VisitorString) string { return v.VisitAssign(a.Name, a.Value) }
func (p *Print) Accept(v Visitor) { v.VisitPrint(p.Expr) }
func (p *Print) AcceptString(v VisitorString) string { return v.VisitPrint(p.Expr) }
func (i *If) Accept(v Visitor) { v.VisitIf(i.Condition, i.Body) }
func (i *If) AcceptString(v VisitorString) string { return v.VisitIf(i.Condition, i.Body) }
func (l *Loop) Accept(v Visitor) { v.VisitLoop(l.Condition, l.Body) }
func (l *Loop) AcceptString(v VisitorString) string { return v.VisitLoop(l.Condition, l.Body) }
func (m *Malformed) Accept(v Visitor) { v.VisitMalformed(m.Role, m.Raw) }
func (m *Malformed) AcceptString(v VisitorString) string { return v.VisitMalformed(m.Role, m.Raw) }
func (u *Unknown) Accept(v Visitor) { v.VisitUnknown(u.Raw) }
func (u *Unknown) AcceptString(v VisitorString) string { return v.VisitUnknown(u.Raw) }

// Node is a statement together with its 1-based line number in the source
// it was parsed from.
type Node struct {
	Pos int
	Statement
}

type Program []Node

func (n Node) String() string {
	return fmt.Sprintf("%d: %T", n.Pos, n.Statement)
}
