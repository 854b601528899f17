package ast

import (
	"fmt"
	"strings"
)

// Printer renders statements as program text in its vocabulary. Malformed
// and unknown lines are printed verbatim.
type Printer struct {
	Vocab Vocabulary
}

var _ VisitorString = Printer{}

func (p Printer) VisitAssign(name, value string) string {
	kw := p.Vocab.Keyword(RoleAssign)
	return fmt.Sprintf("%s %s%s\"%s\"", kw.Word, name, kw.Separator, value)
}

func (p Printer) VisitPrint(expr Expr) string {
	return fmt.Sprintf("%s %s", p.Vocab.Keyword(RolePrint).Word, expr.Source())
}

func (p Printer) VisitIf(condition, body string) string {
	return p.twoPart(RoleConditional, condition, body)
}

func (p Printer) VisitLoop(condition, body string) string {
	return p.twoPart(RoleLoop, condition, body)
}

func (p Printer) VisitMalformed(_ Role, raw string) string {
	return raw
}

func (p Printer) VisitUnknown(raw string) string {
	return raw
}

func (p Printer) twoPart(role Role, condition, body string) string {
	kw := p.Vocab.Keyword(role)
	return fmt.Sprintf("%s %s%s%s", kw.Word, condition, kw.Separator, body)
}

// Translate re-renders every statement of source, written in from, using
// the keywords of to. Nested bodies are translated recursively. Blank lines
// are kept so that line numbers do not move. A line whose translation would
// run differently in to, for example an unknown line that happens to start
// with one of to's keywords, fails the whole translation.
func Translate(source string, from, to Vocabulary) (string, error) {
	lines := strings.Split(source, "\n")
	out := make([]string, 0, len(lines))
	tr := translator{from: from, to: to}
	for i, line := range lines {
		stmt := ParseLine(line, from)
		if stmt == nil {
			out = append(out, "")
			continue
		}
		rendered := stmt.AcceptString(tr)
		if !equivalent(stmt, from, ParseLine(rendered, to), to) {
			return "", fmt.Errorf("line %d can not be written in %s without changing what it does: %s",
				i+1, to.Name, strings.TrimSpace(line))
		}
		out = append(out, rendered)
	}
	return strings.Join(out, "\n"), nil
}

type translator struct {
	from, to Vocabulary
}

var _ VisitorString = translator{}

func (t translator) printer() Printer {
	return Printer{Vocab: t.to}
}

func (t translator) VisitAssign(name, value string) string { return t.printer().VisitAssign(name, value) }
func (t translator) VisitPrint(expr Expr) string { return t.printer().VisitPrint(expr) }
func (t translator) VisitUnknown(raw string) string { return raw }

// VisitMalformed swaps the keyword and keeps the rest, so the line is still
// missing its separator in to.
func (t translator) VisitMalformed(role Role, raw string) string {
	return t.to.Keyword(role).Word + strings.TrimPrefix(raw, t.from.Keyword(role).Word)
}

func (t translator) VisitIf(condition, body string) string {
	return t.printer().VisitIf(t.condition(condition), t.body(body))
}

func (t translator) VisitLoop(condition, body string) string {
	return t.printer().VisitLoop(t.condition(condition), t.body(body))
}

func (t translator) condition(condition string) string {
	if condition == t.from.True {
		return t.to.True
	}
	return condition
}

// body is a single line in the source vocabulary.
func (t translator) body(body string) string {
	stmt := ParseLine(body, t.from)
	if stmt == nil {
		return body
	}
	return stmt.AcceptString(t)
}

// equivalent reports whether a, parsed in from, and b, parsed in to, run the
// same way: same statement kind, same operands, same truth of conditions and
// equivalent bodies. Diagnostics only need to agree on their kind.
func equivalent(a Statement, from Vocabulary, b Statement, to Vocabulary) bool {
	switch x := a.(type) {
	case nil:
		return b == nil
	case *Assign:
		y, ok := b.(*Assign)
		return ok && *x == *y
	case *Print:
		y, ok := b.(*Print)
		return ok && sameExpr(x.Expr, y.Expr)
	case *If:
		y, ok := b.(*If)
		return ok && sameBranch(x.Condition, x.Body, from, y.Condition, y.Body, to)
	case *Loop:
		y, ok := b.(*Loop)
		return ok && sameBranch(x.Condition, x.Body, from, y.Condition, y.Body, to)
	case *Malformed:
		y, ok := b.(*Malformed)
		return ok && x.Role == y.Role
	case *Unknown:
		_, ok := b.(*Unknown)
		return ok
	default:
		return false
	}
}

func sameBranch(cond, body string, from Vocabulary, otherCond, otherBody string, to Vocabulary) bool {
	if (cond == from.True) != (otherCond == to.True) {
		return false
	}
	return equivalent(ParseLine(body, from), from, ParseLine(otherBody, to), to)
}

func sameExpr(a, b Expr) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
