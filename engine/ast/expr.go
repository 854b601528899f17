package ast

import (
	"strings"

	"github.com/samber/lo"
)

type TermKind uint8

const (
	Literal TermKind = 1
	Ident   TermKind = 2
)

// Term is one operand of a `+`-joined expression. For literals Text holds
// the characters between the first and the last one of the source term.
type Term struct {
	Kind TermKind
	Text string
}

type Expr []Term

const concatOp = "+"

// ParseExpr splits text on `+` into terms. A term that starts with a double
// quote and has at least two characters is a literal; its last character is
// dropped whether or not it is a closing quote.
func ParseExpr(text string) Expr {
	parts := lo.Map(strings.Split(text, concatOp), func(p string, _ int) string {
		return strings.TrimSpace(p)
	})
	return lo.Map(parts, func(p string, _ int) Term {
		if len(p) >= 2 && p[0] == '"' {
			return Term{Kind: Literal, Text: p[1 : len(p)-1]}
		}
		return Term{Kind: Ident, Text: p}
	})
}

// Source renders the term back to program text.
func (t Term) Source() string {
	if t.Kind == Literal {
		return `"` + t.Text + `"`
	}
	return t.Text
}

func (e Expr) Source() string {
	return strings.Join(lo.Map(e, func(t Term, _ int) string {
		return t.Source()
	}), " "+concatOp+" ")
}
