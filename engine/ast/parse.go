package ast

import "strings"

// ParseLine turns one line of program text into a statement. Blank lines
// yield nil. Lines that match no keyword become *Unknown and keyword lines
// missing their separator become *Malformed, so parsing itself never fails.
func ParseLine(line string, vocab Vocabulary) Statement {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}
	role, ok := vocab.match(line)
	if !ok {
		return &Unknown{Raw: line}
	}
	kw := vocab.Keyword(role)
	rest := strings.TrimSpace(line[len(kw.Word):])
	if role == RolePrint {
		return &Print{Expr: ParseExpr(rest)}
	}

	left, right, found := strings.Cut(rest, kw.Separator)
	if !found {
		return &Malformed{Role: role, Raw: line}
	}
	left, right = strings.TrimSpace(left), strings.TrimSpace(right)
	switch role {
	case RoleAssign:
		return &Assign{Name: left, Value: unquote(right)}
	case RoleConditional:
		return &If{Condition: left, Body: right}
	default:
		return &Loop{Condition: left, Body: right}
	}
}

// Parse parses every non-blank line of source.
func Parse(source string, vocab Vocabulary) Program {
	lines := strings.Split(source, "\n")
	prog := make(Program, 0, len(lines))
	for i, line := range lines {
		if stmt := ParseLine(line, vocab); stmt != nil {
			prog = append(prog, Node{Pos: i + 1, Statement: stmt})
		}
	}
	return prog
}

func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}
