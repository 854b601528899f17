package ast

import (
	"fmt"
	"sort"
	"strings"
)

type Role uint8

const (
	RoleAssign      Role = 1
	RolePrint       Role = 2
	RoleConditional Role = 3
	RoleLoop        Role = 4
)

// roles in dispatch order
var roles = []Role{RoleAssign, RolePrint, RoleConditional, RoleLoop}

func (r Role) String() string {
	switch r {
	case RoleAssign:
		return "assign"
	case RolePrint:
		return "print"
	case RoleConditional:
		return "conditional"
	case RoleLoop:
		return "loop"
	default:
		return fmt.Sprintf("role(%d)", uint8(r))
	}
}

// Keyword is the surface syntax of one role: the leading word of the line
// and, for roles that take two operands, the literal token between them.
type Keyword struct {
	Word      string
	Separator string
}

type Vocabulary struct {
	Name     string
	Keywords map[Role]Keyword
	True     string
}

func (v Vocabulary) Keyword(r Role) Keyword {
	return v.Keywords[r]
}

// match returns the role whose keyword prefixes line. Roles are tried in
// dispatch order and the first hit wins.
func (v Vocabulary) match(line string) (Role, bool) {
	for _, r := range roles {
		kw, ok := v.Keywords[r]
		if !ok || kw.Word == "" {
			continue
		}
		if strings.HasPrefix(line, kw.Word) {
			return r, true
		}
	}
	return 0, false
}

const truthLiteral = "verdadeiro"

var Classic = Vocabulary{
	Name: "classic",
	Keywords: map[Role]Keyword{
		RoleAssign:      {Word: "definir", Separator: " como "},
		RolePrint:       {Word: "mostrar"},
		RoleConditional: {Word: "se", Separator: " então "},
		RoleLoop:        {Word: "enquanto", Separator: " faça "},
	},
	True: truthLiteral,
}

var Musical = Vocabulary{
	Name: "musical",
	Keywords: map[Role]Keyword{
		RoleAssign:      {Word: "compor", Separator: " como "},
		RolePrint:       {Word: "apresentar"},
		RoleConditional: {Word: "harmonia", Separator: " resulta em "},
		RoleLoop:        {Word: "repetir", Separator: " compasso "},
	},
	True: truthLiteral,
}

var vocabularies = map[string]Vocabulary{
	Classic.Name: Classic,
	Musical.Name: Musical,
}

func VocabularyByName(name string) (Vocabulary, error) {
	v, ok := vocabularies[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Vocabulary{}, fmt.Errorf("unknown vocabulary: '%s' (known: %s)", name, strings.Join(VocabularyNames(), ", "))
	}
	return v, nil
}

func VocabularyNames() []string {
	names := make([]string, 0, len(vocabularies))
	for name := range vocabularies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
