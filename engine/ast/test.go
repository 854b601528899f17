package ast

var TestExamples []Statement

func init() {
	// This should not contain duplicates.
	// Used in ast_test.go to check that printing and re-parsing
	// a statement gives back the same statement.
	TestExamples = []Statement{
		&Assign{Name: "x", Value: "hello"},
		&Assign{Name: "nome", Value: ""},
		&Assign{Name: "q", Value: `a"b`},
		&Print{Expr: Expr{{Kind: Literal, Text: "a"}, {Kind: Ident, Text: "b"}}},
		&Print{Expr: Expr{{Kind: Ident, Text: "foo"}}},
		&Print{Expr: Expr{{Kind: Literal, Text: ""}}},
		&If{Condition: "verdadeiro", Body: "x"},
		&If{Condition: "falso", Body: "y z"},
		&Loop{Condition: "verdadeiro", Body: "x"},
	}
}
