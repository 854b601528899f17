package interpreter

import (
	"encoding/json"
	"fmt"
)

type DiagnosticKind uint8

const (
	// SyntaxError: the line starts with a keyword but lacks its separator.
	SyntaxError DiagnosticKind = 1
	// UnrecognizedCommand: the line starts with no known keyword.
	UnrecognizedCommand DiagnosticKind = 2
)

func (k DiagnosticKind) String() string {
	switch k {
	case SyntaxError:
		return "syntax_error"
	case UnrecognizedCommand:
		return "unrecognized_command"
	default:
		return fmt.Sprintf("diagnostic(%d)", uint8(k))
	}
}

func (k DiagnosticKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

func (k *DiagnosticKind) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	switch name {
	case SyntaxError.String():
		*k = SyntaxError
	case UnrecognizedCommand.String():
		*k = UnrecognizedCommand
	default:
		return fmt.Errorf("unknown diagnostic kind: '%s'", name)
	}
	return nil
}

// Diagnostic reports a skipped line. Pos is the line number in the top level
// program; lines inside a conditional or loop body report the position of
// the line that holds the body.
type Diagnostic struct {
	Kind DiagnosticKind `json:"kind"`
	Pos  int            `json:"pos"`
	Line string         `json:"line"`
}

func (d Diagnostic) String() string {
	switch d.Kind {
	case SyntaxError:
		return fmt.Sprintf("Erro de sintaxe na linha: %s", d.Line)
	case UnrecognizedCommand:
		return fmt.Sprintf("Comando não foi reconhecido: %s", d.Line)
	default:
		return fmt.Sprintf("%s: %s", d.Kind, d.Line)
	}
}
