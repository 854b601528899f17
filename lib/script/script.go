package script

import (
	"errors"
	"fmt"
	"strings"

	"quarteto/engine/ast"
)

const maxNameLength = 255

var ErrNotFound = errors.New("script not found")

// Script is a stored program. Saving a script under an existing name adds a
// new version; lookups by name return the latest one.
type Script struct {
	ID         uint64 `db:"script_id" json:"id"`
	Name       string `db:"name" json:"name"`
	Vocabulary string `db:"vocabulary" json:"vocabulary"`
	Source     string `db:"source" json:"source"`
	Timestamp  int64  `db:"timestamp" json:"timestamp"`
}

func (s Script) Validate() error {
	name := strings.TrimSpace(s.Name)
	switch {
	case name == "":
		return fmt.Errorf("script name can not be empty")
	case name != s.Name:
		return fmt.Errorf("script name can not start or end with whitespace: '%s'", s.Name)
	case len(s.Name) > maxNameLength:
		return fmt.Errorf("script name longer than %d bytes", maxNameLength)
	}
	if _, err := ast.VocabularyByName(s.Vocabulary); err != nil {
		return err
	}
	return nil
}

// RunRequest asks for a program to be executed. Vocabulary defaults to
// musical when empty.
type RunRequest struct {
	Vocabulary string            `json:"vocabulary"`
	Source     string            `json:"source"`
	Bindings   map[string]string `json:"bindings"`
}

const DefaultVocabulary = "musical"

func (r RunRequest) Vocab() (ast.Vocabulary, error) {
	name := r.Vocabulary
	if name == "" {
		name = DefaultVocabulary
	}
	return ast.VocabularyByName(name)
}
