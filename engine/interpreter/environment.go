package interpreter

import (
	"sort"

	"github.com/samber/lo"
	"github.com/samber/mo"
)

// Env is the variable mapping of a run. Nested bodies share the Env of the
// line that runs them, so their assignments outlive them. An Env is not
// safe for concurrent use.
type Env struct {
	table map[string]string
}

func NewEnv() *Env {
	return &Env{table: make(map[string]string)}
}

// FromMap returns an Env seeded with a copy of bindings.
func FromMap(bindings map[string]string) *Env {
	e := NewEnv()
	for k, v := range bindings {
		e.table[k] = v
	}
	return e
}

func (e *Env) Set(name, value string) {
	e.table[name] = value
}

func (e *Env) Lookup(name string) mo.Option[string] {
	if v, ok := e.table[name]; ok {
		return mo.Some(v)
	}
	return mo.None[string]()
}

// Resolve returns the value bound to name, or name itself when unbound.
func (e *Env) Resolve(name string) string {
	return e.Lookup(name).OrElse(name)
}

func (e *Env) Len() int {
	return len(e.table)
}

// Names returns the bound names in sorted order.
func (e *Env) Names() []string {
	names := lo.Keys(e.table)
	sort.Strings(names)
	return names
}

// Bindings returns a copy of the mapping.
func (e *Env) Bindings() map[string]string {
	ret := make(map[string]string, len(e.table))
	for k, v := range e.table {
		ret[k] = v
	}
	return ret
}
