package resource

// Type tells materialized resources apart without a type switch on every
// concrete implementation.
type Type uint8

const (
	DBConnection Type = 1
	ProgramCache Type = 2
)

// Config describes a resource that has not been opened yet. Any setup the
// resource needs happens in Materialize.
type Config interface {
	Materialize() (Resource, error)
}

type Resource interface {
	Close() error
	Type() Type
}
