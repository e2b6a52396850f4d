package interfaces

import "context"

// DefinitionKind tells a stored variable apart from a stored function.
type DefinitionKind string

const (
	DefinitionKindVariable DefinitionKind = "variable"
	DefinitionKindFunction DefinitionKind = "function"
)

// Definition is a calculator binding in its persistable form: the LaTeX of
// the defining statement.
type Definition struct {
	Name  string
	Kind  DefinitionKind
	Latex string
}

type DefinitionStore interface {
	SaveDefinition(ctx context.Context, def Definition) error
	ListDefinitions(ctx context.Context) ([]Definition, error)
}
