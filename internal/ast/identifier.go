package ast

import (
	"strings"

	"github.com/taldoflemis/lateq/internal/latex"
)

// MathIdentifier names a variable or a function. The canonical form is the
// token sequence the user wrote: `\pi` is [backslash, ident("pi")] while `x`
// is [ident("x")]. Identifiers are compared structurally; Key returns a
// string usable as a map key with the same structural semantics.
type MathIdentifier struct {
	Tokens []latex.Token
}

// NewMathIdentifier builds an identifier from an explicit token sequence.
func NewMathIdentifier(tokens ...latex.Token) MathIdentifier {
	return MathIdentifier{Tokens: tokens}
}

// IdentifierFromName builds the identifier for a plain name such as "x".
// No LaTeX is parsed here.
func IdentifierFromName(name string) MathIdentifier {
	return MathIdentifier{Tokens: []latex.Token{latex.IdentifierToken(name)}}
}

// IdentifierFromCommand builds the identifier for a backslash command such
// as `\pi`, passed without the backslash.
func IdentifierFromCommand(name string) MathIdentifier {
	return MathIdentifier{Tokens: []latex.Token{
		{Kind: latex.TokenBackslash},
		latex.IdentifierToken(name),
	}}
}

// Key returns the structural key of the identifier, its LaTeX spelling.
func (m MathIdentifier) Key() string {
	var b strings.Builder
	for _, tok := range m.Tokens {
		b.WriteString(tok.String())
	}
	return b.String()
}

// Equal reports structural equality.
func (m MathIdentifier) Equal(other MathIdentifier) bool {
	if len(m.Tokens) != len(other.Tokens) {
		return false
	}
	for i, tok := range m.Tokens {
		if tok != other.Tokens[i] {
			return false
		}
	}
	return true
}

// Latex renders the identifier back to LaTeX.
func (m MathIdentifier) Latex() string {
	return m.Key()
}
