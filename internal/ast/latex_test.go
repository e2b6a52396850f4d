package ast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLatexRendering(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want string
	}{
		{name: "addition", text: "1+2", want: "1+2"},
		{name: "implicit multiplication", text: "2x", want: "2x"},
		{name: "cdot", text: `2\cdot3`, want: `2\cdot3`},
		{name: "fraction", text: `\frac{1}{2}`, want: `\frac{1}{2}`},
		{name: "sqrt", text: `\sqrt{9}`, want: `\sqrt{9}`},
		{name: "cube root", text: `\sqrt[3]{27}`, want: `\sqrt[3]{27}`},
		{name: "power", text: "x^2", want: "x^{2}"},
		{name: "abs", text: "|x|", want: "|x|"},
		{name: "parenthesis", text: "(1+1)", want: `\left(1+1\right)`},
		{name: "equality", text: "x=2", want: "x=2"},
		{name: "matrix", text: `\begin{bmatrix}1 & 2 \\ 3 & 4\end{bmatrix}`,
			want: `\begin{bmatrix}1 & 2 \\3 & 4\end{bmatrix}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, parseAST(t, tt.text).Latex())
		})
	}
}

// Rendering an AST and parsing it again yields the same tree.
func TestLatexRoundTrip(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"1+2*3",
		"2x^{2}+5xy",
		`\frac{2(1+1)^3+5}{\sqrt{\frac{49}{3}\sqrt[3]{27}}}`,
		`\begin{bmatrix}1 & 2 \\ 3 & 4\end{bmatrix}`,
		"|x|",
		"x=y+1",
	}

	for _, text := range inputs {
		t.Run(text, func(t *testing.T) {
			t.Parallel()

			parsed := parseAST(t, text)
			reparsed := parseAST(t, parsed.Latex())
			require.Equal(t, parsed.Latex(), reparsed.Latex())
		})
	}
}
