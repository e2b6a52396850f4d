package latex

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func readerOver(tokens ...Token) *TokenReader {
	in := make(chan Token, len(tokens)+1)
	for _, tok := range tokens {
		in <- tok
	}
	close(in)
	return NewTokenReader(in)
}

func TestTokenReaderRead(t *testing.T) {
	t.Parallel()

	reader := readerOver(
		Token{Kind: TokenLeftCurly},
		NumberToken("5"),
		Token{Kind: TokenRightCurly},
	)

	assert.Equal(t, Token{Kind: TokenLeftCurly}, reader.Read())
	assert.Equal(t, NumberToken("5"), reader.Read())
	assert.Equal(t, Token{Kind: TokenRightCurly}, reader.Read())
}

func TestTokenReaderPeekDoesNotConsume(t *testing.T) {
	t.Parallel()

	reader := readerOver(
		Token{Kind: TokenBackslash},
		Token{Kind: TokenLeftCurly},
	)

	assert.Equal(t, Token{Kind: TokenBackslash}, reader.Peek())
	assert.Equal(t, Token{Kind: TokenBackslash}, reader.Read())
	assert.Equal(t, Token{Kind: TokenLeftCurly}, reader.Peek())
	assert.Equal(t, Token{Kind: TokenLeftCurly}, reader.Peek())
	assert.Equal(t, Token{Kind: TokenLeftCurly}, reader.Read())
}

func TestTokenReaderPeekNThenReadReturnsSameTokens(t *testing.T) {
	t.Parallel()

	tokens := []Token{
		Token{Kind: TokenBackslash},
		IdentifierToken("sqrt"),
		Token{Kind: TokenLeftCurly},
		NumberToken("9"),
		Token{Kind: TokenRightCurly},
	}
	reader := readerOver(tokens...)

	for n, want := range tokens {
		assert.Equal(t, want, reader.PeekN(n))
	}
	for _, want := range tokens {
		assert.Equal(t, want, reader.Read())
	}
}

func TestTokenReaderEndOfContentForever(t *testing.T) {
	t.Parallel()

	reader := readerOver(Token{Kind: TokenPlus}, EndOfContent)

	assert.Equal(t, Token{Kind: TokenPlus}, reader.Read())
	assert.Equal(t, EndOfContent, reader.Read())
	for range 5 {
		assert.Equal(t, EndOfContent, reader.Peek())
	}
	for range 10 {
		assert.Equal(t, EndOfContent, reader.Read())
	}
	for i := range 10 {
		assert.Equal(t, EndOfContent, reader.PeekN(i))
	}
}

func TestTokenReaderClosedChannelCountsAsEnd(t *testing.T) {
	t.Parallel()

	reader := readerOver(Token{Kind: TokenPlus})

	assert.Equal(t, Token{Kind: TokenPlus}, reader.Read())
	assert.Equal(t, EndOfContent, reader.Read())
	assert.Equal(t, EndOfContent, reader.Peek())
}

func TestTokenReaderJumpPeekPanics(t *testing.T) {
	t.Parallel()

	reader := readerOver(
		Token{Kind: TokenBackslash},
		Token{Kind: TokenLeftCurly},
		Token{Kind: TokenRightCurly},
	)

	assert.Equal(t, Token{Kind: TokenBackslash}, reader.PeekN(0))
	assert.Panics(t, func() {
		reader.PeekN(2)
	})
}

func TestTokenReaderReplace(t *testing.T) {
	t.Parallel()

	reader := readerOver(
		Token{Kind: TokenLeftBracket},
		Token{Kind: TokenBackslash},
		IdentifierToken("test"),
		Token{Kind: TokenRightCurly},
		EndOfContent,
	)

	assert.Equal(t, Token{Kind: TokenLeftBracket}, reader.Read())
	assert.Equal(t, Token{Kind: TokenBackslash}, reader.PeekN(0))
	assert.Equal(t, IdentifierToken("test"), reader.PeekN(1))

	reader.Replace(0, 1, []Token{{Kind: TokenPlus}, {Kind: TokenMinus}})

	assert.Equal(t, Token{Kind: TokenPlus}, reader.Read())
	assert.Equal(t, Token{Kind: TokenMinus}, reader.Read())
	assert.Equal(t, Token{Kind: TokenRightCurly}, reader.Read())
	assert.Equal(t, EndOfContent, reader.Read())
}

func TestTokenReaderReplaceWithNothing(t *testing.T) {
	t.Parallel()

	reader := readerOver(
		Token{Kind: TokenBackslash},
		IdentifierToken("left"),
		Token{Kind: TokenLeftParen},
	)

	reader.PeekRange(0, 1)
	reader.Replace(0, 1, nil)
	assert.Equal(t, Token{Kind: TokenLeftParen}, reader.Read())
}

func TestTokenReaderReplaceWithoutPeekingPanics(t *testing.T) {
	t.Parallel()

	reader := readerOver(
		Token{Kind: TokenBackslash},
		IdentifierToken("left"),
	)

	assert.Panics(t, func() {
		reader.Replace(0, 1, []Token{{Kind: TokenAsterisk}})
	})
}
