package latex

import "fmt"

// TokenReader wraps an input channel with a peek queue: tokens already
// pulled from the channel but not yet consumed by the logical cursor. The
// normalizer and the parser use it for bounded lookahead and for rewriting
// tokens in place.
//
// Once EndOfContent has been seen (or the channel closed), every subsequent
// peek and read returns EndOfContent indefinitely.
type TokenReader struct {
	in    <-chan Token
	queue []Token
	eof   bool
}

func NewTokenReader(in <-chan Token) *TokenReader {
	return &TokenReader{in: in}
}

// readInternal pulls the next token from the channel, disregarding the queue.
// A closed channel counts as end of content so an abandoned producer can
// never deadlock the consumer.
func (r *TokenReader) readInternal() Token {
	if r.eof {
		return EndOfContent
	}
	tok, ok := <-r.in
	if !ok || tok.Kind == TokenEndOfContent {
		r.eof = true
		return EndOfContent
	}
	return tok
}

// Peek looks at the next token without consuming it. Equivalent to PeekN(0).
func (r *TokenReader) Peek() Token {
	return r.PeekN(0)
}

// PeekN looks at the token n steps away from the cursor.
//
// PeekN must be called with monotonic n: 0, then 1, then 2. Jumping, for
// example PeekN(1) followed by PeekN(3), panics since that is usually a sign
// of a bug.
func (r *TokenReader) PeekN(n int) Token {
	if len(r.queue) == n {
		r.queue = append(r.queue, r.readInternal())
	}
	if len(r.queue) <= n {
		panic(fmt.Sprintf(
			"jump peek detected, this is usually a bug: have %d peeked tokens, this peek: %d",
			len(r.queue), n,
		))
	}
	return r.queue[n]
}

// PeekRange peeks the inclusive range of tokens [start, end] at once.
func (r *TokenReader) PeekRange(start, end int) []Token {
	for n := start; n <= end; n++ {
		r.PeekN(n)
	}
	out := make([]Token, 0, end-start+1)
	for n := start; n <= end; n++ {
		out = append(out, r.queue[n])
	}
	return out
}

// Read consumes and returns the next token.
func (r *TokenReader) Read() Token {
	if len(r.queue) > 0 {
		tok := r.queue[0]
		r.queue = r.queue[1:]
		return tok
	}
	return r.readInternal()
}

// Skip consumes the next token and discards it.
func (r *TokenReader) Skip() {
	_ = r.Read()
}

// Replace removes the already-peeked tokens at the inclusive index range
// [start, end] and inserts the replacement slice in their place. Subsequent
// reads and peeks see the rewritten stream.
//
// The range must have been peeked first: you need to know what you are
// replacing. Replacing unpeeked tokens panics.
func (r *TokenReader) Replace(start, end int, replacement []Token) {
	if len(r.queue) <= end {
		panic(fmt.Sprintf(
			"replace of unpeeked tokens, call PeekN first: queue has %d tokens, replace range [%d, %d]",
			len(r.queue), start, end,
		))
	}
	rewritten := make([]Token, 0, len(r.queue)-(end-start+1)+len(replacement))
	rewritten = append(rewritten, r.queue[:start]...)
	rewritten = append(rewritten, replacement...)
	rewritten = append(rewritten, r.queue[end+1:]...)
	r.queue = rewritten
}
