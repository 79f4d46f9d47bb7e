// Package strops implements the append-only super-string builder the frame
// emitter uses to accumulate ANSI-escaped output before a single flush.
package strops

import "strings"

// Builder is a rope of small string fragments. Fragments are appended
// cheaply and joined exactly once, by Flush, instead of repeatedly
// reallocating a single growing string.
type Builder struct {
	fragments []string
	size      int
}

// NewBuilder returns an empty Builder, optionally pre-sizing the fragment
// slice to avoid reallocation when the caller knows roughly how many
// strips a frame will contain.
func NewBuilder(hintFragments int) *Builder {
	if hintFragments < 0 {
		hintFragments = 0
	}
	return &Builder{fragments: make([]string, 0, hintFragments)}
}

// Append adds s as the next fragment.
func (b *Builder) Append(s string) {
	if s == "" {
		return
	}
	b.fragments = append(b.fragments, s)
	b.size += len(s)
}

// AppendRune adds a single rune as the next fragment.
func (b *Builder) AppendRune(r rune) {
	b.Append(string(r))
}

// Len returns the total byte length of everything appended so far.
func (b *Builder) Len() int {
	return b.size
}

// Flush joins every fragment into the final string. The Builder is left
// empty and ready to accumulate the next frame.
func (b *Builder) Flush() string {
	out := strings.Join(b.fragments, "")
	b.fragments = b.fragments[:0]
	b.size = 0
	return out
}
