// Package sseq holds structural sequences: the integer-coded, read-only
// representation of an RNA secondary structure that the aligner consumes.
package sseq

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrNonPositiveCode is returned when a code is zero or negative.
var ErrNonPositiveCode = errors.New("structural codes must be positive")

// Sequence is an immutable structural sequence.
type Sequence struct {
	name  string
	codes []int
}

// New builds a sequence from codes. The slice is copied.
func New(codes ...int) (*Sequence, error) {
	return NewNamed("", codes...)
}

// NewNamed is like New and attaches a display name.
func NewNamed(name string, codes ...int) (*Sequence, error) {
	for i, c := range codes {
		if c < 1 {
			return nil, fmt.Errorf("code %d at position %d: %w", c, i+1, ErrNonPositiveCode)
		}
	}
	return &Sequence{name: name, codes: append([]int(nil), codes...)}, nil
}

// MustNew is like New but panics on error.
// Use only in tests or with literal codes.
func MustNew(codes ...int) *Sequence {
	s, err := New(codes...)
	if err != nil {
		panic(err)
	}
	return s
}

// Name returns the display name, possibly empty.
func (s *Sequence) Name() string { return s.name }

// Len returns the number of codes.
func (s *Sequence) Len() int { return len(s.codes) }

// At returns the code at 1-based position i.
// It panics if i is outside 1..Len().
func (s *Sequence) At(i int) int { return s.codes[i-1] }

// Codes returns a copy of the codes.
func (s *Sequence) Codes() []int { return append([]int(nil), s.codes...) }

// FirstViolation returns the first 1-based position k whose code exceeds
// 2k-1. ok is false when the sequence is admissible.
func (s *Sequence) FirstViolation() (pos int, ok bool) {
	for i, c := range s.codes {
		if c > 2*(i+1)-1 {
			return i + 1, true
		}
	}
	return 0, false
}

// Admissible reports whether every code c at position k satisfies c <= 2k-1.
func (s *Sequence) Admissible() bool {
	_, bad := s.FirstViolation()
	return !bad
}

// String renders the codes separated by ", ".
func (s *Sequence) String() string {
	parts := make([]string, len(s.codes))
	for i, c := range s.codes {
		parts[i] = strconv.Itoa(c)
	}
	return strings.Join(parts, ", ")
}
