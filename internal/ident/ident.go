// Package ident provides id generation behind a small interface so tests can
// supply deterministic ids.
package ident

import (
	"fmt"

	"github.com/google/uuid"
)

// Generator produces unique ids for habits and completion logs.
type Generator interface {
	NewID() string
}

// UUID is the production generator.
type UUID struct{}

func (UUID) NewID() string {
	return uuid.New().String()
}

// Sequence yields predictable ids ("<prefix>-1", "<prefix>-2", ...) for tests.
type Sequence struct {
	Prefix string
	n      int
}

func (s *Sequence) NewID() string {
	s.n++
	return fmt.Sprintf("%s-%d", s.Prefix, s.n)
}
