// Package picker chooses one of n canned strings.
package picker

import (
	"math/rand/v2"
	"sync"
)

// Picker returns an index in [0, n). n is always positive.
type Picker interface {
	Pick(n int) int
}

// Random picks uniformly using the shared math/rand/v2 source.
type Random struct{}

func (Random) Pick(n int) int { return rand.IntN(n) }

// Sequence replays fixed indices in a loop, each reduced modulo n.
// An empty Sequence always picks 0.
type Sequence struct {
	mu   sync.Mutex
	seq  []int
	next int
}

func NewSequence(indices ...int) *Sequence {
	return &Sequence{seq: indices}
}

func (s *Sequence) Pick(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.seq) == 0 {
		return 0
	}
	v := s.seq[s.next%len(s.seq)]
	s.next++
	v %= n
	if v < 0 {
		v += n
	}
	return v
}

// Choose returns one of options using p. It returns "" for no options.
func Choose(p Picker, options []string) string {
	if len(options) == 0 {
		return ""
	}
	return options[p.Pick(len(options))]
}
