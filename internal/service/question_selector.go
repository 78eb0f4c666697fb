package service

import (
	"math/rand"
	"sort"
	"sync"
	"time"
)

// Rand is the source of randomness used to pick questions.
type Rand interface {
	Intn(n int) int
}

// lockedRand makes *rand.Rand safe for concurrent users.
type lockedRand struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRand returns a clock-seeded source safe for concurrent use.
func NewRand() Rand {
	return &lockedRand{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

func (r *lockedRand) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Intn(n)
}

// QuestionSelector picks the next question of a category without repeats.
type QuestionSelector struct {
	rng Rand
}

// NewQuestionSelector creates a new QuestionSelector.
func NewQuestionSelector(rng Rand) *QuestionSelector {
	if rng == nil {
		rng = NewRand()
	}
	return &QuestionSelector{rng: rng}
}

// Next chooses uniformly among the indices in [0, total) not present in
// asked. It reports false when every index was already asked.
func (s *QuestionSelector) Next(total int, asked []int) (int, bool) {
	remaining := unasked(total, asked)
	if len(remaining) == 0 {
		return 0, false
	}
	return remaining[s.rng.Intn(len(remaining))], true
}

// unasked returns the indices of [0, total) missing from asked, in order.
func unasked(total int, asked []int) []int {
	seen := make([]int, len(asked))
	copy(seen, asked)
	sort.Ints(seen)

	out := make([]int, 0, total)
	for i := 0; i < total; i++ {
		pos := sort.SearchInts(seen, i)
		if pos < len(seen) && seen[pos] == i {
			continue
		}
		out = append(out, i)
	}

	return out
}
