package service

import (
	"math/rand"
	"testing"
)

type seqRand struct {
	picks []int
	calls []int
}

func (r *seqRand) Intn(n int) int {
	r.calls = append(r.calls, n)
	p := r.picks[0]
	r.picks = r.picks[1:]
	return p
}

func TestQuestionSelectorNext(t *testing.T) {
	tests := []struct {
		name   string
		total  int
		asked  []int
		pick   int
		want   int
		wantOk bool
	}{
		{"fresh category", 3, nil, 2, 2, true},
		{"skips asked", 4, []int{0, 2}, 1, 3, true},
		{"unsorted asked", 4, []int{3, 0, 1}, 0, 2, true},
		{"exhausted", 2, []int{0, 1}, 0, 0, false},
		{"empty category", 0, nil, 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rng := &seqRand{picks: []int{tt.pick}}
			got, ok := NewQuestionSelector(rng).Next(tt.total, tt.asked)

			if ok != tt.wantOk {
				t.Fatalf("expected ok=%v, got %v", tt.wantOk, ok)
			}
			if ok && got != tt.want {
				t.Errorf("expected index %d, got %d", tt.want, got)
			}
			if !ok && len(rng.calls) != 0 {
				t.Errorf("rng must not be consulted when nothing is left")
			}
		})
	}
}

func TestQuestionSelectorUniform(t *testing.T) {
	const (
		total  = 4
		rounds = 8000
	)

	s := NewQuestionSelector(rand.New(rand.NewSource(1)))
	counts := make([]int, total)

	for i := 0; i < rounds; i++ {
		idx, ok := s.Next(total, []int{1})
		if !ok {
			t.Fatal("expected a question")
		}
		counts[idx]++
	}

	if counts[1] != 0 {
		t.Fatalf("asked index returned %d times", counts[1])
	}

	expected := rounds / (total - 1)
	for _, idx := range []int{0, 2, 3} {
		if diff := counts[idx] - expected; diff > expected/10 || diff < -expected/10 {
			t.Errorf("index %d picked %d times, expected about %d", idx, counts[idx], expected)
		}
	}
}

func TestQuestionSelectorFullPass(t *testing.T) {
	s := NewQuestionSelector(NewRand())

	var asked []int
	for i := 0; i < 10; i++ {
		idx, ok := s.Next(10, asked)
		if !ok {
			t.Fatalf("exhausted after %d questions", i)
		}
		for _, a := range asked {
			if a == idx {
				t.Fatalf("index %d repeated", idx)
			}
		}
		asked = append(asked, idx)
	}

	if _, ok := s.Next(10, asked); ok {
		t.Error("expected exhaustion after a full pass")
	}
}
