package entities

import "sort"

// Phase is the quiz state of a single user.
type Phase string

const (
	PhaseIdle           Phase = "idle"            // no outstanding question or retry offer
	PhaseAwaitingAnswer Phase = "awaiting_answer" // a question is waiting for a reply
	PhaseAwaitingRetry  Phase = "awaiting_retry"  // category exhausted, yes/no offer pending
)

// State is a tagged variant. Only the fields meaningful for Phase are set;
// constructors zero everything else.
type State struct {
	Phase         Phase    `json:"phase"`
	Category      Category `json:"category,omitempty"`
	QuestionIndex int      `json:"question_index,omitempty"`
}

// Idle returns the initial state.
func Idle() State {
	return State{Phase: PhaseIdle}
}

// AwaitingAnswer returns a state with question idx of category c outstanding.
func AwaitingAnswer(c Category, idx int) State {
	return State{Phase: PhaseAwaitingAnswer, Category: c, QuestionIndex: idx}
}

// AwaitingRetry returns a state offering to replay the exhausted category c.
func AwaitingRetry(c Category) State {
	return State{Phase: PhaseAwaitingRetry, Category: c}
}

// Session is the per-user quiz progress.
type Session struct {
	State          State              `json:"state"`
	Asked          map[Category][]int `json:"asked"`           // sorted, unique, current pass only
	FirstAttempt   bool               `json:"first_attempt"`   // no wrong reply to the current question yet
	CorrectAnswers map[Category]int   `json:"correct_answers"` // survives category resets
}

// NewSession creates an idle session with zero counters.
func NewSession() *Session {
	s := &Session{
		State:          Idle(),
		Asked:          make(map[Category][]int),
		FirstAttempt:   true,
		CorrectAnswers: make(map[Category]int, len(categories)),
	}
	for _, c := range categories {
		s.CorrectAnswers[c] = 0
	}
	return s
}

// Normalize fills nil maps left by decoding an older or partial payload.
func (s *Session) Normalize() {
	if s.State.Phase == "" {
		s.State = Idle()
	}
	if s.Asked == nil {
		s.Asked = make(map[Category][]int)
	}
	if s.CorrectAnswers == nil {
		s.CorrectAnswers = make(map[Category]int, len(categories))
	}
	for _, c := range categories {
		if _, ok := s.CorrectAnswers[c]; !ok {
			s.CorrectAnswers[c] = 0
		}
	}
}

// AskedIn returns the indices already presented for c.
func (s *Session) AskedIn(c Category) []int {
	return s.Asked[c]
}

// MarkAsked records idx for c. Recording an index twice is a no-op.
func (s *Session) MarkAsked(c Category, idx int) bool {
	asked := s.Asked[c]
	pos := sort.SearchInts(asked, idx)
	if pos < len(asked) && asked[pos] == idx {
		return false
	}

	asked = append(asked, 0)
	copy(asked[pos+1:], asked[pos:])
	asked[pos] = idx
	s.Asked[c] = asked

	return true
}

// ResetAsked starts a new pass through c.
func (s *Session) ResetAsked(c Category) {
	s.Asked[c] = []int{}
}

// AddCorrect increments the score of c.
func (s *Session) AddCorrect(c Category) {
	s.CorrectAnswers[c]++
}

// Scores returns a copy of the per-category counters.
func (s *Session) Scores() map[Category]int {
	out := make(map[Category]int, len(categories))
	for _, c := range categories {
		out[c] = s.CorrectAnswers[c]
	}
	return out
}
