package risk

import "errors"

// State represents the state of a risk-test session.
type State string

const (
	StateInProgress      State = "in_progress"
	StatePassengerAdjust State = "passenger_adjust"
	StateComplete        State = "complete"
)

var (
	// ErrInvalidTransition is returned when an operation is called in a
	// state that forbids it. The session is left unchanged.
	ErrInvalidTransition = errors.New("risk: invalid transition for current state")
	// ErrOutOfRange is returned when an index falls outside the active
	// question sequence.
	ErrOutOfRange = errors.New("risk: question index out of range")
)

// Session is one run of the pre-trip safety checklist. It holds the
// active question sequence (base questions plus any spliced follow-ups),
// the answer map keyed by sequence index, and the navigation history.
// A session is owned by a single flow and is not safe for concurrent use.
type Session struct {
	questions []QuestionDefinition
	answers   map[int]bool
	cursor    int
	history   []int
	state     State

	passengerCount     int
	passengerOverLimit bool
	boatCapacity       int

	// expanded tracks questions whose follow-ups have already been
	// spliced in, so re-answering "no" never duplicates them.
	expanded map[string]bool

	recordBuilt bool
}

// NewSession starts a risk test over the given catalog. When the user
// already holds a boating license, the license question is pre-answered
// "yes" so its follow-ups are never asked.
func NewSession(catalog []QuestionDefinition, hasLicense bool, boatCapacity int) *Session {
	s := &Session{
		questions:      append([]QuestionDefinition(nil), catalog...),
		answers:        make(map[int]bool),
		history:        []int{0},
		state:          StateInProgress,
		passengerCount: 1,
		boatCapacity:   boatCapacity,
		expanded:       make(map[string]bool),
	}
	if hasLicense {
		for i, q := range s.questions {
			if q.License {
				s.answers[i] = true
				break
			}
		}
	}
	return s
}

// Answer records the answer for the question at the cursor and moves the
// session forward. The passenger question is always recorded as "yes"
// for completion tracking; answering it "yes" enters the passenger
// sub-flow instead of advancing.
func (s *Session) Answer(value bool) error {
	if s.state != StateInProgress {
		return ErrInvalidTransition
	}

	q := s.questions[s.cursor]
	if q.Passenger {
		s.answers[s.cursor] = true
		if value {
			s.state = StatePassengerAdjust
			return nil
		}
		s.passengerCount = 1
		s.passengerOverLimit = false
		s.advance()
		return nil
	}

	s.answers[s.cursor] = value
	if !value && len(q.FollowUps) > 0 && !s.expanded[q.Key] {
		s.expanded[q.Key] = true
		seq := make([]QuestionDefinition, 0, len(s.questions)+len(q.FollowUps))
		seq = append(seq, s.questions[:s.cursor+1]...)
		seq = append(seq, q.FollowUps...)
		seq = append(seq, s.questions[s.cursor+1:]...)
		s.questions = seq

		s.cursor++
		s.history = append(s.history, s.cursor)
		return nil
	}

	s.advance()
	return nil
}

// advance moves the cursor after an answer is recorded: complete when
// the last question is reached and nothing is left unanswered, jump to
// the first unanswered question when a gap remains, otherwise step to
// the next question.
func (s *Session) advance() {
	last := len(s.questions) - 1
	if s.cursor == last {
		if s.allAnswered() {
			s.state = StateComplete
			return
		}
		s.cursor = s.firstUnanswered()
	} else {
		s.cursor++
	}
	s.history = append(s.history, s.cursor)
}

func (s *Session) allAnswered() bool {
	for i := range s.questions {
		if _, ok := s.answers[i]; !ok {
			return false
		}
	}
	return true
}

func (s *Session) firstUnanswered() int {
	for i := range s.questions {
		if _, ok := s.answers[i]; !ok {
			return i
		}
	}
	return -1
}

// AdjustPassengerCount changes the passenger count by delta, clamped at
// one. Only valid while the passenger sub-flow is open.
func (s *Session) AdjustPassengerCount(delta int) error {
	if s.state != StatePassengerAdjust {
		return ErrInvalidTransition
	}
	s.passengerCount += delta
	if s.passengerCount < 1 {
		s.passengerCount = 1
	}
	s.passengerOverLimit = s.passengerCount > s.boatCapacity
	return nil
}

// ConfirmPassengerCount leaves the passenger sub-flow and advances.
func (s *Session) ConfirmPassengerCount() error {
	if s.state != StatePassengerAdjust {
		return ErrInvalidTransition
	}
	s.state = StateInProgress
	s.advance()
	return nil
}

// GoBack returns to the previously visited question. With no earlier
// history it is a no-op. Answers are never erased by going back.
func (s *Session) GoBack() {
	if s.state != StateInProgress || len(s.history) <= 1 {
		return
	}
	s.history = s.history[:len(s.history)-1]
	s.cursor = s.history[len(s.history)-1]
}

// JumpTo moves the cursor to an already-answered question so the user
// can change their answer. History is truncated at the first occurrence
// of the index when revisiting, otherwise the index is appended.
func (s *Session) JumpTo(index int) error {
	if s.state != StateInProgress {
		return ErrInvalidTransition
	}
	if index < 0 || index >= len(s.questions) {
		return ErrOutOfRange
	}
	if _, ok := s.answers[index]; !ok {
		return ErrInvalidTransition
	}

	s.cursor = index
	if s.history[len(s.history)-1] == index {
		return nil
	}
	for i, h := range s.history {
		if h == index {
			s.history = s.history[:i+1]
			return nil
		}
	}
	s.history = append(s.history, index)
	return nil
}

// CurrentQuestion returns the question at the cursor, or false once the
// session is complete.
func (s *Session) CurrentQuestion() (QuestionDefinition, bool) {
	if s.state == StateComplete {
		return QuestionDefinition{}, false
	}
	return s.questions[s.cursor], true
}

// State returns the current session state.
func (s *Session) State() State { return s.state }

// IsComplete reports whether every question in the active sequence has
// been answered. It always evaluates against the current sequence, so
// spliced follow-ups re-open completion.
func (s *Session) IsComplete() bool { return s.state == StateComplete }

// Cursor returns the index of the current question.
func (s *Session) Cursor() int { return s.cursor }

// Questions returns the active question sequence.
func (s *Session) Questions() []QuestionDefinition {
	return append([]QuestionDefinition(nil), s.questions...)
}

// Answers returns a copy of the answer map keyed by sequence index.
func (s *Session) Answers() map[int]bool {
	out := make(map[int]bool, len(s.answers))
	for i, v := range s.answers {
		out[i] = v
	}
	return out
}

// PassengerCount returns the confirmed number of people onboard.
func (s *Session) PassengerCount() int { return s.passengerCount }

// PassengerOverLimit reports whether the passenger count exceeds the
// boat's declared capacity.
func (s *Session) PassengerOverLimit() bool { return s.passengerOverLimit }
