package quiz

import (
	"errors"
	"fmt"
	"sync"
)

// Mode selects how answered questions are attributed to players.
type Mode int

const (
	ModeSolo Mode = iota
	ModeTwoPlayer
)

func (m Mode) String() string {
	if m == ModeTwoPlayer {
		return "two-player"
	}
	return "solo"
}

// EndReason records how a session was ended.
type EndReason int

const (
	EndManual EndReason = iota
	EndTimeout
)

func (r EndReason) String() string {
	if r == EndTimeout {
		return "timeout"
	}
	return "manual"
}

// State of a session: created, running, or terminally ended.
type State int

const (
	StateSetup State = iota
	StateInProgress
	StateEnded
)

// Errors reported by session transitions. ErrInvalidState indicates a
// caller bug, not a user-facing condition.
var (
	ErrInvalidState     = errors.New("quiz: invalid session state for operation")
	ErrNoQuestions      = errors.New("quiz: no questions available")
	ErrOptionOutOfRange = errors.New("quiz: option index out of range")
)

// Tally maps player id (1 or 2) to the count of correctly answered questions.
type Tally map[int]int

const unanswered = -1

// Session holds one in-progress quiz attempt. A session is created per
// start; it is never reset in place. All transitions are guarded by a
// mutex because the countdown timer expires on its own goroutine.
type Session struct {
	mu sync.Mutex

	questions []Question
	answers   []int
	pos       int
	mode      Mode
	labels    [2]string

	state     State
	endReason EndReason
	final     Tally

	timeLimit int // seconds; 0 disables the timer
	timer     *Timer
}

// NewSession creates a session in Setup state. The question list must be
// non-empty and every question well-formed; player labels default to
// "Player 1"/"Player 2" when blank.
func NewSession(questions []Question, mode Mode, player1, player2 string, timeLimitSeconds int) (*Session, error) {
	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}
	for i, q := range questions {
		if err := q.Validate(); err != nil {
			return nil, fmt.Errorf("question %d: %w", i, err)
		}
	}
	if player1 == "" {
		player1 = "Player 1"
	}
	if player2 == "" {
		player2 = "Player 2"
	}

	answers := make([]int, len(questions))
	for i := range answers {
		answers[i] = unanswered
	}

	return &Session{
		questions: questions,
		answers:   answers,
		mode:      mode,
		labels:    [2]string{player1, player2},
		timeLimit: timeLimitSeconds,
	}, nil
}

// Start transitions the session to InProgress and arms the countdown timer.
// Starting a session that is already in progress is a contract violation.
func (s *Session) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateInProgress {
		return ErrInvalidState
	}
	if s.state == StateEnded {
		return ErrInvalidState
	}

	s.state = StateInProgress
	if s.timeLimit > 0 {
		s.timer = newTimer(s.timeLimit, func() {
			s.End(EndTimeout)
		})
	}
	return nil
}

// SubmitAnswer records the given option for the current question. The first
// answer wins: submitting again on an already-answered position is a silent
// no-op. An out-of-range option index is rejected.
func (s *Session) SubmitAnswer(optionIndex int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateInProgress {
		return ErrInvalidState
	}
	q := s.questions[s.pos]
	if optionIndex < 0 || optionIndex >= len(q.Options) {
		return fmt.Errorf("%w: %d of %d options", ErrOptionOutOfRange, optionIndex, len(q.Options))
	}
	if s.answers[s.pos] != unanswered {
		return nil
	}
	s.answers[s.pos] = optionIndex
	return nil
}

// Advance moves to the next question. A no-op at the last question; ending
// the quiz is an explicit End call, never a side effect of navigation.
func (s *Session) Advance() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pos < len(s.questions)-1 {
		s.pos++
	}
}

// Retreat moves back to the previous question. A no-op at the first.
func (s *Session) Retreat() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pos > 0 {
		s.pos--
	}
}

// End finishes the session, stops the timer and freezes the final tally.
// Idempotent: the first caller wins and gets true, later calls (from either
// the timer or a manual action) are no-ops returning false.
func (s *Session) End(reason EndReason) bool {
	s.mu.Lock()
	if s.state == StateEnded {
		s.mu.Unlock()
		return false
	}
	s.state = StateEnded
	s.endReason = reason
	s.final = s.tallyLocked()
	timer := s.timer
	s.mu.Unlock()

	// Stop outside the lock: the expiry callback calls End and must not
	// deadlock against Stop waiting for it.
	if timer != nil {
		timer.Stop()
	}
	return true
}

// AllAnswered reports whether every answer slot is set. It lights the
// "ready to view results" indicator; it never ends the session itself.
func (s *Session) AllAnswered() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.answers {
		if a == unanswered {
			return false
		}
	}
	return true
}

// PlayerForIndex returns which player owns the question at index i.
// Players strictly alternate by question position in two-player mode;
// solo mode attributes everything to player 1.
func (s *Session) PlayerForIndex(i int) int {
	if s.mode == ModeSolo {
		return 1
	}
	if i%2 == 0 {
		return 1
	}
	return 2
}

func (s *Session) tallyLocked() Tally {
	t := Tally{1: 0, 2: 0}
	for i, q := range s.questions {
		a := s.answers[i]
		if a == unanswered || a != q.AnswerIndex {
			continue
		}
		t[s.PlayerForIndex(i)]++
	}
	return t
}

// Scores recomputes the tally from scratch off the answer slots. After End
// the frozen final tally is returned.
func (s *Session) Scores() Tally {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateEnded {
		out := Tally{}
		for k, v := range s.final {
			out[k] = v
		}
		return out
	}
	return s.tallyLocked()
}

// Summary returns the user-facing result line for an ended session.
func (s *Session) Summary() string {
	scores := s.Scores()

	s.mu.Lock()
	mode := s.mode
	labels := s.labels
	total := len(s.questions)
	s.mu.Unlock()

	if mode == ModeSolo {
		return fmt.Sprintf("You scored %d out of %d.", scores[1], total)
	}
	switch {
	case scores[1] > scores[2]:
		return fmt.Sprintf("%s wins! (%d – %d).", labels[0], scores[1], scores[2])
	case scores[2] > scores[1]:
		return fmt.Sprintf("%s wins! (%d – %d).", labels[1], scores[2], scores[1])
	default:
		return fmt.Sprintf("It's a draw! (%d – %d).", scores[1], scores[2])
	}
}

// Position returns the current question index.
func (s *Session) Position() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pos
}

// CurrentQuestion returns the question at the current position.
func (s *Session) CurrentQuestion() Question {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.questions[s.pos]
}

// Answer returns the recorded answer for position i, and whether it is set.
func (s *Session) Answer(i int) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i < 0 || i >= len(s.answers) || s.answers[i] == unanswered {
		return 0, false
	}
	return s.answers[i], true
}

// Len returns the number of questions in the session.
func (s *Session) Len() int {
	return len(s.questions)
}

// Mode returns the session's play mode.
func (s *Session) Mode() Mode {
	return s.mode
}

// PlayerLabel returns the display name for player 1 or 2.
func (s *Session) PlayerLabel(player int) string {
	if player == 2 {
		return s.labels[1]
	}
	return s.labels[0]
}

// State returns the session's lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Ended reports whether the session has been ended.
func (s *Session) Ended() bool {
	return s.State() == StateEnded
}

// Reason returns how the session ended. Only meaningful once Ended.
func (s *Session) Reason() EndReason {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.endReason
}

// Remaining returns the seconds left on the countdown, or 0 when the
// session has no timer.
func (s *Session) Remaining() int {
	s.mu.Lock()
	timer := s.timer
	s.mu.Unlock()
	if timer == nil {
		return 0
	}
	return timer.Remaining()
}

// TimeLimitSeconds computes the total countdown from the question count.
func TimeLimitSeconds(questionCount, secondsPerQuestion int) int {
	if questionCount < 0 {
		questionCount = 0
	}
	return questionCount * secondsPerQuestion
}

// FormatClock renders remaining seconds as MM:SS for display.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
