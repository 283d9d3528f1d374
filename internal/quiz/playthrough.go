package quiz

import "fmt"

// Playthrough drives one attempt at a user-authored quiz. It mirrors the
// Session transition rules minus the countdown timer and minus question
// provenance: the quiz is loaded wholesale from the backend and played as-is.
// Unlike Session it supports restarting in place, matching the custom-quiz
// player's "play again" control.
type Playthrough struct {
	questions []Question
	answers   []int
	pos       int
	mode      Mode
	finished  bool
}

// NewPlaythrough creates a playthrough over the given questions.
func NewPlaythrough(questions []Question, mode Mode) (*Playthrough, error) {
	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}
	for i, q := range questions {
		if err := q.Validate(); err != nil {
			return nil, fmt.Errorf("question %d: %w", i, err)
		}
	}
	p := &Playthrough{
		questions: questions,
		mode:      mode,
	}
	p.reset()
	return p, nil
}

func (p *Playthrough) reset() {
	p.answers = make([]int, len(p.questions))
	for i := range p.answers {
		p.answers[i] = unanswered
	}
	p.pos = 0
	p.finished = false
}

// SubmitAnswer records the option for the current question; first answer
// wins, repeats are silent no-ops.
func (p *Playthrough) SubmitAnswer(optionIndex int) error {
	if p.finished {
		return ErrInvalidState
	}
	q := p.questions[p.pos]
	if optionIndex < 0 || optionIndex >= len(q.Options) {
		return fmt.Errorf("%w: %d of %d options", ErrOptionOutOfRange, optionIndex, len(q.Options))
	}
	if p.answers[p.pos] != unanswered {
		return nil
	}
	p.answers[p.pos] = optionIndex
	return nil
}

// Advance moves to the next question; no-op at the last.
func (p *Playthrough) Advance() {
	if p.pos < len(p.questions)-1 {
		p.pos++
	}
}

// Retreat moves to the previous question; no-op at the first.
func (p *Playthrough) Retreat() {
	if p.pos > 0 {
		p.pos--
	}
}

// Finish ends the playthrough. Idempotent; returns true on the call that
// actually finished it.
func (p *Playthrough) Finish() bool {
	if p.finished {
		return false
	}
	p.finished = true
	return true
}

// Restart clears all answers and returns to the first question.
func (p *Playthrough) Restart() {
	p.reset()
}

// AllAnswered reports whether every slot is set.
func (p *Playthrough) AllAnswered() bool {
	for _, a := range p.answers {
		if a == unanswered {
			return false
		}
	}
	return true
}

// Scores recomputes the tally with the same position-parity attribution
// rule as Session.
func (p *Playthrough) Scores() Tally {
	t := Tally{1: 0, 2: 0}
	for i, q := range p.questions {
		a := p.answers[i]
		if a == unanswered || a != q.AnswerIndex {
			continue
		}
		if p.mode == ModeSolo || i%2 == 0 {
			t[1]++
		} else {
			t[2]++
		}
	}
	return t
}

// Summary returns the user-facing result line.
func (p *Playthrough) Summary() string {
	scores := p.Scores()
	if p.mode == ModeSolo {
		return fmt.Sprintf("You scored %d out of %d.", scores[1], len(p.questions))
	}
	switch {
	case scores[1] > scores[2]:
		return fmt.Sprintf("Player 1 wins! (P1: %d, P2: %d)", scores[1], scores[2])
	case scores[2] > scores[1]:
		return fmt.Sprintf("Player 2 wins! (P1: %d, P2: %d)", scores[1], scores[2])
	default:
		return fmt.Sprintf("It's a draw! (P1: %d, P2: %d)", scores[1], scores[2])
	}
}

// Position returns the current question index.
func (p *Playthrough) Position() int { return p.pos }

// CurrentQuestion returns the question at the current position.
func (p *Playthrough) CurrentQuestion() Question { return p.questions[p.pos] }

// Len returns the number of questions.
func (p *Playthrough) Len() int { return len(p.questions) }

// Finished reports whether the playthrough has ended.
func (p *Playthrough) Finished() bool { return p.finished }

// Answer returns the recorded answer for position i, and whether it is set.
func (p *Playthrough) Answer(i int) (int, bool) {
	if i < 0 || i >= len(p.answers) || p.answers[i] == unanswered {
		return 0, false
	}
	return p.answers[i], true
}
