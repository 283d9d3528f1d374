package quiz

import (
	"math/rand"
	"strings"
)

// DefaultQuizLength is used when the caller asks for zero or fewer questions.
const DefaultQuizLength = 10

// SelectQuestions applies the pre-start selection policy to a candidate pool:
// filter by difficulty unless "mixed" was requested, falling back to the full
// pool when no question matches, then shuffle and truncate to the requested
// amount. A pool smaller than the requested amount is not an error; the
// caller simply gets fewer questions.
func SelectQuestions(pool []Question, amount int, difficulty string, rng *rand.Rand) []Question {
	if len(pool) == 0 {
		return nil
	}
	if amount <= 0 {
		amount = DefaultQuizLength
	}

	candidates := pool
	if difficulty != "" && !strings.EqualFold(difficulty, DifficultyMixed) {
		var filtered []Question
		for _, q := range pool {
			if strings.EqualFold(q.Difficulty, difficulty) {
				filtered = append(filtered, q)
			}
		}
		if len(filtered) > 0 {
			candidates = filtered
		}
	}

	picked := make([]Question, len(candidates))
	copy(picked, candidates)
	shuffleFn := rand.Shuffle
	if rng != nil {
		shuffleFn = rng.Shuffle
	}
	shuffleFn(len(picked), func(i, j int) {
		picked[i], picked[j] = picked[j], picked[i]
	})

	if amount < len(picked) {
		picked = picked[:amount]
	}
	return picked
}
