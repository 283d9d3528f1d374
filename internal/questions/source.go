package questions

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"html"
	"math/rand"

	"github.com/arens/quizdeck/internal/logger"
	"github.com/arens/quizdeck/internal/opentdb"
	"github.com/arens/quizdeck/internal/quiz"
)

//go:embed data/*.json
var localFS embed.FS

// Source resolves a subcategory to its ordered question pool, dispatching
// on provenance. Remote records are normalized into the local Question
// shape; local collections are embedded JSON files.
type Source struct {
	client opentdb.ClientInterface
	rng    *rand.Rand
}

// NewSource creates a Source. rng may be nil to use the global generator;
// tests inject a seeded one for deterministic option shuffles.
func NewSource(client opentdb.ClientInterface, rng *rand.Rand) *Source {
	return &Source{client: client, rng: rng}
}

// Load fetches the candidate pool for a subcategory. For remote
// subcategories the amount and difficulty are forwarded to the API; local
// collections return their whole pool and leave selection to the caller.
// An empty pool, from either provenance, is reported as ErrNoQuestions.
func (s *Source) Load(ctx context.Context, subcategoryID string, amount int, difficulty string) ([]quiz.Question, error) {
	log := logger.FromContext(ctx).WithPrefix("questions").WithField("subcategory", subcategoryID)

	_, sub, ok := FindSubcategory(subcategoryID)
	if !ok {
		return nil, fmt.Errorf("unknown subcategory %q", subcategoryID)
	}

	var (
		pool []quiz.Question
		err  error
	)
	switch p := sub.Provenance.(type) {
	case Remote:
		pool, err = s.loadRemote(ctx, p.APICategoryID, amount, difficulty)
	case Local:
		pool, err = s.loadLocal(p.Path)
	default:
		return nil, fmt.Errorf("subcategory %q has no provenance", subcategoryID)
	}
	if err != nil {
		log.Error("failed to load questions: %v", err)
		return nil, err
	}
	if len(pool) == 0 {
		log.Warn("no questions available")
		return nil, quiz.ErrNoQuestions
	}

	log.Debug("loaded %d candidate questions", len(pool))
	return pool, nil
}

func (s *Source) loadRemote(ctx context.Context, categoryID, amount int, difficulty string) ([]quiz.Question, error) {
	if amount <= 0 {
		amount = quiz.DefaultQuizLength
	}
	results, err := s.client.FetchQuestions(ctx, categoryID, amount, difficulty)
	if err != nil {
		return nil, err
	}

	questions := make([]quiz.Question, 0, len(results))
	for _, r := range results {
		q, err := Normalize(r, s.rng)
		if err != nil {
			logger.FromContext(ctx).Warn("skipping malformed trivia record: %v", err)
			continue
		}
		questions = append(questions, q)
	}
	return questions, nil
}

func (s *Source) loadLocal(path string) ([]quiz.Question, error) {
	raw, err := localFS.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read local collection %s: %w", path, err)
	}

	var questions []quiz.Question
	if err := json.Unmarshal(raw, &questions); err != nil {
		return nil, fmt.Errorf("decode local collection %s: %w", path, err)
	}
	for i := range questions {
		if questions[i].Difficulty == "" {
			questions[i].Difficulty = quiz.DifficultyMixed
		}
	}
	return questions, nil
}

// Normalize converts a raw trivia API record into the local Question
// shape: HTML entities are decoded, the correct answer is merged with the
// incorrect ones into a shuffled option list, and the answer index is
// recomputed as the post-shuffle position of the correct string.
func Normalize(r opentdb.Result, rng *rand.Rand) (quiz.Question, error) {
	correct := html.UnescapeString(r.CorrectAnswer)
	options := make([]string, 0, len(r.IncorrectAnswers)+1)
	for _, a := range r.IncorrectAnswers {
		options = append(options, html.UnescapeString(a))
	}
	options = append(options, correct)

	shuffleFn := rand.Shuffle
	if rng != nil {
		shuffleFn = rng.Shuffle
	}
	shuffleFn(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})

	answerIndex := -1
	for i, opt := range options {
		if opt == correct {
			answerIndex = i
			break
		}
	}

	difficulty := r.Difficulty
	if difficulty == "" {
		difficulty = quiz.DifficultyMixed
	}

	q := quiz.Question{
		Text:        html.UnescapeString(r.Question),
		Options:     options,
		AnswerIndex: answerIndex,
		Difficulty:  difficulty,
	}
	if err := q.Validate(); err != nil {
		return quiz.Question{}, err
	}
	return q, nil
}
