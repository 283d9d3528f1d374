package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arens/quizdeck/internal/client"
	"github.com/arens/quizdeck/internal/config"
	"github.com/arens/quizdeck/internal/opentdb"
	"github.com/arens/quizdeck/internal/questions"
	"github.com/arens/quizdeck/internal/quiz"
)

func newPlayCmd() *cobra.Command {
	var (
		subcategory string
		amount      int
		difficulty  string
		twoPlayer   bool
		player1     string
		player2     string
		noTimer     bool
		save        bool
	)

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play a quiz in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadConfig()
			if err != nil {
				return err
			}
			opts := playOptions{
				subcategory: subcategory,
				amount:      amount,
				difficulty:  difficulty,
				twoPlayer:   twoPlayer,
				player1:     player1,
				player2:     player2,
				noTimer:     noTimer,
				save:        save,
			}
			return runPlay(cmd, cfg, opts)
		},
	}

	cmd.Flags().StringVar(&subcategory, "subcategory", "gk-mixed-api", "subcategory id (see 'quizdeck categories')")
	cmd.Flags().IntVar(&amount, "amount", quiz.DefaultQuizLength, "number of questions")
	cmd.Flags().StringVar(&difficulty, "difficulty", quiz.DifficultyMixed, "difficulty: mixed, easy, medium or hard")
	cmd.Flags().BoolVar(&twoPlayer, "two-player", false, "pass-and-play for two players")
	cmd.Flags().StringVar(&player1, "player1", "", "name for player 1")
	cmd.Flags().StringVar(&player2, "player2", "", "name for player 2")
	cmd.Flags().BoolVar(&noTimer, "no-timer", false, "disable the countdown timer")
	cmd.Flags().BoolVar(&save, "save", false, "submit the result to the leaderboard (solo, logged in)")
	return cmd
}

type playOptions struct {
	subcategory string
	amount      int
	difficulty  string
	twoPlayer   bool
	player1     string
	player2     string
	noTimer     bool
	save        bool
}

func runPlay(cmd *cobra.Command, cfg config.Config, opts playOptions) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	source := questions.NewSource(opentdb.New(cfg.TriviaAPIBaseURL), nil)
	pool, err := source.Load(ctx, opts.subcategory, opts.amount, opts.difficulty)
	if err != nil {
		return err
	}
	selected := quiz.SelectQuestions(pool, opts.amount, opts.difficulty, nil)

	mode := quiz.ModeSolo
	if opts.twoPlayer {
		mode = quiz.ModeTwoPlayer
	}
	limit := 0
	if !opts.noTimer {
		limit = quiz.TimeLimitSeconds(len(selected), cfg.SecondsPerQuestion)
	}

	session, err := quiz.NewSession(selected, mode, opts.player1, opts.player2, limit)
	if err != nil {
		return err
	}
	if err := session.Start(); err != nil {
		return err
	}

	group, sub, _ := questions.FindSubcategory(opts.subcategory)
	fmt.Fprintf(out, "\n%s / %s (%d questions)\n", group.Name, sub.Name, session.Len())
	if limit > 0 {
		fmt.Fprintf(out, "Time limit: %s\n", quiz.FormatClock(limit))
	}

	reader := bufio.NewReader(cmd.InOrStdin())
	for !session.Ended() {
		askQuestion(out, session)

		line, err := reader.ReadString('\n')
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		if done := applyInput(out, session, strings.TrimSpace(line)); done {
			break
		}
		if session.AllAnswered() && session.Position() == session.Len()-1 {
			break
		}
	}
	session.End(quiz.EndManual)

	fmt.Fprintf(out, "\n%s\n", session.Summary())
	if session.Reason() == quiz.EndTimeout {
		fmt.Fprintln(out, "Time ran out.")
	}

	if opts.save {
		return saveResult(cmd, cfg, session, group.ID, opts.subcategory, opts.difficulty)
	}
	return nil
}

func askQuestion(out io.Writer, session *quiz.Session) {
	pos := session.Position()
	q := session.CurrentQuestion()

	fmt.Fprintf(out, "\n[%d/%d]", pos+1, session.Len())
	if session.Mode() == quiz.ModeTwoPlayer {
		fmt.Fprintf(out, " %s's turn", session.PlayerLabel(session.PlayerForIndex(pos)))
	}
	if remaining := session.Remaining(); remaining > 0 {
		fmt.Fprintf(out, "  (%s left)", quiz.FormatClock(remaining))
	}
	fmt.Fprintf(out, "\n%s\n", q.Text)
	for i, opt := range q.Options {
		marker := " "
		if a, ok := session.Answer(pos); ok && a == i {
			marker = "*"
		}
		fmt.Fprintf(out, "  %s%d) %s\n", marker, i+1, opt)
	}
	fmt.Fprint(out, "> answer number, (n)ext, (p)rev, (e)nd: ")
}

// applyInput handles one line of input. Returns true when the player
// asked to end the quiz.
func applyInput(out io.Writer, session *quiz.Session, input string) bool {
	switch strings.ToLower(input) {
	case "e", "end":
		return true
	case "n", "next", "":
		session.Advance()
		return false
	case "p", "prev":
		session.Retreat()
		return false
	}

	choice, err := strconv.Atoi(input)
	if err != nil {
		fmt.Fprintf(out, "unrecognized input %q\n", input)
		return false
	}
	if err := session.SubmitAnswer(choice - 1); err != nil {
		fmt.Fprintf(out, "%v\n", err)
		return false
	}
	session.Advance()
	return false
}

func saveResult(cmd *cobra.Command, cfg config.Config, session *quiz.Session, categoryID, subcategoryID, difficulty string) error {
	out := cmd.OutOrStdout()

	store, err := newStateStore(cfg)
	if err != nil {
		return err
	}
	c := client.New(cfg.APIBaseURL, store)

	saved, err := c.SaveScore(cmd.Context(), session, categoryID, subcategoryID, difficulty)
	if err != nil {
		return err
	}
	if saved != nil {
		fmt.Fprintf(out, "Score saved: %d/%d\n", saved.Score, saved.TotalQuestions)
	}
	return nil
}

// newStateStore opens the client session store at the configured path,
// defaulting to ~/.quizdeck/state.json.
func newStateStore(cfg config.Config) (*client.Store, error) {
	path := cfg.ClientStatePath
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(home, ".quizdeck", "state.json")
	}
	return client.NewStore(path)
}
