package cli

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arens/quizdeck/internal/quiz"
)

func newPlayCustomCmd() *cobra.Command {
	var twoPlayer bool

	cmd := &cobra.Command{
		Use:   "play-custom <quiz-id>",
		Short: "Play a user-authored quiz fetched from the server",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid quiz id %q", args[0])
			}

			_, c, err := newAPIClient()
			if err != nil {
				return err
			}
			title, playable, err := c.PlayQuiz(cmd.Context(), id)
			if err != nil {
				return err
			}

			mode := quiz.ModeSolo
			if twoPlayer {
				mode = quiz.ModeTwoPlayer
			}
			p, err := quiz.NewPlaythrough(playable, mode)
			if err != nil {
				return err
			}
			return runPlaythrough(cmd, title, p)
		},
	}

	cmd.Flags().BoolVar(&twoPlayer, "two-player", false, "pass-and-play for two players")
	return cmd
}

func runPlaythrough(cmd *cobra.Command, title string, p *quiz.Playthrough) error {
	out := cmd.OutOrStdout()
	reader := bufio.NewReader(cmd.InOrStdin())

	fmt.Fprintf(out, "\n%s (%d questions)\n", title, p.Len())

	for !p.Finished() {
		askPlaythroughQuestion(out, p)

		line, err := reader.ReadString('\n')
		if err == io.EOF {
			p.Finish()
			break
		}
		if err != nil {
			return err
		}

		input := strings.TrimSpace(line)
		switch strings.ToLower(input) {
		case "e", "end":
			p.Finish()
		case "n", "next", "":
			p.Advance()
		case "p", "prev":
			p.Retreat()
		case "r", "restart":
			p.Restart()
			fmt.Fprintln(out, "Starting over.")
		default:
			choice, err := strconv.Atoi(input)
			if err != nil {
				fmt.Fprintf(out, "unrecognized input %q\n", input)
				continue
			}
			if err := p.SubmitAnswer(choice - 1); err != nil {
				fmt.Fprintf(out, "%v\n", err)
				continue
			}
			p.Advance()
		}

		if p.AllAnswered() && p.Position() == p.Len()-1 {
			p.Finish()
		}
	}

	fmt.Fprintf(out, "\n%s\n", p.Summary())
	return nil
}

func askPlaythroughQuestion(out io.Writer, p *quiz.Playthrough) {
	pos := p.Position()
	q := p.CurrentQuestion()

	fmt.Fprintf(out, "\n[%d/%d]\n%s\n", pos+1, p.Len(), q.Text)
	for i, opt := range q.Options {
		marker := " "
		if a, ok := p.Answer(pos); ok && a == i {
			marker = "*"
		}
		fmt.Fprintf(out, "  %s%d) %s\n", marker, i+1, opt)
	}
	fmt.Fprint(out, "> answer number, (n)ext, (p)rev, (r)estart, (e)nd: ")
}
