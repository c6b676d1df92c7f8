package cli

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/config"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/tictactoe"
)

const playHelp = "Enter a move as \"row col\" (0-2), n for the next round, r to reset, q to quit."

func playCmd(configPath *string) *cobra.Command {
	var (
		player1 string
		player2 string
		policy  string
	)

	c := &cobra.Command{
		Use:   "play",
		Short: "Play in the terminal, passing the keyboard between turns",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("starter-policy") {
				conf, err := config.Load(*configPath)
				if err != nil {
					return err
				}
				policy = conf.StarterPolicy
			}

			starter, err := tictactoe.ParseStarterPolicy(policy)
			if err != nil {
				return err
			}

			return newTerminal(cmd.InOrStdin(), cmd.OutOrStdout(), starter).Run(player1, player2)
		},
	}

	c.Flags().StringVar(&player1, "player1", entity.DefaultPlayer1Name, "name of the player using X")
	c.Flags().StringVar(&player2, "player2", entity.DefaultPlayer2Name, "name of the player using O")
	c.Flags().StringVar(&policy, "starter-policy", string(tictactoe.StarterFirstPlayer), "who starts each round: first, alternate or loser")

	return c
}

// terminal drives one session from text lines.
type terminal struct {
	in      *bufio.Scanner
	out     io.Writer
	session *tictactoe.Session
}

func newTerminal(in io.Reader, out io.Writer, policy tictactoe.StarterPolicy) *terminal {
	return &terminal{
		in:      bufio.NewScanner(in),
		out:     out,
		session: tictactoe.NewSession("terminal", policy),
	}
}

// Run seats the players and reads commands until q or end of input.
func (that *terminal) Run(name1, name2 string) error {
	if err := that.session.AddPlayers(name1, name2); err != nil {
		return err
	}

	that.println(playHelp)
	that.render()

	for that.in.Scan() {
		line := strings.TrimSpace(that.in.Text())

		switch strings.ToLower(line) {
		case "":
			continue
		case "q", "quit":
			that.println("Bye.")
			return nil
		case "n", "next":
			if err := that.session.NextRound(); err != nil {
				that.println("error: " + err.Error())
				continue
			}
		case "r", "reset":
			that.session.ResetGame()
			if err := that.session.AddPlayers(name1, name2); err != nil {
				return err
			}
			that.println("Scores reset.")
		default:
			if !that.move(line) {
				continue
			}
		}

		that.render()
	}

	return that.in.Err()
}

// move reports whether the board changed.
func (that *terminal) move(line string) bool {
	row, col, err := parseMove(line)
	if err != nil {
		that.println("error: " + err.Error())
		return false
	}

	result, err := that.session.MakeTurn(row, col)
	if err != nil {
		that.println("error: " + err.Error())
		return false
	}

	if result.Ignored {
		that.println(fmt.Sprintf("Cell %d %d is taken, pick another.", row, col))
		return false
	}

	return true
}

func (that *terminal) render() {
	scores := that.session.Scores()
	player1, player2 := that.session.Player1(), that.session.Player2()

	that.println("")
	that.println(fmt.Sprintf("Round %d | %s (%s) %d : %d %s (%s) | ties %d",
		that.session.Round(),
		player1.Name(), player1.Marker(), scores.Player1,
		scores.Player2, player2.Name(), player2.Marker(),
		scores.Ties,
	))

	board := that.session.Board()
	that.println(board.String())

	result := that.session.Result()
	switch result.Kind {
	case tictactoe.OutcomeWin:
		that.println(fmt.Sprintf("%s wins the round! Type n for the next round.", result.Winner.Name()))
	case tictactoe.OutcomeTie:
		that.println("It's a tie! Type n for the next round.")
	default:
		current := that.session.CurrentPlayer()
		that.println(fmt.Sprintf("%s (%s) to move", current.Name(), current.Marker()))
	}
}

func (that *terminal) println(line string) {
	_, _ = fmt.Fprintln(that.out, line)
}

func parseMove(line string) (int, int, error) {
	fields := strings.Fields(strings.ReplaceAll(line, ",", " "))
	if len(fields) != 2 {
		return 0, 0, fmt.Errorf("unknown command %q", line)
	}

	row, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, 0, fmt.Errorf("row %q is not a number", fields[0])
	}

	col, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0, 0, fmt.Errorf("col %q is not a number", fields[1])
	}

	return row, col, nil
}
