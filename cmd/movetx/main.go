// movetx applies a sequence of moves to one or more boards, one transaction
// per move and board.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/lgbarn/movetx/internal/chess"
	"github.com/lgbarn/movetx/internal/config"
	"github.com/lgbarn/movetx/internal/engine"
	"github.com/lgbarn/movetx/internal/logging"
	"github.com/lgbarn/movetx/internal/move"
	"github.com/lgbarn/movetx/internal/validation"
)

const programVersion = "0.1.0"

// Exit codes.
const (
	exitOK     = 0
	exitFailed = 1
	exitUsage  = 2
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

// moveReport is one line of output.
type moveReport struct {
	Move  string `json:"move"`
	Kind  string `json:"kind,omitempty"`
	State string `json:"state"`
	Step  string `json:"step,omitempty"`
	Error string `json:"error,omitempty"`
}

// boardReport holds the moves played on one board and its final layout.
type boardReport struct {
	Start  string       `json:"start"`
	Moves  []moveReport `json:"moves"`
	Layout string       `json:"layout"`
}

type report struct {
	Boards []boardReport `json:"boards"`
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return exitUsage
	}
	if opts.version {
		fmt.Fprintf(stdout, "movetx version %s\n", programVersion)
		return exitOK
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	}

	log, err := logging.New(cfg.Log, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	}
	eng, err := engine.New(cfg, validation.Default(), log)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	}

	layouts := opts.layouts
	if len(layouts) == 0 {
		layouts = []string{chess.StandardLayout}
	}
	envs := make([]*move.Env, 0, len(layouts))
	for _, layout := range layouts {
		board, err := chess.ParseLayout(layout)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return exitUsage
		}
		env, err := eng.NewEnv(board)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return exitUsage
		}
		envs = append(envs, env)
	}

	log.WithFields(logrus.Fields{
		"boards":  len(envs),
		"moves":   len(opts.moves),
		"workers": cfg.Worker.Count,
	}).Debug("applying moves")

	code := exitOK
	var rep report
	for i, moves := range applyMoves(ctx, eng, envs, opts.moves, cfg.Worker) {
		for _, m := range moves {
			if m.State != engine.StateSuccess.String() {
				code = exitFailed
			}
		}
		rep.Boards = append(rep.Boards, boardReport{
			Start:  layouts[i],
			Moves:  moves,
			Layout: chess.FormatLayout(envs[i].Board),
		})
	}

	if opts.jsonReport {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(rep); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return exitFailed
		}
		return code
	}
	writeText(stdout, rep)
	return code
}

// loadConfig layers defaults, the config file, the environment and the
// command-line flags, then validates the result.
func loadConfig(opts *options) (*config.Config, error) {
	return config.LoadWith(opts.configPath, func(cfg *config.Config) {
		applyFlags(cfg, opts)
	})
}

// parseMove splits "d2d3" or "d2-d3" into its two squares.
func parseMove(s string) (from, to chess.Coordinate, err error) {
	s = strings.ToLower(strings.TrimSpace(s))
	var a, b string
	if i := strings.IndexAny(s, "-x"); i > 0 {
		a, b = s[:i], s[i+1:]
	} else {
		// The destination starts at the second letter.
		i := strings.IndexFunc(s[min(1, len(s)):], func(r rune) bool { return r >= 'a' && r <= 'z' })
		if i < 0 {
			return from, to, fmt.Errorf("move %q needs two squares", s)
		}
		a, b = s[:i+1], s[i+1:]
	}
	if from, err = chess.ParseCoordinate(a); err != nil {
		return from, to, err
	}
	if to, err = chess.ParseCoordinate(b); err != nil {
		return from, to, err
	}
	return from, to, nil
}

func writeText(w io.Writer, rep report) {
	for i, b := range rep.Boards {
		if len(rep.Boards) > 1 {
			if i > 0 {
				fmt.Fprintln(w)
			}
			fmt.Fprintf(w, "board %d: %s\n", i+1, b.Start)
		}
		for _, m := range b.Moves {
			line := fmt.Sprintf("%-8s %s", m.Move, m.State)
			if m.Kind != "" {
				line += " " + m.Kind
			}
			if m.Step != "" {
				line += " at " + m.Step
			}
			if m.Error != "" {
				line += ": " + m.Error
			}
			fmt.Fprintln(w, line)
		}
		fmt.Fprintf(w, "layout: %s\n", b.Layout)
	}
}
