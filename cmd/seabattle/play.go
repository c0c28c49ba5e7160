package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/mrsobakin/seabattle/internal/console"
	"github.com/mrsobakin/seabattle/internal/game"
	"github.com/mrsobakin/seabattle/internal/game/field"
	"github.com/mrsobakin/seabattle/internal/game/placement"
	"github.com/mrsobakin/seabattle/internal/judge"
)

func (a *app) newPlayCmd() *cobra.Command {
	var layout string

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play against the computer",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			return a.play(ctx, layout, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&layout, "layout", "", "file with your own ship arrangement")
	cmd.Flags().DurationVar(&a.thinkLimit, "think-limit", 0, "your total thinking time, 0 means no limit")

	return cmd
}

func loadLayout(path string, conf field.Configuration) (*field.Grid, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	size, err := field.ParseSize(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	if size != conf.Size {
		return nil, fmt.Errorf("layout is for %dx%d board, playing on %dx%d", size, size, conf.Size, conf.Size)
	}

	return field.Load(conf, field.ParseShips(bytes.NewReader(data)))
}

func (a *app) play(ctx context.Context, layout string, in io.Reader, out io.Writer) error {
	conf := a.cfg.Configuration()
	rng := a.newRand()

	planner := placement.New(rng)
	planner.Logger = a.logger

	var user *field.Grid
	if layout != "" {
		var err error
		if user, err = loadLayout(layout, conf); err != nil {
			return fmt.Errorf("failed to load layout: %w", err)
		}
	} else {
		user = planner.Generate(conf)
	}

	computer := planner.Generate(conf)
	computer.SetHidden(true)

	console.Greet(out)

	j := a.newJudge()
	// The user may think as long as they like unless limited explicitly.
	j.GlobalTimeout = 0
	j.Observer = console.NewPrinter(out,
		console.Board{Title: "User board", View: user},
		console.Board{Title: "Computer board", View: computer},
	)

	prompter := console.NewPrompter(in, out)
	defer prompter.Close()

	verdict := j.Judge(ctx,
		judge.Side{
			Name:  "user",
			Actor: game.NewHumanActor(prompter),
			Field: user,
		},
		judge.Side{
			Name:  "computer",
			Actor: game.NewRandomActor(rng),
			Field: computer,
		},
	)

	announce(out, verdict)
	return nil
}

func announce(out io.Writer, v judge.Verdict) {
	fmt.Fprintln(out, "--------------------")

	switch v.Winner {
	case judge.FirstWon:
		fmt.Fprintln(out, "User won!")
	case judge.SecondWon:
		fmt.Fprintln(out, "Computer won!")
	default:
		fmt.Fprintln(out, "Game aborted")
	}

	if v.Reason == judge.Timeout {
		fmt.Fprintln(out, "Thinking time is over")
	}
}
