package main

import (
	"math/rand"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/mrsobakin/seabattle/internal/config"
	"github.com/mrsobakin/seabattle/internal/judge"
)

type app struct {
	cfg    config.Config
	logger *log.Logger

	envFile    string
	seed       int64
	boardSize  int
	logLevel   string
	thinkLimit time.Duration
}

// Loads configuration and applies explicitly set flags on top of it.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.envFile)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Seed = a.seed
	}
	if flags.Changed("size") {
		cfg.BoardSize = a.boardSize
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = a.logLevel
	}
	if flags.Changed("think-limit") {
		cfg.ThinkLimit = a.thinkLimit
	}

	if err := cfg.IsValid(); err != nil {
		return err
	}

	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Level:           level,
	})

	return nil
}

func (a *app) newSeed() int64 {
	if a.cfg.Seed != 0 {
		return a.cfg.Seed
	}
	return time.Now().UnixNano()
}

func (a *app) newRand() *rand.Rand {
	return rand.New(rand.NewSource(a.newSeed()))
}

func (a *app) newJudge() *judge.Judge {
	return &judge.Judge{
		Conf:          a.cfg.Configuration(),
		PlayerTimeout: a.cfg.ThinkLimit,
		GlobalTimeout: a.cfg.GlobalTimeout,
		Logger:        a.logger,
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:               "seabattle",
		Short:             "Sea battle on a small square board",
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.envFile, "env", ".env", "file with SEABATTLE_* variables")
	flags.Int64Var(&a.seed, "seed", 0, "random seed, 0 seeds from the clock")
	flags.IntVar(&a.boardSize, "size", 6, "board side")
	flags.StringVar(&a.logLevel, "log-level", "info", "debug, info, warn or error")

	root.AddCommand(
		a.newPlayCmd(),
		a.newSimulateCmd(),
		a.newServeCmd(),
	)

	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
