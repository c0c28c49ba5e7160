package judge

import (
	"context"
	"math/rand"

	"golang.org/x/sync/errgroup"

	"github.com/mrsobakin/seabattle/internal/game"
	"github.com/mrsobakin/seabattle/internal/game/placement"
)

type Summary struct {
	Games      int     `json:"games"`
	FirstWins  int     `json:"first_wins"`
	SecondWins int     `json:"second_wins"`
	Ties       int     `json:"ties"`
	AvgTurns   float64 `json:"avg_turns"`
}

func (s *Summary) add(v Verdict) {
	s.Games++
	switch v.Winner {
	case FirstWon:
		s.FirstWins++
	case SecondWon:
		s.SecondWins++
	default:
		s.Ties++
	}
	s.AvgTurns += (float64(v.Turns) - s.AvgTurns) / float64(s.Games)
}

// Creates two computer-driven sides on freshly generated fields.
// Same seed gives the same match.
func (j *Judge) RandomSides(seed int64) (first, second Side) {
	rng := rand.New(rand.NewSource(seed))

	planner := placement.New(rng)
	planner.Logger = j.logger()

	first = Side{
		Name:  "computer 1",
		Actor: game.NewRandomActor(rng),
		Field: planner.Generate(j.Conf),
	}
	second = Side{
		Name:  "computer 2",
		Actor: game.NewRandomActor(rng),
		Field: planner.Generate(j.Conf),
	}
	second.Field.SetHidden(true)

	return first, second
}

// Plays `games` computer matches, at most `parallel` at once, and
// summarizes their verdicts. Match i is seeded with seed+i.
//
// Observer is not used, as matches run concurrently.
func (j *Judge) Series(ctx context.Context, games int, seed int64, parallel int) (Summary, error) {
	quiet := *j
	quiet.Observer = game.NopObserver

	verdicts := make([]Verdict, games)

	g, gctx := errgroup.WithContext(ctx)
	if parallel > 0 {
		g.SetLimit(parallel)
	}

	for i := range games {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			first, second := quiet.RandomSides(seed + int64(i))
			verdicts[i] = quiet.Judge(gctx, first, second)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return Summary{}, err
	}

	var summary Summary
	for _, v := range verdicts {
		summary.add(v)
	}
	return summary, nil
}
