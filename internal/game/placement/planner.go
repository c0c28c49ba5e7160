package placement

import (
	"errors"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/mrsobakin/seabattle/internal/game/field"
)

const DefaultMaxAttempts = 2000

var (
	ErrSearchExhausted = errors.New("placement search exhausted")
)

// Planner randomly arranges a fleet on an empty field.
//
// Planner is not thread safe, as it owns its random source.
type Planner struct {
	rng *rand.Rand

	// Total placement attempts allowed for the whole fleet
	// before the field is abandoned.
	MaxAttempts int
	Logger      *log.Logger
}

func New(rng *rand.Rand) *Planner {
	return &Planner{
		rng:         rng,
		MaxAttempts: DefaultMaxAttempts,
		Logger:      log.Default(),
	}
}

// Tries to place the whole fleet on a fresh field.
//
// Bows are sampled from [0, size] on both axes. Ships sticking out of
// the field are rejected by `Grid.PlaceShip` like any other wrong
// placement.
func (p *Planner) TryGenerate(conf field.Configuration) (*field.Grid, error) {
	if err := conf.IsValid(); err != nil {
		return nil, err
	}

	g := field.NewGrid(conf.Size, false)
	attempts := 0

	for _, length := range conf.Lengths() {
		for {
			attempts++
			if attempts > p.MaxAttempts {
				return nil, ErrSearchExhausted
			}

			bow := field.Coordinate{
				Row: p.rng.Intn(conf.Size + 1),
				Col: p.rng.Intn(conf.Size + 1),
			}
			orientation := field.Orientation(p.rng.Intn(2))

			err := g.PlaceShip(field.NewShip(bow, length, orientation))
			if err == nil {
				break
			}
			if !errors.Is(err, field.ErrWrongPlacement) {
				return nil, err
			}
		}
	}

	g.ResetTargeting()
	return g, nil
}

// Generates fields until one fits the whole fleet.
//
// The restart loop is not bounded: for the default configuration a
// field is usually found within a couple of tries. Panics if the
// configuration is invalid, as no field would ever be found.
func (p *Planner) Generate(conf field.Configuration) *field.Grid {
	if err := conf.IsValid(); err != nil {
		panic(err)
	}

	for restarts := 0; ; restarts++ {
		g, err := p.TryGenerate(conf)
		if err == nil {
			if restarts > 0 {
				p.Logger.Debug("fleet placed", "restarts", restarts)
			}
			return g
		}

		p.Logger.Debug("placement restarted", "reason", err, "restarts", restarts+1)
	}
}
