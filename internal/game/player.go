package game

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"

	"github.com/mrsobakin/seabattle/internal/game/field"
	"github.com/mrsobakin/seabattle/internal/utils"
)

// Returned by actors whose player left the match.
var ErrQuit = errors.New("player quit")

type Role int

const (
	RoleFirst Role = iota
	RoleSecond
)

func (r Role) Other() Role {
	if r == RoleFirst {
		return RoleSecond
	} else {
		return RoleFirst
	}
}

func (r Role) String() string {
	if r == RoleFirst {
		return "first"
	} else {
		return "second"
	}
}

type Actor interface {
	// Picks the next cell to shoot at on the enemy field.
	//
	// Returned cell is not required to be valid: shots outside
	// the field or at already shot cells are rejected and the
	// actor is asked again.
	//
	// Blocking actors must return once ctx is done.
	Target(ctx context.Context, enemy field.View) (field.Coordinate, error)
}

// TargetSource supplies targets entered by a human, already
// validated and converted to zero-based coordinates.
type TargetSource interface {
	NextTarget(ctx context.Context) (field.Coordinate, error)
}

type HumanActor struct {
	source TargetSource
}

func NewHumanActor(source TargetSource) *HumanActor {
	return &HumanActor{source}
}

// Input running out means the user has left, reported as `ErrQuit`.
func (a *HumanActor) Target(ctx context.Context, _ field.View) (field.Coordinate, error) {
	target, err := a.source.NextTarget(ctx)
	if errors.Is(err, io.EOF) {
		return target, fmt.Errorf("%w: %w", ErrQuit, err)
	}
	return target, err
}

// RandomActor shoots at uniformly random cells, including the
// already shot ones.
type RandomActor struct {
	rng *rand.Rand
}

func NewRandomActor(rng *rand.Rand) *RandomActor {
	return &RandomActor{rng}
}

func (a *RandomActor) Target(_ context.Context, enemy field.View) (field.Coordinate, error) {
	return field.Coordinate{
		Row: a.rng.Intn(enemy.Size()),
		Col: a.rng.Intn(enemy.Size()),
	}, nil
}

// StopwatchActor charges the time spent picking targets to
// the stopwatch.
type StopwatchActor struct {
	actor     Actor
	stopwatch *utils.Stopwatch
}

func NewStopwatchActor(actor Actor, stopwatch *utils.Stopwatch) *StopwatchActor {
	return &StopwatchActor{
		actor,
		stopwatch,
	}
}

func (a *StopwatchActor) Target(ctx context.Context, enemy field.View) (field.Coordinate, error) {
	a.stopwatch.Resume()
	defer a.stopwatch.Pause()
	return a.actor.Target(ctx, enemy)
}
