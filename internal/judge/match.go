package judge

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/mrsobakin/seabattle/internal/game"
	"github.com/mrsobakin/seabattle/internal/game/field"
)

var (
	errPlayerWon error = errors.New("player won")
)

type roleError struct {
	Role game.Role
	Err  error
}

func failedAs(role game.Role, err error) *roleError {
	return &roleError{
		role,
		err,
	}
}

func wonAs(role game.Role) *roleError {
	return &roleError{
		role,
		errPlayerWon,
	}
}

type side struct {
	Side
	ctx   context.Context
	stats Stats
}

type round struct {
	sides    [2]*side
	fleet    int
	turns    int
	observer game.Observer
	logger   *log.Logger
}

func newRound(first, second *side, fleet int, observer game.Observer, logger *log.Logger) *round {
	return &round{
		sides:    [2]*side{first, second},
		fleet:    fleet,
		observer: observer,
		logger:   logger,
	}
}

func (r *round) sideByRole(role game.Role) *side {
	return r.sides[role]
}

func (r *round) notify(e game.Event) {
	e.Name = r.sideByRole(e.Role).Name
	r.observer.Observe(e)
}

// Asks the shooter for targets until one of them is accepted by the
// victim field. Returns whether the shooter moves again.
func (r *round) Shoot(shooterRole game.Role) (bool, *roleError) {
	shooter := r.sideByRole(shooterRole)
	victim := r.sideByRole(shooterRole.Other())

	for {
		if shooter.ctx.Err() != nil {
			return false, failedAs(shooterRole, context.Cause(shooter.ctx))
		}

		target, err := shooter.Actor.Target(shooter.ctx, victim.Field)
		if err != nil {
			if shooter.ctx.Err() != nil {
				err = context.Cause(shooter.ctx)
			}
			return false, failedAs(shooterRole, fmt.Errorf("failed to get target: %w", err))
		}

		result, err := victim.Field.Shoot(target)
		if errors.Is(err, field.ErrOutOfBounds) || errors.Is(err, field.ErrAlreadyShot) {
			r.logger.Debug("shot rejected", "side", shooter.Name, "target", target, "err", err)
			r.notify(game.Event{
				Kind:   game.EventRejected,
				Role:   shooterRole,
				Target: target,
				Err:    err,
			})
			continue
		}
		if err != nil {
			return false, failedAs(shooterRole, err)
		}

		shooter.stats.add(result)

		r.logger.Debug("shot", "side", shooter.Name, "target", target, "result", result)
		r.notify(game.Event{
			Kind:   game.EventShot,
			Role:   shooterRole,
			Target: target,
			Result: result,
		})

		return result != field.Miss, nil
	}
}

// Returns a win of the side whose enemy has no ships left.
func (r *round) checkWinner() *roleError {
	for _, role := range []game.Role{game.RoleFirst, game.RoleSecond} {
		if r.sideByRole(role).Field.Killed() >= r.fleet {
			return wonAs(role.Other())
		}
	}
	return nil
}

func (r *round) checkFields(size int) *roleError {
	for _, role := range []game.Role{game.RoleFirst, game.RoleSecond} {
		f := r.sideByRole(role).Field
		if f.Size() != size || len(f.Ships()) != r.fleet {
			return failedAs(role, fmt.Errorf("field does not match configuration"))
		}
	}
	return nil
}

func (r *round) Play() *roleError {
	currentPlayer := game.RoleFirst
	for {
		r.notify(game.Event{
			Kind: game.EventTurn,
			Role: currentPlayer,
		})

		again, err := r.Shoot(currentPlayer)
		if err != nil {
			return err
		}
		r.turns++

		if err := r.checkWinner(); err != nil {
			return err
		}

		if !again {
			currentPlayer = currentPlayer.Other()
		}
	}
}
