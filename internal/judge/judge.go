package judge

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/charmbracelet/log"

	"github.com/mrsobakin/seabattle/internal/game"
	"github.com/mrsobakin/seabattle/internal/game/field"
	"github.com/mrsobakin/seabattle/internal/utils"
)

var (
	errTimeoutGlobal = errors.New("global timeout")
	errTimeoutFirst  = errors.New("first side timeout")
	errTimeoutSecond = errors.New("second side timeout")
)

func timeoutCause(role game.Role) error {
	if role == game.RoleFirst {
		return errTimeoutFirst
	}
	return errTimeoutSecond
}

type Result int

const (
	Tie Result = iota
	FirstWon
	SecondWon
)

func (r Result) String() string {
	switch r {
	case Tie:
		return "tie"
	case FirstWon:
		return "first"
	case SecondWon:
		return "second"
	default:
		panic("invalid verdict")
	}
}

func (r Result) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

func ResultFromWinner(role game.Role) Result {
	if role == game.RoleFirst {
		return FirstWon
	}
	if role == game.RoleSecond {
		return SecondWon
	}
	panic("unknown role")
}

type Reason int

const (
	Ok Reason = iota
	RuntimeError
	Timeout
	GlobalTimeout
	Aborted
)

func (r Reason) String() string {
	switch r {
	case Ok:
		return "OK"
	case RuntimeError:
		return "RE"
	case Timeout:
		return "TL"
	case GlobalTimeout:
		return "GTL"
	case Aborted:
		return "ABRT"
	default:
		panic("invalid reason")
	}
}

func (r Reason) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

type Stats struct {
	Shots int `json:"shots"`
	Hits  int `json:"hits"`
	Kills int `json:"kills"`
}

func (s *Stats) add(result field.ShootResult) {
	s.Shots++
	switch result {
	case field.Hit:
		s.Hits++
	case field.Kill:
		s.Hits++
		s.Kills++
	}
}

type Verdict struct {
	Winner  Result   `json:"winner"`
	Reason  Reason   `json:"reason"`
	Details string   `json:"details"`
	Turns   int      `json:"turns"`
	Stats   [2]Stats `json:"stats"`
}

// Side binds an actor to its own field. The actor shoots at the
// field of the other side.
type Side struct {
	Name  string
	Actor game.Actor
	Field *field.Grid
}

type Judge struct {
	Conf field.Configuration

	// Total thinking time allowed for each side. Zero means no limit.
	PlayerTimeout time.Duration
	// Zero means no limit.
	GlobalTimeout time.Duration

	Observer game.Observer
	Logger   *log.Logger
}

func (j *Judge) observer() game.Observer {
	if j.Observer == nil {
		return game.NopObserver
	}
	return j.Observer
}

func (j *Judge) logger() *log.Logger {
	if j.Logger == nil {
		return log.Default()
	}
	return j.Logger
}

func (j *Judge) limitContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if j.GlobalTimeout > 0 {
		return context.WithTimeoutCause(ctx, j.GlobalTimeout, errTimeoutGlobal)
	}
	return context.WithCancel(ctx)
}

// As per the rules:
//   - If a side kills the whole enemy fleet, it wins.
//   - If a side runs out of thinking time or its actor
//     fails, the other side wins.
//   - If the match is cancelled or runs out of global
//     time, it's a tie. Same if a player quits.
func (j *Judge) Judge(ctx context.Context, first, second Side) Verdict {
	limitedCtx, cancel := j.limitContext(ctx)
	defer cancel()

	sides := [2]*side{
		{Side: first, ctx: limitedCtx},
		{Side: second, ctx: limitedCtx},
	}

	if j.PlayerTimeout > 0 {
		for role, s := range sides {
			swCtx, sw := utils.NewStopwatchContext(limitedCtx, j.PlayerTimeout, timeoutCause(game.Role(role)))
			defer sw.Close()

			s.ctx = swCtx
			s.Actor = game.NewStopwatchActor(s.Actor, sw)
		}
	}

	r := newRound(sides[0], sides[1], j.Conf.ShipCount(), j.observer(), j.logger())

	result := r.checkFields(j.Conf.Size)
	if result == nil {
		result = r.Play()
	}

	verdict := Verdict{
		Turns: r.turns,
		Stats: [2]Stats{sides[0].stats, sides[1].stats},
	}

	details := result.Err
	if errors.Is(details, errPlayerWon) {
		verdict.Winner = ResultFromWinner(result.Role)
		details = nil
	} else {
		verdict.Winner = ResultFromWinner(result.Role.Other())
	}

	verdict.Reason = func() Reason {
		if errors.Is(details, errTimeoutGlobal) {
			verdict.Winner = Tie
			return GlobalTimeout
		}

		if errors.Is(details, errTimeoutFirst) || errors.Is(details, errTimeoutSecond) {
			return Timeout
		}

		if errors.Is(details, context.Canceled) || errors.Is(details, game.ErrQuit) {
			verdict.Winner = Tie
			return Aborted
		}

		if details != nil {
			return RuntimeError
		}

		return Ok
	}()

	if details != nil {
		verdict.Details = details.Error()
	}

	j.logger().Info("match finished",
		"winner", verdict.Winner,
		"reason", verdict.Reason,
		"turns", verdict.Turns,
	)

	return verdict
}
