package game

import "github.com/mrsobakin/seabattle/internal/game/field"

type EventKind int

const (
	// Side is about to pick a target.
	EventTurn EventKind = iota
	// Shot was applied to the enemy field.
	EventShot
	// Shot was refused, the side will be asked again.
	EventRejected
)

func (k EventKind) String() string {
	switch k {
	case EventTurn:
		return "turn"
	case EventShot:
		return "shot"
	case EventRejected:
		return "rejected"
	default:
		panic("invalid event kind")
	}
}

type Event struct {
	Kind   EventKind
	Role   Role
	Name   string
	Target field.Coordinate
	Result field.ShootResult

	// Either `field.ErrOutOfBounds` or `field.ErrAlreadyShot`,
	// possibly wrapped. Set for `EventRejected` only.
	Err error
}

type Observer interface {
	Observe(Event)
}

type ObserverFunc func(Event)

func (f ObserverFunc) Observe(e Event) {
	f(e)
}

// Discards all events.
var NopObserver Observer = ObserverFunc(func(Event) {})
