package field

import (
	"fmt"
	"iter"
)

type Orientation int

const (
	Vertical Orientation = iota
	Horizontal
)

func (o Orientation) String() string {
	if o == Vertical {
		return "v"
	} else {
		return "h"
	}
}

func ParseOrientation(s string) (Orientation, error) {
	switch s {
	case "v":
		return Vertical, nil
	case "h":
		return Horizontal, nil
	default:
		return 0, fmt.Errorf("invalid orientation: %q", s)
	}
}

func (o Orientation) step() (dr, dc int) {
	if o == Vertical {
		return 1, 0
	}
	return 0, 1
}

type Ship struct {
	Bow         Coordinate
	Size        int
	Orientation Orientation

	lives int
}

func NewShip(bow Coordinate, size int, orientation Orientation) *Ship {
	return &Ship{
		Bow:         bow,
		Size:        size,
		Orientation: orientation,
		lives:       size,
	}
}

// Cells yields ship decks starting from the bow.
func (s *Ship) Cells() iter.Seq[Coordinate] {
	return func(yield func(Coordinate) bool) {
		dr, dc := s.Orientation.step()
		for i := range s.Size {
			if !yield(s.Bow.Add(i*dr, i*dc)) {
				return
			}
		}
	}
}

func (s *Ship) IsHitBy(c Coordinate) bool {
	for deck := range s.Cells() {
		if deck == c {
			return true
		}
	}
	return false
}

// Amount of decks not yet hit.
func (s *Ship) Lives() int {
	return s.lives
}

func (s *Ship) IsDead() bool {
	return s.lives == 0
}

func (s *Ship) hit() {
	if s.lives > 0 {
		s.lives--
	}
}
