package field

import (
	"fmt"

	"github.com/dolthub/swiss"
)

var contour = [...][2]int{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 0}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// Grid is a square field holding ships and shot marks.
//
// During setup the busy set holds ship decks together with their
// contours, so that ships can not touch each other. After
// `ResetTargeting` it only holds cells that were shot at, plus
// contours of killed ships, which are known to be empty.
type Grid struct {
	size   int
	hidden bool
	cells  [][]CellState
	busy   *swiss.Map[Coordinate, struct{}]
	ships  []*Ship
	killed int
}

func NewGrid(size int, hidden bool) *Grid {
	cells := make([][]CellState, size)
	for i := range cells {
		cells[i] = make([]CellState, size)
	}

	return &Grid{
		size:   size,
		hidden: hidden,
		cells:  cells,
		busy:   swiss.NewMap[Coordinate, struct{}](uint32(size * size)),
	}
}

var _ View = (*Grid)(nil)

func (g *Grid) Size() int {
	return g.size
}

func (g *Grid) Hidden() bool {
	return g.hidden
}

func (g *Grid) SetHidden(hidden bool) {
	g.hidden = hidden
}

func (g *Grid) Cell(c Coordinate) CellState {
	return g.cells[c.Row][c.Col]
}

func (g *Grid) IsOut(c Coordinate) bool {
	return c.Row < 0 || c.Col < 0 || c.Row >= g.size || c.Col >= g.size
}

func (g *Grid) IsBusy(c Coordinate) bool {
	return g.busy.Has(c)
}

// Returns copies of placed ships, in placement order.
func (g *Grid) Ships() []Ship {
	ships := make([]Ship, len(g.ships))
	for i, s := range g.ships {
		ships[i] = *s
	}
	return ships
}

// Amount of killed ships.
func (g *Grid) Killed() int {
	return g.killed
}

func (g *Grid) AllDead() bool {
	return g.killed == len(g.ships)
}

// Places the ship on the field.
//
// Fails with `ErrWrongPlacement` if the ship leaves the field or
// touches an already placed ship. Field is left unchanged then.
func (g *Grid) PlaceShip(ship *Ship) error {
	for c := range ship.Cells() {
		if g.IsOut(c) || g.busy.Has(c) {
			return fmt.Errorf("%w: cell %s", ErrWrongPlacement, c)
		}
	}

	for c := range ship.Cells() {
		g.cells[c.Row][c.Col] = CellDeck
		g.busy.Put(c, struct{}{})
	}

	g.ships = append(g.ships, ship)
	g.outline(ship, false)

	return nil
}

// Adds all in-field neighbours of the ship to the busy set. If mark
// is set, the newly added cells are also shown as misses.
func (g *Grid) outline(ship *Ship, mark bool) {
	for c := range ship.Cells() {
		for _, d := range contour {
			near := c.Add(d[0], d[1])
			if g.IsOut(near) || g.busy.Has(near) {
				continue
			}

			if mark {
				g.cells[near.Row][near.Col] = CellMiss
			}
			g.busy.Put(near, struct{}{})
		}
	}
}

// Emulates a shot and modifies field state.
//
// Fails with `ErrOutOfBounds` or `ErrAlreadyShot`, leaving the
// field unchanged.
func (g *Grid) Shoot(c Coordinate) (ShootResult, error) {
	if g.IsOut(c) {
		return Miss, fmt.Errorf("%w: %s", ErrOutOfBounds, c)
	}

	if g.busy.Has(c) {
		return Miss, fmt.Errorf("%w: %s", ErrAlreadyShot, c)
	}

	g.busy.Put(c, struct{}{})

	for _, ship := range g.ships {
		if !ship.IsHitBy(c) {
			continue
		}

		ship.hit()
		g.cells[c.Row][c.Col] = CellHit

		if !ship.IsDead() {
			return Hit, nil
		}

		g.killed++
		g.outline(ship, true)
		return Kill, nil
	}

	g.cells[c.Row][c.Col] = CellMiss
	return Miss, nil
}

// Forgets placement contours so that only shots block further shots.
// Must be called once the fleet is placed.
func (g *Grid) ResetTargeting() {
	g.busy = swiss.NewMap[Coordinate, struct{}](uint32(g.size * g.size))
}
