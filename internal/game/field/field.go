package field

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"iter"
	"slices"
	"strconv"
	"strings"
)

var (
	ErrWrongPlacement = errors.New("wrong ship placement")
	ErrOutOfBounds    = errors.New("shot is out of the field")
	ErrAlreadyShot    = errors.New("cell was already shot")
)

type ShootResult int

const (
	Miss ShootResult = iota
	Hit
	Kill
)

var shootResultNames = [...]string{
	Miss: "miss",
	Hit:  "hit",
	Kill: "kill",
}

func (r *ShootResult) FromString(str string) error {
	i := slices.Index(shootResultNames[:], str)
	if i < 0 {
		return fmt.Errorf("invalid shoot result: %q", str)
	}
	*r = ShootResult(i)
	return nil
}

func (r ShootResult) String() string {
	return shootResultNames[r]
}

func (r ShootResult) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

type CellState int

const (
	CellEmpty CellState = iota
	CellDeck
	CellHit
	CellMiss
)

func (s CellState) String() string {
	switch s {
	case CellEmpty:
		return "empty"
	case CellDeck:
		return "deck"
	case CellHit:
		return "hit"
	case CellMiss:
		return "miss"
	default:
		return "unknown"
	}
}

// Configuration describes a square field and its fleet.
//
// Sizes[i] is the amount of ships of length i+1.
type Configuration struct {
	Size  int
	Sizes [4]int
}

// Returns 6x6 field with one 3-deck, two 2-deck and four 1-deck ships.
func DefaultConfiguration() Configuration {
	return Configuration{
		Size:  6,
		Sizes: [4]int{4, 2, 1, 0},
	}
}

// Checks that the fleet can be placed on the field at all.
//
// Every ship together with the gap below and to the right of it
// takes a (length+1)x2 rectangle of a (size+1)x(size+1) square, and
// these rectangles never overlap. So the fleet needs the longest ship
// to fit in a row and the rectangles to fit by area. A fleet filling
// the square exactly fits only as a perfect tiling, which random
// placement practically never finds, so it is rejected as well.
func (c Configuration) IsValid() error {
	if c.Size <= 0 {
		return fmt.Errorf("non-positive field size: %d", c.Size)
	}

	if slices.ContainsFunc(c.Sizes[:], func(n int) bool { return n < 0 }) {
		return fmt.Errorf("negative ship amount: %v", c.Sizes)
	}

	lengths := c.Lengths()
	if len(lengths) == 0 {
		return fmt.Errorf("empty fleet: %v", c.Sizes)
	}

	if lengths[0] > c.Size {
		return fmt.Errorf("%d-deck ship does not fit %dx%d field", lengths[0], c.Size, c.Size)
	}

	area := 0
	for _, length := range lengths {
		area += 2 * (length + 1)
	}
	if area >= (c.Size+1)*(c.Size+1) {
		return fmt.Errorf("fleet %v does not fit %dx%d field", c.Sizes, c.Size, c.Size)
	}

	return nil
}

func (c Configuration) ShipCount() int {
	return c.Sizes[0] + c.Sizes[1] + c.Sizes[2] + c.Sizes[3]
}

// Total amount of decks in the fleet.
func (c Configuration) Decks() int {
	decks := 0
	for _, length := range c.Lengths() {
		decks += length
	}
	return decks
}

// Returns ship lengths in placement order, longest first.
func (c Configuration) Lengths() []int {
	lengths := make([]int, 0, max(c.ShipCount(), 0))
	for size := len(c.Sizes); size >= 1; size-- {
		for range c.Sizes[size-1] {
			lengths = append(lengths, size)
		}
	}
	return lengths
}

// View is a read-only access to a field, enough to aim at it or draw it.
type View interface {
	Size() int

	// Whether undamaged decks must not be shown to the viewer.
	Hidden() bool

	// Returns the state of the cell. Cell must be inside the field.
	Cell(Coordinate) CellState
}

// Builds a field from the given ship sequence.
//
// If ships intersect or touch each other, exceed field size, or
// ship count does not match the configuration, returns an error.
func Load(conf Configuration, ships iter.Seq[Ship]) (*Grid, error) {
	if err := conf.IsValid(); err != nil {
		return nil, err
	}

	g := NewGrid(conf.Size, false)
	var counts [4]int

	for ship := range ships {
		if ship.Size <= 0 || ship.Size > len(conf.Sizes) {
			return nil, fmt.Errorf("invalid ship size: %d", ship.Size)
		}

		if err := g.PlaceShip(NewShip(ship.Bow, ship.Size, ship.Orientation)); err != nil {
			return nil, fmt.Errorf("ship %d %s at %s: %w", ship.Size, ship.Orientation, ship.Bow, err)
		}

		counts[ship.Size-1]++
	}

	if !slices.Equal(counts[:], conf.Sizes[:]) {
		return nil, errors.New("ship count does not match configuration")
	}

	g.ResetTargeting()
	return g, nil
}

// Reads a layout: the field size on the first line, then one ship
// per line as `<size> <h|v> <row> <col>`. Blank lines and lines
// starting with `#` are skipped. Iteration stops at the first
// malformed line.
func ParseShips(src io.Reader) iter.Seq[Ship] {
	return func(yield func(s Ship) bool) {
		lines := bufio.NewScanner(src)
		lines.Scan()

		for lines.Scan() {
			line := strings.TrimSpace(lines.Text())
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}

			ship, ok := parseShip(line)
			if !ok || !yield(ship) {
				return
			}
		}
	}
}

func parseShip(line string) (Ship, bool) {
	fields := strings.Fields(line)
	if len(fields) != 4 {
		return Ship{}, false
	}

	orientation, err := ParseOrientation(fields[1])
	if err != nil {
		return Ship{}, false
	}

	var nums [3]int
	for i, s := range []string{fields[0], fields[2], fields[3]} {
		if nums[i], err = strconv.Atoi(s); err != nil {
			return Ship{}, false
		}
	}

	return Ship{
		Bow:         Coordinate{Row: nums[1], Col: nums[2]},
		Size:        nums[0],
		Orientation: orientation,
	}, true
}

// Reads the field size from the first line of a layout.
func ParseSize(src io.Reader) (int, error) {
	var size int
	if _, err := fmt.Fscanf(src, "%d\n", &size); err != nil {
		return 0, fmt.Errorf("failed to read field size: %w", err)
	}
	return size, nil
}
