package field

import "fmt"

// Zero-based position on a field.
type Coordinate struct {
	Row, Col int
}

func (c Coordinate) Add(dr, dc int) Coordinate {
	return Coordinate{c.Row + dr, c.Col + dc}
}

func (c Coordinate) String() string {
	return fmt.Sprintf("(%d, %d)", c.Row, c.Col)
}
