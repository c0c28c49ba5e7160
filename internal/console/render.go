package console

import (
	"fmt"
	"strings"

	"github.com/mrsobakin/seabattle/internal/game/field"
)

func cellSymbol(state field.CellState, hidden bool) string {
	switch state {
	case field.CellDeck:
		if hidden {
			return "O"
		}
		return "■"
	case field.CellHit:
		return "X"
	case field.CellMiss:
		return "."
	default:
		return "O"
	}
}

// Draws the field as a table with 1-based row and column numbers.
// Undamaged decks of hidden fields are drawn as empty cells.
//
//	  | 1 | 2 | 3 |
//	1 | ■ | ■ | . |
//	2 | . | X | O |
func Render(v field.View) string {
	var b strings.Builder

	b.WriteString(" ")
	for col := range v.Size() {
		fmt.Fprintf(&b, " | %d", col+1)
	}
	b.WriteString(" |")

	for row := range v.Size() {
		fmt.Fprintf(&b, "\n%d", row+1)
		for col := range v.Size() {
			state := v.Cell(field.Coordinate{Row: row, Col: col})
			fmt.Fprintf(&b, " | %s", cellSymbol(state, v.Hidden()))
		}
		b.WriteString(" |")
	}

	return b.String()
}
