package console

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/mrsobakin/seabattle/internal/game"
	"github.com/mrsobakin/seabattle/internal/game/field"
)

const separator = "--------------------"

type Board struct {
	Title string
	View  field.View
}

// Printer shows the course of a match to the user.
type Printer struct {
	out    io.Writer
	boards [2]Board
}

var _ game.Observer = (*Printer)(nil)

func NewPrinter(out io.Writer, first, second Board) *Printer {
	return &Printer{
		out:    out,
		boards: [2]Board{first, second},
	}
}

func resultMessage(r field.ShootResult) string {
	switch r {
	case field.Hit:
		return "Ship damaged!"
	case field.Kill:
		return "Ship destroyed!"
	default:
		return "Miss!"
	}
}

func rejectMessage(err error) string {
	switch {
	case errors.Is(err, field.ErrOutOfBounds):
		return "You are trying to shoot outside the board!"
	case errors.Is(err, field.ErrAlreadyShot):
		return "You have already shot at this cell"
	default:
		return err.Error()
	}
}

func (p *Printer) Observe(e game.Event) {
	switch e.Kind {
	case game.EventTurn:
		for _, b := range p.boards {
			fmt.Fprintln(p.out, separator)
			fmt.Fprintf(p.out, "%s:\n%s\n", b.Title, Render(b.View))
		}
		fmt.Fprintln(p.out, separator)
		fmt.Fprintf(p.out, "%s moves!\n", capitalize(e.Name))

	case game.EventShot:
		fmt.Fprintf(p.out, "%s shoots: %d %d\n", capitalize(e.Name), e.Target.Row+1, e.Target.Col+1)
		fmt.Fprintln(p.out, resultMessage(e.Result))

	case game.EventRejected:
		fmt.Fprintf(p.out, "%s shoots: %d %d\n", capitalize(e.Name), e.Target.Row+1, e.Target.Col+1)
		fmt.Fprintln(p.out, rejectMessage(e.Err))
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func Greet(w io.Writer) {
	fmt.Fprintln(w, "------------------------")
	fmt.Fprintln(w, "      Welcome to        ")
	fmt.Fprintln(w, "      Sea Battle        ")
	fmt.Fprintln(w, "------------------------")
	fmt.Fprintln(w, "   input format: x y ")
	fmt.Fprintln(w, "   x - row number  ")
	fmt.Fprintln(w, "   y - column number ")
}
