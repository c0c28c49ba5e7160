package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/mrsobakin/seabattle/internal/game"
	"github.com/mrsobakin/seabattle/internal/game/field"
)

var (
	errArity     = errors.New("enter 2 coordinates!")
	errNotNumber = errors.New("enter numbers!")
)

// Parses `row col` typed by a user. Numbers are 1-based, the result
// is 0-based. Range is not checked here: shots outside the field are
// rejected by the field itself.
func ParseTarget(line string) (field.Coordinate, error) {
	cords := strings.Fields(line)
	if len(cords) != 2 {
		return field.Coordinate{}, errArity
	}

	var nums [2]int
	for i, s := range cords {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 || strings.ContainsAny(s, "+-") {
			return field.Coordinate{}, errNotNumber
		}
		nums[i] = n
	}

	return field.Coordinate{Row: nums[0] - 1, Col: nums[1] - 1}, nil
}

// Prompter asks a user for targets until a well-formed one is typed.
//
// Input is read by a background goroutine, which stops after `Close`
// once its pending read returns.
type Prompter struct {
	out   io.Writer
	lines <-chan string

	done      chan struct{}
	closeOnce sync.Once
}

var _ game.TargetSource = (*Prompter)(nil)

func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	lines := make(chan string)
	done := make(chan struct{})

	go func() {
		defer close(lines)

		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-done:
				return
			}
		}
	}()

	return &Prompter{
		out:   out,
		lines: lines,
		done:  done,
	}
}

// Returns `io.EOF` once the input is over or the prompter is closed.
func (p *Prompter) NextTarget(ctx context.Context) (field.Coordinate, error) {
	for {
		fmt.Fprint(p.out, "Your move: ")

		select {
		case <-ctx.Done():
			return field.Coordinate{}, ctx.Err()

		case <-p.done:
			return field.Coordinate{}, io.EOF

		case line, ok := <-p.lines:
			if !ok {
				return field.Coordinate{}, io.EOF
			}

			target, err := ParseTarget(line)
			if err != nil {
				fmt.Fprintf(p.out, " %s \n", err)
				continue
			}

			return target, nil
		}
	}
}

func (p *Prompter) Close() {
	p.closeOnce.Do(func() {
		close(p.done)
	})
}
