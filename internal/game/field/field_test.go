package field_test

import (
	"bytes"
	_ "embed"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrsobakin/seabattle/internal/game/field"
)

//go:embed testdata/layout.txt
var txtLayout []byte

func at(row, col int) field.Coordinate {
	return field.Coordinate{Row: row, Col: col}
}

func TestShip(t *testing.T) {
	t.Run("Cells_Horizontal", func(t *testing.T) {
		s := field.NewShip(at(0, 0), 3, field.Horizontal)
		assert.Equal(t, []field.Coordinate{at(0, 0), at(0, 1), at(0, 2)}, slices.Collect(s.Cells()))
	})

	t.Run("Cells_Vertical", func(t *testing.T) {
		s := field.NewShip(at(1, 4), 2, field.Vertical)
		assert.Equal(t, []field.Coordinate{at(1, 4), at(2, 4)}, slices.Collect(s.Cells()))
	})

	t.Run("IsHitBy", func(t *testing.T) {
		s := field.NewShip(at(2, 2), 2, field.Horizontal)
		assert.True(t, s.IsHitBy(at(2, 3)))
		assert.False(t, s.IsHitBy(at(3, 2)))
		assert.False(t, s.IsHitBy(at(2, 4)))
	})

	t.Run("InitialLives", func(t *testing.T) {
		s := field.NewShip(at(0, 0), 4, field.Vertical)
		assert.Equal(t, 4, s.Lives())
		assert.False(t, s.IsDead())
	})
}

func TestGrid(t *testing.T) {
	// . . . . . .
	// . A A A . .
	// . . . . . .
	t.Run("PlaceShip_Valid", func(t *testing.T) {
		g := field.NewGrid(6, false)
		require.NoError(t, g.PlaceShip(field.NewShip(at(1, 1), 3, field.Horizontal)))

		for col := 1; col <= 3; col++ {
			assert.Equal(t, field.CellDeck, g.Cell(at(1, col)))
		}
		assert.Equal(t, field.CellEmpty, g.Cell(at(0, 0)), "contour must not be drawn")
		assert.True(t, g.IsBusy(at(0, 0)), "contour must be busy")
		assert.Len(t, g.Ships(), 1)
	})

	// . . . . . .
	// . . . . A A x
	t.Run("PlaceShip_OutOfBounds", func(t *testing.T) {
		g := field.NewGrid(6, false)
		err := g.PlaceShip(field.NewShip(at(1, 4), 3, field.Horizontal))
		assert.ErrorIs(t, err, field.ErrWrongPlacement)
		assert.Equal(t, field.CellEmpty, g.Cell(at(1, 4)), "field must stay unchanged")
		assert.Empty(t, g.Ships())
	})

	t.Run("PlaceShip_BowOnePastEdge", func(t *testing.T) {
		g := field.NewGrid(6, false)
		assert.ErrorIs(t, g.PlaceShip(field.NewShip(at(6, 0), 1, field.Vertical)), field.ErrWrongPlacement)
		assert.ErrorIs(t, g.PlaceShip(field.NewShip(at(0, 6), 1, field.Horizontal)), field.ErrWrongPlacement)
	})

	// . . B . .
	// A A X A .
	// . . B . .
	t.Run("PlaceShip_Intersecting", func(t *testing.T) {
		g := field.NewGrid(5, false)
		require.NoError(t, g.PlaceShip(field.NewShip(at(1, 0), 4, field.Horizontal)))

		err := g.PlaceShip(field.NewShip(at(0, 2), 3, field.Vertical))
		assert.ErrorIs(t, err, field.ErrWrongPlacement)
		assert.Equal(t, field.CellEmpty, g.Cell(at(0, 2)))
		assert.Equal(t, field.CellEmpty, g.Cell(at(2, 2)))
		assert.Len(t, g.Ships(), 1)
	})

	// A . .
	// . B .
	// . . .
	t.Run("PlaceShip_TouchingCorners", func(t *testing.T) {
		g := field.NewGrid(3, false)
		require.NoError(t, g.PlaceShip(field.NewShip(at(0, 0), 1, field.Horizontal)))
		assert.ErrorIs(t, g.PlaceShip(field.NewShip(at(1, 1), 1, field.Horizontal)), field.ErrWrongPlacement)
	})

	// . . . . .
	// A A A . .
	// . . B B .
	t.Run("PlaceShip_TouchingBorders", func(t *testing.T) {
		g := field.NewGrid(5, false)
		require.NoError(t, g.PlaceShip(field.NewShip(at(1, 0), 3, field.Horizontal)))
		assert.ErrorIs(t, g.PlaceShip(field.NewShip(at(2, 2), 2, field.Horizontal)), field.ErrWrongPlacement)
	})

	// A . B
	// A . B
	// . . .
	t.Run("PlaceShip_OneCellGap", func(t *testing.T) {
		g := field.NewGrid(3, false)
		require.NoError(t, g.PlaceShip(field.NewShip(at(0, 0), 2, field.Vertical)))
		require.NoError(t, g.PlaceShip(field.NewShip(at(0, 2), 2, field.Vertical)))
		assert.Len(t, g.Ships(), 2)
	})

	t.Run("Shoot_OutOfBounds", func(t *testing.T) {
		g := field.NewGrid(6, false)

		for _, c := range []field.Coordinate{at(-1, 0), at(0, -1), at(6, 0), at(0, 6), at(6, 6)} {
			_, err := g.Shoot(c)
			assert.ErrorIs(t, err, field.ErrOutOfBounds, "shot at %s", c)
			assert.False(t, g.IsBusy(c))
		}
	})

	t.Run("Shoot_Twice", func(t *testing.T) {
		g := field.NewGrid(6, false)

		result, err := g.Shoot(at(2, 2))
		require.NoError(t, err)
		assert.Equal(t, field.Miss, result)
		assert.Equal(t, field.CellMiss, g.Cell(at(2, 2)))

		_, err = g.Shoot(at(2, 2))
		assert.ErrorIs(t, err, field.ErrAlreadyShot)
	})

	// A A A . . .
	// . . . . . .
	// . . . . . .
	// . . . . . .
	// . . . . . .
	// . . . . . .
	t.Run("Shoot_DestroyShip", func(t *testing.T) {
		g := field.NewGrid(6, false)
		require.NoError(t, g.PlaceShip(field.NewShip(at(0, 0), 3, field.Horizontal)))
		g.ResetTargeting()

		result, err := g.Shoot(at(0, 0))
		require.NoError(t, err)
		assert.Equal(t, field.Hit, result)

		result, err = g.Shoot(at(0, 1))
		require.NoError(t, err)
		assert.Equal(t, field.Hit, result)
		assert.Equal(t, 0, g.Killed())

		result, err = g.Shoot(at(0, 2))
		require.NoError(t, err)
		assert.Equal(t, field.Kill, result)
		assert.Equal(t, 1, g.Killed())
		assert.True(t, g.AllDead())

		result, err = g.Shoot(at(5, 5))
		require.NoError(t, err)
		assert.Equal(t, field.Miss, result)
		assert.Equal(t, 1, g.Killed())

		ships := g.Ships()
		require.Len(t, ships, 1)
		assert.Equal(t, 0, ships[0].Lives())
		assert.True(t, ships[0].IsDead())
	})

	// . . . . .      T T T T .
	// . A A . .  ->  T X X T .
	// . . . . .      T T T T .
	t.Run("Shoot_KillRevealsContour", func(t *testing.T) {
		g := field.NewGrid(5, false)
		require.NoError(t, g.PlaceShip(field.NewShip(at(1, 1), 2, field.Horizontal)))
		g.ResetTargeting()

		_, err := g.Shoot(at(1, 1))
		require.NoError(t, err)
		assert.Equal(t, field.CellEmpty, g.Cell(at(0, 0)), "contour is revealed only on kill")

		result, err := g.Shoot(at(1, 2))
		require.NoError(t, err)
		assert.Equal(t, field.Kill, result)

		for row := 0; row <= 2; row++ {
			for col := 0; col <= 3; col++ {
				c := at(row, col)
				if row == 1 && (col == 1 || col == 2) {
					assert.Equal(t, field.CellHit, g.Cell(c))
					continue
				}
				assert.Equal(t, field.CellMiss, g.Cell(c), "contour cell %s", c)

				_, err := g.Shoot(c)
				assert.ErrorIs(t, err, field.ErrAlreadyShot, "contour cell %s", c)
			}
		}

		assert.Equal(t, field.CellEmpty, g.Cell(at(3, 3)))
	})

	t.Run("Shoot_KillCountsOnce", func(t *testing.T) {
		g := field.NewGrid(6, false)
		require.NoError(t, g.PlaceShip(field.NewShip(at(2, 3), 2, field.Vertical)))
		g.ResetTargeting()

		_, err := g.Shoot(at(2, 3))
		require.NoError(t, err)
		_, err = g.Shoot(at(3, 3))
		require.NoError(t, err)

		_, err = g.Shoot(at(3, 3))
		assert.ErrorIs(t, err, field.ErrAlreadyShot)
		assert.Equal(t, 1, g.Killed())
	})

	t.Run("Shoot_BeforeReset", func(t *testing.T) {
		g := field.NewGrid(6, false)
		require.NoError(t, g.PlaceShip(field.NewShip(at(0, 0), 1, field.Horizontal)))

		_, err := g.Shoot(at(0, 0))
		assert.ErrorIs(t, err, field.ErrAlreadyShot, "placement keeps decks busy until reset")

		g.ResetTargeting()

		result, err := g.Shoot(at(0, 0))
		require.NoError(t, err)
		assert.Equal(t, field.Kill, result)
	})

	// A A A . . F
	// . . . . . .
	// B . G . . C
	// B . . . . C
	// . . D . . .
	// . . . . . E
	t.Run("Shoot_RealField", func(t *testing.T) {
		g, err := field.Load(field.DefaultConfiguration(), field.ParseShips(bytes.NewReader(txtLayout)))
		require.NoError(t, err)
		assert.False(t, g.AllDead())

		shots := []struct {
			c      field.Coordinate
			result field.ShootResult
		}{
			{at(1, 3), field.Miss},
			{at(0, 0), field.Hit},
			{at(0, 2), field.Hit},
			{at(0, 1), field.Kill},
			{at(2, 0), field.Hit},
			{at(3, 0), field.Kill},
			{at(2, 2), field.Kill},
			{at(4, 2), field.Kill},
			{at(0, 5), field.Kill},
			{at(3, 5), field.Hit},
			{at(2, 5), field.Kill},
			{at(5, 4), field.Miss},
		}

		for _, shot := range shots {
			result, err := g.Shoot(shot.c)
			require.NoError(t, err, "shot at %s", shot.c)
			assert.Equal(t, shot.result, result, "shot at %s", shot.c)
			assert.False(t, g.AllDead())
		}

		result, err := g.Shoot(at(5, 5))
		require.NoError(t, err)
		assert.Equal(t, field.Kill, result)
		assert.Equal(t, 7, g.Killed())
		assert.True(t, g.AllDead())
	})
}

func TestLoad(t *testing.T) {
	t.Run("Layout", func(t *testing.T) {
		size, err := field.ParseSize(bytes.NewReader(txtLayout))
		require.NoError(t, err)
		assert.Equal(t, 6, size)

		ships := slices.Collect(field.ParseShips(bytes.NewReader(txtLayout)))
		require.Len(t, ships, 7)
		assert.Equal(t, field.Ship{Bow: at(0, 0), Size: 3, Orientation: field.Horizontal}, ships[0])
		assert.Equal(t, field.Vertical, ships[1].Orientation)
	})

	t.Run("MismatchedShipCounts", func(t *testing.T) {
		conf := field.Configuration{Size: 5, Sizes: [4]int{2, 0, 1, 0}}
		ships := slices.Values([]field.Ship{
			{Bow: at(0, 0), Size: 1},
		})

		_, err := field.Load(conf, ships)
		assert.Error(t, err)
	})

	t.Run("InvalidShipSize", func(t *testing.T) {
		conf := field.Configuration{Size: 10, Sizes: [4]int{1, 0, 0, 0}}
		ships := slices.Values([]field.Ship{
			{Bow: at(0, 0), Size: 5, Orientation: field.Horizontal},
		})

		_, err := field.Load(conf, ships)
		assert.Error(t, err)
	})

	t.Run("TouchingShips", func(t *testing.T) {
		conf := field.Configuration{Size: 3, Sizes: [4]int{2, 0, 0, 0}}
		ships := slices.Values([]field.Ship{
			{Bow: at(1, 2), Size: 1},
			{Bow: at(1, 1), Size: 1},
		})

		_, err := field.Load(conf, ships)
		assert.ErrorIs(t, err, field.ErrWrongPlacement)
	})

	t.Run("MalformedLineStops", func(t *testing.T) {
		src := strings.NewReader("6\n1 h 0 0\n1 x 2 2\n1 h 4 4\n")
		assert.Len(t, slices.Collect(field.ParseShips(src)), 1)
	})

	t.Run("CommentsAndBlankLines", func(t *testing.T) {
		src := strings.NewReader("6\n# bow first\n1 h 0 0\n\n  2 v 2 2  \n")
		assert.Equal(t, []field.Ship{
			{Bow: at(0, 0), Size: 1, Orientation: field.Horizontal},
			{Bow: at(2, 2), Size: 2, Orientation: field.Vertical},
		}, slices.Collect(field.ParseShips(src)))
	})
}

func TestConfiguration(t *testing.T) {
	t.Run("Default", func(t *testing.T) {
		conf := field.DefaultConfiguration()
		require.NoError(t, conf.IsValid())
		assert.Equal(t, 7, conf.ShipCount())
		assert.Equal(t, []int{3, 2, 2, 1, 1, 1, 1}, conf.Lengths())
		assert.Equal(t, 11, conf.Decks())
	})

	t.Run("SmallestBoard", func(t *testing.T) {
		conf := field.DefaultConfiguration()
		for size, fits := range map[int]bool{2: false, 3: false, 4: false, 5: false, 6: true, 10: true} {
			conf.Size = size
			if fits {
				assert.NoError(t, conf.IsValid(), "size %d", size)
			} else {
				assert.Error(t, conf.IsValid(), "size %d", size)
			}
		}
	})

	t.Run("Invalid", func(t *testing.T) {
		for _, conf := range []field.Configuration{
			{Size: 0, Sizes: [4]int{1, 0, 0, 0}},
			{Size: 5, Sizes: [4]int{1, -1, 0, 0}},
			{Size: 5},
			{Size: 3, Sizes: [4]int{0, 0, 0, 1}},
			{Size: 3, Sizes: [4]int{0, 0, 3, 0}},
		} {
			assert.Error(t, conf.IsValid(), "%+v", conf)
		}
	})
}

func TestShootResult(t *testing.T) {
	for _, r := range []field.ShootResult{field.Miss, field.Hit, field.Kill} {
		var parsed field.ShootResult
		require.NoError(t, parsed.FromString(r.String()))
		assert.Equal(t, r, parsed)
	}

	var r field.ShootResult
	assert.Error(t, r.FromString("sunk"))
}
