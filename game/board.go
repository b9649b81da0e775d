package game

import (
	"encoding/json"
	"fmt"
	"slices"

	"trapmouse/meta"
)

// Cell is a coordinate on the offset hex board. X selects the column and
// decides which neighbor table applies.
type Cell struct {
	X int
	Y int
}

// Center is where the mouse starts.
var Center = Cell{X: meta.CENTER, Y: meta.CENTER}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// MarshalJSON encodes a cell as a two element array, [x, y].
func (c Cell) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int{c.X, c.Y})
}

func (c *Cell) UnmarshalJSON(data []byte) error {
	var pair [2]int
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("cell: %w", err)
	}
	c.X, c.Y = pair[0], pair[1]
	return nil
}

// Offsets of the six neighbors, by column parity.
var (
	evenColumn = [6]Cell{{0, -1}, {0, 1}, {-1, 0}, {1, 0}, {-1, -1}, {1, -1}}
	oddColumn  = [6]Cell{{0, -1}, {0, 1}, {-1, 0}, {1, 0}, {-1, 1}, {1, 1}}
)

// Neighbors returns the six hex neighbors of c. Cells off the board are
// included; callers filter with InBounds.
func Neighbors(c Cell) [6]Cell {
	offsets := evenColumn
	if c.X%2 != 0 {
		offsets = oddColumn
	}
	var out [6]Cell
	for i, o := range offsets {
		out[i] = Cell{X: c.X + o.X, Y: c.Y + o.Y}
	}
	return out
}

// InBounds reports whether c lies on the board.
func InBounds(c Cell) bool {
	return c.X >= 0 && c.Y >= 0 && c.X < meta.BOARD_SIZE && c.Y < meta.BOARD_SIZE
}

// OnEdge reports whether c is on the outer ring of the board.
func OnEdge(c Cell) bool {
	last := meta.BOARD_SIZE - 1
	return c.X == 0 || c.Y == 0 || c.X == last || c.Y == last
}

// LegalMoves lists the cells the mouse can step to: in-bounds neighbors
// that are not walls, in neighbor table order.
func LegalMoves(mouse Cell, walls []Cell) []Cell {
	moves := make([]Cell, 0, 6)
	for _, n := range Neighbors(mouse) {
		if InBounds(n) && !slices.Contains(walls, n) {
			moves = append(moves, n)
		}
	}
	return moves
}

// CanMove reports whether the mouse may step from mouse to to.
func CanMove(mouse, to Cell, walls []Cell) bool {
	return slices.Contains(LegalMoves(mouse, walls), to)
}

// Escaped reports whether the mouse has reached the board edge.
func Escaped(mouse Cell) bool {
	return OnEdge(mouse)
}

// Captured reports whether all six neighbors of the mouse are walls.
func Captured(mouse Cell, walls []Cell) bool {
	for _, n := range Neighbors(mouse) {
		if !slices.Contains(walls, n) {
			return false
		}
	}
	return true
}

// NearWall reports whether any hex neighbor of c is a wall.
func NearWall(c Cell, walls []Cell) bool {
	for _, n := range Neighbors(c) {
		if slices.Contains(walls, n) {
			return true
		}
	}
	return false
}
