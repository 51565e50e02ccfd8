// Package core provides the game logic for Key Runner: maze generation,
// runner movement, key progression and pursuit.
// This package is UI-agnostic and deterministic for a given random source.
package core

import (
	"fmt"
	"strings"
)

// Terrain classifies a single grid cell.
type Terrain uint8

const (
	Empty Terrain = iota
	Obstacle
	Key
	// Path marks the carved corridor during generation only.
	// It never appears in a published grid.
	Path
)

// String returns the lower-case name of the terrain kind.
func (t Terrain) String() string {
	switch t {
	case Empty:
		return "empty"
	case Obstacle:
		return "obstacle"
	case Key:
		return "key"
	case Path:
		return "path"
	default:
		return "unknown"
	}
}

// Rune returns the ASCII glyph used by ParseGrid and Grid.String.
func (t Terrain) Rune() rune {
	switch t {
	case Obstacle:
		return '#'
	case Key:
		return 'k'
	case Path:
		return '*'
	default:
		return '.'
	}
}

// Dir is a movement direction on the grid.
type Dir uint8

const (
	DirUp Dir = iota
	DirRight
	DirDown
	DirLeft
)

// Dirs lists the four directions in neighbour-expansion order.
var Dirs = [4]Dir{DirUp, DirRight, DirDown, DirLeft}

// Valid reports whether d is one of the four known directions.
func (d Dir) Valid() bool {
	return d <= DirLeft
}

// String returns the string representation of a direction.
func (d Dir) String() string {
	switch d {
	case DirUp:
		return "Up"
	case DirRight:
		return "Right"
	case DirDown:
		return "Down"
	case DirLeft:
		return "Left"
	default:
		return "Unknown"
	}
}

// Delta returns the (drow, dcol) offset for one step in this direction.
func (d Dir) Delta() (dr, dc int) {
	switch d {
	case DirUp:
		return -1, 0
	case DirRight:
		return 0, 1
	case DirDown:
		return 1, 0
	case DirLeft:
		return 0, -1
	default:
		return 0, 0
	}
}

// ParseDir converts a direction name ("up", "Left", "d", ...) into a Dir.
func ParseDir(s string) (Dir, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up", "u", "north":
		return DirUp, nil
	case "right", "r", "east":
		return DirRight, nil
	case "down", "d", "south":
		return DirDown, nil
	case "left", "l", "west":
		return DirLeft, nil
	}
	return 0, fmt.Errorf("keyrunner: %q: %w", s, ErrInvalidDirection)
}

// Pos is a (row, column) cell coordinate. Row grows downward.
type Pos struct {
	Row int
	Col int
}

// P is a convenience constructor for Pos.
func P(row, col int) Pos {
	return Pos{Row: row, Col: col}
}

// String returns a string representation of the position.
func (p Pos) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// Step returns the position one cell away in direction d.
func (p Pos) Step(d Dir) Pos {
	dr, dc := d.Delta()
	return Pos{Row: p.Row + dr, Col: p.Col + dc}
}

// Manhattan returns the Manhattan distance to another position.
func (p Pos) Manhattan(other Pos) int {
	return abs(p.Row-other.Row) + abs(p.Col-other.Col)
}

// DirTo returns the direction of a single orthogonal step from p to q.
// ok is false when q is not 4-adjacent to p.
func (p Pos) DirTo(q Pos) (d Dir, ok bool) {
	for _, d := range Dirs {
		if p.Step(d) == q {
			return d, true
		}
	}
	return 0, false
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
