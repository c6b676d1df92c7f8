package entity

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/apperror"
)

// Size is the number of rows and columns on the board.
const Size = 3

// Grid is a row-major copy of the board cells.
type Grid [Size][Size]Marker

// Board holds the 3x3 cells. Place is the only way to put a marker on it.
// The zero value is an empty board.
type Board struct {
	cells Grid
}

func NewBoard() *Board {
	return &Board{}
}

// Place puts marker into (row, col). An occupied cell is never overwritten.
func (that *Board) Place(marker Marker, row, col int) error {
	if !inRange(row, col) {
		return fmt.Errorf("%w: row %d, col %d", apperror.ErrInvalidPosition, row, col)
	}

	if that.cells[row][col] != EmptyCell {
		return fmt.Errorf("%w: row %d, col %d", apperror.ErrCellOccupied, row, col)
	}

	that.cells[row][col] = marker

	return nil
}

// IsAvailable reports whether (row, col) is on the board and empty.
func (that *Board) IsAvailable(row, col int) bool {
	return inRange(row, col) && that.cells[row][col] == EmptyCell
}

// IsWinningMove reports whether the marker at (row, col) completes a line
// running through that cell.
func (that *Board) IsWinningMove(row, col int) bool {
	if !inRange(row, col) {
		return false
	}

	marker := that.cells[row][col]
	if marker == EmptyCell {
		return false
	}

	rowWin, colWin := true, true
	for i := range Size {
		if that.cells[row][i] != marker {
			rowWin = false
		}
		if that.cells[i][col] != marker {
			colWin = false
		}
	}

	if rowWin || colWin {
		return true
	}

	// only corners and the center lie on a diagonal
	if row == col && that.lineMatches(marker, func(i int) (int, int) { return i, i }) {
		return true
	}

	if row+col == Size-1 && that.lineMatches(marker, func(i int) (int, int) { return i, Size - 1 - i }) {
		return true
	}

	return false
}

func (that *Board) lineMatches(marker Marker, cell func(i int) (int, int)) bool {
	for i := range Size {
		r, c := cell(i)
		if that.cells[r][c] != marker {
			return false
		}
	}

	return true
}

// IsFull reports whether no empty cell is left.
func (that *Board) IsFull() bool {
	for _, row := range that.cells {
		for _, cell := range row {
			if cell == EmptyCell {
				return false
			}
		}
	}

	return true
}

func (that *Board) Reset() {
	that.cells = Grid{}
}

// Snapshot returns a copy of the cells. Changing it does not touch the board.
func (that *Board) Snapshot() Grid {
	return that.cells
}

func (that *Board) String() string {
	return that.cells.String()
}

func (that Board) MarshalJSON() ([]byte, error) {
	return json.Marshal(that.cells)
}

func (that *Board) UnmarshalJSON(data []byte) error {
	var cells Grid
	if err := json.Unmarshal(data, &cells); err != nil {
		return fmt.Errorf("failed to unmarshal board: %w", err)
	}

	for r, row := range cells {
		for c, cell := range row {
			if cell != EmptyCell && !cell.IsValid() {
				return fmt.Errorf("%w: invalid marker %q at row %d, col %d", apperror.ErrValidation, cell, r, c)
			}
		}
	}

	that.cells = cells

	return nil
}

// String renders the grid for a terminal, empty cells as dots.
func (that Grid) String() string {
	var sb strings.Builder

	for r, row := range that {
		for c, cell := range row {
			if c > 0 {
				sb.WriteString(" ")
			}
			if cell == EmptyCell {
				sb.WriteString(".")
				continue
			}
			sb.WriteString(string(cell))
		}
		if r < Size-1 {
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

func inRange(row, col int) bool {
	return row >= 0 && row < Size && col >= 0 && col < Size
}
