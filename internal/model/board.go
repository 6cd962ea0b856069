package model

import (
	"encoding/json"
	"fmt"
)

const BoardSize = 8

type Rank string

const (
	Man  Rank = "man"
	King Rank = "king"
)

// Piece is the content of a cell. The zero value is an empty cell.
type Piece struct {
	Owner Player `json:"owner"`
	Rank  Rank   `json:"rank"`
}

var (
	Empty       = Piece{}
	Player1Man  = Piece{Owner: Player1, Rank: Man}
	Player2Man  = Piece{Owner: Player2, Rank: Man}
	Player1King = Piece{Owner: Player1, Rank: King}
	Player2King = Piece{Owner: Player2, Rank: King}
)

func (p Piece) IsEmpty() bool {
	return p.Owner == NoPlayer
}

func (p Piece) IsKing() bool {
	return p.Rank == King
}

// Crowned returns the king form of p.
func (p Piece) Crowned() Piece {
	return Piece{Owner: p.Owner, Rank: King}
}

func (p Piece) String() string {
	switch p {
	case Player1Man:
		return "P1"
	case Player2Man:
		return "P2"
	case Player1King:
		return "D1"
	case Player2King:
		return "D2"
	}
	return "."
}

// MarshalJSON encodes an empty cell as null so clients can test for absence.
func (p Piece) MarshalJSON() ([]byte, error) {
	if p.IsEmpty() {
		return []byte("null"), nil
	}
	type piece Piece
	return json.Marshal(piece(p))
}

type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (p Position) InBounds() bool {
	return p.Row >= 0 && p.Row < BoardSize && p.Col >= 0 && p.Col < BoardSize
}

// IsDark reports whether p is a playable cell.
func (p Position) IsDark() bool {
	return (p.Row+p.Col)%2 == 1
}

func (p Position) add(d direction, steps int) Position {
	return Position{Row: p.Row + d.Row*steps, Col: p.Col + d.Col*steps}
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

type direction struct {
	Row, Col int
}

var diagonals = []direction{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}

// Board is indexed [row][col].
type Board [BoardSize][BoardSize]Piece

// NewBoard places Player1 men on the dark cells of rows 0-2 and Player2 men
// on the dark cells of rows 5-7.
func NewBoard() Board {
	var board Board
	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			pos := Position{Row: row, Col: col}
			if !pos.IsDark() {
				continue
			}
			switch {
			case row < 3:
				board[row][col] = Player1Man
			case row > 4:
				board[row][col] = Player2Man
			}
		}
	}
	return board
}

// At returns the piece at pos, or Empty when pos is off the board.
func (b *Board) At(pos Position) Piece {
	if !pos.InBounds() {
		return Empty
	}
	return b[pos.Row][pos.Col]
}

func (b *Board) Set(pos Position, piece Piece) {
	b[pos.Row][pos.Col] = piece
}

// Pieces lists the positions of every piece owned by player, in row-major order.
func (b *Board) Pieces(player Player) []Position {
	positions := []Position{}
	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			if b[row][col].Owner == player && player != NoPlayer {
				positions = append(positions, Position{Row: row, Col: col})
			}
		}
	}
	return positions
}

func (b *Board) Count(player Player) int {
	return len(b.Pieces(player))
}

func (b Board) String() string {
	out := ""
	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			out += fmt.Sprintf("%-3s", b[row][col].String())
		}
		out += "\n"
	}
	return out
}
