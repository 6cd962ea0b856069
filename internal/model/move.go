package model

import "fmt"

type Move struct {
	From Position `json:"from"`
	To   Position `json:"to"`
}

func (m Move) delta() (int, int) {
	return m.To.Row - m.From.Row, m.To.Col - m.From.Col
}

// IsCapture reports whether m jumps two cells diagonally.
func (m Move) IsCapture() bool {
	dr, dc := m.delta()
	return abs(dr) == 2 && abs(dc) == 2
}

// IsStep reports whether m moves one cell diagonally.
func (m Move) IsStep() bool {
	dr, dc := m.delta()
	return abs(dr) == 1 && abs(dc) == 1
}

// Midpoint is the jumped cell of a capture.
func (m Move) Midpoint() Position {
	return Position{Row: (m.From.Row + m.To.Row) / 2, Col: (m.From.Col + m.To.Col) / 2}
}

func (m Move) String() string {
	return fmt.Sprintf("%s->%s", m.From, m.To)
}

// MoveResult describes what a successful move did to the board.
type MoveResult struct {
	Move     Move      `json:"move"`
	Piece    Piece     `json:"piece"`
	Captured *Position `json:"captured"`
	Promoted bool      `json:"promoted"`
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
