// Package shell holds the click-driven selection flow shared by the
// terminal and browser front ends.
package shell

import (
	"slices"

	"github.com/valentinaoliveira/JogoDama/internal/model"
)

type OutcomeKind string

const (
	Ignored    OutcomeKind = "ignored"
	Selected   OutcomeKind = "selected"
	Deselected OutcomeKind = "deselected"
	Moved      OutcomeKind = "moved"
)

type Outcome struct {
	Kind     OutcomeKind       `json:"kind"`
	Selected *model.Position   `json:"selected,omitempty"`
	Options  []model.Position  `json:"options"`
	Result   *model.MoveResult `json:"result,omitempty"`
}

// Selector tracks the piece a user has picked and the destinations on offer
// for it. A click on one of those destinations plays the move; any other click
// drops the selection, except a click on another piece of the side to move,
// which selects that piece instead. Clicking the selected piece again drops it.
type Selector struct {
	game     *model.Game
	selected *model.Position
	options  []model.Position
}

func NewSelector(game *model.Game) *Selector {
	return &Selector{game: game}
}

// SetGame points the selector at another game and clears the selection.
func (s *Selector) SetGame(game *model.Game) {
	s.game = game
	s.Reset()
}

func (s *Selector) Reset() {
	s.selected = nil
	s.options = nil
}

func (s *Selector) Selected() (model.Position, bool) {
	if s.selected == nil {
		return model.Position{}, false
	}
	return *s.selected, true
}

func (s *Selector) Options() []model.Position {
	return s.options
}

// Click feeds one click on a board cell into the selection flow. The only
// error is a move the game rejected, in which case the selection is dropped.
func (s *Selector) Click(pos model.Position) (Outcome, error) {
	if s.selected != nil && slices.Contains(s.options, pos) {
		from := *s.selected
		s.Reset()
		result, err := s.game.ApplyMove(from, pos)
		if err != nil {
			return Outcome{Kind: Deselected, Options: []model.Position{}}, err
		}
		return Outcome{Kind: Moved, Options: []model.Position{}, Result: &result}, nil
	}

	if s.selected != nil && pos == *s.selected {
		s.Reset()
		return Outcome{Kind: Deselected, Options: []model.Position{}}, nil
	}

	if s.selectable(pos) {
		s.selected = &pos
		s.options = s.game.LegalOptions(pos)
		return Outcome{Kind: Selected, Selected: &pos, Options: s.options}, nil
	}

	if s.selected != nil {
		s.Reset()
		return Outcome{Kind: Deselected, Options: []model.Position{}}, nil
	}
	return Outcome{Kind: Ignored, Options: []model.Position{}}, nil
}

func (s *Selector) selectable(pos model.Position) bool {
	if !pos.InBounds() || !pos.IsDark() {
		return false
	}
	board := s.game.Board()
	return board.At(pos).Owner == s.game.ToMove()
}

// CellAt converts a point in screen units to the board cell under it, given
// the size of one cell. Points left of or above the board map to negative
// coordinates and fail InBounds.
func CellAt(x, y, cellWidth, cellHeight int) model.Position {
	return model.Position{Row: floorDiv(y, cellHeight), Col: floorDiv(x, cellWidth)}
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && a < 0 {
		q--
	}
	return q
}
