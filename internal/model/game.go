package model

import "slices"

// Game holds one checkers game. It is not safe for concurrent use; callers
// that share a Game serialise access themselves.
type Game struct {
	board    Board
	toMove   Player
	lastMove *Move
}

// GameState is the read-only snapshot handed to renderers.
type GameState struct {
	Board      Board                 `json:"board"`
	ToMove     Player                `json:"toMove"`
	Kings      map[Player][]Position `json:"kings"`
	PieceCount map[Player]int        `json:"pieceCount"`
	HasCapture bool                  `json:"hasCapture"`
	Captures   []Move                `json:"captures"`
	LastMove   *Move                 `json:"lastMove"`
}

func NewGame() *Game {
	return NewGameFromBoard(NewBoard(), Player1)
}

// NewGameFromBoard starts a game from an arbitrary position.
func NewGameFromBoard(board Board, toMove Player) *Game {
	return &Game{
		board:  board,
		toMove: toMove,
	}
}

// Board returns a copy of the grid.
func (g *Game) Board() Board {
	return g.board
}

func (g *Game) ToMove() Player {
	return g.toMove
}

func (g *Game) LastMove() *Move {
	return g.lastMove
}

func (g *Game) State() GameState {
	return GameState{
		Board:  g.board,
		ToMove: g.toMove,
		Kings: map[Player][]Position{
			Player1: g.Kings(Player1),
			Player2: g.Kings(Player2),
		},
		PieceCount: map[Player]int{
			Player1: g.board.Count(Player1),
			Player2: g.board.Count(Player2),
		},
		HasCapture: g.HasCapture(),
		Captures:   g.CaptureMoves(g.toMove),
		LastMove:   g.lastMove,
	}
}

func (g *Game) AlternateTurn() {
	g.toMove = g.toMove.Opponent()
}

// ApplyMove validates the move against the legal options of its origin and
// then plays it. A rejected move returns a *MoveError and leaves the game as
// it was.
func (g *Game) ApplyMove(from, to Position) (MoveResult, error) {
	move := Move{From: from, To: to}
	if err := g.validateMove(move); err != nil {
		return MoveResult{}, err
	}
	result := g.executeMove(move)
	g.AlternateTurn()
	return result, nil
}

// ApplyMoveUnchecked plays a move without consulting the rules: a two-cell
// diagonal jump clears the jumped cell whatever it holds, and the turn passes
// even when the move was not a legal option. Only coordinates are checked.
func (g *Game) ApplyMoveUnchecked(from, to Position) (MoveResult, error) {
	move := Move{From: from, To: to}
	if !from.InBounds() || !to.InBounds() {
		return MoveResult{}, &MoveError{Move: move, Err: ErrOutOfBounds}
	}
	result := g.executeMove(move)
	g.AlternateTurn()
	return result, nil
}

func (g *Game) validateMove(move Move) error {
	if !move.From.InBounds() || !move.To.InBounds() {
		return &MoveError{Move: move, Err: ErrOutOfBounds}
	}
	piece := g.board.At(move.From)
	if piece.IsEmpty() {
		return &MoveError{Move: move, Err: ErrEmptyOrigin}
	}
	if piece.Owner != g.toMove {
		return &MoveError{Move: move, Err: ErrWrongPlayerTurn}
	}
	if !slices.Contains(g.LegalOptions(move.From), move.To) {
		return &MoveError{Move: move, Err: ErrIllegalDestination}
	}
	return nil
}

func (g *Game) executeMove(move Move) MoveResult {
	piece := g.board.At(move.From)
	result := MoveResult{Move: move, Piece: piece}

	if move.IsCapture() {
		mid := move.Midpoint()
		if !g.board.At(mid).IsEmpty() {
			result.Captured = &mid
		}
		g.board.Set(mid, Empty)
	}

	g.board.Set(move.From, Empty)
	g.board.Set(move.To, piece)

	// only men are crowned, so a king landing on the far row stays as it is
	if piece.Rank == Man && move.To.Row == piece.Owner.PromotionRow() {
		piece = piece.Crowned()
		g.board.Set(move.To, piece)
		result.Piece = piece
		result.Promoted = true
	}

	g.lastMove = &move
	return result
}

// Kings lists the kings of player by scanning the board.
func (g *Game) Kings(player Player) []Position {
	kings := []Position{}
	for _, pos := range g.board.Pieces(player) {
		if g.board.At(pos).IsKing() {
			kings = append(kings, pos)
		}
	}
	return kings
}

// CapturesAvailable returns every landing cell that any piece of player can
// reach with a single jump.
func (g *Game) CapturesAvailable(player Player) []Position {
	captures := []Position{}
	for _, move := range g.CaptureMoves(player) {
		captures = append(captures, move.To)
	}
	return captures
}

// CaptureMoves is CapturesAvailable keeping the origin of each jump.
func (g *Game) CaptureMoves(player Player) []Move {
	moves := []Move{}
	for _, origin := range g.board.Pieces(player) {
		for _, to := range g.CaptureOptions(origin) {
			moves = append(moves, Move{From: origin, To: to})
		}
	}
	return moves
}

// CaptureOptions returns the landing cells of the jumps available to the
// piece at origin: the diagonal neighbour belongs to the opponent and the cell
// behind it is on the board and empty.
func (g *Game) CaptureOptions(origin Position) []Position {
	options := []Position{}
	piece := g.board.At(origin)
	if piece.IsEmpty() {
		return options
	}
	for _, dir := range diagonals {
		jumped := origin.add(dir, 1)
		landing := origin.add(dir, 2)
		if !jumped.InBounds() || !landing.InBounds() {
			continue
		}
		victim := g.board.At(jumped)
		if victim.IsEmpty() || victim.Owner == piece.Owner {
			continue
		}
		if g.board.At(landing).IsEmpty() {
			options = append(options, landing)
		}
	}
	return options
}

// StepOptions returns the empty diagonal neighbours of origin. Men and kings
// step in all four directions.
func (g *Game) StepOptions(origin Position) []Position {
	options := []Position{}
	if g.board.At(origin).IsEmpty() {
		return options
	}
	for _, dir := range diagonals {
		next := origin.add(dir, 1)
		if next.InBounds() && g.board.At(next).IsEmpty() {
			options = append(options, next)
		}
	}
	return options
}

// HasCapture reports whether the player to move has any jump available.
func (g *Game) HasCapture() bool {
	return len(g.CapturesAvailable(g.toMove)) > 0
}

// LegalOptions returns the destinations the piece at origin may move to.
// Captures take priority: while the side to move has any jump, a piece may
// only jump, and a piece with no jump of its own has no options.
func (g *Game) LegalOptions(origin Position) []Position {
	piece := g.board.At(origin)
	if piece.IsEmpty() || piece.Owner != g.toMove {
		return []Position{}
	}
	if g.HasCapture() {
		return g.CaptureOptions(origin)
	}
	return g.StepOptions(origin)
}
