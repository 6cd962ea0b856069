// Package tui renders a game on a terminal and turns mouse clicks into moves.
package tui

import (
	"fmt"
	"slices"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog/log"

	"github.com/valentinaoliveira/JogoDama/internal/model"
	"github.com/valentinaoliveira/JogoDama/internal/shell"
)

const (
	CellWidth  = 4
	CellHeight = 2
)

var (
	lightCell    = tcell.StyleDefault.Background(tcell.ColorWhite)
	darkCell     = tcell.StyleDefault.Background(tcell.ColorBlack)
	selectedCell = tcell.StyleDefault.Background(tcell.ColorDarkCyan)
	stepCell     = tcell.StyleDefault.Background(tcell.ColorGreen)
	captureCell  = tcell.StyleDefault.Background(tcell.ColorYellow)
	statusStyle  = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	errorStyle   = tcell.StyleDefault.Foreground(tcell.ColorRed)
)

type View struct {
	screen   tcell.Screen
	game     *model.Game
	selector *shell.Selector
	message  string
	pressed  bool
}

func NewView(screen tcell.Screen, game *model.Game) *View {
	return &View{
		screen:   screen,
		game:     game,
		selector: shell.NewSelector(game),
	}
}

func (v *View) Game() *model.Game {
	return v.game
}

// Run draws the board and handles events until the user quits or the screen
// is finalised.
func (v *View) Run() error {
	v.Draw()
	for {
		ev := v.screen.PollEvent()
		if ev == nil {
			return nil
		}
		if quit := v.HandleEvent(ev); quit {
			return nil
		}
		v.Draw()
	}
}

// HandleEvent applies one terminal event and reports whether the user asked to
// quit.
func (v *View) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		v.screen.Sync()
	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyEscape, ev.Key() == tcell.KeyCtrlC:
			return true
		case ev.Key() == tcell.KeyRune && ev.Rune() == 'q':
			return true
		case ev.Key() == tcell.KeyRune && ev.Rune() == 'r':
			v.reset()
		}
	case *tcell.EventMouse:
		down := ev.Buttons()&tcell.Button1 != 0
		// a held button repeats the event; only the press counts as a click
		if down && !v.pressed {
			x, y := ev.Position()
			v.click(shell.CellAt(x, y, CellWidth, CellHeight))
		}
		v.pressed = down
	}
	return false
}

func (v *View) reset() {
	v.game = model.NewGame()
	v.selector.SetGame(v.game)
	v.message = "new game"
	log.Info().Msg("game reset")
}

func (v *View) click(pos model.Position) {
	if !pos.InBounds() {
		return
	}
	out, err := v.selector.Click(pos)
	if err != nil {
		v.message = err.Error()
		log.Warn().Err(err).Msg("move rejected")
		return
	}
	v.message = ""
	if out.Kind == shell.Moved {
		log.Debug().
			Stringer("move", out.Result.Move).
			Bool("promoted", out.Result.Promoted).
			Bool("capture", out.Result.Captured != nil).
			Msg("move applied")
		if out.Result.Promoted {
			v.message = "crowned!"
		}
	}
}

// Draw paints the board, the current highlights and the status line.
func (v *View) Draw() {
	v.screen.Clear()
	board := v.game.Board()
	selected, hasSelection := v.selector.Selected()
	options := v.selector.Options()
	optionStyle := stepCell
	if v.game.HasCapture() {
		optionStyle = captureCell
	}

	for row := 0; row < model.BoardSize; row++ {
		for col := 0; col < model.BoardSize; col++ {
			pos := model.Position{Row: row, Col: col}
			style := lightCell
			switch {
			case hasSelection && pos == selected:
				style = selectedCell
			case slices.Contains(options, pos):
				style = optionStyle
			case pos.IsDark():
				style = darkCell
			}
			v.drawCell(pos, board.At(pos), style)
		}
	}

	status := fmt.Sprintf("turn: %s", v.game.ToMove().Label())
	if v.game.HasCapture() {
		status += "  capture available"
	}
	v.drawText(0, model.BoardSize*CellHeight, statusStyle, status)
	if v.message != "" {
		v.drawText(0, model.BoardSize*CellHeight+1, errorStyle, v.message)
	}
	v.screen.Show()
}

func (v *View) drawCell(pos model.Position, piece model.Piece, style tcell.Style) {
	x0, y0 := pos.Col*CellWidth, pos.Row*CellHeight
	for dy := 0; dy < CellHeight; dy++ {
		for dx := 0; dx < CellWidth; dx++ {
			v.screen.SetContent(x0+dx, y0+dy, ' ', nil, style)
		}
	}
	if piece.IsEmpty() {
		return
	}
	glyph := 'o'
	if piece.IsKing() {
		glyph = 'K'
	}
	v.screen.SetContent(x0+CellWidth/2, y0, glyph, nil, style.Foreground(PieceColor(piece.Owner)))
}

func (v *View) drawText(x, y int, style tcell.Style, text string) {
	for i, r := range []rune(text) {
		v.screen.SetContent(x+i, y, r, nil, style)
	}
}

func PieceColor(player model.Player) tcell.Color {
	if player == model.Player1 {
		return tcell.ColorRed
	}
	return tcell.ColorBlue
}
