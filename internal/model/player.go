package model

// Player identifies a side. NoPlayer owns empty cells.
type Player string

const (
	NoPlayer Player = ""
	Player1  Player = "player1"
	Player2  Player = "player2"
)

func (p Player) Opponent() Player {
	switch p {
	case Player1:
		return Player2
	case Player2:
		return Player1
	}
	return NoPlayer
}

// PromotionRow is the row on which a man of p is crowned.
func (p Player) PromotionRow() int {
	if p == Player1 {
		return 0
	}
	return BoardSize - 1
}

// Label is the name shown in status lines.
func (p Player) Label() string {
	switch p {
	case Player1:
		return "Player 1 (red)"
	case Player2:
		return "Player 2 (blue)"
	}
	return ""
}
