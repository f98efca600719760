package holdem

import "github.com/yangrq1018/holdem-bot/telegram/texas"

type Player struct {
	ID    int64
	Name  string
	Stack int // table money
	// Active is false once the player folds
	Active bool
	// HadTurn is reset at the start of every betting street
	HadTurn bool
	Hole    texas.Hand
}

func (p *Player) AllIn() bool {
	return p.Active && p.Stack == 0
}

// CanAct reports whether the player still has decisions to make this hand
func (p *Player) CanAct() bool {
	return p.Active && p.Stack > 0
}
