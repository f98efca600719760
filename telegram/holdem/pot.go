package holdem

import (
	"fmt"

	"github.com/thoas/go-funk"
	"github.com/yangrq1018/holdem-bot/util"
)

// Pot holds what each player put in at one level of the betting.
// A frozen pot accepts at most cap chips per player.
type Pot struct {
	contributions map[int64]int
	players       []int64 // eligible to win, seat order
	cap           int
}

func newPot(players []int64) *Pot {
	ps := make([]int64, len(players))
	copy(ps, players)
	return &Pot{
		contributions: make(map[int64]int),
		players:       ps,
	}
}

func (p *Pot) Total() int {
	total := 0
	for _, v := range p.contributions {
		total += v
	}
	return total
}

func (p *Pot) Contribution(player int64) int {
	return p.contributions[player]
}

// Contributions returns a copy of the per-player amounts
func (p *Pot) Contributions() map[int64]int {
	out := make(map[int64]int, len(p.contributions))
	for k, v := range p.contributions {
		out[k] = v
	}
	return out
}

// Largest is the biggest single contribution, 0 for an empty pot
func (p *Pot) Largest() int {
	largest := 0
	for _, v := range p.contributions {
		largest = util.Max(largest, v)
	}
	return largest
}

// Smallest is the smallest contribution among eligible players
func (p *Pot) Smallest() int {
	if len(p.players) == 0 {
		return 0
	}
	smallest := p.contributions[p.players[0]]
	for _, id := range p.players[1:] {
		smallest = util.Min(smallest, p.contributions[id])
	}
	return smallest
}

func (p *Pot) Players() []int64 {
	out := make([]int64, len(p.players))
	copy(out, p.players)
	return out
}

func (p *Pot) Eligible(player int64) bool {
	return funk.ContainsInt64(p.players, player)
}

// Cap is the per-player ceiling of a frozen pot, 0 while the pot is open
func (p *Pot) Cap() int {
	return p.cap
}

func (p *Pot) Frozen() bool {
	return p.cap > 0
}

// Ledger is the ordered list of pots for one hand. Index 0 is the main
// pot and the last pot is the active one. Chips are only ever moved
// between pots or back to their owner, never created or lost.
type Ledger struct {
	pots []*Pot
}

func NewLedger(players []int64) *Ledger {
	return &Ledger{pots: []*Pot{newPot(players)}}
}

func (l *Ledger) Active() *Pot {
	return l.pots[len(l.pots)-1]
}

func (l *Ledger) Pot(i int) *Pot {
	return l.pots[i]
}

func (l *Ledger) Pots() []*Pot {
	out := make([]*Pot, len(l.pots))
	copy(out, l.pots)
	return out
}

func (l *Ledger) Len() int {
	return len(l.pots)
}

func (l *Ledger) Total() int {
	total := 0
	for _, p := range l.pots {
		total += p.Total()
	}
	return total
}

// Contribute adds amount to the player's entry in the active pot.
// Debiting the stack is the caller's job.
func (l *Ledger) Contribute(player int64, amount int) {
	l.Active().contributions[player] += amount
}

// Commit spreads amount over the pots bottom up: every frozen pot is
// topped up to its cap before the rest goes to the active pot.
func (l *Ledger) Commit(player int64, amount int) {
	for _, p := range l.pots[:len(l.pots)-1] {
		if amount == 0 {
			return
		}
		room := util.Min(p.cap-p.contributions[player], amount)
		if room <= 0 {
			continue
		}
		p.contributions[player] += room
		amount -= room
	}
	if amount > 0 {
		l.Contribute(player, amount)
	}
}

// CreateSidePot freezes the active pot at cap chips per player and opens
// a new active pot for players. Whatever anyone had put in above cap is
// carried into the new pot.
func (l *Ledger) CreateSidePot(cap int, players []int64) *Pot {
	return l.Split(len(l.pots)-1, cap, players)
}

// Split cuts pot i at level: contributions above level move to a new pot
// inserted right after it, eligible to players. A frozen pot keeps its
// ceiling by giving the new pot the remaining width.
func (l *Ledger) Split(i, level int, players []int64) *Pot {
	old := l.pots[i]
	if level <= 0 || (old.Frozen() && level >= old.cap) {
		panic(fmt.Sprintf("split pot %d at level %d out of range", i, level))
	}
	next := newPot(players)
	if old.Frozen() {
		next.cap = old.cap - level
	}
	for id, v := range old.contributions {
		if v > level {
			next.contributions[id] = v - level
			old.contributions[id] = level
		}
	}
	old.cap = level
	l.pots = append(l.pots, nil)
	copy(l.pots[i+2:], l.pots[i+1:])
	l.pots[i+1] = next
	return next
}

// Committed is everything the player has put in this hand
func (l *Ledger) Committed(player int64) int {
	total := 0
	for _, p := range l.pots {
		total += p.contributions[player]
	}
	return total
}

// MaxCommitted is the highest amount any player has put in this hand
func (l *Ledger) MaxCommitted() int {
	totals := make(map[int64]int)
	largest := 0
	for _, p := range l.pots {
		for id, v := range p.contributions {
			totals[id] += v
			largest = util.Max(largest, totals[id])
		}
	}
	return largest
}

// Refund takes up to amount of the player's chips back out of the pots,
// newest first, and returns how much was taken.
func (l *Ledger) Refund(player int64, amount int) int {
	refunded := 0
	for i := len(l.pots) - 1; i >= 0 && amount > 0; i-- {
		p := l.pots[i]
		take := util.Min(p.contributions[player], amount)
		p.contributions[player] -= take
		amount -= take
		refunded += take
	}
	return refunded
}

// Remove drops the player from every pot's eligible list. Chips already
// contributed stay where they are.
func (l *Ledger) Remove(player int64) {
	for _, p := range l.pots {
		p.players = without(p.players, player)
	}
}

func without(ids []int64, player int64) []int64 {
	return funk.FilterInt64(ids, func(id int64) bool {
		return id != player
	})
}

// AllIn reshapes the pots once player has nothing left behind: the pot
// where the player's chips run out is split at that level and the
// player loses eligibility for everything above it.
func (l *Ledger) AllIn(player int64) {
	for i := 0; i < len(l.pots); i++ {
		p := l.pots[i]
		c := p.contributions[player]
		if p.Frozen() && c == p.cap {
			continue
		}
		if c > 0 {
			l.Split(i, c, without(p.players, player))
			i++
		}
		for _, above := range l.pots[i:] {
			above.players = without(above.players, player)
		}
		return
	}
}
