package holdem

import (
	"fmt"
	"sort"
	"strings"

	"github.com/yangrq1018/holdem-bot/telegram/texas"
)

func potName(i int) string {
	if i == 0 {
		return "main pot"
	}
	return fmt.Sprintf("side pot %d", i)
}

func (g *Game) render(h texas.Hand) []string {
	if g.renderer == nil {
		return nil
	}
	path, err := g.renderer.Render(h)
	if err != nil {
		g.log().WithError(err).Warn("render hand")
		return nil
	}
	return []string{path}
}

func (g *Game) announcePots() {
	var sb strings.Builder
	pots := g.table.Ledger.Pots()
	if len(pots) == 1 {
		sb.WriteString(fmt.Sprintf("Pot: %d", pots[0].Total()))
	} else {
		parts := make([]string, len(pots))
		for i, p := range pots {
			parts[i] = fmt.Sprintf("%s: %d", potName(i), p.Total())
		}
		sb.WriteString(strings.Join(parts, "; "))
	}
	sb.WriteString("\nPlayer chips: ")
	sb.WriteString(g.chipCounts())
	g.messages.Announce(sb.String())
}

func (g *Game) chipCounts() string {
	parts := make([]string, len(g.table.Players))
	for i, p := range g.table.Players {
		parts[i] = fmt.Sprintf("%s: %d", p.Name, p.Stack)
	}
	return strings.Join(parts, "; ")
}

func (g *Game) refundUncalled() {
	if p, amount := g.table.RefundUncalled(); amount > 0 {
		g.messages.Announce(fmt.Sprintf("%d uncalled chips are returned to %s.", amount, p.Name))
	}
}

type showdownEntry struct {
	player *Player
	hand   texas.EvaluatedHand
	rank   int
}

// rankHands sorts strongest first and gives tied hands the same rank
func rankHands(entries []showdownEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return texas.Compare(entries[i].hand, entries[j].hand) > 0
	})
	rank := 0
	for i := range entries {
		if i > 0 && texas.Compare(entries[i-1].hand, entries[i].hand) != 0 {
			rank++
		}
		entries[i].rank = rank
	}
}

func (g *Game) showdown() {
	g.round = Showdown
	g.refundUncalled()
	var entries []showdownEntry
	for _, p := range g.table.Players {
		if !p.Active {
			continue
		}
		e, ok := texas.Evaluate(p.Hole.Concat(g.table.Community))
		if !ok {
			g.log().WithField("player", p.ID).Errorf("cannot evaluate %s", p.Hole.Concat(g.table.Community))
			continue
		}
		entries = append(entries, showdownEntry{player: p, hand: e})
		g.messages.Announce(fmt.Sprintf("%s has %s, making a %s.", p.Name, p.Hole, e), g.render(p.Hole)...)
	}
	rankHands(entries)
	ranks := make(map[int64]int, len(entries))
	for _, e := range entries {
		ranks[e.player.ID] = e.rank
	}
	g.payout(ranks)
	g.endHand()
}

// uncontested pays out when everybody else folded, no cards are shown
func (g *Game) uncontested() {
	g.refundUncalled()
	ranks := make(map[int64]int)
	for _, p := range g.table.Players {
		if p.Active {
			ranks[p.ID] = 0
		}
	}
	g.payout(ranks)
	g.endHand()
}

// payout gives every pot to its best ranked eligible players. Lower rank
// is better. An odd chip goes to the first winner left of the dealer.
func (g *Game) payout(ranks map[int64]int) {
	for i, pot := range g.table.Ledger.Pots() {
		total := pot.Total()
		if total == 0 {
			continue
		}
		best := -1
		for _, id := range pot.Players() {
			if r, ok := ranks[id]; ok && (best < 0 || r < best) {
				best = r
			}
		}
		if best < 0 {
			// every player eligible for this pot folded
			for id, v := range pot.Contributions() {
				if _, p := g.table.Find(id); p != nil {
					p.Stack += v
				}
			}
			g.messages.Announce(fmt.Sprintf("Nobody is left to win the %s, %d chips are returned.", potName(i), total))
			continue
		}
		var winners []*Player
		for offset := 1; offset <= len(g.table.Players); offset++ {
			p := g.table.Players[g.table.seat(offset)]
			if r, ok := ranks[p.ID]; ok && r == best && pot.Eligible(p.ID) {
				winners = append(winners, p)
			}
		}
		share, odd := total/len(winners), total%len(winners)
		for k, w := range winners {
			amount := share
			if k < odd {
				amount++
			}
			w.Stack += amount
			g.messages.Announce(fmt.Sprintf("%s wins %d from the %s.", w.Name, amount, potName(i)))
		}
		g.log().WithField("pot", i).Infof("%d chips paid to %d winners", total, len(winners))
	}
}

func (g *Game) endHand() {
	g.round = GameEnd
	if g.renderer != nil {
		if err := g.renderer.Cleanup(); err != nil {
			g.log().WithError(err).Warn("cleanup rendered hands")
		}
	}
	g.messages.Announce(fmt.Sprintf("Hand over. Player chips: %s\nType start to deal again.", g.chipCounts()))
	g.log().Info("hand finished")
	if n := len(g.table.Players); n > 0 {
		g.table.Dealer = (g.table.Dealer + 1) % n
	}
	g.handID = ""
	g.round = PreGame
}

// returnBets gives every player back what they committed to the hand
func (g *Game) returnBets() {
	for _, p := range g.table.Players {
		p.Stack += g.table.Ledger.Refund(p.ID, g.table.Ledger.Committed(p.ID))
	}
}

func (g *Game) abort() {
	g.returnBets()
	g.messages.Announce("The hand was aborted and all bets are returned.")
	g.endHand()
}

// Close returns any running bets and cashes every player out to the bank.
// The first deposit failure is returned, the rest are logged.
func (g *Game) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.round != PreGame {
		g.returnBets()
		g.round = PreGame
	}
	var first error
	for _, p := range append([]*Player(nil), g.table.Players...) {
		if err := g.leave(p.ID); err != nil {
			g.log().WithError(err).WithField("player", p.ID).Error("cash out")
			if first == nil {
				first = err
			}
		}
	}
	return first
}
