package holdem

import (
	"fmt"

	"github.com/yangrq1018/holdem-bot/telegram/texas"
)

type Rules struct {
	MaxPlayers int
	MinPlayers int
	MinBet     int // the big blind, small blind is half of it
	BuyIn      int
}

func DefaultRules() Rules {
	return Rules{
		MaxPlayers: 6,
		MinPlayers: 2,
		MinBet:     2,
		BuyIn:      50,
	}
}

type Outcome int

const (
	// Applied means the action went through as requested
	Applied Outcome = iota
	// Capped means the player could not cover it and went all in for less
	Capped
)

type Result struct {
	Outcome
	Amount int // chips moved from the stack
	AllIn  bool
}

// Table is one hand's worth of seats, pots and cards. Its betting methods
// act on the current bettor and either apply fully or return an error
// without touching any state.
type Table struct {
	Rules
	Players   []*Player
	Dealer    int
	Bettor    int
	LastRaise int
	Community texas.Hand
	Ledger    *Ledger
	Deck      *texas.Deck
}

func NewTable(rules Rules) *Table {
	return &Table{
		Rules:  rules,
		Ledger: NewLedger(nil),
	}
}

func (t *Table) Seat(p *Player) {
	t.Players = append(t.Players, p)
}

func (t *Table) Unseat(id int64) {
	i, p := t.Find(id)
	if p == nil {
		return
	}
	t.Players = append(t.Players[:i], t.Players[i+1:]...)
	// keep the button on the same player where possible
	if i < t.Dealer {
		t.Dealer--
	}
	if len(t.Players) > 0 {
		t.Dealer %= len(t.Players)
	} else {
		t.Dealer = 0
	}
}

func (t *Table) Find(id int64) (int, *Player) {
	for i, p := range t.Players {
		if p.ID == id {
			return i, p
		}
	}
	return -1, nil
}

func (t *Table) IDs() []int64 {
	ids := make([]int64, len(t.Players))
	for i, p := range t.Players {
		ids[i] = p.ID
	}
	return ids
}

// ResetHand clears everything left from the previous hand
func (t *Table) ResetHand(deck *texas.Deck) {
	t.Deck = deck
	t.Ledger = NewLedger(t.IDs())
	t.Community = nil
	t.LastRaise = 0
	for _, p := range t.Players {
		p.Active = true
		p.HadTurn = false
		p.Hole = nil
	}
}

func (t *Table) Current() *Player {
	return t.Players[t.Bettor]
}

// seat returns the player offset seats to the left of the dealer
func (t *Table) seat(offset int) int {
	return (t.Dealer + offset) % len(t.Players)
}

// ToCall is what the player must add to match the biggest commitment
func (t *Table) ToCall(p *Player) int {
	return t.Ledger.MaxCommitted() - t.Ledger.Committed(p.ID)
}

func (t *Table) commit(p *Player, amount int) {
	p.Stack -= amount
	t.Ledger.Commit(p.ID, amount)
	if p.Stack == 0 {
		t.Ledger.AllIn(p.ID)
	}
}

// PostBlind forces a bet without using up the player's turn. A short stack
// posts what it has.
func (t *Table) PostBlind(p *Player, amount int) Result {
	r := Result{Outcome: Applied, Amount: amount}
	if amount >= p.Stack {
		if amount > p.Stack {
			r.Outcome = Capped
		}
		r.Amount, r.AllIn = p.Stack, true
	}
	t.commit(p, r.Amount)
	return r
}

func (t *Table) Fold() (Result, error) {
	p := t.Current()
	p.Active = false
	p.HadTurn = true
	t.Ledger.Remove(p.ID)
	return Result{Outcome: Applied}, nil
}

func (t *Table) Check() (Result, error) {
	p := t.Current()
	if toCall := t.ToCall(p); toCall != 0 {
		return Result{}, fmt.Errorf("%w: cannot check, %d to call", ErrInvalidBet, toCall)
	}
	p.HadTurn = true
	return Result{Outcome: Applied}, nil
}

// Call matches the biggest commitment. Calling more than the stack puts
// the player all in instead.
func (t *Table) Call() (Result, error) {
	p := t.Current()
	toCall := t.ToCall(p)
	r := Result{Outcome: Applied, Amount: toCall}
	if toCall >= p.Stack {
		if toCall > p.Stack {
			r.Outcome = Capped
		}
		r.Amount, r.AllIn = p.Stack, true
	}
	t.commit(p, r.Amount)
	p.HadTurn = true
	return r, nil
}

// Raise calls and then adds amount on top. An all-in raise may be smaller
// than the minimum, and it still becomes the last raise.
func (t *Table) Raise(amount int) (Result, error) {
	p := t.Current()
	if amount <= 0 {
		return Result{}, fmt.Errorf("%w: raise must be positive", ErrInvalidBet)
	}
	toCall := t.ToCall(p)
	// compared before adding so a huge amount cannot wrap around
	if amount > p.Stack-toCall {
		return Result{}, fmt.Errorf("%w: cannot raise %d, %d to call and %d chips left",
			ErrInsufficientFunds, amount, toCall, p.Stack)
	}
	need := toCall + amount
	allIn := need == p.Stack
	if !allIn {
		if amount < t.LastRaise {
			return Result{}, fmt.Errorf("%w: raise must be at least the last raise of %d", ErrInvalidBet, t.LastRaise)
		}
		if amount < t.MinBet {
			return Result{}, fmt.Errorf("%w: raise must be at least the minimum bet of %d", ErrInvalidBet, t.MinBet)
		}
	}
	t.commit(p, need)
	t.LastRaise = amount
	p.HadTurn = true
	return Result{Outcome: Applied, Amount: need, AllIn: allIn}, nil
}

// BettingComplete is true once every player has folded, is all in, or has
// matched the biggest commitment, and every player who can still act has
// done so this street.
func (t *Table) BettingComplete() bool {
	largest := t.Ledger.MaxCommitted()
	for _, p := range t.Players {
		if !p.CanAct() {
			continue
		}
		if !p.HadTurn || t.Ledger.Committed(p.ID) != largest {
			return false
		}
	}
	return true
}

// MoveBettor passes the turn to the next player on the left who can act.
// It returns false when nobody can.
func (t *Table) MoveBettor() bool {
	n := len(t.Players)
	for step := 1; step <= n; step++ {
		i := (t.Bettor + step) % n
		if t.Players[i].CanAct() {
			t.Bettor = i
			return true
		}
	}
	return false
}

// StartStreet opens a new betting street, first to act is left of the dealer
func (t *Table) StartStreet() bool {
	t.LastRaise = 0
	for _, p := range t.Players {
		p.HadTurn = false
	}
	t.Bettor = t.Dealer
	return t.MoveBettor()
}

func (t *Table) ActiveCount() int {
	n := 0
	for _, p := range t.Players {
		if p.Active {
			n++
		}
	}
	return n
}

func (t *Table) CanActCount() int {
	n := 0
	for _, p := range t.Players {
		if p.CanAct() {
			n++
		}
	}
	return n
}

// RefundUncalled returns the part of the top commitment nobody matched
func (t *Table) RefundUncalled() (*Player, int) {
	var (
		top           *Player
		first, second int
	)
	for _, p := range t.Players {
		c := t.Ledger.Committed(p.ID)
		switch {
		case c > first:
			top, first, second = p, c, first
		case c > second:
			second = c
		}
	}
	if top == nil || first == second {
		return nil, 0
	}
	refunded := t.Ledger.Refund(top.ID, first-second)
	top.Stack += refunded
	return top, refunded
}

// Deal draws n community cards
func (t *Table) Deal(n int) (texas.Hand, error) {
	cards, err := t.Deck.Draw(n)
	if err != nil {
		return nil, err
	}
	t.Community.Add(cards...)
	return cards, nil
}
