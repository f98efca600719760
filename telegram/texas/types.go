package texas

import (
	"fmt"
	"strconv"

	"github.com/enescakir/emoji"
)

type Suit int

const (
	Diamond Suit = 1 + iota
	Club
	Heart
	Spade
)

var allSuits = []Suit{Diamond, Club, Heart, Spade}

func (s Suit) String() string {
	switch s {
	case Spade:
		return "spade"
	case Heart:
		return "heart"
	case Club:
		return "club"
	case Diamond:
		return "diamond"
	default:
		return ""
	}
}

// Emoji returns the suit glyph used in chat messages
func (s Suit) Emoji() string {
	switch s {
	case Spade:
		return emoji.SpadeSuit.String()
	case Heart:
		return emoji.HeartSuit.String()
	case Club:
		return emoji.ClubSuit.String()
	case Diamond:
		return emoji.DiamondSuit.String()
	default:
		return ""
	}
}

func (s Suit) valid() bool {
	return s >= Diamond && s <= Spade
}

// Rank runs from 1 to 13, Ace is 1.
// Ace is ranked high everywhere except for the A-2-3-4-5 straight.
type Rank int

const (
	Ace   Rank = 1
	Jack  Rank = 11
	Queen Rank = 12
	King  Rank = 13
)

var rankNames = [...]string{
	"", "Ace", "Two", "Three", "Four", "Five", "Six", "Seven",
	"Eight", "Nine", "Ten", "Jack", "Queen", "King",
}

func (r Rank) String() string {
	if !r.valid() {
		return ""
	}
	return rankNames[r]
}

// Plural is used in hand descriptions, "Pair of Sixes"
func (r Rank) Plural() string {
	if r == 6 {
		return "Sixes"
	}
	return r.String() + "s"
}

// Short is the one or two character notation, "A", "10", "K"
func (r Rank) Short() string {
	switch r {
	case Ace:
		return "A"
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	default:
		return strconv.Itoa(int(r))
	}
}

// high returns the rank value with Ace counted above King
func (r Rank) high() int {
	if r == Ace {
		return 14
	}
	return int(r)
}

func (r Rank) valid() bool {
	return r >= Ace && r <= King
}

type Card struct {
	Suit
	Rank
}

func NewCard(s Suit, r Rank) (Card, error) {
	if !s.valid() {
		return Card{}, fmt.Errorf("invalid suit: %d", s)
	}
	if !r.valid() {
		return Card{}, fmt.Errorf("invalid rank: %d", r)
	}
	return Card{Suit: s, Rank: r}, nil
}

func (c Card) String() string {
	return c.Rank.Short() + c.Suit.Emoji()
}

// RankOrder compares two cards by rank only, Ace high.
// Returns -1, 0 or 1.
func RankOrder(a, b Card) int {
	x, y := a.Rank.high(), b.Rank.high()
	switch {
	case x < y:
		return -1
	case x > y:
		return 1
	default:
		return 0
	}
}

type HandClass int

// hand order: the higher the better
const (
	Unclassified HandClass = iota
	HighCard
	Pair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
)

func (h HandClass) String() string {
	switch h {
	case HighCard:
		return "High Card"
	case Pair:
		return "Pair"
	case TwoPair:
		return "Two Pair"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	default:
		return ""
	}
}
