package texas

import (
	"errors"
	"fmt"
	"time"

	"golang.org/x/exp/rand"
)

var ErrDeckExhausted = errors.New("deck exhausted")

// GetAllCards builds an ordered 52-card deck
func GetAllCards() Hand {
	acc := make(Hand, 0, 52)
	for rank := Ace; rank <= King; rank++ {
		for _, suit := range allSuits {
			acc = append(acc, Card{Suit: suit, Rank: rank})
		}
	}
	return acc
}

// GetRemainingCards returns the deck minus the known cards
func GetRemainingCards(known Hand) Hand {
	return matchNCards(GetAllCards(), func(c Card) bool {
		return !known.Contains(c)
	}, -1)
}

type Deck struct {
	cards Hand
	rng   *rand.Rand
}

// NewDeck returns a full shuffled deck
func NewDeck() *Deck {
	return NewDeckWithSource(rand.NewSource(uint64(time.Now().UnixNano())))
}

func NewDeckWithSource(src rand.Source) *Deck {
	d := &Deck{rng: rand.New(src)}
	d.Reset()
	return d
}

// NewStackedDeck deals the given cards first, in order, then the rest
// of the deck shuffled.
func NewStackedDeck(top Hand) *Deck {
	d := NewDeck()
	rest := GetRemainingCards(top)
	d.rng.Shuffle(len(rest), func(i, j int) {
		rest[i], rest[j] = rest[j], rest[i]
	})
	d.cards = top.Concat(rest)
	return d
}

// Reset rebuilds the deck with all 52 cards and shuffles it
func (d *Deck) Reset() {
	d.cards = GetAllCards()
	d.rng.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
}

func (d *Deck) Len() int {
	return len(d.cards)
}

func (d *Deck) Draw(n int) (Hand, error) {
	if n > len(d.cards) {
		return nil, fmt.Errorf("%w: want %d, %d left", ErrDeckExhausted, n, len(d.cards))
	}
	out := make(Hand, n)
	copy(out, d.cards[:n])
	d.cards = d.cards[n:]
	return out, nil
}
