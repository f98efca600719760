package texas

import (
	"fmt"
	"strings"
)

// EvaluatedHand is a classified hand plus the cards used to break ties
// between hands of the same class.
type EvaluatedHand struct {
	Hand      Hand
	Class     HandClass
	HighCards []Card
}

// Evaluate classifies h and computes its tie-break cards.
// ok is false for hands under five cards.
func Evaluate(h Hand) (EvaluatedHand, bool) {
	class, ok := Classify(h)
	if !ok {
		return EvaluatedHand{}, false
	}
	sorted := h.Sorted()
	byRank := h.CountByRank()
	e := EvaluatedHand{Hand: h, Class: class}

	switch class {
	case StraightFlush:
		top, _ := bestStraight(sorted, true)
		e.HighCards = []Card{top}
	case Straight:
		top, _ := bestStraight(sorted, false)
		e.HighCards = []Card{top}
	case FourOfAKind:
		quad := ranksWithCount(byRank, 4)[0]
		e.HighCards = withKickers(sorted, []Rank{quad}, 1)
	case FullHouse:
		triple := ranksWithCount(byRank, 3)[0]
		var pair Rank
		for _, r := range ranksWithCount(byRank, 2) {
			if r != triple {
				pair = r
				break
			}
		}
		e.HighCards = withKickers(sorted, []Rank{triple, pair}, 0)
	case Flush:
		s, _ := bestSuit(h)
		e.HighCards = matchNCards(sorted, func(c Card) bool { return c.Suit == s }, 5)
	case ThreeOfAKind:
		triple := ranksWithCount(byRank, 3)[0]
		e.HighCards = withKickers(sorted, []Rank{triple}, 2)
	case TwoPair:
		pairs := ranksWithCount(byRank, 2)
		e.HighCards = withKickers(sorted, pairs[:2], 1)
	case Pair:
		pair := ranksWithCount(byRank, 2)[0]
		e.HighCards = withKickers(sorted, []Rank{pair}, 3)
	default:
		e.HighCards = matchNCards(sorted, func(Card) bool { return true }, 5)
	}
	return e, true
}

// withKickers takes one card of each made rank, then the n highest cards
// of any other rank. sorted must be highest first.
func withKickers(sorted Hand, made []Rank, n int) []Card {
	acc := make([]Card, 0, len(made)+n)
	for _, r := range made {
		c, _ := matchCard(sorted, ofRank(r))
		acc = append(acc, c)
	}
	return append(acc, matchNCards(sorted, notOfRank(made...), n)...)
}

// Compare orders two evaluated hands: class first, then the tie-break
// cards position by position, Ace high. Returns -1, 0 or 1.
func Compare(a, b EvaluatedHand) int {
	switch {
	case a.Class < b.Class:
		return -1
	case a.Class > b.Class:
		return 1
	}
	n := len(a.HighCards)
	if len(b.HighCards) < n {
		n = len(b.HighCards)
	}
	for i := 0; i < n; i++ {
		if o := RankOrder(a.HighCards[i], b.HighCards[i]); o != 0 {
			return o
		}
	}
	return 0
}

func (e EvaluatedHand) String() string {
	hc := e.HighCards
	switch e.Class {
	case StraightFlush, Straight, Flush:
		return fmt.Sprintf("%s, %s high", e.Class, hc[0].Rank)
	case FourOfAKind:
		return fmt.Sprintf("Four %s", hc[0].Rank.Plural())
	case FullHouse:
		return fmt.Sprintf("Full House, %s over %s", hc[0].Rank.Plural(), hc[1].Rank.Plural())
	case ThreeOfAKind:
		return fmt.Sprintf("Three %s", hc[0].Rank.Plural())
	case TwoPair:
		return fmt.Sprintf("Two Pair, %s and %s", hc[0].Rank.Plural(), hc[1].Rank.Plural())
	case Pair:
		return fmt.Sprintf("Pair of %s", hc[0].Rank.Plural())
	case HighCard:
		ranks := make([]string, 0, len(hc))
		for i := range hc {
			ranks = append(ranks, hc[i].Rank.Short())
		}
		return "High Card " + strings.Join(ranks, " ")
	default:
		return ""
	}
}
