package texas

import (
	"sort"
	"sync"

	"gonum.org/v1/gonum/stat/combin"
)

var (
	subsetsMu sync.Mutex
	subsets   = make(map[int][][]int)
)

// fiveCardSubsets returns the index sets of every 5-card subset of n cards
func fiveCardSubsets(n int) [][]int {
	subsetsMu.Lock()
	defer subsetsMu.Unlock()
	s, ok := subsets[n]
	if !ok {
		s = combin.Combinations(n, 5)
		subsets[n] = s
	}
	return s
}

// Classify returns the best class a hand of five or more cards makes.
// Hands under five cards are not classified, ok is false.
func Classify(h Hand) (class HandClass, ok bool) {
	if len(h) < 5 {
		return Unclassified, false
	}
	byRank := h.CountByRank()
	best, second := topCounts(byRank)
	_, suitCount := bestSuit(h)

	switch {
	case hasStraightFlush(h):
		return StraightFlush, true
	case best >= 4:
		return FourOfAKind, true
	case isFullHouse(byRank):
		return FullHouse, true
	case suitCount >= 5:
		return Flush, true
	case hasStraight(h):
		return Straight, true
	case best >= 3:
		return ThreeOfAKind, true
	case best >= 2 && second >= 2:
		return TwoPair, true
	case best >= 2:
		return Pair, true
	default:
		return HighCard, true
	}
}

// isFullHouse: a triple plus a different exact pair, or two triples
func isFullHouse(byRank map[Rank]int) bool {
	triples, pairs := 0, 0
	for _, c := range byRank {
		switch c {
		case 3:
			triples++
		case 2:
			pairs++
		}
	}
	return triples >= 2 || (triples == 1 && pairs >= 1)
}

// topCounts returns the largest and second largest rank counts
func topCounts(byRank map[Rank]int) (best, second int) {
	for _, c := range byRank {
		switch {
		case c > best:
			best, second = c, best
		case c > second:
			second = c
		}
	}
	return
}

func bestSuit(h Hand) (Suit, int) {
	var (
		bs      Suit
		bsCount int
	)
	m := h.CountBySuit()
	// fixed iteration order keeps the result deterministic on ties
	for _, s := range allSuits {
		if m[s] > bsCount {
			bs, bsCount = s, m[s]
		}
	}
	return bs, bsCount
}

func hasStraight(h Hand) bool {
	_, ok := bestStraight(h, false)
	return ok
}

func hasStraightFlush(h Hand) bool {
	_, ok := bestStraight(h, true)
	return ok
}

// bestStraight scans every 5-card subset and returns the top card of the
// highest straight found. With flush set, only single-suit subsets count.
func bestStraight(h Hand, flush bool) (Card, bool) {
	var (
		top   Card
		topV  int
		found bool
		pick  [5]Card
	)
	for _, idx := range fiveCardSubsets(len(h)) {
		for i, j := range idx {
			pick[i] = h[j]
		}
		if flush && !sameSuit(pick[:]) {
			continue
		}
		c, v, ok := straightTop(pick[:])
		if ok && v > topV {
			top, topV, found = c, v, true
		}
	}
	return top, found
}

func sameSuit(cards []Card) bool {
	for i := 1; i < len(cards); i++ {
		if cards[i].Suit != cards[0].Suit {
			return false
		}
	}
	return true
}

// straightTop checks five cards against the two valid straight patterns:
// ranks minus their minimum equal {0,1,2,3,4}, or {0,9,10,11,12} which is
// 10-J-Q-K-A with Ace stored as 1. A-2-3-4-5 tops out at the Five.
func straightTop(cards []Card) (Card, int, bool) {
	var ranks [5]int
	for i := range cards {
		ranks[i] = int(cards[i].Rank)
	}
	sort.Ints(ranks[:])
	low := ranks[0]
	for i := range ranks {
		ranks[i] -= low
	}
	switch ranks {
	case [5]int{0, 1, 2, 3, 4}:
		return highestOfRank(cards, Rank(ranks[4]+low)), ranks[4] + low, true
	case [5]int{0, 9, 10, 11, 12}:
		return highestOfRank(cards, Ace), Ace.high(), true
	}
	return Card{}, 0, false
}

func highestOfRank(cards []Card, r Rank) Card {
	for i := range cards {
		if cards[i].Rank == r {
			return cards[i]
		}
	}
	return Card{}
}

// matchNCards picks the first count cards satisfying f.
// A negative count picks all of them.
func matchNCards(cards []Card, f func(Card) bool, count int) []Card {
	var acc []Card
	for i := range cards {
		if count >= 0 && len(acc) == count {
			break
		}
		if f(cards[i]) {
			acc = append(acc, cards[i])
		}
	}
	return acc
}

func matchCard(cards []Card, f func(Card) bool) (Card, bool) {
	m := matchNCards(cards, f, 1)
	if len(m) == 0 {
		return Card{}, false
	}
	return m[0], true
}

func ofRank(r Rank) func(Card) bool {
	return func(c Card) bool { return c.Rank == r }
}

func notOfRank(rs ...Rank) func(Card) bool {
	return func(c Card) bool {
		for _, r := range rs {
			if c.Rank == r {
				return false
			}
		}
		return true
	}
}

// ranksWithCount lists ranks occurring at least n times, highest first
func ranksWithCount(byRank map[Rank]int, n int) []Rank {
	var rs []Rank
	for r, c := range byRank {
		if c >= n {
			rs = append(rs, r)
		}
	}
	sort.Slice(rs, func(i, j int) bool {
		return rs[i].high() > rs[j].high()
	})
	return rs
}
