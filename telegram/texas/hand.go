package texas

import (
	"sort"
	"strings"
)

// Hand is an ordered multiset of cards. Uniqueness is the deck's business.
type Hand []Card

func (h *Hand) Add(cards ...Card) {
	*h = append(*h, cards...)
}

// Concat returns a new hand holding h followed by o
func (h Hand) Concat(o Hand) Hand {
	out := make(Hand, 0, len(h)+len(o))
	out = append(out, h...)
	return append(out, o...)
}

func (h Hand) CountByRank() map[Rank]int {
	m := make(map[Rank]int)
	for i := range h {
		m[h[i].Rank]++
	}
	return m
}

func (h Hand) CountBySuit() map[Suit]int {
	m := make(map[Suit]int)
	for i := range h {
		m[h[i].Suit]++
	}
	return m
}

// Sorted returns a copy ordered highest rank first
func (h Hand) Sorted() Hand {
	out := make(Hand, len(h))
	copy(out, h)
	sort.SliceStable(out, func(i, j int) bool {
		return RankOrder(out[i], out[j]) > 0
	})
	return out
}

func (h Hand) Contains(c Card) bool {
	for i := range h {
		if h[i] == c {
			return true
		}
	}
	return false
}

func (h Hand) String() string {
	if len(h) == 0 {
		return ""
	}
	acc := make([]string, 0, len(h))
	for i := range h {
		acc = append(acc, h[i].String())
	}
	return strings.Join(acc, " ")
}
