package texas

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

func CardsFromStrings(s []string) (Hand, error) {
	var cs Hand
	for _, s := range s {
		c, err := NewCardFromString(s)
		if err != nil {
			return nil, err
		}
		cs = append(cs, c)
	}
	return cs, nil
}

// NewCardFromString accepts the long form "Spade 14", "H 10"
// and the short form "As", "10h", "Td", "K♠".
func NewCardFromString(s string) (Card, error) {
	s = strings.TrimSpace(s)
	if fields := strings.Fields(s); len(fields) == 2 {
		return parseLong(fields[0], fields[1])
	}
	return parseShort(s)
}

func parseLong(suitName, rankStr string) (Card, error) {
	suit, ok := suitFromName(suitName)
	if !ok {
		return Card{}, fmt.Errorf("invalid suit: %v", suitName)
	}
	rank, err := rankFromString(rankStr)
	if err != nil {
		return Card{}, err
	}
	return NewCard(suit, rank)
}

func parseShort(s string) (Card, error) {
	// emoji suits may carry a variation selector
	s = strings.TrimSuffix(s, "\ufe0f")
	r, size := utf8.DecodeLastRuneInString(s)
	if size == 0 || len(s) == size {
		return Card{}, fmt.Errorf("cannot scan input: %q", s)
	}
	suit, ok := suitFromName(string(r))
	if !ok {
		return Card{}, fmt.Errorf("invalid suit: %q", string(r))
	}
	rank, err := rankFromString(s[:len(s)-size])
	if err != nil {
		return Card{}, err
	}
	return NewCard(suit, rank)
}

func suitFromName(name string) (Suit, bool) {
	switch strings.ToLower(name) {
	case "diamond", "d", "♦":
		return Diamond, true
	case "club", "c", "♣":
		return Club, true
	case "heart", "h", "♥":
		return Heart, true
	case "spade", "s", "♠":
		return Spade, true
	}
	return 0, false
}

func rankFromString(s string) (Rank, error) {
	switch strings.ToUpper(s) {
	case "A":
		return Ace, nil
	case "K":
		return King, nil
	case "Q":
		return Queen, nil
	case "J":
		return Jack, nil
	case "T":
		return 10, nil
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid rank: %v", err)
	}
	// 14 is accepted as an ace-high alias
	if i == 14 {
		return Ace, nil
	}
	r := Rank(i)
	if !r.valid() {
		return 0, fmt.Errorf("invalid rank: %d", i)
	}
	return r, nil
}
