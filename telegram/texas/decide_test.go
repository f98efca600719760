package texas

import (
	"context"
	"fmt"
	"testing"

	"github.com/paulhankin/poker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func mustCards(t testing.TB, s ...string) Hand {
	t.Helper()
	cs, err := CardsFromStrings(s)
	require.NoError(t, err)
	return cs
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		cards []string
		want  HandClass
	}{
		// five cards
		{
			name:  "royal flush",
			cards: []string{"Spade 14", "Spade 13", "Spade 12", "Spade 11", "Spade 10"},
			want:  StraightFlush,
		},
		{
			name:  "straight flush",
			cards: []string{"Spade 13", "Spade 12", "Spade 11", "Spade 10", "Spade 9"},
			want:  StraightFlush,
		},
		{
			name:  "four of a kind",
			cards: []string{"Spade 11", "Diamond 11", "Heart 11", "Club 11", "Spade 9"},
			want:  FourOfAKind,
		},
		{
			name:  "full house",
			cards: []string{"Spade 11", "Diamond 11", "Heart 11", "Club 9", "Spade 9"},
			want:  FullHouse,
		},
		{
			name:  "flush",
			cards: []string{"Spade 11", "Spade 7", "Spade 6", "Spade 5", "Spade 4"},
			want:  Flush,
		},
		{
			name:  "straight",
			cards: []string{"Heart 8", "Spade 7", "Spade 6", "Spade 5", "Spade 4"},
			want:  Straight,
		},
		{
			name:  "wheel",
			cards: []string{"Heart 14", "Spade 5", "Spade 4", "Spade 3", "Spade 2"},
			want:  Straight,
		},
		{
			name:  "no wrap around",
			cards: []string{"Heart Q", "Spade K", "Spade A", "Spade 2", "Club 3"},
			want:  HighCard,
		},
		{
			name:  "three of a kind",
			cards: []string{"Spade 11", "Diamond 11", "Heart 11", "Club 9", "Spade 8"},
			want:  ThreeOfAKind,
		},
		{
			name:  "two pair",
			cards: []string{"Spade 11", "Diamond 11", "Heart 8", "Club 8", "Spade 3"},
			want:  TwoPair,
		},
		{
			name:  "pair",
			cards: []string{"Spade 11", "Diamond 11", "Heart 7", "Club 5", "Spade 3"},
			want:  Pair,
		},
		{
			name:  "high card",
			cards: []string{"Spade 11", "Diamond 10", "Heart 7", "Club 5", "Spade 3"},
			want:  HighCard,
		},
		// seven cards
		{
			name:  "royal flush among seven",
			cards: []string{"Kh", "Ah", "5c", "6s", "Qh", "Jh", "Th"},
			want:  StraightFlush,
		},
		{
			name:  "straight flush among seven",
			cards: []string{"4h", "3h", "5h", "6h", "7h", "8h", "Jc"},
			want:  StraightFlush,
		},
		{
			name:  "flush and off-suit straight is not a straight flush",
			cards: []string{"2h", "3h", "4h", "5h", "9h", "6c", "Kd"},
			want:  Flush,
		},
		{
			name:  "two triples",
			cards: []string{"As", "Ah", "Ad", "Ks", "Kh", "Kd", "2c"},
			want:  FullHouse,
		},
		{
			name:  "three pairs",
			cards: []string{"As", "Ah", "Ks", "Kh", "2d", "2c", "7c"},
			want:  TwoPair,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Classify(mustCards(t, tt.cards...))
			assert.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassifyTooFewCards(t *testing.T) {
	for n := 0; n < 5; n++ {
		h := GetAllCards()[:n]
		got, ok := Classify(h)
		assert.False(t, ok, "%d cards", n)
		assert.Equal(t, Unclassified, got)
		_, ok = Evaluate(h)
		assert.False(t, ok)
	}
}

func TestEvaluateHighCards(t *testing.T) {
	tests := []struct {
		name  string
		cards []string
		class HandClass
		high  []Rank
	}{
		{
			name:  "wheel straight flush tops at five",
			cards: []string{"As", "2s", "3s", "4s", "5s"},
			class: StraightFlush,
			high:  []Rank{5},
		},
		{
			name:  "six high straight beats wheel inside the same hand",
			cards: []string{"Ah", "2s", "3c", "4d", "5s", "6h", "Kc"},
			class: Straight,
			high:  []Rank{6},
		},
		{
			name:  "ace high straight",
			cards: []string{"Ah", "Ks", "Qc", "Jd", "Ts", "2h", "2c"},
			class: Straight,
			high:  []Rank{Ace},
		},
		{
			name:  "full house",
			cards: []string{"As", "Ah", "Ad", "Ks", "Kh"},
			class: FullHouse,
			high:  []Rank{Ace, King},
		},
		{
			name:  "two triples demote the lower one",
			cards: []string{"As", "Ah", "Ad", "Ks", "Kh", "Kd", "2c"},
			class: FullHouse,
			high:  []Rank{Ace, King},
		},
		{
			name:  "quads with kicker",
			cards: []string{"9s", "9h", "9d", "9c", "2h", "Qd", "3c"},
			class: FourOfAKind,
			high:  []Rank{9, Queen},
		},
		{
			name:  "flush keeps five best of the suit",
			cards: []string{"2h", "9h", "Kh", "4h", "Jh", "Ah", "Ac"},
			class: Flush,
			high:  []Rank{Ace, King, Jack, 9, 4},
		},
		{
			name:  "trips with two kickers",
			cards: []string{"7s", "7h", "7d", "2c", "Jd", "4c", "Ks"},
			class: ThreeOfAKind,
			high:  []Rank{7, King, Jack},
		},
		{
			name:  "two pair kicker may come from a third pair",
			cards: []string{"As", "Ah", "Ks", "Kh", "Qd", "Qc", "7c"},
			class: TwoPair,
			high:  []Rank{Ace, King, Queen},
		},
		{
			name:  "pair with three kickers",
			cards: []string{"5s", "5h", "Ks", "9h", "2d", "3c", "7c"},
			class: Pair,
			high:  []Rank{5, King, 9, 7},
		},
		{
			name:  "high card",
			cards: []string{"As", "9h", "Ks", "3h", "2d", "Jc", "7c"},
			class: HighCard,
			high:  []Rank{Ace, King, Jack, 9, 7},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, ok := Evaluate(mustCards(t, tt.cards...))
			require.True(t, ok)
			assert.Equal(t, tt.class, e.Class)
			var got []Rank
			for _, c := range e.HighCards {
				got = append(got, c.Rank)
			}
			assert.Equal(t, tt.high, got)
		})
	}
}

func TestCompare(t *testing.T) {
	eval := func(s ...string) EvaluatedHand {
		e, ok := Evaluate(mustCards(t, s...))
		require.True(t, ok)
		return e
	}
	wheel := eval("As", "2s", "3s", "4s", "5s")
	sixHigh := eval("6h", "2h", "3h", "4h", "5h")
	assert.Equal(t, 1, Compare(sixHigh, wheel))
	assert.Equal(t, -1, Compare(wheel, sixHigh))

	// same class, same high cards, different suits
	a := eval("Ah", "Kh", "9c", "9d", "2s", "3c", "7d")
	b := eval("Ad", "Kc", "9h", "9s", "2c", "3d", "7h")
	assert.Equal(t, 0, Compare(a, b))

	kicker := eval("Ad", "Qc", "9h", "9s", "2c", "3d", "7h")
	assert.Equal(t, 1, Compare(a, kicker))

	pairOfAces := eval("As", "Ad", "2c", "3c", "4h", "8d", "9s")
	assert.Equal(t, "Pair of Aces", pairOfAces.String())
	assert.Equal(t, "Straight Flush, Five high", wheel.String())
}

func randomHand(rng *rand.Rand, n int) Hand {
	deck := GetAllCards()
	rng.Shuffle(len(deck), func(i, j int) { deck[i], deck[j] = deck[j], deck[i] })
	return deck[:n]
}

func sign(x int) int {
	switch {
	case x < 0:
		return -1
	case x > 0:
		return 1
	}
	return 0
}

func toOracle(t testing.TB, h Hand) *[7]poker.Card {
	t.Helper()
	var out [7]poker.Card
	for i, c := range h {
		var s poker.Suit
		switch c.Suit {
		case Club:
			s = poker.Club
		case Diamond:
			s = poker.Diamond
		case Heart:
			s = poker.Heart
		case Spade:
			s = poker.Spade
		}
		pc, err := poker.MakeCard(s, poker.Rank(c.Rank))
		require.NoError(t, err)
		out[i] = pc
	}
	return &out
}

// Eval7 scores are a complete ranking, so the sign of a score difference
// must agree with Compare.
func TestCompareAgreesWithEval7(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 2000; i++ {
		a, b := randomHand(rng, 7), randomHand(rng, 7)
		ea, _ := Evaluate(a)
		eb, _ := Evaluate(b)
		sa, sb := poker.Eval7(toOracle(t, a)), poker.Eval7(toOracle(t, b))
		require.Equal(t, sign(int(sa)-int(sb)), Compare(ea, eb), "%s vs %s", a, b)
	}
}

func TestCompareTotalOrder(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	hands := make([]EvaluatedHand, 60)
	for i := range hands {
		hands[i], _ = Evaluate(randomHand(rng, 7))
	}
	for _, x := range hands {
		for _, y := range hands {
			assert.Equal(t, -Compare(y, x), Compare(x, y))
			if Compare(x, y) == 0 {
				assert.Equal(t, x.Class, y.Class)
			}
			for _, z := range hands {
				if Compare(x, y) > 0 && Compare(y, z) > 0 {
					assert.Equal(t, 1, Compare(x, z))
				}
			}
		}
	}
}

func TestNewCardFromString(t *testing.T) {
	tests := []struct {
		in      string
		want    Card
		wantErr bool
	}{
		{in: "As", want: Card{Spade, Ace}},
		{in: "10h", want: Card{Heart, 10}},
		{in: "Td", want: Card{Diamond, 10}},
		{in: "Spade 14", want: Card{Spade, Ace}},
		{in: "C 2", want: Card{Club, 2}},
		{in: Card{Heart, King}.String(), want: Card{Heart, King}},
		{in: "1x", wantErr: true},
		{in: "15s", wantErr: true},
		{in: "s", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := NewCardFromString(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHandCounts(t *testing.T) {
	h := mustCards(t, "As", "Ah", "Ks", "2s")
	assert.Equal(t, map[Rank]int{Ace: 2, King: 1, 2: 1}, h.CountByRank())
	assert.Equal(t, map[Suit]int{Spade: 3, Heart: 1}, h.CountBySuit())
	assert.Equal(t, 0, RankOrder(h[0], h[1]))
	assert.Equal(t, 1, RankOrder(h[0], h[2]))
}

func TestDeck(t *testing.T) {
	d := NewDeckWithSource(rand.NewSource(1))
	assert.Equal(t, 52, d.Len())
	h, err := d.Draw(50)
	require.NoError(t, err)
	assert.Len(t, h, 50)
	_, err = d.Draw(3)
	assert.ErrorIs(t, err, ErrDeckExhausted)
	d.Reset()
	assert.Equal(t, 52, d.Len())

	top := mustCards(t, "As", "Kd")
	stacked := NewStackedDeck(top)
	got, err := stacked.Draw(2)
	require.NoError(t, err)
	assert.Equal(t, top, got)
	assert.Equal(t, 50, stacked.Len())
}

// C(48, 3) completions of four known cards
const c3From48 = 17296

func TestHistogramHandTypes(t *testing.T) {
	tests := [][]string{
		{"Kh", "Ah", "Qh", "Jh"},
		{"2c", "7d", "9s", "Ts"},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%v", tt), func(t *testing.T) {
			got, err := HistogramHandTypes(context.Background(), mustCards(t, tt...))
			require.NoError(t, err)
			sum := 0
			for i := range got {
				sum += got[i].Count
			}
			assert.Equal(t, c3From48, sum)
			assert.InDelta(t, 1.0, got[len(got)-1].AccProb, 1e-9)
		})
	}

	_, err := HistogramHandTypes(context.Background(), mustCards(t, "As", "As"))
	assert.Error(t, err)
}

func BenchmarkHistogramHandTypes(b *testing.B) {
	holeCards := mustCards(b, "Heart 13", "Heart 14")
	for i := 0; i < b.N; i++ {
		_, _ = HistogramHandTypes(context.Background(), holeCards)
	}
}
