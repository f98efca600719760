package holdem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func TestLedgerContribute(t *testing.T) {
	l := NewLedger([]int64{1, 2, 3})
	l.Contribute(1, 10)
	l.Contribute(2, 4)
	l.Contribute(1, 5)
	assert.Equal(t, 19, l.Total())
	assert.Equal(t, 15, l.Active().Largest())
	// player 3 is eligible but put nothing in
	assert.Equal(t, 0, l.Active().Smallest())
	assert.Equal(t, 15, l.Committed(1))
	assert.Equal(t, 15, l.MaxCommitted())
}

func TestLedgerCreateSidePot(t *testing.T) {
	l := NewLedger([]int64{1, 2, 3})
	l.Contribute(1, 80)
	l.Contribute(2, 50)
	l.Contribute(3, 80)
	side := l.CreateSidePot(50, []int64{1, 3})

	require.Equal(t, 2, l.Len())
	assert.Same(t, side, l.Active())
	main := l.Pot(0)
	assert.True(t, main.Frozen())
	assert.Equal(t, 150, main.Total())
	assert.Equal(t, 60, side.Total())
	assert.Equal(t, 210, l.Total())
	assert.True(t, main.Eligible(2))
	assert.False(t, side.Eligible(2))

	// a frozen pot is topped up to its cap first
	l2 := NewLedger([]int64{1, 2})
	l2.Contribute(1, 10)
	l2.CreateSidePot(30, []int64{1, 2})
	l2.Commit(2, 45)
	assert.Equal(t, 30, l2.Pot(0).Contribution(2))
	assert.Equal(t, 15, l2.Pot(1).Contribution(2))
}

func TestLedgerSplitFrozenPot(t *testing.T) {
	l := NewLedger([]int64{1, 2, 3})
	for _, id := range []int64{1, 2, 3} {
		l.Contribute(id, 100)
	}
	l.CreateSidePot(100, []int64{1, 2, 3})
	l.Split(0, 60, []int64{1, 3})

	require.Equal(t, 3, l.Len())
	assert.Equal(t, 60, l.Pot(0).Cap())
	assert.Equal(t, 40, l.Pot(1).Cap())
	assert.Equal(t, 180, l.Pot(0).Total())
	assert.Equal(t, 120, l.Pot(1).Total())
	assert.False(t, l.Active().Frozen())
	assert.Equal(t, 300, l.Total())
}

func TestLedgerAllIn(t *testing.T) {
	l := NewLedger([]int64{1, 2, 3})
	l.Commit(1, 100)
	l.Commit(2, 100)
	l.Commit(3, 100)
	l.AllIn(1)
	// player 2 was all in for less before player 1 matched
	l2 := NewLedger([]int64{1, 2, 3})
	l2.Commit(1, 100)
	l2.AllIn(1)
	l2.Commit(2, 40)
	l2.AllIn(2)
	l2.Commit(3, 100)

	require.Equal(t, 2, l.Len())
	assert.False(t, l.Active().Eligible(1))

	require.Equal(t, 3, l2.Len())
	assert.Equal(t, []int64{1, 2, 3}, l2.Pot(0).Players())
	assert.Equal(t, 120, l2.Pot(0).Total())
	assert.Equal(t, []int64{1, 3}, l2.Pot(1).Players())
	assert.Equal(t, 120, l2.Pot(1).Total())
	assert.Equal(t, []int64{3}, l2.Pot(2).Players())
	assert.Equal(t, 240, l2.Total())
}

func TestLedgerRefund(t *testing.T) {
	l := NewLedger([]int64{1, 2})
	l.Commit(1, 30)
	l.Commit(2, 10)
	l.AllIn(2)
	assert.Equal(t, 20, l.Refund(1, 20))
	assert.Equal(t, 0, l.Active().Total())
	assert.Equal(t, 20, l.Total())
	assert.Equal(t, 20, l.Refund(1, 100)+l.Refund(2, 100))
	assert.Equal(t, 0, l.Total())
}

func TestLedgerConservation(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for round := 0; round < 200; round++ {
		ids := []int64{1, 2, 3, 4}
		l := NewLedger(ids)
		moved := 0
		for step := 0; step < 30; step++ {
			id := ids[rng.Intn(len(ids))]
			amount := rng.Intn(40)
			switch rng.Intn(5) {
			case 0:
				l.Contribute(id, amount)
				moved += amount
			case 1:
				if c := l.Active().Largest(); c > 1 {
					l.CreateSidePot(1+rng.Intn(c-1), ids[:1+rng.Intn(len(ids))])
				}
			case 2:
				l.AllIn(id)
			case 3:
				moved -= l.Refund(id, amount)
			default:
				l.Commit(id, amount)
				moved += amount
			}
			sum := 0
			for _, p := range l.Pots() {
				for _, v := range p.Contributions() {
					require.GreaterOrEqual(t, v, 0)
				}
				sum += p.Total()
			}
			require.Equal(t, moved, sum)
		}
	}
}
