package app

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yangrq1018/holdem-bot/telegram/holdem"
	"github.com/yangrq1018/holdem-bot/telegram/texas"
)

func TestSplitCards(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"As Kd", []string{"As", "Kd"}},
		{"Spade 14, Heart 2", []string{"Spade 14", "Heart 2"}},
		{" As ,Kd, ", []string{"As", "Kd"}},
		{"", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := splitCards(tt.in)
			assert.Equal(t, len(tt.want), len(got))
			for i := range tt.want {
				assert.Equal(t, tt.want[i], got[i])
			}
		})
	}
}

func TestFormatHistogram(t *testing.T) {
	known, err := texas.CardsFromStrings(splitCards("As Ah Ad Ac Ks Kh Kd"))
	require.NoError(t, err)
	hist, err := texas.HistogramHandTypes(context.Background(), known)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(formatHistogram(hist)), "\n")
	require.Len(t, lines, 9)
	assert.Equal(t, "Straight Flush: 0.00%, acc: 0.00%", lines[0])
	assert.Equal(t, "Four of a Kind: 100.00%, acc: 100.00%", lines[1])
}

func TestTableStatus(t *testing.T) {
	text := tableStatus(holdem.PreGame, holdem.DefaultRules(), nil)
	assert.Contains(t, text, "Nobody is seated.")
	assert.Contains(t, text, "Buy-in 50, min bet 2, 2 to 6 players.")

	text = tableStatus(holdem.SecondRound, holdem.DefaultRules(), []holdem.Player{
		{ID: 1, Name: "alice", Stack: 48},
		{ID: 2, Name: "<b>bob</b>", Stack: 52},
	})
	assert.Contains(t, text, "Seated: alice 48, <b>bob</b> 52")
}
