package telegram

import (
	"testing"

	"github.com/stretchr/testify/assert"
	tgbotapi "github.com/yangrq1018/telegram-bot-api/v5"
)

func updateFrom(id int) tgbotapi.Update {
	return tgbotapi.Update{
		Message: &tgbotapi.Message{
			From: &tgbotapi.User{ID: id, FirstName: "Anonymous"},
		},
	}
}

func TestSimpleAuth(t *testing.T) {
	tests := []struct {
		name string
		auth SimpleAuth
		from int
		ok   bool
	}{
		{"open", SimpleAuth{}, 1, true},
		{"white listed", SimpleAuth{WhiteList: []int64{1, 2}}, 2, true},
		{"not white listed", SimpleAuth{WhiteList: []int64{1, 2}}, 3, false},
		{"admin", SimpleAuth{WhiteList: []int64{9}, AdminOnly: true}, 9, true},
		{"not admin", SimpleAuth{WhiteList: []int64{9}, AdminOnly: true}, 1, false},
		{"no admins configured", SimpleAuth{AdminOnly: true}, 1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, reason := tt.auth.Validate(updateFrom(tt.from))
			assert.Equal(t, tt.ok, ok)
			if !ok {
				assert.NotEmpty(t, reason)
			}
		})
	}

	ok, _ := PolicyAllow.Validate(updateFrom(1))
	assert.True(t, ok)
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "bob_42", DisplayName(&tgbotapi.User{UserName: "bob_42", FirstName: "Bob"}))
	assert.Equal(t, "Bob Smith", DisplayName(&tgbotapi.User{FirstName: "Bob", LastName: "Smith"}))
	assert.Equal(t, "Bob", DisplayName(&tgbotapi.User{FirstName: "Bob"}))
	assert.Equal(t, "", DisplayName(nil))
}
