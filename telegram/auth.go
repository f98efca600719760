package telegram

import (
	"fmt"

	tgbotapi "github.com/yangrq1018/telegram-bot-api/v5"
)

type Authorizer interface {
	Validate(u tgbotapi.Update) (ok bool, reason string)
}

type allow struct{}

func (a allow) Validate(tgbotapi.Update) (ok bool, reason string) {
	return true, ""
}

var PolicyAllow = allow{}

// SimpleAuth passes users on the white list. An empty list lets everyone
// through unless AdminOnly is set.
type SimpleAuth struct {
	WhiteList []int64
	AdminOnly bool
}

// Validate checks the sender of the update
func (c SimpleAuth) Validate(u tgbotapi.Update) (ok bool, reason string) {
	ok = true
	if u.Message.From == nil {
		return false, "anonymous sender"
	}
	if c.AdminOnly && len(c.WhiteList) == 0 {
		return false, "command open to table admins only, and none is configured"
	}
	if len(c.WhiteList) > 0 {
		for _, wl := range c.WhiteList {
			if int64(u.Message.From.ID) == wl {
				return
			}
		}
		ok, reason = false, fmt.Sprintf("failed white list check, id: %d", u.Message.From.ID)
		return
	}
	return
}
