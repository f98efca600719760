package telegram

import (
	tgbotapi "github.com/yangrq1018/telegram-bot-api/v5"
)

type Command interface {
	ID() tgbotapi.BotCommand

	// Serve subscribes the command's handlers on the bot
	Serve(bot *Bot) error

	// Init runs once every command is registered, before Listen
	Init()

	Authorize() Authorizer
}
