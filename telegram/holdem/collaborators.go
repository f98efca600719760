package holdem

import "github.com/yangrq1018/holdem-bot/telegram/texas"

// Messenger delivers table output. Sends are fire-and-forget, a transport
// failure is the messenger's to log.
type Messenger interface {
	// Announce posts to the whole table
	Announce(text string, attachments ...string)
	// Notify privately messages one player
	Notify(player int64, text string, attachments ...string)
}

// Bank is the bankroll ledger chips are bought from and cashed back into.
type Bank interface {
	Withdraw(player int64, amount int) error
	Deposit(player int64, amount int) error
	Balance(player int64) (int, error)
}

// Renderer turns a hand into an image path the messenger can attach.
type Renderer interface {
	Render(h texas.Hand) (string, error)
	// Cleanup removes everything rendered since the last call
	Cleanup() error
}
