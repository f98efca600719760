package holdem

import "errors"

// Every command failure wraps one of these. A failed command leaves the
// table exactly as it was.
var (
	ErrInsufficientFunds   = errors.New("insufficient funds")
	ErrInvalidBet          = errors.New("invalid bet")
	ErrInvalidUserResponse = errors.New("invalid response")
	ErrTableFull           = errors.New("table is full")
	ErrNotEnoughPlayers    = errors.New("not enough players")
	ErrAlreadyJoined       = errors.New("already joined")
	ErrNotSeated           = errors.New("not seated at the table")
)
