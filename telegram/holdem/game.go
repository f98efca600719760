package holdem

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/sanity-io/litter"
	"github.com/sirupsen/logrus"
	"github.com/thoas/go-funk"
	"github.com/yangrq1018/holdem-bot/telegram/texas"
)

type Round int

const (
	PreGame Round = iota
	GameStart
	FirstRound
	SecondRound
	ThirdRound
	FourthRound
	Showdown
	GameEnd
)

func (r Round) String() string {
	switch r {
	case PreGame:
		return "pre-game"
	case GameStart:
		return "game start"
	case FirstRound:
		return "pre-flop"
	case SecondRound:
		return "flop"
	case ThirdRound:
		return "turn"
	case FourthRound:
		return "river"
	case Showdown:
		return "showdown"
	case GameEnd:
		return "game end"
	default:
		return ""
	}
}

func (r Round) Betting() bool {
	return r >= FirstRound && r <= FourthRound
}

// community cards revealed when a street opens
var revealed = map[Round]int{
	SecondRound: 3,
	ThirdRound:  1,
	FourthRound: 1,
}

var (
	pregameCommands = []string{"join", "leave", "start", "bank"}
	bettingCommands = []string{"fold", "check", "call", "raise"}
)

// Game runs hands at one table. Every exported method takes the table
// lock, so commands are applied one at a time.
type Game struct {
	mu sync.Mutex

	table    *Table
	round    Round
	handID   string
	newDeck  func() *texas.Deck
	debug    bool
	logger   logrus.FieldLogger
	messages Messenger
	bank     Bank
	renderer Renderer
}

type Option func(g *Game)

// WithDeck replaces the shuffled deck dealt at the start of every hand
func WithDeck(f func() *texas.Deck) Option {
	return func(g *Game) {
		g.newDeck = f
	}
}

func WithLogger(l logrus.FieldLogger) Option {
	return func(g *Game) {
		g.logger = l
	}
}

// WithDebug dumps the table to the debug log after every command
func WithDebug(debug bool) Option {
	return func(g *Game) {
		g.debug = debug
	}
}

func NewGame(rules Rules, m Messenger, b Bank, r Renderer, opts ...Option) *Game {
	g := &Game{
		table:    NewTable(rules),
		newDeck:  texas.NewDeck,
		logger:   logrus.WithField("module", "holdem"),
		messages: m,
		bank:     b,
		renderer: r,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *Game) Round() Round {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.round
}

func (g *Game) Rules() Rules {
	return g.table.Rules
}

// Players returns a snapshot of the seats
func (g *Game) Players() []Player {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]Player, len(g.table.Players))
	for i, p := range g.table.Players {
		out[i] = *p
	}
	return out
}

func (g *Game) log() logrus.FieldLogger {
	l := g.logger.WithField("round", g.round.String())
	if g.handID != "" {
		l = l.WithField("hand", g.handID)
	}
	return l
}

// HandleInput applies one chat message from a player. Unknown words and
// messages from anyone but the current bettor are ignored. A failed
// command is reported to the table and returned.
func (g *Game) HandleInput(id int64, name, text string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	fields := strings.Fields(strings.ToLower(text))
	if len(fields) == 0 {
		return nil
	}
	var err error
	switch {
	case g.round == PreGame && funk.ContainsString(pregameCommands, fields[0]):
		err = g.pregameInput(id, name, fields)
	case g.round.Betting() && funk.ContainsString(bettingCommands, fields[0]):
		if g.table.Current().ID != id {
			return nil
		}
		err = g.bettingInput(fields)
	default:
		return nil
	}
	if err != nil {
		g.log().WithError(err).Infof("command %q from %s rejected", text, name)
		g.messages.Announce(fmt.Sprintf("Error: %v", err))
	}
	if g.debug {
		g.log().Debug(litter.Sdump(g.table))
	}
	return err
}

func (g *Game) pregameInput(id int64, name string, fields []string) error {
	switch fields[0] {
	case "join":
		return g.join(id, name)
	case "leave":
		return g.leave(id)
	case "start":
		return g.start()
	case "bank":
		return g.balance(id, name)
	}
	return nil
}

func (g *Game) bettingInput(fields []string) error {
	p := g.table.Current()
	var (
		r   Result
		err error
		msg string
	)
	switch fields[0] {
	case "fold":
		r, err = g.table.Fold()
		msg = fmt.Sprintf("%s folds.", p.Name)
	case "check":
		r, err = g.table.Check()
		msg = fmt.Sprintf("%s checks.", p.Name)
	case "call":
		r, err = g.table.Call()
		msg = fmt.Sprintf("%s calls %d.", p.Name, r.Amount)
	case "raise":
		if len(fields) < 2 {
			return fmt.Errorf("%w: raise needs an amount, e.g. raise 10", ErrInvalidUserResponse)
		}
		amount, convErr := strconv.Atoi(fields[1])
		if convErr != nil {
			return fmt.Errorf("%w: %q is not a number", ErrInvalidUserResponse, fields[1])
		}
		r, err = g.table.Raise(amount)
		msg = fmt.Sprintf("%s raises %d. Current high bet is %d.", p.Name, amount, g.table.Ledger.MaxCommitted())
	}
	if err != nil {
		return err
	}
	if r.AllIn {
		msg += fmt.Sprintf(" (%s is all in.)", p.Name)
	}
	g.messages.Announce(msg)
	g.afterAction()
	return nil
}

// Join buys the player in from the bank
func (g *Game) Join(id int64, name string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.join(id, name)
}

func (g *Game) join(id int64, name string) error {
	if _, p := g.table.Find(id); p != nil {
		return fmt.Errorf("%w: %s is already at the table", ErrAlreadyJoined, name)
	}
	if len(g.table.Players) >= g.table.MaxPlayers {
		return fmt.Errorf("%w: %d players max", ErrTableFull, g.table.MaxPlayers)
	}
	buyIn := g.table.BuyIn
	if err := g.bank.Withdraw(id, buyIn); err != nil {
		return fmt.Errorf("%w: buy-in of %d rejected: %v", ErrInsufficientFunds, buyIn, err)
	}
	g.table.Seat(&Player{ID: id, Name: name, Stack: buyIn, Active: true})
	left, _ := g.bank.Balance(id)
	g.messages.Announce(fmt.Sprintf("%s joins the table with %d chips and has %d left in the bank.", name, buyIn, left))
	g.log().WithField("player", id).Info("joined")
	return nil
}

// Leave cashes the player's stack back into the bank
func (g *Game) Leave(id int64) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.leave(id)
}

func (g *Game) leave(id int64) error {
	_, p := g.table.Find(id)
	if p == nil {
		return ErrNotSeated
	}
	if g.round != PreGame {
		return fmt.Errorf("%s cannot leave in the middle of a hand", p.Name)
	}
	if err := g.bank.Deposit(id, p.Stack); err != nil {
		return err
	}
	g.table.Unseat(id)
	g.messages.Announce(fmt.Sprintf("%s leaves the table, cashing out %d chips.", p.Name, p.Stack))
	g.log().WithField("player", id).Info("left")
	return nil
}

func (g *Game) balance(id int64, name string) error {
	money, err := g.bank.Balance(id)
	if err != nil {
		return err
	}
	g.messages.Announce(fmt.Sprintf("%s has %d yembucks in the bank. One chip = one yembuck.", name, money))
	return nil
}

// Start deals a new hand
func (g *Game) Start() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.start()
}

func (g *Game) start() error {
	if g.round != PreGame {
		return fmt.Errorf("a hand is already running")
	}
	for _, p := range append([]*Player(nil), g.table.Players...) {
		if p.Stack == 0 {
			g.table.Unseat(p.ID)
			g.messages.Announce(fmt.Sprintf("%s is out of chips and leaves the table.", p.Name))
		}
	}
	if n := len(g.table.Players); n < g.table.MinPlayers {
		return fmt.Errorf("%w: %d seated, %d needed", ErrNotEnoughPlayers, n, g.table.MinPlayers)
	}

	g.round = GameStart
	g.handID = uuid.New().String()
	g.table.ResetHand(g.newDeck())
	g.log().WithField("players", len(g.table.Players)).Info("hand started")

	names := make([]string, len(g.table.Players))
	for i, p := range g.table.Players {
		names[i] = p.Name
	}
	g.messages.Announce(fmt.Sprintf("Game starting!\nThe players are: %s.\nThe dealer is %s.",
		strings.Join(names, ", "), g.table.Players[g.table.Dealer].Name))

	for _, p := range g.table.Players {
		hole, err := g.table.Deck.Draw(2)
		if err != nil {
			g.abort()
			return err
		}
		p.Hole = hole
		g.messages.Notify(p.ID, fmt.Sprintf("You have %d chips. Your hand: %s", p.Stack, p.Hole), g.render(p.Hole)...)
	}

	small, big := g.table.MinBet/2, g.table.MinBet
	sb, bb := g.table.Players[g.table.seat(1)], g.table.Players[g.table.seat(2)]
	sbResult := g.table.PostBlind(sb, small)
	bbResult := g.table.PostBlind(bb, big)
	g.messages.Announce(g.blindMessage(sb, "small", sbResult) + "\n" + g.blindMessage(bb, "big", bbResult))

	g.round = FirstRound
	g.table.Bettor = g.table.seat(2)
	g.afterAction()
	return nil
}

func (g *Game) blindMessage(p *Player, kind string, r Result) string {
	msg := fmt.Sprintf("%s posts the %s blind of %d.", p.Name, kind, r.Amount)
	if r.AllIn {
		msg += fmt.Sprintf(" (%s is all in.)", p.Name)
	}
	return msg
}

// afterAction decides what happens once the bettor is done
func (g *Game) afterAction() {
	switch {
	case g.table.ActiveCount() <= 1:
		g.uncontested()
	case g.table.BettingComplete():
		g.finishStreet()
	case g.table.MoveBettor():
		g.askBettor()
	default:
		g.finishStreet()
	}
}

func (g *Game) askBettor() {
	p := g.table.Current()
	toCall := g.table.ToCall(p)
	msg := fmt.Sprintf("%s, you have %d chips. Your current bet is %d.", p.Name, p.Stack, g.table.Ledger.Committed(p.ID))
	if toCall == 0 {
		msg += " You may check, raise, or fold."
	} else {
		msg += fmt.Sprintf(" You must match the current high bet of %d. You may call %d, raise, or fold.",
			g.table.Ledger.MaxCommitted(), toCall)
	}
	g.messages.Announce(msg)
}

// finishStreet deals the next street, or every remaining street when at
// most one player can still bet.
func (g *Game) finishStreet() {
	fastForward := g.table.CanActCount() <= 1
	if fastForward && g.round != FourthRound {
		g.messages.Announce("No more betting is possible, dealing the remaining cards.")
	}
	for g.round != FourthRound {
		g.round++
		if _, err := g.table.Deal(revealed[g.round]); err != nil {
			g.log().WithError(err).Error("deal community cards")
			g.abort()
			return
		}
		g.messages.Announce(fmt.Sprintf("Community cards: %s", g.table.Community), g.render(g.table.Community)...)
		if !fastForward {
			g.table.StartStreet()
			g.announcePots()
			g.askBettor()
			return
		}
	}
	g.showdown()
}
