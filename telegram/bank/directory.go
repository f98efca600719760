package bank

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
)

const DefaultInitialDeposit = 1000

var ErrInsufficientFunds = errors.New("not enough yembucks in the bank")

type Account struct {
	Name     string `json:"name,omitempty"`
	Bankroll int    `json:"bankroll"`
}

// Directory is the bankroll of every player the bot has seen. Unknown
// players are opened an account with the initial deposit on first use.
type Directory struct {
	mu       sync.Mutex
	accounts map[int64]*Account
	initial  int
	store    Store
	dirty    bool
	logger   logrus.FieldLogger
}

func NewDirectory(store Store, initialDeposit int) *Directory {
	return &Directory{
		accounts: make(map[int64]*Account),
		initial:  initialDeposit,
		store:    store,
		logger:   logrus.WithField("module", "bank"),
	}
}

// Load replaces the in-memory accounts with the stored ones
func (d *Directory) Load(ctx context.Context) error {
	accounts, err := d.store.Load(ctx)
	if err != nil {
		return err
	}
	if accounts == nil {
		accounts = make(map[int64]*Account)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.accounts = accounts
	d.dirty = false
	d.logger.Infof("loaded %d accounts", len(accounts))
	return nil
}

func (d *Directory) Save(ctx context.Context) error {
	d.mu.Lock()
	snapshot := make(map[int64]*Account, len(d.accounts))
	for id, a := range d.accounts {
		acc := *a
		snapshot[id] = &acc
	}
	d.dirty = false
	d.mu.Unlock()
	if err := d.store.Save(ctx, snapshot); err != nil {
		d.mu.Lock()
		d.dirty = true
		d.mu.Unlock()
		return err
	}
	d.logger.Infof("saved %d accounts", len(snapshot))
	return nil
}

// account returns the player's account, opening it if needed. d.mu held.
func (d *Directory) account(id int64) *Account {
	a, ok := d.accounts[id]
	if !ok {
		a = &Account{Bankroll: d.initial}
		d.accounts[id] = a
		d.dirty = true
		d.logger.WithField("player", id).Infof("opened account with %d", d.initial)
	}
	return a
}

// Register opens accounts for players that don't have one yet
func (d *Directory) Register(id int64, name string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	a := d.account(id)
	if a.Name != name {
		a.Name = name
		d.dirty = true
	}
}

func (d *Directory) Balance(id int64) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.account(id).Bankroll, nil
}

func (d *Directory) Withdraw(id int64, amount int) error {
	if amount < 0 {
		return fmt.Errorf("cannot withdraw %d", amount)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	a := d.account(id)
	if a.Bankroll < amount {
		return fmt.Errorf("%w: %d requested, %d available", ErrInsufficientFunds, amount, a.Bankroll)
	}
	a.Bankroll -= amount
	d.dirty = true
	return nil
}

func (d *Directory) Deposit(id int64, amount int) error {
	if amount < 0 {
		return fmt.Errorf("cannot deposit %d", amount)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.account(id).Bankroll += amount
	d.dirty = true
	return nil
}

func (d *Directory) isDirty() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.dirty
}

// Schedule saves the directory every interval when something changed.
// Stop the returned scheduler on shutdown.
func (d *Directory) Schedule(every time.Duration) (*gocron.Scheduler, error) {
	scheduler := gocron.NewScheduler(time.Local)
	_, err := scheduler.
		Every(every).
		StartAt(time.Now().Add(every)).
		Do(func() {
			if !d.isDirty() {
				return
			}
			if err := d.Save(context.Background()); err != nil {
				d.logger.WithError(err).Error("periodic save")
			}
		})
	if err != nil {
		return nil, err
	}
	scheduler.StartAsync()
	return scheduler, nil
}
