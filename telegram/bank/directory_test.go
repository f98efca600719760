package bank

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirectory(t *testing.T) {
	d := NewDirectory(FileStore{Path: filepath.Join(t.TempDir(), "bank.msgpack")}, DefaultInitialDeposit)

	balance, err := d.Balance(7)
	require.NoError(t, err)
	assert.Equal(t, 1000, balance, "unknown players get the initial deposit")

	require.NoError(t, d.Withdraw(7, 50))
	require.NoError(t, d.Deposit(7, 20))
	balance, _ = d.Balance(7)
	assert.Equal(t, 970, balance)

	err = d.Withdraw(7, 971)
	assert.ErrorIs(t, err, ErrInsufficientFunds)
	balance, _ = d.Balance(7)
	assert.Equal(t, 970, balance)

	assert.Error(t, d.Withdraw(7, -1))
	assert.Error(t, d.Deposit(7, -1))
}

func TestFileStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := FileStore{Path: filepath.Join(t.TempDir(), "bank.msgpack")}

	d := NewDirectory(store, 500)
	require.NoError(t, d.Load(ctx), "missing file loads empty")
	d.Register(1, "alice")
	require.NoError(t, d.Withdraw(2, 100))
	require.NoError(t, d.Save(ctx))

	loaded := NewDirectory(store, 0)
	require.NoError(t, loaded.Load(ctx))
	balance, _ := loaded.Balance(2)
	assert.Equal(t, 400, balance)
	assert.Equal(t, "alice", loaded.accounts[1].Name)
	assert.False(t, loaded.isDirty())
}

type nilStore struct{}

func (nilStore) Load(context.Context) (map[int64]*Account, error) { return nil, nil }

func (nilStore) Save(context.Context, map[int64]*Account) error { return nil }

func TestLoadNilAccounts(t *testing.T) {
	ctx := context.Background()
	empty := FileStore{Path: filepath.Join(t.TempDir(), "bank.msgpack")}
	require.NoError(t, empty.Save(ctx, nil))
	accounts, err := empty.Load(ctx)
	require.NoError(t, err)
	assert.NotNil(t, accounts)

	tests := []struct {
		name  string
		store Store
	}{
		{"saved nil map", empty},
		{"store returning nil", nilStore{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDirectory(tt.store, 100)
			require.NoError(t, d.Load(ctx))
			assert.NotPanics(t, func() {
				d.Register(1, "alice")
				require.NoError(t, d.Withdraw(1, 30))
				require.NoError(t, d.Deposit(2, 5))
			})
			balance, _ := d.Balance(1)
			assert.Equal(t, 70, balance)
			balance, _ = d.Balance(2)
			assert.Equal(t, 105, balance)
		})
	}
}

type countingStore struct {
	saves chan map[int64]*Account
}

func (s countingStore) Load(context.Context) (map[int64]*Account, error) {
	return make(map[int64]*Account), nil
}

func (s countingStore) Save(_ context.Context, accounts map[int64]*Account) error {
	s.saves <- accounts
	return nil
}

func TestSchedule(t *testing.T) {
	store := countingStore{saves: make(chan map[int64]*Account, 16)}
	d := NewDirectory(store, 10)
	require.NoError(t, d.Deposit(3, 5))

	s, err := d.Schedule(20 * time.Millisecond)
	require.NoError(t, err)
	defer s.Stop()

	select {
	case saved := <-store.saves:
		assert.Equal(t, 15, saved[3].Bankroll)
	case <-time.After(2 * time.Second):
		t.Fatal("directory was not saved")
	}
	assert.Eventually(t, func() bool { return !d.isDirty() }, time.Second, 10*time.Millisecond)
}
