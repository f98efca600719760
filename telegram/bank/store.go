package bank

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"
	"github.com/yangrq1018/holdem-bot/telegram/app/gcloud"
)

// Store persists the whole directory at once. A store that has never been
// saved loads as empty.
type Store interface {
	Load(ctx context.Context) (map[int64]*Account, error)
	Save(ctx context.Context, accounts map[int64]*Account) error
}

// FileStore keeps accounts in a local msgpack file
type FileStore struct {
	Path string
}

func (s FileStore) Load(_ context.Context) (map[int64]*Account, error) {
	f, err := os.Open(s.Path)
	if errors.Is(err, os.ErrNotExist) {
		return make(map[int64]*Account), nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	accounts := make(map[int64]*Account)
	dec := msgpack.NewDecoder(f)
	dec.SetCustomStructTag("json")
	if err := dec.Decode(&accounts); err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.Path, err)
	}
	// a saved nil map decodes back to nil
	if accounts == nil {
		accounts = make(map[int64]*Account)
	}
	return accounts, nil
}

// Save writes to a temporary file first so a crash never leaves a torn file
func (s FileStore) Save(_ context.Context, accounts map[int64]*Account) error {
	tmp, err := os.CreateTemp(filepath.Dir(s.Path), filepath.Base(s.Path)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	enc := msgpack.NewEncoder(tmp)
	enc.SetCustomStructTag("json")
	if err := enc.Encode(accounts); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), s.Path)
}

// CloudStore keeps accounts as a JSON object on Google Cloud Storage
type CloudStore struct {
	Bucket string
	Object string
}

func (s CloudStore) Load(ctx context.Context) (map[int64]*Account, error) {
	accounts := make(map[int64]*Account)
	err := gcloud.LoadObject(ctx, s.Bucket, s.Object, &accounts)
	if errors.Is(err, gcloud.ErrObjectNotExist) {
		return make(map[int64]*Account), nil
	}
	if err != nil {
		return nil, err
	}
	// a JSON null leaves the map nil
	if accounts == nil {
		accounts = make(map[int64]*Account)
	}
	return accounts, nil
}

func (s CloudStore) Save(ctx context.Context, accounts map[int64]*Account) error {
	return gcloud.SaveObject(ctx, s.Bucket, s.Object, accounts)
}
