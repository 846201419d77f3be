package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/saketh1999/consistency-cal-sub000/internal/client/client"
	"github.com/saketh1999/consistency-cal-sub000/internal/client/keyring"
	"github.com/saketh1999/consistency-cal-sub000/internal/client/persistence"
	"github.com/saketh1999/consistency-cal-sub000/internal/common"
	"github.com/saketh1999/consistency-cal-sub000/internal/journal"
	"github.com/saketh1999/consistency-cal-sub000/internal/logging"
)

// Env is shared by all commands. The database is opened on first use.
type Env struct {
	Ctx    context.Context
	DBPath string
	Out    io.Writer
	Keys   keyring.Store

	db *sql.DB
}

func (e *Env) open() (*client.Repositories, error) {
	if e.db == nil {
		db, err := client.InitDatabase(e.Ctx, e.DBPath)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", e.DBPath, err)
		}
		e.db = db
	}
	return client.NewRepositories(e.db), nil
}

func (e *Env) Close() {
	if e.db != nil {
		_ = e.db.Close()
	}
}

type MigrateCmd struct{}

func (c *MigrateCmd) Run(env *Env) error {
	if _, err := env.open(); err != nil {
		return err
	}
	fmt.Fprintln(env.Out, "Database is up to date:", env.DBPath)
	return nil
}

type KeysCmd struct {
	Prefix string `arg:"" optional:"" help:"Only keys starting with this prefix."`
}

func (c *KeysCmd) Run(env *Env) error {
	repos, err := env.open()
	if err != nil {
		return err
	}
	keys, err := repos.Local.Keys(env.Ctx, c.Prefix)
	if err != nil {
		return err
	}
	for _, k := range keys {
		fmt.Fprintln(env.Out, k)
	}
	return nil
}

type ShowCmd struct {
	Date string `arg:"" help:"Date as YYYY-MM-DD."`
}

func (c *ShowCmd) Run(env *Env) error {
	date, err := journal.ParseDate(c.Date)
	if err != nil {
		return err
	}
	repos, err := env.open()
	if err != nil {
		return err
	}

	days := persistence.NewLocal[journal.DailyData](repos.Local, logging.Nop{}, 0)
	data, found, err := days.Load(env.Ctx, persistence.DailyKey(date))
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("%s: %w", date, common.ErrorNotFound)
	}

	enc := json.NewEncoder(env.Out)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

type LogoutCmd struct{}

func (c *LogoutCmd) Run(env *Env) error {
	keys := env.Keys
	if keys == nil {
		keys = keyring.New(keyring.Service)
	}
	if err := keys.Delete(); err != nil && !errors.Is(err, keyring.ErrKeyringUnavailable) {
		return err
	}

	repos, err := env.open()
	if err != nil {
		return err
	}
	if err := repos.Metadata.Clear(env.Ctx); err != nil {
		return err
	}
	fmt.Fprintln(env.Out, "Saved session removed")
	return nil
}
