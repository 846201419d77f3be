// Command journalctl inspects and maintains the journal client's local data
// without starting a session.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/saketh1999/consistency-cal-sub000/internal/buildinfo"
	"github.com/saketh1999/consistency-cal-sub000/internal/client/config"
)

var CLI struct {
	Version kong.VersionFlag
	DB      string `help:"Local database file." type:"path" default:"${db}"`

	Migrate MigrateCmd `cmd:"" help:"Create or upgrade the local database."`
	Keys    KeysCmd    `cmd:"" help:"List stored keys."`
	Show    ShowCmd    `cmd:"" help:"Print the stored entry of a date."`
	Logout  LogoutCmd  `cmd:"" help:"Forget the saved session and offline credentials."`
}

func defaultDB() string {
	var c config.Config
	c.LoadDefaults()
	return filepath.Join(c.DataDir, "journal.db")
}

func main() {
	kctx := kong.Parse(&CLI,
		kong.Name("journalctl"),
		kong.Description("Maintenance tool for the consistency calendar client"),
		kong.UsageOnError(),
		kong.Vars{
			"version": buildinfo.Version,
			"db":      defaultDB(),
		},
	)

	env := &Env{
		Ctx:    context.Background(),
		DBPath: CLI.DB,
		Out:    os.Stdout,
	}
	defer env.Close()

	if err := kctx.Run(env); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
