package main

import (
	"context"
	"log"
	"os"

	"github.com/saketh1999/consistency-cal-sub000/internal/buildinfo"
	"github.com/saketh1999/consistency-cal-sub000/internal/server"
	"github.com/saketh1999/consistency-cal-sub000/internal/server/config"
)

func main() {
	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := server.NewApp(ctx, cfg)
	if err != nil {
		log.Printf("%v", err)
		return
	}

	app.Run(ctx)
}
