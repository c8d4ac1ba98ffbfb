package main

import (
	"context"
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"

	"github.com/jask/bankconsole/internal/api"
	"github.com/jask/bankconsole/internal/config"
	"github.com/jask/bankconsole/internal/journal"
	"github.com/jask/bankconsole/internal/logging"
	"github.com/jask/bankconsole/internal/tui"
)

func main() {
	apiRoot := pflag.String("api", "", "bank service API root (overrides config)")
	noJournal := pflag.Bool("no-journal", false, "do not record operations locally")
	pflag.Parse()

	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if *apiRoot != "" {
		cfg.API.Root = *apiRoot
	}

	logFile, err := logging.OpenFile(cfg.Log.Path)
	if err != nil {
		log.Fatalf("log: %v", err)
	}
	defer logFile.Close()
	logger := logging.New(cfg.Log.Level, logFile)

	deps := tui.Deps{Log: logger}
	if cfg.Journal.Enabled && !*noJournal {
		db, err := journal.Open(cfg.Journal.Path)
		if err != nil {
			log.Fatalf("open journal: %v", err)
		}
		defer db.Close()
		deps.Journal = journal.NewStore(db)
	}

	gw := api.NewGateway(cfg.API.Root, api.WithTimeout(cfg.API.Timeout), api.WithLogger(logger))
	deps.Backend = api.NewClient(gw)

	logger.Info("starting console", "api_root", gw.Root(), "journal", deps.Journal != nil)
	p := tea.NewProgram(tui.New(ctx, cfg, deps), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("error: %v\n", err)
		os.Exit(1)
	}
}
