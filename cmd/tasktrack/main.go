package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/nhle/tasktrack/internal/model"
	"github.com/nhle/tasktrack/internal/service"
	"github.com/nhle/tasktrack/internal/store"
	"github.com/nhle/tasktrack/internal/ui"
)

func main() {
	configPath := flag.String("config", model.DefaultConfigPath(), "path to the configuration file")
	verbose := flag.Bool("verbose", false, "log store-layer diagnostics")
	flag.Parse()

	if err := run(*configPath, *verbose); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(configPath string, verbose bool) error {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})))

	cfg, err := model.LoadConfig(configPath)
	if err != nil {
		return err
	}

	stores, err := store.Open(cfg)
	if err != nil {
		return err
	}
	defer stores.Close()

	auth := service.NewAuthService(stores.Users)
	tasks := service.NewTaskService(stores.Tasks, stores.Logs, stores.Users)

	return ui.New(auth, tasks, cfg.RememberLogin, os.Stdout).Run()
}
