package main

import (
	"fmt"
	"os"

	"github.com/twdsco/hackertracker/internal/config"
	"github.com/twdsco/hackertracker/internal/ui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Config is loaded by the root command once --config is parsed
	app := ui.NewApp(config.DefaultConfigPath())
	defer func() { _ = app.Close() }()
	return app.Execute()
}
