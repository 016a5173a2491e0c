package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/Versifine/galleria/internal/config"
)

var CLI struct {
	Config string `help:"Configuration file; built-in defaults when empty." short:"c" type:"existingfile"`
	Debug  bool   `help:"Enable debug logging."`

	Explore struct {
		Frontend    string `help:"Frontend to run: viewer or console. Overrides frontend.mode."`
		SkipWelcome bool   `help:"Start past the welcome panel."`
	} `cmd:"" default:"1" help:"Walk the gallery."`

	Zones struct {
	} `cmd:"" help:"List the gallery zones and their teleport targets."`

	ShowConfig struct {
	} `cmd:"" name:"config" help:"Write the effective configuration to standard output."`
}

func writeError(err error) {
	fmt.Fprintf(os.Stderr, "%s\n", err)
	os.Exit(1)
}

func loadConfig() (*config.Config, error) {
	if CLI.Config == "" {
		return config.Default(), nil
	}
	return config.Load(CLI.Config)
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("galleria"),
		kong.Description("a walkable gallery with proximity zones"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
			Summary: true,
		}))

	cfg, err := loadConfig()
	if err != nil {
		writeError(fmt.Errorf("load config: %w", err))
	}
	if CLI.Debug {
		cfg.Logging.Level = "debug"
	}

	switch ctx.Command() {
	case "explore":
		err = exploreCommand(cfg)
	case "zones":
		err = zonesCommand(cfg, os.Stdout)
	case "config":
		err = configCommand(cfg, os.Stdout)
	}
	if err != nil {
		writeError(err)
	}
}
