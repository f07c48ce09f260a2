package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"

	"github.com/integrii/flaggy"

	"termlife/src/driver"
	"termlife/src/universe"
	"termlife/src/view"
)

func main() {
	cfg, err := initConfig(os.Args[1:])
	if err != nil {
		log.Fatalln(err)
	}

	do, err := cfg.DriverOptions()
	if err != nil {
		log.Fatalln(err)
	}
	s, err := cfg.InitialState()
	if err != nil {
		log.Fatalln(err)
	}

	if cfg.Interactive {
		err = runInteractive(cfg.UniverseOptions(), do, s)
	} else {
		err = runConsole(cfg, do, s)
	}
	if err != nil {
		log.Fatalln(err)
	}
}

func initConfig(args []string) (Config, error) {
	cfg := DefaultConfig()
	path := configPath(args)
	if path != "" {
		var err error
		if cfg, err = LoadConfig(path); err != nil {
			return cfg, err
		}
	}

	names := make([]string, 0)
	for _, t := range universe.Templates() {
		names = append(names, t.Name)
	}

	flaggy.SetName("termlife")
	flaggy.SetDescription("Conway's Game of Life in the terminal")
	flaggy.DefaultParser.ShowHelpOnUnexpected = true
	flaggy.String(&path, "c", "config", "JSON config file, the other flags override its values")
	flaggy.Int(&cfg.Width, "x", "width", "Width of a simulation field")
	flaggy.Int(&cfg.Height, "y", "height", "Height of a simulation field")
	flaggy.Int(&cfg.Density, "d", "density", "Percent of cells alive at start")
	flaggy.Duration(&cfg.Interval, "i", "interval", "Interval between the generations, for example 300ms")
	flaggy.Int(&cfg.MaxSteps, "s", "maxSteps", "Limit the simulation to maxSteps, 0 is unlimited")
	flaggy.Int64(&cfg.Seed, "r", "seed", "Seed of the random data, 0 seeds from the clock")
	flaggy.String(&cfg.Template, "t", "template", "Settle with template instead of random data ["+strings.Join(names, "|")+"]")
	flaggy.Bool(&cfg.Legacy, "l", "legacy", "Never update the last row and column, as the original game did")
	flaggy.Bool(&cfg.Interactive, "n", "interactive", "Start interactive mode")
	flaggy.Bool(&cfg.Plain, "p", "plain", "No colors and no cursor control, for pipes")
	flaggy.ParseArgs(args)

	return cfg, nil
}

func runConsole(cfg Config, do driver.Options, s universe.State) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	out := view.NewConsoleOut(os.Stdout, !cfg.Plain, !cfg.Plain)
	if cfg.Plain {
		if err := out.Configuration(cfg.UniverseOptions(), do); err != nil {
			return err
		}
	}
	last, err := driver.New(do, s, out, nil).Run(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Finished, generation: %v, alive: %v\n", last.Generation, last.Living)
	return nil
}

func runInteractive(uo universe.Options, do driver.Options, s universe.State) error {
	//the log would break the screen
	driver.SetLogOutput(io.Discard)

	ui, err := view.NewConsoleUI(uo, do)
	if err != nil {
		return err
	}
	defer ui.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := driver.New(do, s, ui, ui).Run(ctx)
		done <- err
	}()

	err = ui.Start()
	cancel()
	if derr := <-done; err == nil {
		err = derr
	}
	return err
}
