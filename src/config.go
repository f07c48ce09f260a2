package main

import (
	"encoding/json"
	"math"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"

	"termlife/src/driver"
	"termlife/src/universe"
)

//Config holds the configuration for the game, loaded from a JSON file and the command line
type Config struct {
	Width       int           `json:"width"`
	Height      int           `json:"height"`
	Density     int           `json:"density"`
	Interval    time.Duration `json:"interval"` //"300ms" style string, a bare number is nanoseconds
	MaxSteps    int           `json:"max_steps"`
	Seed        int64         `json:"seed"` //0 seeds from the clock
	Template    string        `json:"template"`
	Legacy      bool          `json:"legacy"`
	Interactive bool          `json:"interactive"`
	Plain       bool          `json:"plain"`
}

//DefaultConfig returns the defaults of the original game: 40x20, 20% alive, 300ms per generation
func DefaultConfig() Config {
	return Config{
		Width:    universe.DefWidth,
		Height:   universe.DefHeight,
		Density:  universe.DefDensity,
		Interval: driver.DefInterval,
	}
}

//LoadConfig loads configuration from JSON file, missing fields keep the defaults
func LoadConfig(filename string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to read file: %+v", filename)
	}

	if err = json.Unmarshal(data, &config); err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to unmarshal data from file: %+v", filename)
	}

	return config, nil
}

//UnmarshalJSON accepts the interval as a duration string
func (c *Config) UnmarshalJSON(data []byte) error {
	type plain Config
	aux := struct {
		*plain
		Interval interface{} `json:"interval"`
	}{plain: (*plain)(c)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	switch v := aux.Interval.(type) {
	case nil:
	case string:
		d, err := time.ParseDuration(v)
		if err != nil {
			return errors.Wrapf(err, "[UnmarshalJSON] bad interval %q", v)
		}
		c.Interval = d
	case float64:
		c.Interval = time.Duration(v)
	default:
		return errors.Errorf("[UnmarshalJSON] bad interval %v", v)
	}
	return nil
}

//UniverseOptions converts the config to the engine options
func (c Config) UniverseOptions() universe.Options {
	o := universe.Options{Width: c.Width, Height: c.Height, Density: c.Density, Sweep: universe.SweepFull}
	if c.Legacy {
		o.Sweep = universe.SweepLegacy
	}
	return o
}

//DriverOptions converts the config to the frame loop options
func (c Config) DriverOptions() (driver.Options, error) {
	if c.Interval < 0 {
		return driver.Options{}, errors.Errorf("[DriverOptions] negative interval %v", c.Interval)
	}
	if c.MaxSteps < 0 {
		return driver.Options{}, errors.Errorf("[DriverOptions] negative max steps %v", c.MaxSteps)
	}
	if uint64(c.MaxSteps) > math.MaxUint32 {
		return driver.Options{}, errors.Errorf("[DriverOptions] max steps %v exceeds %v", c.MaxSteps, uint64(math.MaxUint32))
	}
	return driver.Options{Interval: c.Interval, MaxSteps: uint32(c.MaxSteps)}, nil
}

//InitialState builds the generation 0 from the template or from random data
func (c Config) InitialState() (universe.State, error) {
	o := c.UniverseOptions()
	if c.Template != "" {
		tmpl, ok := universe.TemplateByName(c.Template)
		if !ok {
			return universe.State{}, errors.Errorf("[InitialState] unknown template %q", c.Template)
		}
		return universe.Settle(o, tmpl)
	}
	seed := c.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return universe.Initialize(o, universe.NewSource(seed))
}

//configPath finds the config file argument before the flags are parsed
//the file provides the defaults which the other flags override
func configPath(args []string) string {
	for i, a := range args {
		switch {
		case a == "-c" || a == "--config":
			if i+1 < len(args) {
				return args[i+1]
			}
		case strings.HasPrefix(a, "--config="):
			return strings.TrimPrefix(a, "--config=")
		case strings.HasPrefix(a, "-c="):
			return strings.TrimPrefix(a, "-c=")
		}
	}
	return ""
}
