package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/Vishy91/Mountain-Ridge-finder/ridge"
)

// Version is set at build time via -ldflags
var Version = "dev"

const usage = "usage: ridgefind <input-image> <output-image> <anchor-row|none> <anchor-col>"

// configEnv names the environment variable holding an optional YAML config path.
const configEnv = "RIDGEFIND_CONFIG"

func main() {
	log.Printf("ridgefind version: %s", Version)

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("Warning: loading .env: %v", err)
	}

	opts, err := parseArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := loadConfig(os.Getenv(configEnv))
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	app := NewApp(cfg)

	client, err := ridge.ConnectMQTT(cfg.MQTT)
	if err != nil {
		log.Printf("[MQTT] publishing disabled: %v", err)
	} else if client != nil {
		app.Publisher = ridge.NewPublisher(client, cfg.MQTT.PublishPrefix)
		defer app.Publisher.Close()
	}

	report, err := app.Run(opts)
	if err != nil {
		log.Printf("Error: %v", err)
		if app.Publisher != nil {
			app.Publisher.Close()
		}
		os.Exit(1)
	}

	fmt.Printf("bayes:    %v\n", report.Result.Baseline)
	fmt.Printf("refined:  %v\n", report.Result.Refined)
	fmt.Printf("anchored: %v\n", report.Result.Anchored)
}

// parseArgs reads the four positional arguments. The anchor row may be
// "none", "-" or empty to run without an anchor; the column must always be
// an integer.
func parseArgs(args []string) (RunOptions, error) {
	if len(args) != 4 {
		return RunOptions{}, fmt.Errorf("expected 4 arguments, got %d", len(args))
	}
	opts := RunOptions{InputPath: args[0], OutputPath: args[1]}
	if opts.InputPath == "" || opts.OutputPath == "" {
		return RunOptions{}, fmt.Errorf("input and output paths must not be empty")
	}

	col, err := strconv.Atoi(strings.TrimSpace(args[3]))
	if err != nil {
		return RunOptions{}, fmt.Errorf("anchor column %q is not an integer", args[3])
	}

	rowArg := strings.TrimSpace(args[2])
	switch strings.ToLower(rowArg) {
	case "", "none", "-":
		return opts, nil
	}
	row, err := strconv.Atoi(rowArg)
	if err != nil {
		return RunOptions{}, fmt.Errorf("anchor row %q is not an integer or \"none\"", args[2])
	}
	opts.Anchor = &ridge.Anchor{Row: row, Column: col}
	return opts, nil
}

// loadConfig returns the defaults when path is empty.
func loadConfig(path string) (*ridge.Config, error) {
	if path == "" {
		return ridge.DefaultConfig(), nil
	}
	cfg, err := ridge.LoadConfig(path)
	if err != nil {
		return nil, err
	}
	log.Printf("Loaded config from %s", path)
	return cfg, nil
}
