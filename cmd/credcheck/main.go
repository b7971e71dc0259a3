package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/hnrobert/credcheck/internal/config"
	"github.com/hnrobert/credcheck/internal/logger"
	"github.com/hnrobert/credcheck/internal/session"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr, os.Getenv))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer, getenv func(string) string) int {
	fs := flag.NewFlagSet("credcheck", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "path to a YAML config file (default $"+config.EnvConfig+")")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: credcheck [-config FILE] DATABASE")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return session.ExitUsage
	}

	path := *configPath
	if path == "" {
		path = getenv(config.EnvConfig)
	}
	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(stderr, "credcheck: %v\n", err)
		return session.ExitUsage
	}
	if err := cfg.ApplyEnv(getenv); err != nil {
		fmt.Fprintf(stderr, "credcheck: %v\n", err)
		return session.ExitUsage
	}

	logger.SetOutput(stderr)
	logger.SetLevel(logger.ParseLevel(cfg.Log.Level, logger.LevelWarn))
	if err := logger.Init(cfg.Log.Dir); err != nil {
		logger.Warn("file logging disabled: %v", err)
	}
	defer logger.Close()

	// A missing argument is reported exactly like a missing file.
	d := session.New(fs.Arg(0), cfg, stdin, stdout)
	if fs.NArg() > 1 {
		logger.Warn("ignoring extra arguments: %v", fs.Args()[1:])
	}
	return d.Run().ExitCode()
}
