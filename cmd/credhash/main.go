package main

import (
	"bufio"
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hnrobert/credcheck/internal/auth"
	"github.com/hnrobert/credcheck/internal/config"
)

// credhash prints an Argon2id hash for a password read from stdin. With -user it
// prints a ready-to-append CSV row instead.
func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr, os.Getenv))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer, getenv func(string) string) int {
	fs := flag.NewFlagSet("credhash", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "path to a YAML config file (default $"+config.EnvConfig+")")
	user := fs.String("user", "", "emit a \"user,hash\" CSV row for this username")
	memory := fs.Uint("m", 0, "argon2 memory in KiB (default from config)")
	iterations := fs.Uint("t", 0, "argon2 iterations (default from config)")
	threads := fs.Uint("p", 0, "argon2 parallelism (default from config)")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	path := *configPath
	if path == "" {
		path = getenv(config.EnvConfig)
	}
	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(stderr, "credhash: %v\n", err)
		return 2
	}

	params := auth.DefaultParams()
	params.Memory, params.Time, params.Threads = cfg.Hash.Memory, cfg.Hash.Time, cfg.Hash.Threads
	if *memory > 0 {
		params.Memory = uint32(*memory)
	}
	if *iterations > 0 {
		params.Time = uint32(*iterations)
	}
	if *threads > 0 {
		if *threads > 255 {
			fmt.Fprintln(stderr, "credhash: -p must be at most 255")
			return 2
		}
		params.Threads = uint8(*threads)
	}

	password, err := bufio.NewReader(stdin).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		fmt.Fprintf(stderr, "credhash: read password: %v\n", err)
		return 1
	}
	password = strings.TrimSpace(password)
	if password == "" {
		fmt.Fprintln(stderr, "credhash: empty password")
		return 1
	}

	hash, err := auth.HashPassword(password, params)
	if err != nil {
		fmt.Fprintf(stderr, "credhash: %v\n", err)
		return 1
	}

	if *user == "" {
		fmt.Fprintln(stdout, hash)
		return 0
	}
	w := csv.NewWriter(stdout)
	if err := w.Write([]string{*user, hash}); err != nil {
		fmt.Fprintf(stderr, "credhash: %v\n", err)
		return 1
	}
	w.Flush()
	if err := w.Error(); err != nil {
		fmt.Fprintf(stderr, "credhash: %v\n", err)
		return 1
	}
	return 0
}
