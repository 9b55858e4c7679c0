package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/tomz197/neonfield/internal/config"
	"github.com/tomz197/neonfield/internal/loop/client"
	"github.com/tomz197/neonfield/internal/loop/server"
	"github.com/tomz197/neonfield/internal/scene"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "neonfield: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}

	// The terminal belongs to the canvas, so logs only go to a file.
	var logOut io.Writer = io.Discard
	if path := config.GetEnv("NEONFIELD_LOG_FILE", ""); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		logOut = f
	}
	logger := config.NewLogger(logOut, "neonfield")

	facts, err := config.LoadFactsFrom(scene.LoadFacts)
	if err != nil {
		return err
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("enable raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	c := client.NewClient(server.NewLocal(), bufio.NewReader(os.Stdin), os.Stdout, client.ClientOptions{
		Username: config.GetEnv("USER", "pilot"),
		Facts:    facts,
		Logger:   logger,
	})
	if err := c.Run(); err != nil {
		return fmt.Errorf("game: %w", err)
	}
	return nil
}
