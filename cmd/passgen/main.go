package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/natsalete/Password-Generator/internal/cli"
	"github.com/natsalete/Password-Generator/internal/clipboard"
)

func main() {
	cfg, err := cli.ParseFlags(flag.CommandLine, os.Args[1:])
	if err != nil {
		os.Exit(2)
	}

	if cfg.Interactive {
		cfg, err = cli.RunInteractive(os.Stdin, os.Stderr, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	}

	// The OSC 52 sequence has to reach the terminal even when stdout is piped.
	clip := clipboard.NewWriter(os.Stderr)
	color := !cfg.NoColor && os.Getenv("NO_COLOR") == "" && clipboard.IsTerminal(os.Stdout)

	if err := cli.Run(cfg, os.Stdout, os.Stderr, clip, color); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
