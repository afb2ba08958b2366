package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"locked-todo/internal/cli"
	"locked-todo/internal/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	root := cli.NewRootCommand(config.NewLoader(), os.Stdin, os.Stdout, os.Stderr)
	err := root.ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
