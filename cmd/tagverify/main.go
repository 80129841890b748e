package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/charmbracelet/fang"

	"github.com/simonhull/tagverify"
	"github.com/simonhull/tagverify/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	err := fang.Execute(ctx, cli.NewRootCmd(),
		fang.WithVersion(tagverify.GetVersionInfo().String()),
		fang.WithErrorHandler(cli.ErrorHandler),
	)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
