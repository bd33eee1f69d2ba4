package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/afero"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cmd := newRootCmd(afero.NewOsFs(), os.Getwd)
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
