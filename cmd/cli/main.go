package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/vk/scaffgo/internal/app"
	"github.com/vk/scaffgo/internal/cli"
)

// main is the entrypoint for the scaffgo binary.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	if err := run(os.Stderr, os.Args[1:]); err != nil {
		if exitErr, ok := err.(*cli.ExitError); ok {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		kind := app.ErrorKind(err)
		fmt.Fprintf(os.Stderr, "error_kind=%s\n%v\n", kind, err)
		os.Exit(cli.ExitCodeForKind(kind))
	}
}

// run encapsulates the main application logic for easier testing and error
// handling.
func run(outW io.Writer, args []string) error {
	appConfig, shouldExit, err := cli.Parse(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	scaffgoApp := app.NewApp(outW, appConfig)
	return scaffgoApp.Generate(context.Background())
}
