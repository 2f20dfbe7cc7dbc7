// Command farewell-claimer helps Farewell message claimers send the
// required emails, export them as .eml files, and generate placeholder
// zk-email proofs for the Farewell smart contract.
package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/lmittmann/tint"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"

	"github.com/farewell-protocol/farewell-claimer/internal/claimer"
	"github.com/farewell-protocol/farewell-claimer/internal/ui"
)

type CLI struct {
	MessageFile string `arg:"" optional:"" name:"message-file" help:"JSON file with message data (exported from the Farewell UI)." type:"existingfile"`

	File      string     `name:"file" short:"f" help:"JSON file with message data (alternative to the positional argument)." type:"existingfile"`
	Config    string     `name:"config" help:"Path to the claimer config file." env:"FAREWELL_CONFIG"`
	OutputDir string     `name:"output-dir" help:"Directory under which the per-run proof directory is created." default:"."`
	LogLevel  slog.Level `name:"log-level" help:"Log level." env:"FAREWELL_LOG_LEVEL" default:"WARN" enum:"DEBUG,INFO,WARN,ERROR"`
}

func (cli *CLI) initLogger() *slog.Logger {
	var handler slog.Handler
	if isatty.IsTerminal(os.Stderr.Fd()) {
		handler = tint.NewHandler(colorable.NewColorable(os.Stderr), &tint.Options{Level: cli.LogLevel})
	} else {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: cli.LogLevel})
	}
	return slog.New(handler)
}

func main() {
	var cli CLI
	kong.Parse(&cli,
		kong.Name("farewell-claimer"),
		kong.Description("Send farewell emails and generate zk-email proofs for the Farewell protocol."),
	)

	logger := cli.initLogger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// The positional argument takes precedence over the flag.
	messageFile := cli.MessageFile
	if messageFile == "" {
		messageFile = cli.File
	}

	err := claimer.Run(ctx, claimer.Options{
		MessageFile: messageFile,
		ConfigPath:  cli.Config,
		OutputDir:   cli.OutputDir,
		Logger:      logger,
	})
	if err != nil {
		if errors.Is(err, claimer.ErrInterrupted) || ctx.Err() != nil {
			ui.Warnf("Interrupted by user.")
			os.Exit(0)
		}
		ui.Errorf("An unexpected error occurred: %v", err)
		os.Exit(1)
	}
}
