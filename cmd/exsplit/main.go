// Package main provides the CLI entry point for exsplit-go.
package main

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var debug bool

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "exsplit",
		Short: "Split spreadsheet rows into sheets or files by column conditions",
		Long: `exsplit-go loads one sheet of an Excel workbook (.xlsx or legacy .xls),
applies an ordered list of column conditions and writes the matching rows of
each condition to its own sheet of one workbook or to its own file.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmd.SetContext(setupLogging(cmd.Context()))
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "Enable debug logging")

	rootCmd.AddCommand(newSheetsCmd())
	rootCmd.AddCommand(newColumnsCmd())
	rootCmd.AddCommand(newSplitCmd())

	return rootCmd
}

// setupLogging attaches a console logger on stderr to ctx.
func setupLogging(ctx context.Context) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()
	return logger.WithContext(ctx)
}
