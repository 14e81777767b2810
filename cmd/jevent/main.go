// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Program jevent parses JSON documents as event streams.
//
// Usage:
//
//	jevent events [--rate N] [file]
//	jevent get PATH [file]
//	jevent check [file ...]
//	jevent fmt [--compact] [file]
//
// Input files may be compressed with gzip, zstd, or lz4. With no file, or
// the file "-", input is read from stdin.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"
)

var log = commonlog.GetLogger("jevent")

// settings are the flags shared by all subcommands.
type settings struct {
	verbose int
	escapes bool
}

func newRootCmd() *cobra.Command {
	var s settings
	rootCmd := &cobra.Command{
		Use:           "jevent",
		Short:         "Parse JSON documents as streams of events",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			commonlog.Configure(s.verbose, nil)
		},
	}
	rootCmd.PersistentFlags().CountVarP(&s.verbose, "verbose", "v", "increase log verbosity (repeatable)")
	rootCmd.PersistentFlags().BoolVar(&s.escapes, "escapes", true, "decode escape sequences in strings")

	rootCmd.AddCommand(newEventsCmd(&s))
	rootCmd.AddCommand(newGetCmd(&s))
	rootCmd.AddCommand(newCheckCmd(&s))
	rootCmd.AddCommand(newFmtCmd(&s))
	return rootCmd
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		log.Error(err.Error())
		os.Exit(1)
	}
}
