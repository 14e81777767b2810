// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"fmt"

	"github.com/creachadair/jevent"
	"github.com/creachadair/jevent/input"
	"github.com/creachadair/jevent/pace"
	"github.com/spf13/cobra"
)

func newEventsCmd(s *settings) *cobra.Command {
	var perSecond float64
	var showLoc bool

	cmd := &cobra.Command{
		Use:   "events [file]",
		Short: "Print the events of a JSON document",
		Long: `Print the events of a JSON document, one per line.

With --rate, events are printed at no more than the given number per second.
An interrupt stops the output between events.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := input.OpenFile(fileArg(args))
			if err != nil {
				return err
			}
			defer r.Close()
			log.Debugf("input format: %v", r.Format)

			p := jevent.NewParser(r)
			p.DecodeEscapes(s.escapes)
			out := cmd.OutOrStdout()
			p.Register(jevent.ObserverFunc(func(e jevent.Event) error {
				var err error
				if showLoc {
					_, err = fmt.Fprintf(out, "%s\t%s\n", e.Location, e)
				} else {
					_, err = fmt.Fprintln(out, e)
				}
				return err
			}))

			n, err := pace.Drive(cmd.Context(), p, pace.NewLimiter(perSecond))
			log.Infof("delivered %d events", n)
			return err
		},
	}
	cmd.Flags().Float64Var(&perSecond, "rate", 0, "maximum events per second (0 means unlimited)")
	cmd.Flags().BoolVar(&showLoc, "loc", false, "print the source location of each event")
	return cmd
}

// fileArg returns the input file named by args, or "-" for stdin.
func fileArg(args []string) string {
	if len(args) == 0 {
		return "-"
	}
	return args[0]
}
