// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"fmt"

	"github.com/creachadair/jevent"
	"github.com/creachadair/jevent/ast"
	"github.com/creachadair/jevent/input"
	"github.com/spf13/cobra"
)

func newFmtCmd(s *settings) *cobra.Command {
	var compact bool
	var f ast.Formatter

	cmd := &cobra.Command{
		Use:   "fmt [file]",
		Short: "Pretty-print a JSON document",
		Long: `Pretty-print a JSON document to stdout.

Simple member values are aligned in columns, and short arrays and objects
are kept on one line. Use --compact to remove all insignificant whitespace.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := input.OpenFile(fileArg(args))
			if err != nil {
				return err
			}
			defer r.Close()

			p := jevent.NewParser(r)
			p.DecodeEscapes(s.escapes)
			v, err := ast.FromParser(p)
			if err != nil {
				return err
			}
			if compact {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), v.JSON())
				return err
			}
			return f.Format(cmd.OutOrStdout(), v)
		},
	}
	cmd.Flags().BoolVar(&compact, "compact", false, "print without insignificant whitespace")
	cmd.Flags().IntVar(&f.MaxLineItems, "line-items", 3, "maximum array items on a single line")
	return cmd
}
