// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"fmt"
	"io"

	"github.com/creachadair/jevent"
	"github.com/creachadair/jevent/ast"
	"github.com/creachadair/jevent/input"
	"github.com/creachadair/jevent/path"
	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
)

func newGetCmd(s *settings) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "get PATH [file]",
		Short: "Print the values selected by a path",
		Long: `Print the values selected by a path expression, as YAML.

The path supports names (.a or ['a']), array offsets ([1]), and
wildcards (.* or [*]); the leading "$" is optional. Reading stops as soon
as no further values can match.

If the path has no wildcards, the selected value is printed by itself.
Otherwise each match is printed with its concrete path.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			expr, err := path.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid path: %w", err)
			}
			r, err := input.OpenFile(fileArg(args[1:]))
			if err != nil {
				return err
			}
			defer r.Close()

			p := jevent.NewParser(r)
			p.DecodeEscapes(s.escapes)
			x := path.NewExtractor(expr)
			p.Register(x)
			if err := x.Drive(p); err != nil {
				return err
			}
			ms := x.Matches()
			log.Infof("path %v: %d matches", expr, len(ms))
			if expr.Definite() && len(ms) == 0 {
				return fmt.Errorf("path %v not found", expr)
			}
			return writeMatches(cmd.OutOrStdout(), expr, ms, asJSON)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print values as JSON")
	return cmd
}

func writeMatches(w io.Writer, expr path.Expr, ms []path.Match, asJSON bool) error {
	if asJSON {
		for _, m := range ms {
			if _, err := fmt.Fprintln(w, m.Value.JSON()); err != nil {
				return err
			}
		}
		return nil
	}

	var doc any
	if expr.Definite() {
		doc = toYAML(ms[0].Value)
	} else {
		list := []yaml.MapSlice{}
		for _, m := range ms {
			list = append(list, yaml.MapSlice{
				{Key: "path", Value: m.Path.String()},
				{Key: "value", Value: toYAML(m.Value)},
			})
		}
		doc = list
	}
	out, err := yaml.Marshal(doc)
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}

// toYAML converts v into a value for YAML encoding. Objects become ordered
// mappings, so that members keep their source order.
func toYAML(v ast.Value) any {
	switch t := v.(type) {
	case *ast.Object:
		ms := make(yaml.MapSlice, len(t.Members))
		for i, m := range t.Members {
			ms[i] = yaml.MapItem{Key: m.Key, Value: toYAML(m.Value)}
		}
		return ms
	case *ast.Array:
		vs := make([]any, len(t.Values))
		for i, elt := range t.Values {
			vs[i] = toYAML(elt)
		}
		return vs
	}
	return v.Interface()
}
