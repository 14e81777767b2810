// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"errors"
	"fmt"

	"github.com/creachadair/jevent"
	"github.com/creachadair/jevent/digest"
	"github.com/creachadair/jevent/input"
	"github.com/spf13/cobra"
)

func newCheckCmd(s *settings) *cobra.Command {
	return &cobra.Command{
		Use:   "check [file ...]",
		Short: "Check that JSON documents are well-formed",
		Long: `Check that each JSON document is well-formed.

For each valid document, print its name, the number of events it contains,
and a digest of its structure. Documents that differ only in whitespace
have the same digest. Errors are reported for each invalid document.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{"-"}
			}
			var nbad int
			for _, name := range args {
				sum, n, err := checkFile(name, s.escapes)
				if err != nil {
					nbad++
					log.Errorf("%s: %v", name, err)
					fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", name, err)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\t%016x\n", name, n, sum)
			}
			if nbad > 0 {
				return fmt.Errorf("%d of %d inputs are invalid", nbad, len(args))
			}
			return nil
		},
	}
}

func checkFile(name string, escapes bool) (uint64, int, error) {
	r, err := input.OpenFile(name)
	if err != nil {
		return 0, 0, err
	}
	defer r.Close()

	p := jevent.NewParser(r)
	p.DecodeEscapes(escapes)
	d := digest.New()
	p.Register(d)
	if err := p.ParseAll(); err != nil {
		return 0, 0, err
	}
	if d.Len() == 0 {
		return 0, 0, errors.New("empty input")
	}
	log.Debugf("%s: format %v", name, r.Format)
	return d.Sum64(), d.Len(), nil
}
