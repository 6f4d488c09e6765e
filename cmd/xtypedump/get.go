package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <file> <path>",
		Short: "Resolve a path expression and print the resulting value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			sels, err := parsePath(args[1])
			if err != nil {
				return err
			}
			nav, f, err := openNavigator(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			v, err := nav.Get(sels...)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatScalar(v))
			return nil
		},
	}
}
