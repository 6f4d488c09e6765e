package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newKeysCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "keys <file> [path]",
		Short: "List a Dict's keys at path (the root by default)",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var path string
			if len(args) == 2 {
				path = args[1]
			}
			sels, err := parsePath(path)
			if err != nil {
				return err
			}
			nav, f, err := openNavigator(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			subNav, subVal, err := navigateLazy(nav, sels)
			if err != nil {
				return err
			}
			if subVal != nil {
				return fmt.Errorf("path does not resolve to a Dict")
			}
			keys, err := subNav.Keys()
			if err != nil {
				return err
			}
			for _, k := range keys {
				fmt.Fprintln(cmd.OutOrStdout(), k)
			}
			return nil
		},
	}
}
